package platform

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pattyshack/gt/parseutil"

	"github.com/pattyshack/sandpiper/architecture"
)

// A function signature as seen by the call convention classifier.  The
// position is optional and is only used for diagnostics.
type Signature struct {
	parseutil.StartEndPos

	Name string

	Return architecture.TypeLayout
	Params []architecture.TypeLayout
}

func (sig Signature) String() string {
	params := make([]string, 0, len(sig.Params))
	for _, param := range sig.Params {
		params = append(params, param.String())
	}

	return fmt.Sprintf(
		"func %s(%s) %s",
		sig.Name,
		strings.Join(params, ", "),
		sig.Return)
}

// The classification decision for a single argument / return value.
type ArgAbi struct {
	Layout architecture.TypeLayout

	Mode architecture.PassMode

	// Index of the first register slot holding the value's payload, or -1 if
	// the value is not passed in registers.
	FirstSlot int

	// Number of register slots consumed by this value, including alignment
	// padding and, for stack passed values, the drained remainder of the
	// budget.
	Slots int

	// Number of leading alignment padding slots included in Slots.  The
	// padding slots precede FirstSlot.
	PaddingSlots int
}

// Number of register slots holding the value's payload.
func (arg ArgAbi) PayloadSlots() int {
	if !arg.InRegisters() {
		return 0
	}
	return arg.Slots - arg.PaddingSlots
}

func (arg ArgAbi) InRegisters() bool {
	return arg.FirstSlot >= 0
}

type FuncAbi struct {
	Return ArgAbi
	Params []ArgAbi
}

// Call convention specific, value passing classifier.
type CallSpec interface {
	Constants() architecture.CallConstants

	// Classify decides how the signature's return value and arguments cross
	// the function boundary.  An error is returned when the signature contains
	// malformed type layouts.  Internal invariant violations panic.
	Classify(Signature) (FuncAbi, error)
}

// ClassifyAll classifies the signatures in parallel.  Each classification
// uses its own register budgets.  The results are in the same order as the
// signatures.  Signatures that failed classification have a zero FuncAbi, and
// the failure is emitted into the emitter.
func ClassifyAll(
	spec CallSpec,
	signatures []Signature,
	emitter *parseutil.Emitter,
) []FuncAbi {
	results := make([]FuncAbi, len(signatures))
	emitters := make([]*parseutil.Emitter, len(signatures))

	wg := sync.WaitGroup{}
	wg.Add(len(signatures))
	for idx, sig := range signatures {
		emitters[idx] = &parseutil.Emitter{}

		go func(idx int, sig Signature) {
			defer wg.Done()

			result, err := spec.Classify(sig)
			if err != nil {
				emitters[idx].Emit(sig.Loc(), "%s: %s", sig.Name, err)
				return
			}
			results[idx] = result
		}(idx, sig)
	}
	wg.Wait()

	for _, sigEmitter := range emitters {
		emitter.EmitErrors(sigEmitter.Errors()...)
	}

	return results
}
