package xtensa

import (
	"fmt"

	"github.com/pattyshack/sandpiper/architecture"
	"github.com/pattyshack/sandpiper/platform"
)

const (
	numArgRegisters = 6
	numRetRegisters = 4
	xlen            = 32

	// The first argument / return value register is a2 (a0 holds the return
	// address and a1 is the stack pointer).
	firstArgRegister = 2
)

// Argument passing follows the Xtensa ISA reference manual's call0 / windowed
// ABI description (the two ABIs agree on argument registers and alignment).
var callConstants = architecture.CallConstants{
	ArgRegisters:  numArgRegisters,
	RetRegisters:  numRetRegisters,
	XLen:          xlen,
	MaxAlignBits:  128,
	QuadRegisters: false,
}

func CallConstants() architecture.CallConstants {
	return callConstants
}

// Register name of the i-th argument / return register slot (relative to the
// caller's window).
func ArgumentRegisterName(slot int) string {
	return fmt.Sprintf("a%d", firstArgRegister+slot)
}

func ReturnRegisterName(slot int) string {
	return ArgumentRegisterName(slot)
}

type callSpec struct {
	constants architecture.CallConstants
}

var _ platform.CallSpec = callSpec{}

func NewCallSpec(constants architecture.CallConstants) platform.CallSpec {
	err := constants.Validate()
	if err != nil {
		panic("invalid call constants: " + err.Error())
	}

	return callSpec{
		constants: constants,
	}
}

func (spec callSpec) Constants() architecture.CallConstants {
	return spec.constants
}

func (spec callSpec) Classify(sig platform.Signature) (platform.FuncAbi, error) {
	err := sig.Return.Validate()
	if err != nil {
		return platform.FuncAbi{}, fmt.Errorf("invalid return type: %w", err)
	}

	for idx, param := range sig.Params {
		err := param.Validate()
		if err != nil {
			return platform.FuncAbi{}, fmt.Errorf("invalid param %d: %w", idx, err)
		}
	}

	classifier := &valueClassifier{
		CallConstants: spec.constants,
	}

	result := platform.FuncAbi{
		Return: classifier.classifyReturn(sig.Return),
		Params: make([]platform.ArgAbi, 0, len(sig.Params)),
	}

	budget := architecture.NewRegisterBudget(spec.constants.ArgRegisters)
	for _, param := range sig.Params {
		result.Params = append(result.Params, classifier.classify(param, budget))
	}

	return result, nil
}

type valueClassifier struct {
	architecture.CallConstants
}

func (classifier *valueClassifier) classifyReturn(
	layout architecture.TypeLayout,
) platform.ArgAbi {
	// The rules for return values and arguments are the same, except the
	// return value uses its own (smaller) register pool.
	budget := architecture.NewRegisterBudget(classifier.RetRegisters)
	result := classifier.classify(layout, budget)

	// The return slot is always caller allocated memory passed by pointer,
	// never a stack copy.
	if result.Mode.IsIndirect() {
		result.Mode = architecture.IndirectByReference{OnStackFlag: false}
	}

	return result
}

func (classifier *valueClassifier) classify(
	layout architecture.TypeLayout,
	budget *architecture.RegisterBudget,
) platform.ArgAbi {
	if budget.Remaining() > budget.Size() {
		panic("register budget tracking overflow")
	}

	if layout.IsZeroSized() {
		return platform.ArgAbi{
			Layout:    layout,
			Mode:      architecture.Ignore{},
			FirstSlot: -1,
		}
	}

	size := layout.SizeBits
	align := layout.AlignBits

	payloadSlots := int(architecture.NumRegisters(size, classifier.XLen))
	neededSlots := payloadSlots

	// Register pair aligned values must start on an even register slot.
	padded := false
	if align == 2*classifier.XLen && budget.Remaining()%2 == 1 {
		neededSlots++
		padded = true
	}

	mustUseStack := neededSlots > budget.Remaining() ||
		align > classifier.MaxAlignBits ||
		(align == classifier.MaxAlignBits && !budget.IsFull())

	if mustUseStack {
		// Once a value spills, no later value may use the registers skipped
		// over by the spilled value.
		drained := budget.TakeAll()
		return platform.ArgAbi{
			Layout:    layout,
			Mode:      architecture.IndirectByValue{},
			FirstSlot: -1,
			Slots:     drained,
		}
	}

	first := budget.Take(neededSlots)
	paddingSlots := 0
	if padded {
		first++
		paddingSlots = 1
	}

	result := platform.ArgAbi{
		Layout:       layout,
		FirstSlot:    first,
		Slots:        neededSlots,
		PaddingSlots: paddingSlots,
	}

	if layout.IsScalar() {
		result.Mode = classifier.scalarMode(layout, payloadSlots, padded)
	} else {
		result.Mode = classifier.aggregateMode(layout, payloadSlots, padded)
	}

	_, ok := result.Mode.(architecture.DirectExtended)
	if ok && result.PayloadSlots() != 1 {
		panic("extended integer must occupy exactly one register")
	}

	return result
}

// All integral types narrower than xlen are promoted to xlen.  Wider scalars
// are passed as their natural register unit.
func (classifier *valueClassifier) scalarMode(
	layout architecture.TypeLayout,
	payloadSlots int,
	padded bool,
) architecture.PassMode {
	if layout.SizeBits < classifier.XLen && !layout.Float {
		extension := architecture.ZeroExtension
		if layout.Signed {
			extension = architecture.SignExtension
		}

		return architecture.DirectExtended{
			Extension: extension,
			Bits:      classifier.XLen,
		}
	}

	unit := architecture.RegisterUnit{
		Kind: architecture.IntegerUnit,
		Bits: classifier.XLen,
	}

	switch {
	case payloadSlots <= 1:
	case payloadSlots == 2:
		unit.Bits = 2 * classifier.XLen
	case payloadSlots == 4 && classifier.QuadRegisters:
		unit.Bits = 4 * classifier.XLen
	}

	return classifier.newCast(unit, payloadSlots, padded)
}

// Aggregates (and vectors) that fit in the remaining registers are coerced to
// integers: a single xlen int if possible, 2 * xlen units if 2 * xlen
// alignment is required, and xlen units otherwise.
func (classifier *valueClassifier) aggregateMode(
	layout architecture.TypeLayout,
	payloadSlots int,
	padded bool,
) architecture.PassMode {
	unit := architecture.RegisterUnit{
		Kind: architecture.IntegerUnit,
		Bits: classifier.XLen,
	}

	if layout.SizeBits <= classifier.XLen {
		return classifier.newCast(unit, payloadSlots, padded)
	}

	if layout.AlignBits == 2*classifier.XLen {
		unit.Bits = 2 * classifier.XLen
	}

	return classifier.newCast(unit, payloadSlots, padded)
}

func (classifier *valueClassifier) newCast(
	unit architecture.RegisterUnit,
	payloadSlots int,
	padded bool,
) architecture.DirectCast {
	result := architecture.DirectCast{
		Unit: unit,
		TotalBits: architecture.AlignTo(
			uint64(payloadSlots)*classifier.XLen,
			unit.Bits),
	}

	if padded {
		result.Pad = &architecture.RegisterUnit{
			Kind: architecture.IntegerUnit,
			Bits: classifier.XLen,
		}
	}

	return result
}
