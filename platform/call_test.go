package platform

import (
	"fmt"
	"testing"

	"github.com/pattyshack/gt/parseutil"

	"github.com/pattyshack/sandpiper/architecture"
)

// Reports the number of params as the return slot count, and rejects
// signatures named "bad".
type countingSpec struct{}

func (countingSpec) Constants() architecture.CallConstants {
	return architecture.CallConstants{}
}

func (countingSpec) Classify(sig Signature) (FuncAbi, error) {
	if sig.Name == "bad" {
		return FuncAbi{}, fmt.Errorf("rejected")
	}
	return FuncAbi{
		Return: ArgAbi{Slots: len(sig.Params), FirstSlot: -1},
	}, nil
}

func TestClassifyAll(t *testing.T) {
	signatures := []Signature{}
	for idx := 0; idx < 20; idx++ {
		sig := Signature{
			Name:   fmt.Sprintf("f%d", idx),
			Params: make([]architecture.TypeLayout, idx),
		}
		if idx == 7 {
			sig.Name = "bad"
		}
		signatures = append(signatures, sig)
	}

	emitter := &parseutil.Emitter{}
	results := ClassifyAll(countingSpec{}, signatures, emitter)

	if len(results) != len(signatures) {
		t.Fatalf("len(results) = %d, want %d", len(results), len(signatures))
	}

	for idx, result := range results {
		want := idx
		if idx == 7 {
			want = 0
		}
		if result.Return.Slots != want {
			t.Errorf("results[%d].Return.Slots = %d, want %d", idx, result.Return.Slots, want)
		}
	}

	errs := emitter.Errors()
	if len(errs) != 1 {
		t.Fatalf("len(errs) = %d, want 1", len(errs))
	}
}

func TestArgAbiInRegisters(t *testing.T) {
	if (ArgAbi{FirstSlot: -1}).InRegisters() {
		t.Error("FirstSlot -1 is in registers")
	}
	if !(ArgAbi{FirstSlot: 0}).InRegisters() {
		t.Error("FirstSlot 0 is not in registers")
	}
}
