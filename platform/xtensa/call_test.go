package xtensa

import (
	"testing"

	"github.com/pattyshack/sandpiper/architecture"
	"github.com/pattyshack/sandpiper/platform"
)

var (
	i8   = architecture.NewIntLayout(8, true)
	u16  = architecture.NewIntLayout(16, false)
	i32  = architecture.NewIntLayout(32, true)
	i64  = architecture.NewIntLayout(64, true)
	f32  = architecture.NewFloatLayout(32)
	f64  = architecture.NewFloatLayout(64)
	zst  = architecture.ZeroSized()
	u64A = architecture.NewAggregateLayout(64, 64) // {u64} aligned 64
)

func classify(
	t *testing.T,
	ret architecture.TypeLayout,
	params ...architecture.TypeLayout,
) platform.FuncAbi {
	t.Helper()

	abi, err := NewCallSpec(CallConstants()).Classify(
		platform.Signature{
			Name:   "test",
			Return: ret,
			Params: params,
		})
	if err != nil {
		t.Fatalf("Classify() = %v", err)
	}
	return abi
}

func slotsOf(abi platform.FuncAbi) []int {
	result := []int{}
	for _, param := range abi.Params {
		result = append(result, param.Slots)
	}
	return result
}

func equalInts(a []int, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for idx := range a {
		if a[idx] != b[idx] {
			return false
		}
	}
	return true
}

func TestClassifyParityPadding(t *testing.T) {
	// i32 leaves 5 (odd) slots, hence the first pair aligned value needs a
	// padding slot.  The second pair exhausts the budget.
	abi := classify(t, zst, i32, u64A, u64A, i32)

	if got := slotsOf(abi); !equalInts(got, []int{1, 3, 2, 0}) {
		t.Errorf("slots = %v, want [1 3 2 0]", got)
	}

	pad := architecture.I32
	want := []architecture.PassMode{
		architecture.DirectCast{Unit: architecture.I32, TotalBits: 32},
		architecture.DirectCast{Pad: &pad, Unit: architecture.I64, TotalBits: 64},
		architecture.DirectCast{Unit: architecture.I64, TotalBits: 64},
		architecture.IndirectByValue{},
	}
	for idx, mode := range want {
		if !architecture.EqualPassModes(abi.Params[idx].Mode, mode) {
			t.Errorf("param %d = %s, want %s", idx, abi.Params[idx].Mode, mode)
		}
	}

	if got := abi.Params[1].FirstSlot; got != 2 {
		t.Errorf("padded FirstSlot = %d, want 2", got)
	}
	if ArgumentRegisterName(abi.Params[1].FirstSlot) != "a4" {
		t.Errorf("padded value starts at %s, want a4", ArgumentRegisterName(abi.Params[1].FirstSlot))
	}
	if abi.Params[3].InRegisters() {
		t.Error("exhausted i32 is in registers")
	}
}

func TestClassifyEvenParity(t *testing.T) {
	// Two i32 leave 4 (even) slots, hence no padding.
	abi := classify(t, zst, i32, i32, u64A, i32)

	if got := slotsOf(abi); !equalInts(got, []int{1, 1, 2, 1}) {
		t.Errorf("slots = %v, want [1 1 2 1]", got)
	}

	last := abi.Params[3]
	if !architecture.EqualPassModes(
		last.Mode,
		architecture.DirectCast{Unit: architecture.I32, TotalBits: 32}) {
		t.Errorf("last = %s, want cast i32", last.Mode)
	}
	if ArgumentRegisterName(last.FirstSlot) != "a6" {
		t.Errorf("last in %s, want a6", ArgumentRegisterName(last.FirstSlot))
	}
}

func TestClassifyAggregateUniform(t *testing.T) {
	abi := classify(t, zst, architecture.NewAggregateLayout(96, 32))

	param := abi.Params[0]
	want := architecture.DirectCast{Unit: architecture.I32, TotalBits: 96}
	if !architecture.EqualPassModes(param.Mode, want) {
		t.Errorf("mode = %s, want %s", param.Mode, want)
	}
	if param.Slots != 3 || param.FirstSlot != 0 {
		t.Errorf("slots = %d at %d, want 3 at 0", param.Slots, param.FirstSlot)
	}
}

func TestClassifyLargeReturn(t *testing.T) {
	abi := classify(t, architecture.NewAggregateLayout(256, 32), i32)

	mode, ok := abi.Return.Mode.(architecture.IndirectByReference)
	if !ok {
		t.Fatalf("return = %s, want indirect", abi.Return.Mode)
	}
	if mode.OnStack() {
		t.Error("indirect return is on stack")
	}

	// The return pool is independent of the argument pool.
	if abi.Params[0].FirstSlot != 0 {
		t.Errorf("param FirstSlot = %d, want 0", abi.Params[0].FirstSlot)
	}
}

func TestClassifyReturnValues(t *testing.T) {
	tests := []struct {
		name string
		ret  architecture.TypeLayout
		want architecture.PassMode
	}{
		{"zst", zst, architecture.Ignore{}},
		{"i8", i8, architecture.DirectExtended{Extension: architecture.SignExtension, Bits: 32}},
		{"i64", i64, architecture.DirectCast{Unit: architecture.I64, TotalBits: 64}},
		{"128-bit aggregate", architecture.NewAggregateLayout(128, 32), architecture.DirectCast{Unit: architecture.I32, TotalBits: 128}},
		{"160-bit aggregate", architecture.NewAggregateLayout(160, 32), architecture.IndirectByReference{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			abi := classify(t, tt.ret)
			if !architecture.EqualPassModes(abi.Return.Mode, tt.want) {
				t.Errorf("return = %s, want %s", abi.Return.Mode, tt.want)
			}
		})
	}
}

func TestClassifyScalars(t *testing.T) {
	tests := []struct {
		name   string
		layout architecture.TypeLayout
		want   architecture.PassMode
		slots  int
	}{
		{"i8", i8, architecture.DirectExtended{Extension: architecture.SignExtension, Bits: 32}, 1},
		{"u16", u16, architecture.DirectExtended{Extension: architecture.ZeroExtension, Bits: 32}, 1},
		{"i32", i32, architecture.DirectCast{Unit: architecture.I32, TotalBits: 32}, 1},
		{"f32", f32, architecture.DirectCast{Unit: architecture.I32, TotalBits: 32}, 1},
		{"f64", f64, architecture.DirectCast{Unit: architecture.I64, TotalBits: 64}, 2},
		{"i64", i64, architecture.DirectCast{Unit: architecture.I64, TotalBits: 64}, 2},
		{"zst", zst, architecture.Ignore{}, 0},
		{"small vector", architecture.NewVectorLayout(32, 32), architecture.DirectCast{Unit: architecture.I32, TotalBits: 32}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			param := classify(t, zst, tt.layout).Params[0]
			if !architecture.EqualPassModes(param.Mode, tt.want) {
				t.Errorf("mode = %s, want %s", param.Mode, tt.want)
			}
			if param.Slots != tt.slots {
				t.Errorf("slots = %d, want %d", param.Slots, tt.slots)
			}
		})
	}
}

func TestClassifyMaxAlignment(t *testing.T) {
	align128 := architecture.NewAggregateLayout(128, 128)

	// A max aligned value is passed in registers only as the first value.
	abi := classify(t, zst, align128)
	if abi.Params[0].Mode.OnStack() {
		t.Errorf("first max aligned value = %s, want registers", abi.Params[0].Mode)
	}

	abi = classify(t, zst, i32, align128, i32)
	if !abi.Params[1].Mode.OnStack() {
		t.Errorf("non-first max aligned value = %s, want stack", abi.Params[1].Mode)
	}
	if abi.Params[1].Slots != 5 {
		t.Errorf("drained slots = %d, want 5", abi.Params[1].Slots)
	}
	if abi.Params[2].InRegisters() {
		t.Error("value after a stack passed value is in registers")
	}

	// A zero-sized value does not consume budget, hence the budget is still
	// full.
	abi = classify(t, zst, zst, align128)
	if abi.Params[1].Mode.OnStack() {
		t.Errorf("max aligned value after zst = %s, want registers", abi.Params[1].Mode)
	}

	abi = classify(t, zst, architecture.NewAggregateLayout(256, 256))
	if !abi.Params[0].Mode.OnStack() {
		t.Errorf("over aligned value = %s, want stack", abi.Params[0].Mode)
	}
}

func TestClassifyNeverWrapsBack(t *testing.T) {
	big := architecture.NewAggregateLayout(224, 32) // 7 slots
	abi := classify(t, zst, big, i8, i32, zst)

	for idx, param := range abi.Params {
		if param.InRegisters() {
			t.Errorf("param %d (%s) is in registers", idx, param.Mode)
		}
	}

	// Stack passed narrow integers are not extended.
	if _, ok := abi.Params[1].Mode.(architecture.DirectExtended); ok {
		t.Error("stack passed i8 is extended")
	}
	if _, ok := abi.Params[3].Mode.(architecture.Ignore); !ok {
		t.Errorf("zst = %s, want ignore", abi.Params[3].Mode)
	}
}

func TestClassifyBudgetBound(t *testing.T) {
	layouts := []architecture.TypeLayout{
		i8, i32, i64, f64, u64A, zst,
		architecture.NewAggregateLayout(96, 32),
		architecture.NewAggregateLayout(128, 128),
	}

	// Every pair and triple of layouts.
	for _, a := range layouts {
		for _, b := range layouts {
			for _, c := range layouts {
				abi := classify(t, zst, a, b, c)

				total := 0
				for _, param := range abi.Params {
					total += param.Slots
				}
				if total > numArgRegisters {
					t.Errorf("(%s, %s, %s) consumed %d slots", a, b, c, total)
				}

				for _, param := range abi.Params {
					if !param.InRegisters() {
						continue
					}
					if param.FirstSlot+param.Slots > numArgRegisters+1 {
						t.Errorf("(%s, %s, %s) exceeds register file", a, b, c)
					}
					cast, ok := param.Mode.(architecture.DirectCast)
					if ok && cast.Unit.Bits == 64 && param.FirstSlot%2 != 0 {
						t.Errorf("(%s, %s, %s) pair starts at odd slot %d", a, b, c, param.FirstSlot)
					}
				}
			}
		}
	}
}

func TestClassifyParityAcrossBudgets(t *testing.T) {
	// Each i32 prefix consumes one slot; the pair aligned value needs a pad
	// whenever the remaining budget is odd.
	for prefix := 0; prefix <= numArgRegisters; prefix++ {
		params := []architecture.TypeLayout{}
		for idx := 0; idx < prefix; idx++ {
			params = append(params, i32)
		}
		params = append(params, u64A)

		abi := classify(t, zst, params...)
		pair := abi.Params[prefix]

		remaining := numArgRegisters - prefix
		needed := 2 + remaining%2
		if needed > remaining {
			if !pair.Mode.OnStack() || pair.Slots != remaining {
				t.Errorf("prefix %d: %s (%d slots), want stack (%d)", prefix, pair.Mode, pair.Slots, remaining)
			}
			continue
		}

		if pair.Slots != needed {
			t.Errorf("prefix %d: slots = %d, want %d", prefix, pair.Slots, needed)
		}
		if pair.FirstSlot%2 != 0 {
			t.Errorf("prefix %d: FirstSlot = %d, want even", prefix, pair.FirstSlot)
		}
	}
}

func TestClassifyDeterministic(t *testing.T) {
	params := []architecture.TypeLayout{i32, u64A, i8, f64}
	first := classify(t, i64, params...)
	second := classify(t, i64, params...)

	for idx := range first.Params {
		a := first.Params[idx]
		b := second.Params[idx]
		if !architecture.EqualPassModes(a.Mode, b.Mode) ||
			a.Slots != b.Slots ||
			a.FirstSlot != b.FirstSlot {
			t.Errorf("param %d differs: %s vs %s", idx, a.Mode, b.Mode)
		}
	}

	for idx, param := range first.Params {
		if param.Layout != params[idx] {
			t.Errorf("param %d layout changed", idx)
		}
	}
}

func TestClassifyInvalidLayout(t *testing.T) {
	spec := NewCallSpec(CallConstants())

	_, err := spec.Classify(platform.Signature{
		Return: zst,
		Params: []architecture.TypeLayout{architecture.NewAggregateLayout(96, 24)},
	})
	if err == nil {
		t.Error("Classify(bad align) = nil error")
	}

	_, err = spec.Classify(platform.Signature{
		Return: architecture.NewIntLayout(0, true),
	})
	if err == nil {
		t.Error("Classify(bad return) = nil error")
	}
}

func TestNewCallSpecPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewCallSpec(invalid) did not panic")
		}
	}()

	constants := CallConstants()
	constants.XLen = 0
	NewCallSpec(constants)
}

func TestClassifyQuadRegisters(t *testing.T) {
	constants := CallConstants()
	constants.QuadRegisters = true

	i128 := architecture.TypeLayout{
		SizeBits:  128,
		AlignBits: 32,
		Category:  architecture.ScalarLayout,
		Signed:    true,
	}

	abi, err := NewCallSpec(constants).Classify(platform.Signature{
		Return: zst,
		Params: []architecture.TypeLayout{i128},
	})
	if err != nil {
		t.Fatal(err)
	}

	want := architecture.DirectCast{Unit: architecture.I128, TotalBits: 128}
	if !architecture.EqualPassModes(abi.Params[0].Mode, want) {
		t.Errorf("mode = %s, want %s", abi.Params[0].Mode, want)
	}

	abi = classify(t, zst, i128)
	want = architecture.DirectCast{Unit: architecture.I32, TotalBits: 128}
	if !architecture.EqualPassModes(abi.Params[0].Mode, want) {
		t.Errorf("mode = %s, want %s", abi.Params[0].Mode, want)
	}
}

func TestClassifyHugeLayout(t *testing.T) {
	huge := architecture.NewAggregateLayout(^uint64(0)-7, 8)
	abi := classify(t, zst, huge, i32)

	for idx, param := range abi.Params {
		if param.InRegisters() || !param.Mode.OnStack() {
			t.Errorf("param %d = %s at %d, want stack", idx, param.Mode, param.FirstSlot)
		}
	}
	if abi.Params[0].Slots != numArgRegisters {
		t.Errorf("drained slots = %d, want %d", abi.Params[0].Slots, numArgRegisters)
	}
}

func TestClassifyPaddedNarrowValues(t *testing.T) {
	pad := architecture.I32

	tests := []struct {
		name   string
		layout architecture.TypeLayout
		want   architecture.PassMode
	}{
		{
			"aggregate",
			architecture.NewAggregateLayout(32, 64),
			architecture.DirectCast{Pad: &pad, Unit: architecture.I32, TotalBits: 32},
		},
		{
			"integer",
			architecture.TypeLayout{
				SizeBits:  8,
				AlignBits: 64,
				Category:  architecture.ScalarLayout,
				Signed:    true,
			},
			architecture.DirectExtended{Extension: architecture.SignExtension, Bits: 32},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			abi := classify(t, zst, i32, tt.layout, i32)

			param := abi.Params[1]
			if !architecture.EqualPassModes(param.Mode, tt.want) {
				t.Errorf("mode = %s, want %s", param.Mode, tt.want)
			}
			if param.FirstSlot != 2 || param.Slots != 2 || param.PaddingSlots != 1 {
				t.Errorf("first/slots/padding = %d/%d/%d, want 2/2/1", param.FirstSlot, param.Slots, param.PaddingSlots)
			}
			if param.PayloadSlots() != 1 {
				t.Errorf("PayloadSlots() = %d, want 1", param.PayloadSlots())
			}
			if abi.Params[2].FirstSlot != 3 {
				t.Errorf("next FirstSlot = %d, want 3", abi.Params[2].FirstSlot)
			}
		})
	}
}
