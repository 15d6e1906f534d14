package architecture

import (
	"testing"
)

func TestTypeLayoutValidate(t *testing.T) {
	tests := []struct {
		name    string
		layout  TypeLayout
		wantErr bool
	}{
		{"i8", NewIntLayout(8, true), false},
		{"u64", NewIntLayout(64, false), false},
		{"f32", NewFloatLayout(32), false},
		{"zst", ZeroSized(), false},
		{"aggregate", NewAggregateLayout(96, 32), false},
		{"vector", NewVectorLayout(128, 128), false},
		{"zero size scalar", NewIntLayout(0, true), true},
		{"sized zst", TypeLayout{SizeBits: 8, AlignBits: 8, Category: ZeroSizedLayout}, true},
		{"bad align", NewAggregateLayout(96, 24), true},
		{"zero align", NewAggregateLayout(96, 0), true},
		{"unknown category", TypeLayout{SizeBits: 8, AlignBits: 8}, true},
		{"float aggregate", TypeLayout{SizeBits: 64, AlignBits: 32, Category: AggregateLayout, Float: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.layout.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewTypeLayoutCategory(t *testing.T) {
	tests := []struct {
		zst       bool
		aggregate bool
		vector    bool
		want      LayoutCategory
	}{
		{false, false, false, ScalarLayout},
		{true, false, false, ZeroSizedLayout},
		{false, true, false, AggregateLayout},
		{false, false, true, VectorLayout},
	}

	for _, tt := range tests {
		layout := NewTypeLayout(32, 32, tt.zst, tt.aggregate, tt.vector)
		if layout.Category != tt.want {
			t.Errorf("Category = %s, want %s", layout.Category, tt.want)
		}
	}
}

func TestTypeLayoutString(t *testing.T) {
	tests := []struct {
		layout TypeLayout
		want   string
	}{
		{ZeroSized(), "zst"},
		{NewIntLayout(32, true), "i32"},
		{NewIntLayout(8, false), "u8"},
		{NewFloatLayout(64), "f64"},
		{NewAggregateLayout(96, 32), "aggregate(size 96, align 32)"},
		{NewVectorLayout(128, 128), "vector(size 128, align 128)"},
	}

	for _, tt := range tests {
		if got := tt.layout.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestLayoutArithmetic(t *testing.T) {
	tests := []struct {
		size  uint64
		width uint64
		want  uint64
	}{
		{1, 32, 1},
		{32, 32, 1},
		{33, 32, 2},
		{96, 32, 3},
		{256, 32, 8},
		{^uint64(0), 32, 1 << 59},
		{^uint64(0) - 7, 8, 1<<61 - 1},
	}

	for _, tt := range tests {
		if got := NumRegisters(tt.size, tt.width); got != tt.want {
			t.Errorf("NumRegisters(%d, %d) = %d, want %d", tt.size, tt.width, got, tt.want)
		}
	}

	if got := AlignTo(96, 64); got != 128 {
		t.Errorf("AlignTo(96, 64) = %d, want 128", got)
	}
	if got := AlignTo(64, 64); got != 64 {
		t.Errorf("AlignTo(64, 64) = %d, want 64", got)
	}

	for _, value := range []uint64{0, 3, 24, 96} {
		if IsPowerOfTwo(value) {
			t.Errorf("IsPowerOfTwo(%d) = true, want false", value)
		}
	}
}
