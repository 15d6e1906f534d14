package architecture

import (
	"fmt"
)

type LayoutCategory string

const (
	ScalarLayout    = LayoutCategory("scalar")
	AggregateLayout = LayoutCategory("aggregate")
	VectorLayout    = LayoutCategory("vector")
	ZeroSizedLayout = LayoutCategory("zero-sized")
)

// TypeLayout describes a single argument / return value as seen by a call
// convention classifier.  The layout is computed elsewhere (by the type
// layout provider) and is never modified by the classifier.
//
// All sizes are in bits.
type TypeLayout struct {
	SizeBits  uint64
	AlignBits uint64

	Category LayoutCategory

	// Only meaningful for scalars.  Signed selects sign extension (rather than
	// zero extension) when the value is promoted to register width.  Float
	// scalars are never integer extended.
	Signed bool
	Float  bool
}

// NewTypeLayout mirrors the type layout provider's record format.
func NewTypeLayout(
	sizeBits uint64,
	alignBits uint64,
	isZeroSized bool,
	isAggregate bool,
	isVector bool,
) TypeLayout {
	category := ScalarLayout
	switch {
	case isZeroSized:
		category = ZeroSizedLayout
	case isAggregate:
		category = AggregateLayout
	case isVector:
		category = VectorLayout
	}

	return TypeLayout{
		SizeBits:  sizeBits,
		AlignBits: alignBits,
		Category:  category,
	}
}

// Integer scalars (including bool / pointers) are naturally aligned.
func NewIntLayout(bits uint64, signed bool) TypeLayout {
	return TypeLayout{
		SizeBits:  bits,
		AlignBits: bits,
		Category:  ScalarLayout,
		Signed:    signed,
	}
}

func NewFloatLayout(bits uint64) TypeLayout {
	return TypeLayout{
		SizeBits:  bits,
		AlignBits: bits,
		Category:  ScalarLayout,
		Float:     true,
	}
}

func NewAggregateLayout(sizeBits uint64, alignBits uint64) TypeLayout {
	return TypeLayout{
		SizeBits:  sizeBits,
		AlignBits: alignBits,
		Category:  AggregateLayout,
	}
}

func NewVectorLayout(sizeBits uint64, alignBits uint64) TypeLayout {
	return TypeLayout{
		SizeBits:  sizeBits,
		AlignBits: alignBits,
		Category:  VectorLayout,
	}
}

func ZeroSized() TypeLayout {
	return TypeLayout{
		AlignBits: 8,
		Category:  ZeroSizedLayout,
	}
}

func (layout TypeLayout) IsZeroSized() bool {
	return layout.Category == ZeroSizedLayout
}

func (layout TypeLayout) IsAggregate() bool {
	return layout.Category == AggregateLayout
}

func (layout TypeLayout) IsVector() bool {
	return layout.Category == VectorLayout
}

func (layout TypeLayout) IsScalar() bool {
	return layout.Category == ScalarLayout
}

func (layout TypeLayout) String() string {
	switch layout.Category {
	case ZeroSizedLayout:
		return "zst"
	case ScalarLayout:
		prefix := "u"
		if layout.Float {
			prefix = "f"
		} else if layout.Signed {
			prefix = "i"
		}
		if layout.AlignBits == layout.SizeBits {
			return fmt.Sprintf("%s%d", prefix, layout.SizeBits)
		}
		return fmt.Sprintf("%s%d(align %d)", prefix, layout.SizeBits, layout.AlignBits)
	default:
		return fmt.Sprintf(
			"%s(size %d, align %d)",
			layout.Category,
			layout.SizeBits,
			layout.AlignBits)
	}
}

// Validate checks the layout record produced by the type layout provider.
func (layout TypeLayout) Validate() error {
	switch layout.Category {
	case ScalarLayout, AggregateLayout, VectorLayout:
		if layout.SizeBits == 0 {
			return fmt.Errorf("%s layout has zero size", layout.Category)
		}
	case ZeroSizedLayout:
		if layout.SizeBits != 0 {
			return fmt.Errorf(
				"zero-sized layout has non-zero size (%d)",
				layout.SizeBits)
		}
	default:
		return fmt.Errorf("unknown layout category (%s)", layout.Category)
	}

	if !IsPowerOfTwo(layout.AlignBits) {
		return fmt.Errorf(
			"%s alignment (%d) is not a power of two",
			layout,
			layout.AlignBits)
	}

	if layout.Float && !layout.IsScalar() {
		return fmt.Errorf("non-scalar %s layout marked as float", layout.Category)
	}

	return nil
}

func IsPowerOfTwo(value uint64) bool {
	return value != 0 && value&(value-1) == 0
}

// NumRegisters returns the number of register slots needed to hold sizeBits.
// Does not overflow for sizes near the top of the uint64 range.
func NumRegisters(sizeBits uint64, registerBits uint64) uint64 {
	count := sizeBits / registerBits
	if sizeBits%registerBits != 0 {
		count++
	}
	return count
}

// AlignTo rounds value up to a multiple of align (align must be a power of
// two).
func AlignTo(value uint64, align uint64) uint64 {
	return (value + align - 1) &^ (align - 1)
}
