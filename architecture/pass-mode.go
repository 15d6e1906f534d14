package architecture

import (
	"fmt"
)

type RegisterUnitKind string

const (
	IntegerUnit = RegisterUnitKind("i")
)

// A register-sized piece of a value reinterpreted for register transport.
type RegisterUnit struct {
	Kind RegisterUnitKind
	Bits uint64
}

var (
	I32  = RegisterUnit{Kind: IntegerUnit, Bits: 32}
	I64  = RegisterUnit{Kind: IntegerUnit, Bits: 64}
	I128 = RegisterUnit{Kind: IntegerUnit, Bits: 128}
)

func (unit RegisterUnit) String() string {
	return fmt.Sprintf("%s%d", unit.Kind, unit.Bits)
}

type Extension string

const (
	SignExtension = Extension("sext")
	ZeroExtension = Extension("zext")
)

// How a value crosses a function call boundary.  The pass mode is one of:
// Ignore, DirectExtended, DirectCast, IndirectByValue, or
// IndirectByReference.
type PassMode interface {
	isPassMode()

	String() string

	// True if the callee receives an address rather than the value.
	IsIndirect() bool

	// True if the value's storage lives in the caller's outgoing stack
	// overflow area.  Once a value spills onto the stack, the rest of the
	// value continues on the stack; it never wraps back into registers.
	OnStack() bool
}

// The value occupies no space and is not passed at all.
type Ignore struct{}

var _ PassMode = Ignore{}

func (Ignore) isPassMode()      {}
func (Ignore) String() string   { return "ignore" }
func (Ignore) IsIndirect() bool { return false }
func (Ignore) OnStack() bool    { return false }

// The value is passed in a single register, with narrow integers promoted to
// Bits (the native register width).
type DirectExtended struct {
	Extension Extension
	Bits      uint64
}

var _ PassMode = DirectExtended{}

func (DirectExtended) isPassMode()      {}
func (DirectExtended) IsIndirect() bool { return false }
func (DirectExtended) OnStack() bool    { return false }

func (mode DirectExtended) String() string {
	return fmt.Sprintf("direct %s to i%d", mode.Extension, mode.Bits)
}

// The value's bits are reinterpreted as TotalBits built from repetitions of
// Unit.  When Pad is set, a padding unit precedes the payload so that the
// payload starts on an aligned register pair.
type DirectCast struct {
	Pad       *RegisterUnit
	Unit      RegisterUnit
	TotalBits uint64
}

var _ PassMode = DirectCast{}

func (DirectCast) isPassMode()      {}
func (DirectCast) IsIndirect() bool { return false }
func (DirectCast) OnStack() bool    { return false }

// Number of units making up the payload (excluding padding).
func (mode DirectCast) NumUnits() uint64 {
	return NumRegisters(mode.TotalBits, mode.Unit.Bits)
}

func (mode DirectCast) String() string {
	result := ""
	if mode.Pad != nil {
		result = fmt.Sprintf("pad %s, ", mode.Pad)
	}

	if mode.TotalBits == mode.Unit.Bits {
		return result + "cast " + mode.Unit.String()
	}

	return result + fmt.Sprintf(
		"cast [%d x %s] (%d bits)",
		mode.NumUnits(),
		mode.Unit,
		mode.TotalBits)
}

func (mode DirectCast) Equals(other DirectCast) bool {
	if mode.Unit != other.Unit || mode.TotalBits != other.TotalBits {
		return false
	}

	if mode.Pad == nil || other.Pad == nil {
		return mode.Pad == nil && other.Pad == nil
	}

	return *mode.Pad == *other.Pad
}

// The value is copied into the caller's stack overflow area and the callee
// receives the copy.  The callee must not assume the caller's original storage
// is reachable.
type IndirectByValue struct{}

var _ PassMode = IndirectByValue{}

func (IndirectByValue) isPassMode()      {}
func (IndirectByValue) IsIndirect() bool { return true }
func (IndirectByValue) OnStack() bool    { return true }
func (IndirectByValue) String() string   { return "indirect byval (on stack)" }

// The value is passed by pointer with no copy guarantee.  This is used for
// return values that do not fit in the return registers; the caller supplies
// the return slot memory, hence OnStack is always false for return values.
type IndirectByReference struct {
	OnStackFlag bool
}

var _ PassMode = IndirectByReference{}

func (IndirectByReference) isPassMode()      {}
func (IndirectByReference) IsIndirect() bool { return true }

func (mode IndirectByReference) OnStack() bool {
	return mode.OnStackFlag
}

func (mode IndirectByReference) String() string {
	if mode.OnStackFlag {
		return "indirect (on stack)"
	}
	return "indirect"
}

// EqualPassModes compares two pass modes structurally.
func EqualPassModes(first PassMode, second PassMode) bool {
	switch mode := first.(type) {
	case DirectCast:
		other, ok := second.(DirectCast)
		return ok && mode.Equals(other)
	default:
		return first == second
	}
}
