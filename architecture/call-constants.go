package architecture

import (
	"fmt"
)

// Architecture specific constants used by register budget based call
// convention classifiers.
type CallConstants struct {
	// Number of general purpose registers usable for arguments.
	ArgRegisters int

	// Number of general purpose registers usable for the return value.  This
	// is an independent pool from the argument registers.
	RetRegisters int

	// Native register width in bits.
	XLen uint64

	// The largest alignment representable by registers.  Values with larger
	// alignment are always passed on stack.
	MaxAlignBits uint64

	// When true, a 4 * XLen scalar may be passed as a single register quad
	// unit.
	QuadRegisters bool
}

func (constants CallConstants) Validate() error {
	if constants.ArgRegisters < 0 || constants.RetRegisters < 0 {
		return fmt.Errorf(
			"negative register budget (args: %d, ret: %d)",
			constants.ArgRegisters,
			constants.RetRegisters)
	}

	if !IsPowerOfTwo(constants.XLen) || constants.XLen < 8 {
		return fmt.Errorf("invalid register width (%d)", constants.XLen)
	}

	if !IsPowerOfTwo(constants.MaxAlignBits) ||
		constants.MaxAlignBits < 2*constants.XLen {

		return fmt.Errorf(
			"invalid max register alignment (%d)",
			constants.MaxAlignBits)
	}

	return nil
}
