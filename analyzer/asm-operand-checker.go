package analyzer

import (
	"fmt"

	"github.com/pattyshack/gt/parseutil"

	"github.com/pattyshack/sandpiper/platform"
)

type asmOperandChecker struct {
	parseutil.Emitter

	targetPlatform platform.Platform

	operands [][]*platform.ResolvedAsmOperand
}

func CheckAsmOperands(targetPlatform platform.Platform) *asmOperandChecker {
	return &asmOperandChecker{
		targetPlatform: targetPlatform,
	}
}

func (checker *asmOperandChecker) Process(unit *Unit) {
	checker.operands = make(
		[][]*platform.ResolvedAsmOperand,
		len(unit.AsmStatements))
	emitters := make([]*parseutil.Emitter, len(unit.AsmStatements))
	for idx := range emitters {
		emitters[idx] = &parseutil.Emitter{}
	}

	ParallelProcess(
		unit.AsmStatements,
		func(idx int, stmt *platform.AsmStatement) {
			validator := platform.NewOperandValidator(
				checker.targetPlatform,
				emitters[idx])
			checker.operands[idx] = validator.Process(stmt.Operands)
		})

	// Operands carry no source position; prefix with the statement name.
	for idx, stmtEmitter := range emitters {
		for _, err := range stmtEmitter.Errors() {
			checker.EmitErrors(
				fmt.Errorf("%s: %w", unit.AsmStatements[idx].Name, err))
		}
	}
}
