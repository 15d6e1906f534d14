package analyzer

import (
	"github.com/pattyshack/gt/parseutil"

	"github.com/pattyshack/sandpiper/platform"
)

// A batch of inputs checked against a single target platform.
type Unit struct {
	Signatures    []platform.Signature
	AsmStatements []*platform.AsmStatement
}

type Report struct {
	// Deduplicated signatures, in first-seen order.
	Signatures []platform.Signature

	// Abis[i] is the classification of Signatures[i].  Failed classifications
	// are zero values.
	Abis []platform.FuncAbi

	// Operands[i] holds AsmStatements[i]'s successfully resolved operands.
	Operands [][]*platform.ResolvedAsmOperand
}

func Analyze(
	unit *Unit,
	targetPlatform platform.Platform,
	emitter *parseutil.Emitter,
) *Report {
	collector := NewSignatureCollector(emitter)
	collector.Process(unit.Signatures)

	classifier := ClassifySignatures(
		targetPlatform,
		collector.Signatures())
	checker := CheckAsmOperands(targetPlatform)

	Process(
		unit,
		[][]Pass[*Unit]{
			{classifier, checker},
		},
		nil)

	emitter.EmitErrors(classifier.Errors()...)
	emitter.EmitErrors(checker.Errors()...)

	return &Report{
		Signatures: collector.Signatures(),
		Abis:       classifier.abis,
		Operands:   checker.operands,
	}
}
