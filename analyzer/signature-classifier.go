package analyzer

import (
	"github.com/pattyshack/gt/parseutil"

	"github.com/pattyshack/sandpiper/platform"
)

type signatureClassifier struct {
	parseutil.Emitter

	spec       platform.CallSpec
	signatures []platform.Signature

	abis []platform.FuncAbi
}

// ClassifySignatures classifies the given (deduplicated) signatures rather
// than the unit's raw signature list.
func ClassifySignatures(
	targetPlatform platform.Platform,
	signatures []platform.Signature,
) *signatureClassifier {
	return &signatureClassifier{
		spec:       targetPlatform.CallSpec(),
		signatures: signatures,
	}
}

func (classifier *signatureClassifier) Process(unit *Unit) {
	classifier.abis = platform.ClassifyAll(
		classifier.spec,
		classifier.signatures,
		&classifier.Emitter)
}
