package analyzer

import (
	"github.com/pattyshack/gt/parseutil"

	"github.com/pattyshack/sandpiper/platform"
)

// SignatureCollector drops signatures whose names were previously collected.
type SignatureCollector struct {
	*parseutil.Emitter
	names      map[string]platform.Signature
	signatures []platform.Signature
}

func NewSignatureCollector(emitter *parseutil.Emitter) *SignatureCollector {
	return &SignatureCollector{
		Emitter: emitter,
		names:   map[string]platform.Signature{},
	}
}

func (collector *SignatureCollector) Signatures() []platform.Signature {
	return collector.signatures
}

func (collector *SignatureCollector) Process(signatures []platform.Signature) {
	for _, sig := range signatures {
		_, ok := collector.names[sig.Name]
		if ok {
			collector.Emit(
				sig.Loc(),
				"signature (%s) previously defined",
				sig.Name)
			continue
		}

		collector.names[sig.Name] = sig
		collector.signatures = append(collector.signatures, sig)
	}
}
