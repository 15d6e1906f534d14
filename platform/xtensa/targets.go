package xtensa

import (
	"bytes"
	_ "embed"

	"github.com/pattyshack/sandpiper/platform"
)

//go:embed targets.yaml
var builtinTargetsYaml []byte

var builtinTargets = loadBuiltinTargets()

func loadBuiltinTargets() *platform.TargetRegistry {
	descs, err := platform.LoadTargetDescriptions(
		bytes.NewReader(builtinTargetsYaml))
	if err != nil {
		panic("invalid builtin xtensa targets: " + err.Error())
	}

	registry, err := platform.NewTargetRegistry(descs...)
	if err != nil {
		panic("invalid builtin xtensa targets: " + err.Error())
	}

	return registry
}

// Targets returns the builtin xtensa target registry.  The registry is shared;
// callers should not add to it.
func Targets() *platform.TargetRegistry {
	return builtinTargets
}

func LookupTarget(name string) (*platform.TargetDescription, error) {
	return builtinTargets.Get(name)
}
