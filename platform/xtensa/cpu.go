package xtensa

import (
	"fmt"
	"maps"
	"slices"

	"github.com/pattyshack/sandpiper/architecture"
	"github.com/pattyshack/sandpiper/platform"
)

// Default (implied) feature set per cpu model.
var cpuFeatures = map[string][]string{
	"generic": {},
	"esp32": {
		"density", fpFeature, windowedFeature, boolFeature, loopFeature,
		"sext", "nsa", "mul32", "mul32high", "div32", mac16Feature,
		dfpAccelFeature, s32c1iFeature, threadPtrFeature, debugFeature,
		exceptionFeature, highPriInterruptsFeature, coprocessorFeature,
		interruptFeature, relocatableVectorFeature, timerIntFeature,
		pridFeature, "regprotect", miscSRFeature, atomctlFeature,
		memctlFeature,
	},
	esp32s2Cpu: {
		"density", windowedFeature, "sext", "nsa", "mul32", "mul32high",
		"div32", threadPtrFeature, debugFeature, exceptionFeature,
		highPriInterruptsFeature, coprocessorFeature, interruptFeature,
		relocatableVectorFeature, timerIntFeature, pridFeature, "regprotect",
		miscSRFeature, memctlFeature, "esp32s2",
	},
	esp32s3Cpu: {
		"density", fpFeature, windowedFeature, boolFeature, loopFeature,
		"sext", "nsa", "mul32", "mul32high", "div32", mac16Feature,
		s32c1iFeature, threadPtrFeature, debugFeature, exceptionFeature,
		highPriInterruptsFeature, coprocessorFeature, interruptFeature,
		relocatableVectorFeature, timerIntFeature, pridFeature, "regprotect",
		miscSRFeature, atomctlFeature, memctlFeature, "esp32s3",
	},
	"esp8266": {
		"density", "nsa", "mul32", extendedL32RFeature, debugFeature,
		exceptionFeature, highPriInterruptsFeature, interruptFeature,
		relocatableVectorFeature, timerIntFeature, "regprotect", pridFeature,
	},
}

func CpuModels() []string {
	return slices.Sorted(maps.Keys(cpuFeatures))
}

// NewTargetConfig returns the cpu's default feature set, adjusted by the llvm
// style feature deltas (e.g., "-fp,+bool").
func NewTargetConfig(
	cpu string,
	featureDeltas string,
) (
	architecture.TargetConfig,
	error,
) {
	features, ok := cpuFeatures[cpu]
	if !ok {
		return architecture.TargetConfig{}, fmt.Errorf(
			"unknown xtensa cpu (%s)",
			cpu)
	}

	featureSet, err := architecture.ApplyFeatureDeltas(
		architecture.NewFeatureSet(features...),
		featureDeltas)
	if err != nil {
		return architecture.TargetConfig{}, err
	}

	return architecture.TargetConfig{
		Cpu:      cpu,
		Features: featureSet,
	}, nil
}

func TargetConfigFor(
	desc *platform.TargetDescription,
) (
	architecture.TargetConfig,
	error,
) {
	config, err := NewTargetConfig(desc.Cpu, desc.Features)
	if err != nil {
		return architecture.TargetConfig{}, fmt.Errorf(
			"target (%s): %w",
			desc.Name,
			err)
	}
	return config, nil
}
