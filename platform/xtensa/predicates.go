package xtensa

import (
	"fmt"

	"github.com/pattyshack/sandpiper/architecture"
)

const (
	fpFeature                = "fp"
	boolFeature              = "bool"
	loopFeature              = "loop"
	mac16Feature             = "mac16"
	windowedFeature          = "windowed"
	debugFeature             = "debug"
	atomctlFeature           = "atomctl"
	memctlFeature            = "memctl"
	s32c1iFeature            = "s32c1i"
	extendedL32RFeature      = "extendedl32r"
	exceptionFeature         = "exception"
	highPriInterruptsFeature = "highpriinterrupts"
	coprocessorFeature       = "coprocessor"
	interruptFeature         = "interrupt"
	relocatableVectorFeature = "rvector"
	timerIntFeature          = "timerint"
	pridFeature              = "prid"
	miscSRFeature            = "miscsr"
	threadPtrFeature         = "threadptr"
	dfpAccelFeature          = "dfpaccel"

	esp32s2Cpu = "esp32-s2"
	esp32s3Cpu = "esp32-s3"
)

// Human readable register group names, keyed by the feature gating the group.
var featureDescriptions = map[string]string{
	fpFeature:                "floating point",
	boolFeature:              "boolean",
	loopFeature:              "loop",
	mac16Feature:             "mac16",
	windowedFeature:          "windowed",
	debugFeature:             "debug",
	atomctlFeature:           "atomctl",
	memctlFeature:            "memctl",
	s32c1iFeature:            "s32c1i",
	extendedL32RFeature:      "extended l32r",
	exceptionFeature:         "exception",
	highPriInterruptsFeature: "high priority interrupt",
	coprocessorFeature:       "coprocessor",
	interruptFeature:         "interrupt",
	relocatableVectorFeature: "relocatable vector",
	timerIntFeature:          "timer interrupt",
	pridFeature:              "processor id",
	miscSRFeature:            "miscellaneous special",
	threadPtrFeature:         "thread pointer",
	dfpAccelFeature:          "double precision floating point accelerator",
}

// Feature name -> availability check.
var featurePredicates = newFeaturePredicates()

func newFeaturePredicates() map[string]architecture.Predicate {
	result := make(map[string]architecture.Predicate, len(featureDescriptions))
	for feature, description := range featureDescriptions {
		result[feature] = newFeaturePredicate(feature, description)
	}
	return result
}

func newFeaturePredicate(
	feature string,
	description string,
) architecture.Predicate {
	return func(config architecture.TargetConfig) error {
		if config.HasFeature(feature) {
			return nil
		}
		return fmt.Errorf("target does not support %s registers", description)
	}
}

func newCpuPredicate(cpu string, registerName string) architecture.Predicate {
	return func(config architecture.TargetConfig) error {
		if config.Cpu == cpu {
			return nil
		}
		return fmt.Errorf(
			"%s is only available on %s (target cpu is %s)",
			registerName,
			cpu,
			config.Cpu)
	}
}

func requires(feature string) architecture.Predicate {
	predicate, ok := featurePredicates[feature]
	if !ok {
		panic("unknown feature predicate: " + feature)
	}
	return predicate
}

// The windowed abi uses a7 as the frame pointer, while the call0 abi uses
// a15.  Exactly one of the two is the frame pointer for any target config.
func FramePointerIsA7(config architecture.TargetConfig) bool {
	return config.HasFeature(windowedFeature)
}

func framePointerA7(config architecture.TargetConfig) error {
	if FramePointerIsA7(config) {
		return fmt.Errorf(
			"the frame pointer (a7) cannot be used as an operand for inline asm")
	}
	return nil
}

func framePointerA15(config architecture.TargetConfig) error {
	if !FramePointerIsA7(config) {
		return fmt.Errorf(
			"the frame pointer (a15) cannot be used as an operand for inline asm")
	}
	return nil
}

// FramePointer returns the register used as frame pointer under the config.
func FramePointer(config architecture.TargetConfig) *architecture.Register {
	if FramePointerIsA7(config) {
		return a7
	}
	return a15
}
