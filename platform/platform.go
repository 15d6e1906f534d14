package platform

import (
	"github.com/pattyshack/sandpiper/architecture"
)

type ArchitectureName string

const (
	Xtensa = ArchitectureName("xtensa")
)

type Platform interface {
	ArchitectureName() ArchitectureName

	// The (opaque) target description this platform was created from.
	Target() *TargetDescription

	// Target configuration facts used for inline asm register availability.
	TargetConfig() architecture.TargetConfig

	CallSpec() CallSpec

	InlineAsmRegisters() *architecture.RegisterCatalogue
}
