package xtensa

import (
	"fmt"

	"github.com/pattyshack/sandpiper/architecture"
	"github.com/pattyshack/sandpiper/platform"
)

type xtensaPlatform struct {
	target   *platform.TargetDescription
	config   architecture.TargetConfig
	callSpec platform.CallSpec
}

var _ platform.Platform = &xtensaPlatform{}

func NewPlatform(target *platform.TargetDescription) (platform.Platform, error) {
	err := target.Validate()
	if err != nil {
		return nil, err
	}

	if target.Arch != string(platform.Xtensa) {
		return nil, fmt.Errorf(
			"target (%s) is not an xtensa target (arch %s)",
			target.Name,
			target.Arch)
	}

	if target.PointerWidth != xlen {
		return nil, fmt.Errorf(
			"target (%s) has unsupported pointer width (%d)",
			target.Name,
			target.PointerWidth)
	}

	config, err := TargetConfigFor(target)
	if err != nil {
		return nil, err
	}

	return &xtensaPlatform{
		target:   target,
		config:   config,
		callSpec: NewCallSpec(callConstants),
	}, nil
}

// NewPlatformByName looks up the builtin target and creates its platform.
func NewPlatformByName(name string) (platform.Platform, error) {
	target, err := LookupTarget(name)
	if err != nil {
		return nil, err
	}
	return NewPlatform(target)
}

func (xtensaPlatform) ArchitectureName() platform.ArchitectureName {
	return platform.Xtensa
}

func (p *xtensaPlatform) Target() *platform.TargetDescription {
	return p.target
}

func (p *xtensaPlatform) TargetConfig() architecture.TargetConfig {
	return p.config
}

func (p *xtensaPlatform) CallSpec() platform.CallSpec {
	return p.callSpec
}

func (xtensaPlatform) InlineAsmRegisters() *architecture.RegisterCatalogue {
	return InlineAsmRegisters
}
