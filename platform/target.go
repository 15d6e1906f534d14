package platform

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"
)

// A target description record.  Apart from the handful of scalar facts used
// by the call convention classifier and the inline asm register model (pointer
// width, cpu, features), the record is opaque pass-through configuration.
type TargetDescription struct {
	Name string `yaml:"name"`

	LlvmTarget   string `yaml:"llvm_target"`
	Arch         string `yaml:"arch"`
	PointerWidth int    `yaml:"pointer_width"`
	DataLayout   string `yaml:"data_layout"`

	Cpu string `yaml:"cpu"`

	// llvm-style feature deltas (e.g., "+fp,-bool") applied on top of the
	// cpu's default feature set.
	Features string `yaml:"features,omitempty"`

	Os     string `yaml:"os,omitempty"`
	Env    string `yaml:"env,omitempty"`
	Vendor string `yaml:"vendor,omitempty"`
	Linker string `yaml:"linker,omitempty"`

	MaxAtomicWidth  int    `yaml:"max_atomic_width,omitempty"`
	AtomicCas       bool   `yaml:"atomic_cas,omitempty"`
	PanicStrategy   string `yaml:"panic_strategy,omitempty"`
	RelocationModel string `yaml:"relocation_model,omitempty"`
}

func (desc *TargetDescription) Validate() error {
	if desc.Name == "" {
		return fmt.Errorf("target description has no name")
	}

	if desc.Arch == "" {
		return fmt.Errorf("target (%s) has no arch", desc.Name)
	}

	if desc.PointerWidth <= 0 {
		return fmt.Errorf(
			"target (%s) has invalid pointer width (%d)",
			desc.Name,
			desc.PointerWidth)
	}

	if desc.Cpu == "" {
		return fmt.Errorf("target (%s) has no cpu", desc.Name)
	}

	return nil
}

// LoadTargetDescriptions decodes a stream of yaml documents, each document
// containing either a single target description or a list of target
// descriptions.
func LoadTargetDescriptions(reader io.Reader) ([]*TargetDescription, error) {
	decoder := yaml.NewDecoder(reader)

	result := []*TargetDescription{}
	for {
		node := yaml.Node{}
		err := decoder.Decode(&node)
		if errors.Is(err, io.EOF) {
			return result, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse target descriptions: %w", err)
		}

		descs, err := decodeTargetDescriptions(&node)
		if err != nil {
			return nil, err
		}
		result = append(result, descs...)
	}
}

func decodeTargetDescriptions(node *yaml.Node) ([]*TargetDescription, error) {
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil, nil
		}
		node = node.Content[0]
	}

	var list []*yaml.Node
	switch node.Kind {
	case yaml.SequenceNode:
		list = node.Content
	case yaml.MappingNode:
		list = []*yaml.Node{node}
	default:
		return nil, fmt.Errorf(
			"line %d: expecting target description mapping or sequence",
			node.Line)
	}

	result := make([]*TargetDescription, 0, len(list))
	for _, entry := range list {
		desc := &TargetDescription{}
		err := decodeStrict(entry, desc)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", entry.Line, err)
		}

		err = desc.Validate()
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", entry.Line, err)
		}

		result = append(result, desc)
	}

	return result, nil
}

// yaml.Node.Decode does not support KnownFields, hence the re-encoding.
func decodeStrict(node *yaml.Node, out interface{}) error {
	content, err := yaml.Marshal(node)
	if err != nil {
		return err
	}

	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)
	return decoder.Decode(out)
}

type TargetRegistry struct {
	targets map[string]*TargetDescription
}

func NewTargetRegistry(descs ...*TargetDescription) (*TargetRegistry, error) {
	registry := &TargetRegistry{
		targets: map[string]*TargetDescription{},
	}

	for _, desc := range descs {
		err := registry.Add(desc)
		if err != nil {
			return nil, err
		}
	}

	return registry, nil
}

func (registry *TargetRegistry) Add(desc *TargetDescription) error {
	_, ok := registry.targets[desc.Name]
	if ok {
		return fmt.Errorf("duplicate target description (%s)", desc.Name)
	}

	registry.targets[desc.Name] = desc
	return nil
}

func (registry *TargetRegistry) Get(name string) (*TargetDescription, error) {
	desc, ok := registry.targets[name]
	if !ok {
		return nil, fmt.Errorf("unknown target (%s)", name)
	}
	return desc, nil
}

func (registry *TargetRegistry) Names() []string {
	return slices.Sorted(maps.Keys(registry.targets))
}
