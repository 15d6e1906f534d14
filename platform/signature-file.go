package platform

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pattyshack/sandpiper/architecture"
)

// Signature files are yaml lists of
//
//	# signatures.yaml
//	- name: <function name>
//	  return: <layout>      # optional, defaults to zst (no return value)
//	  params: [<layout>, ...]
//
// where a layout is either a scalar shorthand (i8, u16, i32, u64, f32, f64,
// ptr, bool, zst) or a mapping:
//
//	{kind: aggregate|vector|int|uint|float|zst, size: <bits>, align: <bits>}
//
// align defaults to size for scalars.
type signatureEntry struct {
	Name   string         `yaml:"name"`
	Return *layoutEntry   `yaml:"return"`
	Params []*layoutEntry `yaml:"params"`
}

type layoutEntry struct {
	architecture.TypeLayout
}

type layoutMapping struct {
	Kind  string `yaml:"kind"`
	Size  uint64 `yaml:"size"`
	Align uint64 `yaml:"align"`
}

func (entry *layoutEntry) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		layout, err := ParseScalarLayout(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		entry.TypeLayout = layout
		return nil
	}

	mapping := layoutMapping{}
	err := node.Decode(&mapping)
	if err != nil {
		return err
	}

	align := mapping.Align
	switch mapping.Kind {
	case "aggregate":
		entry.TypeLayout = architecture.NewAggregateLayout(mapping.Size, align)
	case "vector":
		entry.TypeLayout = architecture.NewVectorLayout(mapping.Size, align)
	case "int", "uint":
		entry.TypeLayout = architecture.NewIntLayout(
			mapping.Size,
			mapping.Kind == "int")
		if align != 0 {
			entry.AlignBits = align
		}
	case "float":
		entry.TypeLayout = architecture.NewFloatLayout(mapping.Size)
		if align != 0 {
			entry.AlignBits = align
		}
	case "zst":
		entry.TypeLayout = architecture.ZeroSized()
	default:
		return fmt.Errorf(
			"line %d: unknown layout kind (%s)",
			node.Line,
			mapping.Kind)
	}

	err = entry.Validate()
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}

	return nil
}

// ParseScalarLayout parses scalar shorthands such as i8, u32, f64, ptr, bool
// and zst.  Pointers are 32-bit.
func ParseScalarLayout(name string) (architecture.TypeLayout, error) {
	switch name {
	case "zst":
		return architecture.ZeroSized(), nil
	case "bool":
		return architecture.NewIntLayout(8, false), nil
	case "ptr":
		return architecture.NewIntLayout(32, false), nil
	}

	if len(name) < 2 {
		return architecture.TypeLayout{}, fmt.Errorf(
			"unknown scalar type (%s)",
			name)
	}

	bits, err := strconv.ParseUint(name[1:], 10, 64)
	if err != nil || !architecture.IsPowerOfTwo(bits) || bits < 8 {
		return architecture.TypeLayout{}, fmt.Errorf(
			"unknown scalar type (%s)",
			name)
	}

	switch name[0] {
	case 'i':
		return architecture.NewIntLayout(bits, true), nil
	case 'u':
		return architecture.NewIntLayout(bits, false), nil
	case 'f':
		if bits != 32 && bits != 64 {
			break
		}
		return architecture.NewFloatLayout(bits), nil
	}

	return architecture.TypeLayout{}, fmt.Errorf(
		"unknown scalar type (%s)",
		name)
}

// LoadSignatures decodes a yaml signature list.  fileName is only used for
// error messages.
func LoadSignatures(fileName string, reader io.Reader) ([]Signature, error) {
	entries := []*signatureEntry{}

	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)
	err := decoder.Decode(&entries)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", fileName, err)
	}

	result := make([]Signature, 0, len(entries))
	for idx, entry := range entries {
		if entry == nil {
			return nil, fmt.Errorf("%s: empty signature entry %d", fileName, idx)
		}

		sig := Signature{
			Name:   strings.TrimSpace(entry.Name),
			Return: architecture.ZeroSized(),
		}

		if sig.Name == "" {
			sig.Name = fmt.Sprintf("sig%d", idx)
		}

		if entry.Return != nil {
			sig.Return = entry.Return.TypeLayout
		}

		for pidx, param := range entry.Params {
			if param == nil {
				return nil, fmt.Errorf(
					"%s: %s: empty param %d",
					fileName,
					sig.Name,
					pidx)
			}
			sig.Params = append(sig.Params, param.TypeLayout)
		}

		result = append(result, sig)
	}

	return result, nil
}
