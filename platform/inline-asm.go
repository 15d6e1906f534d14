package platform

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pattyshack/gt/parseutil"
	"gopkg.in/yaml.v3"

	"github.com/pattyshack/sandpiper/architecture"
)

type AsmOperandDirection string

const (
	AsmIn      = AsmOperandDirection("in")
	AsmOut     = AsmOperandDirection("out")
	AsmLateOut = AsmOperandDirection("lateout")
	AsmInOut   = AsmOperandDirection("inout")
)

func (direction AsmOperandDirection) IsInput() bool {
	return direction == AsmIn || direction == AsmInOut
}

// A non-late output may be written before all inputs are consumed, hence it
// also occupies its register during the input phase.
func (direction AsmOperandDirection) OccupiesInputRegister() bool {
	return direction.IsInput() || direction == AsmOut
}

func (direction AsmOperandDirection) IsOutput() bool {
	return direction != AsmIn
}

// An inline asm register operand, as produced by the inline asm parser.
// Exactly one of Class / Register is set.
type AsmOperand struct {
	parseutil.StartEndPos

	Direction AsmOperandDirection

	Class    string // register class name
	Register string // explicit register name / alias

	Type architecture.InlineAsmType
}

func (operand *AsmOperand) String() string {
	if operand.Register != "" {
		return fmt.Sprintf("%s(%q) %s", operand.Direction, operand.Register, operand.Type)
	}
	return fmt.Sprintf("%s(%s) %s", operand.Direction, operand.Class, operand.Type)
}

type ResolvedAsmOperand struct {
	*AsmOperand

	Class *architecture.RegisterClass

	// nil for register class operands.
	Register *architecture.Register
}

// OperandValidator validates inline asm register operands against a
// platform's register catalogue and target configuration.  Each problem is
// emitted as a diagnostic; validation continues with the remaining operands.
type OperandValidator struct {
	*parseutil.Emitter

	catalogue *architecture.RegisterCatalogue
	config    architecture.TargetConfig
}

func NewOperandValidator(
	targetPlatform Platform,
	emitter *parseutil.Emitter,
) *OperandValidator {
	return &OperandValidator{
		Emitter:   emitter,
		catalogue: targetPlatform.InlineAsmRegisters(),
		config:    targetPlatform.TargetConfig(),
	}
}

// Process returns the successfully resolved operands, in order.
func (validator *OperandValidator) Process(
	operands []*AsmOperand,
) []*ResolvedAsmOperand {
	usedInputs := map[*architecture.Register]*AsmOperand{}
	usedOutputs := map[*architecture.Register]*AsmOperand{}

	result := []*ResolvedAsmOperand{}
	for _, operand := range operands {
		resolved := validator.resolve(operand)
		if resolved == nil {
			continue
		}

		if resolved.Register != nil {
			conflict := false
			if operand.Direction.OccupiesInputRegister() {
				conflict = validator.checkConflict(usedInputs, resolved) || conflict
			}
			if operand.Direction.IsOutput() {
				conflict = validator.checkConflict(usedOutputs, resolved) || conflict
			}
			if conflict {
				continue
			}
		}

		result = append(result, resolved)
	}

	return result
}

func (validator *OperandValidator) checkConflict(
	used map[*architecture.Register]*AsmOperand,
	resolved *ResolvedAsmOperand,
) bool {
	prev, ok := used[resolved.Register]
	if ok {
		validator.Emit(
			resolved.Loc(),
			"register %s conflicts with register %s",
			resolved.AsmOperand.Register,
			prev.Register)
		return true
	}

	used[resolved.Register] = resolved.AsmOperand
	return false
}

func (validator *OperandValidator) resolve(
	operand *AsmOperand,
) *ResolvedAsmOperand {
	switch operand.Direction {
	case AsmIn, AsmOut, AsmLateOut, AsmInOut:
	default:
		validator.Emit(
			operand.Loc(),
			"invalid operand direction (%s)",
			operand.Direction)
		return nil
	}

	if (operand.Class == "") == (operand.Register == "") {
		validator.Emit(
			operand.Loc(),
			"operand must specify exactly one of register class or explicit register")
		return nil
	}

	resolved := &ResolvedAsmOperand{
		AsmOperand: operand,
	}

	if operand.Register != "" {
		register, ok := validator.catalogue.Lookup(operand.Register)
		if !ok {
			validator.Emit(
				operand.Loc(),
				"invalid register %s: unknown register",
				operand.Register)
			return nil
		}

		err := register.IsAvailable(validator.config)
		if err != nil {
			validator.Emit(
				operand.Loc(),
				"invalid register %s: %s",
				operand.Register,
				err)
			return nil
		}

		resolved.Register = register
		resolved.Class = register.Class
	} else {
		class, ok := validator.catalogue.Class(operand.Class)
		if !ok {
			validator.Emit(
				operand.Loc(),
				"invalid register class %s: unknown register class",
				operand.Class)
			return nil
		}

		if len(validator.catalogue.Available(class, validator.config)) == 0 {
			validator.Emit(
				operand.Loc(),
				"register class %s has no usable registers for target (%s)",
				class.Name,
				validator.config)
			return nil
		}

		resolved.Class = class
	}

	if !resolved.Class.Supports(operand.Type) {
		supported := []string{}
		for _, t := range resolved.Class.SupportedTypes {
			supported = append(supported, string(t))
		}

		validator.Emit(
			operand.Loc(),
			"type %s cannot be used with register class %s (supported: %s)",
			operand.Type,
			resolved.Class.Name,
			strings.Join(supported, ", "))
		return nil
	}

	return resolved
}

// Operand files are yaml lists of asm statements:
//
//	# operands.yaml
//	- name: <statement name>
//	  operands:
//	    - {dir: in, class: reg, type: i32}
//	    - {dir: out, reg: a5, type: i16}
type AsmStatement struct {
	Name     string
	Operands []*AsmOperand
}

type asmStatementEntry struct {
	Name     string             `yaml:"name"`
	Operands []*asmOperandEntry `yaml:"operands"`
}

type asmOperandEntry struct {
	Direction string `yaml:"dir"`
	Class     string `yaml:"class"`
	Register  string `yaml:"reg"`
	Type      string `yaml:"type"`
}

func LoadAsmStatements(
	fileName string,
	reader io.Reader,
) ([]*AsmStatement, error) {
	entries := []*asmStatementEntry{}

	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)
	err := decoder.Decode(&entries)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", fileName, err)
	}

	result := make([]*AsmStatement, 0, len(entries))
	for idx, entry := range entries {
		if entry == nil {
			return nil, fmt.Errorf("%s: empty asm statement %d", fileName, idx)
		}

		stmt := &AsmStatement{
			Name: entry.Name,
		}
		if stmt.Name == "" {
			stmt.Name = fmt.Sprintf("asm%d", idx)
		}

		for _, operandEntry := range entry.Operands {
			if operandEntry == nil {
				return nil, fmt.Errorf("%s: %s: empty operand", fileName, stmt.Name)
			}

			valueType, err := architecture.ParseInlineAsmType(operandEntry.Type)
			if err != nil {
				return nil, fmt.Errorf("%s: %s: %w", fileName, stmt.Name, err)
			}

			direction := AsmOperandDirection(operandEntry.Direction)
			if direction == "" {
				direction = AsmIn
			}

			stmt.Operands = append(
				stmt.Operands,
				&AsmOperand{
					Direction: direction,
					Class:     operandEntry.Class,
					Register:  operandEntry.Register,
					Type:      valueType,
				})
		}

		result = append(result, stmt)
	}

	return result, nil
}
