package architecture

import (
	"fmt"
	"io"
	"slices"
)

// Operand value types accepted by inline asm register operands.
type InlineAsmType string

const (
	I8Type  = InlineAsmType("i8")
	I16Type = InlineAsmType("i16")
	I32Type = InlineAsmType("i32")
	I64Type = InlineAsmType("i64")
	F32Type = InlineAsmType("f32")
	F64Type = InlineAsmType("f64")
)

func ParseInlineAsmType(name string) (InlineAsmType, error) {
	switch t := InlineAsmType(name); t {
	case I8Type, I16Type, I32Type, I64Type, F32Type, F64Type:
		return t, nil
	case "ptr": // pointers are 32-bit on all supported targets
		return I32Type, nil
	default:
		return "", fmt.Errorf("unknown inline asm type (%s)", name)
	}
}

// A named set of interchangeable registers.  All non-reserved registers in
// the class accept the same operand value types.
type RegisterClass struct {
	Name string

	SupportedTypes []InlineAsmType
}

func NewRegisterClass(
	name string,
	supportedTypes ...InlineAsmType,
) *RegisterClass {
	return &RegisterClass{
		Name:           name,
		SupportedTypes: supportedTypes,
	}
}

func (class *RegisterClass) String() string {
	return class.Name
}

func (class *RegisterClass) Supports(valueType InlineAsmType) bool {
	return slices.Contains(class.SupportedTypes, valueType)
}

// Template modifiers are not supported by any register class.
func (class *RegisterClass) ValidModifiers() []rune {
	return []rune{}
}

// There is never a better alternative class to suggest.
func (class *RegisterClass) SuggestClass(InlineAsmType) *RegisterClass {
	return nil
}

func (class *RegisterClass) SuggestModifier(
	InlineAsmType,
) (
	modifier rune,
	description string,
	ok bool,
) {
	return 0, "", false
}

func (class *RegisterClass) DefaultModifier() (
	modifier rune,
	description string,
	ok bool,
) {
	return 0, "", false
}

// Predicate returns nil if the register is usable under the target config, or
// an error describing why the register is not usable.
type Predicate func(TargetConfig) error

func Always(TargetConfig) error {
	return nil
}

type UnavailableError struct {
	Register *Register
	Reason   string
}

func (err *UnavailableError) Error() string {
	return err.Reason
}

type Register struct {
	// Canonical name.
	Name string

	// Other assembler names which denote the same physical register.
	Aliases []string

	Class *RegisterClass

	// When true, the register is reserved for the stack pointer.
	IsStackPointer bool

	// Reserved registers are used internally by the code generator and are
	// never selectable.  Their predicate always fails with a fixed message.
	Reserved bool

	Predicate Predicate
}

func NewRegister(
	class *RegisterClass,
	predicate Predicate,
	name string,
	aliases ...string,
) *Register {
	if predicate == nil {
		predicate = Always
	}

	return &Register{
		Name:      name,
		Aliases:   aliases,
		Class:     class,
		Predicate: predicate,
	}
}

func NewReservedRegister(
	class *RegisterClass,
	message string,
	name string,
	aliases ...string,
) *Register {
	return &Register{
		Name:     name,
		Aliases:  aliases,
		Class:    class,
		Reserved: true,
		Predicate: func(TargetConfig) error {
			return fmt.Errorf("%s", message)
		},
	}
}

func NewStackPointerRegister(
	class *RegisterClass,
	message string,
	name string,
	aliases ...string,
) *Register {
	register := NewReservedRegister(class, message, name, aliases...)
	register.IsStackPointer = true
	return register
}

func (register *Register) String() string {
	return register.Name
}

// Names returns the canonical name followed by all aliases.
func (register *Register) Names() []string {
	return append([]string{register.Name}, register.Aliases...)
}

// Emit writes the register's assembler name into the asm template.
func (register *Register) Emit(out io.Writer) error {
	_, err := io.WriteString(out, register.Name)
	return err
}

// IsAvailable evaluates the register's predicate against the target config.
// The result is never cached since the target config varies per compilation.
func (register *Register) IsAvailable(config TargetConfig) error {
	err := register.Predicate(config)
	if err == nil {
		if register.Reserved {
			panic("reserved register is available: " + register.Name)
		}
		return nil
	}

	return &UnavailableError{
		Register: register,
		Reason:   err.Error(),
	}
}

// Assumptions:
//
// 1. Every register belongs to exactly one class.
//
// 2. Reserved registers never show up in RegistersOf / Available and are only
// reachable via Lookup, in order to emit a diagnostic.
//
// 3. Each architecture has at most one stack pointer register, and the stack
// pointer is always reserved.
//
// 4. The catalogue is immutable after construction and is safe for concurrent
// use.
type RegisterCatalogue struct {
	Architecture string

	StackPointer *Register

	Classes []*RegisterClass

	// All registers (including reserved registers) in declaration order.
	Registers []*Register

	classes  map[string]*RegisterClass
	names    map[string]*Register
	members  map[*RegisterClass][]*Register
	reserved []*Register
}

func NewRegisterCatalogue(
	architecture string,
	classes []*RegisterClass,
	registers ...*Register,
) *RegisterCatalogue {
	catalogue := &RegisterCatalogue{
		Architecture: architecture,
		Classes:      classes,
		classes:      map[string]*RegisterClass{},
		names:        map[string]*Register{},
		members:      map[*RegisterClass][]*Register{},
	}

	for _, class := range classes {
		if class.Name == "" {
			panic("no register class name")
		}

		_, ok := catalogue.classes[class.Name]
		if ok {
			panic("added duplicate register class: " + class.Name)
		}
		catalogue.classes[class.Name] = class
		catalogue.members[class] = nil
	}

	for _, register := range registers {
		catalogue.add(register)
	}

	return catalogue
}

func (catalogue *RegisterCatalogue) add(register *Register) {
	if register.Name == "" {
		panic("no register name")
	}

	if register.Class == nil {
		panic("register has no class: " + register.Name)
	}

	_, ok := catalogue.members[register.Class]
	if !ok {
		panic("register (" + register.Name + ") has unknown class: " +
			register.Class.Name)
	}

	if register.Predicate == nil {
		panic("register has no predicate: " + register.Name)
	}

	for _, name := range register.Names() {
		_, ok := catalogue.names[name]
		if ok {
			panic("added duplicate register: " + name)
		}
		catalogue.names[name] = register
	}

	catalogue.Registers = append(catalogue.Registers, register)

	if register.IsStackPointer {
		if !register.Reserved {
			panic("stack pointer register must be reserved")
		}

		if catalogue.StackPointer != nil {
			panic("multiple stack pointer register specified")
		}
		catalogue.StackPointer = register
	}

	if register.Reserved {
		catalogue.reserved = append(catalogue.reserved, register)
		return
	}

	catalogue.members[register.Class] = append(
		catalogue.members[register.Class],
		register)
}

func (catalogue *RegisterCatalogue) Class(name string) (*RegisterClass, bool) {
	class, ok := catalogue.classes[name]
	return class, ok
}

// RegistersOf returns the class's selectable (non-reserved) registers in
// declaration order.
func (catalogue *RegisterCatalogue) RegistersOf(
	class *RegisterClass,
) []*Register {
	return catalogue.members[class]
}

func (catalogue *RegisterCatalogue) Reserved() []*Register {
	return catalogue.reserved
}

// Lookup resolves a register name or alias to the register's canonical
// identity.
func (catalogue *RegisterCatalogue) Lookup(name string) (*Register, bool) {
	register, ok := catalogue.names[name]
	return register, ok
}

// Available returns the class's registers usable under the target config.
func (catalogue *RegisterCatalogue) Available(
	class *RegisterClass,
	config TargetConfig,
) []*Register {
	result := []*Register{}
	for _, register := range catalogue.members[class] {
		if register.IsAvailable(config) == nil {
			result = append(result, register)
		}
	}
	return result
}
