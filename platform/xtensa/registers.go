package xtensa

import (
	"github.com/pattyshack/sandpiper/architecture"
	"github.com/pattyshack/sandpiper/platform"
)

var (
	Reg = architecture.NewRegisterClass(
		"reg",
		architecture.I8Type,
		architecture.I16Type,
		architecture.I32Type)
	Freg = architecture.NewRegisterClass("freg", architecture.F32Type)
	Breg = architecture.NewRegisterClass(
		"breg",
		architecture.I8Type,
		architecture.I16Type,
		architecture.I32Type)

	a0 = architecture.NewReservedRegister(
		Reg,
		"a0 is used internally by the code generator and cannot be used as an "+
			"operand for inline asm",
		"a0")
	sp = architecture.NewStackPointerRegister(
		Reg,
		"sp is used internally by the code generator and cannot be used as an "+
			"operand for inline asm",
		"sp",
		"a1")

	a2  = architecture.NewRegister(Reg, nil, "a2")
	a3  = architecture.NewRegister(Reg, nil, "a3")
	a4  = architecture.NewRegister(Reg, nil, "a4")
	a5  = architecture.NewRegister(Reg, nil, "a5")
	a6  = architecture.NewRegister(Reg, nil, "a6")
	a7  = architecture.NewRegister(Reg, framePointerA7, "a7")
	a8  = architecture.NewRegister(Reg, nil, "a8")
	a9  = architecture.NewRegister(Reg, nil, "a9")
	a10 = architecture.NewRegister(Reg, nil, "a10")
	a11 = architecture.NewRegister(Reg, nil, "a11")
	a12 = architecture.NewRegister(Reg, nil, "a12")
	a13 = architecture.NewRegister(Reg, nil, "a13")
	a14 = architecture.NewRegister(Reg, nil, "a14")
	a15 = architecture.NewRegister(Reg, framePointerA15, "a15")

	InlineAsmRegisters = newInlineAsmRegisters()
)

// Special registers are bound through the general register class.  Each is
// gated by the option that introduces it.
var specialRegisters = []struct {
	name      string
	predicate architecture.Predicate
}{
	{"lbeg", requires(loopFeature)},
	{"lend", requires(loopFeature)},
	{"lcount", requires(loopFeature)},
	{"sar", architecture.Always},
	{"br", requires(boolFeature)},
	{"litbase", requires(extendedL32RFeature)},
	{"scompare1", requires(s32c1iFeature)},
	{"acclo", requires(mac16Feature)},
	{"acchi", requires(mac16Feature)},
	{"m0", requires(mac16Feature)},
	{"m1", requires(mac16Feature)},
	{"m2", requires(mac16Feature)},
	{"m3", requires(mac16Feature)},
	{"windowbase", requires(windowedFeature)},
	{"windowstart", requires(windowedFeature)},
	{"ibreakenable", requires(debugFeature)},
	{"memctl", requires(memctlFeature)},
	{"atomctl", requires(atomctlFeature)},
	{"ddr", requires(debugFeature)},
	{"ibreaka0", requires(debugFeature)},
	{"ibreaka1", requires(debugFeature)},
	{"dbreaka0", requires(debugFeature)},
	{"dbreaka1", requires(debugFeature)},
	{"dbreakc0", requires(debugFeature)},
	{"dbreakc1", requires(debugFeature)},
	{"configid0", architecture.Always},
	{"epc1", requires(exceptionFeature)},
	{"epc2", requires(highPriInterruptsFeature)},
	{"epc3", requires(highPriInterruptsFeature)},
	{"epc4", requires(highPriInterruptsFeature)},
	{"epc5", requires(highPriInterruptsFeature)},
	{"epc6", requires(highPriInterruptsFeature)},
	{"epc7", requires(highPriInterruptsFeature)},
	{"depc", requires(exceptionFeature)},
	{"eps2", requires(highPriInterruptsFeature)},
	{"eps3", requires(highPriInterruptsFeature)},
	{"eps4", requires(highPriInterruptsFeature)},
	{"eps5", requires(highPriInterruptsFeature)},
	{"eps6", requires(highPriInterruptsFeature)},
	{"eps7", requires(highPriInterruptsFeature)},
	{"configid1", architecture.Always},
	{"excsave1", requires(exceptionFeature)},
	{"excsave2", requires(highPriInterruptsFeature)},
	{"excsave3", requires(highPriInterruptsFeature)},
	{"excsave4", requires(highPriInterruptsFeature)},
	{"excsave5", requires(highPriInterruptsFeature)},
	{"excsave6", requires(highPriInterruptsFeature)},
	{"excsave7", requires(highPriInterruptsFeature)},
	{"cpenable", requires(coprocessorFeature)},
	{"interrupt", requires(interruptFeature)},
	{"intclear", requires(interruptFeature)},
	{"intenable", requires(interruptFeature)},
	{"ps", architecture.Always},
	{"vecbase", requires(relocatableVectorFeature)},
	{"exccause", requires(exceptionFeature)},
	{"debugcause", requires(debugFeature)},
	{"ccount", requires(timerIntFeature)},
	{"prid", requires(pridFeature)},
	{"icount", requires(debugFeature)},
	{"icountlevel", requires(debugFeature)},
	{"excvaddr", requires(exceptionFeature)},
	{"ccompare0", requires(timerIntFeature)},
	{"ccompare1", requires(timerIntFeature)},
	{"ccompare2", requires(timerIntFeature)},
	{"misc0", requires(miscSRFeature)},
	{"misc1", requires(miscSRFeature)},
	{"misc2", requires(miscSRFeature)},
	{"misc3", requires(miscSRFeature)},
	{"gpio_out", newCpuPredicate(esp32s2Cpu, "gpio_out")},
	{"expstate", newCpuPredicate(esp32s3Cpu, "expstate")},
	{"threadptr", requires(threadPtrFeature)},
	{"fcr", requires(fpFeature)},
	{"fsr", requires(fpFeature)},
	{"f64r_lo", requires(dfpAccelFeature)},
	{"f64r_hi", requires(dfpAccelFeature)},
	{"f64s", requires(dfpAccelFeature)},
}

var floatRegisterNames = []string{
	"f0", "f1", "f2", "f3", "f4", "f5", "f6", "f7",
	"f8", "f9", "f10", "f11", "f12", "f13", "f14", "f15",
}

var booleanRegisterNames = []string{
	"b0", "b1", "b2", "b3", "b4", "b5", "b6", "b7",
	"b8", "b9", "b10", "b11", "b12", "b13", "b14", "b15",
}

func newInlineAsmRegisters() *architecture.RegisterCatalogue {
	registers := []*architecture.Register{
		a0, sp, a2, a3, a4, a5, a6, a7,
		a8, a9, a10, a11, a12, a13, a14, a15,
	}

	for _, special := range specialRegisters {
		registers = append(
			registers,
			architecture.NewRegister(Reg, special.predicate, special.name))
	}

	for _, name := range floatRegisterNames {
		registers = append(
			registers,
			architecture.NewRegister(Freg, requires(fpFeature), name))
	}

	for _, name := range booleanRegisterNames {
		registers = append(
			registers,
			architecture.NewRegister(Breg, requires(boolFeature), name))
	}

	return architecture.NewRegisterCatalogue(
		string(platform.Xtensa),
		[]*architecture.RegisterClass{Reg, Freg, Breg},
		registers...)
}
