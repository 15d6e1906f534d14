package analyzer

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pattyshack/sandpiper/platform"
)

func AbiString(
	sig platform.Signature,
	abi platform.FuncAbi,
	registerName func(int) string,
	indent string,
) string {
	buffer := &bytes.Buffer{}
	_ = PrintAbi(buffer, sig, abi, registerName, indent)
	return buffer.String()
}

// PrintAbi writes one line per value.  registerName maps register slots to
// register names.
func PrintAbi(
	output io.Writer,
	sig platform.Signature,
	abi platform.FuncAbi,
	registerName func(int) string,
	indent string,
) error {
	printer := &abiPrinter{
		indent:       indent,
		registerName: registerName,
		writer:       output,
	}

	printer.write("%s\n", sig)
	printer.printArg("return", abi.Return)
	for idx, param := range abi.Params {
		printer.printArg(fmt.Sprintf("param %d", idx), param)
	}

	return printer.err
}

type abiPrinter struct {
	indent       string
	registerName func(int) string
	writer       io.Writer
	err          error
}

func (printer *abiPrinter) write(format string, args ...interface{}) {
	if printer.err != nil {
		return
	}

	_, printer.err = fmt.Fprintf(printer.writer, format, args...)
}

func (printer *abiPrinter) printArg(label string, arg platform.ArgAbi) {
	printer.write("%s%s: %s -> %s", printer.indent, label, arg.Layout, arg.Mode)

	if arg.InRegisters() {
		printer.write(" [")
		for idx := 0; idx < arg.PayloadSlots(); idx++ {
			if idx > 0 {
				printer.write(" ")
			}
			printer.write("%s", printer.registerName(arg.FirstSlot+idx))
		}
		printer.write("]")
	} else if arg.Slots > 0 {
		printer.write(" (drained %d register slots)", arg.Slots)
	}

	printer.write("\n")
}
