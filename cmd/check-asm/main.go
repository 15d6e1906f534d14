package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pattyshack/gt/parseutil"

	"github.com/pattyshack/sandpiper/analyzer"
	"github.com/pattyshack/sandpiper/platform"
	"github.com/pattyshack/sandpiper/platform/xtensa"
)

var targetName = flag.String(
	"target",
	"xtensa-esp32-none-elf",
	"builtin target name")

func main() {
	flag.Parse()

	targetPlatform, err := xtensa.NewPlatformByName(*targetName)
	if err != nil {
		fmt.Println("Platform error:", err)
		os.Exit(1)
	}

	fmt.Println("Target:", targetPlatform.Target().Name)
	fmt.Println("Config:", targetPlatform.TargetConfig())

	for _, fileName := range flag.Args() {
		fmt.Println("=====================")
		fmt.Println("File name:", fileName)
		fmt.Println("---------------------")
		file, err := os.Open(fileName)
		if err != nil {
			fmt.Println("Open error:", err)
			continue
		}

		stmts, err := platform.LoadAsmStatements(fileName, file)
		file.Close()
		if err != nil {
			fmt.Println("LoadAsmStatements error:", err)
			continue
		}

		emitter := &parseutil.Emitter{}
		report := analyzer.Analyze(
			&analyzer.Unit{AsmStatements: stmts},
			targetPlatform,
			emitter)

		for idx, stmt := range stmts {
			fmt.Printf("Statement %d (%s):\n", idx, stmt.Name)
			for _, operand := range report.Operands[idx] {
				register := "<allocated>"
				if operand.Register != nil {
					register = operand.Register.Name
				}
				fmt.Printf(
					"  %s -> class %s register %s\n",
					operand.AsmOperand,
					operand.Class.Name,
					register)
			}
		}

		errs := emitter.Errors()
		if len(errs) > 0 {
			fmt.Println("---------------------------")
			fmt.Println("Found", len(errs), "errors:")
			fmt.Println("---------------------------")
			for idx, err := range errs {
				fmt.Printf("error %d: %s\n", idx, err)
			}
		}
	}
}
