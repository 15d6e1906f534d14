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

	for _, fileName := range flag.Args() {
		fmt.Println("=====================")
		fmt.Println("File name:", fileName)
		fmt.Println("---------------------")
		file, err := os.Open(fileName)
		if err != nil {
			fmt.Println("Open error:", err)
			continue
		}

		signatures, err := platform.LoadSignatures(fileName, file)
		file.Close()
		if err != nil {
			fmt.Println("LoadSignatures error:", err)
			continue
		}

		emitter := &parseutil.Emitter{}
		report := analyzer.Analyze(
			&analyzer.Unit{Signatures: signatures},
			targetPlatform,
			emitter)

		for idx, sig := range report.Signatures {
			fmt.Printf("Signature %d:\n", idx)
			fmt.Print(
				analyzer.AbiString(
					sig,
					report.Abis[idx],
					xtensa.ArgumentRegisterName,
					"  "))
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
