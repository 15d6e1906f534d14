package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pattyshack/sandpiper/platform/xtensa"
)

// Prints the inline asm register availability for each of the named builtin
// targets (all builtin targets if none are named).
func main() {
	names := os.Args[1:]
	if len(names) == 0 {
		names = xtensa.Targets().Names()
	}

	for _, name := range names {
		fmt.Println("=====================")
		fmt.Println("Target:", name)
		fmt.Println("---------------------")

		targetPlatform, err := xtensa.NewPlatformByName(name)
		if err != nil {
			fmt.Println("Platform error:", err)
			continue
		}

		config := targetPlatform.TargetConfig()
		catalogue := targetPlatform.InlineAsmRegisters()

		fmt.Println("Config:", config)
		fmt.Println("Frame pointer:", xtensa.FramePointer(config).Name)

		for _, class := range catalogue.Classes {
			available := []string{}
			for _, register := range catalogue.Available(class, config) {
				available = append(available, register.Name)
			}
			fmt.Printf(
				"Class %s (%d available): %s\n",
				class.Name,
				len(available),
				strings.Join(available, " "))
		}

		fmt.Println("Unavailable:")
		for _, register := range catalogue.Registers {
			err := register.IsAvailable(config)
			if err != nil {
				fmt.Printf("  %s: %s\n", register.Name, err)
			}
		}
	}
}
