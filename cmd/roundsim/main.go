// Command roundsim deals rounds offline against a scripted set of wagers and
// prints what each round would have paid. It never touches a database or a wallet.
package main

import (
	"os"

	"github.com/pterm/pterm"
)

func main() {
	registry := NewRegistry()
	registry.Register(&SimulateCommand{})
	registry.Register(&PayoutTableCommand{})
	registry.Register(&DrawCommand{})

	if len(os.Args) < 2 {
		registry.PrintHelp()
		os.Exit(1)
	}

	cmd, ok := registry.Get(os.Args[1])
	if !ok {
		pterm.Error.Printfln("Unknown command: %s", os.Args[1])
		registry.PrintHelp()
		os.Exit(1)
	}

	if err := cmd.Run(os.Args[2:]); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
}
