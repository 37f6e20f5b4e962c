package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/canardconfit/gns3-inventory/cmd"
	"github.com/canardconfit/gns3-inventory/internal/exit"
)

func main() {
	root := cmd.NewRootCmd()
	if err := root.Execute(); err != nil {
		exitCode := exit.CodeUsage
		var exitErr *exit.Error
		if errors.As(err, &exitErr) {
			exitCode = exitErr.Code
		}
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(exitCode)
	}
}
