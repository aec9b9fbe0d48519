package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/goliatone/go-orderform/cmd/orderform/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		if !errors.Is(err, commands.ErrInvalidOrder) {
			fmt.Fprintln(os.Stderr, "orderform:", err)
		}
		os.Exit(1)
	}
}
