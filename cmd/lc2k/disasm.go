package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/archsim/lc2k/dis"
	"github.com/archsim/lc2k/isa"
)

var disCommand = &cli.Command{
	Name:      "dis",
	Usage:     "Disassemble a machine-code file",
	ArgsUsage: "[program.mc]",
	Action:    disassemble,
}

func disassemble(ctx *cli.Context) error {
	path := ctx.Args().First()
	if path == "" {
		path = "output.mc"
	}

	in, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%v: %w", path, err)
	}
	defer in.Close()

	prog, err := isa.ReadProgram(in)
	if err != nil {
		return fmt.Errorf("%v: %w", path, err)
	}

	return dis.Fprint(os.Stdout, prog)
}
