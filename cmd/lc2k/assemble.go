package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/archsim/lc2k/asm"
)

var (
	outputFlag = &cli.PathFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "machine-code output file",
		Value:   "output.mc",
	}
	verboseFlag = &cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "log each parsed line and dump the symbol table",
	}
)

var asmCommand = &cli.Command{
	Name:      "asm",
	Usage:     "Assemble a source file into machine code",
	ArgsUsage: "[source.as]",
	Flags: []cli.Flag{
		outputFlag,
		verboseFlag,
	},
	Action: assemble,
}

func assemble(ctx *cli.Context) error {
	source := ctx.Args().First()
	if source == "" {
		source = "input.as"
	}

	in, err := os.Open(source)
	if err != nil {
		return fmt.Errorf("%v: %w", source, err)
	}
	defer in.Close()

	a := &asm.Assembler{Verbose: ctx.Bool(verboseFlag.Name)}
	prog, err := a.Assemble(in)
	if err != nil {
		return fmt.Errorf("%v: %w", source, err)
	}

	// The image is fully encoded before the file is touched; an
	// assembly error never leaves a partial file behind.
	output := ctx.Path(outputFlag.Name)
	if err := os.WriteFile(output, prog.Encode(), 0o644); err != nil {
		return err
	}

	log.Printf("assembled %d words -> %v", len(prog.Words), output)

	return nil
}
