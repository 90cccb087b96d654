package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/archsim/lc2k/isa"
	"github.com/archsim/lc2k/profile"
	"github.com/archsim/lc2k/sim"
)

var (
	profileFlag = &cli.PathFlag{
		Name:  "profile",
		Usage: "YAML run profile",
	}
	logFlag = &cli.PathFlag{
		Name:  "log",
		Usage: "trace log file",
	}
	quietFlag = &cli.BoolFlag{
		Name:  "quiet",
		Usage: "suppress per-step console output (still logged)",
	}
	limitFlag = &cli.IntFlag{
		Name:  "limit",
		Usage: "step limit",
	}
)

var runCommand = &cli.Command{
	Name:      "run",
	Usage:     "Execute a machine-code file",
	ArgsUsage: "[program.mc]",
	Flags: []cli.Flag{
		profileFlag,
		logFlag,
		quietFlag,
		limitFlag,
	},
	Action: run,
}

func run(ctx *cli.Context) error {
	prof := profile.Default()
	if path := ctx.Path(profileFlag.Name); path != "" {
		var err error
		prof, err = profile.Load(path)
		if err != nil {
			return err
		}
	}
	if ctx.IsSet(logFlag.Name) {
		prof.LogPath = ctx.Path(logFlag.Name)
	}
	if ctx.IsSet(quietFlag.Name) {
		prof.Quiet = ctx.Bool(quietFlag.Name)
	}
	if ctx.IsSet(limitFlag.Name) {
		prof.StepLimit = ctx.Int(limitFlag.Name)
	}

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

	logf, err := os.Create(prof.LogPath)
	if err != nil {
		return err
	}
	defer logf.Close()

	var trace io.Writer = logf
	if !prof.Quiet {
		trace = io.MultiWriter(logf, os.Stdout)
	}

	m, err := sim.NewMachine(prog)
	if err != nil {
		return fmt.Errorf("%v: %w", path, err)
	}
	m.Trace = trace
	m.Limit = prof.StepLimit

	outcome, err := m.Run()
	if err != nil {
		return err
	}
	if outcome != sim.HALTED {
		return fmt.Errorf("run aborted: step limit %d exceeded", m.Limit)
	}

	return nil
}
