package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := cli.NewApp()
	app.Name = "lc2k"
	app.Usage = "LC-2K assembler and simulator"
	app.Commands = []*cli.Command{
		asmCommand,
		runCommand,
		disCommand,
	}

	err := app.RunContext(context.Background(), os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
