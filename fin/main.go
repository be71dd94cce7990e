package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/nroux/finledger/cmd"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	for _, c := range cmd.Commands() {
		commander.Register(c, "")
	}

	// Shell completion: exits early when invoked by the completion hook.
	completion().Complete("fin")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	file := predict.Files("*")
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"config":    file,
			"store-dir": predict.Dirs("*"),
			"v":         predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"login":    {Flags: map[string]complete.Predictor{"i": predict.Nothing, "H": predict.Nothing}},
			"import":   {Flags: map[string]complete.Predictor{"a": predict.Nothing}, Args: file},
			"sync":     {Flags: map[string]complete.Predictor{"i": predict.Nothing}},
			"demo":     {Flags: map[string]complete.Predictor{"off": predict.Nothing, "status": predict.Nothing}},
			"summary":  {},
			"daily":    {Flags: map[string]complete.Predictor{"a": predict.Nothing}},
			"monthly":  {Flags: map[string]complete.Predictor{"a": predict.Nothing}},
			"accounts": {},
			"user":     {Flags: map[string]complete.Predictor{"n": predict.Nothing}},
			"publish":  {Flags: map[string]complete.Predictor{"o": predict.Dirs("*"), "p": predict.Set{"daily", "monthly"}}},
		},
	}
}
