package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/openkvlab/bytetrie"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{Retain: bytetrie.DefaultRetain}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}

	return cli.NewCommandAt(&cfg.Main, "bytetrie").
		WithSynopsis("bytetrie [opts] command [opts]").
		WithDescription("bytetrie is a versioned, in-memory key-value shell over a persistent trie.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return bytetrieMain(cfg, cc, args)
		}).
		WithSubs(
			ShellCommand(cfg),
			RunCommand(cfg))
}

func bytetrieMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func ShellCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ShellConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Shell, "shell").
		WithAliases("sh").
		WithSynopsis("shell [-gops]").
		WithDescription("run an interactive session against a fresh store").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return shell(cfg, cc, args)
		})
}

func RunCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &RunConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Run, "run").
		WithAliases("r").
		WithSynopsis("run [files]").
		WithDescription("execute command files against a fresh store (- for stdin)").
		WithRun(func(cc *cli.Context, args []string) error {
			return run(cfg, cc, args)
		})
}
