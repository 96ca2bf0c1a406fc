package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/google/gops/agent"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/openkvlab/bytetrie/debug"
)

func shell(cfg *ShellConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Shell.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: shell takes no arguments", cli.ErrUsage)
	}
	if cfg.Gops {
		// Start gops agent for debugging
		if err := agent.Listen(agent.Options{}); err != nil {
			fmt.Fprintf(cc.Out, "gops agent failed: %v\n", err)
		}
	}
	if cfg.Color {
		color.NoColor = false
	}

	interactive := false
	if f, ok := cc.In.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		interactive = true
	}

	sess := cfg.newSession()
	scanner := bufio.NewScanner(cc.In)
	for {
		if interactive {
			fmt.Fprint(cc.Out, color.CyanString("bytetrie> "))
		}
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if line == "exit" || line == "quit" {
			break
		}
		out, err := sess.Exec(line)
		if debug.Shell() {
			debug.Logf("shell: %q err=%v\n", line, err)
		}
		if err != nil {
			fmt.Fprintln(cc.Out, color.RedString("error: %v", err))
			continue
		}
		if out != "" {
			fmt.Fprintln(cc.Out, out)
		}
	}
	return scanner.Err()
}
