package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/openkvlab/bytetrie/session"
)

func run(cfg *RunConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Run.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	sess := cfg.newSession()
	for _, arg := range args {
		if err := runFile(sess, cc, arg); err != nil {
			return err
		}
	}
	return nil
}

func runFile(sess *session.Session, cc *cli.Context, arg string) error {
	var r io.Reader
	if arg == "-" {
		r = cc.In
	} else {
		f, err := os.Open(arg)
		if err != nil {
			return fmt.Errorf("error opening %s: %w", arg, err)
		}
		defer f.Close()
		r = f
	}
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		out, err := sess.Exec(scanner.Text())
		if err != nil {
			return fmt.Errorf("%s:%d: %w", arg, lineno, err)
		}
		if out != "" {
			fmt.Fprintln(cc.Out, out)
		}
	}
	return scanner.Err()
}
