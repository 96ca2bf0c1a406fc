package main

import (
	"github.com/scott-cotton/cli"

	"github.com/openkvlab/bytetrie"
	"github.com/openkvlab/bytetrie/session"
)

type MainConfig struct {
	Color  bool `cli:"name=color desc='force colored output'"`
	Retain int  `cli:"name=retain desc='how many versions to keep reachable'"`

	Main *cli.Command
}

func (cfg *MainConfig) newSession() *session.Session {
	return session.New(bytetrie.NewStore(bytetrie.WithRetain(cfg.Retain)))
}

type ShellConfig struct {
	*MainConfig
	Gops bool `cli:"name=gops desc='start a gops diagnostics agent'"`

	Shell *cli.Command
}

type RunConfig struct {
	*MainConfig

	Run *cli.Command
}
