package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Store   bool
	Session bool
	Shell   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Store = boolEnv("BYTETRIE_DEBUG_STORE")
	d.Session = boolEnv("BYTETRIE_DEBUG_SESSION")
	d.Shell = boolEnv("BYTETRIE_DEBUG_SHELL")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Store() bool {
	return d.Store
}
func Session() bool {
	return d.Session
}
func Shell() bool {
	return d.Shell
}
