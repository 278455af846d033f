package main

import (
	"flag"
	"io"
)

// command is the per-subcommand contract, modeled directly on the
// teacher's cmd/dep/main.go command interface: a small, explicit
// vtable registered in Config.Run rather than a third-party CLI framework,
// matching what the rest of the pack also does for its own tools
// (rgst-io-stencil and jaredallard-vcs both hand-roll a thin command
// dispatch rather than reaching for cobra).
type command interface {
	Name() string           // "resolve"
	Args() string           // "[flags]"
	ShortHelp() string      // one-line summary for the command list
	LongHelp() string       // full usage text
	Register(*flag.FlagSet) // command-specific flags
	Run(env *environment, args []string) error
}

// environment bundles a command's I/O and working directory, mirroring
// the teacher's dep.Ctx (Out/Err loggers plus working-directory state)
// without dragging in GOPATH-era project discovery, which has no
// equivalent here.
type environment struct {
	Stdout, Stderr io.Writer
	Stdin          io.Reader
	ConfigPath     string
}
