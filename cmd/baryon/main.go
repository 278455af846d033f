// Command baryon resolves a set of semantic-version requirements
// against a package catalog. Its subcommand dispatch is modeled on the
// teacher's cmd/dep/main.go: a small, explicit list of command
// implementations, a -config flag added to each command's flag set, and a usage screen built
// from each command's declared help text.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"
)

func main() {
	c := &Config{
		Args:   os.Args,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Stdin:  os.Stdin,
	}
	os.Exit(c.Run())
}

// Config specifies a full configuration for a baryon execution.
type Config struct {
	Args           []string
	Stdout, Stderr *os.File
	Stdin          *os.File
}

// Run executes a configuration and returns a process exit code.
func (c *Config) Run() (exitCode int) {
	commands := []command{
		&listCommand{},
		&resolveCommand{},
		&resolveRawCommand{},
	}

	errLogger := log.New(c.Stderr, "", 0)

	usage := func() {
		errLogger.Println("baryon resolves semantic-version dependency requirements against a package catalog")
		errLogger.Println()
		errLogger.Println("Usage: baryon <command> [flags]")
		errLogger.Println()
		errLogger.Println("Commands:")
		errLogger.Println()
		w := tabwriter.NewWriter(c.Stderr, 0, 4, 2, ' ', 0)
		for _, cmd := range commands {
			fmt.Fprintf(w, "\t%s\t%s\n", cmd.Name(), cmd.ShortHelp())
		}
		w.Flush()
	}

	cmdName, printCmdHelp, exit := parseArgs(c.Args)
	if exit {
		usage()
		return 1
	}

	for _, cmd := range commands {
		if cmd.Name() != cmdName {
			continue
		}

		fs := flag.NewFlagSet(cmdName, flag.ContinueOnError)
		fs.SetOutput(c.Stderr)
		configPath := fs.String("config", defaultConfigPath(), "path to config.toml")
		cmd.Register(fs)
		resetUsage(errLogger, fs, cmdName, cmd.Args(), cmd.LongHelp())

		if printCmdHelp {
			fs.Usage()
			return 1
		}

		if err := fs.Parse(c.Args[2:]); err != nil {
			return 1
		}

		env := &environment{Stdout: c.Stdout, Stderr: c.Stderr, Stdin: c.Stdin, ConfigPath: *configPath}
		if err := cmd.Run(env, fs.Args()); err != nil {
			errLogger.Printf("%v\n", err)
			return 1
		}
		return 0
	}

	errLogger.Printf("baryon: %s: no such command\n", cmdName)
	usage()
	return 1
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home + "/.baryon/config.toml"
}

func resetUsage(logger *log.Logger, fs *flag.FlagSet, name, args, longHelp string) {
	var (
		hasFlags   bool
		flagBlock  bytes.Buffer
		flagWriter = tabwriter.NewWriter(&flagBlock, 0, 4, 2, ' ', 0)
	)
	fs.VisitAll(func(f *flag.Flag) {
		hasFlags = true
		defValue := f.DefValue
		if defValue == "" {
			defValue = "<none>"
		}
		fmt.Fprintf(flagWriter, "\t-%s\t%s (default: %s)\n", f.Name, f.Usage, defValue)
	})
	flagWriter.Flush()
	fs.Usage = func() {
		logger.Printf("Usage: baryon %s %s\n", name, args)
		logger.Println()
		logger.Println(strings.TrimSpace(longHelp))
		logger.Println()
		if hasFlags {
			logger.Println("Flags:")
			logger.Println()
			logger.Println(flagBlock.String())
		}
	}
}

// parseArgs determines the subcommand name and whether the user asked
// for help, mirroring the teacher's own parseArgs exactly.
func parseArgs(args []string) (cmdName string, printCmdUsage bool, exit bool) {
	isHelpArg := func() bool {
		return strings.Contains(strings.ToLower(args[1]), "help") || strings.ToLower(args[1]) == "-h"
	}

	switch len(args) {
	case 0, 1:
		exit = true
	case 2:
		if isHelpArg() {
			exit = true
		}
		cmdName = args[1]
	default:
		if isHelpArg() {
			cmdName = args[2]
			printCmdUsage = true
		} else {
			cmdName = args[1]
		}
	}
	return cmdName, printCmdUsage, exit
}
