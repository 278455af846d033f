package main

import (
	"flag"
	"strings"

	"github.com/pkg/errors"

	"github.com/scztt/baryon/catalog"
	"github.com/scztt/baryon/config"
	"github.com/scztt/baryon/output"
	"github.com/scztt/baryon/resolve"
	"github.com/scztt/baryon/semver"
)

// stringSlice is a repeatable flag.Value, lifted from the teacher's own
// -add flag handling in cmd/dep/ensure.go.
type stringSlice []string

func (s *stringSlice) String() string {
	if len(*s) == 0 {
		return "<none>"
	}
	return strings.Join(*s, ", ")
}

func (s *stringSlice) Set(value string) error {
	*s = append(*s, value)
	return nil
}

// resolveCommand runs the backtracking resolver against a set of
// top-level requirements given as repeated -req name=spec flags.
type resolveCommand struct {
	catalogPath     string
	format          string
	conservative    bool
	avoidPrerelease bool
	reqs            stringSlice
}

func (c *resolveCommand) Name() string { return "resolve" }
func (c *resolveCommand) Args() string { return "-req <name>=<spec> [-req ...] [flags]" }
func (c *resolveCommand) ShortHelp() string {
	return "resolve a set of top-level requirements against a catalog"
}
func (c *resolveCommand) LongHelp() string {
	return "resolve takes one or more -req name=spec flags and prints the resulting Assignment, or the FailedRequirement that prevented one."
}

func (c *resolveCommand) Register(fs *flag.FlagSet) {
	fs.StringVar(&c.catalogPath, "catalog", "", "path to a YAML catalog fixture; if empty, uses the HTTP catalog from -config")
	fs.StringVar(&c.format, "format", "text", "output format: text or json")
	fs.BoolVar(&c.conservative, "conservative", true, "prefer the newest compatible version at each choice point")
	fs.BoolVar(&c.avoidPrerelease, "avoid-prerelease", false, "exclude every pre-release version from the candidates")
	fs.Var(&c.reqs, "req", "a top-level requirement, name=spec (repeatable)")
}

func (c *resolveCommand) Run(env *environment, args []string) error {
	requirements, err := parseRequirementFlags(c.reqs)
	if err != nil {
		return err
	}
	if len(requirements) == 0 {
		return errors.New("resolve: at least one -req name=spec is required")
	}

	cat, err := loadCatalog(env.ConfigPath, c.catalogPath)
	if err != nil {
		return err
	}

	idx, err := catalog.NewIndex(cat)
	if err != nil {
		return err
	}

	strat := config.Settings{Conservative: c.conservative, AvoidPrerelease: c.avoidPrerelease}.Strategy()
	r := resolve.New(idx, strat)
	assignment, failed := r.Resolve(requirements)

	return render(env, c.format, assignment, failed)
}

// parseRequirementFlags turns "name=spec" strings into top-level
// semver.Requirement values.
func parseRequirementFlags(reqs []string) ([]semver.Requirement, error) {
	out := make([]semver.Requirement, 0, len(reqs))
	for _, raw := range reqs {
		name, spec, ok := strings.Cut(raw, "=")
		if !ok {
			return nil, errors.Errorf("resolve: malformed -req %q, want name=spec", raw)
		}
		req, err := semver.NewRequirement(name, spec)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, nil
}

// render writes the resolution result in the requested format.
func render(env *environment, format string, a resolve.Assignment, f *resolve.FailedRequirement) error {
	switch format {
	case "json":
		return output.JSON(env.Stdout, a, f)
	case "text", "":
		return output.Text(env.Stdout, a, f)
	default:
		return errors.Errorf("resolve: unknown -format %q, want text or json", format)
	}
}
