package main

import (
	"encoding/json"
	"flag"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/scztt/baryon/catalog"
	"github.com/scztt/baryon/resolve"
	"github.com/scztt/baryon/semver"
	"github.com/scztt/baryon/strategy"
)

// rawRequirement is the JSON shape of one requirement in a resolve-raw
// request document.
type rawRequirement struct {
	Name string `json:"name"`
	Spec string `json:"spec"`
}

// rawStrategy is the JSON shape of the strategy block in a resolve-raw
// request document.
type rawStrategy struct {
	Conservative    bool `json:"conservative"`
	AvoidPrerelease bool `json:"avoid_prerelease"`
}

// rawParameters is the full resolve-raw request document, mirroring
// original_source's cli::commands::list::from_json, which deserializes
// a Parameters value straight off a JSON blob rather than through
// clap's argument parser.
type rawParameters struct {
	Requirements []rawRequirement `json:"requirements"`
	Strategy     rawStrategy      `json:"strategy"`
}

// resolveRawCommand is baryon's scripting entry point: it reads a JSON
// request document from stdin (or -in) describing top-level
// requirements and a strategy, resolves them, and writes the same JSON
// Assignment/FailedRequirement that `resolve -format json` would.
// Supplements spec.md §1's mention of "serialization of request/response
// objects for a raw JSON command mode", which spec.md alludes to but
// never names as a concrete subcommand.
type resolveRawCommand struct {
	catalogPath string
	in          string
}

func (c *resolveRawCommand) Name() string { return "resolve-raw" }
func (c *resolveRawCommand) Args() string { return "[-in <path>] [flags]" }
func (c *resolveRawCommand) ShortHelp() string {
	return "resolve a JSON {requirements, strategy} document read from stdin"
}
func (c *resolveRawCommand) LongHelp() string {
	return "resolve-raw reads a JSON document of the form {\"requirements\":[{\"name\":...,\"spec\":...}],\"strategy\":{\"conservative\":bool,\"avoid_prerelease\":bool}} and prints the resulting Assignment or FailedRequirement as JSON."
}

func (c *resolveRawCommand) Register(fs *flag.FlagSet) {
	fs.StringVar(&c.catalogPath, "catalog", "", "path to a YAML catalog fixture; if empty, uses the HTTP catalog from -config")
	fs.StringVar(&c.in, "in", "", "path to the request document; defaults to stdin")
}

func (c *resolveRawCommand) Run(env *environment, args []string) error {
	params, err := readRawParameters(env, c.in)
	if err != nil {
		return err
	}

	requirements := make([]semver.Requirement, len(params.Requirements))
	for i, rr := range params.Requirements {
		req, err := semver.NewRequirement(rr.Name, rr.Spec)
		if err != nil {
			return err
		}
		requirements[i] = req
	}
	if len(requirements) == 0 {
		return errors.New("resolve-raw: requirements must be non-empty")
	}

	cat, err := loadCatalog(env.ConfigPath, c.catalogPath)
	if err != nil {
		return err
	}
	idx, err := catalog.NewIndex(cat)
	if err != nil {
		return err
	}

	strat := strategy.Strategy{Conservative: params.Strategy.Conservative, AvoidPrerelease: params.Strategy.AvoidPrerelease}
	assignment, failed := resolve.New(idx, strat).Resolve(requirements)
	return render(env, "json", assignment, failed)
}

func readRawParameters(env *environment, path string) (rawParameters, error) {
	var r io.Reader = env.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return rawParameters{}, errors.Wrapf(err, "resolve-raw: open %s", path)
		}
		defer f.Close()
		r = f
	}

	var params rawParameters
	if err := json.NewDecoder(r).Decode(&params); err != nil {
		return rawParameters{}, errors.Wrap(err, "resolve-raw: decode request document")
	}
	return params, nil
}
