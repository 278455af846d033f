package main

import (
	"flag"
	"fmt"
	"sort"
)

// listCommand prints every package name and release version known to a
// catalog, without running the resolver — useful for sanity-checking a
// YAML fixture or a repository endpoint before resolving against it.
type listCommand struct {
	catalogPath string
}

func (c *listCommand) Name() string      { return "list" }
func (c *listCommand) Args() string      { return "[-catalog <path>]" }
func (c *listCommand) ShortHelp() string { return "list every package and release known to a catalog" }
func (c *listCommand) LongHelp() string {
	return "list prints every package name and its known release versions, sorted, without resolving anything."
}

func (c *listCommand) Register(fs *flag.FlagSet) {
	fs.StringVar(&c.catalogPath, "catalog", "", "path to a YAML catalog fixture; if empty, uses the HTTP catalog from -config")
}

func (c *listCommand) Run(env *environment, args []string) error {
	cat, err := loadCatalog(env.ConfigPath, c.catalogPath)
	if err != nil {
		return err
	}

	descs, err := cat.Packages()
	if err != nil {
		return err
	}

	sort.Slice(descs, func(i, j int) bool { return descs[i].Name < descs[j].Name })
	for _, d := range descs {
		versions := make([]string, len(d.Releases))
		for i, r := range d.Releases {
			versions[i] = r.Version
		}
		sort.Strings(versions)
		fmt.Fprintf(env.Stdout, "%s: %s\n", d.Name, versions)
	}
	return nil
}
