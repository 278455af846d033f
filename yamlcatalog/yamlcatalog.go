// Package yamlcatalog implements catalog.Catalog by decoding a YAML
// fixture document, for tests and local development without a running
// repository server. Grounded on original_source's MockRepository
// (src/mocks/repository.rs), which loads the same package-name-keyed
// document via serde_yaml; here via gopkg.in/yaml.v2, the same YAML
// library the teacher already imports to decode glide manifests
// (cmd/dep/glideConfig.go).
package yamlcatalog

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/scztt/baryon/catalog"
)

// release is the YAML shape of one package release.
type release struct {
	Version      string            `yaml:"version"`
	Dependencies map[string]string `yaml:"dependencies"`
}

// entry is the YAML shape of one package's document, keyed by name at
// the document's top level (mirroring original_source's
// RepositorySpec = HashMap<String, Package>).
type entry struct {
	Releases []release `yaml:"releases"`
}

// document is the top-level shape: package name -> entry.
type document map[string]entry

// Catalog is a catalog.Catalog backed by a parsed YAML document held
// entirely in memory. It is immutable after Load/Parse and safe to
// reuse across multiple Index builds.
type Catalog struct {
	packages []catalog.PackageDesc
}

// Parse decodes a YAML document of the document shape above from r.
func Parse(r io.Reader) (*Catalog, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "yamlcatalog: read")
	}
	return parseBytes(raw)
}

// Load reads and decodes the YAML document at path.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "yamlcatalog: read %s", path)
	}
	return parseBytes(raw)
}

func parseBytes(raw []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrap(err, "yamlcatalog: decode")
	}

	packages := make([]catalog.PackageDesc, 0, len(doc))
	for name, e := range doc {
		releases := make([]catalog.Release, len(e.Releases))
		for i, r := range e.Releases {
			releases[i] = catalog.Release{Version: r.Version, Dependencies: r.Dependencies}
		}
		packages = append(packages, catalog.PackageDesc{Name: name, Releases: releases})
	}

	return &Catalog{packages: packages}, nil
}

// Packages implements catalog.Catalog.
func (c *Catalog) Packages() ([]catalog.PackageDesc, error) {
	return c.packages, nil
}
