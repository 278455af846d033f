package catalog

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/scztt/baryon/semver"
)

// release holds one parsed version's dependency templates. RequiredBy
// is left empty on every Requirement here; the resolver fills it in as
// each dependency template is enqueued against a specific parent.
type release struct {
	version semver.Version
	deps    []semver.Requirement
}

// Index is an immutable, in-memory lookup from package name to the set
// of known releases and their dependency templates. It is built once
// from a Catalog snapshot and lives for the duration of one resolution;
// multiple Resolver instances may safely share the same Index
// concurrently.
type Index struct {
	packages map[string][]release
}

// NewIndex parses every version and every dependency spec yielded by c.
// A parse failure aborts construction entirely and returns the
// underlying error (wrapping semver.ErrInvalidVersion or
// semver.ErrInvalidRequirement) — malformed catalog data is a fatal,
// non-retryable condition.
func NewIndex(c Catalog) (*Index, error) {
	descs, err := c.Packages()
	if err != nil {
		return nil, errors.Wrap(err, "loading catalog")
	}

	idx := &Index{packages: make(map[string][]release, len(descs))}
	for _, pkg := range descs {
		releases := make([]release, 0, len(pkg.Releases))
		for _, r := range pkg.Releases {
			v, err := semver.ParseVersion(r.Version)
			if err != nil {
				return nil, errors.Wrapf(err, "package %s", pkg.Name)
			}

			deps := make([]semver.Requirement, 0, len(r.Dependencies))
			for depName, spec := range r.Dependencies {
				req, err := semver.NewRequirement(depName, spec)
				if err != nil {
					return nil, errors.Wrapf(err, "package %s@%s", pkg.Name, r.Version)
				}
				deps = append(deps, req)
			}

			releases = append(releases, release{version: v, deps: deps})
		}
		idx.packages[pkg.Name] = releases
	}

	return idx, nil
}

// VersionsOf returns every known version of name. Order is unspecified
// — callers that care about order (the resolver, via a Strategy) sort
// it themselves. An unknown name yields an empty, non-nil-error result:
// "no candidates" is a resolver-level concern, not an Index error.
func (idx *Index) VersionsOf(name string) []semver.Version {
	releases := idx.packages[name]
	out := make([]semver.Version, len(releases))
	for i, r := range releases {
		out[i] = r.version
	}
	return out
}

// DependenciesOf returns the dependency templates declared by the exact
// release (name, version). Every returned Requirement has an empty
// RequiredBy; the caller is responsible for filling it in as the
// dependency is enqueued. An unknown (name, version) pair yields an
// empty result.
func (idx *Index) DependenciesOf(name string, version semver.Version) []semver.Requirement {
	for _, r := range idx.packages[name] {
		if r.version.Equal(version) {
			out := make([]semver.Requirement, len(r.deps))
			copy(out, r.deps)
			return out
		}
	}
	return nil
}

// Names returns every package name known to the index. Order is
// unspecified; intended for diagnostics and tests.
func (idx *Index) Names() []string {
	out := make([]string, 0, len(idx.packages))
	for name := range idx.packages {
		out = append(out, name)
	}
	return out
}

func (idx *Index) String() string {
	return fmt.Sprintf("Index(%d packages)", len(idx.packages))
}
