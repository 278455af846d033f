package resolve

import "github.com/scztt/baryon/semver"

// Selection is one entry of a successful Assignment: the version chosen
// for a package, and the chain of requirements that led the resolver to
// introduce it.
type Selection struct {
	Name       string
	Version    semver.Version
	RequiredBy []semver.Requirement
}

// Assignment is the resolver's output: every transitively-required
// package name, mapped to the concrete version chosen for it. Iteration
// order is unspecified.
type Assignment map[string]Selection

// clone returns a shallow copy of the assignment map itself (Selection
// values are copied by value; their RequiredBy slices are shared, which
// is safe because choice points never mutate a chain in place — every
// extension allocates a new slice, in semver.Requirement.WithParent and
// in selectPackage).
func (a Assignment) clone() Assignment {
	out := make(Assignment, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}
