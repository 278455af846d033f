package semver

import (
	"strings"

	mmsemver "github.com/Masterminds/semver/v3"
	"github.com/pkg/errors"
)

// ErrInvalidRequirement is wrapped around the original parse error and
// the offending text whenever a requirement spec fails to parse.
var ErrInvalidRequirement = errors.New("invalid requirement")

// Requirement is a named constraint on a package's version, carrying the
// chain of requirements that introduced it. RequiredBy is an ordered
// chain from the top-level requirement down to the immediate parent;
// its last element is the immediate parent, and an empty chain means
// this requirement is itself top-level.
//
// Requirements are value-like: RequiredBy is cloned (not shared) on
// every append, so a Requirement can be freely copied without aliasing
// another requirement's ancestry. Equality for index/lookup purposes is
// by Name only.
type Requirement struct {
	Name       string
	Spec       string
	RequiredBy []Requirement

	constraint *mmsemver.Constraints
}

// NewRequirement parses spec as a SemVer range expression (e.g. "^1.2",
// ">=1,<2", "=1.0.0") for the named package. The returned Requirement is
// top-level (RequiredBy is empty); use WithParent to extend the chain.
func NewRequirement(name, spec string) (Requirement, error) {
	c, err := mmsemver.NewConstraint(spec)
	if err != nil {
		return Requirement{}, errors.Wrapf(ErrInvalidRequirement, "%s %q: %s", name, spec, err)
	}
	return Requirement{Name: name, Spec: spec, constraint: c}, nil
}

// MustNewRequirement is NewRequirement, panicking on error.
func MustNewRequirement(name, spec string) Requirement {
	r, err := NewRequirement(name, spec)
	if err != nil {
		panic(err)
	}
	return r
}

// WithParent returns a copy of r whose RequiredBy chain is parent's
// chain with parent appended. The receiver and parent are unmodified;
// the chain is cloned, not aliased.
func (r Requirement) WithParent(parent Requirement) Requirement {
	chain := make([]Requirement, len(parent.RequiredBy)+1)
	copy(chain, parent.RequiredBy)
	chain[len(chain)-1] = parent
	r.RequiredBy = chain
	return r
}

// Matches reports whether v satisfies r's range expression, including
// SemVer pre-release rules: a pre-release version matches only if the
// range expression explicitly mentions a pre-release at the same
// major.minor.patch.
//
// The wildcard spec "*" is a special case: it imposes no constraint at
// all, including on pre-release status. Masterminds/semver gates
// ordinary ranges so a pre-release only satisfies a range that itself
// mentions a pre-release at the same major.minor.patch, but that
// gate would make "*" unable to ever select a pre-release, leaving
// pre-release avoidance nothing to decide between. Strategy.Filter is
// the one place avoid_prerelease is applied; Matches itself stays
// permissive for the unconstrained case.
func (r Requirement) Matches(v Version) bool {
	if strings.TrimSpace(r.Spec) == "*" {
		return true
	}
	ok, _ := r.constraint.Validate(v.v)
	return ok
}

// Parent returns the immediate parent requirement (the last element of
// RequiredBy), or the zero Requirement and false if r is top-level.
func (r Requirement) Parent() (Requirement, bool) {
	if len(r.RequiredBy) == 0 {
		return Requirement{}, false
	}
	return r.RequiredBy[len(r.RequiredBy)-1], true
}

// IsTopLevel reports whether r was supplied directly by the caller,
// i.e. has an empty RequiredBy chain.
func (r Requirement) IsTopLevel() bool {
	return len(r.RequiredBy) == 0
}
