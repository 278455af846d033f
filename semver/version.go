// Package semver provides the version and requirement primitives the
// resolver is built on: SemVer 2.0 parsing and ordering, and requirement
// matching against a version range expression.
package semver

import (
	mmsemver "github.com/Masterminds/semver/v3"
	"github.com/pkg/errors"
)

// Version is a parsed SemVer 2.0 version.
type Version struct {
	v   *mmsemver.Version
	raw string
}

// ErrInvalidVersion is wrapped around the original parse error and the
// offending text whenever a version string fails to parse.
var ErrInvalidVersion = errors.New("invalid version")

// ParseVersion parses a SemVer 2.0 version string. A malformed string
// returns an error wrapping ErrInvalidVersion with the offending text;
// this is a programmer/catalog error and is never retried.
func ParseVersion(raw string) (Version, error) {
	v, err := mmsemver.NewVersion(raw)
	if err != nil {
		return Version{}, errors.Wrapf(ErrInvalidVersion, "%q: %s", raw, err)
	}
	return Version{v: v, raw: raw}, nil
}

// MustParseVersion is ParseVersion, panicking on error. Intended for
// constructing literals in tests and catalog fixtures.
func MustParseVersion(raw string) Version {
	v, err := ParseVersion(raw)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the original, unparsed text of the version.
func (v Version) String() string {
	return v.raw
}

// Prerelease returns the pre-release component, or the empty string for
// a release version.
func (v Version) Prerelease() string {
	if v.v == nil {
		return ""
	}
	return v.v.Prerelease()
}

// IsPrerelease reports whether the version has a non-empty pre-release
// component.
func (v Version) IsPrerelease() bool {
	return v.Prerelease() != ""
}

// Compare returns -1, 0, or 1 as v is less than, equal to, or greater
// than o, following SemVer 2.0 precedence: build metadata is ignored,
// and a pre-release version is ordered before a release of the same
// major.minor.patch.
func (v Version) Compare(o Version) int {
	return v.v.Compare(o.v)
}

// Less reports whether v orders strictly before o.
func (v Version) Less(o Version) bool {
	return v.Compare(o) < 0
}

// Equal reports whether v and o compare equal under SemVer precedence.
func (v Version) Equal(o Version) bool {
	return v.Compare(o) == 0
}
