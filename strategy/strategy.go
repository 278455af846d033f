// Package strategy implements the pure version-filtering and -ordering
// policy the resolver consults each time it needs to pick a candidate
// version for a requirement. It is grounded on the teacher's
// versionQueue (which performs the same filter-then-order step before
// handing a resolver its next candidate) and on the original
// PackageResolver's Strategy type.
package strategy

import (
	"sort"

	"github.com/scztt/baryon/semver"
)

// Strategy is an immutable, reusable configuration for filtering and
// ordering candidate versions. A zero Strategy is non-conservative
// (oldest-first) and allows pre-releases; Default returns the
// conservative (newest-first) configuration.
type Strategy struct {
	// Conservative, when true (the default), prefers newer versions: the
	// version list is sorted so the highest version ends up at the pick
	// position (the tail). When false, the oldest compatible version is
	// preferred instead.
	Conservative bool

	// AvoidPrerelease, when true, drops any version with a non-empty
	// pre-release component before ordering.
	AvoidPrerelease bool
}

// Default returns the strategy's default configuration: conservative
// (newest-first) selection, without avoiding pre-releases.
func Default() Strategy {
	return Strategy{Conservative: true, AvoidPrerelease: false}
}

// Filter drops versions that don't meet the strategy's policy — today,
// just pre-release exclusion when AvoidPrerelease is set. It does not
// mutate its argument.
func (s Strategy) Filter(versions []semver.Version) []semver.Version {
	if !s.AvoidPrerelease {
		out := make([]semver.Version, len(versions))
		copy(out, versions)
		return out
	}

	out := make([]semver.Version, 0, len(versions))
	for _, v := range versions {
		if !v.IsPrerelease() {
			out = append(out, v)
		}
	}
	return out
}

// Sort orders versions so that the most preferred candidate — per
// Conservative — is at the tail of the returned slice. The resolver
// always consumes this list LIFO (popping the tail), so "most
// preferred" and "sorted last" are the same thing.
func (s Strategy) Sort(versions []semver.Version) []semver.Version {
	out := make([]semver.Version, len(versions))
	copy(out, versions)

	if s.Conservative {
		// Ascending order: highest version lands at the tail, tried first.
		sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	} else {
		// Descending order: lowest version lands at the tail, tried first.
		sort.Slice(out, func(i, j int) bool { return out[j].Less(out[i]) })
	}
	return out
}

// Candidates applies Filter then Sort, the order the resolver always
// calls them in.
func (s Strategy) Candidates(versions []semver.Version) []semver.Version {
	return s.Sort(s.Filter(versions))
}
