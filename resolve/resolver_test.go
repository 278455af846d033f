package resolve

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/scztt/baryon/catalog"
	"github.com/scztt/baryon/semver"
	"github.com/scztt/baryon/strategy"
)

type fixtureCatalog []catalog.PackageDesc

func (c fixtureCatalog) Packages() ([]catalog.PackageDesc, error) { return c, nil }

func deps(pairs ...string) map[string]string {
	m := make(map[string]string, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		m[pairs[i]] = pairs[i+1]
	}
	return m
}

func mustIndex(t *testing.T, descs fixtureCatalog) *catalog.Index {
	t.Helper()
	idx, err := catalog.NewIndex(descs)
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	return idx
}

func names(a Assignment) []string {
	out := make([]string, 0, len(a))
	for n := range a {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Scenario 1: trivial.
func TestResolveTrivial(t *testing.T) {
	idx := mustIndex(t, fixtureCatalog{
		{Name: "A", Releases: []catalog.Release{{Version: "1.0.0"}}},
	})

	r := New(idx, strategy.Default())
	a, failed := r.Resolve([]semver.Requirement{semver.MustNewRequirement("A", "^1")})
	if failed != nil {
		t.Fatalf("unexpected failure: %+v", failed)
	}
	if len(a) != 1 || a["A"].Version.String() != "1.0.0" {
		t.Fatalf("got %+v", a)
	}
}

// Scenario 2: linear dependency.
func TestResolveLinear(t *testing.T) {
	idx := mustIndex(t, fixtureCatalog{
		{Name: "A", Releases: []catalog.Release{{Version: "1.0.0", Dependencies: deps("B", "^1")}}},
		{Name: "B", Releases: []catalog.Release{{Version: "1.0.0"}}},
	})

	r := New(idx, strategy.Default())
	a, failed := r.Resolve([]semver.Requirement{semver.MustNewRequirement("A", "^1")})
	if failed != nil {
		t.Fatalf("unexpected failure: %+v", failed)
	}
	if got := names(a); !cmp.Equal(got, []string{"A", "B"}) {
		t.Fatalf("got %v", got)
	}
	if a["B"].Version.String() != "1.0.0" {
		t.Fatalf("B = %s, want 1.0.0", a["B"].Version)
	}
}

// Scenario 3: backtrack once.
func TestResolveBacktrackOnce(t *testing.T) {
	idx := mustIndex(t, fixtureCatalog{
		{Name: "A", Releases: []catalog.Release{
			{Version: "2.0.0", Dependencies: deps("B", "^2")},
			{Version: "1.0.0", Dependencies: deps("B", "^1")},
		}},
		{Name: "B", Releases: []catalog.Release{{Version: "1.0.0"}}},
	})

	r := New(idx, strategy.Default())
	a, failed := r.Resolve([]semver.Requirement{
		semver.MustNewRequirement("A", "*"),
		semver.MustNewRequirement("B", "^1"),
	})
	if failed != nil {
		t.Fatalf("unexpected failure: %+v", failed)
	}
	if a["A"].Version.String() != "1.0.0" {
		t.Fatalf("A = %s, want 1.0.0 (should have backtracked off 2.0.0)", a["A"].Version)
	}
	if a["B"].Version.String() != "1.0.0" {
		t.Fatalf("B = %s, want 1.0.0", a["B"].Version)
	}
}

// Scenario 4: diamond.
func TestResolveDiamond(t *testing.T) {
	idx := mustIndex(t, fixtureCatalog{
		{Name: "A", Releases: []catalog.Release{{Version: "1.0.0", Dependencies: deps("C", "^1")}}},
		{Name: "B", Releases: []catalog.Release{{Version: "1.0.0", Dependencies: deps("C", "^1")}}},
		{Name: "C", Releases: []catalog.Release{{Version: "1.0.0"}}},
	})

	r := New(idx, strategy.Default())
	a, failed := r.Resolve([]semver.Requirement{
		semver.MustNewRequirement("A", "*"),
		semver.MustNewRequirement("B", "*"),
	})
	if failed != nil {
		t.Fatalf("unexpected failure: %+v", failed)
	}
	if got := names(a); !cmp.Equal(got, []string{"A", "B", "C"}) {
		t.Fatalf("got %v", got)
	}
	if a["C"].Version.String() != "1.0.0" {
		t.Fatalf("C = %s, want 1.0.0", a["C"].Version)
	}
	if len(a["C"].RequiredBy) == 0 {
		t.Fatalf("C should record a non-empty required-by chain")
	}
}

// Scenario 5: unsatisfiable conflict.
func TestResolveUnsatisfiableConflict(t *testing.T) {
	idx := mustIndex(t, fixtureCatalog{
		{Name: "A", Releases: []catalog.Release{{Version: "1.0.0", Dependencies: deps("C", "=1.0.0")}}},
		{Name: "B", Releases: []catalog.Release{{Version: "1.0.0", Dependencies: deps("C", "=2.0.0")}}},
		{Name: "C", Releases: []catalog.Release{{Version: "1.0.0"}, {Version: "2.0.0"}}},
	})

	r := New(idx, strategy.Default())
	_, failed := r.Resolve([]semver.Requirement{
		semver.MustNewRequirement("A", "*"),
		semver.MustNewRequirement("B", "*"),
	})
	if failed == nil {
		t.Fatal("expected failure, got success")
	}
	if failed.Reason != ReasonConflict {
		t.Fatalf("reason = %s, want conflict", failed.Reason)
	}

	var foundC bool
	for _, d := range failed.Diagnostics {
		if d.Name == "C" {
			foundC = true
			if d.SelectedVersion == nil {
				t.Fatal("expected C's diagnostic to carry a selected version")
			}
		}
	}
	if !foundC {
		t.Fatalf("expected diagnostics to mention C, got %+v", failed.Diagnostics)
	}
}

// Scenario 6: pre-release avoidance.
func TestResolvePrereleaseAvoidance(t *testing.T) {
	idx := mustIndex(t, fixtureCatalog{
		{Name: "A", Releases: []catalog.Release{{Version: "1.0.0-rc1"}, {Version: "0.9.0"}}},
	})

	avoid := strategy.Strategy{Conservative: true, AvoidPrerelease: true}
	r := New(idx, avoid)
	a, failed := r.Resolve([]semver.Requirement{semver.MustNewRequirement("A", "*")})
	if failed != nil {
		t.Fatalf("unexpected failure: %+v", failed)
	}
	if a["A"].Version.String() != "0.9.0" {
		t.Fatalf("A = %s, want 0.9.0", a["A"].Version)
	}

	allow := strategy.Strategy{Conservative: true, AvoidPrerelease: false}
	r2 := New(idx, allow)
	a2, failed2 := r2.Resolve([]semver.Requirement{semver.MustNewRequirement("A", "*")})
	if failed2 != nil {
		t.Fatalf("unexpected failure: %+v", failed2)
	}
	if a2["A"].Version.String() != "1.0.0-rc1" {
		t.Fatalf("A = %s, want 1.0.0-rc1", a2["A"].Version)
	}
}

// Soundness: every requirement ever enqueued is satisfied by the final
// assignment for its package.
func TestResolveSoundness(t *testing.T) {
	idx := mustIndex(t, fixtureCatalog{
		{Name: "A", Releases: []catalog.Release{{Version: "1.0.0", Dependencies: deps("B", ">=1,<2")}}},
		{Name: "B", Releases: []catalog.Release{{Version: "1.5.0"}, {Version: "2.0.0"}}},
	})

	r := New(idx, strategy.Default())
	a, failed := r.Resolve([]semver.Requirement{semver.MustNewRequirement("A", "^1")})
	if failed != nil {
		t.Fatalf("unexpected failure: %+v", failed)
	}
	if a["B"].Version.String() != "1.5.0" {
		t.Fatalf("B = %s, want 1.5.0 (2.0.0 violates >=1,<2)", a["B"].Version)
	}
}

// Determinism: resolving the same inputs twice yields the same result.
func TestResolveDeterminism(t *testing.T) {
	idx := mustIndex(t, fixtureCatalog{
		{Name: "A", Releases: []catalog.Release{
			{Version: "2.0.0", Dependencies: deps("B", "^2")},
			{Version: "1.0.0", Dependencies: deps("B", "^1")},
		}},
		{Name: "B", Releases: []catalog.Release{{Version: "1.0.0"}, {Version: "2.0.0"}}},
	})
	reqs := []semver.Requirement{
		semver.MustNewRequirement("A", "*"),
		semver.MustNewRequirement("B", "^1"),
	}

	r1 := New(idx, strategy.Default())
	a1, f1 := r1.Resolve(reqs)
	r2 := New(idx, strategy.Default())
	a2, f2 := r2.Resolve(reqs)

	if f1 != nil || f2 != nil {
		t.Fatalf("unexpected failures: %+v %+v", f1, f2)
	}

	if diff := cmp.Diff(versionStrings(a1), versionStrings(a2)); diff != "" {
		t.Fatalf("non-deterministic result (-run1 +run2):\n%s", diff)
	}
}

func versionStrings(a Assignment) map[string]string {
	out := make(map[string]string, len(a))
	for name, sel := range a {
		out[name] = sel.Version.String()
	}
	return out
}

func TestResolveTopLevelUnsatisfiableFailsImmediately(t *testing.T) {
	idx := mustIndex(t, fixtureCatalog{
		{Name: "A", Releases: []catalog.Release{{Version: "1.0.0"}}},
	})

	r := New(idx, strategy.Default())
	_, failed := r.Resolve([]semver.Requirement{semver.MustNewRequirement("A", "^2")})
	if failed == nil {
		t.Fatal("expected failure")
	}
	if failed.PackageName != "A" || failed.Reason != ReasonNoCandidates {
		t.Fatalf("got %+v", failed)
	}
}
