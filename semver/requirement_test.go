package semver

import "testing"

func TestRequirementMatches(t *testing.T) {
	cases := []struct {
		spec    string
		version string
		want    bool
	}{
		{"^1.2", "1.2.0", true},
		{"^1.2", "1.9.9", true},
		{"^1.2", "2.0.0", false},
		{"^1.2", "1.1.9", false},
		{">=1,<2", "1.5.0", true},
		{">=1,<2", "2.0.0", false},
		{"=1.0.0", "1.0.0", true},
		{"=1.0.0", "1.0.1", false},
		{"*", "1.0.0-rc1", true}, // wildcard imposes no constraint, pre-release included
		{"^1.0.0-rc1", "1.0.0-rc2", true},
	}

	for _, c := range cases {
		req := MustNewRequirement("pkg", c.spec)
		v := MustParseVersion(c.version)
		if got := req.Matches(v); got != c.want {
			t.Errorf("Requirement(%q).Matches(%q) = %v, want %v", c.spec, c.version, got, c.want)
		}
	}
}

func TestRequirementInvalidSpec(t *testing.T) {
	_, err := NewRequirement("pkg", "not a range")
	if err == nil {
		t.Fatal("expected error for malformed requirement spec")
	}
}

func TestWithParentClonesChain(t *testing.T) {
	top := MustNewRequirement("a", "^1")
	mid := MustNewRequirement("b", "^1").WithParent(top)
	leaf := MustNewRequirement("c", "^1").WithParent(mid)

	if len(leaf.RequiredBy) != 2 {
		t.Fatalf("expected chain of length 2, got %d", len(leaf.RequiredBy))
	}
	if leaf.RequiredBy[0].Name != "a" || leaf.RequiredBy[1].Name != "b" {
		t.Fatalf("unexpected chain: %+v", leaf.RequiredBy)
	}

	// Mutating the derived requirement's chain must not affect mid's.
	leaf.RequiredBy[0].Name = "mutated"
	if mid.RequiredBy[0].Name != "a" {
		t.Fatalf("parent chain was aliased, not cloned")
	}

	parent, ok := leaf.Parent()
	if !ok || parent.Name != "b" {
		t.Fatalf("Parent() = %+v, %v; want b, true", parent, ok)
	}

	if !top.IsTopLevel() {
		t.Error("top should be top-level")
	}
	if leaf.IsTopLevel() {
		t.Error("leaf should not be top-level")
	}
}
