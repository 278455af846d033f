package semver

import "testing"

func TestParseVersionOrdering(t *testing.T) {
	cases := []struct {
		lo, hi string
	}{
		{"1.0.0", "1.0.1"},
		{"1.0.0", "1.1.0"},
		{"1.0.0", "2.0.0"},
		{"1.0.0-rc1", "1.0.0"},
		{"1.0.0-alpha", "1.0.0-alpha.1"},
		{"1.0.0-alpha.1", "1.0.0-alpha.beta"},
		{"1.0.0-alpha.beta", "1.0.0-beta"},
		{"1.0.0-beta", "1.0.0-beta.2"},
		{"1.0.0-beta.2", "1.0.0-beta.11"},
		{"1.0.0-beta.11", "1.0.0-rc.1"},
	}

	for _, c := range cases {
		lo := MustParseVersion(c.lo)
		hi := MustParseVersion(c.hi)
		if !lo.Less(hi) {
			t.Errorf("expected %s < %s", c.lo, c.hi)
		}
		if hi.Less(lo) {
			t.Errorf("expected %s !< %s", c.hi, c.lo)
		}
	}
}

func TestParseVersionInvalid(t *testing.T) {
	_, err := ParseVersion("not-a-version")
	if err == nil {
		t.Fatal("expected error for malformed version")
	}
}

func TestPrerelease(t *testing.T) {
	v := MustParseVersion("1.0.0-rc1")
	if !v.IsPrerelease() {
		t.Errorf("expected %s to be a pre-release", v)
	}
	if v.Prerelease() != "rc1" {
		t.Errorf("got prerelease %q, want %q", v.Prerelease(), "rc1")
	}

	rel := MustParseVersion("1.0.0")
	if rel.IsPrerelease() {
		t.Errorf("expected %s to not be a pre-release", rel)
	}
}
