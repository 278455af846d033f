// Package output renders a resolver Assignment or FailedRequirement to
// the wire shapes from spec.md §6: a stable JSON document for scripting
// consumers, or a short human-readable tree for the CLI. Grounded on the
// teacher's manifest.go, which reaches for encoding/json with explicit
// struct tags whenever it needs a stable, versioned wire format rather
// than ad hoc string formatting.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/scztt/baryon/resolve"
)

// requiredByEntry is one {name, spec} pair in a selection's chain.
type requiredByEntry struct {
	Name string `json:"name"`
	Spec string `json:"spec"`
}

// selectionDoc is the JSON shape of one Assignment entry.
type selectionDoc struct {
	Version    string            `json:"version"`
	RequiredBy []requiredByEntry `json:"required_by"`
}

// diagnosticDoc is the JSON shape of one FailedRequirement.Diagnostics
// entry.
type diagnosticDoc struct {
	Name            string  `json:"name"`
	SelectedVersion *string `json:"selected_version,omitempty"`
	FailingSpec     string  `json:"failing_spec"`
}

// failureDoc is the JSON shape of a FailedRequirement.
type failureDoc struct {
	PackageName string          `json:"package_name"`
	Reason      string          `json:"reason"`
	Diagnostics []diagnosticDoc `json:"diagnostics"`
}

func assignmentDoc(a resolve.Assignment) map[string]selectionDoc {
	doc := make(map[string]selectionDoc, len(a))
	for name, sel := range a {
		chain := make([]requiredByEntry, len(sel.RequiredBy))
		for i, r := range sel.RequiredBy {
			chain[i] = requiredByEntry{Name: r.Name, Spec: r.Spec}
		}
		doc[name] = selectionDoc{Version: sel.Version.String(), RequiredBy: chain}
	}
	return doc
}

func failureDocOf(f *resolve.FailedRequirement) failureDoc {
	diags := make([]diagnosticDoc, len(f.Diagnostics))
	for i, d := range f.Diagnostics {
		dd := diagnosticDoc{Name: d.Name, FailingSpec: d.FailingSpec}
		if d.SelectedVersion != nil {
			v := d.SelectedVersion.String()
			dd.SelectedVersion = &v
		}
		diags[i] = dd
	}
	return failureDoc{
		PackageName: f.PackageName,
		Reason:      string(f.Reason),
		Diagnostics: diags,
	}
}

// JSON renders a or f (exactly one should be non-nil/non-empty) to w as
// the stable wire document from spec.md §6.
func JSON(w io.Writer, a resolve.Assignment, f *resolve.FailedRequirement) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if f != nil {
		return enc.Encode(failureDocOf(f))
	}
	return enc.Encode(assignmentDoc(a))
}

// Text renders a short human-readable tree: one line per selected
// package, sorted by name, followed by its required-by chain if any.
// On failure it renders the package name, reason, and each diagnostic.
func Text(w io.Writer, a resolve.Assignment, f *resolve.FailedRequirement) error {
	if f != nil {
		fmt.Fprintf(w, "FAILED: %s (%s)\n", f.PackageName, f.Reason)
		for _, d := range f.Diagnostics {
			if d.SelectedVersion != nil {
				fmt.Fprintf(w, "  %s: selected %s, but %s required\n", d.Name, d.SelectedVersion, d.FailingSpec)
			} else {
				fmt.Fprintf(w, "  %s: no version satisfies %s\n", d.Name, d.FailingSpec)
			}
		}
		return nil
	}

	names := make([]string, 0, len(a))
	for name := range a {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		sel := a[name]
		fmt.Fprintf(w, "%s@%s\n", name, sel.Version)
		for _, p := range sel.RequiredBy {
			fmt.Fprintf(w, "  via %s %s\n", p.Name, p.Spec)
		}
	}
	return nil
}
