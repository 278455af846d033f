package resolve

import (
	"fmt"

	"github.com/scztt/baryon/semver"
)

// FailureReason classifies why a Resolve call failed, per spec
// (reason: one of "no-candidates", "conflict").
type FailureReason string

const (
	// ReasonNoCandidates means the candidate list for some requirement
	// was empty after filtering, and no ancestor choice point could be
	// rewound to try a different path.
	ReasonNoCandidates FailureReason = "no-candidates"

	// ReasonConflict means a selected version contradicted a newly
	// enqueued requirement, and no ancestor choice point could be
	// rewound to try a different path.
	ReasonConflict FailureReason = "conflict"
)

// Diagnostic records one requirement the resolver could not ultimately
// satisfy: the version selected for it at the time (if any), and the
// spec that failed to match.
type Diagnostic struct {
	Name            string
	SelectedVersion *semver.Version
	FailingSpec     string
}

// FailedRequirement is returned when no consistent assignment could be
// found. PackageName identifies the requirement that could not be
// satisfied; Diagnostics is the final contents of the resolver's
// running error ledger, one entry per package name that was in
// conflict at the moment resolution gave up.
type FailedRequirement struct {
	PackageName string
	Reason      FailureReason
	Diagnostics []Diagnostic
}

func (f *FailedRequirement) Error() string {
	return fmt.Sprintf("could not resolve %s (%s)", f.PackageName, f.Reason)
}

// nullStateError is a fatal, unrecoverable invariant violation: the
// resolver tried to restore a choice-point snapshot whose requirements
// and selected assignment were both empty, which should not be
// reachable under correct bookkeeping. It is raised via panic and never
// recovered, mirroring both the teacher's "canary" panics in solver.go
// and the original Rust prototype's own panic!("Null state!").
type nullStateError struct {
	name string
}

func (e *nullStateError) Error() string {
	return fmt.Sprintf("null state restore for %s: internal invariant violation", e.name)
}
