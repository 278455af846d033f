// Package resolve implements Baryon's backtracking dependency resolver:
// given a non-empty set of top-level requirements, a Package Index, and
// a Strategy, it produces a consistent Assignment or a FailedRequirement
// describing the conflict that prevented one.
//
// The algorithm is a direct port, in the teacher's idiom, of the
// original Rust prototype's PackageResolver (core::dependencies): a
// work queue of requirements consumed LIFO, a running assignment, a
// stack of choice points recording the remaining untried versions at
// each decision, and a two-sided conflict-parent search that decides
// how far back to rewind when a new requirement contradicts an
// existing selection.
package resolve

import (
	"time"

	"github.com/scztt/baryon/catalog"
	"github.com/scztt/baryon/internal/tracelog"
	"github.com/scztt/baryon/semver"
	"github.com/scztt/baryon/strategy"
)

// errorEntry is one row of the resolver's running diagnostic ledger:
// the version currently selected for a name (if any) and the spec that
// failed to match it.
type errorEntry struct {
	selected    *semver.Version
	failingSpec string
}

// Resolver is a single-use, backtracking constraint solver. A Resolver
// is created per query; it owns its mutable queue, assignment, and
// choice-point stack, and is not safe for concurrent use during
// Resolve. The Index and Strategy it consults are read-only
// collaborators and may safely be shared across multiple Resolver
// instances, concurrently or otherwise.
type Resolver struct {
	index    *catalog.Index
	strategy strategy.Strategy
	logger   *tracelog.Logger

	queue    []semver.Requirement
	selected Assignment
	states   []choicePoint
	errors   map[string]errorEntry
	depth    int

	// startTime is recorded for diagnostics only; nothing in the
	// resolver currently reads it back. It is a hook for a future
	// wall-clock Timeout failure kind, should one be added.
	startTime time.Time
}

// Option configures a Resolver at construction time.
type Option func(*Resolver)

// WithLogger routes trace output to logger. Trace output is otherwise a
// no-op.
func WithLogger(logger *tracelog.Logger) Option {
	return func(r *Resolver) { r.logger = logger }
}

// New creates a Resolver over the given Index and Strategy.
func New(index *catalog.Index, strat strategy.Strategy, opts ...Option) *Resolver {
	r := &Resolver{
		index:    index,
		strategy: strat,
		selected: make(Assignment),
		errors:   make(map[string]errorEntry),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve runs the search to completion. initial must be non-empty;
// each element should be a top-level requirement (empty RequiredBy).
//
// On success, the returned Assignment maps every transitively-required
// package name to the SelectedVersion chosen for it, such that every
// requirement ever enqueued during the search is satisfied by the
// selection under that name. On failure, the returned
// *FailedRequirement identifies the requirement that could not be
// satisfied, along with the resolver's final diagnostic ledger.
func (r *Resolver) Resolve(initial []semver.Requirement) (Assignment, *FailedRequirement) {
	r.startTime = time.Now()
	r.queue = append([]semver.Requirement(nil), initial...)

	for len(r.queue) > 0 {
		req := r.queue[len(r.queue)-1]
		r.queue = r.queue[:len(r.queue)-1]

		if failure := r.step(req); failure != nil {
			return nil, failure
		}
	}

	return r.selected, nil
}

// step processes one popped requirement: Case A if its package is
// already selected, Case B otherwise. It returns a non-nil
// *FailedRequirement only when resolution must stop.
func (r *Resolver) step(req semver.Requirement) *FailedRequirement {
	cur, isSelected := r.selected[req.Name]
	if isSelected {
		return r.stepSelected(req, cur)
	}
	return r.stepUnselected(req)
}

// stepSelected is Case A: req.Name already has a selected version.
func (r *Resolver) stepSelected(req semver.Requirement, cur Selection) *FailedRequirement {
	if req.Matches(cur.Version) {
		delete(r.errors, req.Name)
		return nil
	}

	// Conflict: record the diagnostic before attempting to recover.
	sv := cur.Version
	r.errors[req.Name] = errorEntry{selected: &sv, failingSpec: req.Spec}
	r.logger.Logf("conflict: %s requires %s, but %s is selected\n", req.Name, req.Spec, cur.Version)

	// Decide which sides of find_conflict_parent to search. If the
	// immediate parent of the current requirement still has other
	// possibilities to try, prefer rewinding that branch alone; the
	// parent can simply try something else. Otherwise, also consider
	// stepping back the chain that introduced the existing selection.
	var existingParent *semver.Requirement
	if parent, ok := req.Parent(); ok {
		if state := r.findState(&parent); state == nil || len(state.possibilities) == 0 {
			if ep, ok := lastOf(cur.RequiredBy); ok {
				existingParent = &ep
			}
		}
	} else if ep, ok := lastOf(cur.RequiredBy); ok {
		existingParent = &ep
	}

	parentReq := r.findConflictParent(&req, existingParent)
	if parentReq == nil {
		return &FailedRequirement{
			PackageName: req.Name,
			Reason:      ReasonConflict,
			Diagnostics: r.diagnostics(),
		}
	}

	return r.resolveConflict(*parentReq)
}

// stepUnselected is Case B: req.Name has no selected version yet.
func (r *Resolver) stepUnselected(req semver.Requirement) *FailedRequirement {
	candidates := r.index.VersionsOf(req.Name)
	matching := make([]semver.Version, 0, len(candidates))
	for _, v := range candidates {
		if req.Matches(v) {
			matching = append(matching, v)
		}
	}
	matching = r.strategy.Candidates(matching)

	if len(matching) == 0 {
		r.errors[req.Name] = errorEntry{selected: nil, failingSpec: req.Spec}

		if req.IsTopLevel() {
			return &FailedRequirement{
				PackageName: req.Name,
				Reason:      ReasonNoCandidates,
				Diagnostics: r.diagnostics(),
			}
		}

		parentReq := r.findConflictParent(&req, nil)
		if parentReq == nil {
			return &FailedRequirement{
				PackageName: req.Name,
				Reason:      ReasonNoCandidates,
				Diagnostics: r.diagnostics(),
			}
		}
		return r.resolveConflict(*parentReq)
	}

	chosen := matching[len(matching)-1]
	cp := choicePoint{
		name:               req.Name,
		currentRequirement: req,
		possibilities:      matching[:len(matching)-1],
		requirements:       append([]semver.Requirement(nil), r.queue...),
		selected:           r.selected.clone(),
		depth:              r.depth,
	}

	r.logger.Logf("selecting %s@%s for %s %s\n", req.Name, chosen, req.Name, req.Spec)
	r.selectPackage(chosen, req)
	r.states = append(r.states, cp)
	return nil
}

// selectPackage records req.Name -> chosen in the assignment (with its
// RequiredBy chain extended by req), looks up chosen's dependency
// templates, fills in their RequiredBy the same way, and pushes them
// onto the work queue. Queue order within deps is preserved; since the
// queue is LIFO, the last dependency in the list is explored first.
func (r *Resolver) selectPackage(chosen semver.Version, req semver.Requirement) {
	r.selected[req.Name] = Selection{
		Name:       req.Name,
		Version:    chosen,
		RequiredBy: append(append([]semver.Requirement(nil), req.RequiredBy...), req),
	}

	deps := r.index.DependenciesOf(req.Name, chosen)
	for _, dep := range deps {
		r.queue = append(r.queue, dep.WithParent(req))
	}

	r.depth++
}

// findConflictParent walks two parallel cursors up the RequiredBy
// chains of currentReq and existingReq (existingReq may be nil), one
// level per step, and returns the nearest retryable ancestor it meets: a
// requirement naming a choice point on the states stack whose
// possibilities are still non-empty. At each step it prefers the current
// branch over the existing branch. If neither cursor ever lands on a retryable choice
// point, it returns nil.
func (r *Resolver) findConflictParent(currentReq *semver.Requirement, existingReq *semver.Requirement) *semver.Requirement {
	current := currentReq
	existing := existingReq

	for current != nil || existing != nil {
		if current != nil {
			if state := r.findState(current); state != nil && len(state.possibilities) > 0 {
				return current
			}
		}
		if existing != nil {
			if state := r.findState(existing); state != nil && len(state.possibilities) > 0 {
				return existing
			}
		}

		current = parentOf(current)
		existing = parentOf(existing)
	}

	return nil
}

// findState returns the choice point matching req's package name, or
// nil. Lookup is by name only — at most one choice point per name
// exists on the stack at a time, because rewinding pops it (and
// everything above it) before trying the popped version.
func (r *Resolver) findState(req *semver.Requirement) *choicePoint {
	if req == nil {
		return nil
	}
	for i := range r.states {
		if r.states[i].name == req.Name {
			return &r.states[i]
		}
	}
	return nil
}

// resolveConflict rewinds to the choice point named by parentReq.Name,
// pops its next untried version, restores the queue/assignment/depth
// snapshot it captured, and selects that version instead. If the choice
// point still has possibilities left afterward, it is pushed back onto
// the stack so a later conflict can rewind to it again.
func (r *Resolver) resolveConflict(parentReq semver.Requirement) *FailedRequirement {
	idx := -1
	for i := range r.states {
		if r.states[i].name == parentReq.Name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return &FailedRequirement{
			PackageName: parentReq.Name,
			Reason:      ReasonConflict,
			Diagnostics: r.diagnostics(),
		}
	}

	target := r.states[idx]
	if len(target.possibilities) == 0 {
		return &FailedRequirement{
			PackageName: parentReq.Name,
			Reason:      ReasonConflict,
			Diagnostics: r.diagnostics(),
		}
	}

	next := target.possibilities[len(target.possibilities)-1]
	target.possibilities = target.possibilities[:len(target.possibilities)-1]

	r.restore(&target)
	r.logger.Logf("rewinding %s to try %s\n", target.name, next)
	r.selectPackage(next, target.currentRequirement)

	if len(target.possibilities) > 0 {
		r.states = append(r.states, target)
	}
	return nil
}

// restore pops the choice-point stack down to and including the first
// entry named target.name, then restores the queue, assignment, and
// depth counter from target's snapshot. It panics if target's snapshot
// is a "null state" — both empty — which would indicate the top-level
// requirement itself is unsatisfiable and the resolver's own
// bookkeeping is broken.
func (r *Resolver) restore(target *choicePoint) {
	if target.isNullState() {
		panic(&nullStateError{name: target.name})
	}

	for len(r.states) > 0 {
		popped := r.states[len(r.states)-1]
		r.states = r.states[:len(r.states)-1]
		if popped.name == target.name {
			break
		}
	}

	r.queue = append([]semver.Requirement(nil), target.requirements...)
	r.selected = target.selected.clone()
	r.depth = target.depth
}

// diagnostics snapshots the current error ledger into the serializable
// form used by FailedRequirement.
func (r *Resolver) diagnostics() []Diagnostic {
	out := make([]Diagnostic, 0, len(r.errors))
	for name, e := range r.errors {
		d := Diagnostic{Name: name, FailingSpec: e.failingSpec}
		if e.selected != nil {
			v := *e.selected
			d.SelectedVersion = &v
		}
		out = append(out, d)
	}
	return out
}

func parentOf(req *semver.Requirement) *semver.Requirement {
	if req == nil {
		return nil
	}
	p, ok := req.Parent()
	if !ok {
		return nil
	}
	return &p
}

func lastOf(chain []semver.Requirement) (semver.Requirement, bool) {
	if len(chain) == 0 {
		return semver.Requirement{}, false
	}
	return chain[len(chain)-1], true
}
