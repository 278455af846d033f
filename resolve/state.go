package resolve

import "github.com/scztt/baryon/semver"

// choicePoint is a snapshot taken the moment the resolver picks a
// version for some requirement, enabling a later rewind. Name is used
// as the sole lookup key (findState matches a requirement to a choice
// point only by package name, never by spec) — safe because at most one
// choice point per name exists on the stack at a time; popping on
// rewind restores that invariant.
type choicePoint struct {
	name string

	// currentRequirement is the requirement that drove this choice.
	currentRequirement semver.Requirement

	// possibilities holds the remaining untried versions for
	// currentRequirement, strategy-ordered so the next pick is the last
	// element. pop-on-try guarantees a version is never retried at this
	// choice point.
	possibilities []semver.Version

	// requirements and selected are full copies of the work queue and
	// assignment as they stood immediately before this choice's
	// dependencies were appended / before this package was added.
	requirements []semver.Requirement
	selected     Assignment

	depth int
}

// isNullState reports whether restoring this snapshot would be a fatal
// invariant violation: both the requirements queue and the assignment
// it captured are empty, which can only happen if the very first
// top-level requirement was itself unsatisfiable.
func (c *choicePoint) isNullState() bool {
	return len(c.requirements) == 0 && len(c.selected) == 0
}
