package herbivore

// PreconditionError reports a violated precondition: negative age,
// density, or mass; feeding more than demand; operating on a dead
// herbivore. These are programming errors (spec.md §7) — they must never
// occur on a correctly composed driver, and the run aborts rather than
// trying to recover.
type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string {
	return "herbivore: precondition violated: " + e.Reason
}
