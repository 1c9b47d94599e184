package linediff

// Differ computes the changes between two line sequences.
type Differ interface {
	// Compute derives a minimal edit script between old and new and groups
	// it into hunks with contextLines lines of unchanged context on each
	// side. A negative contextLines is rejected with ErrInvalidContext.
	Compute(old, new []string, contextLines int) (*Diff, error)
}
