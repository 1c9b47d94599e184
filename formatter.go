package linediff

// Formatter renders a diff as text.
type Formatter interface {
	// Format returns the textual representation of the diff.
	Format(d *Diff) string
}
