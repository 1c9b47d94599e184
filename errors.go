package linediff

import (
	"errors"
	"fmt"
)

// ErrInvalidContext is returned by Compute when contextLines is negative.
var ErrInvalidContext = errors.New("linediff: context lines must be non-negative")

// MalformedDiffError reports diff text that violates the unified-diff
// grammar or whose hunk line counts do not match the hunk body.
type MalformedDiffError struct {
	Line   int // 1-based line in the input, 0 if not tied to a line
	Reason string
}

func (e *MalformedDiffError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("linediff: malformed diff at line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("linediff: malformed diff: %s", e.Reason)
}

// ConflictError reports that a hunk's recorded old-side content no longer
// matches the sequence it is being applied to: the target has drifted since
// the diff was computed.
type ConflictError struct {
	OldLine int    // 1-based line in the old sequence
	Want    string // line recorded in the diff
	Got     string // line found in the old sequence, "" if past the end
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("linediff: conflict at old line %d: recorded %q, found %q", e.OldLine, e.Want, e.Got)
}
