// Package linediff provides domain types for computing, serializing and
// applying line-based diffs.
package linediff

import "strings"

// Diff represents the changes between two line sequences in unified-diff
// form: a pair of file labels plus an ordered list of hunks.
type Diff struct {
	OldLabel string // "--- <label>" header, e.g. "a/file.go"
	NewLabel string // "+++ <label>" header, e.g. "b/file.go"
	Hunks    []Hunk
}

// Hunk represents a contiguous block of changes plus surrounding context.
// Starts and counts follow the unified-diff convention: 1-based line
// numbers, with a zero count signalling an empty side (the start then names
// the line before the change, 0 at the beginning of the file).
type Hunk struct {
	OldStart int // From @@ -X,...
	OldCount int // From @@ -X,Y ...
	NewStart int // From @@ ...,+X
	NewCount int // From @@ ...,+X,Y
	Ops      []Op
}

// Op is a single edit operation on one line.
type Op struct {
	Kind     OpKind
	OldIndex int // 0-based index into the old sequence, -1 for inserts
	NewIndex int // 0-based index into the new sequence, -1 for deletes
	Content  string
}

// OpKind classifies an edit operation.
type OpKind int

// Edit operation kinds.
const (
	OpEqual OpKind = iota
	OpDelete
	OpInsert
)

// String returns the unified-diff line prefix for the kind.
func (k OpKind) String() string {
	switch k {
	case OpDelete:
		return "-"
	case OpInsert:
		return "+"
	default:
		return " "
	}
}

// Stats aggregates op counts across an entire diff.
type Stats struct {
	Additions int
	Deletions int
	Unchanged int
}

// Stats counts Insert ops as additions, Delete ops as deletions and Equal
// ops as unchanged, across all hunks.
func (d *Diff) Stats() Stats {
	var s Stats
	for _, h := range d.Hunks {
		for _, op := range h.Ops {
			switch op.Kind {
			case OpInsert:
				s.Additions++
			case OpDelete:
				s.Deletions++
			default:
				s.Unchanged++
			}
		}
	}
	return s
}

// SplitLines splits text on newlines, dropping the trailing empty element a
// final newline produces. This pairs with JoinLines, which terminates every
// line:
//   - "a\nb\n" -> ["a", "b"]
//   - "a\nb"   -> ["a", "b"]
//   - ""       -> []
func SplitLines(text string) []string {
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// JoinLines is the inverse of SplitLines: every line gets a trailing
// newline, and an empty sequence yields the empty string.
func JoinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
