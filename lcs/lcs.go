// Package lcs computes line diffs via longest-common-subsequence alignment.
package lcs

import (
	"github.com/fwojciec/linediff"
)

// DefaultMaxTableCells is the largest m*n product the quadratic LCS table is
// built for, roughly two files of two thousand lines each. Larger inputs
// fall back to the Myers O(ND) algorithm.
const DefaultMaxTableCells = 1 << 22

// Differ implements linediff.Differ. The zero value is usable; NewDiffer
// fills in the conventional defaults.
type Differ struct {
	OldLabel      string // label stamped on computed diffs, defaults to "a"
	NewLabel      string // defaults to "b"
	MaxTableCells int    // defaults to DefaultMaxTableCells
}

// NewDiffer returns a Differ with default labels and table ceiling.
func NewDiffer() *Differ {
	return &Differ{OldLabel: "a", NewLabel: "b", MaxTableCells: DefaultMaxTableCells}
}

// Compute derives a minimal edit script between old and new and groups it
// into hunks with contextLines lines of context. Matching lines emit Equal
// ops; within a replacement run deletions are ordered before insertions, so
// the output is deterministic.
func (d *Differ) Compute(old, new []string, contextLines int) (*linediff.Diff, error) {
	if contextLines < 0 {
		return nil, linediff.ErrInvalidContext
	}

	ceiling := d.MaxTableCells
	if ceiling <= 0 {
		ceiling = DefaultMaxTableCells
	}

	var ops []linediff.Op
	if len(old)*len(new) > ceiling {
		ops = myersOps(old, new)
	} else {
		ops = tableOps(old, new)
	}

	oldLabel, newLabel := d.OldLabel, d.NewLabel
	if oldLabel == "" {
		oldLabel = "a"
	}
	if newLabel == "" {
		newLabel = "b"
	}

	return &linediff.Diff{
		OldLabel: oldLabel,
		NewLabel: newLabel,
		Hunks:    groupHunks(ops, contextLines),
	}, nil
}

// tableOps runs the standard dynamic-programming LCS and backtracks the
// table into a forward edit script.
func tableOps(old, new []string) []linediff.Op {
	m, n := len(old), len(new)
	if m == 0 && n == 0 {
		return nil
	}

	// table[i][j] = length of the LCS of old[:i] and new[:j].
	table := make([][]int, m+1)
	for i := range table {
		table[i] = make([]int, n+1)
	}
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			if old[i-1] == new[j-1] {
				table[i][j] = table[i-1][j-1] + 1
			} else {
				table[i][j] = max(table[i-1][j], table[i][j-1])
			}
		}
	}

	// Backtrack from (m,n), emitting ops in reverse. Ties go to Insert
	// here so that after reversal deletions precede insertions within a
	// replacement run, matching what unified diffs emit.
	ops := make([]linediff.Op, 0, m+n)
	i, j := m, n
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && old[i-1] == new[j-1]:
			ops = append(ops, linediff.Op{Kind: linediff.OpEqual, OldIndex: i - 1, NewIndex: j - 1, Content: old[i-1]})
			i--
			j--
		case i > 0 && (j == 0 || table[i-1][j] > table[i][j-1]):
			ops = append(ops, linediff.Op{Kind: linediff.OpDelete, OldIndex: i - 1, NewIndex: -1, Content: old[i-1]})
			i--
		default:
			ops = append(ops, linediff.Op{Kind: linediff.OpInsert, OldIndex: -1, NewIndex: j - 1, Content: new[j-1]})
			j--
		}
	}
	reverse(ops)
	return ops
}

// groupHunks scans for maximal runs of non-Equal ops, extends each by up to
// contextLines Equal ops on either side, and merges runs whose context
// windows would meet (an Equal gap of at most 2*contextLines).
func groupHunks(ops []linediff.Op, contextLines int) []linediff.Hunk {
	n := len(ops)

	// Prefix counts of old-side and new-side lines, so hunk starts can be
	// derived even for hunks that touch only one side.
	oldBefore := make([]int, n+1)
	newBefore := make([]int, n+1)
	for i, op := range ops {
		oldBefore[i+1] = oldBefore[i]
		newBefore[i+1] = newBefore[i]
		if op.Kind != linediff.OpInsert {
			oldBefore[i+1]++
		}
		if op.Kind != linediff.OpDelete {
			newBefore[i+1]++
		}
	}

	var hunks []linediff.Hunk
	i := 0
	for i < n {
		if ops[i].Kind == linediff.OpEqual {
			i++
			continue
		}

		start := i - contextLines
		if start < 0 {
			start = 0
		}

		// Advance past this change run and any small Equal gaps that merge
		// it with the next run.
		last := i
		j := i
		for j < n {
			if ops[j].Kind != linediff.OpEqual {
				last = j
				j++
				continue
			}
			k := j
			for k < n && ops[k].Kind == linediff.OpEqual {
				k++
			}
			if k < n && k-j <= 2*contextLines {
				j = k
				continue
			}
			break
		}

		end := last + contextLines + 1
		if end > n {
			end = n
		}

		h := linediff.Hunk{
			OldCount: oldBefore[end] - oldBefore[start],
			NewCount: newBefore[end] - newBefore[start],
			Ops:      append([]linediff.Op(nil), ops[start:end]...),
		}
		h.OldStart = oldBefore[start] + 1
		if h.OldCount == 0 {
			h.OldStart = oldBefore[start]
		}
		h.NewStart = newBefore[start] + 1
		if h.NewCount == 0 {
			h.NewStart = newBefore[start]
		}
		hunks = append(hunks, h)
		i = end
	}
	return hunks
}

func reverse(ops []linediff.Op) {
	for i, j := 0, len(ops)-1; i < j; i, j = i+1, j-1 {
		ops[i], ops[j] = ops[j], ops[i]
	}
}
