package lcs

import (
	"github.com/fwojciec/linediff"
)

// myersOps computes the edit script with the Myers O(ND) greedy algorithm.
// It produces a minimal script with the same op semantics as tableOps and is
// used when the quadratic table would be too large. Runs in O((N+M)*D) time
// where D is the size of the minimum edit script.
func myersOps(old, new []string) []linediff.Op {
	n := len(old)
	m := len(new)

	if n == 0 && m == 0 {
		return nil
	}
	if n == 0 {
		ops := make([]linediff.Op, m)
		for j, line := range new {
			ops[j] = linediff.Op{Kind: linediff.OpInsert, OldIndex: -1, NewIndex: j, Content: line}
		}
		return ops
	}
	if m == 0 {
		ops := make([]linediff.Op, n)
		for i, line := range old {
			ops[i] = linediff.Op{Kind: linediff.OpDelete, OldIndex: i, NewIndex: -1, Content: line}
		}
		return ops
	}

	limit := n + m
	size := 2*limit + 1
	v := make([]int, size)

	// trace[d] holds a snapshot of v after processing edit distance d.
	var trace [][]int

	for d := 0; d <= limit; d++ {
		for k := -d; k <= d; k += 2 {
			idx := k + limit
			var x int
			if k == -d || (k != d && v[idx-1] < v[idx+1]) {
				x = v[idx+1] // move down (insert)
			} else {
				x = v[idx-1] + 1 // move right (delete)
			}
			y := x - k

			// Follow the diagonal over equal lines.
			for x < n && y < m && old[x] == new[y] {
				x++
				y++
			}

			v[idx] = x

			if x >= n && y >= m {
				snap := make([]int, size)
				copy(snap, v)
				trace = append(trace, snap)
				return myersBacktrack(trace, old, new, d)
			}
		}

		snap := make([]int, size)
		copy(snap, v)
		trace = append(trace, snap)
	}

	// Unreachable: the d loop always terminates at x>=n, y>=m.
	return nil
}

// myersBacktrack reconstructs the edit script from the trace of v snapshots.
func myersBacktrack(trace [][]int, old, new []string, dFinal int) []linediff.Op {
	n := len(old)
	m := len(new)
	limit := n + m

	x := n
	y := m

	var ops []linediff.Op

	for d := dFinal; d > 0; d-- {
		k := x - y
		idx := k + limit

		vPrev := trace[d-1]

		var prevK int
		if k == -d || (k != d && vPrev[idx-1] < vPrev[idx+1]) {
			prevK = k + 1 // came from an insert (down move)
		} else {
			prevK = k - 1 // came from a delete (right move)
		}

		prevX := vPrev[prevK+limit]
		prevY := prevX - prevK

		// Trace back along the diagonal.
		for x > prevX && y > prevY {
			x--
			y--
			ops = append(ops, linediff.Op{Kind: linediff.OpEqual, OldIndex: x, NewIndex: y, Content: old[x]})
		}

		if k == prevK+1 {
			x--
			ops = append(ops, linediff.Op{Kind: linediff.OpDelete, OldIndex: x, NewIndex: -1, Content: old[x]})
		} else {
			y--
			ops = append(ops, linediff.Op{Kind: linediff.OpInsert, OldIndex: -1, NewIndex: y, Content: new[y]})
		}
	}

	// Remaining diagonal at d=0.
	for x > 0 && y > 0 {
		x--
		y--
		ops = append(ops, linediff.Op{Kind: linediff.OpEqual, OldIndex: x, NewIndex: y, Content: old[x]})
	}

	reverse(ops)
	return ops
}
