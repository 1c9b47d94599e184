package linediff

// Apply replays a diff against an old line sequence to produce the new one.
// Every Equal and Delete op is verified against the corresponding old line
// before anything is emitted for the hunk; a mismatch yields a
// *ConflictError so the caller can re-diff against the current content
// instead of clobbering it. Hunks that overlap or run out of order yield a
// *MalformedDiffError.
func Apply(old []string, d *Diff) ([]string, error) {
	out := make([]string, 0, len(old))
	pos := 0 // lines of old consumed so far

	for _, h := range d.Hunks {
		start := h.OldStart - 1
		if h.OldCount == 0 {
			// A zero-count hunk names the line before the insertion point.
			start = h.OldStart
		}
		if start < pos || start > len(old) {
			return nil, &MalformedDiffError{
				Reason: "hunks overlap or are out of order",
			}
		}
		out = append(out, old[pos:start]...)
		pos = start

		for _, op := range h.Ops {
			switch op.Kind {
			case OpEqual, OpDelete:
				got := ""
				if pos < len(old) {
					got = old[pos]
				}
				if pos >= len(old) || got != op.Content {
					return nil, &ConflictError{OldLine: pos + 1, Want: op.Content, Got: got}
				}
				if op.Kind == OpEqual {
					out = append(out, got)
				}
				pos++
			case OpInsert:
				out = append(out, op.Content)
			}
		}
	}

	out = append(out, old[pos:]...)
	return out, nil
}
