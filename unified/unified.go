// Package unified serializes and parses the unified-diff text format.
package unified

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/fwojciec/linediff"
)

// rangeRE matches the hunk range line. The comma-count is optional and
// defaults to 1, per the unified-diff convention.
var rangeRE = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@$`)

// Codec converts between linediff.Diff and unified-diff text.
type Codec struct{}

// NewCodec returns a new Codec.
func NewCodec() *Codec {
	return &Codec{}
}

var _ linediff.Parser = (*Codec)(nil)

// Format renders the diff as unified-diff text: two header lines, then per
// hunk a range line followed by one prefixed line per op. A count of
// exactly 1 omits the comma-count, matching what git emits; Parse accepts
// both forms.
func (c *Codec) Format(d *linediff.Diff) string {
	var b strings.Builder
	b.WriteString("--- ")
	b.WriteString(d.OldLabel)
	b.WriteByte('\n')
	b.WriteString("+++ ")
	b.WriteString(d.NewLabel)
	b.WriteByte('\n')

	for _, h := range d.Hunks {
		b.WriteString("@@ -")
		writeRange(&b, h.OldStart, h.OldCount)
		b.WriteString(" +")
		writeRange(&b, h.NewStart, h.NewCount)
		b.WriteString(" @@\n")
		for _, op := range h.Ops {
			b.WriteString(op.Kind.String())
			b.WriteString(op.Content)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func writeRange(b *strings.Builder, start, count int) {
	b.WriteString(strconv.Itoa(start))
	if count != 1 {
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(count))
	}
}

// Parse is the inverse of Format. It fails with *linediff.MalformedDiffError
// when the headers are missing, a range line does not match the grammar, a
// body line carries an unknown prefix, or the declared counts do not match
// the consumed body lines.
func (c *Codec) Parse(r io.Reader) (*linediff.Diff, error) {
	scanner := bufio.NewScanner(r)
	// Grow the buffer beyond the 64KB default so long lines survive.
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lineNum := 0
	next := func() (string, bool) {
		if !scanner.Scan() {
			return "", false
		}
		lineNum++
		return scanner.Text(), true
	}

	line, ok := next()
	if !ok {
		return nil, &linediff.MalformedDiffError{Line: lineNum, Reason: `missing "---" header`}
	}
	oldLabel, ok := strings.CutPrefix(line, "--- ")
	if !ok {
		return nil, &linediff.MalformedDiffError{Line: lineNum, Reason: `expected "---" header`}
	}

	line, ok = next()
	if !ok {
		return nil, &linediff.MalformedDiffError{Line: lineNum, Reason: `missing "+++" header`}
	}
	newLabel, ok := strings.CutPrefix(line, "+++ ")
	if !ok {
		return nil, &linediff.MalformedDiffError{Line: lineNum, Reason: `expected "+++" header`}
	}

	d := &linediff.Diff{OldLabel: oldLabel, NewLabel: newLabel}

	for {
		line, ok = next()
		if !ok {
			break
		}
		m := rangeRE.FindStringSubmatch(line)
		if m == nil {
			return nil, &linediff.MalformedDiffError{Line: lineNum, Reason: fmt.Sprintf("invalid hunk range line %q", line)}
		}

		h := linediff.Hunk{
			OldStart: atoi(m[1]),
			OldCount: atoiDefault(m[2], 1),
			NewStart: atoi(m[3]),
			NewCount: atoiDefault(m[4], 1),
		}

		// The running indices the body lines map onto. A zero count leaves
		// the start pointing at the line before the hunk.
		oi := h.OldStart - 1
		if h.OldCount == 0 {
			oi = h.OldStart
		}
		ni := h.NewStart - 1
		if h.NewCount == 0 {
			ni = h.NewStart
		}

		oldRem, newRem := h.OldCount, h.NewCount
		for oldRem > 0 || newRem > 0 {
			line, ok = next()
			if !ok {
				return nil, &linediff.MalformedDiffError{Line: lineNum, Reason: "hunk body shorter than declared counts"}
			}
			if line == "" {
				return nil, &linediff.MalformedDiffError{Line: lineNum, Reason: "hunk body line without prefix"}
			}
			content := line[1:]
			switch line[0] {
			case ' ':
				if oldRem == 0 || newRem == 0 {
					return nil, &linediff.MalformedDiffError{Line: lineNum, Reason: "hunk body longer than declared counts"}
				}
				h.Ops = append(h.Ops, linediff.Op{Kind: linediff.OpEqual, OldIndex: oi, NewIndex: ni, Content: content})
				oi++
				ni++
				oldRem--
				newRem--
			case '-':
				if oldRem == 0 {
					return nil, &linediff.MalformedDiffError{Line: lineNum, Reason: "hunk body longer than declared counts"}
				}
				h.Ops = append(h.Ops, linediff.Op{Kind: linediff.OpDelete, OldIndex: oi, NewIndex: -1, Content: content})
				oi++
				oldRem--
			case '+':
				if newRem == 0 {
					return nil, &linediff.MalformedDiffError{Line: lineNum, Reason: "hunk body longer than declared counts"}
				}
				h.Ops = append(h.Ops, linediff.Op{Kind: linediff.OpInsert, OldIndex: -1, NewIndex: ni, Content: content})
				ni++
				newRem--
			default:
				return nil, &linediff.MalformedDiffError{Line: lineNum, Reason: fmt.Sprintf("invalid hunk body prefix %q", line[0])}
			}
		}

		d.Hunks = append(d.Hunks, h)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading diff: %w", err)
	}

	return d, nil
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s) // rangeRE guarantees digits
	return n
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	return atoi(s)
}
