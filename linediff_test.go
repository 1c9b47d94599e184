package linediff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fwojciec/linediff"
)

func TestSplitLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "trailing newline", in: "a\nb\n", want: []string{"a", "b"}},
		{name: "no trailing newline", in: "a\nb", want: []string{"a", "b"}},
		{name: "empty string", in: "", want: []string{}},
		{name: "single newline", in: "\n", want: []string{""}},
		{name: "blank interior line", in: "a\n\nb\n", want: []string{"a", "", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, linediff.SplitLines(tt.in))
		})
	}
}

func TestJoinLines(t *testing.T) {
	t.Parallel()

	t.Run("terminates every line", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "a\nb\n", linediff.JoinLines([]string{"a", "b"}))
	})

	t.Run("empty sequence yields empty string", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", linediff.JoinLines(nil))
	})

	t.Run("inverse of SplitLines", func(t *testing.T) {
		t.Parallel()
		for _, text := range []string{"", "a\n", "a\nb\n", "a\n\nb\n"} {
			assert.Equal(t, text, linediff.JoinLines(linediff.SplitLines(text)))
		}
	})
}

func TestDiff_Stats(t *testing.T) {
	t.Parallel()

	d := &linediff.Diff{
		Hunks: []linediff.Hunk{
			{
				Ops: []linediff.Op{
					{Kind: linediff.OpEqual, Content: "a"},
					{Kind: linediff.OpDelete, Content: "b"},
					{Kind: linediff.OpInsert, Content: "x"},
					{Kind: linediff.OpEqual, Content: "c"},
				},
			},
			{
				Ops: []linediff.Op{
					{Kind: linediff.OpInsert, Content: "y"},
				},
			},
		},
	}

	s := d.Stats()
	assert.Equal(t, linediff.Stats{Additions: 2, Deletions: 1, Unchanged: 2}, s)

	// Stats cover every op, nothing more.
	total := 0
	for _, h := range d.Hunks {
		total += len(h.Ops)
	}
	assert.Equal(t, total, s.Additions+s.Deletions+s.Unchanged)
}

func TestOpKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, " ", linediff.OpEqual.String())
	assert.Equal(t, "-", linediff.OpDelete.String())
	assert.Equal(t, "+", linediff.OpInsert.String())
}
