package unified_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwojciec/linediff"
	"github.com/fwojciec/linediff/lcs"
	"github.com/fwojciec/linediff/unified"
)

func TestCodec_Format(t *testing.T) {
	t.Parallel()

	t.Run("renders headers, range line and prefixed ops", func(t *testing.T) {
		t.Parallel()

		d, err := lcs.NewDiffer().Compute(
			[]string{"a", "b", "c"},
			[]string{"a", "x", "c"},
			1,
		)
		require.NoError(t, err)
		d.OldLabel = "a/f.txt"
		d.NewLabel = "b/f.txt"

		want := `--- a/f.txt
+++ b/f.txt
@@ -1,3 +1,3 @@
 a
-b
+x
 c
`
		assert.Equal(t, want, unified.NewCodec().Format(d))
	})

	t.Run("omits the comma-count when it is one", func(t *testing.T) {
		t.Parallel()

		d, err := lcs.NewDiffer().Compute([]string{"a", "b", "c"}, []string{"a", "x", "c"}, 0)
		require.NoError(t, err)

		want := `--- a
+++ b
@@ -2 +2 @@
-b
+x
`
		assert.Equal(t, want, unified.NewCodec().Format(d))
	})

	t.Run("zero-count old side for insertion into empty file", func(t *testing.T) {
		t.Parallel()

		d, err := lcs.NewDiffer().Compute(nil, []string{"hello"}, 3)
		require.NoError(t, err)

		want := `--- a
+++ b
@@ -0,0 +1 @@
+hello
`
		assert.Equal(t, want, unified.NewCodec().Format(d))
	})

	t.Run("no hunks yields headers only", func(t *testing.T) {
		t.Parallel()

		d := &linediff.Diff{OldLabel: "a", NewLabel: "b"}
		assert.Equal(t, "--- a\n+++ b\n", unified.NewCodec().Format(d))
	})
}

func TestCodec_Parse(t *testing.T) {
	t.Parallel()

	t.Run("round-trips computed diffs", func(t *testing.T) {
		t.Parallel()

		pairs := [][2]string{
			{"a\nb\nc\n", "a\nx\nc\n"},
			{"", "hello\n"},
			{"a\nb\n", ""},
			{"1\n2\n3\n4\n5\n6\n7\n8\n9\n", "1\nx\n3\n4\n5\n6\n7\ny\n9\n"},
		}

		codec := unified.NewCodec()
		for _, pair := range pairs {
			for _, contextLines := range []int{0, 1, 3} {
				d, err := lcs.NewDiffer().Compute(
					linediff.SplitLines(pair[0]),
					linediff.SplitLines(pair[1]),
					contextLines,
				)
				require.NoError(t, err)

				got, err := codec.Parse(strings.NewReader(codec.Format(d)))
				require.NoError(t, err)
				assert.Equal(t, d, got)
			}
		}
	})

	t.Run("accepts explicit count of one", func(t *testing.T) {
		t.Parallel()

		text := "--- a\n+++ b\n@@ -2,1 +2,1 @@\n-b\n+x\n"
		d, err := unified.NewCodec().Parse(strings.NewReader(text))
		require.NoError(t, err)
		require.Len(t, d.Hunks, 1)
		assert.Equal(t, 1, d.Hunks[0].OldCount)
		assert.Equal(t, 1, d.Hunks[0].NewCount)
	})

	t.Run("empty diff parses to zero hunks", func(t *testing.T) {
		t.Parallel()

		d, err := unified.NewCodec().Parse(strings.NewReader("--- a\n+++ b\n"))
		require.NoError(t, err)
		assert.Equal(t, "a", d.OldLabel)
		assert.Equal(t, "b", d.NewLabel)
		assert.Empty(t, d.Hunks)
	})

	t.Run("malformed inputs", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name string
			text string
		}{
			{name: "bad range line", text: "@@ bad @@\n+x"},
			{name: "missing old header", text: "+++ b\n@@ -1 +1 @@\n-a\n+b\n"},
			{name: "missing new header", text: "--- a\n@@ -1 +1 @@\n-a\n+b\n"},
			{name: "range line not matching grammar", text: "--- a\n+++ b\n@@ -x +1 @@\n+a\n"},
			{name: "invalid body prefix", text: "--- a\n+++ b\n@@ -1 +1 @@\n*a\n"},
			{name: "body shorter than declared", text: "--- a\n+++ b\n@@ -1,2 +1,2 @@\n a\n"},
			{name: "declared counts too small", text: "--- a\n+++ b\n@@ -1,0 +1,1 @@\n a\n+b\n"},
			{name: "empty input", text: ""},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				_, err := unified.NewCodec().Parse(strings.NewReader(tt.text))
				var malformed *linediff.MalformedDiffError
				require.ErrorAs(t, err, &malformed, "input %q", tt.text)
			})
		}
	})

	t.Run("reports the offending line number", func(t *testing.T) {
		t.Parallel()

		_, err := unified.NewCodec().Parse(strings.NewReader("--- a\n+++ b\nnot a range line\n"))
		var malformed *linediff.MalformedDiffError
		require.ErrorAs(t, err, &malformed)
		assert.Equal(t, 3, malformed.Line)
	})

	t.Run("parsed diffs apply cleanly", func(t *testing.T) {
		t.Parallel()

		text := `--- old
+++ new
@@ -1,3 +1,3 @@
 keep
-drop
+add
 keep2
`
		d, err := unified.NewCodec().Parse(strings.NewReader(text))
		require.NoError(t, err)

		got, err := linediff.Apply([]string{"keep", "drop", "keep2"}, d)
		require.NoError(t, err)
		assert.Equal(t, []string{"keep", "add", "keep2"}, got)
	})
}
