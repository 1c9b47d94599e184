// Package gitdiff adapts git-produced patches to the linediff domain types
// using the bluekeyes/go-gitdiff parser.
package gitdiff

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"

	"github.com/fwojciec/linediff"
)

// Errors returned by Parse.
var (
	ErrEmptyPatch    = errors.New("gitdiff: patch contains no files")
	ErrMultipleFiles = errors.New("gitdiff: patch contains more than one file")
	ErrBinaryPatch   = errors.New("gitdiff: binary patches are not supported")
)

// Parser parses a single-file git patch into a linediff.Diff.
type Parser struct{}

// NewParser returns a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

var _ linediff.Parser = (*Parser)(nil)

// Parse reads a git-style patch ("diff --git" headers, /dev/null markers)
// and converts its single file to the domain model. Patches with zero or
// multiple files and binary patches are rejected.
func (p *Parser) Parse(r io.Reader) (*linediff.Diff, error) {
	files, _, err := gitdiff.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing git patch: %w", err)
	}
	if len(files) == 0 {
		return nil, ErrEmptyPatch
	}
	if len(files) > 1 {
		return nil, ErrMultipleFiles
	}

	f := files[0]
	if f.IsBinary {
		return nil, ErrBinaryPatch
	}

	d := &linediff.Diff{
		OldLabel: label(f.OldName),
		NewLabel: label(f.NewName),
	}
	for _, frag := range f.TextFragments {
		d.Hunks = append(d.Hunks, convertFragment(frag))
	}
	return d, nil
}

func label(name string) string {
	if name == "" {
		return "/dev/null"
	}
	return name
}

func convertFragment(frag *gitdiff.TextFragment) linediff.Hunk {
	h := linediff.Hunk{
		OldStart: int(frag.OldPosition),
		OldCount: int(frag.OldLines),
		NewStart: int(frag.NewPosition),
		NewCount: int(frag.NewLines),
	}

	oi := h.OldStart - 1
	if h.OldCount == 0 {
		oi = h.OldStart
	}
	ni := h.NewStart - 1
	if h.NewCount == 0 {
		ni = h.NewStart
	}

	for _, l := range frag.Lines {
		content := strings.TrimSuffix(l.Line, "\n")
		switch l.Op {
		case gitdiff.OpContext:
			h.Ops = append(h.Ops, linediff.Op{Kind: linediff.OpEqual, OldIndex: oi, NewIndex: ni, Content: content})
			oi++
			ni++
		case gitdiff.OpDelete:
			h.Ops = append(h.Ops, linediff.Op{Kind: linediff.OpDelete, OldIndex: oi, NewIndex: -1, Content: content})
			oi++
		case gitdiff.OpAdd:
			h.Ops = append(h.Ops, linediff.Op{Kind: linediff.OpInsert, OldIndex: -1, NewIndex: ni, Content: content})
			ni++
		}
	}
	return h
}
