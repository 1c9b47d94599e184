// Package mock provides test doubles for the linediff interfaces.
package mock

import (
	"io"

	"github.com/fwojciec/linediff"
)

var _ linediff.Differ = (*Differ)(nil)

// Differ is a mock implementation of linediff.Differ.
type Differ struct {
	ComputeFn func(old, new []string, contextLines int) (*linediff.Diff, error)
}

// Compute calls ComputeFn.
func (d *Differ) Compute(old, new []string, contextLines int) (*linediff.Diff, error) {
	return d.ComputeFn(old, new, contextLines)
}

var _ linediff.Parser = (*Parser)(nil)

// Parser is a mock implementation of linediff.Parser.
type Parser struct {
	ParseFn func(r io.Reader) (*linediff.Diff, error)
}

// Parse calls ParseFn.
func (p *Parser) Parse(r io.Reader) (*linediff.Diff, error) {
	return p.ParseFn(r)
}

var _ linediff.Formatter = (*Formatter)(nil)

// Formatter is a mock implementation of linediff.Formatter.
type Formatter struct {
	FormatFn func(d *linediff.Diff) string
}

// Format calls FormatFn.
func (f *Formatter) Format(d *linediff.Diff) string {
	return f.FormatFn(d)
}
