package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/fwojciec/linediff"
	"github.com/fwojciec/linediff/history"
)

// ErrNoChanges is returned by RunDiff when the compared files are
// line-identical.
var ErrNoChanges = errors.New("no changes")

// App wires the command implementations to their collaborators so tests can
// substitute mocks.
type App struct {
	Differ    linediff.Differ
	Formatter linediff.Formatter
	Parser    linediff.Parser // unified-diff patches
	Git       linediff.Parser // git-style patches
	Store     *history.Store  // nil disables history
	Out       io.Writer
	Log       zerolog.Logger
}

// RunDiff computes the diff between two files and prints it in unified
// format, or as a stats summary when statOnly is set.
func (a *App) RunDiff(ctx context.Context, oldPath, newPath string, contextLines int, statOnly bool) error {
	oldBody, err := os.ReadFile(oldPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", oldPath, err)
	}
	newBody, err := os.ReadFile(newPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", newPath, err)
	}

	d, err := a.Differ.Compute(linediff.SplitLines(string(oldBody)), linediff.SplitLines(string(newBody)), contextLines)
	if err != nil {
		return err
	}
	if len(d.Hunks) == 0 {
		return ErrNoChanges
	}
	d.OldLabel = oldPath
	d.NewLabel = newPath

	patch := a.Formatter.Format(d)
	if statOnly {
		s := d.Stats()
		fmt.Fprintf(a.Out, "%s -> %s: +%d -%d (%d unchanged)\n", oldPath, newPath, s.Additions, s.Deletions, s.Unchanged)
	} else {
		fmt.Fprint(a.Out, patch)
	}
	a.record(history.ActionComputed, d, patch)
	return nil
}

// RunApply parses a patch and replays it against the target file. A context
// mismatch surfaces as a *linediff.ConflictError so the caller can re-diff
// instead of clobbering the file. With inPlace the result is written back to
// the target, otherwise it goes to Out.
func (a *App) RunApply(ctx context.Context, patchPath, targetPath string, git, inPlace bool) error {
	parser := a.Parser
	if git {
		parser = a.Git
	}

	pf, err := os.Open(patchPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", patchPath, err)
	}
	d, err := parser.Parse(pf)
	pf.Close()
	if err != nil {
		return err
	}

	targetBody, err := os.ReadFile(targetPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", targetPath, err)
	}

	applied, err := linediff.Apply(linediff.SplitLines(string(targetBody)), d)
	if err != nil {
		var conflict *linediff.ConflictError
		if errors.As(err, &conflict) {
			a.Log.Warn().
				Int("old_line", conflict.OldLine).
				Str("target", targetPath).
				Msg("patch no longer matches target")
			a.record(history.ActionConflicted, d, "")
		}
		return err
	}

	result := linediff.JoinLines(applied)
	if inPlace {
		if err := os.WriteFile(targetPath, []byte(result), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", targetPath, err)
		}
	} else {
		fmt.Fprint(a.Out, result)
	}
	a.record(history.ActionApplied, d, "")
	return nil
}

// RunStat parses the given patches concurrently and prints per-patch and
// aggregate counts.
func (a *App) RunStat(ctx context.Context, patchPaths []string) error {
	results := make([]linediff.Stats, len(patchPaths))

	g, _ := errgroup.WithContext(ctx)
	for i, path := range patchPaths {
		g.Go(func() error {
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("opening %s: %w", path, err)
			}
			defer f.Close()
			d, err := a.Parser.Parse(f)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = d.Stats()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var total linediff.Stats
	for i, path := range patchPaths {
		s := results[i]
		fmt.Fprintf(a.Out, "%s: +%d -%d (%d unchanged)\n", path, s.Additions, s.Deletions, s.Unchanged)
		total.Additions += s.Additions
		total.Deletions += s.Deletions
		total.Unchanged += s.Unchanged
	}
	if len(patchPaths) > 1 {
		fmt.Fprintf(a.Out, "total: +%d -%d (%d unchanged)\n", total.Additions, total.Deletions, total.Unchanged)
	}
	return nil
}

// RunHistory prints the most recent history records, oldest first.
func (a *App) RunHistory(ctx context.Context, limit int) error {
	if a.Store == nil {
		return errors.New("history is disabled")
	}
	records := a.Store.All()
	if limit > 0 && len(records) > limit {
		records = records[len(records)-limit:]
	}
	for _, r := range records {
		fmt.Fprintf(a.Out, "%s  %-10s  %s -> %s  +%d -%d\n",
			r.CreatedAt.Format(time.RFC3339), r.Action, r.OldLabel, r.NewLabel, r.Additions, r.Deletions)
	}
	return nil
}

func (a *App) record(action history.Action, d *linediff.Diff, patch string) {
	if a.Store == nil {
		return
	}
	s := d.Stats()
	_, err := a.Store.Append(history.Record{
		Action:    action,
		OldLabel:  d.OldLabel,
		NewLabel:  d.NewLabel,
		Additions: s.Additions,
		Deletions: s.Deletions,
		Unchanged: s.Unchanged,
		Patch:     patch,
	})
	if err != nil {
		a.Log.Warn().Err(err).Msg("recording history")
	}
}
