// Package app orchestrates the full mend pipeline: parse the diff, locate
// every hunk in its target file, and write the results back. The core
// matching engine never touches the filesystem; all I/O lives here.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kvit-s/mend/internal/config"
	"github.com/kvit-s/mend/internal/diff"
	"github.com/kvit-s/mend/internal/parser"
	"github.com/kvit-s/mend/internal/patcher"
	"github.com/kvit-s/mend/internal/ui"
)

// PickFunc resolves an ambiguous hunk to an index into matches. ok=false
// means the user declined and the hunk is skipped.
type PickFunc func(file string, hunkIndex int, lines []string, matches []patcher.HunkMatch) (choice int, ok bool, err error)

// Options controls a single Run.
type Options struct {
	DryRun     bool
	Revert     bool
	CI         bool   // non-interactive: ambiguity and no-match are hard failures
	TargetFile string // apply only changes for this file; also the fallback path for header-less diffs
	Root       string // base directory for target paths; empty means the working directory
}

// App applies parsed patches to files on disk.
type App struct {
	cfg    *config.Config
	writer *ui.Writer
	logger *Logger
	pick   PickFunc
}

// New creates an App. The interactive picker is the default ambiguity
// resolver; tests inject their own PickFunc.
func New(cfg *config.Config, writer *ui.Writer, logger *Logger) *App {
	a := &App{cfg: cfg, writer: writer, logger: logger}
	a.pick = a.interactivePick
	return a
}

// SetPicker replaces the ambiguity resolver.
func (a *App) SetPicker(pick PickFunc) { a.pick = pick }

// Run parses rawDiff and applies it according to opts.
func (a *App) Run(rawDiff string, opts Options) error {
	if strings.TrimSpace(rawDiff) == "" {
		return ErrEmptyDiff
	}

	patch, err := parser.Parse(rawDiff)
	if err != nil {
		return fmt.Errorf("failed to parse the diff: %w", err)
	}

	if opts.Revert {
		patch = patch.Invert()
	}
	if opts.TargetFile != "" {
		if filtered := patch.FilterByTarget(opts.TargetFile); len(filtered.Diffs) > 0 {
			patch = filtered
		} else if len(patch.Diffs) != 1 || patch.Diffs[0].TargetFile() != "" {
			return &NoChangesError{TargetFile: opts.TargetFile}
		}
		// A single header-less diff falls through and applies to the
		// explicitly given target.
	}
	if len(patch.Diffs) == 0 {
		return ErrEmptyDiff
	}

	hunks := 0
	for _, fd := range patch.Diffs {
		hunks += len(fd.Hunks)
	}
	a.logger.PatchParsed(len(patch.Diffs), hunks)

	for i, fd := range patch.Diffs {
		if err := a.applyFileDiff(fd, opts); err != nil {
			a.logger.Error("apply failed", err)
			return fmt.Errorf("diff %d/%d: %w", i+1, len(patch.Diffs), err)
		}
	}
	return nil
}

func (a *App) applyFileDiff(fd *diff.FileDiff, opts Options) error {
	target := fd.TargetFile()
	if target == "" || target == diff.DevNull {
		target = opts.TargetFile
	}
	if target == "" {
		return fmt.Errorf("diff carries no file paths; specify a target file")
	}
	path := target
	if opts.Root != "" {
		path = filepath.Join(opts.Root, target)
	}

	switch {
	case fd.IsDeletion():
		return a.deleteFile(target, path, opts)
	case fd.IsCreation():
		return a.createFile(fd, target, path, opts)
	default:
		return a.updateFile(fd, target, path, opts)
	}
}

func (a *App) deleteFile(target, path string, opts Options) error {
	if opts.DryRun {
		a.writer.Info("would delete %s", target)
		return nil
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete %s: %w", target, err)
	}
	a.writer.Success("deleted %s", target)
	a.logger.FileApplied(target, 0, false)
	return nil
}

func (a *App) createFile(fd *diff.FileDiff, target, path string, opts Options) error {
	var b strings.Builder
	for _, h := range fd.Hunks {
		for _, l := range h.Lines {
			if l.Kind == diff.LineAddition {
				b.WriteString(l.Text)
				b.WriteString("\n")
			}
		}
	}
	content := b.String()

	if opts.DryRun {
		preview, err := patcher.RenderDiff("", content, target)
		if err == nil {
			a.writer.PrintDiff(preview)
		}
		a.writer.Info("would create %s", target)
		return nil
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("file already exists: %s", target)
	}
	if err := writeFileAtomic(path, content, true); err != nil {
		return fmt.Errorf("create %s: %w", target, err)
	}
	a.writer.Success("created %s", target)
	a.logger.FileApplied(target, len(fd.Hunks), false)
	return nil
}

func (a *App) updateFile(fd *diff.FileDiff, target, path string, opts Options) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", target, err)
	}
	content := string(data)
	trailingNewline := strings.HasSuffix(content, "\n")

	lines := strings.Split(content, "\n")
	if trailingNewline {
		lines = lines[:len(lines)-1]
	}

	// Lookup tables are built once per file; hunks are applied from last
	// to first so everything above each search region keeps its original,
	// diff-relative line numbering.
	srcMap, idxMap := patcher.BuildLookup(lines)
	locateOpts := patcher.Options{
		Fuzziness: a.cfg.GetFuzziness(),
		Threshold: a.cfg.Match.Threshold,
		MinLine:   0,
	}

	applied := 0
	for i := len(fd.Hunks) - 1; i >= 0; i-- {
		h := fd.Hunks[i]
		matches := patcher.Locate(lines, srcMap, idxMap, h, locateOpts)

		var chosen patcher.HunkMatch
		switch {
		case len(matches) == 0:
			return &patcher.NoMatchError{File: target, HunkIndex: i, HunkCount: len(fd.Hunks)}

		case len(matches) == 1:
			chosen = matches[0]

		default:
			mode := a.cfg.Apply.Ambiguity
			if opts.CI {
				mode = config.AmbiguityFail
			}
			switch mode {
			case config.AmbiguityFirst:
				chosen = matches[0]
			case config.AmbiguityFail:
				return &patcher.AmbiguousMatchError{File: target, HunkIndex: i, Matches: matches}
			default:
				choice, ok, err := a.pick(target, i, lines, matches)
				if err != nil {
					return err
				}
				if !ok {
					a.writer.Warning("skipped ambiguous hunk %d/%d in %s", i+1, len(fd.Hunks), target)
					continue
				}
				chosen = matches[choice]
			}
		}

		a.logger.HunkMatched(target, i, chosen.StartIndex, chosen.MatchedLength, chosen.Score, len(matches))
		lines = patcher.ApplyHunk(lines, h, chosen.StartIndex, chosen.MatchedLength)
		applied++
	}

	newContent := strings.Join(lines, "\n")
	if trailingNewline {
		newContent += "\n"
	}

	if opts.DryRun {
		preview, err := patcher.RenderDiff(content, newContent, target)
		if err == nil {
			a.writer.PrintDiff(preview)
		}
		a.writer.Info("would update %s (%d hunks)", target, applied)
		a.logger.FileApplied(target, applied, true)
		return nil
	}

	if newContent == content {
		a.writer.Info("no changes for %s", target)
		return nil
	}
	if a.cfg.Apply.Backup {
		if err := os.WriteFile(path+a.cfg.Apply.BackupSuffix, data, 0644); err != nil {
			return fmt.Errorf("write backup for %s: %w", target, err)
		}
	}
	if err := writeFileAtomic(path, newContent, false); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}
	a.writer.Success("applied %d hunk(s) to %s", applied, target)
	a.logger.FileApplied(target, applied, false)
	return nil
}

// interactivePick shows the bubbletea picker with a short context preview
// per candidate.
func (a *App) interactivePick(file string, hunkIndex int, lines []string, matches []patcher.HunkMatch) (int, bool, error) {
	candidates := make([]ui.Candidate, len(matches))
	for i, m := range matches {
		end := m.StartIndex + 3
		if span := m.StartIndex + m.MatchedLength; span < end {
			end = span
		}
		if end > len(lines) {
			end = len(lines)
		}
		candidates[i] = ui.Candidate{
			StartLine: m.StartIndex + 1,
			Score:     m.Score,
			Density:   m.Density,
			Preview:   lines[m.StartIndex:end],
		}
	}
	title := fmt.Sprintf("%s: hunk %d matches %d locations", file, hunkIndex+1, len(matches))
	return ui.PickMatch(title, candidates)
}

// writeFileAtomic writes content via a temp file and rename, preserving
// the permissions of an existing file.
func writeFileAtomic(path, content string, isNewFile bool) error {
	if isNewFile {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("create parent directory: %w", err)
		}
	}

	tempFile, err := os.CreateTemp(filepath.Dir(path), ".mend-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tempPath := tempFile.Name()
	defer os.Remove(tempPath)

	if _, err := tempFile.WriteString(content); err != nil {
		tempFile.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if info, err := os.Stat(path); err == nil {
		_ = os.Chmod(tempPath, info.Mode())
	} else {
		_ = os.Chmod(tempPath, 0644)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("atomic rename failed: %w", err)
	}
	return nil
}
