package checker

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"

	"github.com/fastlint/fastlint/pkg/config"
	"github.com/fastlint/fastlint/pkg/fix"
	"github.com/fastlint/fastlint/pkg/fsutil"
)

// MaxFixRounds bounds the fix loop described in spec section 4.4: if a
// stable fixed point hasn't been reached after this many rounds, the loop
// aborts with ErrInfiniteCorrectionLoop rather than spinning forever.
const MaxFixRounds = 200

// Pipeline error types for categorization.
var (
	// ErrFileNotFound indicates the file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrParseFailure indicates a parsing error.
	ErrParseFailure = errors.New("parse failure")

	// ErrWriteFailure indicates a write error.
	ErrWriteFailure = errors.New("write failure")

	// ErrInfiniteCorrectionLoop indicates the fix loop revisited a content
	// fingerprint it had already produced, or exhausted MaxFixRounds
	// without reaching a fixed point (spec section 4.4).
	ErrInfiniteCorrectionLoop = errors.New("infinite correction loop")
)

// PipelineResult contains the result of processing a single file through the safety pipeline.
type PipelineResult struct {
	// FileResult contains diagnostics from the FINAL round of the fix loop
	// (or the single check pass, when autocorrect is off).
	*FileResult

	// Path is the file path that was processed.
	Path string

	// OriginalInfo is the file state before processing.
	OriginalInfo *fsutil.FileInfo

	// Modified is true if the file content was changed.
	Modified bool

	// ModifiedContent is the new content after applying edits (nil if not modified).
	ModifiedContent []byte

	// Diff is the unified diff for dry-run mode (nil if not in dry-run).
	Diff *fix.Diff

	// Skipped is true if the file was skipped (e.g., due to concurrent modification).
	Skipped bool

	// SkipReason explains why the file was skipped.
	SkipReason string

	// BackupCreated is true if a backup was created for this file.
	BackupCreated bool

	// Written is true if the file was written to disk.
	Written bool

	// FixRounds is the number of fix-loop rounds performed.
	FixRounds int

	// FixesApplied is the total number of individual diagnostic fixes merged
	// across every round of the fix loop.
	FixesApplied int
}

// Summary returns a human-readable summary of the pipeline result.
func (pr *PipelineResult) Summary() string {
	if pr.Skipped {
		return "skipped: " + pr.SkipReason
	}
	if pr.Written {
		if pr.BackupCreated {
			return "fixed (backup created)"
		}
		return "fixed"
	}
	if pr.Modified {
		return "changes pending"
	}
	if pr.FileResult != nil && pr.HasIssues() {
		return "issues found"
	}
	return "ok"
}

// PipelineOptions controls safety pipeline behavior.
type PipelineOptions struct {
	// Fix enables auto-fix mode.
	Fix bool

	// DryRun generates diffs without writing files.
	DryRun bool

	// Backup configures backup behavior.
	Backup fsutil.BackupConfig

	// StrictRaceDetection uses hash comparison for modification detection.
	// When false, only mod time and size are checked.
	StrictRaceDetection bool

	// AllowUnsafe permits applying fixes marked Fix.Unsafe (the -A/--autocorrect-all
	// distinction from -a/--autocorrect). When false, unsafe fixes are surfaced as
	// diagnostics but never merged into the corrector.
	AllowUnsafe bool
}

// DefaultPipelineOptions returns sensible defaults.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{
		Fix:                 false,
		DryRun:              false,
		Backup:              fsutil.DefaultBackupConfig(),
		StrictRaceDetection: true,
	}
}

// Pipeline orchestrates the safe processing of a single file.
type Pipeline struct {
	// Checker parses and dispatches rules.
	Checker *Checker
}

// NewPipeline creates a new safety pipeline with the given checker.
func NewPipeline(checker *Checker) *Pipeline {
	return &Pipeline{Checker: checker}
}

// ProcessFile runs the full safety pipeline for a single file.
//
// The pipeline performs the following steps:
//  1. Read and hash the original file.
//  2. Fix loop (if fix mode enabled): repeatedly check, merge fixes into a
//     Corrector, and apply until a round produces no new fixes or a
//     previously-seen fingerprint recurs (spec section 4.4).
//  3. Generate diff (if dry-run mode).
//  4. Check for concurrent modifications.
//  5. Create backup (if enabled).
//  6. Write the modified content atomically.
func (p *Pipeline) ProcessFile(
	ctx context.Context,
	path string,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	result := &PipelineResult{Path: path}

	originalContent, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}
	result.OriginalInfo = info

	content, fileResult, rounds, fixed, err := p.runFixLoop(ctx, path, originalContent, cfg, opts.Fix, opts.AllowUnsafe)
	if err != nil {
		return nil, err
	}
	result.FixRounds = rounds
	result.FixesApplied = fixed
	result.FileResult = fileResult
	result.Modified = rounds > 0 && !bytesEqual(content, originalContent)

	if !result.Modified {
		return result, nil
	}
	result.ModifiedContent = content

	if opts.DryRun {
		result.Diff = fix.GenerateDiff(path, originalContent, content)
		return result, nil
	}

	modified, err := p.checkModified(ctx, info, opts.StrictRaceDetection)
	if err != nil {
		return nil, fmt.Errorf("check modified: %w", err)
	}
	if modified {
		result.Skipped = true
		result.SkipReason = "file modified during processing"
		return result, nil
	}

	if opts.Backup.Enabled {
		created, err := fsutil.CreateBackup(ctx, path, opts.Backup)
		if err != nil {
			return nil, fmt.Errorf("create backup: %w", err)
		}
		result.BackupCreated = created
	}

	if err := fsutil.WriteAtomic(ctx, path, content, info.Mode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true

	return result, nil
}

// ProcessContent processes in-memory content without file I/O. Useful for
// testing or when content is already loaded.
func (p *Pipeline) ProcessContent(
	ctx context.Context,
	path string,
	originalContent []byte,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	result := &PipelineResult{Path: path}

	content, fileResult, rounds, fixed, err := p.runFixLoop(ctx, path, originalContent, cfg, opts.Fix, opts.AllowUnsafe)
	if err != nil {
		return nil, err
	}
	result.FixRounds = rounds
	result.FixesApplied = fixed
	result.FileResult = fileResult
	result.Modified = rounds > 0 && !bytesEqual(content, originalContent)

	if !result.Modified {
		return result, nil
	}
	result.ModifiedContent = content

	if opts.DryRun {
		result.Diff = fix.GenerateDiff(path, originalContent, content)
	}

	return result, nil
}

// runFixLoop implements spec section 4.4: each round parses the current
// content, checks it, merges every fixable diagnostic's Fix into a fresh
// Corrector (skipping fixes from rules that have already conflicted this
// file), and applies the result. The loop stops when a round yields no
// applied fixes (a fixed point), or reports ErrInfiniteCorrectionLoop if a
// content fingerprint recurs or MaxFixRounds is exhausted.
//
// When fixMode is false, this runs exactly one check round with no
// mutation, matching plain (non-autocorrecting) lint behavior.
//
// When allowUnsafe is false, a Fix marked Unsafe is left unmerged (the -a
// behavior); when true, unsafe fixes are merged same as safe ones (-A).
func (p *Pipeline) runFixLoop(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
	fixMode bool,
	allowUnsafe bool,
) ([]byte, *FileResult, int, int, error) {
	seen := map[[32]byte]bool{sha256.Sum256(content): true}

	cur := content
	var lastResult *FileResult
	fixesApplied := 0

	for round := 0; round < MaxFixRounds; round++ {
		select {
		case <-ctx.Done():
			return nil, nil, round, fixesApplied, fmt.Errorf("processing cancelled: %w", ctx.Err())
		default:
		}

		snapshot, perr := p.Checker.Parser.Parse(ctx, path, cur)
		if perr != nil {
			return nil, nil, round, fixesApplied, fmt.Errorf("%w: %w", ErrParseFailure, perr)
		}
		result := p.Checker.CheckSnapshot(ctx, path, snapshot, cfg)
		lastResult = result

		if !fixMode {
			return cur, result, round, fixesApplied, nil
		}

		corrector := fix.NewCorrector()
		registry := fix.NewConflictRegistry()
		appliedThisRound := 0
		for _, d := range result.Raw {
			if d.Fix == nil {
				continue
			}
			if d.Fix.Unsafe && !allowUnsafe {
				continue
			}
			if registry.ConflictsWithApplied(d.Fix.Rule) {
				continue
			}
			if err := corrector.Merge(d.Fix); err != nil {
				continue
			}
			registry.MarkApplied(d.Fix.Rule)
			appliedThisRound++
		}

		if appliedThisRound == 0 {
			return cur, result, round, fixesApplied, nil
		}
		fixesApplied += appliedThisRound

		next := corrector.Apply(cur)
		sum := sha256.Sum256(next)
		if seen[sum] {
			return cur, result, round, fixesApplied, fmt.Errorf("%w: %s", ErrInfiniteCorrectionLoop, path)
		}
		seen[sum] = true
		cur = next
	}

	return cur, lastResult, MaxFixRounds, fixesApplied, fmt.Errorf("%w: %s (exceeded %d rounds)", ErrInfiniteCorrectionLoop, path, MaxFixRounds)
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// checkModified checks if a file has been modified since it was read.
func (p *Pipeline) checkModified(ctx context.Context, info *fsutil.FileInfo, strict bool) (bool, error) {
	var modified bool
	var err error

	if strict {
		modified, err = fsutil.CheckModified(ctx, info)
	} else {
		modified, err = fsutil.CheckModifiedQuick(ctx, info)
	}

	if err != nil {
		return false, fmt.Errorf("check modified: %w", err)
	}
	return modified, nil
}

// categorizeError wraps an error with the appropriate pipeline error type.
// It uses errors.Is for robust error detection rather than string matching.
func categorizeError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, fsutil.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}

	if errors.Is(err, fsutil.ErrPermissionDenied) || errors.Is(err, os.ErrPermission) {
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}

	return err
}

// IsPipelineError checks if an error is a known pipeline error type.
func IsPipelineError(err error) bool {
	return errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrParseFailure) ||
		errors.Is(err, ErrWriteFailure) ||
		errors.Is(err, ErrInfiniteCorrectionLoop)
}

// BackupConfigFromConfig creates an fsutil.BackupConfig from config.Config.
func BackupConfigFromConfig(cfg *config.Config) fsutil.BackupConfig {
	if cfg == nil {
		return fsutil.DefaultBackupConfig()
	}
	return fsutil.BackupConfig{
		Enabled: cfg.Backups.Enabled && !cfg.NoBackups,
		Mode:    fsutil.BackupMode(cfg.Backups.Mode),
	}
}

// PipelineOptionsFromConfig creates PipelineOptions from config.Config.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	if cfg == nil {
		return DefaultPipelineOptions()
	}
	return PipelineOptions{
		Fix:                 cfg.AutoCorrect || cfg.AutoCorrectAll,
		DryRun:              cfg.DryRun,
		Backup:              BackupConfigFromConfig(cfg),
		StrictRaceDetection: true,
		AllowUnsafe:         cfg.AutoCorrectAll,
	}
}
