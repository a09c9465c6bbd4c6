package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fastlint/fastlint/internal/configloader"
	"github.com/fastlint/fastlint/internal/logging"
	"github.com/fastlint/fastlint/pkg/checker"
	_ "github.com/fastlint/fastlint/pkg/rules/layout" // register built-in Layout rules
	_ "github.com/fastlint/fastlint/pkg/rules/lint"   // register built-in Lint rules
	"github.com/fastlint/fastlint/pkg/config"
	"github.com/fastlint/fastlint/pkg/rbparser/structural"
	"github.com/fastlint/fastlint/pkg/rbparser/treesitter"
	"github.com/fastlint/fastlint/pkg/reporter"
	"github.com/fastlint/fastlint/pkg/runner"
)

// ErrLintIssuesFound is returned when lint issues are found.
var ErrLintIssuesFound = errors.New("lint issues found")

type lintFlags struct {
	format       string
	parser       string
	ignore       []string
	enable       []string
	disable      []string
	strict       bool
	noContext    bool
	compact      bool
	perFile      bool
	ruleFormat   string
	summaryOrder string
	stdinPath    string
	failLevel    string
	cpuprofile   string
	memprofile   string
	trace        string
}

func newLintCommand() *cobra.Command {
	var cfg config.Config
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint Ruby files",
		Long:  lintLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, &cfg, flags)
		},
	}

	addLintFlags(cmd, &cfg, flags)

	return cmd
}

const lintLongDescription = `Lint Ruby files for style and syntax issues.

By default, lints all .rb, .rake, .gemspec and .ru files in the current
directory and subdirectories, plus well-known extensionless Ruby files
(Gemfile, Rakefile, bin/console) and shebang scripts. Specify paths to
lint specific files or directories.

Examples:
  fastlint lint                    # Lint current directory
  fastlint lint lib/                # Lint lib directory
  fastlint lint app.rb              # Lint single file
  fastlint lint -a                  # Lint and auto-correct safe offenses
  fastlint lint -A                  # Lint and auto-correct, including unsafe
  fastlint lint --dry-run -a        # Show fixes without applying
  fastlint lint --format json       # Output as JSON for CI
  fastlint lint --strict            # Treat warnings as errors`

func runLint(cmd *cobra.Command, args []string, cfg *config.Config, flags *lintFlags) error {
	logger := logging.Default()

	// Map string flags to typed config values.
	// Only set values that were explicitly provided via CLI flags.
	cfg.Format = config.OutputFormat(flags.format)
	if cmd.Flags().Changed("parser") {
		cfg.AllCops.ParserBackend = flags.parser
	}
	cfg.AllCops.Exclude = flags.ignore
	cfg.EnableRules = flags.enable
	cfg.DisableRules = flags.disable
	cfg.StdinPath = flags.stdinPath
	if cmd.Flags().Changed("fail-level") {
		cfg.FailLevel = config.Severity(flags.failLevel)
	}

	// Load and merge configuration.
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Get the explicit config path from the root command's persistent flag.
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	// Get working directory for config discovery.
	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	// Build load options.
	loadOpts := configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cfg,
	}

	loadResult, err := configloader.Load(ctx, loadOpts)
	if err != nil {
		return errors.Join(errors.New("failed to load configuration"), err)
	}

	finalCfg := loadResult.Config

	// Log warnings from config loading.
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	// Log loaded configuration files.
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", "files", loadResult.LoadedFrom)
	}

	logger.Debug("configuration loaded",
		"parser_backend", finalCfg.AllCops.ParserBackend,
		"auto_correct", finalCfg.AutoCorrect,
		"auto_correct_all", finalCfg.AutoCorrectAll,
		"dry_run", finalCfg.DryRun,
		"jobs", finalCfg.Jobs,
	)

	// Select the parser backend.
	parser, err := newParserBackend(finalCfg.AllCops.ParserBackend)
	if err != nil {
		return err
	}

	// Use the default registry, which has all built-in rules registered
	// via their package init() functions.
	registry := checker.DefaultRegistry

	// Create the checker.
	chk := checker.NewChecker(parser, registry)

	// Create the safety pipeline.
	pipeline := checker.NewPipeline(chk)

	// Create the runner.
	lintRunner := runner.New(pipeline)

	// Build runner options.
	runOpts := runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		Extensions:   runner.DefaultExtensions(),
		ExcludeGlobs: finalCfg.AllCops.Exclude,
		Jobs:         finalCfg.Jobs,
		Config:       finalCfg,
	}

	logger.Debug("starting lint run",
		"paths", runOpts.Paths,
		"working_dir", runOpts.WorkingDir,
		"jobs", runOpts.Jobs,
	)

	// Run linting.
	result, err := lintRunner.Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("lint run failed"), err)
	}

	// Get color mode from persistent flag.
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto" // Default to auto if flag retrieval fails
	}

	// Parse output format.
	format, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	// Create reporter.
	rep, err := reporter.New(reporter.Options{
		Writer:       cmd.OutOrStdout(),
		ErrorWriter:  cmd.ErrOrStderr(),
		Format:       format,
		Color:        colorMode,
		ShowContext:  !flags.noContext,
		ShowSummary:  true,
		GroupByFile:  true,
		Compact:      flags.compact,
		PerFile:      flags.perFile,
		RuleFormat:   config.RuleFormat(flags.ruleFormat),
		SummaryOrder: config.SummaryOrder(flags.summaryOrder),
		WorkingDir:   workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	// Report results.
	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", "error", err)
		return fmt.Errorf("report results: %w", err)
	}

	// Determine exit code based on result.
	exitCode := ExitCodeFromResult(result, flags.strict)
	if exitCode == ExitSuccess && result != nil && finalCfg.FailLevel != "" {
		for sev, n := range result.Stats.DiagnosticsBySeverity {
			if n > 0 && config.Severity(sev).AtLeast(finalCfg.FailLevel) {
				exitCode = ExitLintErrors
			}
		}
	}
	if exitCode != ExitSuccess {
		return ErrLintIssuesFound
	}

	return nil
}

// newParserBackend resolves the configured AllCops.ParserBackend to a
// checker.Parser implementation.
func newParserBackend(backend string) (checker.Parser, error) {
	switch backend {
	case "", "structural":
		return structural.New(), nil
	case "treesitter":
		return treesitter.New(), nil
	default:
		return nil, fmt.Errorf("unknown parser backend %q (want structural or treesitter)", backend)
	}
}

func addLintFlags(cmd *cobra.Command, cfg *config.Config, flags *lintFlags) {
	cmd.Flags().BoolVarP(&cfg.AutoCorrect, "auto-correct", "a", false, "auto-correct safe offenses")
	cmd.Flags().BoolVarP(&cfg.AutoCorrectAll, "auto-correct-all", "A", false, "auto-correct safe and unsafe offenses")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "show fixes without applying them")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, table, json, sarif, diff, summary")
	cmd.Flags().StringVar(&flags.parser, "parser", "structural", "parser backend: structural, treesitter")
	cmd.Flags().IntVarP(&cfg.Jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.enable, "only", nil, "rule names to enable exclusively")
	cmd.Flags().StringSliceVar(&flags.disable, "except", nil, "rule names to disable")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backup creation when fixing")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as errors for exit code")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
	cmd.Flags().BoolVar(&flags.perFile, "per-file", false, "output separate report for each file (table format)")
	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "combined",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.summaryOrder, "summary-order", "rules",
		"order of tables in summary output: rules, files")
	cmd.Flags().StringVarP(&flags.stdinPath, "stdin", "s", "", "read content from stdin, reporting under this path")
	cmd.Flags().StringVar(&flags.failLevel, "fail-level", string(cfg.FailLevel), "minimum severity that fails the run")

	// Profiling flags. They are parsed but not read by runLint: no profile
	// or trace file is written.
	cmd.Flags().StringVar(&flags.cpuprofile, "cpuprofile", "", "CPU profile file (accepted, no profile is written)")
	cmd.Flags().StringVar(&flags.memprofile, "memprofile", "", "memory profile file (accepted, no profile is written)")
	cmd.Flags().StringVar(&flags.trace, "trace", "", "execution trace file (accepted, no trace is written)")
}
