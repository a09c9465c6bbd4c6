package configloader

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	_ "github.com/fastlint/fastlint/pkg/rules/layout" // register built-in rules
	_ "github.com/fastlint/fastlint/pkg/rules/lint"

	"github.com/fastlint/fastlint/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	ctx := context.Background()
	opts := LoadOptions{
		WorkingDir:         tmpDir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		NonInteractive:     true,
	}

	result, err := Load(ctx, opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config == nil {
		t.Fatal("Load() returned nil config")
	}

	if result.Config.AllCops.TargetRubyVersion != "3.3" {
		t.Errorf("expected TargetRubyVersion %q, got %q", "3.3", result.Config.AllCops.TargetRubyVersion)
	}
	if result.Config.AllCops.ParserBackend != "structural" {
		t.Errorf("expected ParserBackend %q, got %q", "structural", result.Config.AllCops.ParserBackend)
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	configContent := `
AllCops:
  TargetRubyVersion: "3.2"
Layout/TrailingWhitespace:
  Enabled: false
`
	configPath := filepath.Join(tmpDir, ".fastlint.yml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	ctx := context.Background()
	opts := LoadOptions{
		WorkingDir:         tmpDir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		NonInteractive:     true,
	}

	result, err := Load(ctx, opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.AllCops.TargetRubyVersion != "3.2" {
		t.Errorf("expected TargetRubyVersion %q, got %q", "3.2", result.Config.AllCops.TargetRubyVersion)
	}

	rc, ok := result.Config.Rules["Layout/TrailingWhitespace"]
	if !ok {
		t.Fatal("Layout/TrailingWhitespace rule not found in config")
	}
	if rc.Enabled == nil || *rc.Enabled {
		t.Error("expected Layout/TrailingWhitespace to be disabled")
	}

	if len(result.LoadedFrom) != 1 {
		t.Errorf("expected 1 loaded file, got %d", len(result.LoadedFrom))
	}
}

func TestLoad_ExplicitConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	configContent := `
AllCops:
  TargetRubyVersion: "3.1"
`
	customPath := filepath.Join(tmpDir, "custom-config.yml")
	if err := os.WriteFile(customPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	ctx := context.Background()
	opts := LoadOptions{
		WorkingDir:         tmpDir,
		ExplicitPath:       customPath,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		NonInteractive:     true,
	}

	result, err := Load(ctx, opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.AllCops.TargetRubyVersion != "3.1" {
		t.Errorf("expected TargetRubyVersion %q, got %q", "3.1", result.Config.AllCops.TargetRubyVersion)
	}
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	configContent := `
AllCops:
  TargetRubyVersion: "3.0"
`
	configPath := filepath.Join(tmpDir, ".fastlint.yml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	ctx := context.Background()
	cliCfg := &config.Config{
		Jobs:        8,
		AutoCorrect: true,
		Rules:       make(map[string]config.RuleConfig),
	}
	opts := LoadOptions{
		WorkingDir:         tmpDir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		NonInteractive:     true,
		CLIConfig:          cliCfg,
	}

	result, err := Load(ctx, opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Jobs != 8 {
		t.Errorf("expected jobs 8 (CLI override), got %d", result.Config.Jobs)
	}

	if !result.Config.AutoCorrect {
		t.Error("expected AutoCorrect true (CLI override)")
	}

	// Project config's AllCops value should survive since CLI didn't set it.
	if result.Config.AllCops.TargetRubyVersion != "3.0" {
		t.Errorf("expected TargetRubyVersion %q, got %q", "3.0", result.Config.AllCops.TargetRubyVersion)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	configContent := `
AllCops:
  ParserBackend: "not-a-real-backend"
`
	configPath := filepath.Join(tmpDir, ".fastlint.yml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	ctx := context.Background()
	opts := LoadOptions{
		WorkingDir:         tmpDir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		NonInteractive:     true,
	}

	_, err := Load(ctx, opts)
	if err == nil {
		t.Fatal("expected validation error for invalid parser backend")
	}
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := LoadOptions{
		WorkingDir:         t.TempDir(),
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		NonInteractive:     true,
	}

	_, err := Load(ctx, opts)
	if err == nil {
		t.Fatal("expected context cancellation error")
	}
}

func TestLoader_NormalizesRuleKeys(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	content := `
TrailingWhitespace:
  Enabled: false
Debugger:
  Enabled: true
  Severity: error
`
	configPath := filepath.Join(tmpDir, ".fastlint.yml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	ctx := context.Background()
	opts := LoadOptions{
		WorkingDir:         tmpDir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		NonInteractive:     true,
	}

	result, err := Load(ctx, opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	_, hasID := result.Config.Rules["Layout/TrailingWhitespace"]
	_, hasName := result.Config.Rules["TrailingWhitespace"]

	if !hasID {
		t.Error("expected Layout/TrailingWhitespace to be present after normalization")
	}
	if hasName {
		t.Error("expected bare TrailingWhitespace key to be removed after normalization")
	}

	debugger, hasDebugger := result.Config.Rules["Lint/Debugger"]
	if !hasDebugger {
		t.Error("expected Lint/Debugger to be present after normalization")
	} else {
		if debugger.Enabled == nil || !*debugger.Enabled {
			t.Error("expected Lint/Debugger to be enabled")
		}
		if debugger.Severity == nil || *debugger.Severity != "error" {
			t.Error("expected Lint/Debugger severity to be error")
		}
	}
}

func TestLoader_WarnsDuplicateRules(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	content := `
Layout/TrailingWhitespace:
  Enabled: false
TrailingWhitespace:
  Enabled: true
`
	configPath := filepath.Join(tmpDir, ".fastlint.yml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	ctx := context.Background()
	opts := LoadOptions{
		WorkingDir:         tmpDir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		NonInteractive:     true,
	}

	result, err := Load(ctx, opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	foundWarning := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "duplicate") && strings.Contains(w, "Layout/TrailingWhitespace") {
			foundWarning = true
			break
		}
	}
	if !foundWarning {
		t.Errorf("expected warning about duplicate rule, got warnings: %v", result.Warnings)
	}

	rc, ok := result.Config.Rules["Layout/TrailingWhitespace"]
	if !ok {
		t.Fatal("expected Layout/TrailingWhitespace in config")
	}
	if rc.Enabled == nil {
		t.Error("expected Layout/TrailingWhitespace.Enabled to be set")
	}
}

func TestLoadConfigFile_InheritFrom(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	parentContent := `
AllCops:
  TargetRubyVersion: "3.0"
Layout/TrailingWhitespace:
  Enabled: false
`
	parentPath := filepath.Join(tmpDir, "parent.yml")
	if err := os.WriteFile(parentPath, []byte(parentContent), 0644); err != nil {
		t.Fatalf("write parent config: %v", err)
	}

	childContent := `
inherit_from:
  - parent.yml
AllCops:
  TargetRubyVersion: "3.3"
`
	childPath := filepath.Join(tmpDir, ".fastlint.yml")
	if err := os.WriteFile(childPath, []byte(childContent), 0644); err != nil {
		t.Fatalf("write child config: %v", err)
	}

	cfg, err := loadConfigFile(childPath)
	if err != nil {
		t.Fatalf("loadConfigFile: %v", err)
	}

	if cfg.AllCops.TargetRubyVersion != "3.3" {
		t.Errorf("expected child's TargetRubyVersion to win, got %q", cfg.AllCops.TargetRubyVersion)
	}
	rc, ok := cfg.Rules["Layout/TrailingWhitespace"]
	if !ok || rc.Enabled == nil || *rc.Enabled {
		t.Error("expected inherited rule config to carry through")
	}
}
