package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/fastlint/fastlint/pkg/config"
	"github.com/fastlint/fastlint/pkg/runner"
)

// jsonWireVersion identifies the shape of the JSON output, independent of
// the tool's own release version.
const jsonWireVersion = "1.0"

// JSONOutput is the top-level JSON structure, matching spec section 6's
// metadata/files/summary wire shape.
type JSONOutput struct {
	Metadata JSONMetadata     `json:"metadata"`
	Files    []JSONFileResult `json:"files"`
	Summary  JSONSummary      `json:"summary"`
}

// JSONMetadata describes the run that produced this report.
type JSONMetadata struct {
	FastlintVersion string `json:"fastlint_version"`
	WireVersion     string `json:"wire_version"`
}

// JSONFileResult represents a single file's offenses.
type JSONFileResult struct {
	Path     string         `json:"path"`
	Offenses []JSONOffense  `json:"offenses"`
	Error    string         `json:"error,omitempty"`
}

// JSONOffense represents a single offense, shaped to be byte-reproducible
// with the reference tool for the rules fastlint implements.
type JSONOffense struct {
	Severity    string       `json:"severity"`
	Message     string       `json:"message"`
	CopName     string       `json:"cop_name"`
	Corrected   bool         `json:"corrected"`
	Correctable bool         `json:"correctable"`
	Location    JSONLocation `json:"location"`
}

// JSONLocation is an offense's span, in the reference tool's 1-based
// line/column convention.
type JSONLocation struct {
	StartLine   int `json:"start_line"`
	StartColumn int `json:"start_column"`
	LastLine    int `json:"last_line"`
	LastColumn  int `json:"last_column"`
	Length      int `json:"length"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	TargetFileCount   int            `json:"target_file_count"`
	InspectedFileCount int           `json:"inspected_file_count"`
	OffenseCount      int            `json:"offense_count"`
	CorrectedCount    int            `json:"corrected_count"`
	BySeverity        map[string]int `json:"by_severity"`
}

// JSONReporter formats results as the spec section 6 JSON wire shape.
type JSONReporter struct {
	opts          Options
	bw            *bufio.Writer
	toolVersion   string
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts:        opts,
		bw:          bufio.NewWriterSize(opts.Writer, bufWriterSize),
		toolVersion: opts.ToolVersion,
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.OffenseCount, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Metadata: JSONMetadata{
			FastlintVersion: r.toolVersion,
			WireVersion:     jsonWireVersion,
		},
		Files: make([]JSONFileResult, 0),
		Summary: JSONSummary{
			BySeverity: make(map[string]int),
		},
	}

	if result == nil {
		return output
	}

	if len(result.Files) > 0 {
		output.Files = make([]JSONFileResult, 0, len(result.Files))
	}

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:     file.Path,
			Offenses: make([]JSONOffense, 0),
		}

		if file.Error != nil {
			fileResult.Error = file.Error.Error()
		}

		output.Summary.TargetFileCount++

		if file.Result != nil {
			output.Summary.InspectedFileCount++

			if file.Result.FileResult != nil {
				for _, diag := range file.Result.Diagnostics {
					offense := JSONOffense{
						Severity:    string(diag.Severity),
						Message:     diag.Message,
						CopName:     diag.Rule.String(),
						Corrected:   diag.Corrected,
						Correctable: diag.Correctable,
						Location: JSONLocation{
							StartLine:   diag.StartLine,
							StartColumn: diag.StartColumn,
							LastLine:    diag.LastLine,
							LastColumn:  diag.LastColumn,
							Length:      diag.Length,
						},
					}

					fileResult.Offenses = append(fileResult.Offenses, offense)
					output.Summary.OffenseCount++

					if diag.Corrected {
						output.Summary.CorrectedCount++
					}

					severity := string(diag.Severity)
					if severity == "" {
						severity = string(config.SeverityWarning)
					}
					output.Summary.BySeverity[severity]++
				}
			}
		}

		output.Files = append(output.Files, fileResult)
	}

	return output
}
