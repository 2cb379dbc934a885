package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"call-quality-go/internal/pipeline"
	"call-quality-go/internal/types"
)

// Build renders a completed pipeline result into an xlsx workbook: a summary
// sheet, the speaker-attributed transcript, the per-party findings, and the
// caller-directed suggestions.
func Build(res pipeline.Result) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", "Summary"); err != nil {
		return nil, fmt.Errorf("rename summary sheet: %w", err)
	}
	summaryRows := [][]any{
		{"Analysis ID", res.AnalysisID},
		{"Objective", res.Analysis.Objective},
		{"Score", res.Analysis.Score},
		{"Score reasoning", res.Analysis.ScoreReasoning},
		{"Conclusion", res.Analysis.Conclusion},
		{"Agent", string(res.Roles.AgentRole)},
		{"Customer", string(res.Roles.CustomerRole)},
		{"Duration (seconds)", res.DurationSeconds},
		{"Degraded result", res.Fallback},
	}
	for i := range summaryRows {
		if err := setRow(f, "Summary", i+1, summaryRows[i]); err != nil {
			return nil, err
		}
	}

	if _, err := f.NewSheet("Transcript"); err != nil {
		return nil, fmt.Errorf("add transcript sheet: %w", err)
	}
	if err := setRow(f, "Transcript", 1, []any{"Speaker", "Timestamp", "Text"}); err != nil {
		return nil, err
	}
	for i, seg := range res.Analysis.Transcript {
		row := []any{string(seg.Speaker), seg.Timestamp, seg.Text}
		if err := setRow(f, "Transcript", i+2, row); err != nil {
			return nil, err
		}
	}

	if _, err := f.NewSheet("Findings"); err != nil {
		return nil, fmt.Errorf("add findings sheet: %w", err)
	}
	if err := setRow(f, "Findings", 1, []any{"Party", "Polarity", "Finding"}); err != nil {
		return nil, err
	}
	rowIdx := 2
	for _, party := range []types.Speaker{types.PartyA, types.PartyB} {
		bucket := res.Analysis.Anomalies[party]
		for _, polarity := range []struct {
			name  string
			items []string
		}{
			{"positive", bucket.Positive},
			{"negative", bucket.Negative},
		} {
			for _, item := range polarity.items {
				if err := setRow(f, "Findings", rowIdx, []any{string(party), polarity.name, item}); err != nil {
					return nil, err
				}
				rowIdx++
			}
		}
	}

	if _, err := f.NewSheet("Suggestions"); err != nil {
		return nil, fmt.Errorf("add suggestions sheet: %w", err)
	}
	for i, s := range res.Analysis.Suggestions {
		if err := setRow(f, "Suggestions", i+1, []any{s}); err != nil {
			return nil, err
		}
	}

	return f, nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("%s row %d: %w", sheet, row, err)
	}
	return nil
}
