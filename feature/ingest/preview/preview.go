package preview

import (
	"fmt"
	"strings"

	"swim-admin/feature/ingest/match"
	"swim-admin/feature/ingest/parser"
	"swim-admin/feature/ingest/pipeline"

	"github.com/xuri/excelize/v2"
)

// Summary carries the aggregate counts exposed via response headers.
type Summary struct {
	Total     int
	Matched   int
	Unmatched int
}

const sheetName = "Preview"

var header = []any{
	"Sheet", "Line", "Name", "Birthdate", "Club", "Event", "Round", "Time", "Place", "Match", "Issues",
}

// Generate renders the annotated review spreadsheet for a pipeline run.
// It performs no writes anywhere: the operator can preview any number of
// times, concurrently with commits, before deciding to commit.
func Generate(run *pipeline.Run) ([]byte, Summary, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), sheetName)

	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, Summary{}, fmt.Errorf("failed to write preview header: %w", err)
	}

	summary := Summary{Total: len(run.Rows)}
	for i, row := range run.Rows {
		annotation := annotate(row)
		if annotation == "UNMATCHED" {
			summary.Unmatched++
		} else {
			summary.Matched++
		}

		birthdate := ""
		if row.Raw.Birthdate != nil {
			birthdate = row.Raw.Birthdate.Format("2006-01-02")
		}
		eventID := row.EventID
		if eventID == "" {
			eventID = "?"
		}

		cells := []any{
			row.Raw.Sheet,
			row.Raw.Line,
			row.Raw.Name,
			birthdate,
			row.Raw.Club,
			eventID,
			row.Raw.Round,
			row.Raw.TimeText,
			row.Raw.PlaceText,
			annotation,
			issueNote(row),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, Summary{}, fmt.Errorf("failed to address preview row: %w", err)
		}
		if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
			return nil, Summary{}, fmt.Errorf("failed to write preview row: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, Summary{}, fmt.Errorf("failed to render preview: %w", err)
	}
	return buf.Bytes(), summary, nil
}

func annotate(row pipeline.Row) string {
	if row.Raw.Relay {
		return "RELAY"
	}
	if row.Match.Kind == match.Unmatched {
		return "UNMATCHED"
	}
	return "MATCHED"
}

func issueNote(row pipeline.Row) string {
	var notes []string
	if len(row.Verdict.Fatal) > 0 {
		for _, cat := range row.Verdict.Fatal {
			notes = append(notes, string(cat))
		}
	}
	if row.Verdict.TimeMS != nil {
		// Echo the normalized time so reviewers can spot parse surprises.
		notes = append(notes, "time "+parser.FormatTime(*row.Verdict.TimeMS))
	}
	return strings.Join(notes, "; ")
}
