package parser

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// SwimRankingsParser reads the SwimRankings.net results export.
//
// The file carries its own meet metadata in a header block (Meet, Date,
// City, Course), followed by per-event sections: an event header line like
// "50m Freestyle Men - Final" or "4x100m Medley Relay Women", a column
// header row, then one row per result until the next section.
type SwimRankingsParser struct{}

var srEventHeaderRe = regexp.MustCompile(
	`^(?:(\d+)\s*[xX]\s*)?(\d+)\s*m\s+([A-Za-z. ]+?)(?:\s+(Relay))?\s+(Men|Women|Mixed)(?:\s*-\s*([A-Za-z]+))?$`)

// Parse implements Parser.
func (p *SwimRankingsParser) Parse(data []byte) (*Parsed, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &MalformedInputError{Reason: "cannot open spreadsheet", Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &MalformedInputError{Reason: "file has no sheets"}
	}
	sheetName := sheets[0]

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, &MalformedInputError{Reason: "cannot read sheet " + sheetName, Err: err}
	}

	meta, bodyStart, err := p.parseMetaBlock(rows)
	if err != nil {
		return nil, err
	}

	parsed := &Parsed{Meta: meta}

	type eventCtx struct {
		distance int
		stroke   string
		relay    bool
		gender   string
		round    string
	}
	var event *eventCtx
	var cols map[string]int

	for i := bodyStart; i < len(rows); i++ {
		row := rows[i]
		first := cellAt(row, 0)
		if first == "" {
			continue
		}

		if m := srEventHeaderRe.FindStringSubmatch(joinRow(row)); m != nil {
			distance, _ := strconv.Atoi(m[2])
			event = &eventCtx{
				distance: distance,
				stroke:   strings.TrimSpace(m[3]),
				relay:    m[1] != "" || m[4] != "",
				gender:   genderCode(m[5]),
				round:    roundCode(m[6]),
			}
			cols = nil
			continue
		}

		if event == nil {
			continue
		}

		if cols == nil {
			found, err := findColumns(row, []string{"place", "name", "club", "time"})
			if err != nil {
				return nil, &MalformedInputError{
					Reason: "event section at line " + strconv.Itoa(i+1) + " lacks a column header", Err: err}
			}
			cols = found
			continue
		}

		name := cellByHeader(row, cols, "name")
		if name == "" {
			continue
		}

		parsed.Rows = append(parsed.Rows, Row{
			Sheet:     sheetName,
			Line:      i + 1,
			Name:      name,
			Birthdate: parseBirthdate(cellByHeader(row, cols, "birthdate")),
			Gender:    event.gender,
			Club:      cellByHeader(row, cols, "club"),
			Distance:  event.distance,
			Stroke:    event.stroke,
			Relay:     event.relay,
			Round:     event.round,
			TimeText:  cellByHeader(row, cols, "time"),
			PlaceText: cellByHeader(row, cols, "place"),
		})
	}

	if len(parsed.Rows) == 0 {
		return nil, &MalformedInputError{Reason: "no result rows found"}
	}

	return parsed, nil
}

// parseMetaBlock reads the leading Meet/Date/City/Course labels and returns
// the index of the first body row.
func (p *SwimRankingsParser) parseMetaBlock(rows [][]string) (MeetMeta, int, error) {
	var meta MeetMeta
	i := 0
	for ; i < len(rows); i++ {
		row := rows[i]
		label := strings.ToLower(strings.TrimSuffix(cellAt(row, 0), ":"))
		value := cellAt(row, 1)
		switch label {
		case "meet":
			meta.Name = value
		case "date":
			d, err := parseDate(value)
			if err != nil {
				return meta, 0, &MalformedInputError{Reason: "unreadable meet date", Err: err}
			}
			meta.Date = d
		case "city":
			meta.City = value
		case "course":
			course, err := parseCourse(value)
			if err != nil {
				return meta, 0, &MalformedInputError{Reason: "unreadable course", Err: err}
			}
			meta.Course = course
		case "":
			continue
		default:
			// First non-label row ends the header block.
			goto done
		}
	}
done:
	var missing []string
	if meta.Name == "" {
		missing = append(missing, "Meet")
	}
	if meta.Date.IsZero() {
		missing = append(missing, "Date")
	}
	if meta.Course == "" {
		missing = append(missing, "Course")
	}
	if len(missing) > 0 {
		return meta, 0, &MalformedInputError{
			Reason: "meet header block is missing " + strings.Join(missing, ", ")}
	}
	return meta, i, nil
}

func genderCode(word string) string {
	switch strings.ToLower(word) {
	case "men":
		return "M"
	case "women":
		return "F"
	default:
		return "X"
	}
}

func roundCode(word string) string {
	switch strings.ToLower(word) {
	case "prelim", "prelims", "heat", "heats":
		return "PRELIM"
	default:
		return "FINAL"
	}
}

func parseCourse(s string) (string, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LCM", "50M":
		return "LCM", nil
	case "SCM", "25M":
		return "SCM", nil
	default:
		return "", &MalformedInputError{Reason: "unknown course " + s}
	}
}

var dateLayouts = []string{"2006-01-02", "02.01.2006", "02/01/2006"}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, nil
		} else {
			lastErr = err
		}
	}
	return time.Time{}, lastErr
}

// parseBirthdate returns nil for empty cells and for year-only values;
// a bare year is not enough for age-group computation, which the validator
// reports as a missing birthdate.
func parseBirthdate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if d, err := parseDate(s); err == nil {
		return &d
	}
	return nil
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func joinRow(row []string) string {
	return strings.TrimSpace(strings.Join(row, " "))
}

func cellByHeader(row []string, cols map[string]int, header string) string {
	idx, ok := cols[header]
	if !ok {
		return ""
	}
	return cellAt(row, idx)
}

// findColumns maps lowercased header names to column indices and verifies
// that every required column is present.
func findColumns(row []string, required []string) (map[string]int, error) {
	cols := make(map[string]int, len(row))
	for idx, cell := range row {
		header := strings.ToLower(strings.TrimSpace(cell))
		switch header {
		case "yb", "birth", "birthdate":
			cols["birthdate"] = idx
		case "":
		default:
			cols[header] = idx
		}
	}
	var missing []string
	for _, want := range required {
		if _, ok := cols[want]; !ok {
			missing = append(missing, want)
		}
	}
	if len(missing) > 0 {
		return nil, &MalformedInputError{Reason: "missing column(s): " + strings.Join(missing, ", ")}
	}
	return cols, nil
}
