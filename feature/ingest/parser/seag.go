package parser

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// SEAGParser reads the manually curated SEA Age Group Championship format.
//
// The file carries no meet metadata of its own; the caller supplies it and
// ForDialect validates it before the file is opened. Each sheet holds one
// competition day with the columns Event | Name | Team | Birth | Time |
// Place and an optional Round column. SEAG championships are long course.
type SEAGParser struct {
	Meta SEAGMeta
}

var seagEventRe = regexp.MustCompile(
	`^(Men|Women|Mixed)\s+(?:(\d+)\s*[xX]\s*)?(\d+)\s*m\s+([A-Za-z. ]+?)(?:\s+(Relay))?$`)

// Parse implements Parser.
func (p *SEAGParser) Parse(data []byte) (*Parsed, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &MalformedInputError{Reason: "cannot open spreadsheet", Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &MalformedInputError{Reason: "file has no sheets"}
	}

	parsed := &Parsed{
		Meta: MeetMeta{
			Name:   p.Meta.MeetName,
			City:   p.Meta.City,
			Course: "LCM",
			Date:   time.Date(p.Meta.Year, time.Month(p.Meta.Month), p.Meta.Day, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, sheetName := range sheets {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			return nil, &MalformedInputError{Reason: "cannot read sheet " + sheetName, Err: err}
		}
		if err := p.parseSheet(sheetName, rows, parsed); err != nil {
			return nil, err
		}
	}

	if len(parsed.Rows) == 0 {
		return nil, &MalformedInputError{Reason: "no result rows found"}
	}

	return parsed, nil
}

func (p *SEAGParser) parseSheet(sheetName string, rows [][]string, parsed *Parsed) error {
	if len(rows) == 0 {
		return &MalformedInputError{Reason: "sheet " + sheetName + " is empty"}
	}

	cols, err := findColumns(rows[0], []string{"event", "name", "team", "time", "place"})
	if err != nil {
		return &MalformedInputError{Reason: "sheet " + sheetName + " lacks the required columns", Err: err}
	}

	for i := 1; i < len(rows); i++ {
		row := rows[i]
		name := cellByHeader(row, cols, "name")
		eventLabel := cellByHeader(row, cols, "event")
		if name == "" && eventLabel == "" {
			continue
		}

		m := seagEventRe.FindStringSubmatch(eventLabel)
		if m == nil {
			return &MalformedInputError{
				Reason: "unreadable event label " + strconv.Quote(eventLabel) + " at " + sheetName + " line " + strconv.Itoa(i+1)}
		}
		distance, _ := strconv.Atoi(m[3])

		parsed.Rows = append(parsed.Rows, Row{
			Sheet:     sheetName,
			Line:      i + 1,
			Name:      name,
			Birthdate: parseSEAGBirth(cellByHeader(row, cols, "birthdate")),
			Gender:    genderCode(m[1]),
			Club:      cellByHeader(row, cols, "team"),
			Distance:  distance,
			Stroke:    strings.TrimSpace(m[4]),
			Relay:     m[2] != "" || m[5] != "",
			Round:     roundCode(cellByHeader(row, cols, "round")),
			TimeText:  cellByHeader(row, cols, "time"),
			PlaceText: cellByHeader(row, cols, "place"),
		})
	}

	return nil
}

var seagBirthLayouts = []string{"02/01/2006", "2006-01-02", "02.01.2006"}

// parseSEAGBirth handles the day-first dates the manual format uses;
// year-only values yield nil like in the SwimRankings dialect.
func parseSEAGBirth(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range seagBirthLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return &d
		}
	}
	return nil
}
