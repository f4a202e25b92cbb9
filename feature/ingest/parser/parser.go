package parser

import (
	"fmt"
	"strings"
	"time"
)

// Dialect identifies a supported source spreadsheet format. Dialects are a
// closed set selected by an explicit tag; there is no runtime shape sniffing.
type Dialect string

const (
	// DialectSwimRankings is the SwimRankings.net results export.
	DialectSwimRankings Dialect = "swimrankings"
	// DialectSEAG is the manually curated SEA Age Group Championship format.
	DialectSEAG Dialect = "seag"
)

// ParseDialect validates a dialect tag from a request.
func ParseDialect(s string) (Dialect, error) {
	switch Dialect(strings.ToLower(strings.TrimSpace(s))) {
	case DialectSwimRankings:
		return DialectSwimRankings, nil
	case DialectSEAG:
		return DialectSEAG, nil
	default:
		return "", fmt.Errorf("unknown dialect %q (expected swimrankings or seag)", s)
	}
}

// Row is one raw result row in dialect-neutral form. Downstream stages
// never see dialect specifics.
type Row struct {
	// Sheet and Line locate the row in the source file for issue reports.
	Sheet string
	Line  int

	Name      string
	Birthdate *time.Time
	Gender    string
	Club      string

	Distance int
	// Stroke is the raw stroke token as written in the sheet
	// ("Freestyle", "FR", "Medley"); the event resolver normalizes it.
	Stroke string
	Relay  bool
	Round  string

	// TimeText is the unparsed time cell; PlaceText is the placing cell,
	// which may hold a rank or a non-finishing status code.
	TimeText  string
	PlaceText string
}

// MeetMeta is the meet metadata attached to a parsed file. For SwimRankings
// it is extracted from the file header; for SEAG it comes from the caller.
type MeetMeta struct {
	Name   string
	City   string
	Course string
	Date   time.Time
}

// Parsed is the uniform parser output handed to the pipeline.
type Parsed struct {
	Meta MeetMeta
	Rows []Row
}

// Parser reads one spreadsheet dialect into the uniform row form.
type Parser interface {
	Parse(data []byte) (*Parsed, error)
}

// MalformedInputError marks a file-level failure (unreadable file, missing
// sheet or column). It aborts the whole file; no partial parse is handed
// downstream.
type MalformedInputError struct {
	Reason string
	Err    error
}

func (e *MalformedInputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed input: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed input: %s", e.Reason)
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

// SEAGMeta is the caller-supplied metadata the SEAG dialect requires.
// All fields are mandatory; Validate runs before the file is opened.
type SEAGMeta struct {
	Year     int
	City     string
	MeetName string
	Month    int
	Day      int
}

// Validate reports the missing required fields, if any.
func (m SEAGMeta) Validate() error {
	var missing []string
	if m.Year == 0 {
		missing = append(missing, "year")
	}
	if strings.TrimSpace(m.City) == "" {
		missing = append(missing, "meet_city")
	}
	if strings.TrimSpace(m.MeetName) == "" {
		missing = append(missing, "meet_name")
	}
	if m.Month < 1 || m.Month > 12 {
		missing = append(missing, "first_day_month")
	}
	if m.Day < 1 || m.Day > 31 {
		missing = append(missing, "first_day_day")
	}
	if len(missing) > 0 {
		return fmt.Errorf("required field(s) missing for seag upload: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ForDialect returns the parser for the given dialect. The SEAG dialect
// requires validated metadata; a metadata failure is fatal before any row
// processing.
func ForDialect(d Dialect, seag *SEAGMeta) (Parser, error) {
	switch d {
	case DialectSwimRankings:
		return &SwimRankingsParser{}, nil
	case DialectSEAG:
		if seag == nil {
			return nil, fmt.Errorf("seag dialect requires metadata")
		}
		if err := seag.Validate(); err != nil {
			return nil, err
		}
		return &SEAGParser{Meta: *seag}, nil
	default:
		return nil, fmt.Errorf("unknown dialect %q", d)
	}
}
