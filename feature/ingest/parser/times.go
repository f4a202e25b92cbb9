package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseTime parses a swim time string into milliseconds.
//
// Accepted forms: "ss.cc", "m:ss.cc", "h:mm:ss.cc" with a fractional part of
// one to three digits. When a minute (or hour) part is present the following
// part must be exactly two digits, so "1:2.345" is rejected while "1:02.34"
// is valid.
func ParseTime(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty time string")
	}

	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("invalid time %q: too many ':' separators", s)
	}

	// Seconds with fraction is always the last part.
	secPart := parts[len(parts)-1]
	secFields := strings.Split(secPart, ".")
	if len(secFields) > 2 {
		return 0, fmt.Errorf("invalid time %q: too many '.' separators", s)
	}

	secDigits := secFields[0]
	if len(parts) > 1 && len(secDigits) != 2 {
		return 0, fmt.Errorf("invalid time %q: seconds must be two digits", s)
	}
	seconds, err := strconv.Atoi(secDigits)
	if err != nil || seconds < 0 {
		return 0, fmt.Errorf("invalid time %q: bad seconds field", s)
	}
	if len(parts) > 1 && seconds > 59 {
		return 0, fmt.Errorf("invalid time %q: seconds out of range", s)
	}

	fractionMS := 0
	if len(secFields) == 2 {
		frac := secFields[1]
		if len(frac) < 1 || len(frac) > 3 {
			return 0, fmt.Errorf("invalid time %q: fraction must be 1-3 digits", s)
		}
		n, err := strconv.Atoi(frac)
		if err != nil {
			return 0, fmt.Errorf("invalid time %q: bad fraction field", s)
		}
		switch len(frac) {
		case 1:
			fractionMS = n * 100
		case 2:
			fractionMS = n * 10
		case 3:
			fractionMS = n
		}
	}

	minutes, hours := 0, 0
	if len(parts) >= 2 {
		minDigits := parts[len(parts)-2]
		if len(parts) == 3 && len(minDigits) != 2 {
			return 0, fmt.Errorf("invalid time %q: minutes must be two digits", s)
		}
		minutes, err = strconv.Atoi(minDigits)
		if err != nil || minutes < 0 {
			return 0, fmt.Errorf("invalid time %q: bad minutes field", s)
		}
		if len(parts) == 3 && minutes > 59 {
			return 0, fmt.Errorf("invalid time %q: minutes out of range", s)
		}
	}
	if len(parts) == 3 {
		hours, err = strconv.Atoi(parts[0])
		if err != nil || hours < 0 {
			return 0, fmt.Errorf("invalid time %q: bad hours field", s)
		}
	}

	return ((hours*60+minutes)*60+seconds)*1000 + fractionMS, nil
}

// FormatTime renders milliseconds in the usual scoreboard form, e.g.
// "27.45", "1:02.34" or "1:02:34.56". Milliseconds are truncated to
// centiseconds, which is the resolution of swim timing.
func FormatTime(ms int) string {
	if ms < 0 {
		ms = 0
	}
	centis := (ms % 1000) / 10
	total := ms / 1000
	seconds := total % 60
	minutes := (total / 60) % 60
	hours := total / 3600

	switch {
	case hours > 0:
		return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, seconds, centis)
	case minutes > 0:
		return fmt.Sprintf("%d:%02d.%02d", minutes, seconds, centis)
	default:
		return fmt.Sprintf("%d.%02d", seconds, centis)
	}
}
