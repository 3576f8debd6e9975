package registry

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// dayLayout is the canonical form of a parsed birthdate.
const dayLayout = "2006-01-02"

// layouts accepted for text birthdates, tried in order. Slashed and dotted
// dates are day-first; the dashed two-digit year form is excelize's default
// "mm-dd-yy" rendering.
var layouts = []string{
	dayLayout,
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2/1/2006",
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"2.1.2006",
	"01-02-06",
}

// Birthdate is a dog birthdate as written in a dataset, with its parsed
// calendar day when the text is readable.
type Birthdate struct {
	Raw string `json:"raw" yaml:"raw"`
	day time.Time
	err error
}

// ParseBirthdate parses raw. Excel serial numbers are decoded with the 1900
// date system. A blank value is absent, not malformed.
func ParseBirthdate(raw string) Birthdate {
	b := Birthdate{Raw: Clean(raw)}
	if b.Raw == "" {
		return b
	}
	if serial, err := strconv.ParseFloat(b.Raw, 64); err == nil && serial > 0 && !math.IsInf(serial, 0) {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			b.err = err
			return b
		}
		b.day = truncateDay(t)
		return b
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, b.Raw); err == nil {
			b.day = truncateDay(t)
			return b
		}
	}
	b.err = fmt.Errorf("unrecognized date format %q", b.Raw)
	return b
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Present reports whether a value was written.
func (b Birthdate) Present() bool { return b.Raw != "" }

// Valid reports whether the value was written and parsed.
func (b Birthdate) Valid() bool { return b.Present() && b.err == nil }

// Err returns the parse failure of a malformed value.
func (b Birthdate) Err() error { return b.err }

// Day returns the canonical "2006-01-02" form, or "" when not valid.
func (b Birthdate) Day() string {
	if !b.Valid() {
		return ""
	}
	return b.day.Format(dayLayout)
}

// SameDay reports whether both birthdates are valid and fall on the same day.
func (b Birthdate) SameDay(other Birthdate) bool {
	return b.Valid() && other.Valid() && b.day.Equal(other.day)
}

// SameText reports whether both birthdates were written identically.
func (b Birthdate) SameText(other Birthdate) bool {
	return b.Present() && strings.EqualFold(b.Raw, other.Raw)
}

// String returns the value as written.
func (b Birthdate) String() string { return b.Raw }
