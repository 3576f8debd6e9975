// Package matcher evaluates one submitted record against the reference
// dataset. Each check returns Outcomes; none of them fails or short-circuits.
package matcher

import "fmt"

// Severity is the log level attached to an outcome.
type Severity int

const (
	// SeverityInfo is an informational outcome.
	SeverityInfo Severity = iota
	// SeverityWarning needs operator attention.
	SeverityWarning
)

// String returns the audit log tag of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Category is the field family an outcome is about.
type Category string

const (
	CategoryAffix        Category = "affix"
	CategoryChip         Category = "chip"
	CategoryVeterinarian Category = "veterinarian"
	CategoryOwner        Category = "owner"
	CategoryDog          Category = "dog"
)

// Kind classifies an outcome.
type Kind string

const (
	// KindExactMatch means the value exists in the reference dataset.
	KindExactMatch Kind = "exact_match"
	// KindDiscrepancy means a candidate was found but some field disagrees.
	KindDiscrepancy Kind = "found_with_discrepancy"
	// KindSuspectedSwap means first name and surname appear transposed.
	KindSuspectedSwap Kind = "suspected_swap"
	// KindNearMatch means only an approximate spelling was found.
	KindNearMatch Kind = "near_match"
	// KindNotFound means the value is absent from the reference dataset.
	KindNotFound Kind = "not_found"
	// KindInvalid flags a value that failed a format check.
	KindInvalid Kind = "invalid"
)

// Reason tags further qualify discrepancies and invalid values.
const (
	ReasonBirthdateText      = "birthdate_text"
	ReasonBirthdateMalformed = "birthdate_malformed"
	ReasonChipShort          = "chip_short"
	ReasonAffixAbsent        = "affix_absent"
)

// Outcome is the result of one check on one record.
type Outcome struct {
	Category Category `json:"category" yaml:"category"`
	Kind     Kind     `json:"kind" yaml:"kind"`
	Reason   string   `json:"reason,omitempty" yaml:"reason,omitempty"`
	Severity Severity `json:"severity" yaml:"severity"`
	Row      int      `json:"row" yaml:"row"`
	Message  string   `json:"message" yaml:"message"`
}

// String returns the message.
func (o Outcome) String() string { return o.Message }

func info(cat Category, kind Kind, row int, format string, args ...any) Outcome {
	return Outcome{Category: cat, Kind: kind, Severity: SeverityInfo, Row: row, Message: fmt.Sprintf(format, args...)}
}

func warning(cat Category, kind Kind, row int, format string, args ...any) Outcome {
	return Outcome{Category: cat, Kind: kind, Severity: SeverityWarning, Row: row, Message: fmt.Sprintf(format, args...)}
}

func (o Outcome) withReason(reason string) Outcome {
	o.Reason = reason
	return o
}
