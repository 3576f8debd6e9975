package matcher

import (
	"unicode"

	"github.com/agentstation/pedigreecheck/pkg/constants"
	"github.com/agentstation/pedigreecheck/pkg/registry"
)

// ChipValidator flags chip codes with fewer digits than MinDigits. It is a
// soft check: a flagged record is still reconciled.
type ChipValidator struct {
	MinDigits int
}

// NewChipValidator returns a validator using minDigits, or the registry
// default when minDigits is not positive.
func NewChipValidator(minDigits int) ChipValidator {
	if minDigits <= 0 {
		minDigits = constants.MinChipDigits
	}
	return ChipValidator{MinDigits: minDigits}
}

// CountDigits returns the number of decimal digit characters in s.
func CountDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

// Validate checks the chip code of rec. It reports false when there is
// nothing to say: no chip code, or enough digits.
func (v ChipValidator) Validate(rec registry.SubmittedRecord) (Outcome, bool) {
	chip := registry.Clean(rec.Dog.Chip)
	if chip == "" {
		return Outcome{}, false
	}
	digits := CountDigits(chip)
	if digits >= v.MinDigits {
		return Outcome{}, false
	}
	return warning(CategoryChip, KindInvalid, rec.Row, msgChipShort, digits, chip, rec.Dog.UsualName, rec.Row).
		withReason(ReasonChipShort), true
}
