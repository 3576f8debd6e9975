package matcher

import (
	pkgerrors "github.com/agentstation/pedigreecheck/pkg/errors"
	"github.com/agentstation/pedigreecheck/pkg/normalize"
	"github.com/agentstation/pedigreecheck/pkg/registry"
)

// DogMatcher finds reference rows sharing a submitted dog's compound key:
// usual name, birthdate and chip code. These are structured fields and are
// compared without text normalization; birthdates compare by calendar day.
type DogMatcher struct {
	refs       []registry.ReferenceRecord
	names      []normalize.Key
	unreadable []*pkgerrors.ComparisonError
}

// NewDogMatcher prepares refs for dog matching.
func NewDogMatcher(refs []registry.ReferenceRecord) *DogMatcher {
	m := &DogMatcher{refs: refs, names: make([]normalize.Key, len(refs))}
	for i, ref := range refs {
		m.names[i] = normalize.Text(ref.Dog.UsualName)
		if b := ref.Dog.Birthdate; b.Present() && !b.Valid() {
			m.unreadable = append(m.unreadable, pkgerrors.NewComparisonError(registry.ColBirthdate, b.Raw, ref.Row, b.Err()))
		}
	}
	return m
}

// Unreadable lists the reference rows whose birthdate does not parse. Those
// rows can never be candidates.
func (m *DogMatcher) Unreadable() []*pkgerrors.ComparisonError { return m.unreadable }

// Candidates returns the reference rows sharing dog's compound key.
func (m *DogMatcher) Candidates(dog registry.Dog) []registry.ReferenceRecord {
	name := registry.Clean(dog.UsualName)
	chip := registry.Clean(dog.Chip)
	if name == "" || chip == "" {
		return nil
	}
	var out []registry.ReferenceRecord
	for _, ref := range m.refs {
		if registry.Clean(ref.Dog.UsualName) == name &&
			registry.Clean(ref.Dog.Chip) == chip &&
			ref.Dog.Birthdate.SameDay(dog.Birthdate) {
			out = append(out, ref)
		}
	}
	return out
}

// Match classifies the dog of rec. A present but unreadable birthdate skips
// the check with a single warning.
func (m *DogMatcher) Match(rec registry.SubmittedRecord) []Outcome {
	dog := rec.Dog
	if dog.Birthdate.Present() && !dog.Birthdate.Valid() {
		err := pkgerrors.NewComparisonError(registry.ColBirthdate, dog.Birthdate.Raw, rec.Row, dog.Birthdate.Err())
		return []Outcome{m.comparisonWarning(rec, err)}
	}

	candidates := m.Candidates(dog)
	if len(candidates) == 0 {
		return []Outcome{warning(CategoryDog, KindNotFound, rec.Row, msgDogNotFound, dog.UsualName)}
	}

	outcomes := make([]Outcome, 0, 2*len(candidates))
	for _, ref := range candidates {
		outcomes = append(outcomes, m.nameOutcome(rec))
		if ref.Dog.Birthdate.SameText(dog.Birthdate) {
			outcomes = append(outcomes, info(CategoryDog, KindExactMatch, rec.Row, msgDogExact, dog.UsualName))
		} else {
			outcomes = append(outcomes,
				warning(CategoryDog, KindDiscrepancy, rec.Row, msgDogDateFormat, dog.UsualName, dog.Birthdate.Raw, ref.Dog.Birthdate.Raw).
					withReason(ReasonBirthdateText))
		}
	}
	return outcomes
}

// MatchBatch matches every record of batch, in order.
func (m *DogMatcher) MatchBatch(batch []registry.SubmittedRecord) []Outcome {
	var outcomes []Outcome
	for _, rec := range batch {
		outcomes = append(outcomes, m.Match(rec)...)
	}
	return outcomes
}

// nameOutcome checks the usual name against the whole "Nom usuel" column
// with normalized equality.
func (m *DogMatcher) nameOutcome(rec registry.SubmittedRecord) Outcome {
	key := normalize.Text(rec.Dog.UsualName)
	for _, name := range m.names {
		if name.Equal(key) {
			return info(CategoryDog, KindExactMatch, rec.Row, msgExists, dogLabel, rec.Dog.UsualName)
		}
	}
	return info(CategoryDog, KindNotFound, rec.Row, msgNotFound, dogLabel, rec.Dog.UsualName)
}

func (m *DogMatcher) comparisonWarning(rec registry.SubmittedRecord, err *pkgerrors.ComparisonError) Outcome {
	return warning(CategoryDog, KindInvalid, rec.Row, msgDogBadDate, err.Value, rec.Dog.UsualName, err.Row).
		withReason(ReasonBirthdateMalformed)
}
