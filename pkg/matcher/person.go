package matcher

import (
	"github.com/agentstation/pedigreecheck/pkg/normalize"
	"github.com/agentstation/pedigreecheck/pkg/registry"
)

type personRow struct {
	surname   normalize.Key
	firstName normalize.Key
	person    registry.Person
}

// PersonMatcher matches submitted people of one role against the reference
// dataset's name columns for that role.
//
// Tiers run in order and exactly one fires per call:
//  1. exact: surname and first name both equal
//  2. swap: reference surname equals submitted first name and vice versa
//  3. near (only when enabled): closest spelling at or above the threshold
//  4. not found
type PersonMatcher struct {
	role registry.Role
	rows []personRow
	near *nearMatcher
}

// PersonOption configures a PersonMatcher.
type PersonOption func(*PersonMatcher)

// WithNearMatch enables the approximate-spelling tier. threshold is a
// similarity ratio between 0 and 100.
func WithNearMatch(threshold int) PersonOption {
	return func(m *PersonMatcher) {
		m.near = &nearMatcher{threshold: threshold}
	}
}

// NewPersonMatcher normalizes the role's name columns of refs.
func NewPersonMatcher(role registry.Role, refs []registry.ReferenceRecord, opts ...PersonOption) *PersonMatcher {
	m := &PersonMatcher{role: role, rows: make([]personRow, len(refs))}
	for i, ref := range refs {
		p := ref.Person(role)
		m.rows[i] = personRow{
			surname:   normalize.Text(p.Surname),
			firstName: normalize.Text(p.FirstName),
			person:    p,
		}
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// MatchPerson is a one-shot PersonMatcher call.
func MatchPerson(role registry.Role, row int, p registry.Person, refs []registry.ReferenceRecord) Outcome {
	return NewPersonMatcher(role, refs).Match(row, p)
}

// Role returns the role being matched.
func (m *PersonMatcher) Role() registry.Role { return m.role }

// Match classifies p. row is the submitted record's position.
func (m *PersonMatcher) Match(row int, p registry.Person) Outcome {
	surname := normalize.Text(p.Surname)
	firstName := normalize.Text(p.FirstName)
	label := m.role.Label()
	cat := roleCategory(m.role)
	display := p.Display()

	for _, r := range m.rows {
		if r.surname.Equal(surname) && r.firstName.Equal(firstName) {
			return info(cat, KindExactMatch, row, msgExists, label, display)
		}
	}

	for _, r := range m.rows {
		if r.surname.Equal(firstName) && r.firstName.Equal(surname) {
			return info(cat, KindSuspectedSwap, row, msgSwapped, lowerFirst(label), display)
		}
	}

	if m.near != nil {
		if best, score, ok := m.near.closest(normalize.Name(string(surname), string(firstName)), m.rows); ok {
			return info(cat, KindNearMatch, row, msgNear, label, display, best.Display(), score)
		}
	}

	return info(cat, KindNotFound, row, msgNotFound, label, display)
}

func roleCategory(role registry.Role) Category {
	if role == registry.RoleOwner {
		return CategoryOwner
	}
	return CategoryVeterinarian
}

// lowerFirst turns "Le vétérinaire" into "le vétérinaire" for mid-sentence use.
func lowerFirst(s string) string {
	if s == "" || s[0] < 'A' || s[0] > 'Z' {
		return s
	}
	return string(s[0]+'a'-'A') + s[1:]
}
