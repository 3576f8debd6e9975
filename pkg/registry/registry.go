// Package registry defines the pedigree records reconciled by the engine and
// the column contract of the two input datasets.
package registry

import (
	"strings"

	"github.com/agentstation/pedigreecheck/pkg/normalize"
)

// Role selects which pair of name columns a person is read from.
type Role string

const (
	// RoleOwner reads the Propriétaire columns.
	RoleOwner Role = "Propriétaire"
	// RoleVeterinarian reads the Vétérinaire columns.
	RoleVeterinarian Role = "Vétérinaire"
)

// Roles returns every role in check order.
func Roles() []Role {
	return []Role{RoleVeterinarian, RoleOwner}
}

// Person is a first-name / surname pair as written in a dataset.
type Person struct {
	Surname   string `json:"surname" yaml:"surname"`
	FirstName string `json:"first_name" yaml:"first_name"`
}

// Display renders the person the way outcome messages cite it: "Nom Prénom".
func (p Person) Display() string {
	return normalize.Name(p.Surname, p.FirstName)
}

// Dog is the identity of an animal.
type Dog struct {
	UsualName string    `json:"usual_name" yaml:"usual_name"`
	Birthdate Birthdate `json:"birthdate" yaml:"birthdate"`
	Chip      string    `json:"chip" yaml:"chip"`
}

// ReferenceRecord is one row of the canonical dataset. Row is 1-based.
type ReferenceRecord struct {
	Row          int    `json:"row" yaml:"row"`
	Affix        string `json:"affix,omitempty" yaml:"affix,omitempty"`
	Dog          Dog    `json:"dog" yaml:"dog"`
	Owner        Person `json:"owner" yaml:"owner"`
	Veterinarian Person `json:"veterinarian" yaml:"veterinarian"`
}

// Person returns the person recorded for role.
func (r ReferenceRecord) Person(role Role) Person {
	if role == RoleOwner {
		return r.Owner
	}
	return r.Veterinarian
}

// SubmittedRecord is one row of the intake batch. Row is the 1-based position
// in the batch. OriginalAffix is kept as written; Affix is the working copy
// filled in by the engine.
type SubmittedRecord struct {
	Row           int           `json:"row" yaml:"row"`
	OriginalAffix string        `json:"original_affix,omitempty" yaml:"original_affix,omitempty"`
	Affix         normalize.Key `json:"-" yaml:"-"`
	Dog           Dog           `json:"dog" yaml:"dog"`
	Owner         Person        `json:"owner" yaml:"owner"`
	Veterinarian  Person        `json:"veterinarian" yaml:"veterinarian"`
}

// Person returns the person submitted for role.
func (r SubmittedRecord) Person(role Role) Person {
	if role == RoleOwner {
		return r.Owner
	}
	return r.Veterinarian
}

// WithNormalizedAffix returns a copy of r whose Affix working field holds the
// normalized form of OriginalAffix.
func (r SubmittedRecord) WithNormalizedAffix() SubmittedRecord {
	r.Affix = normalize.Affix(r.OriginalAffix)
	return r
}

// Clean trims a raw cell value. Blank cells are absent values.
func Clean(s string) string {
	return strings.TrimSpace(s)
}
