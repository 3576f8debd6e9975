package registry

import "sort"

// Dataset identifies one side of a reconciliation run.
type Dataset string

const (
	// DatasetReference is the canonical registry data.
	DatasetReference Dataset = "reference"
	// DatasetSubmitted is the intake batch awaiting reconciliation.
	DatasetSubmitted Dataset = "submitted"
)

// Fixed column names. Column names are part of the input contract and must
// match exactly.
const (
	ColReferenceUsualName = "Nom usuel"
	ColSubmittedUsualName = "Nom Usuel (animal)"
	ColBirthdate          = "Date de naissance"
	ColChip               = "Puce"
	ColAffix              = "Affixe"
)

// NameColumns names the surname and first-name columns of one role.
type NameColumns struct {
	Surname   string
	FirstName string
}

type roleColumns struct {
	reference NameColumns
	submitted NameColumns
	label     string
}

var roleTable = map[Role]roleColumns{
	RoleOwner: {
		reference: NameColumns{Surname: "Propriétaire - Nom", FirstName: "Propriétaire - Prénom"},
		submitted: NameColumns{Surname: "Nom (propriétaire)", FirstName: "Prénom (propriétaire)"},
		label:     "Le propriétaire",
	},
	RoleVeterinarian: {
		reference: NameColumns{Surname: "Vétérinaire - Nom", FirstName: "Vétérinaire - Prénom"},
		submitted: NameColumns{Surname: "Nom (vétérinaire)", FirstName: "Prénom (vétérinaire)"},
		label:     "Le vétérinaire",
	},
}

// ReferenceColumns returns the name columns read for role in the reference dataset.
func (r Role) ReferenceColumns() NameColumns { return roleTable[r].reference }

// SubmittedColumns returns the name columns read for role in the submitted dataset.
func (r Role) SubmittedColumns() NameColumns { return roleTable[r].submitted }

// Label is the subject used in outcome messages ("Le propriétaire").
func (r Role) Label() string { return roleTable[r].label }

// RequiredColumns lists every column the dataset must carry, sorted.
func RequiredColumns(ds Dataset) []string {
	var cols []string
	switch ds {
	case DatasetReference:
		cols = []string{ColReferenceUsualName, ColBirthdate, ColChip, ColAffix}
	case DatasetSubmitted:
		cols = []string{ColSubmittedUsualName, ColBirthdate, ColChip, ColAffix}
	default:
		return nil
	}
	for _, role := range Roles() {
		nc := role.ReferenceColumns()
		if ds == DatasetSubmitted {
			nc = role.SubmittedColumns()
		}
		cols = append(cols, nc.Surname, nc.FirstName)
	}
	sort.Strings(cols)
	return cols
}

// Missing returns the required columns of ds absent from headers, sorted.
func Missing(ds Dataset, headers []string) []string {
	have := make(map[string]bool, len(headers))
	for _, h := range headers {
		have[h] = true
	}
	var missing []string
	for _, col := range RequiredColumns(ds) {
		if !have[col] {
			missing = append(missing, col)
		}
	}
	return missing
}
