package dataset

import (
	"github.com/agentstation/pedigreecheck/pkg/registry"
)

// ReferenceRecords validates t against the reference column contract and
// converts its rows. Row numbers start at 1.
func ReferenceRecords(t *Table) ([]registry.ReferenceRecord, error) {
	if err := t.Require(registry.DatasetReference); err != nil {
		return nil, err
	}
	owner := registry.RoleOwner.ReferenceColumns()
	vet := registry.RoleVeterinarian.ReferenceColumns()

	records := make([]registry.ReferenceRecord, t.Len())
	for i := range t.Rows {
		records[i] = registry.ReferenceRecord{
			Row:   i + 1,
			Affix: t.Cell(i, registry.ColAffix),
			Dog: registry.Dog{
				UsualName: t.Cell(i, registry.ColReferenceUsualName),
				Birthdate: registry.ParseBirthdate(t.Cell(i, registry.ColBirthdate)),
				Chip:      t.Cell(i, registry.ColChip),
			},
			Owner:        t.person(i, owner),
			Veterinarian: t.person(i, vet),
		}
	}
	return records, nil
}

// SubmittedRecords validates t against the submitted column contract and
// converts its rows. Row numbers are positions in the batch, starting at 1.
func SubmittedRecords(t *Table) ([]registry.SubmittedRecord, error) {
	if err := t.Require(registry.DatasetSubmitted); err != nil {
		return nil, err
	}
	owner := registry.RoleOwner.SubmittedColumns()
	vet := registry.RoleVeterinarian.SubmittedColumns()

	records := make([]registry.SubmittedRecord, t.Len())
	for i := range t.Rows {
		records[i] = registry.SubmittedRecord{
			Row:           i + 1,
			OriginalAffix: t.Cell(i, registry.ColAffix),
			Dog: registry.Dog{
				UsualName: t.Cell(i, registry.ColSubmittedUsualName),
				Birthdate: registry.ParseBirthdate(t.Cell(i, registry.ColBirthdate)),
				Chip:      t.Cell(i, registry.ColChip),
			},
			Owner:        t.person(i, owner),
			Veterinarian: t.person(i, vet),
		}
	}
	return records, nil
}

func (t *Table) person(i int, cols registry.NameColumns) registry.Person {
	return registry.Person{
		Surname:   t.Cell(i, cols.Surname),
		FirstName: t.Cell(i, cols.FirstName),
	}
}
