package matcher_test

import (
	"github.com/agentstation/pedigreecheck/pkg/registry"
)

func refDog(name, birthdate, chip string) registry.ReferenceRecord {
	return registry.ReferenceRecord{
		Row: 1,
		Dog: registry.Dog{UsualName: name, Birthdate: registry.ParseBirthdate(birthdate), Chip: chip},
	}
}

func subDog(row int, name, birthdate, chip string) registry.SubmittedRecord {
	return registry.SubmittedRecord{
		Row: row,
		Dog: registry.Dog{UsualName: name, Birthdate: registry.ParseBirthdate(birthdate), Chip: chip},
	}
}

func refOwner(surname, firstName string) registry.ReferenceRecord {
	return registry.ReferenceRecord{Owner: registry.Person{Surname: surname, FirstName: firstName}}
}
