package matcher_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"

	"github.com/agentstation/pedigreecheck/pkg/matcher"
	"github.com/agentstation/pedigreecheck/pkg/registry"
)

func TestPersonMatcher_Tiers(t *testing.T) {
	refs := []registry.ReferenceRecord{
		refOwner("Dupont", "Jean"),
		refOwner("Paul", "Martin"), // stored transposed
		{Veterinarian: registry.Person{Surname: "Lefèvre", FirstName: "Émilie"}},
	}

	tests := []struct {
		name    string
		role    registry.Role
		person  registry.Person
		kind    matcher.Kind
		message string
	}{
		{
			name:    "exact",
			role:    registry.RoleOwner,
			person:  registry.Person{Surname: "Dupont", FirstName: "Jean"},
			kind:    matcher.KindExactMatch,
			message: "Le propriétaire (Dupont Jean) existe déjà dans la base de données.",
		},
		{
			name:   "exact ignoring case and accents",
			role:   registry.RoleVeterinarian,
			person: registry.Person{Surname: "LEFEVRE", FirstName: "emilie"},
			kind:   matcher.KindExactMatch,
		},
		{
			name:    "swapped in the reference dataset",
			role:    registry.RoleOwner,
			person:  registry.Person{Surname: "Martin", FirstName: "Paul"},
			kind:    matcher.KindSuspectedSwap,
			message: "Attention : Les noms et prénoms pour le propriétaire (Martin Paul) semblent inversés dans la base de données.",
		},
		{
			name:    "not found",
			role:    registry.RoleOwner,
			person:  registry.Person{Surname: "Bernard", FirstName: "Luc"},
			kind:    matcher.KindNotFound,
			message: "Le propriétaire (Bernard Luc) n'existe pas dans la base de données.",
		},
		{
			name:   "role selects the columns",
			role:   registry.RoleVeterinarian,
			person: registry.Person{Surname: "Dupont", FirstName: "Jean"},
			kind:   matcher.KindNotFound,
		},
		{
			name:   "absent names never match",
			role:   registry.RoleOwner,
			person: registry.Person{},
			kind:   matcher.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := matcher.NewPersonMatcher(tt.role, refs).Match(3, tt.person)
			assert.Equal(t, tt.kind, out.Kind)
			assert.Equal(t, matcher.SeverityInfo, out.Severity)
			assert.Equal(t, 3, out.Row)
			if tt.message != "" {
				assert.Equal(t, tt.message, out.Message)
			}
		})
	}
}

func TestPersonMatcher_Categories(t *testing.T) {
	refs := []registry.ReferenceRecord{refOwner("A", "B")}
	assert.Equal(t, matcher.CategoryOwner, matcher.MatchPerson(registry.RoleOwner, 1, registry.Person{}, refs).Category)
	assert.Equal(t, matcher.CategoryVeterinarian, matcher.MatchPerson(registry.RoleVeterinarian, 1, registry.Person{}, refs).Category)
}

func TestPersonMatcher_SwapSymmetry(t *testing.T) {
	a := matcher.MatchPerson(registry.RoleOwner, 1,
		registry.Person{Surname: "Dupont", FirstName: "Jean"},
		[]registry.ReferenceRecord{refOwner("Jean", "Dupont")})
	b := matcher.MatchPerson(registry.RoleOwner, 1,
		registry.Person{Surname: "Jean", FirstName: "Dupont"},
		[]registry.ReferenceRecord{refOwner("Dupont", "Jean")})

	assert.Equal(t, matcher.KindSuspectedSwap, a.Kind)
	assert.Equal(t, a.Kind, b.Kind)
	assert.Equal(t, a.Severity, b.Severity)
}

func TestPersonMatcher_ExactlyOneTier(t *testing.T) {
	faker := gofakeit.New(7)
	pool := make([]string, 12)
	for i := range pool {
		pool[i] = faker.LastName()
	}
	pick := func() string { return pool[faker.Number(0, len(pool)-1)] }

	refs := make([]registry.ReferenceRecord, 20)
	for i := range refs {
		refs[i] = refOwner(pick(), pick())
	}
	m := matcher.NewPersonMatcher(registry.RoleOwner, refs)

	for i := 0; i < 500; i++ {
		p := registry.Person{Surname: pick(), FirstName: pick()}
		out := m.Match(1, p)

		exact, swapped := false, false
		for _, r := range refs {
			if r.Owner.Surname == p.Surname && r.Owner.FirstName == p.FirstName {
				exact = true
			}
			if r.Owner.Surname == p.FirstName && r.Owner.FirstName == p.Surname {
				swapped = true
			}
		}
		switch {
		case exact:
			assert.Equal(t, matcher.KindExactMatch, out.Kind, "%+v", p)
		case swapped:
			assert.Equal(t, matcher.KindSuspectedSwap, out.Kind, "%+v", p)
		default:
			assert.Equal(t, matcher.KindNotFound, out.Kind, "%+v", p)
		}
	}
}

func TestPersonMatcher_NearMatch(t *testing.T) {
	refs := []registry.ReferenceRecord{refOwner("Dupont", "Jean"), refOwner("Moreau", "Claire")}

	t.Run("disabled by default", func(t *testing.T) {
		out := matcher.NewPersonMatcher(registry.RoleOwner, refs).Match(1, registry.Person{Surname: "Dupond", FirstName: "Jean"})
		assert.Equal(t, matcher.KindNotFound, out.Kind)
	})

	t.Run("reports closest match and score", func(t *testing.T) {
		m := matcher.NewPersonMatcher(registry.RoleOwner, refs, matcher.WithNearMatch(65))
		out := m.Match(1, registry.Person{Surname: "Dupond", FirstName: "Jean"})
		assert.Equal(t, matcher.KindNearMatch, out.Kind)
		assert.Equal(t, matcher.SeverityInfo, out.Severity)
		assert.Contains(t, out.Message, "Valeur exacte dans la base de données : Dupont Jean")
		assert.Contains(t, out.Message, "similarité : 95")
	})

	t.Run("below threshold is not found", func(t *testing.T) {
		m := matcher.NewPersonMatcher(registry.RoleOwner, refs, matcher.WithNearMatch(65))
		out := m.Match(1, registry.Person{Surname: "Xu", FirstName: "Li"})
		assert.Equal(t, matcher.KindNotFound, out.Kind)
	})

	t.Run("exact and swap still win", func(t *testing.T) {
		m := matcher.NewPersonMatcher(registry.RoleOwner, refs, matcher.WithNearMatch(0))
		assert.Equal(t, matcher.KindExactMatch, m.Match(1, registry.Person{Surname: "Dupont", FirstName: "Jean"}).Kind)
		assert.Equal(t, matcher.KindSuspectedSwap, m.Match(1, registry.Person{Surname: "Jean", FirstName: "Dupont"}).Kind)
	})
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 100, matcher.Similarity("jean", "jean"))
	assert.Equal(t, 100, matcher.Similarity("", ""))
	assert.Equal(t, 0, matcher.Similarity("abc", ""))
	assert.Equal(t, 95, matcher.Similarity("dupond jean", "dupont jean"))
}
