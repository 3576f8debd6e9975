package reconciler_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/pedigreecheck/pkg/dataset"
	"github.com/agentstation/pedigreecheck/pkg/errors"
	"github.com/agentstation/pedigreecheck/pkg/logging"
	"github.com/agentstation/pedigreecheck/pkg/matcher"
	"github.com/agentstation/pedigreecheck/pkg/reconciler"
	"github.com/agentstation/pedigreecheck/pkg/registry"
	"github.com/agentstation/pedigreecheck/pkg/report"
)

const (
	rexChip     = "123456789012345"
	rexExact    = "Le chien (Rex) existe déjà dans la base de données avec la même date de naissance et la même puce."
	rexNotFound = "Le chien (Rex) n'existe pas dans la base de données."
)

func reference() []registry.ReferenceRecord {
	return []registry.ReferenceRecord{
		{
			Row:          1,
			Affix:        "duclos",
			Dog:          registry.Dog{UsualName: "Rex", Birthdate: registry.ParseBirthdate("2020-01-01"), Chip: rexChip},
			Owner:        registry.Person{Surname: "Paul", FirstName: "Martin"},
			Veterinarian: registry.Person{Surname: "Lefèvre", FirstName: "Émilie"},
		},
	}
}

func submission(row int, affix, chip string) registry.SubmittedRecord {
	return registry.SubmittedRecord{
		Row:           row,
		OriginalAffix: affix,
		Dog:           registry.Dog{UsualName: "Rex", Birthdate: registry.ParseBirthdate("2020-01-01"), Chip: chip},
		Owner:         registry.Person{Surname: "Martin", FirstName: "Paul"},
		Veterinarian:  registry.Person{Surname: "LEFEVRE", FirstName: "emilie"},
	}
}

func reconcile(t *testing.T, batch []registry.SubmittedRecord, opts ...reconciler.Option) *reconciler.Result {
	t.Helper()
	r, err := reconciler.New(opts...)
	require.NoError(t, err)
	result, err := r.Reconcile(context.Background(), reference(), batch)
	require.NoError(t, err)
	return result
}

func TestReconcile_Scenarios(t *testing.T) {
	t.Run("A identical dog is an exact match", func(t *testing.T) {
		result := reconcile(t, []registry.SubmittedRecord{submission(1, "Du Clos", rexChip)})
		assert.True(t, result.Report.Has(rexExact))
		assert.False(t, result.Report.Has(rexNotFound))
	})

	t.Run("B different chip is not found and short chips are flagged", func(t *testing.T) {
		result := reconcile(t, []registry.SubmittedRecord{submission(1, "Du Clos", "12345678901230")})
		assert.True(t, result.Report.Has(rexNotFound))
		assert.True(t, result.Report.Has(
			"Une puce avec un nombre de chiffres de : 14 a été détectée. "+
				"Veuillez vérifier le pays d'origine de l'animal avec la Puce : 12345678901230. "+
				"Nom Usuel correspondant : Rex. Numéro de ligne dans le formulaire : 1"))
	})

	t.Run("B fifteen digit mismatch only reports the dog", func(t *testing.T) {
		result := reconcile(t, []registry.SubmittedRecord{submission(1, "Du Clos", "123456789012300")})
		assert.True(t, result.Report.Has(rexNotFound))
		assert.Empty(t, result.Report.Filter(func(o matcher.Outcome) bool { return o.Category == matcher.CategoryChip }))
	})

	t.Run("C transposed owner is a suspected swap", func(t *testing.T) {
		result := reconcile(t, []registry.SubmittedRecord{submission(1, "Du Clos", rexChip)})
		assert.True(t, result.Report.Has(
			"Attention : Les noms et prénoms pour le propriétaire (Martin Paul) semblent inversés dans la base de données."))
	})

	t.Run("D affix matches after normalization", func(t *testing.T) {
		result := reconcile(t, []registry.SubmittedRecord{submission(1, "Du Clos", rexChip)})
		assert.True(t, result.Report.Has(
			"L'affixe : (Du Clos) existe déjà dans la base de données sous le nom : (duclos)"))
	})
}

func TestReconcile_EveryCategoryReported(t *testing.T) {
	result := reconcile(t, []registry.SubmittedRecord{submission(1, "Inconnu", rexChip)})

	counts := result.Report.CountByKind()
	for _, cat := range []matcher.Category{
		matcher.CategoryAffix,
		matcher.CategoryVeterinarian,
		matcher.CategoryOwner,
		matcher.CategoryDog,
	} {
		assert.NotEmpty(t, counts[cat], "category %s", cat)
	}
	assert.Equal(t, 1, counts[matcher.CategoryVeterinarian][matcher.KindExactMatch])
	assert.Equal(t, 1, counts[matcher.CategoryAffix][matcher.KindNotFound])
}

func TestReconcile_DoesNotMutateInput(t *testing.T) {
	batch := []registry.SubmittedRecord{submission(1, "Du Clos", rexChip)}
	reconcile(t, batch)
	assert.Equal(t, "Du Clos", batch[0].OriginalAffix)
	assert.True(t, batch[0].Affix.IsZero())
}

func TestReconcile_Deduplicates(t *testing.T) {
	batch := []registry.SubmittedRecord{
		submission(1, "Du Clos", rexChip),
		submission(2, "Du Clos", rexChip),
	}

	var sink report.Collector
	result := reconcile(t, batch, reconciler.WithSink(&sink))

	assert.Len(t, sink.Outcomes, result.Metadata.Stats.Emitted, "the sink sees every emission")
	assert.Less(t, result.Report.Len(), len(sink.Outcomes))
	assert.Equal(t, result.Report.Len(), result.Metadata.Stats.Messages)

	seen := make(map[string]int)
	for _, m := range result.Report.Messages() {
		seen[m]++
	}
	for m, n := range seen {
		assert.Equal(t, 1, n, m)
	}
}

func TestReconcile_IndependentRuns(t *testing.T) {
	r, err := reconciler.New()
	require.NoError(t, err)

	first, err := r.Reconcile(context.Background(), reference(), []registry.SubmittedRecord{submission(1, "Du Clos", rexChip)})
	require.NoError(t, err)
	second, err := r.Reconcile(context.Background(), reference(), nil)
	require.NoError(t, err)

	assert.NotZero(t, first.Report.Len())
	assert.Zero(t, second.Report.Len())
	assert.NotEqual(t, first.Metadata.RunID, second.Metadata.RunID)
	assert.Equal(t, "Reconciliation completed. No submitted records.", second.Summary())
}

func TestReconcile_WorkersMatchSequential(t *testing.T) {
	var batch []registry.SubmittedRecord
	for i := 1; i <= 25; i++ {
		rec := submission(i, fmt.Sprintf("Affixe %d", i%4), rexChip)
		rec.Dog.UsualName = fmt.Sprintf("Chien %d", i%6)
		rec.Owner.Surname = fmt.Sprintf("Nom %d", i%5)
		if i%7 == 0 {
			rec.Dog.Chip = "1234"
		}
		batch = append(batch, rec)
	}

	var seq, par report.Collector
	sequential := reconcile(t, batch, reconciler.WithSink(&seq))
	parallel := reconcile(t, batch, reconciler.WithSink(&par), reconciler.WithWorkers(8))

	assert.Equal(t, sequential.Report.Messages(), parallel.Report.Messages())
	assert.Equal(t, seq.Outcomes, par.Outcomes)
	assert.Equal(t, 8, parallel.Metadata.Workers)
}

func TestReconcile_NearMatch(t *testing.T) {
	rec := submission(1, "Du Clos", rexChip)
	rec.Veterinarian = registry.Person{Surname: "Lefevr", FirstName: "Emilie"}

	off := reconcile(t, []registry.SubmittedRecord{rec})
	assert.True(t, off.Report.Has("Le vétérinaire (Lefevr Emilie) n'existe pas dans la base de données."))

	on := reconcile(t, []registry.SubmittedRecord{rec}, reconciler.WithNearMatch(65))
	assert.True(t, on.Metadata.NearMatch)
	near := on.Report.Filter(func(o matcher.Outcome) bool { return o.Kind == matcher.KindNearMatch })
	require.Len(t, near, 1)
	assert.Contains(t, near[0].Message, "Valeur exacte dans la base de données : Lefèvre Émilie")
}

func TestReconcile_MalformedBirthdateContinues(t *testing.T) {
	rec := submission(1, "Du Clos", rexChip)
	rec.Dog.Birthdate = registry.ParseBirthdate("32/13/2020")

	result := reconcile(t, []registry.SubmittedRecord{rec, submission(2, "Du Clos", rexChip)})

	invalid := result.Report.Filter(func(o matcher.Outcome) bool {
		return o.Category == matcher.CategoryDog && o.Kind == matcher.KindInvalid
	})
	require.Len(t, invalid, 1)
	assert.Equal(t, matcher.SeverityWarning, invalid[0].Severity)
	assert.True(t, result.Report.Has(rexExact), "the second record is still checked")
}

func TestReconcile_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, workers := range []int{1, 4} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			r, err := reconciler.New(reconciler.WithWorkers(workers))
			require.NoError(t, err)
			batch := []registry.SubmittedRecord{submission(1, "a", rexChip), submission(2, "b", rexChip)}
			_, err = r.Reconcile(ctx, reference(), batch)
			assert.True(t, errors.IsCanceled(err))
			assert.ErrorIs(t, err, context.Canceled)
		})
	}
}

func TestTables_SchemaError(t *testing.T) {
	var sink report.Collector
	r, err := reconciler.New(reconciler.WithSink(&sink))
	require.NoError(t, err)

	ref := dataset.NewTable("base", registry.RequiredColumns(registry.DatasetReference), nil)
	sub := dataset.NewTable("form", []string{registry.ColAffix}, [][]string{{"Du Clos"}})

	_, err = r.Tables(context.Background(), ref, sub)
	require.Error(t, err)
	assert.True(t, errors.IsSchemaError(err))
	assert.Empty(t, sink.Outcomes, "no record is processed")
}

func TestTables(t *testing.T) {
	refHeaders := registry.RequiredColumns(registry.DatasetReference)
	subHeaders := registry.RequiredColumns(registry.DatasetSubmitted)

	row := func(headers []string, values map[string]string) []string {
		out := make([]string, len(headers))
		for i, h := range headers {
			out[i] = values[h]
		}
		return out
	}

	ref := dataset.NewTable("base", refHeaders, [][]string{row(refHeaders, map[string]string{
		registry.ColAffix:              "duclos",
		registry.ColReferenceUsualName: "Rex",
		registry.ColBirthdate:          "43831",
		registry.ColChip:               rexChip,
	})})
	sub := dataset.NewTable("form", subHeaders, [][]string{row(subHeaders, map[string]string{
		registry.ColAffix:              "Du Clos",
		registry.ColSubmittedUsualName: "Rex",
		registry.ColBirthdate:          "43831",
		registry.ColChip:               rexChip,
	})})

	tl := logging.NewTestLogger(t)
	r, err := reconciler.New(reconciler.WithLogger(tl.Logger))
	require.NoError(t, err)

	result, err := r.Tables(context.Background(), ref, sub)
	require.NoError(t, err)
	assert.True(t, result.Report.Has(rexExact))
	assert.Equal(t, 1, result.Metadata.Stats.ReferenceRows)
	assert.Equal(t, 1, result.Metadata.Stats.SubmittedRows)

	tl.AssertContains(t, "Starting reconciliation")
	tl.AssertContains(t, result.Metadata.RunID)
}

func TestReconcile_UnreadableReferenceBirthdate(t *testing.T) {
	refs := reference()
	bad := refs[0]
	bad.Row = 2
	bad.Dog.Birthdate = registry.ParseBirthdate("le 3 mars")
	refs = append(refs, bad)

	tl := logging.NewTestLogger(t)
	r, err := reconciler.New(reconciler.WithLogger(tl.Logger))
	require.NoError(t, err)

	result, err := r.Reconcile(context.Background(), refs, []registry.SubmittedRecord{submission(1, "Du Clos", rexChip)})
	require.NoError(t, err)
	assert.True(t, result.Report.Has(rexExact))

	tl.AssertContains(t, "Unreadable reference birthdate")
	tl.AssertContains(t, "le 3 mars")
	assert.Equal(t, 1, strings.Count(tl.Output(), "Unreadable reference birthdate"))
}

func TestNew_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opt  reconciler.Option
	}{
		{"zero workers", reconciler.WithWorkers(0)},
		{"too many workers", reconciler.WithWorkers(1000)},
		{"zero chip digits", reconciler.WithMinChipDigits(0)},
		{"negative threshold", reconciler.WithNearMatch(-1)},
		{"threshold above 100", reconciler.WithNearMatch(101)},
		{"nil sink", reconciler.WithSink(nil)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := reconciler.New(tc.opt)
			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

func TestWithMinChipDigits(t *testing.T) {
	result := reconcile(t, []registry.SubmittedRecord{submission(1, "Du Clos", rexChip)}, reconciler.WithMinChipDigits(16))
	chip := result.Report.Filter(func(o matcher.Outcome) bool { return o.Category == matcher.CategoryChip })
	require.Len(t, chip, 1)
	assert.Contains(t, chip[0].Message, "chiffres de : 15")
}

func TestResult_Summary(t *testing.T) {
	batch := []registry.SubmittedRecord{submission(1, "Inconnu", rexChip)}
	result := reconcile(t, batch)

	assert.True(t, result.HasWarnings())
	assert.Equal(t, fmt.Sprintf(
		"Reconciliation completed. 1 submitted records checked against 1 reference rows: %d messages, %d warnings.",
		result.Metadata.Stats.Messages, result.Metadata.Stats.Warnings), result.Summary())
	assert.False(t, result.Metadata.EndTime.Before(result.Metadata.StartTime))
}
