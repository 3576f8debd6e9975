// Package reconciler checks a batch of submitted registration records against
// the reference registry. Each record goes through the affix lookup, the chip
// validator, both person matchers and the dog matcher; every emitted outcome is
// forwarded to a sink and merged into a deduplicated report.
package reconciler

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/agentstation/pedigreecheck/pkg/dataset"
	"github.com/agentstation/pedigreecheck/pkg/errors"
	"github.com/agentstation/pedigreecheck/pkg/logging"
	"github.com/agentstation/pedigreecheck/pkg/matcher"
	"github.com/agentstation/pedigreecheck/pkg/registry"
	"github.com/agentstation/pedigreecheck/pkg/report"
)

// Reconciler is the main interface for reconciling submitted records.
type Reconciler interface {
	// Reconcile checks every submitted record against reference. Both inputs
	// are read-only; the result is a new value on every call.
	Reconcile(ctx context.Context, reference []registry.ReferenceRecord, submitted []registry.SubmittedRecord) (*Result, error)

	// Tables validates both tables against the column contract, converts
	// them and reconciles. A SchemaError is returned before any record is
	// checked.
	Tables(ctx context.Context, reference, submitted *dataset.Table) (*Result, error)
}

// reconciler is the default implementation of Reconciler.
type reconciler struct {
	minChipDigits int
	nearMatch     bool
	threshold     int
	workers       int
	sink          report.Sink
	logger        *zerolog.Logger
}

// New creates a new Reconciler with options.
func New(opts ...Option) (Reconciler, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &reconciler{
		minChipDigits: options.minChipDigits,
		nearMatch:     options.nearMatch,
		threshold:     options.threshold,
		workers:       options.workers,
		sink:          options.sink,
		logger:        options.logger,
	}, nil
}

// run holds the read-only state shared by every record of one reconciliation.
type run struct {
	affixes    *matcher.AffixIndex
	chips      matcher.ChipValidator
	persons    map[registry.Role]*matcher.PersonMatcher
	batch      []registry.SubmittedRecord
	dogs       []matcher.Outcome
	unreadable []*errors.ComparisonError
}

// Tables validates, converts and reconciles two loaded tables.
func (r *reconciler) Tables(ctx context.Context, reference, submitted *dataset.Table) (*Result, error) {
	refs, err := dataset.ReferenceRecords(reference)
	if err != nil {
		return nil, err
	}
	subs, err := dataset.SubmittedRecords(submitted)
	if err != nil {
		return nil, err
	}
	return r.Reconcile(ctx, refs, subs)
}

// Reconcile performs one pass over submitted in order.
func (r *reconciler) Reconcile(ctx context.Context, reference []registry.ReferenceRecord, submitted []registry.SubmittedRecord) (*Result, error) {
	result := NewResult(uuid.NewString())
	result.Metadata.Workers = r.workers
	result.Metadata.NearMatch = r.nearMatch
	result.Metadata.Stats.ReferenceRows = len(reference)
	result.Metadata.Stats.SubmittedRows = len(submitted)

	ctx = logging.WithRun(ctx, result.Metadata.RunID)
	logger := r.loggerFor(ctx)

	rc := r.prepare(reference, submitted)
	logger.Info().
		Int("reference_rows", len(reference)).
		Int("submitted_rows", len(submitted)).
		Int("affixes", rc.affixes.Len()).
		Int("workers", r.workers).
		Msg("Starting reconciliation")
	for _, e := range rc.unreadable {
		logger.Warn().
			Int("reference_row", e.Row).
			Str("value", e.Value).
			Err(e.Err).
			Msg("Unreadable reference birthdate, row excluded from dog matching")
	}

	emit := func(rec registry.SubmittedRecord, outcomes []matcher.Outcome) {
		added := 0
		for _, o := range outcomes {
			r.sink.Emit(o)
			if result.Report.Add(o) {
				added++
			}
		}
		result.Metadata.Stats.Emitted += len(outcomes)
		logger.Debug().
			Int("row", rec.Row).
			Int("outcomes", len(outcomes)).
			Int("new_messages", added).
			Msg("Checked record")
	}

	if r.workers == 1 || len(rc.batch) < 2 {
		for _, rec := range rc.batch {
			if err := ctx.Err(); err != nil {
				return nil, canceled(err)
			}
			emit(rec, rc.check(rec))
		}
	} else {
		checked, err := rc.checkAll(ctx, r.workers)
		if err != nil {
			return nil, canceled(err)
		}
		for i, rec := range rc.batch {
			emit(rec, checked[i])
		}
	}

	result.Finalize()
	logger.Info().
		Int("messages", result.Metadata.Stats.Messages).
		Int("warnings", result.Metadata.Stats.Warnings).
		Dur("duration", result.Metadata.Duration).
		Msg("Reconciliation completed")

	return result, nil
}

func (r *reconciler) loggerFor(ctx context.Context) *zerolog.Logger {
	if r.logger == nil {
		return logging.FromContext(ctx)
	}
	logger := r.logger.With().Str("run_id", logging.RunID(ctx)).Logger()
	return &logger
}

// prepare builds the lookup structures once per run and fills the normalized
// affix on a working copy of each submitted record.
func (r *reconciler) prepare(reference []registry.ReferenceRecord, submitted []registry.SubmittedRecord) *run {
	var personOpts []matcher.PersonOption
	if r.nearMatch {
		personOpts = append(personOpts, matcher.WithNearMatch(r.threshold))
	}

	rc := &run{
		affixes: matcher.NewAffixIndex(reference),
		chips:   matcher.NewChipValidator(r.minChipDigits),
		persons: make(map[registry.Role]*matcher.PersonMatcher, len(registry.Roles())),
		batch:   make([]registry.SubmittedRecord, len(submitted)),
	}
	for _, role := range registry.Roles() {
		rc.persons[role] = matcher.NewPersonMatcher(role, reference, personOpts...)
	}
	for i, rec := range submitted {
		rc.batch[i] = rec.WithNormalizedAffix()
	}

	// Dog matching covers the whole batch on behalf of every record and does
	// not depend on the current record, so it is evaluated once. The output
	// equals a rescan per record; see DESIGN.md, decision 9.
	dogs := matcher.NewDogMatcher(reference)
	rc.unreadable = dogs.Unreadable()
	rc.dogs = dogs.MatchBatch(rc.batch)
	return rc
}

// check runs every check for rec without short-circuiting: affix, chip,
// veterinarian, owner, then the dog outcomes of the whole batch.
func (rc *run) check(rec registry.SubmittedRecord) []matcher.Outcome {
	outcomes := make([]matcher.Outcome, 0, 4+len(rc.dogs))
	outcomes = append(outcomes, rc.affixes.Check(rec))
	if o, flagged := rc.chips.Validate(rec); flagged {
		outcomes = append(outcomes, o)
	}
	for _, role := range registry.Roles() {
		outcomes = append(outcomes, rc.persons[role].Match(rec.Row, rec.Person(role)))
	}
	return append(outcomes, rc.dogs...)
}

// checkAll checks every record with up to workers goroutines. Results are
// indexed by record position.
func (rc *run) checkAll(ctx context.Context, workers int) ([][]matcher.Outcome, error) {
	checked := make([][]matcher.Outcome, len(rc.batch))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, rec := range rc.batch {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			checked[i] = rc.check(rec)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return checked, nil
}

func canceled(err error) error {
	return fmt.Errorf("%w: %w", errors.ErrCanceled, err)
}
