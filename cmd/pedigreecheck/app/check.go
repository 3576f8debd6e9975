package app

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/agentstation/pedigreecheck/internal/cmd/output"
	"github.com/agentstation/pedigreecheck/pkg/dataset"
	"github.com/agentstation/pedigreecheck/pkg/errors"
	"github.com/agentstation/pedigreecheck/pkg/logging"
	"github.com/agentstation/pedigreecheck/pkg/reconciler"
	"github.com/agentstation/pedigreecheck/pkg/registry"
)

// NewCheckCommand creates the check subcommand.
func (a *App) NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "check <reference> <submitted>",
		GroupID: "core",
		Short:   "Reconcile submitted records against the reference registry",
		Long: `Check loads the reference dataset and the submitted batch (.xlsx or
.csv), verifies both carry the required columns, and reconciles every
submitted record.

Every emitted outcome is appended to verification_log_<timestamp>.log in
the log directory. The deduplicated messages are written to the output file.`,
		Example: `  pedigreecheck check registry.xlsx responses.xlsx
  pedigreecheck check registry.xlsx responses.xlsx --near-match --workers 4
  pedigreecheck check registry.csv responses.csv --submitted-sheet "" -o json`,
		Args: cobra.ExactArgs(2),
		RunE: a.runCheck,
	}

	flags := cmd.Flags()
	flags.String("reference-sheet", "", "reference worksheet name (default: first sheet)")
	flags.String("submitted-sheet", "", "submitted worksheet name (default \"Form Responses\")")
	flags.Int("min-chip-digits", 0, "chip codes shorter than this are flagged for review (default 15)")
	flags.Bool("near-match", false, "enable the fuzzy person matching tier")
	flags.Int("near-match-threshold", 0, "minimum similarity ratio for near matches, 0-100 (default 65)")
	flags.Int("workers", 0, "records reconciled concurrently (default 1)")
	flags.String("log-dir", "", "directory receiving the audit log (default \".\")")
	flags.String("output-file", "", "deduplicated report file (default \"output_file.log\")")
	flags.Bool("all", false, "list every outcome, not only warnings")

	return cmd
}

func (a *App) runCheck(cmd *cobra.Command, args []string) (err error) {
	if err := a.applyCheckFlags(cmd); err != nil {
		return err
	}
	refPath, subPath := args[0], args[1]
	ctx := logging.WithLogger(cmd.Context(), a.logger)

	reference, err := loadDataset(ctx, registry.DatasetReference, refPath, a.config.ReferenceSheet)
	if err != nil {
		return err
	}
	submitted, err := loadDataset(ctx, registry.DatasetSubmitted, subPath, a.config.SubmittedSheet)
	if err != nil {
		return err
	}

	audit, err := logging.OpenAudit(a.config.LogDir, a.now())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := audit.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	opts := []reconciler.Option{
		reconciler.WithMinChipDigits(a.config.MinChipDigits),
		reconciler.WithWorkers(a.config.Workers),
		reconciler.WithSink(audit),
		reconciler.WithLogger(a.logger),
	}
	if a.config.NearMatchEnabled {
		opts = append(opts, reconciler.WithNearMatch(a.config.NearMatchThreshold))
	}
	r, err := reconciler.New(opts...)
	if err != nil {
		return err
	}

	result, err := r.Tables(ctx, reference, submitted)
	if err != nil {
		if errors.IsCanceled(err) {
			logging.FromContext(logging.WithError(ctx, err)).Warn().Msg("Reconciliation canceled, no report written")
		}
		return err
	}
	if err := result.Report.WriteFile(a.config.OutputFile); err != nil {
		return err
	}

	a.logger.Info().
		Str("audit_log", audit.Path()).
		Str("output_file", a.config.OutputFile).
		Int("messages", result.Metadata.Stats.Messages).
		Msg("Reconciliation finished")

	report := output.NewCheckReport(refPath, subPath, result)
	report.AuditLog = audit.Path()
	report.OutputFile = a.config.OutputFile
	all, _ := cmd.Flags().GetBool("all")
	return output.FormatCheck(a.stdout, output.DetectFormat(a.config.Format), report, result, all)
}

// loadDataset reads one input and checks it carries the columns of ds.
func loadDataset(ctx context.Context, ds registry.Dataset, path, sheet string) (*dataset.Table, error) {
	logger := logging.FromContext(logging.WithDataset(ctx, string(ds), path))

	t, err := dataset.ReadFile(path, sheet)
	if err != nil {
		return nil, err
	}
	if err := t.Require(ds); err != nil {
		logger.Error().Strs("missing", registry.Missing(ds, t.Headers)).Msg("Dataset is missing required columns")
		return nil, err
	}
	logger.Info().Str("sheet", t.Name).Int("rows", t.Len()).Msg("Dataset loaded")
	return t, nil
}

// applyCheckFlags copies the flags set on the command line over the loaded
// configuration and validates the result.
func (a *App) applyCheckFlags(cmd *cobra.Command) error {
	flags := cmd.Flags()
	if flags.Changed("reference-sheet") {
		a.config.ReferenceSheet, _ = flags.GetString("reference-sheet")
	}
	if flags.Changed("submitted-sheet") {
		a.config.SubmittedSheet, _ = flags.GetString("submitted-sheet")
	}
	if flags.Changed("min-chip-digits") {
		a.config.MinChipDigits, _ = flags.GetInt("min-chip-digits")
	}
	if flags.Changed("near-match") {
		a.config.NearMatchEnabled, _ = flags.GetBool("near-match")
	}
	if flags.Changed("near-match-threshold") {
		a.config.NearMatchThreshold, _ = flags.GetInt("near-match-threshold")
	}
	if flags.Changed("workers") {
		a.config.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("log-dir") {
		a.config.LogDir, _ = flags.GetString("log-dir")
	}
	if flags.Changed("output-file") {
		a.config.OutputFile, _ = flags.GetString("output-file")
	}
	return a.config.Validate()
}
