package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/pedigreecheck/internal/cmd/output"
	"github.com/agentstation/pedigreecheck/pkg/dataset"
	"github.com/agentstation/pedigreecheck/pkg/errors"
	"github.com/agentstation/pedigreecheck/pkg/logging"
	"github.com/agentstation/pedigreecheck/pkg/registry"
)

// NewSchemaCommand creates the schema subcommand.
func (a *App) NewSchemaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "schema <file>",
		GroupID: "core",
		Short:   "Check that a dataset carries the required columns",
		Example: `  pedigreecheck schema registry.xlsx --kind reference
  pedigreecheck schema responses.xlsx --kind submitted --sheet "Form Responses"`,
		Args: cobra.ExactArgs(1),
		RunE: a.runSchema,
	}

	cmd.Flags().String("kind", string(registry.DatasetSubmitted), "dataset kind: reference or submitted")
	cmd.Flags().String("sheet", "", "worksheet name (default depends on --kind)")

	return cmd
}

func (a *App) runSchema(cmd *cobra.Command, args []string) error {
	kind := registry.Dataset(mustGetString(cmd, "kind"))
	sheet := a.config.SubmittedSheet
	switch kind {
	case registry.DatasetReference:
		sheet = a.config.ReferenceSheet
	case registry.DatasetSubmitted:
	default:
		return errors.NewValidationError("kind", string(kind), "must be reference or submitted")
	}
	if cmd.Flags().Changed("sheet") {
		sheet = mustGetString(cmd, "sheet")
	}

	t, err := dataset.ReadFile(args[0], sheet)
	if err != nil {
		return err
	}
	logger := logging.FromContext(logging.WithDataset(logging.WithLogger(cmd.Context(), a.logger), string(kind), args[0]))

	missing := registry.Missing(kind, t.Headers)
	if missing == nil {
		missing = []string{}
	}
	report := output.SchemaReport{
		File:     args[0],
		Sheet:    t.Name,
		Dataset:  string(kind),
		Rows:     t.Len(),
		Required: registry.RequiredColumns(kind),
		Missing:  missing,
	}
	if err := output.FormatSchema(a.stdout, output.DetectFormat(a.config.Format), report); err != nil {
		return err
	}
	if len(missing) > 0 {
		return errors.NewSchemaError(string(kind), missing)
	}

	logger.Debug().Str("sheet", t.Name).Int("rows", t.Len()).Msg("Schema ok")
	if output.DetectFormat(a.config.Format).IsTable() {
		_, err = fmt.Fprintf(a.stdout, "\n%s dataset ok: %d rows\n", kind, t.Len())
	}
	return err
}
