package output

import (
	"io"

	"github.com/agentstation/pedigreecheck/internal/cmd/table"
	"github.com/agentstation/pedigreecheck/pkg/matcher"
	"github.com/agentstation/pedigreecheck/pkg/reconciler"
)

// CheckReport is what the check command prints.
type CheckReport struct {
	Reference  string                    `json:"reference" yaml:"reference"`
	Submitted  string                    `json:"submitted" yaml:"submitted"`
	AuditLog   string                    `json:"audit_log,omitempty" yaml:"audit_log,omitempty"`
	OutputFile string                    `json:"output_file,omitempty" yaml:"output_file,omitempty"`
	Summary    string                    `json:"summary" yaml:"summary"`
	Metadata   reconciler.ResultMetadata `json:"metadata" yaml:"metadata"`
	Outcomes   []matcher.Outcome         `json:"outcomes" yaml:"outcomes"`
}

// NewCheckReport builds the printable view of result.
func NewCheckReport(reference, submitted string, result *reconciler.Result) CheckReport {
	return CheckReport{
		Reference: reference,
		Submitted: submitted,
		Summary:   result.Summary(),
		Metadata:  result.Metadata,
		Outcomes:  result.Report.Entries(),
	}
}

// FormatCheck writes report in format. Tables list the warnings, or every
// outcome when all is set, followed by counts per category.
func FormatCheck(w io.Writer, format Format, report CheckReport, result *reconciler.Result, all bool) error {
	if !format.IsTable() {
		return NewFormatter(format).Format(w, report)
	}

	outcomes := report.Outcomes
	if !all {
		outcomes = result.Report.Filter(func(o matcher.Outcome) bool {
			return o.Severity == matcher.SeverityWarning
		})
	}

	tables := []table.Data{table.CountsToTableData(result)}
	if len(outcomes) > 0 {
		tables = append([]table.Data{table.OutcomesToTableData(outcomes, format == FormatWide)}, tables...)
	}
	if err := NewFormatter(format).Format(w, tables); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n"+report.Summary+"\n")
	return err
}

// SchemaReport is what the schema command prints.
type SchemaReport struct {
	File     string   `json:"file" yaml:"file"`
	Sheet    string   `json:"sheet,omitempty" yaml:"sheet,omitempty"`
	Dataset  string   `json:"dataset" yaml:"dataset"`
	Rows     int      `json:"rows" yaml:"rows"`
	Required []string `json:"required" yaml:"required"`
	Missing  []string `json:"missing" yaml:"missing"`
}

// FormatSchema writes report in format.
func FormatSchema(w io.Writer, format Format, report SchemaReport) error {
	if !format.IsTable() {
		return NewFormatter(format).Format(w, report)
	}
	return NewFormatter(format).Format(w, table.ColumnsToTableData(report.Required, report.Missing))
}

// FormatAny formats any data type for output.
func FormatAny(w io.Writer, format Format, data any) error {
	return NewFormatter(format).Format(w, data)
}
