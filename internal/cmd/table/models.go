// Package table converts reconciliation results into rows for table output.
package table

import (
	"sort"
	"strconv"
	"unicode/utf8"

	"github.com/agentstation/pedigreecheck/pkg/matcher"
	"github.com/agentstation/pedigreecheck/pkg/reconciler"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// messageWidth caps the message column in narrow tables.
const messageWidth = 100

// OutcomesToTableData lists outcomes, one per row. Wide tables keep full
// messages and add the reason column.
func OutcomesToTableData(outcomes []matcher.Outcome, wide bool) Data {
	headers := []string{"Row", "Severity", "Category", "Kind", "Message"}
	align := []Align{AlignRight, AlignLeft, AlignLeft, AlignLeft, AlignLeft}
	if wide {
		headers = append(headers, "Reason")
		align = append(align, AlignLeft)
	}

	rows := make([][]string, 0, len(outcomes))
	for _, o := range outcomes {
		msg := o.Message
		if !wide {
			msg = Truncate(msg, messageWidth)
		}
		row := []string{
			strconv.Itoa(o.Row),
			o.Severity.String(),
			string(o.Category),
			string(o.Kind),
			msg,
		}
		if wide {
			reason := o.Reason
			if reason == "" {
				reason = "-"
			}
			row = append(row, reason)
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}

// CountsToTableData summarizes a result by category and kind.
func CountsToTableData(result *reconciler.Result) Data {
	counts := result.Report.CountByKind()
	categories := make([]string, 0, len(counts))
	for cat := range counts {
		categories = append(categories, string(cat))
	}
	sort.Strings(categories)

	var rows [][]string
	for _, cat := range categories {
		kinds := counts[matcher.Category(cat)]
		names := make([]string, 0, len(kinds))
		for k := range kinds {
			names = append(names, string(k))
		}
		sort.Strings(names)
		for _, k := range names {
			rows = append(rows, []string{cat, k, strconv.Itoa(kinds[matcher.Kind(k)])})
		}
	}

	return Data{
		Headers:         []string{"Category", "Kind", "Messages"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignRight},
	}
}

// ColumnsToTableData lists required columns and whether each one is present.
func ColumnsToTableData(required, missing []string) Data {
	absent := make(map[string]bool, len(missing))
	for _, m := range missing {
		absent[m] = true
	}
	rows := make([][]string, 0, len(required))
	for _, col := range required {
		status := "ok"
		if absent[col] {
			status = "missing"
		}
		rows = append(rows, []string{col, status})
	}
	return Data{Headers: []string{"Column", "Status"}, Rows: rows}
}

// Truncate shortens s to at most n runes, marking the cut with "...".
func Truncate(s string, n int) string {
	if n <= 3 || utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}
