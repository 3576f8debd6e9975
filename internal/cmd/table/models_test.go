package table_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/pedigreecheck/internal/cmd/table"
	"github.com/agentstation/pedigreecheck/pkg/matcher"
	"github.com/agentstation/pedigreecheck/pkg/reconciler"
	"github.com/agentstation/pedigreecheck/pkg/registry"
)

func TestOutcomesToTableData(t *testing.T) {
	outcomes := []matcher.Outcome{
		{Row: 3, Severity: matcher.SeverityWarning, Category: matcher.CategoryChip, Kind: matcher.KindInvalid, Reason: matcher.ReasonChipShort, Message: strings.Repeat("x", 150)},
		{Row: 1, Category: matcher.CategoryOwner, Kind: matcher.KindExactMatch, Message: "ok"},
	}

	narrow := table.OutcomesToTableData(outcomes, false)
	assert.Equal(t, []string{"Row", "Severity", "Category", "Kind", "Message"}, narrow.Headers)
	require.Len(t, narrow.Rows, 2)
	assert.Equal(t, []string{"3", "WARNING", "chip", "invalid"}, narrow.Rows[0][:4])
	assert.Len(t, []rune(narrow.Rows[0][4]), 100)
	assert.True(t, strings.HasSuffix(narrow.Rows[0][4], "..."))

	wide := table.OutcomesToTableData(outcomes, true)
	assert.Len(t, wide.Headers, 6)
	assert.Equal(t, strings.Repeat("x", 150), wide.Rows[0][4])
	assert.Equal(t, "chip_short", wide.Rows[0][5])
	assert.Equal(t, "-", wide.Rows[1][5])
	assert.Len(t, wide.ColumnAlignment, 6)
}

func TestCountsToTableData(t *testing.T) {
	r, err := reconciler.New()
	require.NoError(t, err)
	result, err := r.Reconcile(context.Background(), nil, []registry.SubmittedRecord{
		{Row: 1, OriginalAffix: "Du Clos", Dog: registry.Dog{UsualName: "Rex", Chip: "123"}},
	})
	require.NoError(t, err)

	data := table.CountsToTableData(result)
	assert.Equal(t, []string{"Category", "Kind", "Messages"}, data.Headers)
	assert.Contains(t, data.Rows, []string{"affix", "not_found", "1"})
	assert.Contains(t, data.Rows, []string{"chip", "invalid", "1"})
	assert.Equal(t, "affix", data.Rows[0][0], "rows are sorted by category")
}

func TestColumnsToTableData(t *testing.T) {
	data := table.ColumnsToTableData([]string{"Affixe", "Puce"}, []string{"Puce"})
	assert.Equal(t, [][]string{{"Affixe", "ok"}, {"Puce", "missing"}}, data.Rows)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", table.Truncate("abc", 10))
	assert.Equal(t, "élé...", table.Truncate("éléphant", 6))
	assert.Equal(t, "abcdef", table.Truncate("abcdef", 3))
}
