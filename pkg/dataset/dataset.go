// Package dataset loads the reference and submitted registration tables from
// spreadsheet files and converts their rows into registry records.
//
// Workbooks (.xlsx, .xlsm) are read with excelize using raw cell values, so
// date cells arrive as Excel serial numbers and chip codes keep every digit.
// CSV files are read as UTF-8 with an optional byte order mark.
package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/unicode/norm"

	"github.com/agentstation/pedigreecheck/pkg/errors"
	"github.com/agentstation/pedigreecheck/pkg/registry"
)

// Table is a header row plus data rows read from one sheet or CSV file.
type Table struct {
	Name    string     `json:"name" yaml:"name"`
	Path    string     `json:"path,omitempty" yaml:"path,omitempty"`
	Headers []string   `json:"headers" yaml:"headers"`
	Rows    [][]string `json:"-" yaml:"-"`

	index map[string]int
}

// NewTable builds a table from a header row and data rows. Header cells are
// trimmed and put in NFC form so accented column names compare equal however
// the spreadsheet encoded them. Blank data rows are dropped.
func NewTable(name string, headers []string, rows [][]string) *Table {
	t := &Table{Name: name, Headers: make([]string, len(headers)), index: make(map[string]int, len(headers))}
	for i, h := range headers {
		h = norm.NFC.String(strings.TrimSpace(h))
		t.Headers[i] = h
		if _, dup := t.index[h]; !dup {
			t.index[h] = i
		}
	}
	for _, row := range rows {
		if !blank(row) {
			t.Rows = append(t.Rows, row)
		}
	}
	return t
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// Has reports whether the table has a column named col.
func (t *Table) Has(col string) bool {
	_, ok := t.index[col]
	return ok
}

// Cell returns the trimmed value of column col in data row i, or "" when the
// column or the cell is missing.
func (t *Table) Cell(i int, col string) string {
	j, ok := t.index[col]
	if !ok || i < 0 || i >= len(t.Rows) || j >= len(t.Rows[i]) {
		return ""
	}
	return registry.Clean(t.Rows[i][j])
}

// Require checks that the table carries every column ds needs.
func (t *Table) Require(ds registry.Dataset) error {
	if missing := registry.Missing(ds, t.Headers); len(missing) > 0 {
		return errors.NewSchemaError(string(ds), missing)
	}
	return nil
}

// ReadFile loads path. For workbooks, sheet selects the sheet by name and an
// empty sheet selects the first one. CSV files ignore sheet.
func ReadFile(path, sheet string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return readWorkbook(path, sheet)
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.WrapIO("open", path, err)
		}
		defer func() { _ = f.Close() }()
		t, err := ReadCSV(f, filepath.Base(path))
		if err != nil {
			return nil, errors.WrapParse("csv", path, err)
		}
		t.Path = path
		return t, nil
	default:
		return nil, errors.NewValidationError("file", path, "unsupported file type "+filepath.Ext(path))
	}
}

func readWorkbook(path, sheet string) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.WrapParse("xlsx", path, err)
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheet = f.GetSheetName(0)
		if sheet == "" {
			return nil, errors.NewParseError("xlsx", path, "no sheets found", nil)
		}
	} else if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, errors.NewNotFoundError("sheet", sheet)
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.WrapParse("xlsx", path, err)
	}
	if len(rows) == 0 {
		return nil, errors.NewParseError("xlsx", path, "sheet "+sheet+" is empty", nil)
	}

	t := NewTable(sheet, rows[0], rows[1:])
	t.Path = path
	return t, nil
}

// ReadCSV reads a comma separated table whose first record is the header.
func ReadCSV(r io.Reader, name string) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("no header row")
	}
	if len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], "\ufeff")
	}
	return NewTable(name, records[0], records[1:]), nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
