package histload

import (
	"context"
	"encoding/csv"
	"io"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
	"gitlab.com/osaki-lab/iowrapper"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
	"golang.org/x/xerrors"
)

// Parser parses a workbook into a Table.
type Parser func(context.Context, io.Reader) (*Table, error)

// Table is the in-memory tabular form of one sheet. Cells are addressed
// by 0-based row and column index; reads outside the sheet return "".
type Table struct {
	rows [][]string
}

// NewTable wraps raw rows into a Table.
func NewTable(rows [][]string) *Table {
	return &Table{rows: rows}
}

// NumRows returns the number of rows in the sheet.
func (t *Table) NumRows() int {
	return len(t.rows)
}

// Cell returns the cell text at (row, col), or "" when out of range.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.rows) {
		return ""
	}
	if col < 0 || col >= len(t.rows[row]) {
		return ""
	}

	return t.rows[row][col]
}

// XLSXParser provides a parser for xlsx workbooks. It reads the named
// sheet and fails when that sheet does not exist.
func XLSXParser(sheet string) Parser {
	return func(_ context.Context, r io.Reader) (*Table, error) {
		f, err := excelize.OpenReader(r)
		if err != nil {
			return nil, xerrors.Errorf("failed to open xlsx workbook: %w", err)
		}
		defer f.Close()

		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, xerrors.Errorf("failed to read sheet %q: %w", sheet, err)
		}

		return NewTable(rows), nil
	}
}

// XLSParser provides a parser for legacy xls workbooks.
func XLSParser(sheet string) Parser {
	getRow := func(ws *xls.WorkSheet, row int) (r *xls.Row, ok bool) {
		defer func() { recover() }()

		r = nil
		ok = false

		return ws.Row(row), true
	}

	return func(_ context.Context, r io.Reader) (*Table, error) {
		wb, err := xls.OpenReader(iowrapper.NewSeeker(r), "utf-8")
		if err != nil {
			return nil, xerrors.Errorf("failed to open xls workbook: %w", err)
		}

		var ws *xls.WorkSheet
		for i := 0; i < wb.NumSheets(); i++ {
			if s := wb.GetSheet(i); s != nil && strings.EqualFold(s.Name, sheet) {
				ws = s
				break
			}
		}
		if ws == nil {
			return nil, xerrors.Errorf("sheet %q not found in xls workbook", sheet)
		}

		rows := make([][]string, 0, int(ws.MaxRow)+1)

		for i := 0; i <= int(ws.MaxRow); i++ {
			row, ok := getRow(ws, i)
			if !ok || row == nil {
				rows = append(rows, nil)
				continue
			}

			record := make([]string, row.LastCol())
			for c := row.FirstCol(); c < row.LastCol(); c++ {
				record[c] = row.Col(c)
			}

			rows = append(rows, record)
		}

		return NewTable(rows), nil
	}
}

// CSVParser provides a parser for CSV exports of the workbook. A non-nil
// enc decodes the source before parsing, for exports that are not UTF-8.
func CSVParser(enc encoding.Encoding) Parser {
	return func(_ context.Context, r io.Reader) (*Table, error) {
		if enc != nil {
			r = transform.NewReader(r, enc.NewDecoder())
		}

		cr := csv.NewReader(r)
		cr.FieldsPerRecord = -1

		rows, err := cr.ReadAll()
		if err != nil {
			return nil, xerrors.Errorf("failed to parse csv: %w", err)
		}

		return NewTable(rows), nil
	}
}
