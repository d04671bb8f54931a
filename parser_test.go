package histload

import (
	"bytes"
	"context"
	"testing"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

func Test_CSVParser(t *testing.T) {
	body := "Historical data export\nDate,M1\n01/01/2024,10\n02/01/2024,12"

	table, err := CSVParser(nil)(context.Background(), bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if table.NumRows() != 4 {
		t.Fatalf("expected 4 rows, got %d", table.NumRows())
	}
	if got := table.Cell(1, 1); got != "M1" {
		t.Errorf(`Cell(1,1) should be "M1", got %q`, got)
	}
	if got := table.Cell(3, 1); got != "12" {
		t.Errorf(`Cell(3,1) should be "12", got %q`, got)
	}
}

func Test_CSVParser_WithEncoding(t *testing.T) {
	// "temp °C" in Windows-1252; 0xB0 is the degree sign.
	body := []byte{'t', 'e', 'm', 'p', ' ', 0xB0, 'C', ',', '1'}

	table, err := CSVParser(charmap.Windows1252)(context.Background(), bytes.NewReader(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := table.Cell(0, 0); got != "temp °C" {
		t.Errorf(`Cell(0,0) should be "temp °C", got %q`, got)
	}
}

func Test_Table_CellOutOfRange(t *testing.T) {
	table := NewTable([][]string{{"a"}, {"b", "c"}})

	cases := []struct{ row, col int }{
		{row: -1, col: 0},
		{row: 0, col: 1},
		{row: 2, col: 0},
		{row: 0, col: -1},
	}

	for _, c := range cases {
		if got := table.Cell(c.row, c.col); got != "" {
			t.Errorf(`Cell(%d,%d) should be "", got %q`, c.row, c.col, got)
		}
	}
}

func buildXLSX(t *testing.T, sheet string, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(sheet); err != nil {
		t.Fatalf("failed to create sheet: %v", err)
	}

	for i, row := range rows {
		for j, cell := range row {
			name, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to build cell name: %v", err)
			}
			if err := f.SetCellValue(sheet, name, cell); err != nil {
				t.Fatalf("failed to set cell: %v", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("failed to write workbook: %v", err)
	}

	return buf
}

func Test_XLSXParser(t *testing.T) {
	buf := buildXLSX(t, "Totaliser Reading", [][]interface{}{
		{"Date", "M1"},
		{"01/01/2024", 10.5},
	})

	table, err := XLSXParser("Totaliser Reading")(context.Background(), buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if table.NumRows() != 2 {
		t.Fatalf("expected 2 rows, got %d", table.NumRows())
	}
	if got := table.Cell(0, 1); got != "M1" {
		t.Errorf(`Cell(0,1) should be "M1", got %q`, got)
	}
	if got := table.Cell(1, 1); got != "10.5" {
		t.Errorf(`Cell(1,1) should be "10.5", got %q`, got)
	}
}

func Test_XLSXParser_MissingSheet(t *testing.T) {
	buf := buildXLSX(t, "Other Sheet", [][]interface{}{{"Date", "M1"}})

	if _, err := XLSXParser("Totaliser Reading")(context.Background(), buf); err == nil {
		t.Fatal("missing sheet should fail the parse")
	}
}
