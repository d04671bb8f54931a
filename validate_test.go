package histload

import (
	"strings"
	"testing"
)

func Test_checkHeader(t *testing.T) {
	layout := &Layout{HeaderRow: 1}

	cases := []struct {
		name     string
		expected string
		actual   string
		ok       bool
	}{
		{name: "exact", expected: "Meter A Reading", actual: "Meter A Reading", ok: true},
		{name: "case and padding", expected: "Meter A Reading", actual: "  meter a READING ", ok: true},
		{name: "collapsed whitespace", expected: "Meter A Reading", actual: "Meter  A\tReading", ok: true},
		{name: "mismatch", expected: "Meter B Reading", actual: "Wrong Label"},
		{name: "missing cell", expected: "Meter A Reading", actual: ""},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			table := NewTable([][]string{
				{"export header"},
				{"Date", c.actual},
			})

			mc := MeterColumn{Column: 1, Header: c.expected, Meter: "m"}
			err := checkHeader(table, layout, mc)

			if c.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !c.ok && err == nil {
				t.Fatal("expected an error")
			}
			if !c.ok && !strings.Contains(err.Error(), c.expected) {
				t.Errorf("error should name the expected header, got %q", err.Error())
			}
		})
	}
}

func Test_checkHeader_ColumnBeyondSheet(t *testing.T) {
	table := NewTable([][]string{{"only"}, {"Date"}})
	layout := &Layout{HeaderRow: 1}

	err := checkHeader(table, layout, MeterColumn{Column: 7, Header: "Meter A Reading", Meter: "m"})
	if err == nil {
		t.Fatal("column outside the sheet should fail validation")
	}
}
