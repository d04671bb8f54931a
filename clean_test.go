package histload

import (
	"fmt"
	"testing"
	"time"
)

func Test_parseTimestamp(t *testing.T) {
	cases := []struct {
		in       string
		dayFirst bool
		want     time.Time
		ok       bool
	}{
		{in: "02/01/2024", dayFirst: true, want: time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC), ok: true},
		{in: "2/1/2024 06:30", dayFirst: true, want: time.Date(2024, time.January, 2, 6, 30, 0, 0, time.UTC), ok: true},
		{in: "02/01/2024", dayFirst: false, want: time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), ok: true},
		{in: "2024-01-02 10:00:00", dayFirst: true, want: time.Date(2024, time.January, 2, 10, 0, 0, 0, time.UTC), ok: true},
		{in: "2024-01-02", dayFirst: true, want: time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC), ok: true},
		// Excel serial dates, origin 1899-12-30.
		{in: "1", dayFirst: true, want: time.Date(1899, time.December, 31, 0, 0, 0, 0, time.UTC), ok: true},
		{in: "2.25", dayFirst: true, want: time.Date(1900, time.January, 1, 6, 0, 0, 0, time.UTC), ok: true},
		{in: "", dayFirst: true},
		{in: "not a date", dayFirst: true},
		{in: "-5", dayFirst: true},
		{in: "99999999", dayFirst: true},
	}

	for _, c := range cases {
		t.Run(fmt.Sprintf("%s dayFirst=%v", c.in, c.dayFirst), func(t *testing.T) {
			got, ok := parseTimestamp(c.in, c.dayFirst)
			if ok != c.ok {
				t.Fatalf("ok = %v, want %v", ok, c.ok)
			}
			if ok && !got.Equal(c.want) {
				t.Errorf("got %v, want %v", got, c.want)
			}
		})
	}
}

func Test_parseValue(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{in: "10", want: 10, ok: true},
		{in: "1,234.5", want: 1234.5, ok: true},
		{in: " 12.000000049 ", want: 12, ok: true},
		{in: "-3.25", want: -3.25, ok: true},
		{in: ""},
		{in: "n/a"},
		{in: "NaN"},
		{in: "+Inf"},
	}

	for _, c := range cases {
		got, ok := parseValue(c.in)
		if ok != c.ok {
			t.Errorf("parseValue(%q) ok = %v, want %v", c.in, ok, c.ok)
			continue
		}
		if ok && got != c.want {
			t.Errorf("parseValue(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func Test_cleanColumn(t *testing.T) {
	layout := &Layout{
		Sheet:        "Totaliser Reading",
		HeaderRow:    0,
		DataStartRow: 1,
		TimeColumn:   0,
		DayFirst:     true,
		Meters:       []MeterColumn{{Column: 1, Header: "M1", Meter: "m1", Topic: "Site/M1", FieldName: "totalValue"}},
	}

	table := NewTable([][]string{
		{"Date", "M1"},
		{"03/01/2024", "12"},
		{"02/01/2024", ""},
		{"", ""},
		{"01/01/2024", "10"},
		{"bad date", "99"},
		{"04/01/2024", "not numeric"},
	})

	readings, dropped := cleanColumn(table, layout, layout.Meters[0])

	if len(readings) != 2 {
		t.Fatalf("expected 2 readings, got %d", len(readings))
	}
	if dropped != 3 {
		t.Errorf("expected 3 dropped rows, got %d", dropped)
	}

	if !readings[0].Time.Before(readings[1].Time) {
		t.Errorf("readings must be sorted ascending: %v before %v", readings[0].Time, readings[1].Time)
	}
	if readings[0].Value != 10 || readings[1].Value != 12 {
		t.Errorf("unexpected values: %v, %v", readings[0].Value, readings[1].Value)
	}
}
