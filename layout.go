package histload

import "golang.org/x/xerrors"

// MeterColumn maps one workbook column to one meter.
type MeterColumn struct {
	// Column is the 0-based column index holding the readings.
	Column int

	// Header is the friendly header text expected above the column.
	// The column is skipped when the sheet text does not match.
	Header string

	// Meter identifies the meter in logs and the run report.
	Meter string

	// Topic and FieldName are written as-is with every reading.
	Topic     string
	FieldName string
}

// Layout describes the fixed layout of a workbook so that offsets never
// leak into the cleaning logic. All indexes are 0-based.
type Layout struct {
	// Sheet is the name of the sheet holding the readings.
	Sheet string

	// HeaderRow is the row holding the friendly headers, below any
	// descriptive rows.
	HeaderRow int

	// DataStartRow is the first row of readings.
	DataStartRow int

	// TimeColumn is the column holding the reading timestamps.
	TimeColumn int

	// DayFirst selects day-first timestamp parsing (02/01/2006).
	DayFirst bool

	Meters []MeterColumn
}

func (l *Layout) validate() error {
	if l == nil {
		return xerrors.New("layout is required")
	}
	if l.Sheet == "" {
		return xerrors.New("layout: sheet name is required")
	}
	if l.DataStartRow <= l.HeaderRow {
		return xerrors.Errorf("layout: data start row %d must be below header row %d", l.DataStartRow, l.HeaderRow)
	}
	if len(l.Meters) == 0 {
		return xerrors.New("layout: at least one meter column is required")
	}

	for _, m := range l.Meters {
		if m.Meter == "" {
			return xerrors.Errorf("layout: meter identifier is required for column %d", m.Column)
		}
		if m.Header == "" {
			return xerrors.Errorf("layout: expected header is required for meter %s", m.Meter)
		}
		if m.Column == l.TimeColumn {
			return xerrors.Errorf("layout: meter %s overlaps the time column", m.Meter)
		}
	}

	return nil
}
