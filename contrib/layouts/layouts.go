// Package layouts provides pre-configured layouts for known workbooks.
package layouts

import (
	histload "github.com/LuisGuar/historical-data-to-timescaledb"
)

// Totaliser builds a layout for totaliser-reading exports: a block of
// descriptive rows, a friendly header row, a date column and one
// reading column per meter.
func Totaliser(sheet string, descriptiveRows int, meters ...histload.MeterColumn) *histload.Layout {
	return &histload.Layout{
		Sheet:        sheet,
		HeaderRow:    descriptiveRows,
		DataStartRow: descriptiveRows + 1,
		TimeColumn:   0,
		DayFirst:     true,
		Meters:       meters,
	}
}

// WaterMeters builds the layout of the Astellas water meters workbook:
// four descriptive rows above the headers on the "Totaliser Reading"
// sheet, dates in the first column, the main incoming meter beside it.
func WaterMeters() *histload.Layout {
	return Totaliser("Totaliser Reading", 4,
		histload.MeterColumn{
			Column:    1,
			Header:    "M1",
			Meter:     "main_incoming_water",
			Topic:     "Astellas/Primary/Main_Incoming_Water",
			FieldName: "totalValue",
		},
	)
}
