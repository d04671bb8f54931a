/*

Package histload is a small ETL library that reads meter-reading columns
from a fixed-layout workbook and appends cleaned rows into a TimescaleDB
hypertable.

Getting started

Describe the workbook with a Layout, pick a Parser for the file format,
attach a Loader for the destination table and run:

	package main

	import (
		"context"
		"database/sql"
		"os"

		histload "github.com/LuisGuar/historical-data-to-timescaledb"
		_ "github.com/jackc/pgx/v5/stdlib"
	)

	func main() {
		layout := &histload.Layout{
			Sheet:        "Totaliser Reading",
			HeaderRow:    4, // four descriptive rows above the friendly headers
			DataStartRow: 5,
			TimeColumn:   0,
			DayFirst:     true,
			Meters: []histload.MeterColumn{
				{Column: 1, Header: "Main Incoming Water", Meter: "main_incoming_water",
					Topic: "Astellas/Primary/Main_Incoming_Water", FieldName: "totalValue"},
			},
		}

		db, err := sql.Open("pgx", os.Getenv("TIMESCALE_URL"))
		if err != nil {
			panic(err)
		}
		defer db.Close()

		runner, err := histload.New(layout, histload.XLSXParser(layout.Sheet),
			histload.WithLoader(histload.NewTimescaleLoader(db, "public", "waltero_tqv")),
			histload.WithPrettyLogging(),
		)
		if err != nil {
			panic(err)
		}

		report, err := runner.Run(context.Background(), histload.Source{Path: os.Args[1]})
		if err != nil {
			panic(err)
		}
		os.Stdout.WriteString(report.Summary())
	}

A column whose header does not match the expected friendly name is
skipped and reported; it never aborts the rest of the run.

*/
package histload
