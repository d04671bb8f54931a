package histload

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// QualityGood is the quality code written with every cleaned reading.
const QualityGood = 192

// valuePrecision is the number of decimal places kept on cleaned values.
const valuePrecision = 1e6

// excelEpoch is the origin of Excel serial date numbers.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// Reading is one cleaned totaliser reading ready for insert.
type Reading struct {
	Time        time.Time
	FieldName   string
	Topic       string
	Value       float64
	QualityCode int
}

var dayFirstLayouts = []string{
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"2/1/2006",
	"2-1-2006 15:04:05",
	"2-1-2006",
}

var monthFirstLayouts = []string{
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006",
	"1-2-2006 15:04:05",
	"1-2-2006",
}

var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
}

// cleanColumn extracts paired (timestamp, value) rows for one meter
// column, drops rows where either side is missing or unparseable,
// de-duplicates timestamps (first occurrence wins) and returns the
// readings sorted ascending by time. dropped counts non-empty rows that
// failed cleaning.
func cleanColumn(t *Table, l *Layout, mc MeterColumn) (readings []Reading, dropped int) {
	for row := l.DataStartRow; row < t.NumRows(); row++ {
		rawTime := strings.TrimSpace(t.Cell(row, l.TimeColumn))
		rawValue := strings.TrimSpace(t.Cell(row, mc.Column))

		if rawTime == "" && rawValue == "" {
			continue
		}

		ts, ok := parseTimestamp(rawTime, l.DayFirst)
		if !ok {
			dropped++
			continue
		}

		v, ok := parseValue(rawValue)
		if !ok {
			dropped++
			continue
		}

		readings = append(readings, Reading{
			Time:        ts,
			FieldName:   mc.FieldName,
			Topic:       mc.Topic,
			Value:       v,
			QualityCode: QualityGood,
		})
	}

	sort.SliceStable(readings, func(i, j int) bool {
		return readings[i].Time.Before(readings[j].Time)
	})

	deduped := readings[:0]
	for _, r := range readings {
		if len(deduped) > 0 && r.Time.Equal(deduped[len(deduped)-1].Time) {
			dropped++
			continue
		}
		deduped = append(deduped, r)
	}

	return deduped, dropped
}

// parseTimestamp parses a timestamp cell. Textual dates are tried in the
// layout's day order first, then ISO forms; numeric cells fall back to
// Excel serial date numbers with origin 1899-12-30, matching how the
// workbook stores unformatted dates.
func parseTimestamp(s string, dayFirst bool) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	layouts := dayFirstLayouts
	if !dayFirst {
		layouts = monthFirstLayouts
	}

	for _, layout := range layouts {
		if ts, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return ts, true
		}
	}
	for _, layout := range isoLayouts {
		if ts, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return ts, true
		}
	}

	serial, err := strconv.ParseFloat(s, 64)
	if err != nil || serial <= 0 || serial >= 300000 {
		return time.Time{}, false
	}

	d := time.Duration(serial * 24 * float64(time.Hour)).Round(time.Second)

	return excelEpoch.Add(d), true
}

// parseValue coerces a reading cell to a float64 rounded to a fixed
// precision. Grouping commas are stripped first.
func parseValue(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(cleanNumber(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}

	return math.Round(v*valuePrecision) / valuePrecision, true
}

// cleanNumber removes grouping commas and stray spaces from a number.
func cleanNumber(s string) string {
	s = strings.ReplaceAll(s, ",", "")

	return strings.TrimSpace(s)
}
