package histload

import (
	"fmt"
	"strings"
)

// ColumnResult is the outcome for one configured meter column: either
// loaded with a row count, or skipped with the reason.
type ColumnResult struct {
	Meter    string
	Cleaned  int
	Inserted int
	Skipped  bool
	Reason   string
}

// Report collects the per-meter results of one run.
type Report struct {
	Source  Source
	Results []ColumnResult
}

// TotalInserted returns the number of rows inserted across all meters.
func (r *Report) TotalInserted() int {
	total := 0
	for _, res := range r.Results {
		total += res.Inserted
	}

	return total
}

// SkippedMeters returns the meters excluded from the load step.
func (r *Report) SkippedMeters() []ColumnResult {
	var skipped []ColumnResult
	for _, res := range r.Results {
		if res.Skipped {
			skipped = append(skipped, res)
		}
	}

	return skipped
}

// Summary renders the per-meter row counts and the skipped tally.
func (r *Report) Summary() string {
	var b strings.Builder

	fmt.Fprintf(&b, "workbook %s\n", r.Source.Path)
	for _, res := range r.Results {
		if res.Skipped {
			fmt.Fprintf(&b, "  %s: skipped (%s)\n", res.Meter, res.Reason)
			continue
		}
		fmt.Fprintf(&b, "  %s: %d rows inserted\n", res.Meter, res.Inserted)
	}
	fmt.Fprintf(&b, "total: %d rows inserted, %d meters skipped\n", r.TotalInserted(), len(r.SkippedMeters()))

	return b.String()
}
