package histload

import (
	"strings"

	"golang.org/x/xerrors"
)

// checkHeader compares the header cell above a meter column against the
// expected friendly name. Comparison is case-insensitive with collapsed
// whitespace, so "Meter A  Reading " still matches "meter a reading".
func checkHeader(t *Table, l *Layout, mc MeterColumn) error {
	actual := t.Cell(l.HeaderRow, mc.Column)
	if actual == "" {
		return xerrors.Errorf("header cell missing, expected %q", mc.Header)
	}

	if normalizeHeader(actual) != normalizeHeader(mc.Header) {
		return xerrors.Errorf("header mismatch: expected %q, got %q", mc.Header, actual)
	}

	return nil
}

func normalizeHeader(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
