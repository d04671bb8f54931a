package histload

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/xerrors"
)

const insertBatchSize = 500

// Loader appends one meter's cleaned readings into a destination.
type Loader interface {
	Load(ctx context.Context, meter string, rows []Reading) error
}

// TimescaleLoader appends readings into a schema-qualified TimescaleDB
// table with columns (time, field_name, topic, value, quality_code).
// Each Load call runs in a single transaction, so a meter's rows land
// atomically or not at all; meters already committed are untouched by a
// later failure.
type TimescaleLoader struct {
	db     *sql.DB
	schema string
	table  string
}

// NewTimescaleLoader builds a loader writing into schema.table through
// an open database handle. The handle is owned by the caller.
func NewTimescaleLoader(db *sql.DB, schema, table string) *TimescaleLoader {
	return &TimescaleLoader{db: db, schema: schema, table: table}
}

// Ping verifies the database is reachable before any column processing.
func (l *TimescaleLoader) Ping(ctx context.Context) error {
	if err := l.db.PingContext(ctx); err != nil {
		return xerrors.Errorf("database unreachable: %w", err)
	}

	return nil
}

func (l *TimescaleLoader) Load(ctx context.Context, meter string, rows []Reading) error {
	if len(rows) == 0 {
		return nil
	}

	logger := log.Ctx(ctx)

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return xerrors.Errorf("failed to begin transaction for %s: %w", meter, err)
	}
	defer tx.Rollback()

	for start := 0; start < len(rows); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(rows) {
			end = len(rows)
		}

		stmt, args := l.buildInsert(rows[start:end])
		if _, err := tx.ExecContext(ctx, stmt, args...); err != nil {
			return xerrors.Errorf("failed to insert rows %d-%d for %s: %w", start, end-1, meter, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return xerrors.Errorf("failed to commit %s: %w", meter, err)
	}

	logger.Debug().Str("meter", meter).Int("rows", len(rows)).Msg("committed")

	return nil
}

func (l *TimescaleLoader) buildInsert(rows []Reading) (string, []interface{}) {
	var b strings.Builder

	fmt.Fprintf(&b, "INSERT INTO %s.%s (time, field_name, topic, value, quality_code) VALUES ",
		quoteIdent(l.schema), quoteIdent(l.table))

	args := make([]interface{}, 0, len(rows)*5)
	for i, r := range rows {
		if i > 0 {
			b.WriteString(", ")
		}
		n := i * 5
		fmt.Fprintf(&b, "($%d, $%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4, n+5)
		args = append(args, r.Time, r.FieldName, r.Topic, r.Value, r.QualityCode)
	}

	return b.String(), args
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
