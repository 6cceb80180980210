package storage

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/raushankrgupta/shoe-price-tracker/models"
)

// Columns are written in this order.
var Columns = []string{"brand", "model", "price", "source", "dt"}

type pgxConn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// PostgresSink appends shoe records to a table with no keys or constraints,
// so every run adds a full set of rows.
type PostgresSink struct {
	db    pgxConn
	pool  *pgxpool.Pool
	table string
}

// NewPostgresSink connects, pings and makes sure the table exists.
func NewPostgresSink(ctx context.Context, connString, table string) (*PostgresSink, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	sink := &PostgresSink{db: pool, pool: pool, table: table}
	if err := sink.ensureTable(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return sink, nil
}

func (s *PostgresSink) ensureTable(ctx context.Context) error {
	_, err := s.db.Exec(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			brand TEXT,
			model TEXT,
			price DOUBLE PRECISION,
			source TEXT,
			dt TIMESTAMP
		)`, pgx.Identifier{s.table}.Sanitize()))
	if err != nil {
		return fmt.Errorf("ensure table %s: %w", s.table, err)
	}
	return nil
}

// Append writes every record with a single COPY.
func (s *PostgresSink) Append(ctx context.Context, records []models.ShoeRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	rows := make([][]any, len(records))
	for i, r := range records {
		rows[i] = []any{r.Brand, r.Model, r.Price, r.Source, r.CapturedAt}
	}

	n, err := s.db.CopyFrom(ctx, pgx.Identifier{s.table}, Columns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, fmt.Errorf("copy into %s: %w", s.table, err)
	}

	log.Printf("[Postgres] Appended %d rows to %s\n", n, s.table)
	return int(n), nil
}

func (s *PostgresSink) Close(ctx context.Context) error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}
