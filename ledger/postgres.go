package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/itbasis/go-clock"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// postgresLedger keeps the processed-week set in an insert-only table,
// scoped by pipeline name so the margin and high-scorer ledgers can share
// one database. Like the file ledger, the whole set is loaded up front.
type postgresLedger struct {
	pool     *pgxpool.Pool
	clock    clock.Clock
	pipeline string

	mu   sync.Mutex
	keys map[string]struct{}
}

// NewPostgres opens a Postgres-backed ledger for one pipeline.
func NewPostgres(ctx context.Context, connString, pipeline string, clock clock.Clock) (Ledger, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}

	l := &postgresLedger{
		pool:     pool,
		clock:    clock,
		pipeline: pipeline,
		keys:     make(map[string]struct{}),
	}
	if err := l.load(ctx); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *postgresLedger) load(ctx context.Context) error {
	const query = `SELECT year, week FROM processed_weeks WHERE pipeline=@pipeline`

	args := pgx.NamedArgs{
		"pipeline": l.pipeline,
	}
	rows, err := l.pool.Query(ctx, query, args)
	if err != nil {
		return fmt.Errorf("error loading processed weeks for %s: %w", l.pipeline, err)
	}
	defer rows.Close()

	for rows.Next() {
		var year, week int
		if err := rows.Scan(&year, &week); err != nil {
			return fmt.Errorf("error scanning processed week: %w", err)
		}
		l.keys[key(year, week)] = struct{}{}
	}
	return rows.Err()
}

func (l *postgresLedger) IsProcessed(year, week int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, found := l.keys[key(year, week)]
	return found
}

func (l *postgresLedger) MarkProcessed(ctx context.Context, year, week int) error {
	const insert = `INSERT INTO processed_weeks (pipeline, year, week, created)
		VALUES (@pipeline, @year, @week, @created)
		ON CONFLICT DO NOTHING`

	args := pgx.NamedArgs{
		"pipeline": l.pipeline,
		"year":     year,
		"week":     week,
		"created":  l.clock.Now().UTC(),
	}
	if _, err := l.pool.Exec(ctx, insert, args); err != nil {
		return fmt.Errorf("error marking week processed (%s %d,%d): %w", l.pipeline, year, week, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.keys[key(year, week)] = struct{}{}
	return nil
}
