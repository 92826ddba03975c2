// Package ledger records which (year, week) units have already been derived
// and published, making the incremental pipelines safe to re-run. The
// contract is append-only: keys are never removed, so resuming after a crash
// can only re-derive, never lose, a week.
package ledger

import (
	"context"
	"fmt"
)

// Ledger is a write-once, read-many set of (year, week) keys. The full key
// set is loaded into memory when the ledger is opened, so IsProcessed is a
// plain membership test.
type Ledger interface {
	IsProcessed(year, week int) bool
	MarkProcessed(ctx context.Context, year, week int) error
}

func key(year, week int) string {
	return fmt.Sprintf("%d,%d", year, week)
}
