package pg

import (
	"context"
	"log/slog"
)

// evalTables must exist for the store to serve qrels and runs.
var evalTables = []string{"qrels", "runs", "run_results"}

// HealthChecker reports the evaluation store healthy when the database answers
// and its schema has been migrated.
type HealthChecker struct {
	pool *ConnectionPool
}

func NewHealthChecker(pool *ConnectionPool) *HealthChecker {
	return &HealthChecker{pool: pool}
}

func (hc *HealthChecker) Healthy(ctx context.Context) bool {
	if hc.pool == nil {
		return false
	}

	var missing []string
	err := hc.pool.db.QueryRow(ctx, `
		SELECT coalesce(array_agg(t), '{}')
		FROM unnest($1::text[]) AS t
		WHERE to_regclass(t) IS NULL
	`, evalTables).Scan(&missing)
	if err != nil {
		slog.Warn("evaluation store unreachable", "error", err, "pool", hc.pool.Stats())
		return false
	}
	if len(missing) > 0 {
		slog.Warn("evaluation store not migrated", "missing_tables", missing)
		return false
	}

	return true
}
