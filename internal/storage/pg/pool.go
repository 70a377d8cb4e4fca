package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultConnectTimeout bounds the initial ping against the evaluation database.
const DefaultConnectTimeout = 5 * time.Second

// PoolConfig describes the evaluation database: where it lives and how many
// connections the store may hold. Zero values keep pgx defaults.
type PoolConfig struct {
	ConnStr        string
	MaxConns       int32
	ConnectTimeout time.Duration
}

// ConnectionPool is the shared pgx pool behind EvalStore and HealthChecker.
type ConnectionPool struct {
	db *pgxpool.Pool
}

// NewConnectionPool opens the pool and verifies the database answers before
// any qrels or runs are read or written.
func NewConnectionPool(ctx context.Context, cfg PoolConfig) (*ConnectionPool, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.ConnStr)
	if err != nil {
		return nil, fmt.Errorf("parse evaluation database URL: %w", err)
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}

	db, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("open evaluation database: %w", err)
	}

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = DefaultConnectTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.Ping(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("reach evaluation database: %w", err)
	}

	return &ConnectionPool{db: db}, nil
}

// DB exposes the underlying pool for queries outside EvalStore, such as test setup.
func (p *ConnectionPool) DB() *pgxpool.Pool {
	return p.db
}

func (p *ConnectionPool) Close() {
	p.db.Close()
}

func (p *ConnectionPool) Ping(ctx context.Context) error {
	return p.db.Ping(ctx)
}

// PoolStats is a snapshot of connection usage, logged by the health checker.
type PoolStats struct {
	Total    int32
	Idle     int32
	Acquired int32
	Max      int32
}

func (p *ConnectionPool) Stats() PoolStats {
	s := p.db.Stat()
	return PoolStats{
		Total:    s.TotalConns(),
		Idle:     s.IdleConns(),
		Acquired: s.AcquiredConns(),
		Max:      s.MaxConns(),
	}
}
