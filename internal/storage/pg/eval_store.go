package pg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DjordjeVuckovic/rankeval/internal/eval/relevance"
	"github.com/DjordjeVuckovic/rankeval/internal/eval/trec"
)

var ErrRunNotFound = errors.New("run not found")

// EvalStore persists judgments and runs so they can be evaluated later.
type EvalStore struct {
	db *pgxpool.Pool
}

func NewEvalStore(pool *ConnectionPool) *EvalStore {
	return &EvalStore{db: pool.db}
}

type qrelRow struct {
	TopicID string `db:"topic_id"`
	DocID   string `db:"doc_id"`
	Grade   int    `db:"grade"`
}

type resultRow struct {
	TopicID string  `db:"topic_id"`
	DocID   string  `db:"doc_id"`
	Score   float64 `db:"score"`
}

type RunInfo struct {
	RunID     string    `db:"run_id" json:"run_id"`
	Tag       string    `db:"tag" json:"tag"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	Results   int64     `db:"results" json:"results"`
}

// SaveQrels upserts every judgment. Existing grades for the same topic and
// document are replaced.
func (s *EvalStore) SaveQrels(ctx context.Context, q trec.Qrels) (int, error) {
	batch := &pgx.Batch{}
	for topic, judgments := range q {
		for _, j := range judgments {
			batch.Queue(`
				INSERT INTO qrels (topic_id, doc_id, grade)
				VALUES ($1, $2, $3)
				ON CONFLICT (topic_id, doc_id) DO UPDATE SET grade = EXCLUDED.grade
			`, topic, j.DocID, j.Grade)
		}
	}
	if batch.Len() == 0 {
		return 0, nil
	}

	if err := s.db.SendBatch(ctx, batch).Close(); err != nil {
		return 0, fmt.Errorf("failed to save qrels: %w", err)
	}
	return batch.Len(), nil
}

// SaveRun replaces the stored results of runID with run.
func (s *EvalStore) SaveRun(ctx context.Context, runID string, run *trec.Run) (int64, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO runs (run_id, tag) VALUES ($1, $2)
		ON CONFLICT (run_id) DO UPDATE SET tag = EXCLUDED.tag, created_at = now()
	`, runID, run.Tag)
	if err != nil {
		return 0, fmt.Errorf("failed to save run %s: %w", runID, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM run_results WHERE run_id = $1`, runID); err != nil {
		return 0, fmt.Errorf("failed to clear run %s: %w", runID, err)
	}

	var rows [][]any
	for topic, docs := range run.Topics {
		for _, d := range docs {
			rows = append(rows, []any{runID, topic, d.DocID, d.Score})
		}
	}

	n, err := tx.CopyFrom(ctx,
		pgx.Identifier{"run_results"},
		[]string{"run_id", "topic_id", "doc_id", "score"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to copy results of run %s: %w", runID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit run %s: %w", runID, err)
	}
	return n, nil
}

func (s *EvalStore) LoadQrels(ctx context.Context) (trec.Qrels, error) {
	rows, err := s.db.Query(ctx, `SELECT topic_id, doc_id, grade FROM qrels ORDER BY topic_id, doc_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query qrels: %w", err)
	}
	judged, err := pgx.CollectRows(rows, pgx.RowToStructByName[qrelRow])
	if err != nil {
		return nil, fmt.Errorf("failed to scan qrels: %w", err)
	}

	q := make(trec.Qrels)
	for _, r := range judged {
		q[r.TopicID] = append(q[r.TopicID], relevance.Judgment{DocID: r.DocID, Grade: r.Grade})
	}
	return q, nil
}

func (s *EvalStore) LoadRun(ctx context.Context, runID string) (*trec.Run, error) {
	run := &trec.Run{Topics: make(map[string][]relevance.RankedDoc)}

	err := s.db.QueryRow(ctx, `SELECT tag FROM runs WHERE run_id = $1`, runID).Scan(&run.Tag)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", runID, ErrRunNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query run %s: %w", runID, err)
	}

	rows, err := s.db.Query(ctx, `
		SELECT topic_id, doc_id, score FROM run_results
		WHERE run_id = $1
		ORDER BY topic_id, score DESC, doc_id DESC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query results of run %s: %w", runID, err)
	}
	results, err := pgx.CollectRows(rows, pgx.RowToStructByName[resultRow])
	if err != nil {
		return nil, fmt.Errorf("failed to scan results of run %s: %w", runID, err)
	}

	for _, r := range results {
		run.Topics[r.TopicID] = append(run.Topics[r.TopicID], relevance.RankedDoc{DocID: r.DocID, Score: r.Score})
	}
	return run, nil
}

func (s *EvalStore) ListRuns(ctx context.Context) ([]RunInfo, error) {
	rows, err := s.db.Query(ctx, `
		SELECT r.run_id, r.tag, r.created_at, count(rr.doc_id) AS results
		FROM runs r
		LEFT JOIN run_results rr ON rr.run_id = r.run_id
		GROUP BY r.run_id, r.tag, r.created_at
		ORDER BY r.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	runs, err := pgx.CollectRows(rows, pgx.RowToStructByName[RunInfo])
	if err != nil {
		return nil, fmt.Errorf("failed to scan runs: %w", err)
	}
	return runs, nil
}
