package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/DjordjeVuckovic/rankeval/internal/eval/trec"
)

// Files reads a qrels file and a run file from disk.
type Files struct {
	QrelsPath string
	RunPath   string
	// Complete includes judged topics the run has no results for.
	Complete bool
}

func (f Files) Load(ctx context.Context) (*Batch, error) {
	q, err := readFile(f.QrelsPath, trec.ReadQrels)
	if err != nil {
		return nil, fmt.Errorf("load qrels: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	run, err := readFile(f.RunPath, trec.ReadRun)
	if err != nil {
		return nil, fmt.Errorf("load run: %w", err)
	}
	return fromTrec(q, run, f.Complete), nil
}

func readFile[T any](path string, parse func(io.Reader) (T, error)) (T, error) {
	var zero T
	fh, err := os.Open(path)
	if err != nil {
		return zero, err
	}
	defer fh.Close()

	v, err := parse(fh)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// Text holds qrels and run contents in memory, as received by the HTTP API.
type Text struct {
	Qrels    string
	Run      string
	Complete bool
}

func (t Text) Load(_ context.Context) (*Batch, error) {
	q, err := trec.ReadQrels(strings.NewReader(t.Qrels))
	if err != nil {
		return nil, fmt.Errorf("parse qrels: %w", err)
	}
	run, err := trec.ReadRun(strings.NewReader(t.Run))
	if err != nil {
		return nil, fmt.Errorf("parse run: %w", err)
	}
	return fromTrec(q, run, t.Complete), nil
}
