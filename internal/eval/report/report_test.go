package report

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/DjordjeVuckovic/rankeval/internal/eval/measure"
	"github.com/DjordjeVuckovic/rankeval/internal/eval/runner"
	"github.com/DjordjeVuckovic/rankeval/internal/eval/source"
)

const (
	qrels = "1 0 a 1\n1 0 b 1\n2 0 c 1\n3 0 d 0\n"
	run   = "1 Q0 a 1 2.0 bm25\n1 Q0 x 2 1.0 bm25\n2 Q0 y 1 3.0 bm25\n2 Q0 c 2 2.0 bm25\n4 Q0 z 1 1.0 bm25\n"
)

func evaluate(t *testing.T, selections ...string) *runner.Result {
	t.Helper()
	plan, err := measure.Default().Plan(selections)
	require.NoError(t, err)

	res, err := runner.New(runner.DefaultConfig(), plan).Evaluate(context.Background(), source.Text{Qrels: qrels, Run: run})
	require.NoError(t, err)
	return res
}

func TestGenerate(t *testing.T) {
	res := evaluate(t, "P.1,2", "gm_recip_rank")

	r := Generate(res, Options{Name: "smoke", PerTopic: true})

	assert.NotEmpty(t, r.Meta.EvalID)
	assert.Equal(t, "bm25", r.Meta.RunTag)
	assert.Equal(t, 2, r.Meta.Topics)
	assert.Equal(t, []string{"4"}, r.Skipped)
	assert.Equal(t, []string{"P.1,2", "gm_recip_rank"}, r.Config.Measures)

	require.Len(t, r.Summary, 3)
	p1 := r.Summary[0]
	assert.Equal(t, "P_1", p1.Label)
	assert.InDelta(t, 0.5, p1.Value, 1e-12)
	assert.Equal(t, 2, p1.Topics)
	assert.InDelta(t, 0.0, p1.Min, 1e-12)
	assert.InDelta(t, 1.0, p1.Max, 1e-12)
	assert.Greater(t, p1.StdDev, 0.0)

	rr := r.Summary[2]
	assert.Equal(t, "gm_recip_rank", rr.Label)
	assert.Equal(t, "geometric", rr.Aggregation)
	assert.InDelta(t, 0.7071067811865476, rr.Value, 1e-12)

	require.Len(t, r.PerTopic, 2)
	assert.Equal(t, "1", r.PerTopic[0].TopicID)
	assert.Equal(t, 2, r.PerTopic[0].NumRel)
}

func TestGenerate_Rounding(t *testing.T) {
	res := evaluate(t, "gm_recip_rank")

	r := Generate(res, Options{Decimals: 2})
	assert.Equal(t, 0.71, r.Summary[0].Value)
	assert.Empty(t, r.PerTopic)
}

func TestWriteTrec(t *testing.T) {
	r := Generate(evaluate(t, "P.1"), Options{PerTopic: true})

	var buf bytes.Buffer
	require.NoError(t, WriteTrec(r, &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, []string{"runid", "all", "bm25"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"num_q", "all", "2"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"P_1", "1", "1.0000"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"P_1", "2", "0.0000"}, strings.Fields(lines[3]))
	assert.Equal(t, []string{"P_1", "all", "0.5000"}, strings.Fields(lines[4]))
}

func TestWriteTable(t *testing.T) {
	r := Generate(evaluate(t, "map", "ndcg"), Options{Name: "smoke"})

	var buf bytes.Buffer
	require.NoError(t, WriteTable(r, &buf))

	out := buf.String()
	assert.Contains(t, out, "=== Evaluation: smoke / bm25 ===")
	assert.Contains(t, out, "Measure")
	assert.Contains(t, out, "---")
	assert.Contains(t, out, "map")
	assert.Contains(t, out, "ndcg")
	assert.Contains(t, out, "Per-topic time")
}

func TestWrite_Encodings(t *testing.T) {
	r := Generate(evaluate(t, "set_P"), Options{})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(r, FormatJSON, &buf))

		var decoded Report
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, r.Summary, decoded.Summary)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(r, FormatYAML, &buf))

		var decoded map[string]any
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
		assert.Contains(t, decoded, "summary")
	})
}

func TestWriteFile(t *testing.T) {
	r := Generate(evaluate(t, "map"), Options{})
	path := filepath.Join(t.TempDir(), "report.json")

	require.NoError(t, WriteFile(r, FormatJSON, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"label": "map"`)
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"trec", "table", "json", "yaml"} {
		f, err := ParseFormat(s)
		require.NoError(t, err)
		assert.Equal(t, Format(s), f)
	}

	_, err := ParseFormat("csv")
	assert.Error(t, err)
}
