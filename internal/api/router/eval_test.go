package router

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DjordjeVuckovic/rankeval/internal/apperr"
	"github.com/DjordjeVuckovic/rankeval/internal/eval/measure"
	"github.com/DjordjeVuckovic/rankeval/internal/eval/relevance"
	"github.com/DjordjeVuckovic/rankeval/internal/eval/report"
	"github.com/DjordjeVuckovic/rankeval/internal/eval/trec"
	"github.com/DjordjeVuckovic/rankeval/internal/storage/pg"
)

const (
	qrels = "1 0 a 1\n1 0 b 1\n2 0 c 1\n3 0 d 0\n"
	run   = "1 Q0 a 1 2.0 bm25\n1 Q0 x 2 1.0 bm25\n2 Q0 y 1 3.0 bm25\n2 Q0 c 2 2.0 bm25\n4 Q0 z 1 1.0 bm25\n"
)

type fakeCatalog struct {
	qrels trec.Qrels
	runs  map[string]*trec.Run
}

func (f *fakeCatalog) LoadQrels(context.Context) (trec.Qrels, error) {
	return f.qrels, nil
}

func (f *fakeCatalog) LoadRun(_ context.Context, runID string) (*trec.Run, error) {
	r, ok := f.runs[runID]
	if !ok {
		return nil, fmt.Errorf("%s: %w", runID, pg.ErrRunNotFound)
	}
	return r, nil
}

func (f *fakeCatalog) ListRuns(context.Context) ([]pg.RunInfo, error) {
	var out []pg.RunInfo
	for id, r := range f.runs {
		out = append(out, pg.RunInfo{RunID: id, Tag: r.Tag, CreatedAt: time.Unix(0, 0).UTC()})
	}
	return out, nil
}

func newTestServer(t *testing.T, opts ...EvalRouterOption) *echo.Echo {
	t.Helper()
	e := echo.New()
	e.HTTPErrorHandler = apperr.GlobalErrorHandler()
	NewEvalRouter(e, measure.Default(), opts...).Bind()
	return e
}

func do(e *echo.Echo, method, path string, body any) *httptest.ResponseRecorder {
	var payload string
	if body != nil {
		b, _ := json.Marshal(body)
		payload = string(b)
	}
	req := httptest.NewRequest(method, path, strings.NewReader(payload))
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func summary(t *testing.T, rec *httptest.ResponseRecorder) map[string]float64 {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var r report.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &r))

	out := make(map[string]float64, len(r.Summary))
	for _, v := range r.Summary {
		out[v.Label] = v.Value
	}
	return out
}

func TestMeasures(t *testing.T) {
	e := newTestServer(t)

	rec := do(e, http.MethodGet, "/measures", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got []MeasureInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, len(measure.Default().All()))
	assert.Equal(t, "P", got[0].Name)
	assert.Equal(t, "arithmetic", got[0].Aggregation)
	assert.NotEmpty(t, got[0].Defaults)
}

func TestEvaluate(t *testing.T) {
	e := newTestServer(t)

	t.Run("selected measures", func(t *testing.T) {
		rec := do(e, http.MethodPost, "/evaluate", EvaluateRequest{
			Qrels:           qrels,
			Run:             run,
			EvaluateOptions: EvaluateOptions{Measures: []string{"P.1,2", "recip_rank"}},
		})

		got := summary(t, rec)
		assert.InDelta(t, 0.5, got["P_1"], 1e-9)
		assert.InDelta(t, 0.5, got["P_2"], 1e-9)
		assert.InDelta(t, 0.75, got["recip_rank"], 1e-9)
	})

	t.Run("all measures by default", func(t *testing.T) {
		rec := do(e, http.MethodPost, "/evaluate", EvaluateRequest{Qrels: qrels, Run: run})

		got := summary(t, rec)
		assert.Contains(t, got, "map")
		assert.Contains(t, got, "gm_ndcg")
	})

	tests := []struct {
		name string
		req  EvaluateRequest
	}{
		{name: "missing qrels", req: EvaluateRequest{Run: run}},
		{name: "missing run", req: EvaluateRequest{Qrels: qrels}},
		{name: "unknown measure", req: EvaluateRequest{Qrels: qrels, Run: run, EvaluateOptions: EvaluateOptions{Measures: []string{"nope"}}}},
		{name: "bad params", req: EvaluateRequest{Qrels: qrels, Run: run, EvaluateOptions: EvaluateOptions{Measures: []string{"P.x"}}}},
		{name: "negative max retrieved", req: EvaluateRequest{Qrels: qrels, Run: run, EvaluateOptions: EvaluateOptions{MaxRetrieved: -1}}},
		{name: "malformed run", req: EvaluateRequest{Qrels: qrels, Run: "1 Q0 a\n"}},
		{name: "grade out of range", req: EvaluateRequest{Qrels: "1 0 a 4611686018427387904\n", Run: run}},
		{name: "duplicate document", req: EvaluateRequest{Qrels: qrels, Run: "1 Q0 a 1 2.0 t\n1 Q0 a 2 1.0 t\n"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(e, http.MethodPost, "/evaluate", tt.req)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestRuns(t *testing.T) {
	q, err := trec.ReadQrels(strings.NewReader(qrels))
	require.NoError(t, err)
	r, err := trec.ReadRun(strings.NewReader(run))
	require.NoError(t, err)

	store := &fakeCatalog{qrels: q, runs: map[string]*trec.Run{"bm25": r}}

	t.Run("disabled without store", func(t *testing.T) {
		e := newTestServer(t)
		rec := do(e, http.MethodGet, "/runs", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	e := newTestServer(t, WithRunStore(store))

	t.Run("list", func(t *testing.T) {
		rec := do(e, http.MethodGet, "/runs", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var got []pg.RunInfo
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "bm25", got[0].RunID)
	})

	t.Run("evaluate stored run", func(t *testing.T) {
		rec := do(e, http.MethodPost, "/runs/bm25/evaluate", EvaluateOptions{Measures: []string{"P.1"}})

		got := summary(t, rec)
		assert.InDelta(t, 0.5, got["P_1"], 1e-9)
	})

	t.Run("evaluate stored run without body", func(t *testing.T) {
		rec := do(e, http.MethodPost, "/runs/bm25/evaluate", nil)

		got := summary(t, rec)
		assert.Contains(t, got, "P_5")
	})

	t.Run("complete includes unanswered topics", func(t *testing.T) {
		rec := do(e, http.MethodPost, "/runs/bm25/evaluate", EvaluateOptions{Measures: []string{"P.1"}, Complete: true})

		got := summary(t, rec)
		// topic 3 has judgments but no relevant documents and nothing retrieved
		assert.InDelta(t, 1.0/3.0, got["P_1"], 1e-9)
	})

	t.Run("stored grade out of range", func(t *testing.T) {
		huge := &fakeCatalog{
			qrels: trec.Qrels{"1": {{DocID: "a", Grade: relevance.MaxGrade + 1}}},
			runs:  map[string]*trec.Run{"bm25": r},
		}
		e := newTestServer(t, WithRunStore(huge))

		rec := do(e, http.MethodPost, "/runs/bm25/evaluate", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	})

	t.Run("unknown run", func(t *testing.T) {
		rec := do(e, http.MethodPost, "/runs/missing/evaluate", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestEvaluateSkipsUnjudgedTopics(t *testing.T) {
	e := newTestServer(t)

	rec := do(e, http.MethodPost, "/evaluate", EvaluateRequest{
		Qrels:           qrels,
		Run:             run,
		EvaluateOptions: EvaluateOptions{Measures: []string{"P.1"}, PerTopic: true},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var r report.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &r))
	assert.Equal(t, 2, r.Meta.Topics)
	assert.Equal(t, []string{"4"}, r.Skipped)
	require.Len(t, r.PerTopic, 2)
	assert.Equal(t, "1", r.PerTopic[0].TopicID)
}

var _ RunCatalog = (*fakeCatalog)(nil)
