package router

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/DjordjeVuckovic/rankeval/internal/apperr"
	"github.com/DjordjeVuckovic/rankeval/internal/eval/measure"
	"github.com/DjordjeVuckovic/rankeval/internal/eval/relevance"
	"github.com/DjordjeVuckovic/rankeval/internal/eval/report"
	"github.com/DjordjeVuckovic/rankeval/internal/eval/runner"
	"github.com/DjordjeVuckovic/rankeval/internal/eval/source"
	"github.com/DjordjeVuckovic/rankeval/internal/storage/pg"
)

// RunCatalog is the stored-run side of the evaluation database.
type RunCatalog interface {
	source.RunStore
	ListRuns(ctx context.Context) ([]pg.RunInfo, error)
}

type EvalRouterOption func(*EvalRouter)

// WithRunStore enables the /runs endpoints.
func WithRunStore(store RunCatalog) EvalRouterOption {
	return func(r *EvalRouter) {
		r.runs = store
	}
}

type EvalRouter struct {
	e        *echo.Echo
	registry *measure.Registry
	runs     RunCatalog
}

func NewEvalRouter(e *echo.Echo, registry *measure.Registry, opts ...EvalRouterOption) *EvalRouter {
	r := &EvalRouter{
		e:        e,
		registry: registry,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *EvalRouter) Bind() {
	r.e.GET("/measures", r.measuresHandler)
	r.e.POST("/evaluate", r.evaluateHandler)

	if r.runs != nil {
		r.e.GET("/runs", r.listRunsHandler)
		r.e.POST("/runs/:id/evaluate", r.evaluateRunHandler)
	}
}

type MeasureInfo struct {
	Name        string `json:"name"`
	Help        string `json:"help"`
	Aggregation string `json:"aggregation"`
	Defaults    string `json:"defaults,omitempty"`
}

type EvaluateOptions struct {
	Name           string   `json:"name,omitempty"`
	Measures       []string `json:"measures,omitempty"`
	RelevanceLevel int      `json:"relevance_level,omitempty"`
	MaxRetrieved   int      `json:"max_retrieved,omitempty"`
	PerTopic       bool     `json:"per_topic,omitempty"`
	Complete       bool     `json:"complete,omitempty"`
}

type EvaluateRequest struct {
	Qrels string `json:"qrels"`
	Run   string `json:"run"`
	EvaluateOptions
}

// measuresHandler godoc
// @Summary List available measures
// @Tags measures
// @Produce json
// @Success 200 {array} MeasureInfo
// @Router /measures [get]
func (r *EvalRouter) measuresHandler(c echo.Context) error {
	all := r.registry.All()
	out := make([]MeasureInfo, 0, len(all))
	for _, m := range all {
		out = append(out, MeasureInfo{
			Name:        m.Name(),
			Help:        m.Help(),
			Aggregation: m.Aggregation().String(),
			Defaults:    m.Defaults().String(),
		})
	}
	return c.JSON(http.StatusOK, out)
}

// evaluateHandler godoc
// @Summary Evaluate a run against judgments
// @Tags evaluate
// @Accept json
// @Produce json
// @Param request body EvaluateRequest true "Qrels, run and measures"
// @Success 200 {object} report.Report
// @Failure 400 {object} map[string]string
// @Router /evaluate [post]
func (r *EvalRouter) evaluateHandler(c echo.Context) error {
	var req EvaluateRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}
	if strings.TrimSpace(req.Qrels) == "" {
		return apperr.NewFieldValidation("qrels", "is required", nil)
	}
	if strings.TrimSpace(req.Run) == "" {
		return apperr.NewFieldValidation("run", "is required", nil)
	}

	src := source.Text{Qrels: req.Qrels, Run: req.Run, Complete: req.Complete}
	rep, err := r.evaluate(c.Request().Context(), src, req.EvaluateOptions)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rep)
}

// listRunsHandler godoc
// @Summary List stored runs
// @Tags runs
// @Produce json
// @Success 200 {array} pg.RunInfo
// @Router /runs [get]
func (r *EvalRouter) listRunsHandler(c echo.Context) error {
	runs, err := r.runs.ListRuns(c.Request().Context())
	if err != nil {
		return err
	}
	if runs == nil {
		runs = []pg.RunInfo{}
	}
	return c.JSON(http.StatusOK, runs)
}

// evaluateRunHandler godoc
// @Summary Evaluate a stored run against stored judgments
// @Tags runs
// @Accept json
// @Produce json
// @Param id path string true "Run ID"
// @Param request body EvaluateOptions false "Measures and options"
// @Success 200 {object} report.Report
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /runs/{id}/evaluate [post]
func (r *EvalRouter) evaluateRunHandler(c echo.Context) error {
	var opts EvaluateOptions
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&opts); err != nil {
			return apperr.NewValidationWrap("invalid request body", err)
		}
	}

	src := source.NewPostgres(r.runs, c.Param("id"), opts.Complete)
	rep, err := r.evaluate(c.Request().Context(), src, opts)
	if errors.Is(err, pg.ErrRunNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rep)
}

func (r *EvalRouter) evaluate(ctx context.Context, src source.Source, opts EvaluateOptions) (*report.Report, error) {
	if opts.MaxRetrieved < 0 {
		return nil, apperr.NewFieldValidation("max_retrieved", "must not be negative", nil)
	}

	plan, err := r.registry.Plan(opts.Measures)
	if err != nil {
		return nil, err
	}

	cfg := runner.Config{RelevanceLevel: opts.RelevanceLevel, MaxRetrieved: opts.MaxRetrieved}
	if cfg.RelevanceLevel <= 0 {
		cfg.RelevanceLevel = runner.DefaultRelevanceLevel
	}

	res, err := runner.New(cfg, plan).Evaluate(ctx, src)
	if errors.Is(err, relevance.ErrDuplicateDoc) {
		return nil, apperr.NewValidationWrap("invalid input", err)
	}
	if err != nil {
		return nil, err
	}

	return report.Generate(res, report.Options{Name: opts.Name, PerTopic: opts.PerTopic}), nil
}
