package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/DjordjeVuckovic/rankeval/internal/eval/measure"
	"github.com/DjordjeVuckovic/rankeval/internal/eval/report"
	"github.com/DjordjeVuckovic/rankeval/internal/eval/runner"
	"github.com/DjordjeVuckovic/rankeval/internal/eval/source"
	"github.com/DjordjeVuckovic/rankeval/internal/eval/spec"
	"github.com/DjordjeVuckovic/rankeval/internal/eval/trec"
	"github.com/DjordjeVuckovic/rankeval/internal/storage/pg"
	dotenv "github.com/DjordjeVuckovic/rankeval/pkg/config/env"
)

const defaultEnvPath = "cmd/rankeval/.env"

func main() {
	if err := dotenv.LoadDotEnv(os.Getenv("APP_ENV"), defaultEnvPath); err != nil {
		slog.Debug("Skipping .env ...", "error", err)
	}

	cfg, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		slog.Error("Invalid arguments", "error", err)
		os.Exit(2)
	}

	if cfg.Verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	registry := measure.Default()

	if cfg.List {
		if err := listMeasures(registry, os.Stdout); err != nil {
			slog.Error("Failed to list measures", "error", err)
			os.Exit(1)
		}
		return
	}

	switch cfg.Mode {
	case modeImport:
		err = runImport(ctx, cfg)
	default:
		err = runEval(ctx, cfg, registry)
	}
	if err != nil {
		slog.Error("rankeval failed", "mode", cfg.Mode, "error", err)
		os.Exit(1)
	}
}

func runEval(ctx context.Context, cfg cliConfig, registry *measure.Registry) error {
	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	es, err := cfg.evalSpec()
	if err != nil {
		return err
	}

	plan, err := registry.Plan(es.Selections())
	if err != nil {
		return err
	}

	src, closeSrc, err := openSource(ctx, cfg, es)
	if err != nil {
		return err
	}
	defer closeSrc()

	runCfg := runner.Config{
		RelevanceLevel: es.RelevanceLevel,
		MaxRetrieved:   es.MaxRetrieved,
	}
	slog.Debug("evaluating",
		"qrels", es.Inputs.Qrels,
		"run", es.Inputs.Run,
		"run_id", es.Inputs.RunID,
		"measures", len(plan.Measures()),
		"relevance_level", runCfg.RelevanceLevel,
	)

	res, err := runner.New(runCfg, plan).Evaluate(ctx, src)
	if err != nil {
		return err
	}

	rep := report.Generate(res, report.Options{
		Name:     es.Name,
		PerTopic: es.PerTopic,
		Decimals: cfg.Precision,
	})

	if cfg.Output != "" {
		if err := report.WriteFile(rep, format, cfg.Output); err != nil {
			return err
		}
		slog.Info("Report written", "path", cfg.Output, "format", format)
		return nil
	}
	return report.Write(rep, format, os.Stdout)
}

// openSource picks the stored run when one is named, the files otherwise.
func openSource(ctx context.Context, cfg cliConfig, es *spec.EvalSpec) (source.Source, func(), error) {
	if es.Inputs.RunID == "" {
		return source.Files{
			QrelsPath: es.Inputs.Qrels,
			RunPath:   es.Inputs.Run,
			Complete:  es.Complete,
		}, func() {}, nil
	}

	pool, err := pg.NewConnectionPool(ctx, pg.PoolConfig{ConnStr: cfg.PgConnStr})
	if err != nil {
		return nil, nil, err
	}
	store := pg.NewEvalStore(pool)
	return source.NewPostgres(store, es.Inputs.RunID, es.Complete), pool.Close, nil
}

func runImport(ctx context.Context, cfg cliConfig) error {
	if cfg.PgConnStr == "" {
		return fmt.Errorf("import: -pg is required")
	}
	if cfg.QrelsPath == "" && cfg.RunPath == "" {
		return fmt.Errorf("import: nothing to import, set -qrels and/or -run")
	}
	if cfg.RunPath != "" && cfg.RunID == "" {
		return fmt.Errorf("import: -run-id is required with -run")
	}

	pool, err := pg.NewConnectionPool(ctx, pg.PoolConfig{ConnStr: cfg.PgConnStr})
	if err != nil {
		return err
	}
	defer pool.Close()
	store := pg.NewEvalStore(pool)

	if cfg.QrelsPath != "" {
		q, err := readTrec(cfg.QrelsPath, trec.ReadQrels)
		if err != nil {
			return err
		}
		n, err := store.SaveQrels(ctx, q)
		if err != nil {
			return err
		}
		slog.Info("Imported qrels", "path", cfg.QrelsPath, "topics", len(q), "judgments", n)
	}

	if cfg.RunPath != "" {
		run, err := readTrec(cfg.RunPath, trec.ReadRun)
		if err != nil {
			return err
		}
		n, err := store.SaveRun(ctx, cfg.RunID, run)
		if err != nil {
			return err
		}
		slog.Info("Imported run", "path", cfg.RunPath, "run_id", cfg.RunID, "tag", run.Tag, "results", n)
	}
	return nil
}

func readTrec[T any](path string, parse func(io.Reader) (T, error)) (T, error) {
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

func listMeasures(registry *measure.Registry, w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Measure\tAgg\tDefaults\tDescription")
	for _, m := range registry.All() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", m.Name(), m.Aggregation(), m.Defaults(), m.Help())
	}
	return tw.Flush()
}
