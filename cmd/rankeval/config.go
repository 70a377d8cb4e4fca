package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/DjordjeVuckovic/rankeval/internal/apperr"
	"github.com/DjordjeVuckovic/rankeval/internal/eval/measure"
	"github.com/DjordjeVuckovic/rankeval/internal/eval/relevance"
	"github.com/DjordjeVuckovic/rankeval/internal/eval/spec"
)

const (
	modeEval   = "eval"
	modeImport = "import"
)

// measureFlags collects repeated -m selections.
type measureFlags []string

func (m *measureFlags) String() string {
	return strings.Join(*m, " ")
}

func (m *measureFlags) Set(v string) error {
	*m = append(*m, v)
	return nil
}

type cliConfig struct {
	QrelsPath      string
	RunPath        string
	PgConnStr      string
	RunID          string
	Measures       measureFlags
	SpecPath       string
	RelevanceLevel int
	MaxRetrieved   int
	PerTopic       bool
	Complete       bool
	Format         string
	Output         string
	Precision      int
	List           bool
	Mode           string
	Verbose        bool

	// set records the flags given on the command line.
	set map[string]bool
}

func parseFlags(args []string) (cliConfig, error) {
	cfg := cliConfig{set: make(map[string]bool)}

	fs := flag.NewFlagSet("rankeval", flag.ContinueOnError)
	fs.StringVar(&cfg.QrelsPath, "qrels", "", "Path to the qrels file (topic iter docno rel)")
	fs.StringVar(&cfg.RunPath, "run", "", "Path to the run file (topic Q0 docno rank score tag)")
	fs.StringVar(&cfg.PgConnStr, "pg", os.Getenv("DATABASE_URL"), "PostgreSQL connection string for stored qrels and runs (default $DATABASE_URL)")
	fs.StringVar(&cfg.RunID, "run-id", "", "Stored run to evaluate, or to import into with -mode import")
	fs.Var(&cfg.Measures, "m", "Measure to compute as name[.params], repeatable, e.g. P.5,10 (cutoffs positive, no duplicates); \"all\" selects every measure")
	fs.StringVar(&cfg.SpecPath, "spec", "", "Path to an evaluation spec (YAML or TOML)")
	fs.IntVar(&cfg.RelevanceLevel, "l", relevance.DefaultRelevanceLevel, "Minimum grade counted as relevant")
	fs.IntVar(&cfg.MaxRetrieved, "M", 0, "Evaluate only the top M documents of each topic, 0 for all")
	fs.BoolVar(&cfg.PerTopic, "q", false, "Print per-topic values as well as averages")
	fs.BoolVar(&cfg.Complete, "c", false, "Average over every judged topic, including ones the run did not answer")
	fs.StringVar(&cfg.Format, "format", "trec", "Output format: trec, table, json or yaml")
	fs.StringVar(&cfg.Output, "output", "", "Write the report to this file instead of stdout")
	fs.IntVar(&cfg.Precision, "precision", 0, "Round report values to this many decimals, 0 to keep full precision")
	fs.BoolVar(&cfg.List, "list", false, "List available measures and exit")
	fs.StringVar(&cfg.Mode, "mode", modeEval, "Run mode: eval or import")
	fs.BoolVar(&cfg.Verbose, "v", false, "Verbose logging")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	fs.Visit(func(f *flag.Flag) {
		cfg.set[f.Name] = true
	})

	// trec_eval style positional arguments: qrels run
	if rest := fs.Args(); len(rest) > 0 {
		if len(rest) != 2 || cfg.QrelsPath != "" || cfg.RunPath != "" {
			return cfg, fmt.Errorf("expected positional arguments <qrels> <run>, got %d", len(rest))
		}
		cfg.QrelsPath, cfg.RunPath = rest[0], rest[1]
		cfg.set["qrels"], cfg.set["run"] = true, true
	}

	if cfg.Mode != modeEval && cfg.Mode != modeImport {
		return cfg, apperr.NewFieldValidation("mode", fmt.Sprintf("unknown mode %q", cfg.Mode), nil)
	}
	return cfg, nil
}

// evalSpec merges the spec file, if any, with the command line. Flags given
// explicitly win over the file.
func (c cliConfig) evalSpec() (*spec.EvalSpec, error) {
	s := &spec.EvalSpec{}
	if c.SpecPath != "" {
		loaded, err := spec.LoadFromFile(c.SpecPath)
		if err != nil {
			return nil, err
		}
		s = loaded
	}

	if c.set["qrels"] || s.Inputs.Qrels == "" {
		s.Inputs.Qrels = c.QrelsPath
	}
	if c.set["run"] {
		s.Inputs.Run, s.Inputs.RunID = c.RunPath, ""
	}
	if c.set["run-id"] {
		s.Inputs.RunID, s.Inputs.Run = c.RunID, ""
	}
	if c.set["l"] || s.RelevanceLevel <= 0 {
		s.RelevanceLevel = c.RelevanceLevel
	}
	if c.set["M"] || c.SpecPath == "" {
		s.MaxRetrieved = c.MaxRetrieved
	}
	if c.set["q"] {
		s.PerTopic = c.PerTopic
	}
	if c.set["c"] {
		s.Complete = c.Complete
	}
	if len(c.Measures) > 0 {
		s.Measures = nil
		for _, sel := range c.Measures {
			name, raw := measure.ParseSelection(sel)
			s.Measures = append(s.Measures, spec.MeasureSpec{Name: name, Params: raw})
		}
	}

	if s.Inputs.RunID == "" && (s.Inputs.Qrels == "" || s.Inputs.Run == "") {
		return nil, apperr.NewValidation("need -qrels and -run, or -pg with -run-id")
	}
	if s.Inputs.RunID != "" && c.PgConnStr == "" {
		return nil, apperr.NewFieldValidation("pg", "required to evaluate a stored run", nil)
	}
	if s.MaxRetrieved < 0 {
		return nil, apperr.NewFieldValidation("M", "must not be negative", nil)
	}
	return s, nil
}
