package spec

// EvalSpec describes one evaluation: where the judgments and run come from,
// which measures to compute and how documents are counted.
type EvalSpec struct {
	Name           string        `yaml:"name" toml:"name"`
	Inputs         Inputs        `yaml:"inputs" toml:"inputs"`
	RelevanceLevel int           `yaml:"relevance_level" toml:"relevance_level"`
	MaxRetrieved   int           `yaml:"max_retrieved" toml:"max_retrieved"`
	PerTopic       bool          `yaml:"per_topic" toml:"per_topic"`
	Complete       bool          `yaml:"complete" toml:"complete"`
	Measures       []MeasureSpec `yaml:"measures" toml:"measures"`
}

// Inputs names either files or a stored run. File paths are relative to the
// spec file.
type Inputs struct {
	Qrels string `yaml:"qrels,omitempty" toml:"qrels"`
	Run   string `yaml:"run,omitempty" toml:"run"`
	RunID string `yaml:"run_id,omitempty" toml:"run_id"`
}

type MeasureSpec struct {
	Name   string `yaml:"name" toml:"name"`
	Params string `yaml:"params,omitempty" toml:"params"`
}

// Selection renders the measure in "name.params" form.
func (m MeasureSpec) Selection() string {
	if m.Params == "" {
		return m.Name
	}
	return m.Name + "." + m.Params
}

func (s *EvalSpec) Selections() []string {
	out := make([]string, len(s.Measures))
	for i, m := range s.Measures {
		out[i] = m.Selection()
	}
	return out
}
