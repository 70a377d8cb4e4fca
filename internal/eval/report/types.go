package report

import (
	"runtime"
	"time"

	"github.com/DjordjeVuckovic/rankeval/internal/eval/runner"
)

const Version = "1.0"

type Report struct {
	Meta     Meta               `json:"meta" yaml:"meta"`
	Config   Config             `json:"config" yaml:"config"`
	Summary  []Value            `json:"summary" yaml:"summary"`
	PerTopic []TopicReport      `json:"per_topic,omitempty" yaml:"per_topic,omitempty"`
	Skipped  []string           `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Timing   runner.TimingStats `json:"timing" yaml:"timing"`
}

type Meta struct {
	EvalID      string          `json:"eval_id" yaml:"eval_id"`
	Name        string          `json:"name,omitempty" yaml:"name,omitempty"`
	RunTag      string          `json:"run_tag" yaml:"run_tag"`
	Version     string          `json:"version" yaml:"version"`
	Timestamp   time.Time       `json:"timestamp" yaml:"timestamp"`
	Topics      int             `json:"topics" yaml:"topics"`
	Environment EnvironmentInfo `json:"environment" yaml:"environment"`
}

type EnvironmentInfo struct {
	GoVersion string `json:"go_version" yaml:"go_version"`
	OS        string `json:"os" yaml:"os"`
	Arch      string `json:"arch" yaml:"arch"`
	NumCPU    int    `json:"num_cpu" yaml:"num_cpu"`
}

func NewEnvironmentInfo() EnvironmentInfo {
	return EnvironmentInfo{
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		NumCPU:    runtime.NumCPU(),
	}
}

type Config struct {
	RelevanceLevel int      `json:"relevance_level" yaml:"relevance_level"`
	MaxRetrieved   int      `json:"max_retrieved,omitempty" yaml:"max_retrieved,omitempty"`
	Measures       []string `json:"measures" yaml:"measures"`
}

// Value is the cross-topic result of one output label, with the spread of the
// per-topic values behind it.
type Value struct {
	Measure     string  `json:"measure" yaml:"measure"`
	Label       string  `json:"label" yaml:"label"`
	Value       float64 `json:"value" yaml:"value"`
	Aggregation string  `json:"aggregation" yaml:"aggregation"`
	Topics      int     `json:"topics" yaml:"topics"`
	Min         float64 `json:"min" yaml:"min"`
	Max         float64 `json:"max" yaml:"max"`
	StdDev      float64 `json:"stddev" yaml:"stddev"`
}

type TopicReport struct {
	TopicID string       `json:"topic_id" yaml:"topic_id"`
	NumRet  int          `json:"num_ret" yaml:"num_ret"`
	NumRel  int          `json:"num_rel" yaml:"num_rel"`
	Values  []TopicValue `json:"values" yaml:"values"`
}

type TopicValue struct {
	Label string  `json:"label" yaml:"label"`
	Value float64 `json:"value" yaml:"value"`
}
