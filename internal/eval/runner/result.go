package runner

import (
	"time"

	"github.com/DjordjeVuckovic/rankeval/internal/eval/measure"
)

type TopicResult struct {
	TopicID string
	NumRet  int
	NumRel  int
	// Lines holds the values of every measure defined for the topic.
	Lines []measure.Line
	// Undefined names the measures the topic did not contribute to.
	Undefined []string
	Elapsed   time.Duration
}

type SkippedTopic struct {
	TopicID string
	Reason  string
}

type Result struct {
	Config  Config
	RunTag  string
	Topics  []TopicResult
	Finals  []measure.Final
	Skipped []SkippedTopic
	Timing  TimingStats
}

// Evaluated is the number of topics that reached the measures.
func (r *Result) Evaluated() int {
	return len(r.Topics)
}
