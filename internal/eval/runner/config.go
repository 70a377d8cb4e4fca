package runner

import "github.com/DjordjeVuckovic/rankeval/internal/eval/relevance"

const (
	DefaultRelevanceLevel = relevance.DefaultRelevanceLevel
	// DefaultMaxRetrieved of 0 evaluates every retrieved document.
	DefaultMaxRetrieved = 0
)

type Config struct {
	RelevanceLevel int
	MaxRetrieved   int
}

func DefaultConfig() Config {
	return Config{
		RelevanceLevel: DefaultRelevanceLevel,
		MaxRetrieved:   DefaultMaxRetrieved,
	}
}

func (c Config) correlation() relevance.Options {
	return relevance.Options{
		RelevanceLevel: c.RelevanceLevel,
		MaxRetrieved:   c.MaxRetrieved,
	}
}
