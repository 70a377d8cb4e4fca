package relevance

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/DjordjeVuckovic/rankeval/internal/apperr"
)

const (
	DefaultRelevanceLevel = 1
	// MaxGrade is the highest accepted judgment grade. The level histogram is
	// sized by the top grade, so it must stay small.
	MaxGrade = 1000
)

var (
	ErrNoJudgments  = errors.New("topic has no judgments")
	ErrDuplicateDoc = errors.New("duplicate document")
	ErrGradeRange   = fmt.Errorf("grade above %d", MaxGrade)
)

// Judgment is one assessed document. A negative grade means the document was
// in the pool but left unjudged.
type Judgment struct {
	DocID string `json:"doc_id" yaml:"doc_id"`
	Grade int    `json:"grade" yaml:"grade"`
}

type RankedDoc struct {
	DocID string  `json:"doc_id" yaml:"doc_id"`
	Score float64 `json:"score" yaml:"score"`
}

// Topic pairs the judgments of one query with the ranking a run produced for it.
// Ranking is expected in rank order (see SortRanking).
type Topic struct {
	ID        string
	Judgments []Judgment
	Ranking   []RankedDoc
}

type Options struct {
	// RelevanceLevel is the minimum judged level counted as relevant.
	RelevanceLevel int
	// MaxRetrieved truncates the ranking when > 0.
	MaxRetrieved int
}

// Correlation is the per-topic view every measure computes from.
type Correlation struct {
	TopicID string
	// Grades and Scores are aligned with rank; both have NumRet entries.
	Grades []Grade
	Scores []float64
	// Levels[l] counts judged documents at level l.
	Levels []int

	NumRel         int
	NumRet         int
	NumRelRet      int
	NumUnjudged    int
	RelevanceLevel int
}

// NumLevels is the highest judged level plus one, or 0 when nothing was judged
// with a non-negative grade.
func (c *Correlation) NumLevels() int {
	return len(c.Levels)
}

func (c *Correlation) NumJudged() int {
	var n int
	for _, cnt := range c.Levels {
		n += cnt
	}
	return n
}

// Relevant reports whether the document at rank i (0-based) meets the relevance level.
func (c *Correlation) Relevant(i int) bool {
	return c.Grades[i].AtLeast(c.RelevanceLevel)
}

// Correlate resolves each retrieved document of t against its judgments.
func Correlate(t Topic, opts Options) (*Correlation, error) {
	if len(t.Judgments) == 0 {
		return nil, fmt.Errorf("topic %s: %w", t.ID, ErrNoJudgments)
	}

	relLevel := opts.RelevanceLevel
	if relLevel <= 0 {
		relLevel = DefaultRelevanceLevel
	}

	c := &Correlation{
		TopicID:        t.ID,
		RelevanceLevel: relLevel,
	}

	judged := make(map[string]int, len(t.Judgments))
	maxLevel := -1
	for _, j := range t.Judgments {
		if _, dup := judged[j.DocID]; dup {
			return nil, fmt.Errorf("topic %s: judgment for %q: %w", t.ID, j.DocID, ErrDuplicateDoc)
		}
		if j.Grade > MaxGrade {
			return nil, apperr.NewValidationWrap(fmt.Sprintf("topic %s: judgment for %q", t.ID, j.DocID), ErrGradeRange)
		}
		judged[j.DocID] = j.Grade
		maxLevel = max(maxLevel, j.Grade)
	}

	c.Levels = make([]int, maxLevel+1)
	for _, grade := range judged {
		if grade < 0 {
			c.NumUnjudged++
			continue
		}
		c.Levels[grade]++
		if grade >= relLevel {
			c.NumRel++
		}
	}

	ranking := t.Ranking
	if opts.MaxRetrieved > 0 && len(ranking) > opts.MaxRetrieved {
		ranking = ranking[:opts.MaxRetrieved]
	}

	c.NumRet = len(ranking)
	c.Grades = make([]Grade, len(ranking))
	c.Scores = make([]float64, len(ranking))

	seen := make(map[string]struct{}, len(ranking))
	for i, doc := range ranking {
		if _, dup := seen[doc.DocID]; dup {
			return nil, fmt.Errorf("topic %s: retrieved %q twice: %w", t.ID, doc.DocID, ErrDuplicateDoc)
		}
		seen[doc.DocID] = struct{}{}

		c.Scores[i] = doc.Score
		grade, ok := judged[doc.DocID]
		if !ok {
			c.Grades[i] = NotPooled()
			continue
		}
		c.Grades[i] = Judged(grade)
		if grade >= relLevel {
			c.NumRelRet++
		}
	}

	return c, nil
}

// SortRanking orders docs by descending score, breaking ties by descending
// document ID so that evaluation does not depend on input order.
func SortRanking(docs []RankedDoc) {
	slices.SortStableFunc(docs, func(a, b RankedDoc) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(b.DocID, a.DocID)
	})
}
