package trec

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/hscells/trecresults"

	"github.com/DjordjeVuckovic/rankeval/internal/apperr"
	"github.com/DjordjeVuckovic/rankeval/internal/eval/relevance"
)

// Run is one retrieval run: the ranked documents per topic.
type Run struct {
	Tag    string
	Topics map[string][]relevance.RankedDoc
}

// ReadRun parses "topic Q0 docno rank score tag" lines. The rank column must be
// an integer but is otherwise ignored; documents are ordered by score when
// topics are built. The run tag is taken from the first line.
func ReadRun(r io.Reader) (*Run, error) {
	run := &Run{Topics: make(map[string][]relevance.RankedDoc)}
	err := scanLines(r, func(lineNo int, line string) error {
		res, err := trecresults.ResultFromLine(line)
		if err != nil {
			return apperr.NewValidationWrap(fmt.Sprintf("run line %d", lineNo), err)
		}
		run.add(res)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return run, nil
}

func (run *Run) add(res *trecresults.Result) {
	if run.Tag == "" {
		run.Tag = res.RunName
	}
	run.Topics[res.Topic] = append(run.Topics[res.Topic], relevance.RankedDoc{DocID: res.DocId, Score: res.Score})
}

// Merge pairs run topics with their judgments, sorted by topic ID. Rankings are
// ordered with relevance.SortRanking. When complete is set, judged topics the
// run did not answer are included with an empty ranking.
func Merge(q Qrels, run *Run, complete bool) []relevance.Topic {
	ids := make(map[string]struct{}, len(run.Topics))
	for id := range run.Topics {
		ids[id] = struct{}{}
	}
	if complete {
		for id := range q {
			ids[id] = struct{}{}
		}
	}

	topics := make([]relevance.Topic, 0, len(ids))
	for _, id := range slices.Sorted(maps.Keys(ids)) {
		ranking := slices.Clone(run.Topics[id])
		relevance.SortRanking(ranking)
		topics = append(topics, relevance.Topic{
			ID:        id,
			Judgments: q[id],
			Ranking:   ranking,
		})
	}
	return topics
}
