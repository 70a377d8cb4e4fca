// Package trec reads judgments and runs in the whitespace-separated TREC formats.
package trec

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/hscells/trecresults"

	"github.com/DjordjeVuckovic/rankeval/internal/apperr"
	"github.com/DjordjeVuckovic/rankeval/internal/eval/relevance"
)

const maxLineSize = 1024 * 1024

// Qrels maps topic ID to its judgments, in file order.
type Qrels map[string][]relevance.Judgment

// ReadQrels parses "topic iteration docno grade" lines. The iteration field is
// ignored. Negative grades mark pooled but unjudged documents; grades above
// relevance.MaxGrade are rejected.
func ReadQrels(r io.Reader) (Qrels, error) {
	q := make(Qrels)
	err := scanLines(r, func(lineNo int, line string) error {
		qrel, err := trecresults.QrelFromLine(line)
		if err != nil {
			return apperr.NewValidationWrap(fmt.Sprintf("qrels line %d", lineNo), err)
		}
		if qrel.Score > relevance.MaxGrade {
			return apperr.NewValidationWrap(fmt.Sprintf("qrels line %d: grade %d", lineNo, qrel.Score), relevance.ErrGradeRange)
		}
		q.add(qrel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return q, nil
}

func (q Qrels) add(qrel *trecresults.Qrel) {
	grade := int(max(qrel.Score, -1))
	q[qrel.Topic] = append(q[qrel.Topic], relevance.Judgment{DocID: qrel.DocId, Grade: grade})
}

// scanLines feeds every non-blank line to fn. trecresults' own readers stop on
// the first malformed line without reporting where it was, so lines are
// scanned here and parsed one by one.
func scanLines(r io.Reader, fn func(lineNo int, line string) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := fn(lineNo, line); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read line %d: %w", lineNo+1, err)
	}
	return nil
}
