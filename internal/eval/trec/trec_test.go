package trec

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DjordjeVuckovic/rankeval/internal/apperr"
	"github.com/DjordjeVuckovic/rankeval/internal/eval/relevance"
)

const qrelsText = `
401 0 FBIS3-10082 1
401 0 FBIS3-10169 0
401 0 FBIS3-10243 -1

402 0 FR940104-0-00001 2
`

const runText = `401 Q0 FBIS3-10169 1 12.5 bm25
401 Q0 FBIS3-10082 2 14.0 bm25
401 Q0 LA010189-0001 3 3.25 bm25
403 Q0 FT911-1 1 7 bm25
`

func TestReadQrels(t *testing.T) {
	q, err := ReadQrels(strings.NewReader(qrelsText))
	require.NoError(t, err)

	assert.Len(t, q, 2)
	assert.Equal(t, []relevance.Judgment{
		{DocID: "FBIS3-10082", Grade: 1},
		{DocID: "FBIS3-10169", Grade: 0},
		{DocID: "FBIS3-10243", Grade: -1},
	}, q["401"])
	assert.Equal(t, []relevance.Judgment{{DocID: "FR940104-0-00001", Grade: 2}}, q["402"])
}

func TestReadQrels_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{name: "too few fields", input: "401 0 D1\n", wantErr: "qrels line 1: Incorrect number of fields"},
		{name: "bad grade", input: "401 0 D1 1\n\n401 0 D2 high\n", wantErr: "qrels line 3: strconv.ParseInt"},
		{name: "grade above limit", input: "401 0 D1 1001\n", wantErr: "qrels line 1: grade 1001"},
		{name: "grade out of int64 range", input: "401 0 D1 99999999999999999999\n", wantErr: "qrels line 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadQrels(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)

			var ve *apperr.ValidationError
			assert.True(t, errors.As(err, &ve))
		})
	}
}

func TestReadRun(t *testing.T) {
	run, err := ReadRun(strings.NewReader(runText))
	require.NoError(t, err)

	assert.Equal(t, "bm25", run.Tag)
	assert.Len(t, run.Topics["401"], 3)
	assert.Equal(t, relevance.RankedDoc{DocID: "FT911-1", Score: 7}, run.Topics["403"][0])
}

func TestReadQrels_GradeLimit(t *testing.T) {
	q, err := ReadQrels(strings.NewReader(fmt.Sprintf("401 0 D1 %d\n401 0 D2 -7\n", relevance.MaxGrade)))
	require.NoError(t, err)
	assert.Equal(t, []relevance.Judgment{
		{DocID: "D1", Grade: relevance.MaxGrade},
		{DocID: "D2", Grade: -1},
	}, q["401"])

	_, err = ReadQrels(strings.NewReader("401 0 D1 4611686018427387904\n"))
	assert.ErrorIs(t, err, relevance.ErrGradeRange)
}

func TestReadRun_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{name: "bad score", input: "401 Q0 D1 1 x tag\n", wantErr: "run line 1: strconv.ParseFloat"},
		{name: "bad rank", input: "401 Q0 D1 1 2.0 tag\n401 Q0 D2 two 1.0 tag\n", wantErr: "run line 2: strconv.ParseInt"},
		{name: "too few fields", input: "401 Q0 D1 1 2.0\n", wantErr: "run line 1: Incorrect number of fields"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadRun(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)

			var ve *apperr.ValidationError
			assert.True(t, errors.As(err, &ve))
		})
	}
}

func TestMerge(t *testing.T) {
	q, err := ReadQrels(strings.NewReader(qrelsText))
	require.NoError(t, err)
	run, err := ReadRun(strings.NewReader(runText))
	require.NoError(t, err)

	t.Run("run topics only", func(t *testing.T) {
		topics := Merge(q, run, false)
		require.Len(t, topics, 2)

		assert.Equal(t, "401", topics[0].ID)
		assert.Len(t, topics[0].Judgments, 3)
		assert.Equal(t, "FBIS3-10082", topics[0].Ranking[0].DocID)
		assert.Equal(t, "FBIS3-10169", topics[0].Ranking[1].DocID)

		assert.Equal(t, "403", topics[1].ID)
		assert.Empty(t, topics[1].Judgments)
	})

	t.Run("complete adds judged topics without results", func(t *testing.T) {
		topics := Merge(q, run, true)
		require.Len(t, topics, 3)
		assert.Equal(t, "402", topics[1].ID)
		assert.Empty(t, topics[1].Ranking)
	})

	t.Run("source run is not reordered", func(t *testing.T) {
		Merge(q, run, false)
		assert.Equal(t, "FBIS3-10169", run.Topics["401"][0].DocID)
	})
}
