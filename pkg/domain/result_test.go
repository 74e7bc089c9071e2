package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func exRes(desc string, r TestResult) *ExampleResult {
	return &ExampleResult{Description: desc, Result: r, Duration: time.Millisecond}
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "passed", OutcomePassed.String())
	assert.Equal(t, "failed", OutcomeFailed.String())
	assert.Equal(t, "skipped", OutcomeSkipped.String())
	assert.Equal(t, "unknown", Outcome(42).String())
}

func TestConstructors(t *testing.T) {
	cause := errors.New("boom")

	p := Passed()
	assert.Equal(t, OutcomePassed, p.Outcome)
	assert.NoError(t, p.Err)

	f := Failed(cause)
	assert.Equal(t, OutcomeFailed, f.Outcome)
	assert.Same(t, cause, f.Err)

	s := Skipped(PendingReason)
	assert.Equal(t, OutcomeSkipped, s.Outcome)
	assert.Equal(t, PendingReason, s.Reason)
}

func TestCollectResults_TreeOrder(t *testing.T) {
	forest := []ResultNode{
		&GroupResult{
			Description: "g1",
			Children: []ResultNode{
				exRes("a", Passed()),
				&GroupResult{
					Description: "g2",
					Children:    []ResultNode{exRes("b", Failed(errors.New("x")))},
				},
			},
		},
		exRes("c", Skipped(PendingReason)),
	}

	results := CollectResults(forest)

	assert.Len(t, results, 3)
	assert.Equal(t, OutcomePassed, results[0].Outcome)
	assert.Equal(t, OutcomeFailed, results[1].Outcome)
	assert.Equal(t, OutcomeSkipped, results[2].Outcome)
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name   string
		forest []ResultNode
		want   Summary
	}{
		{
			name:   "empty tree has all-zero counts",
			forest: nil,
			want:   Summary{},
		},
		{
			name: "mixed outcomes",
			forest: []ResultNode{
				&GroupResult{Children: []ResultNode{
					exRes("a", Passed()),
					exRes("b", Passed()),
					exRes("c", Failed(errors.New("x"))),
					exRes("d", Skipped(PendingReason)),
				}},
			},
			want: Summary{Passed: 2, Failed: 1, Skipped: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.forest)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Passed+tt.want.Failed+tt.want.Skipped, got.Total())
		})
	}
}
