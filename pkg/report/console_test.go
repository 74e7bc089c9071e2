package report

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specvital/gospec/pkg/domain"
	"github.com/specvital/gospec/pkg/runner"
)

func sampleReport() *runner.Report {
	return &runner.Report{
		Results: []domain.ResultNode{
			&domain.GroupResult{
				Description: "cache",
				Children: []domain.ResultNode{
					&domain.ExampleResult{
						Description: "stores a value",
						Result:      domain.Passed(),
						Duration:    3 * time.Millisecond,
					},
					&domain.GroupResult{
						Description: "when full",
						Children: []domain.ResultNode{
							&domain.ExampleResult{
								Description: "evicts the oldest entry",
								Result:      domain.Failed(errors.New("entry still present")),
								Duration:    time.Millisecond,
							},
						},
					},
					&domain.ExampleResult{
						Description: "supports TTL",
						Result:      domain.Skipped(domain.PendingReason),
					},
				},
			},
		},
		Summary:  domain.Summary{Passed: 1, Failed: 1, Skipped: 1},
		Duration: 10 * time.Millisecond,
	}
}

func render(t *testing.T, rep *runner.Report) string {
	t.Helper()
	var buf strings.Builder
	c := NewConsole(&buf, WithColor(false))
	require.NoError(t, c.Render(rep))
	return buf.String()
}

func TestRender_Tree(t *testing.T) {
	out := render(t, sampleReport())

	assert.Contains(t, out, "cache\n")
	assert.Contains(t, out, "  ✓ stores a value")
	assert.Contains(t, out, "  when full\n")
	assert.Contains(t, out, "    ✗ evicts the oldest entry")
	assert.Contains(t, out, "  - supports TTL")
}

func TestRender_DurationsOnlyForExecutedExamples(t *testing.T) {
	out := render(t, sampleReport())

	assert.Contains(t, out, "stores a value (3ms)")
	assert.NotContains(t, out, "supports TTL (", "skipped examples carry no duration")
}

func TestRender_FailureSectionWithPath(t *testing.T) {
	out := render(t, sampleReport())

	assert.Contains(t, out, "Failures:")
	assert.Contains(t, out, "1) cache > when full > evicts the oldest entry")
	assert.Contains(t, out, "entry still present")
}

func TestRender_NoFailureSectionWhenAllPass(t *testing.T) {
	rep := &runner.Report{
		Results: []domain.ResultNode{
			&domain.ExampleResult{Description: "ok", Result: domain.Passed()},
		},
		Summary: domain.Summary{Passed: 1},
	}

	out := render(t, rep)

	assert.NotContains(t, out, "Failures:")
}

func TestRender_SiblingFailurePathsStayIndependent(t *testing.T) {
	fail := func(desc string) *domain.ExampleResult {
		return &domain.ExampleResult{Description: desc, Result: domain.Failed(errors.New("x"))}
	}
	rep := &runner.Report{
		Results: []domain.ResultNode{
			&domain.GroupResult{
				Description: "root",
				Children: []domain.ResultNode{
					&domain.GroupResult{Description: "a", Children: []domain.ResultNode{fail("one")}},
					&domain.GroupResult{Description: "b", Children: []domain.ResultNode{fail("two")}},
				},
			},
		},
		Summary: domain.Summary{Failed: 2},
	}

	out := render(t, rep)

	assert.Contains(t, out, "root > a > one")
	assert.Contains(t, out, "root > b > two")
}

func TestRender_Anomalies(t *testing.T) {
	rep := sampleReport()
	rep.Anomalies = []error{errors.New("afterAll leaked a connection")}

	out := render(t, rep)

	assert.Contains(t, out, "anomaly: afterAll leaked a connection")
}

func TestRender_Summary(t *testing.T) {
	out := render(t, sampleReport())

	assert.Contains(t, out, "1 passed, 1 failed, 1 skipped (3 total) in 10ms")
}

func TestRender_EmptyReport(t *testing.T) {
	out := render(t, &runner.Report{})

	assert.Contains(t, out, "0 passed, 0 failed, 0 skipped (0 total)")
	assert.NotContains(t, out, "Failures:")
}
