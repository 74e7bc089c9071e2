package domain

import "time"

// Outcome classifies the result of one example.
type Outcome int

const (
	// OutcomePassed indicates the example body completed without error.
	OutcomePassed Outcome = iota
	// OutcomeFailed indicates the body or one of its hooks failed.
	OutcomeFailed
	// OutcomeSkipped indicates the body was never invoked.
	OutcomeSkipped
)

// String returns the lowercase outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomePassed:
		return "passed"
	case OutcomeFailed:
		return "failed"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// TestResult is the outcome of one example.
type TestResult struct {
	// Outcome classifies the result.
	Outcome Outcome
	// Err is the captured failure. For body failures it is the original
	// error value, not a rewrapped one, so reporters can inspect it.
	Err error
	// Reason is the human-readable skip reason. Empty unless skipped.
	Reason string
}

// Passed returns a passing result.
func Passed() TestResult { return TestResult{Outcome: OutcomePassed} }

// Failed returns a failing result carrying the captured error.
func Failed(err error) TestResult { return TestResult{Outcome: OutcomeFailed, Err: err} }

// Skipped returns a skipped result with a human-readable reason.
func Skipped(reason string) TestResult { return TestResult{Outcome: OutcomeSkipped, Reason: reason} }

// ResultNode is one node of the result tree. The tree mirrors the input
// forest shape: group for group, example for example. It is built fresh by
// each run and never mutated afterwards.
type ResultNode interface {
	resultNode()
}

// ExampleResult records the outcome and timing of one example.
type ExampleResult struct {
	// Description names the example.
	Description string
	// Result is the recorded outcome.
	Result TestResult
	// Duration is the wall-clock time of the body execution window only.
	// Hook time is excluded; zero when the body never ran.
	Duration time.Duration
	// Meta carries the example's tags and traits.
	Meta Metadata
}

// GroupResult mirrors a group node.
type GroupResult struct {
	// Description names the group.
	Description string
	// Children preserve the input child order.
	Children []ResultNode
	// Meta carries the group's tags and traits.
	Meta Metadata
}

func (*ExampleResult) resultNode() {}
func (*GroupResult) resultNode()   {}

// CollectResults flattens a result forest into a sequence of example
// results in tree order.
func CollectResults(nodes []ResultNode) []TestResult {
	var out []TestResult
	for _, n := range nodes {
		switch n := n.(type) {
		case *ExampleResult:
			out = append(out, n.Result)
		case *GroupResult:
			out = append(out, CollectResults(n.Children)...)
		}
	}
	return out
}

// Summary tallies a result forest by outcome kind.
type Summary struct {
	Passed  int
	Failed  int
	Skipped int
}

// Total returns the number of examples in the summary.
func (s Summary) Total() int { return s.Passed + s.Failed + s.Skipped }

// Summarize tallies the outcomes in a result forest.
// An empty forest yields all-zero counts.
func Summarize(nodes []ResultNode) Summary {
	var s Summary
	for _, r := range CollectResults(nodes) {
		switch r.Outcome {
		case OutcomePassed:
			s.Passed++
		case OutcomeFailed:
			s.Failed++
		case OutcomeSkipped:
			s.Skipped++
		}
	}
	return s
}
