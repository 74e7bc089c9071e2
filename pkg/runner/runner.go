// Package runner executes a declarative test forest and builds the result
// tree.
//
// The runner consumes forests whose hook markers have already been folded
// into group hooks (see domain.Fold); an unfolded marker is a producer
// contract violation and fails the run call itself. Ordinary test and hook
// failures never do: they are captured into the result tree.
//
// Sibling examples and groups execute sequentially, in declared order, on a
// single logical thread. Shared state captured by hook and body closures is
// therefore never accessed concurrently; the runner provides no locking
// because it guarantees non-concurrent access by construction. Cancellation
// is not first-class: a long-running hook or body blocks the whole run.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/specvital/gospec/internal/ctxlog"
	"github.com/specvital/gospec/pkg/domain"
)

// ErrUnfoldedHook is returned by Run when a hook marker node reaches the
// engine. This indicates a broken tree-builder contract, not a failing test.
var ErrUnfoldedHook = errors.New("runner: hook marker node reached the engine")

// Report is the outcome of one run.
type Report struct {
	// Results is the result forest, structurally congruent with the
	// (focus- and tag-filtered) input forest.
	Results []domain.ResultNode

	// Summary tallies the example outcomes.
	Summary domain.Summary

	// Anomalies contains afterAll hook failures. They are engine-level
	// findings that never overwrite recorded example results.
	Anomalies []error

	// Duration is the wall-clock duration of the whole run.
	Duration time.Duration
}

// Runner executes test forests. A Runner holds no state between runs; each
// Run takes a forest and returns a fresh result forest.
type Runner struct {
	options Options
}

// New creates a runner with the given options.
func New(opts ...Option) *Runner {
	options := Options{}
	for _, opt := range opts {
		opt(&options)
	}
	return &Runner{options: options}
}

// Run executes the forest and returns the report.
//
// Focus filtering is applied first: when any focused node exists, only
// focused subtrees run. Tag filtering is applied when the runner was built
// with WithTags. The input forest is never mutated.
//
// Run returns an error only for contract violations; test and hook failures
// are recorded in the report.
func (r *Runner) Run(ctx context.Context, forest []domain.Node) (*Report, error) {
	if err := validate(forest); err != nil {
		return nil, err
	}

	forest = domain.FilterFocused(forest)
	forest = domain.FilterByTags(r.options.Tags, forest)

	logger := r.options.Logger
	if logger == nil {
		logger = ctxlog.FromContext(ctx)
	}

	start := time.Now()
	report := &Report{}
	report.Results = r.runForest(ctx, logger, forest, hookChain{}, report)
	report.Summary = domain.Summarize(report.Results)
	report.Duration = time.Since(start)

	logger.Debug("run complete",
		"passed", report.Summary.Passed,
		"failed", report.Summary.Failed,
		"skipped", report.Summary.Skipped,
		"duration", report.Duration)

	return report, nil
}

// Run executes the forest with a one-off runner.
func Run(ctx context.Context, forest []domain.Node, opts ...Option) (*Report, error) {
	return New(opts...).Run(ctx, forest)
}

// validate rejects forests containing unfolded hook marker nodes.
func validate(nodes []domain.Node) error {
	for _, n := range nodes {
		switch n := n.(type) {
		case *domain.Group:
			if err := validate(n.Children); err != nil {
				return fmt.Errorf("%w (in group %q)", err, n.Description)
			}
		case *domain.FocusedGroup:
			if err := validate(n.Children); err != nil {
				return fmt.Errorf("%w (in group %q)", err, n.Description)
			}
		default:
			if domain.IsHookMarker(n) {
				return ErrUnfoldedHook
			}
		}
	}
	return nil
}
