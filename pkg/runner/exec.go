package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/specvital/gospec/pkg/domain"
)

// runForest processes siblings strictly in declared order. The result slice
// preserves input order and is congruent with the input node for node.
func (r *Runner) runForest(ctx context.Context, logger *slog.Logger, nodes []domain.Node, chain hookChain, report *Report) []domain.ResultNode {
	out := make([]domain.ResultNode, 0, len(nodes))
	for _, n := range nodes {
		switch n := n.(type) {
		case *domain.Example:
			out = append(out, r.runExample(ctx, logger, n, chain))
		case *domain.Group:
			out = append(out, r.runGroup(ctx, logger, n, chain, report))
		case *domain.FocusedExample:
			// Focused nodes that reach the engine unfiltered run like
			// their plain counterparts.
			ex := &domain.Example{Description: n.Description, Body: n.Body, Meta: n.Meta}
			out = append(out, r.runExample(ctx, logger, ex, chain))
		case *domain.FocusedGroup:
			g := &domain.Group{Description: n.Description, GroupHooks: n.GroupHooks, Children: n.Children, Meta: n.Meta}
			out = append(out, r.runGroup(ctx, logger, g, chain, report))
		}
	}
	return out
}

// runGroup runs a group's beforeAll hooks, its children, and its afterAll
// hooks. A beforeAll failure records every descendant example as failed
// without executing anything beneath the group; afterAll hooks still run so
// resources acquired by earlier beforeAll hooks are released.
func (r *Runner) runGroup(ctx context.Context, logger *slog.Logger, g *domain.Group, chain hookChain, report *Report) *domain.GroupResult {
	var beforeAllErr error
	for _, fn := range g.GroupHooks.BeforeAll {
		if err := safeCall(ctx, fn); err != nil {
			beforeAllErr = fmt.Errorf("beforeAll hook (group %q): %w", g.Description, err)
			logger.Warn("beforeAll hook failed", "group", g.Description, "error", err)
			break
		}
	}

	var kids []domain.ResultNode
	if beforeAllErr != nil {
		kids = failSubtree(g.Children, beforeAllErr)
	} else {
		kids = r.runForest(ctx, logger, g.Children, chain.extend(g.Description, g.GroupHooks), report)
	}

	// afterAll always runs, in declared order, continuing past failures.
	// Failures here are anomalies; recorded child results stand.
	for _, fn := range g.GroupHooks.AfterAll {
		if err := safeCall(ctx, fn); err != nil {
			anomaly := fmt.Errorf("afterAll hook (group %q): %w", g.Description, err)
			report.Anomalies = append(report.Anomalies, anomaly)
			logger.Warn("afterAll hook failed", "group", g.Description, "error", err)
		}
	}

	return &domain.GroupResult{
		Description: g.Description,
		Children:    kids,
		Meta:        g.Meta,
	}
}

// runExample runs the accumulated beforeEach chain outermost to innermost,
// the body, then the afterEach chain innermost to outermost. The afterEach
// chain runs even when an earlier step failed; the first failure wins.
func (r *Runner) runExample(ctx context.Context, logger *slog.Logger, ex *domain.Example, chain hookChain) *domain.ExampleResult {
	if ex.Pending() {
		logger.Debug("example pending", "example", ex.Description)
		return &domain.ExampleResult{
			Description: ex.Description,
			Result:      domain.Skipped(domain.PendingReason),
			Meta:        ex.Meta,
		}
	}

	var failure error
	for _, h := range chain.beforeEach {
		if err := safeCall(ctx, h.fn); err != nil {
			failure = fmt.Errorf("beforeEach hook (group %q): %w", h.group, err)
			break
		}
	}

	var duration time.Duration
	if failure == nil {
		start := time.Now()
		failure = safeCall(ctx, ex.Body)
		duration = time.Since(start)
	}

	for i := len(chain.afterEach) - 1; i >= 0; i-- {
		h := chain.afterEach[i]
		if err := safeCall(ctx, h.fn); err != nil && failure == nil {
			failure = fmt.Errorf("afterEach hook (group %q): %w", h.group, err)
		}
	}

	result := domain.Passed()
	if failure != nil {
		result = domain.Failed(failure)
	}
	logger.Debug("example finished",
		"example", ex.Description,
		"outcome", result.Outcome.String(),
		"duration", duration)

	return &domain.ExampleResult{
		Description: ex.Description,
		Result:      result,
		Duration:    duration,
		Meta:        ex.Meta,
	}
}

// failSubtree records every descendant example as failed with the given
// cause while preserving the tree shape. Pending examples stay skipped:
// their bodies were never going to run. Hooks beneath the failed group,
// including nested beforeAll hooks, are never invoked.
func failSubtree(nodes []domain.Node, cause error) []domain.ResultNode {
	out := make([]domain.ResultNode, 0, len(nodes))
	for _, n := range nodes {
		switch n := n.(type) {
		case *domain.Example:
			out = append(out, failedExample(n.Description, n.Body, n.Meta, cause))
		case *domain.FocusedExample:
			out = append(out, failedExample(n.Description, n.Body, n.Meta, cause))
		case *domain.Group:
			out = append(out, &domain.GroupResult{
				Description: n.Description,
				Children:    failSubtree(n.Children, cause),
				Meta:        n.Meta,
			})
		case *domain.FocusedGroup:
			out = append(out, &domain.GroupResult{
				Description: n.Description,
				Children:    failSubtree(n.Children, cause),
				Meta:        n.Meta,
			})
		}
	}
	return out
}

func failedExample(desc string, body domain.BodyFunc, meta domain.Metadata, cause error) *domain.ExampleResult {
	result := domain.Failed(cause)
	if body == nil {
		result = domain.Skipped(domain.PendingReason)
	}
	return &domain.ExampleResult{
		Description: desc,
		Result:      result,
		Meta:        meta,
	}
}

// safeCall invokes fn and converts a panic into an error, so one raising
// body or hook cannot tear down the whole run.
func safeCall(ctx context.Context, fn func(context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(ctx)
}
