// Package report renders result forests for terminals.
//
// The reporter is a read-only consumer of the result tree: it walks groups
// and examples in order, printing an indented outline with outcome glyphs
// and per-example durations, followed by failure details and a summary
// line.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/specvital/gospec/pkg/domain"
	"github.com/specvital/gospec/pkg/runner"
)

const indentStep = "  "

// styles groups the lipgloss styles used by the console reporter.
type styles struct {
	group   lipgloss.Style
	pass    lipgloss.Style
	fail    lipgloss.Style
	skip    lipgloss.Style
	dim     lipgloss.Style
	summary lipgloss.Style
}

func colorStyles() styles {
	return styles{
		group:   lipgloss.NewStyle().Bold(true),
		pass:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		fail:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		skip:    lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		dim:     lipgloss.NewStyle().Faint(true),
		summary: lipgloss.NewStyle().Bold(true),
	}
}

func plainStyles() styles {
	s := lipgloss.NewStyle()
	return styles{group: s, pass: s, fail: s, skip: s, dim: s, summary: s}
}

// Console renders reports to a writer.
type Console struct {
	w      io.Writer
	styles styles
}

// Option configures a Console.
type Option func(*Console)

// WithColor enables or disables ANSI styling. Default: enabled.
func WithColor(enabled bool) Option {
	return func(c *Console) {
		if enabled {
			c.styles = colorStyles()
		} else {
			c.styles = plainStyles()
		}
	}
}

// NewConsole creates a console reporter writing to w.
func NewConsole(w io.Writer, opts ...Option) *Console {
	c := &Console{w: w, styles: colorStyles()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Render writes the result tree, failure details, and summary.
func (c *Console) Render(rep *runner.Report) error {
	for _, n := range rep.Results {
		if err := c.renderNode(n, 0); err != nil {
			return err
		}
	}

	if err := c.renderFailures(rep.Results); err != nil {
		return err
	}

	for _, anomaly := range rep.Anomalies {
		if _, err := fmt.Fprintf(c.w, "%s %v\n", c.styles.fail.Render("anomaly:"), anomaly); err != nil {
			return err
		}
	}

	return c.renderSummary(rep)
}

func (c *Console) renderNode(n domain.ResultNode, depth int) error {
	indent := strings.Repeat(indentStep, depth)

	switch n := n.(type) {
	case *domain.GroupResult:
		if _, err := fmt.Fprintf(c.w, "%s%s\n", indent, c.styles.group.Render(n.Description)); err != nil {
			return err
		}
		for _, child := range n.Children {
			if err := c.renderNode(child, depth+1); err != nil {
				return err
			}
		}
	case *domain.ExampleResult:
		line := fmt.Sprintf("%s%s %s", indent, c.glyph(n.Result.Outcome), n.Description)
		if n.Result.Outcome != domain.OutcomeSkipped {
			line += " " + c.styles.dim.Render(fmt.Sprintf("(%s)", n.Duration))
		}
		if _, err := fmt.Fprintln(c.w, line); err != nil {
			return err
		}
	}
	return nil
}

func (c *Console) glyph(o domain.Outcome) string {
	switch o {
	case domain.OutcomePassed:
		return c.styles.pass.Render("✓")
	case domain.OutcomeFailed:
		return c.styles.fail.Render("✗")
	default:
		return c.styles.skip.Render("-")
	}
}

// renderFailures lists each failure with its full description path.
func (c *Console) renderFailures(nodes []domain.ResultNode) error {
	failures := collectFailures(nodes, nil)
	if len(failures) == 0 {
		return nil
	}

	if _, err := fmt.Fprintf(c.w, "\n%s\n", c.styles.fail.Render("Failures:")); err != nil {
		return err
	}
	for i, f := range failures {
		if _, err := fmt.Fprintf(c.w, "  %d) %s\n     %v\n", i+1, f.path, f.err); err != nil {
			return err
		}
	}
	return nil
}

type failure struct {
	path string
	err  error
}

func collectFailures(nodes []domain.ResultNode, ancestry []string) []failure {
	var out []failure
	for _, n := range nodes {
		switch n := n.(type) {
		case *domain.GroupResult:
			path := make([]string, 0, len(ancestry)+1)
			path = append(path, ancestry...)
			path = append(path, n.Description)
			out = append(out, collectFailures(n.Children, path)...)
		case *domain.ExampleResult:
			if n.Result.Outcome == domain.OutcomeFailed {
				path := strings.Join(append(ancestry, n.Description), " > ")
				out = append(out, failure{path: path, err: n.Result.Err})
			}
		}
	}
	return out
}

func (c *Console) renderSummary(rep *runner.Report) error {
	s := rep.Summary
	line := fmt.Sprintf("%d passed, %d failed, %d skipped (%d total) in %s",
		s.Passed, s.Failed, s.Skipped, s.Total(), rep.Duration)
	_, err := fmt.Fprintf(c.w, "\n%s\n", c.styles.summary.Render(line))
	return err
}
