package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/specvital/gospec/internal/config"
	"github.com/specvital/gospec/internal/ctxlog"
	"github.com/specvital/gospec/pkg/domain"
	"github.com/specvital/gospec/pkg/outline"
)

func newOutlineCmd() *cobra.Command {
	var (
		patterns []string
		exclude  []string
		tags     []string
		workers  int
		jsonOut  bool
		noColor  bool
		logLevel string
	)

	cmd := &cobra.Command{
		Use:   "outline [path]",
		Short: "List the suites declared in spec files without running them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}

			cfg, err := config.Load(root)
			if err != nil {
				return err
			}
			if len(patterns) == 0 {
				patterns = cfg.Patterns
			}
			if len(exclude) == 0 {
				exclude = cfg.Exclude
			}
			if len(tags) == 0 {
				tags = cfg.Tags
			}
			if workers == 0 {
				workers = cfg.Workers
			}
			if logLevel == "" {
				logLevel = cfg.LogLevel
			}

			ctx := ctxlog.WithLogger(cmd.Context(), newLogger(logLevel))

			result, err := outline.Scan(ctx, root,
				outline.WithPatterns(patterns),
				outline.WithExcludePatterns(exclude),
				outline.WithWorkers(workers),
			)
			if err != nil {
				return err
			}

			for _, scanErr := range result.Errors {
				fmt.Fprintf(os.Stderr, "warning: %v\n", scanErr)
			}

			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(result.Inventory)
			}

			printInventory(result.Inventory, tags, !noColor)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&patterns, "patterns", nil, "doublestar globs selecting spec files")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "directory names to skip")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "only count examples carrying these tags")
	cmd.Flags().IntVar(&workers, "workers", 0, "parser worker count (0 = GOMAXPROCS)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit the inventory as JSON")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable ANSI styling")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "debug, info, warn, or error")

	return cmd
}

func printInventory(inv *outline.Inventory, tags []string, color bool) {
	pathStyle := lipgloss.NewStyle().Bold(true)
	focusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	pendingStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	if !color {
		plain := lipgloss.NewStyle()
		pathStyle, focusStyle, pendingStyle = plain, plain, plain
	}

	total := 0
	for _, f := range inv.Files {
		forest := f.Forest()
		if len(tags) > 0 {
			forest = domain.FilterByTags(tags, forest)
			if domain.CountExamples(forest) == 0 {
				continue
			}
		}
		total += domain.CountExamples(forest)

		fmt.Println(pathStyle.Render(f.Path))
		for _, n := range f.Nodes {
			printNode(n, 1, focusStyle, pendingStyle)
		}
	}

	fmt.Printf("\n%d files, %d examples\n", len(inv.Files), total)
}

func printNode(n outline.Node, depth int, focusStyle, pendingStyle lipgloss.Style) {
	label := n.Description
	switch n.Status {
	case outline.StatusFocused:
		label = focusStyle.Render(label + " [focused]")
	case outline.StatusPending:
		label = pendingStyle.Render(label + " [pending]")
	}
	fmt.Printf("%s%s\n", strings.Repeat("  ", depth), label)
	for _, c := range n.Children {
		printNode(c, depth+1, focusStyle, pendingStyle)
	}
}
