package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "gospec",
	Short: "Tooling for gospec suites",
	Long: `gospec inspects suites written with the gospec BDD framework:
it statically outlines Describe/It declarations in spec files and reports
example counts without running anything.`,
	// SilenceUsage prevents printing usage on errors we handle ourselves.
	SilenceUsage: true,
}

// Execute runs the root command. Called by main.main().
func Execute() {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(`{{printf "gospec version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		// Cobra prints the error, we just exit non-zero.
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newOutlineCmd())
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the gospec version",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("gospec version %s\n", version)
		},
	})
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}
