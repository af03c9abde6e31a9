package cmd

import (
	"log/slog"
	"os"

	"github.com/apex/log"
	clihander "github.com/apex/log/handlers/cli"
	"github.com/spf13/cobra"
)

func init() {
	log.SetHandler(clihander.Default)
}

// NewRootCmd builds the generable command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "generable",
		Short: "Parse, stream and validate structured model output",
		Long: `generable works with the JSON a language model produces for a schema.

It parses complete or truncated output tolerantly, replays a response chunk by
chunk to show how partial snapshots evolve, renders definition files as JSON
Schema and validates content against them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			SetupSlog(verbose)
		},
	}
	root.PersistentFlags().BoolP("verbose", "V", false, "Show debug logs")
	root.CompletionOptions.HiddenDefaultCmd = true

	root.AddCommand(newParseCmd(), newSchemaCmd(), newValidateCmd())
	return root
}

// SetupSlog configures slog based on the verbose flag
func SetupSlog(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
		log.SetLevel(log.DebugLevel)
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
	slog.Debug("debug logging enabled")
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}
