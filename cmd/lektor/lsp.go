package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"lektor/internal/lsp"
	"lektor/internal/trace"
	"lektor/internal/version"
)

var lspCmd = &cobra.Command{
	Use:          "lsp",
	Short:        "Run the lektor language server over stdio",
	SilenceUsage: true,
	RunE:         runLSP,
}

func init() {
	lspCmd.Flags().Duration("debounce", 300*time.Millisecond, "delay between the last edit and a re-check")
	lspCmd.Flags().String("log-file", "", "write server logs to this file instead of stderr")
	addRuleFlags(lspCmd)
}

func runLSP(cmd *cobra.Command, _ []string) error {
	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return fmt.Errorf("failed to get debounce flag: %w", err)
	}
	logFile, err := cmd.Flags().GetString("log-file")
	if err != nil {
		return fmt.Errorf("failed to get log-file flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if logFile != "" {
		verbose, err := cmd.Root().PersistentFlags().GetCount("verbose")
		if err != nil {
			return fmt.Errorf("failed to get verbose flag: %w", err)
		}
		commonlog.Configure(max(verbose, 1), &logFile)
	}

	return withRuntime(cmd, func() error {
		e, err := newEnv(cmd, ".")
		if err != nil {
			return err
		}
		opts := lsp.ServerOptions{
			Checker:        e.engine,
			Lexicon:        e.provider,
			Debounce:       debounce,
			MaxDiagnostics: maxDiagnostics,
			Version:        version.Version,
			Tracer:         trace.FromContext(cmd.Context()),
		}
		if e.store != nil {
			opts.Dictionary = e.store
		}
		return lsp.NewServer(opts).RunStdio()
	})
}
