package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"lektor/internal/document"
	"lektor/internal/driver"
	"lektor/internal/fix"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <file|directory>",
	Short: "Apply suggested corrections to a file or directory",
	Long: `Check the text, pick fixes according to the chosen strategy and write
the corrected text back. The text is checked again after every edit.`,
	Args: cobra.ExactArgs(1),
	RunE: runFix,
}

func init() {
	fixCmd.Flags().Bool("all", false, "apply all always-safe fixes")
	fixCmd.Flags().Bool("once", false, "apply the first available fix (default)")
	fixCmd.Flags().String("id", "", "apply the fix of the issue with this identifier")
	fixCmd.Flags().Int("choice", 0, "which suggestion to apply (0 is the best one)")
	fixCmd.Flags().Bool("dry-run", false, "print the fixed text instead of writing the file")
	fixCmd.Flags().StringSlice("ext", driver.DefaultExtensions, "file extensions fixed in directories")
	addRuleFlags(fixCmd)
}

func runFix(cmd *cobra.Command, args []string) error {
	targetPath := args[0]

	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return fmt.Errorf("failed to get all flag: %w", err)
	}
	applyOnceFlag, err := cmd.Flags().GetBool("once")
	if err != nil {
		return fmt.Errorf("failed to get once flag: %w", err)
	}
	targetID, err := cmd.Flags().GetString("id")
	if err != nil {
		return fmt.Errorf("failed to get id flag: %w", err)
	}
	choice, err := cmd.Flags().GetInt("choice")
	if err != nil {
		return fmt.Errorf("failed to get choice flag: %w", err)
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return fmt.Errorf("failed to get dry-run flag: %w", err)
	}
	exts, err := cmd.Flags().GetStringSlice("ext")
	if err != nil {
		return fmt.Errorf("failed to get ext flag: %w", err)
	}

	if targetID != "" && (applyAll || applyOnceFlag) {
		return fmt.Errorf("--id cannot be combined with --all or --once")
	}
	if applyAll && applyOnceFlag {
		return fmt.Errorf("--all and --once are mutually exclusive")
	}
	if choice < 0 {
		return fmt.Errorf("--choice must not be negative")
	}

	mode := fix.ApplyModeOnce
	if targetID != "" {
		mode = fix.ApplyModeID
	} else if applyAll {
		mode = fix.ApplyModeAll
	}
	opts := fix.ApplyOptions{
		Mode:     mode,
		TargetID: targetID,
		Choice:   choice,
	}

	info, err := os.Stat(targetPath)
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}
	// идентификатор уникален только в пределах одного файла
	if info.IsDir() && targetID != "" {
		return fmt.Errorf("fix: --id can only be used with a single file")
	}
	if info.IsDir() && dryRun {
		return fmt.Errorf("fix: --dry-run can only be used with a single file")
	}

	return withRuntime(cmd, func() error {
		e, err := newEnv(cmd, targetPath)
		if err != nil {
			return err
		}
		quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
		if err != nil {
			return fmt.Errorf("failed to get quiet flag: %w", err)
		}
		if err := e.preload(cmd.Context(), quiet); err != nil {
			return err
		}
		cmd.SilenceUsage = true

		if !info.IsDir() {
			out := cmd.OutOrStdout()
			if dryRun {
				out = cmd.ErrOrStderr()
			}
			res, err := runFixFile(cmd.Context(), e, targetPath, opts, dryRun, cmd.OutOrStdout())
			return handleApplyResult(out, targetPath, res, err)
		}
		return runFixDir(cmd, e, targetPath, exts, opts)
	})
}

// runFixFile applies fixes to one file and saves it when it changed. With
// dryRun the fixed text goes to textOut instead.
func runFixFile(ctx context.Context, e *env, path string, opts fix.ApplyOptions, dryRun bool, textOut io.Writer) (*fix.ApplyResult, error) {
	doc, err := document.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fix: %w", err)
	}
	res, applyErr := fix.Apply(ctx, doc, e.engine, opts)
	if applyErr != nil && !errors.Is(applyErr, fix.ErrNoFixes) {
		return res, applyErr
	}
	if dryRun {
		if _, err := io.WriteString(textOut, doc.Text()); err != nil {
			return res, err
		}
		return res, applyErr
	}
	if doc.Dirty() {
		if err := doc.Save(ctx); err != nil {
			return res, fmt.Errorf("fix: save %s: %w", path, err)
		}
	}
	return res, applyErr
}

func runFixDir(cmd *cobra.Command, e *env, dir string, exts []string, opts fix.ApplyOptions) error {
	files, err := driver.ListTextFiles(dir, exts)
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}
	out := cmd.OutOrStdout()
	applied := 0
	for _, path := range files {
		res, err := runFixFile(cmd.Context(), e, path, opts, false, nil)
		if errors.Is(err, fix.ErrNoFixes) {
			continue
		}
		if err := handleApplyResult(out, path, res, err); err != nil {
			return err
		}
		applied += len(res.Applied)
	}
	if applied == 0 {
		_, err := fmt.Fprintf(out, "%s: %s\n", dir, fix.ErrNoFixes)
		return err
	}
	return nil
}

// handleApplyResult prints what was applied and skipped. ErrNoFixes is
// reported but is not a failure.
func handleApplyResult(out io.Writer, path string, res *fix.ApplyResult, applyErr error) error {
	if res == nil {
		return applyErr
	}
	if len(res.Applied) > 0 {
		if _, err := fmt.Fprintf(out, "%s: applied %d fix(es):\n", path, len(res.Applied)); err != nil {
			return err
		}
		for _, item := range res.Applied {
			if _, err := fmt.Fprintf(out, "  %s [%s] (%s)\n", item.Title(), item.ID, item.Applicability); err != nil {
				return err
			}
		}
	}
	for _, item := range res.Skipped {
		label := item.ID
		if label == "" {
			label = "-"
		}
		if _, err := fmt.Fprintf(out, "  skipped [%s] %s\n", label, item.Reason); err != nil {
			return err
		}
	}
	if errors.Is(applyErr, fix.ErrNoFixes) {
		if _, err := fmt.Fprintf(out, "%s: %s\n", path, applyErr); err != nil {
			return err
		}
		return nil
	}
	if applyErr != nil {
		return applyErr
	}
	if res.Final != nil {
		if _, err := fmt.Fprintf(out, "%s: %s\n", path, res.Final.Summary()); err != nil {
			return err
		}
	}
	return nil
}
