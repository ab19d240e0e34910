package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"lektor/internal/diag"
	"lektor/internal/diagfmt"
	"lektor/internal/driver"
	"lektor/internal/observ"
	"lektor/internal/source"
	"lektor/internal/version"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file|directory|->",
	Short: "Check Slovenian text for spelling, preposition, punctuation and comma issues",
	Long: `Check a text file, every text file in a directory, or stdin ("-").
Exits with status 1 when an error-severity issue is found.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "", "output format (pretty|short|json|sarif); default from lektor.toml")
	checkCmd.Flags().String("ui", "auto", "progress UI for directories (auto|on|off)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	checkCmd.Flags().Bool("cache", false, "reuse results from the on-disk cache")
	checkCmd.Flags().Bool("preview", false, "show each issue's line with the first suggestion applied")
	checkCmd.Flags().String("path-mode", "auto", "how to print paths (auto|absolute|relative|basename)")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths (same as --path-mode absolute)")
	checkCmd.Flags().Int8("context", 0, "lines of context around each issue in pretty output")
	checkCmd.Flags().Int("max-suggestions", 0, "spelling suggestions shown per issue (0 = from lektor.toml)")
	checkCmd.Flags().StringSlice("ext", driver.DefaultExtensions, "file extensions checked in directories")
	checkCmd.Flags().Bool("watch", false, "re-check whenever the target changes")
	addRuleFlags(checkCmd)
}

// checkOptions holds the output-related flags of one check run.
type checkOptions struct {
	format         string
	uiMode         uiMode
	jobs           int
	preview        bool
	pathMode       diagfmt.PathMode
	context        int8
	maxSuggestions int
	exts           []string
	color          bool
	quiet          bool
	timings        bool
	maxDiagnostics int
}

func readCheckOptions(cmd *cobra.Command, e *env) (checkOptions, error) {
	var opts checkOptions
	var err error

	if opts.format, err = cmd.Flags().GetString("format"); err != nil {
		return opts, fmt.Errorf("failed to get format flag: %w", err)
	}
	if opts.format == "" {
		opts.format = e.cfg.Output.Format
	}
	opts.format = strings.ToLower(opts.format)
	switch opts.format {
	case "pretty", "short", "json", "sarif":
	default:
		return opts, fmt.Errorf("unknown format %q (expected pretty|short|json|sarif)", opts.format)
	}

	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return opts, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if opts.uiMode, err = readUIMode(uiValue); err != nil {
		return opts, err
	}
	if opts.jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return opts, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if opts.preview, err = cmd.Flags().GetBool("preview"); err != nil {
		return opts, fmt.Errorf("failed to get preview flag: %w", err)
	}

	pathModeValue, err := cmd.Flags().GetString("path-mode")
	if err != nil {
		return opts, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	if opts.pathMode, err = diagfmt.ParsePathMode(pathModeValue); err != nil {
		return opts, err
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return opts, fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	if fullPath {
		opts.pathMode = diagfmt.PathModeAbsolute
	}

	if opts.context, err = cmd.Flags().GetInt8("context"); err != nil {
		return opts, fmt.Errorf("failed to get context flag: %w", err)
	}
	if opts.maxSuggestions, err = cmd.Flags().GetInt("max-suggestions"); err != nil {
		return opts, fmt.Errorf("failed to get max-suggestions flag: %w", err)
	}
	if opts.maxSuggestions <= 0 {
		opts.maxSuggestions = e.cfg.Output.MaxSuggestions
	}
	if opts.exts, err = cmd.Flags().GetStringSlice("ext"); err != nil {
		return opts, fmt.Errorf("failed to get ext flag: %w", err)
	}

	root := cmd.Root().PersistentFlags()
	colorFlag, err := root.GetString("color")
	if err != nil {
		return opts, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch colorFlag {
	case "on":
		opts.color = true
	case "off":
		opts.color = false
	case "auto":
		opts.color = isTerminal(os.Stdout)
	default:
		return opts, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}
	if opts.quiet, err = root.GetBool("quiet"); err != nil {
		return opts, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if opts.timings, err = root.GetBool("timings"); err != nil {
		return opts, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if opts.maxDiagnostics, err = root.GetInt("max-diagnostics"); err != nil {
		return opts, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	return opts, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	target := args[0]
	return withRuntime(cmd, func() error {
		e, err := newEnv(cmd, target)
		if err != nil {
			return err
		}
		opts, err := readCheckOptions(cmd, e)
		if err != nil {
			return err
		}
		watch, err := cmd.Flags().GetBool("watch")
		if err != nil {
			return fmt.Errorf("failed to get watch flag: %w", err)
		}
		if err := e.preload(cmd.Context(), opts.quiet || opts.format != "pretty"); err != nil {
			return err
		}
		cmd.SilenceUsage = true

		if watch {
			if target == "-" {
				return fmt.Errorf("--watch needs a file or directory")
			}
			return watchTarget(cmd, e, target, opts)
		}
		hasErrors, err := checkOnce(cmd, e, target, opts)
		if err != nil {
			return err
		}
		if hasErrors {
			return exitCodeError{code: 1}
		}
		return nil
	})
}

// checkOnce checks target and writes the report. It reports whether any
// error-severity issue was found.
func checkOnce(cmd *cobra.Command, e *env, target string, opts checkOptions) (bool, error) {
	ctx := cmd.Context()
	diskCache, err := e.openCache(cmd)
	if err != nil {
		return false, err
	}
	timer := observ.NewTimer()
	dopts := driver.Options{
		Engine:         e.engine,
		MaxDiagnostics: opts.maxDiagnostics,
		Jobs:           opts.jobs,
		Cache:          diskCache,
		CacheSalt:      e.cacheSalt(),
		Timer:          timer,
	}

	var (
		fs  *source.FileSet
		bag *diag.Bag
	)
	switch {
	case target == "-":
		var res *driver.FileResult
		fs, res, err = driver.CheckReader(ctx, "<stdin>", cmd.InOrStdin(), dopts)
		if err != nil {
			return false, err
		}
		bag = res.Bag
	default:
		st, statErr := os.Stat(target)
		if statErr != nil {
			return false, statErr
		}
		if st.IsDir() {
			fs, bag, err = checkDirectory(ctx, cmd, target, opts, dopts)
		} else {
			var res *driver.FileResult
			fs, res, err = driver.CheckFile(ctx, target, dopts)
			if res != nil {
				bag = res.Bag
			}
		}
		if err != nil {
			return false, err
		}
	}

	if err := writeReport(cmd.OutOrStdout(), bag, fs, opts); err != nil {
		return false, err
	}
	if opts.timings {
		printTimings(cmd.ErrOrStderr(), timer)
	}
	return bag.HasErrors(), nil
}

// checkDirectory checks every text file under dir, with the progress UI
// when it is enabled, and merges the per-file bags.
func checkDirectory(ctx context.Context, cmd *cobra.Command, dir string, opts checkOptions, dopts driver.Options) (*source.FileSet, *diag.Bag, error) {
	var (
		fs      *source.FileSet
		results []driver.FileResult
		err     error
	)
	if !opts.quiet && opts.format == "pretty" && shouldUseTUI(opts.uiMode) {
		files, listErr := driver.ListTextFiles(dir, opts.exts)
		if listErr != nil {
			return nil, nil, listErr
		}
		fs, results, err = runCheckDirWithUI(ctx, "lektor check", dir, files, opts.exts, dopts)
	} else {
		fs, results, err = driver.CheckDir(ctx, dir, opts.exts, dopts)
	}
	if err != nil {
		return nil, nil, err
	}

	bag := diag.NewBag(0)
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", r.Path, r.Err)
			continue
		}
		bag.Merge(r.Bag)
	}
	bag.Sort()
	if fs == nil {
		fs = source.NewFileSet()
	}
	return fs, bag, nil
}

func writeReport(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts checkOptions) error {
	switch opts.format {
	case "json":
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         opts.pathMode,
			IncludePreviews:  opts.preview,
		})
	case "sarif":
		return diagfmt.Sarif(w, bag, fs, diagfmt.SarifRunMeta{
			ToolName:       "lektor",
			ToolVersion:    version.Version,
			InvocationArgs: os.Args[1:],
		})
	case "short":
		_, err := io.WriteString(w, diag.FormatShort(bag.Items(), fs))
		return err
	default:
		return diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:          opts.color,
			Context:        opts.context,
			PathMode:       opts.pathMode,
			MaxSuggestions: opts.maxSuggestions,
			ShowSummary:    !opts.quiet,
			ShowPreview:    opts.preview,
		})
	}
}
