package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"lektor/internal/cache"
	"lektor/internal/check"
	"lektor/internal/config"
	"lektor/internal/lexicon"
	"lektor/internal/userdict"
)

// env is everything a command needs to run checks.
type env struct {
	cfg      config.Config
	store    *userdict.Store // nil when no user config dir exists
	provider *lexicon.Provider
	engine   *check.Engine
}

// addRuleFlags registers the per-run overrides of [rules].
func addRuleFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("commas", false, "enable the comma checker")
	cmd.Flags().Bool("no-spelling", false, "skip the spelling checker")
	cmd.Flags().Bool("sequential", false, "run checkers one after another")
}

// loadConfig reads --config, or the nearest lektor.toml above target.
func loadConfig(cmd *cobra.Command, target string) (config.Config, error) {
	configPath, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	if configPath != "" {
		return config.Load(configPath)
	}
	if target == "" || target == "-" {
		target = "."
	}
	return config.Discover(target)
}

// applyRuleFlags overrides [rules] with flags set on the command line.
func applyRuleFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if f := flags.Lookup("commas"); f != nil && f.Changed {
		v, err := flags.GetBool("commas")
		if err != nil {
			return fmt.Errorf("failed to get commas flag: %w", err)
		}
		cfg.Rules.Commas = v
	}
	if f := flags.Lookup("no-spelling"); f != nil && f.Changed {
		v, err := flags.GetBool("no-spelling")
		if err != nil {
			return fmt.Errorf("failed to get no-spelling flag: %w", err)
		}
		cfg.Rules.Spelling = !v
	}
	if f := flags.Lookup("sequential"); f != nil && f.Changed {
		v, err := flags.GetBool("sequential")
		if err != nil {
			return fmt.Errorf("failed to get sequential flag: %w", err)
		}
		cfg.Rules.Parallel = !v
	}
	return cfg.Validate()
}

// openStore opens the user dictionary named in [spelling].user, or the
// default one.
func openStore(cfg config.Config) *userdict.Store {
	path := cfg.Spelling.User
	if path == "" {
		var err error
		if path, err = userdict.DefaultPath(); err != nil {
			return nil
		}
	}
	return userdict.Open(path)
}

func newEnv(cmd *cobra.Command, target string) (*env, error) {
	cfg, err := loadConfig(cmd, target)
	if err != nil {
		return nil, err
	}
	if err := applyRuleFlags(cmd, &cfg); err != nil {
		return nil, err
	}
	e := &env{cfg: cfg, store: openStore(cfg)}
	var words lexicon.WordSource
	if e.store != nil {
		words = e.store
	}
	e.provider = lexicon.NewProvider(cfg.LexiconPaths(), words)
	e.engine = check.NewEngine(cfg.CheckOptions(), e.provider)
	return e, nil
}

// preload loads the lexicon up front so a missing dictionary fails before
// any output. A spinner runs on an interactive stderr.
func (e *env) preload(ctx context.Context, quiet bool) error {
	if !e.cfg.Rules.Spelling || e.provider.Loaded() {
		return nil
	}
	if !quiet && isTerminal(os.Stderr) {
		s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
		s.Suffix = " nalagam slovar ..."
		_ = s.Color("cyan")
		s.Start()
		defer s.Stop()
	}
	if _, err := e.provider.Lexicon(ctx); err != nil {
		return err
	}
	return nil
}

// cacheSalt fingerprints every word list that can change a result.
func (e *env) cacheSalt() string {
	if !e.cfg.Rules.Spelling {
		return ""
	}
	paths := []string{e.cfg.Spelling.Aff, e.cfg.Spelling.Dic, e.cfg.Spelling.Personal}
	if e.store != nil {
		paths = append(paths, e.store.Path())
	}
	return cache.Fingerprint(paths...)
}

// openCache returns the disk cache when [cache].enabled or --cache asks for it.
func (e *env) openCache(cmd *cobra.Command) (*cache.DiskCache, error) {
	enabled := e.cfg.Cache.Enabled
	if f := cmd.Flags().Lookup("cache"); f != nil && f.Changed {
		v, err := cmd.Flags().GetBool("cache")
		if err != nil {
			return nil, fmt.Errorf("failed to get cache flag: %w", err)
		}
		enabled = v
	}
	if !enabled {
		return nil, nil
	}
	c, err := cache.Open("lektor", e.cfg.Cache.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	return c, nil
}
