// Package config loads lektor.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"lektor/internal/check"
	"lektor/internal/lexicon"
)

// FileName is the configuration file looked up from the checked path upwards.
const FileName = "lektor.toml"

// Formats accepted by [output].format.
var Formats = []string{"pretty", "short", "json", "sarif"}

type Rules struct {
	Commas   bool `toml:"commas"`
	Spelling bool `toml:"spelling"`
	Parallel bool `toml:"parallel"`
}

type Spelling struct {
	Aff      string `toml:"aff"`
	Dic      string `toml:"dic"`
	Personal string `toml:"personal"`
	User     string `toml:"user"`
}

type Output struct {
	Format         string `toml:"format"`
	MaxSuggestions int    `toml:"max_suggestions"`
}

type Cache struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// Config is the decoded file merged over the defaults.
type Config struct {
	// Path is the file the values came from; empty for defaults.
	Path     string   `toml:"-"`
	Rules    Rules    `toml:"rules"`
	Spelling Spelling `toml:"spelling"`
	Output   Output   `toml:"output"`
	Cache    Cache    `toml:"cache"`
}

// Default returns the built-in configuration. Dictionary files default to
// $LEKTOR_DICT, or <user config dir>/lektor/dict.
func Default() Config {
	dictDir := os.Getenv("LEKTOR_DICT")
	if dictDir == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			dictDir = filepath.Join(dir, "lektor", "dict")
		}
	}
	cfg := Config{
		Rules:  Rules{Spelling: true, Parallel: true},
		Output: Output{Format: "pretty", MaxSuggestions: 6},
	}
	if dictDir != "" {
		cfg.Spelling.Aff = filepath.Join(dictDir, "index.aff")
		cfg.Spelling.Dic = filepath.Join(dictDir, "index.dic")
		cfg.Spelling.Personal = filepath.Join(dictDir, "custom.dic")
	}
	return cfg
}

// Find walks up from startDir to locate lektor.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover loads the nearest lektor.toml above start, or the defaults.
func Discover(start string) (Config, error) {
	path, ok, err := Find(start)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Load decodes path over the defaults. Relative paths in [spelling] and
// [cache] are resolved against the file's directory.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path

	base := filepath.Dir(path)
	resolve := func(p *string, keys ...string) {
		if meta.IsDefined(keys...) && *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, filepath.FromSlash(*p))
		}
	}
	resolve(&cfg.Spelling.Aff, "spelling", "aff")
	resolve(&cfg.Spelling.Dic, "spelling", "dic")
	resolve(&cfg.Spelling.Personal, "spelling", "personal")
	resolve(&cfg.Spelling.User, "spelling", "user")
	resolve(&cfg.Cache.Dir, "cache", "dir")

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that decode fine but make no sense.
func (c Config) Validate() error {
	if !isFormat(c.Output.Format) {
		return fmt.Errorf("[output].format must be one of %s, got %q", strings.Join(Formats, ", "), c.Output.Format)
	}
	if c.Output.MaxSuggestions < 1 {
		return fmt.Errorf("[output].max_suggestions must be positive, got %d", c.Output.MaxSuggestions)
	}
	if c.Rules.Spelling && (c.Spelling.Aff == "" || c.Spelling.Dic == "") {
		return errors.New("[spelling].aff and [spelling].dic are required when spelling is on")
	}
	return nil
}

func isFormat(s string) bool {
	for _, f := range Formats {
		if f == s {
			return true
		}
	}
	return false
}

// CheckOptions maps [rules] onto engine options.
func (c Config) CheckOptions() check.Options {
	return check.Options{
		Commas:   c.Rules.Commas,
		Spelling: c.Rules.Spelling,
		Parallel: c.Rules.Parallel,
	}
}

// LexiconPaths maps [spelling] onto dictionary locations.
func (c Config) LexiconPaths() lexicon.Paths {
	return lexicon.Paths{
		Aff:      c.Spelling.Aff,
		Dic:      c.Spelling.Dic,
		Personal: c.Spelling.Personal,
	}
}
