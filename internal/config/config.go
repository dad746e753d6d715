// Package config handles configuration loading from TOML files and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Ctags    CtagsConfig    `toml:"ctags"`
	Language LanguageConfig `toml:"language"`
	UI       UIConfig       `toml:"ui"`
}

// CtagsConfig holds the external tag tool settings.
type CtagsConfig struct {
	// Command is the full tool command line. It must read its input file
	// list from stdin, write tags to stdout, keep sorting disabled and
	// include line numbers and scope fields.
	Command string `toml:"command"`
	// TimeoutMS bounds one tool run; expiry counts as an extraction failure.
	TimeoutMS int `toml:"timeout_ms"`
}

// CommandOrDefault returns the configured command line or the stock ctags
// invocation matching the output grammar the parser expects.
func (c CtagsConfig) CommandOrDefault() string {
	if c.Command == "" {
		return "ctags -f - --format=2 --excmd=pattern --fields=nKs --sort=no --language-force=python -L -"
	}
	return c.Command
}

// TimeoutOrDefault returns the configured timeout or 2 seconds if unset.
func (c CtagsConfig) TimeoutOrDefault() time.Duration {
	if c.TimeoutMS <= 0 {
		return 2 * time.Second
	}
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// LanguageConfig describes the one supported language.
type LanguageConfig struct {
	Name          string   `toml:"name"`
	Extensions    []string `toml:"extensions"`
	CommentPrefix string   `toml:"comment_prefix"`
}

// ExtensionsOrDefault returns the configured extensions or the Python set.
func (l LanguageConfig) ExtensionsOrDefault() []string {
	if len(l.Extensions) == 0 {
		return []string{".py", ".pyw"}
	}
	return l.Extensions
}

// CommentPrefixOrDefault returns the configured comment marker or "#".
func (l LanguageConfig) CommentPrefixOrDefault() string {
	if l.CommentPrefix == "" {
		return "#"
	}
	return l.CommentPrefix
}

// UIConfig holds user-interface settings.
type UIConfig struct {
	// IdleMS is the keystroke-quiet interval before the status refreshes.
	IdleMS int `toml:"idle_ms"`
	// SyntaxTheme is the Chroma syntax highlighting theme for the editor.
	SyntaxTheme string `toml:"syntax_theme"`
}

// IdleDelayOrDefault returns the configured idle delay or 500ms if unset.
func (u UIConfig) IdleDelayOrDefault() time.Duration {
	if u.IdleMS <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(u.IdleMS) * time.Millisecond
}

// SyntaxThemeOrDefault returns the configured syntax theme or "github-dark".
func (u UIConfig) SyntaxThemeOrDefault() string {
	if u.SyntaxTheme == "" {
		return "github-dark"
	}
	return u.SyntaxTheme
}

// Default returns a configuration with every value at its default, with
// environment overrides still applied.
func Default() *Config {
	cfg := &Config{}
	applyEnvOverrides(cfg)
	return cfg
}

// Load reads configuration from a TOML file and applies environment variable
// overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path == "" {
		return nil, fmt.Errorf("config path is required")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate returns an error if the configuration is invalid.
func (c *Config) Validate() error {
	var errs []error

	if c.Ctags.TimeoutMS < 0 {
		errs = append(errs, fmt.Errorf("ctags.timeout_ms=%d must not be negative", c.Ctags.TimeoutMS))
	}
	if c.UI.IdleMS < 0 {
		errs = append(errs, fmt.Errorf("ui.idle_ms=%d must not be negative", c.UI.IdleMS))
	}
	for _, ext := range c.Language.Extensions {
		if !strings.HasPrefix(ext, ".") {
			errs = append(errs, fmt.Errorf("language.extensions entry %q must start with a dot", ext))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	for _, setter := range []struct {
		env   string
		apply func(string)
	}{
		{"TAGLINE_CTAGS_COMMAND", func(v string) {
			if v != "" {
				cfg.Ctags.Command = v
			}
		}},
		{"TAGLINE_SYNTAX_THEME", func(v string) {
			if v != "" {
				cfg.UI.SyntaxTheme = v
			}
		}},
	} {
		setter.apply(os.Getenv(setter.env))
	}
}

// DataDir returns the path to the tagline data directory (~/.config/tagline).
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "tagline"), nil
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", err
	}
	return dir, nil
}
