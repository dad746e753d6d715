package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/xonecas/tagline/internal/config"
	"github.com/xonecas/tagline/internal/engine"
	"github.com/xonecas/tagline/internal/tags"
	"github.com/xonecas/tagline/internal/tui"
)

func main() {
	configPath := flag.String("config", "", "path to config.toml (optional)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: tagline [-config config.toml] <file.py>")
		os.Exit(1)
	}
	filePath, err := filepath.Abs(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving path: %v\n", err)
		os.Exit(1)
	}

	closeLog := setupLogging()
	defer closeLog()

	cfg := loadConfig(*configPath)

	content, err := os.ReadFile(filePath)
	if err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", filePath, err)
		os.Exit(1)
	}

	eng := engine.New(
		pickExtractor(cfg),
		cfg.Language.CommentPrefixOrDefault(),
		cfg.Language.ExtensionsOrDefault(),
	)

	p := tea.NewProgram(tui.New(cfg, eng, filePath, string(content)))
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running tagline: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging sends zerolog output to ~/.config/tagline/tagline.log so log
// lines never corrupt the terminal UI.
func setupLogging() func() {
	dir, err := config.EnsureDataDir()
	if err != nil {
		log.Logger = zerolog.Nop()
		return func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "tagline.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		log.Logger = zerolog.Nop()
		return func() {}
	}
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return func() { f.Close() }
}

// loadConfig reads the flag-given file, or falls back to the data-dir
// config.toml, or defaults.
func loadConfig(path string) *config.Config {
	if path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		return cfg
	}
	if dir, err := config.DataDir(); err == nil {
		p := filepath.Join(dir, "config.toml")
		if _, err := os.Stat(p); err == nil {
			if cfg, err := config.Load(p); err == nil {
				return cfg
			}
			log.Warn().Str("path", p).Msg("ignoring unreadable config")
		}
	}
	return config.Default()
}

// pickExtractor prefers the external ctags tool and falls back to the
// built-in tree-sitter extractor when the tool binary is not installed.
func pickExtractor(cfg *config.Config) tags.Extractor {
	command := cfg.Ctags.CommandOrDefault()
	bin := strings.Fields(command)[0]
	if _, err := exec.LookPath(bin); err != nil {
		log.Info().Str("bin", bin).Msg("tag tool not found, using built-in extractor")
		return &tags.SitterExtractor{}
	}
	return tags.NewCtagsExtractor(command, cfg.Ctags.TimeoutOrDefault())
}
