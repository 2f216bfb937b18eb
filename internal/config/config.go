// Package config loads application settings from
// XDG_CONFIG_HOME/libris/config.yaml with LIBRIS_* environment overrides.
// A missing config file is not an error; defaults apply.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

const configFileName = "config.yaml"

// Config holds user-tunable settings.
type Config struct {
	// LibraryDir is scanned for .epub files. Defaults to ~/Books.
	LibraryDir string `yaml:"library_dir"`
	// Theme selects the UI palette: "light" or "dark".
	Theme string `yaml:"theme"`
	// FontScale is a percentage; page size shrinks as it grows, mirroring
	// how larger type fits fewer words on a screen.
	FontScale int `yaml:"font_scale"`
	// WordsPerPage is the page size at 100% font scale.
	WordsPerPage int `yaml:"words_per_page"`
	// LogLevel is a zap level name ("debug", "info", ...) or "off".
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in settings.
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		LibraryDir:   filepath.Join(home, "Books"),
		Theme:        "dark",
		FontScale:    100,
		WordsPerPage: 160,
		LogLevel:     "info",
	}
}

// Load reads the config file, if present, and applies env overrides.
func Load() (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Join(configDir(), configFileName))
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	applyEnv(&cfg)
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func configDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "libris")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "libris")
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("LIBRIS_LIBRARY_DIR"); v != "" {
		cfg.LibraryDir = v
	}
	if v := os.Getenv("LIBRIS_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("LIBRIS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("LIBRIS_FONT_SCALE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.FontScale = n
		}
	}
	if v := os.Getenv("LIBRIS_WORDS_PER_PAGE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.WordsPerPage = n
		}
	}
}

func (c Config) validate() error {
	if c.Theme != "light" && c.Theme != "dark" {
		return fmt.Errorf("config: unknown theme %q", c.Theme)
	}
	if c.FontScale < 50 || c.FontScale > 300 {
		return fmt.Errorf("config: font_scale %d out of range [50,300]", c.FontScale)
	}
	if c.WordsPerPage < 20 {
		return fmt.Errorf("config: words_per_page %d too small", c.WordsPerPage)
	}
	return nil
}

// PageSize converts the configured page size and font scale into a word
// count per rendered page.
func (c Config) PageSize() int {
	size := c.WordsPerPage * 100 / c.FontScale
	if size < 20 {
		size = 20
	}
	return size
}
