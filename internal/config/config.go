package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"novabot/internal/corpus"
	"novabot/internal/matcher"
	"novabot/internal/textnorm"
)

// CorpusConfig selects the FAQ source.
type CorpusConfig struct {
	// Path of the FAQ text file. Empty uses the embedded NovaBank corpus.
	Path       string `yaml:"path"`
	MaxEntries int    `yaml:"max_entries"`
}

// MatcherConfig configures query matching.
type MatcherConfig struct {
	IDF            string `yaml:"idf"`
	StopWords      string `yaml:"stop_words"`
	FallbackAnswer string `yaml:"fallback_answer"`
	Workers        int    `yaml:"workers"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr           string `yaml:"addr"`
	SessionTTLSecs int    `yaml:"session_ttl_secs"`
}

// TUIConfig configures the terminal dashboard.
type TUIConfig struct {
	Suggestions int `yaml:"suggestions"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Corpus  CorpusConfig  `yaml:"corpus"`
	Matcher MatcherConfig `yaml:"matcher"`
	Server  ServerConfig  `yaml:"server"`
	TUI     TUIConfig     `yaml:"tui"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/novabot/config.yaml.
// If neither exists, it writes defaults to ~/.config/novabot/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := Default()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate rejects values the components would refuse at startup.
func (c *AppConfig) Validate() error {
	if _, err := matcher.ParseIDFPolicy(c.Matcher.IDF); err != nil {
		return fmt.Errorf("matcher.idf: %w", err)
	}
	if _, err := textnorm.StopWordsByName(c.Matcher.StopWords); err != nil {
		return fmt.Errorf("matcher.stop_words: %w", err)
	}
	if c.Corpus.MaxEntries < 0 {
		return fmt.Errorf("corpus.max_entries: must not be negative, got %d", c.Corpus.MaxEntries)
	}
	if c.Server.Addr == "" {
		return errors.New("server.addr: must not be empty")
	}
	return nil
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "novabot", "config.yaml"), nil
}

// Default returns the built-in configuration.
func Default() *AppConfig {
	return &AppConfig{
		Corpus:  CorpusConfig{MaxEntries: corpus.DefaultMaxEntries},
		Matcher: MatcherConfig{IDF: string(matcher.IDFJoint), StopWords: "english", Workers: 4},
		Server:  ServerConfig{Addr: ":8080", SessionTTLSecs: 1800},
		TUI:     TUIConfig{Suggestions: 4},
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	def := Default()
	if cfg.Corpus.MaxEntries == 0 {
		cfg.Corpus.MaxEntries = def.Corpus.MaxEntries
	}
	if cfg.Matcher.IDF == "" {
		cfg.Matcher.IDF = def.Matcher.IDF
	}
	if cfg.Matcher.StopWords == "" {
		cfg.Matcher.StopWords = def.Matcher.StopWords
	}
	if cfg.Matcher.Workers == 0 {
		cfg.Matcher.Workers = def.Matcher.Workers
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = def.Server.Addr
	}
	if cfg.Server.SessionTTLSecs == 0 {
		cfg.Server.SessionTTLSecs = def.Server.SessionTTLSecs
	}
	if cfg.TUI.Suggestions == 0 {
		cfg.TUI.Suggestions = def.TUI.Suggestions
	}
}
