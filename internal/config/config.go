package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds the resolved application configuration.
type Config struct {
	// Theme name: "dark" (default) or "light".
	Theme string `mapstructure:"theme"`
	// Editor used to open files (falls back to $GIT_EDITOR, $VISUAL, $EDITOR).
	Editor string `mapstructure:"editor"`
	// Remote that push targets.
	Remote string `mapstructure:"remote"`
	// PollInterval between periodic status refreshes. Zero disables polling.
	PollInterval time.Duration `mapstructure:"poll_interval"`
	// WatchDebounce coalesces bursts of filesystem events.
	WatchDebounce time.Duration `mapstructure:"watch_debounce"`
	// DiffCacheTTL bounds how long a computed diff is served from cache.
	DiffCacheTTL time.Duration `mapstructure:"diff_cache_ttl"`
	// MaxGitJobs caps concurrently running background git commands.
	MaxGitJobs int `mapstructure:"max_git_jobs"`
	// IncludeUntracked lists untracked files in the working directory pane.
	IncludeUntracked bool `mapstructure:"include_untracked"`
	// LogFile receives structured logs. Empty selects the user cache dir.
	LogFile string `mapstructure:"log_file"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`
	// Keys overrides individual key bindings.
	Keys KeyBindings `mapstructure:"keys"`
}

// Load reads configuration from path, or from config.yaml in the user
// config dir and the current directory when path is empty. A missing
// default file is fine; a missing explicit file is an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("GITPANE")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(configDirectory())
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.MaxGitJobs < 1 {
		return fmt.Errorf("max_git_jobs must be at least 1, got %d", c.MaxGitJobs)
	}
	if c.PollInterval < 0 || c.WatchDebounce < 0 || c.DiffCacheTTL < 0 {
		return errors.New("durations must not be negative")
	}
	if c.Remote == "" {
		return errors.New("remote must not be empty")
	}
	return nil
}

// Default returns the configuration used when no file or env overrides exist.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg := &Config{}
	_ = v.Unmarshal(cfg)
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("theme", "dark")
	v.SetDefault("editor", "")
	v.SetDefault("remote", "origin")
	v.SetDefault("poll_interval", 5*time.Second)
	v.SetDefault("watch_debounce", 500*time.Millisecond)
	v.SetDefault("diff_cache_ttl", 30*time.Second)
	v.SetDefault("max_git_jobs", 4)
	v.SetDefault("include_untracked", true)
	v.SetDefault("log_file", "")
	v.SetDefault("log_level", "info")

	for action, keys := range DefaultKeyBindings().asMap() {
		v.SetDefault("keys."+action, keys)
	}
}

func configDirectory() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "gitpane")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "gitpane")
}
