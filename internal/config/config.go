package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Store     StoreConfig
	Clipboard ClipboardConfig
	Export    ExportConfig
	Log       LogConfig
}

// StoreConfig selects where saved locations live.
type StoreConfig struct {
	Backend string // "file" or "sqlite"
	Path    string
}

// ClipboardConfig holds copy settings.
type ClipboardConfig struct {
	Mode          string // "system" or "osc52"
	ConfirmWindow time.Duration `mapstructure:"confirm_window"`
}

// ExportConfig holds export defaults.
type ExportConfig struct {
	Format string
	Header string
}

// LogConfig holds logging settings.
type LogConfig struct {
	Path  string
	Level string
}

func configDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "spawncodes")
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "spawncodes")
}

// Load reads configuration from file and env. Env var overrides use prefix SPAWNCODES_.
func Load() (Config, error) {
	return load(true)
}

// Defaults is the configuration with no file read, env overrides applied.
func Defaults() (Config, error) {
	return load(false)
}

func load(readFile bool) (Config, error) {
	v := viper.New()

	dir := configDir()
	v.SetDefault("store.backend", "file")
	v.SetDefault("store.path", "")
	v.SetDefault("clipboard.mode", "system")
	v.SetDefault("clipboard.confirm_window", "2s")
	v.SetDefault("export.format", "auto")
	v.SetDefault("export.header", "Generated Spawn Commands for ARK: Survival Ascended")
	v.SetDefault("log.path", filepath.Join(dir, "spawncodes.log"))
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("SPAWNCODES_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(dir)
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("SPAWNCODES")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if readFile {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if cfgPath != "" || !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Store.Backend = strings.ToLower(strings.TrimSpace(c.Store.Backend))
	if c.Store.Path == "" {
		c.Store.Path = DefaultStorePath(c.Store.Backend)
	}
	c.Store.Path = ExpandHome(c.Store.Path)
	c.Log.Path = ExpandHome(c.Log.Path)
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// DefaultStorePath is the per-backend location file under the config dir.
func DefaultStorePath(backend string) string {
	if backend == "sqlite" {
		return filepath.Join(configDir(), "spawncodes.db")
	}
	return filepath.Join(configDir(), "locations.json")
}

// Validate rejects settings the app cannot act on.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case "file", "sqlite":
	default:
		return fmt.Errorf("store.backend: unknown backend %q", c.Store.Backend)
	}
	switch strings.ToLower(c.Clipboard.Mode) {
	case "system", "osc52":
	default:
		return fmt.Errorf("clipboard.mode: unknown mode %q", c.Clipboard.Mode)
	}
	if c.Clipboard.ConfirmWindow < 0 {
		return fmt.Errorf("clipboard.confirm_window: must not be negative")
	}
	switch strings.ToLower(c.Export.Format) {
	case "auto", "txt", "json", "yaml", "toml":
	default:
		return fmt.Errorf("export.format: unknown format %q", c.Export.Format)
	}
	return nil
}

// Path is the config file Load reads and Save writes.
func Path() string {
	if p := os.Getenv("SPAWNCODES_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(configDir(), "config.toml")
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("store.backend", cfg.Store.Backend)
	v.Set("store.path", cfg.Store.Path)
	v.Set("clipboard.mode", cfg.Clipboard.Mode)
	v.Set("clipboard.confirm_window", cfg.Clipboard.ConfirmWindow.String())
	v.Set("export.format", cfg.Export.Format)
	v.Set("export.header", cfg.Export.Header)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
