// Package config loads and saves finportal configuration and warehouse secrets.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all finportal configuration. Secrets live in secrets.toml.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Warehouse  WarehouseConfig  `toml:"warehouse"`
	Cache      CacheConfig      `toml:"cache"`
	Form       FormConfig       `toml:"form"`
	Appearance AppearanceConfig `toml:"appearance"`
	TUI        TUIConfig        `toml:"tui"`
	Server     ServerConfig     `toml:"server"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	LogLevel    string `toml:"log_level"`
	RecentLimit int    `toml:"recent_limit"`
}

// WarehouseConfig selects and tunes the SQL warehouse connector.
type WarehouseConfig struct {
	Driver     string `toml:"driver"` // "sqlite" or "databricks"
	Table      string `toml:"table"`
	SQLitePath string `toml:"sqlite_path,omitempty"`
	TimeoutSec int    `toml:"timeout_sec"`
	QueryLimit int    `toml:"query_limit"`
}

// CacheConfig holds the dashboard cache window.
type CacheConfig struct {
	TTLSec int `toml:"ttl_sec"`
}

// FormConfig holds the submission form's choice list and defaults.
type FormConfig struct {
	BusinessUnits    []string `toml:"business_units"`
	DefaultRevenue   float64  `toml:"default_revenue"`
	DefaultExpenses  float64  `toml:"default_expenses"`
	DefaultSubmitter string   `toml:"default_submitter"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// TUIConfig holds TUI-specific settings.
type TUIConfig struct {
	AutoRefresh bool `toml:"auto_refresh"`
}

// ServerConfig holds settings for `finportal serve`.
type ServerConfig struct {
	Addr         string `toml:"addr"`
	EventsBuffer int    `toml:"events_buffer"`
}

// DefaultBusinessUnits is the fixed choice set offered by the form.
var DefaultBusinessUnits = []string{"Sales", "Marketing", "Operations", "Engineering", "Finance", "HR"}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			LogLevel:    "info",
			RecentLimit: 10,
		},
		Warehouse: WarehouseConfig{
			Driver:     "sqlite",
			Table:      "financial_submissions",
			TimeoutSec: 30,
			QueryLimit: 100,
		},
		Cache: CacheConfig{
			TTLSec: 30,
		},
		Form: FormConfig{
			BusinessUnits:    append([]string(nil), DefaultBusinessUnits...),
			DefaultRevenue:   100000,
			DefaultExpenses:  75000,
			DefaultSubmitter: "Demo User",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		TUI: TUIConfig{
			AutoRefresh: true,
		},
		Server: ServerConfig{
			Addr:         "127.0.0.1:8787",
			EventsBuffer: 200,
		},
	}
}

var pathOverride string

// SetPath makes Load/Save use path instead of the XDG location.
func SetPath(path string) {
	pathOverride = path
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if pathOverride != "" {
		return filepath.Dir(pathOverride)
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "finportal")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "finportal")
}

// Path returns the full path to the config file.
func Path() string {
	if pathOverride != "" {
		return pathOverride
	}
	return filepath.Join(Dir(), "config.toml")
}

// CacheDir returns the directory for logs and other disposable state.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "finportal")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "finportal")
}

// DataDir returns the directory holding the local SQLite warehouse.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "finportal")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "finportal")
}

// LogPath returns the TUI log file location.
func LogPath() string {
	return filepath.Join(CacheDir(), "finportal.log")
}

// Load reads the config file, returning defaults if it doesn't exist.
// Environment overrides are applied last.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	applyEnv(&cfg)
	cfg.normalize()
	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// CacheTTL returns the dashboard cache window.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSec) * time.Second
}

// WarehouseTimeout returns the per-statement timeout.
func (c Config) WarehouseTimeout() time.Duration {
	return time.Duration(c.Warehouse.TimeoutSec) * time.Second
}

// SQLitePath returns the configured local database path or the default.
func (c Config) SQLitePath() string {
	if c.Warehouse.SQLitePath != "" {
		return c.Warehouse.SQLitePath
	}
	return filepath.Join(DataDir(), "finportal.db")
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("FINPORTAL_WAREHOUSE_DRIVER"); v != "" {
		cfg.Warehouse.Driver = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("FINPORTAL_WAREHOUSE_TABLE"); v != "" {
		cfg.Warehouse.Table = v
	}
	if v := os.Getenv("FINPORTAL_SQLITE_PATH"); v != "" {
		cfg.Warehouse.SQLitePath = v
	}
}

// normalize replaces zero or invalid values a hand-edited file may carry.
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.Warehouse.Driver == "" {
		c.Warehouse.Driver = def.Warehouse.Driver
	}
	if c.Warehouse.Table == "" {
		c.Warehouse.Table = def.Warehouse.Table
	}
	if c.Warehouse.TimeoutSec <= 0 {
		c.Warehouse.TimeoutSec = def.Warehouse.TimeoutSec
	}
	if c.Warehouse.QueryLimit <= 0 {
		c.Warehouse.QueryLimit = def.Warehouse.QueryLimit
	}
	if c.Cache.TTLSec <= 0 {
		c.Cache.TTLSec = def.Cache.TTLSec
	}
	if len(c.Form.BusinessUnits) == 0 {
		c.Form.BusinessUnits = def.Form.BusinessUnits
	}
	if c.General.RecentLimit <= 0 {
		c.General.RecentLimit = def.General.RecentLimit
	}
	if c.Server.EventsBuffer <= 0 {
		c.Server.EventsBuffer = def.Server.EventsBuffer
	}
	if c.Server.Addr == "" {
		c.Server.Addr = def.Server.Addr
	}
}
