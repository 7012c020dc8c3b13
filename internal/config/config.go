package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	UI     UIConfig     `mapstructure:"ui"`
	Grid   GridConfig   `mapstructure:"grid"`
	Source SourceConfig `mapstructure:"source"`
	Log    LogConfig    `mapstructure:"log"`
}

type UIConfig struct {
	Theme            string `mapstructure:"theme"`
	MouseEnabled     bool   `mapstructure:"mouse_enabled"`
	Striped          bool   `mapstructure:"striped"`
	HighlightOnHover bool   `mapstructure:"highlight_on_hover"`
	NoEllipsis       bool   `mapstructure:"no_ellipsis"`
}

type GridConfig struct {
	WithGlobalFilter  bool           `mapstructure:"with_global_filter"`
	WithColumnFilters bool           `mapstructure:"with_column_filters"`
	WithSorting       bool           `mapstructure:"with_sorting"`
	WithPagination    bool           `mapstructure:"with_pagination"`
	PageSizes         []int          `mapstructure:"page_sizes"`
	InitialPageSize   int            `mapstructure:"initial_page_size"`
	InitialPageIndex  int            `mapstructure:"initial_page_index"`
	Columns           []ColumnConfig `mapstructure:"columns"`
}

// ColumnConfig declares one grid column. Filter is one of number, text,
// enum, expr or none; empty infers it from the data.
type ColumnConfig struct {
	ID         string   `mapstructure:"id"`
	Header     string   `mapstructure:"header"`
	Filter     string   `mapstructure:"filter"`
	Options    []string `mapstructure:"options"`
	Width      int      `mapstructure:"width"`
	Sortable   *bool    `mapstructure:"sortable"`
	Filterable *bool    `mapstructure:"filterable"`
}

// IsSortable reports the sortable flag, true when unset
func (c ColumnConfig) IsSortable() bool { return c.Sortable == nil || *c.Sortable }

// IsFilterable reports the filterable flag, true when unset
func (c ColumnConfig) IsFilterable() bool { return c.Filterable == nil || *c.Filterable }

type SourceConfig struct {
	Kind  string `mapstructure:"kind"`
	Path  string `mapstructure:"path"`
	DSN   string `mapstructure:"dsn"`
	Table string `mapstructure:"table"`
	Limit int    `mapstructure:"limit"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Flag names bound onto config keys
var flagKeys = map[string]string{
	"theme":     "ui.theme",
	"source":    "source.kind",
	"path":      "source.path",
	"dsn":       "source.dsn",
	"table":     "source.table",
	"limit":     "source.limit",
	"page-size": "grid.initial_page_size",
	"log-level": "log.level",
	"log-file":  "log.file",
}

// GetDefaults returns a Config with all default values
func GetDefaults() *Config {
	return &Config{
		UI: UIConfig{
			Theme:            "default",
			MouseEnabled:     true,
			Striped:          true,
			HighlightOnHover: true,
			NoEllipsis:       false,
		},
		Grid: GridConfig{
			WithGlobalFilter:  true,
			WithColumnFilters: true,
			WithSorting:       true,
			WithPagination:    true,
			PageSizes:         []int{10, 25, 50, 100},
			InitialPageSize:   10,
			InitialPageIndex:  0,
		},
		Source: SourceConfig{
			Kind:  "",
			Limit: 10000,
		},
		Log: LogConfig{
			Level: "info",
			File:  "lazygrid.log",
		},
	}
}

// RegisterFlags adds the command line flags Load understands
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP("config", "c", "", "config file (default: search user config dir, . and ./config)")
	fs.String("theme", "", "color theme (default, catppuccin)")
	fs.StringP("source", "s", "", "source kind: csv, yaml, json, sqlite, postgres")
	fs.StringP("path", "f", "", "file to load for csv, yaml, json and sqlite sources")
	fs.String("dsn", "", "postgres connection string")
	fs.StringP("table", "t", "", "table to read for sqlite and postgres sources")
	fs.Int("limit", 0, "maximum rows to load when not paging, 0 for no limit")
	fs.Int("page-size", 0, "initial page size")
	fs.String("log-level", "", "log level: debug, info, warn, error")
	fs.String("log-file", "", "log file path")
}

// Load loads configuration from files, LAZYGRID_* environment variables and
// the flags registered with RegisterFlags. fs may be nil.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// Set config name and type
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Add config paths in priority order
	// 1. User config directory
	if configDir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(configDir, "lazygrid"))
	}

	// 2. Current directory
	v.AddConfigPath(".")

	// 3. Default config directory
	v.AddConfigPath("./config")

	setDefaults(v)

	v.SetEnvPrefix("LAZYGRID")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := false
	if fs != nil {
		if f := fs.Lookup("config"); f != nil && f.Value.String() != "" {
			v.SetConfigFile(f.Value.String())
			explicit = true
		}
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	// Read config (it's okay if file doesn't exist, we have defaults)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	// Unmarshal into struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := GetDefaults()
	v.SetDefault("ui.theme", d.UI.Theme)
	v.SetDefault("ui.mouse_enabled", d.UI.MouseEnabled)
	v.SetDefault("ui.striped", d.UI.Striped)
	v.SetDefault("ui.highlight_on_hover", d.UI.HighlightOnHover)
	v.SetDefault("ui.no_ellipsis", d.UI.NoEllipsis)
	v.SetDefault("grid.with_global_filter", d.Grid.WithGlobalFilter)
	v.SetDefault("grid.with_column_filters", d.Grid.WithColumnFilters)
	v.SetDefault("grid.with_sorting", d.Grid.WithSorting)
	v.SetDefault("grid.with_pagination", d.Grid.WithPagination)
	v.SetDefault("grid.page_sizes", d.Grid.PageSizes)
	v.SetDefault("grid.initial_page_size", d.Grid.InitialPageSize)
	v.SetDefault("grid.initial_page_index", d.Grid.InitialPageIndex)
	v.SetDefault("source.kind", d.Source.Kind)
	v.SetDefault("source.path", d.Source.Path)
	v.SetDefault("source.dsn", d.Source.DSN)
	v.SetDefault("source.table", d.Source.Table)
	v.SetDefault("source.limit", d.Source.Limit)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
}

// GetConfigPath returns the user config directory path
func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "lazygrid"), nil
}
