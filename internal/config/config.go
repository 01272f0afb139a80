package config

import (
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/adrg/xdg"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Valid options for enumerated settings.
var (
	ValidSources   = []string{"random", "kindle", "custom"}
	ValidCadences  = []string{"always", "daily", "weekly", "monthly", "quarterly", "biannually", "annually"}
	hexColourRegex = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)
)

// ColourSet holds the palette for one theme (dark or light).
type ColourSet struct {
	Background string `mapstructure:"background_color"`
	QuoteText  string `mapstructure:"quote_text_color"`
	AuthorText string `mapstructure:"author_text_color"`
	TitleText  string `mapstructure:"title_text_color"`
}

// Dimension is the wallpaper resolution.
type Dimension struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// KindleSettings configures the Kindle highlights source.
type KindleSettings struct {
	RefreshFrequency string `mapstructure:"refresh_frequency"`
	ShowBookCover    bool   `mapstructure:"show_book_cover"`
	ShowBookTitle    bool   `mapstructure:"show_book_title"`
	SecretsPath      string `mapstructure:"secrets_path"`
}

// CustomSettings configures the local quotebook source.
type CustomSettings struct {
	QuotebookPath string `mapstructure:"quotebook_path"`
}

// Config is the full application configuration.
type Config struct {
	Source     string               `mapstructure:"source"`
	Dimension  Dimension            `mapstructure:"dimension"`
	DarkMode   bool                 `mapstructure:"dark_mode"`
	Colours    map[string]ColourSet `mapstructure:"colors"`
	ShowAuthor bool                 `mapstructure:"show_author"`
	Kindle     KindleSettings       `mapstructure:"kindle"`
	Custom     CustomSettings       `mapstructure:"custom"`

	// Runtime paths, not read from the config file.
	ConfigDir string `mapstructure:"-"`
	CacheDir  string `mapstructure:"-"`
	OutputDir string `mapstructure:"-"`
}

// SetDefaults registers every config key with viper so a missing or
// partial config file still yields a complete configuration.
func SetDefaults() {
	viper.SetDefault("source", "random")
	viper.SetDefault("dimension.width", 7680)
	viper.SetDefault("dimension.height", 4320)
	viper.SetDefault("dark_mode", true)
	viper.SetDefault("show_author", true)

	viper.SetDefault("colors.dark.background_color", "#1E1E2E")
	viper.SetDefault("colors.dark.quote_text_color", "#CBA6F7")
	viper.SetDefault("colors.dark.author_text_color", "#A6ADC8")
	viper.SetDefault("colors.dark.title_text_color", "#CDD6F4")

	viper.SetDefault("colors.light.background_color", "#EFF1F5")
	viper.SetDefault("colors.light.quote_text_color", "#8839EF")
	viper.SetDefault("colors.light.author_text_color", "#6C6F85")
	viper.SetDefault("colors.light.title_text_color", "#4C4F69")

	viper.SetDefault("kindle.refresh_frequency", "monthly")
	viper.SetDefault("kindle.show_book_cover", true)
	viper.SetDefault("kindle.show_book_title", true)
	viper.SetDefault("kindle.secrets_path", "config_directory")

	viper.SetDefault("custom.quotebook_path", "config_directory")
}

// Load reads quotescape.yaml from the standard locations, merges it over
// the defaults and validates the result.
func Load() (*Config, error) {
	viper.SetConfigName("quotescape")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(filepath.Join(xdg.ConfigHome, "quotescape"))
	viper.AddConfigPath("$HOME/.config/quotescape")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		logrus.Debug("no config file found, using defaults")
	} else {
		logrus.WithField("file", viper.ConfigFileUsed()).Debug("loaded config file")
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.ConfigDir = filepath.Join(xdg.ConfigHome, "quotescape")
	if used := viper.ConfigFileUsed(); used != "" {
		cfg.ConfigDir = filepath.Dir(used)
	}
	cfg.CacheDir = filepath.Join(xdg.CacheHome, "quotescape")
	cfg.OutputDir = filepath.Join(xdg.DataHome, "quotescape", "wallpapers")

	cfg.resolvePaths()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// resolvePaths expands the "config_directory" placeholder to concrete
// files inside the config directory.
func (c *Config) resolvePaths() {
	if c.Kindle.SecretsPath == "config_directory" || c.Kindle.SecretsPath == "" {
		c.Kindle.SecretsPath = filepath.Join(c.ConfigDir, "kindle_secrets.json")
	}
	if c.Custom.QuotebookPath == "config_directory" || c.Custom.QuotebookPath == "" {
		c.Custom.QuotebookPath = filepath.Join(c.ConfigDir, "custom_quotebook.json")
	}
}

// Validate checks every enumerated and constrained setting.
func (c *Config) Validate() error {
	if !contains(ValidSources, c.Source) {
		return fmt.Errorf("invalid source %q, must be one of %v", c.Source, ValidSources)
	}
	if !contains(ValidCadences, c.Kindle.RefreshFrequency) {
		return fmt.Errorf("invalid refresh frequency %q, must be one of %v",
			c.Kindle.RefreshFrequency, ValidCadences)
	}
	if c.Dimension.Width <= 0 || c.Dimension.Height <= 0 {
		return fmt.Errorf("dimensions must be positive, got %dx%d",
			c.Dimension.Width, c.Dimension.Height)
	}
	for theme, set := range c.Colours {
		for field, value := range map[string]string{
			"background_color":  set.Background,
			"quote_text_color":  set.QuoteText,
			"author_text_color": set.AuthorText,
			"title_text_color":  set.TitleText,
		} {
			if !hexColourRegex.MatchString(value) {
				return fmt.Errorf("invalid hex color for %s.%s: %q", theme, field, value)
			}
		}
	}
	return nil
}

// ActiveColours returns the palette selected by dark_mode.
func (c *Config) ActiveColours() ColourSet {
	if c.DarkMode {
		return c.Colours["dark"]
	}
	return c.Colours["light"]
}

// CachePath is the location of the Kindle quotebook cache file.
func (c *Config) CachePath() string {
	return filepath.Join(c.CacheDir, "kindle_quotebook.json")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
