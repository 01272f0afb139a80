package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Source:    "random",
		Dimension: Dimension{Width: 1920, Height: 1080},
		DarkMode:  true,
		Colours: map[string]ColourSet{
			"dark": {
				Background: "#1E1E2E",
				QuoteText:  "#CBA6F7",
				AuthorText: "#A6ADC8",
				TitleText:  "#CDD6F4",
			},
			"light": {
				Background: "#EFF1F5",
				QuoteText:  "#8839EF",
				AuthorText: "#6C6F85",
				TitleText:  "#4C4F69",
			},
		},
		Kindle: KindleSettings{RefreshFrequency: "monthly"},
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidateRejectsUnknownSource(t *testing.T) {
	cfg := validConfig()
	cfg.Source = "carrier-pigeon"
	require.Error(t, cfg.Validate())
}

func TestValidateRejectsUnknownCadence(t *testing.T) {
	cfg := validConfig()
	cfg.Kindle.RefreshFrequency = "hourly"
	require.Error(t, cfg.Validate())
}

func TestValidateAcceptsEveryCadence(t *testing.T) {
	cfg := validConfig()
	for _, cadence := range ValidCadences {
		cfg.Kindle.RefreshFrequency = cadence
		require.NoError(t, cfg.Validate(), cadence)
	}
}

func TestValidateRejectsBadDimensions(t *testing.T) {
	for _, dim := range []Dimension{{0, 1080}, {1920, 0}, {-1, -1}} {
		cfg := validConfig()
		cfg.Dimension = dim
		require.Error(t, cfg.Validate(), "%+v", dim)
	}
}

func TestValidateRejectsBadHexColours(t *testing.T) {
	for _, colour := range []string{"FFFFFF", "#GGGGGG", "#12345", "red"} {
		cfg := validConfig()
		set := cfg.Colours["dark"]
		set.Background = colour
		cfg.Colours["dark"] = set
		require.Error(t, cfg.Validate(), colour)
	}
}

func TestValidateAcceptsShortHex(t *testing.T) {
	cfg := validConfig()
	set := cfg.Colours["dark"]
	set.Background = "#ABC"
	cfg.Colours["dark"] = set
	require.NoError(t, cfg.Validate())
}

func TestActiveColours(t *testing.T) {
	cfg := validConfig()
	require.Equal(t, "#1E1E2E", cfg.ActiveColours().Background)
	cfg.DarkMode = false
	require.Equal(t, "#EFF1F5", cfg.ActiveColours().Background)
}

func TestResolvePathsExpandsConfigDirectory(t *testing.T) {
	cfg := validConfig()
	cfg.ConfigDir = "/home/me/.config/quotescape"
	cfg.Kindle.SecretsPath = "config_directory"
	cfg.Custom.QuotebookPath = "/explicit/path.json"
	cfg.resolvePaths()

	require.Equal(t,
		filepath.Join("/home/me/.config/quotescape", "kindle_secrets.json"),
		cfg.Kindle.SecretsPath)
	require.Equal(t, "/explicit/path.json", cfg.Custom.QuotebookPath)
}

func TestCachePath(t *testing.T) {
	cfg := validConfig()
	cfg.CacheDir = "/tmp/cache/quotescape"
	require.Equal(t,
		filepath.Join("/tmp/cache/quotescape", "kindle_quotebook.json"),
		cfg.CachePath())
}
