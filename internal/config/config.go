package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every key when read from the environment,
// e.g. CATALOGSCOPE_LISTEN_ADDR.
const EnvPrefix = "CATALOGSCOPE"

// SwapSeparator joins the two genres of a layout_swaps entry.
const SwapSeparator = "|"

// Global configuration structure.
type Global struct {
	DataPath string `mapstructure:"data_path" yaml:"data_path"`

	// Ranking sizes
	TopCountries int `mapstructure:"top_countries" yaml:"top_countries"`
	TopDirectors int `mapstructure:"top_directors" yaml:"top_directors"`
	TopGenres    int `mapstructure:"top_genres" yaml:"top_genres"`
	TopDurations int `mapstructure:"top_durations" yaml:"top_durations"`

	// Co-occurrence layout
	LayoutScale float64  `mapstructure:"layout_scale" yaml:"layout_scale"`
	LayoutSwaps []string `mapstructure:"layout_swaps" yaml:"layout_swaps"`

	// HTTP API
	ListenAddr         string `mapstructure:"listen_addr" yaml:"listen_addr"`
	CacheMaxEntries    int64  `mapstructure:"cache_max_entries" yaml:"cache_max_entries"`
	RateLimitPerMinute int    `mapstructure:"rate_limit_per_minute" yaml:"rate_limit_per_minute"`
	// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP.
	// Enable it only behind a reverse proxy that overwrites those headers.
	TrustProxy bool `mapstructure:"trust_proxy" yaml:"trust_proxy"`

	LogLevel     string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat    string `mapstructure:"log_format" yaml:"log_format"`
	OutputFormat string `mapstructure:"output_format" yaml:"output_format"`
}

// DefaultSwaps are the layout swaps applied when none are configured.
var DefaultSwaps = []string{
	"Drama|Anime Series",
	"Independent Movies|LGBTQ Movies",
	"Anime Series|International Movies",
}

// Swaps parses LayoutSwaps into genre pairs.
func (c *Global) Swaps() ([][2]string, error) {
	out := make([][2]string, 0, len(c.LayoutSwaps))
	for _, s := range c.LayoutSwaps {
		a, b, ok := strings.Cut(s, SwapSeparator)
		a, b = strings.TrimSpace(a), strings.TrimSpace(b)
		if !ok || a == "" || b == "" {
			return nil, fmt.Errorf("invalid layout swap %q (want \"Genre A%sGenre B\")", s, SwapSeparator)
		}
		out = append(out, [2]string{a, b})
	}
	return out, nil
}

// Dir returns ~/.catalogscope.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".catalogscope"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.catalogscope/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. A .env file in the working
// directory is read first and never overrides variables already set.
func Load(cfgFile string) (*Global, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault("data_path", "")
	v.SetDefault("top_countries", 10)
	v.SetDefault("top_directors", 10)
	v.SetDefault("top_genres", 10)
	v.SetDefault("top_durations", 15)
	v.SetDefault("layout_scale", 1.2)
	v.SetDefault("layout_swaps", DefaultSwaps)
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("cache_max_entries", 1024)
	v.SetDefault("rate_limit_per_minute", 120)
	v.SetDefault("trust_proxy", false)
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_format", "console")
	v.SetDefault("output_format", "markdown")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// an explicit path that does not exist yet is fine too: config set creates it
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if _, err := c.Swaps(); err != nil {
		return nil, err
	}
	return &c, nil
}
