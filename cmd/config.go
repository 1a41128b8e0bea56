package cmd

import (
	"fmt"
	"strconv"
	"strings"

	cfgpkg "github.com/KaramelBytes/catalogscope/internal/config"
	"github.com/KaramelBytes/catalogscope/internal/logging"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set catalogscope configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		c, err := currentConfig()
		if err != nil {
			return err
		}
		if c.DataPath != "" {
			fmt.Fprintf(out, "data_path: %s\n", c.DataPath)
		}
		fmt.Fprintf(out, "top_countries: %d\n", c.TopCountries)
		fmt.Fprintf(out, "top_directors: %d\n", c.TopDirectors)
		fmt.Fprintf(out, "top_genres: %d\n", c.TopGenres)
		fmt.Fprintf(out, "top_durations: %d\n", c.TopDurations)
		fmt.Fprintf(out, "layout_scale: %.3f\n", c.LayoutScale)
		fmt.Fprintf(out, "layout_swaps: %s\n", strings.Join(c.LayoutSwaps, ", "))
		fmt.Fprintf(out, "listen_addr: %s\n", c.ListenAddr)
		fmt.Fprintf(out, "cache_max_entries: %d\n", c.CacheMaxEntries)
		fmt.Fprintf(out, "rate_limit_per_minute: %d\n", c.RateLimitPerMinute)
		fmt.Fprintf(out, "trust_proxy: %t\n", c.TrustProxy)
		fmt.Fprintf(out, "log_level: %s\n", c.LogLevel)
		fmt.Fprintf(out, "log_format: %s\n", c.LogFormat)
		fmt.Fprintf(out, "output_format: %s\n", c.OutputFormat)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		c, err := currentConfig()
		if err != nil {
			return err
		}
		switch key {
		case "data_path":
			c.DataPath = val
		case "top_countries", "top_directors", "top_genres", "top_durations":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid positive int for %s: %v", key, val)
			}
			switch key {
			case "top_countries":
				c.TopCountries = i
			case "top_directors":
				c.TopDirectors = i
			case "top_genres":
				c.TopGenres = i
			default:
				c.TopDurations = i
			}
		case "layout_scale":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f <= 0 {
				return fmt.Errorf("invalid positive float for layout_scale: %v", val)
			}
			c.LayoutScale = f
		case "layout_swaps":
			prev := c.LayoutSwaps
			c.LayoutSwaps = nil
			for _, s := range strings.Split(val, ",") {
				if s = strings.TrimSpace(s); s != "" {
					c.LayoutSwaps = append(c.LayoutSwaps, s)
				}
			}
			if _, err := c.Swaps(); err != nil {
				c.LayoutSwaps = prev
				return err
			}
		case "listen_addr":
			c.ListenAddr = val
		case "cache_max_entries":
			i, err := strconv.ParseInt(val, 10, 64)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for cache_max_entries: %v", val)
			}
			c.CacheMaxEntries = i
		case "rate_limit_per_minute":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for rate_limit_per_minute: %v", val)
			}
			c.RateLimitPerMinute = i
		case "trust_proxy":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for trust_proxy: %v", val)
			}
			c.TrustProxy = b
		case "log_level":
			switch strings.ToLower(val) {
			case "trace", "debug", "info", "warn", "warning", "error", "disabled":
				c.LogLevel = strings.ToLower(val)
			default:
				return fmt.Errorf("invalid log_level: %s (use debug|info|warn|error|disabled)", val)
			}
		case "log_format":
			switch strings.ToLower(val) {
			case "console", "json":
				c.LogFormat = strings.ToLower(val)
			default:
				return fmt.Errorf("invalid log_format: %s (use console or json)", val)
			}
		case "output_format":
			f := normalizeFormat(val)
			if f != "markdown" && f != "json" && f != "yaml" {
				return fmt.Errorf("invalid output_format: %s (use markdown|json|yaml)", val)
			}
			c.OutputFormat = f
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		logging.Debug().Str("key", key).Msg("config saved")
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
