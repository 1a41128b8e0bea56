package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/KaramelBytes/catalogscope/internal/config"
	"github.com/KaramelBytes/catalogscope/internal/logging"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	debug    bool
	logLevel string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "catalogscope",
	Short: "catalogscope: explore a media catalog through filtered distributions, rankings and genre maps",
	Long: `catalogscope loads a catalog of movies and TV shows (CSV, TSV or XLSX) and computes
type and rating distributions, release and date-added time series, top countries,
directors and genres, director duration rankings, a 2-D genre projection and a
genre co-occurrence graph. Results are printed as Markdown, JSON or YAML, or served
over HTTP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	// Initialize configuration before executing commands
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.catalogscope/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug|info|warn|error (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: commands fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = nil
	}
	cfg = c

	lc := logging.Config{Level: "warn", Format: "console", Output: os.Stderr}
	if cfg != nil {
		lc.Level = cfg.LogLevel
		lc.Format = cfg.LogFormat
	}
	if logLevel != "" {
		lc.Level = logLevel
	}
	if debug {
		lc.Level = "debug"
	}
	logging.Init(lc)
}

// currentConfig returns the loaded configuration, loading defaults when the
// command runs without OnInitialize (tests calling RunE directly).
func currentConfig() (*cfgpkg.Global, error) {
	if cfg != nil {
		return cfg, nil
	}
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	cfg = c
	return cfg, nil
}
