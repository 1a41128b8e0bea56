package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/catalogscope/internal/analysis"
	"github.com/KaramelBytes/catalogscope/internal/catalog"
	cfgpkg "github.com/KaramelBytes/catalogscope/internal/config"
	"github.com/KaramelBytes/catalogscope/internal/logging"
	"github.com/KaramelBytes/catalogscope/internal/utils"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// filterFlags are the selection flags shared by analyze and analyze-batch.
type filterFlags struct {
	yearMin   int
	yearMax   int
	types     []string
	countries []string
}

func (ff *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&ff.yearMin, "year-min", 0, "earliest release year (0 = no lower bound)")
	cmd.Flags().IntVar(&ff.yearMax, "year-max", 0, "latest release year (0 = no upper bound)")
	cmd.Flags().StringSliceVar(&ff.types, "type", nil, "content type to keep: Movie | 'TV Show' (repeatable)")
	cmd.Flags().StringSliceVar(&ff.countries, "country", nil, "keep titles whose country text contains this name (repeatable)")
}

func (ff *filterFlags) filter() catalog.Filter {
	return catalog.Filter{
		YearMin:   ff.yearMin,
		YearMax:   ff.yearMax,
		Types:     trimAll(ff.types),
		Countries: trimAll(ff.countries),
	}
}

func trimAll(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// analysisOptions maps the configuration onto the dashboard options.
func analysisOptions(c *cfgpkg.Global) (analysis.Options, error) {
	opt := analysis.DefaultOptions()
	if c == nil {
		return opt, nil
	}
	if c.TopCountries > 0 {
		opt.TopCountries = c.TopCountries
	}
	if c.TopDirectors > 0 {
		opt.TopDirectors = c.TopDirectors
	}
	if c.TopGenres > 0 {
		opt.TopGenres = c.TopGenres
	}
	if c.TopDurations > 0 {
		opt.TopDurations = c.TopDurations
	}
	if c.LayoutScale > 0 {
		opt.Layout.Scale = c.LayoutScale
	}
	swaps, err := c.Swaps()
	if err != nil {
		return opt, err
	}
	opt.Layout.Swaps = swaps
	return opt, nil
}

// loadCatalog reads a catalog file and logs what the loader had to skip.
func loadCatalog(path, sheet string) (*catalog.Table, *catalog.LoadReport, error) {
	var (
		t   *catalog.Table
		rep *catalog.LoadReport
		err error
	)
	if sheet != "" && strings.EqualFold(filepath.Ext(path), ".xlsx") {
		t, rep, err = catalog.LoadXLSX(path, sheet)
	} else {
		t, rep, err = catalog.Load(path)
	}
	if err != nil {
		return nil, nil, err
	}
	for _, w := range rep.Warnings {
		logging.Warn().Str("file", rep.Name).Msg(w)
	}
	logging.Info().Str("file", rep.Name).Int("rows", rep.Rows).Int("loaded", rep.Loaded).Int("missing_year", rep.MissingYear).Msg("catalog loaded")
	return t, rep, nil
}

// renderDashboard encodes d as markdown, json or yaml.
func renderDashboard(d *analysis.Dashboard, format string) ([]byte, error) {
	switch normalizeFormat(format) {
	case "markdown":
		return []byte(d.Markdown()), nil
	case "json":
		return utils.PrettyJSON(d)
	case "yaml":
		b, err := yaml.Marshal(d)
		if err != nil {
			return nil, fmt.Errorf("marshal yaml: %w", err)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unsupported --format: %s (use markdown|json|yaml)", format)
	}
}

func normalizeFormat(format string) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "md", "markdown":
		return "markdown"
	case "json":
		return "json"
	case "yaml", "yml":
		return "yaml"
	default:
		return format
	}
}

// formatExt is the summary file extension for a format.
func formatExt(format string) string {
	switch normalizeFormat(format) {
	case "json":
		return ".summary.json"
	case "yaml":
		return ".summary.yaml"
	default:
		return ".summary.md"
	}
}

// outputFormat picks the flag value, then the configured default.
func outputFormat(flag string) string {
	if flag != "" {
		return flag
	}
	if cfg != nil && cfg.OutputFormat != "" {
		return cfg.OutputFormat
	}
	return "markdown"
}
