package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/KaramelBytes/catalogscope/internal/analysis"
	"github.com/KaramelBytes/catalogscope/internal/logging"
	"github.com/KaramelBytes/catalogscope/internal/report"
	"github.com/KaramelBytes/catalogscope/internal/utils"
	"github.com/spf13/cobra"
)

var (
	abOutDir    string
	abFormat    string
	abSheetName string
	abQuiet     bool
	abFilter    filterFlags
)

var analyzeBatchCmd = &cobra.Command{
	Use:   "analyze-batch <files...>",
	Short: "Analyze multiple catalogs with one filter, one summary per file",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var files []string
		seen := map[string]struct{}{}
		for _, arg := range args {
			matches, _ := filepath.Glob(arg)
			if len(matches) == 0 {
				// treat as literal path if exists
				if _, err := os.Stat(arg); err == nil {
					matches = []string{arg}
				}
			}
			for _, m := range matches {
				if _, ok := seen[m]; ok {
					continue
				}
				seen[m] = struct{}{}
				files = append(files, m)
			}
		}
		if len(files) == 0 {
			return fmt.Errorf("no input files matched")
		}
		sort.Strings(files)

		c, err := currentConfig()
		if err != nil {
			return err
		}
		opt, err := analysisOptions(c)
		if err != nil {
			return err
		}
		format := outputFormat(abFormat)
		f := abFilter.filter()
		if err := f.Validate(); err != nil {
			return err
		}

		var m *report.Manifest
		if abOutDir != "" {
			if err := utils.EnsureDir(abOutDir); err != nil {
				return fmt.Errorf("create out dir: %w", err)
			}
			if m, err = report.Open(abOutDir); err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		total := len(files)
		for i, path := range files {
			if !abQuiet {
				fmt.Fprintf(out, "[%d/%d] Processing %s...\n", i+1, total, filepath.Base(path))
			}
			all, rep, err := loadCatalog(path, abSheetName)
			if err != nil {
				return err
			}
			d, err := analysis.Build(all, f, opt)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			body, err := renderDashboard(d, format)
			if err != nil {
				return err
			}

			if m == nil {
				if !abQuiet {
					fmt.Fprintln(out, string(body))
				}
				continue
			}
			base := filepath.Base(path)
			base = strings.TrimSuffix(base, filepath.Ext(base))
			outFile := utils.UniquePath(m.Dir(), base, formatExt(format))
			if filepath.Base(outFile) != base+formatExt(format) && !abQuiet {
				fmt.Fprintf(out, "⚠ Detected existing summary, writing to %s to avoid overwrite.\n", filepath.Base(outFile))
			}
			if err := utils.SafeWriteFile(outFile, body); err != nil {
				return fmt.Errorf("write summary: %w", err)
			}
			m.Add(report.Entry{
				DashboardID: d.ID,
				Source:      path,
				Output:      outFile,
				Format:      normalizeFormat(format),
				Filter:      f.Key(),
				Rows:        rep.Loaded,
				MissingYear: rep.MissingYear,
				Matched:     d.Matched,
			})
			// keep the manifest in step with the files on disk
			if err := m.Save(); err != nil {
				return err
			}
			logging.Debug().Str("source", path).Str("output", outFile).Msg("summary written")
			if !abQuiet {
				fmt.Fprintf(out, "✓ Wrote %s\n", filepath.Base(outFile))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeBatchCmd)
	analyzeBatchCmd.Flags().StringVar(&abOutDir, "out-dir", "", "directory for the summaries and manifest.json (default: print to stdout)")
	analyzeBatchCmd.Flags().StringVarP(&abFormat, "format", "f", "", "summary format: markdown|json|yaml (default from config)")
	analyzeBatchCmd.Flags().StringVar(&abSheetName, "sheet-name", "", "XLSX: sheet name to load (default first sheet)")
	analyzeBatchCmd.Flags().BoolVar(&abQuiet, "quiet", false, "suppress progress and non-essential output")
	abFilter.register(analyzeBatchCmd)
}
