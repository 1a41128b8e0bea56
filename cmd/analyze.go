package cmd

import (
	"fmt"

	"github.com/KaramelBytes/catalogscope/internal/analysis"
	"github.com/KaramelBytes/catalogscope/internal/utils"
	"github.com/spf13/cobra"
)

var (
	anaOutputPath string
	anaFormat     string
	anaSheetName  string
	anaFilter     filterFlags
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [catalog]",
	Short: "Compute every view of a catalog for one filter",
	Long: `Load a CSV/TSV/XLSX catalog, apply the year, type and country filter, and
print the dashboard. The co-occurrence graph and the rating legend always use the
whole catalog; every other view follows the filter.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := currentConfig()
		if err != nil {
			return err
		}
		path := c.DataPath
		if len(args) == 1 {
			path = args[0]
		}
		if path == "" {
			return fmt.Errorf("no catalog given (pass a file or set data_path)")
		}
		opt, err := analysisOptions(c)
		if err != nil {
			return err
		}
		format := outputFormat(anaFormat)

		all, _, err := loadCatalog(path, anaSheetName)
		if err != nil {
			return err
		}
		d, err := analysis.Build(all, anaFilter.filter(), opt)
		if err != nil {
			return err
		}
		out, err := renderDashboard(d, format)
		if err != nil {
			return err
		}

		if anaOutputPath != "" {
			if err := utils.SafeWriteFile(anaOutputPath, out); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote analysis to %s\n", anaOutputPath)
			return nil
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "write the result to a file instead of stdout")
	analyzeCmd.Flags().StringVarP(&anaFormat, "format", "f", "", "output format: markdown|json|yaml (default from config)")
	analyzeCmd.Flags().StringVar(&anaSheetName, "sheet-name", "", "XLSX: sheet name to load (default first sheet)")
	anaFilter.register(analyzeCmd)
}
