package cmd

import (
	"fmt"

	"github.com/KaramelBytes/catalogscope/internal/sqlstore"
	"github.com/KaramelBytes/catalogscope/internal/utils"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	qFormat    string
	qSheetName string
)

var queryCmd = &cobra.Command{
	Use:   "query <catalog> [sql]",
	Short: "Run a read-only SQL query against the catalog",
	Long: `Load the catalog into an in-memory SQLite table named "titles" and run one
read-only statement. Without a statement the sample query is used:

  ` + sqlstore.DefaultQuery,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _, err := loadCatalog(args[0], qSheetName)
		if err != nil {
			return err
		}
		query := ""
		if len(args) == 2 {
			query = args[1]
		}

		store, err := sqlstore.Open(cmd.Context(), all)
		if err != nil {
			return err
		}
		defer store.Close()

		res, err := store.Query(cmd.Context(), query)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		switch normalizeFormat(qFormat) {
		case "table", "markdown":
			return res.WriteTable(out)
		case "json":
			b, err := utils.PrettyJSON(res)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(out, string(b))
			return err
		case "yaml":
			b, err := yaml.Marshal(res)
			if err != nil {
				return fmt.Errorf("marshal yaml: %w", err)
			}
			_, err = out.Write(b)
			return err
		default:
			return fmt.Errorf("unsupported --format: %s (use table|json|yaml)", qFormat)
		}
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().StringVarP(&qFormat, "format", "f", "table", "output format: table|json|yaml")
	queryCmd.Flags().StringVar(&qSheetName, "sheet-name", "", "XLSX: sheet name to load (default first sheet)")
}
