package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/KaramelBytes/catalogscope/internal/analysis"
	cfgpkg "github.com/KaramelBytes/catalogscope/internal/config"
	"github.com/KaramelBytes/catalogscope/internal/server"
	"github.com/spf13/cobra"
)

var (
	srvAddr        string
	srvSheetName   string
	srvCacheSize   int64
	srvRateLimit   int
	srvCORSOrigins []string
	srvTrustProxy  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve [catalog]",
	Short: "Serve the catalog views as a JSON API",
	Long: `Load the catalog once and serve its views over HTTP:

  GET /healthz
  GET /api/v1/filters
  GET /api/v1/views/{overview|time|top|duration|projection|cooccurrence|dashboard}
      ?year_min=&year_max=&type=&country=`,
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

		all, _, err := loadCatalog(path, srvSheetName)
		if err != nil {
			return err
		}

		sc, addr := serverConfig(cmd, c, opt)
		s, err := server.New(all, sc)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Serving %s (%d titles) on %s\n", all.Name(), all.Len(), addr)
		return server.Run(ctx, addr, s.Handler())
	},
}

// serverConfig merges the saved settings with the flags given on the command line.
func serverConfig(cmd *cobra.Command, c *cfgpkg.Global, opt analysis.Options) (server.Config, string) {
	sc := server.DefaultConfig()
	sc.Options = opt
	sc.CacheMaxEntries = c.CacheMaxEntries
	sc.RateLimitPerMinute = c.RateLimitPerMinute
	sc.TrustProxy = c.TrustProxy
	if cmd.Flags().Changed("cache-entries") {
		sc.CacheMaxEntries = srvCacheSize
	}
	if cmd.Flags().Changed("rate-limit") {
		sc.RateLimitPerMinute = srvRateLimit
	}
	if cmd.Flags().Changed("trust-proxy") {
		sc.TrustProxy = srvTrustProxy
	}
	if len(srvCORSOrigins) > 0 {
		sc.CORSAllowedOrigins = srvCORSOrigins
	}
	addr := c.ListenAddr
	if srvAddr != "" {
		addr = srvAddr
	}
	return sc, addr
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&srvAddr, "addr", "", "listen address (default from config listen_addr)")
	serveCmd.Flags().StringVar(&srvSheetName, "sheet-name", "", "XLSX: sheet name to load (default first sheet)")
	serveCmd.Flags().Int64Var(&srvCacheSize, "cache-entries", 0, "maximum cached responses, 0 disables the cache (overrides config)")
	serveCmd.Flags().IntVar(&srvRateLimit, "rate-limit", 0, "requests per minute per client IP, 0 disables limiting (overrides config)")
	serveCmd.Flags().BoolVar(&srvTrustProxy, "trust-proxy", false, "take client IPs from X-Forwarded-For/X-Real-IP (only behind a trusted proxy)")
	serveCmd.Flags().StringSliceVar(&srvCORSOrigins, "cors-origin", nil, "allowed CORS origin (repeatable, default *)")
}
