// MarketMind: fundamental, valuation, sentiment and momentum analysis for
// NSE-listed stocks.
//
// Main CLI entrypoint using the cobra command framework.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/seenimoa/marketmind/api"
	"github.com/seenimoa/marketmind/internal/analysis/recommend"
	"github.com/seenimoa/marketmind/internal/analyzer"
	"github.com/seenimoa/marketmind/internal/config"
	"github.com/seenimoa/marketmind/internal/datasource"
	"github.com/seenimoa/marketmind/internal/logger"
	"github.com/seenimoa/marketmind/internal/observability"
	"github.com/seenimoa/marketmind/internal/report"
	"github.com/seenimoa/marketmind/pkg/models"
	"github.com/seenimoa/marketmind/pkg/utils"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config
var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "marketmind",
	Short: "MarketMind: NSE stock analysis from fundamentals, valuation and news",
	Long: `MarketMind scores NSE-listed stocks on six fundamental metrics, estimates
intrinsic value from discounted earnings, reads recent news sentiment and
short-term price/volume behaviour, and combines them into a recommendation.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if level, _ := cmd.Flags().GetString("log-level"); level != "" {
			cfg.Logging.Level = level
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		return logger.Setup(cfg.Logging)
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(alertsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
}

// newAnalyzer wires the providers, metrics and analyzer from cfg.
func newAnalyzer(reg prometheus.Registerer) *analyzer.Analyzer {
	metrics := observability.NewMetrics(reg)
	market := datasource.NewYFinance(cfg.Provider, metrics)
	news := datasource.NewNews(cfg.News, cfg.Provider, metrics)

	return analyzer.New(market, news, analyzer.Options{
		PsychologyWindowDays: cfg.Analysis.PsychologyWindowDays,
		AlertWindowDays:      cfg.Analysis.AlertWindowDays,
		Metrics:              metrics,
	})
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "MarketMind %s\n", version)
		fmt.Fprintf(out, "  commit:  %s\n", commit)
		fmt.Fprintf(out, "  built:   %s\n", date)
	},
}

// --- Analyze Command ---

var analyzeCmd = &cobra.Command{
	Use:   "analyze [ticker]",
	Short: "Run a full analysis on a stock",
	Long: `Run a full analysis on a stock. Passing --risk or --horizon adds
investor-profile advice to the report.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var profile *models.InvestorProfile
		if cmd.Flags().Changed("risk") || cmd.Flags().Changed("horizon") {
			risk, _ := cmd.Flags().GetString("risk")
			horizon, _ := cmd.Flags().GetString("horizon")
			p, err := recommend.ParseProfile(risk, horizon)
			if err != nil {
				return err
			}
			profile = &p
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a := newAnalyzer(prometheus.NewRegistry())
		r, err := a.Analyze(ctx, args[0], profile)
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(r)
		}

		text, err := report.Text(r, time.Now())
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), text)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().String("risk", "", "investor risk appetite (Low, Medium, High)")
	analyzeCmd.Flags().String("horizon", "", `investment horizon ("1 Year" or "3+ Years")`)
	analyzeCmd.Flags().Bool("json", false, "print the report as JSON")
}

// --- Alerts Command ---

var alertsCmd = &cobra.Command{
	Use:   "alerts [ticker]",
	Short: "Show 7-day price and volume alerts for a stock",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a := newAnalyzer(prometheus.NewRegistry())
		alerts, err := a.Alerts(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), report.AlertsText(utils.NormalizeTicker(args[0]), alerts))
		return nil
	},
}

// --- Serve Command (API Server) ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		srv := api.NewServer(cfg.API, newAnalyzer(reg), api.Options{
			Version:  version,
			Gatherer: reg,
		})

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(cmd.OutOrStdout(), "🌐 Starting MarketMind API server on %s\n", cfg.API.Addr())
		return srv.ListenAndServe(ctx)
	},
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show market session and effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		now := utils.NowIST()

		fmt.Fprintln(out, "═══════════════════════════════════════")
		fmt.Fprintln(out, "  MarketMind: System Status")
		fmt.Fprintln(out, "═══════════════════════════════════════")
		fmt.Fprintf(out, "  Version:       %s (%s)\n", version, commit)
		fmt.Fprintf(out, "  Market Status: %s\n", utils.SessionAt(now))
		if name, ok := utils.HolidayName(now); ok {
			fmt.Fprintf(out, "  Holiday:       %s\n", name)
		}
		fmt.Fprintf(out, "  Time (IST):    %s\n", utils.FormatDateTimeIST(now))
		fmt.Fprintln(out)

		fmt.Fprintln(out, "  Configuration:")
		for _, s := range config.Describe(cfg) {
			fmt.Fprintf(out, "    %-32s %s (%s)\n", s.Key+":", s.Value, s.Source)
		}

		fmt.Fprintln(out, "═══════════════════════════════════════")
		return nil
	},
}
