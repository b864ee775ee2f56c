// Dealer365 is a terminal workspace for a car dealership.
//
// It opens a tabbed workspace over the sales, CRM and service departments,
// with role dashboards, a deal desk and a repair order search. The data is a
// mock dataset held in an in-memory DuckDB database.
//
// Usage:
//
//	dealer365 [command] [flags]
//
// Running without arguments launches the workspace.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/tinytelemetry/dealer365/internal/catalog"
	"github.com/tinytelemetry/dealer365/internal/deal"
	"github.com/tinytelemetry/dealer365/internal/duckdb"
	"github.com/tinytelemetry/dealer365/internal/logging"
	"github.com/tinytelemetry/dealer365/internal/tui"
	"github.com/tinytelemetry/dealer365/internal/version"
	"github.com/tinytelemetry/dealer365/internal/workspace"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configPath string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dealer365",
	Short: "Dealership workspace",
	Long: `A terminal workspace for dealership sales, CRM and service.

Opens the role dashboard in a tabbed workspace. Use the sidebar or the
go-to palette (g) to open views, / to search repair orders and ? for help.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return runTUI(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default is $HOME/.config/dealer365/config.yml)")

	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("dealer365 %s\n", version.Full())
	},
}

// openStore loads the embedded dataset into an in-memory store.
func openStore(ctx context.Context, cfg appConfig, log *zap.Logger) (*catalog.Dataset, *duckdb.Store, error) {
	ds, err := catalog.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading dataset: %w", err)
	}
	store, err := duckdb.Open(ctx, ds,
		duckdb.WithQueryTimeout(cfg.QueryTimeout),
		duckdb.WithLogger(log.Named("duckdb")),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("opening store: %w", err)
	}
	return ds, store, nil
}

func runTUI(ctx context.Context, cfg appConfig) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := logging.Initialize(cfg.LogLevel, cfg.LogFile); err != nil {
		return err
	}
	defer logging.Sync()
	log := logging.Logger()
	log.Info("starting dealer365", zap.String("version", version.Full()), zap.String("config", cfg.ConfigPath))

	rates, err := deal.LoadRates(cfg.RatesFile)
	if err != nil {
		return fmt.Errorf("loading rates: %w", err)
	}

	ds, store, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.Close()

	role, _ := parseRole(cfg.Role)
	nav := workspace.New(
		workspace.WithRole(role),
		workspace.WithSidebar(cfg.Sidebar),
		workspace.WithLogger(log.Named("workspace")),
	)
	model := tui.NewWorkspaceModel(nav, store,
		tui.WithCatalog(ds),
		tui.WithRates(rates),
		tui.WithConsole(store),
		tui.WithLogger(log.Named("tui")),
		tui.WithTypingDelay(cfg.TypingDelay),
		tui.WithReverseScrollWheel(cfg.ReverseScrollWheel),
	)
	app := tui.NewApp(tui.NewWorkspacePage(model))

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		if strings.Contains(err.Error(), "TTY") || strings.Contains(err.Error(), "/dev/tty") {
			return fmt.Errorf("the workspace requires a real terminal")
		}
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
