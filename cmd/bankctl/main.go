package main

import (
	"log/slog"
	"os"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/spf13/cobra"

	"bankledger/internal/config"
	"bankledger/internal/ledger"
	"bankledger/internal/storage"
	"bankledger/internal/storage/jsonfile"
	"bankledger/internal/storage/memory"
	"bankledger/pkg/metrics"
)

var (
	cfgPath   string
	dataDir   string
	ephemeral bool

	logger *slog.Logger
	bank   *ledger.Ledger
)

var rootCmd = &cobra.Command{
	Use:          "bankctl",
	Short:        "Personal banking ledger",
	Long:         "bankctl manages customers and their savings/checking accounts against a durable on-disk record.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		if dataDir != "" {
			cfg.DataDir = dataDir
		}

		logger = setupLogger(cfg.SlogLevel())

		collector := metrics.NewCollector(logger)
		if cfg.MetricsAddr != "" {
			collector.StartMetricsServer(cfg.MetricsAddr)
		}

		var store storage.Store
		if ephemeral {
			store = memory.New()
		} else {
			store = jsonfile.New(cfg.CustomerPath(), cfg.AccountPath(), logger)
		}

		bank = ledger.New(cmd.Context(), store, logger, collector)
		return nil
	},
}

func setupLogger(level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewJSONHandler(os.Stderr, opts)
	return slog.New(handler)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "bankledger.toml", "path to the config file")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "override the data directory")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "keep all state in memory, never touch disk")
}

func main() {
	cc.Init(&cc.Config{
		RootCmd:  rootCmd,
		Headings: cc.HiCyan + cc.Bold + cc.Underline,
		Commands: cc.HiYellow + cc.Bold,
		Example:  cc.Italic,
		ExecName: cc.Bold,
		Flags:    cc.Bold,
	})
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
