package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"gozai/cmd/gozai/app"
	"gozai/internal/catalog"
	"gozai/internal/config"
	"gozai/internal/logging"
)

const version = "0.1.0"

var (
	configPath   string
	fixturesPath string
	verbose      bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "gozai",
	Short: "GOZ.AI - circular economy triage for damaged products",
	Long: `GOZ.AI scans a photo of a damaged product, runs a simulated damage
assessment, and walks you through the triage decision: repair it locally,
sell it for parts, or recycle it at a certified point. Every assessment
produces a digital product passport exportable as PDF or JSON.

Run without arguments to start the interactive interface.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Optional .env for GOZAI_* overrides.
		_ = godotenv.Load()

		// The interactive mode owns the terminal; no zap logger there.
		if cmd.Use == "gozai" && cmd.CalledAs() == "gozai" {
			return nil
		}

		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive()
	},
}

var fixturesCmd = &cobra.Command{
	Use:   "fixtures",
	Short: "Validate the fixture catalogue and print a summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		catalogue, err := catalog.Load(cfg.Fixtures.Path)
		if err != nil {
			return fmt.Errorf("loading fixtures: %w", err)
		}
		logger.Info("fixture catalogue loaded",
			zap.String("path", cfg.Fixtures.Path),
			zap.Int("products", len(catalogue.Products)),
			zap.Int("repair_shops", len(catalogue.RepairShops)),
			zap.Int("buyers", len(catalogue.Buyers)),
			zap.Int("recyclers", len(catalogue.Recyclers)),
		)
		for _, cat := range catalog.Categories {
			logger.Info("category coverage",
				zap.String("category", string(cat)),
				zap.Int("shops", len(catalogue.ShopsFor(cat))),
				zap.Int("buyers", len(catalogue.BuyersFor(cat))),
				zap.Int("recyclers", len(catalogue.RecyclersFor(cat))),
			)
		}
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Write the default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = config.DefaultConfigPath()
		}
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists at %s", path)
		}
		cfg := config.DefaultConfig()
		if err := cfg.Save(path); err != nil {
			return err
		}
		logger.Info("default config written", zap.String("path", path))
		return nil
	},
}

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if fixturesPath != "" {
		cfg.Fixtures.Path = fixturesPath
	}
	return cfg, nil
}

func runInteractive() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}
	if err := logging.Initialize(wd); err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	defer logging.CloseAll()

	logging.Boot("gozai %s starting (fixtures=%s)", version, cfg.Fixtures.Path)

	catalogue, err := catalog.Load(cfg.Fixtures.Path)
	if err != nil {
		return fmt.Errorf("loading fixtures: %w", err)
	}

	return app.Run(cfg, catalogue)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default .gozai/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&fixturesPath, "fixtures", "", "fixture catalogue file (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging for subcommands")

	rootCmd.AddCommand(fixturesCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, os.Kill),
	); err != nil {
		os.Exit(1)
	}
}
