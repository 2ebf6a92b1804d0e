package main

import (
	"fmt"
	"os"

	"SwingBasket/internal/di"
	"SwingBasket/pkg/config"
	applogger "SwingBasket/pkg/logger"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "swingbasket",
	Short: "Swing trade basket generator",
	Long: `Validates swing trade ideas against the desk's liquidity and risk rules
and turns them into brokerage basket files for every eligible client.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config/config.yaml", "config file path")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// bootstrap loads the configuration and builds the logger shared by all commands.
func bootstrap() (*config.Config, *applogger.Logger, error) {
	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("config load failed: %w", err)
	}

	l, err := di.ProvideLogger(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("logger: %w", err)
	}
	return cfg, l, nil
}
