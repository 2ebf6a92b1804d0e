package main

import (
	"fmt"

	"SwingBasket/internal/di"
	applogger "SwingBasket/pkg/logger"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the basket HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, l, err := bootstrap()
	if err != nil {
		return err
	}
	l.Info("config loaded",
		applogger.String("env", cfg.Environment),
		applogger.Int("port", cfg.Server.Port),
		applogger.Bool("kafka", cfg.Kafka.Enabled),
	)

	app, cleanup, err := di.InitializeApp(cfg, l)
	if err != nil {
		return fmt.Errorf("app initialization failed: %w", err)
	}
	defer cleanup()

	// Run application (blocks until signal)
	return app.Run()
}
