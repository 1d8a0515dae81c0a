// Package main provides the CLI entrypoint for the target distribution service.
// It wires subcommands (distribute, serve, jwt), loads configuration, and initializes logging.
package main

import (
	"context"
	"log"
	"os"
	"targets/internal/config"
	"targets/internal/distributor"
	"targets/pkg/logger"
	"targets/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// getDistributor creates the distributor service with metrics exported to the
// given Prometheus registerer.
func getDistributor(ctx context.Context, cfg *config.Config, reg prometheus.Registerer) distributor.Distributor {
	opts, err := distributor.NewOptions(cfg)
	if err != nil {
		logger.Fatal(ctx, "could not create distributor options", zap.Error(err))
	}

	mp, err := metrics.NewMeterProvider(reg)
	if err != nil {
		logger.Fatal(ctx, "could not create meter provider", zap.Error(err))
	}
	rec, err := metrics.NewRecorder(mp.Meter(metrics.MeterName))
	if err != nil {
		logger.Fatal(ctx, "could not create metrics recorder", zap.Error(err))
	}

	return distributor.New(opts, rec)
}

// main sets up the root Cobra command, loads configuration and logging before
// any subcommand runs, and executes the CLI.
func main() {
	cfg := &config.Config{}
	ctx := context.Background()

	rootCmd := &cobra.Command{
		Use:          "targets",
		Short:        "Distributes annual targets across months by working days",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")

			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			*cfg = *loaded

			return logger.Setup(cfg.Environment, cfg.LogLevel)
		},
	}
	rootCmd.PersistentFlags().StringP("config", "c", "config.yml", "Config File Path")

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			_ = logger.Get(ctx).Sync()

			panic(p)
		}
	}()

	rootCmd.AddCommand(
		distributeCommand(cfg),
		serveCommand(cfg),
		JWTCommand(cfg),
	)

	err := rootCmd.Execute()
	_ = logger.Get(ctx).Sync()
	if err != nil {
		log.Println(err)
		os.Exit(1) //nolint: gocritic
	}
}
