// Package main implements flightctl, a terminal client for searching and
// booking flights against the airbooking backend.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/airbooking-client/config"
	"github.com/Domenick1991/airbooking-client/internal/bootstrap"
	"github.com/Domenick1991/airbooking-client/internal/logging"
	"github.com/Domenick1991/airbooking-client/internal/service/booking"
	"github.com/Domenick1991/airbooking-client/internal/service/confirmation"
	"github.com/Domenick1991/airbooking-client/internal/service/flights"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	outputJSON bool
	verbose    bool

	version = "dev"
)

// app holds the services built once per invocation.
type app struct {
	flights    flights.FlightUseCase
	bookings   booking.BookingUseCase
	reconciler *confirmation.Reconciler
	logger     *zap.Logger
	close      func()
}

var current *app

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flightctl",
	Short: "Search and book flights from the terminal",
	Long: `flightctl talks to the airbooking backend. The signed-in session is kept
in the configured session store, so later commands reuse it.

Examples:
  flightctl locations
  flightctl search --from JFK --to LAX --depart 2026-11-02
  flightctl book --file booking.yaml`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if current != nil {
			current.close()
		}
	},
}

func init() {
	defaultConfig := os.Getenv("CONFIG_PATH")
	if defaultConfig == "" {
		defaultConfig = "config.yaml"
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfig, "path to config file")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "print results as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log requests to stderr")
}

func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	logCfg := config.LogConfig{Level: "warn", Format: "console"}
	if verbose {
		logCfg.Level = "debug"
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		return err
	}
	current, err = newApp(cmd.Context(), cfg, logger)
	return err
}

func newApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*app, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	store, closeStore, err := bootstrap.OpenSessionStore(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	client := bootstrap.NewAPIClient(cfg, store, logger)
	return &app{
		flights:    flights.NewFlightService(client, nil, logger),
		bookings:   booking.NewBookingService(client, store, nil, "", booking.WithLogger(logger)),
		reconciler: confirmation.NewReconciler(client, logger),
		logger:     logger,
		close: func() {
			closeStore()
			_ = logger.Sync()
		},
	}, nil
}
