package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/UnknownOlympus/distancer/internal/config"
	"github.com/UnknownOlympus/distancer/internal/geo"
	"github.com/UnknownOlympus/distancer/internal/geocoding"
	"github.com/UnknownOlympus/distancer/internal/metrics"
	"github.com/UnknownOlympus/distancer/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// main is the entry point of the application.
func main() {
	if err := newRootCmd(newDistanceService).Execute(); err != nil {
		os.Exit(1)
	}
}

// serviceBuilder assembles the distance service for a command from the loaded configuration.
type serviceBuilder func(cfg *config.Config, logger *slog.Logger, reg prometheus.Registerer) (*service.DistanceService, error)

func newRootCmd(build serviceBuilder) *cobra.Command {
	root := &cobra.Command{
		Use:   "distancer",
		Short: "Distance from the Moscow Ring Road (MKAD) to an address",
		Long: `
distancer resolves an address with a geocoding provider and reports whether it lies
within the Moscow Ring Road or, if not, how far it is from it in kilometers.
`,
		SilenceUsage: true,
	}

	root.AddCommand(newServeCmd(build), newEvaluateCmd(build))

	return root
}

// newDistanceService wires the configured geocoding provider, the MKAD boundary and metrics into a service.
func newDistanceService(
	cfg *config.Config,
	logger *slog.Logger,
	reg prometheus.Registerer,
) (*service.DistanceService, error) {
	provider, err := geocoding.NewProvider(geocoding.ProviderConfig{
		Type:      geocoding.ProviderType(cfg.ProviderType),
		APIKey:    cfg.APIKey,
		Lang:      cfg.Lang,
		Timeout:   cfg.Timeout,
		RateLimit: cfg.RateLimit,
		Logger:    logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create geocoding provider: %w", err)
	}

	return service.NewDistanceService(
		logger,
		provider,
		cfg.ProviderType, // Provider name for metrics
		geo.MKAD(),
		cfg.ReferenceAddress,
		metrics.NewMetrics(reg),
	), nil
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	dropTime := func(_ []string, a slog.Attr) slog.Attr {
		if a.Key == slog.TimeKey {
			return slog.Attr{}
		}
		return a
	}

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:       slog.LevelWarn,
				ReplaceAttr: dropTime,
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:       slog.LevelError,
				ReplaceAttr: dropTime,
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}
