package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/UnknownOlympus/distancer/internal/geo"
	"github.com/UnknownOlympus/distancer/internal/geocoding"
	"github.com/UnknownOlympus/distancer/internal/metrics"
	"github.com/UnknownOlympus/distancer/internal/models"
	"golang.org/x/sync/errgroup"
)

// ErrMissingAddress is returned when no target address is supplied.
var ErrMissingAddress = errors.New("no input address was found")

// Evaluation is the outcome of evaluating one target address against the boundary.
type Evaluation struct {
	Reference  models.Coordinates // Resolved reference point.
	Target     models.Coordinates // Resolved target point.
	Location   geo.Location       // Target position relative to the boundary.
	DistanceKm float64            // Great-circle distance from the reference; zero when within the boundary.
}

// WithinBoundary reports whether the target lies inside or on the border of the boundary.
func (e *Evaluation) WithinBoundary() bool {
	return e.Location.Within()
}

// DistanceService resolves a target address and measures how far it lies from a fixed boundary.
type DistanceService struct {
	log              *slog.Logger       // Logger for logging service activities
	provider         geocoding.Provider // Geocoding provider used for both addresses
	providerName     string             // Name of the provider for metrics labeling
	boundary         *geo.Polygon       // Read-only boundary polygon shared by all evaluations
	referenceAddress string             // Address of the boundary reference point
	metrics          *metrics.Metrics   // Metrics for tracking service performance
}

// NewDistanceService creates a new instance of DistanceService.
// The boundary and the reference address are fixed for the lifetime of the service.
func NewDistanceService(
	log *slog.Logger,
	provider geocoding.Provider,
	providerName string,
	boundary *geo.Polygon,
	referenceAddress string,
	metrics *metrics.Metrics,
) *DistanceService {
	return &DistanceService{
		log:              log,
		provider:         provider,
		providerName:     providerName,
		boundary:         boundary,
		referenceAddress: referenceAddress,
		metrics:          metrics,
	}
}

// Evaluate resolves the reference and target addresses, classifies the target against the boundary
// and, when the target is outside, computes its distance from the reference point.
// The two resolutions run concurrently; the first failure is returned and cancels the other one.
func (ds *DistanceService) Evaluate(ctx context.Context, address string) (*Evaluation, error) {
	ds.metrics.InFlight.Inc()
	defer ds.metrics.InFlight.Dec()

	if strings.TrimSpace(address) == "" {
		ds.log.ErrorContext(ctx, "No input address was found")
		ds.metrics.Evaluations.WithLabelValues("error").Inc()
		return nil, ErrMissingAddress
	}

	var reference, target *models.Coordinates

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		reference, err = ds.resolve(gctx, ds.referenceAddress)
		return err
	})
	group.Go(func() error {
		var err error
		target, err = ds.resolve(gctx, address)
		return err
	})

	if err := group.Wait(); err != nil {
		ds.metrics.Evaluations.WithLabelValues("error").Inc()
		return nil, err
	}

	evaluation := &Evaluation{
		Reference: *reference,
		Target:    *target,
		Location:  ds.boundary.Classify(*target),
	}

	if evaluation.WithinBoundary() {
		ds.log.InfoContext(ctx, "The input address is located within the boundary",
			"address", address, "location", evaluation.Location)
		ds.metrics.Evaluations.WithLabelValues("within").Inc()
		return evaluation, nil
	}

	evaluation.DistanceKm = geo.Distance(evaluation.Reference, evaluation.Target)

	ds.log.InfoContext(ctx, "Distance calculated", "address", address, "distance_km", evaluation.DistanceKm)
	ds.metrics.Evaluations.WithLabelValues("outside").Inc()

	return evaluation, nil
}

// resolve geocodes a single address, recording its latency and the kind of any failure.
func (ds *DistanceService) resolve(ctx context.Context, address string) (*models.Coordinates, error) {
	startTime := time.Now()
	coords, err := ds.provider.Geocode(ctx, address)
	ds.metrics.RequestSeconds.WithLabelValues(ds.providerName).Observe(time.Since(startTime).Seconds())

	if err != nil {
		if ctx.Err() != nil {
			// A sibling lookup already failed or the caller went away; that failure is the one reported.
			ds.log.DebugContext(ctx, "Geocoding abandoned", "address", address, "error", err)
			return nil, err
		}
		ds.log.ErrorContext(ctx, "Failed to geocode", "address", address, "error", err)
		ds.metrics.ProviderErrors.WithLabelValues(errorKind(err)).Inc()
		return nil, err
	}

	return coords, nil
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, geocoding.ErrAddressNotFound):
		return "not_found"
	case errors.Is(err, geocoding.ErrProviderUnreachable):
		return "unreachable"
	case errors.Is(err, geocoding.ErrMalformedResponse):
		return "malformed"
	default:
		return "other"
	}
}
