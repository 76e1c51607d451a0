package geocoding

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/distancer/internal/models"
	"googlemaps.github.io/maps"
)

// GoogleProvider resolves addresses with the Google Maps Geocoding API.
type GoogleProvider struct {
	client GoogleAPIClient // client is the Google Maps API client
	lang   string          // lang is the preferred response language
	log    *slog.Logger    // log is the logger for logging operations
}

// GoogleAPIClient is the subset of *maps.Client used by GoogleProvider.
type GoogleAPIClient interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// NewGoogleProvider wraps an already configured Google Maps client.
func NewGoogleProvider(client GoogleAPIClient, lang string, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, lang: lang, log: log}
}

// Geocode returns the location of the first result Google reports for the address.
// Google signals "no results" with an empty slice, which is reported as ErrAddressNotFound;
// any error from the client is reported as ErrProviderUnreachable.
func (gp *GoogleProvider) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	address = NormalizeAddress(address)
	gp.log.DebugContext(ctx, "Geocoding using Google Maps", "address", address)

	req := maps.GeocodingRequest{Address: address, Language: gp.lang}
	geocodeResponse, err := gp.client.Geocode(ctx, &req)
	if err != nil {
		err = unreachable(err)
		gp.log.ErrorContext(ctx, "Unable to reach Google Maps API", "address", address, "error", err)
		return nil, err
	}

	if len(geocodeResponse) == 0 {
		return nil, fmt.Errorf("%w %s", ErrAddressNotFound, address)
	}
	location := geocodeResponse[0].Geometry.Location

	return &models.Coordinates{Longitude: location.Lng, Latitude: location.Lat}, nil
}
