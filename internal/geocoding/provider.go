package geocoding

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/UnknownOlympus/distancer/internal/models"
	"golang.org/x/text/unicode/norm"
)

// Provider is an interface that defines a method for geocoding an address.
// The Geocode method takes a context and an address string as input,
// and returns the coordinates of the first match and an error if any occurs.
type Provider interface {
	Geocode(ctx context.Context, address string) (*models.Coordinates, error)
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Errors shared by all providers. Provider-specific details are wrapped around them,
// so callers should match with errors.Is.
var (
	// ErrAddressNotFound means the provider was reached but reported no match for the address.
	ErrAddressNotFound = errors.New("unable to find the address")
	// ErrProviderUnreachable means the request failed at the transport level or was rejected by the provider.
	ErrProviderUnreachable = errors.New("unable to reach the geocoding provider")
	// ErrMalformedResponse means the provider answered successfully with a body that could not be interpreted.
	ErrMalformedResponse = errors.New("malformed geocoding provider response")
)

// NormalizeAddress trims surrounding whitespace and converts the address to Unicode NFC,
// so that visually identical addresses produce the same query.
func NormalizeAddress(address string) string {
	return norm.NFC.String(strings.TrimSpace(address))
}

// unreachable wraps a failed HTTP exchange as ErrProviderUnreachable.
// The request URL carried by *url.Error is dropped since its query holds the credential.
func unreachable(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%w: %s request failed: %w", ErrProviderUnreachable, urlErr.Op, urlErr.Err)
	}

	return fmt.Errorf("%w: %w", ErrProviderUnreachable, err)
}

// throttled wraps a rate limiter failure. The request was never sent, so it counts as unreachable.
func throttled(err error) error {
	return fmt.Errorf("%w: rate limit exceeded: %w", ErrProviderUnreachable, err)
}
