package geocoding_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/UnknownOlympus/distancer/internal/geocoding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func yandexBody(found string, positions ...string) string {
	members := ""
	for i, pos := range positions {
		if i > 0 {
			members += ","
		}
		members += `{"GeoObject":{"name":"match","Point":{"pos":"` + pos + `"}}}`
	}

	return `{"response":{"GeoObjectCollection":{` +
		`"metaDataProperty":{"GeocoderResponseMetaData":{"request":"x","found":` + found + `,"results":"10"}},` +
		`"featureMember":[` + members + `]}}}`
}

func respond(status int, body string) func(*http.Request) (*http.Response, error) {
	return func(_ *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: status,
			Body:       io.NopCloser(bytes.NewBufferString(body)),
		}, nil
	}
}

// roundTripFunc lets a plain function act as an http.RoundTripper.
type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestYandexProvider_Resolve(t *testing.T) {
	ctx := t.Context()
	logger := slog.Default()
	apiKey := "test-api-key"
	defaultRL := rate.NewLimiter(rate.Inf, 0)

	t.Run("successful geocoding", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				// Verify request parameters
				assert.Equal(t, http.MethodGet, req.Method)
				assert.Contains(t, req.URL.String(), geocoding.YandexBaseURL)
				assert.Equal(t, "Russia, Moscow, Kirovogradskaya Street, 14", req.URL.Query().Get("geocode"))
				assert.Equal(t, apiKey, req.URL.Query().Get("apikey"))
				assert.Equal(t, "json", req.URL.Query().Get("format"))
				assert.Equal(t, "en_US", req.URL.Query().Get("lang"))

				return respond(http.StatusOK, yandexBody(`"1"`, "37.605939 55.622609"))(req)
			},
		}

		provider := geocoding.NewYandexProviderWithClient(mockClient, apiKey, "", defaultRL, logger)
		resolved, err := provider.Resolve(ctx, "  Russia, Moscow, Kirovogradskaya Street, 14 ")

		require.NoError(t, err)
		require.NotNil(t, resolved)
		assert.Equal(t, "Russia, Moscow, Kirovogradskaya Street, 14", resolved.Query.Address)
		assert.Equal(t, "en_US", resolved.Query.Lang)
		found, ok := resolved.Result.Found()
		assert.True(t, ok)
		assert.Equal(t, 1, found)
		// longitude first, as sent by the provider
		assert.InDelta(t, 37.605939, resolved.Coordinates.Longitude, 1e-9)
		assert.InDelta(t, 55.622609, resolved.Coordinates.Latitude, 1e-9)
	})

	t.Run("numeric match count and first feature wins", func(t *testing.T) {
		mockClient := &mockHTTPClient{doFunc: respond(http.StatusOK, yandexBody(`3`, "10.5 20.25", "30 40", "50 60"))}

		provider := geocoding.NewYandexProviderWithClient(mockClient, apiKey, "ru_RU", defaultRL, logger)
		coords, err := provider.Geocode(ctx, "Lenina 1")

		require.NoError(t, err)
		assert.InDelta(t, 10.5, coords.Longitude, 1e-9)
		assert.InDelta(t, 20.25, coords.Latitude, 1e-9)
	})

	t.Run("empty credential is not sent", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.False(t, req.URL.Query().Has("apikey"))
				return respond(http.StatusForbidden, `{"statusCode":403,"error":"Forbidden"}`)(req)
			},
		}

		provider := geocoding.NewYandexProviderWithClient(mockClient, "", "", defaultRL, logger)
		coords, err := provider.Geocode(ctx, "МКАД")

		require.Nil(t, coords)
		require.ErrorIs(t, err, geocoding.ErrProviderUnreachable)
		assert.ErrorContains(t, err, "403")
	})

	t.Run("no matches", func(t *testing.T) {
		mockClient := &mockHTTPClient{doFunc: respond(http.StatusOK, yandexBody(`"0"`))}

		provider := geocoding.NewYandexProviderWithClient(mockClient, apiKey, "", defaultRL, logger)
		coords, err := provider.Geocode(ctx, "nowhere at all")

		require.Nil(t, coords)
		require.ErrorIs(t, err, geocoding.ErrAddressNotFound)
		assert.ErrorContains(t, err, "nowhere at all")
	})

	t.Run("transport failure", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return nil, assert.AnError
			},
		}

		provider := geocoding.NewYandexProviderWithClient(mockClient, apiKey, "", defaultRL, logger)
		coords, err := provider.Geocode(ctx, "МКАД")

		require.Nil(t, coords)
		require.ErrorIs(t, err, geocoding.ErrProviderUnreachable)
		require.ErrorIs(t, err, assert.AnError)
	})

	t.Run("transport failure does not expose the credential", func(t *testing.T) {
		client := &http.Client{Transport: roundTripFunc(func(_ *http.Request) (*http.Response, error) {
			return nil, errors.New("i/o timeout")
		})}

		provider := geocoding.NewYandexProviderWithClient(client, "SECRET-KEY-123", "", defaultRL, logger)
		coords, err := provider.Geocode(ctx, "Tverskaya")

		require.Nil(t, coords)
		require.ErrorIs(t, err, geocoding.ErrProviderUnreachable)
		assert.ErrorContains(t, err, "i/o timeout")
		assert.NotContains(t, err.Error(), "SECRET-KEY-123")
		assert.NotContains(t, err.Error(), "apikey")
	})

	t.Run("server error", func(t *testing.T) {
		mockClient := &mockHTTPClient{doFunc: respond(http.StatusInternalServerError, "boom")}

		provider := geocoding.NewYandexProviderWithClient(mockClient, apiKey, "", defaultRL, logger)
		_, err := provider.Geocode(ctx, "МКАД")

		require.ErrorIs(t, err, geocoding.ErrProviderUnreachable)
	})

	malformed := []struct {
		name string
		body string
	}{
		{"invalid json", `{"response":`},
		{"missing match count", `{}`},
		{"invalid match count", yandexBody(`"many"`, "1 2")},
		{"matches without features", yandexBody(`"2"`)},
		{"single token position", yandexBody(`"1"`, "37.6")},
		{"three token position", yandexBody(`"1"`, "37.6 55.7 0")},
		{"non numeric longitude", yandexBody(`"1"`, "east 55.7")},
		{"non numeric latitude", yandexBody(`"1"`, "37.6 north")},
	}
	for _, tc := range malformed {
		t.Run("malformed response: "+tc.name, func(t *testing.T) {
			mockClient := &mockHTTPClient{doFunc: respond(http.StatusOK, tc.body)}

			provider := geocoding.NewYandexProviderWithClient(mockClient, apiKey, "", defaultRL, logger)
			coords, err := provider.Geocode(ctx, "МКАД")

			require.Nil(t, coords)
			require.ErrorIs(t, err, geocoding.ErrMalformedResponse)
		})
	}

	t.Run("rate limit exceeded", func(t *testing.T) {
		rateCtx, cancel := context.WithCancel(context.Background())
		cancel() // cancel immediately
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				t.Fatal("HTTP client should not be called when rate limit blocks")
				return &http.Response{}, nil
			},
		}

		limiter := rate.NewLimiter(rate.Every(time.Second), 1)

		provider := geocoding.NewYandexProviderWithClient(mockClient, apiKey, "", limiter, logger)
		coords, err := provider.Geocode(rateCtx, "МКАД")

		require.Error(t, err)
		assert.Nil(t, coords)
		assert.ErrorContains(t, err, "rate limit exceeded")
		assert.ErrorIs(t, err, geocoding.ErrProviderUnreachable)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestNormalizeAddress(t *testing.T) {
	// "и" followed by a combining breve is folded into the precomposed "й".
	assert.Equal(t, "К\u0439", geocoding.NormalizeAddress(" К\u0438\u0306 "))
	assert.Equal(t, "Red Square", geocoding.NormalizeAddress("\tRed Square\n"))
}
