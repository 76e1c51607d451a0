package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/UnknownOlympus/distancer/internal/models"
	"golang.org/x/time/rate"
)

// YandexBaseURL -- Yandex Geocoder HTTP API endpoint.
const YandexBaseURL = "https://geocode-maps.yandex.ru/1.x"

// DefaultLang is the locale tag sent to the provider when none is configured.
const DefaultLang = "en_US"

// Query is a single geocoding request. It is immutable once built.
type Query struct {
	Address string // Free-text address, already normalized.
	APIKey  string // Provider credential, may be empty.
	Lang    string // Response language tag.
}

// values renders the query parameters. An empty API key is omitted and left to the provider to reject.
func (q Query) values() url.Values {
	params := url.Values{}
	params.Set("geocode", q.Address)
	if q.APIKey != "" {
		params.Set("apikey", q.APIKey)
	}
	params.Set("format", "json")
	params.Set("lang", q.Lang)

	return params
}

// MatchCount is the number of matches reported by Yandex. The API encodes it as a string,
// but a bare JSON number is accepted as well.
type MatchCount int

// UnmarshalJSON implements json.Unmarshaler.
func (m *MatchCount) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)

	count, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid match count %s: %w", data, err)
	}
	*m = MatchCount(count)

	return nil
}

// YandexFeature is a single matched geo object.
type YandexFeature struct {
	GeoObject struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Point       struct {
			Pos string `json:"pos"` // "<longitude> <latitude>"
		} `json:"Point"`
	} `json:"GeoObject"`
}

// YandexResponse is the part of the Yandex Geocoder JSON response the service relies on.
type YandexResponse struct {
	Response struct {
		GeoObjectCollection struct {
			MetaDataProperty struct {
				GeocoderResponseMetaData struct {
					Found *MatchCount `json:"found"`
				} `json:"GeocoderResponseMetaData"`
			} `json:"metaDataProperty"`
			FeatureMember []YandexFeature `json:"featureMember"`
		} `json:"GeoObjectCollection"`
	} `json:"response"`
}

// Found returns the reported match count and whether the field was present at all.
func (r *YandexResponse) Found() (int, bool) {
	found := r.Response.GeoObjectCollection.MetaDataProperty.GeocoderResponseMetaData.Found
	if found == nil {
		return 0, false
	}

	return int(*found), true
}

// Features returns the matched features in provider order.
func (r *YandexResponse) Features() []YandexFeature {
	return r.Response.GeoObjectCollection.FeatureMember
}

// ResolvedAddress is the outcome of a successful resolution. It is never modified after construction.
type ResolvedAddress struct {
	Query       Query
	Result      *YandexResponse
	Coordinates models.Coordinates
}

// YandexProvider implements geocoding using the Yandex Geocoder API.
type YandexProvider struct {
	client  HTTPClient    // HTTP client for making requests
	baseURL string        // Base URL for the Yandex API
	apiKey  string        // API key, forwarded as-is
	lang    string        // Response language
	log     *slog.Logger  // Logger for logging operations
	limiter *rate.Limiter // Rate limiter
}

// NewYandexProvider creates a new Yandex geocoding provider.
// A zero timeout disables the client timeout and a non-positive rate limit disables throttling.
func NewYandexProvider(apiKey, lang string, timeout time.Duration, rateLimit int, log *slog.Logger) *YandexProvider {
	return NewYandexProviderWithClient(&http.Client{Timeout: timeout}, apiKey, lang, newLimiter(rateLimit), log)
}

// NewYandexProviderWithClient allows injecting custom HTTP client.
func NewYandexProviderWithClient(
	client HTTPClient,
	apiKey string,
	lang string,
	limiter *rate.Limiter,
	log *slog.Logger,
) *YandexProvider {
	if lang == "" {
		lang = DefaultLang
	}

	return &YandexProvider{
		client:  client,
		baseURL: YandexBaseURL,
		apiKey:  apiKey,
		lang:    lang,
		log:     log,
		limiter: limiter,
	}
}

// Geocode converts address into geographic coordinates using Yandex API.
func (yp *YandexProvider) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	resolved, err := yp.Resolve(ctx, address)
	if err != nil {
		return nil, err
	}

	return &resolved.Coordinates, nil
}

// Resolve sends a single request for the address and extracts the first matched feature.
// No retry is attempted: any failure is returned to the caller immediately.
func (yp *YandexProvider) Resolve(ctx context.Context, address string) (*ResolvedAddress, error) {
	if err := yp.limiter.Wait(ctx); err != nil {
		return nil, throttled(err)
	}

	query := Query{Address: NormalizeAddress(address), APIKey: yp.apiKey, Lang: yp.lang}

	yp.log.DebugContext(ctx, "Geocoding using Yandex", "address", query.Address)

	reqURL, err := url.Parse(yp.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	reqURL.RawQuery = query.values().Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := yp.client.Do(req)
	if err != nil {
		err = unreachable(err)
		yp.log.ErrorContext(ctx, "Unable to reach Yandex API", "address", query.Address, "error", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		yp.log.ErrorContext(ctx, "Yandex API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf(
			"%w: yandex API returned status %d, please ensure the API key is set", ErrProviderUnreachable, resp.StatusCode,
		)
	}

	var result YandexResponse
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode yandex response: %w", ErrMalformedResponse, err)
	}

	found, ok := result.Found()
	if !ok {
		return nil, fmt.Errorf("%w: match count is missing", ErrMalformedResponse)
	}

	if found <= 0 {
		yp.log.ErrorContext(ctx, "Unable to find the address", "address", query.Address)
		return nil, fmt.Errorf("%w %s", ErrAddressNotFound, query.Address)
	}

	features := result.Features()
	if len(features) == 0 {
		return nil, fmt.Errorf("%w: %d matches reported but no features returned", ErrMalformedResponse, found)
	}

	coords, err := parsePosition(features[0].GeoObject.Point.Pos)
	if err != nil {
		return nil, err
	}

	yp.log.InfoContext(ctx, "Yandex found result",
		"address", query.Address, "matches", found, "lon", coords.Longitude, "lat", coords.Latitude)

	return &ResolvedAddress{Query: query, Result: &result, Coordinates: coords}, nil
}

// parsePosition reads a "<longitude> <latitude>" pair. The order is never swapped.
func parsePosition(pos string) (models.Coordinates, error) {
	const posTokens = 2

	fields := strings.Fields(pos)
	if len(fields) != posTokens {
		return models.Coordinates{}, fmt.Errorf("%w: invalid position %q", ErrMalformedResponse, pos)
	}

	lon, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("%w: invalid longitude %q", ErrMalformedResponse, fields[0])
	}

	lat, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("%w: invalid latitude %q", ErrMalformedResponse, fields[1])
	}

	return models.Coordinates{Longitude: lon, Latitude: lat}, nil
}

func newLimiter(perSecond int) *rate.Limiter {
	if perSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}

	return rate.NewLimiter(rate.Limit(perSecond), perSecond)
}
