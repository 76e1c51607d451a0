package config

import (
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the distance service.
//
// Fields:
// - Env: The current environment (local, development, production).
// - Port: The port of the HTTP server.
// - ProviderType: The geocoding provider to use (yandex, google, nominatim).
// - APIKey: The provider credential; read once and forwarded as-is.
// - Lang: The language tag sent to the provider.
// - ReferenceAddress: The address of the boundary reference point.
// - Timeout: The HTTP timeout for provider requests, zero disables it.
// - RateLimit: Provider requests per second, zero disables throttling.
type Config struct {
	Env              string
	Port             int
	ProviderType     string
	APIKey           string
	Lang             string
	ReferenceAddress string
	Timeout          time.Duration
	RateLimit        int
}

// MustLoad reads the configuration from the environment, optionally seeded from a dotenv file.
// It panics when a value cannot be parsed.
func MustLoad() *Config {
	v := viper.New()
	v.SetEnvPrefix("DISTANCER")
	v.AutomaticEnv()

	v.SetDefault("env_file", ".env")
	v.SetDefault("env", "production")
	v.SetDefault("port", "8080")
	v.SetDefault("provider_type", "yandex")
	v.SetDefault("lang", "en_US")
	v.SetDefault("reference_address", "МКАД")
	v.SetDefault("timeout", "10s")
	v.SetDefault("rate_limit", "0")

	// A missing dotenv file is not an error; variables already set take precedence.
	_ = godotenv.Load(v.GetString("env_file"))

	// The credential keeps the name the service has always used.
	_ = v.BindEnv("api_key", "DISTANCER_PROVIDER_KEY", "YANDEX_API_KEY")

	port, err := strconv.Atoi(v.GetString("port"))
	if err != nil {
		panic("failed to parse port for the http server from configuration")
	}

	timeout, err := time.ParseDuration(v.GetString("timeout"))
	if err != nil {
		panic("failed to parse provider timeout from configuration")
	}

	rateLimit, err := strconv.Atoi(v.GetString("rate_limit"))
	if err != nil {
		panic("failed to parse rate limit from configuration, must be an integer type")
	}

	return &Config{
		Env:              v.GetString("env"),
		Port:             port,
		ProviderType:     v.GetString("provider_type"),
		APIKey:           v.GetString("api_key"),
		Lang:             v.GetString("lang"),
		ReferenceAddress: v.GetString("reference_address"),
		Timeout:          timeout,
		RateLimit:        rateLimit,
	}
}
