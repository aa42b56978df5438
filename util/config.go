package util

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Cache backends accepted in CACHE_BACKEND.
const (
	CacheBackendRedis = "redis"
	CacheBackendBolt  = "bolt"
	CacheBackendNone  = "none"
)

type Config struct {
	Environment       string        `mapstructure:"ENVIRONMENT"`
	HTTPServerAddress string        `mapstructure:"HTTP_SERVER_ADDRESS"`
	RedisAddress      string        `mapstructure:"REDIS_ADDRESS"`
	CacheBackend      string        `mapstructure:"CACHE_BACKEND"`
	CachePath         string        `mapstructure:"CACHE_PATH"`
	CacheTTL          time.Duration `mapstructure:"CACHE_TTL"`
	DefaultNestLimit  int           `mapstructure:"DEFAULT_NEST_LIMIT"`
	MaxNestLimit      int           `mapstructure:"MAX_NEST_LIMIT"`
	MaxInputLength    int           `mapstructure:"MAX_INPUT_LENGTH"`
	AllowedOrigins    []string      `mapstructure:"ALLOWED_ORIGINS"`
}

// defaults are registered for every key, so that each one can also be set from the environment
// when app.env doesn't mention it.
var defaults = map[string]any{
	"ENVIRONMENT":         "development",
	"HTTP_SERVER_ADDRESS": "0.0.0.0:8080",
	"REDIS_ADDRESS":       "localhost:6379",
	"CACHE_BACKEND":       CacheBackendNone,
	"CACHE_PATH":          "mfm-cache.db",
	"CACHE_TTL":           10 * time.Minute,
	"DEFAULT_NEST_LIMIT":  20,
	"MAX_NEST_LIMIT":      100,
	"MAX_INPUT_LENGTH":    20000,
	"ALLOWED_ORIGINS":     []string{},
}

// LoadConfig reads app.env from path, overridden by the environment. A missing file is not an
// error, the defaults and the environment are used then.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return
		}
		err = nil
	}

	err = v.Unmarshal(&config)
	return
}

// Validate checks the values which would make the service misbehave instead of failing fast.
func (config *Config) Validate() error {
	var errs []error

	if config.MaxNestLimit < 0 {
		errs = append(errs, fmt.Errorf("MAX_NEST_LIMIT must not be negative, got %d", config.MaxNestLimit))
	}
	if config.DefaultNestLimit < 0 {
		errs = append(errs, fmt.Errorf("DEFAULT_NEST_LIMIT must not be negative, got %d", config.DefaultNestLimit))
	}
	if config.DefaultNestLimit > config.MaxNestLimit {
		errs = append(errs, fmt.Errorf(
			"DEFAULT_NEST_LIMIT (%d) must not exceed MAX_NEST_LIMIT (%d)",
			config.DefaultNestLimit, config.MaxNestLimit,
		))
	}
	if config.MaxInputLength <= 0 {
		errs = append(errs, fmt.Errorf("MAX_INPUT_LENGTH must be positive, got %d", config.MaxInputLength))
	}
	if config.CacheTTL < 0 {
		errs = append(errs, fmt.Errorf("CACHE_TTL must not be negative, got %s", config.CacheTTL))
	}

	switch config.CacheBackend {
	case CacheBackendRedis:
		if config.RedisAddress == "" {
			errs = append(errs, errors.New("REDIS_ADDRESS is required for the redis cache"))
		}
	case CacheBackendBolt:
		if config.CachePath == "" {
			errs = append(errs, errors.New("CACHE_PATH is required for the bolt cache"))
		}
	case CacheBackendNone, "":
	default:
		errs = append(errs, fmt.Errorf("unknown CACHE_BACKEND %q", config.CacheBackend))
	}

	if _, _, err := config.ExtractHostPort(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// ExtractHostPort parses the HTTP server address and returns the host and port components.
// The address may come with or without a scheme. If no port is specified, port will be an
// empty string.
func (config *Config) ExtractHostPort() (host string, port string, err error) {
	addr := config.HTTPServerAddress
	if !strings.Contains(addr, "://") {
		addr = "http://" + addr
	}

	urlStr, err := url.Parse(addr)
	if err != nil {
		err = fmt.Errorf("error parsing http server url: %w", err)
		return
	}

	host, port, err = net.SplitHostPort(urlStr.Host)
	if err != nil {
		// If there's no port, SplitHostPort returns an error,
		// in which case the host itself is the hostname.
		host = urlStr.Hostname()
		port = ""
		err = nil
	}

	if host == "" {
		err = fmt.Errorf("http server address %q has no host", config.HTTPServerAddress)
	}

	return
}

// ListenAddress returns the HTTP server address in the host:port form expected by net/http.
func (config *Config) ListenAddress() (string, error) {
	host, port, err := config.ExtractHostPort()
	if err != nil {
		return "", err
	}
	return net.JoinHostPort(host, port), nil
}
