package config

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"container-tracker/internal/core/proxy"

	"github.com/spf13/viper"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`

	// Tracking holds the container tracking API configuration.
	Tracking TrackingConfig `mapstructure:",squash"`

	// Gemini holds the insight model configuration.
	Gemini GeminiConfig `mapstructure:",squash"`

	// Cache holds the read-through cache configuration.
	Cache CacheConfig `mapstructure:",squash"`

	// Proxy holds the optional upstream proxy for outbound tracking calls.
	Proxy ProxyConfig `mapstructure:",squash"`
}

// TrackingConfig holds the connection details of the container tracking API.
type TrackingConfig struct {
	// URL is the tracking endpoint, queried with ?number=<container id>.
	URL string `mapstructure:"TRACKING_API_URL" required:"true"`
	// APIKey is sent both as the api_key query parameter and as a bearer token.
	APIKey string `mapstructure:"TRACKING_API_KEY"`
	// TimeoutSeconds bounds the single tracking request.
	TimeoutSeconds int `mapstructure:"TRACKING_TIMEOUT_SECONDS" default:"10"`
}

// Timeout returns the tracking request timeout as a duration.
func (c TrackingConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// GeminiConfig holds the generative model settings used for insights.
type GeminiConfig struct {
	// APIKey authenticates against the Gemini API. Empty disables live insights.
	APIKey string `mapstructure:"GEMINI_API_KEY"`
	// Model is the model name passed to GenerateContent.
	Model string `mapstructure:"GEMINI_MODEL" default:"gemini-3-flash-preview"`
	// BaseURL overrides the API base URL (mostly for tests and gateways).
	BaseURL string `mapstructure:"GEMINI_BASE_URL"`
	// TimeoutSeconds bounds a single insight generation.
	TimeoutSeconds int `mapstructure:"GEMINI_TIMEOUT_SECONDS" default:"20"`
	// RatePerSecond is the sustained request rate allowed towards the model.
	RatePerSecond float64 `mapstructure:"GEMINI_RATE_PER_SECOND" default:"1"`
	// Burst is the limiter bucket size.
	Burst int `mapstructure:"GEMINI_BURST" default:"2"`
}

// Timeout returns the insight generation timeout as a duration.
func (c GeminiConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// CacheConfig holds the Redis cache settings.
type CacheConfig struct {
	// RedisURL in the format redis://[:password@]host[:port][/database]. Empty disables caching.
	RedisURL string `mapstructure:"REDIS_URL"`
	// TTLSeconds is how long a live tracking result stays cached.
	TTLSeconds int `mapstructure:"CACHE_TTL_SECONDS" default:"60"`
}

// TTL returns the cache TTL as a duration.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// ProxyConfig holds the upstream proxy credentials.
type ProxyConfig struct {
	Enabled  bool   `mapstructure:"PROXY_ENABLED" default:"false"`
	Hostname string `mapstructure:"PROXY_HOSTNAME"`
	Port     int    `mapstructure:"PROXY_PORT"`
	Username string `mapstructure:"PROXY_USERNAME"`
	Password string `mapstructure:"PROXY_PASSWORD"`
}

// Settings converts the proxy configuration to the settings used by the HTTP client.
func (c ProxyConfig) Settings() proxy.Settings {
	return proxy.Settings{
		Enabled:  c.Enabled,
		Hostname: c.Hostname,
		Port:     c.Port,
		Username: c.Username,
		Password: c.Password,
	}
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// processTags iterates over the struct fields and sets default values in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		defaultValue := field.Tag.Get("default")

		if key != "" {
			v.BindEnv(key)
		}

		if key != "" && defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		required := field.Tag.Get("required")
		if required == "true" {
			value := val.Field(i)
			if isZero(value) {
				key := field.Tag.Get("mapstructure")
				return fmt.Errorf("missing required configuration: %s", key)
			}
		}
	}
	return nil
}

// isZero checks if a reflect.Value is the zero value for its type.
func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}
