package config

import (
	"errors"
	"fmt"
	"time"

	domainErrors "github.com/nexastore/storefront/internal/domain/errors"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Paystack      PaystackConfig      `mapstructure:"paystack"`
	Store         StoreConfig         `mapstructure:"store"`
	Registry      RegistryConfig      `mapstructure:"registry"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	InitiationRPM   int           `mapstructure:"initiation_rpm"`
	CORS            CORSConfig    `mapstructure:"cors"`
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
}

// PaystackConfig holds the gateway credentials and call policy. SecretKey
// authenticates the server-side initialize call; PublicKey is what the
// embedded widget renders with.
type PaystackConfig struct {
	SecretKey      string        `mapstructure:"secret_key"`
	PublicKey      string        `mapstructure:"public_key"`
	BaseURL        string        `mapstructure:"base_url"`
	Currency       string        `mapstructure:"currency"`
	MinAmountMinor int64         `mapstructure:"min_amount_minor"`
	CallbackURL    string        `mapstructure:"callback_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// StoreConfig holds storefront identity configuration
type StoreConfig struct {
	ReferencePrefix string `mapstructure:"reference_prefix"`
}

// RegistryConfig holds the duplicate-reference guard configuration. When
// disabled the service runs with an in-process registry.
type RegistryConfig struct {
	UseRedis     bool          `mapstructure:"use_redis"`
	ReferenceTTL time.Duration `mapstructure:"reference_ttl"`
	Redis        RedisConfig   `mapstructure:"redis"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	DB                int           `mapstructure:"db"`
	Password          string        `mapstructure:"password"`
	ConnectRetries    int           `mapstructure:"connect_retries"`
	ConnectRetryDelay time.Duration `mapstructure:"connect_retry_delay"`
}

// ObservabilityConfig holds logging and tracing configuration
type ObservabilityConfig struct {
	LogLevel       string `mapstructure:"log_level"`
	JaegerEndpoint string `mapstructure:"jaeger_endpoint"`
	EnableMetrics  bool   `mapstructure:"enable_metrics"`
	EnableTracing  bool   `mapstructure:"enable_tracing"`
}

// Load reads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read from environment variables
	v.SetEnvPrefix("NEXASTORE")
	v.AutomaticEnv()

	// Read from config file if exists
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/nexastore")

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that required configuration fields have valid values.
// A missing secret key is an operator error and fails startup rather than
// surfacing per-request 500s.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, fmt.Errorf("server.read_timeout must be positive"))
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, fmt.Errorf("server.write_timeout must be positive"))
	}
	if c.Paystack.SecretKey == "" {
		errs = append(errs, fmt.Errorf("paystack.secret_key is required: %w", domainErrors.ErrMissingCredentials))
	}
	if c.Paystack.BaseURL == "" {
		errs = append(errs, fmt.Errorf("paystack.base_url is required"))
	}
	if len(c.Paystack.Currency) != 3 {
		errs = append(errs, fmt.Errorf("paystack.currency must be a 3-letter code, got %q", c.Paystack.Currency))
	}
	if c.Paystack.MinAmountMinor <= 0 {
		errs = append(errs, fmt.Errorf("paystack.min_amount_minor must be positive"))
	}
	if c.Paystack.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("paystack.request_timeout must be positive"))
	}
	if c.Registry.UseRedis && c.Registry.Redis.Port <= 0 {
		errs = append(errs, fmt.Errorf("registry.redis.port must be positive"))
	}
	if c.Registry.ReferenceTTL <= 0 {
		errs = append(errs, fmt.Errorf("registry.reference_ttl must be positive"))
	}

	return errors.Join(errs...)
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("server.initiation_rpm", 30)
	v.SetDefault("server.cors.allowed_origins", []string{"*"})
	v.SetDefault("server.cors.allow_credentials", false)

	// Paystack defaults
	v.SetDefault("paystack.base_url", "https://api.paystack.co")
	v.SetDefault("paystack.currency", "NGN")
	v.SetDefault("paystack.min_amount_minor", 100)
	v.SetDefault("paystack.callback_url", "http://localhost:3000/success")
	v.SetDefault("paystack.request_timeout", "30s")

	// Store defaults
	v.SetDefault("store.reference_prefix", "NEXA")

	// Registry defaults
	v.SetDefault("registry.use_redis", false)
	v.SetDefault("registry.reference_ttl", "24h")
	v.SetDefault("registry.redis.host", "localhost")
	v.SetDefault("registry.redis.port", 6379)
	v.SetDefault("registry.redis.db", 0)
	v.SetDefault("registry.redis.password", "")
	v.SetDefault("registry.redis.connect_retries", 5)
	v.SetDefault("registry.redis.connect_retry_delay", "1s")

	// Observability defaults
	v.SetDefault("observability.log_level", "info")
	v.SetDefault("observability.jaeger_endpoint", "http://localhost:14268/api/traces")
	v.SetDefault("observability.enable_metrics", true)
	v.SetDefault("observability.enable_tracing", false)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
