package config

import "time"

// Config holds all configuration for the application
type Config struct {
	Environment string            `mapstructure:"environment"`
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Logger      LoggerConfig      `mapstructure:"logger"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Stripe      StripeConfig      `mapstructure:"stripe"`
	Marketplace MarketplaceConfig `mapstructure:"marketplace"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`       // seconds
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`      // seconds
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`       // seconds
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"` // seconds
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`   // seconds
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"sslMode"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"` // minutes
	QueryTimeout    time.Duration `mapstructure:"queryTimeout"`    // seconds
	RetryAttempts   int           `mapstructure:"retryAttempts"`
	RetryDelay      time.Duration `mapstructure:"retryDelay"` // seconds
}

// RedisConfig contains settings for the rate-limiter backing store
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// AuthConfig contains JWT settings
type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwtSecret"`
	TokenTTL  time.Duration `mapstructure:"tokenTTL"` // hours
}

// StripeConfig contains payment gateway settings
type StripeConfig struct {
	BaseURL        string        `mapstructure:"baseURL"`
	SecretKey      string        `mapstructure:"secretKey"`
	PublishableKey string        `mapstructure:"publishableKey"`
	WebhookSecret  string        `mapstructure:"webhookSecret"`
	RequestTimeout time.Duration `mapstructure:"requestTimeout"` // seconds
}

// MarketplaceConfig contains the resale policy knobs. These are policy, not
// code: fee rate, minimum lead time and price cap are all deploy-time tunable.
type MarketplaceConfig struct {
	ServiceFeeRate     float64       `mapstructure:"serviceFeeRate"`
	MinResaleLeadTime  time.Duration `mapstructure:"minResaleLeadTime"` // hours
	PriceCapMultiplier float64       `mapstructure:"priceCapMultiplier"`
	Currency           string        `mapstructure:"currency"`
}
