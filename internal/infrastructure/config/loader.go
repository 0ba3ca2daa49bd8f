package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"./.env",
	"../.env",
	"./configs/.env",
	"../configs/.env",
}

// LoadConfig loads configuration from file based on the environment
func LoadConfig() (*Config, error) {
	// Load environment variables from .env file first
	if err := loadDotEnvFile(); err != nil {
		fmt.Println("Warning: Could not load .env file:", err)
	}

	env := getEnvironment()

	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")

	for _, path := range ConfigPaths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Environment variables override config file values
	v.SetEnvPrefix("MKT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	processEnvOverrides(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.Environment = env

	processDurations(&config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the policy and auth settings that have no sane zero value
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" && c.Environment == Production {
		return fmt.Errorf("auth.jwtSecret must be set in production")
	}
	if c.Marketplace.ServiceFeeRate < 0 || c.Marketplace.ServiceFeeRate >= 1 {
		return fmt.Errorf("marketplace.serviceFeeRate must be in [0, 1), got %f", c.Marketplace.ServiceFeeRate)
	}
	if c.Marketplace.PriceCapMultiplier < 1 {
		return fmt.Errorf("marketplace.priceCapMultiplier must be at least 1, got %f", c.Marketplace.PriceCapMultiplier)
	}
	if c.Marketplace.MinResaleLeadTime < 0 {
		return fmt.Errorf("marketplace.minResaleLeadTime cannot be negative")
	}
	return nil
}

// loadDotEnvFile attempts to load environment variables from .env files
func loadDotEnvFile() error {
	var lastError error

	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return nil
			} else {
				lastError = err
			}
		}
	}

	if lastError != nil {
		return fmt.Errorf("could not load any .env file: %w", lastError)
	}

	return fmt.Errorf("no .env file found in search paths")
}

// setDefaults sets default values for non-critical configuration
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", 15)       // seconds
	v.SetDefault("server.writeTimeout", 15)      // seconds
	v.SetDefault("server.idleTimeout", 60)       // seconds
	v.SetDefault("server.readHeaderTimeout", 10) // seconds
	v.SetDefault("server.shutdownTimeout", 10)   // seconds

	// Database defaults for non-sensitive settings
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 50)
	v.SetDefault("database.maxIdleConns", 25)
	v.SetDefault("database.connMaxLifetime", 30) // minutes
	v.SetDefault("database.queryTimeout", 5)     // seconds
	v.SetDefault("database.retryAttempts", 3)
	v.SetDefault("database.retryDelay", 1) // seconds

	// Redis defaults
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")

	// Auth defaults
	v.SetDefault("auth.tokenTTL", 168) // hours (7 days)

	// Stripe defaults
	v.SetDefault("stripe.baseURL", "https://api.stripe.com")
	v.SetDefault("stripe.requestTimeout", 15) // seconds

	// Marketplace policy defaults: 10% service fee, 72 hour resale lead
	// time, 1.2x price cap
	v.SetDefault("marketplace.serviceFeeRate", 0.10)
	v.SetDefault("marketplace.minResaleLeadTime", 72) // hours
	v.SetDefault("marketplace.priceCapMultiplier", 1.2)
	v.SetDefault("marketplace.currency", "usd")
}

// getEnvironment determines the environment based on MKT_ENV
func getEnvironment() string {
	env := os.Getenv("MKT_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}

// processEnvOverrides ensures environment variables override config values
// for sensitive settings
func processEnvOverrides(v *viper.Viper) {
	if dbHost := os.Getenv("MKT_DB_HOST"); dbHost != "" {
		v.Set("database.host", dbHost)
	}
	if dbPort := os.Getenv("MKT_DB_PORT"); dbPort != "" {
		v.Set("database.port", dbPort)
	}
	if dbUser := os.Getenv("MKT_DB_USERNAME"); dbUser != "" {
		v.Set("database.username", dbUser)
	}
	if dbPass := os.Getenv("MKT_DB_PASSWORD"); dbPass != "" {
		v.Set("database.password", dbPass)
	}
	if dbName := os.Getenv("MKT_DB_NAME"); dbName != "" {
		v.Set("database.database", dbName)
	}
	if redisAddr := os.Getenv("MKT_REDIS_ADDR"); redisAddr != "" {
		v.Set("redis.addr", redisAddr)
	}
	if redisPass := os.Getenv("MKT_REDIS_PASSWORD"); redisPass != "" {
		v.Set("redis.password", redisPass)
	}
	if jwtSecret := os.Getenv("MKT_JWT_SECRET"); jwtSecret != "" {
		v.Set("auth.jwtSecret", jwtSecret)
	}
	if stripeKey := os.Getenv("MKT_STRIPE_SECRET_KEY"); stripeKey != "" {
		v.Set("stripe.secretKey", stripeKey)
	}
	if stripePub := os.Getenv("MKT_STRIPE_PUBLISHABLE_KEY"); stripePub != "" {
		v.Set("stripe.publishableKey", stripePub)
	}
	if webhookSecret := os.Getenv("MKT_STRIPE_WEBHOOK_SECRET"); webhookSecret != "" {
		v.Set("stripe.webhookSecret", webhookSecret)
	}
}

// processDurations converts duration fields from their raw config values
func processDurations(config *Config) {
	// Seconds
	config.Server.ReadTimeout = time.Duration(config.Server.ReadTimeout) * time.Second
	config.Server.WriteTimeout = time.Duration(config.Server.WriteTimeout) * time.Second
	config.Server.IdleTimeout = time.Duration(config.Server.IdleTimeout) * time.Second
	config.Server.ReadHeaderTimeout = time.Duration(config.Server.ReadHeaderTimeout) * time.Second
	config.Server.ShutdownTimeout = time.Duration(config.Server.ShutdownTimeout) * time.Second
	config.Database.QueryTimeout = time.Duration(config.Database.QueryTimeout) * time.Second
	config.Database.RetryDelay = time.Duration(config.Database.RetryDelay) * time.Second
	config.Stripe.RequestTimeout = time.Duration(config.Stripe.RequestTimeout) * time.Second

	// Minutes
	config.Database.ConnMaxLifetime = time.Duration(config.Database.ConnMaxLifetime) * time.Minute

	// Hours
	config.Auth.TokenTTL = time.Duration(config.Auth.TokenTTL) * time.Hour
	config.Marketplace.MinResaleLeadTime = time.Duration(config.Marketplace.MinResaleLeadTime) * time.Hour
}
