package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Environment: Development,
		Auth:        AuthConfig{JWTSecret: "secret", TokenTTL: 168 * time.Hour},
		Marketplace: MarketplaceConfig{
			ServiceFeeRate:     0.10,
			MinResaleLeadTime:  72 * time.Hour,
			PriceCapMultiplier: 1.2,
			Currency:           "usd",
		},
	}
}

func TestConfigValidate(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		assert.NoError(t, validConfig().Validate())
	})

	t.Run("production requires a jwt secret", func(t *testing.T) {
		cfg := validConfig()
		cfg.Environment = Production
		cfg.Auth.JWTSecret = ""

		assert.Error(t, cfg.Validate())
	})

	t.Run("development tolerates a missing jwt secret", func(t *testing.T) {
		cfg := validConfig()
		cfg.Auth.JWTSecret = ""

		assert.NoError(t, cfg.Validate())
	})

	t.Run("fee rate bounds", func(t *testing.T) {
		cfg := validConfig()
		cfg.Marketplace.ServiceFeeRate = -0.01
		assert.Error(t, cfg.Validate())

		cfg.Marketplace.ServiceFeeRate = 1.0
		assert.Error(t, cfg.Validate())

		cfg.Marketplace.ServiceFeeRate = 0
		assert.NoError(t, cfg.Validate())
	})

	t.Run("price cap must be at least face value", func(t *testing.T) {
		cfg := validConfig()
		cfg.Marketplace.PriceCapMultiplier = 0.9
		assert.Error(t, cfg.Validate())

		cfg.Marketplace.PriceCapMultiplier = 1
		assert.NoError(t, cfg.Validate())
	})

	t.Run("lead time cannot be negative", func(t *testing.T) {
		cfg := validConfig()
		cfg.Marketplace.MinResaleLeadTime = -time.Hour
		assert.Error(t, cfg.Validate())
	})
}

func TestProcessDurations(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			ConnMaxLifetime: 30,
			QueryTimeout:    5,
			RetryDelay:      1,
		},
		Auth:   AuthConfig{TokenTTL: 168},
		Stripe: StripeConfig{RequestTimeout: 15},
		Marketplace: MarketplaceConfig{
			MinResaleLeadTime: 72,
		},
	}

	processDurations(cfg)

	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)
	assert.Equal(t, 30*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, 168*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 15*time.Second, cfg.Stripe.RequestTimeout)
	assert.Equal(t, 72*time.Hour, cfg.Marketplace.MinResaleLeadTime)
}
