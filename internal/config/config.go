package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENV" default:"development"`

	DBConnectionString string `envconfig:"DATABASE_URL" required:"true"`

	// AI completion settings. The base URL is overridable so tests can point
	// at a local mock server.
	AIAPIKey  string `envconfig:"OPENROUTER_API_KEY" required:"true"`
	AIBaseURL string `envconfig:"OPENROUTER_BASE_URL" default:"https://openrouter.ai/api/v1"`
	AIModel   string `envconfig:"AI_MODEL" default:"google/gemini-2.0-flash-001"`

	// Stripe settings
	StripeSecretKey     string `envconfig:"STRIPE_SECRET_KEY" required:"true"`
	StripeWebhookSecret string `envconfig:"STRIPE_WEBHOOK_SECRET" required:"true"`

	// Public base URL of the frontend, used for checkout redirect targets.
	AppBaseURL string `envconfig:"APP_BASE_URL" default:"http://localhost:3000"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
