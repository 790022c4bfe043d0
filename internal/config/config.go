package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENV" default:"development"`
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	// Auth settings
	JWTSecret       string `envconfig:"JWT_SECRET" required:"true"`
	SessionTTLHours int    `envconfig:"SESSION_TTL_HOURS" default:"168"`

	// VIES registry settings
	VIESServiceURL string `envconfig:"VIES_SERVICE_URL" default:"https://ec.europa.eu/taxation_customs/vies/services/checkVatService"`
	VIESTimeoutSec int    `envconfig:"VIES_TIMEOUT_SEC" default:"10"`

	// Stripe settings. The secret key may alternatively be loaded from GCP
	// Secret Manager by setting STRIPE_SECRET_NAME.
	StripeSecretKey         string `envconfig:"STRIPE_SECRET_KEY"`
	StripeSecretName        string `envconfig:"STRIPE_SECRET_NAME"`
	StripeWebhookSecret     string `envconfig:"STRIPE_WEBHOOK_SECRET"`
	StripePriceProfessional string `envconfig:"STRIPE_PRICE_PROFESSIONAL"`
	StripePriceEnterprise   string `envconfig:"STRIPE_PRICE_ENTERPRISE"`
	StripeReturnURL         string `envconfig:"STRIPE_RETURN_URL" default:"http://localhost:3000/billing"`

	// GCP settings
	GCPProjectID         string `envconfig:"GCP_PROJECT_ID"`
	PubSubInvoiceTopic   string `envconfig:"PUBSUB_INVOICE_TOPIC" default:"invoice_events"`
	PubSubEmulatorHost   string `envconfig:"PUBSUB_EMULATOR_HOST"`

	// S3-compatible document storage for exported invoice documents
	S3URL       string `envconfig:"S3_URL"`
	S3Bucket    string `envconfig:"S3_BUCKET" default:"invoice-documents"`
	S3Region    string `envconfig:"S3_REGION" default:"eu-central-1"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY"`
	S3SecretKey string `envconfig:"S3_SECRET_KEY"`

	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
