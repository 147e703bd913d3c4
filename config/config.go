package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port          string
	StorageDriver string // "postgres" or "mongo"

	// Postgres
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string

	// Mongo
	MongoURL      string
	MongoDatabase string

	JWTSecret string

	Braintree BraintreeConfig
}

// BraintreeConfig configures the payment gateway adapter.
type BraintreeConfig struct {
	MerchantID string
	PublicKey  string
	PrivateKey string
	APIURL     string
	Sandbox    bool
}

// Load reads .env (if present) and builds the config. Only JWT_SECRET is
// required; everything else falls back to a sensible default.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:          getenv("PORT", "8000"),
		StorageDriver: getenv("STORAGE_DRIVER", "postgres"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      getenv("DB_HOST", "localhost"),
		DBPort:      getenv("DB_PORT", "5432"),
		DBUser:      getenv("DB_USER", "postgres"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      getenv("DB_NAME", "ecommerce"),

		MongoURL:      getenv("MONGO_URL", "mongodb://localhost:27017"),
		MongoDatabase: getenv("MONGO_DATABASE", "ecommerce"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		Braintree: BraintreeConfig{
			MerchantID: os.Getenv("BRAINTREE_MERCHANT_ID"),
			PublicKey:  os.Getenv("BRAINTREE_PUBLIC_KEY"),
			PrivateKey: os.Getenv("BRAINTREE_PRIVATE_KEY"),
			APIURL:     getenv("BRAINTREE_API_URL", "https://api.sandbox.braintreegateway.com"),
			Sandbox:    getenv("BRAINTREE_MODE", "sandbox") == "sandbox",
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
