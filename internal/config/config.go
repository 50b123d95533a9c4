package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	ServiceName string
	ServerPort  int
	LogLevel    string

	StorageDriver  string
	DatabaseURL    string
	SeedSampleData bool

	AdminUsername string
	AdminPassword string

	StripeSecretKey string
	PaymentCurrency string
	PaymentTimeout  time.Duration
	PaymentQRURL    string
	WhatsAppNumber  string

	JWTSecret []byte

	KafkaBrokers []string

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string

	CORSOrigins []string
}

func Load() Config {
	return Config{
		ServiceName: EnvDefault("SERVICE_NAME", "storefront"),
		ServerPort:  EnvIntDefault("SERVER_PORT", 8080),
		LogLevel:    EnvDefault("LOG_LEVEL", "info"),

		StorageDriver:  strings.ToLower(EnvDefault("STORAGE_DRIVER", DriverMemory)),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		SeedSampleData: EnvBoolDefault("SEED_SAMPLE_DATA", true),

		AdminUsername: EnvDefault("ADMIN_USERNAME", "admin"),
		AdminPassword: EnvDefault("ADMIN_PASSWORD", "cyb3r@dm1n"),

		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		PaymentCurrency: strings.ToLower(EnvDefault("PAYMENT_CURRENCY", "usd")),
		PaymentTimeout:  time.Duration(EnvIntDefault("PAYMENT_TIMEOUT_SECONDS", 15)) * time.Second,
		PaymentQRURL:    EnvDefault("PAYMENT_QR_URL", "/assets/payment-qr.png"),
		WhatsAppNumber:  os.Getenv("WHATSAPP_NUMBER"),

		JWTSecret: []byte(os.Getenv("JWT_SECRET")),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),
		ESIndex:    EnvDefault("ES_INDEX", "courses"),

		CORSOrigins: CSV(EnvDefault("CORS_ORIGINS", "*")),
	}
}

// Validate reports settings the server cannot start without.
func (c Config) Validate() error {
	if c.StripeSecretKey == "" {
		return fmt.Errorf("missing required env STRIPE_SECRET_KEY")
	}
	switch c.StorageDriver {
	case DriverMemory:
	case DriverSQLite, DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("missing required env DATABASE_URL for driver %q", c.StorageDriver)
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	return nil
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func EnvBoolDefault(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
