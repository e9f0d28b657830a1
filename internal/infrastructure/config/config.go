// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string
	LogLevel   string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// MongoDB
	MongoURI      string
	MongoDB       string
	MongoUser     string
	MongoPassword string

	// Property catalogue (postgres or mysql)
	PropertyDBDriver string
	PropertyDBDSN    string

	// Kafka
	KafkaBrokers []string
	KafkaTopic   string
	KafkaGroupID string
	InstanceID   string

	// Admin auth
	JWTSecret    string
	JWTPublicKey string

	// Gmail receipts
	GmailClientID     string
	GmailClientSecret string
	GmailRefreshToken string
	GmailSender       string

	// Booking
	ProcessingDelay         time.Duration
	Currency                string
	StrictStatusTransitions bool
	SessionTTL              time.Duration

	// Metrics
	MetricsNamespace string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		MongoURI:      getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "booking"),
		MongoUser:     getEnv("MONGO_USER", ""),
		MongoPassword: getEnv("MONGO_PASSWORD", ""),

		PropertyDBDriver: strings.ToLower(getEnv("PROPERTY_DB_DRIVER", "postgres")),
		PropertyDBDSN:    getEnv("PROPERTY_DB_DSN", ""),

		KafkaBrokers: getEnvAsList("KAFKA_BROKERS"),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "reservations.changed"),
		InstanceID:   getEnv("INSTANCE_ID", hostname()),

		JWTSecret:    getEnv("JWT_SECRET", ""),
		JWTPublicKey: getEnv("JWT_PUBLIC_KEY", ""),

		GmailClientID:     getEnv("GMAIL_CLIENT_ID", ""),
		GmailClientSecret: getEnv("GMAIL_CLIENT_SECRET", ""),
		GmailRefreshToken: getEnv("GMAIL_REFRESH_TOKEN", ""),
		GmailSender:       getEnv("GMAIL_SENDER", ""),

		ProcessingDelay:         time.Duration(getEnvAsInt("BOOKING_PROCESSING_DELAY_MS", 1500)) * time.Millisecond,
		Currency:                strings.ToUpper(getEnv("BOOKING_CURRENCY", "EUR")),
		StrictStatusTransitions: getEnvAsBool("STRICT_STATUS_TRANSITIONS", false),
		SessionTTL:              time.Duration(getEnvAsInt("SESSION_TTL_MINUTES", 30)) * time.Minute,

		MetricsNamespace: getEnv("METRICS_NAMESPACE", "booking"),
	}

	// Each replica joins its own consumer group so it receives every partition.
	config.KafkaGroupID = getEnv("KAFKA_GROUP_ID", "booking-service") + "-" + config.InstanceID

	return config, nil
}

// GmailEnabled reports whether receipt mail credentials are configured.
func (c *Config) GmailEnabled() bool {
	return c.GmailClientID != "" && c.GmailClientSecret != "" && c.GmailRefreshToken != ""
}

func hostname() string {
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return uuid.NewString()
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
