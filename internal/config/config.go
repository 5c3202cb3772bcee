package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string
	// Database Configuration
	DBDriver    string // sqlite or postgres
	SQLitePath  string
	DatabaseURL string
	// Alert Configuration
	AlertThreshold    int
	AlertPollInterval time.Duration
	AlertInitialDelay time.Duration
	// SMTP Configuration (email sink is disabled when SMTPHost is empty)
	SMTPHost       string
	SMTPPort       int
	SMTPUsername   string
	SMTPPassword   string
	AlertEmailFrom string
	AlertEmailTo   []string
	// Kafka Configuration
	UseKafka           bool
	KafkaBrokers       []string
	KafkaTopicProducts string
	KafkaTopicStaff    string
	KafkaTopicAlerts   string
	KafkaClientID      string
	KafkaAcks          string
	KafkaRetries       int
	// Redis Configuration (optional - for cache)
	UseCache      bool
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	CacheTTL      int // Cache TTL in seconds
	// JWT Configuration
	AuthEnabled   bool
	JWTSecret     string
	AdminUsername string
	AdminPassword string
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		// Database Configuration
		DBDriver:    strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		SQLitePath:  getEnv("SQLITE_PATH", "./inventory.db"),
		DatabaseURL: getEnv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=inventory_db port=5432 sslmode=disable"),
		// Alert Configuration
		AlertThreshold:    getEnvAsInt("ALERT_THRESHOLD", 2),
		AlertPollInterval: time.Duration(getEnvAsInt("ALERT_POLL_INTERVAL_SECONDS", 60)) * time.Second,
		AlertInitialDelay: time.Duration(getEnvAsInt("ALERT_INITIAL_DELAY_SECONDS", 5)) * time.Second,
		// SMTP Configuration
		SMTPHost:       getEnv("SMTP_HOST", ""),
		SMTPPort:       getEnvAsInt("SMTP_PORT", 587),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		AlertEmailFrom: getEnv("ALERT_EMAIL_FROM", "inventory-alerts@localhost"),
		AlertEmailTo:   getEnvAsList("ALERT_EMAIL_TO", ""),
		// Kafka Configuration
		UseKafka:           getEnvAsBool("USE_KAFKA", false),
		KafkaBrokers:       getEnvAsList("KAFKA_BROKERS", "localhost:9093"),
		KafkaTopicProducts: getEnv("KAFKA_TOPIC_PRODUCTS", "inventory.products"),
		KafkaTopicStaff:    getEnv("KAFKA_TOPIC_STAFF", "inventory.staff"),
		KafkaTopicAlerts:   getEnv("KAFKA_TOPIC_ALERTS", "inventory.alerts"),
		KafkaClientID:      getEnv("KAFKA_CLIENT_ID", "inventory-service"),
		KafkaAcks:          getEnv("KAFKA_ACKS", "all"),
		KafkaRetries:       getEnvAsInt("KAFKA_RETRIES", 3),
		// Redis Configuration
		UseCache:      getEnvAsBool("USE_CACHE", false),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),
		CacheTTL:      getEnvAsInt("CACHE_TTL", 300),
		// JWT Configuration
		AuthEnabled:   getEnvAsBool("AUTH_ENABLED", false),
		JWTSecret:     getEnv("JWT_SECRET", "your-secret-key-change-in-production-min-32-chars"),
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),
	}
}

// EmailEnabled reports whether enough SMTP settings are present to send mail.
func (c *Config) EmailEnabled() bool {
	return c.SMTPHost != "" && len(c.AlertEmailTo) > 0
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return result
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return strings.ToLower(value) == "true" || value == "1"
}

// getEnvAsList splits a comma-separated value and drops empty entries
func getEnvAsList(key, defaultValue string) []string {
	raw := getEnv(key, defaultValue)
	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
