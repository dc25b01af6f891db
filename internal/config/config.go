package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"time"    // For durations

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort      string        // Application port
	DBDriver     string        // Database driver: mysql, postgres or sqlite
	DBUser       string        // Database user
	DBPassword   string        // Database password
	DBHost       string        // Database host
	DBPort       string        // Database port
	DBName       string        // Database name
	DBSSLMode    string        // Postgres sslmode
	DBPath       string        // SQLite file path
	JWTSecret    string        // JWT secret key
	JWTTTL       time.Duration // Lifetime of issued tokens
	RedisEnabled bool          // Whether the read-through cache is used
	RedisAddr    string        // Redis server address
	RedisPass    string        // Redis password
	RedisDB      int           // Redis database number
	CacheTTL     time.Duration // TTL of cached responses
	BcryptCost   int           // Cost used when hashing passwords
	LogLevel     string        // logrus level name
	IsProd       bool          // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	return &Config{
		AppPort:      getEnv("APP_PORT", "8080"),
		DBDriver:     getEnv("DB_DRIVER", "mysql"),
		DBUser:       getEnv("DB_USER", "root"),
		DBPassword:   os.Getenv("DB_PASSWORD"),
		DBHost:       getEnv("DB_HOST", "127.0.0.1"),
		DBPort:       getEnv("DB_PORT", "3306"),
		DBName:       getEnv("DB_NAME", "event_management"),
		DBSSLMode:    getEnv("DB_SSLMODE", "disable"),
		DBPath:       getEnv("DB_PATH", "event_management.db"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		JWTTTL:       getEnvAsDuration("JWT_TTL", "24h"),
		RedisEnabled: getEnvAsBool("REDIS_ENABLED", true),
		RedisAddr:    getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPass:    os.Getenv("REDIS_PASS"),
		RedisDB:      getEnvAsInt("REDIS_DB", 0),
		CacheTTL:     getEnvAsDuration("CACHE_TTL", "60s"),
		BcryptCost:   getEnvAsInt("BCRYPT_COST", 10),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		IsProd:       os.Getenv("IS_PROD") == "true", // Is production environment
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	if duration, err := time.ParseDuration(getEnv(key, defaultValue)); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue) // Fall back to the default on a malformed value
	return duration
}
