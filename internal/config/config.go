package config

import (
	"errors"  // Validation errors
	"fmt"     // DSN formatting
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // For list parsing
	"time"    // Durations

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort    string // Application port
	IsProd     bool   // Is production environment
	LogLevel   string // Logrus level name
	DBDriver   string // mysql or postgres
	DBUser     string // Database user
	DBPassword string // Database password
	DBHost     string // Database host
	DBPort     string // Database port
	DBName     string // Database name
	DBSSLMode  string // Postgres sslmode

	JWTSecret string        // Session token signing key
	TokenTTL  time.Duration // Session token validity

	CORSOrigins []string // Allowed browser origins

	RedisAddr string // Redis server address, empty disables login throttling
	RedisPass string // Redis password
	RedisDB   int    // Redis database number

	LoginMaxAttempts int           // Failed logins allowed per window
	LoginLockout     time.Duration // Throttle window
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	return &Config{
		AppPort:    getEnv("APP_PORT", "4000"),
		IsProd:     os.Getenv("IS_PROD") == "true",
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", "mysql")),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBHost:     getEnv("DB_HOST", "127.0.0.1"),
		DBPort:     os.Getenv("DB_PORT"),
		DBName:     os.Getenv("DB_NAME"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: os.Getenv("JWT_SECRET"),
		TokenTTL:  time.Duration(getEnvInt("TOKEN_TTL_HOURS", 24)) * time.Hour,

		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),

		RedisAddr: os.Getenv("REDIS_ADDR"),
		RedisPass: os.Getenv("REDIS_PASS"),
		RedisDB:   getEnvInt("REDIS_DB", 0),

		LoginMaxAttempts: getEnvInt("LOGIN_MAX_ATTEMPTS", 5),
		LoginLockout:     time.Duration(getEnvInt("LOGIN_LOCKOUT_MINUTES", 15)) * time.Minute,
	}
}

// Validate reports configuration that would make the server unusable
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	if c.DBDriver != "mysql" && c.DBDriver != "postgres" {
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL_HOURS must be positive")
	}
	return nil
}

// DSN builds the data source name for the configured driver
func (c *Config) DSN() string {
	if c.DBDriver == "postgres" {
		port := c.DBPort
		if port == "" {
			port = "5432"
		}
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			c.DBHost, c.DBUser, c.DBPassword, c.DBName, port, c.DBSSLMode)
	}
	port := c.DBPort
	if port == "" {
		port = "3306"
	}
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + port + ")/" + c.DBName + "?charset=utf8mb4&parseTime=true"
}

// ThrottleEnabled reports whether failed logins are rate limited
func (c *Config) ThrottleEnabled() bool {
	return c.RedisAddr != "" && c.LoginMaxAttempts > 0
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
