package config

import (
	"log"
	"os"
	"strconv"
)

// Config holds application configuration loaded once at startup. It is passed
// into the token service, stores and controllers rather than read ambiently.
type Config struct {
	Port string
	Env  string // development | production

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	JWTSecret   string
	JWTTTLHours int
	BcryptCost  int
	UploadRoot  string
	CorsOrigin  string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleCallbackURL  string
	FrontendURL        string
}

// Load initializes configuration from environment variables or defaults.
func Load() *Config {
	cfg := &Config{
		Port: getEnv("PORT", "5000"),
		Env:  getEnv("APP_ENV", "development"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "lms"),
		DBPort:     getEnv("DB_PORT", "5432"),

		JWTSecret:   getEnv("JWT_SECRET", "defaultSecret"),
		JWTTTLHours: getEnvInt("JWT_EXPIRES_HOURS", 24),
		BcryptCost:  getEnvInt("BCRYPT_SALT_ROUNDS", 10),
		UploadRoot:  getEnv("UPLOAD_DIR", "uploads"),
		CorsOrigin:  getEnv("CORS_ORIGIN", "http://localhost:3000"),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleCallbackURL:  getEnv("GOOGLE_CALLBACK_URL", "http://localhost:5000/api/users/google/callback"),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:3000/auth/google/callback"),
	}

	if cfg.JWTSecret == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET. Update it in your environment.")
	}

	return cfg
}

// Production reports whether the app runs in production mode.
func (c *Config) Production() bool {
	return c.Env == "production"
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
