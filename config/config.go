package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Recognized environment variables. Anything else present in the environment
// is still carried in the snapshot map, these are just the keys the app reads.
const (
	KeyPort          = "PORT"
	KeyAppEnv        = "APP_ENV"
	KeyDBName        = "DB_NAME"
	KeyDBHost        = "DB_HOST"
	KeyDBUser        = "DB_USER"
	KeyDBPassword    = "DB_PASSWORD"
	KeyDBPort        = "DB_PORT"
	KeyDBSSLMode     = "DB_SSLMODE"
	KeyAdminUsername = "ADMIN_USERNAME"
	KeyAdminPassword = "ADMIN_PASSWORD"
	KeyEncryptionKey = "ENCRYPTION_KEY"
	KeySessionSecret = "SESSION_SECRET"
	KeySessionMaxAge = "SESSION_MAX_AGE"
	KeyRedisAddr     = "REDIS_ADDR"
	KeyRedisPassword = "REDIS_PASSWORD"
	KeyRedisDB       = "REDIS_DB"
	KeyResendAPIKey  = "RESEND_API_KEY"
	KeyNotifyEmail   = "NOTIFY_EMAIL"
)

// New snapshots the process environment into a map so the rest of the app
// reads configuration through one place instead of os.Getenv scattered around.
func New() map[string]string {
	environ := os.Environ()
	envAsMap := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry != "" {
			key, value := split(entry)
			envAsMap[key] = value
		}
	}
	return envAsMap
}

// assumes entry is not the empty string
func split(entry string) (key, value string) {
	parts := strings.SplitN(entry, "=", 2)
	if len(parts) < 2 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

func GetString(config map[string]string, key string, defaultValue string) string {
	if config == nil {
		return defaultValue
	}

	if val, ok := config[key]; ok && val != "" {
		return val
	}
	return defaultValue
}

func GetInt(config map[string]string, key string, defaultValue int) int {
	if config == nil {
		return defaultValue
	}

	s, ok := config[key]
	if !ok {
		return defaultValue
	}

	asInt, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}

	return asInt
}

// IsDevelopment reports whether the app runs with verbose error output.
func IsDevelopment(config map[string]string) bool {
	return GetString(config, KeyAppEnv, "development") == "development"
}

// DatabaseDSN assembles the postgres connection string from the individual
// DB_* variables, falling back to local development defaults.
func DatabaseDSN(config map[string]string) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		GetString(config, KeyDBHost, "localhost"),
		GetString(config, KeyDBUser, "postgres"),
		GetString(config, KeyDBPassword, ""),
		GetString(config, KeyDBName, "akuko_blog"),
		GetString(config, KeyDBPort, "5432"),
		GetString(config, KeyDBSSLMode, "disable"),
	)
}
