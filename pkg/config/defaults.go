// Package config provides centralized default values for the content
// inventory service, overridable via environment variables or a .env file.
package config

import (
	"bufio"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

var envLoaded sync.Once

func loadEnvFile() {
	envLoaded.Do(func() {
		file, err := os.Open(".env")
		if err != nil {
			return
		}
		defer file.Close()

		log.Println("Loading configuration overrides from .env file...")
		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())

			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}

			parts := strings.SplitN(line, "=", 2)
			if len(parts) != 2 {
				continue
			}

			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])

			if os.Getenv(key) == "" {
				os.Setenv(key, value)
			}
		}
	})
}

func getEnvInt(key string, defaultValue int) int {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.Atoi(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%d (default: %d)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvString(key string, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		if val != defaultValue {
			log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
		}
		return val
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := time.ParseDuration(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

var (
	// Server Configuration
	Port               string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration
	CORSOrigins        []string

	// Content Store
	DBDriver         string
	DBPath           string
	TursoDatabaseURL string
	TursoAuthToken   string

	// Database Pool
	DBMaxOpenConns     int
	DBMaxIdleConns     int
	DBConnMaxLifetime  time.Duration
	SlowQueryThreshold time.Duration

	// Site / Permalinks
	SiteBaseURL        string
	DefaultContentType string

	// Media Aggregation
	// AttachmentSizeSampleCap bounds the byte-size sum to the first N
	// attachments by id. The reported total is an approximation of the
	// full library size, preserved deliberately as a performance guard.
	AttachmentSizeSampleCap int
	AttachmentStatWorkers   int

	// Export
	ExportDir string

	// Auth
	AdminPassword  string
	EditorPassword string
	JWTSecret      string

	// Logging
	LogDirectory string
)

func init() {
	loadEnvFile()

	// Server Configuration
	Port = getEnvString("PORT", "8080")
	ServerReadTimeout = getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second)
	ServerWriteTimeout = getEnvDuration("SERVER_WRITE_TIMEOUT", 30*time.Second)
	ServerIdleTimeout = getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second)
	CORSOrigins = strings.Split(getEnvString("CORS_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000"), ",")

	// Content Store
	DBDriver = getEnvString("DB_DRIVER", "sqlite3")
	DBPath = getEnvString("DB_PATH", "content-inventory.db")
	TursoDatabaseURL = getEnvString("TURSO_DATABASE_URL", "")
	TursoAuthToken = getEnvString("TURSO_AUTH_TOKEN", "")

	// Database Pool
	DBMaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", 10)
	DBMaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", 3)
	DBConnMaxLifetime = getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute)
	SlowQueryThreshold = getEnvDuration("SLOW_QUERY_THRESHOLD", 50*time.Millisecond)

	// Site / Permalinks
	SiteBaseURL = strings.TrimRight(getEnvString("SITE_BASE_URL", "http://localhost:8080"), "/")
	DefaultContentType = getEnvString("DEFAULT_CONTENT_TYPE", "page")

	// Media Aggregation
	AttachmentSizeSampleCap = getEnvInt("ATTACHMENT_SIZE_SAMPLE_CAP", 1000)
	AttachmentStatWorkers = getEnvInt("ATTACHMENT_STAT_WORKERS", 8)

	// Export
	ExportDir = getEnvString("EXPORT_DIR", os.TempDir())

	// Auth
	AdminPassword = getEnvString("ADMIN_PASSWORD", "")
	EditorPassword = getEnvString("EDITOR_PASSWORD", "")
	JWTSecret = getEnvString("JWT_SECRET", "")

	// Logging
	LogDirectory = getEnvString("LOG_DIR", "log")
}
