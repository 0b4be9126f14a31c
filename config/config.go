package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
// CLI flags override the matching fields after Load.
type Config struct {
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
	PersistRuns      bool
	DBConnectRetries int

	Source         string
	SearchURL      string
	HotelAPIURL    string
	HotelAPISize   int
	RequestTimeout time.Duration
	UseBrowser     bool
	ChromeBin      string
	SelectorsPath  string
	AcceptLanguage string

	CSVOutputPath  string
	JSONOutputPath string

	LogLevel string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "deals"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "deals123"),
		PostgresDB:       getEnv("POSTGRES_DB", "hotel_deals"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		PersistRuns:      getEnvBool("PERSIST_RUNS", false),
		DBConnectRetries: getEnvInt("DB_CONNECT_RETRIES", 5),

		Source:         getEnv("LISTING_SOURCE", "booking"),
		SearchURL:      getEnv("SEARCH_URL", "https://www.booking.com/searchresults.html"),
		HotelAPIURL:    getEnv("HOTEL_API_URL", "https://random-data-api.com/api/v2/hotels"),
		HotelAPISize:   getEnvInt("HOTEL_API_SIZE", 12),
		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_SEC", 20)) * time.Second,
		UseBrowser:     getEnvBool("USE_BROWSER", false),
		ChromeBin:      getEnv("CHROME_BIN", ""),
		SelectorsPath:  getEnv("SELECTORS_PATH", ""),
		AcceptLanguage: getEnv("ACCEPT_LANGUAGE", "en-US,en;q=0.9"),

		CSVOutputPath:  getEnv("CSV_OUTPUT_PATH", "budget_hotels.csv"),
		JSONOutputPath: getEnv("JSON_OUTPUT_PATH", "budget_hotels.json"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return fallback
}
