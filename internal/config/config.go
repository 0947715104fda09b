package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/simonvc/trackit/internal/budget"
)

const DefaultAPIURL = "https://budget-tracker-backend-gd4s.onrender.com"

type Config struct {
	// Remote API
	APIURL string

	// Session token file
	SessionFile string

	// Logging
	LogLevel string
	LogFile  string

	// Local API (serve)
	DBPath     string
	ListenAddr string

	// Display
	Currency string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		APIURL:      getEnv("TRACKIT_API_URL", DefaultAPIURL),
		SessionFile: getEnv("TRACKIT_SESSION_FILE", defaultSessionFile()),
		LogLevel:    getEnv("TRACKIT_LOG_LEVEL", "info"),
		LogFile:     getEnv("TRACKIT_LOG_FILE", ""),
		DBPath:      getEnv("TRACKIT_DB", "trackit.db"),
		ListenAddr:  getEnv("TRACKIT_LISTEN", ":8899"),
		Currency:    strings.ToUpper(getEnv("TRACKIT_CURRENCY", budget.DefaultCurrency)),
	}
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var problems []string

	if u, err := url.Parse(c.APIURL); err != nil || u.Scheme == "" || u.Host == "" {
		problems = append(problems, fmt.Sprintf("invalid API URL %q", c.APIURL))
	}
	if c.SessionFile == "" {
		problems = append(problems, "session file path is empty")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, fmt.Sprintf("invalid log level %q", c.LogLevel))
	}
	if !budget.ValidCurrency(c.Currency) {
		problems = append(problems, fmt.Sprintf("unknown currency %q", c.Currency))
	}

	if len(problems) > 0 {
		return fmt.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".trackit-session.json"
	}
	return filepath.Join(dir, "trackit", "session.json")
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}
