// Package config loads dotenv files and reads the process environment into
// a [Config].
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/leofalp/flowcanvas/internal/credentials"
)

// DefaultFiles are loaded by Load when no files are given. Earlier files win.
var DefaultFiles = []string{".env.local", ".env"}

const (
	DefaultAddr      = ":3000"
	DefaultModel     = "gpt-4o-mini"
	ScraperFirecrawl = "firecrawl"
	ScraperWebFetch  = "webfetch"
)

// Config is the runtime configuration of the flowcanvas binary.
type Config struct {
	Addr         string
	DefaultModel string
	Workflow     string
	Scraper      string

	// LogFile receives log output while the terminal UI owns the screen.
	LogFile string

	OpenAIAPIKey  string
	OpenAIBaseURL string

	FirecrawlAPIKey  string
	FirecrawlBaseURL string

	SheetsClientEmail string
	SheetsPrivateKey  string
	SheetsEndpoint    string
	// SheetsServerURL, when set, makes the sheet node write through a remote
	// flowcanvas server instead of holding the credential locally.
	SheetsServerURL   string
}

// SheetsConfigured reports whether a local service-account credential exists.
func (c Config) SheetsConfigured() bool {
	return c.SheetsClientEmail != "" && c.SheetsPrivateKey != ""
}

// LoadEnv loads dotenv files into the process environment. Variables that are
// already set are kept. Missing files are skipped.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = DefaultFiles
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", file, err)
		}
	}
	return nil
}

// Load runs LoadEnv and then reads the process environment.
func Load(files ...string) (Config, error) {
	if err := LoadEnv(files...); err != nil {
		return Config{}, err
	}
	return FromEnv(os.Getenv), nil
}

// FromEnv builds a Config from getenv, applying defaults.
func FromEnv(getenv func(string) string) Config {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	return Config{
		Addr:              get("FLOWCANVAS_ADDR", DefaultAddr),
		DefaultModel:      get("FLOWCANVAS_DEFAULT_MODEL", DefaultModel),
		Workflow:          get("FLOWCANVAS_WORKFLOW", ""),
		Scraper:           strings.ToLower(get("FLOWCANVAS_SCRAPER", ScraperFirecrawl)),
		LogFile:           get("FLOWCANVAS_LOG_FILE", ""),
		OpenAIAPIKey:      get("OPENAI_API_KEY", ""),
		OpenAIBaseURL:     get("OPENAI_API_BASE_URL", ""),
		FirecrawlAPIKey:   get("FIRECRAWL_API_KEY", ""),
		FirecrawlBaseURL:  get("FIRECRAWL_API_BASE_URL", ""),
		SheetsClientEmail: get(credentials.EnvClientEmail, ""),
		SheetsPrivateKey:  credentials.UnescapePrivateKey(getenv(credentials.EnvPrivateKey)),
		SheetsEndpoint:    get("GOOGLE_SHEETS_ENDPOINT", ""),
		SheetsServerURL:   get("FLOWCANVAS_SERVER_URL", ""),
	}
}
