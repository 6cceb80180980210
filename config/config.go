package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultCCSURL     = "https://shop.ccs.com/collections/shoes"
	DefaultTacticsURL = "https://www.tactics.com/mens-shoes"
)

// Config holds everything a scrape run needs. It is built once by Load and
// passed down explicitly.
type Config struct {
	// Database credentials
	SecretName  string
	AWSRegion   string
	DatabaseURL string // bypasses Secrets Manager when set
	TableName   string

	// Sources
	CCSURL     string
	TacticsURL string

	// Browser
	RenderBackend     string
	ChromeDriverPath  string
	SeleniumBasePort  int
	SeleniumPortRange int
	Headless          bool
	WindowWidth       int
	WindowHeight      int
	HTTPTimeout       time.Duration
	RenderTimeout     time.Duration

	CCSPairing string

	// Optional outputs
	MongoURI       string
	MongoDatabase  string
	SnapshotBucket string
	SendgridAPIKey string
	ReportFrom     string
	ReportTo       string

	Port string
}

// Load loads environment variables from .env file, then the process
// environment, falling back to defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[Config] No .env file found, using default values or system environment variables")
	}

	width, height, err := parseWindow(getEnv("BROWSER_WINDOW", "1400,1500"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		SecretName:  getEnv("DB_SECRET_NAME", "prod/database"),
		AWSRegion:   getEnv("AWS_REGION", "us-east-2"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		TableName:   getEnv("SHOES_TABLE", "shoes"),

		CCSURL:     getEnv("CCS_URL", DefaultCCSURL),
		TacticsURL: getEnv("TACTICS_URL", DefaultTacticsURL),

		RenderBackend:     strings.ToLower(getEnv("RENDER_BACKEND", "selenium")),
		ChromeDriverPath:  getEnv("CHROMEDRIVER_PATH", "/usr/local/bin/chromedriver"),
		SeleniumBasePort:  getEnvInt("SELENIUM_BASE_PORT", 4444),
		SeleniumPortRange: getEnvInt("SELENIUM_PORT_RANGE", 16),
		Headless:          getEnvBool("BROWSER_HEADLESS", true),
		WindowWidth:       width,
		WindowHeight:      height,
		HTTPTimeout:       getEnvDuration("HTTP_TIMEOUT", 30*time.Second),
		RenderTimeout:     getEnvDuration("RENDER_TIMEOUT", 2*time.Minute),

		CCSPairing: strings.ToLower(getEnv("CCS_PAIRING", "truncate")),

		MongoURI:       os.Getenv("MONGO_URI"),
		MongoDatabase:  getEnv("MONGO_DATABASE", "shoes"),
		SnapshotBucket: os.Getenv("SNAPSHOT_BUCKET"),
		SendgridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		ReportFrom:     getEnv("REPORT_FROM", "no-reply@shoe-tracker.dev"),
		ReportTo:       os.Getenv("REPORT_TO"),

		Port: getEnv("PORT", "8080"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the pipeline cannot run with.
func (c *Config) Validate() error {
	switch c.RenderBackend {
	case "selenium", "chromedp":
	default:
		return fmt.Errorf("unknown RENDER_BACKEND %q (want selenium or chromedp)", c.RenderBackend)
	}
	switch c.CCSPairing {
	case "truncate", "strict":
	default:
		return fmt.Errorf("unknown CCS_PAIRING %q (want truncate or strict)", c.CCSPairing)
	}
	if c.TableName == "" {
		return fmt.Errorf("SHOES_TABLE must not be empty")
	}
	if c.DatabaseURL == "" && (c.SecretName == "" || c.AWSRegion == "") {
		return fmt.Errorf("either DATABASE_URL or DB_SECRET_NAME and AWS_REGION must be set")
	}
	if c.SeleniumPortRange <= 0 {
		return fmt.Errorf("SELENIUM_PORT_RANGE must be positive, got %d", c.SeleniumPortRange)
	}
	return nil
}

// ReportEnabled reports whether a run summary email should be sent.
func (c *Config) ReportEnabled() bool {
	return c.SendgridAPIKey != "" && c.ReportTo != ""
}

func parseWindow(v string) (int, int, error) {
	w, h, ok := strings.Cut(v, ",")
	if !ok {
		return 0, 0, fmt.Errorf("BROWSER_WINDOW must look like 1400,1500, got %q", v)
	}
	width, err := strconv.Atoi(strings.TrimSpace(w))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid BROWSER_WINDOW width: %w", err)
	}
	height, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid BROWSER_WINDOW height: %w", err)
	}
	return width, height, nil
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

func getEnvBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
