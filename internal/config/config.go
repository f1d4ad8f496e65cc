package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Supabase  SupabaseConfig
	Occupancy OccupancyConfig
	Assistant AssistantConfig
	Bank      BankConfig
	AI        AIConfig
	MongoDB   MongoDBConfig
	Sheets    SheetsConfig
	Scheduler SchedulerConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// SupabaseConfig points at the hosted datastore REST surface.
type SupabaseConfig struct {
	URL    string
	APIKey string
}

// OccupancyConfig carries the occupancy domain constants supplied by the
// operator: the occupancy target and the default seating capacity ceiling.
type OccupancyConfig struct {
	TargetPct   float64
	CapacityMax int
}

// AssistantConfig contains the chat webhook options.
type AssistantConfig struct {
	VerifyToken string
}

// BankConfig contains credentials for the banking-data aggregator. An empty
// base URL disables the treasury module.
type BankConfig struct {
	BaseURL     string
	AccessToken string
}

// AIConfig holds settings for LLM providers.
type AIConfig struct {
	AnthropicKey string
}

// MongoDBConfig holds settings for the notification history store. An empty
// URI keeps the notification center in-memory only.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// SheetsConfig contains configuration for the report export adapter. An
// empty spreadsheet ID disables exports.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// SchedulerConfig holds cron-related settings.
type SchedulerConfig struct {
	BankSyncSchedule string
	Timezone         string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	targetPct, err := getenvFloat("TARGET_OCCUPANCY_PCT", 75)
	if err != nil {
		return nil, err
	}

	capacityMax, err := getenvInt("CAPACITY_MAX", 0)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Supabase: SupabaseConfig{
			URL:    os.Getenv("SUPABASE_URL"),
			APIKey: os.Getenv("SUPABASE_ANON_KEY"),
		},
		Occupancy: OccupancyConfig{
			TargetPct:   targetPct,
			CapacityMax: capacityMax,
		},
		Assistant: AssistantConfig{
			VerifyToken: os.Getenv("ASSISTANT_VERIFY_TOKEN"),
		},
		Bank: BankConfig{
			BaseURL:     os.Getenv("BANK_API_BASE_URL"),
			AccessToken: os.Getenv("BANK_API_TOKEN"),
		},
		AI: AIConfig{
			AnthropicKey: os.Getenv("ANTHROPIC_API_KEY"),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "tablero"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_EXPORT_ID"),
		},
		Scheduler: SchedulerConfig{
			BankSyncSchedule: getenvWithDefault("BANK_SYNC_CRON_SCHEDULE", "0 * * * *"),
			Timezone:         getenvWithDefault("TIMEZONE", "Europe/Madrid"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated. The
// bank, AI, Mongo and Sheets integrations are optional and validated only
// when partially configured.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch {
	case c.Supabase.URL == "":
		return errors.New("SUPABASE_URL must be provided")
	case c.Supabase.APIKey == "":
		return errors.New("SUPABASE_ANON_KEY must be provided")
	}

	if c.Occupancy.TargetPct <= 0 || c.Occupancy.TargetPct > 100 {
		return errors.New("TARGET_OCCUPANCY_PCT must be in (0, 100]")
	}

	if c.Occupancy.CapacityMax <= 0 {
		return errors.New("CAPACITY_MAX must be a positive integer")
	}

	if c.Assistant.VerifyToken == "" {
		return errors.New("ASSISTANT_VERIFY_TOKEN must be provided")
	}

	if c.Bank.BaseURL != "" && c.Bank.AccessToken == "" {
		return errors.New("BANK_API_TOKEN must be provided when BANK_API_BASE_URL is set")
	}

	if c.Sheets.SpreadsheetID != "" && c.Sheets.CredentialsPath == "" {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided when GOOGLE_SHEET_EXPORT_ID is set")
	}

	if c.Scheduler.BankSyncSchedule == "" {
		return errors.New("BANK_SYNC_CRON_SCHEDULE must be provided")
	}

	if c.Scheduler.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvFloat(key string, fallback float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be numeric: %w", key, err)
	}
	return value, nil
}

func getenvInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return value, nil
}
