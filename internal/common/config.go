package common

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Server   ServerConfig   `yaml:"server"`
	PDF      PDFConfig      `yaml:"pdf"`
	LLM      LLMConfig      `yaml:"llm"`
	Query    QueryConfig    `yaml:"query"`
	LogLevel string         `yaml:"log_level"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	// DSN is a SQLite file path (or ":memory:") or a postgres:// URL.
	DSN              string        `yaml:"dsn"`
	MaxConns         int32         `yaml:"max_conns"`
	MinConns         int32         `yaml:"min_conns"`
	MaxConnLifetime  time.Duration `yaml:"max_conn_lifetime"`
	MaxConnIdleTime  time.Duration `yaml:"max_conn_idle_time"`
	DialTimeout      time.Duration `yaml:"dial_timeout"`
	StatementTimeout time.Duration `yaml:"statement_timeout"`
}

// ServerConfig holds query transport configuration
type ServerConfig struct {
	GRPCAddr string `yaml:"grpc_addr"`
	BotToken string `yaml:"bot_token"`
}

// PDFConfig holds text extraction configuration
type PDFConfig struct {
	MaxPages int `yaml:"max_pages"`
}

// LLMConfig holds inference endpoint configuration
type LLMConfig struct {
	BaseURL     string        `yaml:"base_url"`
	Model       string        `yaml:"model"`
	APIKey      string        `yaml:"api_key"`
	Temperature float32       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"`
	JSONMode    bool          `yaml:"json_mode"`
	Retries     int           `yaml:"retries"`
	RetryDelay  time.Duration `yaml:"retry_delay"`
}

// QueryConfig holds chat front end sampling parameters
type QueryConfig struct {
	SampleSize  int `yaml:"sample_size"`
	SampleRange int `yaml:"sample_range"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			DSN:             "./decisions.db",
			MaxConns:        10,
			MinConns:        1,
			MaxConnLifetime: 30 * time.Minute,
			MaxConnIdleTime: 5 * time.Minute,
			DialTimeout:     3 * time.Second,
		},
		Server: ServerConfig{
			GRPCAddr: ":8080",
		},
		LLM: LLMConfig{
			BaseURL:    "https://api.openai.com/v1",
			Model:      "gpt-4o-mini",
			Timeout:    45 * time.Second,
			JSONMode:   true,
			RetryDelay: 2 * time.Second,
		},
		Query: QueryConfig{
			SampleSize:  5,
			SampleRange: 10,
		},
		LogLevel: "info",
	}
}

// LoadConfig builds the configuration from defaults, an optional .env file in
// the working directory, an optional YAML file at path, and finally the
// process environment (highest precedence).
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, WrapError(err, "load .env")
	}

	cfg := DefaultConfig()
	if path != "" {
		// #nosec G304 -- path is operator-provided config path.
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, WrapError(err, "read config file")
		}
		expanded := os.ExpandEnv(strings.ReplaceAll(string(raw), "\r\n", "\n"))
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, WrapError(err, "decode config file")
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Database.DSN = getEnv("DB_URL", c.Database.DSN)
	c.Database.MaxConns = getEnvAsInt32("DB_MAX_CONNS", c.Database.MaxConns)
	c.Database.MinConns = getEnvAsInt32("DB_MIN_CONNS", c.Database.MinConns)
	c.Database.MaxConnLifetime = getEnvAsDuration("DB_MAX_CONN_LIFETIME", c.Database.MaxConnLifetime)
	c.Database.MaxConnIdleTime = getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", c.Database.MaxConnIdleTime)
	c.Database.DialTimeout = getEnvAsDuration("DB_DIAL_TIMEOUT", c.Database.DialTimeout)
	c.Database.StatementTimeout = getEnvAsDuration("DB_STATEMENT_TIMEOUT", c.Database.StatementTimeout)

	c.Server.GRPCAddr = getEnv("GRPC_ADDR", c.Server.GRPCAddr)
	c.Server.BotToken = getEnv("BOT_TOKEN", c.Server.BotToken)

	c.PDF.MaxPages = getEnvAsInt("PDF_MAX_PAGES", c.PDF.MaxPages)

	c.LLM.BaseURL = getEnv("OPENAI_BASE_URL", c.LLM.BaseURL)
	c.LLM.Model = getEnv("OPENAI_MODEL", c.LLM.Model)
	c.LLM.APIKey = getEnv("OPENAI_API_KEY", c.LLM.APIKey)
	c.LLM.Temperature = getEnvAsFloat32("OPENAI_TEMPERATURE", c.LLM.Temperature)
	c.LLM.Timeout = getEnvAsDuration("OPENAI_TIMEOUT", c.LLM.Timeout)
	c.LLM.JSONMode = getEnvAsBool("OPENAI_JSON_MODE", c.LLM.JSONMode)
	c.LLM.Retries = getEnvAsInt("OPENAI_RETRIES", c.LLM.Retries)
	c.LLM.RetryDelay = getEnvAsDuration("OPENAI_RETRY_DELAY", c.LLM.RetryDelay)

	c.Query.SampleSize = getEnvAsInt("SAMPLE_SIZE", c.Query.SampleSize)
	c.Query.SampleRange = getEnvAsInt("SAMPLE_RANGE", c.Query.SampleRange)

	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// validateDatabase checks the settings every command needs.
func (c *Config) validateDatabase() error {
	if strings.TrimSpace(c.Database.DSN) == "" {
		return NewAppError("CONFIG_ERROR", "DB_URL is required", ErrInvalidInput)
	}
	return nil
}

// ValidateForIngest validates the configuration needed by the batch pipeline.
func (c *Config) ValidateForIngest() error {
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if c.LLM.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "OPENAI_API_KEY is required", ErrInvalidInput)
	}
	if c.LLM.Model == "" {
		return NewAppError("CONFIG_ERROR", "OPENAI_MODEL is required", ErrInvalidInput)
	}
	if c.LLM.Retries < 0 {
		return NewAppError("CONFIG_ERROR", fmt.Sprintf("OPENAI_RETRIES must be >= 0, got %d", c.LLM.Retries), ErrInvalidInput)
	}
	return nil
}

// ValidateForServe validates the configuration needed by the query server.
func (c *Config) ValidateForServe() error {
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if c.Server.BotToken == "" {
		return NewAppError("CONFIG_ERROR", "BOT_TOKEN is required", ErrInvalidInput)
	}
	if c.Server.GRPCAddr == "" {
		return NewAppError("CONFIG_ERROR", "GRPC_ADDR is required", ErrInvalidInput)
	}
	if c.Query.SampleSize <= 0 || c.Query.SampleRange <= 0 {
		return NewAppError("CONFIG_ERROR", "SAMPLE_SIZE and SAMPLE_RANGE must be positive", ErrInvalidInput)
	}
	return nil
}

// ValidateForExport validates the configuration needed by read-only commands.
func (c *Config) ValidateForExport() error {
	return c.validateDatabase()
}
