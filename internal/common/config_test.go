package common

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DB_URL", "OPENAI_API_KEY", "OPENAI_MODEL", "OPENAI_BASE_URL", "OPENAI_TIMEOUT",
		"OPENAI_RETRIES", "BOT_TOKEN", "GRPC_ADDR", "SAMPLE_SIZE", "SAMPLE_RANGE", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
	t.Chdir(t.TempDir())
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "./decisions.db", cfg.Database.DSN)
	assert.Equal(t, "https://api.openai.com/v1", cfg.LLM.BaseURL)
	assert.Equal(t, 5, cfg.Query.SampleSize)
	assert.Equal(t, 10, cfg.Query.SampleRange)
	assert.Equal(t, 45*time.Second, cfg.LLM.Timeout)
}

func TestLoadConfig_YAMLThenEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("TEST_DB_PATH", "/data/court.db")
	t.Setenv("OPENAI_MODEL", "o3-mini")

	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := "database:\n  dsn: ${TEST_DB_PATH}\nllm:\n  model: gpt-4o\n  timeout: 10s\nquery:\n  sample_size: 3\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/court.db", cfg.Database.DSN)
	assert.Equal(t, "o3-mini", cfg.LLM.Model, "env wins over file")
	assert.Equal(t, 10*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 3, cfg.Query.SampleSize)
	assert.Equal(t, 10, cfg.Query.SampleRange)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	clearEnv(t)
	// godotenv never overrides variables that are already present, even empty ones.
	require.NoError(t, os.Unsetenv("BOT_TOKEN"))
	require.NoError(t, os.WriteFile(".env", []byte("BOT_TOKEN=from-dotenv\n"), 0o600))

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Server.BotToken)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	clearEnv(t)
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()

	err := cfg.ValidateForIngest()
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
	assert.True(t, errors.Is(err, ErrInvalidInput))

	cfg.LLM.APIKey = "sk-test"
	assert.NoError(t, cfg.ValidateForIngest())

	err = cfg.ValidateForServe()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BOT_TOKEN")

	cfg.Server.BotToken = "token"
	assert.NoError(t, cfg.ValidateForServe())

	cfg.Database.DSN = " "
	assert.Error(t, cfg.ValidateForExport())
}
