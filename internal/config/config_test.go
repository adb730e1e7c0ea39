package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/common"
)

func newViper(t *testing.T, yaml string) *viper.Viper {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	ConfigureEnv(v)
	if yaml != "" {
		v.SetConfigType("yaml")
		require.NoError(t, v.ReadConfig(strings.NewReader(yaml)))
	}
	return v
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	cfg, err := Load(newViper(t, ""))
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "/home/tester/.local/share/allocate/allocate.db", cfg.Database.Path)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 5*time.Second, cfg.Redis.DialTimeout)
	assert.Equal(t, "allocate:", cfg.Redis.KeyPrefix)
	assert.Equal(t, 10, cfg.Display.Limit)
	assert.Equal(t, "matching_results.csv", cfg.Export.CSVPath)
	assert.Equal(t, time.Second, cfg.Sheets.RetryDelay)
	assert.True(t, cfg.Sheets.EnableFormatting)
}

func TestLoad_FileAndEnv(t *testing.T) {
	t.Setenv("ALLOCATE_DISPLAY_LIMIT", "25")
	t.Setenv("ALLOCATE_REDIS_DIAL_TIMEOUT", "250ms")

	cfg, err := Load(newViper(t, `
storage:
  backend: " Redis "
redis:
  addr: cache:6380
  db: 2
sheets:
  retry_delay: 3s
  spreadsheet_name: Cohort
`))
	require.NoError(t, err)

	assert.Equal(t, BackendRedis, cfg.Storage.Backend)
	assert.Equal(t, "cache:6380", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 250*time.Millisecond, cfg.Redis.DialTimeout)
	assert.Equal(t, 25, cfg.Display.Limit)
	assert.Equal(t, 3*time.Second, cfg.Sheets.RetryDelay)
	assert.Equal(t, "Cohort", cfg.Sheets.SpreadsheetName)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "unknown backend", yaml: "storage:\n  backend: mongo\n"},
		{name: "empty sqlite path", yaml: "database:\n  path: \"\"\n"},
		{name: "empty redis addr", yaml: "storage:\n  backend: redis\nredis:\n  addr: \"\"\n"},
		{name: "zero display limit", yaml: "display:\n  limit: 0\n"},
		{name: "bad duration", yaml: "redis:\n  dial_timeout: soon\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(newViper(t, tt.yaml))
			assert.ErrorIs(t, err, common.ErrInvalidConfig)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("ALLOCATE_TEST_DOTENV=from-file\nALLOCATE_TEST_PRESET=from-file\n"), 0600))

	t.Setenv("ALLOCATE_TEST_PRESET", "from-env")
	t.Cleanup(func() { _ = os.Unsetenv("ALLOCATE_TEST_DOTENV") })

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env"), path))

	assert.Equal(t, "from-file", os.Getenv("ALLOCATE_TEST_DOTENV"))
	assert.Equal(t, "from-env", os.Getenv("ALLOCATE_TEST_PRESET"))
}

func TestSheetsConfig(t *testing.T) {
	t.Setenv("GOOGLE_SHEETS_CLIENT_ID", "")
	t.Setenv("GOOGLE_SHEETS_CLIENT_SECRET", "")
	t.Setenv("GOOGLE_SHEETS_REFRESH_TOKEN", "")
	t.Setenv("GOOGLE_SHEETS_SPREADSHEET_ID", "")
	t.Setenv("GOOGLE_SHEETS_SPREADSHEET_NAME", "")
	t.Setenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "")

	cfg, err := Load(newViper(t, ""))
	require.NoError(t, err)

	_, err = cfg.SheetsConfig()
	assert.ErrorIs(t, err, common.ErrInvalidConfig)

	t.Setenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "/keys/sa.json")
	sheetsCfg, err := cfg.SheetsConfig()
	require.NoError(t, err)
	assert.Equal(t, "/keys/sa.json", sheetsCfg.ServiceAccountPath)
	assert.Equal(t, "Placement Matches", sheetsCfg.SpreadsheetName)
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	t.Setenv("DATA_DIR", "/srv/data")

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "~", want: "/home/tester"},
		{in: "~/allocate.db", want: "/home/tester/allocate.db"},
		{in: "$DATA_DIR/allocate.db", want: "/srv/data/allocate.db"},
		{in: "/abs/path.db", want: "/abs/path.db"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}
