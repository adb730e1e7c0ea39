// Package config loads typed application configuration from files, the
// environment and command line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/common"
	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/sheets"
)

// EnvPrefix is the prefix of every environment variable the application reads.
const EnvPrefix = "ALLOCATE"

// Backend selects the record store.
type Backend string

// Supported storage backends.
const (
	BackendSQLite Backend = "sqlite"
	BackendRedis  Backend = "redis"
	BackendMemory Backend = "memory"
)

// Config is the typed application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Export   ExportConfig   `mapstructure:"export"`
	Display  DisplayConfig  `mapstructure:"display"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Sheets   sheets.Config  `mapstructure:"sheets"`
}

// DatabaseConfig locates the SQLite database.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// StorageConfig selects the record store.
type StorageConfig struct {
	Backend Backend `mapstructure:"backend"`
}

// RedisConfig configures the Redis record store.
type RedisConfig struct {
	Addr        string        `mapstructure:"addr"`
	Password    string        `mapstructure:"password"`
	KeyPrefix   string        `mapstructure:"key_prefix"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
	DB          int           `mapstructure:"db"`
}

// LoggingConfig configures slog.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ExportConfig configures result export.
type ExportConfig struct {
	CSVPath string `mapstructure:"csv_path"`
}

// DisplayConfig configures terminal output.
type DisplayConfig struct {
	Limit int `mapstructure:"limit"`
}

// MetricsConfig configures the Prometheus textfile output.
type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("database.path", "$HOME/.local/share/allocate/allocate.db")
	v.SetDefault("storage.backend", string(BackendSQLite))
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.key_prefix", "allocate:")
	v.SetDefault("redis.dial_timeout", "5s")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("export.csv_path", "matching_results.csv")
	v.SetDefault("display.limit", 10)
	v.SetDefault("metrics.textfile", "")

	def := sheets.DefaultConfig()
	for _, key := range []string{"client_id", "client_secret", "refresh_token", "service_account_path", "spreadsheet_id"} {
		v.SetDefault("sheets."+key, "")
	}
	v.SetDefault("sheets.time_zone", def.TimeZone)
	v.SetDefault("sheets.spreadsheet_name", def.SpreadsheetName)
	v.SetDefault("sheets.batch_size", def.BatchSize)
	v.SetDefault("sheets.retry_attempts", def.RetryAttempts)
	v.SetDefault("sheets.retry_delay", def.RetryDelay.String())
	v.SetDefault("sheets.enable_formatting", def.EnableFormatting)
}

// ConfigureEnv makes v read ALLOCATE_* environment variables, with dots in
// keys mapped to underscores (database.path -> ALLOCATE_DATABASE_PATH).
func ConfigureEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
}

// LoadDotEnv loads variables from the given .env files into the process
// environment. Missing files are skipped; variables already set win.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// Load decodes v into a Config and validates it.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	err := v.Unmarshal(&cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		stringToBackendHookFunc(),
	)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}

	cfg.Database.Path = ExpandPath(cfg.Database.Path)
	cfg.Export.CSVPath = ExpandPath(cfg.Export.CSVPath)
	cfg.Metrics.Textfile = ExpandPath(cfg.Metrics.Textfile)
	cfg.Sheets.ServiceAccountPath = ExpandPath(cfg.Sheets.ServiceAccountPath)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("%w: database.path is required for the sqlite backend", common.ErrInvalidConfig)
		}
	case BackendRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("%w: redis.addr is required for the redis backend", common.ErrInvalidConfig)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("%w: unknown storage backend %q", common.ErrInvalidConfig, c.Storage.Backend)
	}

	if c.Display.Limit <= 0 {
		return fmt.Errorf("%w: display.limit must be positive, got %d", common.ErrInvalidConfig, c.Display.Limit)
	}
	return nil
}

// stringToBackendHookFunc normalizes backend names such as "SQLite".
func stringToBackendHookFunc() mapstructure.DecodeHookFuncType {
	return func(from, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to != reflect.TypeOf(Backend("")) {
			return data, nil
		}
		return Backend(strings.ToLower(strings.TrimSpace(data.(string)))), nil
	}
}

// ExpandPath expands a leading ~ and $VAR references in path. Paths that
// need no expansion are returned unchanged.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return os.ExpandEnv(path)
}
