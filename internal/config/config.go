// Package config resolves runtime settings from flags, TODO_* environment
// variables and an optional todo.yaml, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/idilsaglam/todokit/internal/filter"
	"github.com/idilsaglam/todokit/internal/storage"
)

const (
	configFileName = "todo"
	configFileType = "yaml"
	envPrefix      = "TODO"

	KeyBackend       = "backend"
	KeyDataDir       = "data_dir"
	KeyKey           = "key"
	KeyMySQLDSN      = "mysql_dsn"
	KeyDefaultFilter = "default_filter"
	KeyTheme         = "theme"
)

// Backend names accepted by the backend setting.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMySQL  = "mysql"
	BackendMemory = "memory"
)

var ErrInvalid = errors.New("invalid config")

// Config is the resolved, validated settings set.
type Config struct {
	Backend       string
	DataDir       string
	Key           string
	MySQLDSN      string
	DefaultFilter filter.Filter
	Theme         string
}

// Load reads todo.yaml from configDir (the working directory when empty),
// layers TODO_* env vars and any changed flags in fs on top, and validates
// the result. A missing todo.yaml is not an error. Flags are bound by
// their names with '-' read as '_' (--data-dir → data_dir).
func Load(configDir string, fs *pflag.FlagSet) (Config, error) {
	if configDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("getwd: %w", err)
		}
		configDir = wd
	}

	v := viper.New()
	v.SetDefault(KeyBackend, BackendFile)
	v.SetDefault(KeyDataDir, "")
	v.SetDefault(KeyKey, storage.DefaultKey)
	v.SetDefault(KeyMySQLDSN, "")
	v.SetDefault(KeyDefaultFilter, filter.All.String())
	v.SetDefault(KeyTheme, "classic")

	// An explicit path keeps a binary named "todo" in configDir from being
	// picked up as extensionless config.
	path := filepath.Join(configDir, configFileName+"."+configFileType)
	v.SetConfigFile(path)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if fs != nil {
		for _, key := range []string{KeyBackend, KeyDataDir, KeyKey, KeyMySQLDSN, KeyDefaultFilter, KeyTheme} {
			if f := fs.Lookup(strings.ReplaceAll(key, "_", "-")); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", f.Name, err)
				}
			}
		}
	}

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("stat config: %w", err)
	}

	cfg := Config{
		Backend:  strings.ToLower(strings.TrimSpace(v.GetString(KeyBackend))),
		DataDir:  v.GetString(KeyDataDir),
		Key:      strings.TrimSpace(v.GetString(KeyKey)),
		MySQLDSN: v.GetString(KeyMySQLDSN),
		Theme:    v.GetString(KeyTheme),
	}
	f, err := filter.Parse(v.GetString(KeyDefaultFilter))
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s: %w", ErrInvalid, KeyDefaultFilter, err)
	}
	cfg.DefaultFilter = f

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks settings that have a closed set of values.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	case BackendMySQL:
		if c.MySQLDSN == "" {
			return fmt.Errorf("%w: backend mysql needs %s", ErrInvalid, KeyMySQLDSN)
		}
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalid, c.Backend)
	}
	if c.Key == "" {
		return fmt.Errorf("%w: %s must not be empty", ErrInvalid, KeyKey)
	}
	return nil
}

// SQLitePath is where the sqlite backend keeps its database.
func (c Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "todos.db")
}
