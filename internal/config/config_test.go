package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todokit/internal/filter"
	"github.com/idilsaglam/todokit/internal/storage"
)

func writeConfig(t *testing.T, dir, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "todo.yaml"), []byte(body), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir(), nil)
	require.NoError(t, err)

	assert.Equal(t, BackendFile, cfg.Backend)
	assert.Equal(t, storage.DefaultKey, cfg.Key)
	assert.Equal(t, filter.All, cfg.DefaultFilter)
	assert.Empty(t, cfg.DataDir)
	assert.Equal(t, "classic", cfg.Theme)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "backend: sqlite\ndata_dir: /tmp/todos\nkey: mine\ndefault_filter: active\n")

	cfg, err := Load(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, "/tmp/todos", cfg.DataDir)
	assert.Equal(t, "mine", cfg.Key)
	assert.Equal(t, filter.Active, cfg.DefaultFilter)
	assert.Equal(t, filepath.Join("/tmp/todos", "todos.db"), cfg.SQLitePath())
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "backend: sqlite\n")
	t.Setenv("TODO_BACKEND", "memory")
	t.Setenv("TODO_KEY", "from-env")

	cfg, err := Load(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.Backend)
	assert.Equal(t, "from-env", cfg.Key)
}

func TestFlagsOverrideEnv(t *testing.T) {
	t.Setenv("TODO_BACKEND", "sqlite")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("backend", "", "")
	fs.String("data-dir", "", "")
	require.NoError(t, fs.Parse([]string{"--backend", "memory", "--data-dir", "/srv/todo"}))

	cfg, err := Load(t.TempDir(), fs)
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.Backend)
	assert.Equal(t, "/srv/todo", cfg.DataDir)
}

func TestUnchangedFlagKeepsLowerLayers(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "backend: sqlite\n")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("backend", "", "")
	require.NoError(t, fs.Parse(nil))

	cfg, err := Load(dir, fs)
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Backend)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "unknown backend", body: "backend: redis\n"},
		{name: "mysql without dsn", body: "backend: mysql\n"},
		{name: "unknown default filter", body: "default_filter: someday\n"},
		{name: "blank key", body: "key: \"  \"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.body)
			_, err := Load(dir, nil)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestUnknownDefaultFilterWrapsFilterError(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "default_filter: someday\n")
	_, err := Load(dir, nil)
	assert.ErrorIs(t, err, filter.ErrUnknownFilter)
}

func TestMalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "backend: [unterminated\n")
	_, err := Load(dir, nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalid)
}
