package filestore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todokit/internal/store"
)

var _ store.Blob = (*Store)(nil)

func TestGetMissingFile(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	v, ok, err := s.Get("todos-app-v1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestSetThenGet(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, s.Set("todos-app-v1", `[{"title":"a"}]`))
	require.NoError(t, s.Set("todos-app-v1", `[]`))

	v, ok, err := s.Get("todos-app-v1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, v)

	b, err := os.ReadFile(filepath.Join(dir, "todos-app-v1.json"))
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(b))
}

func TestSetLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, s.Set("k", "v"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "k.json", entries[0].Name())
}

func TestSetCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, s.Set("k", "v"))

	_, err = os.Stat(filepath.Join(dir, "k.json"))
	assert.NoError(t, err)
}

func TestNewDefaultsToWorkingDir(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	s, err := New("")
	require.NoError(t, err)
	assert.Equal(t, wd, s.Dir())
}

func TestFileName(t *testing.T) {
	tests := []struct {
		key     string
		want    string
		wantErr error
	}{
		{key: "todos-app-v1", want: "todos-app-v1.json"},
		{key: "work_2.list", want: "work_2.list.json"},
		{key: "", wantErr: store.ErrEmptyKey},
		{key: "../etc/passwd", wantErr: ErrInvalidKey},
		{key: "a/b", wantErr: ErrInvalidKey},
		{key: "a b", wantErr: ErrInvalidKey},
		{key: " todos", wantErr: ErrInvalidKey},
		{key: "..", wantErr: ErrInvalidKey},
		{key: ".hidden", wantErr: ErrInvalidKey},
		{key: "café", wantErr: ErrInvalidKey},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := fileName(tt.key)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDistinctKeysStaySeparate(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Set("a_b", "one"))
	assert.ErrorIs(t, s.Set("a/b", "two"), ErrInvalidKey)
	assert.ErrorIs(t, s.Set("a b", "three"), ErrInvalidKey)

	v, ok, err := s.Get("a_b")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "one", v)

	_, _, err = s.Get("a/b")
	assert.ErrorIs(t, err, ErrInvalidKey)
}
