package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_PersistsAsTables(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set("llm.provider", "gemini"))
	require.NoError(t, store.Set("generation.temperature", 0.2))
	require.NoError(t, store.Set("generation.max_tokens", 4096))

	raw, err := os.ReadFile(filepath.Join(dir, ConfigFileName))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[llm]")
	assert.Contains(t, string(raw), "[generation]")

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	reopened, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "gemini", reopened.GetString("llm.provider"))
	assert.InDelta(t, 0.2, reopened.GetFloat("generation.temperature"), 1e-9)
	assert.Equal(t, 4096, reopened.GetInt("generation.max_tokens"))
}

func TestConfigStore_ReadsHandWrittenFile(t *testing.T) {
	dir := t.TempDir()
	content := `
[llm]
provider = "ollama"
base_url = "http://localhost:11434"

[generation]
temperature = 1
requests_per_minute = 5

[validation]
mode = "browser"
headless = true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"string", store.GetString("llm.provider"), "ollama"},
		{"int", store.GetInt("generation.requests_per_minute"), 5},
		{"float from int", store.GetFloat("generation.temperature"), 1.0},
		{"bool", store.GetBool("validation.headless"), true},
		{"missing string", store.GetString("llm.api_key"), ""},
		{"wrong type", store.GetInt("llm.provider"), 0},
		{"missing float", store.GetFloat("nope"), 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestConfigStore_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("[llm\nprovider="), 0o600))

	_, err := NewConfigStore(dir)
	assert.Error(t, err)
}

func TestNestAndFlatten(t *testing.T) {
	flat := map[string]any{"a.b": 1, "a.c": "x", "d": true}

	nested := nestMap(flat)
	assert.Equal(t, map[string]any{"a": map[string]any{"b": 1, "c": "x"}, "d": true}, nested)
	assert.Equal(t, flat, flattenMap(nested, ""))
}
