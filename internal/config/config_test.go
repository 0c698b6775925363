package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFrom(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, ".trestle", "config.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFrom_Defaults(t *testing.T) {
	home := t.TempDir()
	cfg, err := LoadFrom(home, envFrom(nil))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".trestle", "trestle.db"), cfg.DBPath)
	assert.False(t, cfg.LogUseCases)
	assert.Equal(t, 0, cfg.MaxPasses)
	assert.Equal(t, "2006-01-02", cfg.DateFormat)
	assert.Empty(t, cfg.Source)
}

func TestLoadFrom_DefaultFileWithComments(t *testing.T) {
	home := t.TempDir()
	path := writeConfig(t, home, `{
		// shared site database
		"db_path": "~/sites/trestle.db",
		"max_passes": 40,
		"date_format": "02 Jan 2006",
	}`)

	cfg, err := LoadFrom(home, envFrom(nil))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "sites", "trestle.db"), cfg.DBPath)
	assert.Equal(t, 40, cfg.MaxPasses)
	assert.Equal(t, "02 Jan 2006", cfg.DateFormat)
	assert.Equal(t, path, cfg.Source)
}

func TestLoadFrom_EnvOverridesFile(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, `{"db_path": "/from/file.db", "max_passes": 40}`)

	cfg, err := LoadFrom(home, envFrom(map[string]string{
		"TRESTLE_DB":           "/from/env.db",
		"TRESTLE_LOG_USECASES": "true",
		"TRESTLE_MAX_PASSES":   "7",
		"TRESTLE_DATE_FORMAT":  "2006/01/02",
	}))
	require.NoError(t, err)
	assert.Equal(t, "/from/env.db", cfg.DBPath)
	assert.True(t, cfg.LogUseCases)
	assert.Equal(t, 7, cfg.MaxPasses)
	assert.Equal(t, "2006/01/02", cfg.DateFormat)
}

func TestLoadFrom_ExplicitFile(t *testing.T) {
	home := t.TempDir()
	other := filepath.Join(t.TempDir(), "ci.jsonc")
	require.NoError(t, os.WriteFile(other, []byte(`{"log_use_cases": true}`), 0o644))

	cfg, err := LoadFrom(home, envFrom(map[string]string{"TRESTLE_CONFIG": other}))
	require.NoError(t, err)
	assert.True(t, cfg.LogUseCases)
	assert.Equal(t, other, cfg.Source)

	_, err = LoadFrom(home, envFrom(map[string]string{"TRESTLE_CONFIG": filepath.Join(home, "missing.json")}))
	assert.Error(t, err, "an explicit config file must exist")
}

func TestDefaultConfig_Validates(t *testing.T) {
	require.NoError(t, DefaultConfig("/home/u").Validate())
}

func TestValidate_DateFormat(t *testing.T) {
	tests := []struct {
		layout string
		ok     bool
	}{
		{"2006-01-02", true},
		{"02 Jan 2006", true},
		{"Jan 2, 2006", true},
		{"01/02/06", true},
		{"date", false},
		{"", false},
	}
	for _, tc := range tests {
		t.Run(tc.layout, func(t *testing.T) {
			cfg := DefaultConfig("/home/u")
			cfg.DateFormat = tc.layout
			err := cfg.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestLoadFrom_Errors(t *testing.T) {
	tests := []struct {
		name string
		file string
		env  map[string]string
	}{
		{"malformed file", `{"db_path": `, nil},
		{"bad bool", "", map[string]string{"TRESTLE_LOG_USECASES": "maybe"}},
		{"bad int", "", map[string]string{"TRESTLE_MAX_PASSES": "many"}},
		{"negative passes", `{"max_passes": -1}`, nil},
		{"layout without verbs", "", map[string]string{"TRESTLE_DATE_FORMAT": "date"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			home := t.TempDir()
			if tc.file != "" {
				writeConfig(t, home, tc.file)
			}
			_, err := LoadFrom(home, envFrom(tc.env))
			assert.Error(t, err)
		})
	}
}

func TestLoad_UsesProcessEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TRESTLE_CONFIG", "")
	t.Setenv("TRESTLE_DB", "/tmp/env.db")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/env.db", cfg.DBPath)
}
