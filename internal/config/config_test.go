package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadQuickbarsMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadQuickbars(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultQuickbars(), cfg)
}

func TestLoadQuickbars(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quickbars.yaml")
	data := `
quickbar_count: 10
frame_interval_ms: 16
autosave_interval_sec: 120
log_level: debug
database:
  host: db.local
  dbname: game
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadQuickbars(path)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.QuickbarCount)
	assert.Equal(t, 16*time.Millisecond, cfg.FrameInterval())
	assert.Equal(t, 2*time.Minute, cfg.AutosaveInterval())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "db.local", cfg.Database.Host)
	assert.Equal(t, "game", cfg.Database.DBName)
	// Unset fields keep their defaults.
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 5432, cfg.Database.Port)
}

func TestValidateQuickbarCount(t *testing.T) {
	tests := []struct {
		name    string
		count   int
		wantErr bool
	}{
		{"minimum", 1, false},
		{"maximum", 20, false},
		{"zero", 0, true},
		{"negative", -1, true},
		{"above maximum", 21, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultQuickbars()
			cfg.QuickbarCount = tt.count
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadQuickbarsRejectsInvalidCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quickbars.yaml")
	require.NoError(t, os.WriteFile(path, []byte("quickbar_count: 99\n"), 0o644))

	_, err := LoadQuickbars(path)
	require.Error(t, err)
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{
		Host: "127.0.0.1", Port: 5432,
		User: "u", Password: "p", DBName: "game", SSLMode: "disable",
	}
	assert.Equal(t, "postgres://u:p@127.0.0.1:5432/game?sslmode=disable", d.DSN())
}
