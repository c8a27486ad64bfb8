package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeSettings(t, "settings.yaml", `
preset_dir: /var/lib/blackbox/presets
log_level: debug
palette:
  - "#ff0000"
  - "#00ff00"
`)

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/blackbox/presets", s.PresetDir)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, []string{"#ff0000", "#00ff00"}, s.Palette)
}

func TestLoadTOML(t *testing.T) {
	path := writeSettings(t, "settings.toml", `
preset_dir = "presets"
log_level = "warn"
`)

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "presets", s.PresetDir)
	assert.Equal(t, "warn", s.LogLevel)
	assert.Empty(t, s.Palette)
}

func TestLoadRejectsBadPaletteEntry(t *testing.T) {
	path := writeSettings(t, "settings.yaml", `
palette: ["#ff0000", "not-a-color"]
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not-a-color")
}

func TestLoadRejectsBadLogLevel(t *testing.T) {
	path := writeSettings(t, "settings.yaml", `log_level: shouting`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDefaultStoreOptions(t *testing.T) {
	s := Default()
	assert.Equal(t, "info", s.LogLevel)
	assert.Empty(t, s.StoreOptions(), "defaults add no store options")

	s.Palette = []string{"#123456"}
	assert.Len(t, s.StoreOptions(), 1)
}

func TestNewLogger(t *testing.T) {
	s := Default()
	logger, err := s.NewLogger()
	require.NoError(t, err)
	require.NotNil(t, logger)
	_ = logger.Sync()

	s.LogLevel = "nonsense"
	_, err = s.NewLogger()
	assert.Error(t, err)
}
