// Package settings loads the optional host-supplied settings file for the
// graph library: preset directory, palette override and log level. The
// file path is always explicit — the library reads no environment
// variables and probes no well-known locations.
package settings

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/flightbox/blackbox-graphs/graphcfg"
)

// Settings are the host-tunable knobs. Zero values mean "use the library
// default".
type Settings struct {
	// PresetDir is where the file-backed preset store keeps its files.
	PresetDir string `mapstructure:"preset_dir"`
	// Palette overrides the auto-assignment color palette. Entries must
	// be hex colors.
	Palette []string `mapstructure:"palette"`
	// LogLevel is a zap level name ("debug", "info", ...).
	LogLevel string `mapstructure:"log_level"`
}

// Default returns the settings used when the host has no settings file.
func Default() *Settings {
	return &Settings{LogLevel: "info"}
}

// Load reads a settings file from an explicit path; the format (yaml, json
// or toml) follows the file extension. Palette entries are validated as
// hex colors — a bad entry is an error, not a silent fallback, since a
// half-applied palette would break the stable-color invariant.
func Load(path string) (*Settings, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read settings file: %w", err)
	}

	s := Default()
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) validate() error {
	for i, entry := range s.Palette {
		if _, err := colorful.Hex(entry); err != nil {
			return fmt.Errorf("palette entry %d (%q) is not a hex color: %w", i, entry, err)
		}
	}
	if s.LogLevel != "" {
		if _, err := zapcore.ParseLevel(s.LogLevel); err != nil {
			return fmt.Errorf("invalid log level %q: %w", s.LogLevel, err)
		}
	}
	return nil
}

// StoreOptions renders the settings as graph store options.
func (s *Settings) StoreOptions() []graphcfg.StoreOption {
	var opts []graphcfg.StoreOption
	if len(s.Palette) > 0 {
		opts = append(opts, graphcfg.WithPalette(s.Palette))
	}
	return opts
}

// NewLogger builds a production zap logger at the configured level.
func (s *Settings) NewLogger() (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if s.LogLevel != "" {
		parsed, err := zapcore.ParseLevel(s.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", s.LogLevel, err)
		}
		level = parsed
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
