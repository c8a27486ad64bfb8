package presets

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	toml "github.com/pelletier/go-toml/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/flightbox/blackbox-graphs/graphcfg"
	"github.com/flightbox/blackbox-graphs/metrics"
	"github.com/flightbox/blackbox-graphs/tracing"
)

// FileFormat selects the on-disk encoding for newly written presets.
type FileFormat string

const (
	FormatJSON FileFormat = "json"
	FormatYAML FileFormat = "yaml"
	FormatTOML FileFormat = "toml"
)

// FileStore keeps one file per preset under a directory, named by preset
// ID. Reads accept .json, .yaml/.yml and .toml regardless of the write
// format, so a directory can mix encodings.
type FileStore struct {
	dir    string
	format FileFormat
	logger *zap.Logger
}

// NewFileStore opens (creating if needed) a preset directory. An empty
// format defaults to JSON.
func NewFileStore(dir string, format FileFormat, logger *zap.Logger) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("preset directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create preset directory: %w", err)
	}
	if format == "" {
		format = FormatJSON
	}
	switch format {
	case FormatJSON, FormatYAML, FormatTOML:
	default:
		return nil, fmt.Errorf("unsupported preset format %q", format)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileStore{dir: dir, format: format, logger: logger}, nil
}

// Save implements Store.
func (fs *FileStore) Save(ctx context.Context, p *Preset) error {
	_, span := tracing.StartSpan(ctx, "presets.save", attribute.String("backend", "file"))
	defer span.End()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.UpdatedAt = time.Now().UTC()

	data, err := encodePreset(p, fs.format)
	if err != nil {
		metrics.PresetOps.WithLabelValues("save", "file", "error").Inc()
		return err
	}

	// Drop files for the same ID in other encodings so a format change
	// cannot leave two copies of one preset.
	for _, ext := range presetExtensions {
		if ext == "."+string(fs.format) {
			continue
		}
		_ = os.Remove(filepath.Join(fs.dir, p.ID+ext))
	}

	path := filepath.Join(fs.dir, p.ID+"."+string(fs.format))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		metrics.PresetOps.WithLabelValues("save", "file", "error").Inc()
		return fmt.Errorf("write preset %s: %w", p.ID, err)
	}

	fs.logger.Debug("preset saved",
		zap.String("id", p.ID),
		zap.String("name", p.Name),
		zap.String("path", path),
	)
	metrics.PresetOps.WithLabelValues("save", "file", "ok").Inc()
	return nil
}

// Get implements Store.
func (fs *FileStore) Get(ctx context.Context, id string) (*Preset, error) {
	_, span := tracing.StartSpan(ctx, "presets.get", attribute.String("backend", "file"))
	defer span.End()

	for _, ext := range presetExtensions {
		path := filepath.Join(fs.dir, id+ext)
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			metrics.PresetOps.WithLabelValues("get", "file", "error").Inc()
			return nil, fmt.Errorf("read preset %s: %w", id, err)
		}
		p, err := decodePreset(data, ext)
		if err != nil {
			metrics.PresetOps.WithLabelValues("get", "file", "error").Inc()
			return nil, fmt.Errorf("decode preset %s: %w", id, err)
		}
		metrics.PresetOps.WithLabelValues("get", "file", "ok").Inc()
		return p, nil
	}
	metrics.PresetOps.WithLabelValues("get", "file", "miss").Inc()
	return nil, ErrNotFound
}

// List implements Store. Files that fail to decode are skipped with a
// warning rather than failing the whole listing.
func (fs *FileStore) List(ctx context.Context) ([]*Preset, error) {
	_, span := tracing.StartSpan(ctx, "presets.list", attribute.String("backend", "file"))
	defer span.End()

	entries, err := os.ReadDir(fs.dir)
	if err != nil {
		metrics.PresetOps.WithLabelValues("list", "file", "error").Inc()
		return nil, fmt.Errorf("read preset directory: %w", err)
	}

	var presets []*Preset
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !isPresetExtension(ext) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(fs.dir, entry.Name()))
		if err != nil {
			fs.logger.Warn("skipping unreadable preset file",
				zap.String("file", entry.Name()), zap.Error(err))
			continue
		}
		p, err := decodePreset(data, ext)
		if err != nil {
			fs.logger.Warn("skipping undecodable preset file",
				zap.String("file", entry.Name()), zap.Error(err))
			continue
		}
		presets = append(presets, p)
	}

	sortPresets(presets)
	metrics.PresetOps.WithLabelValues("list", "file", "ok").Inc()
	return presets, nil
}

// Delete implements Store.
func (fs *FileStore) Delete(ctx context.Context, id string) error {
	_, span := tracing.StartSpan(ctx, "presets.delete", attribute.String("backend", "file"))
	defer span.End()

	removed := false
	for _, ext := range presetExtensions {
		err := os.Remove(filepath.Join(fs.dir, id+ext))
		if err == nil {
			removed = true
			continue
		}
		if !os.IsNotExist(err) {
			metrics.PresetOps.WithLabelValues("delete", "file", "error").Inc()
			return fmt.Errorf("delete preset %s: %w", id, err)
		}
	}
	if !removed {
		metrics.PresetOps.WithLabelValues("delete", "file", "miss").Inc()
		return ErrNotFound
	}
	metrics.PresetOps.WithLabelValues("delete", "file", "ok").Inc()
	return nil
}

var presetExtensions = []string{".json", ".yaml", ".yml", ".toml"}

func isPresetExtension(ext string) bool {
	for _, known := range presetExtensions {
		if ext == known {
			return true
		}
	}
	return false
}

func encodePreset(p *Preset, format FileFormat) ([]byte, error) {
	switch format {
	case FormatYAML:
		data, err := yaml.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("encode preset as yaml: %w", err)
		}
		return data, nil
	case FormatTOML:
		data, err := toml.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("encode preset as toml: %w", err)
		}
		return data, nil
	default:
		data, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode preset as json: %w", err)
		}
		return data, nil
	}
}

func decodePreset(data []byte, ext string) (*Preset, error) {
	var p Preset
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, err
		}
	case ".toml":
		if err := toml.Unmarshal(data, &p); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
	}
	// Old files may carry pre-rename field names.
	p.Graphs, _ = graphcfg.UpgradeConfig(p.Graphs)
	return &p, nil
}

func sortPresets(presets []*Preset) {
	sort.Slice(presets, func(i, j int) bool {
		if presets[i].Slot != presets[j].Slot {
			return presets[i].Slot < presets[j].Slot
		}
		return presets[i].Name < presets[j].Name
	})
}
