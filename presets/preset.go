// Package presets persists named graph configurations ("workspaces" in the
// legacy viewer) so a host can offer saved layouts across sessions. Two
// backends are provided: a directory of per-preset files and a SQL table.
// Configurations pass through legacy migration on every read, so files
// written by old viewer versions load cleanly.
package presets

import (
	"context"
	"errors"
	"time"

	"github.com/flightbox/blackbox-graphs/graphcfg"
)

// ErrNotFound is returned when a preset ID has no stored preset.
var ErrNotFound = errors.New("preset not found")

// Preset is one named, slotted graph configuration.
type Preset struct {
	ID        string           `json:"id" yaml:"id" toml:"id" db:"id"`
	Name      string           `json:"name" yaml:"name" toml:"name" db:"name"`
	Slot      int              `json:"slot" yaml:"slot" toml:"slot" db:"slot"`
	Graphs    []graphcfg.Graph `json:"graphs" yaml:"graphs" toml:"graphs"`
	UpdatedAt time.Time        `json:"updatedAt" yaml:"updatedAt" toml:"updatedAt" db:"updated_at"`
}

// Store is the persistence contract. All operations are synchronous.
type Store interface {
	// Save persists the preset, assigning an ID when it has none and
	// bumping UpdatedAt.
	Save(ctx context.Context, p *Preset) error
	// Get loads one preset by ID; ErrNotFound when absent.
	Get(ctx context.Context, id string) (*Preset, error)
	// List returns every preset, ordered by slot then name.
	List(ctx context.Context) ([]*Preset, error)
	// Delete removes one preset by ID; ErrNotFound when absent.
	Delete(ctx context.Context, id string) error
}
