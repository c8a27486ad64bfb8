package presets

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/flightbox/blackbox-graphs/graphcfg"
	"github.com/flightbox/blackbox-graphs/metrics"
	"github.com/flightbox/blackbox-graphs/tracing"
)

// SQLStore persists presets in a single table on a host-provided database,
// with the graph configuration serialized as a JSON column.
type SQLStore struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewSQLStore wraps an open database handle. Call EnsureSchema before use.
func NewSQLStore(db *sqlx.DB, logger *zap.Logger) *SQLStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SQLStore{db: db, logger: logger}
}

// OpenSQLite opens (creating if needed) a sqlite database at path and
// returns a store with its schema ensured. Use ":memory:" for tests.
func OpenSQLite(path string, logger *zap.Logger) (*SQLStore, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database %s: %w", path, err)
	}
	store := NewSQLStore(db, logger)
	if err := store.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS graph_presets (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	slot       INTEGER NOT NULL DEFAULT 0,
	graphs     TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
)`

// EnsureSchema creates the preset table when missing.
func (s *SQLStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create preset schema: %w", err)
	}
	return nil
}

// presetRow is the table shape; graphs stays encoded until decodeRow.
type presetRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Slot      int       `db:"slot"`
	Graphs    []byte    `db:"graphs"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Save implements Store via an upsert keyed on ID.
func (s *SQLStore) Save(ctx context.Context, p *Preset) error {
	ctx, span := tracing.StartSpan(ctx, "presets.save", attribute.String("backend", "sql"))
	defer span.End()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.UpdatedAt = time.Now().UTC()

	graphsJSON, err := json.Marshal(p.Graphs)
	if err != nil {
		metrics.PresetOps.WithLabelValues("save", "sql", "error").Inc()
		return fmt.Errorf("encode preset graphs: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO graph_presets (id, name, slot, graphs, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			slot = excluded.slot,
			graphs = excluded.graphs,
			updated_at = excluded.updated_at`,
		p.ID, p.Name, p.Slot, graphsJSON, p.UpdatedAt)
	if err != nil {
		metrics.PresetOps.WithLabelValues("save", "sql", "error").Inc()
		return fmt.Errorf("save preset %s: %w", p.ID, err)
	}

	s.logger.Debug("preset saved",
		zap.String("id", p.ID),
		zap.String("name", p.Name),
	)
	metrics.PresetOps.WithLabelValues("save", "sql", "ok").Inc()
	return nil
}

// Get implements Store.
func (s *SQLStore) Get(ctx context.Context, id string) (*Preset, error) {
	ctx, span := tracing.StartSpan(ctx, "presets.get", attribute.String("backend", "sql"))
	defer span.End()

	var row presetRow
	err := s.db.GetContext(ctx, &row,
		`SELECT id, name, slot, graphs, updated_at FROM graph_presets WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		metrics.PresetOps.WithLabelValues("get", "sql", "miss").Inc()
		return nil, ErrNotFound
	}
	if err != nil {
		metrics.PresetOps.WithLabelValues("get", "sql", "error").Inc()
		return nil, fmt.Errorf("load preset %s: %w", id, err)
	}

	p, err := decodeRow(row)
	if err != nil {
		metrics.PresetOps.WithLabelValues("get", "sql", "error").Inc()
		return nil, err
	}
	metrics.PresetOps.WithLabelValues("get", "sql", "ok").Inc()
	return p, nil
}

// List implements Store, ordered by slot then name.
func (s *SQLStore) List(ctx context.Context) ([]*Preset, error) {
	ctx, span := tracing.StartSpan(ctx, "presets.list", attribute.String("backend", "sql"))
	defer span.End()

	var rows []presetRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT id, name, slot, graphs, updated_at FROM graph_presets ORDER BY slot, name`)
	if err != nil {
		metrics.PresetOps.WithLabelValues("list", "sql", "error").Inc()
		return nil, fmt.Errorf("list presets: %w", err)
	}

	presets := make([]*Preset, 0, len(rows))
	for _, row := range rows {
		p, err := decodeRow(row)
		if err != nil {
			s.logger.Warn("skipping undecodable preset row",
				zap.String("id", row.ID), zap.Error(err))
			continue
		}
		presets = append(presets, p)
	}
	metrics.PresetOps.WithLabelValues("list", "sql", "ok").Inc()
	return presets, nil
}

// Delete implements Store.
func (s *SQLStore) Delete(ctx context.Context, id string) error {
	ctx, span := tracing.StartSpan(ctx, "presets.delete", attribute.String("backend", "sql"))
	defer span.End()

	res, err := s.db.ExecContext(ctx, `DELETE FROM graph_presets WHERE id = ?`, id)
	if err != nil {
		metrics.PresetOps.WithLabelValues("delete", "sql", "error").Inc()
		return fmt.Errorf("delete preset %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		metrics.PresetOps.WithLabelValues("delete", "sql", "error").Inc()
		return fmt.Errorf("delete preset %s: %w", id, err)
	}
	if affected == 0 {
		metrics.PresetOps.WithLabelValues("delete", "sql", "miss").Inc()
		return ErrNotFound
	}
	metrics.PresetOps.WithLabelValues("delete", "sql", "ok").Inc()
	return nil
}

// Close closes the underlying database handle.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

func decodeRow(row presetRow) (*Preset, error) {
	var graphs []graphcfg.Graph
	if err := json.Unmarshal(row.Graphs, &graphs); err != nil {
		return nil, fmt.Errorf("decode preset %s graphs: %w", row.ID, err)
	}
	// Rows written by old viewer versions may carry pre-rename names.
	graphs, _ = graphcfg.UpgradeConfig(graphs)
	return &Preset{
		ID:        row.ID,
		Name:      row.Name,
		Slot:      row.Slot,
		Graphs:    graphs,
		UpdatedAt: row.UpdatedAt,
	}, nil
}
