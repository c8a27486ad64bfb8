package graphcfg

import (
	"sync"

	"go.uber.org/zap"

	"github.com/flightbox/blackbox-graphs/flightlog"
	"github.com/flightbox/blackbox-graphs/metrics"
)

// Store holds the current resolved configuration. State is replaced
// wholesale via SetGraphs, never patched in place, and every replacement
// emits exactly one change notification. The store has a Notifier rather
// than being one.
type Store struct {
	mu       sync.RWMutex
	graphs   []Graph
	notifier Notifier
	palette  []string
	logger   *zap.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the store's logger. Nil is replaced with a no-op logger.
func WithLogger(logger *zap.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPalette replaces the auto-assignment color palette used by Adapt.
func WithPalette(palette []string) StoreOption {
	return func(s *Store) {
		if len(palette) > 0 {
			s.palette = append([]string(nil), palette...)
		}
	}
}

// NewStore constructs an empty store with the default palette.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		palette: DefaultPalette,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Graphs returns a deep clone of the current configuration, so callers can
// never alias the stored state.
func (s *Store) Graphs() []Graph {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return CloneGraphs(s.graphs)
}

// SetGraphs replaces the configuration and notifies observers. Callers are
// expected to supply already-adapted graphs; no validation happens here.
// Observers run synchronously on the caller's stack, after the replacement
// is visible.
func (s *Store) SetGraphs(graphs []Graph) {
	s.mu.Lock()
	s.graphs = CloneGraphs(graphs)
	count := len(s.graphs)
	s.mu.Unlock()

	s.logger.Debug("graph configuration replaced", zap.Int("graphs", count))
	metrics.ConfigChanges.Inc()
	s.notifier.Notify()
}

// Subscribe registers an observer for change notifications.
func (s *Store) Subscribe(fn func()) *Subscription {
	return s.notifier.Subscribe(fn)
}

// Adapt reconciles graphs against the given log view using the store's
// palette and logger, then installs the result. One notification fires.
func (s *Store) Adapt(view flightlog.View, graphs []Graph) {
	adapter := Adapter{Palette: s.palette, Logger: s.logger}
	s.SetGraphs(adapter.Adapt(view, graphs))
}
