package graphcfg

import (
	"context"
	"regexp"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/flightbox/blackbox-graphs/flightlog"
	"github.com/flightbox/blackbox-graphs/metrics"
	"github.com/flightbox/blackbox-graphs/tracing"
)

// wildcardName matches field names of the form "root[all]".
var wildcardName = regexp.MustCompile(`^(.+)\[all\]$`)

// Adapter reconciles a raw configuration against a specific log. The zero
// value adapts with the default palette and no logging.
type Adapter struct {
	// Palette supplies the colors auto-assigned to fields without one.
	Palette []string
	Logger  *zap.Logger
}

// AdaptGraphs reconciles graphs against view with the default palette. See
// Adapter.Adapt.
func AdaptGraphs(view flightlog.View, graphs []Graph) []Graph {
	return Adapter{}.Adapt(view, graphs)
}

// Adapt produces a fully-resolved configuration from a raw one: wildcard
// groups are expanded to the log's concrete fields, fields the log lacks
// are dropped, and every surviving field gets a curve, color and smoothing.
// Curve calibration endpoints (offset, input range) are always recomputed
// from the log; a pre-set curve's shape (power, output range), color and
// smoothing are preserved. The input is never mutated.
func (a Adapter) Adapt(view flightlog.View, graphs []Graph) []Graph {
	_, span := tracing.StartSpan(context.Background(), "graphcfg.adapt",
		attribute.Int("graphs", len(graphs)))
	defer span.End()

	palette := a.Palette
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	logger := a.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	adapted := make([]Graph, 0, len(graphs))
	for _, graph := range graphs {
		out := Graph{
			Label:  graph.Label,
			Height: graph.Height,
			Fields: []Field{},
		}
		if out.Height < 1 {
			out.Height = 1
		}

		colorIndex := 0
		for _, field := range graph.Fields {
			for _, resolved := range a.resolveField(view, field, logger) {
				a.applyDefaults(view, &resolved, palette, &colorIndex)
				out.Fields = append(out.Fields, resolved)
			}
		}
		adapted = append(adapted, out)
	}

	resolved := 0
	for _, g := range adapted {
		resolved += len(g.Fields)
	}
	span.SetAttributes(attribute.Int("fields", resolved))

	metrics.AdaptationsTotal.Inc()
	return adapted
}

// resolveField maps one raw field to zero or more concrete fields: a
// wildcard group expands to every matching log field (each inheriting the
// group's overrides), a plain name passes through when the log has it and
// is dropped silently when it does not.
func (a Adapter) resolveField(view flightlog.View, field Field, logger *zap.Logger) []Field {
	if m := wildcardName.FindStringSubmatch(field.Name); m != nil {
		// The root is quoted before reuse so a name containing regexp
		// metacharacters cannot change the match.
		member := regexp.MustCompile(`^` + regexp.QuoteMeta(m[1]) + `\[[0-9]+\]$`)
		var expanded []Field
		for _, name := range view.MainFieldNames() {
			if member.MatchString(name) {
				clone := field.Clone()
				clone.Name = name
				expanded = append(expanded, clone)
			}
		}
		logger.Debug("expanded wildcard field group",
			zap.String("group", field.Name),
			zap.Int("matches", len(expanded)),
		)
		metrics.WildcardExpansions.Inc()
		metrics.FieldsResolved.Add(float64(len(expanded)))
		return expanded
	}

	if _, ok := view.MainFieldIndex(field.Name); !ok {
		logger.Debug("dropped field absent from log", zap.String("field", field.Name))
		metrics.FieldsDropped.Inc()
		return nil
	}
	metrics.FieldsResolved.Inc()
	return []Field{field.Clone()}
}

// applyDefaults fills the unset parts of a resolved field in place. The
// palette counter advances only when a color is actually auto-assigned, so
// user-colored fields neither consume a slot nor reset the cycle.
func (a Adapter) applyDefaults(view flightlog.View, field *Field, palette []string, colorIndex *int) {
	defCurve := DefaultCurveForField(view, field.Name)
	if field.Curve == nil {
		field.Curve = &defCurve
	} else {
		field.Curve.Offset = defCurve.Offset
		field.Curve.InputRange = defCurve.InputRange
	}

	if field.Color == "" {
		field.Color = palette[*colorIndex%len(palette)]
		*colorIndex++
	}

	field.Smoothing = field.Smoothing.resolve(DefaultSmoothingForField(field.Name))
}
