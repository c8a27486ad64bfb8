// Package graphcfg manages declarative graph configurations for time-series
// flight-log data: which fields are drawn together, with what calibration
// curve, color and smoothing. Its core operation is adapting a raw,
// possibly legacy configuration against the concrete field inventory of a
// specific log.
package graphcfg

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Graph is one chart: a labelled, ordered group of fields with a relative
// display height. Identity is positional within a configuration; Label is a
// human identifier and is not required to be unique.
type Graph struct {
	Label  string  `json:"label" yaml:"label" toml:"label"`
	Height int     `json:"height,omitempty" yaml:"height,omitempty" toml:"height,omitempty"`
	Fields []Field `json:"fields" yaml:"fields" toml:"fields"`
}

// Field is one named time-series channel. In raw input Name may be a
// wildcard group ("motor[all]"); after adaptation it always names a concrete
// log field. A nil Curve and an empty Color mean "unset, default me".
type Field struct {
	Name      string    `json:"name" yaml:"name" toml:"name"`
	Curve     *Curve    `json:"curve,omitempty" yaml:"curve,omitempty" toml:"curve,omitempty"`
	Color     string    `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
	Smoothing Smoothing `json:"smoothing,omitzero" yaml:"smoothing,omitempty" toml:"smoothing,omitempty"`
}

// Curve maps raw field values to a bounded display range. Offset and
// InputRange are calibration endpoints recomputed per log; Power and
// OutputRange define the log-independent shape. Steps is a renderer hint.
type Curve struct {
	Offset      float64 `json:"offset" yaml:"offset" toml:"offset"`
	Power       float64 `json:"power" yaml:"power" toml:"power"`
	InputRange  float64 `json:"inputRange" yaml:"inputRange" toml:"inputRange"`
	OutputRange float64 `json:"outputRange" yaml:"outputRange" toml:"outputRange"`
	Steps       int     `json:"steps,omitempty" yaml:"steps,omitempty" toml:"steps,omitempty"`
}

// Apply evaluates the normalization transform for a raw value:
//
//	sign(v+offset) * (|v+offset| / inputRange)^power * outputRange
//
// Clipping to the display viewport stays with the renderer. A zero
// InputRange yields 0 rather than an infinity.
func (c Curve) Apply(v float64) float64 {
	if c.InputRange == 0 {
		return 0
	}
	shifted := v + c.Offset
	scaled := math.Pow(math.Abs(shifted)/c.InputRange, c.Power) * c.OutputRange
	if shifted < 0 {
		return -scaled
	}
	return scaled
}

// Smoothing is a per-field smoothing window in microseconds. Raw
// configurations carry it as a number, the keyword "default", or an
// arbitrary string; adaptation resolves it to an integer where possible and
// passes unparseable strings through verbatim.
type Smoothing struct {
	present bool
	integer bool
	value   int
	raw     string
}

// SmoothingValue returns a resolved integer smoothing amount.
func SmoothingValue(v int) Smoothing {
	return Smoothing{present: true, integer: true, value: v}
}

// SmoothingString returns a smoothing carrying the verbatim source text,
// e.g. the "default" keyword or a not-yet-parsed number.
func SmoothingString(s string) Smoothing {
	return Smoothing{present: true, raw: s}
}

// IsZero reports whether the smoothing is unset. It also drives the
// omitzero/omitempty handling in the JSON and YAML codecs.
func (s Smoothing) IsZero() bool { return !s.present }

// IsDefaultKeyword reports whether the source text is the literal keyword
// "default", which requests the per-field-family heuristic value.
func (s Smoothing) IsDefaultKeyword() bool {
	return s.present && !s.integer && s.raw == "default"
}

// Int returns the resolved integer value, if the smoothing has one.
func (s Smoothing) Int() (int, bool) {
	return s.value, s.present && s.integer
}

// String returns the canonical text form.
func (s Smoothing) String() string {
	if !s.present {
		return ""
	}
	if s.integer {
		return strconv.Itoa(s.value)
	}
	return s.raw
}

// resolve produces the adapted smoothing: the heuristic default when unset
// or "default", the parsed integer when the text parses, the original
// value otherwise.
func (s Smoothing) resolve(def Smoothing) Smoothing {
	if !s.present || s.IsDefaultKeyword() {
		return def
	}
	if s.integer {
		return s
	}
	if v, err := strconv.Atoi(strings.TrimSpace(s.raw)); err == nil {
		return SmoothingValue(v)
	}
	return s
}

// MarshalJSON writes integers as JSON numbers and everything else as the
// original string.
func (s Smoothing) MarshalJSON() ([]byte, error) {
	if !s.present {
		return []byte("null"), nil
	}
	if s.integer {
		return json.Marshal(s.value)
	}
	return json.Marshal(s.raw)
}

// UnmarshalJSON accepts a number, a string, or null.
func (s *Smoothing) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*s = Smoothing{}
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*s = SmoothingValue(n)
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("smoothing must be a number or string: %w", err)
	}
	*s = SmoothingString(str)
	return nil
}

// MarshalYAML implements yaml.Marshaler with the same shape as JSON.
func (s Smoothing) MarshalYAML() (interface{}, error) {
	if !s.present {
		return nil, nil
	}
	if s.integer {
		return s.value, nil
	}
	return s.raw, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Smoothing) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var n int
	if err := unmarshal(&n); err == nil {
		*s = SmoothingValue(n)
		return nil
	}
	var str string
	if err := unmarshal(&str); err != nil {
		return fmt.Errorf("smoothing must be a number or string: %w", err)
	}
	if str == "" {
		*s = Smoothing{}
		return nil
	}
	*s = SmoothingString(str)
	return nil
}

// MarshalText implements encoding.TextMarshaler for codecs without a native
// union shape (TOML preset files carry smoothing as a string).
func (s Smoothing) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Smoothing) UnmarshalText(text []byte) error {
	str := string(text)
	if str == "" {
		*s = Smoothing{}
		return nil
	}
	if v, err := strconv.Atoi(str); err == nil {
		*s = SmoothingValue(v)
		return nil
	}
	*s = SmoothingString(str)
	return nil
}

// Clone returns a deep copy of the field.
func (f Field) Clone() Field {
	clone := f
	if f.Curve != nil {
		c := *f.Curve
		clone.Curve = &c
	}
	return clone
}

// Clone returns a deep copy of the graph.
func (g Graph) Clone() Graph {
	clone := g
	clone.Fields = make([]Field, len(g.Fields))
	for i := range g.Fields {
		clone.Fields[i] = g.Fields[i].Clone()
	}
	return clone
}

// CloneGraphs deep-copies a whole configuration. A nil input stays nil so
// the "no configuration" sentinel survives cloning.
func CloneGraphs(graphs []Graph) []Graph {
	if graphs == nil {
		return nil
	}
	out := make([]Graph, len(graphs))
	for i := range graphs {
		out[i] = graphs[i].Clone()
	}
	return out
}
