package flightlog

import (
	"encoding/json"
	"fmt"
)

// Summary is an in-memory View populated by the host from an already-parsed
// log: the field name list, the system configuration, and optional
// per-field ranges.
type Summary struct {
	names  []string
	index  map[string]int
	config SysConfig
	stats  map[int]Range
}

// NewSummary builds a Summary over the given field names and configuration.
// When a name occurs twice, the first occurrence wins the index lookup.
func NewSummary(fieldNames []string, config SysConfig) *Summary {
	s := &Summary{
		names:  append([]string(nil), fieldNames...),
		index:  make(map[string]int, len(fieldNames)),
		config: config,
		stats:  make(map[int]Range),
	}
	for i, name := range s.names {
		if _, exists := s.index[name]; !exists {
			s.index[name] = i
		}
	}
	return s
}

// SetStats records the observed range for a named field. Unknown names are
// ignored.
func (s *Summary) SetStats(name string, r Range) {
	if i, ok := s.index[name]; ok {
		s.stats[i] = r
	}
}

// MainFieldNames implements View.
func (s *Summary) MainFieldNames() []string {
	return append([]string(nil), s.names...)
}

// MainFieldIndex implements View.
func (s *Summary) MainFieldIndex(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// SysConfig implements View.
func (s *Summary) SysConfig() SysConfig { return s.config }

// FieldStats implements View.
func (s *Summary) FieldStats(index int) (Range, bool) {
	r, ok := s.stats[index]
	return r, ok
}

// summaryDoc is the JSON snapshot shape a host writes after parsing a log.
// Stats keys are field indexes.
type summaryDoc struct {
	FieldNames []string      `json:"fieldNames"`
	SysConfig  SysConfig     `json:"sysConfig"`
	Stats      map[int]Range `json:"stats,omitempty"`
}

// DecodeSummary reads a JSON header/stats snapshot extracted from a log.
func DecodeSummary(data []byte) (*Summary, error) {
	var doc summaryDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode log summary: %w", err)
	}
	s := NewSummary(doc.FieldNames, doc.SysConfig)
	for i, r := range doc.Stats {
		if i >= 0 && i < len(s.names) {
			s.stats[i] = r
		}
	}
	return s, nil
}

// EncodeSummary writes the snapshot shape DecodeSummary reads.
func EncodeSummary(s *Summary) ([]byte, error) {
	doc := summaryDoc{
		FieldNames: s.names,
		SysConfig:  s.config,
	}
	if len(s.stats) > 0 {
		doc.Stats = s.stats
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode log summary: %w", err)
	}
	return data, nil
}
