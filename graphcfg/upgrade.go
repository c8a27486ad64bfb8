package graphcfg

import "strings"

// legacyRenames maps obsolete field-name prefixes, as found in
// configurations persisted by old viewer versions, to their current
// equivalents. gyroData became gyroADC when the logger started recording
// the raw ADC reading.
var legacyRenames = []struct {
	old, new string
}{
	{"gyroData", "gyroADC"},
}

// UpgradeConfig rewrites obsolete field names in a loaded configuration to
// their current equivalents, in place, and reports whether a configuration
// was present at all: a nil input yields (nil, false), the "no
// configuration" sentinel, which is distinct from an empty non-nil
// configuration. The rewrite is idempotent — upgraded names never match a
// legacy pattern again.
func UpgradeConfig(graphs []Graph) ([]Graph, bool) {
	if graphs == nil {
		return nil, false
	}
	for gi := range graphs {
		fields := graphs[gi].Fields
		for fi := range fields {
			for _, rename := range legacyRenames {
				// Only names with a suffix after the legacy stem were
				// ever written; a bare stem is some other field.
				if len(fields[fi].Name) > len(rename.old) && strings.HasPrefix(fields[fi].Name, rename.old) {
					fields[fi].Name = rename.new + strings.TrimPrefix(fields[fi].Name, rename.old)
					break
				}
			}
		}
	}
	return graphs, true
}
