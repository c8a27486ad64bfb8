package presets

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/flightbox/blackbox-graphs/graphcfg"
)

// ImportLegacyJSON reads a graph configuration exported by the legacy JS
// viewer. Exports come in two shapes: a bare array of graphs, or a settings
// object wrapping the array under "graphConfig" or "graphs". The located
// configuration is run through legacy field-name migration. The boolean
// mirrors UpgradeConfig's sentinel: false means the document held no
// configuration at all, which is not an error.
func ImportLegacyJSON(data []byte) ([]graphcfg.Graph, bool, error) {
	if !gjson.ValidBytes(data) {
		return nil, false, fmt.Errorf("import legacy config: invalid JSON")
	}

	doc := gjson.ParseBytes(data)
	arr := doc
	if !doc.IsArray() {
		arr = doc.Get("graphConfig")
		if !arr.IsArray() {
			arr = doc.Get("graphs")
		}
		if !arr.IsArray() {
			return nil, false, nil
		}
	}

	var graphs []graphcfg.Graph
	if err := json.Unmarshal([]byte(arr.Raw), &graphs); err != nil {
		return nil, false, fmt.Errorf("import legacy config: %w", err)
	}
	if graphs == nil {
		graphs = []graphcfg.Graph{}
	}
	graphs, _ = graphcfg.UpgradeConfig(graphs)
	return graphs, true, nil
}
