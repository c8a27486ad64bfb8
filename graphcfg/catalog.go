package graphcfg

import "github.com/flightbox/blackbox-graphs/flightlog"

// exampleCatalog is the built-in set of starting-point graph templates.
// Fields carry only names (wildcards or explicit indexes); curves, colors
// and smoothing are left for adaptation to fill, which also drops whatever
// the target log does not record.
var exampleCatalog = []Graph{
	{Label: "Motors", Fields: templateFields("motor[all]", "servo[5]")},
	{Label: "Gyros", Fields: templateFields("gyroADC[all]")},
	{Label: "PIDs", Fields: templateFields("axisSum[all]")},
	{Label: "Gyro + PID roll", Fields: templateFields("axisP[0]", "axisI[0]", "axisD[0]", "gyroADC[0]")},
	{Label: "Gyro + PID pitch", Fields: templateFields("axisP[1]", "axisI[1]", "axisD[1]", "gyroADC[1]")},
	{Label: "Gyro + PID yaw", Fields: templateFields("axisP[2]", "axisI[2]", "axisD[2]", "gyroADC[2]")},
	{Label: "Accelerometers", Fields: templateFields("accSmooth[all]")},
}

func templateFields(names ...string) []Field {
	fields := make([]Field, len(names))
	for i, name := range names {
		fields[i] = Field{Name: name}
	}
	return fields
}

// ExampleGraphs returns fresh clones of the built-in graph templates, in
// catalog order. When names are given, only templates whose label appears
// among them are returned. The view is accepted for signature parity with
// adaptation but is not consulted — field availability is enforced later by
// the adapter.
func ExampleGraphs(view flightlog.View, names ...string) []Graph {
	_ = view

	wanted := func(string) bool { return true }
	if len(names) > 0 {
		set := make(map[string]struct{}, len(names))
		for _, n := range names {
			set[n] = struct{}{}
		}
		wanted = func(label string) bool {
			_, ok := set[label]
			return ok
		}
	}

	var out []Graph
	for _, tpl := range exampleCatalog {
		if wanted(tpl.Label) {
			out = append(out, tpl.Clone())
		}
	}
	return out
}
