package graphcfg

import (
	"testing"

	"github.com/flightbox/blackbox-graphs/flightlog"
)

// newTestLog builds the field inventory of a typical quadcopter log.
func newTestLog() *flightlog.Summary {
	names := []string{
		"loopIteration", "time",
		"axisP[0]", "axisP[1]", "axisP[2]",
		"axisI[0]", "axisI[1]", "axisI[2]",
		"axisD[0]", "axisD[1]",
		"rcCommand[0]", "rcCommand[1]", "rcCommand[2]", "rcCommand[3]",
		"gyroADC[0]", "gyroADC[1]", "gyroADC[2]",
		"accSmooth[0]", "accSmooth[1]", "accSmooth[2]",
		"motor[0]", "motor[1]", "motor[2]", "motor[3]",
	}
	return flightlog.NewSummary(names, flightlog.SysConfig{
		MotorOutputLow:  1000,
		MotorOutputHigh: 2000,
		GyroScale:       1.0e-5,
		Acc1G:           2048,
		RCRate:          100,
	})
}

func fieldNames(g Graph) []string {
	names := make([]string, len(g.Fields))
	for i, f := range g.Fields {
		names[i] = f.Name
	}
	return names
}

func TestAdaptExpandsWildcardGroups(t *testing.T) {
	log := newTestLog()
	adapted := AdaptGraphs(log, []Graph{
		{Label: "Motors", Fields: []Field{{Name: "motor[all]"}}},
	})

	if len(adapted) != 1 {
		t.Fatalf("expected 1 graph, got %d", len(adapted))
	}
	want := []string{"motor[0]", "motor[1]", "motor[2]", "motor[3]"}
	got := fieldNames(adapted[0])
	if len(got) != len(want) {
		t.Fatalf("expected %d fields, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("field %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestAdaptWildcardInheritsOverrides(t *testing.T) {
	log := newTestLog()
	adapted := AdaptGraphs(log, []Graph{
		{Label: "Motors", Fields: []Field{
			{Name: "motor[all]", Color: "#123456", Smoothing: SmoothingValue(42)},
		}},
	})

	for _, f := range adapted[0].Fields {
		if f.Color != "#123456" {
			t.Fatalf("field %s lost group color: %s", f.Name, f.Color)
		}
		if v, ok := f.Smoothing.Int(); !ok || v != 42 {
			t.Fatalf("field %s lost group smoothing: %v", f.Name, f.Smoothing)
		}
	}
}

func TestAdaptWildcardWithoutMatches(t *testing.T) {
	log := newTestLog()
	adapted := AdaptGraphs(log, []Graph{
		{Label: "Servos", Fields: []Field{{Name: "servo[all]"}}},
	})

	if len(adapted) != 1 || len(adapted[0].Fields) != 0 {
		t.Fatalf("expected an empty graph, got %+v", adapted)
	}
}

func TestAdaptDropsFieldsAbsentFromLog(t *testing.T) {
	log := newTestLog()
	adapted := AdaptGraphs(log, []Graph{
		{Label: "Mixed", Fields: []Field{
			{Name: "gyroADC[0]"},
			{Name: "magADC[0]"},
			{Name: "gyroADC[1]"},
		}},
	})

	got := fieldNames(adapted[0])
	if len(got) != 2 || got[0] != "gyroADC[0]" || got[1] != "gyroADC[1]" {
		t.Fatalf("expected absent field dropped, got %v", got)
	}
}

func TestAdaptRecomputesCalibrationPreservesShape(t *testing.T) {
	log := newTestLog()
	adapted := AdaptGraphs(log, []Graph{
		{Label: "Motors", Fields: []Field{
			{Name: "motor[0]", Curve: &Curve{Offset: 0, Power: 0.5, InputRange: 1, OutputRange: 2}},
		}},
	})

	curve := adapted[0].Fields[0].Curve
	if curve.Offset != -1500 || curve.InputRange != 500 {
		t.Fatalf("calibration endpoints not recomputed: %+v", curve)
	}
	if curve.Power != 0.5 || curve.OutputRange != 2 {
		t.Fatalf("curve shape not preserved: %+v", curve)
	}
}

func TestAdaptAssignsDefaultCurveWhenUnset(t *testing.T) {
	log := newTestLog()
	adapted := AdaptGraphs(log, []Graph{
		{Label: "Motors", Fields: []Field{{Name: "motor[0]"}}},
	})

	curve := adapted[0].Fields[0].Curve
	if curve == nil {
		t.Fatalf("expected default curve assigned")
	}
	if curve.Offset != -1500 || curve.Power != 1.0 || curve.InputRange != 500 || curve.OutputRange != 1.0 {
		t.Fatalf("unexpected default motor curve: %+v", curve)
	}
}

func TestAdaptColorCycling(t *testing.T) {
	log := newTestLog()
	adapted := AdaptGraphs(log, []Graph{
		{Label: "Mixed", Fields: []Field{
			{Name: "motor[0]"},
			{Name: "motor[1]"},
			{Name: "motor[2]"},
			{Name: "motor[3]", Color: "#123456"},
			{Name: "gyroADC[0]"},
		}},
	})

	fields := adapted[0].Fields
	for i := 0; i < 3; i++ {
		if fields[i].Color != DefaultPalette[i] {
			t.Fatalf("field %d: got color %s, want %s", i, fields[i].Color, DefaultPalette[i])
		}
	}
	if fields[3].Color != "#123456" {
		t.Fatalf("pre-set color not preserved: %s", fields[3].Color)
	}
	// The pre-colored field does not consume a palette slot.
	if fields[4].Color != DefaultPalette[3] {
		t.Fatalf("field 4: got color %s, want %s", fields[4].Color, DefaultPalette[3])
	}
}

func TestAdaptColorCounterPerGraph(t *testing.T) {
	log := newTestLog()
	adapted := AdaptGraphs(log, []Graph{
		{Label: "A", Fields: []Field{{Name: "motor[0]"}}},
		{Label: "B", Fields: []Field{{Name: "motor[1]"}}},
	})

	if adapted[0].Fields[0].Color != DefaultPalette[0] {
		t.Fatalf("graph A: got %s", adapted[0].Fields[0].Color)
	}
	if adapted[1].Fields[0].Color != DefaultPalette[0] {
		t.Fatalf("graph B should restart the palette, got %s", adapted[1].Fields[0].Color)
	}
}

func TestAdaptSmoothingResolution(t *testing.T) {
	log := newTestLog()
	cases := []struct {
		name string
		in   Smoothing
		want Smoothing
	}{
		{"unset gets heuristic", Smoothing{}, SmoothingValue(3000)},
		{"default keyword gets heuristic", SmoothingString("default"), SmoothingValue(3000)},
		{"parseable string becomes integer", SmoothingString("150"), SmoothingValue(150)},
		{"unparseable string passes through", SmoothingString("abc"), SmoothingString("abc")},
		{"explicit integer kept", SmoothingValue(7), SmoothingValue(7)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			adapted := AdaptGraphs(log, []Graph{
				{Fields: []Field{{Name: "gyroADC[0]", Smoothing: tc.in}}},
			})
			if got := adapted[0].Fields[0].Smoothing; got != tc.want {
				t.Fatalf("got %#v, want %#v", got, tc.want)
			}
		})
	}
}

func TestAdaptDefaultsHeight(t *testing.T) {
	log := newTestLog()
	adapted := AdaptGraphs(log, []Graph{
		{Label: "A"},
		{Label: "B", Height: 3},
	})

	if adapted[0].Height != 1 {
		t.Fatalf("unset height: got %d, want 1", adapted[0].Height)
	}
	if adapted[1].Height != 3 {
		t.Fatalf("explicit height: got %d, want 3", adapted[1].Height)
	}
}

func TestAdaptDoesNotMutateInput(t *testing.T) {
	log := newTestLog()
	input := []Graph{
		{Label: "Motors", Fields: []Field{
			{Name: "motor[all]"},
			{Name: "motor[0]", Curve: &Curve{Power: 0.5, OutputRange: 2}},
		}},
	}

	_ = AdaptGraphs(log, input)

	if input[0].Height != 0 {
		t.Fatalf("input height mutated: %d", input[0].Height)
	}
	if input[0].Fields[0].Name != "motor[all]" {
		t.Fatalf("input wildcard mutated: %s", input[0].Fields[0].Name)
	}
	if input[0].Fields[1].Color != "" || !input[0].Fields[1].Smoothing.IsZero() {
		t.Fatalf("input field defaults leaked: %+v", input[0].Fields[1])
	}
	if input[0].Fields[1].Curve.Offset != 0 || input[0].Fields[1].Curve.InputRange != 0 {
		t.Fatalf("input curve mutated: %+v", input[0].Fields[1].Curve)
	}
}

func TestAdaptCustomPalette(t *testing.T) {
	log := newTestLog()
	palette := []string{"#000000", "#ffffff"}
	adapted := Adapter{Palette: palette}.Adapt(log, []Graph{
		{Fields: []Field{{Name: "motor[0]"}, {Name: "motor[1]"}, {Name: "motor[2]"}}},
	})

	fields := adapted[0].Fields
	if fields[0].Color != "#000000" || fields[1].Color != "#ffffff" || fields[2].Color != "#000000" {
		t.Fatalf("palette did not wrap: %v", fieldNames(adapted[0]))
	}
}

func TestAdaptExampleMotorsEndToEnd(t *testing.T) {
	log := newTestLog()
	templates := ExampleGraphs(log, "Motors")
	if len(templates) != 1 || templates[0].Label != "Motors" {
		t.Fatalf("expected one Motors template, got %+v", templates)
	}
	got := fieldNames(templates[0])
	if len(got) != 2 || got[0] != "motor[all]" || got[1] != "servo[5]" {
		t.Fatalf("unexpected template fields: %v", got)
	}

	adapted := AdaptGraphs(log, templates)
	names := fieldNames(adapted[0])
	// The log has four motors and no servo[5].
	want := []string{"motor[0]", "motor[1]", "motor[2]", "motor[3]"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, names)
		}
	}
}
