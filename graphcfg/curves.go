package graphcfg

import (
	"math"
	"strings"

	"github.com/flightbox/blackbox-graphs/flightlog"
)

// curveRule is one arm of the field-family heuristic: the first rule whose
// predicate accepts the field name supplies the default curve.
type curveRule struct {
	match func(name string) bool
	curve func(view flightlog.View) Curve
}

// The rule order matters: more specific names (rcCommand[3], heading[2])
// come before their family catch-alls.
var curveRules = []curveRule{
	{
		match: prefix("motor["),
		curve: func(view flightlog.View) Curve {
			sys := view.SysConfig()
			return Curve{
				Offset:      -(sys.MotorOutputHigh + sys.MotorOutputLow) / 2,
				Power:       1.0,
				InputRange:  (sys.MotorOutputHigh - sys.MotorOutputLow) / 2,
				OutputRange: 1.0,
			}
		},
	},
	{
		match: prefix("servo["),
		curve: fixed(Curve{Offset: -1500, Power: 1.0, InputRange: 500, OutputRange: 1.0}),
	},
	{
		match: prefix("gyroADC["),
		curve: func(view flightlog.View) Curve {
			scale := view.SysConfig().GyroScale
			if scale == 0 {
				scale = 1.0
			}
			return Curve{Power: 0.25, InputRange: 2.0e-5 / scale, OutputRange: 1.0}
		},
	},
	{
		match: prefix("accSmooth["),
		curve: func(view flightlog.View) Curve {
			return Curve{Power: 0.5, InputRange: view.SysConfig().Acc1G * 3.0, OutputRange: 1.0}
		},
	},
	{
		match: axisFamily,
		curve: fixed(Curve{Power: 0.3, InputRange: 400, OutputRange: 1.0}),
	},
	{
		// Throttle.
		match: exact("rcCommand[3]"),
		curve: fixed(Curve{Offset: -1500, Power: 1.0, InputRange: 500, OutputRange: 1.0}),
	},
	{
		// Yaw.
		match: exact("rcCommand[2]"),
		curve: fixed(Curve{Power: 0.8, InputRange: 500, OutputRange: 1.0}),
	},
	{
		match: prefix("rcCommand["),
		curve: func(view flightlog.View) Curve {
			rcRate := view.SysConfig().RCRate
			if rcRate == 0 {
				rcRate = 100
			}
			return Curve{Power: 0.8, InputRange: 500 * rcRate / 100, OutputRange: 1.0}
		},
	},
	{
		match: exact("heading[2]"),
		curve: fixed(Curve{Offset: -math.Pi, Power: 1.0, InputRange: math.Pi, OutputRange: 1.0}),
	},
	{
		match: prefix("heading["),
		curve: fixed(Curve{Power: 1.0, InputRange: math.Pi, OutputRange: 1.0}),
	},
	{
		match: prefix("sonar"),
		curve: fixed(Curve{Offset: -200, Power: 1.0, InputRange: 200, OutputRange: 1.0}),
	},
}

// axisFamily matches the indexed PID channels (axisP[], axisI[], axisD[],
// axisSum[]): the "axis" stem must be followed by a bracket group, so a
// bracketless name like "axisFoo" falls through to the stats fallback.
func axisFamily(name string) bool {
	return strings.HasPrefix(name, "axis") && strings.Contains(name[len("axis"):], "[")
}

func prefix(p string) func(string) bool {
	return func(name string) bool { return strings.HasPrefix(name, p) }
}

func exact(s string) func(string) bool {
	return func(name string) bool { return name == s }
}

func fixed(c Curve) func(flightlog.View) Curve {
	return func(flightlog.View) Curve { return c }
}

// DefaultCurveForField derives the default calibration curve for a concrete
// field name. Known field families get hand-tuned curves keyed off the
// log's system configuration; anything else is centered and scaled from the
// log's observed min/max for that field, or a fixed generic curve when no
// statistics exist.
func DefaultCurveForField(view flightlog.View, name string) Curve {
	for _, rule := range curveRules {
		if rule.match(name) {
			return rule.curve(view)
		}
	}

	if index, ok := view.MainFieldIndex(name); ok {
		if stats, ok := view.FieldStats(index); ok {
			return Curve{
				Offset:      -(stats.Max + stats.Min) / 2,
				Power:       1.0,
				InputRange:  math.Max((stats.Max-stats.Min)/2, 1.0),
				OutputRange: 1.0,
			}
		}
	}
	return Curve{Power: 1.0, InputRange: 500, OutputRange: 1.0}
}

// DefaultSmoothingForField returns the heuristic smoothing window in
// microseconds for a field name. Fast, noisy channels get heavy smoothing;
// everything else none.
func DefaultSmoothingForField(name string) Smoothing {
	switch {
	case strings.HasPrefix(name, "motor["), strings.HasPrefix(name, "servo["):
		return SmoothingValue(5000)
	case strings.HasPrefix(name, "gyroADC["),
		strings.HasPrefix(name, "accSmooth["),
		axisFamily(name):
		return SmoothingValue(3000)
	default:
		return SmoothingValue(0)
	}
}
