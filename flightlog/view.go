// Package flightlog defines the read-only view of a flight log that graph
// adaptation consults: the field inventory, the logging system's
// configuration, and observed per-field statistics. The package does not
// parse log files; a host that does hands the extracted data to Summary.
package flightlog

// SysConfig carries the log-specific calibration constants curve defaulting
// depends on.
type SysConfig struct {
	MotorOutputLow  float64 `json:"motorOutputLow"`
	MotorOutputHigh float64 `json:"motorOutputHigh"`
	GyroScale       float64 `json:"gyroScale"`
	Acc1G           float64 `json:"acc_1G"`
	RCRate          float64 `json:"rcRate"`
}

// Range is the observed minimum and maximum of one field over a log.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// View is what adaptation needs to know about a specific log.
type View interface {
	// MainFieldNames returns every main-frame field name, in log order.
	MainFieldNames() []string
	// MainFieldIndex resolves a field name to its index in the log.
	MainFieldIndex(name string) (int, bool)
	// SysConfig returns the log's system configuration.
	SysConfig() SysConfig
	// FieldStats returns the observed range for a field index, when the
	// log carries statistics for it.
	FieldStats(index int) (Range, bool)
}
