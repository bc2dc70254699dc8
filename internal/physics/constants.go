package physics

import "math"

// Physical constants and unit conversions used by the aerodynamic integrator.
const (
	// Gravity is the constant downward acceleration in m/s².
	Gravity = 9.81
	// AirDensitySeaLevel is kg/m³ at 15°C.
	AirDensitySeaLevel = 1.225

	MphToMs      = 0.44704
	MsToMph      = 1.0 / MphToMs
	RpmToRadPerS = 2 * math.Pi / 60.0
	DegToRad     = math.Pi / 180.0
	RadToDeg     = 180.0 / math.Pi
)

// Integration defaults. A 1/100 s step gives the accuracy target from the
// physics tuning pass; frame-locked callers can configure 1/60.
const (
	DefaultTimeStep    = 1.0 / 100.0
	DefaultMaxDuration = 10.0
)
