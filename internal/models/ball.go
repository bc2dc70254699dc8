package models

// BallState is a snapshot of an in-flight ball. Position is in meters,
// velocity in m/s, spin in rad/s. Time is seconds since the state's origin
// event (release or bat contact). Only the aerodynamic integrator mutates a
// ball state; everything else treats it as a value.
type BallState struct {
	Position Vec3    `json:"position"`
	Velocity Vec3    `json:"velocity"`
	Spin     Vec3    `json:"spin"`
	Time     float64 `json:"time"`
}

// BallConstants holds the aerodynamic properties of a ball material.
// CrossSection is derived from Radius once at config load.
type BallConstants struct {
	Material          string  `json:"material"`
	MassKg            float64 `json:"mass_kg"`
	RadiusM           float64 `json:"radius_m"`
	CrossSectionM2    float64 `json:"cross_section_m2"`
	DragCoefficient   float64 `json:"drag_coefficient"`
	MagnusCoefficient float64 `json:"magnus_coefficient"`
}

// TrajectoryEnd explains why integration stopped.
type TrajectoryEnd string

const (
	// TrajectoryEndGround means the ball reached height <= 0.
	TrajectoryEndGround TrajectoryEnd = "ground"
	// TrajectoryEndBoundary means horizontal distance crossed the field
	// boundary while the ball was still in flight.
	TrajectoryEndBoundary TrajectoryEnd = "boundary"
	// TrajectoryEndTimeout means the safety cutoff fired.
	TrajectoryEndTimeout TrajectoryEnd = "timeout"
)

// Trajectory is an ordered, finite sequence of ball states sampled at a fixed
// timestep. Timestamps are strictly increasing; the sequence is complete once
// produced and is never restarted.
type Trajectory struct {
	Samples  []BallState   `json:"samples"`
	TimeStep float64       `json:"time_step"`
	End      TrajectoryEnd `json:"end"`
}

// Final returns the last sample. The zero BallState is returned for an empty
// trajectory.
func (t Trajectory) Final() BallState {
	if len(t.Samples) == 0 {
		return BallState{}
	}
	return t.Samples[len(t.Samples)-1]
}

// HangTime returns the elapsed flight time in seconds.
func (t Trajectory) HangTime() float64 {
	return t.Final().Time
}

// Distance returns the horizontal carry in meters from the origin to the
// final sample.
func (t Trajectory) Distance() float64 {
	return t.Final().Position.HorizontalDistance()
}

// Apex returns the maximum height reached in meters.
func (t Trajectory) Apex() float64 {
	apex := 0.0
	for _, s := range t.Samples {
		if s.Position.Z > apex {
			apex = s.Position.Z
		}
	}
	return apex
}
