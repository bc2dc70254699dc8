package physics

import (
	"fmt"

	"github.com/sandlotio/ballflight/internal/models"
)

// Options configures one integration run. Zero values fall back to the
// package defaults so a caller can pass Options{} for a standard flight.
type Options struct {
	// TimeStep is the fixed Δt in seconds.
	TimeStep float64
	// MaxDuration is the safety cutoff in seconds.
	MaxDuration float64
	// AirDensity in kg/m³.
	AirDensity float64
	// BoundaryM is the horizontal distance at which the ball leaves the
	// field of play while airborne. Zero disables the boundary check.
	BoundaryM float64
}

func (o Options) withDefaults() Options {
	if o.TimeStep <= 0 {
		o.TimeStep = DefaultTimeStep
	}
	if o.MaxDuration <= 0 {
		o.MaxDuration = DefaultMaxDuration
	}
	if o.AirDensity <= 0 {
		o.AirDensity = AirDensitySeaLevel
	}
	return o
}

// Acceleration returns the net acceleration on the ball: gravity, quadratic
// drag opposing the velocity direction, and the Magnus term spin × velocity.
// Degenerate velocity or spin vectors contribute nothing instead of NaN.
func Acceleration(state models.BallState, ball models.BallConstants, airDensity float64) models.Vec3 {
	accel := models.Vec3{Z: -Gravity}

	speed := state.Velocity.Norm()
	if speed > 0 {
		dragMag := 0.5 * airDensity * ball.DragCoefficient * ball.CrossSectionM2 * speed * speed / ball.MassKg
		accel = accel.Add(state.Velocity.Normalize().Scale(-dragMag))
	}

	if !state.Spin.IsZero() && speed > 0 {
		magnus := state.Spin.Cross(state.Velocity).Scale(ball.MagnusCoefficient * airDensity / ball.MassKg)
		accel = accel.Add(magnus)
	}

	return accel
}

// Step advances a single fixed timestep with a semi-implicit Euler update:
// velocity first, then position from the updated velocity. Deterministic for
// a given state and dt; used by frame-locked callers for cooperative
// stepping.
func Step(state *models.BallState, ball models.BallConstants, airDensity, dt float64) {
	accel := Acceleration(*state, ball, airDensity)
	state.Velocity = state.Velocity.Add(accel.Scale(dt))
	state.Position = state.Position.Add(state.Velocity.Scale(dt))
	state.Time += dt
}

// Integrate advances the ball from initial until it hits the ground, leaves
// the field boundary while airborne, or the safety cutoff fires. The result
// is a finite trajectory with strictly increasing timestamps. No randomness
// is involved: identical inputs and timestep produce bit-for-bit identical
// trajectories.
func Integrate(initial models.BallState, ball models.BallConstants, opts Options) (models.Trajectory, error) {
	if ball.MassKg <= 0 {
		return models.Trajectory{}, fmt.Errorf("ball constants: mass must be positive, got %g", ball.MassKg)
	}
	opts = opts.withDefaults()

	traj := models.Trajectory{
		TimeStep: opts.TimeStep,
		Samples:  []models.BallState{initial},
	}

	state := initial
	maxSteps := int(opts.MaxDuration/opts.TimeStep) + 1
	for i := 0; i < maxSteps; i++ {
		Step(&state, ball, opts.AirDensity, opts.TimeStep)

		if state.Position.Z <= 0 {
			// Ground contact: emit the final resting state.
			state.Position.Z = 0
			state.Velocity = models.Vec3{}
			state.Spin = models.Vec3{}
			traj.Samples = append(traj.Samples, state)
			traj.End = models.TrajectoryEndGround
			return traj, nil
		}

		traj.Samples = append(traj.Samples, state)

		if opts.BoundaryM > 0 && state.Position.HorizontalDistance() > opts.BoundaryM {
			traj.End = models.TrajectoryEndBoundary
			return traj, nil
		}
	}

	traj.End = models.TrajectoryEndTimeout
	return traj, nil
}
