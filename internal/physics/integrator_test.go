package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandlotio/ballflight/internal/models"
)

func standardBall() models.BallConstants {
	radius := 0.0366
	return models.BallConstants{
		Material:          "standard",
		MassKg:            0.145,
		RadiusM:           radius,
		CrossSectionM2:    math.Pi * radius * radius,
		DragCoefficient:   0.35,
		MagnusCoefficient: 0.00012,
	}
}

func lineDriveState(speedMs, launchDeg float64) models.BallState {
	launch := launchDeg * DegToRad
	return models.BallState{
		Position: models.Vec3{Z: ContactHeightM},
		Velocity: models.Vec3{Y: speedMs * math.Cos(launch), Z: speedMs * math.Sin(launch)},
	}
}

func TestIntegrateDeterminism(t *testing.T) {
	initial := lineDriveState(45, 28)
	initial.Spin = models.Vec3{X: 180}

	first, err := Integrate(initial, standardBall(), Options{})
	require.NoError(t, err)
	second, err := Integrate(initial, standardBall(), Options{})
	require.NoError(t, err)

	require.Equal(t, len(first.Samples), len(second.Samples))
	for i := range first.Samples {
		assert.Equal(t, first.Samples[i], second.Samples[i])
	}
	assert.Equal(t, first.End, second.End)
}

func TestIntegrateTerminatesOnGround(t *testing.T) {
	traj, err := Integrate(lineDriveState(40, 30), standardBall(), Options{})
	require.NoError(t, err)

	assert.Equal(t, models.TrajectoryEndGround, traj.End)
	final := traj.Final()
	assert.Equal(t, 0.0, final.Position.Z)
	assert.True(t, final.Velocity.IsZero(), "resting state keeps no velocity")
	assert.Greater(t, traj.Distance(), 10.0)
	assert.Less(t, traj.HangTime(), DefaultMaxDuration)
}

func TestIntegrateTimestampsIncrease(t *testing.T) {
	traj, err := Integrate(lineDriveState(35, 20), standardBall(), Options{})
	require.NoError(t, err)

	for i := 1; i < len(traj.Samples); i++ {
		assert.Greater(t, traj.Samples[i].Time, traj.Samples[i-1].Time)
	}
}

func TestIntegrateSafetyCutoff(t *testing.T) {
	initial := models.BallState{
		Position: models.Vec3{Z: 1},
		Velocity: models.Vec3{Z: 200},
	}

	traj, err := Integrate(initial, standardBall(), Options{MaxDuration: 0.5})
	require.NoError(t, err)

	assert.Equal(t, models.TrajectoryEndTimeout, traj.End)
	assert.InDelta(t, 0.5, traj.HangTime(), 0.05)
}

func TestIntegrateFieldBoundary(t *testing.T) {
	traj, err := Integrate(lineDriveState(55, 25), standardBall(), Options{BoundaryM: 30})
	require.NoError(t, err)

	assert.Equal(t, models.TrajectoryEndBoundary, traj.End)
	final := traj.Final()
	assert.Greater(t, final.Position.HorizontalDistance(), 30.0)
	assert.Greater(t, final.Position.Z, 0.0, "boundary exit happens while airborne")
}

func TestDragReducesCarry(t *testing.T) {
	ball := standardBall()
	noDrag := ball
	noDrag.DragCoefficient = 0

	withDrag, err := Integrate(lineDriveState(45, 30), ball, Options{})
	require.NoError(t, err)
	without, err := Integrate(lineDriveState(45, 30), noDrag, Options{})
	require.NoError(t, err)

	assert.Less(t, withDrag.Distance(), without.Distance())
}

func TestBackspinOutcarriesTopspin(t *testing.T) {
	backspin := lineDriveState(45, 28)
	backspin.Spin = models.Vec3{X: 220}
	topspin := lineDriveState(45, 28)
	topspin.Spin = models.Vec3{X: -220}

	back, err := Integrate(backspin, standardBall(), Options{})
	require.NoError(t, err)
	top, err := Integrate(topspin, standardBall(), Options{})
	require.NoError(t, err)

	assert.Greater(t, back.Distance(), top.Distance())
	assert.Greater(t, back.HangTime(), top.HangTime())
}

func TestIntegrateRejectsZeroMass(t *testing.T) {
	ball := standardBall()
	ball.MassKg = 0

	_, err := Integrate(lineDriveState(40, 20), ball, Options{})
	assert.Error(t, err)
}

func TestAccelerationDegenerateVectors(t *testing.T) {
	// A motionless, spinless ball only feels gravity; no NaN leaks out of
	// the normalization guards.
	state := models.BallState{Position: models.Vec3{Z: 1}}

	accel := Acceleration(state, standardBall(), AirDensitySeaLevel)

	assert.Equal(t, models.Vec3{Z: -Gravity}, accel)
	assert.False(t, math.IsNaN(accel.Norm()))
}

func TestStepMatchesIntegrateSamples(t *testing.T) {
	initial := lineDriveState(40, 25)
	traj, err := Integrate(initial, standardBall(), Options{})
	require.NoError(t, err)

	state := initial
	for i := 1; i < 10 && i < len(traj.Samples); i++ {
		Step(&state, standardBall(), AirDensitySeaLevel, traj.TimeStep)
		assert.Equal(t, traj.Samples[i], state)
	}
}

func TestLaunchStateDirections(t *testing.T) {
	contact := models.ContactResult{
		ExitVelocityMph: 100,
		LaunchAngleDeg:  45,
		SprayAngleDeg:   0,
		SpinRPM:         1800,
		SpinAxis:        models.Vec3{X: 1},
	}

	state := LaunchState(contact, models.Vec3{Z: ContactHeightM})

	assert.InDelta(t, 0, state.Velocity.X, 1e-9)
	assert.InDelta(t, state.Velocity.Y, state.Velocity.Z, 1e-9)
	assert.InDelta(t, 100*MphToMs, state.Velocity.Norm(), 1e-9)
	assert.InDelta(t, 1800*RpmToRadPerS, state.Spin.Norm(), 1e-9)
}

func TestPitchStateAimsAtPlate(t *testing.T) {
	pitch := models.PitchCharacteristics{
		Type:        models.PitchTypeFastball,
		VelocityMph: 60,
		SpinRate:    1500,
	}
	release := models.Vec3{Y: 14, Z: 1.7}

	state := PitchState(pitch, release)

	assert.Equal(t, release, state.Position)
	assert.Negative(t, state.Velocity.Y, "ball travels from mound to plate")
	assert.InDelta(t, 60*MphToMs, state.Velocity.Norm(), 1e-9)
	assert.False(t, state.Spin.IsZero())
}
