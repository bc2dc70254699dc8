package physics

import (
	"math"

	"github.com/sandlotio/ballflight/internal/models"
)

// ContactHeightM is the typical height of bat-ball contact above the plate.
const ContactHeightM = 0.9

// LaunchState converts a resolved contact into the initial ball state for the
// post-contact flight. Spray angle is measured from straight-away center
// (+Y), positive toward the first-base side.
func LaunchState(contact models.ContactResult, origin models.Vec3) models.BallState {
	speed := contact.ExitVelocityMph * MphToMs
	launch := contact.LaunchAngleDeg * DegToRad
	spray := contact.SprayAngleDeg * DegToRad

	velocity := models.Vec3{
		X: speed * math.Cos(launch) * math.Sin(spray),
		Y: speed * math.Cos(launch) * math.Cos(spray),
		Z: speed * math.Sin(launch),
	}

	spin := contact.SpinAxis.Normalize().Scale(contact.SpinRPM * RpmToRadPerS)

	return models.BallState{
		Position: origin,
		Velocity: velocity,
		Spin:     spin,
	}
}

// PitchSpin maps a pitch-type tag and spin rate onto a spin vector for a ball
// traveling from the mound toward the plate (-Y). Backspin lifts, topspin
// dives, pure side spin runs the ball across the zone.
func PitchSpin(pitchType models.PitchType, spinRate float64) models.Vec3 {
	omega := spinRate * RpmToRadPerS

	var axis models.Vec3
	switch pitchType {
	case models.PitchTypeFastball:
		axis = models.Vec3{X: -1}
	case models.PitchTypeCurveball:
		axis = models.Vec3{X: 1}
	case models.PitchTypeSlider:
		axis = models.Vec3{Z: 1}
	case models.PitchTypeSinker:
		axis = models.Vec3{X: -0.5, Z: -0.87}
	case models.PitchTypeChangeup:
		axis = models.Vec3{X: -1}
		omega *= 0.7
	case models.PitchTypeKnuckle:
		omega *= 0.05
		axis = models.Vec3{X: -1}
	default:
		axis = models.Vec3{X: -1}
	}

	return axis.Normalize().Scale(omega)
}

// PitchState builds the initial ball state for the pitch phase. The release
// point defaults to a mound-scaled position when the pitch record leaves it
// zero; the ball is aimed at the heart of the zone.
func PitchState(pitch models.PitchCharacteristics, defaultRelease models.Vec3) models.BallState {
	release := pitch.ReleasePoint
	if release.IsZero() {
		release = defaultRelease
	}

	target := models.Vec3{X: 0, Y: 0, Z: ContactHeightM}
	dir := target.Sub(release).Normalize()
	speed := pitch.VelocityMph * MphToMs

	return models.BallState{
		Position: release,
		Velocity: dir.Scale(speed),
		Spin:     PitchSpin(pitch.Type, pitch.SpinRate),
	}
}
