package services

import (
	"math"
	"math/rand"

	"github.com/sandlotio/ballflight/internal/models"
)

// Timing windows and multipliers. Timing is the dominant factor in contact
// outcome; everything else modulates around it.
const (
	perfectWindowMs = 15.0
	goodWindowMs    = 30.0
	fairWindowMs    = 50.0

	perfectMultiplier = 1.15
	goodMultiplier    = 1.05
	fairMultiplier    = 0.95
	poorMultiplier    = 0.75
)

// ContactResolver converts swing mechanics plus pitch characteristics at the
// instant of contact into a contact result. The resolver is deterministic for
// a fixed RNG seed; the injected RNG feeds only the natural spray variation.
type ContactResolver struct {
	// SweetSpotTolerance is the normalized distance from the barrel center
	// inside which contact counts as sweet-spot.
	SweetSpotTolerance float64
	// SprayJitterDeg bounds the natural spray variation. Zero disables it.
	SprayJitterDeg float64

	rng *rand.Rand
}

// NewContactResolver creates a resolver. A nil rng disables spray jitter,
// which keeps ResolveContact a pure function of its inputs.
func NewContactResolver(rng *rand.Rand) *ContactResolver {
	return &ContactResolver{
		SweetSpotTolerance: 0.08,
		SprayJitterDeg:     2.0,
		rng:                rng,
	}
}

// ResolveContact resolves one swing against one pitch. A swing speed or pitch
// velocity of zero still yields a defined near-miss result; every output is
// clamped to its documented range.
func (r *ContactResolver) ResolveContact(swing models.SwingMechanics, pitch models.PitchCharacteristics) models.ContactResult {
	grade, timingMult := timingGrade(swing.TimingOffsetMs)
	sweet := r.isSweetSpot(swing.Contact)

	raw := r.rawExitVelocity(swing, pitch, timingMult, sweet)
	exitVelo := clamp(raw, models.MinExitVelocityMph, models.MaxExitVelocityMph)

	launch := clamp(r.launchAngle(swing), models.MinLaunchAngleDeg, models.MaxLaunchAngleDeg)
	spray := clamp(r.sprayAngle(swing, pitch, grade), models.MinSprayAngleDeg, models.MaxSprayAngleDeg)
	spinRPM, spinAxis := r.spin(swing, pitch)

	return models.ContactResult{
		ExitVelocityMph: exitVelo,
		LaunchAngleDeg:  launch,
		SprayAngleDeg:   spray,
		SpinRPM:         spinRPM,
		SpinAxis:        spinAxis,
		SweetSpot:       sweet,
		Timing:          grade,
		Quality:         classifyQuality(exitVelo, launch, sweet, grade, swing),
	}
}

// timingGrade is a step function of the absolute timing offset.
func timingGrade(offsetMs float64) (models.TimingGrade, float64) {
	abs := math.Abs(offsetMs)
	switch {
	case abs <= perfectWindowMs:
		return models.TimingPerfect, perfectMultiplier
	case abs <= goodWindowMs:
		return models.TimingGood, goodMultiplier
	case abs <= fairWindowMs:
		return models.TimingFair, fairMultiplier
	default:
		return models.TimingPoor, poorMultiplier
	}
}

func (r *ContactResolver) isSweetSpot(c models.ContactPoint) bool {
	dx := c.X - 0.5
	dy := c.Y - 0.5
	dz := c.Z - 0.5
	return math.Sqrt(dx*dx+dy*dy+dz*dz) <= r.SweetSpotTolerance
}

// rawExitVelocity is the unclamped exit velocity in mph. Swing speed carries
// most of the energy; the pitch supplies the rest.
func (r *ContactResolver) rawExitVelocity(swing models.SwingMechanics, pitch models.PitchCharacteristics, timingMult float64, sweet bool) float64 {
	base := swing.SpeedMph*1.2 + pitch.VelocityMph*0.2

	sweetFactor := 0.9
	if sweet {
		sweetFactor = 1.1
	}
	weightFactor := 0.9 + swing.WeightTransfer*0.2
	hipFactor := 0.9 + (swing.HipRotationDeg/180.0)*0.2

	return base * timingMult * sweetFactor * weightFactor * hipFactor
}

func (r *ContactResolver) launchAngle(swing models.SwingMechanics) float64 {
	angle := swing.BatAngleDeg + swingPathOffset(swing.Path)
	// Contact under the ball lifts it, over the ball drives it down.
	angle += (swing.Contact.Z - 0.5) * 20
	return angle
}

func swingPathOffset(path models.SwingPath) float64 {
	switch path {
	case models.SwingPathUppercut:
		return 10
	case models.SwingPathDownward:
		return -10
	case models.SwingPathInsideOut:
		return 3
	case models.SwingPathOutsideIn:
		return -3
	default:
		return 0
	}
}

// sprayAngle places the ball left/right of straight-away center. Squared-up
// timing pulls the ball; late swings push it to the opposite field. Pitch
// break and swing-path bias modulate the direction, and the injected RNG adds
// bounded natural variation.
func (r *ContactResolver) sprayAngle(swing models.SwingMechanics, pitch models.PitchCharacteristics, grade models.TimingGrade) float64 {
	late := swing.TimingOffsetMs > 0

	// Degrees toward the batter's pull side.
	var alongPull float64
	switch grade {
	case models.TimingPerfect:
		alongPull = 25 * (1 - math.Abs(swing.TimingOffsetMs)/perfectWindowMs)
	case models.TimingGood:
		alongPull = 12
	case models.TimingFair:
		if late {
			alongPull = -8
		} else {
			alongPull = 6
		}
	default:
		if late {
			alongPull = -15
		} else {
			alongPull = 8
		}
	}

	switch swing.Path {
	case models.SwingPathInsideOut:
		alongPull -= 8
	case models.SwingPathOutsideIn:
		alongPull += 8
	}
	if swing.HandPath == models.HandPathCasting {
		alongPull += 5
	}

	spray := swing.PullSign()*alongPull + pitch.HorizontalBreak*0.3

	if r.rng != nil && r.SprayJitterDeg > 0 {
		spray += (r.rng.Float64()*2 - 1) * r.SprayJitterDeg
	}
	return spray
}

// spin derives the spin magnitude and axis from the swing path and the
// horizontal contact offset. The axis lives in field coordinates for a ball
// leaving toward center field: +X is backspin (lift), -X topspin, Z side
// spin.
func (r *ContactResolver) spin(swing models.SwingMechanics, pitch models.PitchCharacteristics) (float64, models.Vec3) {
	var backspin float64
	switch swing.Path {
	case models.SwingPathUppercut:
		backspin = 2400
	case models.SwingPathDownward:
		backspin = -1100
	case models.SwingPathInsideOut:
		backspin = 1800
	case models.SwingPathOutsideIn:
		backspin = 1500
	default:
		backspin = 1700
	}

	speedScale := 0.6 + 0.4*swing.SpeedMph/70.0
	backspin *= speedScale
	backspin += math.Copysign(0.08*pitch.SpinRate, backspin)

	side := (swing.Contact.X - 0.5) * 2600 * swing.PullSign()

	rpm := math.Sqrt(backspin*backspin + side*side)
	if rpm == 0 {
		return 0, models.Vec3{X: 1}
	}
	axis := models.Vec3{X: backspin, Z: side}.Normalize()
	return rpm, axis
}

// classifyQuality applies the quality bands in priority order; the first
// match wins. Weak contact downgrades to foul only on the narrow off-barrel
// path: no sweet spot, contact far off the barrel center, poor timing.
func classifyQuality(exitVelo, launch float64, sweet bool, grade models.TimingGrade, swing models.SwingMechanics) models.ContactQuality {
	switch {
	case exitVelo < 40:
		return models.ContactMiss
	case exitVelo >= 98 && launch >= 26 && launch <= 30 && sweet:
		return models.ContactBarrel
	case launch < -10:
		return models.ContactTopped
	case launch > 50:
		return models.ContactUnder
	case exitVelo >= 90 && launch >= 8 && launch <= 40:
		return models.ContactSolid
	case exitVelo >= 70 && exitVelo < 90:
		return models.ContactFlare
	}

	if !sweet && grade == models.TimingPoor && math.Abs(swing.Contact.X-0.5) > 0.25 {
		return models.ContactFoul
	}
	return models.ContactWeak
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
