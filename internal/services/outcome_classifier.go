package services

import (
	"math"

	"github.com/sandlotio/ballflight/internal/models"
)

// OutcomeClassifier turns a resolved contact into a trajectory-shape
// classification and expected-performance statistics. Expected stats are
// functions of exit velocity and launch angle only, independent of fielding.
type OutcomeClassifier struct {
	// OptimalLaunchAngleDeg is the statistically best launch angle; the
	// expected-stat curves are penalized by distance from it.
	OptimalLaunchAngleDeg float64
	BAPenaltyPerDeg       float64
	SLGPenaltyPerDeg      float64
}

// NewOutcomeClassifier creates a classifier with the tuned curve parameters.
func NewOutcomeClassifier() *OutcomeClassifier {
	return &OutcomeClassifier{
		OptimalLaunchAngleDeg: 20,
		BAPenaltyPerDeg:       0.004,
		SLGPenaltyPerDeg:      0.012,
	}
}

type curvePoint struct {
	velo, value float64
}

// Expected-stat anchors, linear between points, flat outside the range.
var (
	xbaCurve = []curvePoint{
		{40, 0.080},
		{70, 0.250},
		{90, 0.500},
		{100, 0.750},
		{120, 0.950},
	}
	xslgCurve = []curvePoint{
		{40, 0.100},
		{70, 0.350},
		{90, 0.800},
		{100, 1.600},
		{120, 3.200},
	}
)

// Classify derives hit type and expected stats from a contact. Misses and
// fouls produce a no-ball-in-play outcome with zeroed stats rather than an
// error.
func (c *OutcomeClassifier) Classify(contact models.ContactResult) models.BattedBallOutcome {
	if !contact.Quality.InPlay() {
		return models.BattedBallOutcome{HitType: models.HitTypeNone}
	}

	return models.BattedBallOutcome{
		HitType:        hitTypeFor(contact.LaunchAngleDeg, contact.ExitVelocityMph),
		ExpectedBA:     c.expectedBA(contact),
		ExpectedSLG:    c.expectedSLG(contact),
		HitProbability: c.hitProbability(contact),
	}
}

func hitTypeFor(launch, exitVelo float64) models.HitType {
	switch {
	case launch < 10:
		return models.HitTypeGroundBall
	case launch < 25:
		return models.HitTypeLineDrive
	case launch < 50:
		if exitVelo > 90 {
			return models.HitTypeFlyBall
		}
		return models.HitTypePopup
	default:
		return models.HitTypePopup
	}
}

func (c *OutcomeClassifier) expectedBA(contact models.ContactResult) float64 {
	base := interpolate(xbaCurve, contact.ExitVelocityMph)
	penalty := c.BAPenaltyPerDeg * math.Abs(contact.LaunchAngleDeg-c.OptimalLaunchAngleDeg)
	return clamp(base-penalty, 0, 1)
}

func (c *OutcomeClassifier) expectedSLG(contact models.ContactResult) float64 {
	base := interpolate(xslgCurve, contact.ExitVelocityMph)
	penalty := c.SLGPenaltyPerDeg * math.Abs(contact.LaunchAngleDeg-c.OptimalLaunchAngleDeg)
	return clamp(base-penalty, 0, 4)
}

// hitProbability blends a velocity-derived and an angle-derived factor.
func (c *OutcomeClassifier) hitProbability(contact models.ContactResult) float64 {
	velFactor := clamp((contact.ExitVelocityMph-40)/60.0, 0, 1)
	angleFactor := clamp(1-math.Abs(contact.LaunchAngleDeg-c.OptimalLaunchAngleDeg)/45.0, 0, 1)
	return (velFactor + angleFactor) / 2
}

func interpolate(curve []curvePoint, velo float64) float64 {
	if velo <= curve[0].velo {
		return curve[0].value
	}
	last := curve[len(curve)-1]
	if velo >= last.velo {
		return last.value
	}
	for i := 1; i < len(curve); i++ {
		if velo <= curve[i].velo {
			lo, hi := curve[i-1], curve[i]
			frac := (velo - lo.velo) / (hi.velo - lo.velo)
			return lo.value + frac*(hi.value-lo.value)
		}
	}
	return last.value
}
