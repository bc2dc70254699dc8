package models

import "fmt"

// PitchType tags the delivery style of a pitch.
type PitchType string

const (
	PitchTypeFastball  PitchType = "fastball"
	PitchTypeCurveball PitchType = "curveball"
	PitchTypeSlider    PitchType = "slider"
	PitchTypeChangeup  PitchType = "changeup"
	PitchTypeSinker    PitchType = "sinker"
	PitchTypeKnuckle   PitchType = "knuckleball"
)

// ErrUnknownPitchType reports a pitch-type tag that is not part of the
// content set. It indicates a data bug, not a physical edge case.
type ErrUnknownPitchType struct {
	Type PitchType
}

func (e ErrUnknownPitchType) Error() string {
	return fmt.Sprintf("unknown pitch type %q", e.Type)
}

// ValidPitchType reports whether t is a known pitch-type tag.
func ValidPitchType(t PitchType) bool {
	switch t {
	case PitchTypeFastball, PitchTypeCurveball, PitchTypeSlider,
		PitchTypeChangeup, PitchTypeSinker, PitchTypeKnuckle:
		return true
	}
	return false
}

// PitchCharacteristics describes a single delivery. Immutable once generated.
// Velocity is in mph; breaks are in inches of deviation at the plate (positive
// horizontal break runs toward the first-base side, positive vertical break is
// rise relative to a spinless ball). SpinRate is rpm.
type PitchCharacteristics struct {
	Type            PitchType `json:"type"`
	VelocityMph     float64   `json:"velocity_mph"`
	HorizontalBreak float64   `json:"horizontal_break"`
	VerticalBreak   float64   `json:"vertical_break"`
	SpinRate        float64   `json:"spin_rate"`
	ReleasePoint    Vec3      `json:"release_point"`
}

// PlateLocation is where a pitch crosses the front of the plate: X in meters
// toward the first-base side, Z in meters above the ground.
type PlateLocation struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// Validate checks the pitch record at the engine boundary.
func (p PitchCharacteristics) Validate() error {
	if !ValidPitchType(p.Type) {
		return ErrUnknownPitchType{Type: p.Type}
	}
	if p.VelocityMph < 0 {
		return fmt.Errorf("pitch velocity must be non-negative, got %.1f", p.VelocityMph)
	}
	if p.SpinRate < 0 {
		return fmt.Errorf("pitch spin rate must be non-negative, got %.1f", p.SpinRate)
	}
	return nil
}
