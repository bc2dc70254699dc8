package models

import "fmt"

// SwingPath describes the vertical shape of the bat path through the zone.
type SwingPath string

const (
	SwingPathUppercut  SwingPath = "uppercut"
	SwingPathLevel     SwingPath = "level"
	SwingPathDownward  SwingPath = "downward"
	SwingPathInsideOut SwingPath = "inside-out"
	SwingPathOutsideIn SwingPath = "outside-in"
)

// HandPath describes how the hands travel to the hitting zone.
type HandPath string

const (
	HandPathDirect  HandPath = "direct"
	HandPathLooping HandPath = "looping"
	HandPathCasting HandPath = "casting"
)

// Handedness is the batter's side of the plate.
type Handedness string

const (
	HandednessRight Handedness = "right"
	HandednessLeft  Handedness = "left"
)

// ContactPoint is where the ball met the bat, normalized to the barrel:
// each component runs 0..1 with 0.5 at the barrel center. X is along the bat
// toward the end cap, Y is the pitch-facing depth, Z is vertical.
type ContactPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// SwingMechanics captures one swing attempt. Supplied once per swing by the
// input-handling collaborator; immutable afterwards. TimingOffsetMs is signed,
// negative meaning the swing was early.
type SwingMechanics struct {
	SpeedMph       float64      `json:"speed_mph"`
	Path           SwingPath    `json:"path"`
	HandPath       HandPath     `json:"hand_path"`
	TimingOffsetMs float64      `json:"timing_offset_ms"`
	Contact        ContactPoint `json:"contact"`
	BatAngleDeg    float64      `json:"bat_angle_deg"`
	HipRotationDeg float64      `json:"hip_rotation_deg"`
	WeightTransfer float64      `json:"weight_transfer"`
	HeadStability  float64      `json:"head_stability"`
	FollowThrough  bool         `json:"follow_through"`
	Handedness     Handedness   `json:"handedness"`
}

// Validate checks the swing record at the engine boundary. Out-of-range
// mechanical inputs are a data bug in the caller, not a physics edge case.
func (s SwingMechanics) Validate() error {
	switch s.Path {
	case SwingPathUppercut, SwingPathLevel, SwingPathDownward,
		SwingPathInsideOut, SwingPathOutsideIn:
	default:
		return fmt.Errorf("unknown swing path %q", s.Path)
	}
	switch s.HandPath {
	case HandPathDirect, HandPathLooping, HandPathCasting, "":
	default:
		return fmt.Errorf("unknown hand path %q", s.HandPath)
	}
	if s.SpeedMph < 0 {
		return fmt.Errorf("swing speed must be non-negative, got %.1f", s.SpeedMph)
	}
	if s.HipRotationDeg < 0 || s.HipRotationDeg > 180 {
		return fmt.Errorf("hip rotation must be within [0,180], got %.1f", s.HipRotationDeg)
	}
	if s.WeightTransfer < 0 || s.WeightTransfer > 1 {
		return fmt.Errorf("weight transfer must be within [0,1], got %.2f", s.WeightTransfer)
	}
	return nil
}

// PullSign returns the sign that maps pull-side contact into field
// coordinates: negative spray angles are the third-base side. A right-handed
// batter pulls toward third base, a left-handed batter toward first.
func (s SwingMechanics) PullSign() float64 {
	if s.Handedness == HandednessLeft {
		return 1
	}
	return -1
}
