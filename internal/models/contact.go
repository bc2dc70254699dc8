package models

// TimingGrade buckets the absolute timing offset of a swing.
type TimingGrade string

const (
	TimingPerfect TimingGrade = "perfect"
	TimingGood    TimingGrade = "good"
	TimingFair    TimingGrade = "fair"
	TimingPoor    TimingGrade = "poor"
)

// ContactQuality is the discrete classification of a resolved contact.
type ContactQuality string

const (
	ContactBarrel ContactQuality = "barrel"
	ContactSolid  ContactQuality = "solid"
	ContactFlare  ContactQuality = "flare"
	ContactWeak   ContactQuality = "weak"
	ContactTopped ContactQuality = "topped"
	ContactUnder  ContactQuality = "under"
	ContactMiss   ContactQuality = "miss"
	ContactFoul   ContactQuality = "foul"
)

// InPlay reports whether the quality produces a batted ball that the
// trajectory phase should simulate.
func (q ContactQuality) InPlay() bool {
	return q != ContactMiss && q != ContactFoul
}

// Clamp ranges for contact outputs. Every resolved contact stays inside
// these regardless of input.
const (
	MinExitVelocityMph = 20.0
	MaxExitVelocityMph = 120.0
	MinLaunchAngleDeg  = -45.0
	MaxLaunchAngleDeg  = 80.0
	MinSprayAngleDeg   = -45.0
	MaxSprayAngleDeg   = 45.0
)

// ContactResult is the resolved outcome of a swing meeting a pitch. Computed
// once per swing and immutable after creation. ExitVelocityMph is clamped to
// [20,120], LaunchAngleDeg to [-45,80] and SprayAngleDeg to [-45,45].
type ContactResult struct {
	ExitVelocityMph float64        `json:"exit_velocity_mph"`
	LaunchAngleDeg  float64        `json:"launch_angle_deg"`
	SprayAngleDeg   float64        `json:"spray_angle_deg"`
	SpinRPM         float64        `json:"spin_rpm"`
	SpinAxis        Vec3           `json:"spin_axis"`
	SweetSpot       bool           `json:"sweet_spot"`
	Timing          TimingGrade    `json:"timing"`
	Quality         ContactQuality `json:"quality"`
}
