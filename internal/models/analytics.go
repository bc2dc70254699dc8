package models

// ZoneGridSize is the number of rows and columns in the hot/cold zone grid.
const ZoneGridSize = 9

// ZoneCell accumulates per-cell plate discipline for one bucket of pitch
// locations. Averages are maintained incrementally, never recomputed from
// history.
type ZoneCell struct {
	Samples     int     `json:"samples"`
	Whiffs      int     `json:"whiffs"`
	AvgBA       float64 `json:"avg_ba"`
	AvgSLG      float64 `json:"avg_slg"`
	WhiffRate   float64 `json:"whiff_rate"`
	AvgExitVelo float64 `json:"avg_exit_velo"`
}

// RecentSwing is one entry of the bounded recent-form window.
type RecentSwing struct {
	ExitVelocityMph float64        `json:"exit_velocity_mph"`
	LaunchAngleDeg  float64        `json:"launch_angle_deg"`
	Quality         ContactQuality `json:"quality"`
	ExpectedBA      float64        `json:"expected_ba"`
}

// FormTrend summarizes the short-term direction of a batter's contact
// quality.
type FormTrend string

const (
	FormHeatingUp   FormTrend = "heating_up"
	FormCoolingDown FormTrend = "cooling_down"
	FormSteady      FormTrend = "steady"
)

// BattingAnalyticsSnapshot is the plain serializable export of a per-player
// aggregate. The external save/load collaborator owns encoding and storage;
// the engine only produces and consumes these records.
type BattingAnalyticsSnapshot struct {
	PlayerID         string                               `json:"player_id"`
	Swings           int                                  `json:"swings"`
	Contacts         int                                  `json:"contacts"`
	Whiffs           int                                  `json:"whiffs"`
	Fouls            int                                  `json:"fouls"`
	Barrels          int                                  `json:"barrels"`
	SweetSpots       int                                  `json:"sweet_spots"`
	AvgExitVelocity  float64                              `json:"avg_exit_velocity"`
	AvgLaunchAngle   float64                              `json:"avg_launch_angle"`
	ExitVelocityVar  float64                              `json:"exit_velocity_variance"`
	AvgExpectedBA    float64                              `json:"avg_expected_ba"`
	AvgExpectedSLG   float64                              `json:"avg_expected_slg"`
	AvgHitProb       float64                              `json:"avg_hit_probability"`
	TrajectoryCounts map[HitType]int                      `json:"trajectory_counts"`
	RecentForm       []RecentSwing                        `json:"recent_form"`
	Zones            [ZoneGridSize][ZoneGridSize]ZoneCell `json:"zones"`
}
