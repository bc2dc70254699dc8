package models

// HitType is the trajectory shape of a batted ball.
type HitType string

const (
	HitTypeGroundBall HitType = "ground_ball"
	HitTypeLineDrive  HitType = "line_drive"
	HitTypeFlyBall    HitType = "fly_ball"
	HitTypePopup      HitType = "popup"
	// HitTypeNone is used when no ball was put in play (miss or foul).
	HitTypeNone HitType = "none"
)

// BattedBallOutcome carries the classified trajectory shape and the
// expected-performance statistics derived purely from exit velocity and
// launch angle. ExpectedBA is clamped to [0,1], ExpectedSLG to [0,4] and
// HitProbability to [0,1].
type BattedBallOutcome struct {
	HitType        HitType `json:"hit_type"`
	ExpectedBA     float64 `json:"expected_ba"`
	ExpectedSLG    float64 `json:"expected_slg"`
	HitProbability float64 `json:"hit_probability"`
}

// PlateAppearanceState is the pitch-to-outcome pipeline state owned by the
// trajectory orchestrator. RESOLVED is terminal for one ball-in-play cycle;
// the external game-state machine maps resolved events to balls, strikes,
// outs and hits.
type PlateAppearanceState string

const (
	StatePitchDelivered     PlateAppearanceState = "PITCH_DELIVERED"
	StateInFlight           PlateAppearanceState = "IN_FLIGHT"
	StateAtPlate            PlateAppearanceState = "AT_PLATE"
	StateMiss               PlateAppearanceState = "MISS"
	StateFoul               PlateAppearanceState = "FOUL"
	StateContact            PlateAppearanceState = "CONTACT"
	StateBattedBallInFlight PlateAppearanceState = "BATTED_BALL_IN_FLIGHT"
	StateLandedOrOut        PlateAppearanceState = "LANDED_OR_OUT_OF_PLAY"
	StateResolved           PlateAppearanceState = "RESOLVED"
)

// CompletionEvent is emitted once per resolved plate appearance. Fielding AI
// and scorekeeping collaborators subscribe to these to decide catch
// feasibility or register a home run.
type CompletionEvent struct {
	ID              string         `json:"id"`
	PlayerID        string         `json:"player_id"`
	Quality         ContactQuality `json:"quality"`
	HitType         HitType        `json:"hit_type"`
	End             TrajectoryEnd  `json:"end,omitempty"`
	Landing         Vec3           `json:"landing"`
	DistanceM       float64        `json:"distance_m"`
	HangTimeSeconds float64        `json:"hang_time_seconds"`
	HomeRun         bool           `json:"home_run"`
	FoulBall        bool           `json:"foul_ball"`
}
