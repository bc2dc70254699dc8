package services

import (
	"errors"
	"math"
	"math/rand"
	"sync"

	"github.com/google/uuid"

	"github.com/sandlotio/ballflight/internal/config"
	"github.com/sandlotio/ballflight/internal/logging"
	"github.com/sandlotio/ballflight/internal/models"
	"github.com/sandlotio/ballflight/internal/physics"
)

// ErrInvalidState is returned when a plate-appearance operation is called out
// of order, e.g. resolving a swing before a pitch was delivered.
var ErrInvalidState = errors.New("plate appearance is not in a state that allows this operation")

// pitchFlightCutoff bounds the pitch-phase integration; a delivery that has
// not reached the plate by then is dead on arrival.
const pitchFlightCutoff = 3.0

// PlateAppearance tracks one pitch-to-outcome cycle through the state
// machine PITCH_DELIVERED → IN_FLIGHT → AT_PLATE → {MISS|FOUL|CONTACT} →
// BATTED_BALL_IN_FLIGHT → LANDED_OR_OUT_OF_PLAY → RESOLVED. The pipeline runs
// synchronously, so intermediate states are traversed within a single call;
// State reflects the last state reached.
type PlateAppearance struct {
	ID       string
	PlayerID string
	State    models.PlateAppearanceState

	Pitch       models.PitchCharacteristics
	PitchFlight models.Trajectory
	PlateLoc    models.PlateLocation

	Contact    *models.ContactResult
	BattedBall *models.Trajectory
	Outcome    *models.BattedBallOutcome
	Event      *models.CompletionEvent
}

// SwingResult is the synchronous return of one resolved swing. Trajectory is
// nil when no ball was put in play.
type SwingResult struct {
	Contact    models.ContactResult     `json:"contact"`
	Trajectory *models.Trajectory       `json:"trajectory,omitempty"`
	Outcome    models.BattedBallOutcome `json:"outcome"`
	Event      models.CompletionEvent   `json:"event"`
}

// Engine is the match-scoped façade over the simulation pipeline. Each match
// gets its own instance: trajectory state, analytics aggregates and the
// seeded random source are fully isolated from other matches.
type Engine struct {
	cfg      *config.Config
	log      *logging.Logger
	resolver *ContactResolver
	outcomes *OutcomeClassifier
	ball     models.BallConstants

	mu        sync.Mutex
	analytics map[string]*BattingAnalytics
	listeners []func(models.CompletionEvent)
}

// NewEngine builds an engine from validated configuration. The seed fixes
// the injected random source, making every simulated outcome reproducible.
func NewEngine(cfg *config.Config, log *logging.Logger) (*Engine, error) {
	ball, err := ballFor(cfg, cfg.Engine.BallMaterial)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(cfg.Engine.Seed))
	resolver := NewContactResolver(rng)
	resolver.SprayJitterDeg = cfg.Engine.SprayJitterDeg

	return &Engine{
		cfg:       cfg,
		log:       log,
		resolver:  resolver,
		outcomes:  NewOutcomeClassifier(),
		ball:      ball,
		analytics: make(map[string]*BattingAnalytics),
	}, nil
}

func ballFor(cfg *config.Config, material string) (models.BallConstants, error) {
	spec, ok := cfg.Balls[material]
	if !ok {
		return models.BallConstants{}, config.ErrUnknownBallMaterial{Material: material}
	}
	return models.BallConstants{
		Material:          material,
		MassKg:            spec.MassKg,
		RadiusM:           spec.RadiusM,
		CrossSectionM2:    spec.CrossSectionM2(),
		DragCoefficient:   spec.DragCoefficient,
		MagnusCoefficient: spec.MagnusCoefficient,
	}, nil
}

// Ball returns the match ball constants.
func (e *Engine) Ball() models.BallConstants {
	return e.ball
}

// OnCompletion registers a listener for resolved plate appearances. Fielding
// AI and scorekeeping collaborators subscribe here.
func (e *Engine) OnCompletion(fn func(models.CompletionEvent)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, fn)
}

// Analytics returns the rolling aggregate for a player, creating it on the
// first swing. Aggregates live for the whole session.
func (e *Engine) Analytics(playerID string) *BattingAnalytics {
	e.mu.Lock()
	defer e.mu.Unlock()
	agg, ok := e.analytics[playerID]
	if !ok {
		agg = NewBattingAnalytics(playerID)
		e.analytics[playerID] = agg
	}
	return agg
}

// NewPlateAppearance starts a fresh pitch-to-outcome cycle for a batter.
func (e *Engine) NewPlateAppearance(playerID string) *PlateAppearance {
	return &PlateAppearance{
		ID:       uuid.NewString(),
		PlayerID: playerID,
	}
}

// DeliverPitch simulates the pitch phase: the ball is integrated from the
// release point until it crosses the plate plane. An unknown pitch-type tag
// is a content bug and returns a typed error.
func (e *Engine) DeliverPitch(pa *PlateAppearance, pitch models.PitchCharacteristics) error {
	if pa.State != "" {
		return ErrInvalidState
	}
	if err := pitch.Validate(); err != nil {
		return err
	}

	pa.State = models.StatePitchDelivered
	pa.Pitch = pitch

	release := models.Vec3{Y: e.cfg.Field.ReleaseDistanceM, Z: e.cfg.Field.ReleaseHeightM}
	initial := physics.PitchState(pitch, release)

	pa.State = models.StateInFlight
	flight, err := physics.Integrate(initial, e.ball, physics.Options{
		TimeStep:    e.cfg.Physics.TimeStep,
		MaxDuration: pitchFlightCutoff,
		AirDensity:  e.cfg.Physics.AirDensity,
	})
	if err != nil {
		return err
	}
	pa.PitchFlight = flight
	pa.PlateLoc = plateCrossing(flight)
	pa.State = models.StateAtPlate

	e.log.WithComponent("engine").WithFields(map[string]interface{}{
		"plate_appearance": pa.ID,
		"pitch_type":       pitch.Type,
		"plate_x":          pa.PlateLoc.X,
		"plate_z":          pa.PlateLoc.Z,
	}).Debug("pitch delivered")
	return nil
}

// plateCrossing finds where the pitch crosses the plate plane. A pitch that
// never arrives (spiked into the ground) reports its final position.
func plateCrossing(flight models.Trajectory) models.PlateLocation {
	for _, s := range flight.Samples {
		if s.Position.Y <= 0 {
			return models.PlateLocation{X: s.Position.X, Z: s.Position.Z}
		}
	}
	final := flight.Final()
	return models.PlateLocation{X: final.Position.X, Z: final.Position.Z}
}

// ResolveSwing resolves a swing against the delivered pitch, simulates the
// batted-ball flight when contact is made, updates the batter's analytics and
// emits the completion event. Malformed swing input degrades to a defined
// no-contact result instead of interrupting the caller's game loop.
func (e *Engine) ResolveSwing(pa *PlateAppearance, swing models.SwingMechanics) (*SwingResult, error) {
	if pa.State != models.StateAtPlate {
		return nil, ErrInvalidState
	}

	if err := swing.Validate(); err != nil {
		e.log.WithComponent("engine").WithField("player_id", pa.PlayerID).
			WithError(err).Warn("malformed swing input, resolving as no contact")
		return e.resolveNoContact(pa)
	}

	contact := e.resolver.ResolveContact(swing, pa.Pitch)
	pa.Contact = &contact

	switch {
	case contact.Quality == models.ContactMiss:
		pa.State = models.StateMiss
		return e.finishWithoutFlight(pa, contact, false)
	case contact.Quality == models.ContactFoul:
		pa.State = models.StateFoul
		return e.finishWithoutFlight(pa, contact, true)
	}

	pa.State = models.StateContact

	origin := models.Vec3{X: pa.PlateLoc.X, Z: pa.PlateLoc.Z}
	if origin.Z <= 0 {
		origin.Z = physics.ContactHeightM
	}
	launch := physics.LaunchState(contact, origin)

	pa.State = models.StateBattedBallInFlight
	flight, err := physics.Integrate(launch, e.ball, physics.Options{
		TimeStep:    e.cfg.Physics.TimeStep,
		MaxDuration: e.cfg.Physics.MaxFlightSeconds,
		AirDensity:  e.cfg.Physics.AirDensity,
		BoundaryM:   e.cfg.Field.FenceDistanceM,
	})
	if err != nil {
		return nil, err
	}
	pa.BattedBall = &flight
	pa.State = models.StateLandedOrOut

	final := flight.Final()
	foul := landedFoul(final.Position, e.cfg.Field.FoulLineDeg)
	homeRun := flight.End == models.TrajectoryEndBoundary &&
		final.Position.Z >= e.cfg.Field.FenceHeightM && !foul

	outcome := e.outcomes.Classify(contact)
	pa.Outcome = &outcome

	event := models.CompletionEvent{
		ID:              uuid.NewString(),
		PlayerID:        pa.PlayerID,
		Quality:         contact.Quality,
		HitType:         outcome.HitType,
		End:             flight.End,
		Landing:         final.Position,
		DistanceM:       flight.Distance(),
		HangTimeSeconds: flight.HangTime(),
		HomeRun:         homeRun,
		FoulBall:        foul,
	}

	e.Analytics(pa.PlayerID).RecordSwing(pa.PlateLoc, contact, outcome)
	e.resolve(pa, event)

	return &SwingResult{
		Contact:    contact,
		Trajectory: &flight,
		Outcome:    outcome,
		Event:      event,
	}, nil
}

// Take resolves a plate appearance in which the batter does not offer at the
// pitch. No contact is resolved and no swing is recorded; the completion event
// carries only identity, leaving the ball/strike judgment to the external
// game-state machine using the plate location.
func (e *Engine) Take(pa *PlateAppearance) (*models.CompletionEvent, error) {
	if pa.State != models.StateAtPlate {
		return nil, ErrInvalidState
	}

	event := models.CompletionEvent{
		ID:       uuid.NewString(),
		PlayerID: pa.PlayerID,
		HitType:  models.HitTypeNone,
	}
	e.resolve(pa, event)
	return &event, nil
}

// resolveNoContact handles invalid swing input: a defined near-miss with no
// trajectory, recorded as a whiff.
func (e *Engine) resolveNoContact(pa *PlateAppearance) (*SwingResult, error) {
	contact := models.ContactResult{
		ExitVelocityMph: models.MinExitVelocityMph,
		Timing:          models.TimingPoor,
		Quality:         models.ContactMiss,
		SpinAxis:        models.Vec3{X: 1},
	}
	pa.Contact = &contact
	pa.State = models.StateMiss
	return e.finishWithoutFlight(pa, contact, false)
}

// finishWithoutFlight resolves a miss or a foul tip: no batted-ball flight is
// simulated, but analytics and subscribers still see the completed cycle.
func (e *Engine) finishWithoutFlight(pa *PlateAppearance, contact models.ContactResult, foul bool) (*SwingResult, error) {
	outcome := e.outcomes.Classify(contact)
	pa.Outcome = &outcome

	event := models.CompletionEvent{
		ID:       uuid.NewString(),
		PlayerID: pa.PlayerID,
		Quality:  contact.Quality,
		HitType:  outcome.HitType,
		FoulBall: foul,
	}

	e.Analytics(pa.PlayerID).RecordSwing(pa.PlateLoc, contact, outcome)
	e.resolve(pa, event)

	return &SwingResult{Contact: contact, Outcome: outcome, Event: event}, nil
}

func (e *Engine) resolve(pa *PlateAppearance, event models.CompletionEvent) {
	pa.Event = &event
	pa.State = models.StateResolved

	e.mu.Lock()
	listeners := make([]func(models.CompletionEvent), len(e.listeners))
	copy(listeners, e.listeners)
	e.mu.Unlock()
	for _, fn := range listeners {
		fn(event)
	}

	e.log.WithComponent("engine").WithField("player_id", pa.PlayerID).WithFields(map[string]interface{}{
		"plate_appearance": pa.ID,
		"quality":          event.Quality,
		"hit_type":         event.HitType,
		"distance_m":       event.DistanceM,
		"home_run":         event.HomeRun,
		"foul_ball":        event.FoulBall,
	}).Info("plate appearance resolved")
}

// landedFoul reports whether a landing position is outside the foul lines.
func landedFoul(pos models.Vec3, foulLineDeg float64) bool {
	if pos.X == 0 && pos.Y == 0 {
		return false
	}
	angle := math.Abs(math.Atan2(pos.X, pos.Y)) * physics.RadToDeg
	return angle > foulLineDeg
}
