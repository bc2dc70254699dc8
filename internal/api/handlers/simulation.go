package handlers

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/sandlotio/ballflight/internal/logging"
	"github.com/sandlotio/ballflight/internal/models"
	"github.com/sandlotio/ballflight/internal/services"
)

// SimulationHandler exposes the pitch/swing pipeline over HTTP. Open plate
// appearances are held in memory between the pitch call and the swing call.
type SimulationHandler struct {
	engine *services.Engine
	log    *logging.Logger

	mu   sync.Mutex
	open map[string]*services.PlateAppearance
}

type PitchRequest struct {
	PlayerID string                      `json:"player_id" binding:"required"`
	Pitch    models.PitchCharacteristics `json:"pitch" binding:"required"`
}

type PitchResponse struct {
	PlateAppearanceID string                      `json:"plate_appearance_id"`
	State             models.PlateAppearanceState `json:"state"`
	PlateLocation     models.PlateLocation        `json:"plate_location"`
	FlightTimeSeconds decimal.Decimal             `json:"flight_time_seconds"`
	Samples           int                         `json:"samples"`
}

type TakeRequest struct {
	PlateAppearanceID string `json:"plate_appearance_id" binding:"required"`
}

type TakeResponse struct {
	PlateAppearanceID string                      `json:"plate_appearance_id"`
	State             models.PlateAppearanceState `json:"state"`
	PlateLocation     models.PlateLocation        `json:"plate_location"`
	Event             models.CompletionEvent      `json:"event"`
}

type SwingRequest struct {
	PlateAppearanceID string                `json:"plate_appearance_id" binding:"required"`
	Swing             models.SwingMechanics `json:"swing" binding:"required"`
}

// SwingResponse summarizes a resolved swing. Stat fields are rounded for
// presentation; the engine keeps full precision internally.
type SwingResponse struct {
	PlateAppearanceID string                      `json:"plate_appearance_id"`
	State             models.PlateAppearanceState `json:"state"`
	Contact           ContactSummary              `json:"contact"`
	Outcome           OutcomeSummary              `json:"outcome"`
	Event             models.CompletionEvent      `json:"event"`
	Trajectory        *TrajectorySummary          `json:"trajectory,omitempty"`
}

type ContactSummary struct {
	ExitVelocityMph decimal.Decimal       `json:"exit_velocity_mph"`
	LaunchAngleDeg  decimal.Decimal       `json:"launch_angle_deg"`
	SprayAngleDeg   decimal.Decimal       `json:"spray_angle_deg"`
	SpinRPM         decimal.Decimal       `json:"spin_rpm"`
	SweetSpot       bool                  `json:"sweet_spot"`
	Timing          models.TimingGrade    `json:"timing"`
	Quality         models.ContactQuality `json:"quality"`
}

type OutcomeSummary struct {
	HitType        models.HitType  `json:"hit_type"`
	ExpectedBA     decimal.Decimal `json:"expected_ba"`
	ExpectedSLG    decimal.Decimal `json:"expected_slg"`
	HitProbability decimal.Decimal `json:"hit_probability"`
}

type TrajectorySummary struct {
	End             models.TrajectoryEnd `json:"end"`
	Landing         models.Vec3          `json:"landing"`
	DistanceM       decimal.Decimal      `json:"distance_m"`
	HangTimeSeconds decimal.Decimal      `json:"hang_time_seconds"`
	ApexM           decimal.Decimal      `json:"apex_m"`
	Samples         int                  `json:"samples"`
}

func NewSimulationHandler(engine *services.Engine, log *logging.Logger) *SimulationHandler {
	return &SimulationHandler{
		engine: engine,
		log:    log,
		open:   make(map[string]*services.PlateAppearance),
	}
}

// SimulatePitch starts a plate appearance and delivers one pitch.
func (h *SimulationHandler) SimulatePitch(c *gin.Context) {
	var req PitchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pa := h.engine.NewPlateAppearance(req.PlayerID)
	if err := h.engine.DeliverPitch(pa, req.Pitch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.mu.Lock()
	h.open[pa.ID] = pa
	h.mu.Unlock()

	c.JSON(http.StatusOK, PitchResponse{
		PlateAppearanceID: pa.ID,
		State:             pa.State,
		PlateLocation:     pa.PlateLoc,
		FlightTimeSeconds: round(pa.PitchFlight.HangTime()),
		Samples:           len(pa.PitchFlight.Samples),
	})
}

// SimulateTake resolves an open plate appearance without a swing.
func (h *SimulationHandler) SimulateTake(c *gin.Context) {
	var req TakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.mu.Lock()
	pa, ok := h.open[req.PlateAppearanceID]
	h.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "plate appearance not found"})
		return
	}

	event, err := h.engine.Take(pa)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	h.mu.Lock()
	delete(h.open, pa.ID)
	h.mu.Unlock()

	c.JSON(http.StatusOK, TakeResponse{
		PlateAppearanceID: pa.ID,
		State:             pa.State,
		PlateLocation:     pa.PlateLoc,
		Event:             *event,
	})
}

// SimulateSwing resolves a swing against an open plate appearance.
func (h *SimulationHandler) SimulateSwing(c *gin.Context) {
	var req SwingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.mu.Lock()
	pa, ok := h.open[req.PlateAppearanceID]
	h.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "plate appearance not found"})
		return
	}

	result, err := h.engine.ResolveSwing(pa, req.Swing)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrInvalidState) {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	h.mu.Lock()
	delete(h.open, pa.ID)
	h.mu.Unlock()

	resp := SwingResponse{
		PlateAppearanceID: pa.ID,
		State:             pa.State,
		Contact: ContactSummary{
			ExitVelocityMph: round(result.Contact.ExitVelocityMph),
			LaunchAngleDeg:  round(result.Contact.LaunchAngleDeg),
			SprayAngleDeg:   round(result.Contact.SprayAngleDeg),
			SpinRPM:         round(result.Contact.SpinRPM),
			SweetSpot:       result.Contact.SweetSpot,
			Timing:          result.Contact.Timing,
			Quality:         result.Contact.Quality,
		},
		Outcome: OutcomeSummary{
			HitType:        result.Outcome.HitType,
			ExpectedBA:     round3(result.Outcome.ExpectedBA),
			ExpectedSLG:    round3(result.Outcome.ExpectedSLG),
			HitProbability: round3(result.Outcome.HitProbability),
		},
		Event: result.Event,
	}
	if result.Trajectory != nil {
		resp.Trajectory = &TrajectorySummary{
			End:             result.Trajectory.End,
			Landing:         result.Trajectory.Final().Position,
			DistanceM:       round(result.Trajectory.Distance()),
			HangTimeSeconds: round(result.Trajectory.HangTime()),
			ApexM:           round(result.Trajectory.Apex()),
			Samples:         len(result.Trajectory.Samples),
		}
	}

	c.JSON(http.StatusOK, resp)
}

func round(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(1)
}

func round3(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(3)
}
