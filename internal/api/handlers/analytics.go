package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/sandlotio/ballflight/internal/logging"
	"github.com/sandlotio/ballflight/internal/models"
	"github.com/sandlotio/ballflight/internal/services"
)

// AnalyticsHandler serves per-player batting aggregates and the
// snapshot/restore persistence boundary.
type AnalyticsHandler struct {
	engine *services.Engine
	log    *logging.Logger
}

type AnalyticsSummary struct {
	PlayerID        string                 `json:"player_id"`
	Swings          int                    `json:"swings"`
	ContactRate     decimal.Decimal        `json:"contact_rate"`
	BarrelRate      decimal.Decimal        `json:"barrel_rate"`
	AvgExitVelocity decimal.Decimal        `json:"avg_exit_velocity"`
	AvgLaunchAngle  decimal.Decimal        `json:"avg_launch_angle"`
	AvgExpectedBA   decimal.Decimal        `json:"avg_expected_ba"`
	AvgExpectedSLG  decimal.Decimal        `json:"avg_expected_slg"`
	Trend           models.FormTrend       `json:"trend"`
	Trajectory      map[models.HitType]int `json:"trajectory_counts"`
	Timestamp       time.Time              `json:"timestamp"`
}

type ZonesResponse struct {
	PlayerID string                                                    `json:"player_id"`
	Zones    [models.ZoneGridSize][models.ZoneGridSize]models.ZoneCell `json:"zones"`
}

func NewAnalyticsHandler(engine *services.Engine, log *logging.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{engine: engine, log: log}
}

// GetAnalytics returns the rounded summary used by coaching UI panels.
func (h *AnalyticsHandler) GetAnalytics(c *gin.Context) {
	playerID := c.Param("player")
	agg := h.engine.Analytics(playerID)
	snap := agg.Snapshot()

	c.JSON(http.StatusOK, AnalyticsSummary{
		PlayerID:        snap.PlayerID,
		Swings:          snap.Swings,
		ContactRate:     round3(agg.ContactRate()),
		BarrelRate:      round3(agg.BarrelRate()),
		AvgExitVelocity: round(snap.AvgExitVelocity),
		AvgLaunchAngle:  round(snap.AvgLaunchAngle),
		AvgExpectedBA:   round3(snap.AvgExpectedBA),
		AvgExpectedSLG:  round3(snap.AvgExpectedSLG),
		Trend:           agg.RecentFormTrend(),
		Trajectory:      snap.TrajectoryCounts,
		Timestamp:       time.Now(),
	})
}

// GetSnapshot exports the full-precision aggregate record.
func (h *AnalyticsHandler) GetSnapshot(c *gin.Context) {
	playerID := c.Param("player")
	c.JSON(http.StatusOK, h.engine.Analytics(playerID).Snapshot())
}

// RestoreSnapshot loads a previously exported aggregate, e.g. on session
// resume.
func (h *AnalyticsHandler) RestoreSnapshot(c *gin.Context) {
	playerID := c.Param("player")

	var snap models.BattingAnalyticsSnapshot
	if err := c.ShouldBindJSON(&snap); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if snap.PlayerID != playerID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "snapshot player does not match URL"})
		return
	}

	h.engine.Analytics(playerID).RestoreSnapshot(snap)
	h.log.WithComponent("api").WithField("player_id", playerID).Info("analytics snapshot restored")
	c.JSON(http.StatusOK, gin.H{"status": "restored", "swings": snap.Swings})
}

// GetZones returns the 9x9 plate-zone performance grid.
func (h *AnalyticsHandler) GetZones(c *gin.Context) {
	playerID := c.Param("player")
	snap := h.engine.Analytics(playerID).Snapshot()
	c.JSON(http.StatusOK, ZonesResponse{PlayerID: playerID, Zones: snap.Zones})
}
