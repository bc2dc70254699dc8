package services

import (
	"sync"

	"github.com/cinar/indicator/v2/helper"
	"github.com/cinar/indicator/v2/trend"

	"github.com/sandlotio/ballflight/internal/models"
)

// RecentFormCapacity bounds the short-term trend window; the oldest entry is
// evicted first.
const RecentFormCapacity = 10

// Zone grid bounds over plate-crossing locations, meters. Locations outside
// the window clamp to the edge cells.
const (
	zoneMinX = -0.6
	zoneMaxX = 0.6
	zoneMinZ = 0.2
	zoneMaxZ = 1.4
)

const trendSmaPeriod = 3

// BattingAnalytics is the rolling per-player aggregate. All means are updated
// incrementally per swing (Welford-style), never recomputed from history, so
// the engine retains no unbounded swing log. Created on the first swing and
// kept for the whole session; a snapshot can cross the persistence boundary
// as a plain record.
//
// Updates are atomic per completed swing. The surrounding game loop is
// single-threaded per match, but the lock also covers the serving shim.
type BattingAnalytics struct {
	mu sync.Mutex

	playerID   string
	swings     int
	contacts   int
	whiffs     int
	fouls      int
	barrels    int
	sweetSpots int
	inPlay     int

	meanExitVelo float64
	m2ExitVelo   float64
	meanLaunch   float64

	meanXBA     float64
	meanXSLG    float64
	meanHitProb float64

	trajectory map[models.HitType]int
	recent     []models.RecentSwing
	zones      [models.ZoneGridSize][models.ZoneGridSize]models.ZoneCell
}

// NewBattingAnalytics creates an empty aggregate for one player.
func NewBattingAnalytics(playerID string) *BattingAnalytics {
	return &BattingAnalytics{
		playerID:   playerID,
		trajectory: make(map[models.HitType]int),
	}
}

// zoneIndex buckets a plate location into the 9×9 grid.
func zoneIndex(loc models.PlateLocation) (row, col int) {
	col = int((loc.X - zoneMinX) / (zoneMaxX - zoneMinX) * models.ZoneGridSize)
	row = int((loc.Z - zoneMinZ) / (zoneMaxZ - zoneMinZ) * models.ZoneGridSize)
	if col < 0 {
		col = 0
	}
	if col >= models.ZoneGridSize {
		col = models.ZoneGridSize - 1
	}
	if row < 0 {
		row = 0
	}
	if row >= models.ZoneGridSize {
		row = models.ZoneGridSize - 1
	}
	return row, col
}

// RecordSwing folds one resolved swing into the aggregate.
func (a *BattingAnalytics) RecordSwing(loc models.PlateLocation, contact models.ContactResult, outcome models.BattedBallOutcome) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.swings++

	row, col := zoneIndex(loc)
	cell := &a.zones[row][col]
	cell.Samples++

	whiff := contact.Quality == models.ContactMiss
	if whiff {
		a.whiffs++
		cell.Whiffs++
	} else {
		a.contacts++
		if contact.Quality == models.ContactFoul {
			a.fouls++
		}
		if contact.Quality == models.ContactBarrel {
			a.barrels++
		}
		if contact.SweetSpot {
			a.sweetSpots++
		}

		n := float64(a.contacts)
		deltaEV := contact.ExitVelocityMph - a.meanExitVelo
		a.meanExitVelo += deltaEV / n
		a.m2ExitVelo += deltaEV * (contact.ExitVelocityMph - a.meanExitVelo)
		a.meanLaunch += (contact.LaunchAngleDeg - a.meanLaunch) / n

		cell.AvgExitVelo += (contact.ExitVelocityMph - cell.AvgExitVelo) / float64(cell.Samples-cell.Whiffs)
	}

	if outcome.HitType != models.HitTypeNone {
		a.inPlay++
		a.trajectory[outcome.HitType]++
		n := float64(a.inPlay)
		a.meanXBA += (outcome.ExpectedBA - a.meanXBA) / n
		a.meanXSLG += (outcome.ExpectedSLG - a.meanXSLG) / n
		a.meanHitProb += (outcome.HitProbability - a.meanHitProb) / n
	}

	samples := float64(cell.Samples)
	cell.AvgBA += (outcome.ExpectedBA - cell.AvgBA) / samples
	cell.AvgSLG += (outcome.ExpectedSLG - cell.AvgSLG) / samples
	cell.WhiffRate = float64(cell.Whiffs) / samples

	a.recent = append(a.recent, models.RecentSwing{
		ExitVelocityMph: contact.ExitVelocityMph,
		LaunchAngleDeg:  contact.LaunchAngleDeg,
		Quality:         contact.Quality,
		ExpectedBA:      outcome.ExpectedBA,
	})
	if len(a.recent) > RecentFormCapacity {
		a.recent = a.recent[1:]
	}
}

// Swings returns the total swing count.
func (a *BattingAnalytics) Swings() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.swings
}

// ContactRate is the share of swings that touched the ball.
func (a *BattingAnalytics) ContactRate() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.swings == 0 {
		return 0
	}
	return float64(a.contacts) / float64(a.swings)
}

// BarrelRate is the share of contacted balls classified as barrels.
func (a *BattingAnalytics) BarrelRate() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.contacts == 0 {
		return 0
	}
	return float64(a.barrels) / float64(a.contacts)
}

// AvgExitVelocity is the running mean over contacted balls, mph.
func (a *BattingAnalytics) AvgExitVelocity() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.meanExitVelo
}

// RecentFormTrend classifies the short-term direction of contact quality by
// smoothing the recent exit velocities with a short SMA and comparing the
// ends of the smoothed series.
func (a *BattingAnalytics) RecentFormTrend() models.FormTrend {
	a.mu.Lock()
	values := make([]float64, len(a.recent))
	for i, s := range a.recent {
		values[i] = s.ExitVelocityMph
	}
	a.mu.Unlock()

	if len(values) < trendSmaPeriod+1 {
		return models.FormSteady
	}

	sma := trend.NewSmaWithPeriod[float64](trendSmaPeriod)
	smoothed := helper.ChanToSlice(sma.Compute(helper.SliceToChan(values)))
	if len(smoothed) < 2 {
		return models.FormSteady
	}

	delta := smoothed[len(smoothed)-1] - smoothed[0]
	switch {
	case delta > 2:
		return models.FormHeatingUp
	case delta < -2:
		return models.FormCoolingDown
	default:
		return models.FormSteady
	}
}

// Snapshot exports the aggregate as a plain serializable record.
func (a *BattingAnalytics) Snapshot() models.BattingAnalyticsSnapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	variance := 0.0
	if a.contacts > 1 {
		variance = a.m2ExitVelo / float64(a.contacts-1)
	}

	traj := make(map[models.HitType]int, len(a.trajectory))
	for k, v := range a.trajectory {
		traj[k] = v
	}
	recent := make([]models.RecentSwing, len(a.recent))
	copy(recent, a.recent)

	return models.BattingAnalyticsSnapshot{
		PlayerID:         a.playerID,
		Swings:           a.swings,
		Contacts:         a.contacts,
		Whiffs:           a.whiffs,
		Fouls:            a.fouls,
		Barrels:          a.barrels,
		SweetSpots:       a.sweetSpots,
		AvgExitVelocity:  a.meanExitVelo,
		AvgLaunchAngle:   a.meanLaunch,
		ExitVelocityVar:  variance,
		AvgExpectedBA:    a.meanXBA,
		AvgExpectedSLG:   a.meanXSLG,
		AvgHitProb:       a.meanHitProb,
		TrajectoryCounts: traj,
		RecentForm:       recent,
		Zones:            a.zones,
	}
}

// RestoreSnapshot loads a previously exported aggregate, replacing the
// current state. Used by the external save/load collaborator on session
// resume.
func (a *BattingAnalytics) RestoreSnapshot(snap models.BattingAnalyticsSnapshot) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.playerID = snap.PlayerID
	a.swings = snap.Swings
	a.contacts = snap.Contacts
	a.whiffs = snap.Whiffs
	a.fouls = snap.Fouls
	a.barrels = snap.Barrels
	a.sweetSpots = snap.SweetSpots
	a.meanExitVelo = snap.AvgExitVelocity
	a.meanLaunch = snap.AvgLaunchAngle
	a.m2ExitVelo = snap.ExitVelocityVar * float64(max(snap.Contacts-1, 0))
	a.meanXBA = snap.AvgExpectedBA
	a.meanXSLG = snap.AvgExpectedSLG
	a.meanHitProb = snap.AvgHitProb

	a.inPlay = 0
	a.trajectory = make(map[models.HitType]int, len(snap.TrajectoryCounts))
	for k, v := range snap.TrajectoryCounts {
		a.trajectory[k] = v
		a.inPlay += v
	}
	a.recent = make([]models.RecentSwing, len(snap.RecentForm))
	copy(a.recent, snap.RecentForm)
	a.zones = snap.Zones
}
