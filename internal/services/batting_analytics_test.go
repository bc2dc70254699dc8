package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandlotio/ballflight/internal/models"
)

type recordedSwing struct {
	loc     models.PlateLocation
	contact models.ContactResult
	outcome models.BattedBallOutcome
}

func solidSwing(exitVelo float64) recordedSwing {
	return recordedSwing{
		loc: models.PlateLocation{X: 0, Z: 0.8},
		contact: models.ContactResult{
			ExitVelocityMph: exitVelo,
			LaunchAngleDeg:  18,
			Quality:         models.ContactSolid,
			SweetSpot:       true,
		},
		outcome: models.BattedBallOutcome{
			HitType:        models.HitTypeLineDrive,
			ExpectedBA:     0.5,
			ExpectedSLG:    0.8,
			HitProbability: 0.7,
		},
	}
}

func whiffSwing(loc models.PlateLocation) recordedSwing {
	return recordedSwing{
		loc:     loc,
		contact: models.ContactResult{ExitVelocityMph: models.MinExitVelocityMph, Quality: models.ContactMiss},
		outcome: models.BattedBallOutcome{HitType: models.HitTypeNone},
	}
}

func replay(playerID string, swings []recordedSwing) *BattingAnalytics {
	agg := NewBattingAnalytics(playerID)
	for _, s := range swings {
		agg.RecordSwing(s.loc, s.contact, s.outcome)
	}
	return agg
}

func TestRecordSwingCountsAndRates(t *testing.T) {
	barrel := solidSwing(104)
	barrel.contact.Quality = models.ContactBarrel

	agg := replay("player-1", []recordedSwing{
		barrel,
		whiffSwing(models.PlateLocation{X: 0.3, Z: 1.1}),
		solidSwing(82),
	})

	assert.Equal(t, 3, agg.Swings())
	assert.InDelta(t, 2.0/3.0, agg.ContactRate(), 1e-9)
	assert.InDelta(t, 0.5, agg.BarrelRate(), 1e-9)
	assert.InDelta(t, 93, agg.AvgExitVelocity(), 1e-9)

	snap := agg.Snapshot()
	assert.Equal(t, 1, snap.Whiffs)
	assert.Equal(t, 2, snap.SweetSpots)
	assert.Equal(t, 2, snap.TrajectoryCounts[models.HitTypeLineDrive])
}

func TestIncrementalAggregatesMatchReplay(t *testing.T) {
	// The same sequence folded into two fresh aggregates must produce the
	// same snapshot: recording is a pure fold over swing history.
	swings := []recordedSwing{
		solidSwing(95),
		whiffSwing(models.PlateLocation{X: -0.2, Z: 0.5}),
		solidSwing(88),
		solidSwing(101),
		whiffSwing(models.PlateLocation{X: 0.5, Z: 1.3}),
		solidSwing(76),
	}

	first := replay("player-1", swings)
	second := replay("player-1", swings)

	require.Equal(t, first.Snapshot(), second.Snapshot())
}

func TestRecentFormEvictsOldestBeyondCapacity(t *testing.T) {
	agg := NewBattingAnalytics("player-1")
	for i := 0; i < RecentFormCapacity+2; i++ {
		s := solidSwing(60 + float64(i))
		agg.RecordSwing(s.loc, s.contact, s.outcome)
	}

	snap := agg.Snapshot()
	require.Len(t, snap.RecentForm, RecentFormCapacity)
	// The two oldest entries (60, 61) are gone.
	assert.Equal(t, 62.0, snap.RecentForm[0].ExitVelocityMph)
	assert.Equal(t, 71.0, snap.RecentForm[RecentFormCapacity-1].ExitVelocityMph)
}

func TestZoneGridBucketing(t *testing.T) {
	agg := NewBattingAnalytics("player-1")

	middle := solidSwing(90)
	middle.loc = models.PlateLocation{X: 0, Z: 0.8}
	agg.RecordSwing(middle.loc, middle.contact, middle.outcome)

	// Locations outside the plate window clamp to the edge cells.
	wild := whiffSwing(models.PlateLocation{X: -2, Z: -1})
	agg.RecordSwing(wild.loc, wild.contact, wild.outcome)

	snap := agg.Snapshot()

	center := snap.Zones[4][4]
	assert.Equal(t, 1, center.Samples)
	assert.Zero(t, center.Whiffs)
	assert.InDelta(t, 90, center.AvgExitVelo, 1e-9)
	assert.InDelta(t, 0.5, center.AvgBA, 1e-9)

	corner := snap.Zones[0][0]
	assert.Equal(t, 1, corner.Samples)
	assert.Equal(t, 1, corner.Whiffs)
	assert.InDelta(t, 1.0, corner.WhiffRate, 1e-9)
}

func TestZoneWhiffRateMixes(t *testing.T) {
	agg := NewBattingAnalytics("player-1")
	loc := models.PlateLocation{X: 0.4, Z: 1.2}

	hit := solidSwing(85)
	hit.loc = loc
	agg.RecordSwing(hit.loc, hit.contact, hit.outcome)
	miss := whiffSwing(loc)
	agg.RecordSwing(miss.loc, miss.contact, miss.outcome)

	snap := agg.Snapshot()
	row, col := zoneIndex(loc)
	cell := snap.Zones[row][col]
	assert.Equal(t, 2, cell.Samples)
	assert.InDelta(t, 0.5, cell.WhiffRate, 1e-9)
	assert.InDelta(t, 85, cell.AvgExitVelo, 1e-9, "whiffs do not drag the cell exit velocity")
}

func TestRecentFormTrend(t *testing.T) {
	tests := []struct {
		name  string
		velos []float64
		want  models.FormTrend
	}{
		{"heating up", []float64{60, 63, 66, 69, 72, 75}, models.FormHeatingUp},
		{"cooling down", []float64{90, 87, 84, 81, 78, 75}, models.FormCoolingDown},
		{"steady", []float64{80, 80, 80, 80, 80, 80}, models.FormSteady},
		{"too few swings", []float64{60, 90}, models.FormSteady},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := NewBattingAnalytics("player-1")
			for _, v := range tt.velos {
				s := solidSwing(v)
				agg.RecordSwing(s.loc, s.contact, s.outcome)
			}
			assert.Equal(t, tt.want, agg.RecentFormTrend())
		})
	}
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	var swings []recordedSwing
	for i := 0; i < 7; i++ {
		swings = append(swings, solidSwing(70+float64(i)*3))
	}
	swings = append(swings, whiffSwing(models.PlateLocation{X: 0.1, Z: 0.9}))

	original := replay("player-1", swings)
	snap := original.Snapshot()

	restored := NewBattingAnalytics("")
	restored.RestoreSnapshot(snap)
	got := restored.Snapshot()

	assert.Equal(t, snap.PlayerID, got.PlayerID)
	assert.Equal(t, snap.Swings, got.Swings)
	assert.Equal(t, snap.Contacts, got.Contacts)
	assert.Equal(t, snap.Whiffs, got.Whiffs)
	assert.Equal(t, snap.TrajectoryCounts, got.TrajectoryCounts)
	assert.Equal(t, snap.RecentForm, got.RecentForm)
	assert.Equal(t, snap.Zones, got.Zones)
	assert.InDelta(t, snap.AvgExitVelocity, got.AvgExitVelocity, 1e-9)
	assert.InDelta(t, snap.ExitVelocityVar, got.ExitVelocityVar, 1e-9)

	// The restored aggregate keeps accumulating.
	next := solidSwing(100)
	restored.RecordSwing(next.loc, next.contact, next.outcome)
	assert.Equal(t, snap.Swings+1, restored.Swings())
}

func TestAggregatesAreIsolatedPerPlayer(t *testing.T) {
	a := replay("player-a", []recordedSwing{solidSwing(90)})
	b := replay("player-b", nil)

	assert.Equal(t, 1, a.Swings())
	assert.Zero(t, b.Swings())
	assert.Equal(t, "player-a", a.Snapshot().PlayerID)
	assert.Equal(t, "player-b", b.Snapshot().PlayerID)
}
