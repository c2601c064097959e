package league

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tbrandt/draftkit/go/internal/models"
)

func TestNewFormatSubstitutesDefaults(t *testing.T) {
	f := NewFormat(models.LeagueSettings{})

	assert.Equal(t, "Default League", f.Name())
	assert.Equal(t, 10, f.NumTeams())
	assert.Equal(t, models.ScoringPPR, f.Scoring())
	assert.Equal(t, 18, f.TotalRosterSpots())
}

func TestDefaultFormatQBFlex(t *testing.T) {
	f := NewFormat(DefaultSettings())

	assert.True(t, f.HasQBFlex())
	assert.Equal(t, 1.5, f.QBValueMultiplier())
	assert.Equal(t, 2, f.TotalQBSlots())
	assert.True(t, f.HasKickers())
	assert.True(t, f.HasDefense())
}

func TestFormatWithoutQBFlex(t *testing.T) {
	f := NewFormat(models.LeagueSettings{
		NumTeams: 12,
		RosterSlotCounts: map[string]int{
			"QB": 1, "RB": 2, "WR": 2, "TE": 1, "FLEX": 1, "BENCH": 6,
		},
	})

	assert.False(t, f.HasQBFlex())
	assert.Equal(t, 1.0, f.QBValueMultiplier())
	assert.Equal(t, 1, f.TotalQBSlots())
	assert.False(t, f.HasKickers())
	assert.False(t, f.HasDefense())
	assert.False(t, f.PositionInLeague(models.PositionK))
	assert.False(t, f.PositionInLeague(models.PositionDST))
}

func TestAllEligiblePositions(t *testing.T) {
	f := NewFormat(DefaultSettings())

	eligible := f.AllEligiblePositions()
	assert.ElementsMatch(t, []models.Position{
		models.PositionQB, models.PositionRB, models.PositionWR,
		models.PositionTE, models.PositionK, models.PositionDST,
	}, eligible)
}

func TestPositionScarcity(t *testing.T) {
	f := NewFormat(DefaultSettings())

	tests := []struct {
		pos  models.Position
		want models.Scarcity
	}{
		// 10 teams: K and D/ST start 10, QB starts 20 (QB + OP),
		// RB/WR start 50 (2 direct + FLEX 2 + OP 1).
		{models.PositionK, models.ScarcityVeryScarce},
		{models.PositionDST, models.ScarcityVeryScarce},
		{models.PositionQB, models.ScarcityScarce},
		{models.PositionRB, models.ScarcityAbundant},
		{models.PositionWR, models.ScarcityAbundant},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, f.PositionScarcity(tt.pos), "position %s", tt.pos)
	}
}

func TestPositionScarcityNormalizesAliases(t *testing.T) {
	f := NewFormat(models.LeagueSettings{
		NumTeams:         10,
		RosterSlotCounts: map[string]int{"QB": 1, "DST": 1, "BENCH": 3},
	})

	assert.True(t, f.HasDefense())
	assert.Equal(t, models.ScarcityVeryScarce, f.PositionScarcity("D"))
	assert.Equal(t, models.ScarcityVeryScarce, f.PositionScarcity(models.PositionDST))
}

func TestExplicitFlexEligibilityWins(t *testing.T) {
	f := NewFormat(models.LeagueSettings{
		NumTeams: 10,
		RosterSlotCounts: map[string]int{
			"QB": 1, "RB": 2, "WR": 2, "FLEX": 1, "BENCH": 5,
		},
		FlexEligibility: map[string][]models.Position{
			"FLEX": {models.PositionRB, models.PositionWR},
		},
	})

	assert.ElementsMatch(t,
		[]models.Position{models.PositionRB, models.PositionWR},
		f.FlexEligibility("FLEX"))
	assert.False(t, f.PositionInLeague(models.PositionTE))
}

func TestFlexSlotTypesOrder(t *testing.T) {
	f := NewFormat(DefaultSettings())
	assert.Equal(t, []string{"FLEX", "OP"}, f.FlexSlotTypes())
}

func TestNegativeSlotCountsClamped(t *testing.T) {
	f := NewFormat(models.LeagueSettings{
		NumTeams:         10,
		RosterSlotCounts: map[string]int{"QB": 1, "RB": -3, "BENCH": 2},
	})

	assert.Equal(t, 0, f.SlotCounts()["RB"])
	assert.Equal(t, 3, f.TotalRosterSpots())
}
