package league

import "github.com/tbrandt/draftkit/go/internal/models"

// DefaultSettings is the fallback league configuration used when the
// settings source is unreachable or returns nothing usable: a 10-team PPR
// superflex league.
func DefaultSettings() models.LeagueSettings {
	return models.LeagueSettings{
		Name:     "Default League",
		NumTeams: 10,
		RosterSlotCounts: map[string]int{
			"QB":    1,
			"RB":    2,
			"WR":    2,
			"TE":    1,
			"FLEX":  2,
			"OP":    1,
			"K":     1,
			"D/ST":  1,
			"BENCH": 7,
		},
		ScoringType: models.ScoringPPR,
	}
}
