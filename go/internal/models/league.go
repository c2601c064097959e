package models

// ScoringMode defines how receptions are scored in a league.
type ScoringMode string

const (
	ScoringStandard ScoringMode = "STANDARD"
	ScoringPPR      ScoringMode = "PPR"
	ScoringHalfPPR  ScoringMode = "HALF_PPR"
)

// Scarcity buckets a position by how many startable slots the league has
// for it across all teams.
type Scarcity string

const (
	ScarcityVeryScarce Scarcity = "VERY_SCARCE"
	ScarcityScarce     Scarcity = "SCARCE"
	ScarcityModerate   Scarcity = "MODERATE"
	ScarcityAbundant   Scarcity = "ABUNDANT"
)

// LeagueSettings is the parsed league-settings payload, as delivered by the
// settings source or substituted from defaults. Slot counts are keyed by
// slot-type name ("QB", "RB", "FLEX", "OP", "BENCH", ...); flex eligibility
// maps a flex slot-type name to the base positions it may hold.
type LeagueSettings struct {
	Name             string                `json:"name"`
	LeagueID         int                   `json:"league_id"`
	Year             int                   `json:"year"`
	NumTeams         int                   `json:"num_teams"`
	RosterSlotCounts map[string]int        `json:"roster_slots"`
	FlexEligibility  map[string][]Position `json:"flex_eligibility,omitempty"`
	ScoringType      ScoringMode           `json:"scoring_type"`
}
