package models

// TeamPick is one of my committed picks: the player, the overall pick number
// it was taken at and the roster slot it landed in.
type TeamPick struct {
	Player   string   `json:"player"`
	Position Position `json:"position"`
	Pick     int      `json:"pick"`
	Slot     string   `json:"slot"`
}

// LeagueInfo is the league identification block of a persisted snapshot.
type LeagueInfo struct {
	SessionID         string      `json:"session_id"`
	Name              string      `json:"name"`
	LeagueID          int         `json:"league_id"`
	Year              int         `json:"year"`
	ScoringType       ScoringMode `json:"scoring_type"`
	HasQBFlex         bool        `json:"has_qb_flex"`
	EligiblePositions []Position  `json:"eligible_positions"`
}

// DraftProgress is the pick-sequencing block of a persisted snapshot.
// DraftedPlayers is every player taken by anyone, in pick order; MyTeam is
// the subsequence of those picks that landed on my roster.
type DraftProgress struct {
	CurrentPick    int        `json:"current_pick"`
	DraftedPlayers []string   `json:"drafted_players"`
	MyTeam         []TeamPick `json:"my_team"`
}

// RosterState is the slot-assignment block of a persisted snapshot. Empty
// slots are present with a null occupant, never omitted.
type RosterState struct {
	Roster       map[string]*SlotOccupant `json:"roster"`
	RosterConfig map[string]int           `json:"roster_config"`
}

// DraftState is the full persisted session state. Save followed by Load must
// reproduce it exactly.
type DraftState struct {
	Timestamp     string        `json:"timestamp"`
	LeagueInfo    LeagueInfo    `json:"league_info"`
	DraftProgress DraftProgress `json:"draft_progress"`
	RosterState   RosterState   `json:"roster_state"`
}
