package models

// PlayerPoolEntry is one draftable player in the session's pool. Entries are
// created once at pool-build time and never mutated afterward; drafted status
// is tracked externally as a set of drafted names.
type PlayerPoolEntry struct {
	Name            string   `json:"name"`
	Position        Position `json:"position"`
	Team            string   `json:"team"`
	RawADP          float64  `json:"raw_adp"`
	AdjustedADP     float64  `json:"adjusted_adp"`
	ProjectedPoints float64  `json:"projected_points"`
	Tier            int      `json:"tier"`
}
