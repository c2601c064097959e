// Package league derives an immutable Format from raw league settings: which
// positions are startable, how flex slots bend QB value and how scarce each
// position is under this roster configuration.
package league

import (
	"sort"

	"github.com/tbrandt/draftkit/go/internal/models"
)

// flexDefaults supplies eligibility for the flex slot types the settings
// source reports without explicit definitions.
var flexDefaults = map[string][]models.Position{
	"FLEX":      {models.PositionRB, models.PositionWR, models.PositionTE},
	"OP":        {models.PositionQB, models.PositionRB, models.PositionWR, models.PositionTE},
	"SUPERFLEX": {models.PositionQB, models.PositionRB, models.PositionWR, models.PositionTE},
	"WR_TE":     {models.PositionWR, models.PositionTE},
	"RB_WR":     {models.PositionRB, models.PositionWR},
}

// Format is an immutable description of a league's roster slots, flex
// eligibility rules and scoring mode. Build one per session; everything else
// keys off it.
type Format struct {
	name            string
	leagueID        int
	year            int
	numTeams        int
	slotCounts      map[string]int
	flexEligibility map[string][]models.Position
	scoring         models.ScoringMode
	eligible        map[models.Position]bool
}

// NewFormat derives a Format from parsed settings. Missing fields fall back
// to defaults; there are no failure modes.
func NewFormat(s models.LeagueSettings) *Format {
	def := DefaultSettings()
	if s.Name == "" {
		s.Name = def.Name
	}
	if s.NumTeams <= 0 {
		s.NumTeams = def.NumTeams
	}
	if len(s.RosterSlotCounts) == 0 {
		s.RosterSlotCounts = def.RosterSlotCounts
	}
	if s.ScoringType == "" {
		s.ScoringType = def.ScoringType
	}

	f := &Format{
		name:            s.Name,
		leagueID:        s.LeagueID,
		year:            s.Year,
		numTeams:        s.NumTeams,
		slotCounts:      make(map[string]int, len(s.RosterSlotCounts)),
		flexEligibility: make(map[string][]models.Position),
		scoring:         s.ScoringType,
		eligible:        make(map[models.Position]bool),
	}

	for slotType, count := range s.RosterSlotCounts {
		if count < 0 {
			count = 0
		}
		f.slotCounts[slotType] = count
	}

	// Flex definitions: explicit ones win, known slot-type names fall back
	// to their conventional eligibility sets.
	for slotType, count := range f.slotCounts {
		if count == 0 {
			continue
		}
		if positions, ok := s.FlexEligibility[slotType]; ok && len(positions) > 0 {
			f.flexEligibility[slotType] = normalizeAll(positions)
		} else if positions, ok := flexDefaults[slotType]; ok {
			f.flexEligibility[slotType] = positions
		}
	}

	// Eligible positions: base scoring slots plus every flex eligibility set.
	for slotType, count := range f.slotCounts {
		if count == 0 || slotType == "BENCH" || slotType == "IR" {
			continue
		}
		if _, isFlex := f.flexEligibility[slotType]; isFlex {
			continue
		}
		f.eligible[models.NormalizePosition(slotType)] = true
	}
	for _, positions := range f.flexEligibility {
		for _, p := range positions {
			f.eligible[p] = true
		}
	}

	return f
}

func normalizeAll(positions []models.Position) []models.Position {
	out := make([]models.Position, 0, len(positions))
	for _, p := range positions {
		out = append(out, models.NormalizePosition(string(p)))
	}
	return out
}

// Name returns the league name.
func (f *Format) Name() string { return f.name }

// LeagueID returns the external league identifier, zero when unknown.
func (f *Format) LeagueID() int { return f.leagueID }

// Year returns the season year, zero when unknown.
func (f *Format) Year() int { return f.year }

// NumTeams returns the league size.
func (f *Format) NumTeams() int { return f.numTeams }

// Scoring returns the league's scoring mode.
func (f *Format) Scoring() models.ScoringMode { return f.scoring }

// SlotCounts returns a copy of the roster slot-count map.
func (f *Format) SlotCounts() map[string]int {
	out := make(map[string]int, len(f.slotCounts))
	for k, v := range f.slotCounts {
		out[k] = v
	}
	return out
}

// FlexEligibility returns the eligibility set for a flex slot type, or nil
// when the slot type is not a flex slot in this league.
func (f *Format) FlexEligibility(slotType string) []models.Position {
	return f.flexEligibility[slotType]
}

// FlexSlotTypes returns the configured flex slot-type names, FLEX and OP
// first, any remaining types in sorted order.
func (f *Format) FlexSlotTypes() []string {
	var out []string
	for _, known := range []string{"FLEX", "OP"} {
		if _, ok := f.flexEligibility[known]; ok {
			out = append(out, known)
		}
	}
	var rest []string
	for slotType := range f.flexEligibility {
		if slotType != "FLEX" && slotType != "OP" {
			rest = append(rest, slotType)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

// IsFlexSlotType reports whether the slot type is a flex slot in this league.
func (f *Format) IsFlexSlotType(slotType string) bool {
	_, ok := f.flexEligibility[slotType]
	return ok
}

// PositionInLeague reports whether the position can be started in this
// league, directly or via a flex slot.
func (f *Format) PositionInLeague(p models.Position) bool {
	return f.eligible[models.NormalizePosition(string(p))]
}

// AllEligiblePositions returns the startable positions in stable order.
func (f *Format) AllEligiblePositions() []models.Position {
	out := make([]models.Position, 0, len(f.eligible))
	for p := range f.eligible {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// HasQBFlex reports whether any flex slot may hold a QB (superflex/OP
// leagues).
func (f *Format) HasQBFlex() bool {
	for _, positions := range f.flexEligibility {
		for _, p := range positions {
			if p == models.PositionQB {
				return true
			}
		}
	}
	return false
}

// HasKickers reports whether the league starts kickers.
func (f *Format) HasKickers() bool {
	return f.eligible[models.PositionK]
}

// HasDefense reports whether the league starts a defense unit.
func (f *Format) HasDefense() bool {
	return f.eligible[models.PositionDST]
}

// TotalQBSlots counts slots a QB can start in: direct QB slots plus flex
// slots whose eligibility includes QB.
func (f *Format) TotalQBSlots() int {
	total := f.slotCounts["QB"]
	for slotType, positions := range f.flexEligibility {
		for _, p := range positions {
			if p == models.PositionQB {
				total += f.slotCounts[slotType]
				break
			}
		}
	}
	return total
}

// QBValueMultiplier scales QB projections for QB-flex leagues, where a
// second startable QB makes the position worth measurably more.
func (f *Format) QBValueMultiplier() float64 {
	if f.HasQBFlex() {
		return 1.5
	}
	return 1.0
}

// PositionScarcity buckets a position by startable slots across the league:
// direct plus flex-eligible slots, times league size.
func (f *Format) PositionScarcity(p models.Position) models.Scarcity {
	p = models.NormalizePosition(string(p))
	slots := f.directSlotCount(p)
	for slotType, positions := range f.flexEligibility {
		for _, fp := range positions {
			if fp == p {
				slots += f.slotCounts[slotType]
				break
			}
		}
	}

	startable := slots * f.numTeams
	switch {
	case startable <= 12:
		return models.ScarcityVeryScarce
	case startable <= 24:
		return models.ScarcityScarce
	case startable <= 36:
		return models.ScarcityModerate
	default:
		return models.ScarcityAbundant
	}
}

// directSlotCount sums non-flex slot counts whose slot-type name normalizes
// to the position, so "DST" and "D/ST" slot labels both count.
func (f *Format) directSlotCount(p models.Position) int {
	total := 0
	for slotType, count := range f.slotCounts {
		if slotType == "BENCH" || slotType == "IR" || f.IsFlexSlotType(slotType) {
			continue
		}
		if models.NormalizePosition(slotType) == p {
			total += count
		}
	}
	return total
}

// TotalRosterSpots is the sum of all configured slot counts, bench included.
// One spot per team per round means this is also the number of draft rounds.
func (f *Format) TotalRosterSpots() int {
	total := 0
	for _, count := range f.slotCounts {
		total += count
	}
	return total
}
