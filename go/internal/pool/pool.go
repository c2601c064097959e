// Package pool builds the session's player table from raw rank data: one
// normalized, league-filtered, ADP-adjusted, tiered entry per draftable
// player, sorted by adjusted ADP. The pool is immutable for the session;
// drafted status lives with the session as a set of names.
package pool

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tbrandt/draftkit/go/internal/league"
	"github.com/tbrandt/draftkit/go/internal/models"
)

// Pool is the built player table.
type Pool struct {
	entries []*models.PlayerPoolEntry
	byName  map[string]*models.PlayerPoolEntry
}

// Build runs the pool transform: extract and normalize positions, drop
// positions the league cannot start, pick the primary ADP source, apply the
// league-format ADP adjustment, project points, assign tiers and sort by
// adjusted ADP. Returns an error when nothing usable remains.
func Build(format *league.Format, rows []RawRow, vm ValueModel) (*Pool, error) {
	qbMultiplier := format.QBValueMultiplier()
	hasQBFlex := format.HasQBFlex()

	p := &Pool{byName: make(map[string]*models.PlayerPoolEntry)}
	dropped := 0
	for _, row := range rows {
		pos := extractPosition(row.Pos)
		if pos == "" {
			continue
		}
		if !format.PositionInLeague(pos) {
			dropped++
			continue
		}

		adp, ok := primaryADP(row)
		if !ok {
			continue
		}

		key := strings.ToLower(row.Player)
		if _, dup := p.byName[key]; dup {
			continue
		}

		adjusted := adp
		if hasQBFlex {
			if pos == models.PositionQB {
				adjusted = vm.compressQB(adp)
			} else {
				adjusted = adp + vm.NonQBFlexPenalty
			}
		}

		entry := &models.PlayerPoolEntry{
			Name:            row.Player,
			Position:        pos,
			Team:            row.Team,
			RawADP:          adp,
			AdjustedADP:     adjusted,
			ProjectedPoints: vm.projection(pos, adp, qbMultiplier),
		}
		p.entries = append(p.entries, entry)
		p.byName[key] = entry
	}

	if len(p.entries) == 0 {
		return nil, fmt.Errorf("no usable players after league filtering (%d rows dropped)", dropped)
	}

	assignTiers(p.entries, vm)

	sort.SliceStable(p.entries, func(i, j int) bool {
		return p.entries[i].AdjustedADP < p.entries[j].AdjustedADP
	})

	if dropped > 0 {
		log.Info().Int("dropped", dropped).Msg("filtered players from positions not in this league")
	}
	log.Info().Int("players", len(p.entries)).Msg("player pool built")
	return p, nil
}

// extractPosition takes the leading letters of a positional-rank label
// ("WR1" -> WR, "D/ST5" -> D) and normalizes defense aliases.
func extractPosition(label string) models.Position {
	label = strings.ToUpper(strings.TrimSpace(label))
	end := 0
	for end < len(label) && label[end] >= 'A' && label[end] <= 'Z' {
		end++
	}
	if end == 0 {
		return ""
	}
	return models.NormalizePosition(label[:end])
}

// primaryADP picks the first non-null ADP source: ESPN, then the
// cross-source average.
func primaryADP(row RawRow) (float64, bool) {
	if row.ESPNADP != nil {
		return *row.ESPNADP, true
	}
	if row.AvgADP != nil {
		return *row.AvgADP, true
	}
	return 0, false
}

// assignTiers ranks entries within each position by adjusted ADP and buckets
// the ranks through the model's cutoffs.
func assignTiers(entries []*models.PlayerPoolEntry, vm ValueModel) {
	byPos := make(map[models.Position][]*models.PlayerPoolEntry)
	for _, e := range entries {
		byPos[e.Position] = append(byPos[e.Position], e)
	}
	for _, group := range byPos {
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].AdjustedADP < group[j].AdjustedADP
		})
		for rank, e := range group {
			e.Tier = vm.tierFor(rank + 1)
		}
	}
}

// Entries returns all entries in adjusted-ADP order. Callers must not
// mutate them.
func (p *Pool) Entries() []*models.PlayerPoolEntry {
	return p.entries
}

// Size returns the number of entries.
func (p *Pool) Size() int {
	return len(p.entries)
}

// ByName looks an entry up by exact name, case-insensitively.
func (p *Pool) ByName(name string) *models.PlayerPoolEntry {
	return p.byName[strings.ToLower(strings.TrimSpace(name))]
}

// Available returns undrafted entries in adjusted-ADP order. The drafted set
// is keyed by lower-cased name.
func (p *Pool) Available(drafted map[string]bool) []*models.PlayerPoolEntry {
	out := make([]*models.PlayerPoolEntry, 0, len(p.entries))
	for _, e := range p.entries {
		if !drafted[strings.ToLower(e.Name)] {
			out = append(out, e)
		}
	}
	return out
}

// Defenses returns the pool's D/ST entries in adjusted-ADP order.
func (p *Pool) Defenses() []*models.PlayerPoolEntry {
	var out []*models.PlayerPoolEntry
	for _, e := range p.entries {
		if e.Position.IsDefense() {
			out = append(out, e)
		}
	}
	return out
}
