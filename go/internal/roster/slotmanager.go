// Package roster owns the concrete slot-assignment state for one team. Each
// slot is a tiny two-state machine (empty or filled); the manager expands the
// league's slot counts into named slots, fills them by eligibility priority
// and reports unmet needs.
package roster

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/tbrandt/draftkit/go/internal/league"
	"github.com/tbrandt/draftkit/go/internal/models"
)

// ErrRosterFull is returned by AddPlayer when no slot, bench included, can
// take the player. It is the one hard rejection: callers must not record the
// pick as successful.
var ErrRosterFull = errors.New("no roster slots available")

// startingSlotOrder fixes the expansion order of the conventional slot
// types; unknown configured types follow, bench last.
var startingSlotOrder = []string{"QB", "RB", "WR", "TE", "FLEX", "OP", "K", "D/ST"}

// Needs partitions the empty slots by urgency: unfilled dedicated starters
// are critical, unfilled flex slots important, bench merely depth.
type Needs struct {
	Critical  []string
	Important []string
	Depth     []string
}

// PositionCount summarizes how a position is represented on the roster.
type PositionCount struct {
	Starters int
	Bench    int
	Total    int
}

// SlotManager tracks one team's slots for a session.
type SlotManager struct {
	format *league.Format
	slots  []*models.RosterSlot
	byName map[string]*models.RosterSlot
}

// NewSlotManager expands the format's slot counts into concrete named slots.
// A slot type with count 1 keeps its bare name ("QB"); higher counts are
// numbered ("RB1", "RB2"). Bench slots are always numbered.
func NewSlotManager(format *league.Format) *SlotManager {
	m := &SlotManager{
		format: format,
		byName: make(map[string]*models.RosterSlot),
	}

	counts := format.SlotCounts()
	expand := func(slotType string) {
		count := counts[slotType]
		for i := 1; i <= count; i++ {
			name := slotType
			if count > 1 || slotType == "BENCH" {
				name = fmt.Sprintf("%s%d", slotType, i)
			}
			slot := &models.RosterSlot{Name: name, Type: slotType}
			m.slots = append(m.slots, slot)
			m.byName[name] = slot
		}
		delete(counts, slotType)
	}

	for _, slotType := range startingSlotOrder {
		expand(slotType)
	}
	// Any remaining configured starting types (e.g. SUPERFLEX) before bench.
	var rest []string
	for slotType := range counts {
		if slotType != "BENCH" {
			rest = append(rest, slotType)
		}
	}
	sort.Strings(rest)
	for _, slotType := range rest {
		expand(slotType)
	}
	expand("BENCH")

	return m
}

// eligibleSlotTypes returns the slot types a position may fill, in priority
// order: its dedicated slot first, then each configured flex slot whose
// eligibility set contains it. Bench is always the implicit fallback.
func (m *SlotManager) eligibleSlotTypes(pos models.Position) []string {
	var types []string
	seen := make(map[string]bool)
	for _, slot := range m.slots {
		if slot.Type == "BENCH" || m.format.IsFlexSlotType(slot.Type) || seen[slot.Type] {
			continue
		}
		if models.NormalizePosition(slot.Type) == pos {
			types = append(types, slot.Type)
			seen[slot.Type] = true
		}
	}
	for _, flexType := range m.format.FlexSlotTypes() {
		for _, p := range m.format.FlexEligibility(flexType) {
			if p == pos {
				types = append(types, flexType)
				break
			}
		}
	}
	return types
}

// AddPlayer fills the first empty slot the position is eligible for,
// starting slots in priority order before any bench slot. Returns the filled
// slot name, or ErrRosterFull when every slot is taken.
func (m *SlotManager) AddPlayer(name string, pos models.Position, pick int) (string, error) {
	pos = models.NormalizePosition(string(pos))
	occupant := &models.SlotOccupant{Name: name, Position: pos, Pick: pick}

	for _, slotType := range m.eligibleSlotTypes(pos) {
		for _, slot := range m.slots {
			if slot.Type == slotType && slot.Occupant == nil {
				occupant.Slot = slot.Name
				slot.Occupant = occupant
				log.Debug().Str("player", name).Str("slot", slot.Name).Int("pick", pick).Msg("filled starting slot")
				return slot.Name, nil
			}
		}
	}

	for _, slot := range m.slots {
		if slot.Type == "BENCH" && slot.Occupant == nil {
			occupant.Slot = slot.Name
			slot.Occupant = occupant
			log.Debug().Str("player", name).Str("slot", slot.Name).Int("pick", pick).Msg("filled bench slot")
			return slot.Name, nil
		}
	}

	return "", ErrRosterFull
}

// ClearSlot empties the named slot and returns its previous occupant, or an
// error when the slot does not exist or is already empty.
func (m *SlotManager) ClearSlot(name string) (*models.SlotOccupant, error) {
	slot, ok := m.byName[name]
	if !ok {
		return nil, fmt.Errorf("unknown roster slot %q", name)
	}
	if slot.Occupant == nil {
		return nil, fmt.Errorf("roster slot %q is already empty", name)
	}
	occ := slot.Occupant
	slot.Occupant = nil
	return occ, nil
}

// NeedsAnalysis partitions the empty slots into critical starters, important
// flex slots and bench depth.
func (m *SlotManager) NeedsAnalysis() Needs {
	var needs Needs
	for _, slot := range m.slots {
		if slot.Occupant != nil {
			continue
		}
		switch {
		case slot.Type == "BENCH":
			needs.Depth = append(needs.Depth, slot.Name)
		case m.format.IsFlexSlotType(slot.Type):
			needs.Important = append(needs.Important, slot.Name)
		default:
			needs.Critical = append(needs.Critical, slot.Name)
		}
	}
	return needs
}

// CriticalPositions returns the base positions behind the current critical
// needs, deduplicated.
func (m *SlotManager) CriticalPositions() []models.Position {
	seen := make(map[models.Position]bool)
	var out []models.Position
	for _, slot := range m.slots {
		if slot.Occupant != nil || slot.Type == "BENCH" || m.format.IsFlexSlotType(slot.Type) {
			continue
		}
		p := models.NormalizePosition(slot.Type)
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

// PositionSummary counts starters, bench players and totals per canonical
// position currently on the roster.
func (m *SlotManager) PositionSummary() map[models.Position]PositionCount {
	summary := make(map[models.Position]PositionCount, len(models.BasePositions))
	for _, p := range models.BasePositions {
		summary[p] = PositionCount{}
	}
	for _, slot := range m.slots {
		if slot.Occupant == nil {
			continue
		}
		pos := models.NormalizePosition(string(slot.Occupant.Position))
		count := summary[pos]
		if slot.Type == "BENCH" {
			count.Bench++
		} else {
			count.Starters++
		}
		count.Total++
		summary[pos] = count
	}
	return summary
}

// Slots returns the slots in expansion order. Callers must not mutate them.
func (m *SlotManager) Slots() []*models.RosterSlot {
	return m.slots
}

// TotalSlots returns the roster capacity.
func (m *SlotManager) TotalSlots() int {
	return len(m.slots)
}

// FilledSlots counts occupied slots.
func (m *SlotManager) FilledSlots() int {
	filled := 0
	for _, slot := range m.slots {
		if slot.Occupant != nil {
			filled++
		}
	}
	return filled
}

// IsFull reports whether every slot, bench included, is occupied.
func (m *SlotManager) IsFull() bool {
	return m.FilledSlots() == len(m.slots)
}

// Snapshot returns the persistable slot map: every slot name present, empty
// ones with an explicit nil occupant.
func (m *SlotManager) Snapshot() map[string]*models.SlotOccupant {
	out := make(map[string]*models.SlotOccupant, len(m.slots))
	for _, slot := range m.slots {
		if slot.Occupant == nil {
			out[slot.Name] = nil
			continue
		}
		occ := *slot.Occupant
		out[slot.Name] = &occ
	}
	return out
}

// Restore replaces the slot assignments from a snapshot. Slot names not
// present in the current configuration are rejected rather than silently
// dropped, since that means the saved state belongs to a different league.
func (m *SlotManager) Restore(snapshot map[string]*models.SlotOccupant) error {
	for name := range snapshot {
		if _, ok := m.byName[name]; !ok {
			return fmt.Errorf("snapshot references unknown roster slot %q", name)
		}
	}
	for _, slot := range m.slots {
		occ, ok := snapshot[slot.Name]
		if !ok || occ == nil {
			slot.Occupant = nil
			continue
		}
		restored := *occ
		restored.Position = models.NormalizePosition(string(restored.Position))
		slot.Occupant = &restored
	}
	return nil
}
