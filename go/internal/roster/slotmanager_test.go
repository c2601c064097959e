package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tbrandt/draftkit/go/internal/league"
	"github.com/tbrandt/draftkit/go/internal/models"
)

func superflexManager() *SlotManager {
	return NewSlotManager(league.NewFormat(league.DefaultSettings()))
}

func TestSlotExpansion(t *testing.T) {
	m := superflexManager()

	// QB1 RB2 WR2 TE1 FLEX2 OP1 K1 D/ST1 BENCH7.
	assert.Equal(t, 18, m.TotalSlots())

	var names []string
	for _, slot := range m.Slots() {
		names = append(names, slot.Name)
	}
	assert.Equal(t, []string{
		"QB", "RB1", "RB2", "WR1", "WR2", "TE", "FLEX1", "FLEX2", "OP",
		"K", "D/ST",
		"BENCH1", "BENCH2", "BENCH3", "BENCH4", "BENCH5", "BENCH6", "BENCH7",
	}, names)
}

func TestAddPlayerDedicatedSlotBeforeFlex(t *testing.T) {
	m := superflexManager()

	slot, err := m.AddPlayer("Josh Allen", models.PositionQB, 1)
	require.NoError(t, err)
	assert.Equal(t, "QB", slot)

	// Second QB lands in the QB-eligible flex, not bench.
	slot, err = m.AddPlayer("Lamar Jackson", models.PositionQB, 12)
	require.NoError(t, err)
	assert.Equal(t, "OP", slot)

	// Third QB has no starting slot left, falls to bench.
	slot, err = m.AddPlayer("Jalen Hurts", models.PositionQB, 24)
	require.NoError(t, err)
	assert.Equal(t, "BENCH1", slot)
}

func TestAddPlayerFlexPriorityOrder(t *testing.T) {
	m := superflexManager()

	for i, name := range []string{"RB One", "RB Two", "RB Three", "RB Four", "RB Five"} {
		slot, err := m.AddPlayer(name, models.PositionRB, i+1)
		require.NoError(t, err)
		switch i {
		case 0:
			assert.Equal(t, "RB1", slot)
		case 1:
			assert.Equal(t, "RB2", slot)
		case 2:
			assert.Equal(t, "FLEX1", slot)
		case 3:
			assert.Equal(t, "FLEX2", slot)
		case 4:
			assert.Equal(t, "OP", slot)
		}
	}
}

func TestAddPlayerRestrictedPositions(t *testing.T) {
	m := superflexManager()

	slot, err := m.AddPlayer("Justin Tucker", models.PositionK, 1)
	require.NoError(t, err)
	assert.Equal(t, "K", slot)

	// A second kicker can only ride the bench.
	slot, err = m.AddPlayer("Harrison Butker", models.PositionK, 2)
	require.NoError(t, err)
	assert.Equal(t, "BENCH1", slot)
}

func TestAddPlayerNormalizesDefenseAliases(t *testing.T) {
	m := superflexManager()

	slot, err := m.AddPlayer("Ravens D/ST", "DST", 1)
	require.NoError(t, err)
	assert.Equal(t, "D/ST", slot)
}

func TestAddPlayerRosterFull(t *testing.T) {
	m := NewSlotManager(league.NewFormat(models.LeagueSettings{
		NumTeams:         10,
		RosterSlotCounts: map[string]int{"RB": 1, "BENCH": 1},
	}))

	_, err := m.AddPlayer("RB One", models.PositionRB, 1)
	require.NoError(t, err)
	_, err = m.AddPlayer("RB Two", models.PositionRB, 2)
	require.NoError(t, err)

	_, err = m.AddPlayer("RB Three", models.PositionRB, 3)
	assert.ErrorIs(t, err, ErrRosterFull)
	assert.True(t, m.IsFull())
}

func TestClearSlot(t *testing.T) {
	m := superflexManager()

	slot, err := m.AddPlayer("Josh Allen", models.PositionQB, 1)
	require.NoError(t, err)

	occ, err := m.ClearSlot(slot)
	require.NoError(t, err)
	assert.Equal(t, "Josh Allen", occ.Name)
	assert.Equal(t, 0, m.FilledSlots())

	_, err = m.ClearSlot(slot)
	assert.Error(t, err, "clearing an empty slot must fail")
	_, err = m.ClearSlot("NOPE")
	assert.Error(t, err, "clearing an unknown slot must fail")
}

func TestNeedsAnalysis(t *testing.T) {
	m := superflexManager()

	needs := m.NeedsAnalysis()
	assert.Len(t, needs.Critical, 8)
	assert.Len(t, needs.Important, 3)
	assert.Len(t, needs.Depth, 7)

	_, err := m.AddPlayer("Josh Allen", models.PositionQB, 1)
	require.NoError(t, err)

	needs = m.NeedsAnalysis()
	assert.Len(t, needs.Critical, 7)
	assert.NotContains(t, needs.Critical, "QB")
}

func TestCriticalPositions(t *testing.T) {
	m := superflexManager()

	_, err := m.AddPlayer("Josh Allen", models.PositionQB, 1)
	require.NoError(t, err)

	critical := m.CriticalPositions()
	assert.NotContains(t, critical, models.PositionQB)
	assert.Contains(t, critical, models.PositionRB)
	assert.Contains(t, critical, models.PositionDST)
}

func TestPositionSummary(t *testing.T) {
	m := superflexManager()

	picks := []struct {
		name string
		pos  models.Position
	}{
		{"RB One", models.PositionRB},
		{"RB Two", models.PositionRB},
		{"RB Three", models.PositionRB},
		{"RB Four", models.PositionRB},
		{"RB Five", models.PositionRB},
		{"RB Six", models.PositionRB},
	}
	for i, p := range picks {
		_, err := m.AddPlayer(p.name, p.pos, i+1)
		require.NoError(t, err)
	}

	summary := m.PositionSummary()
	// RB1 RB2 FLEX1 FLEX2 OP start, the sixth rides the bench.
	assert.Equal(t, PositionCount{Starters: 5, Bench: 1, Total: 6}, summary[models.PositionRB])
	assert.Equal(t, PositionCount{}, summary[models.PositionQB])
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	m := superflexManager()

	_, err := m.AddPlayer("Josh Allen", models.PositionQB, 1)
	require.NoError(t, err)
	_, err = m.AddPlayer("Bijan Robinson", models.PositionRB, 2)
	require.NoError(t, err)

	snapshot := m.Snapshot()
	assert.Len(t, snapshot, m.TotalSlots(), "every slot must be present")
	assert.Nil(t, snapshot["WR1"], "empty slots serialize as explicit nil")

	restored := superflexManager()
	require.NoError(t, restored.Restore(snapshot))
	assert.Equal(t, snapshot, restored.Snapshot())
	assert.Equal(t, 2, restored.FilledSlots())
}

func TestRestoreRejectsUnknownSlots(t *testing.T) {
	m := superflexManager()
	err := m.Restore(map[string]*models.SlotOccupant{
		"SUPERFLEX9": {Name: "Someone", Position: models.PositionRB, Pick: 1},
	})
	assert.Error(t, err)
}
