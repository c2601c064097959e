package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tbrandt/draftkit/go/internal/league"
	"github.com/tbrandt/draftkit/go/internal/models"
	"github.com/tbrandt/draftkit/go/internal/pool"
	"github.com/tbrandt/draftkit/go/internal/roster"
)

func adp(v float64) *float64 { return &v }

func buildEngine(t *testing.T, rows []pool.RawRow) (*Engine, *league.Format) {
	t.Helper()
	format := league.NewFormat(league.DefaultSettings())
	p, err := pool.Build(format, rows, pool.DefaultValueModel())
	require.NoError(t, err)
	return NewEngine(p, format, DefaultParams()), format
}

func emptySummary() map[models.Position]roster.PositionCount {
	summary := make(map[models.Position]roster.PositionCount)
	for _, p := range models.BasePositions {
		summary[p] = roster.PositionCount{}
	}
	return summary
}

func manyRows() []pool.RawRow {
	rows := []pool.RawRow{
		{Player: "QB One", Pos: "QB1", Team: "BUF", ESPNADP: adp(10)},
		{Player: "QB Two", Pos: "QB2", Team: "BAL", ESPNADP: adp(20)},
		{Player: "TE One", Pos: "TE1", Team: "KC", ESPNADP: adp(12)},
		{Player: "Kicker One", Pos: "K1", Team: "BAL", ESPNADP: adp(30)},
		{Player: "Defense One D/ST", Pos: "DST1", Team: "SF", ESPNADP: adp(31)},
	}
	names := []string{"One", "Two", "Three", "Four", "Five", "Six"}
	for i, n := range names {
		rows = append(rows, pool.RawRow{Player: "RB " + n, Pos: "RB1", Team: "FA", ESPNADP: adp(float64(i + 1))})
	}
	for i, n := range names[:3] {
		rows = append(rows, pool.RawRow{Player: "WR " + n, Pos: "WR1", Team: "FA", ESPNADP: adp(float64(i + 40))})
	}
	return rows
}

func TestDeferralExcludesKickersAndDefenseEarly(t *testing.T) {
	engine, _ := buildEngine(t, manyRows())

	recs := engine.Recommend(Input{
		CurrentPick:  5,
		CurrentRound: 1,
		TotalRounds:  18,
		Summary:      emptySummary(),
	}, 20)

	require.NotEmpty(t, recs)
	for _, r := range recs {
		assert.NotEqual(t, models.PositionK, r.Position)
		assert.NotEqual(t, models.PositionDST, r.Position)
	}
}

func TestDeferralLiftsAtSecondToLastRound(t *testing.T) {
	engine, _ := buildEngine(t, manyRows())

	recs := engine.Recommend(Input{
		CurrentPick:  170,
		CurrentRound: 17,
		TotalRounds:  18,
		Summary:      emptySummary(),
	}, 20)

	positions := make(map[models.Position]bool)
	for _, r := range recs {
		positions[r.Position] = true
	}
	assert.True(t, positions[models.PositionK], "kickers surface once deferral lifts")
	assert.True(t, positions[models.PositionDST], "defenses surface once deferral lifts")
}

func TestCriticalNeedOutranksFlexDepth(t *testing.T) {
	rows := []pool.RawRow{
		{Player: "QB One", Pos: "QB1", Team: "BUF", ESPNADP: adp(10)},
		{Player: "WR One", Pos: "WR1", Team: "DAL", ESPNADP: adp(10)},
	}
	engine, _ := buildEngine(t, rows)

	summary := emptySummary()
	summary[models.PositionWR] = roster.PositionCount{Starters: 2, Total: 2}

	recs := engine.Recommend(Input{
		CurrentPick:       25,
		CurrentRound:      3,
		TotalRounds:       18,
		Summary:           summary,
		Needs:             roster.Needs{Critical: []string{"QB"}, Important: []string{"FLEX1"}},
		CriticalPositions: []models.Position{models.PositionQB},
	}, 2)

	require.Len(t, recs, 2)
	assert.Equal(t, "QB One", recs[0].Player)
	assert.Greater(t, recs[0].NeedScore, recs[1].NeedScore)
}

func TestSaturationCapWithCriticalNeed(t *testing.T) {
	engine, _ := buildEngine(t, manyRows())

	summary := emptySummary()
	summary[models.PositionRB] = roster.PositionCount{Starters: 5, Bench: 1, Total: 6}

	recs := engine.Recommend(Input{
		CurrentPick:       60,
		CurrentRound:      6,
		TotalRounds:       18,
		Summary:           summary,
		Needs:             roster.Needs{Critical: []string{"WR1"}},
		CriticalPositions: []models.Position{models.PositionWR},
	}, 5)

	require.Len(t, recs, 5)
	rbs := 0
	wrs := 0
	for _, r := range recs {
		switch r.Position {
		case models.PositionRB:
			rbs++
		case models.PositionWR:
			wrs++
		}
	}
	assert.LessOrEqual(t, rbs, 1, "saturated position capped to one while a critical need exists")
	assert.GreaterOrEqual(t, wrs, 1)
}

func TestSaturationCapRelaxesWithoutCriticalNeed(t *testing.T) {
	engine, _ := buildEngine(t, manyRows())

	summary := emptySummary()
	summary[models.PositionRB] = roster.PositionCount{Starters: 5, Bench: 1, Total: 6}

	recs := engine.Recommend(Input{
		CurrentPick:  60,
		CurrentRound: 6,
		TotalRounds:  18,
		Summary:      summary,
	}, 5)

	rbs := 0
	for _, r := range recs {
		if r.Position == models.PositionRB {
			rbs++
		}
	}
	assert.LessOrEqual(t, rbs, 2, "saturated position capped to two once starters are set")
}

func TestValueGrowsAsPlayerSlides(t *testing.T) {
	engine, _ := buildEngine(t, manyRows())

	early := engine.Recommend(Input{CurrentPick: 5, CurrentRound: 1, TotalRounds: 18, Summary: emptySummary()}, 20)
	late := engine.Recommend(Input{CurrentPick: 50, CurrentRound: 5, TotalRounds: 18, Summary: emptySummary()}, 20)

	find := func(recs []Recommendation, name string) *Recommendation {
		for i := range recs {
			if recs[i].Player == name {
				return &recs[i]
			}
		}
		return nil
	}
	earlyRB := find(early, "RB One")
	lateRB := find(late, "RB One")
	require.NotNil(t, earlyRB)
	require.NotNil(t, lateRB)
	assert.Greater(t, lateRB.ValueScore, earlyRB.ValueScore,
		"a player still on the board gains value as picks pass")
}

func TestRecommendRespectsLimit(t *testing.T) {
	engine, _ := buildEngine(t, manyRows())

	in := Input{CurrentPick: 1, CurrentRound: 1, TotalRounds: 18, Summary: emptySummary()}
	assert.Len(t, engine.Recommend(in, 3), 3)
	assert.Nil(t, engine.Recommend(in, 0))
}

func TestDraftedPlayersNotRecommended(t *testing.T) {
	engine, _ := buildEngine(t, manyRows())

	recs := engine.Recommend(Input{
		CurrentPick:  10,
		CurrentRound: 1,
		TotalRounds:  18,
		Drafted:      map[string]bool{"rb one": true},
		Summary:      emptySummary(),
	}, 20)

	for _, r := range recs {
		assert.NotEqual(t, "RB One", r.Player)
	}
}
