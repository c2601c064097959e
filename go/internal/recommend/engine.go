// Package recommend scores the remaining player pool against the current
// roster and pick position, blending raw pick value with team need, and
// assembles a saturation-balanced suggestion list.
package recommend

import (
	"sort"

	"github.com/tbrandt/draftkit/go/internal/league"
	"github.com/tbrandt/draftkit/go/internal/models"
	"github.com/tbrandt/draftkit/go/internal/pool"
	"github.com/tbrandt/draftkit/go/internal/roster"
)

// Scoring weights and bonuses that are structural rather than tunable.
const (
	tierBonusStep = 2.0

	criticalNeedBonus  = 20.0
	flexNeedBonus      = 10.0
	maxDepthScore      = 5.0
	ineligibleValuePen = -20.0
	ineligibleNeedPen  = -100.0
	deferredNeedPen    = -50.0

	// Need outweighs value while starters are unfilled, then the blend
	// flips toward value.
	needPhaseValueWeight  = 0.4
	needPhaseNeedWeight   = 0.6
	valuePhaseValueWeight = 0.6
	valuePhaseNeedWeight  = 0.4
)

// Verdict is a coarse quality label attached to each recommendation.
type Verdict string

const (
	VerdictGreat Verdict = "GREAT"
	VerdictGood  Verdict = "GOOD"
	VerdictFair  Verdict = "FAIR"
)

// Params holds the tunable constants of the scoring model: how many players
// of a position make it scarce, the bonuses applied at scarcity, and the
// per-position roster targets used for depth scoring and saturation.
type Params struct {
	QBAvailabilityFloor int
	RBAvailabilityFloor int

	QBFlexScarcityBonus float64
	QBScarcityBonus     float64
	RBScarcityBonus     float64

	QBTargetWithFlex int
	QBTarget         int
	RBTarget         int
	WRTarget         int
	TETarget         int
	KTarget          int
	DSTTarget        int
}

// DefaultParams returns the stock scoring constants.
func DefaultParams() Params {
	return Params{
		QBAvailabilityFloor: 15,
		RBAvailabilityFloor: 20,

		QBFlexScarcityBonus: 15,
		QBScarcityBonus:     10,
		RBScarcityBonus:     5,

		QBTargetWithFlex: 3,
		QBTarget:         2,
		RBTarget:         6,
		WRTarget:         7,
		TETarget:         2,
		KTarget:          1,
		DSTTarget:        1,
	}
}

// Recommendation is one scored suggestion.
type Recommendation struct {
	Player     string
	Team       string
	Position   models.Position
	Tier       int
	ADP        float64
	Projected  float64
	ValueScore float64
	NeedScore  float64
	TotalScore float64
	Verdict    Verdict
}

// Input is the draft situation a recommendation list is computed for.
// Drafted is keyed by lower-cased player name.
type Input struct {
	CurrentPick       int
	CurrentRound      int
	TotalRounds       int
	Drafted           map[string]bool
	Needs             roster.Needs
	Summary           map[models.Position]roster.PositionCount
	CriticalPositions []models.Position
}

// Engine scores pool entries for a fixed league format.
type Engine struct {
	format *league.Format
	pool   *pool.Pool
	params Params
}

// NewEngine builds an engine over the given pool and format.
func NewEngine(p *pool.Pool, format *league.Format, params Params) *Engine {
	return &Engine{format: format, pool: p, params: params}
}

// Recommend returns up to n suggestions for the given situation, best first.
//
// Candidates are the available pool minus deferred positions. Each candidate
// gets a value score (pick value against adjusted ADP, tier, scarcity) and a
// need score (critical, flex, or depth), blended by draft phase. The sorted
// list is then saturation-balanced so a position the roster already has
// enough of cannot dominate the output.
func (e *Engine) Recommend(in Input, n int) []Recommendation {
	if n <= 0 {
		return nil
	}

	available := e.pool.Available(in.Drafted)
	remaining := countByPosition(available)

	criticalSet := make(map[models.Position]bool, len(in.CriticalPositions))
	for _, p := range in.CriticalPositions {
		criticalSet[p] = true
	}

	scored := make([]Recommendation, 0, len(available))
	for _, entry := range available {
		if e.shouldDefer(entry.Position, in.CurrentRound, in.TotalRounds) {
			continue
		}
		value := e.valueScore(entry, in.CurrentPick, remaining)
		need := e.needScore(entry.Position, in, criticalSet)
		vw, nw := e.phaseWeights(in, criticalSet)
		total := value*vw + need*nw
		scored = append(scored, Recommendation{
			Player:     entry.Name,
			Team:       entry.Team,
			Position:   entry.Position,
			Tier:       entry.Tier,
			ADP:        entry.AdjustedADP,
			Projected:  entry.ProjectedPoints,
			ValueScore: value,
			NeedScore:  need,
			TotalScore: total,
			Verdict:    verdictFor(total),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].TotalScore > scored[j].TotalScore
	})

	return e.balance(scored, in, n)
}

// valueScore rewards players still on the board past their adjusted ADP,
// higher tiers, and positions running dry.
func (e *Engine) valueScore(entry *models.PlayerPoolEntry, currentPick int, remaining map[models.Position]int) float64 {
	score := float64(currentPick) - entry.AdjustedADP
	score += float64(6-entry.Tier) * tierBonusStep

	switch entry.Position {
	case models.PositionQB:
		if remaining[models.PositionQB] < e.params.QBAvailabilityFloor {
			if e.format.HasQBFlex() {
				score += e.params.QBFlexScarcityBonus
			} else {
				score += e.params.QBScarcityBonus
			}
		}
	case models.PositionRB:
		if remaining[models.PositionRB] < e.params.RBAvailabilityFloor {
			score += e.params.RBScarcityBonus
		}
	}

	if !e.format.PositionInLeague(entry.Position) {
		score += ineligibleValuePen
	}
	return score
}

// needScore measures how much the roster wants this position right now.
func (e *Engine) needScore(pos models.Position, in Input, criticalSet map[models.Position]bool) float64 {
	if !e.format.PositionInLeague(pos) {
		return ineligibleNeedPen
	}
	if e.shouldDefer(pos, in.CurrentRound, in.TotalRounds) {
		return deferredNeedPen
	}
	if criticalSet[pos] {
		return criticalNeedBonus
	}
	if len(in.Needs.Important) > 0 && isFlexWorthy(pos) {
		return flexNeedBonus
	}

	target := e.positionTarget(pos)
	count := in.Summary[pos].Total
	if count >= target {
		return 0
	}
	score := float64(target-count) * 2
	if score > maxDepthScore {
		return maxDepthScore
	}
	return score
}

// phaseWeights picks the blend: need-heavy while a non-deferred critical
// starter slot is open, value-heavy afterwards.
func (e *Engine) phaseWeights(in Input, criticalSet map[models.Position]bool) (valueWeight, needWeight float64) {
	for p := range criticalSet {
		if !e.shouldDefer(p, in.CurrentRound, in.TotalRounds) {
			return needPhaseValueWeight, needPhaseNeedWeight
		}
	}
	return valuePhaseValueWeight, valuePhaseNeedWeight
}

// shouldDefer reports whether a position is held out of recommendations
// until the final two rounds. Deferral lifts at round totalRounds-1
// inclusive.
func (e *Engine) shouldDefer(pos models.Position, currentRound, totalRounds int) bool {
	if pos != models.PositionK && pos != models.PositionDST {
		return false
	}
	return currentRound < totalRounds-1
}

// balance walks the sorted candidates, capping how often a saturated
// position may appear in the output. The cap is 1 while any critical need
// remains, else 2, so depth options still surface without drowning the list.
func (e *Engine) balance(scored []Recommendation, in Input, n int) []Recommendation {
	maxSaturated := 2
	if len(in.Needs.Critical) > 0 {
		maxSaturated = 1
	}

	emitted := make(map[models.Position]int)
	out := make([]Recommendation, 0, n)
	for _, rec := range scored {
		if e.isSaturated(rec.Position, in.Summary) && emitted[rec.Position] >= maxSaturated {
			continue
		}
		out = append(out, rec)
		emitted[rec.Position]++
		if len(out) == n {
			break
		}
	}
	return out
}

// isSaturated reports whether the roster already holds its target count of
// the position. A position with target zero is always saturated.
func (e *Engine) isSaturated(pos models.Position, summary map[models.Position]roster.PositionCount) bool {
	target := e.positionTarget(pos)
	if target == 0 {
		return true
	}
	return summary[pos].Total >= target
}

// positionTarget is the roster allotment used for depth scoring and
// saturation. Positions the league does not start target zero.
func (e *Engine) positionTarget(pos models.Position) int {
	switch pos {
	case models.PositionQB:
		if e.format.HasQBFlex() {
			return e.params.QBTargetWithFlex
		}
		return e.params.QBTarget
	case models.PositionRB:
		return e.params.RBTarget
	case models.PositionWR:
		return e.params.WRTarget
	case models.PositionTE:
		return e.params.TETarget
	case models.PositionK:
		if e.format.HasKickers() {
			return e.params.KTarget
		}
		return 0
	case models.PositionDST:
		if e.format.HasDefense() {
			return e.params.DSTTarget
		}
		return 0
	default:
		return 0
	}
}

func isFlexWorthy(pos models.Position) bool {
	switch pos {
	case models.PositionQB, models.PositionRB, models.PositionWR, models.PositionTE:
		return true
	}
	return false
}

func verdictFor(total float64) Verdict {
	switch {
	case total >= 20:
		return VerdictGreat
	case total >= 5:
		return VerdictGood
	default:
		return VerdictFair
	}
}

func countByPosition(entries []*models.PlayerPoolEntry) map[models.Position]int {
	counts := make(map[models.Position]int)
	for _, e := range entries {
		counts[e.Position]++
	}
	return counts
}
