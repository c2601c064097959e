package pool

import (
	"math"

	"github.com/tbrandt/draftkit/go/internal/models"
)

// CurveSegment is one piece of a projection curve: for ADPs up to MaxADP the
// projection is Base - adp*Slope.
type CurveSegment struct {
	MaxADP float64
	Base   float64
	Slope  float64
}

// CompressionTier is one piece of the QB-flex ADP compression: QB ADPs up to
// MaxADP are multiplied by Factor.
type CompressionTier struct {
	MaxADP float64
	Factor float64
}

// ValueModel carries the tunable constants of the pool transform. The
// defaults are heuristics, not derived truth; treat them as parameters and
// test shape properties (monotonicity, floors) rather than exact outputs.
type ValueModel struct {
	// NonQBFlexPenalty is added to every non-QB ADP in QB-flex leagues,
	// mirroring the value shift toward quarterbacks.
	NonQBFlexPenalty float64

	// QBCompression rescales QB ADPs in QB-flex leagues, elite QBs most.
	// The compressed value never exceeds the original one.
	QBCompression []CompressionTier

	// Curves are per-position projection curves keyed off raw ADP.
	Curves map[models.Position][]CurveSegment

	// DefaultProjection is used for positions without a curve (K, D/ST).
	DefaultProjection float64

	// ProjectionFloor is the minimum projected-points value emitted.
	ProjectionFloor float64

	// TierCutoffs are positional-rank upper bounds for tiers 1..len; ranks
	// past the last cutoff land in tier len+1.
	TierCutoffs []int
}

// DefaultValueModel returns the stock constants.
func DefaultValueModel() ValueModel {
	inf := math.Inf(1)
	return ValueModel{
		NonQBFlexPenalty: 5,
		QBCompression: []CompressionTier{
			{MaxADP: 50, Factor: 0.3},
			{MaxADP: 80, Factor: 0.5},
			{MaxADP: inf, Factor: 0.7},
		},
		Curves: map[models.Position][]CurveSegment{
			models.PositionQB: {
				{MaxADP: 10, Base: 400, Slope: 3},
				{MaxADP: 30, Base: 370, Slope: 2},
				{MaxADP: 60, Base: 320, Slope: 1},
				{MaxADP: inf, Base: 250, Slope: 0.5},
			},
			models.PositionRB: {
				{MaxADP: 5, Base: 300, Slope: 8},
				{MaxADP: 15, Base: 270, Slope: 4},
				{MaxADP: 30, Base: 230, Slope: 2},
				{MaxADP: inf, Base: 180, Slope: 0.5},
			},
			models.PositionWR: {
				{MaxADP: 5, Base: 280, Slope: 6},
				{MaxADP: 15, Base: 250, Slope: 3},
				{MaxADP: 30, Base: 210, Slope: 1.5},
				{MaxADP: inf, Base: 170, Slope: 0.5},
			},
			models.PositionTE: {
				{MaxADP: 10, Base: 220, Slope: 5},
				{MaxADP: 30, Base: 180, Slope: 2},
				{MaxADP: inf, Base: 120, Slope: 0},
			},
		},
		DefaultProjection: 100,
		ProjectionFloor:   50,
		TierCutoffs:       []int{4, 10, 20, 35},
	}
}

// projection evaluates the curve for a position at the given raw ADP. QB
// projections scale with the league's QB value multiplier.
func (vm ValueModel) projection(pos models.Position, adp, qbMultiplier float64) float64 {
	segments, ok := vm.Curves[pos]
	if !ok {
		return math.Max(vm.ProjectionFloor, vm.DefaultProjection)
	}

	proj := vm.DefaultProjection
	for _, seg := range segments {
		if adp <= seg.MaxADP {
			proj = seg.Base - adp*seg.Slope
			break
		}
	}
	if pos == models.PositionQB {
		proj *= qbMultiplier
	}
	return math.Max(vm.ProjectionFloor, proj)
}

// compressQB applies the QB-flex ADP compression with the no-worse clamp:
// the result is at least 1 and never above the original ADP.
func (vm ValueModel) compressQB(adp float64) float64 {
	compressed := adp
	for _, tier := range vm.QBCompression {
		if adp <= tier.MaxADP {
			compressed = adp * tier.Factor
			break
		}
	}
	return math.Max(1, math.Min(compressed, adp))
}

// tierFor maps a positional rank (1 = best) to a tier.
func (vm ValueModel) tierFor(rank int) int {
	for i, cutoff := range vm.TierCutoffs {
		if rank <= cutoff {
			return i + 1
		}
	}
	return len(vm.TierCutoffs) + 1
}
