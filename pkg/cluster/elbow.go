/*
Group-count selection via silhouette scoring and the elbow heuristic.

The heuristic and its three constants (candidate range, drop threshold,
baseline deviation) are carried over from the operators' established
workflow: score k-means for k=2..10, find the largest drop in the score
curve, walk forward until the drop flattens out, and fall back to 2 groups
when the winner's score is not meaningfully below the 2-group baseline.
The constants interact in ways that have not been re-derived from data;
treat them as tuning knobs, not ground truth.

*/
package cluster

import (
	"gridscope/pkg/errs"
)

// ElbowConfig parameterises SelectK. Zero values are not usable; take the
// defaults from the cfg pkg.
type ElbowConfig struct {
	// Candidate group counts run from 2 through KMax, clipped to one below
	// the channel count.
	KMax int
	// DropThreshold is the (negative) score difference under which the
	// curve is still considered to be dropping.
	DropThreshold float64
	// BaselineDeviation is the fraction of the 2-group score the winner
	// must fall below to avoid being overridden back to 2.
	BaselineDeviation float64
	// Seed feeds the k-means fits so selection is reproducible.
	Seed int64
}

// successiveDiffs returns diffs[i] = scores[i] - scores[i-1], with the
// first entry seeded to 0 as the baseline.
func successiveDiffs(scores []float64) []float64 {
	diffs := make([]float64, len(scores))
	for i := 1; i < len(scores); i++ {
		diffs[i] = scores[i] - scores[i-1]
	}
	return diffs
}

// elbowIndex picks the index of the elbow in a score-difference curve: the
// first index at or after the largest drop whose difference is above the
// threshold yields the index before it; if the curve keeps dropping to the
// end, the largest drop itself wins.
func elbowIndex(diffs []float64, dropThreshold float64) int {
	steepest := 0
	for i, d := range diffs {
		if d < diffs[steepest] {
			steepest = i
		}
	}
	for i := steepest; i < len(diffs); i++ {
		if diffs[i] > dropThreshold {
			return i - 1
		}
	}
	return steepest
}

// SelectK picks a group count for the samples without prior knowledge.
// The result is always within [2, min(KMax, len(samples)-1)].
func SelectK(samples [][]float64, cfg ElbowConfig) (int, error) {
	kMax := cfg.KMax
	if n := len(samples); kMax > n-1 {
		kMax = n - 1
	}
	if kMax < 2 {
		return 0, errs.New(errs.KindDegenerateData,
			"group count selection needs at least 3 channels, have %d", len(samples))
	}

	ks := make([]int, 0, kMax-1)
	scores := make([]float64, 0, kMax-1)
	for k := 2; k <= kMax; k++ {
		s, err := ScoreK(samples, k, cfg.Seed)
		if err != nil {
			return 0, err
		}
		ks = append(ks, k)
		scores = append(scores, s)
	}

	diffs := successiveDiffs(scores)
	i := elbowIndex(diffs, cfg.DropThreshold)
	best := 2
	if i >= 0 {
		best = ks[i]
	}
	// The elbow can step one below the candidate range; 2 groups is the
	// smallest meaningful partition.
	if best < 2 {
		best = 2
	}

	// Baseline override: when the winner's score has not dropped at least
	// BaselineDeviation below the 2-group score, 2 groups is good enough.
	lowerBound := scores[0] - cfg.BaselineDeviation*scores[0]
	if best != 2 && scores[best-2] >= lowerBound {
		best = 2
	}

	return best, nil
}
