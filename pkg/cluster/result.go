/*
This pkg groups sensor channels into behaviourally similar clusters. Two
algorithms are implemented; a seeded Lloyd k-means (Partition) for a caller
supplied group count, and an eps/min-neighbours dbscan (Density) which infers
the group count itself and marks low-density channels as noise. Silhouette
scoring plus the elbow heuristic (elbow.go) pick a group count when the
caller has no prior.

*/
package cluster

import (
	"sort"

	"gridscope/pkg/errs"
	"gridscope/pkg/mathutils"
	"gridscope/pkg/timeseries"
)

// Noise is the reserved group id for channels that dbscan could not place
// in any dense region.
const Noise = -1

// Result is the outcome of one clustering run over one matrix.
type Result struct {
	// K is the number of distinct group ids, counting the noise group if
	// present.
	K int `json:"k"`
	// Assignment maps channel id -> group id.
	Assignment map[int]int `json:"assignment"`
	// Centers maps group id -> representative series on the input time axis.
	// True centroids for k-means, member means for dbscan.
	Centers map[int][]float64 `json:"centers"`
	// Groups maps group id -> sub-matrix of member channels.
	Groups map[int]*timeseries.Matrix `json:"-"`
}

// GroupIDs returns the group ids of a result in ascending order (noise
// first, if present).
func (r *Result) GroupIDs() []int {
	ids := make([]int, 0, len(r.Groups))
	for id := range r.Groups {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// buildResult assembles a Result from per-sample labels. labels[i] is the
// group of m.Channels()[i]. When centers is nil, each group's center is
// computed as the mean of its member series.
func buildResult(m *timeseries.Matrix, labels []int, centers map[int][]float64) (*Result, error) {
	channels := m.Channels()

	members := make(map[int][]int)
	assignment := make(map[int]int, len(channels))
	for i, ch := range channels {
		assignment[ch] = labels[i]
		members[labels[i]] = append(members[labels[i]], ch)
	}

	groups := make(map[int]*timeseries.Matrix, len(members))
	for id, chs := range members {
		sub, err := m.Sub(chs)
		if err != nil {
			return nil, err
		}
		groups[id] = sub
	}

	if centers == nil {
		centers = make(map[int][]float64, len(members))
		for id := range members {
			mean, ok := mathutils.VecMeanSlice(groups[id].Samples())
			if !ok {
				return nil, errs.New(errs.KindDegenerateData, "group %d has no member series", id)
			}
			centers[id] = mean
		}
	}

	return &Result{
		K:          len(members),
		Assignment: assignment,
		Centers:    centers,
		Groups:     groups,
	}, nil
}
