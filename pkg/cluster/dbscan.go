package cluster

import (
	"gridscope/pkg/errs"
	"gridscope/pkg/searchutils"
	"gridscope/pkg/timeseries"
)

// DBSCAN is a density clusterer with fixed hyperparameters. A channel is a
// core point when at least MinNeighbors channels (itself included) lie
// within Eps of it; channels reachable from no core point are labeled Noise.
type DBSCAN struct {
	Eps          float64
	MinNeighbors int
}

const unclassified = -2

// Fit returns per-sample labels: 0..k-1 for dense groups, Noise (-1) for
// the rest. The scan order is the sample order, so results are
// deterministic.
func (db DBSCAN) Fit(samples [][]float64) []int {
	labels := make([]int, len(samples))
	for i := range labels {
		labels[i] = unclassified
	}

	next := 0
	for i := range samples {
		if labels[i] != unclassified {
			continue
		}
		neighbors := searchutils.RadiusNeighbors(samples[i], searchutils.SliceGenerator(samples), db.Eps)
		if len(neighbors) < db.MinNeighbors {
			labels[i] = Noise
			continue
		}

		// New dense group; grow it from the seed's neighbourhood.
		labels[i] = next
		queue := append([]int(nil), neighbors...)
		for len(queue) > 0 {
			j := queue[0]
			queue = queue[1:]
			if labels[j] == Noise {
				// Border point, reachable but not dense itself.
				labels[j] = next
			}
			if labels[j] != unclassified {
				continue
			}
			labels[j] = next
			jn := searchutils.RadiusNeighbors(samples[j], searchutils.SliceGenerator(samples), db.Eps)
			if len(jn) >= db.MinNeighbors {
				queue = append(queue, jn...)
			}
		}
		next++
	}

	return labels
}

// Density clusters the matrix channels by density. The returned Result
// counts the noise group as one group when present, which is the group
// count estimate the orchestrator can feed back into k-means.
func Density(m *timeseries.Matrix, eps float64, minNeighbors int) (*Result, error) {
	if m.NumChannels() < 2 {
		return nil, errs.New(errs.KindDegenerateData, "clustering needs at least 2 channels, have %d", m.NumChannels())
	}
	if eps <= 0 || minNeighbors < 1 {
		return nil, errs.New(errs.KindConfig, "invalid density parameters: radius %v, min neighbours %d", eps, minNeighbors)
	}
	labels := DBSCAN{Eps: eps, MinNeighbors: minNeighbors}.Fit(m.Samples())
	// nil centers: group centers become the member means.
	return buildResult(m, labels, nil)
}
