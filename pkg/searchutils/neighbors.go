/*
This file contains a few funcs which do linear neighbourhood searching over
vectors. The clustering pkg uses NearestIndex to assign channels to their
closest centroid, and RadiusNeighbors as the dbscan region query. Both
operate on generators (bool=false signals end of iterable) so callers don't
have to materialise []T -> [][]float64 conversions.

*/

package searchutils

import (
	"math"

	"gridscope/pkg/mathutils"
)

// VecGenerator yields vectors until the bool return is false.
type VecGenerator = func() ([]float64, bool)

// NearestIndex returns the index of the vector in the pool that is closest
// to targetVec by euclidean distance, or -1 for an empty pool. Vectors whose
// length mismatches targetVec are skipped.
func NearestIndex(targetVec []float64, pool VecGenerator) int {
	best := -1
	bestScore := math.MaxFloat64
	i := 0
	for {
		v, cont := pool()
		if !cont {
			break
		}
		score, err := mathutils.EuclideanDistance(targetVec, v)
		if err == nil && score < bestScore {
			best, bestScore = i, score
		}
		i++
	}
	return best
}

// FurthestIndex is the counterpart of NearestIndex which finds the vector
// furthest away from targetVec instead.
func FurthestIndex(targetVec []float64, pool VecGenerator) int {
	best := -1
	bestScore := -1.
	i := 0
	for {
		v, cont := pool()
		if !cont {
			break
		}
		score, err := mathutils.EuclideanDistance(targetVec, v)
		if err == nil && score > bestScore {
			best, bestScore = i, score
		}
		i++
	}
	return best
}

// RadiusNeighbors returns the indexes of all vectors in the pool whose
// euclidean distance to targetVec is at most radius. The target itself is
// normally part of the pool and so counts as its own neighbour, which is
// what the dbscan density criterion expects.
func RadiusNeighbors(targetVec []float64, pool VecGenerator, radius float64) []int {
	res := make([]int, 0, 8)
	i := 0
	for {
		v, cont := pool()
		if !cont {
			break
		}
		score, err := mathutils.EuclideanDistance(targetVec, v)
		if err == nil && score <= radius {
			res = append(res, i)
		}
		i++
	}
	return res
}

// SliceGenerator adapts a [][]float64 to a VecGenerator.
func SliceGenerator(vecs [][]float64) VecGenerator {
	i := 0
	return func() ([]float64, bool) {
		if i >= len(vecs) {
			return nil, false
		}
		i++
		return vecs[i-1], true
	}
}
