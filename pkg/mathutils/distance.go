/*
This file contains helpers for measuring 'similarity' between vectors.
Everything downstream (k-means, dbscan, silhouette) compares channels with
plain euclidean distance.

*/

package mathutils

import (
	"errors"

	"gonum.org/v1/gonum/floats"
)

// EuclideanDistance finds the euclidean distance between two vectors.
// Returns an err if the vectors are of different length.
func EuclideanDistance(v1, v2 []float64) (float64, error) {
	if len(v1) != len(v2) {
		return 0, errors.New("distance measurement attempt failed: vectors are of different lengths")
	}
	return floats.Distance(v1, v2, 2), nil
}
