package mathutils

import "gonum.org/v1/gonum/floats"

// VecMean computes the element-wise mean of all vectors produced by the
// generator (bool=false signals end of iterable). The second return is false
// if the generator was empty or produced vectors of unequal length.
func VecMean(generator func() ([]float64, bool)) ([]float64, bool) {
	vec, cont := generator()
	if !cont {
		return vec, false
	}

	res := make([]float64, len(vec))
	copy(res, vec)

	n := 1.
	for {
		vec, cont := generator()
		if !cont {
			break
		}
		if len(vec) != len(res) {
			return res, false
		}
		floats.Add(res, vec)
		n += 1
	}

	floats.Scale(1/n, res)
	return res, true
}

// VecMeanSlice is a convenience wrapper around VecMean for plain slices.
func VecMeanSlice(vecs [][]float64) ([]float64, bool) {
	i := 0
	return VecMean(func() ([]float64, bool) {
		if i >= len(vecs) {
			return nil, false
		}
		i++
		return vecs[i-1], true
	})
}
