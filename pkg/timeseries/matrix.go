/*
This pkg defines the in-memory shapes shared by the clustering and outlier
paths: a measurement matrix (time samples x sensor channels) and a sensor
metadata table. Matrices are read-only after construction, everything that
consumes them works on copies.

*/
package timeseries

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Matrix holds one measurement quantity for a set of channels over a shared
// time index. Rows are time samples, columns are channels (bus numbers).
type Matrix struct {
	times    []float64
	channels []int
	data     *mat.Dense
	// channel id -> column index.
	cols map[int]int
}

// New validates and builds a Matrix. 'values' is row-major: values[i][j] is
// the sample at times[i] for channels[j]. Channel ids must be unique.
func New(times []float64, channels []int, values [][]float64) (*Matrix, error) {
	if len(times) == 0 || len(channels) == 0 {
		return nil, errors.New("matrix needs at least one time sample and one channel")
	}
	if len(values) != len(times) {
		return nil, fmt.Errorf("matrix has %d rows of values but %d time samples", len(values), len(times))
	}
	cols := make(map[int]int, len(channels))
	for j, ch := range channels {
		if _, ok := cols[ch]; ok {
			return nil, fmt.Errorf("duplicate channel id %d", ch)
		}
		cols[ch] = j
	}
	data := mat.NewDense(len(times), len(channels), nil)
	for i, row := range values {
		if len(row) != len(channels) {
			return nil, fmt.Errorf("row %d has %d values but there are %d channels", i, len(row), len(channels))
		}
		data.SetRow(i, row)
	}
	m := Matrix{
		times:    append([]float64(nil), times...),
		channels: append([]int(nil), channels...),
		data:     data,
		cols:     cols,
	}
	return &m, nil
}

func (m *Matrix) NumSamples() int  { return len(m.times) }
func (m *Matrix) NumChannels() int { return len(m.channels) }

// Times returns a copy of the time index.
func (m *Matrix) Times() []float64 { return append([]float64(nil), m.times...) }

// Channels returns a copy of the channel ids, in column order.
func (m *Matrix) Channels() []int { return append([]int(nil), m.channels...) }

// HasChannel reports whether a channel id is a column of this matrix.
func (m *Matrix) HasChannel(id int) bool {
	_, ok := m.cols[id]
	return ok
}

// Channel returns the time series of one channel id.
func (m *Matrix) Channel(id int) ([]float64, bool) {
	j, ok := m.cols[id]
	if !ok {
		return nil, false
	}
	return mat.Col(nil, j, m.data), true
}

// At returns the value at time sample i for column j.
func (m *Matrix) At(i, j int) float64 { return m.data.At(i, j) }

// Samples reshapes the matrix so each channel becomes one vector (row).
// Index i of the result corresponds to Channels()[i]. This is the layout
// the clustering algorithms operate on.
func (m *Matrix) Samples() [][]float64 {
	res := make([][]float64, len(m.channels))
	for j := range m.channels {
		res[j] = mat.Col(nil, j, m.data)
	}
	return res
}

// Rows returns the raw row-major values, one slice per time sample.
func (m *Matrix) Rows() [][]float64 {
	res := make([][]float64, len(m.times))
	for i := range m.times {
		res[i] = mat.Row(nil, i, m.data)
	}
	return res
}

// Sub builds the sub-matrix containing only the given channels, keeping the
// full time index. Unknown channel ids are an error.
func (m *Matrix) Sub(channels []int) (*Matrix, error) {
	values := make([][]float64, len(m.times))
	for i := range values {
		values[i] = make([]float64, len(channels))
	}
	for jj, ch := range channels {
		j, ok := m.cols[ch]
		if !ok {
			return nil, fmt.Errorf("channel %d is not in the matrix", ch)
		}
		for i := range m.times {
			values[i][jj] = m.data.At(i, j)
		}
	}
	return New(m.times, channels, values)
}
