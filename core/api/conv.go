package api

import (
	"gridscope/core/pipeline"
	"gridscope/pkg/timeseries"
)

// Wire shape of a measurement matrix. Same layout as timeseries.Matrix
// construction args, with json tags.
type WireMatrix struct {
	Times    []float64   `json:"times"`
	Channels []int       `json:"channels"`
	Values   [][]float64 `json:"values"`
}

// conv WireMatrix -> timeseries.Matrix.
func (wm *WireMatrix) toMatrix() (*timeseries.Matrix, error) {
	return timeseries.New(wm.Times, wm.Channels, wm.Values)
}

// Wire shape of one kind's input: matrix plus optional metadata.
type WireInput struct {
	Matrix WireMatrix            `json:"matrix"`
	Meta   *timeseries.MetaTable `json:"meta,omitempty"`
}

func (wi *WireInput) toInput() (pipeline.Input, error) {
	m, err := wi.Matrix.toMatrix()
	if err != nil {
		return pipeline.Input{}, err
	}
	return pipeline.Input{Matrix: m, Meta: wi.Meta}, nil
}
