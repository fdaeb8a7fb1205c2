/*
This pkg surfaces the sensors whose signal moved the most between adjacent
samples. It computes first differences per channel, records each channel's
largest absolute step and when it happened, buckets the steps into a
fixed-width histogram, and selects the channels in the top bins as the
outliers an operator should look at first.

*/
package outliers

import (
	"fmt"
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"gridscope/pkg/errs"
	"gridscope/pkg/timeseries"
)

// Record is one channel's largest absolute first difference and the moment
// it occurred: a +-1/60 s window around the sample step, plus the coarse
// 10 s window label used for grouping in the histogram view.
type Record struct {
	Channel int     `json:"channel"`
	MaxDiff float64 `json:"max_diff"`
	Start   float64 `json:"start"`
	Finish  float64 `json:"finish"`
	Window  string  `json:"window"`
}

// Report is the full derivative analysis for one matrix: per-channel
// records (largest step first) and the histogram they fall into.
type Report struct {
	Records []Record `json:"records"`
	Bins    []Bin    `json:"bins"`
}

// Binner computes derivative reports. Zero fields fall back to the
// conventional values: 30 Hz sampling, 10 s windows, 10 bins.
type Binner struct {
	// SampleRate converts diff indexes to seconds.
	SampleRate float64
	// WindowSize is the coarse occurrence-window width in seconds.
	WindowSize float64
	// NumBins is the histogram resolution.
	NumBins int
}

func (b Binner) sampleRate() float64 {
	if b.SampleRate <= 0 {
		return 30
	}
	return b.SampleRate
}

func (b Binner) windowSize() float64 {
	if b.WindowSize <= 0 {
		return 10
	}
	return b.WindowSize
}

func (b Binner) numBins() int {
	if b.NumBins <= 0 {
		return 10
	}
	return b.NumBins
}

// Run analyses one matrix. It is a pure function of its input; re-running
// on the same matrix yields an identical report.
func (b Binner) Run(m *timeseries.Matrix) (*Report, error) {
	if m.NumSamples() < 2 {
		return nil, errs.New(errs.KindDegenerateData,
			"first differences need at least 2 time samples, have %d", m.NumSamples())
	}

	dt := 1 / b.sampleRate()
	width := b.windowSize()
	times := m.Times()
	numWindows := int(math.Ceil(times[len(times)-1] / width))
	if numWindows < 1 {
		numWindows = 1
	}

	records := make([]Record, 0, m.NumChannels())
	for _, ch := range m.Channels() {
		series, _ := m.Channel(ch)

		// Largest absolute step and the first index it occurs at. The
		// leading undefined diff row is dropped by construction.
		maxDiff, at := 0., 0
		for t := 0; t+1 < len(series); t++ {
			if d := math.Abs(series[t+1] - series[t]); d > maxDiff {
				maxDiff, at = d, t
			}
		}

		occurred := float64(at) * dt
		start := occurred - dt/2
		finish := occurred + dt/2

		w := int(math.Floor(start / width))
		if w < 0 {
			w = 0
		}
		if w > numWindows-1 {
			w = numWindows - 1
		}

		records = append(records, Record{
			Channel: ch,
			MaxDiff: maxDiff,
			Start:   start,
			Finish:  finish,
			Window:  fmt.Sprintf("%g-%g", float64(w)*width, float64(w+1)*width),
		})
	}

	bins, err := buildBins(records, b.numBins())
	if err != nil {
		return nil, err
	}

	sortRecords(records)
	return &Report{Records: records, Bins: bins}, nil
}

// sortRecords orders records by descending max difference, channel id as
// the tie break so the order is stable across runs.
func sortRecords(records []Record) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].MaxDiff != records[j].MaxDiff {
			return records[i].MaxDiff > records[j].MaxDiff
		}
		return records[i].Channel < records[j].Channel
	})
}

// maxDiffBounds returns the observed min/max of the per-channel maxes.
func maxDiffBounds(records []Record) (float64, float64, error) {
	vals := make([]float64, len(records))
	for i, r := range records {
		vals[i] = r.MaxDiff
	}
	lo, err := stats.Min(vals)
	if err != nil {
		return 0, 0, errs.New(errs.KindDegenerateData, "no channels to bin")
	}
	hi, err := stats.Max(vals)
	if err != nil {
		return 0, 0, errs.New(errs.KindDegenerateData, "no channels to bin")
	}
	return lo, hi, nil
}
