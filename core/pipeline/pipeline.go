/*
This pkg composes the engine: it picks a group-count strategy (elbow sweep
vs the dbscan estimate) and a grouping strategy (partition vs density),
runs the clustering and the derivative/outlier paths over a measurement
matrix, and joins the winning assignment onto the sensor metadata. The
three measurement kinds are data-independent, so ProcessAll fans them out
to one goroutine each; one kind's failure never touches another's result.

*/
package pipeline

import (
	"sync"

	"github.com/google/uuid"

	"gridscope/cfg"
	"gridscope/pkg/cluster"
	"gridscope/pkg/errs"
	"gridscope/pkg/outliers"
	"gridscope/pkg/timeseries"
)

// Pipeline is the orchestrator. Construct once with a validated config and
// share freely; it holds no mutable state.
type Pipeline struct {
	cfg cfg.Config
}

func New(c cfg.Config) (*Pipeline, error) {
	if err := c.Validate(); err != nil {
		return nil, errs.New(errs.KindConfig, "%v", err)
	}
	return &Pipeline{cfg: c}, nil
}

// Input is one measurement kind's data hand-off: the matrix plus the
// optional sensor metadata to annotate.
type Input struct {
	Matrix *timeseries.Matrix
	Meta   *timeseries.MetaTable
}

// Run is the full output for one measurement kind.
type Run struct {
	ID          string           `json:"id"`
	Kind        timeseries.Kind  `json:"kind"`
	Clusters    *cluster.Result  `json:"clusters"`
	Meta        []AnnotatedRow   `json:"meta,omitempty"`
	Derivatives *outliers.Report `json:"derivatives"`
	Outliers    *outliers.Set    `json:"outliers"`
}

// Outcome pairs a run with its error for the concurrent fan-out.
type Outcome struct {
	Run *Run
	Err error
}

// Cluster groups the matrix channels per the configured strategies.
func (p *Pipeline) Cluster(m *timeseries.Matrix, kind timeseries.Kind) (*cluster.Result, error) {
	if !kind.Valid() {
		return nil, errs.New(errs.KindConfig, "unknown measurement kind: %q", kind)
	}
	preset, err := p.cfg.Preset(kind)
	if err != nil {
		return nil, errs.New(errs.KindConfig, "%v", err)
	}

	if p.cfg.CountStrategy == cfg.CountElbow {
		// Elbow selection is only meaningful for partition grouping, so the
		// grouping strategy is not consulted on this path.
		k, err := cluster.SelectK(m.Samples(), cluster.ElbowConfig{
			KMax:              p.cfg.Elbow.KMax,
			DropThreshold:     p.cfg.Elbow.DropThreshold,
			BaselineDeviation: p.cfg.Elbow.BaselineDeviation,
			Seed:              p.cfg.Seed,
		})
		if err != nil {
			return nil, err
		}
		return cluster.Partition(m, k, p.cfg.Seed)
	}

	res, err := cluster.Density(m, preset.Eps, preset.MinNeighbors)
	if err != nil {
		return nil, err
	}
	if p.cfg.GroupStrategy == cfg.GroupPartition {
		// Keep only the density count estimate, re-group with k-means.
		return cluster.Partition(m, res.K, p.cfg.Seed)
	}
	return res, nil
}

// Outliers runs the derivative histogram path for one matrix.
func (p *Pipeline) Outliers(m *timeseries.Matrix, kind timeseries.Kind) (*outliers.Report, *outliers.Set, error) {
	if !kind.Valid() {
		return nil, nil, errs.New(errs.KindConfig, "unknown measurement kind: %q", kind)
	}
	preset, err := p.cfg.Preset(kind)
	if err != nil {
		return nil, nil, errs.New(errs.KindConfig, "%v", err)
	}

	rep, err := outliers.Binner{
		SampleRate: p.cfg.SampleRate,
		WindowSize: p.cfg.WindowSize,
		NumBins:    p.cfg.NumBins,
	}.Run(m)
	if err != nil {
		return nil, nil, err
	}
	set, err := outliers.Select(rep, preset.OutlierBins)
	if err != nil {
		return rep, nil, err
	}
	return rep, set, nil
}

// Process runs both paths plus the metadata join for one kind.
func (p *Pipeline) Process(in Input, kind timeseries.Kind) (*Run, error) {
	clusters, err := p.Cluster(in.Matrix, kind)
	if err != nil {
		return nil, err
	}

	var meta []AnnotatedRow
	if in.Meta != nil {
		meta, err = Annotate(in.Meta, clusters)
		if err != nil {
			return nil, err
		}
	}

	rep, set, err := p.Outliers(in.Matrix, kind)
	if err != nil {
		return nil, err
	}

	return &Run{
		ID:          uuid.New().String(),
		Kind:        kind,
		Clusters:    clusters,
		Meta:        meta,
		Derivatives: rep,
		Outliers:    set,
	}, nil
}

// ProcessAll runs each kind's pipeline in its own goroutine and joins at a
// barrier. Outcomes are isolated per kind.
func (p *Pipeline) ProcessAll(inputs map[timeseries.Kind]Input) map[timeseries.Kind]Outcome {
	var mu sync.Mutex
	var wg sync.WaitGroup

	outcomes := make(map[timeseries.Kind]Outcome, len(inputs))
	for kind, in := range inputs {
		wg.Add(1)
		go func(kind timeseries.Kind, in Input) {
			defer wg.Done()
			run, err := p.Process(in, kind)
			mu.Lock()
			outcomes[kind] = Outcome{Run: run, Err: err}
			mu.Unlock()
		}(kind, in)
	}
	wg.Wait()

	return outcomes
}
