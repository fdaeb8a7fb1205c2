package outliers

import (
	"sort"

	"gridscope/pkg/errs"
)

// Outlier is one flagged channel with its largest absolute step.
type Outlier struct {
	Channel int     `json:"channel"`
	MaxDiff float64 `json:"max_diff"`
}

// Set is the selection result, largest step first.
type Set struct {
	Outliers []Outlier `json:"outliers"`
}

// Channels returns just the flagged channel ids.
func (s *Set) Channels() []int {
	ids := make([]int, len(s.Outliers))
	for i, o := range s.Outliers {
		ids[i] = o.Channel
	}
	return ids
}

// Select flags the channels whose max difference falls in the last n
// non-empty histogram bins. With fewer than 2 non-empty bins the selection
// is undefined; with fewer than n it yields an empty set, since there is no
// tail to cut.
func Select(rep *Report, n int) (*Set, error) {
	if n < 1 {
		return nil, errs.New(errs.KindConfig, "outlier bin count %d must be at least 1", n)
	}

	nonEmpty := make([]int, 0, len(rep.Bins))
	for i, b := range rep.Bins {
		if len(b.Channels) > 0 {
			nonEmpty = append(nonEmpty, i)
		}
	}
	if len(nonEmpty) < 2 {
		return nil, errs.New(errs.KindDegenerateData,
			"outlier selection needs at least 2 non-empty bins, have %d", len(nonEmpty))
	}
	if len(nonEmpty) < n {
		return &Set{Outliers: []Outlier{}}, nil
	}

	set := Set{Outliers: make([]Outlier, 0, 8)}
	for _, i := range nonEmpty[len(nonEmpty)-n:] {
		b := rep.Bins[i]
		for j, ch := range b.Channels {
			set.Outliers = append(set.Outliers, Outlier{Channel: ch, MaxDiff: b.MaxDiffs[j]})
		}
	}

	sort.Slice(set.Outliers, func(i, j int) bool {
		if set.Outliers[i].MaxDiff != set.Outliers[j].MaxDiff {
			return set.Outliers[i].MaxDiff > set.Outliers[j].MaxDiff
		}
		return set.Outliers[i].Channel < set.Outliers[j].Channel
	})
	return &set, nil
}
