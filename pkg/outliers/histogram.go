package outliers

// Bin is one fixed-width histogram bucket over the per-channel max
// differences. Channels and MaxDiffs are parallel slices.
type Bin struct {
	Number   int       `json:"number"`
	Lower    float64   `json:"lower"`
	Center   float64   `json:"center"`
	Upper    float64   `json:"upper"`
	Channels []int     `json:"channels"`
	MaxDiffs []float64 `json:"max_diffs"`
}

// buildBins partitions the records into numBins contiguous buckets spanning
// the observed max-difference range. Bin 0's reported lower bound is
// clamped to zero, and membership at the shared edges goes to the lower
// bin, so every channel lands in exactly one bucket.
func buildBins(records []Record, numBins int) ([]Bin, error) {
	lo, hi, err := maxDiffBounds(records)
	if err != nil {
		return nil, err
	}

	width := (hi - lo) / float64(numBins)
	if width == 0 {
		// All channels moved by the same amount; degenerate but binnable.
		width = 1
	}

	bins := make([]Bin, numBins)
	for i := range bins {
		lower := lo + float64(i)*width
		bins[i] = Bin{
			Number: i,
			Lower:  lower,
			Center: lower + width/2,
			Upper:  lower + width,
		}
	}
	// Clamp after the true edges are laid out, the other bounds keep the
	// observed range.
	bins[0].Lower = 0

	for _, r := range records {
		i := binIndex(bins, r.MaxDiff)
		bins[i].Channels = append(bins[i].Channels, r.Channel)
		bins[i].MaxDiffs = append(bins[i].MaxDiffs, r.MaxDiff)
	}

	return bins, nil
}

// binIndex finds the bucket for a value: (lower, upper] everywhere except
// bin 0, which also includes its lower edge.
func binIndex(bins []Bin, v float64) int {
	if v <= bins[0].Upper {
		return 0
	}
	for i := 1; i < len(bins); i++ {
		if v > bins[i].Lower && v <= bins[i].Upper {
			return i
		}
	}
	// Floating point drift at the top edge.
	return len(bins) - 1
}
