package keyword

import "sort"

// Window is a half-open time span with the number of hits it covers.
type Window struct {
	Start float64
	End   float64
	Hits  int
}

// FindDenseWindow looks for a cluster of at least minHits hit timestamps
// inside any span of windowSeconds. It returns the densest qualifying
// window, preferring the earliest start on equal hit counts.
func FindDenseWindow(hits []float64, windowSeconds float64, minHits int) (Window, bool) {
	if minHits <= 0 || len(hits) < minHits {
		return Window{}, false
	}

	sorted := make([]float64, len(hits))
	copy(sorted, hits)
	sort.Float64s(sorted)

	best := Window{}
	found := false
	j := 0
	for i := range sorted {
		for j < len(sorted) && sorted[j] <= sorted[i]+windowSeconds {
			j++
		}
		count := j - i
		if count >= minHits && count > best.Hits {
			best = Window{Start: sorted[i], End: sorted[i] + windowSeconds, Hits: count}
			found = true
		}
	}
	return best, found
}
