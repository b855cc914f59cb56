package layout

import "math"

// ArgMax returns the index of the largest value, keeping the first of equal
// maxima. An empty slice yields -1.
func ArgMax(vals []float64) int {
	if len(vals) == 0 {
		return -1
	}
	best := 0
	for i := 1; i < len(vals); i++ {
		if vals[i] > vals[best] {
			best = i
		}
	}
	return best
}

// ArgMin is ArgMax for the smallest value.
func ArgMin(vals []float64) int {
	if len(vals) == 0 {
		return -1
	}
	best := 0
	for i := 1; i < len(vals); i++ {
		if vals[i] < vals[best] {
			best = i
		}
	}
	return best
}

// Sum adds all values.
func Sum(vals []float64) float64 {
	total := 0.0
	for _, v := range vals {
		total += v
	}
	return total
}

// Max returns the largest value, 0 for an empty slice.
func Max(vals []float64) float64 {
	if i := ArgMax(vals); i >= 0 {
		return vals[i]
	}
	return 0
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
