// Package scale maps data domains onto pixel ranges: affine linear scales,
// ordinal band scales and the helpers the chart layouts derive them with.
package scale

import "math"

// Headroom is the multiplier applied to the largest value so the tallest
// element keeps a visual margin below the range end.
const Headroom = 1.15

// Epsilon is the smallest domain maximum a linear scale accepts; an all-zero
// series is clamped to it so every mapped coordinate stays finite.
const Epsilon = 1e-9

// Linear is an affine mapping from Domain onto Range. With Round set every
// output is rounded to the nearest pixel (half up).
type Linear struct {
	Domain [2]float64
	Range  [2]float64
	Round  bool
}

// NewLinear returns the scale [0, max] -> [r0, r1], clamping max to Epsilon.
func NewLinear(max, r0, r1 float64) Linear {
	return Linear{Domain: [2]float64{0, ClampMax(max)}, Range: [2]float64{r0, r1}}
}

// WithHeadroom returns the scale [0, max*Headroom] -> [r0, r1].
func WithHeadroom(max, r0, r1 float64) Linear {
	return NewLinear(max*Headroom, r0, r1)
}

// ClampMax guards a domain maximum against zero (and negative) spans. NaN is
// passed through untouched.
func ClampMax(max float64) float64 {
	if max < Epsilon {
		return Epsilon
	}
	return max
}

// Rounded returns a copy of s with pixel rounding enabled.
func (s Linear) Rounded() Linear {
	s.Round = true
	return s
}

// Map converts a domain value to a range coordinate.
func (s Linear) Map(v float64) float64 {
	span := s.Domain[1] - s.Domain[0]
	if span == 0 {
		return s.Range[0]
	}
	px := s.Range[0] + (v-s.Domain[0])/span*(s.Range[1]-s.Range[0])
	if s.Round {
		return roundHalfUp(px)
	}
	return px
}

// Invert converts a range coordinate back to its domain value.
func (s Linear) Invert(px float64) float64 {
	span := s.Range[1] - s.Range[0]
	if span == 0 {
		return s.Domain[0]
	}
	return s.Domain[0] + (px-s.Range[0])/span*(s.Domain[1]-s.Domain[0])
}

// Ticks returns roughly n evenly spaced, human friendly values covering the
// domain. The step is a power of ten times 1, 2 or 5.
func (s Linear) Ticks(n int) []float64 {
	if n <= 0 {
		n = 10
	}
	lo, hi := s.Domain[0], s.Domain[1]
	if hi < lo {
		lo, hi = hi, lo
	}
	span := hi - lo
	if math.IsNaN(span) || math.IsInf(span, 0) {
		return nil
	}
	if span <= Epsilon {
		return []float64{lo}
	}
	step := math.Pow(10, math.Floor(math.Log10(span/float64(n))))
	errRatio := float64(n) / span * step
	switch {
	case errRatio <= 0.15:
		step *= 10
	case errRatio <= 0.35:
		step *= 5
	case errRatio <= 0.75:
		step *= 2
	}
	start := math.Ceil(lo/step) * step
	stop := math.Floor(hi/step)*step + step*0.5

	// integer scaling keeps 0.1-style steps free of accumulated float noise
	k := 1.0
	for math.Abs(step*k-math.Round(step*k)) > 1e-9 && k < 1e12 {
		k *= 10
	}
	var ticks []float64
	for i := 0; ; i++ {
		v := (start*k + float64(i)*step*k) / k
		if v >= stop {
			break
		}
		ticks = append(ticks, v)
	}
	return ticks
}

// MinConstantWidth is the lower bound of a derived-width range: the widest
// measured label extents plus the fixed offsets that precede and separate them.
func MinConstantWidth(extents []float64, offsets ...float64) float64 {
	total := 0.0
	for _, e := range extents {
		total += e
	}
	for _, o := range offsets {
		total += o
	}
	return total
}

// roundHalfUp matches browser rounding: halves go towards +Inf.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
