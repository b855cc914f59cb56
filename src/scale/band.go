package scale

import "math"

// Band maps an ordered set of category keys onto evenly spaced bands.
type Band struct {
	keys      []string
	index     map[string]int
	start     float64
	step      float64
	bandwidth float64
}

// NewBand lays len(distinct keys) bands across [r0, r1]. padding is the
// fraction of each step left empty between bands and is also used as the
// outer padding. With round set the step and band width are whole pixels and
// the rounding remainder is split evenly on both ends.
func NewBand(keys []string, r0, r1, padding float64, round bool) Band {
	b := Band{index: make(map[string]int, len(keys))}
	for _, k := range keys {
		if _, dup := b.index[k]; dup {
			continue
		}
		b.index[k] = len(b.keys)
		b.keys = append(b.keys, k)
	}
	n := float64(len(b.keys))
	if n == 0 {
		return b
	}
	lo, hi := r0, r1
	if hi < lo {
		lo, hi = hi, lo
	}
	slots := n - padding + 2*padding
	if round {
		b.step = math.Floor((hi - lo) / slots)
		remainder := hi - lo - (n-padding)*b.step
		b.start = lo + roundHalfUp(remainder/2)
		b.bandwidth = roundHalfUp(b.step * (1 - padding))
		return b
	}
	b.step = (hi - lo) / slots
	b.start = lo + b.step*padding
	b.bandwidth = b.step * (1 - padding)
	return b
}

// Map returns the band start for key and whether key is part of the domain.
func (b Band) Map(key string) (float64, bool) {
	i, ok := b.index[key]
	if !ok {
		return 0, false
	}
	return b.start + float64(i)*b.step, true
}

// Center returns the middle of key's band.
func (b Band) Center(key string) (float64, bool) {
	x, ok := b.Map(key)
	return x + b.bandwidth/2, ok
}

// Bandwidth is the width of every band.
func (b Band) Bandwidth() float64 { return b.bandwidth }

// Keys returns the distinct keys in input order.
func (b Band) Keys() []string { return append([]string(nil), b.keys...) }
