package layout

import "math"

// TextMeasurer reports the rendered pixel width of a label at a font size.
type TextMeasurer interface {
	MeasureText(body string, fontSize float64) float64
}

// TextRun is a label whose width must be known before the final layout.
type TextRun struct {
	Body     string
	FontSize float64
}

// MaxExtent measures every run and returns the widest, rounded up to a whole
// pixel. No runs yield zero.
func MaxExtent(m TextMeasurer, runs []TextRun) float64 {
	max := 0.0
	for _, r := range runs {
		w := math.Ceil(m.MeasureText(r.Body, r.FontSize))
		if w > max {
			max = w
		}
	}
	return max
}
