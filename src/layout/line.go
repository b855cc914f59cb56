package layout

import (
	"github.com/wmiig/infographic/src/scale"
	"github.com/wmiig/infographic/src/types"
)

const (
	monthlyWidth          = 580
	monthlyHeight         = 380
	monthlyMarginBottom   = 60
	monthlyMarginLeft     = 70
	monthlyMarginTop      = 15
	monthlyLineWidth      = 3
	monthlyAxisOffsetLeft = 1
	monthlyTickLength     = 25
	monthlyTickLabelDX    = 30
	monthlyLabelPivot     = 7
	monthlyFixedHeight    = 600
	monthlyXTickCount     = 12
)

// MonthlyPostFrequency lays out a single polyline through the points in input
// order, with month labels along the bottom. The horizontal domain is
// [0, max x]; the vertical one [0, max value * Headroom].
func MonthlyPostFrequency(d *types.MonthlyFrequencyData) *Layout {
	pts := d.Frequency
	xs := make([]float64, len(pts))
	vals := make([]float64, len(pts))
	for i, p := range pts {
		xs[i] = float64(p.X)
		vals[i] = p.Value
	}
	x := scale.NewLinear(Max(xs), 0, monthlyWidth)
	y := scale.WithHeadroom(Max(vals), monthlyHeight, 0)

	l := &Layout{
		Chart:  ChartMonthly,
		Class:  "monthly-post-frequency",
		Width:  monthlyWidth + monthlyMarginLeft,
		Height: monthlyHeight + monthlyMarginTop + monthlyMarginBottom,
		Resize: ResizePolicy{Mode: ResizeFixed, FixedHeight: monthlyFixedHeight},
		X:      x,
		Y:      y,
	}
	const ox, oy = monthlyMarginLeft, monthlyMarginTop

	for _, v := range y.Ticks(yTickCount) {
		ty := oy + y.Map(v)
		l.Primitives = append(l.Primitives,
			Line{Class: "grid-line", X1: ox, Y1: ty, X2: ox + monthlyWidth, Y2: ty, Stroke: gridColor, Index: Decoration},
			Text{
				Class: "y-axis label", X: ox - axisTickSize - axisTickPadding - monthlyTickLabelDX, Y: ty, DY: ".32em",
				Body: FormatOneDecimal(v), FontSize: axisFontSize, Anchor: "end", Index: Decoration,
			},
		)
	}

	// month axis: ticks grow upwards, labels read bottom to top
	axisY := float64(oy + monthlyHeight + monthlyMarginBottom)
	for i, v := range x.Ticks(monthlyXTickCount) {
		tx := ox - monthlyAxisOffsetLeft + x.Map(v)
		l.Primitives = append(l.Primitives,
			Line{Class: "x-axis tick", X1: tx, Y1: axisY, X2: tx, Y2: axisY - monthlyTickLength, Index: Decoration},
			Text{
				Class: "x-axis label", X: tx - monthlyLabelPivot - axisTickSize - axisTickPadding - monthlyLabelPivot,
				Y: axisY, Body: MonthTickLabel(i), FontSize: axisFontSize, Anchor: "start", Rotate: -90, Index: Decoration,
			},
		)
	}

	if len(pts) > 0 {
		path := Path{Class: "line", Stroke: d.Color, StrokeWidth: monthlyLineWidth, Index: 0}
		for i := range pts {
			path.Points = append(path.Points, Point{X: ox + x.Map(xs[i]), Y: oy + y.Map(vals[i])})
		}
		l.Primitives = append(l.Primitives, path)

		l.Slots = []Slot{
			{ID: "highest-monthly-month", Text: MonthName(ArgMax(vals))},
			{ID: "monthly-average", Text: FormatOneDecimal(Sum(vals) / 12)},
		}
	}
	return l
}
