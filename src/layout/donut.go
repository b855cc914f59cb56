package layout

import (
	"math"

	"github.com/wmiig/infographic/src/scale"
	"github.com/wmiig/infographic/src/types"
)

const (
	donutSize        = 700
	donutRadius      = 279
	donutOuter       = 246
	donutInner       = 149
	donutLabelOffset = 120
	donutRotationDeg = 25
	donutLabelDX     = 10
	donutFixedHeight = 600
	ringColor        = "#ccc"
	ringWidth        = 2
	middleRingOffset = 18
	middleRingColor  = "#3a5897"
	middleRingWidth  = 3
	middleRingDash   = "7, 7"
	donutLabelRadius = (donutInner+donutOuter)/2.0 + donutLabelOffset
	degreesPerRadian = 180 / math.Pi
	donutRotationRad = donutRotationDeg / degreesPerRadian
)

// LabelOrientation returns the horizontal nudge and text anchor of an upright
// label at the sector midpoint mid. Sectors whose midpoint is below pi flip
// the other way.
func LabelOrientation(mid float64) (dx float64, anchor string) {
	if mid < math.Pi {
		return -donutLabelDX, "start"
	}
	return donutLabelDX, "end"
}

// PostTypes lays out a donut with one sector per post type in input order,
// the whole ring rotated by 25 degrees. Sector spans add up to a full turn
// whenever the values sum to a positive number.
func PostTypes(d *types.PostTypesData) *Layout {
	l := &Layout{
		Chart:  ChartPostTypes,
		Class:  "post-types",
		Width:  donutSize,
		Height: donutSize,
		Resize: ResizePolicy{Mode: ResizeFixed, FixedHeight: donutFixedHeight},
	}
	const c = donutSize / 2.0
	l.Primitives = append(l.Primitives,
		Circle{Class: "ring", CX: c, CY: c, R: donutRadius, Fill: "none", Stroke: ringColor, StrokeWidth: ringWidth, Index: Decoration},
		Circle{
			Class: "ring-dashed", CX: c, CY: c, R: donutRadius - middleRingOffset, Fill: "none",
			Stroke: middleRingColor, StrokeWidth: middleRingWidth, Dash: middleRingDash, Index: Decoration,
		},
	)

	vals := make([]float64, len(d.Types))
	for i, t := range d.Types {
		vals[i] = t.Value
	}
	sum := Sum(vals)
	k := 2 * math.Pi / scale.ClampMax(sum)

	a := 0.0
	for i, t := range d.Types {
		start, end := a, a+t.Value*k
		a = end
		l.Primitives = append(l.Primitives, Arc{
			Class: "arc", CX: c, CY: c, Inner: donutInner, Outer: donutOuter,
			Start: start + donutRotationRad, End: end + donutRotationRad,
			Fill: t.Color, Index: i,
		})

		mid := (start + end) / 2
		dx, anchor := LabelOrientation(mid)
		ax := c + donutLabelRadius*math.Sin(mid+donutRotationRad)
		ay := c - donutLabelRadius*math.Cos(mid+donutRotationRad)
		l.Primitives = append(l.Primitives, Text{
			Class: "type-label", X: ax + dx, Y: ay, DY: ".35em",
			Body: FormatPlain(t.Value), Fill: t.Color, Anchor: anchor, Index: i,
		})
		l.Legend = append(l.Legend, LegendItem{Color: t.Color, Description: t.Description})
	}

	if top := ArgMax(vals); top >= 0 {
		t := d.Types[top]
		pct := t.Value * 100 / scale.ClampMax(sum)
		l.Slots = []Slot{
			{ID: "most-frequent-post-percentage", Text: FormatOneDecimal(pct) + "%", Class: t.ColorClass},
			{ID: "most-frequent-post-type", Text: t.ShortName, Class: t.ColorClass},
		}
	}
	return l
}
