package layout

import (
	"math"

	"github.com/wmiig/infographic/src/scale"
	"github.com/wmiig/infographic/src/types"
)

const (
	dailyWidth          = 600
	dailyHeight         = 380
	dailyMarginBottom   = 35
	dailyMarginLeft     = 39
	dailyMarginTop      = 15
	dailyGridOffsetLeft = 12
	dailyBandPadding    = 0.5
	gridColor           = "#aeadae"
	axisTickSize        = 6
	axisTickPadding     = 3
	axisFontSize        = 12
	yTickCount          = 10
)

var stackColors = [...]string{"#3a5897", "#ef894a"}

// Segment is one stacked piece of a record, from Y0 to Y1 in data units.
type Segment struct {
	Key    string
	Y0, Y1 float64
}

// Stack accumulates the sub-values of r in keys order, rounding each running
// total to two decimals. Missing values count as zero.
func Stack(r types.DailyRecord, keys []string) []Segment {
	segs := make([]Segment, 0, len(keys))
	y0 := 0.0
	for _, k := range keys {
		v := r.Value(k)
		if math.IsNaN(v) {
			v = 0
		}
		y1 := round2(y0 + v)
		segs = append(segs, Segment{Key: k, Y0: y0, Y1: y1})
		y0 = y1
	}
	return segs
}

// StackTotal is the top of the last segment, 0 when there are none.
func StackTotal(segs []Segment) float64 {
	if len(segs) == 0 {
		return 0
	}
	return segs[len(segs)-1].Y1
}

// DailyPostFrequency lays out one stacked column per day. Segment keys come
// from the first record. The vertical domain is [0, max total * Headroom].
func DailyPostFrequency(d *types.DailyFrequencyData) *Layout {
	recs := d.Frequency
	var keys []string
	if len(recs) > 0 {
		keys = recs[0].Keys
	}
	days := make([]string, len(recs))
	stacks := make([][]Segment, len(recs))
	totals := make([]float64, len(recs))
	for i, r := range recs {
		days[i] = r.DayOfWeek
		stacks[i] = Stack(r, keys)
		totals[i] = StackTotal(stacks[i])
	}

	x := scale.NewBand(days, 0, dailyWidth, dailyBandPadding, true)
	y := scale.WithHeadroom(Max(totals), dailyHeight, 0).Rounded()

	l := &Layout{
		Chart:  ChartDaily,
		Class:  "daily-post-frequency",
		Width:  dailyWidth + dailyMarginLeft,
		Height: dailyHeight + dailyMarginTop + dailyMarginBottom,
		Resize: ResizePolicy{Mode: ResizeRatio},
		Y:      y,
	}
	const ox, oy = dailyMarginLeft, dailyMarginTop

	// horizontal axis, sitting below the plot
	axisY := oy + dailyHeight + dailyMarginBottom/4.0
	l.Primitives = append(l.Primitives, Line{Class: "x-axis domain", X1: ox, Y1: axisY, X2: ox + dailyWidth, Y2: axisY, Index: Decoration})
	for _, day := range x.Keys() {
		cx, _ := x.Center(day)
		l.Primitives = append(l.Primitives,
			Line{Class: "x-axis tick", X1: ox + cx, Y1: axisY, X2: ox + cx, Y2: axisY + axisTickSize, Index: Decoration},
			Text{
				Class: "x-axis label", X: ox + cx, Y: axisY + axisTickSize + axisTickPadding, DY: ".71em",
				Body: day, FontSize: axisFontSize, Anchor: "middle", Index: Decoration,
			},
		)
	}

	// vertical axis with grid lines
	for _, v := range y.Ticks(yTickCount) {
		ty := oy + y.Map(v)
		l.Primitives = append(l.Primitives,
			Line{Class: "grid-line", X1: ox + dailyGridOffsetLeft, Y1: ty, X2: ox + dailyWidth, Y2: ty, Stroke: gridColor, Index: Decoration},
			Line{Class: "y-axis tick", X1: ox - axisTickSize, Y1: ty, X2: ox, Y2: ty, Index: Decoration},
			Text{
				Class: "y-axis label", X: ox - axisTickSize - axisTickPadding, Y: ty, DY: ".32em",
				Body: FormatInteger(v), FontSize: axisFontSize, Anchor: "end", Index: Decoration,
			},
		)
	}

	for i, segs := range stacks {
		bx, _ := x.Map(days[i])
		for j, s := range segs {
			top, bottom := y.Map(s.Y1), y.Map(s.Y0)
			l.Primitives = append(l.Primitives, Rect{
				Class: "bar", X: ox + bx, Y: oy + top, W: x.Bandwidth(), H: bottom - top,
				Fill: stackColors[j%len(stackColors)], Index: i,
			})
		}
	}

	if hi, lo := ArgMax(totals), ArgMin(totals); hi >= 0 {
		l.Slots = []Slot{
			{ID: "highest-daily-value", Text: FormatPlain(totals[hi])},
			{ID: "highest-daily-day", Text: PluralDay(days[hi])},
			{ID: "lowest-daily-value", Text: FormatPlain(totals[lo])},
			{ID: "lowest-daily-day", Text: PluralDay(days[lo])},
		}
	}
	return l
}

var pluralDays = map[string]string{
	"Mon": "Mondays",
	"Tue": "Tuesdays",
	"Wed": "Wednesdays",
	"Thu": "Thursdays",
	"Fri": "Fridays",
	"Sat": "Saturdays",
	"Sun": "Sundays",
}

// PluralDay turns a short weekday name into its plural ("Tue" -> "Tuesdays").
// Other names get a trailing "s".
func PluralDay(day string) string {
	if p, ok := pluralDays[day]; ok {
		return p
	}
	return day + "s"
}
