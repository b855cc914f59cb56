// Package layout turns chart payloads into ordered sequences of visual
// primitives. Every function here is pure: identical input yields identical
// primitives, so the rendering adapters and the tests can rely on exact
// coordinates.
package layout

import (
	"math"

	"github.com/wmiig/infographic/src/scale"
)

// Decoration is the source index of primitives not bound to a record.
const Decoration = -1

// Point is an absolute chart coordinate.
type Point struct{ X, Y float64 }

// Primitive is one drawable element. Source reports the index of the record
// it was derived from, or Decoration.
type Primitive interface {
	Source() int
}

// Rect is an axis aligned filled rectangle.
type Rect struct {
	Class      string
	X, Y, W, H float64
	Fill       string
	Index      int
}

// Circle is a filled and/or stroked circle. A non-empty PatternID fills it
// with the image pattern of that id instead of Fill.
type Circle struct {
	Class       string
	CX, CY, R   float64
	Fill        string
	PatternID   string
	Stroke      string
	StrokeWidth float64
	Dash        string
	Index       int
}

// Text is a single label. Rotate is in degrees around (X, Y).
type Text struct {
	Class    string
	X, Y     float64
	DY       string
	Body     string
	FontSize float64
	Fill     string
	Anchor   string
	Rotate   float64
	Index    int
}

// Arc is an annular sector around (CX, CY). Angles are radians measured
// clockwise from twelve o'clock, rotation offset already applied.
type Arc struct {
	Class        string
	CX, CY       float64
	Inner, Outer float64
	Start, End   float64
	Fill         string
	Index        int
}

// Path is an open polyline through Points.
type Path struct {
	Class       string
	Points      []Point
	Stroke      string
	StrokeWidth float64
	Index       int
}

// Line is a single stroked segment.
type Line struct {
	Class          string
	X1, Y1, X2, Y2 float64
	Stroke         string
	Index          int
}

// Pattern is an image pattern definition referenced by Circle.PatternID.
type Pattern struct {
	ID         string
	X, Y, W, H float64
	Href       string
	Index      int
}

func (p Rect) Source() int    { return p.Index }
func (p Circle) Source() int  { return p.Index }
func (p Text) Source() int    { return p.Index }
func (p Arc) Source() int     { return p.Index }
func (p Path) Source() int    { return p.Index }
func (p Line) Source() int    { return p.Index }
func (p Pattern) Source() int { return p.Index }

// Slot is a named text location outside the graphic.
type Slot struct {
	ID    string
	Text  string
	Class string // added to the element when non-empty
	HTML  bool   // Text is markup rather than plain text
}

// LegendItem is one entry of a list legend rendered next to a chart.
type LegendItem struct {
	Color       string
	Description string
}

// ResizeMode selects how a mounted chart reacts to viewport changes.
type ResizeMode int

const (
	// ResizeRatio keeps the aspect ratio captured at first render.
	ResizeRatio ResizeMode = iota
	// ResizeFixed pins the height to a constant.
	ResizeFixed
)

// ResizePolicy is the viewport reaction of a chart.
type ResizePolicy struct {
	Mode        ResizeMode
	FixedHeight float64
}

// Layout is the complete, renderer independent description of one chart.
type Layout struct {
	Chart      string
	Class      string
	Width      float64
	Height     float64
	Patterns   []Pattern
	Primitives []Primitive
	Legend     []LegendItem
	Slots      []Slot
	Resize     ResizePolicy
	X, Y       scale.Linear
}

// Box is an axis aligned bounding box.
type Box struct{ MinX, MinY, MaxX, MaxY float64 }

// W is the box width.
func (b Box) W() float64 { return b.MaxX - b.MinX }

// H is the box height.
func (b Box) H() float64 { return b.MaxY - b.MinY }

// Bounds returns the geometric extent of the primitives. Text contributes
// its anchor point only.
func Bounds(prims []Primitive) Box {
	b := Box{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	add := func(x, y float64) {
		b.MinX = math.Min(b.MinX, x)
		b.MinY = math.Min(b.MinY, y)
		b.MaxX = math.Max(b.MaxX, x)
		b.MaxY = math.Max(b.MaxY, y)
	}
	for _, p := range prims {
		switch v := p.(type) {
		case Rect:
			add(v.X, v.Y)
			add(v.X+v.W, v.Y+v.H)
		case Circle:
			add(v.CX-v.R, v.CY-v.R)
			add(v.CX+v.R, v.CY+v.R)
		case Text:
			add(v.X, v.Y)
		case Arc:
			add(v.CX-v.Outer, v.CY-v.Outer)
			add(v.CX+v.Outer, v.CY+v.Outer)
		case Path:
			for _, pt := range v.Points {
				add(pt.X, pt.Y)
			}
		case Line:
			add(v.X1, v.Y1)
			add(v.X2, v.Y2)
		}
	}
	if math.IsInf(b.MinX, 1) {
		return Box{}
	}
	return b
}

// AspectRatio is the content width/height ratio captured at first render.
// An empty or flat layout reports the viewBox ratio instead.
func (l *Layout) AspectRatio() float64 {
	b := Bounds(l.Primitives)
	if b.W() > 0 && b.H() > 0 {
		return b.W() / b.H()
	}
	if l.Height > 0 {
		return l.Width / l.Height
	}
	return 1
}

// HeightFor returns the rendered height for a given rendered width under the
// chart's resize policy, using the aspect ratio captured at first render.
func (l *Layout) HeightFor(width, ratio float64) float64 {
	if l.Resize.Mode == ResizeFixed {
		return l.Resize.FixedHeight
	}
	if ratio <= 0 {
		return l.Height
	}
	return width / ratio
}
