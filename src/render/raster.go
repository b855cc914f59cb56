package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/golang/freetype/truetype"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/net/html"

	"github.com/wmiig/infographic/src/layout"
)

// pointDPI makes one font point equal one pixel.
const pointDPI = 72

const (
	defaultFontSize  = 12
	defaultTextColor = "#333"
	avatarColor      = "#dddddd"
	arcSegmentRad    = math.Pi / 90
)

// Format selects the export file type.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// ParseFormat accepts "png" and "svg".
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatPNG, FormatSVG:
		return f, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// parseColor converts a CSS colour. Empty, "none" and malformed hex values
// report false.
func parseColor(s string) (drawing.Color, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "none" {
		return drawing.Color{}, false
	}
	if strings.HasPrefix(s, "#") && len(s) != 4 && len(s) != 7 {
		return drawing.Color{}, false
	}
	return drawing.ParseColor(s), true
}

type painter struct {
	r      chart.Renderer
	font   *truetype.Font
	sc     float64
	escape bool
}

func (p *painter) px(v float64) int { return int(math.Round(v * p.sc)) }

// Raster paints l onto a fresh go-chart renderer of the given pixel width.
// The height follows the viewBox aspect.
func Raster(l *layout.Layout, f Format, width int) (chart.Renderer, error) {
	if width <= 0 {
		width = int(l.Width)
	}
	sc := float64(width) / l.Width
	height := int(math.Ceil(l.Height * sc))
	if height <= 0 {
		height = 1
	}

	provider := chart.PNG
	if f == FormatSVG {
		provider = chart.SVG
	}
	r, err := provider(width, height)
	if err != nil {
		return nil, fmt.Errorf("create %s renderer: %w", f, err)
	}
	fnt, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("load default font: %w", err)
	}
	r.SetDPI(pointDPI)
	p := &painter{r: r, font: fnt, sc: sc, escape: f == FormatSVG}

	p.background(width, height)
	for _, prim := range l.Primitives {
		p.primitive(prim)
	}
	return r, nil
}

func (p *painter) background(w, h int) {
	p.r.ResetStyle()
	p.r.SetFillColor(drawing.ColorWhite)
	p.r.MoveTo(0, 0)
	p.r.LineTo(w, 0)
	p.r.LineTo(w, h)
	p.r.LineTo(0, h)
	p.r.Close()
	p.r.Fill()
}

func (p *painter) primitive(prim layout.Primitive) {
	p.r.ResetStyle()
	switch v := prim.(type) {
	case layout.Rect:
		c, ok := parseColor(v.Fill)
		if !ok || v.W <= 0 || v.H <= 0 {
			return
		}
		p.r.SetFillColor(c)
		p.polygon([]layout.Point{{X: v.X, Y: v.Y}, {X: v.X + v.W, Y: v.Y}, {X: v.X + v.W, Y: v.Y + v.H}, {X: v.X, Y: v.Y + v.H}})
		p.r.Fill()
	case layout.Circle:
		p.circle(v)
	case layout.Arc:
		c, ok := parseColor(v.Fill)
		if !ok || v.End <= v.Start {
			return
		}
		p.r.SetFillColor(c)
		p.polygon(arcOutline(v))
		p.r.Fill()
	case layout.Path:
		if len(v.Points) < 2 {
			return
		}
		p.stroke(v.Stroke, v.StrokeWidth, "")
		p.r.MoveTo(p.px(v.Points[0].X), p.px(v.Points[0].Y))
		for _, pt := range v.Points[1:] {
			p.r.LineTo(p.px(pt.X), p.px(pt.Y))
		}
		p.r.Stroke()
	case layout.Line:
		p.stroke(v.Stroke, 1, "")
		p.r.MoveTo(p.px(v.X1), p.px(v.Y1))
		p.r.LineTo(p.px(v.X2), p.px(v.Y2))
		p.r.Stroke()
	case layout.Text:
		p.text(v)
	}
}

func (p *painter) stroke(col string, width float64, dash string) {
	c, ok := parseColor(col)
	if !ok {
		c = drawing.ColorBlack
	}
	if width <= 0 {
		width = 1
	}
	p.r.SetStrokeColor(c)
	p.r.SetStrokeWidth(width * p.sc)
	if dash != "" {
		p.r.SetStrokeDashArray(p.dashes(dash))
	}
}

func (p *painter) dashes(dash string) []float64 {
	var out []float64
	for _, f := range strings.FieldsFunc(dash, func(r rune) bool { return r == ',' || r == ' ' }) {
		if v, err := strconv.ParseFloat(f, 64); err == nil {
			out = append(out, v*p.sc)
		}
	}
	return out
}

func (p *painter) circle(v layout.Circle) {
	outline := make([]layout.Point, 0, 180)
	for a := 0.0; a < 2*math.Pi; a += arcSegmentRad {
		outline = append(outline, layout.Point{X: v.CX + v.R*math.Sin(a), Y: v.CY - v.R*math.Cos(a)})
	}
	fill := v.Fill
	if v.PatternID != "" {
		fill = avatarColor
	}
	if c, ok := parseColor(fill); ok {
		p.r.SetFillColor(c)
		p.polygon(outline)
		p.r.Fill()
	}
	if v.Stroke != "" {
		p.r.ResetStyle()
		p.stroke(v.Stroke, v.StrokeWidth, v.Dash)
		p.polygon(outline)
		p.r.Stroke()
	}
}

func (p *painter) polygon(pts []layout.Point) {
	for i, pt := range pts {
		if i == 0 {
			p.r.MoveTo(p.px(pt.X), p.px(pt.Y))
			continue
		}
		p.r.LineTo(p.px(pt.X), p.px(pt.Y))
	}
	p.r.Close()
}

// arcOutline tessellates an annular sector: the outer edge clockwise, then
// the inner edge back.
func arcOutline(a layout.Arc) []layout.Point {
	n := int(math.Ceil((a.End-a.Start)/arcSegmentRad)) + 1
	pts := make([]layout.Point, 0, 2*n)
	for i := 0; i < n; i++ {
		t := a.Start + (a.End-a.Start)*float64(i)/float64(n-1)
		pts = append(pts, layout.Point{X: a.CX + a.Outer*math.Sin(t), Y: a.CY - a.Outer*math.Cos(t)})
	}
	for i := n - 1; i >= 0; i-- {
		t := a.Start + (a.End-a.Start)*float64(i)/float64(n-1)
		pts = append(pts, layout.Point{X: a.CX + a.Inner*math.Sin(t), Y: a.CY - a.Inner*math.Cos(t)})
	}
	return pts
}

// emOffset converts a "0.35em" style offset to a multiple of the font size.
func emOffset(dy string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(dy), "em"), 64)
	if err != nil {
		return 0
	}
	return v
}

func (p *painter) text(t layout.Text) {
	if t.Body == "" {
		return
	}
	size := t.FontSize
	if size <= 0 {
		size = defaultFontSize
	}
	c, ok := parseColor(t.Fill)
	if !ok {
		c, _ = parseColor(defaultTextColor)
	}
	p.r.SetFont(p.font)
	p.r.SetFontSize(size * p.sc)
	p.r.SetFontColor(c)

	x := t.X * p.sc
	y := (t.Y + emOffset(t.DY)*size) * p.sc
	body := t.Body
	if p.escape {
		body = html.EscapeString(body)
	}
	if t.Rotate != 0 {
		p.r.SetTextRotation(t.Rotate * math.Pi / 180)
		p.r.Text(body, int(math.Round(x)), int(math.Round(y)))
		p.r.ClearTextRotation()
		return
	}
	w := float64(p.r.MeasureText(t.Body).Width())
	switch t.Anchor {
	case "middle":
		x -= w / 2
	case "end":
		x -= w
	}
	p.r.Text(body, int(math.Round(x)), int(math.Round(y)))
}

// rgbaCollector receives the bitmap of a raster renderer on Save.
type rgbaCollector struct{ img *image.RGBA }

func (c *rgbaCollector) SetRGBA(i *image.RGBA) { c.img = i }
func (c *rgbaCollector) Write(p []byte) (int, error) {
	return 0, errors.New("rgba collector does not accept bytes")
}

// Export writes l in format f at the given pixel width. PNG files carry the
// chart name as a small caption in the bottom left corner.
func Export(w io.Writer, l *layout.Layout, f Format, width int) error {
	r, err := Raster(l, f, width)
	if err != nil {
		return err
	}
	if f == FormatSVG {
		return r.Save(w)
	}
	col := &rgbaCollector{}
	if err := r.Save(col); err != nil {
		return fmt.Errorf("collect bitmap: %w", err)
	}
	if col.img == nil {
		return errors.New("raster renderer produced no bitmap")
	}
	caption(col.img, l.Chart)
	var buf bytes.Buffer
	if err := png.Encode(&buf, col.img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	_, err = buf.WriteTo(w)
	return err
}

// ExportPNG is Export with FormatPNG at the viewBox width.
func ExportPNG(w io.Writer, l *layout.Layout) error {
	return Export(w, l, FormatPNG, int(l.Width))
}

func caption(img *image.RGBA, text string) {
	b := img.Bounds()
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xff}),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(b.Min.X+4, b.Max.Y-4),
	}
	d.DrawString(text)
}
