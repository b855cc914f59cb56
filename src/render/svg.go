// Package render turns chart layouts into output: an SVG element tree for
// the page, and raster or vector files painted through go-chart.
package render

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/wmiig/infographic/src/layout"
)

const (
	svgNS   = "http://www.w3.org/2000/svg"
	xlinkNS = "http://www.w3.org/1999/xlink"
)

// num renders a coordinate with at most three decimals.
func num(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		v = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// element builds a node from alternating attribute keys and values. Empty
// values are skipped.
func element(tag string, kv ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] == "" {
			continue
		}
		n.Attr = append(n.Attr, html.Attribute{Key: kv[i], Val: kv[i+1]})
	}
	return n
}

func indexAttr(i int) string {
	if i == layout.Decoration {
		return ""
	}
	return strconv.Itoa(i)
}

// SVG builds the <svg> element for l, sized to its viewBox.
func SVG(l *layout.Layout) *html.Node {
	root := element("svg",
		"class", l.Class,
		"width", num(l.Width),
		"height", num(l.Height),
		"viewBox", fmt.Sprintf("0 0 %s %s", num(l.Width), num(l.Height)),
		"preserveAspectRatio", "xMinYMin meet",
	)
	if len(l.Patterns) > 0 {
		defs := element("defs")
		for _, p := range l.Patterns {
			pat := element("pattern",
				"id", p.ID,
				"patternUnits", "userSpaceOnUse",
				"x", num(p.X), "y", num(p.Y),
				"width", num(p.W), "height", num(p.H),
			)
			img := element("image", "width", num(p.W), "height", num(p.H))
			img.Attr = append(img.Attr, html.Attribute{Namespace: "xlink", Key: "href", Val: p.Href})
			pat.AppendChild(img)
			defs.AppendChild(pat)
		}
		root.AppendChild(defs)
	}
	g := element("g", "class", l.Chart)
	for _, p := range l.Primitives {
		if n := primitiveNode(p); n != nil {
			g.AppendChild(n)
		}
	}
	root.AppendChild(g)
	return root
}

func primitiveNode(p layout.Primitive) *html.Node {
	switch v := p.(type) {
	case layout.Rect:
		return element("rect",
			"class", v.Class, "data-index", indexAttr(v.Index),
			"x", num(v.X), "y", num(v.Y), "width", num(v.W), "height", num(v.H),
			"fill", v.Fill,
		)
	case layout.Circle:
		fill := v.Fill
		if v.PatternID != "" {
			fill = "url(#" + v.PatternID + ")"
		}
		width := ""
		if v.StrokeWidth > 0 {
			width = num(v.StrokeWidth)
		}
		return element("circle",
			"class", v.Class, "data-index", indexAttr(v.Index),
			"cx", num(v.CX), "cy", num(v.CY), "r", num(v.R),
			"fill", fill, "stroke", v.Stroke, "stroke-width", width, "stroke-dasharray", v.Dash,
		)
	case layout.Text:
		size, transform := "", ""
		if v.FontSize > 0 {
			size = num(v.FontSize) + "px"
		}
		if v.Rotate != 0 {
			transform = fmt.Sprintf("rotate(%s %s %s)", num(v.Rotate), num(v.X), num(v.Y))
		}
		n := element("text",
			"class", v.Class, "data-index", indexAttr(v.Index),
			"x", num(v.X), "y", num(v.Y), "dy", v.DY,
			"text-anchor", v.Anchor, "fill", v.Fill, "font-size", size, "transform", transform,
		)
		n.AppendChild(&html.Node{Type: html.TextNode, Data: v.Body})
		return n
	case layout.Arc:
		return element("path",
			"class", v.Class, "data-index", indexAttr(v.Index),
			"d", ArcPath(v), "fill", v.Fill,
		)
	case layout.Path:
		return element("path",
			"class", v.Class, "data-index", indexAttr(v.Index),
			"d", PolylinePath(v.Points), "fill", "none",
			"stroke", v.Stroke, "stroke-width", num(v.StrokeWidth),
		)
	case layout.Line:
		return element("line",
			"class", v.Class,
			"x1", num(v.X1), "y1", num(v.Y1), "x2", num(v.X2), "y2", num(v.Y2),
			"stroke", v.Stroke,
		)
	}
	return nil
}

// PolylinePath encodes points as an SVG path of straight segments.
func PolylinePath(pts []layout.Point) string {
	var b strings.Builder
	for i, p := range pts {
		if i == 0 {
			b.WriteString("M")
		} else {
			b.WriteString("L")
		}
		b.WriteString(num(p.X))
		b.WriteString(",")
		b.WriteString(num(p.Y))
	}
	return b.String()
}

func polar(cx, cy, r, a float64) (float64, float64) {
	return cx + r*math.Sin(a), cy - r*math.Cos(a)
}

// ArcPath encodes an annular sector. A full turn is drawn as two half rings
// so the start and end points never coincide.
func ArcPath(a layout.Arc) string {
	span := a.End - a.Start
	if span >= 2*math.Pi-1e-9 {
		ring := func(r float64, sweep int) string {
			x0, y0 := polar(a.CX, a.CY, r, a.Start)
			x1, y1 := polar(a.CX, a.CY, r, a.Start+math.Pi)
			return fmt.Sprintf("M%s,%sA%s,%s 0 1,%d %s,%sA%s,%s 0 1,%d %s,%s",
				num(x0), num(y0), num(r), num(r), sweep, num(x1), num(y1), num(r), num(r), sweep, num(x0), num(y0))
		}
		return ring(a.Outer, 1) + ring(a.Inner, 0) + "Z"
	}
	large := 0
	if span > math.Pi {
		large = 1
	}
	ox0, oy0 := polar(a.CX, a.CY, a.Outer, a.Start)
	ox1, oy1 := polar(a.CX, a.CY, a.Outer, a.End)
	ix1, iy1 := polar(a.CX, a.CY, a.Inner, a.End)
	ix0, iy0 := polar(a.CX, a.CY, a.Inner, a.Start)
	return fmt.Sprintf("M%s,%sA%s,%s 0 %d,1 %s,%sL%s,%sA%s,%s 0 %d,0 %s,%sZ",
		num(ox0), num(oy0), num(a.Outer), num(a.Outer), large, num(ox1), num(oy1),
		num(ix1), num(iy1), num(a.Inner), num(a.Inner), large, num(ix0), num(iy0))
}

// SetSize updates the rendered size of an svg element built by SVG.
func SetSize(svg *html.Node, width, height float64) {
	setAttr(svg, "width", num(width))
	setAttr(svg, "height", num(height))
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key && n.Attr[i].Namespace == "" {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// WriteSVG writes l as a standalone SVG document.
func WriteSVG(w io.Writer, l *layout.Layout) error {
	root := SVG(l)
	root.Attr = append([]html.Attribute{
		{Key: "xmlns", Val: svgNS},
		{Namespace: "xmlns", Key: "xlink", Val: xlinkNS},
	}, root.Attr...)
	if err := html.Render(w, root); err != nil {
		return fmt.Errorf("render svg: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}
