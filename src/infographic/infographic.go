// Package infographic mounts chart layouts into a page: it validates the
// payload and mount element, lays the chart out, renders it, writes the
// summary slots and keeps the graphic sized to the viewport.
package infographic

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/net/html"

	"github.com/wmiig/infographic/src/layout"
	"github.com/wmiig/infographic/src/logging"
	"github.com/wmiig/infographic/src/page"
	"github.com/wmiig/infographic/src/render"
)

// Mount element ids of the page template.
const (
	TopFriendsID = "top-friends-hbar-chart"
	PostTypesID  = "post-types-donut-chart"
	DailyID      = "daily-post-frequency-bar-chart"
	MonthlyID    = "monthly-post-frequency-line-chart"
	LegendID     = "post-types-list"
	TopWordsID   = "top-words"
	TopWordID    = "top-word"
)

var (
	// ErrNoMount is returned by lookups of a chart mount absent from the page.
	ErrNoMount = errors.New("mount element not found")
	// ErrUnknownChart is returned for chart names outside ChartNames.
	ErrUnknownChart = errors.New("unknown chart")
	// ErrNoPayload is returned when a bundle lacks the requested chart.
	ErrNoPayload = errors.New("no payload for chart")
)

var fingerprintSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/wmiig/infographic"))

// Context carries what every chart initializer shares. Build it once per
// page with NewContext.
type Context struct {
	Doc      *page.Document
	Viewport *page.Viewport
	Measurer layout.TextMeasurer
}

// NewContext substitutes a zero width viewport and the bitmap font measurer
// when vp or m are nil.
func NewContext(doc *page.Document, vp *page.Viewport, m layout.TextMeasurer) *Context {
	if vp == nil {
		vp = page.NewViewport(0)
	}
	if m == nil {
		m = render.BasicMeasurer{}
	}
	return &Context{Doc: doc, Viewport: vp, Measurer: m}
}

// Mount is a chart rendered into the page.
type Mount struct {
	ID          string
	Fingerprint uuid.UUID
	Layout      *layout.Layout
	SVG         *html.Node
	Ratio       float64
	Width       float64
	Height      float64

	detach func()
}

// Detach removes the mount's viewport listener. Safe on a nil mount.
func (m *Mount) Detach() {
	if m == nil || m.detach == nil {
		return
	}
	m.detach()
}

// resize sets the rendered width and derives the height from the layout's
// resize policy.
func (m *Mount) resize(width float64) {
	m.Width, m.Height = width, m.Layout.HeightFor(width, m.Ratio)
	render.SetSize(m.SVG, m.Width, m.Height)
}

// Fingerprint derives a stable id from a chart name and its payload.
func Fingerprint(chart string, payload interface{}) uuid.UUID {
	b, err := json.Marshal(payload)
	if err != nil {
		b = []byte(fmt.Sprintf("%#v", payload))
	}
	return uuid.NewSHA1(fingerprintSpace, append([]byte(chart+"\x00"), b...))
}

// hasMount reports whether id exists, logging the skip otherwise.
func (c *Context) hasMount(id string) bool {
	if c == nil || c.Doc.ElementByID(id) == nil {
		logging.Debugf("skip #%s: no mount element", id)
		return false
	}
	return true
}

// mount renders l into element id and wires its resize reaction and slots.
func (c *Context) mount(id string, l *layout.Layout, fp uuid.UUID) *Mount {
	m := &Mount{
		ID:          id,
		Fingerprint: fp,
		Layout:      l,
		SVG:         render.SVG(l),
		Ratio:       l.AspectRatio(),
		Width:       l.Width,
		Height:      l.Height,
	}
	c.Doc.Mount(id, m.SVG)
	m.detach = c.Viewport.Subscribe(func(e page.Event) {
		if e.Width > 0 {
			m.resize(e.Width)
		}
	}, page.Resize, page.OrientationChange, page.FontResize)

	// the policy applies from the first render, not only after an event
	width := c.Viewport.Width()
	if width <= 0 {
		width = l.Width
	}
	m.resize(width)

	for _, s := range l.Slots {
		c.writeSlot(s)
	}
	return m
}

func (c *Context) writeSlot(s layout.Slot) {
	if s.HTML {
		if _, err := c.Doc.SetInnerHTML(s.ID, s.Text); err != nil {
			logging.Debugf("slot #%s: %v", s.ID, err)
		}
	} else {
		c.Doc.SetText(s.ID, s.Text)
	}
	if s.Class != "" {
		c.Doc.AddClass(s.ID, s.Class)
	}
}

// legend renders the list items of a chart legend.
func legend(items []layout.LegendItem) []*html.Node {
	nodes := make([]*html.Node, 0, len(items))
	for _, it := range items {
		li := &html.Node{Type: html.ElementNode, Data: "li"}
		if it.Color != "" {
			li.Attr = []html.Attribute{{Key: "style", Val: "color: " + it.Color}}
		}
		span := &html.Node{Type: html.ElementNode, Data: "span", Attr: []html.Attribute{{Key: "class", Val: "description"}}}
		span.AppendChild(&html.Node{Type: html.TextNode, Data: it.Description})
		li.AppendChild(span)
		nodes = append(nodes, li)
	}
	return nodes
}
