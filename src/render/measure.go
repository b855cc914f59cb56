package render

import (
	"fmt"
	"sync"

	"github.com/wcharczuk/go-chart/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

const basicFaceHeight = 13

// BasicMeasurer measures text with the fixed 7x13 bitmap face scaled to the
// requested size. It needs no font file and is fully deterministic.
type BasicMeasurer struct{}

// MeasureText implements layout.TextMeasurer.
func (BasicMeasurer) MeasureText(body string, fontSize float64) float64 {
	adv := font.MeasureString(basicfont.Face7x13, body)
	return float64(adv) / 64 * fontSize / basicFaceHeight
}

// TrueTypeMeasurer measures text with go-chart's bundled Roboto face.
type TrueTypeMeasurer struct {
	mu sync.Mutex
	r  chart.Renderer
}

// NewTrueTypeMeasurer loads the default font into an off-screen renderer.
func NewTrueTypeMeasurer() (*TrueTypeMeasurer, error) {
	f, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("load default font: %w", err)
	}
	r, err := chart.SVG(1, 1)
	if err != nil {
		return nil, fmt.Errorf("measure renderer: %w", err)
	}
	r.SetDPI(pointDPI)
	r.SetFont(f)
	return &TrueTypeMeasurer{r: r}, nil
}

// MeasureText implements layout.TextMeasurer.
func (m *TrueTypeMeasurer) MeasureText(body string, fontSize float64) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.r.SetFontSize(fontSize)
	return float64(m.r.MeasureText(body).Width())
}
