package infographic

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wmiig/infographic/src/layout"
	"github.com/wmiig/infographic/src/logging"
	"github.com/wmiig/infographic/src/render"
	"github.com/wmiig/infographic/src/types"
)

// InitTopFriendsChart renders the top friends bars into TopFriendsID. A nil
// payload or a missing mount yields nil and leaves the page untouched.
func (c *Context) InitTopFriendsChart(d *types.TopFriendsData) *Mount {
	if d == nil {
		logging.Debugf("skip %s: no payload", layout.ChartTopFriends)
		return nil
	}
	if !c.hasMount(TopFriendsID) {
		return nil
	}
	p := layout.ProvisionalTopFriends(d)
	l := layout.TopFriends(p, p.Measure(c.Measurer))
	return c.mount(TopFriendsID, l, Fingerprint(l.Chart, d))
}

// InitPostTypesChart renders the post types donut into PostTypesID and its
// legend into LegendID when the page has one.
func (c *Context) InitPostTypesChart(d *types.PostTypesData) *Mount {
	if d == nil {
		logging.Debugf("skip %s: no payload", layout.ChartPostTypes)
		return nil
	}
	if !c.hasMount(PostTypesID) {
		return nil
	}
	l := layout.PostTypes(d)
	m := c.mount(PostTypesID, l, Fingerprint(l.Chart, d))
	c.Doc.Replace(LegendID, legend(l.Legend)...)
	return m
}

// InitDailyPostFrequencyChart renders the stacked weekday columns into DailyID.
func (c *Context) InitDailyPostFrequencyChart(d *types.DailyFrequencyData) *Mount {
	if d == nil {
		logging.Debugf("skip %s: no payload", layout.ChartDaily)
		return nil
	}
	if !c.hasMount(DailyID) {
		return nil
	}
	l := layout.DailyPostFrequency(d)
	return c.mount(DailyID, l, Fingerprint(l.Chart, d))
}

// InitMonthlyPostFrequencyChart renders the monthly line into MonthlyID.
func (c *Context) InitMonthlyPostFrequencyChart(d *types.MonthlyFrequencyData) *Mount {
	if d == nil {
		logging.Debugf("skip %s: no payload", layout.ChartMonthly)
		return nil
	}
	if !c.hasMount(MonthlyID) {
		return nil
	}
	l := layout.MonthlyPostFrequency(d)
	return c.mount(MonthlyID, l, Fingerprint(l.Chart, d))
}

// InitWordChart writes the word cloud markup and the quoted top word. It
// reports whether anything was written.
func (c *Context) InitWordChart(d *types.TopWordsData) bool {
	if d == nil || c == nil {
		logging.Debugf("skip top words: no payload")
		return false
	}
	ok, err := c.Doc.SetInnerHTML(TopWordsID, d.HTML)
	if err != nil {
		logging.Debugf("top words: %v", err)
	}
	if c.Doc.SetText(TopWordID, `"`+d.TopWord+`"`) {
		ok = true
	}
	return ok
}

// Require checks that every id is present in the page.
func (c *Context) Require(ids ...string) error {
	var missing []string
	for _, id := range ids {
		if c.Doc.ElementByID(id) == nil {
			missing = append(missing, "#"+id)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrNoMount, strings.Join(missing, ", "))
	}
	return nil
}

// MountIDs are the chart mount ids, in InitAll order.
func MountIDs() []string {
	return []string{TopFriendsID, PostTypesID, DailyID, MonthlyID}
}

// InitAll runs every initializer against b and returns the mounted charts.
// Charts without payload or mount are simply absent from the result.
func (c *Context) InitAll(b *types.Bundle) []*Mount {
	if b == nil {
		return nil
	}
	var mounts []*Mount
	for _, m := range []*Mount{
		c.InitTopFriendsChart(b.TopFriends),
		c.InitPostTypesChart(b.PostTypes),
		c.InitDailyPostFrequencyChart(b.DailyPostFrequency),
		c.InitMonthlyPostFrequencyChart(b.MonthlyPostFrequency),
	} {
		if m != nil {
			mounts = append(mounts, m)
		}
	}
	c.InitWordChart(b.TopWords)
	return mounts
}

var builders = map[string]func(*types.Bundle, layout.TextMeasurer) *layout.Layout{
	layout.ChartTopFriends: func(b *types.Bundle, m layout.TextMeasurer) *layout.Layout {
		if b.TopFriends == nil {
			return nil
		}
		p := layout.ProvisionalTopFriends(b.TopFriends)
		return layout.TopFriends(p, p.Measure(m))
	},
	layout.ChartPostTypes: func(b *types.Bundle, _ layout.TextMeasurer) *layout.Layout {
		if b.PostTypes == nil {
			return nil
		}
		return layout.PostTypes(b.PostTypes)
	},
	layout.ChartDaily: func(b *types.Bundle, _ layout.TextMeasurer) *layout.Layout {
		if b.DailyPostFrequency == nil {
			return nil
		}
		return layout.DailyPostFrequency(b.DailyPostFrequency)
	},
	layout.ChartMonthly: func(b *types.Bundle, _ layout.TextMeasurer) *layout.Layout {
		if b.MonthlyPostFrequency == nil {
			return nil
		}
		return layout.MonthlyPostFrequency(b.MonthlyPostFrequency)
	},
}

var chartAliases = map[string]string{
	"daily":   layout.ChartDaily,
	"monthly": layout.ChartMonthly,
}

// ChartNames lists the charts BuildLayout accepts, sorted.
func ChartNames() []string {
	names := make([]string, 0, len(builders))
	for n := range builders {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// BuildLayout lays out a single chart of b without a page. Short names
// "daily" and "monthly" are accepted.
func BuildLayout(b *types.Bundle, chart string, m layout.TextMeasurer) (*layout.Layout, error) {
	if full, ok := chartAliases[chart]; ok {
		chart = full
	}
	build, ok := builders[chart]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownChart, chart)
	}
	if b == nil {
		return nil, fmt.Errorf("%s: %w", chart, ErrNoPayload)
	}
	if m == nil {
		m = render.BasicMeasurer{}
	}
	l := build(b, m)
	if l == nil {
		return nil, fmt.Errorf("%s: %w", chart, ErrNoPayload)
	}
	return l, nil
}
