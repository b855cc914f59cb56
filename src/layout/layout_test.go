package layout

import (
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wmiig/infographic/src/types"
)

// halfEm measures every rune as half the font size.
type halfEm struct{}

func (halfEm) MeasureText(body string, size float64) float64 {
	return float64(len([]rune(body))) * size / 2
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func rects(l *Layout) []Rect {
	var out []Rect
	for _, p := range l.Primitives {
		if r, ok := p.(Rect); ok {
			out = append(out, r)
		}
	}
	return out
}

func texts(l *Layout, class string) []Text {
	var out []Text
	for _, p := range l.Primitives {
		if t, ok := p.(Text); ok && t.Class == class {
			out = append(out, t)
		}
	}
	return out
}

func arcs(l *Layout) []Arc {
	var out []Arc
	for _, p := range l.Primitives {
		if a, ok := p.(Arc); ok {
			out = append(out, a)
		}
	}
	return out
}

func slots(l *Layout) map[string]Slot {
	out := make(map[string]Slot, len(l.Slots))
	for _, s := range l.Slots {
		out[s.ID] = s
	}
	return out
}

func friendsFixture() *types.TopFriendsData {
	return &types.TopFriendsData{Friends: []types.Friend{
		{ImgSrc: "a.png", Likes: 10, Name: "A", Color: "#3b5998"},
		{ImgSrc: "b.png", Likes: 5, Name: "B", Color: "#5bc0bd"},
	}}
}

func buildFriends(d *types.TopFriendsData) *Layout {
	p := ProvisionalTopFriends(d)
	return TopFriends(p, p.Measure(halfEm{}))
}

func TestTopFriends_MinWidthFromMeasuredLabels(t *testing.T) {
	p := ProvisionalTopFriends(friendsFixture())
	ext := p.Measure(halfEm{})
	// "10 likes" at 22px is the widest likes label, names are 10px wide.
	if ext.Name != 10 || ext.Likes != 88 {
		t.Fatalf("extents = %+v", ext)
	}
	if got := FriendsMinWidth(ext); got != 213 {
		t.Fatalf("min width = %v, want 213", got)
	}
}

func TestTopFriends_BarsProportionalAfterHeadroom(t *testing.T) {
	l := buildFriends(friendsFixture())
	rs := rects(l)
	if len(rs) != 2 {
		t.Fatalf("got %d bars", len(rs))
	}
	base := l.X.Range[0]
	a, b := rs[0].W-base, rs[1].W-base
	if !near(a/b, 2) {
		t.Fatalf("value extents %v / %v, want ratio 2", a, b)
	}
	if !near(l.X.Domain[1], 11.5) {
		t.Fatalf("domain max = %v, want 11.5", l.X.Domain[1])
	}
	if rs[0].W >= friendsWidth {
		t.Fatalf("largest bar %v reaches the range end", rs[0].W)
	}
	if rs[1].Y != 70 || rs[1].H != 66 {
		t.Fatalf("second bar at y=%v h=%v", rs[1].Y, rs[1].H)
	}
	if l.Height != 140 {
		t.Fatalf("height = %v", l.Height)
	}
}

func TestTopFriends_RowContents(t *testing.T) {
	l := buildFriends(friendsFixture())
	if len(l.Patterns) != 2 || l.Patterns[1].ID != "chart-image-1" || l.Patterns[1].Y != 73 || l.Patterns[1].Href != "b.png" {
		t.Fatalf("patterns = %+v", l.Patterns)
	}
	names := texts(l, "name")
	if names[0].X != 91 || names[0].Body != "A" {
		t.Fatalf("name = %+v", names[0])
	}
	likes := texts(l, "likes")
	if likes[1].Body != "5 likes" || likes[1].Anchor != "end" {
		t.Fatalf("likes = %+v", likes[1])
	}
	if !near(likes[0].X, rects(l)[0].W-19) {
		t.Fatalf("likes label x = %v", likes[0].X)
	}
	s := slots(l)
	if s["friends-amount"].Text != "2" || s["friends-likes"].Text != "15" {
		t.Fatalf("slots = %+v", s)
	}
}

func TestPluralize(t *testing.T) {
	cases := map[int]string{0: "0 likes", 1: "1 like", 2: "2 likes", 1000: "1000 likes"}
	for n, want := range cases {
		if got := Pluralize(n); got != want {
			t.Errorf("Pluralize(%d) = %q, want %q", n, got, want)
		}
	}
}

func postTypesFixture() *types.PostTypesData {
	return &types.PostTypesData{Types: []types.PostType{
		{Value: 7, Description: "Status Update", Color: "#3b5998", ShortName: "status updates", ColorClass: "blue"},
		{Value: 2, Description: "Image Post", Color: "#5bc0bd", ShortName: "photos", ColorClass: "green"},
		{Value: 1, Description: "Shared Link", Color: "#2ebaeb", ShortName: "shared links", ColorClass: "blue-light"},
	}}
}

func TestPostTypes_ArcsCoverFullTurnInInputOrder(t *testing.T) {
	as := arcs(PostTypes(postTypesFixture()))
	if len(as) != 3 {
		t.Fatalf("got %d arcs", len(as))
	}
	total := 0.0
	for i, a := range as {
		if a.Index != i {
			t.Fatalf("arc %d bound to record %d", i, a.Index)
		}
		if i > 0 && !near(a.Start, as[i-1].End) {
			t.Fatalf("arc %d does not start where arc %d ends", i, i-1)
		}
		total += a.End - a.Start
	}
	if !near(total, 2*math.Pi) {
		t.Fatalf("spans sum to %v", total)
	}
	if !near(as[0].Start, 25*math.Pi/180) {
		t.Fatalf("first arc starts at %v", as[0].Start)
	}
}

func TestPostTypes_SingleRecordFullCircle(t *testing.T) {
	d := &types.PostTypesData{Types: []types.PostType{{Value: 4, Color: "#000"}}}
	as := arcs(PostTypes(d))
	if len(as) != 1 || !near(as[0].End-as[0].Start, 2*math.Pi) {
		t.Fatalf("arcs = %+v", as)
	}
}

func TestPostTypes_ZeroSumStaysFinite(t *testing.T) {
	d := &types.PostTypesData{Types: []types.PostType{{Value: 0}, {Value: 0}}}
	l := PostTypes(d)
	for _, a := range arcs(l) {
		if math.IsNaN(a.Start) || math.IsNaN(a.End) || a.End != a.Start {
			t.Fatalf("arc = %+v", a)
		}
	}
	if got := slots(l)["most-frequent-post-percentage"].Text; got != "0.0%" {
		t.Fatalf("percentage = %q", got)
	}
}

func TestPostTypes_LabelsFlipAtHalfTurn(t *testing.T) {
	labels := texts(PostTypes(postTypesFixture()), "type-label")
	// first sector midpoint is 0.7pi, second 1.6pi
	if labels[0].Anchor != "start" || labels[1].Anchor != "end" {
		t.Fatalf("anchors = %q, %q", labels[0].Anchor, labels[1].Anchor)
	}
	if labels[0].Body != "7" || labels[0].DY != ".35em" {
		t.Fatalf("label = %+v", labels[0])
	}
	if dx, anchor := LabelOrientation(math.Pi / 2); dx != -10 || anchor != "start" {
		t.Fatalf("orientation below pi = %v, %q", dx, anchor)
	}
	if dx, anchor := LabelOrientation(3 * math.Pi / 2); dx != 10 || anchor != "end" {
		t.Fatalf("orientation above pi = %v, %q", dx, anchor)
	}
}

func TestPostTypes_SummaryAndLegend(t *testing.T) {
	l := PostTypes(postTypesFixture())
	s := slots(l)
	if got := s["most-frequent-post-percentage"]; got.Text != "70.0%" || got.Class != "blue" {
		t.Fatalf("percentage slot = %+v", got)
	}
	if got := s["most-frequent-post-type"]; got.Text != "status updates" || got.Class != "blue" {
		t.Fatalf("type slot = %+v", got)
	}
	want := []LegendItem{
		{Color: "#3b5998", Description: "Status Update"},
		{Color: "#5bc0bd", Description: "Image Post"},
		{Color: "#2ebaeb", Description: "Shared Link"},
	}
	if diff := cmp.Diff(want, l.Legend); diff != "" {
		t.Fatalf("legend mismatch (-want +got):\n%s", diff)
	}
	if l.Resize.Mode != ResizeFixed || l.Resize.FixedHeight != 600 {
		t.Fatalf("resize = %+v", l.Resize)
	}
}

func TestPostTypes_TieKeepsFirst(t *testing.T) {
	l := PostTypes(&types.PostTypesData{Types: []types.PostType{
		{Value: 5, ShortName: "a", ColorClass: "blue"},
		{Value: 5, ShortName: "b", ColorClass: "green"},
	}})
	s := slots(l)
	if got := s["most-frequent-post-type"]; got.Text != "a" || got.Class != "blue" {
		t.Fatalf("type slot = %+v", got)
	}
	if got := s["most-frequent-post-percentage"].Text; got != "50.0%" {
		t.Fatalf("percentage = %q", got)
	}
}

func dailyFixture(totals ...[2]float64) *types.DailyFrequencyData {
	days := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	d := &types.DailyFrequencyData{}
	for i, v := range totals {
		d.Frequency = append(d.Frequency, types.NewDailyRecord(days[i], []string{"own", "shared"}, v[:]))
	}
	return d
}

func TestStack_CumulativeRounded(t *testing.T) {
	r := types.NewDailyRecord("Mon", []string{"a", "b", "c"}, []float64{0.1, 0.2, 1})
	segs := Stack(r, []string{"a", "b", "c"})
	want := []Segment{{Key: "a", Y0: 0, Y1: 0.1}, {Key: "b", Y0: 0.1, Y1: 0.3}, {Key: "c", Y0: 0.3, Y1: 1.3}}
	if diff := cmp.Diff(want, segs); diff != "" {
		t.Fatalf("segments mismatch (-want +got):\n%s", diff)
	}
	if StackTotal(segs) != 1.3 {
		t.Fatalf("total = %v", StackTotal(segs))
	}
}

func TestDailyPostFrequency_StacksAndSummary(t *testing.T) {
	l := DailyPostFrequency(dailyFixture([2]float64{10, 5}, [2]float64{1, 1}, [2]float64{3, 3}))
	if !near(l.Y.Domain[1], 15*1.15) {
		t.Fatalf("domain = %v", l.Y.Domain)
	}
	var mon []Rect
	for _, r := range rects(l) {
		if r.Index == 0 {
			mon = append(mon, r)
		}
	}
	if len(mon) != 2 {
		t.Fatalf("monday has %d segments", len(mon))
	}
	if mon[0].Fill != "#3a5897" || mon[1].Fill != "#ef894a" {
		t.Fatalf("fills = %q, %q", mon[0].Fill, mon[1].Fill)
	}
	if got, want := mon[0].H+mon[1].H, l.Y.Map(0)-l.Y.Map(15); got != want {
		t.Fatalf("stack height %v, want %v", got, want)
	}
	if mon[1].Y+mon[1].H != mon[0].Y {
		t.Fatalf("segments not stacked: %+v", mon)
	}
	s := slots(l)
	want := map[string]string{
		"highest-daily-value": "15", "highest-daily-day": "Mondays",
		"lowest-daily-value": "2", "lowest-daily-day": "Tuesdays",
	}
	for id, text := range want {
		if s[id].Text != text {
			t.Errorf("%s = %q, want %q", id, s[id].Text, text)
		}
	}
	if l.Width != 639 || l.Height != 430 {
		t.Fatalf("viewBox = %vx%v", l.Width, l.Height)
	}
}

func TestDailyPostFrequency_TiesKeepFirst(t *testing.T) {
	l := DailyPostFrequency(dailyFixture([2]float64{5, 0}, [2]float64{2, 0}, [2]float64{5, 0}, [2]float64{2, 0}))
	s := slots(l)
	if s["highest-daily-day"].Text != "Mondays" || s["lowest-daily-day"].Text != "Tuesdays" {
		t.Fatalf("slots = %+v", s)
	}
}

func TestDailyPostFrequency_PluralDaySlots(t *testing.T) {
	l := DailyPostFrequency(dailyFixture([2]float64{1, 0}, [2]float64{2, 0}, [2]float64{3, 0}, [2]float64{4, 0},
		[2]float64{5, 0}, [2]float64{9, 0}, [2]float64{6, 0}))
	s := slots(l)
	if s["highest-daily-day"].Text != "Saturdays" || s["lowest-daily-day"].Text != "Mondays" {
		t.Fatalf("slots = %+v", s)
	}
	for day, want := range map[string]string{"Wed": "Wednesdays", "Thu": "Thursdays", "Sun": "Sundays", "Holiday": "Holidays"} {
		if got := PluralDay(day); got != want {
			t.Fatalf("PluralDay(%q) = %q, want %q", day, got, want)
		}
	}
}

func TestDailyPostFrequency_AxisLabels(t *testing.T) {
	l := DailyPostFrequency(dailyFixture([2]float64{10, 5}, [2]float64{1, 1}))
	xs := texts(l, "x-axis label")
	if len(xs) != 2 || xs[0].Body != "Mon" || xs[1].Body != "Tue" {
		t.Fatalf("x labels = %+v", xs)
	}
	ys := texts(l, "y-axis label")
	if len(ys) == 0 || ys[0].Body != "0" {
		t.Fatalf("y labels = %+v", ys)
	}
	for _, y := range ys {
		if y.Body == "" {
			continue
		}
		if _, err := strconv.Atoi(strings.ReplaceAll(y.Body, ",", "")); err != nil {
			t.Fatalf("y label %q is not an integer", y.Body)
		}
	}
}

func TestDailyPostFrequency_Empty(t *testing.T) {
	l := DailyPostFrequency(&types.DailyFrequencyData{})
	if len(rects(l)) != 0 || len(l.Slots) != 0 {
		t.Fatalf("empty layout = %+v", l)
	}
}

func monthlyFixture() *types.MonthlyFrequencyData {
	d := &types.MonthlyFrequencyData{Color: "#3a5897"}
	vals := []float64{1, 2, 1, 4, 2, 1, 1, 2, 1, 1, 1, 1}
	for i, v := range vals {
		d.Frequency = append(d.Frequency, types.MonthlyPoint{X: i * 10, Value: v})
	}
	return d
}

func TestMonthlyPostFrequency_PathAndSummary(t *testing.T) {
	l := MonthlyPostFrequency(monthlyFixture())
	var path Path
	for _, p := range l.Primitives {
		if v, ok := p.(Path); ok {
			path = v
		}
	}
	if len(path.Points) != 12 || path.Stroke != "#3a5897" || path.StrokeWidth != 3 {
		t.Fatalf("path = %+v", path)
	}
	if path.Points[0].X != 70 || path.Points[11].X != 650 {
		t.Fatalf("path spans %v..%v", path.Points[0].X, path.Points[11].X)
	}
	s := slots(l)
	if s["highest-monthly-month"].Text != "Apr" || s["monthly-average"].Text != "1.5" {
		t.Fatalf("slots = %+v", s)
	}
}

func TestMonthlyPostFrequency_MonthTicks(t *testing.T) {
	labels := texts(MonthlyPostFrequency(monthlyFixture()), "x-axis label")
	if len(labels) < 2 || labels[0].Body != "" || labels[1].Body != "Jan" {
		t.Fatalf("labels = %+v", labels)
	}
	if labels[0].Rotate != -90 {
		t.Fatalf("rotate = %v", labels[0].Rotate)
	}
	if labels[0].Y != 455 {
		t.Fatalf("month axis y = %v, want 455", labels[0].Y)
	}
	if MonthTickLabel(13) != "" || MonthTickLabel(12) != "Dec" {
		t.Fatal("out of range month tick labelled")
	}
}

func TestLayouts_Deterministic(t *testing.T) {
	builds := []func() *Layout{
		func() *Layout { return buildFriends(friendsFixture()) },
		func() *Layout { return PostTypes(postTypesFixture()) },
		func() *Layout { return DailyPostFrequency(dailyFixture([2]float64{3, 4}, [2]float64{1, 9})) },
		func() *Layout { return MonthlyPostFrequency(monthlyFixture()) },
	}
	for _, build := range builds {
		a, b := build(), build()
		if diff := cmp.Diff(a, b); diff != "" {
			t.Fatalf("%s not deterministic (-first +second):\n%s", a.Chart, diff)
		}
	}
}

func TestFormatting(t *testing.T) {
	cases := []struct {
		got, want string
	}{
		{FormatInteger(15), "15"},
		{FormatInteger(2500), "2,500"},
		{FormatInteger(2.5), ""},
		{FormatOneDecimal(70), "70.0"},
		{FormatOneDecimal(1.5), "1.5"},
		{FormatOneDecimal(1234.5), "1,234.5"},
		{FormatPlain(6), "6"},
		{FormatPlain(2.5), "2.5"},
	}
	for _, c := range cases {
		if c.got != c.want {
			t.Errorf("got %q, want %q", c.got, c.want)
		}
	}
}

func TestAspectRatioAndHeightFor(t *testing.T) {
	l := buildFriends(friendsFixture())
	ratio := l.AspectRatio()
	if ratio <= 0 {
		t.Fatalf("ratio = %v", ratio)
	}
	if got := l.HeightFor(ratio*100, ratio); !near(got, 100) {
		t.Fatalf("height for ratio width = %v", got)
	}
	fixed := PostTypes(postTypesFixture())
	if got := fixed.HeightFor(300, fixed.AspectRatio()); got != 600 {
		t.Fatalf("fixed height = %v", got)
	}
}
