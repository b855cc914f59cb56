package page

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/net/html"
)

const fixture = `<html><body>
<div id="chart"><p>old</p></div>
<span id="count" class="big">0</span>
<ul id="words"></ul>
</body></html>`

func mustParse(t *testing.T) *Document {
	t.Helper()
	d, err := ParseString(fixture)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func render(t *testing.T, d *Document) string {
	t.Helper()
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestMount_ReplacesContent(t *testing.T) {
	d := mustParse(t)
	for i := 0; i < 2; i++ {
		if !d.Mount("chart", &html.Node{Type: html.ElementNode, Data: "svg"}) {
			t.Fatal("mount not found")
		}
	}
	out := render(t, d)
	if strings.Contains(out, "old") || strings.Count(out, "<svg>") != 1 {
		t.Fatalf("mount did not replace content: %s", out)
	}
	if d.Mount("missing", &html.Node{Type: html.ElementNode, Data: "svg"}) {
		t.Fatal("missing mount reported found")
	}
}

func TestSetTextAndAddClass(t *testing.T) {
	d := mustParse(t)
	d.SetText("count", "<15>")
	d.AddClass("count", "blue")
	d.AddClass("count", "blue")
	if got := d.Text("count"); got != "<15>" {
		t.Fatalf("text = %q", got)
	}
	if got := Attr(d.ElementByID("count"), "class"); got != "big blue" {
		t.Fatalf("class = %q", got)
	}
	if !strings.Contains(render(t, d), "&lt;15&gt;") {
		t.Fatal("text not escaped")
	}
}

func TestSetInnerHTML(t *testing.T) {
	d := mustParse(t)
	ok, err := d.SetInnerHTML("words", `<li class="vvvvv-popular"><a href="#">house</a></li><li><a href="#">tree</a></li>`)
	if err != nil || !ok {
		t.Fatalf("SetInnerHTML = %v, %v", ok, err)
	}
	ul := d.ElementByID("words")
	n := 0
	for c := ul.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "li" {
			n++
		}
	}
	if n != 2 || d.Text("words") != "housetree" {
		t.Fatalf("items = %d, text = %q", n, d.Text("words"))
	}
	if ok, _ := d.SetInnerHTML("nope", "<li></li>"); ok {
		t.Fatal("missing element reported found")
	}
}

func TestViewport_SubscribeAndCancel(t *testing.T) {
	v := NewViewport(1000)
	var got []Event
	cancel := v.Subscribe(func(e Event) { got = append(got, e) }, Resize)
	fonts := 0
	cancelFonts := v.Subscribe(func(Event) { fonts++ }, FontResize, OrientationChange)
	if v.Listeners() != 2 {
		t.Fatalf("listeners = %d", v.Listeners())
	}

	v.SetWidth(500)
	v.Dispatch(Event{Kind: FontResize})
	if len(got) != 1 || got[0].Width != 500 || fonts != 1 {
		t.Fatalf("events = %+v, fonts = %d", got, fonts)
	}

	cancel()
	cancel()
	v.SetWidth(400)
	if len(got) != 1 || v.Listeners() != 1 {
		t.Fatalf("cancelled listener still called: %+v", got)
	}
	cancelFonts()
	if v.Listeners() != 0 || v.Width() != 400 {
		t.Fatalf("listeners = %d, width = %v", v.Listeners(), v.Width())
	}
}

func TestViewport_AllKindsByDefault(t *testing.T) {
	v := NewViewport(800)
	var kinds []EventKind
	v.Subscribe(func(e Event) { kinds = append(kinds, e.Kind) })
	v.Dispatch(Event{Kind: OrientationChange})
	v.Dispatch(Event{Kind: Resize, Width: 320})
	if len(kinds) != 2 || kinds[0] != OrientationChange || kinds[1] != Resize {
		t.Fatalf("kinds = %v", kinds)
	}
	if OrientationChange.String() != "orientationchange" {
		t.Fatalf("name = %s", OrientationChange)
	}
}
