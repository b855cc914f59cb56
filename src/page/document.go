// Package page is the host page surface the charts render into: an HTML
// document addressed by element id, and the viewport whose changes charts
// react to.
package page

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Document is a parsed HTML page. It is not safe for concurrent use.
type Document struct {
	root *html.Node
}

// Parse reads an HTML document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Document{root: root}, nil
}

// ParseString is Parse over a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// ElementByID returns the first element whose id attribute equals id, or nil.
func (d *Document) ElementByID(id string) *html.Node {
	if d == nil || id == "" {
		return nil
	}
	var found *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.ElementNode && Attr(n, "id") == id {
			found = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(d.root)
	return found
}

// Mount replaces the children of element id with n. It reports whether the
// element exists.
func (d *Document) Mount(id string, n *html.Node) bool {
	return d.Replace(id, n)
}

// Replace swaps the children of element id for nodes.
func (d *Document) Replace(id string, nodes ...*html.Node) bool {
	el := d.ElementByID(id)
	if el == nil {
		return false
	}
	removeChildren(el)
	for _, n := range nodes {
		el.AppendChild(n)
	}
	return true
}

// SetText replaces the content of element id with plain text.
func (d *Document) SetText(id, s string) bool {
	el := d.ElementByID(id)
	if el == nil {
		return false
	}
	removeChildren(el)
	el.AppendChild(&html.Node{Type: html.TextNode, Data: s})
	return true
}

// SetInnerHTML replaces the content of element id with parsed markup.
// A missing element is not an error; the returned bool reports it.
func (d *Document) SetInnerHTML(id, markup string) (bool, error) {
	el := d.ElementByID(id)
	if el == nil {
		return false, nil
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), el)
	if err != nil {
		return true, fmt.Errorf("parse fragment for #%s: %w", id, err)
	}
	removeChildren(el)
	for _, n := range nodes {
		el.AppendChild(n)
	}
	return true, nil
}

// AddClass appends class c to element id unless already present.
func (d *Document) AddClass(id, c string) bool {
	el := d.ElementByID(id)
	if el == nil {
		return false
	}
	if c == "" {
		return true
	}
	classes := strings.Fields(Attr(el, "class"))
	for _, have := range classes {
		if have == c {
			return true
		}
	}
	SetAttr(el, "class", strings.Join(append(classes, c), " "))
	return true
}

// SetAttr sets attribute key on element id.
func (d *Document) SetAttr(id, key, val string) bool {
	el := d.ElementByID(id)
	if el == nil {
		return false
	}
	SetAttr(el, key, val)
	return true
}

// Text returns the concatenated text content of element id.
func (d *Document) Text(id string) string {
	el := d.ElementByID(id)
	if el == nil {
		return ""
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(el)
	return b.String()
}

// Render writes the whole document.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// Attr returns the value of an unnamespaced attribute of n.
func Attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

// SetAttr sets an unnamespaced attribute of n.
func SetAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
}
