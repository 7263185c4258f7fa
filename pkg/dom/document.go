package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a markup tree plus the listener table and focus state of a page.
type Document struct {
	root      *html.Node
	listeners map[*html.Node][]*listener
	active    *html.Node
	nextID    uint64
}

// New wraps an existing tree. A nil root yields an empty document.
func New(root *html.Node) *Document {
	if root == nil {
		root = &html.Node{Type: html.DocumentNode}
	}
	return &Document{
		root:      root,
		listeners: make(map[*html.Node][]*listener),
	}
}

// Parse reads a complete HTML document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return New(root), nil
}

// ParseFragment reads markup as the content of a <body> element. The nodes
// are attached to a bare document root so Render reproduces only the
// fragment.
func ParseFragment(r io.Reader) (*Document, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(r, body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fragment: %w", err)
	}
	root := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return New(root), nil
}

// MustParseFragment is ParseFragment for literal markup. It panics on error.
func MustParseFragment(markup string) *Document {
	doc, err := ParseFragment(strings.NewReader(markup))
	if err != nil {
		panic(err)
	}
	return doc
}

// Root returns the document node.
func (d *Document) Root() *html.Node {
	return d.root
}

// Render writes the document markup to w.
func (d *Document) Render(w io.Writer) error {
	for c := d.root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(w, c); err != nil {
			return fmt.Errorf("failed to render document: %w", err)
		}
	}
	return nil
}

// String returns the rendered markup, or an empty string if rendering fails.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// OuterHTML renders a single node and its subtree.
func OuterHTML(n *html.Node) string {
	if n == nil {
		return ""
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return ""
	}
	return buf.String()
}

// ByID returns the first element whose id attribute equals id.
func (d *Document) ByID(id string) *html.Node {
	if id == "" {
		return nil
	}
	var found *html.Node
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && Attr(n, "id") == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// FindAll returns every element under root (inclusive) matching match, in
// document order.
func FindAll(root *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	walk(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// walk visits n and its descendants depth-first until visit returns false.
func walk(n *html.Node, visit func(*html.Node) bool) bool {
	if n == nil {
		return true
	}
	if !visit(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, visit) {
			return false
		}
	}
	return true
}
