package testing

import (
	"fmt"

	"golang.org/x/net/html"

	"github.com/go-drift/picker/pkg/dom"
	"github.com/go-drift/picker/pkg/picker"
)

// Finder locates nodes in the document.
type Finder interface {
	// Evaluate returns all matching nodes under root (depth-first pre-order).
	Evaluate(root *html.Node) []*html.Node
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	nodes  []*html.Node
	finder Finder
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() *html.Node {
	if len(r.nodes) == 0 {
		desc := "unknown"
		if r.finder != nil {
			desc = r.finder.Description()
		}
		panic(fmt.Sprintf("Finder found no nodes: %s", desc))
	}
	return r.nodes[0]
}

// FirstOrNil returns the first match, or nil if none.
func (r FinderResult) FirstOrNil() *html.Node {
	if len(r.nodes) == 0 {
		return nil
	}
	return r.nodes[0]
}

// At returns the match at index. Panics if out of range.
func (r FinderResult) At(index int) *html.Node {
	if index < 0 || index >= len(r.nodes) {
		desc := "unknown"
		if r.finder != nil {
			desc = r.finder.Description()
		}
		panic(fmt.Sprintf("Finder index %d out of range (found %d): %s", index, len(r.nodes), desc))
	}
	return r.nodes[index]
}

// All returns all matches in document order.
func (r FinderResult) All() []*html.Node {
	return r.nodes
}

// Count returns the number of matches.
func (r FinderResult) Count() int {
	return len(r.nodes)
}

// Exists returns true if at least one match was found.
func (r FinderResult) Exists() bool {
	return len(r.nodes) > 0
}

// Find evaluates finder against the whole document.
func (t *Tester) Find(finder Finder) FinderResult {
	return FinderResult{nodes: finder.Evaluate(t.doc.Root()), finder: finder}
}

// --- Concrete finders ---

type predicateFinder struct {
	fn   func(*html.Node) bool
	desc string
}

func (f *predicateFinder) Evaluate(root *html.Node) []*html.Node {
	return dom.FindAll(root, f.fn)
}

func (f *predicateFinder) Description() string {
	return f.desc
}

// ByPredicate returns a finder that matches elements satisfying fn.
func ByPredicate(desc string, fn func(*html.Node) bool) Finder {
	return &predicateFinder{fn: fn, desc: fmt.Sprintf("ByPredicate(%s)", desc)}
}

// ByID returns a finder that matches the element with the given id.
func ByID(id string) Finder {
	return &predicateFinder{
		fn:   func(n *html.Node) bool { return dom.Attr(n, "id") == id },
		desc: fmt.Sprintf("ByID(%q)", id),
	}
}

// ByClass returns a finder that matches elements carrying class.
func ByClass(class string) Finder {
	return &predicateFinder{
		fn:   func(n *html.Node) bool { return dom.HasClass(n, class) },
		desc: fmt.Sprintf("ByClass(%q)", class),
	}
}

// ByTag returns a finder that matches elements with the given tag.
func ByTag(tag string) Finder {
	return &predicateFinder{
		fn:   func(n *html.Node) bool { return n.Data == tag },
		desc: fmt.Sprintf("ByTag(%q)", tag),
	}
}

// ByText returns a finder that matches elements whose text content equals
// text exactly.
func ByText(text string) Finder {
	return &predicateFinder{
		fn:   func(n *html.Node) bool { return dom.TextContent(n) == text },
		desc: fmt.Sprintf("ByText(%q)", text),
	}
}

type descendantFinder struct {
	of      Finder
	matcher Finder
}

func (f *descendantFinder) Evaluate(root *html.Node) []*html.Node {
	var out []*html.Node
	seen := make(map[*html.Node]bool)
	for _, ancestor := range f.of.Evaluate(root) {
		for _, n := range f.matcher.Evaluate(ancestor) {
			if n != ancestor && !seen[n] {
				seen[n] = true
				out = append(out, n)
			}
		}
	}
	return out
}

func (f *descendantFinder) Description() string {
	return fmt.Sprintf("Descendant(of: %s, matching: %s)", f.of.Description(), f.matcher.Description())
}

// Descendant returns a finder that matches nodes found by matcher beneath
// nodes found by of.
func Descendant(of, matcher Finder) Finder {
	return &descendantFinder{of: of, matcher: matcher}
}

// ControlOf finds the picker container of the input with the given id.
func ControlOf(id string) Finder {
	return &predicateFinder{
		fn: func(n *html.Node) bool {
			if !dom.HasClass(n, picker.ClassPicker) {
				return false
			}
			for _, in := range dom.FindAll(n, dom.IsCheckable) {
				if dom.Attr(in, "id") == id {
					return true
				}
			}
			return false
		},
		desc: fmt.Sprintf("ControlOf(%q)", id),
	}
}

// HandleOf finds the handle of the picker bound to the input with the
// given id.
func HandleOf(id string) Finder {
	return Descendant(ControlOf(id), ByClass(picker.ClassHandle))
}

// CaptionsOf finds the toggle captions of the picker bound to the input
// with the given id.
func CaptionsOf(id string) Finder {
	return Descendant(ControlOf(id), ByClass(picker.ClassToggleLabel))
}
