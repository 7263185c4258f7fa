package dom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// NewElement creates a detached element with the given class list.
func NewElement(tag string, classes ...string) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	for _, c := range classes {
		AddClass(n, c)
	}
	return n
}

// NewText creates a detached text node.
func NewText(text string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: text}
}

// Attr returns the value of the named attribute, or "" when absent.
func Attr(n *html.Node, key string) string {
	v, _ := LookupAttr(n, key)
	return v
}

// LookupAttr returns the value of the named attribute and whether it is set.
func LookupAttr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// HasAttr reports whether the named attribute is present.
func HasAttr(n *html.Node, key string) bool {
	_, ok := LookupAttr(n, key)
	return ok
}

// SetAttr sets an attribute, keeping its position when it already exists.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes an attribute if present.
func RemoveAttr(n *html.Node, key string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}

// Classes returns the class list of n.
func Classes(n *html.Node) []string {
	return strings.Fields(Attr(n, "class"))
}

// HasClass reports whether n carries class c.
func HasClass(n *html.Node, c string) bool {
	for _, have := range Classes(n) {
		if have == c {
			return true
		}
	}
	return false
}

// AddClass appends c to the class list unless already present. Blank class
// names are ignored.
func AddClass(n *html.Node, c string) {
	c = strings.TrimSpace(c)
	if c == "" || HasClass(n, c) {
		return
	}
	classes := append(Classes(n), c)
	SetAttr(n, "class", strings.Join(classes, " "))
}

// RemoveClass drops c from the class list. The attribute is removed once the
// list is empty.
func RemoveClass(n *html.Node, c string) {
	if !HasClass(n, c) {
		return
	}
	classes := Classes(n)
	kept := classes[:0]
	for _, have := range classes {
		if have != c {
			kept = append(kept, have)
		}
	}
	if len(kept) == 0 {
		RemoveAttr(n, "class")
		return
	}
	SetAttr(n, "class", strings.Join(kept, " "))
}

// ToggleClass adds or removes c according to on.
func ToggleClass(n *html.Node, c string, on bool) {
	if on {
		AddClass(n, c)
	} else {
		RemoveClass(n, c)
	}
}

// IsElement reports whether n is an element with the given tag.
func IsElement(n *html.Node, tag string) bool {
	return n != nil && n.Type == html.ElementNode && n.Data == tag
}

// Closest returns the nearest inclusive ancestor matching match.
func Closest(n *html.Node, match func(*html.Node) bool) *html.Node {
	for ; n != nil; n = n.Parent {
		if n.Type == html.ElementNode && match(n) {
			return n
		}
	}
	return nil
}

// Contains reports whether descendant is ancestor or lies beneath it.
func Contains(ancestor, descendant *html.Node) bool {
	for n := descendant; n != nil; n = n.Parent {
		if n == ancestor {
			return true
		}
	}
	return false
}

// Detach removes n from its parent. Detached nodes are left untouched.
func Detach(n *html.Node) {
	if n != nil && n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// InsertAfter places n immediately after ref. n is detached first.
func InsertAfter(n, ref *html.Node) {
	Detach(n)
	ref.Parent.InsertBefore(n, ref.NextSibling)
}

// TextContent concatenates the text beneath n.
func TextContent(n *html.Node) string {
	var sb strings.Builder
	walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
		return true
	})
	return sb.String()
}
