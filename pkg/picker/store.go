package picker

import (
	stderrors "errors"
	"strings"

	"golang.org/x/net/html"

	"github.com/go-drift/picker/pkg/dom"
	"github.com/go-drift/picker/pkg/errors"
)

// Namespace groups every listener the package registers.
const Namespace = "picker"

// Marker classes.
const (
	ClassPicker      = "picker"
	ClassCheckbox    = "picker-checkbox"
	ClassRadio       = "picker-radio"
	ClassToggle      = "picker-toggle"
	ClassElement     = "picker-element"
	ClassLabel       = "picker-label"
	ClassHandle      = "picker-handle"
	ClassFlag        = "picker-flag"
	ClassToggleLabel = "picker-toggle-label"
	ClassToggleOn    = "on"
	ClassToggleOff   = "off"
	ClassChecked     = "checked"
	ClassDisabled    = "disabled"
	ClassFocus       = "focus"
)

var errNoLabel = stderrors.New("no label associated with input")

// savedAttr remembers an attribute as it was before binding.
type savedAttr struct {
	val     string
	present bool
}

func saveAttr(n *html.Node, key string) savedAttr {
	v, ok := dom.LookupAttr(n, key)
	return savedAttr{val: v, present: ok}
}

func (a savedAttr) restore(n *html.Node, key string) {
	if a.present {
		dom.SetAttr(n, key, a.val)
	} else {
		dom.RemoveAttr(n, key)
	}
}

// position is where a node sat before it was moved into the container.
type position struct {
	node   *html.Node
	parent *html.Node
	next   *html.Node
}

// restoration is everything unbind needs to undo bind.
type restoration struct {
	inputClass savedAttr
	labelClass savedAttr
	moved      []position
}

// Store owns one Instance per bound input.
type Store struct {
	doc   *dom.Document
	items map[*html.Node]*Instance
	order []*Instance

	// forward maps the container of an unbound instance to the first node
	// restored into its slot, for instances recorded next to it.
	forward map[*html.Node]*html.Node
}

// NewStore returns an empty store for doc.
func NewStore(doc *dom.Document) *Store {
	return &Store{
		doc:     doc,
		items:   make(map[*html.Node]*Instance),
		forward: make(map[*html.Node]*html.Node),
	}
}

// Lookup returns the Instance bound to input.
func (s *Store) Lookup(input *html.Node) (*Instance, bool) {
	inst, ok := s.items[input]
	return inst, ok
}

// Len returns the number of bound inputs.
func (s *Store) Len() int {
	return len(s.order)
}

// All returns the bound instances in bind order.
func (s *Store) All() []*Instance {
	out := make([]*Instance, len(s.order))
	copy(out, s.order)
	return out
}

// bind creates the Instance for input and builds its markup. An already
// bound input returns its existing Instance. Inputs that are not
// checkable, or are not attached to a parent, are not bound.
func (s *Store) bind(input *html.Node, opts Options) (*Instance, bool) {
	if inst, ok := s.items[input]; ok {
		return inst, false
	}
	if !dom.IsCheckable(input) || input.Parent == nil {
		return nil, false
	}
	inst := newInstance(input, opts)
	s.build(inst)
	s.items[input] = inst
	s.order = append(s.order, inst)
	return inst, true
}

// unbind tears down the markup of input's Instance and forgets it.
func (s *Store) unbind(input *html.Node) (*Instance, bool) {
	inst, ok := s.items[input]
	if !ok {
		return nil, false
	}
	s.doc.Off(inst.input, Namespace)
	s.doc.Off(inst.control, Namespace)
	s.teardown(inst)
	delete(s.items, input)
	for i, have := range s.order {
		if have == inst {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	if len(s.items) == 0 {
		clear(s.forward)
	}
	return inst, true
}

func (s *Store) build(inst *Instance) {
	input := inst.input
	label := s.doc.LabelFor(input)
	if label == nil {
		errors.Report(&errors.PickerError{
			Op:    "picker.Bind",
			Kind:  errors.KindLabel,
			Input: dom.Attr(input, "id"),
			Err:   errNoLabel,
		})
	}
	inst.label = label

	// A wrapping label travels with the input; a label[for] is pulled in
	// after it.
	moved := []*html.Node{input}
	if label != nil {
		if dom.Contains(label, input) {
			moved = []*html.Node{label}
		} else {
			moved = append(moved, label)
		}
	}

	inst.restore.inputClass = saveAttr(input, "class")
	if label != nil {
		inst.restore.labelClass = saveAttr(label, "class")
	}
	for _, n := range moved {
		inst.restore.moved = append(inst.restore.moved, position{node: n, parent: n.Parent, next: n.NextSibling})
	}

	control := dom.NewElement("div", ClassPicker)
	if inst.kind == KindRadio {
		dom.AddClass(control, ClassRadio)
	} else {
		dom.AddClass(control, ClassCheckbox)
	}
	if inst.options.Toggle {
		dom.AddClass(control, ClassToggle)
	}
	for _, c := range strings.Fields(inst.options.CustomClass) {
		dom.AddClass(control, c)
	}

	first := moved[0]
	first.Parent.InsertBefore(control, first)
	for _, n := range moved {
		dom.Detach(n)
		control.AppendChild(n)
	}
	inst.control = control

	dom.AddClass(input, ClassElement)
	if label != nil {
		dom.AddClass(label, ClassLabel)
	}

	handle := dom.NewElement("div", ClassHandle)
	handle.AppendChild(dom.NewElement("div", ClassFlag))
	dom.InsertAfter(handle, input)
	inst.handle = handle

	if inst.options.Toggle {
		on := dom.NewElement("span", ClassToggleLabel, ClassToggleOn)
		on.AppendChild(dom.NewText(inst.options.Labels.On))
		off := dom.NewElement("span", ClassToggleLabel, ClassToggleOff)
		off.AppendChild(dom.NewText(inst.options.Labels.Off))
		dom.InsertAfter(on, handle)
		dom.InsertAfter(off, on)
		inst.captions = []*html.Node{on, off}
	}
}

func (s *Store) teardown(inst *Instance) {
	slotParent, slotNext := inst.control.Parent, inst.control.NextSibling

	for _, c := range inst.captions {
		dom.Detach(c)
	}
	dom.Detach(inst.handle)
	for _, p := range inst.restore.moved {
		dom.Detach(p.node)
	}
	dom.Detach(inst.control)

	// A moved node may have been the next sibling of another one, so put
	// back whichever has an anchor that is already in place.
	pending := append([]position(nil), inst.restore.moved...)
	for len(pending) > 0 {
		idx := 0
		for i, p := range pending {
			if !anchorPending(p, pending) {
				idx = i
				break
			}
		}
		p := pending[idx]
		pending = append(pending[:idx], pending[idx+1:]...)
		if anchor := s.resolveAnchor(p); anchor != nil {
			p.parent.InsertBefore(p.node, anchor)
		} else {
			p.parent.AppendChild(p.node)
		}
	}
	s.forwardSlot(inst, slotParent, slotNext)

	inst.restore.inputClass.restore(inst.input, "class")
	if inst.label != nil {
		inst.restore.labelClass.restore(inst.label, "class")
	}
	inst.control = nil
	inst.handle = nil
	inst.captions = nil
}

// resolveAnchor returns the child of p.parent that p.node goes before, or
// nil to append. The recorded sibling may since have been moved into
// another container, or may be a container that was torn down.
func (s *Store) resolveAnchor(p position) *html.Node {
	n := p.next
	for hops := 0; n != nil && hops <= len(s.forward); hops++ {
		for n.Parent != nil && n.Parent != p.parent {
			n = n.Parent
		}
		if n.Parent == p.parent {
			return n
		}
		n = s.forward[n]
	}
	return nil
}

// forwardSlot records which restored node now heads the slot the container
// occupied, so positions recorded against the container still resolve.
func (s *Store) forwardSlot(inst *Instance, parent, next *html.Node) {
	if parent == nil || (next != nil && next.Parent != parent) {
		return
	}
	moved := make(map[*html.Node]bool, len(inst.restore.moved))
	for _, p := range inst.restore.moved {
		moved[p.node] = true
	}
	n := parent.LastChild
	if next != nil {
		n = next.PrevSibling
	}
	var first *html.Node
	for ; n != nil && moved[n]; n = n.PrevSibling {
		first = n
	}
	if first != nil {
		s.forward[inst.control] = first
	}
}

func anchorPending(p position, pending []position) bool {
	for _, other := range pending {
		if other.node != p.node && other.node == p.next {
			return true
		}
	}
	return false
}
