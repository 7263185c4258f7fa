package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Input types with native checked state.
const (
	TypeCheckbox = "checkbox"
	TypeRadio    = "radio"
)

// InputType returns the lower-cased type attribute of an input element, or
// "" for any other node.
func InputType(n *html.Node) string {
	if !IsElement(n, "input") {
		return ""
	}
	t := strings.ToLower(strings.TrimSpace(Attr(n, "type")))
	if t == "" {
		return "text"
	}
	return t
}

// IsCheckable reports whether n is a checkbox or radio input.
func IsCheckable(n *html.Node) bool {
	switch InputType(n) {
	case TypeCheckbox, TypeRadio:
		return true
	}
	return false
}

// Checked reports the native checked state of n.
func Checked(n *html.Node) bool {
	return HasAttr(n, "checked")
}

// Disabled reports the native disabled state of n, including the state
// inherited from a disabled fieldset ancestor.
func Disabled(n *html.Node) bool {
	if HasAttr(n, "disabled") {
		return true
	}
	for p := n.Parent; p != nil; p = p.Parent {
		if IsElement(p, "fieldset") && HasAttr(p, "disabled") {
			return true
		}
	}
	return false
}

// SetChecked changes the native checked state without dispatching events.
// Checking a radio clears the other members of its native group.
func (d *Document) SetChecked(n *html.Node, checked bool) {
	if !IsCheckable(n) {
		return
	}
	if !checked {
		RemoveAttr(n, "checked")
		return
	}
	if !HasAttr(n, "checked") {
		SetAttr(n, "checked", "")
	}
	if InputType(n) == TypeRadio {
		for _, other := range d.RadioGroup(n) {
			if other != n {
				RemoveAttr(other, "checked")
			}
		}
	}
}

// SetDisabled changes the native disabled state without dispatching events.
// A focused element that becomes disabled loses focus silently.
func (d *Document) SetDisabled(n *html.Node, disabled bool) {
	if n == nil || n.Type != html.ElementNode {
		return
	}
	if !disabled {
		RemoveAttr(n, "disabled")
		return
	}
	if !HasAttr(n, "disabled") {
		SetAttr(n, "disabled", "")
	}
	if d.active == n && IsCheckable(n) {
		d.active = nil
	}
}

// FormOwner returns the nearest ancestor form of n, or the document root.
func (d *Document) FormOwner(n *html.Node) *html.Node {
	if f := Closest(n.Parent, func(p *html.Node) bool { return IsElement(p, "form") }); f != nil {
		return f
	}
	return d.root
}

// RadioGroup returns the radios sharing the name and form owner of n,
// including n itself. A radio without a name forms a group of one.
func (d *Document) RadioGroup(n *html.Node) []*html.Node {
	name := Attr(n, "name")
	if InputType(n) != TypeRadio || name == "" {
		return []*html.Node{n}
	}
	owner := d.FormOwner(n)
	return FindAll(owner, func(c *html.Node) bool {
		return InputType(c) == TypeRadio && Attr(c, "name") == name && d.FormOwner(c) == owner
	})
}

// LabelFor returns the label associated with input: the first label whose
// for attribute names the input id, otherwise the nearest ancestor label.
func (d *Document) LabelFor(input *html.Node) *html.Node {
	if id := Attr(input, "id"); id != "" {
		labels := FindAll(d.root, func(n *html.Node) bool {
			return IsElement(n, "label") && Attr(n, "for") == id
		})
		if len(labels) > 0 {
			return labels[0]
		}
	}
	return Closest(input.Parent, func(n *html.Node) bool { return IsElement(n, "label") })
}

// LabelControl returns the control a label activates: the element named by
// its for attribute, otherwise the first checkable input it contains.
func (d *Document) LabelControl(label *html.Node) *html.Node {
	if id := Attr(label, "for"); id != "" {
		return d.ByID(id)
	}
	inputs := FindAll(label, IsCheckable)
	if len(inputs) > 0 {
		return inputs[0]
	}
	return nil
}

// Click dispatches a click to n and then runs its activation behavior
// unless a listener prevented it. Disabled controls receive nothing.
func (d *Document) Click(n *html.Node) {
	if n == nil {
		return
	}
	if IsCheckable(n) && Disabled(n) {
		return
	}
	ev := &Event{Type: EventClick, Target: n, Bubbles: true, Synthetic: true}
	if !d.Dispatch(ev) {
		return
	}
	d.activate(n)
}

func (d *Document) activate(target *html.Node) {
	if IsCheckable(target) {
		d.activateInput(target)
		return
	}
	label := Closest(target, func(n *html.Node) bool { return IsElement(n, "label") })
	if label == nil {
		return
	}
	control := d.LabelControl(label)
	// A click that started inside the control has already activated it.
	if control == nil || Contains(control, target) {
		return
	}
	d.Click(control)
}

func (d *Document) activateInput(input *html.Node) {
	switch InputType(input) {
	case TypeCheckbox:
		d.SetChecked(input, !Checked(input))
	case TypeRadio:
		if Checked(input) {
			return
		}
		d.SetChecked(input, true)
	default:
		return
	}
	d.Dispatch(&Event{Type: EventChange, Target: input, Bubbles: true})
}

// ActiveElement returns the focused element, or nil.
func (d *Document) ActiveElement() *html.Node {
	return d.active
}

// Focus moves focus to n, dispatching "blur" on the previously focused
// element and then "focus" on n. Neither event bubbles. Disabled controls
// and detached nodes cannot take focus.
func (d *Document) Focus(n *html.Node) {
	if n == nil || n == d.active || !Contains(d.root, n) {
		return
	}
	if IsCheckable(n) && Disabled(n) {
		return
	}
	d.Blur()
	d.active = n
	d.Dispatch(&Event{Type: EventFocus, Target: n})
}

// Blur clears focus, dispatching "blur" on the element that had it.
func (d *Document) Blur() {
	prev := d.active
	if prev == nil {
		return
	}
	d.active = nil
	d.Dispatch(&Event{Type: EventBlur, Target: prev})
}
