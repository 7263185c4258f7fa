package picker

import (
	"golang.org/x/net/html"

	"github.com/go-drift/picker/pkg/dom"
)

// Instance pairs one native input with its visual control.
//
// The checked, disabled and focused fields are a cache of the input's
// native state. They are written only by the router and by Registry.Update,
// so a foreign script that mutates the input without dispatching an event
// leaves them stale until the next Update.
type Instance struct {
	input    *html.Node
	control  *html.Node
	label    *html.Node
	handle   *html.Node
	captions []*html.Node

	kind    Kind
	group   string
	options Options

	checked  bool
	disabled bool
	focused  bool

	restore restoration
}

func newInstance(input *html.Node, opts Options) *Instance {
	inst := &Instance{input: input, options: opts}
	if dom.InputType(input) == dom.TypeRadio {
		inst.kind = KindRadio
		inst.group = dom.Attr(input, "name")
	}
	return inst
}

// Input returns the bound native input.
func (i *Instance) Input() *html.Node { return i.input }

// Control returns the container wrapping the input.
func (i *Instance) Control() *html.Node { return i.control }

// Label returns the associated label, or nil when none was found.
func (i *Instance) Label() *html.Node { return i.label }

// Handle returns the decorative handle element.
func (i *Instance) Handle() *html.Node { return i.handle }

// Captions returns the on and off caption elements in toggle mode, and nil
// otherwise.
func (i *Instance) Captions() []*html.Node { return i.captions }

// Kind reports whether the input is a checkbox or a radio.
func (i *Instance) Kind() Kind { return i.kind }

// Group returns the radio group name, or "" for checkboxes and unnamed
// radios.
func (i *Instance) Group() string { return i.group }

// Options returns the configuration resolved at bind time.
func (i *Instance) Options() Options { return i.options }

// CustomClass returns the custom container class fixed at bind time.
func (i *Instance) CustomClass() string { return i.options.CustomClass }

// Toggle returns the toggle captions and whether toggle mode is active.
func (i *Instance) Toggle() (Labels, bool) {
	return i.options.Labels, i.options.Toggle
}

// Checked returns the cached checked state.
func (i *Instance) Checked() bool { return i.checked }

// Disabled returns the cached disabled state.
func (i *Instance) Disabled() bool { return i.disabled }

// Focused returns the cached focus state.
func (i *Instance) Focused() bool { return i.focused }

// ID returns the input's id attribute.
func (i *Instance) ID() string { return dom.Attr(i.input, "id") }
