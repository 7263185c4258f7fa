package picker

import (
	"go.uber.org/zap"

	"github.com/go-drift/picker/pkg/dom"
	"github.com/go-drift/picker/pkg/errors"
)

// Change describes an External transition delivered to subscribers.
type Change struct {
	// Instance is the picker that changed.
	Instance *Instance
	// Kind is the input kind.
	Kind Kind
	// Group is the radio group name, if any.
	Group string
	// ID is the input's id attribute.
	ID string
	// Value is the input's value attribute.
	Value string
	// Checked is the new checked state.
	Checked bool
}

// Router turns native events into transitions.
type Router struct {
	doc     *dom.Document
	sync    *Synchronizer
	groups  *GroupCoordinator
	notify  func(Change)
	logger  *zap.Logger
	metrics *Metrics
}

func (r *Router) attach(inst *Instance) {
	r.doc.On(inst.control, dom.EventClick, Namespace, func(ev *dom.Event) { r.onClick(inst, ev) })
	r.doc.On(inst.input, dom.EventChange, Namespace, func(ev *dom.Event) { r.onChange(inst, External) })
	r.doc.On(inst.input, dom.EventFocus, Namespace, func(ev *dom.Event) { r.onFocus(inst) })
	r.doc.On(inst.input, dom.EventBlur, Namespace, func(ev *dom.Event) { r.onBlur(inst) })
}

// onClick forwards clicks anywhere on the control to the native input so
// toggling stays native. Clicks aimed at the input itself, including the
// forwarded one, are left alone.
func (r *Router) onClick(inst *Instance, ev *dom.Event) {
	defer errors.Recover("picker.onClick")

	if ev.Target == inst.input {
		return
	}
	ev.PreventDefault()
	ev.StopPropagation()
	if dom.Disabled(inst.input) {
		return
	}
	r.doc.Click(inst.input)
}

// onChange runs after the platform has already mutated the input.
func (r *Router) onChange(inst *Instance, origin Origin) {
	defer errors.Recover("picker.onChange")

	if dom.Disabled(inst.input) {
		return
	}
	if dom.Checked(inst.input) {
		r.selectInstance(inst, origin)
		return
	}
	// A radio never loses its checked state on its own; some other radio
	// was selected and its change event does the work.
	if inst.kind == KindCheckbox {
		r.deselect(inst, origin)
	}
}

func (r *Router) selectInstance(inst *Instance, origin Origin) {
	r.groups.DeselectOthers(inst, r.deselect)
	changed := !inst.checked
	inst.checked = true
	if !dom.Checked(inst.input) {
		r.doc.SetChecked(inst.input, true)
	}
	r.sync.Apply(inst)
	r.settle(inst, origin, changed)
}

func (r *Router) deselect(inst *Instance, origin Origin) {
	changed := inst.checked
	inst.checked = false
	if dom.Checked(inst.input) {
		r.doc.SetChecked(inst.input, false)
	}
	r.sync.Apply(inst)
	r.settle(inst, origin, changed)
}

func (r *Router) settle(inst *Instance, origin Origin, changed bool) {
	if changed {
		r.metrics.transition(inst.kind, origin, inst.checked)
		r.logger.Debug("picker transition",
			zap.String("id", inst.ID()),
			zap.Stringer("kind", inst.kind),
			zap.String("group", inst.group),
			zap.Stringer("origin", origin),
			zap.Bool("checked", inst.checked),
		)
	}
	if origin != External || r.notify == nil {
		return
	}
	r.metrics.notified(inst.kind)
	r.notify(Change{
		Instance: inst,
		Kind:     inst.kind,
		Group:    inst.group,
		ID:       inst.ID(),
		Value:    dom.Attr(inst.input, "value"),
		Checked:  inst.checked,
	})
}

func (r *Router) onFocus(inst *Instance) {
	inst.focused = true
	r.sync.Apply(inst)
}

func (r *Router) onBlur(inst *Instance) {
	inst.focused = false
	r.sync.Apply(inst)
}
