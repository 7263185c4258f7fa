package picker

import "github.com/go-drift/picker/pkg/dom"

// Synchronizer writes Instance state onto the container's marker classes.
type Synchronizer struct {
	doc *dom.Document
}

// NewSynchronizer returns a Synchronizer reading focus from doc.
func NewSynchronizer(doc *dom.Document) *Synchronizer {
	return &Synchronizer{doc: doc}
}

// Apply sets each marker class from the cached state. It is idempotent.
func (s *Synchronizer) Apply(inst *Instance) {
	if inst.control == nil {
		return
	}
	dom.ToggleClass(inst.control, ClassChecked, inst.checked)
	dom.ToggleClass(inst.control, ClassDisabled, inst.disabled)
	dom.ToggleClass(inst.control, ClassFocus, inst.focused)
}

// Update refreshes the cached state from the native input and applies it.
func (s *Synchronizer) Update(inst *Instance) {
	inst.checked = dom.Checked(inst.input)
	inst.disabled = dom.Disabled(inst.input)
	inst.focused = s.doc.ActiveElement() == inst.input
	s.Apply(inst)
}
