// Package script parses and runs the interaction steps of picker simulate.
package script

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/go-drift/picker/pkg/picker"
)

// Action names one interaction.
type Action string

const (
	// Click activates the native input.
	Click Action = "click"
	// Tap clicks the picker handle.
	Tap Action = "tap"
	// Label clicks the associated label.
	Label Action = "label"
	Focus Action = "focus"
	Blur  Action = "blur"
	// Enable and Disable go through the registry.
	Enable  Action = "enable"
	Disable Action = "disable"
	// Update resynchronizes from native state.
	Update Action = "update"
	Unbind Action = "unbind"
	// Check and Uncheck mutate native state without dispatching events.
	Check   Action = "check"
	Uncheck Action = "uncheck"
)

var actions = map[Action]bool{
	Click: true, Tap: true, Label: true, Focus: true, Blur: true,
	Enable: true, Disable: true, Update: true, Unbind: true,
	Check: true, Uncheck: true,
}

// Step is one ACTION:ID pair. Blur takes no id.
type Step struct {
	Action Action
	ID     string
}

func (s Step) String() string {
	if s.ID == "" {
		return string(s.Action)
	}
	return string(s.Action) + ":" + s.ID
}

// Parse reads a step written as ACTION:ID.
func Parse(s string) (Step, error) {
	name, id, _ := strings.Cut(strings.TrimSpace(s), ":")
	step := Step{Action: Action(strings.ToLower(name)), ID: strings.TrimSpace(id)}
	if !actions[step.Action] {
		return Step{}, fmt.Errorf("unknown action %q in step %q", name, s)
	}
	if step.ID == "" && step.Action != Blur {
		return Step{}, fmt.Errorf("step %q needs an element id", s)
	}
	return step, nil
}

// ParseAll parses every step, stopping at the first error.
func ParseAll(args []string) ([]Step, error) {
	steps := make([]Step, 0, len(args))
	for _, s := range args {
		step, err := Parse(s)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	return steps, nil
}

// Run applies step to the registry's document.
func Run(reg *picker.Registry, step Step) error {
	doc := reg.Document()
	if step.Action == Blur {
		doc.Blur()
		return nil
	}

	input := doc.ByID(step.ID)
	if input == nil {
		return fmt.Errorf("%s: no element with id %q", step, step.ID)
	}

	switch step.Action {
	case Click:
		doc.Click(input)
	case Tap:
		inst, ok := reg.Lookup(input)
		if !ok {
			return fmt.Errorf("%s: %q is not bound", step, step.ID)
		}
		doc.Click(inst.Handle())
	case Label:
		label := labelOf(reg, input)
		if label == nil {
			return fmt.Errorf("%s: %q has no label", step, step.ID)
		}
		doc.Click(label)
	case Focus:
		doc.Focus(input)
	case Enable:
		reg.Enable(input)
	case Disable:
		reg.Disable(input)
	case Update:
		reg.Update(input)
	case Unbind:
		reg.Unbind(input)
	case Check:
		doc.SetChecked(input, true)
	case Uncheck:
		doc.SetChecked(input, false)
	}
	return nil
}

func labelOf(reg *picker.Registry, input *html.Node) *html.Node {
	if inst, ok := reg.Lookup(input); ok && inst.Label() != nil {
		return inst.Label()
	}
	return reg.Document().LabelFor(input)
}
