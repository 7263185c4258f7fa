package picker

// Origin tags a transition with what caused it.
type Origin int

const (
	// External transitions come from user interaction or from foreign
	// scripts dispatching events. They raise change notifications.
	External Origin = iota
	// Internal transitions come from the package itself: group cascades
	// and resynchronization. They never raise notifications.
	Internal
)

func (o Origin) String() string {
	switch o {
	case External:
		return "external"
	case Internal:
		return "internal"
	default:
		return "unknown"
	}
}

// Kind is the type of native input an Instance is bound to.
type Kind int

const (
	// KindCheckbox is an <input type="checkbox">.
	KindCheckbox Kind = iota
	// KindRadio is an <input type="radio">.
	KindRadio
)

func (k Kind) String() string {
	if k == KindRadio {
		return "radio"
	}
	return "checkbox"
}
