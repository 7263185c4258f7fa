package dom

import "golang.org/x/net/html"

// Event types dispatched by the document.
const (
	EventClick  = "click"
	EventChange = "change"
	EventFocus  = "focus"
	EventBlur   = "blur"
)

// Event is a dispatched DOM event.
type Event struct {
	// Type is the event name, e.g. "click".
	Type string
	// Target is the node the event was dispatched to.
	Target *html.Node
	// CurrentTarget is the node whose listener is running.
	CurrentTarget *html.Node
	// Bubbles reports whether the event propagates to ancestors.
	Bubbles bool
	// Synthetic marks events created by Click on behalf of script code
	// rather than by the user agent.
	Synthetic bool

	defaultPrevented   bool
	propagationStopped bool
}

// PreventDefault cancels the activation behavior that follows dispatch.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// StopPropagation keeps the event from reaching further ancestors. Other
// listeners on the current node still run.
func (e *Event) StopPropagation() {
	e.propagationStopped = true
}

// PropagationStopped reports whether StopPropagation was called.
func (e *Event) PropagationStopped() bool {
	return e.propagationStopped
}

// Handler receives dispatched events.
type Handler func(*Event)

type listener struct {
	id        uint64
	eventType string
	namespace string
	fn        Handler
}

// On registers fn for events of eventType reaching n. The namespace groups
// listeners so their owner can remove them together with Off.
func (d *Document) On(n *html.Node, eventType, namespace string, fn Handler) {
	d.nextID++
	d.listeners[n] = append(d.listeners[n], &listener{
		id:        d.nextID,
		eventType: eventType,
		namespace: namespace,
		fn:        fn,
	})
}

// Off removes every listener on n registered under namespace. An empty
// namespace removes all listeners on n.
func (d *Document) Off(n *html.Node, namespace string) {
	ls, ok := d.listeners[n]
	if !ok {
		return
	}
	kept := ls[:0]
	for _, l := range ls {
		if namespace != "" && l.namespace != namespace {
			kept = append(kept, l)
		}
	}
	if len(kept) == 0 {
		delete(d.listeners, n)
		return
	}
	d.listeners[n] = kept
}

// ListenerCount returns the number of listeners registered on n.
func (d *Document) ListenerCount(n *html.Node) int {
	return len(d.listeners[n])
}

// Dispatch delivers ev to its target and, for bubbling events, to each
// ancestor in turn. It reports whether the default action may run.
func (d *Document) Dispatch(ev *Event) bool {
	if ev.Target == nil {
		return false
	}
	// The propagation path is fixed before any listener runs, so listeners
	// that move nodes do not change who receives this event.
	path := []*html.Node{ev.Target}
	if ev.Bubbles {
		for p := ev.Target.Parent; p != nil; p = p.Parent {
			path = append(path, p)
		}
	}
	for _, n := range path {
		ev.CurrentTarget = n
		d.invoke(n, ev)
		if ev.propagationStopped {
			break
		}
	}
	ev.CurrentTarget = nil
	return !ev.defaultPrevented
}

func (d *Document) invoke(n *html.Node, ev *Event) {
	ls := d.listeners[n]
	if len(ls) == 0 {
		return
	}
	// Listeners added during dispatch wait for the next event; removed
	// ones stop receiving immediately.
	snapshot := make([]*listener, len(ls))
	copy(snapshot, ls)
	for _, l := range snapshot {
		if l.eventType != ev.Type || !d.registered(n, l.id) {
			continue
		}
		l.fn(ev)
	}
}

func (d *Document) registered(n *html.Node, id uint64) bool {
	for _, l := range d.listeners[n] {
		if l.id == id {
			return true
		}
	}
	return false
}
