// Package dom provides the host document that pickers bind to.
//
// A Document owns a markup tree parsed with golang.org/x/net/html and layers
// the behavior of a browser page on top of it: namespaced event listeners,
// bubbling dispatch, native checkbox and radio activation, label
// association and focus tracking. Element identity is the *html.Node
// pointer, so callers keep using the nodes returned by ByID or FindAll.
//
// # Native State
//
// The checked and disabled state of an input is its "checked" and
// "disabled" attribute. Script-side mutations through SetChecked and
// SetDisabled change that state without dispatching any event, the same
// way assigning input.checked does in a browser:
//
//	doc.SetChecked(input, true) // no "change" event
//	doc.Click(input)            // toggles, then dispatches "change"
//
// # Activation
//
// Click dispatches a bubbling "click" event and then, unless a listener
// called PreventDefault, runs the activation behavior of the target:
// checkboxes toggle, radios select themselves and clear the rest of their
// native group, labels forward the click to their control. A "change"
// event follows any state mutation, so change listeners always observe the
// new state.
//
// A Document is not safe for concurrent use. Like a page, it is driven from
// a single event loop.
package dom
