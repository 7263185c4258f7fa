// Package picker renders custom checkbox and radio controls over native
// inputs while leaving the native input in charge of checked and disabled
// state.
//
// # Binding
//
// A Registry binds inputs of a dom.Document. Binding wraps the input and
// its label in a container, adds a handle and, in toggle mode, two
// captions:
//
//	doc := dom.MustParseFragment(`<input type="checkbox" id="terms"><label for="terms">Terms</label>`)
//	reg := picker.New(doc)
//	inst := reg.Bind(doc.ByID("terms"), picker.WithToggle(true))
//
// produces
//
//	<div class="picker picker-checkbox picker-toggle">
//	    <input type="checkbox" id="terms" class="picker-element"/>
//	    <div class="picker-handle"><div class="picker-flag"></div></div>
//	    <span class="picker-toggle-label on">ON</span>
//	    <span class="picker-toggle-label off">OFF</span>
//	    <label for="terms" class="picker-label">Terms</label>
//	</div>
//
// Unbind restores the markup exactly. Bind and Unbind are idempotent.
//
// # State
//
// The container mirrors the input through three marker classes: "checked",
// "disabled" and "focus". Clicks on the container are forwarded to the
// input, so toggling stays native; the resulting "change" event drives the
// transition. Radios sharing a name form a group in which at most one
// instance is checked.
//
// # Notifications
//
// Subscribers registered with OnChange hear about transitions caused by
// the user or by foreign scripts dispatching events (External origin).
// Transitions the package causes itself, such as deselecting the other
// members of a radio group or resynchronizing through Update, carry the
// Internal origin and are never announced.
//
// # Options
//
// Options resolve from three layers in increasing precedence: the
// Registry's DefaultsProvider, the Option values passed to Bind, and the
// input's data-picker-options attribute:
//
//	<input type="checkbox" data-picker-options='{"toggle": true, "labels": {"on": "Yes", "off": "No"}}'>
//
// A Registry is driven from a single event loop and is not safe for
// concurrent use.
package picker
