package testing

import "fmt"

// Tap clicks the first node matched by finder, running the same dispatch
// and activation a user click would.
func (t *Tester) Tap(finder Finder) error {
	result := t.Find(finder)
	if !result.Exists() {
		return fmt.Errorf("Tap: finder matched no nodes: %s", finder.Description())
	}
	t.doc.Click(result.First())
	return nil
}

// Focus moves focus to the first node matched by finder.
func (t *Tester) Focus(finder Finder) error {
	result := t.Find(finder)
	if !result.Exists() {
		return fmt.Errorf("Focus: finder matched no nodes: %s", finder.Description())
	}
	t.doc.Focus(result.First())
	return nil
}

// Blur clears focus.
func (t *Tester) Blur() {
	t.doc.Blur()
}

// SetChecked mutates the native checked state of the first node matched
// by finder the way a foreign script would: no event is dispatched.
func (t *Tester) SetChecked(finder Finder, checked bool) error {
	result := t.Find(finder)
	if !result.Exists() {
		return fmt.Errorf("SetChecked: finder matched no nodes: %s", finder.Description())
	}
	t.doc.SetChecked(result.First(), checked)
	return nil
}
