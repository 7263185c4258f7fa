package testing

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/go-drift/picker/pkg/dom"
	"github.com/go-drift/picker/pkg/errors"
	"github.com/go-drift/picker/pkg/picker"
)

// Tester drives a document and its picker registry the way a page would.
type Tester struct {
	doc      *dom.Document
	registry *picker.Registry
	metrics  *prometheus.Registry
	changes  []picker.Change
	reported []*errors.PickerError
	panics   []*errors.PanicError

	prevHandler errors.ErrorHandler
}

// NewTester parses markup as a body fragment and creates a registry for
// it. Reported errors are captured until Cleanup. It panics on markup the
// HTML parser rejects. Call Cleanup when done, or use NewTesterWithT
// instead.
func NewTester(markup string, opts ...picker.RegistryOption) *Tester {
	doc, err := dom.ParseFragment(strings.NewReader(markup))
	if err != nil {
		panic(err)
	}
	t := &Tester{
		doc:     doc,
		metrics: prometheus.NewRegistry(),
	}
	opts = append([]picker.RegistryOption{picker.WithMetrics(t.metrics)}, opts...)
	opts = append(opts, picker.WithChangeHandler(func(c picker.Change) {
		t.changes = append(t.changes, c)
	}))
	t.registry = picker.New(doc, opts...)
	t.prevHandler = errors.SetHandler(t)
	return t
}

// NewTesterWithT creates a tester that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewTesterWithT(t *testing.T, markup string, opts ...picker.RegistryOption) *Tester {
	tester := NewTester(markup, opts...)
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup restores the global error handler.
func (t *Tester) Cleanup() {
	errors.SetHandler(t.prevHandler)
}

// Document returns the document under test.
func (t *Tester) Document() *dom.Document {
	return t.doc
}

// Registry returns the registry under test.
func (t *Tester) Registry() *picker.Registry {
	return t.registry
}

// Metrics returns the Prometheus registry the pickers report to.
func (t *Tester) Metrics() *prometheus.Registry {
	return t.metrics
}

// BindAll binds every checkbox and radio in the document.
func (t *Tester) BindAll(opts ...picker.Option) []*picker.Instance {
	return t.registry.BindAll(t.doc.Root(), opts...)
}

// Bind binds the first input matched by finder.
func (t *Tester) Bind(finder Finder, opts ...picker.Option) *picker.Instance {
	n := t.Find(finder).FirstOrNil()
	if n == nil {
		return nil
	}
	return t.registry.Bind(n, opts...)
}

// Instance returns the picker bound to the first node matched by finder,
// or nil.
func (t *Tester) Instance(finder Finder) *picker.Instance {
	n := t.Find(finder).FirstOrNil()
	if n == nil {
		return nil
	}
	inst, _ := t.registry.Lookup(n)
	return inst
}

// Exclusive reports whether at most one bound member of group is checked.
func (t *Tester) Exclusive(group string) bool {
	checked := 0
	for _, inst := range t.registry.Group(group) {
		if inst.Checked() {
			checked++
		}
	}
	return checked <= 1
}

// Changes returns the notifications delivered so far.
func (t *Tester) Changes() []picker.Change {
	return t.changes
}

// ResetChanges forgets the notifications delivered so far.
func (t *Tester) ResetChanges() {
	t.changes = nil
}

// Reported returns the degraded conditions reported so far.
func (t *Tester) Reported() []*errors.PickerError {
	return t.reported
}

// Panics returns the panics recovered so far.
func (t *Tester) Panics() []*errors.PanicError {
	return t.panics
}

// HandleError implements errors.ErrorHandler.
func (t *Tester) HandleError(err *errors.PickerError) {
	t.reported = append(t.reported, err)
}

// HandlePanic implements errors.ErrorHandler.
func (t *Tester) HandlePanic(err *errors.PanicError) {
	t.panics = append(t.panics, err)
}
