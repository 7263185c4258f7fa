package picker

import (
	"testing"

	"golang.org/x/net/html"

	"github.com/go-drift/picker/pkg/dom"
	"github.com/go-drift/picker/pkg/errors"
)

type fixture struct {
	doc     *dom.Document
	reg     *Registry
	changes []Change
}

func newFixture(t *testing.T, markup string, opts ...RegistryOption) *fixture {
	t.Helper()
	f := &fixture{doc: dom.MustParseFragment(markup)}
	opts = append(opts, WithChangeHandler(func(c Change) { f.changes = append(f.changes, c) }))
	f.reg = New(f.doc, opts...)
	return f
}

func (f *fixture) input(t *testing.T, id string) *html.Node {
	t.Helper()
	n := f.doc.ByID(id)
	if n == nil {
		t.Fatalf("no element with id %q", id)
	}
	return n
}

func (f *fixture) bind(t *testing.T, id string, opts ...Option) *Instance {
	t.Helper()
	inst := f.reg.Bind(f.input(t, id), opts...)
	if inst == nil {
		t.Fatalf("Bind(#%s) returned nil", id)
	}
	return inst
}

// assertMirror checks that every bound instance agrees with its input and
// its container classes.
func assertMirror(t *testing.T, reg *Registry) {
	t.Helper()
	for _, inst := range reg.Instances() {
		if inst.Checked() != dom.Checked(inst.Input()) {
			t.Errorf("#%s: cached checked=%v, native=%v", inst.ID(), inst.Checked(), dom.Checked(inst.Input()))
		}
		if inst.Disabled() != dom.Disabled(inst.Input()) {
			t.Errorf("#%s: cached disabled=%v, native=%v", inst.ID(), inst.Disabled(), dom.Disabled(inst.Input()))
		}
		if dom.HasClass(inst.Control(), ClassChecked) != inst.Checked() {
			t.Errorf("#%s: checked class out of sync", inst.ID())
		}
		if dom.HasClass(inst.Control(), ClassDisabled) != inst.Disabled() {
			t.Errorf("#%s: disabled class out of sync", inst.ID())
		}
	}
}

// captureErrors routes reported errors into a slice for the test duration.
func captureErrors(t *testing.T) *[]*errors.PickerError {
	t.Helper()
	var got []*errors.PickerError
	old := errors.SetHandler(&recordingHandler{errs: &got})
	t.Cleanup(func() { errors.SetHandler(old) })
	return &got
}

type recordingHandler struct {
	errs   *[]*errors.PickerError
	panics []*errors.PanicError
}

func (h *recordingHandler) HandleError(err *errors.PickerError) {
	*h.errs = append(*h.errs, err)
}

func (h *recordingHandler) HandlePanic(err *errors.PanicError) {
	h.panics = append(h.panics, err)
}
