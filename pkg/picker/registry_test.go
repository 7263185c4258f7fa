package picker

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/go-drift/picker/pkg/dom"
)

func TestEnableDisable(t *testing.T) {
	f := newFixture(t, `<input type="checkbox" id="a"><label for="a">A</label>`)
	inst := f.bind(t, "a")

	f.reg.Disable(inst.Input())
	if !inst.Disabled() || !dom.Disabled(inst.Input()) || !dom.HasClass(inst.Control(), ClassDisabled) {
		t.Error("Disable should update instance, input and container together")
	}
	assertMirror(t, f.reg)

	f.reg.Enable(inst.Input())
	if inst.Disabled() || dom.Disabled(inst.Input()) || dom.HasClass(inst.Control(), ClassDisabled) {
		t.Error("Enable should update instance, input and container together")
	}
	assertMirror(t, f.reg)

	f.doc.Click(inst.Handle())
	if !inst.Checked() {
		t.Error("re-enabled picker should toggle again")
	}
}

func TestDisable_ClearsFocus(t *testing.T) {
	f := newFixture(t, `<input type="checkbox" id="a"><label for="a">A</label>`)
	inst := f.bind(t, "a")
	f.doc.Focus(inst.Input())

	f.reg.Disable(inst.Input())
	if inst.Focused() || dom.HasClass(inst.Control(), ClassFocus) {
		t.Error("disabling the focused input should drop the focus class")
	}
}

func TestOperationsOnUnbound(t *testing.T) {
	f := newFixture(t, `<input type="checkbox" id="a"><label for="a">A</label>`)
	input := f.input(t, "a")
	before := f.doc.String()

	f.reg.Disable(input)
	f.reg.Enable(input)
	f.reg.Update(input)
	f.reg.Unbind(input)
	f.reg.Destroy(input)

	if f.doc.String() != before {
		t.Error("operations on an unbound input changed the document")
	}
	if dom.Disabled(input) {
		t.Error("Disable on an unbound input should not touch it")
	}
}

func TestUpdate_SuppressesNotification(t *testing.T) {
	f := newFixture(t, `<input type="checkbox" id="a"><label for="a">A</label>`)
	inst := f.bind(t, "a")

	f.doc.SetChecked(inst.Input(), true)
	f.reg.Update(inst.Input())

	if !inst.Checked() || !dom.HasClass(inst.Control(), ClassChecked) {
		t.Error("Update should resynchronize presentation")
	}
	if len(f.changes) != 0 {
		t.Errorf("Update notified %d times", len(f.changes))
	}

	// The same state change made by the user is announced.
	f.doc.Click(inst.Handle())
	f.doc.Click(inst.Handle())
	if len(f.changes) != 2 {
		t.Errorf("user clicks notified %d times, want 2", len(f.changes))
	}
}

func TestUpdateAll(t *testing.T) {
	f := newFixture(t, `<input type="checkbox" id="a"><label for="a">A</label><input type="checkbox" id="b"><label for="b">B</label>`)
	f.reg.BindAll(f.doc.Root())
	f.doc.SetChecked(f.input(t, "a"), true)
	f.doc.SetDisabled(f.input(t, "b"), true)

	f.reg.UpdateAll()
	assertMirror(t, f.reg)
}

func TestSetDefaults(t *testing.T) {
	f := newFixture(t, `<input type="checkbox" id="a"><label for="a">A</label><input type="checkbox" id="b"><label for="b">B</label>`)
	a := f.bind(t, "a")

	f.reg.SetDefaults(Options{CustomClass: "later", Toggle: true})
	b := f.bind(t, "b")

	if dom.HasClass(a.Control(), "later") || len(a.Captions()) != 0 {
		t.Error("SetDefaults must not affect bound instances")
	}
	if !dom.HasClass(b.Control(), "later") || len(b.Captions()) != 2 {
		t.Error("SetDefaults should apply to later binds")
	}
	if labels, _ := b.Toggle(); labels.On != DefaultOnLabel {
		t.Errorf("blank default captions should fall back, got %+v", labels)
	}
	if f.reg.Defaults().CustomClass != "later" {
		t.Error("Defaults() should report the replaced configuration")
	}
}

func TestWithDefaultsProvider(t *testing.T) {
	provider := StaticDefaults{CustomClass: "from-provider", Labels: Labels{On: "I", Off: "O"}}
	f := newFixture(t, `<input type="checkbox" id="a" data-picker-options='{"toggle": true}'><label for="a">A</label>`,
		WithDefaults(provider))
	inst := f.bind(t, "a")

	if inst.CustomClass() != "from-provider" {
		t.Errorf("CustomClass = %q", inst.CustomClass())
	}
	labels, on := inst.Toggle()
	if !on || labels.On != "I" || labels.Off != "O" {
		t.Errorf("toggle = %v %+v", on, labels)
	}
}

func TestBindAll(t *testing.T) {
	f := newFixture(t, `<form><input type="checkbox" id="a"><label for="a">A</label><input type="text" id="t"><label><input type="radio" name="g" id="r"> R</label></form>`)
	got := f.reg.BindAll(f.doc.Root(), WithCustomClass("all"))

	if len(got) != 2 {
		t.Fatalf("BindAll bound %d inputs, want 2", len(got))
	}
	for _, inst := range got {
		if !dom.HasClass(inst.Control(), "all") {
			t.Errorf("#%s missing call-level class", inst.ID())
		}
	}
	if len(f.reg.BindAll(f.doc.Root())) != 2 {
		t.Error("BindAll should return already bound instances")
	}
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	f := newFixture(t, planMarkup, WithMetrics(reg))
	f.reg.BindAll(f.doc.Root())

	f.doc.Click(f.input(t, "b"))

	m := f.reg.metrics
	if got := testutil.ToFloat64(m.bound); got != 3 {
		t.Errorf("bound = %v, want 3", got)
	}
	if got := testutil.ToFloat64(m.transitions.WithLabelValues("radio", "external", "checked")); got != 1 {
		t.Errorf("external checked transitions = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.transitions.WithLabelValues("radio", "internal", "unchecked")); got != 1 {
		t.Errorf("internal unchecked transitions = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.notifications.WithLabelValues("radio")); got != 1 {
		t.Errorf("notifications = %v, want 1", got)
	}

	f.reg.Unbind(f.input(t, "a"))
	if got := testutil.ToFloat64(m.bound); got != 2 {
		t.Errorf("bound after unbind = %v, want 2", got)
	}

	expected := `
# HELP picker_bound_instances Number of inputs currently bound to a picker.
# TYPE picker_bound_instances gauge
picker_bound_instances 2
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "picker_bound_instances"); err != nil {
		t.Error(err)
	}
}

func TestLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	f := newFixture(t, planMarkup, WithLogger(zap.New(core)))
	f.bind(t, "a")
	f.bind(t, "b")

	f.doc.Click(f.input(t, "b"))

	transitions := logs.FilterMessage("picker transition").All()
	if len(transitions) != 2 {
		t.Fatalf("got %d transition entries, want 2", len(transitions))
	}
	origins := map[string]bool{}
	for _, e := range transitions {
		origins[e.ContextMap()["origin"].(string)] = true
	}
	if !origins["external"] || !origins["internal"] {
		t.Errorf("origins logged = %v", origins)
	}
	if logs.FilterMessage("picker bound").Len() != 2 {
		t.Error("expected one bind entry per input")
	}
}

func TestMultipleSubscribers(t *testing.T) {
	f := newFixture(t, `<input type="checkbox" id="a"><label for="a">A</label>`)
	extra := 0
	f.reg.OnChange(func(Change) { extra++ })
	f.reg.OnChange(nil)
	inst := f.bind(t, "a")

	f.doc.Click(inst.Handle())
	if extra != 1 || len(f.changes) != 1 {
		t.Errorf("subscribers saw %d and %d changes", extra, len(f.changes))
	}
}

func TestHandlerPanicRecovered(t *testing.T) {
	captureErrors(t)
	f := newFixture(t, `<input type="checkbox" id="a"><label for="a">A</label>`)
	f.reg.OnChange(func(Change) { panic("subscriber failed") })
	inst := f.bind(t, "a")

	f.doc.Click(inst.Handle())
	if !inst.Checked() {
		t.Error("state should be applied before subscribers run")
	}
}
