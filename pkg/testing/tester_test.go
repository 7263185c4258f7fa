package testing_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/go-drift/picker/pkg/errors"
	"github.com/go-drift/picker/pkg/picker"
	pickertest "github.com/go-drift/picker/pkg/testing"
)

const planMarkup = `<form>
<input type="checkbox" id="terms"><label for="terms">Terms</label>
<input type="radio" name="plan" id="free" value="free" checked><label for="free">Free</label>
<input type="radio" name="plan" id="pro" value="pro"><label for="pro">Pro</label>
</form>`

func TestTester_TapHandleChecksCheckbox(t *testing.T) {
	tester := pickertest.NewTesterWithT(t, planMarkup)
	tester.BindAll()

	if err := tester.Tap(pickertest.HandleOf("terms")); err != nil {
		t.Fatal(err)
	}

	inst := tester.Instance(pickertest.ByID("terms"))
	if inst == nil {
		t.Fatal("terms not bound")
	}
	if !inst.Checked() {
		t.Error("expected terms to be checked")
	}
	changes := tester.Changes()
	if len(changes) != 1 {
		t.Fatalf("got %d notifications, want 1", len(changes))
	}
	if changes[0].ID != "terms" || !changes[0].Checked {
		t.Errorf("unexpected change %+v", changes[0])
	}
}

func TestTester_RadioGroupStaysExclusive(t *testing.T) {
	tester := pickertest.NewTesterWithT(t, planMarkup)
	tester.BindAll()

	if err := tester.Tap(pickertest.ControlOf("pro")); err != nil {
		t.Fatal(err)
	}
	if !tester.Exclusive("plan") {
		t.Fatal("plan group has more than one checked member")
	}
	if !tester.Instance(pickertest.ByID("pro")).Checked() {
		t.Error("expected pro checked")
	}
	if tester.Instance(pickertest.ByID("free")).Checked() {
		t.Error("expected free cleared")
	}

	// Only the selected member notifies.
	changes := tester.Changes()
	if len(changes) != 1 || changes[0].ID != "pro" {
		t.Errorf("changes = %+v, want one for pro", changes)
	}
}

func TestTester_TapMissingNode(t *testing.T) {
	tester := pickertest.NewTesterWithT(t, planMarkup)
	err := tester.Tap(pickertest.ByID("nope"))
	if err == nil || !strings.Contains(err.Error(), `ByID("nope")`) {
		t.Errorf("Tap error = %v", err)
	}
}

func TestTester_FocusAndBlur(t *testing.T) {
	tester := pickertest.NewTesterWithT(t, planMarkup)
	tester.BindAll()

	if err := tester.Focus(pickertest.ByID("terms")); err != nil {
		t.Fatal(err)
	}
	inst := tester.Instance(pickertest.ByID("terms"))
	if !inst.Focused() {
		t.Error("expected focus")
	}
	tester.Blur()
	if inst.Focused() {
		t.Error("expected blur")
	}
}

func TestTester_ForeignMutationIsStale(t *testing.T) {
	tester := pickertest.NewTesterWithT(t, planMarkup)
	tester.BindAll()

	if err := tester.SetChecked(pickertest.ByID("terms"), true); err != nil {
		t.Fatal(err)
	}
	inst := tester.Instance(pickertest.ByID("terms"))
	if inst.Checked() {
		t.Error("mirror should not observe a mutation without an event")
	}
	tester.Registry().Update(inst.Input())
	if !inst.Checked() {
		t.Error("Update should refresh the mirror")
	}
	if len(tester.Changes()) != 0 {
		t.Error("Update must not notify")
	}
}

func TestTester_CapturesReportedErrors(t *testing.T) {
	tester := pickertest.NewTesterWithT(t, `<input type="checkbox" id="lonely">`)
	tester.BindAll()

	reported := tester.Reported()
	if len(reported) != 1 {
		t.Fatalf("got %d reports, want 1", len(reported))
	}
	if reported[0].Kind != errors.KindLabel {
		t.Errorf("kind = %v, want %v", reported[0].Kind, errors.KindLabel)
	}
}

func TestTester_CleanupRestoresHandler(t *testing.T) {
	prev := errors.DefaultHandler
	tester := pickertest.NewTester(`<p></p>`)
	if errors.DefaultHandler != errors.ErrorHandler(tester) {
		t.Error("tester should install itself as handler")
	}
	tester.Cleanup()
	if errors.DefaultHandler != prev {
		t.Error("Cleanup should restore the previous handler")
	}
}

func TestTester_Metrics(t *testing.T) {
	tester := pickertest.NewTesterWithT(t, planMarkup)
	tester.BindAll()

	n, err := testutil.GatherAndCount(tester.Metrics(), "picker_bound_instances")
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("got %d series, want 1", n)
	}
}

func TestTester_ToggleCaptions(t *testing.T) {
	tester := pickertest.NewTesterWithT(t, planMarkup)
	tester.Bind(pickertest.ByID("terms"), picker.WithToggle(true), picker.WithLabels("Yes", "No"))

	captions := tester.Find(pickertest.CaptionsOf("terms"))
	if captions.Count() != 2 {
		t.Fatalf("got %d captions, want 2", captions.Count())
	}
	if got := captions.At(0).FirstChild.Data; got != "Yes" {
		t.Errorf("on caption = %q", got)
	}
}

func TestSnapshot_RoundTrip(t *testing.T) {
	tester := pickertest.NewTesterWithT(t, planMarkup)
	tester.BindAll()
	path := filepath.Join(t.TempDir(), "golden", "plan.html")

	snap := tester.CaptureSnapshot()
	if err := snap.UpdateFile(path); err != nil {
		t.Fatal(err)
	}
	snap.MatchesFile(t, path)

	if len(snap.States) != 3 {
		t.Fatalf("got %d states, want 3", len(snap.States))
	}
	if s := snap.States[1]; s.ID != "free" || !s.Checked || s.Group != "plan" {
		t.Errorf("free state = %+v", s)
	}
}

type fakeT struct {
	errors []string
	fatals []string
}

func (f *fakeT) Helper()      {}
func (f *fakeT) Name() string { return "TestFake" }
func (f *fakeT) Errorf(format string, args ...any) {
	f.errors = append(f.errors, format)
}
func (f *fakeT) Fatalf(format string, args ...any) {
	f.fatals = append(f.fatals, format)
}

func TestSnapshot_MismatchReportsDiff(t *testing.T) {
	t.Setenv(pickertest.UpdateEnv, "")
	tester := pickertest.NewTesterWithT(t, planMarkup)
	tester.BindAll()
	path := filepath.Join(t.TempDir(), "plan.html")
	if err := os.WriteFile(path, []byte("<p>stale</p>\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ft := &fakeT{}
	tester.CaptureSnapshot().MatchesFile(ft, path)
	if len(ft.errors) != 1 {
		t.Errorf("got %d errors, want 1", len(ft.errors))
	}
}

func TestSnapshot_MissingFile(t *testing.T) {
	t.Setenv(pickertest.UpdateEnv, "")
	tester := pickertest.NewTesterWithT(t, `<p></p>`)
	ft := &fakeT{}
	tester.CaptureSnapshot().MatchesFile(ft, filepath.Join(t.TempDir(), "missing.html"))
	if len(ft.fatals) != 1 {
		t.Errorf("got %d fatals, want 1", len(ft.fatals))
	}
}

func TestSnapshot_UpdateEnvWritesFile(t *testing.T) {
	t.Setenv(pickertest.UpdateEnv, "1")
	tester := pickertest.NewTesterWithT(t, planMarkup)
	tester.BindAll()
	path := filepath.Join(t.TempDir(), "plan.html")

	tester.CaptureSnapshot().MatchesFile(t, path)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `class="picker-handle"`) {
		t.Errorf("snapshot missing handle markup:\n%s", data)
	}
}

func TestSnapshot_DiffIgnoresTrailingNewline(t *testing.T) {
	s := &pickertest.Snapshot{Markup: "<p>a</p>"}
	if d := s.Diff("<p>a</p>\n\n"); d != "" {
		t.Errorf("unexpected diff %s", d)
	}
	if d := s.Diff("<p>b</p>"); d == "" {
		t.Error("expected a diff")
	}
}
