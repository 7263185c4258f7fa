package script

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/picker/pkg/dom"
	"github.com/go-drift/picker/pkg/picker"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Step
		wantErr bool
	}{
		{in: "click:terms", want: Step{Action: Click, ID: "terms"}},
		{in: "TAP:pro", want: Step{Action: Tap, ID: "pro"}},
		{in: " label : free ", want: Step{Action: Label, ID: "free"}},
		{in: "blur", want: Step{Action: Blur}},
		{in: "uncheck:a", want: Step{Action: Uncheck, ID: "a"}},
		{in: "click", wantErr: true},
		{in: "click:", wantErr: true},
		{in: "hover:a", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseAll_StopsAtFirstError(t *testing.T) {
	if _, err := ParseAll([]string{"click:a", "nope:b"}); err == nil {
		t.Error("expected error")
	}
	steps, err := ParseAll([]string{"click:a", "blur"})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"click:a", "blur"}, []string{steps[0].String(), steps[1].String()}); diff != "" {
		t.Errorf("steps mismatch (-want +got):\n%s", diff)
	}
}

const markup = `<input type="checkbox" id="terms"><label for="terms">Terms</label>` +
	`<input type="radio" name="plan" id="free" checked><label for="free">Free</label>` +
	`<input type="radio" name="plan" id="pro"><label for="pro">Pro</label>` +
	`<input type="checkbox" id="loose">`

func TestRun(t *testing.T) {
	doc := dom.MustParseFragment(markup)
	var changes []string
	reg := picker.New(doc, picker.WithChangeHandler(func(c picker.Change) {
		changes = append(changes, c.ID)
	}))
	reg.Bind(doc.ByID("terms"))
	reg.Bind(doc.ByID("free"))
	reg.Bind(doc.ByID("pro"))

	for _, s := range []string{"tap:terms", "label:pro", "focus:free", "blur", "disable:terms", "click:terms", "check:terms"} {
		step, err := Parse(s)
		if err != nil {
			t.Fatal(err)
		}
		if err := Run(reg, step); err != nil {
			t.Fatalf("Run(%s): %v", s, err)
		}
	}

	if diff := cmp.Diff([]string{"terms", "pro"}, changes); diff != "" {
		t.Errorf("notifications mismatch (-want +got):\n%s", diff)
	}
	pro, _ := reg.Lookup(doc.ByID("pro"))
	free, _ := reg.Lookup(doc.ByID("free"))
	if !pro.Checked() || free.Checked() {
		t.Errorf("pro=%v free=%v, want pro only", pro.Checked(), free.Checked())
	}
	terms, _ := reg.Lookup(doc.ByID("terms"))
	if !terms.Disabled() {
		t.Error("terms should be disabled")
	}
}

func TestRun_Errors(t *testing.T) {
	doc := dom.MustParseFragment(markup)
	reg := picker.New(doc)

	tests := []Step{
		{Action: Click, ID: "missing"},
		{Action: Tap, ID: "loose"},
		{Action: Label, ID: "loose"},
	}
	for _, step := range tests {
		t.Run(step.String(), func(t *testing.T) {
			if err := Run(reg, step); err == nil {
				t.Errorf("Run(%s) expected error", step)
			}
		})
	}
}
