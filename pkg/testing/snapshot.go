package testing

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"

	"github.com/go-drift/picker/pkg/dom"
	"github.com/go-drift/picker/pkg/picker"
)

// UpdateEnv is the environment variable that rewrites golden files.
const UpdateEnv = "PICKER_UPDATE_SNAPSHOTS"

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot captures the rendered markup and the state of each picker.
type Snapshot struct {
	Markup string
	States []State
}

// State is the observable state of one picker.
type State struct {
	ID       string
	Kind     string
	Group    string
	Checked  bool
	Disabled bool
	Focused  bool
	Classes  []string
}

// CaptureSnapshot captures the current document and picker states.
func (t *Tester) CaptureSnapshot() *Snapshot {
	snap := &Snapshot{Markup: t.doc.String()}
	for _, inst := range t.registry.Instances() {
		snap.States = append(snap.States, State{
			ID:       inst.ID(),
			Kind:     inst.Kind().String(),
			Group:    inst.Group(),
			Checked:  inst.Checked(),
			Disabled: inst.Disabled(),
			Focused:  inst.Focused(),
			Classes:  stateClasses(inst.Control()),
		})
	}
	return snap
}

func stateClasses(control *html.Node) []string {
	var out []string
	for _, c := range []string{picker.ClassChecked, picker.ClassDisabled, picker.ClassFocus} {
		if dom.HasClass(control, c) {
			out = append(out, c)
		}
	}
	return out
}

// MatchesFile compares the snapshot markup against a golden file. On
// mismatch it reports a diff and instructions for updating. When
// PICKER_UPDATE_SNAPSHOTS=1 is set, the file is silently updated instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv(UpdateEnv) == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: %s=1 go test -run %s", path, UpdateEnv, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(string(expected)); diff != "" {
		t.Errorf("snapshot mismatch: %s (-want +got)\n%s\n\nTo update: %s=1 go test -run %s", path, diff, UpdateEnv, t.Name())
	}
}

// UpdateFile writes the snapshot markup to path, creating directories as
// needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(s.Markup+"\n"), 0o644)
}

// Diff returns a line diff between want and the snapshot markup, or "" if
// they are equal. Trailing newlines are ignored.
func (s *Snapshot) Diff(want string) string {
	w := strings.TrimRight(want, "\n")
	g := strings.TrimRight(s.Markup, "\n")
	if w == g {
		return ""
	}
	return cmp.Diff(splitTags(w), splitTags(g))
}

// splitTags breaks markup before each tag so diffs point at elements
// rather than at one long line.
func splitTags(markup string) []string {
	var out []string
	var cur bytes.Buffer
	for i := 0; i < len(markup); i++ {
		if markup[i] == '<' && cur.Len() > 0 {
			out = append(out, cur.String())
			cur.Reset()
		}
		cur.WriteByte(markup[i])
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}
