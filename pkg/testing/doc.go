// Package testing provides a harness for testing documents with bound
// pickers.
//
// # Quick Start
//
// Create a tester from markup, bind, interact, and assert:
//
//	func TestTerms(t *testing.T) {
//	    tester := pickertest.NewTesterWithT(t, `<input type="checkbox" id="terms"><label for="terms">Terms</label>`)
//	    tester.BindAll()
//
//	    if err := tester.Tap(pickertest.HandleOf("terms")); err != nil {
//	        t.Fatal(err)
//	    }
//
//	    if !tester.Instance(pickertest.ByID("terms")).Checked() {
//	        t.Error("expected terms to be checked")
//	    }
//	    if got := len(tester.Changes()); got != 1 {
//	        t.Errorf("got %d notifications", got)
//	    }
//	}
//
// # Snapshot Testing
//
// Capture and compare the rendered markup:
//
//	tester.CaptureSnapshot().MatchesFile(t, "testdata/terms.html")
//
// Update snapshots with:
//
//	PICKER_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import pickertest "github.com/go-drift/picker/pkg/testing"
package testing
