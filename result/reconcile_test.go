package result

import (
	"testing"

	"github.com/normsend/normsend-go/types"
)

const serviceURL = "http://localhost:8080"

// TestReconcileMixedOutcomes covers a batch with one success and one failure.
func TestReconcileMixedOutcomes(t *testing.T) {
	vm := Reconcile(serviceURL, "J1", []types.FileOutcome{
		{OriginalName: "a.mp3", Status: types.OutcomeSuccess, ProcessedName: "a_norm.mp3"},
		{OriginalName: "b.mp3", Status: types.OutcomeError, Error: "decode failed"},
	})

	if vm.InvalidResponse {
		t.Fatal("valid response flagged as invalid")
	}
	if len(vm.Successes) != 1 {
		t.Fatalf("expected 1 success, got %d", len(vm.Successes))
	}
	if vm.Successes[0].ProcessedName != "a_norm.mp3" {
		t.Errorf("unexpected processed name %q", vm.Successes[0].ProcessedName)
	}
	if vm.Successes[0].DownloadURL != serviceURL+"/download/J1/a_norm.mp3" {
		t.Errorf("unexpected download URL %q", vm.Successes[0].DownloadURL)
	}
	if !vm.AnyFailures {
		t.Error("failed outcome not reflected in AnyFailures")
	}
	if !vm.CanDownloadAll {
		t.Error("expected CanDownloadAll with at least one success")
	}
	if vm.DownloadAllURL != serviceURL+"/download_zip/J1" {
		t.Errorf("unexpected zip URL %q", vm.DownloadAllURL)
	}
	if vm.NoSuccesses {
		t.Error("NoSuccesses set despite one success")
	}
}

// TestReconcileUnknownStatus checks that an unrecognized status counts as a
// failure instead of dropping silently or panicking.
func TestReconcileUnknownStatus(t *testing.T) {
	vm := Reconcile(serviceURL, "J1", []types.FileOutcome{
		{OriginalName: "a.mp3", Status: "pending"},
	})
	if !vm.AnyFailures {
		t.Error("unknown status must count as a failure")
	}
	if len(vm.Successes) != 0 {
		t.Errorf("unknown status produced %d successes", len(vm.Successes))
	}
}

// TestReconcileAllFailed checks the everything-failed view state.
func TestReconcileAllFailed(t *testing.T) {
	vm := Reconcile(serviceURL, "J1", []types.FileOutcome{
		{OriginalName: "a.mp3", Status: types.OutcomeError, Details: "clipped"},
	})
	if !vm.NoSuccesses {
		t.Error("expected NoSuccesses")
	}
	if vm.CanDownloadAll {
		t.Error("batch download must be unavailable without successes")
	}
	if vm.DownloadAllURL != "" {
		t.Errorf("unexpected zip URL %q", vm.DownloadAllURL)
	}
}

// TestReconcileEmptyOutcomes distinguishes a present-but-empty result list
// from a missing one.
func TestReconcileEmptyOutcomes(t *testing.T) {
	vm := Reconcile(serviceURL, "J1", []types.FileOutcome{})
	if vm.InvalidResponse {
		t.Error("empty outcome list is valid, not malformed")
	}
	if !vm.NoSuccesses || vm.CanDownloadAll {
		t.Errorf("unexpected view for empty outcomes: %+v", vm)
	}
}

// TestReconcileNilOutcomes checks that a missing list degrades to the
// invalid-response state.
func TestReconcileNilOutcomes(t *testing.T) {
	vm := Reconcile(serviceURL, "J1", nil)
	if !vm.InvalidResponse {
		t.Error("nil outcome list must flag InvalidResponse")
	}
	if vm.CanDownloadAll {
		t.Error("invalid response must not offer batch download")
	}
}

// TestReconcileEscapesDownloadNames checks that processed names are escaped
// for display and path-escaped inside the download URL.
func TestReconcileEscapesDownloadNames(t *testing.T) {
	vm := Reconcile(serviceURL, "J1", []types.FileOutcome{
		{OriginalName: "a.mp3", Status: types.OutcomeSuccess, ProcessedName: "a b<i>.mp3"},
	})
	if len(vm.Successes) != 1 {
		t.Fatalf("expected 1 success, got %d", len(vm.Successes))
	}
	if vm.Successes[0].ProcessedName != "a b&lt;i&gt;.mp3" {
		t.Errorf("display name not escaped: %q", vm.Successes[0].ProcessedName)
	}
	if vm.Successes[0].DownloadURL != serviceURL+"/download/J1/a%20b%3Ci%3E.mp3" {
		t.Errorf("download URL not path-escaped: %q", vm.Successes[0].DownloadURL)
	}
}
