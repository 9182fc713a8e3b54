package state

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/five82/prlogs/internal/buildlog"
	"github.com/five82/prlogs/internal/github"
)

func sampleResult() *github.Result {
	return &github.Result{
		PR: buildlog.PRContext{Number: 7, Title: "Add retries"},
		Jobs: []buildlog.JobLog{
			{Workflow: "ci", Name: "build", Steps: []buildlog.StepLog{{Name: "go build", Lines: []string{"ok"}}}},
		},
		Metadata: map[buildlog.JobKey]buildlog.JobMetadata{
			{Workflow: "ci", Job: "build"}: {Status: buildlog.StatusSuccess},
		},
	}
}

func TestStore_UpdateAndSnapshotClone(t *testing.T) {
	var s Store

	before := time.Now()
	s.Update(sampleResult(), nil)

	snap := s.Snapshot()
	if !snap.HasResult || snap.Result.PR.Number != 7 {
		t.Fatalf("snapshot result = %#v, want PR 7 HasResult=true", snap.Result.PR)
	}
	if len(snap.Result.Jobs) != 1 || snap.Result.Jobs[0].Name != "build" {
		t.Fatalf("snapshot jobs = %#v, want 1 job", snap.Result.Jobs)
	}
	if snap.Generation != 1 || s.Generation() != 1 {
		t.Fatalf("Generation = %d, want 1", snap.Generation)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Result.Jobs[0].Steps[0].Lines[0] = "mutated"
	snap2 := s.Snapshot()
	if got := snap2.Result.Jobs[0].Steps[0].Lines[0]; got != "ok" {
		t.Fatalf("Snapshot should clone result; got line %q want ok", got)
	}
}

func TestStore_UpdateErrorKeepsPreviousData(t *testing.T) {
	var s Store

	s.Update(sampleResult(), nil)
	prev := s.Snapshot()

	before := time.Now()
	origErr := errors.New("boom")
	s.Update(nil, origErr)

	snap := s.Snapshot()
	if snap.HasResult != prev.HasResult || snap.Result.PR != prev.Result.PR {
		t.Fatalf("result changed on error: got %#v want %#v", snap.Result.PR, prev.Result.PR)
	}
	if snap.Generation != prev.Generation {
		t.Fatalf("Generation = %d, want unchanged %d", snap.Generation, prev.Generation)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	// Initially zero failures
	snap := s.Snapshot()
	if snap.ConsecutiveFailures != 0 {
		t.Fatalf("ConsecutiveFailures = %d, want 0", snap.ConsecutiveFailures)
	}
	if snap.IsOffline() {
		t.Fatal("IsOffline() = true, want false with 0 failures")
	}

	s.Update(nil, errors.New("fail 1"))
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 1 || snap.IsOffline() {
		t.Fatalf("after 1 failure: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}

	s.Update(nil, errors.New("fail 2"))
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 2 || !snap.IsOffline() {
		t.Fatalf("after 2 failures: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}

	// Success resets counter
	s.Update(sampleResult(), nil)
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.IsOffline() {
		t.Fatalf("after success: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}
}

func TestStore_Loading(t *testing.T) {
	var s Store

	s.SetLoading(true)
	if !s.Snapshot().Loading {
		t.Fatal("Loading = false, want true")
	}
	s.Update(nil, errors.New("fail"))
	if s.Snapshot().Loading {
		t.Fatal("Update should clear Loading")
	}
}
