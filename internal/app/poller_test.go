package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/five82/prlogs/internal/buildlog"
	"github.com/five82/prlogs/internal/github"
	"github.com/five82/prlogs/internal/state"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"four failures capped", 4, 30 * time.Second}, // Would be 32s, capped to 30s
		{"many failures capped", 10, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 80; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, baseInterval, got, maxBackoff)
		}
	}
}

type fakeFetcher struct {
	mu      sync.Mutex
	results []error
	calls   int
	fetched chan int
}

func (f *fakeFetcher) FetchBuildLogs(_ context.Context, number int) (github.Result, error) {
	f.mu.Lock()
	var err error
	if f.calls < len(f.results) {
		err = f.results[f.calls]
	}
	f.calls++
	call := f.calls
	f.mu.Unlock()

	defer func() { f.fetched <- call }()
	if err != nil {
		return github.Result{}, err
	}
	return github.Result{
		PR:   buildlog.PRContext{Number: number, Title: "Add poller"},
		Jobs: []buildlog.JobLog{{Workflow: "ci", Name: "test"}},
	}, nil
}

func waitFetch(t *testing.T, ch <-chan int) int {
	t.Helper()
	select {
	case n := <-ch:
		return n
	case <-time.After(5 * time.Second):
		t.Fatalf("no fetch within 5s")
		return 0
	}
}

func TestLoader_PublishesAndReloads(t *testing.T) {
	store := &state.Store{}
	fetcher := &fakeFetcher{fetched: make(chan int, 4)}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loader := NewLoader(store, fetcher, 42, 0)
	loader.Start(ctx)

	waitFetch(t, fetcher.fetched)
	// Update runs right after the fetch returns.
	deadline := time.Now().Add(5 * time.Second)
	for store.Generation() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	snap := store.Snapshot()
	if !snap.HasResult || snap.Result.PR.Number != 42 || snap.Generation != 1 {
		t.Fatalf("snapshot = %+v, want first result for PR 42", snap)
	}

	loader.Reload()
	if n := waitFetch(t, fetcher.fetched); n != 2 {
		t.Fatalf("fetch call = %d, want 2", n)
	}
}

func TestLoader_RecordsFailures(t *testing.T) {
	store := &state.Store{}
	fetcher := &fakeFetcher{
		results: []error{errors.New("gh: HTTP 502")},
		fetched: make(chan int, 4),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	NewLoader(store, fetcher, 7, 0).Start(ctx)
	waitFetch(t, fetcher.fetched)

	deadline := time.Now().Add(5 * time.Second)
	var snap state.Snapshot
	for time.Now().Before(deadline) {
		snap = store.Snapshot()
		if snap.LastError != nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if snap.LastError == nil || snap.ConsecutiveFailures != 1 || snap.HasResult {
		t.Fatalf("snapshot = %+v, want one recorded failure", snap)
	}
	if snap.Loading {
		t.Fatalf("Loading still set after failed fetch")
	}
}

func TestLoader_ReloadCoalesces(t *testing.T) {
	l := NewLoader(&state.Store{}, &fakeFetcher{}, 1, 0)
	l.Reload()
	l.Reload()
	l.Reload()
	if got := len(l.reload); got != 1 {
		t.Fatalf("pending reloads = %d, want 1", got)
	}
}
