package replay

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestWatch_DebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pr.yaml")
	writeFile(t, path, "jobs: []\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 8)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, 50*time.Millisecond, func() { changed <- struct{}{} })
	}()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)

	writeFile(t, filepath.Join(dir, "other.yaml"), "ignored")
	for i := 0; i < 3; i++ {
		writeFile(t, path, "jobs: []\n")
	}

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatalf("no change notification within 5s")
	}

	select {
	case <-changed:
		t.Fatalf("burst of writes produced more than one notification")
	case <-time.After(300 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Watch returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Watch did not return after cancel")
	}
}

func TestWatch_MissingDirectoryFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "pr.yaml")
	if err := Watch(context.Background(), path, 0, func() {}); err == nil {
		t.Fatalf("Watch returned nil error for missing directory")
	}
}
