// Package app provides the orchestration layer for prlogs.
//
// # Overview
//
// This package wires together configuration, the build-log source, state
// management and the UI. It is the composition root where all
// dependencies are initialized and connected.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()        Read ~/.config/prlogs/config.toml
//	       ├─────> prefs.Load()         Theme and timestamp toggle
//	       ├─────> newFetcher()         github.Client or replay.Source
//	       ├─────> Loader.Start()       Background fetches
//	       ├─────> replay.Watch()       Only with --file --watch
//	       └─────> ui.Run()             Start TUI (blocks)
//
//	Loader goroutine:
//	┌─────────────────────────────────────────┐
//	│  ├─> fetcher.FetchBuildLogs()           │
//	│  ├─> store.Update()  (atomic)           │
//	│  └─> wait: interval, Reload() or backoff│
//	└─────────────────────────────────────────┘
//
// # Source Selection
//
// With --file the snapshot is served by replay.Source and the PR argument is
// ignored. Otherwise the repository comes from the PR URL, then -R, then the
// config's repo key, then the git remote of the working directory.
//
// # Refresh Behavior
//
// refresh_interval = 0 (the default) fetches once and then only when the
// user presses r or a watched snapshot changes. A positive interval refetches
// on a timer. Failed fetches are retried with exponential backoff starting at
// the interval (5s when manual) and capped at 30s; the previous result stays
// on screen meanwhile and the status bar reports the failure.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Invalid configuration file
//   - Missing or malformed PR argument, unresolvable repository
//   - --watch without --file
//
// Recoverable errors (logged, shown in the status bar):
//   - gh failures and network errors during fetches
//   - Snapshot files that fail to parse after an edit
//
// Dump performs a single fetch and writes the result with replay.Save, so a
// PR's logs can be reopened later with --file.
package app
