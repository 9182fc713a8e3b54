// Package state provides thread-safe state management for prlogs.
//
// # Overview
//
// The Store sits between the background loader, which fetches a pull
// request's build logs, and the UI, which turns them into a tree. Each
// successful fetch replaces the whole result; there are no incremental
// updates.
//
// # Architecture
//
//	Producer (loader):             Consumer (UI):
//	┌────────────────────┐         ┌──────────────────────┐
//	│ FetchBuildLogs()   │         │ tick                 │
//	│      ↓             │         │   ↓                  │
//	│ store.Update()     │────────→│ store.Generation()   │
//	│      ↓             │ (mutex) │   changed?           │
//	│ wait / backoff     │         │   store.Snapshot()   │
//	└────────────────────┘         │   panel.Rebuild()    │
//	                               └──────────────────────┘
//
// # Generations
//
// Generation increases on every successful Update. The UI compares it with
// the generation it last rebuilt from and only copies a snapshot when it
// changed, so idle ticks never clone large logs.
//
// # Update Semantics
//
//	// Success: replace the result, clear the error
//	store.Update(&res, nil)
//	→ snapshot.Result = res (deep copy)
//	→ snapshot.Generation++
//	→ snapshot.ConsecutiveFailures = 0
//
//	// Error: keep the previous result, record the error
//	store.Update(nil, err)
//	→ snapshot.LastError = err
//	→ snapshot.ConsecutiveFailures++
//
// IsOffline reports two or more consecutive failures; the UI shows it in the
// status bar while still rendering the last good tree.
//
// # Testing Considerations
//
// The zero Store is ready to use and Snapshot on a fresh Store returns a zero
// Snapshot.
package state
