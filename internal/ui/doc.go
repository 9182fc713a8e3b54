// Package ui provides the Bubble Tea terminal interface for prlogs.
//
// # Architecture Overview
//
// The UI is a single Bubble Tea Model wrapping a buildlog.Panel. It never
// fetches anything itself: the loader in internal/app publishes results
// into a state.Store, and the model copies the store's snapshot on every
// tick. When the snapshot carries a new generation the panel is rebuilt,
// which carries expansion and cursor over by name.
//
// # Layout
//
//	┌─────────────────────────────────────────────────────┐
//	│ prlogs  #42 Add poller  by octocat   five82/spindle │ header
//	│ Build Logs - PR #42 | j/k: navigate, ...            │ key hint
//	│ ▼ ✗ ci (1 error)                                    │
//	│   ▶ ✓ build 1m 35s                                  │ log tree
//	│   ▼ ✗ test (1 error) 12s                            │
//	│ 1 workflow · 2 jobs  1 error in 1 job  3/6   ...    │ status bar
//	└─────────────────────────────────────────────────────┘
//
// Rows come from buildlog.Panel.RenderRows, so the scroll window always
// keeps the cursor near the middle of the tree area. This package only
// turns each Row into text (formatRow) and maps its Style category onto
// the active theme.
//
// # Components
//
//   - app.go: Model, Update loop, key handling and Run
//   - header.go: PR header card and key hint bar
//   - tree.go: log tree, placeholders and row formatting
//   - status.go: counts, fetch state and short help
//   - help.go: full help overlay built from the key map
//   - keys.go: key bindings (bubbles/key)
//   - theme.go: Dracula and Slate palettes, row style mapping
//
// # Preferences
//
// Theme cycling (T) and the timestamp toggle (t) are written back to the
// preferences file via prefs.Update so other fields are preserved.
package ui
