// Package buildlog models the CI build logs of a pull request as a navigable
// tree and turns it into display rows.
//
// # Overview
//
// A Tree holds four levels: workflows, jobs, steps and raw log lines. It is
// built once from raw job records by Build, carries bottom-up error
// aggregates, and is never mutated afterwards. A reload builds a new tree.
//
//	Workflow "ci"            ▼ ✗ ci (3 errors)
//	  Job "build"              ▶ ✓ build 1m 35s
//	  Job "test"               ▼ ✗ test (3 errors) 12s
//	    Step "go test"           ▶ ✗ go test (3 errors)
//	      Line "FAIL ..."
//
// Nodes are addressed by Path, the sibling indices from the root. Pre-order
// of the tree equals lexicographic order of paths, which lets the visible
// list be binary searched and error nodes be found relative to the cursor
// without walking the visible rows.
//
// # Core Types
//
// Expansion:
//   - Set of paths the user opened, kept apart from the tree
//   - A path only shows its children while all its ancestors are recorded too
//   - Survives rebuilds through RemapExpansion, which matches nodes by name
//
// Navigator:
//   - Owns cursor and expansion for one tree
//   - Clamps the cursor to the nearest visible ancestor after every change
//   - JumpToError scans the whole tree and opens the target's ancestors
//
// Panel:
//   - What the UI talks to: tree, Metadata side table and Navigator
//   - RenderRows computes the window and describes each row in it
//
// # Rendering Cost
//
// Flatten never enters a collapsed subtree, and Present only describes rows
// inside the Window. A step with a hundred thousand lines costs nothing
// until it is expanded, and then only the visible slice is described.
//
// # Concurrency
//
// Nothing in this package locks. A Panel is owned by the UI goroutine;
// fetching happens elsewhere and hands complete results to Panel.Rebuild.
package buildlog
