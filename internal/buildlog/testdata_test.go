package buildlog

import (
	"testing"
	"time"
)

// ciFixture is a single workflow "ci" with a passing "build" job and a
// "test" job whose "go test" step logged three errors.
func ciFixture() []JobLog {
	return []JobLog{
		{Workflow: "ci", Name: "build", Steps: []StepLog{
			{Name: "checkout", Lines: []string{"Fetching", "done"}},
			{Name: "go build", Lines: []string{"ok"}},
		}},
		{Workflow: "ci", Name: "test", Steps: []StepLog{
			{Name: "setup", Lines: []string{"installing"}},
			{Name: "go test", IsError: true, Lines: []string{
				"=== RUN TestA",
				"main_test.go:10: error: want 1 got 2",
				"main_test.go:20: error: nil map",
				"warning: flaky",
				"main_test.go:30: error: timeout",
			}},
		}},
	}
}

func ciMetadata() Metadata {
	return NewMetadata(map[JobKey]JobMetadata{
		{Workflow: "ci", Job: "build"}: {Status: StatusSuccess, Duration: 95 * time.Second, HasDuration: true},
		{Workflow: "ci", Job: "test"}:  {Status: StatusFailure, Duration: 12 * time.Second, HasDuration: true},
	})
}

// wideFixture has several workflows with errors spread across levels.
func wideFixture() []JobLog {
	return []JobLog{
		{Workflow: "lint", Name: "golangci", Steps: []StepLog{
			{Name: "run", Lines: []string{"clean"}},
		}},
		{Workflow: "ci", Name: "unit", Steps: []StepLog{
			{Name: "test", Lines: []string{"error: boom"}},
			{Name: "cover", Lines: []string{"ok"}},
		}},
		{Workflow: "ci", Name: "race", Steps: []StepLog{
			{Name: "test", IsError: true},
		}},
		{Workflow: "release", Name: "goreleaser", Steps: []StepLog{
			{Name: "build", Lines: []string{"ok"}},
			{Name: "publish", Lines: []string{"##[error]token missing", "x", "y"}},
		}},
	}
}

func mustBuild(t *testing.T, jobs []JobLog, opts BuildOptions) *Tree {
	t.Helper()
	tree, err := Build(jobs, PRContext{Number: 42, Title: "Fix it", Author: "octo"}, opts)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return tree
}

// allNodes lists every path of the tree in pre-order.
func allNodes(tree *Tree) []Path {
	var out []Path
	for wi, w := range tree.Workflows {
		out = append(out, Path{wi})
		for ji, j := range w.Jobs {
			out = append(out, Path{wi, ji})
			for si, s := range j.Steps {
				out = append(out, Path{wi, ji, si})
				for li := range s.Lines {
					out = append(out, Path{wi, ji, si, li})
				}
			}
		}
	}
	return out
}

func pathsEqual(a, b []Path) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
