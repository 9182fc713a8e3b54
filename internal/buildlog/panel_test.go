package buildlog

import (
	"errors"
	"testing"
)

func newCIPanel(t *testing.T, opts PanelOptions) *Panel {
	t.Helper()
	p, err := NewPanel(ciFixture(), PRContext{Number: 42, Title: "Fix it", Author: "octo"}, opts)
	if err != nil {
		t.Fatalf("NewPanel: %v", err)
	}
	p.ReplaceMetadata(ciMetadata())
	return p
}

func TestPanel_ExpandWorkflowShowsJobRows(t *testing.T) {
	p := newCIPanel(t, PanelOptions{})

	rows, offset := p.RenderRows(10)
	if len(rows) != 1 || offset != 0 {
		t.Fatalf("collapsed rows = %d offset %d, want 1 and 0", len(rows), offset)
	}

	p.ToggleAtCursor()
	rows, _ = p.RenderRows(10)
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}

	wf, build, test := rows[0], rows[1], rows[2]
	if wf.Style != StyleSelected || wf.Expander != GlyphExpanded || wf.Errors != "(3 errors)" || wf.Status != "✗" {
		t.Fatalf("workflow row = %+v", wf)
	}
	if build.Text != "build" || build.Duration != "1m 35s" || build.Style != StyleNormal || build.Status != "✓" {
		t.Fatalf("build row = %+v", build)
	}
	if test.Style != StyleError || test.Duration != "12s" || test.Errors != "(3 errors)" || test.Expander != GlyphCollapsed {
		t.Fatalf("test row = %+v", test)
	}
	if build.Indent != 1 || test.Kind != KindJob {
		t.Fatalf("job rows indent/kind = %d/%v", build.Indent, test.Kind)
	}
}

func TestPanel_RenderRowsWindow(t *testing.T) {
	jobs := make([]JobLog, 0, 20)
	for i := 0; i < 20; i++ {
		jobs = append(jobs, JobLog{Workflow: string(rune('a' + i)), Name: "job"})
	}
	p, err := NewPanel(jobs, PRContext{Number: 1}, PanelOptions{})
	if err != nil {
		t.Fatalf("NewPanel: %v", err)
	}

	p.Navigate(17)
	rows, offset := p.RenderRows(5)
	if offset != 15 || len(rows) != 5 {
		t.Fatalf("offset = %d rows = %d, want 15 and 5", offset, len(rows))
	}
	if !rows[2].Path.Equal(Path{17}) || rows[2].Style != StyleSelected {
		t.Fatalf("selected row = %+v, want 17", rows[2])
	}

	if rows, _ := p.RenderRows(0); rows != nil {
		t.Fatalf("RenderRows(0) = %v, want nil", rows)
	}
}

func TestPanel_AutoExpandFailures(t *testing.T) {
	p := newCIPanel(t, PanelOptions{AutoExpandFailures: true})

	rows, _ := p.RenderRows(50)
	// ci, build, test, setup, go test, 5 lines
	if len(rows) != 10 {
		t.Fatalf("rows = %d, want 10", len(rows))
	}

	line := rows[6]
	if line.Kind != KindLine || line.Indent != 3 || line.Status != "" || line.Expander != "" {
		t.Fatalf("line row = %+v", line)
	}
	if line.Style != StyleError || !line.HasError {
		t.Fatalf("error line style = %v", line.Style)
	}
	if rows[8].Style != StyleWarning {
		t.Fatalf("warning line style = %v", rows[8].Style)
	}
	if rows[5].Style != StyleNormal {
		t.Fatalf("plain line style = %v", rows[5].Style)
	}
}

func TestPanel_MutedSkippedJob(t *testing.T) {
	p, err := NewPanel([]JobLog{{Workflow: "ci", Name: "docs"}}, PRContext{Number: 3}, PanelOptions{})
	if err != nil {
		t.Fatalf("NewPanel: %v", err)
	}
	p.SetMetadata(JobKey{Workflow: "ci", Job: "docs"}, JobMetadata{Status: StatusSkipped})
	p.ToggleAtCursor()
	p.Navigate(-5)

	rows, _ := p.RenderRows(5)
	if rows[1].Status != "⊝" || rows[1].Style != StyleMuted || rows[1].Duration != "" {
		t.Fatalf("skipped job row = %+v", rows[1])
	}
	if rows[1].Expander != "" {
		t.Fatalf("job without steps should have no expander")
	}
}

func TestPresentRow_PanicsOnUnknownPath(t *testing.T) {
	tree := mustBuild(t, ciFixture(), BuildOptions{})
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	PresentRow(tree, NewExpansion(), Metadata{}, nil, Path{0, 9})
}

func TestPanel_RebuildKeepsExpansionByName(t *testing.T) {
	p := newCIPanel(t, PanelOptions{})
	p.Navigator().Expand(Path{0})
	p.Navigator().Expand(Path{0, 1})
	p.Navigator().Expand(Path{0, 1, 1})
	p.Navigator().SetCursor(Path{0, 1, 1, 2})

	next := append([]JobLog{
		{Workflow: "docs", Name: "spell"},
		{Workflow: "ci", Name: "aaa"},
	}, ciFixture()...)
	if err := p.Rebuild(next, p.PR()); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}

	if got := p.Cursor(); !got.Equal(Path{1, 2, 1, 2}) {
		t.Fatalf("cursor = %s, want 1:2:1:2", got)
	}
	want := []Path{{1}, {1, 2}, {1, 2, 1}}
	if got := p.Navigator().Expansion().Paths(); !pathsEqual(got, want) {
		t.Fatalf("expansion = %v, want %v", got, want)
	}
	// Metadata is keyed by name and is not touched by a rebuild.
	rows, _ := p.RenderRows(50)
	for _, r := range rows {
		if r.Text == "build" && r.Duration != "1m 35s" {
			t.Fatalf("build row lost metadata: %+v", r)
		}
	}
}

func TestPanel_RebuildDropsMissingNodes(t *testing.T) {
	p := newCIPanel(t, PanelOptions{})
	p.Navigator().Expand(Path{0})
	p.Navigator().Expand(Path{0, 1})
	p.Navigator().SetCursor(Path{0, 1, 1})

	if err := p.Rebuild(ciFixture()[:1], p.PR()); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	if got := p.Cursor(); !got.Equal(Path{0}) {
		t.Fatalf("cursor = %s, want the surviving workflow", got)
	}
	if got := p.Navigator().Expansion().Paths(); !pathsEqual(got, []Path{{0}}) {
		t.Fatalf("expansion = %v, want only the workflow", got)
	}
}

func TestPanel_RebuildErrorKeepsTree(t *testing.T) {
	p := newCIPanel(t, PanelOptions{})
	p.ToggleAtCursor()
	before := p.Tree()

	err := p.Rebuild([]JobLog{{Workflow: "", Name: "x"}}, p.PR())
	if !errors.Is(err, ErrStructural) {
		t.Fatalf("err = %v, want ErrStructural", err)
	}
	if p.Tree() != before || p.Navigator().Tree() != before {
		t.Fatalf("failed rebuild replaced the tree")
	}
	if rows, _ := p.RenderRows(10); len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
}

func TestPanel_RebuildOtherPRStartsFresh(t *testing.T) {
	p := newCIPanel(t, PanelOptions{})
	p.ToggleAtCursor()
	p.Navigate(2)

	if err := p.Rebuild(ciFixture(), PRContext{Number: 7}); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	if p.Navigator().Expansion().Len() != 0 || !p.Cursor().Equal(Path{0}) {
		t.Fatalf("state not reset: %v cursor %s", p.Navigator().Expansion().Paths(), p.Cursor())
	}
	if p.Metadata().Len() != 0 || p.PR().Number != 7 {
		t.Fatalf("metadata/PR not reset")
	}
}

func TestRemap_DuplicateNamesUseOrdinal(t *testing.T) {
	prev := mustBuild(t, []JobLog{{Workflow: "ci", Name: "a", Steps: []StepLog{
		{Name: "run", Lines: []string{"1"}},
		{Name: "run", Lines: []string{"2"}},
	}}}, BuildOptions{})
	next := mustBuild(t, []JobLog{{Workflow: "ci", Name: "a", Steps: []StepLog{
		{Name: "setup"},
		{Name: "run", Lines: []string{"1"}},
		{Name: "run"},
	}}}, BuildOptions{})

	if got := RemapPath(prev, next, Path{0, 0, 1}); !got.Equal(Path{0, 0, 2}) {
		t.Fatalf("RemapPath = %s, want 0:0:2", got)
	}
	if got := RemapPath(prev, next, Path{0, 0, 1, 0}); !got.Equal(Path{0, 0, 2}) {
		t.Fatalf("RemapPath(missing line) = %s, want step", got)
	}
	if got := RemapPath(prev, mustBuild(t, nil, BuildOptions{}), Path{0}); got != nil {
		t.Fatalf("RemapPath onto empty tree = %v, want nil", got)
	}
}

func TestPanel_Summary(t *testing.T) {
	p := newCIPanel(t, PanelOptions{})
	p.ToggleAtCursor()
	p.Navigate(2)

	s := p.Summary()
	want := Counts{Workflows: 1, Jobs: 2, Steps: 4, Lines: 9, Errors: 3}
	if s.Counts != want {
		t.Fatalf("Counts = %+v, want %+v", s.Counts, want)
	}
	if s.Visible != 3 || s.CursorIndex != 2 || s.FailedJobs != 1 {
		t.Fatalf("Summary = %+v", s)
	}
}
