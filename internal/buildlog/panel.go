package buildlog

// PanelOptions configures a Panel.
type PanelOptions struct {
	Build              BuildOptions
	AutoExpandFailures bool
}

// Panel ties a tree, its job metadata and a navigator together. It is the
// single entry point the UI uses; it is not safe for concurrent use.
type Panel struct {
	opts PanelOptions
	tree *Tree
	meta Metadata
	nav  *Navigator
}

// NewPanel builds the tree for pr and places the cursor on the first workflow.
func NewPanel(jobs []JobLog, pr PRContext, opts PanelOptions) (*Panel, error) {
	t, err := Build(jobs, pr, opts.Build)
	if err != nil {
		return nil, err
	}
	p := &Panel{opts: opts}
	p.reset(t)
	return p, nil
}

func (p *Panel) reset(t *Tree) {
	p.tree = t
	p.nav = NewNavigator(t, NewExpansion())
	if p.opts.AutoExpandFailures {
		p.nav.ExpandFailures()
	}
}

// Rebuild replaces the tree with one built from jobs. Expansion and cursor
// are carried over by name when pr is the same pull request; a different
// pull request starts fresh. On error the current tree is kept.
func (p *Panel) Rebuild(jobs []JobLog, pr PRContext) error {
	t, err := Build(jobs, pr, p.opts.Build)
	if err != nil {
		return err
	}
	if p.tree.PR.Number != pr.Number {
		p.meta = Metadata{}
		p.reset(t)
		return nil
	}
	p.nav.Rebase(t)
	p.tree = t
	return nil
}

// Tree returns the current tree.
func (p *Panel) Tree() *Tree { return p.tree }

// PR returns the pull request the panel shows.
func (p *Panel) PR() PRContext { return p.tree.PR }

// Navigator exposes the underlying navigator for less common moves.
func (p *Panel) Navigator() *Navigator { return p.nav }

// Metadata returns the job metadata table.
func (p *Panel) Metadata() Metadata { return p.meta }

// SetMetadata stores metadata for one job. The job need not exist yet.
func (p *Panel) SetMetadata(key JobKey, md JobMetadata) { p.meta.Set(key, md) }

// ReplaceMetadata swaps the whole table.
func (p *Panel) ReplaceMetadata(m Metadata) { p.meta = m }

// Cursor returns the selected path.
func (p *Panel) Cursor() Path { return p.nav.Cursor() }

// Navigate moves the cursor by delta visible rows.
func (p *Panel) Navigate(delta int) Path { return p.nav.Move(delta) }

// ToggleAtCursor expands or collapses the selected node.
func (p *Panel) ToggleAtCursor() Path { return p.nav.Toggle() }

// JumpToNextError moves to the next error node in dir.
func (p *Panel) JumpToNextError(dir Direction) (Path, bool) { return p.nav.JumpToError(dir) }

// ExpandFailures opens workflows plus failing jobs and steps.
func (p *Panel) ExpandFailures() { p.nav.ExpandFailures() }

// ExpandAll opens every workflow and job.
func (p *Panel) ExpandAll() { p.nav.ExpandAll() }

// CollapseAll closes everything and moves the cursor to its workflow.
func (p *Panel) CollapseAll() { p.nav.CollapseAll() }

// RenderRows returns the rows that fit in height along with the index of the
// first one in the visible list.
func (p *Panel) RenderRows(height int) ([]Row, int) {
	if height <= 0 {
		return nil, 0
	}
	visible := p.nav.Visible()
	cursor := p.nav.Cursor()
	w := NewWindow(IndexOf(visible, cursor), len(visible), height)
	return Present(p.tree, p.nav.expansion, p.meta, cursor, visible, w), w.Offset
}

// Summary describes the panel for a status bar.
type Summary struct {
	Counts
	Visible     int
	CursorIndex int
	FailedJobs  int
}

// Summary counts the tree and locates the cursor.
func (p *Panel) Summary() Summary {
	visible := p.nav.Visible()
	s := Summary{
		Counts:      p.tree.Counts(),
		Visible:     len(visible),
		CursorIndex: IndexOf(visible, p.nav.cursor),
	}
	for _, w := range p.tree.workflowsOrNil() {
		for _, j := range w.Jobs {
			if j.ErrorCount > 0 {
				s.FailedJobs++
			}
		}
	}
	return s
}
