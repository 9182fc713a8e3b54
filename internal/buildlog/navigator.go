package buildlog

// Direction selects which way JumpToError scans.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Navigator owns the cursor and expansion state for one tree. Every
// operation re-derives the visible list from the current state instead of
// caching it.
type Navigator struct {
	tree      *Tree
	expansion Expansion
	cursor    Path
}

// NewNavigator places the cursor on the first workflow.
func NewNavigator(t *Tree, e Expansion) *Navigator {
	n := &Navigator{tree: t, expansion: e.Clone(), cursor: Path{0}}
	n.clamp()
	return n
}

// Tree returns the tree being navigated.
func (n *Navigator) Tree() *Tree { return n.tree }

// Cursor returns a copy of the selected path; nil when the tree is empty.
func (n *Navigator) Cursor() Path { return n.cursor.Clone() }

// Expansion returns a copy of the expansion state.
func (n *Navigator) Expansion() Expansion { return n.expansion.Clone() }

// Visible flattens the tree under the current expansion.
func (n *Navigator) Visible() []Path { return Flatten(n.tree, n.expansion) }

// Index returns the cursor's position in the visible list, or -1 when the tree is empty.
func (n *Navigator) Index() int {
	if n.cursor == nil {
		return -1
	}
	return IndexOf(n.Visible(), n.cursor)
}

// Move shifts the cursor by delta visible rows, clamping at both ends.
func (n *Navigator) Move(delta int) Path {
	visible := n.Visible()
	if len(visible) == 0 {
		return nil
	}
	idx := IndexOf(visible, n.cursor)
	if idx < 0 {
		idx = 0
	}
	idx = max(0, min(len(visible)-1, idx+delta))
	n.cursor = visible[idx].Clone()
	return n.Cursor()
}

// Page moves by whole windows of the given height.
func (n *Navigator) Page(pages, height int) Path {
	return n.Move(pages * max(1, height))
}

// Home selects the first visible row.
func (n *Navigator) Home() Path {
	if n.tree.Empty() {
		return nil
	}
	n.cursor = Path{0}
	return n.Cursor()
}

// End selects the last visible row.
func (n *Navigator) End() Path {
	visible := n.Visible()
	if len(visible) == 0 {
		return nil
	}
	n.cursor = visible[len(visible)-1].Clone()
	return n.Cursor()
}

// Parent selects the parent of the cursor, if any.
func (n *Navigator) Parent() Path {
	if len(n.cursor) > 1 {
		n.cursor = n.cursor.Parent().Clone()
	}
	return n.Cursor()
}

// SetCursor selects p, falling back to its nearest visible ancestor.
func (n *Navigator) SetCursor(p Path) Path {
	n.cursor = p.Clone()
	n.clamp()
	return n.Cursor()
}

// Toggle flips the expansion of the node under the cursor.
func (n *Navigator) Toggle() Path {
	return n.ToggleAt(n.cursor)
}

// ToggleAt flips the expansion of p. Leaves are left alone. When the toggle
// hides the cursor, the cursor moves to the collapsed ancestor.
func (n *Navigator) ToggleAt(p Path) Path {
	if n.tree.ChildCount(p) == 0 {
		return n.Cursor()
	}
	n.expansion.Toggle(p)
	n.clamp()
	return n.Cursor()
}

// Expand records p as expanded without touching the cursor.
func (n *Navigator) Expand(p Path) {
	if n.tree.ChildCount(p) > 0 {
		n.expansion.Set(p, true)
	}
}

// Reveal records every proper ancestor of p so that p becomes visible.
func (n *Navigator) Reveal(p Path) {
	for i := 1; i < len(p); i++ {
		n.expansion.Set(p[:i], true)
	}
}

// ExpandAll opens every workflow and job. Steps stay closed so raw lines are
// only shown on request.
func (n *Navigator) ExpandAll() {
	for wi, w := range n.tree.workflowsOrNil() {
		n.Expand(Path{wi})
		for ji := range w.Jobs {
			n.Expand(Path{wi, ji})
		}
	}
}

// CollapseAll clears the expansion state.
func (n *Navigator) CollapseAll() {
	n.expansion = NewExpansion()
	n.clamp()
}

// ExpandFailures opens every workflow plus each failing job and step.
func (n *Navigator) ExpandFailures() {
	for wi, w := range n.tree.workflowsOrNil() {
		n.Expand(Path{wi})
		for ji, j := range w.Jobs {
			if j.ErrorCount == 0 {
				continue
			}
			n.Expand(Path{wi, ji})
			for si, s := range j.Steps {
				if s.IsError {
					n.Expand(Path{wi, ji, si})
				}
			}
		}
	}
}

// JumpToError moves the cursor to the next (or previous) node carrying an
// error indicator, wrapping around once. Collapsed ancestors of the target are
// expanded. It reports false and leaves the cursor alone when the tree has no
// errors.
func (n *Navigator) JumpToError(dir Direction) (Path, bool) {
	errs := ErrorPaths(n.tree)
	if len(errs) == 0 || n.cursor == nil {
		return n.Cursor(), false
	}
	target := errs[0]
	if dir == Backward {
		target = errs[len(errs)-1]
		for i := len(errs) - 1; i >= 0; i-- {
			if errs[i].Compare(n.cursor) < 0 {
				target = errs[i]
				break
			}
		}
	} else {
		for _, p := range errs {
			if p.Compare(n.cursor) > 0 {
				target = p
				break
			}
		}
	}
	n.Reveal(target)
	n.cursor = target.Clone()
	return n.Cursor(), true
}

// Rebase moves the navigator onto a rebuilt tree, carrying expansion and
// cursor across by name.
func (n *Navigator) Rebase(next *Tree) {
	n.expansion = RemapExpansion(n.tree, next, n.expansion)
	n.cursor = RemapPath(n.tree, next, n.cursor)
	n.tree = next
	n.clamp()
}

// ErrorPaths lists, in pre-order, every workflow with failures, job with
// errors and error step. Log lines are not included.
func ErrorPaths(t *Tree) []Path {
	var out []Path
	for wi, w := range t.workflowsOrNil() {
		if w.HasFailures {
			out = append(out, Path{wi})
		}
		for ji, j := range w.Jobs {
			if j.ErrorCount > 0 {
				out = append(out, Path{wi, ji})
			}
			for si, s := range j.Steps {
				if s.IsError {
					out = append(out, Path{wi, ji, si})
				}
			}
		}
	}
	return out
}

// clamp keeps the cursor on a visible node: invalid tails are dropped and a
// collapsed ancestor replaces any hidden descendant.
func (n *Navigator) clamp() {
	if n.tree.Empty() {
		n.cursor = nil
		return
	}
	valid := 0
	for valid < len(n.cursor) && n.tree.Valid(n.cursor[:valid+1]) {
		valid++
	}
	if valid == 0 {
		n.cursor = Path{0}
		return
	}
	cur := n.cursor[:valid].Clone()
	for i := 1; i < len(cur); i++ {
		if !n.expansion.Recorded(cur[:i]) {
			cur = cur[:i]
			break
		}
	}
	n.cursor = cur
}

func (t *Tree) workflowsOrNil() []Workflow {
	if t == nil {
		return nil
	}
	return t.Workflows
}
