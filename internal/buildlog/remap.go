package buildlog

// segment names one step of a path. Siblings sharing a name are told apart
// by their ordinal among equally named siblings. Log lines have no name and
// are matched by index.
type segment struct {
	name    string
	ordinal int
}

// namePath is the name-based address of a node; it survives rebuilds that
// reorder or insert siblings.
type namePath []segment

func (t *Tree) nameAt(parent Path, idx int) string {
	switch len(parent) {
	case 0:
		return t.Workflows[idx].Name
	case DepthWorkflow:
		return t.Workflows[parent[0]].Jobs[idx].Name
	case DepthJob:
		return t.Workflows[parent[0]].Jobs[parent[1]].Steps[idx].Name
	}
	return ""
}

func (t *Tree) namePath(p Path) (namePath, bool) {
	if !t.Valid(p) {
		return nil, false
	}
	out := make(namePath, len(p))
	for d := range p {
		parent, idx := p[:d], p[d]
		if d+1 == DepthLine {
			out[d] = segment{ordinal: idx}
			continue
		}
		name := t.nameAt(parent, idx)
		ord := 0
		for i := 0; i < idx; i++ {
			if t.nameAt(parent, i) == name {
				ord++
			}
		}
		out[d] = segment{name: name, ordinal: ord}
	}
	return out, true
}

// resolve walks np down t and returns the deepest path it could match.
func (t *Tree) resolve(np namePath) Path {
	var out Path
	for d, seg := range np {
		count := t.ChildCount(out)
		if d+1 == DepthLine {
			if seg.ordinal >= count {
				return out
			}
			out = out.Child(seg.ordinal)
			continue
		}
		found := -1
		ord := 0
		for i := 0; i < count; i++ {
			if t.nameAt(out, i) != seg.name {
				continue
			}
			if ord == seg.ordinal {
				found = i
				break
			}
			ord++
		}
		if found < 0 {
			return out
		}
		out = out.Child(found)
	}
	return out
}

// RemapExpansion translates recorded paths from prev onto next by name.
// Paths whose node no longer exists are dropped.
func RemapExpansion(prev, next *Tree, e Expansion) Expansion {
	out := NewExpansion()
	if prev.Empty() || next.Empty() {
		return out
	}
	for _, p := range e.Paths() {
		np, ok := prev.namePath(p)
		if !ok {
			continue
		}
		if q := next.resolve(np); len(q) == len(p) {
			out.Set(q, true)
		}
	}
	return out
}

// RemapPath translates p from prev onto next by name, falling back to the
// deepest ancestor that still exists, and to the first workflow after that.
func RemapPath(prev, next *Tree, p Path) Path {
	if next.Empty() {
		return nil
	}
	np, ok := prev.namePath(p)
	if !ok {
		return Path{0}
	}
	if q := next.resolve(np); len(q) > 0 {
		return q
	}
	return Path{0}
}
