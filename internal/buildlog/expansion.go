package buildlog

// Expansion records which paths the user expanded. It is independent of the
// tree so the same set can be remapped onto a rebuilt tree.
//
// A recorded path only takes effect while all of its ancestors are recorded
// too, so collapsing a workflow and expanding it again restores the jobs
// that were open beneath it.
type Expansion struct {
	set map[string]struct{}
}

// NewExpansion returns an expansion with the given paths recorded.
func NewExpansion(paths ...Path) Expansion {
	e := Expansion{set: make(map[string]struct{}, len(paths))}
	for _, p := range paths {
		e.set[p.String()] = struct{}{}
	}
	return e
}

// Recorded reports whether p itself is in the set, regardless of ancestors.
func (e Expansion) Recorded(p Path) bool {
	if len(p) == 0 {
		return false
	}
	_, ok := e.set[p.String()]
	return ok
}

// IsExpanded reports whether p and every proper prefix of p are recorded.
func (e Expansion) IsExpanded(p Path) bool {
	if len(p) == 0 {
		return false
	}
	for n := 1; n <= len(p); n++ {
		if !e.Recorded(p[:n]) {
			return false
		}
	}
	return true
}

// Toggle flips the membership of exactly p and returns the new membership.
func (e *Expansion) Toggle(p Path) bool {
	on := !e.Recorded(p)
	e.Set(p, on)
	return on
}

// Set records or clears p.
func (e *Expansion) Set(p Path, expanded bool) {
	if len(p) == 0 {
		return
	}
	if e.set == nil {
		e.set = make(map[string]struct{})
	}
	if expanded {
		e.set[p.String()] = struct{}{}
		return
	}
	delete(e.set, p.String())
}

// Len returns the number of recorded paths.
func (e Expansion) Len() int { return len(e.set) }

// Clone returns an independent copy.
func (e Expansion) Clone() Expansion {
	out := Expansion{set: make(map[string]struct{}, len(e.set))}
	for k := range e.set {
		out.set[k] = struct{}{}
	}
	return out
}

// Paths returns the recorded paths in pre-order.
func (e Expansion) Paths() []Path {
	out := make([]Path, 0, len(e.set))
	for k := range e.set {
		if p, ok := parsePath(k); ok {
			out = append(out, p)
		}
	}
	sortPaths(out)
	return out
}
