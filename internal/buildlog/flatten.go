package buildlog

import "sort"

// Flatten returns the paths that would be visible with unlimited height, in
// pre-order. Workflows are always visible; a node's children are visible
// only when the node and all its ancestors are recorded expanded.
//
// The walk never enters a collapsed subtree, so the cost is proportional to
// the number of paths returned and not to the size of the hidden logs.
func Flatten(t *Tree, e Expansion) []Path {
	if t.Empty() {
		return nil
	}
	out := make([]Path, 0, len(t.Workflows))
	for wi, w := range t.Workflows {
		wp := Path{wi}
		out = append(out, wp)
		if !e.Recorded(wp) {
			continue
		}
		for ji, j := range w.Jobs {
			jp := Path{wi, ji}
			out = append(out, jp)
			if !e.Recorded(jp) {
				continue
			}
			for si, s := range j.Steps {
				sp := Path{wi, ji, si}
				out = append(out, sp)
				if !e.Recorded(sp) {
					continue
				}
				for li := range s.Lines {
					out = append(out, Path{wi, ji, si, li})
				}
			}
		}
	}
	return out
}

// IndexOf returns the position of p in visible, or -1. Flatten output is in
// pre-order, which is path order, so the lookup is a binary search.
func IndexOf(visible []Path, p Path) int {
	i := sort.Search(len(visible), func(i int) bool {
		return visible[i].Compare(p) >= 0
	})
	if i < len(visible) && visible[i].Equal(p) {
		return i
	}
	return -1
}
