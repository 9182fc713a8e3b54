package buildlog

import (
	"sort"
	"strconv"
	"strings"
)

// Path addresses a node by its sibling indices from the root.
// Depth 1 is a workflow, 2 a job, 3 a step and 4 a log line.
type Path []int

// Depth levels.
const (
	DepthWorkflow = 1
	DepthJob      = 2
	DepthStep     = 3
	DepthLine     = 4
)

// Depth returns the number of indices in the path.
func (p Path) Depth() int { return len(p) }

// Parent returns the path without its last index. The parent of a workflow is nil.
func (p Path) Parent() Path {
	if len(p) <= 1 {
		return nil
	}
	return p[:len(p)-1:len(p)-1]
}

// Equal reports whether both paths address the same node.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// IsAncestorOf reports whether p is a proper prefix of other.
func (p Path) IsAncestorOf(other Path) bool {
	if len(p) == 0 || len(p) >= len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// Compare orders paths in tree pre-order: a prefix sorts before its extensions.
func (p Path) Compare(other Path) int {
	n := min(len(p), len(other))
	for i := 0; i < n; i++ {
		switch {
		case p[i] < other[i]:
			return -1
		case p[i] > other[i]:
			return 1
		}
	}
	switch {
	case len(p) < len(other):
		return -1
	case len(p) > len(other):
		return 1
	}
	return 0
}

// Child returns a new path extended with idx.
func (p Path) Child(idx int) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = idx
	return out
}

// Clone returns an independent copy.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// String renders the path as colon separated indices, e.g. "0:2:1".
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, idx := range p {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, ":")
}

func parsePath(s string) (Path, bool) {
	if s == "" {
		return nil, false
	}
	parts := strings.Split(s, ":")
	p := make(Path, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return nil, false
		}
		p[i] = n
	}
	return p, true
}

func sortPaths(paths []Path) {
	sort.Slice(paths, func(i, j int) bool {
		return paths[i].Compare(paths[j]) < 0
	})
}
