package buildlog

import (
	"math/rand/v2"
	"testing"
)

func TestFlatten_CollapsedShowsWorkflowsOnly(t *testing.T) {
	tree := mustBuild(t, wideFixture(), BuildOptions{})
	got := Flatten(tree, NewExpansion())
	want := []Path{{0}, {1}, {2}}
	if !pathsEqual(got, want) {
		t.Fatalf("Flatten = %v, want %v", got, want)
	}
}

func TestFlatten_PathVisibleIffAncestorsExpanded(t *testing.T) {
	tree := mustBuild(t, wideFixture(), BuildOptions{})
	nodes := allNodes(tree)
	rng := rand.New(rand.NewPCG(1, 2))

	for round := 0; round < 200; round++ {
		e := NewExpansion()
		for _, p := range nodes {
			if rng.IntN(2) == 0 {
				e.Set(p, true)
			}
		}

		visible := Flatten(tree, e)
		for _, p := range nodes {
			want := p.Depth() == DepthWorkflow || e.IsExpanded(p.Parent())
			got := IndexOf(visible, p) >= 0
			if got != want {
				t.Fatalf("round %d: %s visible = %v, want %v (expansion %v)", round, p, got, want, e.Paths())
			}
		}
		for i := 1; i < len(visible); i++ {
			if visible[i-1].Compare(visible[i]) >= 0 {
				t.Fatalf("round %d: not in pre-order at %d: %s then %s", round, i, visible[i-1], visible[i])
			}
		}
	}
}

func TestFlatten_Deterministic(t *testing.T) {
	tree := mustBuild(t, ciFixture(), BuildOptions{})
	e := NewExpansion(Path{0}, Path{0, 1}, Path{0, 1, 1})

	first := Flatten(tree, e)
	second := Flatten(tree, e)
	if !pathsEqual(first, second) {
		t.Fatalf("Flatten not deterministic: %v vs %v", first, second)
	}
	// ci, build, test, setup, go test, 5 lines of go test
	if len(first) != 10 {
		t.Fatalf("len = %d, want 10: %v", len(first), first)
	}
}

func TestExpansion_CollapseRemembersDescendants(t *testing.T) {
	tree := mustBuild(t, ciFixture(), BuildOptions{})
	e := NewExpansion(Path{0}, Path{0, 1})
	open := Flatten(tree, e)

	e.Toggle(Path{0})
	if got := Flatten(tree, e); len(got) != 1 {
		t.Fatalf("collapsed workflow shows %v", got)
	}
	if !e.Recorded(Path{0, 1}) || e.IsExpanded(Path{0, 1}) {
		t.Fatalf("job should stay recorded but not expanded")
	}

	e.Toggle(Path{0})
	if got := Flatten(tree, e); !pathsEqual(got, open) {
		t.Fatalf("re-expanded = %v, want %v", got, open)
	}
}

func TestExpansion_ToggleTwiceRestores(t *testing.T) {
	e := NewExpansion(Path{1})
	before := e.Clone()

	if on := e.Toggle(Path{1, 2}); !on {
		t.Fatalf("first toggle should record")
	}
	if on := e.Toggle(Path{1, 2}); on {
		t.Fatalf("second toggle should clear")
	}
	if e.Len() != before.Len() || !e.Recorded(Path{1}) {
		t.Fatalf("expansion = %v, want %v", e.Paths(), before.Paths())
	}

	var zero Expansion
	zero.Toggle(Path{0})
	if !zero.IsExpanded(Path{0}) {
		t.Fatalf("zero Expansion should be usable")
	}
}
