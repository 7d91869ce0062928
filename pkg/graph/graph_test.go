package graph

import (
	"slices"
	"testing"
)

func TestAddNode(t *testing.T) {
	tests := []struct {
		name      string
		ids       []string
		check     bool
		wantCount int
		wantNodes []string
	}{
		{
			name:      "Distinct",
			ids:       []string{"a", "b", "c"},
			check:     true,
			wantCount: 3,
			wantNodes: []string{"a", "b", "c"},
		},
		{
			name:      "DuplicateChecked",
			ids:       []string{"a", "b", "a"},
			check:     true,
			wantCount: 2,
			wantNodes: []string{"a", "b"},
		},
		{
			name:      "DuplicateUnchecked",
			ids:       []string{"a", "b", "a"},
			check:     false,
			wantCount: 3,
			wantNodes: []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(false)
			for _, id := range tt.ids {
				g.AddNode(id, tt.check)
			}
			if got := g.NodeCount(); got != tt.wantCount {
				t.Errorf("NodeCount() = %d, want %d", got, tt.wantCount)
			}
			if got := g.Nodes(); !slices.Equal(got, tt.wantNodes) {
				t.Errorf("Nodes() = %v, want %v", got, tt.wantNodes)
			}
		})
	}
}

func TestAddNodeReportsChange(t *testing.T) {
	g := New(false)
	if !g.AddNode("a", true) {
		t.Error("first AddNode returned false")
	}
	if g.AddNode("a", true) {
		t.Error("duplicate AddNode returned true")
	}
}

func TestAddNodeUncheckedResetsAdjacency(t *testing.T) {
	g := New(false)
	g.AddNode("a", true)
	g.AddNode("b", true)
	g.AddEdge("a", "b", 1, true)

	idx, _ := g.Index("a")
	g.AddNode("a", false)

	if got, _ := g.Index("a"); got != idx {
		t.Errorf("Index(a) = %d after re-add, want %d", got, idx)
	}
	if got := g.Neighbors("a"); len(got) != 0 {
		t.Errorf("Neighbors(a) = %v, want empty", got)
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
}

func TestAddEdgeUndirectedAggregates(t *testing.T) {
	g := New(false)
	g.AddNode("a", true)
	g.AddNode("b", true)

	g.AddEdge("b", "a", 2, true)
	g.AddEdge("a", "b", 3, true)

	if got := g.EdgeCount(); got != 2 {
		t.Errorf("EdgeCount() = %d, want 2", got)
	}
	if got := g.DistinctEdgeCount(); got != 1 {
		t.Errorf("DistinctEdgeCount() = %d, want 1", got)
	}

	info, ok := g.Edge("b", "a")
	if !ok {
		t.Fatal("Edge(b, a) not found")
	}
	if info.Weight != 5 {
		t.Errorf("Weight = %v, want 5", info.Weight)
	}
	if !slices.Equal(info.Weights, []float64{2, 3}) {
		t.Errorf("Weights = %v, want [2 3]", info.Weights)
	}
	if got := g.Edges(); !slices.Equal(got, []Key{{U: "a", V: "b"}}) {
		t.Errorf("Edges() = %v, want [{a b}]", got)
	}
	if got := g.Neighbors("b"); !slices.Equal(got, []string{"a"}) {
		t.Errorf("Neighbors(b) = %v, want [a]", got)
	}
}

func TestAddEdgeDirectedKeepsOrientation(t *testing.T) {
	g := New(true)
	g.AddNode("a", true)
	g.AddNode("b", true)

	g.AddEdge("b", "a", 1, true)
	g.AddEdge("a", "b", 1, true)

	if got := g.DistinctEdgeCount(); got != 2 {
		t.Errorf("DistinctEdgeCount() = %d, want 2", got)
	}
	want := []Key{{U: "b", V: "a"}, {U: "a", V: "b"}}
	if got := g.Edges(); !slices.Equal(got, want) {
		t.Errorf("Edges() = %v, want %v", got, want)
	}
	if got := g.Neighbors("a"); !slices.Equal(got, []string{"b"}) {
		t.Errorf("Neighbors(a) = %v, want [b]", got)
	}
}

func TestAddEdgeLoops(t *testing.T) {
	g := New(false)
	g.AddNode("a", true)
	g.AddNode("b", true)

	g.AddEdge("a", "a", 1, true)
	g.AddEdge("a", "a", 1, true)
	g.AddEdge("a", "b", 1, true)

	if got := g.LoopCount(); got != 1 {
		t.Errorf("LoopCount() = %d, want 1", got)
	}
	if got := g.DistinctEdgeCount(); got != 2 {
		t.Errorf("DistinctEdgeCount() = %d, want 2", got)
	}
	if got := g.DrawnEdgeCount(); got != 1 {
		t.Errorf("DrawnEdgeCount() = %d, want 1", got)
	}
	if !g.Edges()[0].IsLoop() {
		t.Error("first key should be a loop")
	}
}

func TestAddEdgeUnknownEndpoint(t *testing.T) {
	t.Run("Checked", func(t *testing.T) {
		g := New(false)
		g.AddNode("a", true)
		if g.AddEdge("a", "z", 1, true) {
			t.Fatal("AddEdge accepted unknown endpoint")
		}
		if g.EdgeCount() != 0 || g.DistinctEdgeCount() != 0 {
			t.Errorf("counters changed: m=%d dm=%d", g.EdgeCount(), g.DistinctEdgeCount())
		}
		if g.HasNode("z") {
			t.Error("unknown endpoint was registered")
		}
	})

	t.Run("Unchecked", func(t *testing.T) {
		g := New(false)
		if !g.AddEdge("a", "z", 1, false) {
			t.Fatal("AddEdge rejected edge with check disabled")
		}
		if got := g.Nodes(); !slices.Equal(got, []string{"a", "z"}) {
			t.Errorf("Nodes() = %v, want [a z]", got)
		}
		if got := g.NodeCount(); got != 2 {
			t.Errorf("NodeCount() = %d, want 2", got)
		}
	})
}

func TestEdgeMissing(t *testing.T) {
	g := New(false)
	if _, ok := g.Edge("a", "b"); ok {
		t.Error("Edge on empty graph reported ok")
	}
	if got := g.Neighbors("a"); got != nil {
		t.Errorf("Neighbors(missing) = %v, want nil", got)
	}
}

func TestEdgeReturnsCopy(t *testing.T) {
	g := New(false)
	g.AddEdge("a", "b", 1, false)
	info, _ := g.Edge("a", "b")
	info.Weights[0] = 99

	again, _ := g.Edge("a", "b")
	if again.Weights[0] != 1 {
		t.Errorf("stored weight mutated through returned slice: %v", again.Weights)
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		name     string
		directed bool
		u, v     string
		want     Key
	}{
		{"UndirectedOrdered", false, "a", "b", Key{"a", "b"}},
		{"UndirectedSwapped", false, "b", "a", Key{"a", "b"}},
		{"DirectedKept", true, "b", "a", Key{"b", "a"}},
		{"Loop", false, "x", "x", Key{"x", "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New(tt.directed).Key(tt.u, tt.v); got != tt.want {
				t.Errorf("Key(%q, %q) = %v, want %v", tt.u, tt.v, got, tt.want)
			}
		})
	}
}
