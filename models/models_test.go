package models

import "testing"

func TestAddEdgeDropsDangling(t *testing.T) {
	doc := NewDocument("math", GraphFullKnow)
	if err := doc.AddNode(NewNode("a", "A", KindChapter)); err != nil {
		t.Fatalf("AddNode error = %v", err)
	}
	if err := doc.AddNode(NewNode("b", "B", KindKnowledgePoint)); err != nil {
		t.Fatalf("AddNode error = %v", err)
	}

	if ok := doc.AddEdge(NewEdge("a", "b", EdgeHierarchy, 1)); !ok {
		t.Fatal("valid edge dropped")
	}
	if ok := doc.AddEdge(NewEdge("a", "ghost", EdgeRelation, 1)); ok {
		t.Fatal("dangling edge accepted")
	}

	if got, want := len(doc.Edges), 1; got != want {
		t.Fatalf("len(Edges) = %d, want %d", got, want)
	}
	if got, want := doc.DroppedEdges, 1; got != want {
		t.Fatalf("DroppedEdges = %d, want %d", got, want)
	}
	if e := doc.Edges[0]; e.From.ID != "a" || e.To.ID != "b" {
		t.Fatalf("edge endpoints %s->%s, want a->b", e.From.ID, e.To.ID)
	}
}

func TestAddNodeRejectsDuplicate(t *testing.T) {
	doc := NewDocument("math", GraphFullKnow)
	if err := doc.AddNode(NewNode("a", "first", KindSubject)); err != nil {
		t.Fatalf("AddNode error = %v", err)
	}
	if err := doc.AddNode(NewNode("a", "second", KindSubject)); err == nil {
		t.Fatal("duplicate AddNode error = nil, want error")
	}
	if got := doc.NodeByID("a").Name; got != "first" {
		t.Fatalf("NodeByID(a).Name = %q, want first", got)
	}
}

func TestPinUnpin(t *testing.T) {
	n := NewNode("a", "A", KindKnowledgePoint)
	if n.Pinned() {
		t.Fatal("fresh node reports pinned")
	}
	n.Pin(10, 20)
	if !n.Pinned() || *n.FX != 10 || *n.FY != 20 {
		t.Fatalf("Pin() = (%v, %v) pinned=%v", n.FX, n.FY, n.Pinned())
	}
	n.Unpin()
	if n.Pinned() {
		t.Fatal("node still pinned after Unpin")
	}
}

func TestSelectableKinds(t *testing.T) {
	tests := []struct {
		kind NodeKind
		want bool
	}{
		{KindSubject, false},
		{KindChapter, false},
		{KindKnowledgePoint, true},
		{KindSubKnowledgePoint, true},
		{KindAIContent, false},
	}
	for _, tc := range tests {
		if got := tc.kind.Selectable(); got != tc.want {
			t.Fatalf("%s.Selectable() = %v, want %v", tc.kind, got, tc.want)
		}
	}
}

func TestHighlightState(t *testing.T) {
	h := NewHighlightState()
	if h.Highlighted("x") {
		t.Fatal("empty state highlights x")
	}

	q := &Question{ID: "q1", KnowledgePointIDs: []string{"a", "b"}}
	h.SetQuestion(q)
	if !h.Highlighted("a") || !h.Highlighted("b") || h.Highlighted("c") {
		t.Fatal("SetQuestion highlight set wrong")
	}
	if h.SelectedQuestion != q {
		t.Fatal("SelectedQuestion not recorded")
	}

	h.Clear()
	if h.Highlighted("a") || h.SelectedQuestion != nil {
		t.Fatal("Clear left residual state")
	}
}

func TestNeighbors(t *testing.T) {
	doc := NewDocument("math", GraphFullKnow)
	for _, id := range []string{"a", "b", "c"} {
		if err := doc.AddNode(NewNode(id, id, KindKnowledgePoint)); err != nil {
			t.Fatalf("AddNode error = %v", err)
		}
	}
	doc.AddEdge(NewEdge("a", "b", EdgeHierarchy, 1))
	doc.AddEdge(NewEdge("c", "a", EdgeRelation, 1))

	got := doc.Neighbors("a")
	if len(got) != 2 {
		t.Fatalf("len(Neighbors(a)) = %d, want 2", len(got))
	}
}
