package models

import "fmt"

// NewNode creates a node with the defaults the graph service is allowed to
// omit: difficulty and importance fall back to 1, questionCount to 0.
func NewNode(id, name string, kind NodeKind) *GraphNode {
	return &GraphNode{
		ID:         id,
		Name:       name,
		Kind:       kind,
		Difficulty: 1,
		Importance: 1,
	}
}

// NewEdge creates an unresolved edge between two node ids. Strength values
// at or below zero are lifted to 1 so the link force always has a target.
func NewEdge(source, target string, kind EdgeKind, strength float64) *GraphEdge {
	if strength <= 0 {
		strength = 1
	}
	return &GraphEdge{
		Source:   source,
		Target:   target,
		Kind:     kind,
		Strength: strength,
	}
}

// NewDocument creates an empty document for the given subject and graph type.
func NewDocument(subjectID string, graphType GraphType) *GraphDocument {
	return &GraphDocument{
		SubjectID: subjectID,
		GraphType: graphType,
		index:     make(map[string]*GraphNode),
	}
}

// AddNode inserts a node into the document. A node with a duplicate id
// replaces nothing and is rejected.
func (d *GraphDocument) AddNode(n *GraphNode) error {
	if d.index == nil {
		d.index = make(map[string]*GraphNode)
	}
	if _, exists := d.index[n.ID]; exists {
		return fmt.Errorf("node %q already present in document", n.ID)
	}
	d.index[n.ID] = n
	d.Nodes = append(d.Nodes, n)
	return nil
}

// AddEdge resolves the edge's endpoints against the document and appends it.
// An edge referencing a missing node id is dropped: the document's
// DroppedEdges counter is bumped and ok is false, but no error is raised.
func (d *GraphDocument) AddEdge(e *GraphEdge) (ok bool) {
	from := d.NodeByID(e.Source)
	to := d.NodeByID(e.Target)
	if from == nil || to == nil {
		d.DroppedEdges++
		return false
	}
	e.From = from
	e.To = to
	d.Edges = append(d.Edges, e)
	return true
}

// NodeByID returns the node with the given id, or nil.
func (d *GraphDocument) NodeByID(id string) *GraphNode {
	if d.index == nil {
		return nil
	}
	return d.index[id]
}

// HasNode reports whether a node id belongs to this document. The interaction
// layer uses this to ignore events against handles from a replaced document.
func (d *GraphDocument) HasNode(id string) bool {
	return d.NodeByID(id) != nil
}
