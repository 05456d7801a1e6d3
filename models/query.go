package models

// NodesByKind returns all nodes of the given taxonomy kind.
func (d *GraphDocument) NodesByKind(kind NodeKind) []*GraphNode {
	var result []*GraphNode
	for _, n := range d.Nodes {
		if n.Kind == kind {
			result = append(result, n)
		}
	}
	return result
}

// EdgesByKind returns all edges of the given kind.
func (d *GraphDocument) EdgesByKind(kind EdgeKind) []*GraphEdge {
	var result []*GraphEdge
	for _, e := range d.Edges {
		if e.Kind == kind {
			result = append(result, e)
		}
	}
	return result
}

// Neighbors returns the nodes directly connected to the given node id.
func (d *GraphDocument) Neighbors(id string) []*GraphNode {
	var result []*GraphNode
	seen := make(map[string]struct{})
	for _, e := range d.Edges {
		var other *GraphNode
		switch id {
		case e.Source:
			other = e.To
		case e.Target:
			other = e.From
		default:
			continue
		}
		if _, dup := seen[other.ID]; dup {
			continue
		}
		seen[other.ID] = struct{}{}
		result = append(result, other)
	}
	return result
}
