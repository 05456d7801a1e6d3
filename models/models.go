// Package models provides the data structures shared across the knowledge-graph
// viewer: nodes, edges, documents, questions, and the highlight state that links
// a selected question back to the nodes it references.
package models

// NodeKind classifies a node within the fixed subject taxonomy. It is
// immutable after creation.
type NodeKind string

const (
	KindSubject           NodeKind = "subject"
	KindChapter           NodeKind = "chapter"
	KindKnowledgePoint    NodeKind = "knowledge_point"
	KindSubKnowledgePoint NodeKind = "sub_knowledge_point"
	KindAIContent         NodeKind = "ai_content"
)

// Selectable reports whether clicking a node of this kind triggers question
// lookup. Only knowledge points carry question references.
func (k NodeKind) Selectable() bool {
	return k == KindKnowledgePoint || k == KindSubKnowledgePoint
}

// GraphType selects which data dimension drives node coloring.
type GraphType string

const (
	GraphExamScope   GraphType = "exam_scope"
	GraphFullKnow    GraphType = "full_knowledge"
	GraphMastery     GraphType = "mastery_level"
	GraphAIAssistant GraphType = "ai_assistant_content"
)

// Valid reports whether gt is one of the known graph types.
func (gt GraphType) Valid() bool {
	switch gt {
	case GraphExamScope, GraphFullKnow, GraphMastery, GraphAIAssistant:
		return true
	}
	return false
}

// EdgeKind distinguishes taxonomy edges from cross-cutting relations.
type EdgeKind string

const (
	EdgeHierarchy EdgeKind = "hierarchy"
	EdgeRelation  EdgeKind = "relation"
)

// GraphNode is a node in the knowledge graph.
//
// The position fields (X, Y, VX, VY) are owned exclusively by the force
// simulation; every other component treats them as read-only. FX/FY form the
// pinned override written only by the interaction controller while a drag
// gesture is active: when non-nil the simulation parks the node there and
// zeroes its velocity instead of integrating.
type GraphNode struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Kind          NodeKind `json:"kind"`
	Level         int      `json:"level"`
	Difficulty    int      `json:"difficulty"`
	Importance    int      `json:"importance"`
	MasteryLevel  *float64 `json:"masteryLevel,omitempty"` // nil means "not applicable", not zero
	QuestionCount int      `json:"questionCount"`

	X  float64  `json:"x"`
	Y  float64  `json:"y"`
	VX float64  `json:"-"`
	VY float64  `json:"-"`
	FX *float64 `json:"-"`
	FY *float64 `json:"-"`
}

// Pinned reports whether the node currently has a drag override.
func (n *GraphNode) Pinned() bool {
	return n.FX != nil && n.FY != nil
}

// Pin fixes the node at (x, y) until Unpin is called.
func (n *GraphNode) Pin(x, y float64) {
	n.FX = &x
	n.FY = &y
}

// Unpin releases the drag override.
func (n *GraphNode) Unpin() {
	n.FX = nil
	n.FY = nil
}

// GraphEdge is a weighted edge between two nodes. From and To are resolved to
// live node handles during ingestion; edges whose endpoints cannot be resolved
// never make it into a document.
type GraphEdge struct {
	Source   string   `json:"source"`
	Target   string   `json:"target"`
	Kind     EdgeKind `json:"kind"`
	Strength float64  `json:"strength"`

	From *GraphNode `json:"-"`
	To   *GraphNode `json:"-"`
}

// GraphDocument is one fetched knowledge graph. Documents are replaced
// wholesale on subject or graph-type change, never patched incrementally.
type GraphDocument struct {
	SubjectID string       `json:"subjectId"`
	GraphType GraphType    `json:"graphType"`
	Nodes     []*GraphNode `json:"nodes"`
	Edges     []*GraphEdge `json:"edges"`

	// DroppedEdges counts edges discarded during ingestion because an
	// endpoint id did not resolve. Diagnostic only.
	DroppedEdges int `json:"-"`

	index map[string]*GraphNode
}

// Question is an exam question referencing one or more knowledge points.
type Question struct {
	ID                string   `json:"id"`
	Content           string   `json:"content"`
	Type              string   `json:"type"`
	Difficulty        int      `json:"difficulty"`
	Score             float64  `json:"score"`
	KnowledgePointIDs []string `json:"knowledgePointIds"`
	PaperName         string   `json:"paperName"`
	Year              int      `json:"year"`
}

// HighlightState links the currently selected question to the set of node ids
// it references. The selection coordinator is its sole writer.
type HighlightState struct {
	HighlightedNodeIDs map[string]struct{}
	SelectedQuestion   *Question
}

// NewHighlightState returns an empty highlight state.
func NewHighlightState() *HighlightState {
	return &HighlightState{HighlightedNodeIDs: make(map[string]struct{})}
}

// Highlighted reports whether the node id is part of the active highlight set.
func (h *HighlightState) Highlighted(id string) bool {
	_, ok := h.HighlightedNodeIDs[id]
	return ok
}

// Clear empties the highlight set and drops the selected question.
func (h *HighlightState) Clear() {
	h.HighlightedNodeIDs = make(map[string]struct{})
	h.SelectedQuestion = nil
}

// SetQuestion records q as the driving question and highlights exactly the
// knowledge points it references.
func (h *HighlightState) SetQuestion(q *Question) {
	h.SelectedQuestion = q
	h.HighlightedNodeIDs = make(map[string]struct{}, len(q.KnowledgePointIDs))
	for _, id := range q.KnowledgePointIDs {
		h.HighlightedNodeIDs[id] = struct{}{}
	}
}
