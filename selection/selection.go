// Package selection implements the bidirectional link between graph nodes and
// the question list: selecting a knowledge point fetches its questions, and
// picking a question highlights every knowledge point it references.
package selection

import (
	"context"
	"fmt"
	"sync"

	"github.com/studymesh/kgraph/logger"
	"github.com/studymesh/kgraph/models"
)

// QuestionSource is the external question-index collaborator.
type QuestionSource interface {
	FetchQuestionsForKnowledgePoint(ctx context.Context, nodeID string) ([]*models.Question, error)
}

// Coordinator owns the highlight state. No other component writes it.
type Coordinator struct {
	mu sync.Mutex

	source QuestionSource
	state  *models.HighlightState
	doc    *models.GraphDocument

	// questions is the open question list; nil means the list is closed.
	questions  []*models.Question
	activeNode string
}

// NewCoordinator returns a coordinator with an empty highlight state.
func NewCoordinator(source QuestionSource) *Coordinator {
	return &Coordinator{
		source: source,
		state:  models.NewHighlightState(),
	}
}

// SelectNode fetches the questions referencing the given knowledge point and
// opens the question list. On fetch failure the previous state is kept and
// the error is returned for the caller to surface as a transient notice.
func (c *Coordinator) SelectNode(ctx context.Context, node *models.GraphNode) error {
	questions, err := c.source.FetchQuestionsForKnowledgePoint(ctx, node.ID)
	if err != nil {
		logger.Error("question lookup failed", "node", node.ID, "err", err)
		return fmt.Errorf("fetching questions for %q: %w", node.ID, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.activeNode = node.ID
	c.questions = questions
	if c.questions == nil {
		c.questions = []*models.Question{}
	}
	logger.Debug("question list opened", "node", node.ID, "count", len(questions))
	return nil
}

// SelectQuestion marks the question with the given id as the highlight
// driver. The highlight set becomes exactly the knowledge points that
// question references.
func (c *Coordinator) SelectQuestion(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, q := range c.questions {
		if q.ID == id {
			c.state.SetQuestion(q)
			// A question may reference knowledge points absent from the
			// current graph type's document; the highlight set stays a
			// subset of the document's node ids.
			if c.doc != nil {
				for nodeID := range c.state.HighlightedNodeIDs {
					if !c.doc.HasNode(nodeID) {
						delete(c.state.HighlightedNodeIDs, nodeID)
					}
				}
			}
			return nil
		}
	}
	return fmt.Errorf("question %q is not in the open list", id)
}

// ClearHighlight empties the highlight set, drops the selected question and
// closes the question list, restoring ordinary graph-type coloring.
func (c *Coordinator) ClearHighlight() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Clear()
	c.questions = nil
	c.activeNode = ""
}

// SetDocument is called when the document is replaced: highlight state never
// survives a new subject or graph-type fetch, and the new document bounds
// future highlight sets.
func (c *Coordinator) SetDocument(doc *models.GraphDocument) {
	c.ClearHighlight()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.doc = doc
}

// HighlightedIDs returns a copy of the current highlight set for the
// encoding resolver.
func (c *Coordinator) HighlightedIDs() map[string]struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]struct{}, len(c.state.HighlightedNodeIDs))
	for id := range c.state.HighlightedNodeIDs {
		out[id] = struct{}{}
	}
	return out
}

// SelectedQuestion returns the question currently driving the highlight, or
// nil.
func (c *Coordinator) SelectedQuestion() *models.Question {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.SelectedQuestion
}

// Questions returns the open question list and whether the list view is open.
func (c *Coordinator) Questions() (list []*models.Question, open bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.questions, c.questions != nil
}

// ActiveNode returns the id of the knowledge point whose questions are
// listed, or "".
func (c *Coordinator) ActiveNode() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeNode
}
