package selection

import (
	"context"
	"errors"
	"testing"

	"github.com/studymesh/kgraph/models"
)

type fakeSource struct {
	questions map[string][]*models.Question
	err       error
}

func (f *fakeSource) FetchQuestionsForKnowledgePoint(_ context.Context, nodeID string) ([]*models.Question, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.questions[nodeID], nil
}

func testQuestions() map[string][]*models.Question {
	return map[string][]*models.Question{
		"kp1": {
			{ID: "q1", Content: "Solve x^2=4", KnowledgePointIDs: []string{"kp1", "kp2"}},
			{ID: "q2", Content: "Factor x^2-1", KnowledgePointIDs: []string{"kp1"}},
		},
	}
}

func TestSelectNodeOpensQuestionList(t *testing.T) {
	c := NewCoordinator(&fakeSource{questions: testQuestions()})
	node := models.NewNode("kp1", "Quadratics", models.KindKnowledgePoint)

	if err := c.SelectNode(context.Background(), node); err != nil {
		t.Fatalf("SelectNode() error = %v", err)
	}

	questions, open := c.Questions()
	if !open {
		t.Fatal("question list not open after selection")
	}
	if len(questions) != 2 {
		t.Fatalf("len(questions) = %d, want 2", len(questions))
	}
	if got := c.ActiveNode(); got != "kp1" {
		t.Fatalf("ActiveNode() = %q, want kp1", got)
	}
	// Opening the list highlights nothing by itself.
	if got := len(c.HighlightedIDs()); got != 0 {
		t.Fatalf("len(HighlightedIDs) = %d before question pick, want 0", got)
	}
}

func TestSelectNodeFetchFailureKeepsState(t *testing.T) {
	src := &fakeSource{questions: testQuestions()}
	c := NewCoordinator(src)
	node := models.NewNode("kp1", "Quadratics", models.KindKnowledgePoint)

	if err := c.SelectNode(context.Background(), node); err != nil {
		t.Fatalf("SelectNode() error = %v", err)
	}
	if err := c.SelectQuestion("q1"); err != nil {
		t.Fatalf("SelectQuestion() error = %v", err)
	}

	src.err = errors.New("service down")
	if err := c.SelectNode(context.Background(), node); err == nil {
		t.Fatal("SelectNode() error = nil with failing source")
	}

	// The earlier highlight and list survive the failed fetch.
	if got := len(c.HighlightedIDs()); got != 2 {
		t.Fatalf("len(HighlightedIDs) = %d after failed fetch, want 2", got)
	}
	if _, open := c.Questions(); !open {
		t.Fatal("question list closed by failed fetch")
	}
}

func TestSelectQuestionDrivesHighlight(t *testing.T) {
	c := NewCoordinator(&fakeSource{questions: testQuestions()})
	node := models.NewNode("kp1", "Quadratics", models.KindKnowledgePoint)
	if err := c.SelectNode(context.Background(), node); err != nil {
		t.Fatalf("SelectNode() error = %v", err)
	}

	if err := c.SelectQuestion("q1"); err != nil {
		t.Fatalf("SelectQuestion() error = %v", err)
	}

	ids := c.HighlightedIDs()
	for _, want := range []string{"kp1", "kp2"} {
		if _, ok := ids[want]; !ok {
			t.Fatalf("HighlightedIDs missing %q", want)
		}
	}
	if q := c.SelectedQuestion(); q == nil || q.ID != "q1" {
		t.Fatalf("SelectedQuestion() = %v, want q1", q)
	}

	if err := c.SelectQuestion("unknown"); err == nil {
		t.Fatal("SelectQuestion(unknown) error = nil, want error")
	}
}

func TestHighlightBoundedByDocument(t *testing.T) {
	c := NewCoordinator(&fakeSource{questions: testQuestions()})

	// Only kp1 exists in this document; q1 also references kp2.
	doc := models.NewDocument("subject", models.GraphMastery)
	if err := doc.AddNode(models.NewNode("kp1", "Quadratics", models.KindKnowledgePoint)); err != nil {
		t.Fatalf("AddNode error = %v", err)
	}
	c.SetDocument(doc)

	node := models.NewNode("kp1", "Quadratics", models.KindKnowledgePoint)
	if err := c.SelectNode(context.Background(), node); err != nil {
		t.Fatalf("SelectNode() error = %v", err)
	}
	if err := c.SelectQuestion("q1"); err != nil {
		t.Fatalf("SelectQuestion() error = %v", err)
	}

	ids := c.HighlightedIDs()
	if _, ok := ids["kp1"]; !ok {
		t.Fatal("HighlightedIDs missing kp1")
	}
	if _, ok := ids["kp2"]; ok {
		t.Fatal("HighlightedIDs contains kp2, which is not in the document")
	}
}

func TestClearHighlight(t *testing.T) {
	c := NewCoordinator(&fakeSource{questions: testQuestions()})
	node := models.NewNode("kp1", "Quadratics", models.KindKnowledgePoint)
	if err := c.SelectNode(context.Background(), node); err != nil {
		t.Fatalf("SelectNode() error = %v", err)
	}
	if err := c.SelectQuestion("q2"); err != nil {
		t.Fatalf("SelectQuestion() error = %v", err)
	}

	c.ClearHighlight()

	if got := len(c.HighlightedIDs()); got != 0 {
		t.Fatalf("len(HighlightedIDs) = %d after clear, want 0", got)
	}
	if q := c.SelectedQuestion(); q != nil {
		t.Fatalf("SelectedQuestion() = %v after clear, want nil", q)
	}
	if _, open := c.Questions(); open {
		t.Fatal("question list still open after clear")
	}
}
