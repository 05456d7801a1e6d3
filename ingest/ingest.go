// Package ingest decodes graph documents from the external knowledge-graph
// service. Payloads are opaque JSON owned by the service; this package is
// where missing optional fields get their defaults and where edges with
// unresolvable endpoints are dropped.
package ingest

import (
	"encoding/json"
	"fmt"

	"github.com/studymesh/kgraph/logger"
	"github.com/studymesh/kgraph/models"
)

// rawNode mirrors the service payload. Optional numeric fields are pointers
// so that "absent" can be told apart from an explicit zero.
type rawNode struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Kind          string   `json:"kind"`
	Level         int      `json:"level"`
	Difficulty    *int     `json:"difficulty"`
	Importance    *int     `json:"importance"`
	MasteryLevel  *float64 `json:"masteryLevel"`
	QuestionCount *int     `json:"questionCount"`
}

type rawEdge struct {
	Source   string   `json:"source"`
	Target   string   `json:"target"`
	Kind     string   `json:"kind"`
	Strength *float64 `json:"strength"`
}

type rawDocument struct {
	SubjectID string    `json:"subjectId"`
	GraphType string    `json:"graphType"`
	Nodes     []rawNode `json:"nodes"`
	Edges     []rawEdge `json:"edges"`
}

// ParseDocument decodes a graph payload into a fully resolved GraphDocument.
// Nodes with duplicate ids keep the first occurrence; edges referencing a
// missing node id are dropped silently and only counted for diagnostics.
func ParseDocument(data []byte) (*models.GraphDocument, error) {
	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding graph document: %w", err)
	}
	return buildDocument(&raw)
}

func buildDocument(raw *rawDocument) (*models.GraphDocument, error) {
	if len(raw.Nodes) == 0 {
		return nil, fmt.Errorf("graph document for subject %q has no nodes", raw.SubjectID)
	}

	gt := models.GraphType(raw.GraphType)
	if !gt.Valid() {
		gt = models.GraphFullKnow
	}
	doc := models.NewDocument(raw.SubjectID, gt)

	for _, rn := range raw.Nodes {
		node := models.NewNode(rn.ID, rn.Name, models.NodeKind(rn.Kind))
		node.Level = rn.Level
		if rn.Difficulty != nil {
			node.Difficulty = *rn.Difficulty
		}
		if rn.Importance != nil {
			node.Importance = *rn.Importance
		}
		if rn.QuestionCount != nil && *rn.QuestionCount > 0 {
			node.QuestionCount = *rn.QuestionCount
		}
		node.MasteryLevel = rn.MasteryLevel
		if err := doc.AddNode(node); err != nil {
			// First occurrence wins; duplicates in the payload are a
			// service-side quirk, not a reason to reject the document.
			logger.Debug("skipping duplicate node", "id", rn.ID)
		}
	}

	for _, re := range raw.Edges {
		strength := 1.0
		if re.Strength != nil && *re.Strength > 0 {
			strength = *re.Strength
		}
		edge := models.NewEdge(re.Source, re.Target, edgeKind(re.Kind), strength)
		if ok := doc.AddEdge(edge); !ok {
			logger.Debug("dropping dangling edge",
				"source", re.Source, "target", re.Target)
		}
	}

	if doc.DroppedEdges > 0 {
		logger.Warn("dropped edges with unresolved endpoints",
			"subject", doc.SubjectID, "dropped", doc.DroppedEdges)
	}
	return doc, nil
}

func edgeKind(kind string) models.EdgeKind {
	if kind == string(models.EdgeRelation) {
		return models.EdgeRelation
	}
	return models.EdgeHierarchy
}
