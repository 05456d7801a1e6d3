// Package style maps nodes to their visual encoding: a color derived from
// the active graph type and highlight set, and a radius derived from
// importance and question volume. Everything here is a pure function of its
// inputs; render order never matters.
package style

import (
	"math"

	"github.com/studymesh/kgraph/models"
)

// HighlightColor overrides every graph-type-specific rule for nodes that are
// part of the active highlight set.
const HighlightColor = "#F50057"

// DefaultColor is used for unknown taxonomy kinds.
const DefaultColor = "#9E9E9E"

// BaseRadius is the minimum node radius before importance and question
// volume are added.
const BaseRadius = 8.0

var kindColors = map[models.NodeKind]string{
	models.KindSubject:           "#4285F4",
	models.KindChapter:           "#673AB7",
	models.KindKnowledgePoint:    "#00BCD4",
	models.KindSubKnowledgePoint: "#009688",
	models.KindAIContent:         "#FF6D00",
}

// colorFn resolves a node's color for one graph type.
type colorFn func(*models.GraphNode) string

// graphTypeColors keys each graph type to its coloring strategy, keeping the
// resolver exhaustive without runtime type inspection.
var graphTypeColors = map[models.GraphType]colorFn{
	models.GraphExamScope:   importanceColor,
	models.GraphMastery:     masteryNodeColor,
	models.GraphFullKnow:    kindColor,
	models.GraphAIAssistant: kindColor,
}

// ResolveColor returns the color token for a node. Highlight membership wins
// over every graph-type rule; unknown graph types fall back to taxonomy
// coloring.
func ResolveColor(n *models.GraphNode, gt models.GraphType, highlighted map[string]struct{}) string {
	if _, ok := highlighted[n.ID]; ok {
		return HighlightColor
	}
	resolve, ok := graphTypeColors[gt]
	if !ok {
		resolve = kindColor
	}
	return resolve(n)
}

// importanceColor buckets exam-scope importance into four tiers.
func importanceColor(n *models.GraphNode) string {
	switch {
	case n.Importance >= 5:
		return "#EA4335" // critical
	case n.Importance >= 4:
		return "#FF9800" // important
	case n.Importance >= 3:
		return "#FBBC05" // moderate
	default:
		return DefaultColor // low
	}
}

// masteryNodeColor colors a node by its mastery tier. An undefined mastery
// level counts as the weakest tier in mastery view.
func masteryNodeColor(n *models.GraphNode) string {
	if n.MasteryLevel == nil {
		return MasteryColor(0)
	}
	return MasteryColor(*n.MasteryLevel)
}

// MasteryColor buckets a mastery level in [0,1] into four tiers, inclusive on
// the upper boundary of each tier.
func MasteryColor(level float64) string {
	switch {
	case level >= 0.8:
		return "#34A853" // mastered
	case level >= 0.6:
		return "#8BC34A" // mostly
	case level >= 0.4:
		return "#FBBC05" // partial
	default:
		return "#EA4335" // weak
	}
}

func kindColor(n *models.GraphNode) string {
	if c, ok := kindColors[n.Kind]; ok {
		return c
	}
	return DefaultColor
}

// ResolveRadius computes a node's radius. The logarithmic question-count term
// keeps a node with thousands of questions only modestly larger than one with
// a handful, so no single node dominates the canvas.
func ResolveRadius(n *models.GraphNode) float64 {
	importance := n.Importance
	if importance < 1 {
		importance = 1
	}
	count := float64(n.QuestionCount)
	if count < 1 {
		count = 1
	}
	return BaseRadius + float64(importance)*2 + math.Log(count+1)
}

// BadgeColor returns the mastery badge color for a node. The badge is drawn
// regardless of the active graph type, but only for nodes whose mastery level
// is defined.
func BadgeColor(n *models.GraphNode) (color string, ok bool) {
	if n.MasteryLevel == nil {
		return "", false
	}
	return MasteryColor(*n.MasteryLevel), true
}
