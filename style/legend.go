package style

import "github.com/studymesh/kgraph/models"

// LegendEntry is one swatch-and-label row in the rendered legend.
type LegendEntry struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// Legend derives the legend rows for the active graph type. The mastery badge
// row is appended last because the badge is shown in every mode.
func Legend(gt models.GraphType) []LegendEntry {
	var entries []LegendEntry
	switch gt {
	case models.GraphExamScope:
		entries = []LegendEntry{
			{Label: "Critical", Color: "#EA4335"},
			{Label: "Important", Color: "#FF9800"},
			{Label: "Moderate", Color: "#FBBC05"},
			{Label: "Low", Color: DefaultColor},
		}
	case models.GraphMastery:
		entries = []LegendEntry{
			{Label: "Mastered", Color: "#34A853"},
			{Label: "Mostly mastered", Color: "#8BC34A"},
			{Label: "Partially mastered", Color: "#FBBC05"},
			{Label: "Weak", Color: "#EA4335"},
		}
	default:
		entries = []LegendEntry{
			{Label: "Subject", Color: kindColors[models.KindSubject]},
			{Label: "Chapter", Color: kindColors[models.KindChapter]},
			{Label: "Knowledge point", Color: kindColors[models.KindKnowledgePoint]},
			{Label: "Sub knowledge point", Color: kindColors[models.KindSubKnowledgePoint]},
			{Label: "AI content", Color: kindColors[models.KindAIContent]},
		}
	}
	entries = append(entries, LegendEntry{Label: "Highlighted", Color: HighlightColor})
	return entries
}
