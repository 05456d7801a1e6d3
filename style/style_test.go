package style

import (
	"testing"

	"github.com/studymesh/kgraph/models"
)

func ptr(f float64) *float64 { return &f }

func TestResolveColorHighlightPrecedence(t *testing.T) {
	node := models.NewNode("n1", "x", models.KindKnowledgePoint)
	node.Importance = 5
	node.MasteryLevel = ptr(0.9)
	highlighted := map[string]struct{}{"n1": {}}

	for _, gt := range []models.GraphType{
		models.GraphExamScope,
		models.GraphFullKnow,
		models.GraphMastery,
		models.GraphAIAssistant,
	} {
		if got := ResolveColor(node, gt, highlighted); got != HighlightColor {
			t.Fatalf("ResolveColor(%s) = %q, want highlight color %q", gt, got, HighlightColor)
		}
	}
}

func TestResolveColorImportanceTiers(t *testing.T) {
	tests := []struct {
		name       string
		importance int
		want       string
	}{
		{"Critical", 5, "#EA4335"},
		{"Important", 4, "#FF9800"},
		{"Moderate", 3, "#FBBC05"},
		{"Low", 2, DefaultColor},
		{"Lowest", 1, DefaultColor},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			node := models.NewNode("n", "x", models.KindKnowledgePoint)
			node.Importance = tc.importance
			got := ResolveColor(node, models.GraphExamScope, nil)
			if got != tc.want {
				t.Fatalf("importance %d -> %q, want %q", tc.importance, got, tc.want)
			}
		})
	}
}

func TestMasteryBucketBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		level float64
		want  string
	}{
		{"MasteredBoundary", 0.8, "#34A853"},
		{"MostlyBoundary", 0.6, "#8BC34A"},
		{"PartialBoundary", 0.4, "#FBBC05"},
		{"JustBelowPartial", 0.39, "#EA4335"},
		{"Zero", 0, "#EA4335"},
		{"Full", 1, "#34A853"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := MasteryColor(tc.level); got != tc.want {
				t.Fatalf("MasteryColor(%v) = %q, want %q", tc.level, got, tc.want)
			}
		})
	}
}

func TestMasteryViewUndefinedIsWeakest(t *testing.T) {
	node := models.NewNode("n", "x", models.KindChapter)
	if got, want := ResolveColor(node, models.GraphMastery, nil), MasteryColor(0); got != want {
		t.Fatalf("undefined mastery -> %q, want weakest tier %q", got, want)
	}
}

func TestResolveColorByKind(t *testing.T) {
	tests := []struct {
		kind models.NodeKind
		want string
	}{
		{models.KindSubject, "#4285F4"},
		{models.KindChapter, "#673AB7"},
		{models.KindKnowledgePoint, "#00BCD4"},
		{models.KindSubKnowledgePoint, "#009688"},
		{models.KindAIContent, "#FF6D00"},
		{models.NodeKind("mystery"), DefaultColor},
	}

	for _, tc := range tests {
		node := models.NewNode("n", "x", tc.kind)
		if got := ResolveColor(node, models.GraphFullKnow, nil); got != tc.want {
			t.Fatalf("kind %s -> %q, want %q", tc.kind, got, tc.want)
		}
	}
}

func TestResolveRadiusMonotoneSublinear(t *testing.T) {
	small := models.NewNode("a", "x", models.KindKnowledgePoint)
	small.QuestionCount = 100
	large := models.NewNode("b", "x", models.KindKnowledgePoint)
	large.QuestionCount = 10000

	rSmall := ResolveRadius(small)
	rLarge := ResolveRadius(large)
	if rLarge <= rSmall {
		t.Fatalf("radius not monotone: %v (10000) <= %v (100)", rLarge, rSmall)
	}
	// 100x the questions must yield far less than 100x the radius.
	if ratio := rLarge / rSmall; ratio >= 2 {
		t.Fatalf("radius ratio %v, want sub-linear growth (< 2)", ratio)
	}
}

func TestResolveRadiusImportanceDefault(t *testing.T) {
	node := &models.GraphNode{ID: "n", Kind: models.KindKnowledgePoint} // importance absent
	withDefault := models.NewNode("n", "x", models.KindKnowledgePoint)
	if got, want := ResolveRadius(node), ResolveRadius(withDefault); got != want {
		t.Fatalf("absent importance radius = %v, want default-1 radius %v", got, want)
	}
}

func TestBadgeColor(t *testing.T) {
	withMastery := models.NewNode("a", "x", models.KindKnowledgePoint)
	withMastery.MasteryLevel = ptr(0.65)
	if color, ok := BadgeColor(withMastery); !ok || color != MasteryColor(0.65) {
		t.Fatalf("BadgeColor = %q/%v, want %q/true", color, ok, MasteryColor(0.65))
	}

	without := models.NewNode("b", "x", models.KindChapter)
	if _, ok := BadgeColor(without); ok {
		t.Fatal("BadgeColor ok = true for undefined mastery, want false")
	}
}

func TestLegendPerGraphType(t *testing.T) {
	tests := []struct {
		gt      models.GraphType
		entries int
	}{
		{models.GraphExamScope, 5},   // 4 tiers + highlight
		{models.GraphMastery, 5},    // 4 tiers + highlight
		{models.GraphFullKnow, 6},   // 5 kinds + highlight
		{models.GraphAIAssistant, 6},
	}

	for _, tc := range tests {
		entries := Legend(tc.gt)
		if len(entries) != tc.entries {
			t.Fatalf("Legend(%s) has %d entries, want %d", tc.gt, len(entries), tc.entries)
		}
		last := entries[len(entries)-1]
		if last.Color != HighlightColor {
			t.Fatalf("Legend(%s) last entry color = %q, want highlight", tc.gt, last.Color)
		}
	}
}
