// Package render draws the graph scene: edges, nodes, labels, mastery badges
// and the legend for the active encoding mode. A scene is a read-only
// snapshot of simulation positions with the viewport transform applied at
// draw time, never fed back into the forces.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"math"

	"github.com/studymesh/kgraph/models"
	"github.com/studymesh/kgraph/style"
	"github.com/studymesh/kgraph/viewport"
)

// Options holds the rendering configuration.
type Options struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	Background  string  `yaml:"background"`
	FontSize    float64 `yaml:"font_size"`
	ShowLabels  bool    `yaml:"show_labels"`
	EdgeColor   string  `yaml:"edge_color"`
	HoverScale  float64 `yaml:"hover_scale"`
	HoverStroke float64 `yaml:"hover_stroke"`
}

// DefaultOptions returns the production rendering configuration.
func DefaultOptions() Options {
	return Options{
		Width:       1200,
		Height:      900,
		Background:  "#f8f8f8",
		FontSize:    10,
		ShowLabels:  true,
		EdgeColor:   "#999999",
		HoverScale:  1.3,
		HoverStroke: 3,
	}
}

// SceneNode is one fully styled node ready to draw. Positions are in
// simulation space; the scene's transform converts them to screen space.
type SceneNode struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Radius      float64 `json:"radius"`
	Color       string  `json:"color"`
	StrokeWidth float64 `json:"strokeWidth"`
	Highlighted bool    `json:"highlighted"`
	Hovered     bool    `json:"hovered"`
	BadgeColor  string  `json:"badgeColor,omitempty"`
}

// SceneEdge is one styled edge.
type SceneEdge struct {
	X1     float64 `json:"x1"`
	Y1     float64 `json:"y1"`
	X2     float64 `json:"x2"`
	Y2     float64 `json:"y2"`
	Width  float64 `json:"width"`
	Source string  `json:"source"`
	Target string  `json:"target"`
}

// Scene is the complete drawable snapshot.
type Scene struct {
	Nodes      []SceneNode         `json:"nodes"`
	Edges      []SceneEdge         `json:"edges"`
	Legend     []style.LegendEntry `json:"legend"`
	GraphType  models.GraphType    `json:"graphType"`
	TranslateX float64             `json:"translateX"`
	TranslateY float64             `json:"translateY"`
	Scale      float64             `json:"scale"`
	Options    Options             `json:"options"`
}

// BuildScene resolves the visual encoding for every node and edge of the
// document under the current highlight set, hover state, and viewport.
func BuildScene(doc *models.GraphDocument, highlighted map[string]struct{}, hoverID string, view *viewport.Viewport, opts Options) *Scene {
	translate, scale := view.Transform()
	scene := &Scene{
		Legend:     style.Legend(doc.GraphType),
		GraphType:  doc.GraphType,
		TranslateX: translate.X,
		TranslateY: translate.Y,
		Scale:      scale,
		Options:    opts,
	}

	for _, e := range doc.Edges {
		scene.Edges = append(scene.Edges, SceneEdge{
			X1: e.From.X, Y1: e.From.Y,
			X2: e.To.X, Y2: e.To.Y,
			Width:  math.Max(0.5, e.Strength),
			Source: e.Source,
			Target: e.Target,
		})
	}

	for _, n := range doc.Nodes {
		radius := style.ResolveRadius(n)
		stroke := 1.0
		hovered := n.ID == hoverID
		if hovered {
			radius *= opts.HoverScale
			stroke = opts.HoverStroke
		}
		_, isHighlighted := highlighted[n.ID]
		sn := SceneNode{
			ID:          n.ID,
			Name:        n.Name,
			X:           n.X,
			Y:           n.Y,
			Radius:      radius,
			Color:       style.ResolveColor(n, doc.GraphType, highlighted),
			StrokeWidth: stroke,
			Highlighted: isHighlighted,
			Hovered:     hovered,
		}
		if badge, ok := style.BadgeColor(n); ok {
			sn.BadgeColor = badge
		}
		scene.Nodes = append(scene.Nodes, sn)
	}
	return scene
}

// SVG serializes the scene to a static vector image. This is a pure read of
// current render state; it never touches the simulation.
func (s *Scene) SVG() ([]byte, error) {
	opts := s.Options
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<svg width="%g" height="%g" viewBox="0 0 %g %g" xmlns="http://www.w3.org/2000/svg">
<rect width="100%%" height="100%%" fill="%s"/>
`, opts.Width, opts.Height, opts.Width, opts.Height, opts.Background))

	// One transform converts simulation space to screen space for the
	// whole scene.
	buf.WriteString(fmt.Sprintf(`<g transform="translate(%g,%g) scale(%g)">
`, s.TranslateX, s.TranslateY, s.Scale))

	for _, e := range s.Edges {
		buf.WriteString(fmt.Sprintf(`<line x1="%g" y1="%g" x2="%g" y2="%g" stroke="%s" stroke-width="%g"/>
`, e.X1, e.Y1, e.X2, e.Y2, opts.EdgeColor, e.Width))
	}

	for _, n := range s.Nodes {
		buf.WriteString(fmt.Sprintf(`<circle cx="%g" cy="%g" r="%g" fill="%s" stroke="rgba(0,0,0,0.3)" stroke-width="%g"/>
`, n.X, n.Y, n.Radius, n.Color, n.StrokeWidth))

		if n.BadgeColor != "" {
			// Mastery badge sits at the node's upper-right shoulder.
			bx := n.X + n.Radius*0.8
			by := n.Y - n.Radius*0.8
			buf.WriteString(fmt.Sprintf(`<circle cx="%g" cy="%g" r="%g" fill="%s" stroke="#ffffff" stroke-width="0.5"/>
`, bx, by, n.Radius*0.3, n.BadgeColor))
		}

		if opts.ShowLabels && n.Name != "" {
			labelY := n.Y + n.Radius + opts.FontSize + 2
			buf.WriteString(fmt.Sprintf(`<text x="%g" y="%g" font-family="sans-serif" font-size="%g" fill="#333333" text-anchor="middle">%s</text>
`, n.X, labelY, opts.FontSize, html.EscapeString(n.Name)))
		}
	}
	buf.WriteString("</g>\n")

	writeLegend(&buf, s.Legend, opts)

	buf.WriteString(`</svg>`)
	return buf.Bytes(), nil
}

// writeLegend draws the legend in screen space so it is unaffected by
// pan/zoom.
func writeLegend(buf *bytes.Buffer, entries []style.LegendEntry, opts Options) {
	x := 16.0
	y := 24.0
	for _, entry := range entries {
		buf.WriteString(fmt.Sprintf(`<circle cx="%g" cy="%g" r="6" fill="%s"/>
`, x, y, entry.Color))
		buf.WriteString(fmt.Sprintf(`<text x="%g" y="%g" font-family="sans-serif" font-size="%g" fill="#333333">%s</text>
`, x+12, y+4, opts.FontSize, html.EscapeString(entry.Label)))
		y += 20
	}
}

// JSON serializes the scene for the host page, which draws it client-side
// and posts pointer events back.
func (s *Scene) JSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
