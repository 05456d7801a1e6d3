package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/studymesh/kgraph/models"
)

// The force functions below each scan the current node/edge snapshot and
// accumulate into node velocities. They are combined additively by Tick and
// carry no state of their own, so each one is testable in isolation.

// applyLinkForce pulls edge endpoints toward a target separation of
// base + strength*scale, modeled as a spring scaled by alpha.
func applyLinkForce(edges []*models.GraphEdge, base, scale, stiffness, alpha float64) {
	for _, e := range edges {
		if e.From == nil || e.To == nil {
			continue
		}
		delta := r2.Vec{X: e.To.X - e.From.X, Y: e.To.Y - e.From.Y}
		dist := math.Hypot(delta.X, delta.Y)
		if dist < minDistance {
			dist = minDistance
		}
		target := base + e.Strength*scale
		// Positive displacement means the edge is stretched.
		displacement := (dist - target) / dist * stiffness * alpha
		pull := r2.Scale(displacement, delta)

		e.From.VX += pull.X / 2
		e.From.VY += pull.Y / 2
		e.To.VX -= pull.X / 2
		e.To.VY -= pull.Y / 2
	}
}

// applyChargeForce makes every node repel every other node with a force
// inversely proportional to the squared distance. Strength is negative for
// repulsion.
func applyChargeForce(nodes []*models.GraphNode, strength, alpha float64) {
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			a, b := nodes[i], nodes[j]
			delta := r2.Vec{X: b.X - a.X, Y: b.Y - a.Y}
			distSq := delta.X*delta.X + delta.Y*delta.Y
			if distSq < minDistance {
				distSq = minDistance
			}
			push := r2.Scale(strength*alpha/distSq, delta)
			a.VX += push.X
			a.VY += push.Y
			b.VX -= push.X
			b.VY -= push.Y
		}
	}
}

// applyCenterForce nudges the layout's centroid toward the given center,
// preventing long-term drift off-screen.
func applyCenterForce(nodes []*models.GraphNode, center r2.Vec, strength float64) {
	if len(nodes) == 0 {
		return
	}
	var centroid r2.Vec
	for _, n := range nodes {
		centroid.X += n.X
		centroid.Y += n.Y
	}
	centroid = r2.Scale(1/float64(len(nodes)), centroid)
	correction := r2.Scale(strength, r2.Sub(center, centroid))
	for _, n := range nodes {
		n.VX += correction.X
		n.VY += correction.Y
	}
}

// applyCollisionForce treats each node as a circle of radius(n)+margin and
// separates overlapping centers. Repulsion alone does not guarantee
// label-sized clearance, so this runs independently of the charge force.
func applyCollisionForce(nodes []*models.GraphNode, radius func(*models.GraphNode) float64, margin float64) {
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			a, b := nodes[i], nodes[j]
			delta := r2.Vec{X: b.X - a.X, Y: b.Y - a.Y}
			dist := math.Hypot(delta.X, delta.Y)
			minSep := radius(a) + radius(b) + 2*margin
			if dist >= minSep {
				continue
			}
			if dist < minDistance {
				// Coincident centers have no separation direction; pick one.
				delta = r2.Vec{X: minDistance, Y: 0}
				dist = minDistance
			}
			overlap := (minSep - dist) / dist / 2
			sep := r2.Scale(overlap, delta)
			a.VX -= sep.X
			a.VY -= sep.Y
			b.VX += sep.X
			b.VY += sep.Y
		}
	}
}
