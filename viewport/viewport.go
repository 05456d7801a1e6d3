// Package viewport maintains the pan/zoom transform applied to the rendered
// scene. Node positions stay in simulation space; the transform is the single
// conversion between the two coordinate systems, applied once at render time.
package viewport

import (
	"sync"

	"gonum.org/v1/gonum/spatial/r2"
)

// Scale bounds keep the graph from being zoomed into unreadable or unusably
// tiny states.
const (
	MinScale = 0.1
	MaxScale = 3.0
)

// Viewport is a 2D affine transform: uniform scale followed by translation.
type Viewport struct {
	mu sync.Mutex

	translate r2.Vec
	scale     float64
}

// New returns an identity viewport.
func New() *Viewport {
	return &Viewport{scale: 1}
}

// Pan shifts the scene by (dx, dy) screen pixels.
func (v *Viewport) Pan(dx, dy float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.translate.X += dx
	v.translate.Y += dy
}

// ZoomAt multiplies the scale by factor, keeping the screen point (sx, sy)
// fixed, and clamps the result to [MinScale, MaxScale].
func (v *Viewport) ZoomAt(factor, sx, sy float64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	next := clamp(v.scale*factor, MinScale, MaxScale)
	if next == v.scale {
		return
	}
	// Keep the world point under (sx, sy) stationary across the zoom.
	ratio := next / v.scale
	v.translate.X = sx - (sx-v.translate.X)*ratio
	v.translate.Y = sy - (sy-v.translate.Y)*ratio
	v.scale = next
}

// Reset restores the identity transform.
func (v *Viewport) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.translate = r2.Vec{}
	v.scale = 1
}

// Transform returns the current translation and scale.
func (v *Viewport) Transform() (translate r2.Vec, scale float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.translate, v.scale
}

// ToScreen converts a simulation-space point to screen space.
func (v *Viewport) ToScreen(p r2.Vec) r2.Vec {
	v.mu.Lock()
	defer v.mu.Unlock()
	return r2.Add(r2.Scale(v.scale, p), v.translate)
}

// ToWorld converts a screen-space point back to simulation space. The
// interaction controller uses this so drag overrides land in the coordinate
// system the simulation owns, independent of zoom level.
func (v *Viewport) ToWorld(p r2.Vec) r2.Vec {
	v.mu.Lock()
	defer v.mu.Unlock()
	return r2.Scale(1/v.scale, r2.Sub(p, v.translate))
}

func clamp(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
