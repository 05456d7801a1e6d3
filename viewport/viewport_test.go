package viewport

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestZoomClamp(t *testing.T) {
	tests := []struct {
		name    string
		factors []float64
		want    float64
	}{
		{"ZoomOutFloor", []float64{0.01}, MinScale},
		{"ZoomInCeiling", []float64{100}, MaxScale},
		{"RepeatedZoomOut", []float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.5}, MinScale},
		{"Plain", []float64{2}, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := New()
			for _, f := range tc.factors {
				v.ZoomAt(f, 0, 0)
			}
			if _, scale := v.Transform(); scale != tc.want {
				t.Fatalf("scale = %v, want %v", scale, tc.want)
			}
		})
	}
}

func TestZoomKeepsAnchorFixed(t *testing.T) {
	v := New()
	v.Pan(40, -25)

	anchor := r2.Vec{X: 300, Y: 200}
	worldBefore := v.ToWorld(anchor)
	v.ZoomAt(1.7, anchor.X, anchor.Y)
	worldAfter := v.ToWorld(anchor)

	if !almostEqual(worldBefore.X, worldAfter.X) || !almostEqual(worldBefore.Y, worldAfter.Y) {
		t.Fatalf("anchor drifted: (%v, %v) -> (%v, %v)",
			worldBefore.X, worldBefore.Y, worldAfter.X, worldAfter.Y)
	}
}

func TestRoundTrip(t *testing.T) {
	v := New()
	v.Pan(-120, 85)
	v.ZoomAt(1.6, 50, 50)

	p := r2.Vec{X: 37.5, Y: -12.25}
	back := v.ToWorld(v.ToScreen(p))
	if !almostEqual(p.X, back.X) || !almostEqual(p.Y, back.Y) {
		t.Fatalf("round trip (%v, %v) -> (%v, %v)", p.X, p.Y, back.X, back.Y)
	}
}

func TestReset(t *testing.T) {
	v := New()
	v.Pan(100, 100)
	v.ZoomAt(2, 10, 10)
	v.Reset()

	translate, scale := v.Transform()
	if translate.X != 0 || translate.Y != 0 || scale != 1 {
		t.Fatalf("reset left translate (%v, %v) scale %v", translate.X, translate.Y, scale)
	}
}
