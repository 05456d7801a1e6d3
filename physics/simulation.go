// Package physics implements the iterative force-directed layout that
// positions a knowledge graph's nodes. The simulation combines link, charge,
// center, and collision forces additively per tick under an alpha cooling
// schedule, so the layout settles instead of oscillating forever.
package physics

import (
	"fmt"
	"math"
	"sync"
	"time"

	opensimplex "github.com/ojrac/opensimplex-go"
	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"

	"github.com/studymesh/kgraph/models"
)

// minDistance guards divisions when two nodes share (nearly) the same spot.
const minDistance = 0.1

// Config holds the simulation tuning constants.
type Config struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	LinkBaseDistance  float64 `yaml:"link_base_distance"`  // base target separation per edge
	LinkDistanceScale float64 `yaml:"link_distance_scale"` // added per unit of edge strength
	LinkStiffness     float64 `yaml:"link_stiffness"`
	ChargeStrength    float64 `yaml:"charge_strength"` // negative repels
	CenterStrength    float64 `yaml:"center_strength"`
	CollisionMargin   float64 `yaml:"collision_margin"`

	VelocityDecay float64 `yaml:"velocity_decay"` // velocity multiplier per tick
	AlphaMin      float64 `yaml:"alpha_min"`
	AlphaDecay    float64 `yaml:"alpha_decay"`
	DragAlpha     float64 `yaml:"drag_alpha"` // alphaTarget raised to this while dragging
	MaxTicks      int     `yaml:"max_ticks"`  // absolute cap; remaining motion freezes

	// TickInterval is set from the "tick_interval" key as a duration
	// string ("33ms"); see UnmarshalYAML.
	TickInterval time.Duration `yaml:"-"`
	Seed         int64         `yaml:"seed"`
}

// UnmarshalYAML decodes the config, accepting "33ms"-style duration strings
// for tick_interval, which yaml cannot decode into time.Duration directly.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	type plain Config
	if err := value.Decode((*plain)(c)); err != nil {
		return err
	}
	var raw struct {
		TickInterval string `yaml:"tick_interval"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if raw.TickInterval != "" {
		d, err := time.ParseDuration(raw.TickInterval)
		if err != nil {
			return fmt.Errorf("parsing tick_interval: %w", err)
		}
		c.TickInterval = d
	}
	return nil
}

// DefaultConfig returns the tuning used by the production viewer.
func DefaultConfig() Config {
	return Config{
		Width:             1200,
		Height:            900,
		LinkBaseDistance:  50,
		LinkDistanceScale: 30,
		LinkStiffness:     0.7,
		ChargeStrength:    -300,
		CenterStrength:    0.05,
		CollisionMargin:   4,
		VelocityDecay:     0.6,
		AlphaMin:          0.001,
		AlphaDecay:        0.0228, // settles in roughly 300 ticks
		DragAlpha:         0.3,
		MaxTicks:          1000,
		TickInterval:      33 * time.Millisecond,
		Seed:              1,
	}
}

// Simulation is the single physics solver attached to a mounted viewer. It is
// the sole writer of node positions; it must be explicitly stopped before a
// replacement document's simulation starts, otherwise two solvers end up
// writing to stale node objects.
type Simulation struct {
	mu sync.Mutex

	cfg    Config
	nodes  []*models.GraphNode
	edges  []*models.GraphEdge
	radius func(*models.GraphNode) float64

	alpha       float64
	alphaTarget float64
	ticks       int
	frozen      bool

	onTick  func()
	stopped chan struct{}
	once    sync.Once
}

// NewSimulation seeds node positions and returns a simulation ready to tick.
// radius supplies each node's collision radius; onTick is invoked after every
// tick that moved anything (push model, never polled). Both may be nil.
func NewSimulation(cfg Config, doc *models.GraphDocument, radius func(*models.GraphNode) float64, onTick func()) *Simulation {
	if radius == nil {
		radius = func(*models.GraphNode) float64 { return 10 }
	}
	s := &Simulation{
		cfg:     cfg,
		nodes:   doc.Nodes,
		edges:   doc.Edges,
		radius:  radius,
		alpha:   1,
		onTick:  onTick,
		stopped: make(chan struct{}),
	}
	s.seedPositions()
	return s
}

// seedPositions scatters nodes that have no position yet. Simplex noise gives
// a deterministic, evenly spread starting configuration instead of the
// degenerate everything-at-origin state.
func (s *Simulation) seedPositions() {
	noise := opensimplex.NewNormalized(s.cfg.Seed)
	center := r2.Vec{X: s.cfg.Width / 2, Y: s.cfg.Height / 2}
	spread := math.Min(s.cfg.Width, s.cfg.Height) * 0.4
	for i, n := range s.nodes {
		if n.X != 0 || n.Y != 0 {
			continue
		}
		t := float64(i) * 0.731
		angle := 2 * math.Pi * noise.Eval2(t, 0.25)
		dist := spread * noise.Eval2(0.25, t)
		n.X = center.X + dist*math.Cos(angle)
		n.Y = center.Y + dist*math.Sin(angle)
	}
}

// Start launches the recurring tick loop. The loop keeps running until Stop
// is called; once the schedule has cooled below AlphaMin individual ticks
// become no-ops, so an idle simulation costs almost nothing.
func (s *Simulation) Start() {
	go func() {
		ticker := time.NewTicker(s.cfg.TickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-s.stopped:
				return
			case <-ticker.C:
				if s.Tick() && s.onTick != nil {
					s.onTick()
				}
			}
		}
	}()
}

// Stop cancels the recurring tick loop. It must be called when the document
// is replaced or the viewer unmounts; the simulation holds a recurring
// callback and is not collected on its own. Safe to call more than once.
func (s *Simulation) Stop() {
	s.once.Do(func() { close(s.stopped) })
}

// Tick advances the simulation by one step and reports whether any motion
// occurred. Nodes with a pinned override skip integration but still exert
// forces on their neighbors.
func (s *Simulation) Tick() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frozen {
		// Autonomous motion is over, but an active drag override must
		// still track the pointer.
		return s.applyOverridesLocked()
	}
	if s.alpha < s.cfg.AlphaMin && s.alphaTarget < s.cfg.AlphaMin {
		return s.applyOverridesLocked()
	}
	if s.ticks >= s.cfg.MaxTicks {
		// Pathological graphs never converge; freeze remaining motion
		// rather than spinning forever.
		s.frozen = true
		for _, n := range s.nodes {
			n.VX, n.VY = 0, 0
		}
		return s.applyOverridesLocked()
	}

	s.alpha += (s.alphaTarget - s.alpha) * s.cfg.AlphaDecay
	s.ticks++

	applyLinkForce(s.edges, s.cfg.LinkBaseDistance, s.cfg.LinkDistanceScale, s.cfg.LinkStiffness, s.alpha)
	applyChargeForce(s.nodes, s.cfg.ChargeStrength, s.alpha)
	applyCenterForce(s.nodes, r2.Vec{X: s.cfg.Width / 2, Y: s.cfg.Height / 2}, s.cfg.CenterStrength)
	applyCollisionForce(s.nodes, s.radius, s.cfg.CollisionMargin)

	for _, n := range s.nodes {
		if n.Pinned() {
			// The drag override wins outright: position tracks the
			// pointer and velocity stays parked at zero.
			n.X, n.Y = *n.FX, *n.FY
			n.VX, n.VY = 0, 0
			continue
		}
		n.VX *= s.cfg.VelocityDecay
		n.VY *= s.cfg.VelocityDecay
		n.X += n.VX
		n.Y += n.VY
	}
	return true
}

// applyOverridesLocked moves pinned nodes onto their overrides and reports
// whether any of them moved. Caller holds s.mu.
func (s *Simulation) applyOverridesLocked() bool {
	moved := false
	for _, n := range s.nodes {
		if !n.Pinned() {
			continue
		}
		if n.X != *n.FX || n.Y != *n.FY {
			n.X, n.Y = *n.FX, *n.FY
			n.VX, n.VY = 0, 0
			moved = true
		}
	}
	return moved
}

// Grab pins the node at its current position and reheats the cooling schedule
// so the rest of the layout relaxes around it. Field writes happen under the
// simulation's lock; callers must not touch node positions directly while the
// tick loop runs.
func (s *Simulation) Grab(n *models.GraphNode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n.Pin(n.X, n.Y)
	s.reheatLocked()
}

// Drag moves the node's pinned override to (x, y) in simulation space.
func (s *Simulation) Drag(n *models.GraphNode, x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n.Pin(x, y)
}

// Release clears the node's override and lets the schedule decay back to zero.
func (s *Simulation) Release(n *models.GraphNode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n.Unpin()
	s.alphaTarget = 0
}

// DragStart reheats the cooling schedule so the rest of the layout relaxes
// around the node being moved.
func (s *Simulation) DragStart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reheatLocked()
}

// DragEnd lets the schedule decay back to zero.
func (s *Simulation) DragEnd() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alphaTarget = 0
}

// reheatLocked raises the cooling target for a drag. The tick cap bounds
// autonomous motion only, so a gesture against a frozen layout thaws it with
// a fresh tick budget. Caller holds s.mu.
func (s *Simulation) reheatLocked() {
	s.alphaTarget = s.cfg.DragAlpha
	if s.alpha < s.cfg.DragAlpha {
		s.alpha = s.cfg.DragAlpha
	}
	if s.frozen {
		s.frozen = false
		s.ticks = 0
	}
}

// Sync runs fn while holding the simulation's state lock, so readers of node
// positions never interleave with a tick. fn must not call back into the
// simulation.
func (s *Simulation) Sync(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

// Alpha returns the current cooling value.
func (s *Simulation) Alpha() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.alpha
}

// Ticks returns the number of ticks executed so far.
func (s *Simulation) Ticks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticks
}

// Settled reports whether active motion has terminated, either by cooling
// below AlphaMin or by hitting the absolute tick cap.
func (s *Simulation) Settled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frozen || (s.alpha < s.cfg.AlphaMin && s.alphaTarget < s.cfg.AlphaMin)
}
