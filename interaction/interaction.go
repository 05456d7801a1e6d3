// Package interaction translates pointer events into the drag-to-pin protocol
// and click selection. Each gesture targets one node at a time: pointer-down
// begins a potential drag, pointer-move past a small threshold commits it,
// and pointer-up either ends the drag or, when the pointer never strayed,
// counts as a click.
package interaction

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/studymesh/kgraph/models"
	"github.com/studymesh/kgraph/viewport"
)

// ClickThreshold is the screen-space distance (pixels) a pointer may travel
// between down and up and still register as a click.
const ClickThreshold = 3.0

// DragSim is the slice of the simulation the controller needs: the gesture
// operations that pin, move and release a node. The simulation performs the
// pin writes under its own lock so they never race with a tick.
type DragSim interface {
	Grab(*models.GraphNode)
	Drag(n *models.GraphNode, x, y float64)
	Release(*models.GraphNode)
}

// Controller runs the per-node interaction state machine. It is the sole
// writer of pinned overrides.
type Controller struct {
	mu sync.Mutex

	doc  *models.GraphDocument
	sim  DragSim
	view *viewport.Viewport

	// onSelect fires for clicks on knowledge-point-kind nodes only.
	onSelect func(*models.GraphNode)

	dragNode *models.GraphNode
	downAt   r2.Vec
	moved    bool
	hoverID  string
}

// NewController wires the controller to the active document, simulation and
// viewport. onSelect may be nil.
func NewController(doc *models.GraphDocument, sim DragSim, view *viewport.Viewport, onSelect func(*models.GraphNode)) *Controller {
	return &Controller{doc: doc, sim: sim, view: view, onSelect: onSelect}
}

// SetDocument swaps in a replacement document and simulation. Any gesture
// that was mid-flight targeted a stale node handle, so it is abandoned
// without side effects.
func (c *Controller) SetDocument(doc *models.GraphDocument, sim DragSim) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.releaseLocked()
	c.doc = doc
	c.sim = sim
	c.hoverID = ""
}

// releaseLocked unpins the active drag node, if any. Caller holds c.mu.
func (c *Controller) releaseLocked() {
	if c.dragNode == nil {
		return
	}
	if c.sim != nil {
		c.sim.Release(c.dragNode)
	} else {
		c.dragNode.Unpin()
	}
	c.dragNode = nil
}

// PointerDown begins a gesture on the node with the given id at screen
// coordinates (sx, sy). Events against nodes that no longer belong to the
// current document are no-ops.
func (c *Controller) PointerDown(nodeID string, sx, sy float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.doc == nil {
		return
	}
	node := c.doc.NodeByID(nodeID)
	if node == nil {
		return
	}
	// A lost pointer-up must not leave the previous node pinned.
	c.releaseLocked()
	c.dragNode = node
	c.downAt = r2.Vec{X: sx, Y: sy}
	c.moved = false
	if c.sim != nil {
		c.sim.Grab(node)
	} else {
		node.Pin(node.X, node.Y)
	}
}

// PointerMove updates the pinned override to track the pointer. The override
// is expressed in simulation space so zoom level never leaks into the forces.
func (c *Controller) PointerMove(sx, sy float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dragNode == nil {
		return
	}
	if math.Hypot(sx-c.downAt.X, sy-c.downAt.Y) > ClickThreshold {
		c.moved = true
	}
	world := c.view.ToWorld(r2.Vec{X: sx, Y: sy})
	if c.sim != nil {
		c.sim.Drag(c.dragNode, world.X, world.Y)
	} else {
		c.dragNode.Pin(world.X, world.Y)
	}
}

// PointerUp ends the gesture: the override is cleared and the cooling
// schedule released. A down-up pair without intervening movement is a click,
// which triggers selection for knowledge-point kinds; other kinds are
// click-inert but remain draggable.
func (c *Controller) PointerUp() {
	c.mu.Lock()
	node := c.dragNode
	clicked := node != nil && !c.moved
	c.releaseLocked()
	onSelect := c.onSelect
	c.mu.Unlock()

	if clicked && node.Kind.Selectable() && onSelect != nil {
		onSelect(node)
	}
}

// Dragging reports whether a drag gesture is currently active.
func (c *Controller) Dragging() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dragNode != nil
}

// PointerEnter marks a node as hovered. Purely cosmetic; the renderer
// enlarges the node and thickens its stroke.
func (c *Controller) PointerEnter(nodeID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.doc != nil && c.doc.HasNode(nodeID) {
		c.hoverID = nodeID
	}
}

// PointerLeave reverts the hover emphasis. An empty id clears whatever node
// is hovered.
func (c *Controller) PointerLeave(nodeID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if nodeID == "" || c.hoverID == nodeID {
		c.hoverID = ""
	}
}

// Hovered returns the id of the hovered node, or "".
func (c *Controller) Hovered() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hoverID
}
