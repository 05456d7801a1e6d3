// Package viewer composes the graph engine into a mountable unit: it owns the
// current document, the single live simulation, the viewport, the interaction
// controller and the selection coordinator, and enforces the document
// replacement rules.
package viewer

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/studymesh/kgraph/interaction"
	"github.com/studymesh/kgraph/logger"
	"github.com/studymesh/kgraph/metrics"
	"github.com/studymesh/kgraph/models"
	"github.com/studymesh/kgraph/physics"
	"github.com/studymesh/kgraph/render"
	"github.com/studymesh/kgraph/selection"
	"github.com/studymesh/kgraph/style"
	"github.com/studymesh/kgraph/viewport"
)

// GraphSource is the external knowledge-graph collaborator.
type GraphSource interface {
	FetchGraph(ctx context.Context, subjectID string, graphType models.GraphType) (*models.GraphDocument, error)
}

// Source is the full external surface the viewer depends on.
type Source interface {
	GraphSource
	selection.QuestionSource
}

// Viewer is one mounted graph viewer instance. Exactly one simulation is
// alive per viewer; installing a new document first halts the previous one.
type Viewer struct {
	mu sync.Mutex

	id     string
	cfg    physics.Config
	opts   render.Options
	source Source

	doc   *models.GraphDocument
	sim   *physics.Simulation
	view  *viewport.Viewport
	input *interaction.Controller
	sel   *selection.Coordinator

	loading bool
	notice  string
	fetchID uint64 // bumped per fetch; completion checks it ("last request wins")

	selectCtx func() context.Context
}

// New creates an unmounted viewer. Load must be called before the viewer has
// anything to render.
func New(source Source, cfg physics.Config, opts render.Options) *Viewer {
	v := &Viewer{
		id:     uuid.New().String(),
		cfg:    cfg,
		opts:   opts,
		source: source,
		view:   viewport.New(),
		sel:    selection.NewCoordinator(source),
	}
	v.selectCtx = context.Background
	v.input = interaction.NewController(nil, nil, v.view, v.onNodeSelected)
	return v
}

// ID returns the viewer instance id.
func (v *Viewer) ID() string { return v.id }

// Load fetches the document for (subjectID, graphType) and installs it. A
// later Load supersedes an earlier in-flight one: the check happens at
// completion time, so a slow early response can never overwrite a newer one.
// On fetch failure the previous document (if any) keeps animating and the
// error surfaces as a transient notice.
func (v *Viewer) Load(ctx context.Context, subjectID string, graphType models.GraphType) error {
	v.mu.Lock()
	v.fetchID++
	fetchID := v.fetchID
	v.loading = true
	v.notice = ""
	v.mu.Unlock()

	doc, err := v.source.FetchGraph(ctx, subjectID, graphType)

	v.mu.Lock()
	defer v.mu.Unlock()
	if fetchID != v.fetchID {
		// A newer fetch was issued while this one was in flight.
		logger.Debug("discarding stale fetch result",
			"viewer", v.id, "subject", subjectID)
		return nil
	}
	v.loading = false
	if err != nil {
		v.notice = "failed to load knowledge graph"
		metrics.FetchFailures.Inc()
		logger.Error("graph fetch failed", "viewer", v.id,
			"subject", subjectID, "type", graphType, "err", err)
		return err
	}
	v.installLocked(doc)
	return nil
}

// installLocked replaces the current document wholesale. Caller holds v.mu.
func (v *Viewer) installLocked(doc *models.GraphDocument) {
	if v.sim != nil {
		// Two solvers must never write to the same (or stale) node set.
		v.sim.Stop()
	}
	v.doc = doc
	v.sim = physics.NewSimulation(v.cfg, doc, style.ResolveRadius, metrics.SimulationTicks.Inc)
	v.sel.SetDocument(doc)
	v.input.SetDocument(doc, v.sim)
	v.sim.Start()

	metrics.DocumentLoads.Inc()
	metrics.DroppedEdges.Add(float64(doc.DroppedEdges))
	logger.Info("graph document installed", "viewer", v.id,
		"subject", doc.SubjectID, "type", doc.GraphType,
		"nodes", len(doc.Nodes), "edges", len(doc.Edges),
		"dropped", doc.DroppedEdges)
}

// Close stops the live simulation. Must be called when the viewer unmounts;
// the tick loop is not garbage-collected away on its own.
func (v *Viewer) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.sim != nil {
		v.sim.Stop()
		v.sim = nil
	}
}

// onNodeSelected is the interaction controller's click hook.
func (v *Viewer) onNodeSelected(node *models.GraphNode) {
	if err := v.sel.SelectNode(v.selectCtx(), node); err != nil {
		v.mu.Lock()
		v.notice = "failed to load questions"
		v.mu.Unlock()
		metrics.FetchFailures.Inc()
	}
}

// Scene snapshots the current render state. Returns nil before the first
// document has loaded. Node positions are read under the simulation's lock so
// the snapshot never interleaves with a tick.
func (v *Viewer) Scene() *render.Scene {
	v.mu.Lock()
	doc, sim := v.doc, v.sim
	v.mu.Unlock()
	if doc == nil {
		return nil
	}
	highlighted := v.sel.HighlightedIDs()
	hovered := v.input.Hovered()

	var scene *render.Scene
	build := func() {
		scene = render.BuildScene(doc, highlighted, hovered, v.view, v.opts)
	}
	if sim != nil {
		sim.Sync(build)
	} else {
		build()
	}
	return scene
}

// ExportSVG serializes the current scene to a static vector image.
func (v *Viewer) ExportSVG() ([]byte, error) {
	scene := v.Scene()
	if scene == nil {
		return nil, ErrNoDocument
	}
	return scene.SVG()
}

// Interaction returns the pointer-event controller.
func (v *Viewer) Interaction() *interaction.Controller { return v.input }

// Viewport returns the pan/zoom controller.
func (v *Viewer) Viewport() *viewport.Viewport { return v.view }

// Selection returns the highlight coordinator.
func (v *Viewer) Selection() *selection.Coordinator { return v.sel }

// Document returns the currently installed document, or nil.
func (v *Viewer) Document() *models.GraphDocument {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.doc
}

// Loading reports whether a document fetch is in flight.
func (v *Viewer) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

// Notice returns the transient user-visible notice and clears it.
func (v *Viewer) Notice() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	n := v.notice
	v.notice = ""
	return n
}

// Alpha returns the live simulation's cooling value, or 0 when no simulation
// is running. Exposed for the metrics gauge.
func (v *Viewer) Alpha() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.sim == nil {
		return 0
	}
	return v.sim.Alpha()
}
