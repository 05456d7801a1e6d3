// Package server hosts the graph viewer over HTTP: the scene endpoint the
// host page polls, the pointer-event and viewport endpoints interaction
// flows through, question list access, SVG export, and Prometheus metrics.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/studymesh/kgraph/config"
	"github.com/studymesh/kgraph/logger"
	"github.com/studymesh/kgraph/metrics"
	"github.com/studymesh/kgraph/models"
	"github.com/studymesh/kgraph/viewer"
)

// CustomValidator adapts go-playground/validator to echo's Validator hook.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator.
func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

// Server wraps the echo instance around one mounted viewer.
type Server struct {
	e   *echo.Echo
	v   *viewer.Viewer
	cfg *config.Config
}

// New builds the server and registers all routes.
func New(cfg *config.Config, v *viewer.Viewer) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &CustomValidator{validator: validator.New()}
	e.Use(middleware.Recover())

	s := &Server{e: e, v: v, cfg: cfg}
	metrics.RegisterAlpha(v.Alpha)

	e.GET("/healthz", s.handleHealth)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/", s.handleIndex)
	e.GET("/export.svg", s.handleExport)

	api := e.Group("/api")
	api.POST("/graph", s.handleLoadGraph)
	api.GET("/scene", s.handleScene)
	api.POST("/pointer", s.handlePointer)
	api.POST("/viewport", s.handleViewport)
	api.GET("/questions", s.handleQuestions)
	api.POST("/highlight", s.handleHighlight)
	api.DELETE("/highlight", s.handleClearHighlight)

	return s
}

// Start serves until SIGINT/SIGTERM, then shuts down gracefully and stops
// the viewer's simulation.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", s.cfg.Server.Port)
		logger.Info("server listening", "addr", addr)
		if err := s.e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	s.v.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.e.Shutdown(shutdownCtx)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type loadGraphRequest struct {
	SubjectID string `json:"subjectId" validate:"required"`
	GraphType string `json:"graphType" validate:"required,oneof=exam_scope full_knowledge mastery_level ai_assistant_content"`
}

func (s *Server) handleLoadGraph(c echo.Context) error {
	var req loadGraphRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), s.cfg.Service.Timeout)
	defer cancel()
	if err := s.v.Load(ctx, req.SubjectID, models.GraphType(req.GraphType)); err != nil {
		// The previous document, if any, keeps animating; the client
		// shows the notice.
		return c.JSON(http.StatusBadGateway, map[string]string{
			"notice": s.v.Notice(),
		})
	}
	doc := s.v.Document()
	return c.JSON(http.StatusOK, map[string]any{
		"subjectId":    doc.SubjectID,
		"graphType":    doc.GraphType,
		"nodes":        len(doc.Nodes),
		"edges":        len(doc.Edges),
		"droppedEdges": doc.DroppedEdges,
	})
}

func (s *Server) handleScene(c echo.Context) error {
	scene := s.v.Scene()
	if scene == nil {
		return c.JSON(http.StatusOK, map[string]any{
			"loading": s.v.Loading(),
			"notice":  s.v.Notice(),
		})
	}
	data, err := scene.JSON()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSONBlob(http.StatusOK, data)
}

type pointerRequest struct {
	Event  string  `json:"event" validate:"required,oneof=down move up enter leave"`
	NodeID string  `json:"nodeId"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

func (s *Server) handlePointer(c echo.Context) error {
	var req pointerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := s.v.Interaction()
	switch req.Event {
	case "down":
		input.PointerDown(req.NodeID, req.X, req.Y)
	case "move":
		input.PointerMove(req.X, req.Y)
	case "up":
		input.PointerUp()
	case "enter":
		input.PointerEnter(req.NodeID)
	case "leave":
		input.PointerLeave(req.NodeID)
	}
	return c.NoContent(http.StatusNoContent)
}

type viewportRequest struct {
	Action string  `json:"action" validate:"required,oneof=pan zoom reset"`
	DX     float64 `json:"dx"`
	DY     float64 `json:"dy"`
	Factor float64 `json:"factor"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

func (s *Server) handleViewport(c echo.Context) error {
	var req viewportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	view := s.v.Viewport()
	switch req.Action {
	case "pan":
		view.Pan(req.DX, req.DY)
	case "zoom":
		if req.Factor > 0 {
			view.ZoomAt(req.Factor, req.X, req.Y)
		}
	case "reset":
		view.Reset()
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleQuestions(c echo.Context) error {
	questions, open := s.v.Selection().Questions()
	return c.JSON(http.StatusOK, map[string]any{
		"open":       open,
		"activeNode": s.v.Selection().ActiveNode(),
		"questions":  questions,
	})
}

type highlightRequest struct {
	QuestionID string `json:"questionId" validate:"required"`
}

func (s *Server) handleHighlight(c echo.Context) error {
	var req highlightRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := s.v.Selection().SelectQuestion(req.QuestionID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleClearHighlight(c echo.Context) error {
	s.v.Selection().ClearHighlight()
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleExport(c echo.Context) error {
	data, err := s.v.ExportSVG()
	if err != nil {
		if errors.Is(err, viewer.ErrNoDocument) {
			return echo.NewHTTPError(http.StatusNotFound, "no graph loaded")
		}
		// Export failure never affects the live graph state.
		logger.Error("export failed", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "export failed")
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="knowledge-graph.svg"`)
	return c.Blob(http.StatusOK, "image/svg+xml", data)
}
