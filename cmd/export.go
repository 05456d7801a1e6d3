package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/studymesh/kgraph/client"
	"github.com/studymesh/kgraph/models"
	"github.com/studymesh/kgraph/physics"
	"github.com/studymesh/kgraph/render"
	"github.com/studymesh/kgraph/style"
	"github.com/studymesh/kgraph/viewport"
)

var (
	exportSubject   string
	exportGraphType string
	exportOutput    string
)

// exportCmd runs the simulation headless until it settles and writes the
// resulting scene as an SVG file.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render a subject's knowledge graph to a static SVG",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		gt := models.GraphType(exportGraphType)
		if !gt.Valid() {
			return fmt.Errorf("unknown graph type %q", exportGraphType)
		}

		src := client.New(cfg.Service.BaseURL, cfg.Service.Timeout)
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Service.Timeout)
		defer cancel()
		doc, err := src.FetchGraph(ctx, exportSubject, gt)
		if err != nil {
			return err
		}

		sim := physics.NewSimulation(cfg.Physics, doc, style.ResolveRadius, nil)
		defer sim.Stop()
		for !sim.Settled() {
			sim.Tick()
		}

		scene := render.BuildScene(doc, nil, "", viewport.New(), cfg.Render)
		data, err := scene.SVG()
		if err != nil {
			return fmt.Errorf("rendering scene: %w", err)
		}
		if err := os.WriteFile(exportOutput, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", exportOutput, err)
		}

		color.Green("wrote %s (%d nodes, %d edges, %d ticks)",
			exportOutput, len(doc.Nodes), len(doc.Edges), sim.Ticks())
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportSubject, "subject", "", "subject id to export")
	exportCmd.Flags().StringVar(&exportGraphType, "type", string(models.GraphFullKnow), "graph type mode")
	exportCmd.Flags().StringVar(&exportOutput, "out", "knowledge-graph.svg", "output file")
	_ = exportCmd.MarkFlagRequired("subject")
	rootCmd.AddCommand(exportCmd)
}
