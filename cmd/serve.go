package cmd

import (
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/studymesh/kgraph/client"
	"github.com/studymesh/kgraph/server"
	"github.com/studymesh/kgraph/viewer"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive graph viewer",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		src := client.New(cfg.Service.BaseURL, cfg.Service.Timeout)
		v := viewer.New(src, cfg.Physics, cfg.Render)
		defer v.Close()

		color.Green("serving viewer on port %d (upstream %s)", cfg.Server.Port, cfg.Service.BaseURL)
		s := server.New(cfg, v)
		start := time.Now()
		err := s.Start()
		color.Yellow("server stopped after %s", time.Since(start).Round(time.Second))
		return err
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
