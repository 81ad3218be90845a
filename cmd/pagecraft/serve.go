package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/pagecraft"
)

var staticDir string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the composed pages over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := pagecraft.New(cfg, pagecraft.ViewFuncs{}, pagecraft.WithStaticDir(staticDir))
		defer app.Close()

		errc := make(chan error, 1)
		go func() { errc <- app.Start() }()

		select {
		case err := <-errc:
			return err
		case <-cmd.Context().Done():
		}
		app.Echo.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return app.Echo.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&staticDir, "static", "public", "directory of static assets served under /public")
}
