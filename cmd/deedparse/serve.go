// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/deedparse/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the extraction API over HTTP",
	Long: `Serve exposes the extraction engine as a JSON API:

  POST /api/extract      {"text": "..."}
  GET  /api/extract      usage
  POST /api/form-fields  {"data": {...}}
  GET  /api/history
  GET  /health
  GET  /metrics

Submitted sentences are added to the history list unless
server.record_history is false.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, engine, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	gin.SetMode(gin.ReleaseMode)

	var hist server.History
	if cfg.Server.RecordHistory {
		store, err := openHistory(cfg)
		if err != nil {
			return err
		}
		defer store.Close()
		hist = store
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(cfg.Server, engine, hist, log).Run(ctx)
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	serveCmd.Flags().Bool("record-history", true, "add submitted sentences to the history list")

	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("server.record_history", serveCmd.Flags().Lookup("record-history"))

	rootCmd.AddCommand(serveCmd)
}
