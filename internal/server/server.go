// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the extraction engine over HTTP.
//
// Routes:
//
//	POST /api/extract       {text} -> result without debug spans
//	GET  /api/extract       usage document
//	POST /api/form-fields   {data} -> form-field mapping or validation errors
//	GET  /api/history       recent submissions, newest first
//	GET  /health
//	GET  /metrics
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/pdiddy/deedparse/internal/extract"
	"github.com/pdiddy/deedparse/internal/history"
	"github.com/pdiddy/deedparse/pkg/types"
)

const shutdownTimeout = 5 * time.Second

// Extractor runs the extraction pipeline. *extract.Engine implements it.
type Extractor interface {
	Extract(text string) types.ExtractionResult
}

// History records and lists submitted sentences. *history.Store
// implements it.
type History interface {
	Add(ctx context.Context, text string) (history.Entry, bool, error)
	List(ctx context.Context) ([]history.Entry, error)
}

// Server serves the extraction API.
type Server struct {
	cfg     types.ServerConfig
	engine  Extractor
	history History
	log     *zap.Logger
	metrics *Metrics
}

var _ Extractor = (*extract.Engine)(nil)

// New builds a server. hist may be nil, in which case nothing is recorded
// and /api/history returns an empty list.
func New(cfg types.ServerConfig, engine Extractor, hist History, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		cfg:     cfg,
		engine:  engine,
		history: hist,
		log:     log,
		metrics: NewMetrics(),
	}
}

// Router builds the gin engine with all routes.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(requestID(), accessLog(s.log), recovery(s.log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.POST("/extract", s.extract)
		api.GET("/extract", s.usage)
		api.POST("/form-fields", s.formFields)
		api.GET("/history", s.listHistory)
	}
	return router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", s.cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving on %s: %w", s.cfg.Addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.log.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
