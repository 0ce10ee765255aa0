// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pdiddy/deedparse/internal/history"
	"github.com/pdiddy/deedparse/pkg/types"
)

const exampleSentence = "The property at 123 Main St was sold by John Doe to Jane Smith on June 15, 2025."

// extract handles POST /api/extract.
func (s *Server) extract(c *gin.Context) {
	var req ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == nil {
		s.metrics.RequestsTotal.WithLabelValues("invalid").Inc()
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "text is required and must be a string",
		})
		return
	}
	text := *req.Text
	if strings.TrimSpace(text) == "" {
		s.metrics.RequestsTotal.WithLabelValues("invalid").Inc()
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "text cannot be empty"})
		return
	}

	start := time.Now()
	result := s.engine.Extract(text)
	s.metrics.Duration.Observe(time.Since(start).Seconds())
	s.metrics.Confidence.Observe(result.Confidence)

	filled := 0
	for _, f := range types.Fields {
		if result.Get(f) != "" {
			filled++
			s.metrics.FieldsFilled.WithLabelValues(string(f)).Inc()
		}
	}
	status := "ok"
	if filled == 0 {
		status = "empty"
	}
	s.metrics.RequestsTotal.WithLabelValues(status).Inc()

	if s.cfg.RecordHistory && s.history != nil {
		if _, _, err := s.history.Add(c.Request.Context(), text); err != nil {
			s.log.Warn("recording history failed",
				zap.String("request_id", c.GetString(requestIDKey)),
				zap.Error(err),
			)
		}
	}

	c.JSON(http.StatusOK, result.Public())
}

// usage handles GET /api/extract.
func (s *Server) usage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": `Extract API endpoint. Use POST with {"text": "your text here"}`,
		"example": gin.H{"text": exampleSentence},
		"response_format": gin.H{
			"address":    "string or empty",
			"buyer":      "string or empty",
			"seller":     "string or empty",
			"date":       "YYYY-MM-DD or empty",
			"confidence": "0.0 to 1.0",
		},
	})
}

// formFields handles POST /api/form-fields.
func (s *Server) formFields(c *gin.Context) {
	var req FormFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Details: []string{err.Error()}})
		return
	}
	if errs := types.ValidateFields(req.Data); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: errs})
		return
	}
	c.JSON(http.StatusOK, FormFieldsResponse{Fields: types.ToFormFields(req.Data)})
}

// listHistory handles GET /api/history.
func (s *Server) listHistory(c *gin.Context) {
	entries := []history.Entry{}
	if s.history != nil {
		list, err := s.history.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error:   "failed to read history",
				Details: []string{err.Error()},
			})
			return
		}
		if list != nil {
			entries = list
		}
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
