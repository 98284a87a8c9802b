// Package server exposes the analysis pipeline over HTTP: one upload
// endpoint plus read access to the bounded report history.
package server

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pratapsingh123om/wqam-dashboard/internal/analyze"
	"github.com/pratapsingh123om/wqam-dashboard/internal/history"
	"github.com/pratapsingh123om/wqam-dashboard/internal/table"
)

// maxUploadBytes caps a single upload read.
const maxUploadBytes = 32 << 20

// Server handles HTTP requests for the analysis service.
type Server struct {
	pipeline *analyze.Pipeline
	history  *history.Store
	logger   *zap.Logger
}

// New creates a server around a pipeline and report history.
func New(pipeline *analyze.Pipeline, store *history.Store, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{pipeline: pipeline, history: store, logger: logger}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	api := router.Group("/api")
	{
		api.GET("/health", s.handleHealth)
		api.POST("/uploads/analyze", s.handleAnalyzeUpload)
		api.GET("/reports", s.handleListReports)
		api.GET("/reports/latest", s.handleLatestReport)
	}
	return router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC().Format(time.RFC3339)})
}

func (s *Server) handleAnalyzeUpload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart field 'file' is required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not open uploaded file"})
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
		return
	}

	uploadedBy := c.Query("uploader")
	if uploadedBy == "" {
		uploadedBy = "anonymous"
	}

	report, err := s.pipeline.BuildReport(data, fh.Filename, uploadedBy)
	if err != nil {
		status := http.StatusInternalServerError
		if isUserError(err) {
			status = http.StatusBadRequest
		}
		s.logger.Warn("analyze upload failed",
			zap.String("filename", fh.Filename),
			zap.Int("bytes", len(data)),
			zap.Error(err))
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	s.history.Add(report)
	s.logger.Info("report generated",
		zap.String("report_id", report.ID),
		zap.String("filename", fh.Filename),
		zap.String("uploaded_by", uploadedBy),
		zap.String("summary", report.Describe()))
	c.JSON(http.StatusOK, report)
}

func (s *Server) handleListReports(c *gin.Context) {
	c.JSON(http.StatusOK, s.history.List())
}

func (s *Server) handleLatestReport(c *gin.Context) {
	latest := s.history.Latest()
	if latest == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no reports yet"})
		return
	}
	c.JSON(http.StatusOK, latest)
}

// isUserError reports whether err belongs to the closed pipeline failure
// taxonomy, i.e. the input was at fault rather than the service.
func isUserError(err error) bool {
	for _, sentinel := range []error{
		table.ErrEmptyInput,
		table.ErrUnsupportedFormat,
		table.ErrExtractionFailed,
		table.ErrNoTabularData,
		analyze.ErrEmptyAfterCleaning,
		analyze.ErrNoRecognizedParameters,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
