// Package api exposes analysis runs over HTTP for the dashboard
// frontend. The server holds the most recent run in memory; there is no
// persistence layer behind it.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/retailops/sales-analytics/internal/application/pipeline"
	"github.com/retailops/sales-analytics/internal/domain/validator"
)

// Config holds API server configuration.
type Config struct {
	Port           int
	AllowedOrigins []string
}

// DefaultConfig returns sensible defaults for the API server.
func DefaultConfig() Config {
	return Config{
		Port:           8080,
		AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
	}
}

// Runner executes analysis runs. The concrete implementation is
// pipeline.Pipeline; tests substitute a stub.
type Runner interface {
	Run(ctx context.Context, opts pipeline.Options) (*pipeline.Result, error)
}

// Server is the HTTP API server.
type Server struct {
	config     Config
	engine     *gin.Engine
	httpServer *http.Server
	logger     *slog.Logger
	runner     Runner
	defaults   pipeline.Options

	mu   sync.RWMutex
	last *pipeline.Result
}

// NewServer creates a new API server. defaults supplies the input path
// and analysis knobs used when an analyze request leaves them unset.
func NewServer(cfg Config, runner Runner, defaults pipeline.Options, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	s := &Server{
		config:   cfg,
		engine:   engine,
		logger:   logger,
		runner:   runner,
		defaults: defaults,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.engine.Use(gin.Recovery())
	s.engine.Use(cors.New(cors.Config{
		AllowOrigins:     s.config.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	s.engine.Use(s.requestLogger())
}

// requestLogger logs each request through the application logger
// instead of gin's default writer.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

func (s *Server) setupRoutes() {
	// Health check (no /api prefix - for load balancers)
	s.engine.GET("/health", s.handleHealth)

	api := s.engine.Group("/api")
	{
		api.POST("/analyze", s.handleAnalyze)
		api.GET("/summary", s.handleSummary)
		api.GET("/regions", s.handleRegions)
		api.GET("/products/top", s.handleTopProducts)
		api.GET("/products/low", s.handleLowPerformers)
		api.GET("/customers", s.handleCustomers)
		api.GET("/trend", s.handleTrend)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// analyzeRequest is the optional body of POST /api/analyze. Absent
// fields fall back to the server's configured defaults.
type analyzeRequest struct {
	Region       string   `json:"region"`
	MinAmount    *float64 `json:"min_amount"`
	MaxAmount    *float64 `json:"max_amount"`
	TopN         int      `json:"top_n"`
	LowThreshold int      `json:"low_threshold"`
	SkipEnrich   bool     `json:"skip_enrich"`
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var req analyzeRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
			return
		}
	}

	opts := s.defaults
	opts.Filter = validator.Params{
		Region:    req.Region,
		MinAmount: req.MinAmount,
		MaxAmount: req.MaxAmount,
	}
	if req.TopN > 0 {
		opts.TopN = req.TopN
	}
	if req.LowThreshold > 0 {
		opts.LowThreshold = req.LowThreshold
	}
	opts.SkipEnrich = opts.SkipEnrich || req.SkipEnrich

	result, err := s.runner.Run(c.Request.Context(), opts)
	switch {
	case errors.Is(err, pipeline.ErrNoTransactions):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":          err.Error(),
			"filter_summary": result.FilterSummary,
		})
		return
	case err != nil:
		s.logger.Error("analysis run failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed"})
		return
	}

	s.mu.Lock()
	s.last = result
	s.mu.Unlock()

	c.JSON(http.StatusOK, result)
}

// lastResult returns the most recent run, or replies 404 and nil when
// no run has completed yet.
func (s *Server) lastResult(c *gin.Context) *pipeline.Result {
	s.mu.RLock()
	res := s.last
	s.mu.RUnlock()

	if res == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no analysis run yet"})
		return nil
	}
	return res
}

func (s *Server) handleSummary(c *gin.Context) {
	if res := s.lastResult(c); res != nil {
		c.JSON(http.StatusOK, res)
	}
}

func (s *Server) handleRegions(c *gin.Context) {
	if res := s.lastResult(c); res != nil {
		c.JSON(http.StatusOK, gin.H{"run_id": res.RunID, "regions": res.RegionStats})
	}
}

func (s *Server) handleTopProducts(c *gin.Context) {
	if res := s.lastResult(c); res != nil {
		c.JSON(http.StatusOK, gin.H{"run_id": res.RunID, "products": res.TopProducts})
	}
}

func (s *Server) handleLowPerformers(c *gin.Context) {
	if res := s.lastResult(c); res != nil {
		c.JSON(http.StatusOK, gin.H{"run_id": res.RunID, "products": res.LowPerformers})
	}
}

func (s *Server) handleCustomers(c *gin.Context) {
	if res := s.lastResult(c); res != nil {
		c.JSON(http.StatusOK, gin.H{"run_id": res.RunID, "customers": res.CustomerStats})
	}
}

func (s *Server) handleTrend(c *gin.Context) {
	if res := s.lastResult(c); res != nil {
		c.JSON(http.StatusOK, gin.H{
			"run_id":   res.RunID,
			"trend":    res.DailyTrend,
			"peak_day": res.PeakDay,
		})
	}
}

// Start starts the HTTP server and blocks until shutdown.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting API server", "addr", addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")

	if s.httpServer == nil {
		return nil
	}

	return s.httpServer.Shutdown(ctx)
}

// Handler returns the underlying handler for testing.
func (s *Server) Handler() http.Handler {
	return s.engine
}
