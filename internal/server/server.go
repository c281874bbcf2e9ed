// Package server exposes the projection engine and the in-memory planner over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/rpgo/pension-tracker/internal/calculation"
	"github.com/rpgo/pension-tracker/internal/config"
	"github.com/rpgo/pension-tracker/internal/planner"
)

// Service identity reported by the health endpoints
const (
	ServiceName = "pension-tracker"
	Version     = "0.1.0"
)

// Server wires the HTTP routes to a projection engine and a single planner
type Server struct {
	cfg     config.AppConfig
	engine  *calculation.ProjectionEngine
	planner *planner.Planner
	parser  *config.InputParser
	logger  calculation.Logger
	router  *gin.Engine
}

// New builds the router. A nil logger discards log output.
func New(cfg config.AppConfig, engine *calculation.ProjectionEngine, p *planner.Planner, logger calculation.Logger) *Server {
	if logger == nil {
		logger = calculation.NopLogger{}
	}
	if engine == nil {
		engine = calculation.NewProjectionEngine()
	}
	SetGinMode(cfg)

	s := &Server{
		cfg:     cfg,
		engine:  engine,
		planner: p,
		parser:  config.NewInputParser(),
		logger:  logger,
	}
	p.Subscribe(func(snap planner.Snapshot) {
		logger.Debugf("[planner] version=%d starting_pot=%s code=%s",
			snap.Version, snap.StartingPotValue.StringFixed(2), calculation.ErrorCode(snap.Err))
	})
	s.router = s.buildRouter()
	return s
}

// SetGinMode switches gin to release mode in production
func SetGinMode(cfg config.AppConfig) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
}

// Handler returns the HTTP handler, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) buildRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware(s.logger))
	r.Use(cors.New(corsConfig(s.cfg.AllowedOrigins)))

	NewHealthHandler(ServiceName, Version).RegisterRoutes(r)

	api := r.Group("/api/v1")
	api.GET("/formats", s.listFormats)

	projections := api.Group("/projections")
	projections.POST("", s.createProjection)
	projections.POST("/report", s.createProjectionReport)

	pl := api.Group("/planner")
	pl.GET("", s.getPlanner)
	pl.GET("/fields", s.getFields)
	pl.PUT("/fields/:name", s.setField)
	pl.PUT("/inputs", s.setInputs)
	pl.PUT("/assumptions", s.setAssumptions)
	pl.POST("/pots", s.addPot)
	pl.PATCH("/pots/:id", s.updatePot)
	pl.DELETE("/pots/:id", s.removePot)
	pl.POST("/calculate", s.calculate)
	pl.GET("/report", s.plannerReport)

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", RequestIDHeader},
		ExposeHeaders: []string{RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// Run serves until ctx is cancelled, then shuts down within the configured timeout
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof("listening on :%s (%s)", s.cfg.Port, s.cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Infof("shutdown complete")
	return nil
}
