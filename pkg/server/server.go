// Package server exposes the citegraph operations over HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/soundprediction/citegraph"
	"github.com/soundprediction/citegraph/pkg/config"
	"github.com/soundprediction/citegraph/pkg/server/handlers"
)

// Server represents the HTTP server
type Server struct {
	config *config.Config
	router *gin.Engine
	graph  citegraph.CiteGraph
	server *http.Server
}

// New creates a new server instance
func New(cfg *config.Config, graph citegraph.CiteGraph) *Server {
	return &Server{
		config: cfg,
		graph:  graph,
	}
}

// Setup sets up the server routes and middleware
func (s *Server) Setup() {
	gin.SetMode(s.config.Server.Mode)

	s.router = gin.New()
	s.router.Use(gin.Logger())
	s.router.Use(gin.Recovery())
	s.router.Use(corsMiddleware())

	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.router,
	}
}

// setupRoutes sets up all the routes
func (s *Server) setupRoutes() {
	healthHandler := handlers.NewHealthHandler()
	searchHandler := handlers.NewSearchHandler(s.graph)
	projectsHandler := handlers.NewProjectsHandler(s.graph)
	assistantHandler := handlers.NewAssistantHandler(s.graph)

	s.router.GET("/health", healthHandler.HealthCheck)

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/search", searchHandler.Search)
		v1.POST("/embeddings/backfill", searchHandler.Backfill)
		v1.GET("/papers/relevant", searchHandler.RelevantPaper)
		v1.GET("/documents/similar", searchHandler.SimilarDocuments)

		v1.GET("/projects", projectsHandler.ListByUser)
		v1.GET("/projects/:project_id", projectsHandler.GetByID)
		v1.DELETE("/projects/:project_id", projectsHandler.Delete)
		v1.DELETE("/projects/:project_id/citations/:citation_id", projectsHandler.DeleteCitation)

		v1.POST("/assistant", assistantHandler.Complete)
	}
}

// Router returns the configured gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start starts the server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// corsMiddleware adds CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
