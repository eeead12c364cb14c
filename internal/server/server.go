package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agenthands/attackmap/internal/core"
	"github.com/agenthands/attackmap/internal/core/analysis"
)

// Server exposes a finished run read-only over HTTP. Reports are never
// modified after NewServer, so handlers share them without locking.
type Server struct {
	Mappings *core.MappingReport
	Novelty  *core.NoveltyReport
	Logger   *slog.Logger
}

func NewServer(mappings *core.MappingReport, novelty *core.NoveltyReport, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{Mappings: mappings, Novelty: novelty, Logger: logger}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", s.Health)
	r.GET("/analyses", s.ListAnalyses)
	r.GET("/analyses/:name", s.GetAnalysis)
	r.POST("/shortest-path", s.ShortestPath)
	r.GET("/novelty/scores", s.NoveltyScores)
	r.GET("/novelty/subgraph", s.NoveltySubgraph)

	return r
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "run_id": s.Mappings.RunID})
}

func (s *Server) ListAnalyses(c *gin.Context) {
	tables := s.Mappings.Tables()
	names := make([]string, 0, len(tables))
	for _, t := range tables {
		names = append(names, t.Name)
	}
	c.JSON(http.StatusOK, gin.H{"run_id": s.Mappings.RunID, "analyses": names})
}

func (s *Server) GetAnalysis(c *gin.Context) {
	name := c.Param("name")
	t, ok := s.Mappings.Table(name)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown analysis: " + name})
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": t.Name, "data": t.Data})
}

type ShortestPathRequest struct {
	Source string `json:"source" binding:"required"`
	Target string `json:"target" binding:"required"`
}

func (s *Server) ShortestPath(c *gin.Context) {
	var req ShortestPathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	res, err := analysis.ShortestPath(s.Mappings.Graph, req.Source, req.Target)
	switch {
	case err == nil, errors.Is(err, analysis.ErrNoPath):
		c.JSON(http.StatusOK, res)
	case errors.Is(err, analysis.ErrUnknownNode):
		c.JSON(http.StatusNotFound, res)
	default:
		s.Logger.Warn("shortest path failed", "source", req.Source, "target", req.Target, "error", err)
		c.JSON(http.StatusUnprocessableEntity, res)
	}
}

func (s *Server) NoveltyScores(c *gin.Context) {
	if s.Novelty == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no novelty run loaded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"run_id": s.Novelty.RunID, "summary": s.Novelty.Summary, "scores": s.Novelty.Scores})
}

func (s *Server) NoveltySubgraph(c *gin.Context) {
	if s.Novelty == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no novelty run loaded"})
		return
	}
	c.JSON(http.StatusOK, s.Novelty.Sample.Document())
}
