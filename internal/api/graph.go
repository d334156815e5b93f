package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pathfinderhq/pathfinder/internal/models"
)

// GraphHandler serves the traversal and shortest-path queries.
type GraphHandler struct {
	svc GraphService
	log *logrus.Logger
}

// NewGraphHandler creates a GraphHandler.
func NewGraphHandler(svc GraphService, log *logrus.Logger) *GraphHandler {
	return &GraphHandler{svc: svc, log: log}
}

// BFS handles GET /graph/bfs?start_id=.
func (h *GraphHandler) BFS(c *gin.Context) {
	startID, ok := queryID(c, "start_id")
	if !ok {
		return
	}

	res, err := h.svc.TraverseBFS(c.Request.Context(), startID)
	if err != nil {
		if errors.Is(err, models.ErrNodeNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "start node not found")
			return
		}

		respondInternal(c, h.log, err, "bfs traversal")
		return
	}

	c.JSON(http.StatusOK, res)
}

// ShortestPath handles GET /graph/shortest-path?src_id=&dst_id=.
func (h *GraphHandler) ShortestPath(c *gin.Context) {
	srcID, ok := queryID(c, "src_id")
	if !ok {
		return
	}

	dstID, ok := queryID(c, "dst_id")
	if !ok {
		return
	}

	res, err := h.svc.ShortestPath(c.Request.Context(), srcID, dstID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNodeNotFound):
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "invalid node ids")
		case errors.Is(err, models.ErrNoPath):
			respondError(c, http.StatusNotFound, ErrCodeNoPath, "no path found")
		default:
			respondInternal(c, h.log, err, "shortest path")
		}
		return
	}

	c.JSON(http.StatusOK, res)
}

// Stats handles GET /graph/stats.
func (h *GraphHandler) Stats(c *gin.Context) {
	st, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		respondInternal(c, h.log, err, "graph stats")
		return
	}

	c.JSON(http.StatusOK, st)
}
