package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pathfinderhq/pathfinder/internal/models"
)

// EdgeHandler serves edge endpoints.
type EdgeHandler struct {
	svc EdgeService
	log *logrus.Logger
}

// NewEdgeHandler creates an EdgeHandler.
func NewEdgeHandler(svc EdgeService, log *logrus.Logger) *EdgeHandler {
	return &EdgeHandler{svc: svc, log: log}
}

// List handles GET /graph/edges.
func (h *EdgeHandler) List(c *gin.Context) {
	edges, err := h.svc.ListEdges(c.Request.Context())
	if err != nil {
		respondInternal(c, h.log, err, "listing edges")
		return
	}

	c.JSON(http.StatusOK, edges)
}

// Get handles GET /graph/edges/:id.
func (h *EdgeHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	edge, err := h.svc.GetEdge(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrEdgeNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "edge not found")
			return
		}

		respondInternal(c, h.log, err, "getting edge")
		return
	}

	c.JSON(http.StatusOK, edge)
}

// Create handles POST /graph/edges. Unknown endpoints are a client error
// rather than a missing resource, so they map to 400.
func (h *EdgeHandler) Create(c *gin.Context) {
	var req models.CreateEdgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())
		return
	}

	edge, err := h.svc.CreateEdge(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNodeNotFound):
			respondError(c, http.StatusBadRequest, ErrCodeValidationError, "source or destination node does not exist")
		case errors.Is(err, models.ErrInvalidWeight):
			respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())
		default:
			respondInternal(c, h.log, err, "creating edge")
		}
		return
	}

	c.JSON(http.StatusCreated, edge)
}

// Delete handles DELETE /graph/edges/:id.
func (h *EdgeHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteEdge(c.Request.Context(), id); err != nil {
		if errors.Is(err, models.ErrEdgeNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "edge not found")
			return
		}

		respondInternal(c, h.log, err, "deleting edge")
		return
	}

	c.Status(http.StatusNoContent)
}
