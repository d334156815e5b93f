package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pathfinderhq/pathfinder/internal/models"
)

// NodeHandler serves node CRUD endpoints.
type NodeHandler struct {
	svc NodeService
	log *logrus.Logger
}

// NewNodeHandler creates a NodeHandler with the given service and logger.
func NewNodeHandler(svc NodeService, log *logrus.Logger) *NodeHandler {
	return &NodeHandler{svc: svc, log: log}
}

// List handles GET /graph/nodes.
func (h *NodeHandler) List(c *gin.Context) {
	nodes, err := h.svc.ListNodes(c.Request.Context())
	if err != nil {
		respondInternal(c, h.log, err, "listing nodes")
		return
	}

	c.JSON(http.StatusOK, nodes)
}

// Get handles GET /graph/nodes/:id.
func (h *NodeHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	node, err := h.svc.GetNode(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNodeNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "node not found")
			return
		}

		respondInternal(c, h.log, err, "getting node")
		return
	}

	c.JSON(http.StatusOK, node)
}

// Create handles POST /graph/nodes.
func (h *NodeHandler) Create(c *gin.Context) {
	var req models.CreateNodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())
		return
	}

	node, err := h.svc.CreateNode(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateKey) {
			respondError(c, http.StatusConflict, ErrCodeConflict, "node name already exists")
			return
		}

		respondInternal(c, h.log, err, "creating node")
		return
	}

	c.JSON(http.StatusCreated, node)
}

// Delete handles DELETE /graph/nodes/:id. Incident edges go with the node.
func (h *NodeHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteNode(c.Request.Context(), id); err != nil {
		if errors.Is(err, models.ErrNodeNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "node not found")
			return
		}

		respondInternal(c, h.log, err, "deleting node")
		return
	}

	c.Status(http.StatusNoContent)
}
