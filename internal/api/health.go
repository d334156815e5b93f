// Package api provides the HTTP handlers and router for the pathfinder server.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pathfinderhq/pathfinder/internal/db"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	db        DBProbe
	clients   ClientCounter
	log       *logrus.Logger
	version   string
	startTime time.Time
}

// NewHealthHandler creates a HealthHandler. probe and clients may be nil.
func NewHealthHandler(probe DBProbe, clients ClientCounter, log *logrus.Logger, version string) *HealthHandler {
	return &HealthHandler{
		db:        probe,
		clients:   clients,
		log:       log,
		version:   version,
		startTime: time.Now(),
	}
}

type healthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	Database      string  `json:"database"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

type readinessResponse struct {
	Status         string            `json:"status"`
	Checks         map[string]string `json:"checks"`
	SchemaVersion  int64             `json:"schema_version"`
	ExpectedSchema int64             `json:"expected_schema"`
	DBConns        int32             `json:"db_conns"`
	DBIdleConns    int32             `json:"db_idle_conns"`
	WSClients      int               `json:"ws_clients"`
}

// Liveness handles GET /health. It always answers 200; the database field is informational.
func (h *HealthHandler) Liveness(c *gin.Context) {
	resp := healthResponse{
		Status:        "ok",
		Version:       h.version,
		Database:      "connected",
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	}

	if h.db == nil {
		resp.Database = "not_configured"
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := h.db.HealthCheck(ctx); err != nil {
			resp.Database = "disconnected"
		}
	}

	c.JSON(http.StatusOK, resp)
}

// Readiness handles GET /ready. It answers 503 until the database is
// reachable and migrated to the schema this binary embeds.
func (h *HealthHandler) Readiness(c *gin.Context) {
	resp := readinessResponse{
		Status:         "ready",
		Checks:         map[string]string{"database": "ok", "schema": "ok"},
		ExpectedSchema: int64(db.SchemaVersion()),
	}
	if h.clients != nil {
		resp.WSClients = h.clients.ClientCount()
	}

	if h.db == nil {
		resp.Status = "not_ready"
		resp.Checks["database"] = "not_configured"
		resp.Checks["schema"] = "unknown"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	resp.DBConns, resp.DBIdleConns = h.db.Stat()

	if err := h.db.HealthCheck(ctx); err != nil {
		h.log.WithError(err).Error("readiness: database health check failed")
		resp.Status = "not_ready"
		resp.Checks["database"] = "error"
		resp.Checks["schema"] = "unknown"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}

	v, err := h.db.AppliedSchemaVersion(ctx)
	switch {
	case err != nil:
		h.log.WithError(err).Error("readiness: schema check failed")
		resp.Checks["schema"] = "error"
	case v < resp.ExpectedSchema:
		resp.Checks["schema"] = "behind"
	}
	resp.SchemaVersion = v

	if resp.Checks["schema"] != "ok" {
		resp.Status = "not_ready"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}

	c.JSON(http.StatusOK, resp)
}
