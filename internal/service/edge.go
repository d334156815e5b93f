package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/pathfinderhq/pathfinder/internal/domain"
	"github.com/pathfinderhq/pathfinder/internal/models"
)

// EdgeStore is the data-access interface EdgeService depends on.
// The method sets are identical, so it aliases domain.EdgeService.
type EdgeStore = domain.EdgeService

// Compile-time check: *EdgeService must satisfy domain.EdgeService.
var _ domain.EdgeService = (*EdgeService)(nil)

// EdgeService wraps EdgeStore with edge admission checks and audit logging.
type EdgeService struct {
	store       EdgeStore
	auditWorker AuditEnqueuer
	log         *logrus.Logger
}

// NewEdgeService creates an EdgeService.
func NewEdgeService(store EdgeStore, auditWorker AuditEnqueuer, log *logrus.Logger) *EdgeService {
	return &EdgeService{store: store, auditWorker: auditWorker, log: log}
}

// ListEdges returns all edges in insertion order (pass-through).
func (s *EdgeService) ListEdges(ctx context.Context) ([]models.Edge, error) {
	return s.store.ListEdges(ctx)
}

// GetEdge returns a single edge by id (pass-through).
func (s *EdgeService) GetEdge(ctx context.Context, id int64) (*models.Edge, error) {
	return s.store.GetEdge(ctx, id)
}

// EdgeExists reports whether an edge src → dst exists (pass-through).
func (s *EdgeService) EdgeExists(ctx context.Context, srcID, dstID int64) (bool, error) {
	return s.store.EdgeExists(ctx, srcID, dstID)
}

// CreateEdge rejects non-positive or non-finite weights before reaching the
// store, which in turn rejects unknown endpoints.
func (s *EdgeService) CreateEdge(ctx context.Context, req models.CreateEdgeRequest) (*models.Edge, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	edge, err := s.store.CreateEdge(ctx, req)
	if err != nil {
		return nil, err
	}

	auditAsync(ctx, s.auditWorker, "edge.create", "edge", edge.ID, map[string]any{
		"src_id": edge.SrcID,
		"dst_id": edge.DstID,
		"weight": edge.Weight,
	})

	return edge, nil
}

// DeleteEdge deletes an edge and records an audit entry.
func (s *EdgeService) DeleteEdge(ctx context.Context, id int64) error {
	if err := s.store.DeleteEdge(ctx, id); err != nil {
		return err
	}

	auditAsync(ctx, s.auditWorker, "edge.delete", "edge", id, nil)

	return nil
}
