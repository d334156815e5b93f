// Package service provides business logic between API handlers and data stores.
package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/pathfinderhq/pathfinder/internal/domain"
	"github.com/pathfinderhq/pathfinder/internal/models"
)

// NodeStore is the data-access interface NodeService depends on.
// The method sets are identical, so it aliases domain.NodeService.
type NodeStore = domain.NodeService

// Compile-time check: *NodeService must satisfy domain.NodeService.
var _ domain.NodeService = (*NodeService)(nil)

// NodeService wraps NodeStore with audit logging for mutations.
type NodeService struct {
	store       NodeStore
	auditWorker AuditEnqueuer
	log         *logrus.Logger
}

// NewNodeService creates a NodeService.
func NewNodeService(store NodeStore, auditWorker AuditEnqueuer, log *logrus.Logger) *NodeService {
	return &NodeService{store: store, auditWorker: auditWorker, log: log}
}

// ListNodes returns all nodes (pass-through).
func (s *NodeService) ListNodes(ctx context.Context) ([]models.Node, error) {
	return s.store.ListNodes(ctx)
}

// GetNode returns a single node by id (pass-through).
func (s *NodeService) GetNode(ctx context.Context, id int64) (*models.Node, error) {
	return s.store.GetNode(ctx, id)
}

// GetNodeByName returns a single node by name (pass-through).
func (s *NodeService) GetNodeByName(ctx context.Context, name string) (*models.Node, error) {
	return s.store.GetNodeByName(ctx, name)
}

// CreateNode validates and creates a node, then records an audit entry.
func (s *NodeService) CreateNode(ctx context.Context, req models.CreateNodeRequest) (*models.Node, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	node, err := s.store.CreateNode(ctx, req)
	if err != nil {
		return nil, err
	}

	auditAsync(ctx, s.auditWorker, "node.create", "node", node.ID, map[string]any{"name": node.Name})

	return node, nil
}

// DeleteNode deletes a node with its incident edges and records an audit entry.
func (s *NodeService) DeleteNode(ctx context.Context, id int64) error {
	if err := s.store.DeleteNode(ctx, id); err != nil {
		return err
	}

	auditAsync(ctx, s.auditWorker, "node.delete", "node", id, nil)

	return nil
}
