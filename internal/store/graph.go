package store

import (
	"context"
	"fmt"

	"github.com/pathfinderhq/pathfinder/internal/models"
)

// GraphStore reads the whole graph for the algorithm engines.
type GraphStore struct {
	Base
}

// NewGraphStore creates a GraphStore with the given shared base.
func NewGraphStore(base Base) *GraphStore {
	return &GraphStore{Base: base}
}

// Snapshot returns all nodes and all edges read inside one transaction, so
// every edge endpoint is present in the returned node set. Edges are ordered
// by id, which is their insertion order.
func (s *GraphStore) Snapshot(ctx context.Context) ([]models.Node, []models.Edge, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginReadTx(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("reading graph snapshot: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // read-only, nothing to commit.

	nodeRows, err := tx.Query(ctx, `SELECT `+nodeColumns+` FROM nodes ORDER BY id`)
	if err != nil {
		return nil, nil, fmt.Errorf("querying snapshot nodes: %w", err)
	}

	nodes, err := collectNodes(nodeRows)
	nodeRows.Close()
	if err != nil {
		return nil, nil, fmt.Errorf("collecting snapshot nodes: %w", err)
	}

	edgeRows, err := tx.Query(ctx, `SELECT `+edgeColumns+` FROM edges ORDER BY id`)
	if err != nil {
		return nil, nil, fmt.Errorf("querying snapshot edges: %w", err)
	}

	edges, err := collectEdges(edgeRows)
	edgeRows.Close()
	if err != nil {
		return nil, nil, fmt.Errorf("collecting snapshot edges: %w", err)
	}

	return nodes, edges, nil
}

// Stats returns node and edge counts.
func (s *GraphStore) Stats(ctx context.Context) (*models.GraphStats, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var st models.GraphStats
	err := s.Pool.QueryRow(ctx,
		`SELECT (SELECT count(*) FROM nodes), (SELECT count(*) FROM edges)`).Scan(&st.Nodes, &st.Edges)
	if err != nil {
		return nil, fmt.Errorf("querying graph stats: %w", err)
	}

	return &st, nil
}
