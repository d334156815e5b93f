package client

import (
	"context"
	"strconv"
)

// EdgeService handles edge operations.
type EdgeService struct {
	c *Client
}

// List returns every edge in insertion order.
func (s *EdgeService) List(ctx context.Context) ([]Edge, error) {
	var edges []Edge
	if err := s.c.get(ctx, "/graph/edges", nil, &edges); err != nil {
		return nil, err
	}
	return edges, nil
}

// Get returns a single edge by id.
func (s *EdgeService) Get(ctx context.Context, id int64) (*Edge, error) {
	var edge Edge
	if err := s.c.get(ctx, "/graph/edges/"+strconv.FormatInt(id, 10), nil, &edge); err != nil {
		return nil, err
	}
	return &edge, nil
}

// Create adds an edge. Unknown endpoints and non-positive weights return an
// error satisfying IsBadRequest.
func (s *EdgeService) Create(ctx context.Context, req CreateEdgeRequest) (*Edge, error) {
	var edge Edge
	if err := s.c.post(ctx, "/graph/edges", req, &edge); err != nil {
		return nil, err
	}
	return &edge, nil
}

// Delete removes an edge.
func (s *EdgeService) Delete(ctx context.Context, id int64) error {
	return s.c.del(ctx, "/graph/edges/"+strconv.FormatInt(id, 10))
}
