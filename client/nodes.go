package client

import (
	"context"
	"strconv"
)

// NodeService handles node operations.
type NodeService struct {
	c *Client
}

// List returns every node.
func (s *NodeService) List(ctx context.Context) ([]Node, error) {
	var nodes []Node
	if err := s.c.get(ctx, "/graph/nodes", nil, &nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}

// Get returns a single node by id.
func (s *NodeService) Get(ctx context.Context, id int64) (*Node, error) {
	var node Node
	if err := s.c.get(ctx, "/graph/nodes/"+strconv.FormatInt(id, 10), nil, &node); err != nil {
		return nil, err
	}
	return &node, nil
}

// Create adds a node. A taken name returns an error satisfying IsConflict.
func (s *NodeService) Create(ctx context.Context, name string) (*Node, error) {
	var node Node
	if err := s.c.post(ctx, "/graph/nodes", map[string]string{"name": name}, &node); err != nil {
		return nil, err
	}
	return &node, nil
}

// Delete removes a node and its incident edges.
func (s *NodeService) Delete(ctx context.Context, id int64) error {
	return s.c.del(ctx, "/graph/nodes/"+strconv.FormatInt(id, 10))
}
