package client

import (
	"context"
	"net/url"
	"strconv"
)

// GraphService runs the graph queries.
type GraphService struct {
	c *Client
}

// BFS returns the breadth-first visitation order and tree from startID.
func (s *GraphService) BFS(ctx context.Context, startID int64) (*BFSResult, error) {
	params := url.Values{"start_id": {strconv.FormatInt(startID, 10)}}

	var res BFSResult
	if err := s.c.get(ctx, "/graph/bfs", params, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ShortestPath returns the minimum-weight path from srcID to dstID.
// An unreachable destination returns an error satisfying IsNoPath.
func (s *GraphService) ShortestPath(ctx context.Context, srcID, dstID int64) (*ShortestPathResult, error) {
	params := url.Values{
		"src_id": {strconv.FormatInt(srcID, 10)},
		"dst_id": {strconv.FormatInt(dstID, 10)},
	}

	var res ShortestPathResult
	if err := s.c.get(ctx, "/graph/shortest-path", params, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Stats returns node and edge counts.
func (s *GraphService) Stats(ctx context.Context) (*GraphStats, error) {
	var st GraphStats
	if err := s.c.get(ctx, "/graph/stats", nil, &st); err != nil {
		return nil, err
	}
	return &st, nil
}
