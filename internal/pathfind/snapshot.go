// Package pathfind implements the in-memory graph algorithms behind the
// traversal and shortest-path endpoints.
//
// Every operation is a pure function of a caller-supplied snapshot of nodes
// and edges. A Snapshot and its adjacency are built per call and owned by the
// caller, so concurrent requests never share mutable state.
package pathfind

import (
	"errors"
	"fmt"

	"github.com/pathfinderhq/pathfinder/internal/models"
)

var (
	// ErrDanglingEdge indicates an edge references a node id missing from the node set.
	ErrDanglingEdge = errors.New("pathfind: edge references unknown node")

	// ErrNodeNotFound, ErrNoPath and ErrInvalidWeight alias the model sentinels so
	// callers can match engine failures without importing both packages.
	ErrNodeNotFound  = models.ErrNodeNotFound
	ErrNoPath        = models.ErrNoPath
	ErrInvalidWeight = models.ErrInvalidWeight
)

// Neighbor is one outgoing connection in an adjacency list.
type Neighbor struct {
	ID     int64
	Weight float64
}

// Adjacency maps a source node id to its outgoing neighbors in edge input order.
// Nodes without outgoing edges have no key.
type Adjacency map[int64][]Neighbor

// BuildAdjacency converts a flat edge list into an Adjacency. Input order is
// preserved within each neighbor list and parallel edges are kept.
func BuildAdjacency(edges []models.Edge) Adjacency {
	adj := make(Adjacency)
	for _, e := range edges {
		adj[e.SrcID] = append(adj[e.SrcID], Neighbor{ID: e.DstID, Weight: e.Weight})
	}

	return adj
}

// Snapshot is an immutable view of the graph prepared for a single query.
type Snapshot struct {
	nodes map[int64]struct{}
	adj   Adjacency
}

// NewSnapshot indexes nodes and builds the adjacency for edges. It fails with
// ErrDanglingEdge when an edge endpoint is not in nodes, and with
// models.ErrInvalidWeight when a weight is not a positive finite number.
func NewSnapshot(nodes []models.Node, edges []models.Edge) (*Snapshot, error) {
	idx := make(map[int64]struct{}, len(nodes))
	for _, n := range nodes {
		idx[n.ID] = struct{}{}
	}

	for _, e := range edges {
		if _, ok := idx[e.SrcID]; !ok {
			return nil, fmt.Errorf("%w: edge %d src_id %d", ErrDanglingEdge, e.ID, e.SrcID)
		}

		if _, ok := idx[e.DstID]; !ok {
			return nil, fmt.Errorf("%w: edge %d dst_id %d", ErrDanglingEdge, e.ID, e.DstID)
		}

		if err := models.ValidateWeight(e.Weight); err != nil {
			return nil, fmt.Errorf("edge %d: %w", e.ID, err)
		}
	}

	return &Snapshot{nodes: idx, adj: BuildAdjacency(edges)}, nil
}

// HasNode reports whether id is part of the snapshot's node set.
func (s *Snapshot) HasNode(id int64) bool {
	_, ok := s.nodes[id]
	return ok
}

// Neighbors returns the outgoing neighbors of id (nil when it has none).
func (s *Snapshot) Neighbors(id int64) []Neighbor {
	return s.adj[id]
}

// TraverseBFS builds a snapshot from nodes and edges and runs BFS from startID.
func TraverseBFS(startID int64, nodes []models.Node, edges []models.Edge) (*models.BFSResult, error) {
	s, err := NewSnapshot(nodes, edges)
	if err != nil {
		return nil, err
	}

	return s.BFS(startID)
}

// ShortestPath builds a snapshot from nodes and edges and runs Dijkstra from srcID to dstID.
func ShortestPath(srcID, dstID int64, nodes []models.Node, edges []models.Edge) (*models.ShortestPathResult, error) {
	s, err := NewSnapshot(nodes, edges)
	if err != nil {
		return nil, err
	}

	return s.ShortestPath(srcID, dstID)
}
