package service

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pathfinderhq/pathfinder/internal/domain"
	"github.com/pathfinderhq/pathfinder/internal/metrics"
	"github.com/pathfinderhq/pathfinder/internal/models"
	"github.com/pathfinderhq/pathfinder/internal/pathfind"
)

// GraphStore is the data-access interface GraphService depends on.
type GraphStore interface {
	Snapshot(ctx context.Context) ([]models.Node, []models.Edge, error)
	Stats(ctx context.Context) (*models.GraphStats, error)
}

// Compile-time check: *GraphService must satisfy domain.GraphService.
var _ domain.GraphService = (*GraphService)(nil)

// GraphService runs the graph algorithms over a fresh snapshot per call.
type GraphService struct {
	store GraphStore
	log   *logrus.Logger
}

// NewGraphService creates a GraphService.
func NewGraphService(store GraphStore, log *logrus.Logger) *GraphService {
	return &GraphService{store: store, log: log}
}

// TraverseBFS returns the BFS visitation order and tree from startID.
func (s *GraphService) TraverseBFS(ctx context.Context, startID int64) (res *models.BFSResult, err error) {
	start := time.Now()
	defer func() { observe("bfs", start, err) }()

	nodes, edges, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	res, err = pathfind.TraverseBFS(startID, nodes, edges)

	s.log.WithFields(logrus.Fields{
		"start_id": startID,
		"nodes":    len(nodes),
		"edges":    len(edges),
		"duration": time.Since(start),
	}).Debug("graph.bfs")

	return res, err
}

// ShortestPath returns the minimum-weight path from srcID to dstID.
func (s *GraphService) ShortestPath(ctx context.Context, srcID, dstID int64) (res *models.ShortestPathResult, err error) {
	start := time.Now()
	defer func() { observe("shortest_path", start, err) }()

	nodes, edges, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	res, err = pathfind.ShortestPath(srcID, dstID, nodes, edges)

	s.log.WithFields(logrus.Fields{
		"src_id":   srcID,
		"dst_id":   dstID,
		"nodes":    len(nodes),
		"edges":    len(edges),
		"duration": time.Since(start),
	}).Debug("graph.shortest_path")

	return res, err
}

// Stats returns node and edge counts and refreshes the size gauges.
func (s *GraphService) Stats(ctx context.Context) (*models.GraphStats, error) {
	st, err := s.store.Stats(ctx)
	if err != nil {
		return nil, err
	}

	metrics.NodeCount.Set(float64(st.Nodes))
	metrics.EdgeCount.Set(float64(st.Edges))

	return st, nil
}

// outcome classifies an algorithm result for the duration metric.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, models.ErrNodeNotFound):
		return "not_found"
	case errors.Is(err, models.ErrNoPath):
		return "no_path"
	default:
		return "error"
	}
}

func observe(kind string, start time.Time, err error) {
	metrics.AlgorithmDuration.WithLabelValues(kind, outcome(err)).Observe(time.Since(start).Seconds())
}
