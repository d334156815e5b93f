package pathfind_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathfinderhq/pathfinder/internal/models"
	"github.com/pathfinderhq/pathfinder/internal/pathfind"
)

func nodes(ids ...int64) []models.Node {
	out := make([]models.Node, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.Node{ID: id})
	}
	return out
}

// edge is shorthand for a weighted edge; the edge id is assigned by the caller order.
func edge(id, src, dst int64, w float64) models.Edge {
	return models.Edge{ID: id, SrcID: src, DstID: dst, Weight: w}
}

func TestBuildAdjacency_PreservesOrderAndParallelEdges(t *testing.T) {
	adj := pathfind.BuildAdjacency([]models.Edge{
		edge(1, 1, 3, 2),
		edge(2, 1, 2, 1),
		edge(3, 1, 3, 5),
		edge(4, 2, 3, 1),
	})

	require.Len(t, adj, 2)
	assert.Equal(t, []pathfind.Neighbor{{ID: 3, Weight: 2}, {ID: 2, Weight: 1}, {ID: 3, Weight: 5}}, adj[1])
	assert.Equal(t, []pathfind.Neighbor{{ID: 3, Weight: 1}}, adj[2])

	_, ok := adj[3]
	assert.False(t, ok, "sink node should have no key")
	assert.Empty(t, adj[3])
}

func TestBuildAdjacency_Empty(t *testing.T) {
	assert.Empty(t, pathfind.BuildAdjacency(nil))
}

func TestNewSnapshot_DanglingEdge(t *testing.T) {
	tests := []struct {
		name string
		e    models.Edge
	}{
		{"unknown src", edge(1, 9, 1, 1)},
		{"unknown dst", edge(1, 1, 9, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pathfind.NewSnapshot(nodes(1, 2), []models.Edge{tt.e})
			require.ErrorIs(t, err, pathfind.ErrDanglingEdge)
		})
	}
}

func TestNewSnapshot_InvalidWeight(t *testing.T) {
	for _, w := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := pathfind.NewSnapshot(nodes(1, 2), []models.Edge{edge(1, 1, 2, w)})
		require.ErrorIs(t, err, pathfind.ErrInvalidWeight, "weight %v", w)
	}
}

func TestSnapshot_HasNodeAndNeighbors(t *testing.T) {
	s, err := pathfind.NewSnapshot(nodes(1, 2, 3), []models.Edge{edge(1, 1, 2, 1.5)})
	require.NoError(t, err)

	assert.True(t, s.HasNode(3))
	assert.False(t, s.HasNode(4))
	assert.Equal(t, []pathfind.Neighbor{{ID: 2, Weight: 1.5}}, s.Neighbors(1))
	assert.Nil(t, s.Neighbors(3))
}

func TestEngines_RejectDanglingSnapshot(t *testing.T) {
	bad := []models.Edge{edge(1, 1, 7, 1)}

	_, err := pathfind.TraverseBFS(1, nodes(1), bad)
	assert.ErrorIs(t, err, pathfind.ErrDanglingEdge)

	_, err = pathfind.ShortestPath(1, 1, nodes(1), bad)
	assert.ErrorIs(t, err, pathfind.ErrDanglingEdge)
}
