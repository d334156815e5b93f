package seed

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathfinderhq/pathfinder/internal/models"
)

type edgeKey struct{ src, dst int64 }

// memGraph is an in-memory NodeWriter and EdgeWriter.
type memGraph struct {
	byName map[string]*models.Node
	edges  map[edgeKey]*models.Edge
	nextID int64
}

func newMemGraph() *memGraph {
	return &memGraph{byName: map[string]*models.Node{}, edges: map[edgeKey]*models.Edge{}}
}

func (m *memGraph) GetNodeByName(_ context.Context, name string) (*models.Node, error) {
	n, ok := m.byName[name]
	if !ok {
		return nil, models.ErrNodeNotFound
	}
	return n, nil
}

func (m *memGraph) CreateNode(_ context.Context, req models.CreateNodeRequest) (*models.Node, error) {
	if _, ok := m.byName[req.Name]; ok {
		return nil, models.ErrDuplicateKey
	}
	m.nextID++
	n := &models.Node{ID: m.nextID, Name: req.Name}
	m.byName[req.Name] = n
	return n, nil
}

func (m *memGraph) EdgeExists(_ context.Context, srcID, dstID int64) (bool, error) {
	_, ok := m.edges[edgeKey{srcID, dstID}]
	return ok, nil
}

func (m *memGraph) CreateEdge(_ context.Context, req models.CreateEdgeRequest) (*models.Edge, error) {
	m.nextID++
	e := &models.Edge{ID: m.nextID, SrcID: req.SrcID, DstID: req.DstID, Weight: req.Weight}
	m.edges[edgeKey{req.SrcID, req.DstID}] = e
	return e, nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestLoader_Load(t *testing.T) {
	g := newMemGraph()
	l := NewLoader(g, g, quietLogger())

	sum, err := l.Load(context.Background(),
		[]string{"A", "B", "C", "A"},
		[]EdgeRow{
			{Line: 2, SrcName: "A", DstName: "B", Weight: 1},
			{Line: 3, SrcName: "B", DstName: "C", Weight: 2},
			{Line: 4, SrcName: "A", DstName: "B", Weight: 9},
			{Line: 5, SrcName: "A", DstName: "Z", Weight: 1},
		})
	require.NoError(t, err)

	assert.Equal(t, Summary{NodesCreated: 3, NodesSkipped: 1, EdgesCreated: 2, EdgesSkipped: 2}, *sum)
	assert.Len(t, g.byName, 3)
	assert.Len(t, g.edges, 2)

	ab := g.edges[edgeKey{g.byName["A"].ID, g.byName["B"].ID}]
	require.NotNil(t, ab)
	assert.InDelta(t, 1.0, ab.Weight, 0)
}

func TestLoader_Idempotent(t *testing.T) {
	g := newMemGraph()
	l := NewLoader(g, g, quietLogger())

	names := []string{"A", "B"}
	edges := []EdgeRow{{Line: 2, SrcName: "A", DstName: "B", Weight: 3}}

	_, err := l.Load(context.Background(), names, edges)
	require.NoError(t, err)

	sum, err := l.Load(context.Background(), names, edges)
	require.NoError(t, err)

	assert.Equal(t, Summary{NodesSkipped: 2, EdgesSkipped: 1}, *sum)
	assert.Len(t, g.byName, 2)
	assert.Len(t, g.edges, 1)
}

func TestLoader_ResolvesPreexistingNodes(t *testing.T) {
	g := newMemGraph()
	_, err := g.CreateNode(context.Background(), models.CreateNodeRequest{Name: "X"})
	require.NoError(t, err)

	l := NewLoader(g, g, quietLogger())
	sum, err := l.Load(context.Background(), []string{"Y"}, []EdgeRow{{SrcName: "X", DstName: "Y", Weight: 1}})
	require.NoError(t, err)

	assert.Equal(t, 1, sum.EdgesCreated)
}

type failingNodes struct{ *memGraph }

func (failingNodes) GetNodeByName(context.Context, string) (*models.Node, error) {
	return nil, errors.New("connection reset")
}

func TestLoader_PropagatesStoreErrors(t *testing.T) {
	g := newMemGraph()
	l := NewLoader(failingNodes{g}, g, quietLogger())

	_, err := l.Load(context.Background(), []string{"A"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestLoader_LoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, NodesFile), []byte("name\nA\nB\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, EdgesFile), []byte("src_name,dst_name,weight\nA,B,4.5\n"), 0o600))

	g := newMemGraph()
	sum, err := NewLoader(g, g, quietLogger()).LoadDir(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 2, sum.NodesCreated)
	assert.Equal(t, 1, sum.EdgesCreated)
}

func TestLoader_LoadDirMissingFile(t *testing.T) {
	g := newMemGraph()
	_, err := NewLoader(g, g, quietLogger()).LoadDir(context.Background(), t.TempDir())
	require.ErrorIs(t, err, os.ErrNotExist)
}
