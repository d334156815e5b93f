package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/pathfinderhq/pathfinder/internal/models"
)

// NodeWriter is the subset of node operations the loader needs.
type NodeWriter interface {
	GetNodeByName(ctx context.Context, name string) (*models.Node, error)
	CreateNode(ctx context.Context, req models.CreateNodeRequest) (*models.Node, error)
}

// EdgeWriter is the subset of edge operations the loader needs.
type EdgeWriter interface {
	EdgeExists(ctx context.Context, srcID, dstID int64) (bool, error)
	CreateEdge(ctx context.Context, req models.CreateEdgeRequest) (*models.Edge, error)
}

// Summary counts what a load created and skipped.
type Summary struct {
	NodesCreated int `json:"nodes_created"`
	NodesSkipped int `json:"nodes_skipped"`
	EdgesCreated int `json:"edges_created"`
	EdgesSkipped int `json:"edges_skipped"`
}

// Loader inserts parsed rows, skipping anything already present, so running
// it twice over the same files leaves the graph unchanged.
type Loader struct {
	nodes NodeWriter
	edges EdgeWriter
	log   *logrus.Logger
}

// NewLoader creates a Loader.
func NewLoader(nodes NodeWriter, edges EdgeWriter, log *logrus.Logger) *Loader {
	return &Loader{nodes: nodes, edges: edges, log: log}
}

// LoadDir parses dir/nodes.csv and dir/edges.csv and loads them.
func (l *Loader) LoadDir(ctx context.Context, dir string) (*Summary, error) {
	return l.LoadFiles(ctx, filepath.Join(dir, NodesFile), filepath.Join(dir, EdgesFile))
}

// LoadFiles parses the given node and edge files and loads them.
func (l *Loader) LoadFiles(ctx context.Context, nodesPath, edgesPath string) (*Summary, error) {
	names, err := parseFile(nodesPath, ParseNodes)
	if err != nil {
		return nil, err
	}

	edges, err := parseFile(edgesPath, ParseEdges)
	if err != nil {
		return nil, err
	}

	return l.Load(ctx, names, edges)
}

func parseFile[T any](path string, parse func(io.Reader) (T, error)) (T, error) {
	var zero T

	f, err := os.Open(path) //nolint:gosec // path comes from operator config.
	if err != nil {
		return zero, fmt.Errorf("opening %s: %w", filepath.Base(path), err)
	}
	defer f.Close() //nolint:errcheck // read-only file.

	out, err := parse(f)
	if err != nil {
		return zero, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}

	return out, nil
}

// Load creates missing nodes, then edges whose endpoints resolve by name and
// whose (src, dst) pair is not already present.
func (l *Loader) Load(ctx context.Context, names []string, edges []EdgeRow) (*Summary, error) {
	sum := &Summary{}
	ids := make(map[string]int64, len(names))

	for _, name := range names {
		if _, seen := ids[name]; seen {
			sum.NodesSkipped++
			continue
		}

		id, created, err := l.ensureNode(ctx, name)
		if err != nil {
			return sum, err
		}

		ids[name] = id
		if created {
			sum.NodesCreated++
		} else {
			sum.NodesSkipped++
		}
	}

	for _, row := range edges {
		created, err := l.loadEdge(ctx, ids, row)
		if err != nil {
			return sum, err
		}

		if created {
			sum.EdgesCreated++
		} else {
			sum.EdgesSkipped++
		}
	}

	l.log.WithFields(logrus.Fields{
		"nodes_created": sum.NodesCreated,
		"nodes_skipped": sum.NodesSkipped,
		"edges_created": sum.EdgesCreated,
		"edges_skipped": sum.EdgesSkipped,
	}).Info("seed load complete")

	return sum, nil
}

func (l *Loader) ensureNode(ctx context.Context, name string) (id int64, created bool, err error) {
	existing, err := l.nodes.GetNodeByName(ctx, name)
	if err == nil {
		return existing.ID, false, nil
	}
	if !errors.Is(err, models.ErrNodeNotFound) {
		return 0, false, fmt.Errorf("looking up node %q: %w", name, err)
	}

	node, err := l.nodes.CreateNode(ctx, models.CreateNodeRequest{Name: name})
	if err != nil {
		// Another writer created it between lookup and insert.
		if errors.Is(err, models.ErrDuplicateKey) {
			existing, lookupErr := l.nodes.GetNodeByName(ctx, name)
			if lookupErr != nil {
				return 0, false, fmt.Errorf("looking up node %q: %w", name, lookupErr)
			}
			return existing.ID, false, nil
		}
		return 0, false, fmt.Errorf("creating node %q: %w", name, err)
	}

	return node.ID, true, nil
}

func (l *Loader) resolve(ctx context.Context, ids map[string]int64, name string) (int64, bool, error) {
	if id, ok := ids[name]; ok {
		return id, true, nil
	}

	node, err := l.nodes.GetNodeByName(ctx, name)
	if err != nil {
		if errors.Is(err, models.ErrNodeNotFound) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("looking up node %q: %w", name, err)
	}

	ids[name] = node.ID

	return node.ID, true, nil
}

func (l *Loader) loadEdge(ctx context.Context, ids map[string]int64, row EdgeRow) (bool, error) {
	srcID, srcOK, err := l.resolve(ctx, ids, row.SrcName)
	if err != nil {
		return false, err
	}

	dstID, dstOK, err := l.resolve(ctx, ids, row.DstName)
	if err != nil {
		return false, err
	}

	if !srcOK || !dstOK {
		l.log.WithFields(logrus.Fields{
			"line":     row.Line,
			"src_name": row.SrcName,
			"dst_name": row.DstName,
		}).Warn("seed edge references unknown node, skipping")
		return false, nil
	}

	exists, err := l.edges.EdgeExists(ctx, srcID, dstID)
	if err != nil {
		return false, fmt.Errorf("checking edge %s -> %s: %w", row.SrcName, row.DstName, err)
	}
	if exists {
		return false, nil
	}

	if _, err := l.edges.CreateEdge(ctx, models.CreateEdgeRequest{SrcID: srcID, DstID: dstID, Weight: row.Weight}); err != nil {
		return false, fmt.Errorf("creating edge %s -> %s (line %d): %w", row.SrcName, row.DstName, row.Line, err)
	}

	return true, nil
}
