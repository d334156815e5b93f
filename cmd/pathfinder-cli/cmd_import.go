package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pathfinderhq/pathfinder/client"
	"github.com/pathfinderhq/pathfinder/internal/models"
	"github.com/pathfinderhq/pathfinder/internal/seed"
)

func newImportCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "import <nodes.csv> <edges.csv>",
		Short: "Load nodes and edges from CSV files",
		Long: "Import nodes (column: name) and edges (columns: src_name,dst_name,weight).\n" +
			"Existing node names and (src, dst) pairs are skipped, so imports can be re-run.",
		Args: cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			log := logrus.New()
			log.SetOutput(os.Stderr)
			log.SetLevel(logrus.WarnLevel)
			if verbose {
				log.SetLevel(logrus.InfoLevel)
			}

			remote := newRemoteGraph(apiClient)
			sum, err := seed.NewLoader(remote, remote, log).LoadFiles(context.Background(), args[0], args[1])
			if err != nil {
				fatal("import", err)
			}
			output(sum, func() {
				formatTable([]string{"NODES CREATED", "NODES SKIPPED", "EDGES CREATED", "EDGES SKIPPED"},
					[][]string{{
						fmt.Sprint(sum.NodesCreated), fmt.Sprint(sum.NodesSkipped),
						fmt.Sprint(sum.EdgesCreated), fmt.Sprint(sum.EdgesSkipped),
					}})
			})
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log progress to stderr")
	return cmd
}

type edgeKey struct{ src, dst int64 }

// remoteGraph adapts the HTTP client to the seed loader. The server has no
// lookup by name, so the current nodes and edges are listed once and kept in
// sync as the loader creates more.
type remoteGraph struct {
	api    *client.Client
	loaded bool
	byName map[string]models.Node
	pairs  map[edgeKey]bool
}

func newRemoteGraph(api *client.Client) *remoteGraph {
	return &remoteGraph{api: api}
}

func (g *remoteGraph) load(ctx context.Context) error {
	if g.loaded {
		return nil
	}

	nodes, err := g.api.Nodes.List(ctx)
	if err != nil {
		return fmt.Errorf("listing nodes: %w", err)
	}
	edges, err := g.api.Edges.List(ctx)
	if err != nil {
		return fmt.Errorf("listing edges: %w", err)
	}

	g.byName = make(map[string]models.Node, len(nodes))
	for _, n := range nodes {
		g.byName[n.Name] = toModelNode(n)
	}
	g.pairs = make(map[edgeKey]bool, len(edges))
	for _, e := range edges {
		g.pairs[edgeKey{e.SrcID, e.DstID}] = true
	}
	g.loaded = true

	return nil
}

func (g *remoteGraph) GetNodeByName(ctx context.Context, name string) (*models.Node, error) {
	if err := g.load(ctx); err != nil {
		return nil, err
	}
	n, ok := g.byName[name]
	if !ok {
		return nil, models.ErrNodeNotFound
	}
	return &n, nil
}

func (g *remoteGraph) CreateNode(ctx context.Context, req models.CreateNodeRequest) (*models.Node, error) {
	if err := g.load(ctx); err != nil {
		return nil, err
	}

	created, err := g.api.Nodes.Create(ctx, req.Name)
	if err != nil {
		if client.IsConflict(err) {
			// Someone else added it; refresh so the loader's re-lookup finds it.
			g.loaded = false
			return nil, models.ErrDuplicateKey
		}
		return nil, err
	}

	n := toModelNode(*created)
	g.byName[n.Name] = n

	return &n, nil
}

func (g *remoteGraph) EdgeExists(ctx context.Context, srcID, dstID int64) (bool, error) {
	if err := g.load(ctx); err != nil {
		return false, err
	}
	return g.pairs[edgeKey{srcID, dstID}], nil
}

func (g *remoteGraph) CreateEdge(ctx context.Context, req models.CreateEdgeRequest) (*models.Edge, error) {
	created, err := g.api.Edges.Create(ctx, client.CreateEdgeRequest{
		SrcID:  req.SrcID,
		DstID:  req.DstID,
		Weight: req.Weight,
	})
	if err != nil {
		return nil, err
	}

	if g.pairs != nil {
		g.pairs[edgeKey{created.SrcID, created.DstID}] = true
	}

	return &models.Edge{
		ID:        created.ID,
		SrcID:     created.SrcID,
		DstID:     created.DstID,
		Weight:    created.Weight,
		CreatedAt: created.CreatedAt,
	}, nil
}

func toModelNode(n client.Node) models.Node {
	return models.Node{ID: n.ID, Name: n.Name, CreatedAt: n.CreatedAt}
}

