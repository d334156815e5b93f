package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pathfinderhq/pathfinder/client"
)

func newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Graph queries",
	}
	cmd.AddCommand(graphBFSCmd())
	cmd.AddCommand(graphPathCmd())
	cmd.AddCommand(graphStatsCmd())
	return cmd
}

func graphBFSCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bfs <start-id>",
		Short: "Breadth-first traversal from a node",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			res, err := apiClient.Graph.BFS(context.Background(), mustID(args[0]))
			if err != nil {
				fatal("bfs", err)
			}
			output(res, func() { formatTable(bfsHeaders, bfsRows(res)) })
		},
	}
}

func graphPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path <src-id> <dst-id>",
		Short: "Lowest-cost path between two nodes",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			res, err := apiClient.Graph.ShortestPath(context.Background(), mustID(args[0]), mustID(args[1]))
			if client.IsNoPath(err) {
				fmt.Fprintln(os.Stderr, "No path found")
				os.Exit(2)
			}
			if err != nil {
				fatal("shortest path", err)
			}
			output(res, func() {
				formatTable([]string{"PATH", "DISTANCE"}, [][]string{{pathString(res.Path), weight(res.Distance)}})
			})
		},
	}
}

func graphStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Node and edge counts",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			stats, err := apiClient.Graph.Stats(context.Background())
			if err != nil {
				fatal("stats", err)
			}
			output(stats, func() {
				formatTable([]string{"NODES", "EDGES"}, [][]string{{id(stats.Nodes), id(stats.Edges)}})
			})
		},
	}
}
