package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pathfinderhq/pathfinder/client"
)

func newEdgeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edge",
		Short: "Manage edges",
	}
	cmd.AddCommand(edgeCreateCmd())
	cmd.AddCommand(edgeGetCmd())
	cmd.AddCommand(edgeListCmd())
	cmd.AddCommand(edgeDeleteCmd())
	return cmd
}

func edgeCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <src-id> <dst-id> <weight>",
		Short: "Create a directed edge",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			w, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				fatal("parse weight", err)
			}
			edge, err := apiClient.Edges.Create(context.Background(), client.CreateEdgeRequest{
				SrcID:  mustID(args[0]),
				DstID:  mustID(args[1]),
				Weight: w,
			})
			if err != nil {
				fatal("create edge", err)
			}
			output(edge, func() { formatTable(edgeHeaders, edgeRows([]client.Edge{*edge})) })
		},
	}
}

func edgeGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get an edge by ID",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			edge, err := apiClient.Edges.Get(context.Background(), mustID(args[0]))
			if err != nil {
				fatal("get edge", err)
			}
			output(edge, func() { formatTable(edgeHeaders, edgeRows([]client.Edge{*edge})) })
		},
	}
}

func edgeListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all edges",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			edges, err := apiClient.Edges.List(context.Background())
			if err != nil {
				fatal("list edges", err)
			}
			output(edges, func() { formatTable(edgeHeaders, edgeRows(edges)) })
		},
	}
}

func edgeDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an edge",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			edgeID := mustID(args[0])
			if err := apiClient.Edges.Delete(context.Background(), edgeID); err != nil {
				fatal("delete edge", err)
			}
			fmt.Printf("Deleted edge %d\n", edgeID)
		},
	}
}
