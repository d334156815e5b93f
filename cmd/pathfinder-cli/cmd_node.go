package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pathfinderhq/pathfinder/client"
)

func newNodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "node",
		Short: "Manage nodes",
	}
	cmd.AddCommand(nodeCreateCmd())
	cmd.AddCommand(nodeGetCmd())
	cmd.AddCommand(nodeListCmd())
	cmd.AddCommand(nodeDeleteCmd())
	return cmd
}

func nodeCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create a node",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			node, err := apiClient.Nodes.Create(context.Background(), args[0])
			if err != nil {
				fatal("create node", err)
			}
			output(node, func() { formatTable(nodeHeaders, nodeRows([]client.Node{*node})) })
		},
	}
}

func nodeGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get a node by ID",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			node, err := apiClient.Nodes.Get(context.Background(), mustID(args[0]))
			if err != nil {
				fatal("get node", err)
			}
			output(node, func() { formatTable(nodeHeaders, nodeRows([]client.Node{*node})) })
		},
	}
}

func nodeListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all nodes",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			nodes, err := apiClient.Nodes.List(context.Background())
			if err != nil {
				fatal("list nodes", err)
			}
			output(nodes, func() { formatTable(nodeHeaders, nodeRows(nodes)) })
		},
	}
}

func nodeDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a node and its incident edges",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			nodeID := mustID(args[0])
			if err := apiClient.Nodes.Delete(context.Background(), nodeID); err != nil {
				fatal("delete node", err)
			}
			fmt.Printf("Deleted node %d\n", nodeID)
		},
	}
}
