package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func passwordFrom(flag string) string {
	if flag != "" {
		return flag
	}
	return os.Getenv("PATHFINDER_PASSWORD")
}

func newRegisterCmd() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "register <username>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			user, err := apiClient.Auth.Register(context.Background(), args[0], passwordFrom(password))
			if err != nil {
				fatal("register", err)
			}
			output(user, func() {
				formatTable([]string{"ID", "USERNAME"}, [][]string{{id(user.ID), user.Username}})
			})
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "Password (env: PATHFINDER_PASSWORD)")
	return cmd
}

func newLoginCmd() *cobra.Command {
	var (
		password string
		save     bool
	)
	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Obtain a bearer token",
		Long:  "Log in and print the access token. With --save the token is stored in ~/.pathfinder/config.yaml.",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			tok, err := apiClient.Auth.Login(context.Background(), args[0], passwordFrom(password))
			if err != nil {
				fatal("login", err)
			}
			if save {
				path, err := saveToken(tok.AccessToken)
				if err != nil {
					fatal("save token", err)
				}
				fmt.Fprintf(os.Stderr, "Token saved to %s\n", path)
			}
			output(tok, func() { fmt.Println(tok.AccessToken) })
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "Password (env: PATHFINDER_PASSWORD)")
	cmd.Flags().BoolVar(&save, "save", false, "Store the token in the config file")
	return cmd
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the authenticated user",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			user, err := apiClient.Auth.Me(context.Background())
			if err != nil {
				fatal("whoami", err)
			}
			output(user, func() {
				formatTable([]string{"ID", "USERNAME"}, [][]string{{id(user.ID), user.Username}})
			})
		},
	}
}

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health and readiness",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			health, err := apiClient.Health(ctx)
			if err != nil {
				fatal("health", err)
			}
			ready, err := apiClient.Ready(ctx)
			if err != nil {
				fatal("ready", err)
			}
			output(map[string]any{"health": health, "ready": ready}, func() {
				formatTable([]string{"STATUS", "VERSION", "DATABASE", "READY"},
					[][]string{{health.Status, health.Version, health.Database, ready.Status}})
			})
		},
	}
}
