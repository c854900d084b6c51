package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newLobbyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lobby",
		Short: "Lobby management commands",
	}

	cmd.AddCommand(newLobbyCreateCmd())
	cmd.AddCommand(newLobbyGetCmd())
	cmd.AddCommand(newLobbyCheckCmd())
	cmd.AddCommand(newLobbyGamesCmd())

	return cmd
}

func newLobbyCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a new lobby",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Lobby

			if err := client.Post("/api/v1/lobbies", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newLobbyGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <code>",
		Short: "Get lobby details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := args[0]

			var result Lobby

			if err := client.Get(fmt.Sprintf("/api/v1/lobbies/%s", code), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newLobbyCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <code> <name>",
		Short: "Check whether a name could join a lobby",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, name := args[0], args[1]

			var result JoinCheck

			path := fmt.Sprintf("/api/v1/lobbies/%s/join-check?name=%s", code, url.QueryEscape(name))
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newLobbyGamesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "games <code>",
		Short: "List archived games for a lobby",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := args[0]

			var result []GameRecord

			if err := client.Get(fmt.Sprintf("/api/v1/lobbies/%s/games", code), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
