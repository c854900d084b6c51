package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

func newJoinCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "join <code> <name>",
		Short: "Join a lobby over WebSocket",
		Long: `Connect to the lobby's WebSocket endpoint and hold a live session.

Incoming lobby views are printed as they arrive. Commands are read from
stdin, one per line:

  start   start the game
  next    advance the running game one round
  state   request the current view again
  quit    disconnect

Press Ctrl+C to disconnect.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(args[0], args[1], jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output frames as JSON lines")

	return cmd
}

// viewFrame covers every frame shape the server sends
type viewFrame struct {
	Error     *APIError `json:"error"`
	InGame    bool      `json:"inGame"`
	UserCount int       `json:"userCount"`
	Usernames []string  `json:"usernames"`
	Players   []string  `json:"players"`
	Round     int       `json:"round"`
}

func runSession(code, name string, jsonOutput bool) error {
	wsBase := strings.Replace(strings.TrimSuffix(cfg.ServerURL, "/"), "http", "ws", 1)
	wsURL := fmt.Sprintf("%s/api/v1/lobbies/%s/ws?name=%s", wsBase, code, url.QueryEscape(name))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = conn.Close() }()

	// Handle interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			cancel()
			_ = conn.Close()
		case <-ctx.Done():
		}
	}()

	if !jsonOutput {
		fmt.Printf("Connected to lobby %s as %s\n", code, name)
	}

	// Forward stdin commands as frames
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			var frame string
			switch word := strings.TrimSpace(scanner.Text()); word {
			case "":
				continue
			case "start":
				frame = `{"type":"start-game"}`
			case "next":
				frame = `{"type":"advance-round"}`
			case "state":
				frame = `{"type":"get-state"}`
			case "quit":
				cancel()
				_ = conn.Close()
				return
			default:
				fmt.Printf("Unknown command %q (start, next, state, quit)\n", word)
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
				return
			}
		}
		// stdin closed
		cancel()
		_ = conn.Close()
	}()

	// Print frames until the connection drops
	for {
		_, frame, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				if !jsonOutput {
					fmt.Println("Disconnected")
				}
				return nil
			}
			return fmt.Errorf("stream error: %w", err)
		}
		printFrame(frame, jsonOutput)
	}
}

func printFrame(frame []byte, jsonOutput bool) {
	if jsonOutput {
		fmt.Println(string(frame))
		return
	}

	var view viewFrame
	if err := json.Unmarshal(frame, &view); err != nil {
		fmt.Println(string(frame))
		return
	}

	timestamp := time.Now().Format("15:04:05")
	switch {
	case view.Error != nil:
		fmt.Printf("[%s] error: %s\n", timestamp, view.Error.String())
	case view.InGame:
		fmt.Printf("[%s] in game - round %d - players: %s\n",
			timestamp, view.Round, strings.Join(view.Players, ", "))
	default:
		fmt.Printf("[%s] gathering - members (%d): %s\n",
			timestamp, view.UserCount, strings.Join(view.Usernames, ", "))
	}
}
