package ws

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/conclave-gg/conclave/internal/api/apierr"
	"github.com/conclave-gg/conclave/internal/lobby"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Serve upgrades the request and runs the member's session: join the lobby,
// pump broadcasts out, dispatch inbound commands, and leave on disconnect.
// Join rejections are delivered as an error frame before the socket closes.
func Serve(w http.ResponseWriter, r *http.Request, mgr *lobby.Manager, lob *lobby.Lobby, name string, logger *slog.Logger) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}

	client := NewClient(conn, name, logger.With(slog.String("lobby", string(lob.Code()))))

	if err := lob.Join(client, name); err != nil {
		client.logger.Info("join rejected", slog.Any("error", err))
		_ = conn.WriteMessage(websocket.TextMessage, errorFrame(err))
		_ = conn.Close()
		return
	}

	go client.WritePump()
	client.logger.Info("client connected")
	lob.BroadcastToAll()

	defer func() {
		if err := lob.Leave(client); err == nil {
			lob.BroadcastToAll()
		}
		close(client.send)
		client.logger.Info("client disconnected",
			slog.Duration("connection_duration", time.Since(client.connectedAt)))
	}()

	for {
		var cmd Command
		if err := conn.ReadJSON(&cmd); err != nil {
			return
		}

		switch cmd.Type {
		case CommandStartGame:
			if _, err := mgr.StartGame(r.Context(), lob.Code()); err != nil {
				client.Send(errorFrame(err))
				continue
			}
			lob.BroadcastToAll()
		case CommandAdvanceRound:
			if _, err := mgr.AdvanceRound(lob.Code()); err != nil {
				client.Send(errorFrame(err))
				continue
			}
			lob.BroadcastToAll()
		case CommandGetState:
			_ = lob.BroadcastToOne(client)
		default:
			client.Send(errorFrame(apierr.NewUnknownCommandError(cmd.Type)))
		}
	}
}
