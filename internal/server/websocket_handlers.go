package server

import (
	"trenai/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebsocketHandler upgrades the connection and attaches it to the toast hub.
// The session is resolved by WebSocketAuthRequired before the upgrade.
func (s *Server) WebsocketHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userID, ok := conn.Locals("userID").(uint)
		if !ok || s.hub == nil {
			_ = conn.Close()
			return
		}

		client, err := s.hub.Register(userID, conn)
		if err != nil {
			middleware.Logger.Error("websocket registration rejected",
				"user_id", userID, "error", err)
			_ = conn.Close()
			return
		}

		go client.WritePump()
		client.ReadPump()
	})
}
