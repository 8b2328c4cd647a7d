package http

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/robshop/stock-engine/internal/notify"
)

// RegisterWS mounts the stock change feed at /ws/stock. Each connected view
// receives every bus event as JSON; the read loop only exists to detect the
// peer going away.
func RegisterWS(app *fiber.App, hub *notify.Hub) {
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/stock", websocket.New(func(conn *websocket.Conn) {
		hub.Register <- conn
		defer func() { hub.Unregister <- conn }()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
}
