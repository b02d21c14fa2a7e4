package http

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/pos-kardex/internal/interfaces/ws"
)

// WSHandler atiende la conexión WebSocket de los terminales de venta.
type WSHandler struct {
	hub *ws.Hub
}

// NewWSHandler construye el handler.
func NewWSHandler(hub *ws.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

// Upgrade exige que la petición sea un upgrade de WebSocket.
func (h *WSHandler) Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Serve registra la conexión en el hub y la mantiene viva hasta que el
// terminal se desconecte. Los terminales solo escuchan; lo que envíen se ignora.
func (h *WSHandler) Serve() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		h.hub.Register(conn)
		defer h.hub.Unregister(conn)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
}
