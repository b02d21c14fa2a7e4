package ws

import (
	"sync"

	"github.com/gofiber/contrib/websocket"

	"github.com/tu-usuario/pos-kardex/pkg/logger"
)

// Hub mantiene las conexiones WebSocket de los terminales y les difunde
// eventos (ej: venta completada, para refrescar el listado de productos).
// Entrega al menos una vez por conexión viva; sin garantía de orden.
type Hub struct {
	clients    map[*websocket.Conn]bool
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	broadcast  chan []byte
	mu         sync.Mutex
	log        *logger.Logger
}

// NewHub construye el hub.
func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[*websocket.Conn]bool),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		broadcast:  make(chan []byte, 16),
		log:        log,
	}
}

// Run procesa registros, bajas y difusiones. Lanzar en su propia goroutine.
func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			h.clients[conn] = true
			h.mu.Unlock()
			h.log.Debug().Msg("terminal conectado por websocket")

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Register encola el alta de una conexión.
func (h *Hub) Register(conn *websocket.Conn) {
	h.register <- conn
}

// Unregister encola la baja de una conexión.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.unregister <- conn
}

// Broadcast difunde el mensaje sin bloquear al emisor: si el hub está
// saturado, el evento se descarta (los listeners refrescan igual al siguiente).
func (h *Hub) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	default:
		h.log.Warn().Msg("difusión websocket descartada: hub saturado")
	}
}
