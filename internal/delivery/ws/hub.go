package ws

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/mimirpublish/internal/ports"
	"github.com/gorilla/websocket"
)

var ErrNoFrame = errors.New("no host frame connected for origin")

// Hub tracks host frame connections by origin and implements ports.ParentFrame.
type Hub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]string
	log   *logger.ZapLogger
}

func NewHub(log *logger.ZapLogger) *Hub {
	return &Hub{
		conns: make(map[*websocket.Conn]string),
		log:   log,
	}
}

func (h *Hub) Register(origin string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.conns[conn] = origin
	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "host frame connected",
		Fields:  map[string]any{"origin": origin, "conns": len(h.conns)},
	})
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	origin, ok := h.conns[conn]
	if !ok {
		return
	}
	delete(h.conns, conn)
	conn.Close()
	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "host frame disconnected",
		Fields:  map[string]any{"origin": origin, "conns": len(h.conns)},
	})
}

// PostMessage writes data to every connection opened from targetOrigin and to no other.
func (h *Hub) PostMessage(data []byte, targetOrigin string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	var errs []error
	sent := 0
	for conn, origin := range h.conns {
		if origin != targetOrigin {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			errs = append(errs, fmt.Errorf("write to %s: %w", conn.RemoteAddr(), err))
			continue
		}
		sent++
	}

	if sent == 0 && len(errs) == 0 {
		return fmt.Errorf("%w %q", ErrNoFrame, targetOrigin)
	}
	return errors.Join(errs...)
}

func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Origin checks are done per message by the channel so that rejected frames are
// logged like any other unauthorized message.
var Upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

var _ ports.ParentFrame = (*Hub)(nil)
