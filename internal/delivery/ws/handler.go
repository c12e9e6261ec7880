package ws

import (
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/mimirpublish/internal/channel"
	"github.com/gorilla/websocket"
)

type Receiver interface {
	Receive(ev channel.InboundEvent)
}

// WSHandler accepts a host frame connection and feeds each frame to rx,
// tagged with the connection's Origin header.
func WSHandler(hub *Hub, rx Receiver, log *logger.ZapLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := Upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Log(logger.LogEntry{
				Level:   "warn",
				Message: "ws upgrade failed",
				Error:   err,
			})
			return
		}

		origin := r.Header.Get("Origin")
		hub.Register(origin, conn)
		defer hub.Unregister(conn)

		for {
			kind, raw, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					log.Log(logger.LogEntry{
						Level:   "warn",
						Message: "host frame read failed",
						Error:   err,
						Fields:  map[string]any{"origin": origin},
					})
				}
				return
			}

			ev := channel.InboundEvent{Origin: origin}
			if kind == websocket.TextMessage {
				ev.Data = string(raw)
			} else {
				ev.Data = raw
			}
			rx.Receive(ev)
		}
	}
}
