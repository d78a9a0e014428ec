package sse

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"

	"github.com/osse101/ShadowArmy_Go/internal/logger"
)

// WebSocketHandler streams the same events as Handler over a WebSocket, one
// JSON text message per event. The socket is receive only; anything the client
// sends is discarded.
func WebSocketHandler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		eventTypes := parseTypes(r)

		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			log.Warn(LogMsgUpgradeFailed, "error", err)
			return
		}
		defer conn.CloseNow()

		client := hub.Register(eventTypes)
		log.Info(LogMsgClientConnected,
			"client_id", client.ID,
			"transport", "websocket",
			"filters", eventTypes,
			"total_clients", hub.ClientCount())

		defer func() {
			hub.Unregister(client.ID)
			log.Info(LogMsgClientDisconnected, "client_id", client.ID)
		}()

		// done once the peer closes or the request ends
		ctx := conn.CloseRead(r.Context())

		write := func(evt Event) bool {
			data, err := json.Marshal(evt)
			if err != nil {
				log.Error(LogMsgWriteError, "error", err)
				return true
			}
			wctx, cancel := context.WithTimeout(ctx, WebSocketWriteTimeout)
			defer cancel()
			if err := conn.Write(wctx, websocket.MessageText, data); err != nil {
				log.Warn(LogMsgWriteError, "error", err)
				return false
			}
			return true
		}

		if !write(Event{
			ID:        client.ID,
			Type:      EventTypeConnected,
			Timestamp: time.Now().Unix(),
			Payload: map[string]interface{}{
				"client_id": client.ID,
				"filters":   eventTypes,
			},
		}) {
			return
		}

		ticker := time.NewTicker(KeepaliveInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-client.EventChannel:
				if !ok {
					conn.Close(websocket.StatusGoingAway, "server shutting down")
					return
				}
				if !write(event) {
					return
				}

			case <-ticker.C:
				if !write(Event{Type: EventTypeKeepalive, Timestamp: time.Now().Unix()}) {
					return
				}
			}
		}
	}
}
