package realtime

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/osse101/TriCard_Go/internal/domain"
	"github.com/osse101/TriCard_Go/internal/logger"
)

// SSEHandler serves GET /rooms/{id}/events: a read-only spectator stream of one
// room's broadcasts.
func SSEHandler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roomID := chi.URLParam(r, URLParamRoomID)
		if roomID == "" {
			http.Error(w, ErrMsgMissingIdentity, http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, ErrMsgStreamingNotSupport, http.StatusInternalServerError)
			return
		}

		log := logger.FromContext(r.Context())
		client := hub.Register(roomID, "", TransportSSE)
		log.Info(LogMsgClientConnected, "client_id", client.ID, logger.AttrKeyRoomID, roomID,
			"transport", TransportSSE, "total_clients", hub.ClientCount())
		defer func() {
			hub.Unregister(client)
			log.Info(LogMsgClientDisconnected, "client_id", client.ID, "total_clients", hub.ClientCount())
		}()

		greeting := newMessage(domain.MessageConnected, ConnectedPayload{ClientID: client.ID, RoomID: roomID})
		if !writeSSE(w, flusher, greeting) {
			return
		}

		ticker := time.NewTicker(SSEKeepaliveInterval)
		defer ticker.Stop()

		ctx := r.Context()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-client.Send:
				if !ok {
					return
				}
				if !writeSSE(w, flusher, msg) {
					log.Warn(LogMsgWriteError, "client_id", client.ID)
					return
				}
			case <-ticker.C:
				keepalive := Message{Type: EventTypeKeepalive, Timestamp: time.Now().Unix()}
				if !writeSSE(w, flusher, keepalive) {
					return
				}
			}
		}
	}
}

func writeSSE(w http.ResponseWriter, flusher http.Flusher, msg Message) bool {
	data, err := FormatSSEMessage(msg)
	if err != nil {
		return true
	}
	if _, err := w.Write(data); err != nil {
		return false
	}
	flusher.Flush()
	return true
}
