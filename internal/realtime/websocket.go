package realtime

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/osse101/TriCard_Go/internal/domain"
	"github.com/osse101/TriCard_Go/internal/logger"
)

// NewUpgrader builds a websocket upgrader. An empty allowedOrigins list accepts any origin.
func NewUpgrader(allowedOrigins []string) *websocket.Upgrader {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowed) == 0 {
				return true
			}
			return allowed[r.Header.Get("Origin")]
		},
	}
}

// WebSocketHandler serves GET /ws?room_id=&member_id=. Inbound frames are handled
// one at a time per connection; all writes happen on the handler goroutine.
func WebSocketHandler(hub *Hub, dispatcher *Dispatcher, upgrader *websocket.Upgrader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roomID := r.URL.Query().Get(QueryParamRoomID)
		memberID := r.URL.Query().Get(QueryParamMemberID)
		if roomID == "" || memberID == "" {
			http.Error(w, ErrMsgMissingIdentity, http.StatusBadRequest)
			return
		}

		log := logger.FromContext(r.Context())
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warn(LogMsgUpgradeFailed, "error", err)
			return
		}
		defer conn.Close()

		client := hub.Register(roomID, memberID, TransportWebSocket)
		defer hub.Unregister(client)
		log = log.With("client_id", client.ID, logger.AttrKeyRoomID, roomID, logger.AttrKeyMemberID, memberID)
		log.Info(LogMsgClientConnected, "transport", TransportWebSocket, "total_clients", hub.ClientCount())
		defer log.Info(LogMsgClientDisconnected, "transport", TransportWebSocket)

		greeting := newMessage(domain.MessageConnected, ConnectedPayload{ClientID: client.ID, RoomID: roomID, MemberID: memberID})
		if err := writeJSON(conn, greeting); err != nil {
			return
		}

		// Inbound frames outlive the HTTP request context once hijacked.
		ctx := logger.WithRequestID(context.WithoutCancel(r.Context()), logger.GetRequestID(r.Context()))
		done := make(chan struct{})
		go readLoop(ctx, conn, client, dispatcher, done)

		ticker := time.NewTicker(WebSocketPingInterval)
		defer ticker.Stop()

		for {
			select {
			case msg, ok := <-client.Send:
				if !ok {
					return
				}
				if err := writeJSON(conn, msg); err != nil {
					log.Debug(LogMsgWriteError, "error", err)
					return
				}
			case <-ticker.C:
				_ = conn.SetWriteDeadline(time.Now().Add(WriteTimeout))
				if err := conn.WriteMessage(websocket.PingMessage, []byte{}); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}
}

func readLoop(ctx context.Context, conn *websocket.Conn, client *Client, dispatcher *Dispatcher, done chan struct{}) {
	defer close(done)

	conn.SetReadLimit(MaxInboundMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(WebSocketPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(WebSocketPongWait))
	})

	for {
		var in Inbound
		if err := conn.ReadJSON(&in); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.FromContext(ctx).Debug(LogMsgInboundInvalid, "error", err)
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(WebSocketPongWait))
		dispatcher.Handle(ctx, client, in)
	}
}

func writeJSON(conn *websocket.Conn, msg Message) error {
	_ = conn.SetWriteDeadline(time.Now().Add(WriteTimeout))
	return conn.WriteJSON(msg)
}
