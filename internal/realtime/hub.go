package realtime

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/osse101/TriCard_Go/internal/metrics"
)

// Client is one realtime connection bound to a room
type Client struct {
	ID        string
	RoomID    string
	MemberID  string
	Transport string
	Send      chan Message
}

// roomMessage goes to every client in roomID, or only to clientID when it is set
type roomMessage struct {
	roomID   string
	clientID string
	message  Message
}

// Hub groups clients by room and fans room broadcasts out to them
type Hub struct {
	rooms     map[string]map[string]*Client
	broadcast chan roomMessage
	mu        sync.RWMutex
	shutdown  chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		rooms:     make(map[string]map[string]*Client),
		broadcast: make(chan roomMessage, BroadcastBufferSize),
		shutdown:  make(chan struct{}),
	}
}

// Start starts the hub's broadcast loop
func (h *Hub) Start() {
	h.wg.Add(1)
	go h.run()
}

// Stop ends the broadcast loop and closes every client channel
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.shutdown)
		h.wg.Wait()

		h.mu.Lock()
		for _, clients := range h.rooms {
			for _, c := range clients {
				close(c.Send)
				metrics.RealtimeClients.WithLabelValues(c.Transport).Dec()
			}
		}
		h.rooms = make(map[string]map[string]*Client)
		h.mu.Unlock()
	})
}

func (h *Hub) run() {
	defer h.wg.Done()

	for {
		select {
		case rm := <-h.broadcast:
			h.mu.RLock()
			for id, c := range h.rooms[rm.roomID] {
				if rm.clientID != "" && id != rm.clientID {
					continue
				}
				select {
				case c.Send <- rm.message:
				default:
					slog.Warn(LogMsgClientBufferFull, "client_id", c.ID, "room_id", c.RoomID, "type", rm.message.Type)
				}
			}
			h.mu.RUnlock()

		case <-h.shutdown:
			return
		}
	}
}

// Register adds a client to roomID's group
func (h *Hub) Register(roomID, memberID, transport string) *Client {
	c := &Client{
		ID:        uuid.New().String(),
		RoomID:    roomID,
		MemberID:  memberID,
		Transport: transport,
		Send:      make(chan Message, ClientMessageBuffer),
	}

	h.mu.Lock()
	group, ok := h.rooms[roomID]
	if !ok {
		group = make(map[string]*Client)
		h.rooms[roomID] = group
	}
	group[c.ID] = c
	h.mu.Unlock()

	metrics.RealtimeClients.WithLabelValues(transport).Inc()
	return c
}

// Unregister removes the client and closes its channel. It is safe to call twice.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	group, ok := h.rooms[c.RoomID]
	if !ok {
		return
	}
	if _, ok := group[c.ID]; !ok {
		return
	}
	delete(group, c.ID)
	if len(group) == 0 {
		delete(h.rooms, c.RoomID)
	}
	close(c.Send)
	metrics.RealtimeClients.WithLabelValues(c.Transport).Dec()
}

// BroadcastToRoom queues a message for every client in roomID
func (h *Hub) BroadcastToRoom(roomID, msgType string, payload interface{}) {
	rm := roomMessage{roomID: roomID, message: newMessage(msgType, payload)}
	select {
	case h.broadcast <- rm:
	case <-h.shutdown:
	default:
		slog.Warn(LogMsgBroadcastDropped, "room_id", roomID, "type", msgType)
	}
}

// SendTo queues a message for one client only. It shares the broadcast loop, so a
// client sees direct replies and room broadcasts in the order they were queued.
// It reports false if the client is gone or the hub is backed up.
func (h *Hub) SendTo(c *Client, msgType string, payload interface{}) bool {
	h.mu.RLock()
	_, ok := h.rooms[c.RoomID][c.ID]
	h.mu.RUnlock()
	if !ok {
		return false
	}

	rm := roomMessage{roomID: c.RoomID, clientID: c.ID, message: newMessage(msgType, payload)}
	select {
	case h.broadcast <- rm:
		return true
	case <-h.shutdown:
		return false
	default:
		slog.Warn(LogMsgBroadcastDropped, "client_id", c.ID, "room_id", c.RoomID, "type", msgType)
		return false
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, group := range h.rooms {
		n += len(group)
	}
	return n
}

// RoomClientCount returns the number of clients connected to roomID
func (h *Hub) RoomClientCount(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}

func newMessage(msgType string, payload interface{}) Message {
	return Message{
		ID:        uuid.New().String(),
		Type:      msgType,
		Timestamp: time.Now().Unix(),
		Payload:   payload,
	}
}

// FormatSSEMessage formats a message for transmission on an SSE stream
func FormatSSEMessage(msg Message) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}

	// SSE format: "id: <id>\nevent: <type>\ndata: <json>\n\n"
	out := "id: " + msg.ID + "\n"
	out += "event: " + msg.Type + "\n"
	out += "data: " + string(data) + "\n\n"

	return []byte(out), nil
}
