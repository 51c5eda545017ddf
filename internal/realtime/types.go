package realtime

import "encoding/json"

// Message is one outbound frame. The same shape is used for websocket JSON frames
// and SSE data lines.
type Message struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Timestamp int64       `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// Inbound is one client frame before its payload is decoded
type Inbound struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// JoinRoomPayload asks to be seated in a room. RoomCode may be used instead of RoomID.
type JoinRoomPayload struct {
	RoomID   string `json:"room_id"`
	RoomCode string `json:"room_code"`
	Username string `json:"username"`
}

// SubmitWagerBatchPayload carries wager deltas
type SubmitWagerBatchPayload struct {
	Deltas []DeltaPayload `json:"deltas"`
}

// DeltaPayload is one requested wager change
type DeltaPayload struct {
	SpotID string `json:"spot_id"`
	Amount int64  `json:"amount"`
}

// RemoveWagerPayload is the single-spot removal form
type RemoveWagerPayload struct {
	SpotID string `json:"spot_id"`
	Amount int64  `json:"amount"`
}

// ErrorPayload is sent to a single client when its request failed
type ErrorPayload struct {
	Message string `json:"message"`
}

// ConnectedPayload greets a new connection
type ConnectedPayload struct {
	ClientID string `json:"client_id"`
	RoomID   string `json:"room_id"`
	MemberID string `json:"member_id,omitempty"`
}
