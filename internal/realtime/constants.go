package realtime

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the broadcast channel
	BroadcastBufferSize = 256

	// ClientMessageBuffer is the buffer size for each client's outbound channel
	ClientMessageBuffer = 64
)

// Connection settings
const (
	// WebSocketPingInterval is how often websocket clients are pinged
	WebSocketPingInterval = 15 * time.Second

	// WebSocketPongWait is how long a websocket client may stay silent before it is dropped
	WebSocketPongWait = 40 * time.Second

	// WriteTimeout bounds a single websocket write
	WriteTimeout = 10 * time.Second

	// MaxInboundMessageSize caps one inbound websocket frame
	MaxInboundMessageSize = 64 * 1024

	// SSEKeepaliveInterval is how often SSE keepalive events are sent
	SSEKeepaliveInterval = 30 * time.Second
)

// Transports
const (
	TransportWebSocket = "websocket"
	TransportSSE       = "sse"
)

// Query parameters and URL params
const (
	QueryParamRoomID   = "room_id"
	QueryParamMemberID = "member_id"
	URLParamRoomID     = "id"
)

// EventTypeKeepalive is the SSE keepalive event type
const EventTypeKeepalive = "keepalive"

// Log messages
const (
	LogMsgClientConnected    = "Realtime client connected"
	LogMsgClientDisconnected = "Realtime client disconnected"
	LogMsgBroadcastDropped   = "Broadcast buffer full, message dropped"
	LogMsgClientBufferFull   = "Client buffer full, message dropped"
	LogMsgWriteError         = "Failed to write realtime message"
	LogMsgUpgradeFailed      = "WebSocket upgrade failed"
	LogMsgInboundInvalid     = "Invalid inbound message"
	LogMsgInboundFailed      = "Inbound message failed"
)

// Error messages shown to clients
const (
	ErrMsgMissingIdentity     = "room_id and member_id are required"
	ErrMsgUnknownMessageType  = "unknown message type"
	ErrMsgMalformedPayload    = "malformed payload"
	ErrMsgStreamingNotSupport = "streaming not supported"
)
