package handler

// Generic HTTP error messages for client responses.
// These messages do not expose internal error details.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"
	ErrMsgMissingURLParam       = "Missing %s path parameter"
	ErrMsgInvalidLimit          = "Invalid limit parameter"

	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgUnavailableError    = "Server is temporarily unavailable. Please try again later."
	ErrMsgRoomSaveFailedError = "The room could not be saved. Your tickets were returned."
)

// Action names used when logging failed service calls
const (
	ActionCreateRoom     = "Create room"
	ActionJoinRoom       = "Join room"
	ActionTakeOverDealer = "Take over dealer"
	ActionListRooms      = "List rooms"
	ActionRoomState      = "Room state"
	ActionApplyWagers    = "Apply wager batch"
	ActionRemoveWager    = "Remove wager"
	ActionReveal         = "Reveal"
	ActionReset          = "Reset round"
	ActionCloseRoom      = "Close room"
	ActionWallet         = "Wallet"
)

// Success messages for API responses
const (
	MsgRoomClosedSuccess = "Room closed"
)

// Log messages
const (
	LogMsgEncodeFailed  = "Failed to encode JSON response"
	LogMsgWriteFailed   = "Failed to write response buffer"
	LogMsgDecodeFailed  = "Failed to decode %s request"
	LogMsgDecoded       = "%s request decoded"
	LogMsgMissingParam  = "Missing %s query parameter"
	LogMsgRoomCreated   = "Room opened"
	LogMsgRoundRevealed = "Round revealed"
)

// URL parameters and query keys
const (
	URLParamRoomID   = "id"
	URLParamMemberID = "memberID"
	QueryParamLimit  = "limit"
)
