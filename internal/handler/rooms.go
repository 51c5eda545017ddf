package handler

import (
	"net/http"

	"github.com/osse101/TriCard_Go/internal/domain"
	"github.com/osse101/TriCard_Go/internal/logger"
	"github.com/osse101/TriCard_Go/internal/round"
)

// RoomHandler serves the room lifecycle endpoints
type RoomHandler struct {
	rounds round.Service
}

// NewRoomHandler creates a new RoomHandler
func NewRoomHandler(rounds round.Service) *RoomHandler {
	return &RoomHandler{rounds: rounds}
}

// CreateRoomRequest opens a room with the caller as dealer
type CreateRoomRequest struct {
	DealerID   string `json:"dealer_id" validate:"required,max=100"`
	DealerName string `json:"dealer_name" validate:"max=100,excludesall=\x00\n\r\t"`
}

// JoinRoomRequest seats a member in the room with the given code
type JoinRoomRequest struct {
	Code     string `json:"code" validate:"required,max=10,numeric"`
	MemberID string `json:"member_id" validate:"required,max=100"`
	Username string `json:"username" validate:"max=100,excludesall=\x00\n\r\t"`
}

// MemberRequest identifies the acting member
type MemberRequest struct {
	MemberID string `json:"member_id" validate:"required,max=100"`
}

// HandleCreateRoom opens a new room
// @Summary Open a room
// @Tags rooms
// @Accept json
// @Produce json
// @Param request body CreateRoomRequest true "Dealer"
// @Success 201 {object} domain.Room
// @Router /api/v1/rooms [post]
func (h *RoomHandler) HandleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req CreateRoomRequest
	if err := DecodeAndValidateRequest(r, w, &req, ActionCreateRoom); err != nil {
		return
	}

	room, err := h.rounds.CreateRoom(r.Context(), req.DealerID, req.DealerName)
	if err != nil {
		respondServiceError(w, r, ActionCreateRoom, err)
		return
	}

	logger.FromContext(r.Context()).Info(LogMsgRoomCreated, logger.AttrKeyRoomID, room.ID, "code", room.Code)
	respondJSON(w, http.StatusCreated, room)
}

// HandleListRooms lists rooms that are not closed
// @Summary List open rooms
// @Tags rooms
// @Produce json
// @Success 200 {array} domain.Room
// @Router /api/v1/rooms [get]
func (h *RoomHandler) HandleListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.rounds.ListOpenRooms(r.Context())
	if err != nil {
		respondServiceError(w, r, ActionListRooms, err)
		return
	}
	if rooms == nil {
		rooms = []domain.Room{}
	}
	respondJSON(w, http.StatusOK, rooms)
}

// HandleJoinRoom seats a member by room code
// @Summary Join a room by code
// @Tags rooms
// @Accept json
// @Produce json
// @Param request body JoinRoomRequest true "Join"
// @Success 200 {object} domain.Room
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/rooms/join [post]
func (h *RoomHandler) HandleJoinRoom(w http.ResponseWriter, r *http.Request) {
	var req JoinRoomRequest
	if err := DecodeAndValidateRequest(r, w, &req, ActionJoinRoom); err != nil {
		return
	}

	room, err := h.rounds.JoinRoom(r.Context(), req.Code, req.MemberID, req.Username)
	if err != nil {
		respondServiceError(w, r, ActionJoinRoom, err)
		return
	}
	respondJSON(w, http.StatusOK, room)
}

// HandleTakeOverDealer moves the dealer seat to the requesting member
// @Summary Take over the dealer seat
// @Tags rooms
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param request body MemberRequest true "Member"
// @Success 200 {object} domain.Room
// @Router /api/v1/rooms/{id}/dealer [post]
func (h *RoomHandler) HandleTakeOverDealer(w http.ResponseWriter, r *http.Request) {
	roomID, ok := GetURLParam(r, w, URLParamRoomID)
	if !ok {
		return
	}
	var req MemberRequest
	if err := DecodeAndValidateRequest(r, w, &req, ActionTakeOverDealer); err != nil {
		return
	}

	room, err := h.rounds.TakeOverDealer(r.Context(), roomID, req.MemberID)
	if err != nil {
		respondServiceError(w, r, ActionTakeOverDealer, err)
		return
	}
	respondJSON(w, http.StatusOK, room)
}

// HandleRoomState returns the room snapshot with member names and balances
// @Summary Room state
// @Tags rooms
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} domain.RoomState
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/rooms/{id}/state [get]
func (h *RoomHandler) HandleRoomState(w http.ResponseWriter, r *http.Request) {
	roomID, ok := GetURLParam(r, w, URLParamRoomID)
	if !ok {
		return
	}

	state, err := h.rounds.RoomState(r.Context(), roomID)
	if err != nil {
		respondServiceError(w, r, ActionRoomState, err)
		return
	}
	respondJSON(w, http.StatusOK, state)
}

// HandleReveal draws and settles the round
// @Summary Reveal units and settle wagers
// @Tags rounds
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param request body MemberRequest true "Dealer"
// @Success 200 {object} domain.RoundSummary
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/rooms/{id}/reveal [post]
func (h *RoomHandler) HandleReveal(w http.ResponseWriter, r *http.Request) {
	roomID, ok := GetURLParam(r, w, URLParamRoomID)
	if !ok {
		return
	}
	var req MemberRequest
	if err := DecodeAndValidateRequest(r, w, &req, ActionReveal); err != nil {
		return
	}

	summary, err := h.rounds.Reveal(r.Context(), roomID, req.MemberID)
	if err != nil {
		respondServiceError(w, r, ActionReveal, err)
		return
	}

	logger.FromContext(r.Context()).Info(LogMsgRoundRevealed,
		logger.AttrKeyRoomID, roomID, "round", summary.Round, "results", len(summary.Results))
	respondJSON(w, http.StatusOK, summary)
}

// HandleReset opens the next betting round
// @Summary Reset the round
// @Tags rounds
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param request body MemberRequest true "Dealer"
// @Success 200 {object} domain.Room
// @Router /api/v1/rooms/{id}/reset [post]
func (h *RoomHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	roomID, ok := GetURLParam(r, w, URLParamRoomID)
	if !ok {
		return
	}
	var req MemberRequest
	if err := DecodeAndValidateRequest(r, w, &req, ActionReset); err != nil {
		return
	}

	room, err := h.rounds.Reset(r.Context(), roomID, req.MemberID)
	if err != nil {
		respondServiceError(w, r, ActionReset, err)
		return
	}
	respondJSON(w, http.StatusOK, room)
}

// HandleCloseRoom closes the room and refunds open wagers
// @Summary Close a room
// @Tags rooms
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param request body MemberRequest true "Dealer"
// @Success 200 {object} SuccessResponse
// @Router /api/v1/rooms/{id}/close [post]
func (h *RoomHandler) HandleCloseRoom(w http.ResponseWriter, r *http.Request) {
	roomID, ok := GetURLParam(r, w, URLParamRoomID)
	if !ok {
		return
	}
	var req MemberRequest
	if err := DecodeAndValidateRequest(r, w, &req, ActionCloseRoom); err != nil {
		return
	}

	if err := h.rounds.CloseRoom(r.Context(), roomID, req.MemberID); err != nil {
		respondServiceError(w, r, ActionCloseRoom, err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgRoomClosedSuccess})
}
