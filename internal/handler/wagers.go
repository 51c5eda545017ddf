package handler

import (
	"net/http"

	"github.com/osse101/TriCard_Go/internal/domain"
)

// WagerDeltaRequest is one requested change to a spot's wager. Zero amounts are no-ops;
// the bounds mirror domain.MaxWagerAmount.
type WagerDeltaRequest struct {
	SpotID string `json:"spot_id" validate:"spotid"`
	Amount int64  `json:"amount" validate:"gte=-1000000,lte=1000000"`
}

// WagerBatchRequest carries a member's batched wager changes
type WagerBatchRequest struct {
	MemberID string              `json:"member_id" validate:"required,max=100"`
	Deltas   []WagerDeltaRequest `json:"deltas" validate:"max=64,dive"`
}

// RemoveWagerRequest removes part of a wager from one spot
type RemoveWagerRequest struct {
	MemberID string `json:"member_id" validate:"required,max=100"`
	SpotID   string `json:"spot_id" validate:"spotid"`
	Amount   int64  `json:"amount" validate:"gt=0,lte=1000000"`
}

// HandleApplyWagerBatch applies a batch of wager deltas atomically
// @Summary Apply a wager batch
// @Tags wagers
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param request body WagerBatchRequest true "Batch"
// @Success 200 {object} domain.BatchResult
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/rooms/{id}/wagers [post]
func (h *RoomHandler) HandleApplyWagerBatch(w http.ResponseWriter, r *http.Request) {
	roomID, ok := GetURLParam(r, w, URLParamRoomID)
	if !ok {
		return
	}
	var req WagerBatchRequest
	if err := DecodeAndValidateRequest(r, w, &req, ActionApplyWagers); err != nil {
		return
	}

	deltas := make([]domain.WagerDelta, 0, len(req.Deltas))
	for _, d := range req.Deltas {
		deltas = append(deltas, domain.WagerDelta{SpotID: d.SpotID, Amount: d.Amount})
	}

	result, err := h.rounds.ApplyWagerBatch(r.Context(), roomID, req.MemberID, deltas)
	if err != nil {
		respondServiceError(w, r, ActionApplyWagers, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// HandleRemoveWager removes part of a wager from one spot
// @Summary Remove a wager
// @Tags wagers
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param request body RemoveWagerRequest true "Removal"
// @Success 200 {object} domain.BatchResult
// @Router /api/v1/rooms/{id}/wagers/remove [post]
func (h *RoomHandler) HandleRemoveWager(w http.ResponseWriter, r *http.Request) {
	roomID, ok := GetURLParam(r, w, URLParamRoomID)
	if !ok {
		return
	}
	var req RemoveWagerRequest
	if err := DecodeAndValidateRequest(r, w, &req, ActionRemoveWager); err != nil {
		return
	}

	result, err := h.rounds.RemoveWager(r.Context(), roomID, req.MemberID, req.SpotID, req.Amount)
	if err != nil {
		respondServiceError(w, r, ActionRemoveWager, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
