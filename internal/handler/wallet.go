package handler

import (
	"net/http"

	"github.com/osse101/TriCard_Go/internal/domain"
	"github.com/osse101/TriCard_Go/internal/wallet"
)

// WalletHandler serves wallet lookups
type WalletHandler struct {
	wallet wallet.Service
}

// NewWalletHandler creates a new WalletHandler
func NewWalletHandler(svc wallet.Service) *WalletHandler {
	return &WalletHandler{wallet: svc}
}

// WalletResponse is a member's balance and recent ledger entries
type WalletResponse struct {
	MemberID     string               `json:"member_id"`
	Balance      int64                `json:"balance"`
	Transactions []domain.Transaction `json:"transactions"`
}

// HandleGetWallet returns a member's balance and recent transactions
// @Summary Wallet balance and history
// @Tags wallet
// @Produce json
// @Param memberID path string true "Member ID"
// @Param limit query int false "History size"
// @Success 200 {object} WalletResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/wallet/{memberID} [get]
func (h *WalletHandler) HandleGetWallet(w http.ResponseWriter, r *http.Request) {
	memberID, ok := GetURLParam(r, w, URLParamMemberID)
	if !ok {
		return
	}
	limit, ok := GetOptionalIntQueryParam(r, w, QueryParamLimit, wallet.DefaultHistoryLimit)
	if !ok {
		return
	}

	balance, err := h.wallet.Balance(r.Context(), memberID)
	if err != nil {
		respondServiceError(w, r, ActionWallet, err)
		return
	}
	txs, err := h.wallet.Transactions(r.Context(), memberID, limit)
	if err != nil {
		respondServiceError(w, r, ActionWallet, err)
		return
	}
	if txs == nil {
		txs = []domain.Transaction{}
	}

	respondJSON(w, http.StatusOK, WalletResponse{MemberID: memberID, Balance: balance, Transactions: txs})
}
