package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/osse101/TriCard_Go/internal/domain"
	"github.com/osse101/TriCard_Go/internal/wallet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newWalletRouter(svc wallet.Service) http.Handler {
	r := chi.NewRouter()
	r.Get("/wallet/{memberID}", NewWalletHandler(svc).HandleGetWallet)
	return r
}

func TestHandleGetWallet(t *testing.T) {
	t.Run("Default limit", func(t *testing.T) {
		svc := new(MockWalletService)
		svc.On("Balance", mock.Anything, "m1").Return(int64(80), nil)
		svc.On("Transactions", mock.Anything, "m1", wallet.DefaultHistoryLimit).Return([]domain.Transaction{
			{ID: "tx-1", MemberID: "m1", Type: domain.TransactionDebit, Amount: 20, ResultingBalance: 80},
		}, nil)

		w := httptest.NewRecorder()
		newWalletRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/wallet/m1", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var resp WalletResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, int64(80), resp.Balance)
		assert.Len(t, resp.Transactions, 1)
		svc.AssertExpectations(t)
	})

	t.Run("Custom limit", func(t *testing.T) {
		svc := new(MockWalletService)
		svc.On("Balance", mock.Anything, "m1").Return(int64(0), nil)
		svc.On("Transactions", mock.Anything, "m1", 5).Return(nil, nil)

		w := httptest.NewRecorder()
		newWalletRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/wallet/m1?limit=5", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"transactions":[]`)
	})

	t.Run("Invalid limit", func(t *testing.T) {
		svc := new(MockWalletService)

		w := httptest.NewRecorder()
		newWalletRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/wallet/m1?limit=lots", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Balance", mock.Anything, mock.Anything)
	})

	t.Run("Unknown member", func(t *testing.T) {
		svc := new(MockWalletService)
		svc.On("Balance", mock.Anything, "ghost").Return(int64(0), domain.ErrMemberNotFound)

		w := httptest.NewRecorder()
		newWalletRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/wallet/ghost", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
