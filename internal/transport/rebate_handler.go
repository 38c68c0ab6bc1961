// Package transport exposes the settlement HTTP API.
package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/kaspa-settlement-backend/internal/model"
)

const defaultPaymentsLimit = 50

// RebateChecker answers rebate-eligibility queries.
type RebateChecker interface {
	FullRebate(ctx context.Context, wallet string) (bool, error)
}

// PaymentHistory serves per-wallet payout history.
type PaymentHistory interface {
	PaymentsByWallet(ctx context.Context, wallet string, limit int) ([]model.Payment, error)
}

// RebateHandler serves the public settlement endpoints.
type RebateHandler struct {
	checker RebateChecker
	history PaymentHistory
	logger  *zap.Logger
}

// NewRebateHandler returns a RebateHandler instance.
func NewRebateHandler(checker RebateChecker, history PaymentHistory, logger *zap.Logger) *RebateHandler {
	return &RebateHandler{
		checker: checker,
		history: history,
		logger:  logger,
	}
}

// Register mounts the handler's routes on the mux.
func (h *RebateHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /full_rebate/{wallet}", h.fullRebate)
	mux.HandleFunc("GET /payments/{wallet}", h.payments)
	mux.HandleFunc("GET /healthz", h.health)
}

type fullRebateResponse struct {
	Wallet     string `json:"wallet"`
	FullRebate bool   `json:"full_rebate"`
}

func (h *RebateHandler) fullRebate(w http.ResponseWriter, r *http.Request) {
	wallet := r.PathValue("wallet")
	if wallet == "" {
		http.Error(w, "wallet is required", http.StatusBadRequest)
		return
	}

	full, err := h.checker.FullRebate(r.Context(), wallet)
	if err != nil {
		h.logger.Error("full rebate check failed",
			zap.String("wallet", wallet),
			zap.Error(err))
		http.Error(w, "eligibility check failed", http.StatusBadGateway)
		return
	}

	h.writeJSON(w, fullRebateResponse{Wallet: wallet, FullRebate: full})
}

type paymentEntry struct {
	Amount          uint64 `json:"amount"`
	Timestamp       int64  `json:"timestamp"`
	TransactionHash string `json:"transaction_hash"`
}

type paymentsResponse struct {
	Wallet   string         `json:"wallet"`
	Payments []paymentEntry `json:"payments"`
}

func (h *RebateHandler) payments(w http.ResponseWriter, r *http.Request) {
	wallet := r.PathValue("wallet")
	if wallet == "" {
		http.Error(w, "wallet is required", http.StatusBadRequest)
		return
	}

	limit := defaultPaymentsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	rows, err := h.history.PaymentsByWallet(r.Context(), wallet, limit)
	if err != nil {
		h.logger.Error("payment history lookup failed",
			zap.String("wallet", wallet),
			zap.Error(err))
		http.Error(w, "history lookup failed", http.StatusInternalServerError)
		return
	}

	resp := paymentsResponse{Wallet: wallet, Payments: make([]paymentEntry, 0, len(rows))}
	for _, row := range rows {
		resp.Payments = append(resp.Payments, paymentEntry{
			Amount:          row.Amount,
			Timestamp:       row.Timestamp.Unix(),
			TransactionHash: row.TransactionHash,
		})
	}
	h.writeJSON(w, resp)
}

func (h *RebateHandler) health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, map[string]string{"status": "ok"})
}

func (h *RebateHandler) writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("encode response", zap.Error(err))
	}
}
