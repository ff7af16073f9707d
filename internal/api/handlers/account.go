package handlers

import (
	"log/slog"
	"net/http"
)

type AccountHandler struct {
	platform Platform
	logger   *slog.Logger
}

func NewAccountHandler(platform Platform, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{platform: platform, logger: logger}
}

func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	info, err := h.platform.GetAccountInfo(r.Context())
	if err != nil {
		writeError(w, h.logger, "account.Me", err)
		return
	}
	if info == nil {
		http.Error(w, "Account not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, info)
}

func (h *AccountHandler) Payment(w http.ResponseWriter, r *http.Request) {
	payment, err := h.platform.GetDefaultPayment(r.Context())
	if err != nil {
		writeError(w, h.logger, "account.Payment", err)
		return
	}
	if payment == nil {
		http.Error(w, "No default payment method", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, payment)
}
