package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dom/whatnot-go/internal/domain"
	"github.com/dom/whatnot-go/internal/transport"
)

// Platform is the subset of the whatnot client the gateway serves.
type Platform interface {
	GetUser(ctx context.Context, username string) (*domain.User, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	GetUserLives(ctx context.Context, userID string, first int) ([]domain.LiveStream, error)
	GetLive(ctx context.Context, id string) (*domain.LiveStream, error)
	GetAccountInfo(ctx context.Context) (*domain.AccountInfo, error)
	GetDefaultPayment(ctx context.Context) (*domain.PaymentInfo, error)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps client errors to a status: auth failures are 401 and
// anything that went wrong talking to the platform is 502.
func writeError(w http.ResponseWriter, logger *slog.Logger, op string, err error) {
	var te *transport.TransportError
	switch {
	case errors.Is(err, domain.ErrAuthentication):
		http.Error(w, "Not logged in to the platform", http.StatusUnauthorized)
	case errors.As(err, &te):
		logger.Error("platform request failed", slog.String("op", op), slog.Any("error", err))
		http.Error(w, "Platform request failed", http.StatusBadGateway)
	default:
		logger.Error("request failed", slog.String("op", op), slog.Any("error", err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
