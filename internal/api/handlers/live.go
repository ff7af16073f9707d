package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dom/whatnot-go/internal/websocket"
	"github.com/go-chi/chi/v5"
	ws "github.com/gorilla/websocket"
)

var upgrader = ws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type LiveHandler struct {
	platform      Platform
	watchInterval time.Duration
	logger        *slog.Logger
}

func NewLiveHandler(platform Platform, watchInterval time.Duration, logger *slog.Logger) *LiveHandler {
	return &LiveHandler{
		platform:      platform,
		watchInterval: watchInterval,
		logger:        logger,
	}
}

func (h *LiveHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	live, err := h.platform.GetLive(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, "live.Get", err)
		return
	}
	if live == nil {
		http.Error(w, "Live stream not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, live)
}

// Watch upgrades to a websocket and streams snapshots of the live stream
// until it ends. Unknown streams are rejected before the upgrade.
func (h *LiveHandler) Watch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	live, err := h.platform.GetLive(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, "live.Watch", err)
		return
	}
	if live == nil {
		http.Error(w, "Live stream not found", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}

	h.logger.Info("watch started", slog.String("live_id", id))
	websocket.NewWatch(conn, h.platform, id, h.watchInterval, h.logger).Run(r.Context(), live)
	h.logger.Info("watch finished", slog.String("live_id", id))
}
