package http

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
	"kickoff-hq/internal/app"
)

// HubHandler serves the read-mostly JSON endpoints behind the hub and HQ dashboard.
type HubHandler struct {
	service *app.GameService
	logger  *zap.Logger
}

func NewHubHandler(service *app.GameService, logger *zap.Logger) *HubHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HubHandler{service: service, logger: logger}
}

// Register mounts the handler's routes on mux.
func (h *HubHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/games", h.games)
	mux.HandleFunc("GET /api/hub", h.hub)
	mux.HandleFunc("GET /api/progress/{gameId}", h.progress)
	mux.HandleFunc("GET /api/session/{gameId}", h.session)
	mux.HandleFunc("GET /api/sound", h.getSound)
	mux.HandleFunc("PUT /api/sound", h.putSound)
}

type progressResponse struct {
	GameID      string     `json:"gameId"`
	Completed   bool       `json:"completed"`
	Score       *int       `json:"score,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

type soundResponse struct {
	Muted bool `json:"muted"`
}

func (h *HubHandler) games(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Catalog())
}

func (h *HubHandler) hub(w http.ResponseWriter, r *http.Request) {
	playerID, ok := requirePlayer(w, r)
	if !ok {
		return
	}
	view, err := h.service.Hub(r.Context(), playerID)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *HubHandler) progress(w http.ResponseWriter, r *http.Request) {
	playerID, ok := requirePlayer(w, r)
	if !ok {
		return
	}
	gameID := r.PathValue("gameId")
	resp := progressResponse{GameID: gameID}
	if rec, found := h.service.Progress(r.Context(), playerID).Get(gameID); found {
		score := rec.Score
		resp.Completed = rec.Completed
		resp.Score = &score
		if !rec.CompletedAt.IsZero() {
			at := rec.CompletedAt
			resp.CompletedAt = &at
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *HubHandler) session(w http.ResponseWriter, r *http.Request) {
	playerID, ok := requirePlayer(w, r)
	if !ok {
		return
	}
	game, err := h.service.Game(playerID, r.PathValue("gameId"))
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, game.State())
}

func (h *HubHandler) getSound(w http.ResponseWriter, r *http.Request) {
	playerID, ok := requirePlayer(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, soundResponse{Muted: h.service.Sound(playerID, nil).Muted(r.Context())})
}

func (h *HubHandler) putSound(w http.ResponseWriter, r *http.Request) {
	playerID, ok := requirePlayer(w, r)
	if !ok {
		return
	}
	var body soundResponse
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	h.service.Sound(playerID, nil).SetMuted(r.Context(), body.Muted)
	w.WriteHeader(http.StatusNoContent)
}

func (h *HubHandler) fail(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", zap.Error(err))
	}
	http.Error(w, err.Error(), status)
}

func requirePlayer(w http.ResponseWriter, r *http.Request) (string, bool) {
	playerID := r.URL.Query().Get("playerId")
	if playerID == "" {
		http.Error(w, "missing playerId", http.StatusBadRequest)
		return "", false
	}
	return playerID, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
