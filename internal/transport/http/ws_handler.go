package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"kickoff-hq/internal/app"
	"kickoff-hq/internal/domain"
)

type WSHandler struct {
	service  *app.GameService
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.GameService, logger *zap.Logger) *WSHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WSHandler{
		service: service,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type selectPayload struct {
	OptionID string `json:"optionId"`
}

type mutePayload struct {
	Muted bool `json:"muted"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type statePayload struct {
	State    domain.SessionState    `json:"state"`
	Applied  bool                   `json:"applied"`
	Scenario *app.ScenarioView      `json:"scenario,omitempty"`
	Progress *domain.ProgressRecord `json:"progress,omitempty"`
	Muted    bool                   `json:"muted"`
}

type cuePayload struct {
	Cue domain.Cue `json:"cue"`
	URL string     `json:"url"`
}

type burstPayload struct {
	Kind domain.Burst `json:"kind"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// feedbackQueue forwards cues and bursts to the writer without ever
// blocking the game; commands are dropped when the client lags.
type feedbackQueue struct {
	send   chan<- outboundMessage[any]
	logger *zap.Logger
}

func (q feedbackQueue) PlaySound(cue domain.Cue, assetURL string) {
	q.offer(outboundMessage[any]{Type: "cue", Payload: cuePayload{Cue: cue, URL: assetURL}})
}

func (q feedbackQueue) ShowBurst(kind domain.Burst) {
	q.offer(outboundMessage[any]{Type: "burst", Payload: burstPayload{Kind: kind}})
}

func (q feedbackQueue) offer(msg outboundMessage[any]) {
	select {
	case q.send <- msg:
	default:
		q.logger.Debug("feedback dropped", zap.String("type", msg.Type))
	}
}

// ServeWS upgrades HTTP requests to websockets and drives one game instance
// per connection; closing the socket discards the in-progress run.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("gameId")
	playerID := r.URL.Query().Get("playerId")
	if gameID == "" || playerID == "" {
		http.Error(w, "missing gameId or playerId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	log := h.logger.With(
		zap.String("conn_id", uuid.NewString()),
		zap.String("player_id", playerID),
		zap.String("game_id", gameID),
	)

	send := make(chan outboundMessage[any], 32)
	feedback := feedbackQueue{send: send, logger: log}
	sound := h.service.Sound(playerID, feedback)

	game, err := h.service.Open(r.Context(), playerID, gameID, app.FeedbackEffects{Sound: sound, Bursts: feedback})
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	defer h.service.Close(playerID, game)
	log.Info("game connected")

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Warn("ws write error", zap.Error(err))
				// Keep draining so the reader never blocks on a dead socket.
				for range send {
				}
				return
			}
		}
	}()

	state := func(st domain.SessionState, applied bool) outboundMessage[any] {
		payload := statePayload{State: st, Applied: applied, Muted: sound.Muted(r.Context())}
		if view, ok := game.Current(); ok {
			payload.Scenario = &view
		}
		if st.Phase == domain.PhaseFinished {
			if rec, ok := game.Record(); ok {
				payload.Progress = &rec
			}
		}
		return outboundMessage[any]{Type: "state", Payload: payload}
	}

	send <- state(game.State(), true)

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		h.service.Touch(playerID, game)
		switch inbound.Type {
		case "start":
			st, ok := game.Start(r.Context())
			send <- state(st, ok)
		case "select":
			var payload selectPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid select payload"}}
				continue
			}
			st, ok := game.SelectOption(r.Context(), payload.OptionID)
			send <- state(st, ok)
		case "advance":
			st, ok := game.Advance(r.Context())
			send <- state(st, ok)
		case "reset":
			send <- state(game.Reset(), true)
		case "mute":
			var payload mutePayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid mute payload"}}
				continue
			}
			sound.SetMuted(r.Context(), payload.Muted)
			send <- state(game.State(), true)
		default:
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: domain.ErrUnknownAction.Error()}}
		}
	}

	close(send)
	<-writerDone
	log.Info("game disconnected", zap.String("phase", string(game.State().Phase)))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrGameNotFound), errors.Is(err, domain.ErrDeckNotFound), errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrProgressNotLoaded):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
