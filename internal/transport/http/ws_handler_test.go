package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"kickoff-hq/internal/app"
	"kickoff-hq/internal/domain"
	"kickoff-hq/internal/infra/memory"
)

func TestWebSocketGameFlow(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	conn := dial(t, server, "football-iq", "p1")
	defer conn.Close()

	initial := readUntil(t, conn, "state")
	if initial.State.Phase != domain.PhaseNotStarted {
		t.Fatalf("expected not_started, got %s", initial.State.Phase)
	}

	send(t, conn, "start", nil)
	started := readUntil(t, conn, "state")
	if started.State.Phase != domain.PhaseInProgress || started.Scenario == nil {
		t.Fatalf("expected in-progress with scenario, got %+v", started)
	}
	if started.Scenario.CorrectOptionID != "" {
		t.Fatalf("answer leaked before selection")
	}

	send(t, conn, "select", map[string]any{"optionId": "b"})
	answered := readUntil(t, conn, "state")
	if answered.State.Score != 1 || answered.Scenario.Explanation == "" {
		t.Fatalf("expected score 1 with explanation, got %+v", answered)
	}

	send(t, conn, "advance", nil)
	finished := readUntil(t, conn, "state")
	if finished.State.Phase != domain.PhaseFinished {
		t.Fatalf("expected finished, got %s", finished.State.Phase)
	}
	if finished.Progress == nil || !finished.Progress.Completed || finished.Progress.Score != 1 {
		t.Fatalf("expected completion record, got %+v", finished.Progress)
	}

	resp, err := http.Get(server.URL + "/api/hub?playerId=p1")
	if err != nil {
		t.Fatalf("get hub: %v", err)
	}
	defer resp.Body.Close()
	var view domain.HubView
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		t.Fatalf("decode hub: %v", err)
	}
	if view.Stats.Completed != 1 || view.Stats.PerfectGames != 1 {
		t.Fatalf("expected one perfect completion, got %+v", view.Stats)
	}
}

func TestWebSocketDuplicateSelectIsIgnored(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	conn := dial(t, server, "football-iq", "p1")
	defer conn.Close()
	readUntil(t, conn, "state")

	send(t, conn, "start", nil)
	readUntil(t, conn, "state")
	send(t, conn, "select", map[string]any{"optionId": "a"})
	readUntil(t, conn, "state")
	send(t, conn, "select", map[string]any{"optionId": "b"})
	second := readUntil(t, conn, "state")

	if second.Applied || second.State.SelectedOptionID != "a" || second.State.Score != 0 {
		t.Fatalf("expected duplicate select ignored, got %+v", second)
	}
}

func TestWebSocketEmitsCuesUnlessMuted(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	conn := dial(t, server, "football-iq", "p1")
	defer conn.Close()
	readUntil(t, conn, "state")

	send(t, conn, "start", nil)
	msg := readMessage(t, conn)
	if msg.Type != "cue" {
		t.Fatalf("expected start cue first, got %s", msg.Type)
	}
	var cue cuePayload
	_ = json.Unmarshal(msg.Payload, &cue)
	if cue.Cue != domain.CueStart || !strings.HasSuffix(cue.URL, "/start.mp3") {
		t.Fatalf("unexpected cue %+v", cue)
	}
	readUntil(t, conn, "state")

	send(t, conn, "mute", map[string]any{"muted": true})
	muted := readUntil(t, conn, "state")
	if !muted.Muted {
		t.Fatalf("expected muted state")
	}
	send(t, conn, "select", map[string]any{"optionId": "a"})
	// A wrong answer with sound muted produces no cue, only state.
	if msg := readMessage(t, conn); msg.Type != "state" {
		t.Fatalf("expected state without cue, got %s", msg.Type)
	}
}

func TestWebSocketRejectsUnknownGame(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	conn := dial(t, server, "kicking-contest", "p1")
	defer conn.Close()
	if msg := readMessage(t, conn); msg.Type != "error" {
		t.Fatalf("expected error, got %s", msg.Type)
	}
}

func TestWebSocketRequiresParams(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	resp, err := http.Get(server.URL + "/ws?gameId=football-iq")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

type rawMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func newTestServer() *httptest.Server {
	service := newTestService()
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", NewWSHandler(service, nil).ServeWS)
	NewHubHandler(service, nil).Register(mux)
	return httptest.NewServer(mux)
}

func newTestService() *app.GameService {
	decks := memory.NewDeckRepository(memory.NewStaticDeckLoader([]domain.Deck{sampleDeck()}), time.Minute)
	catalog := []domain.GameInfo{{ID: "football-iq", Title: "Football IQ"}}
	return app.NewGameService(memory.NewSessionStore(), decks, memory.NewStorages().For, catalog, app.DefaultSoundAssets("/sounds"), nil)
}

func dial(t *testing.T, server *httptest.Server, gameID, playerID string) *websocket.Conn {
	t.Helper()
	u := "ws" + server.URL[len("http"):] + "/ws?gameId=" + gameID + "&playerId=" + playerID
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func send(t *testing.T, conn *websocket.Conn, typ string, payload any) {
	t.Helper()
	if err := conn.WriteJSON(map[string]any{"type": typ, "payload": payload}); err != nil {
		t.Fatalf("write %s: %v", typ, err)
	}
}

func readMessage(t *testing.T, conn *websocket.Conn) rawMessage {
	t.Helper()
	var msg rawMessage
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	return msg
}

// readUntil skips cue and burst messages up to the next message of type typ.
func readUntil(t *testing.T, conn *websocket.Conn, typ string) statePayload {
	t.Helper()
	for i := 0; i < 10; i++ {
		msg := readMessage(t, conn)
		if msg.Type == "error" {
			t.Fatalf("unexpected error message: %s", msg.Payload)
		}
		if msg.Type != typ {
			continue
		}
		var st statePayload
		if err := json.Unmarshal(msg.Payload, &st); err != nil {
			t.Fatalf("decode state: %v", err)
		}
		return st
	}
	t.Fatalf("no %s message received", typ)
	return statePayload{}
}

func sampleDeck() domain.Deck {
	return domain.Deck{
		GameID: "football-iq",
		Title:  "Football IQ",
		Scenarios: []domain.Scenario{
			{
				ID:     1,
				Prompt: domain.Prompt{Text: "How many points is a field goal?"},
				Options: []domain.Option{
					{ID: "a", Label: "1"},
					{ID: "b", Label: "3"},
					{ID: "c", Label: "6"},
				},
				CorrectOptionID: "b",
				Explanation:     "A field goal is worth three points.",
			},
		},
	}
}
