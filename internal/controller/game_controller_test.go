package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/agkaliel/browser-chess/internal/model"
	"github.com/agkaliel/browser-chess/internal/service"
	"github.com/agkaliel/browser-chess/internal/ws"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

func newTestApp() *fiber.App {
	gs := service.NewGameService(service.NewGameManager())
	app := fiber.New()
	Register(app, NewGameController(gs), NewWebSocketController(gs), websocket.Config{})
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, player, body string) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if player != "" {
		req.Header.Set("X-Player-ID", player)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	decoded := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("%s %s: decode %q: %v", method, path, raw, err)
		}
	}
	return resp.StatusCode, decoded
}

func createSeatedGame(t *testing.T, app *fiber.App) string {
	t.Helper()
	status, body := doRequest(t, app, http.MethodPost, "/api/game/create", "alice", "")
	if status != fiber.StatusCreated {
		t.Fatalf("create: expected 201, got %d %v", status, body)
	}
	gameID, _ := body["gameId"].(string)
	for _, player := range []string{"alice", "bob"} {
		if status, body := doRequest(t, app, http.MethodPost, "/api/game/join/"+gameID, player, ""); status != fiber.StatusOK {
			t.Fatalf("join %s: got %d %v", player, status, body)
		}
	}
	return gameID
}

func TestRequiresPlayerID(t *testing.T) {
	app := newTestApp()
	status, _ := doRequest(t, app, http.MethodPost, "/api/game/create", "", "")
	if status != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", status)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/game/create?playerId=alice", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("query player id: expected 201, got %d", resp.StatusCode)
	}
}

func TestHealthz(t *testing.T) {
	app := newTestApp()
	status, body := doRequest(t, app, http.MethodGet, "/healthz", "", "")
	if status != fiber.StatusOK || body["status"] != "ok" {
		t.Fatalf("unexpected health response %d %v", status, body)
	}
}

func TestGameFlow(t *testing.T) {
	app := newTestApp()
	gameID := createSeatedGame(t, app)
	base := "/api/game/" + gameID

	if status, body := doRequest(t, app, http.MethodPost, "/api/game/join/"+gameID, "carol", ""); status != fiber.StatusConflict {
		t.Fatalf("third player: expected 409, got %d %v", status, body)
	}

	status, body := doRequest(t, app, http.MethodGet, base+"/moves?square=e2", "alice", "")
	if status != fiber.StatusOK {
		t.Fatalf("moves: got %d %v", status, body)
	}
	if moves, _ := body["moves"].([]any); len(moves) != 2 {
		t.Fatalf("expected two pawn moves, got %v", body["moves"])
	}

	tests := []struct {
		name   string
		player string
		body   string
		status int
	}{
		{name: "wrong turn", player: "bob", body: `{"from":"e7","to":"e5"}`, status: fiber.StatusConflict},
		{name: "spectator", player: "carol", body: `{"from":"e2","to":"e4"}`, status: fiber.StatusForbidden},
		{name: "bad square", player: "alice", body: `{"from":"e2","to":"e0"}`, status: fiber.StatusBadRequest},
		{name: "illegal", player: "alice", body: `{"from":"e2","to":"e5"}`, status: fiber.StatusUnprocessableEntity},
		{name: "legal", player: "alice", body: `{"from":"e2","to":"e4"}`, status: fiber.StatusOK},
		{name: "reply", player: "bob", body: `{"from":"e7","to":"e5"}`, status: fiber.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := doRequest(t, app, http.MethodPost, base+"/move", tt.player, tt.body)
			if status != tt.status {
				t.Fatalf("expected %d, got %d %v", tt.status, status, body)
			}
		})
	}

	status, body = doRequest(t, app, http.MethodGet, base, "carol", "")
	if status != fiber.StatusOK {
		t.Fatalf("state: got %d", status)
	}
	if body["toMove"] != "white" || body["status"] != "ongoing" {
		t.Fatalf("unexpected state %v", body)
	}

	status, body = doRequest(t, app, http.MethodPost, base+"/reset", "bob", "")
	if status != fiber.StatusOK || body["lastMove"] != nil {
		t.Fatalf("reset: got %d %v", status, body)
	}
}

func TestCheckmateOverHTTP(t *testing.T) {
	app := newTestApp()
	gameID := createSeatedGame(t, app)
	base := "/api/game/" + gameID

	var body map[string]any
	for i, m := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		player := "alice"
		if i%2 == 1 {
			player = "bob"
		}
		var status int
		status, body = doRequest(t, app, http.MethodPost, base+"/move", player,
			fmt.Sprintf(`{"from":%q,"to":%q}`, m[:2], m[2:]))
		if status != fiber.StatusOK {
			t.Fatalf("%s: got %d %v", m, status, body)
		}
	}
	if body["status"] != "checkmate" || body["isCheck"] != true {
		t.Fatalf("expected checkmate, got %v", body)
	}
	status, _ := doRequest(t, app, http.MethodPost, base+"/move", "alice", `{"from":"e1","to":"f2"}`)
	if status != fiber.StatusConflict {
		t.Fatalf("move after mate: expected 409, got %d", status)
	}
}

func TestUnknownGame(t *testing.T) {
	app := newTestApp()
	for _, path := range []string{"/api/game/nope", "/api/game/nope/moves?square=e2"} {
		if status, _ := doRequest(t, app, http.MethodGet, path, "alice", ""); status != fiber.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", path, status)
		}
	}
}

func TestMatchmakingEndpoints(t *testing.T) {
	app := newTestApp()
	for _, player := range []string{"alice", "bob"} {
		status, body := doRequest(t, app, http.MethodPost, "/api/game/matchmaking/join", player, "")
		if status != fiber.StatusOK || body["status"] != "queued" {
			t.Fatalf("join %s: got %d %v", player, status, body)
		}
	}
	if status, _ := doRequest(t, app, http.MethodPost, "/api/game/matchmaking/join", "alice", ""); status != fiber.StatusConflict {
		t.Fatalf("duplicate join: expected 409, got %d", status)
	}
	if _, body := doRequest(t, app, http.MethodGet, "/api/game/matchmaking/status", "alice", ""); body["status"] != "queued" {
		t.Fatalf("expected queued, got %v", body)
	}
	if _, body := doRequest(t, app, http.MethodGet, "/api/game/matchmaking/status", "carol", ""); body["status"] != "idle" {
		t.Fatalf("expected idle, got %v", body)
	}
}

func TestWebSocketRouteRequiresUpgrade(t *testing.T) {
	app := newTestApp()
	status, _ := doRequestRaw(t, app, "/ws/game/abc", "alice")
	if status != fiber.StatusUpgradeRequired {
		t.Fatalf("expected 426, got %d", status)
	}
}

func doRequestRaw(t *testing.T, app *fiber.App, path, player string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("X-Player-ID", player)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(raw)
}

type recordingConn struct {
	messages []ws.Message
}

func (c *recordingConn) WriteJSON(v interface{}) error {
	c.messages = append(c.messages, v.(ws.Message))
	return nil
}

func TestHandleMessage(t *testing.T) {
	gs := service.NewGameService(service.NewGameManager())
	wsc := NewWebSocketController(gs)
	gameID, err := gs.CreateGame()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := gs.JoinGame(gameID, "alice"); err != nil {
		t.Fatal(err)
	}
	out := &recordingConn{}

	query, _ := ws.NewMessage(ws.MessageTypeLegalMoves, ws.LegalMovesRequest{Square: "b1"})
	if err := wsc.handleMessage(gameID, "alice", query, out); err != nil {
		t.Fatal(err)
	}
	if len(out.messages) != 1 || out.messages[0].Type != ws.MessageTypeLegalMoves {
		t.Fatalf("expected one legalMoves reply, got %+v", out.messages)
	}
	var reply ws.LegalMovesPayload
	if err := json.Unmarshal(out.messages[0].Payload, &reply); err != nil {
		t.Fatal(err)
	}
	if reply.Square != "b1" || len(reply.Moves) != 2 {
		t.Fatalf("unexpected reply %+v", reply)
	}

	move, _ := ws.NewMessage(ws.MessageTypeMove, ws.MovePayload{From: "b1", To: "c3"})
	if err := wsc.handleMessage(gameID, "alice", move, out); err != nil {
		t.Fatal(err)
	}
	snap, _ := gs.GetGameState(gameID)
	if snap.ToMove != model.Black {
		t.Fatalf("move not applied")
	}

	if err := wsc.handleMessage(gameID, "alice", move, out); !errors.Is(err, service.ErrNotYourTurn) {
		t.Fatalf("expected ErrNotYourTurn, got %v", err)
	}
	if err := wsc.handleMessage(gameID, "alice", ws.Message{Type: "resign"}, out); err == nil {
		t.Fatalf("unknown type accepted")
	}

	reset, _ := ws.NewMessage(ws.MessageTypeReset, struct{}{})
	if err := wsc.handleMessage(gameID, "alice", reset, out); err != nil {
		t.Fatal(err)
	}
	if snap, _ := gs.GetGameState(gameID); snap.ToMove != model.White {
		t.Fatalf("reset not applied")
	}
}

func TestSendErrorIsJSONString(t *testing.T) {
	out := &recordingConn{}
	sendError(out, service.ErrNotYourTurn)
	if len(out.messages) != 1 || out.messages[0].Type != ws.MessageTypeError {
		t.Fatalf("expected one error message, got %+v", out.messages)
	}
	var text string
	if err := json.Unmarshal(out.messages[0].Payload, &text); err != nil {
		t.Fatalf("payload is not a JSON string: %v", err)
	}
	if text != service.ErrNotYourTurn.Error() {
		t.Fatalf("unexpected error text %q", text)
	}
}
