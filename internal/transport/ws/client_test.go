package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"trivia-client/internal/domain"
)

func TestClientJoinAnswerRoundTrip(t *testing.T) {
	upgrader := websocket.Upgrader{}
	clientIDs := make(chan string, 1)
	answers := make(chan map[string]any, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		clientIDs <- r.URL.Query().Get("clientId")
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()

		var join struct {
			Type    string `json:"type"`
			Payload struct {
				Name string `json:"name"`
			} `json:"payload"`
		}
		if err := conn.ReadJSON(&join); err != nil {
			t.Errorf("read join: %v", err)
			return
		}
		if join.Type != "join" || join.Payload.Name != "Alice" {
			t.Errorf("unexpected join message: %+v", join)
			return
		}

		endsAt := time.Now().Add(10 * time.Second).UnixMilli()
		_ = conn.WriteJSON(map[string]any{
			"type": "joined",
			"payload": map[string]any{
				"self": map[string]any{
					"id": "u1", "name": "Alice", "lockedUntilQuestionId": "q0",
				},
				"phase": "waiting",
				"leaderboard": []map[string]any{
					{"id": "u1", "name": "Alice", "score": 0},
				},
			},
		})
		_ = conn.WriteJSON(map[string]any{
			"type": "question",
			"payload": map[string]any{
				"id": "q1", "text": "Capital of France?", "category": "Geography",
				"choices": []string{"Paris", "Lyon"}, "endsAt": endsAt,
			},
		})
		// Reveal without a correctIndex must decode as unknown (-1).
		_ = conn.WriteJSON(map[string]any{
			"type": "reveal",
			"payload": map[string]any{
				"id": "q1", "text": "Capital of France?",
				"choices": []string{"Paris", "Lyon"},
			},
		})

		var answer struct {
			Type    string         `json:"type"`
			Payload map[string]any `json:"payload"`
		}
		if err := conn.ReadJSON(&answer); err != nil {
			t.Errorf("read answer: %v", err)
			return
		}
		if answer.Type != "answer" {
			t.Errorf("expected answer, got %s", answer.Type)
			return
		}
		answers <- answer.Payload
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	u := "ws" + server.URL[len("http"):] + "/ws"
	client, err := Dial(context.Background(), u, "client-1")
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer client.Close()

	if got := <-clientIDs; got != "client-1" {
		t.Fatalf("expected clientId passed on dial, got %q", got)
	}

	if err := client.SendJoin("Alice"); err != nil {
		t.Fatalf("send join: %v", err)
	}

	joined, ok := nextEvent(t, client).(JoinedEvent)
	if !ok {
		t.Fatalf("expected JoinedEvent")
	}
	if joined.Snapshot.Self.UserID != "u1" || joined.Snapshot.Self.LockedUntilQuestionID != "q0" {
		t.Fatalf("unexpected snapshot self: %+v", joined.Snapshot.Self)
	}
	if joined.Snapshot.Phase != domain.PhaseWaiting {
		t.Fatalf("expected waiting phase, got %s", joined.Snapshot.Phase)
	}

	question, ok := nextEvent(t, client).(QuestionEvent)
	if !ok {
		t.Fatalf("expected QuestionEvent")
	}
	if question.Question.ID != "q1" || len(question.Question.Choices) != 2 {
		t.Fatalf("unexpected question: %+v", question.Question)
	}
	if question.Question.EndsAt.IsZero() {
		t.Fatalf("expected endsAt converted from epoch millis")
	}

	reveal, ok := nextEvent(t, client).(RevealEvent)
	if !ok {
		t.Fatalf("expected RevealEvent")
	}
	if reveal.Reveal.CorrectIndex != -1 {
		t.Fatalf("expected missing correctIndex to decode as -1, got %d", reveal.Reveal.CorrectIndex)
	}

	if err := client.SendAnswer("q1", 0); err != nil {
		t.Fatalf("send answer: %v", err)
	}
	payload := <-answers
	if payload["questionId"] != "q1" || payload["choiceIndex"] != float64(0) {
		t.Fatalf("unexpected answer payload: %+v", payload)
	}
}

func TestClientRejectsEmptyJoinName(t *testing.T) {
	c := &Client{send: make(chan any, 1), done: make(chan struct{})}
	if err := c.SendJoin("   "); err != domain.ErrEmptyName {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
}

func TestEventsChannelClosesWithConnection(t *testing.T) {
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conn.Close()
	}))
	defer server.Close()

	client, err := Dial(context.Background(), "ws"+server.URL[len("http"):], "")
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer client.Close()

	select {
	case _, open := <-client.Events():
		if open {
			t.Fatalf("expected closed events channel")
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("events channel did not close")
	}
}

func nextEvent(t *testing.T, client *Client) Event {
	t.Helper()
	select {
	case ev, ok := <-client.Events():
		if !ok {
			t.Fatalf("events channel closed early")
		}
		return ev
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for event")
		return nil
	}
}
