package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"trivia-client/internal/domain"
)

// ErrClosed is returned by sends after the connection is gone.
var ErrClosed = errors.New("websocket client closed")

// Client is the game-session connection. It decodes inbound envelopes into
// Events and serializes all writes through a single writer goroutine.
// Outbound sends are fire-and-forget: there is no acknowledgement retry.
type Client struct {
	conn   *websocket.Conn
	events chan Event
	send   chan any
	done   chan struct{}
	once   sync.Once
}

// Dial connects to the game server. clientID, when set, is passed as a query
// parameter so the server can recognize the participant across reconnects.
func Dial(ctx context.Context, rawURL, clientID string) (*Client, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	if clientID != "" {
		q := u.Query()
		q.Set("clientId", clientID)
		u.RawQuery = q.Encode()
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, err
	}

	c := &Client{
		conn:   conn,
		events: make(chan Event, 16),
		send:   make(chan any, 16),
		done:   make(chan struct{}),
	}
	go c.readPump()
	go c.writePump()
	return c, nil
}

// Events returns the inbound event stream. The channel closes when the
// connection drops; recovery is a full redial and re-join.
func (c *Client) Events() <-chan Event {
	return c.events
}

// SendJoin requests entry to the session under the given display name.
func (c *Client) SendJoin(name string) error {
	if strings.TrimSpace(name) == "" {
		return domain.ErrEmptyName
	}
	return c.enqueue(outboundMessage[joinPayload]{Type: "join", Payload: joinPayload{Name: name}})
}

// SendAnswer submits the original (unshuffled) choice index for a question.
// Implements game.AnswerSender.
func (c *Client) SendAnswer(questionID string, choiceIndex int) error {
	return c.enqueue(outboundMessage[answerPayload]{
		Type:    "answer",
		Payload: answerPayload{QuestionID: questionID, ChoiceIndex: choiceIndex},
	})
}

// Close tears down the connection. Safe to call multiple times.
func (c *Client) Close() error {
	var err error
	c.once.Do(func() {
		close(c.done)
		err = c.conn.Close()
	})
	return err
}

func (c *Client) enqueue(msg any) error {
	select {
	case c.send <- msg:
		return nil
	case <-c.done:
		return ErrClosed
	}
}

func (c *Client) readPump() {
	defer close(c.events)
	for {
		var inbound inboundMessage
		if err := c.conn.ReadJSON(&inbound); err != nil {
			select {
			case <-c.done:
			default:
				log.Debug().Err(err).Msg("websocket read ended")
			}
			return
		}
		event, err := decode(inbound)
		if err != nil {
			log.Warn().Err(err).Str("type", inbound.Type).Msg("dropping malformed message")
			continue
		}
		if event == nil {
			log.Debug().Str("type", inbound.Type).Msg("ignoring unknown message type")
			continue
		}
		select {
		case c.events <- event:
		case <-c.done:
			return
		}
	}
}

func (c *Client) writePump() {
	for {
		select {
		case <-c.done:
			return
		case msg := <-c.send:
			if err := c.conn.WriteJSON(msg); err != nil {
				log.Warn().Err(err).Msg("websocket write failed")
				return
			}
		}
	}
}

func decode(inbound inboundMessage) (Event, error) {
	switch inbound.Type {
	case "joined":
		var p joinedPayload
		if err := json.Unmarshal(inbound.Payload, &p); err != nil {
			return nil, err
		}
		return JoinedEvent{Snapshot: p.toDomain()}, nil
	case "join_error":
		var p joinErrorPayload
		if err := json.Unmarshal(inbound.Payload, &p); err != nil {
			return nil, err
		}
		return JoinRejectedEvent{Reason: p.Reason}, nil
	case "question":
		var p questionPayload
		if err := json.Unmarshal(inbound.Payload, &p); err != nil {
			return nil, err
		}
		return QuestionEvent{Question: p.toDomain()}, nil
	case "reveal":
		var p revealPayload
		if err := json.Unmarshal(inbound.Payload, &p); err != nil {
			return nil, err
		}
		return RevealEvent{Reveal: p.toDomain()}, nil
	case "leaderboard":
		var p leaderboardPayload
		if err := json.Unmarshal(inbound.Payload, &p); err != nil {
			return nil, err
		}
		return LeaderboardEvent{Entries: entriesToDomain(p.Leaderboard)}, nil
	case "answer_result":
		var p answerResultPayload
		if err := json.Unmarshal(inbound.Payload, &p); err != nil {
			return nil, err
		}
		return AnswerOutcomeEvent{Outcome: p.toDomain()}, nil
	default:
		return nil, nil
	}
}
