package app

import (
	"bufio"
	"context"
	"errors"
	"io"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"trivia-client/internal/domain"
	"trivia-client/internal/game"
	"trivia-client/internal/transport/ws"
)

// ProfileStore persists the participant identity between runs.
type ProfileStore interface {
	Load(ctx context.Context) (domain.Profile, error)
	Save(ctx context.Context, profile domain.Profile) error
}

// Session is the slice of the websocket client the runner drives.
type Session interface {
	Events() <-chan ws.Event
	SendJoin(name string) error
	SendAnswer(questionID string, choiceIndex int) error
	Close() error
}

// Dialer opens a fresh session. It is invoked again after every disconnect:
// recovery is a full re-join, never an incremental resync.
type Dialer func(ctx context.Context) (Session, error)

const (
	defaultReconnectWait = 2 * time.Second
	maxReconnectWait     = 30 * time.Second
)

var errQuit = errors.New("quit requested")

// Config wires a Runner.
type Config struct {
	Dialer        Dialer
	Profiles      ProfileStore
	Profile       domain.Profile
	Renderer      game.Renderer
	Input         io.Reader
	Clock         clockwork.Clock
	Rand          *rand.Rand
	TickPeriod    time.Duration
	ReconnectWait time.Duration
}

// Runner owns the single logical thread of the client: one loop consumes
// transport events and user input lines, each handled to completion before
// the next. The countdown ticker is the only other recurring activity.
type Runner struct {
	dial      Dialer
	profiles  ProfileStore
	profile   domain.Profile
	renderer  game.Renderer
	input     io.Reader
	clock     clockwork.Clock
	reconnect time.Duration

	rec     *game.Reconciler
	session Session
	joined  bool
}

func NewRunner(cfg Config) *Runner {
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	reconnect := cfg.ReconnectWait
	if reconnect <= 0 {
		reconnect = defaultReconnectWait
	}
	r := &Runner{
		dial:      cfg.Dialer,
		profiles:  cfg.Profiles,
		profile:   cfg.Profile,
		renderer:  cfg.Renderer,
		input:     cfg.Input,
		clock:     clock,
		reconnect: reconnect,
	}
	ticker := game.NewTicker(clock, cfg.TickPeriod, cfg.Renderer.ShowCountdown)
	r.rec = game.NewReconciler(cfg.Rand, cfg.Renderer, r, ticker)
	return r
}

// SendAnswer routes the reconciler's one-shot submission to the live session.
// Implements game.AnswerSender.
func (r *Runner) SendAnswer(questionID string, choiceIndex int) error {
	if r.session == nil {
		return domain.ErrNotJoined
	}
	return r.session.SendAnswer(questionID, choiceIndex)
}

// Run connects and processes the session until ctx is cancelled, the user
// quits, or input and connection are both gone. Disconnects trigger a redial
// with backoff and a fresh join.
func (r *Runner) Run(ctx context.Context) error {
	lines := make(chan string)
	// Detached on purpose: a blocking stdin read cannot be interrupted, so
	// the group must not wait on it.
	go r.readInput(lines)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := r.sessionLoop(ctx, lines)
		if errors.Is(err, errQuit) {
			return nil
		}
		return err
	})
	return g.Wait()
}

func (r *Runner) readInput(lines chan<- string) {
	defer close(lines)
	if r.input == nil {
		return
	}
	scanner := bufio.NewScanner(r.input)
	for scanner.Scan() {
		lines <- strings.TrimSpace(scanner.Text())
	}
}

func (r *Runner) sessionLoop(ctx context.Context, lines <-chan string) error {
	wait := r.reconnect
	for {
		session, err := r.dial(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Warn().Err(err).Dur("retry_in", wait).Msg("connect failed")
			if err := r.sleep(ctx, wait); err != nil {
				return err
			}
			wait = min(wait*2, maxReconnectWait)
			continue
		}
		wait = r.reconnect

		err = r.runSession(ctx, session, lines)
		_ = session.Close()
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Info().Dur("retry_in", wait).Msg("connection lost, rejoining")
		if err := r.sleep(ctx, wait); err != nil {
			return err
		}
	}
}

func (r *Runner) runSession(ctx context.Context, session Session, lines <-chan string) error {
	r.session = session
	r.joined = false
	defer func() { r.session = nil }()

	if r.profile.DisplayName != "" {
		// Auto-join with the saved name, like the original cookie flow.
		if err := session.SendJoin(r.profile.DisplayName); err != nil {
			log.Warn().Err(err).Msg("auto-join failed")
		}
	} else {
		r.renderer.ShowPhase(`Welcome! Set your name with "name <display name>" to join.`)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-session.Events():
			if !ok {
				return nil
			}
			r.handleEvent(ctx, event)
		case line, ok := <-lines:
			if !ok {
				lines = nil
				continue
			}
			if err := r.handleLine(ctx, line); err != nil {
				return err
			}
		}
	}
}

func (r *Runner) handleEvent(ctx context.Context, event ws.Event) {
	switch event := event.(type) {
	case ws.JoinedEvent:
		r.joined = true
		r.rec.HandleJoined(event.Snapshot)
		r.saveConfirmedName(ctx, event.Snapshot.Self.DisplayName)
	case ws.JoinRejectedEvent:
		r.rec.HandleJoinRejected(event.Reason)
	case ws.QuestionEvent:
		r.rec.HandleQuestion(event.Question)
	case ws.RevealEvent:
		r.rec.HandleReveal(event.Reveal)
	case ws.LeaderboardEvent:
		r.rec.HandleLeaderboard(event.Entries)
	case ws.AnswerOutcomeEvent:
		r.rec.HandleAnswerOutcome(event.Outcome)
	default:
		log.Debug().Type("event", event).Msg("unhandled event")
	}
}

func (r *Runner) handleLine(ctx context.Context, line string) error {
	if line == "" {
		return nil
	}
	fields := strings.Fields(line)
	switch fields[0] {
	case "quit", "exit":
		return errQuit
	case "name":
		name := strings.TrimSpace(strings.TrimPrefix(line, "name"))
		if name == "" {
			r.renderer.ShowJoinError("usage: name <display name>")
			return nil
		}
		r.profile.DisplayName = name
		if err := r.profiles.Save(ctx, r.profile); err != nil {
			log.Warn().Err(err).Msg("saving profile failed")
		}
		r.join()
	case "join":
		if r.profile.DisplayName == "" {
			r.renderer.ShowJoinError(`no saved name; use "name <display name>"`)
			return nil
		}
		r.join()
	default:
		pos, err := strconv.Atoi(fields[0])
		if err != nil {
			r.renderer.ShowResult(`commands: <choice number>, name <display name>, join, quit`)
			return nil
		}
		r.submit(pos - 1)
	}
	return nil
}

// join sends the join request once per connection; a session that is already
// joined ignores further attempts like the original join button did. The
// check is per connection, not the reconciler's phase: after a disconnect the
// old phase lingers, and a rejected auto-rejoin must leave the user able to
// retry with a new name.
func (r *Runner) join() {
	if r.joined {
		r.renderer.ShowResult("Already joined.")
		return
	}
	if err := r.session.SendJoin(r.profile.DisplayName); err != nil {
		r.renderer.ShowJoinError(err.Error())
	}
}

func (r *Runner) submit(displayPos int) {
	err := r.rec.SubmitAnswer(displayPos)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrAlreadyAnswered):
		r.renderer.ShowResult("You already answered this one.")
	case errors.Is(err, domain.ErrAnswerLocked):
		r.renderer.ShowResult("You answered this question before reconnecting.")
	case errors.Is(err, domain.ErrNoActiveQuestion), errors.Is(err, domain.ErrNotJoined):
		r.renderer.ShowResult("No question is open right now.")
	case errors.Is(err, domain.ErrChoiceOutOfRange):
		r.renderer.ShowResult("That choice does not exist.")
	default:
		log.Warn().Err(err).Msg("submit failed")
	}
}

func (r *Runner) saveConfirmedName(ctx context.Context, name string) {
	if name == "" || name == r.profile.DisplayName {
		return
	}
	r.profile.DisplayName = name
	if err := r.profiles.Save(ctx, r.profile); err != nil {
		log.Warn().Err(err).Msg("saving confirmed name failed")
	}
}

func (r *Runner) sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-r.clock.After(d):
		return nil
	}
}

// EnsureProfile loads the saved profile, creating one with a fresh client id
// on first run. The id is what lets the server re-issue the answer lock
// after a reconnect.
func EnsureProfile(ctx context.Context, store ProfileStore) (domain.Profile, error) {
	profile, err := store.Load(ctx)
	switch {
	case errors.Is(err, domain.ErrProfileNotFound):
		profile = domain.Profile{UserID: uuid.NewString()}
	case err != nil:
		return domain.Profile{}, err
	case profile.UserID != "":
		return profile, nil
	default:
		profile.UserID = uuid.NewString()
	}
	if err := store.Save(ctx, profile); err != nil {
		return domain.Profile{}, err
	}
	return profile, nil
}
