package bot

import (
	"context"
	rand "math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/songbots/internal/gameapi"
	"github.com/lox/songbots/internal/randutil"
	"github.com/lox/songbots/internal/suggest"
)

// GameAPI is the slice of the game authority client the worker consumes.
type GameAPI interface {
	Snapshot(ctx context.Context) (*gameapi.Snapshot, error)
	Ready(ctx context.Context) error
	SubmitSong(ctx context.Context, songID string) error
	Pass(ctx context.Context) error
	Vote(ctx context.Context, submissionID string) error
	SetNextQuestion(ctx context.Context, q gameapi.Question) error
	SearchCatalog(ctx context.Context, query string, limit int) ([]gameapi.CatalogEntry, error)
}

// Continuer hands a session off to a fresh invocation before the execution
// host's time limit is reached. Implementations must be fire-and-forget; the
// resumed invocation rehydrates everything from the payload and a fresh
// snapshot.
type Continuer interface {
	Continue(ctx context.Context, s Session) error
}

// Status is the terminal state of one invocation of a session.
type Status string

const (
	// StatusEnded means the game finished normally.
	StatusEnded Status = "ended"
	// StatusRemoved means the bot is no longer in the roster.
	StatusRemoved Status = "removed"
	// StatusStalled means the phase did not change within the stall ceiling.
	StatusStalled Status = "stalled"
	// StatusExpired means the session exceeded its absolute age ceiling.
	StatusExpired Status = "expired"
	// StatusContinued means the session was handed off to a new invocation.
	StatusContinued Status = "continued"
	// StatusAborted means the invocation's context was cancelled.
	StatusAborted Status = "aborted"
)

// DelayRange bounds a human-like delay before an action.
type DelayRange struct {
	Min, Max time.Duration
}

// Options tunes a worker. Zero values take the defaults below.
type Options struct {
	Clock     quartz.Clock
	Rand      *rand.Rand
	Continuer Continuer

	// PollInterval is the sleep between polls; ErrorInterval is the longer
	// sleep after a failed snapshot fetch.
	PollInterval  time.Duration
	ErrorInterval time.Duration

	// StallCeiling is the longest a session may sit in one phase before it
	// is abandoned. MaxSessionAge is the absolute session lifetime.
	StallCeiling  time.Duration
	MaxSessionAge time.Duration

	// InvocationBudget is how long a single invocation may run before the
	// worker hands off to the Continuer. It should already include a safety
	// margin below the host's hard limit. Zero disables handoff.
	InvocationBudget time.Duration

	ReadyDelay    DelayRange
	SubmitDelay   DelayRange
	VoteDelay     DelayRange
	QuestionDelay DelayRange
}

const (
	defaultPollInterval  = 2 * time.Second
	defaultErrorInterval = 5 * time.Second
	defaultStallCeiling  = 15 * time.Minute
	defaultMaxSessionAge = 24 * time.Hour
)

func (o Options) withDefaults() Options {
	if o.Clock == nil {
		o.Clock = quartz.NewReal()
	}
	if o.Rand == nil {
		o.Rand = randutil.New(time.Now().UnixNano())
	}
	if o.PollInterval == 0 {
		o.PollInterval = defaultPollInterval
	}
	if o.ErrorInterval == 0 {
		o.ErrorInterval = defaultErrorInterval
	}
	if o.StallCeiling == 0 {
		o.StallCeiling = defaultStallCeiling
	}
	if o.MaxSessionAge == 0 {
		o.MaxSessionAge = defaultMaxSessionAge
	}
	if o.ReadyDelay == (DelayRange{}) {
		o.ReadyDelay = DelayRange{2 * time.Second, 5 * time.Second}
	}
	if o.SubmitDelay == (DelayRange{}) {
		o.SubmitDelay = DelayRange{4 * time.Second, 12 * time.Second}
	}
	if o.VoteDelay == (DelayRange{}) {
		o.VoteDelay = DelayRange{3 * time.Second, 11 * time.Second}
	}
	if o.QuestionDelay == (DelayRange{}) {
		o.QuestionDelay = DelayRange{3 * time.Second, 8 * time.Second}
	}
	return o
}

// Worker drives one bot session: poll a snapshot, dispatch on the phase,
// evaluate the exit conditions, repeat. All cross-invocation state lives in
// the Session payload and the snapshot itself.
type Worker struct {
	session Session
	api     GameAPI
	engine  *Engine
	opts    Options
	clock   quartz.Clock
	rng     *rand.Rand
	logger  *log.Logger

	invocationStart time.Time
	phaseStart      time.Time
	currentPhase    gameapi.Phase

	// inFlight is the single-flight guard: at most one delayed action may
	// be pending, so a second poll cannot double-fire an action the
	// snapshot does not show yet.
	inFlight atomic.Bool

	// actionDone receives a token after each delayed action completes.
	actionDone chan struct{}
}

// NewWorker builds a worker for the session.
func NewWorker(session Session, api GameAPI, provider suggest.Provider, logger *log.Logger, opts Options) *Worker {
	opts = opts.withDefaults()
	logger = logger.WithPrefix("bot").With("bot", session.BotName, "game", session.GameCode)
	return &Worker{
		session:    session,
		api:        api,
		engine:     NewEngine(api, provider, session.BotID, session.Personality, opts.Rand, logger),
		opts:       opts,
		clock:      opts.Clock,
		rng:        opts.Rand,
		logger:     logger,
		actionDone: make(chan struct{}, 1),
	}
}

// Run polls until one of the exit conditions trips or the session is handed
// off. It never returns an error: a session that cannot make progress
// degrades to passing every round and eventually hits a controller ceiling.
func (w *Worker) Run(ctx context.Context) Status {
	now := w.clock.Now()
	w.invocationStart = now
	w.phaseStart = now

	w.logger.Info("session invocation started",
		"personality", w.session.Personality,
		"sessionAge", now.Sub(w.session.CreatedAt).Round(time.Second))

	for {
		snap, err := w.api.Snapshot(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return StatusAborted
			}
			w.logger.Warn("snapshot fetch failed", "error", err)
			if status, done := w.checkClocks(); done {
				return status
			}
			if !w.sleep(ctx, w.opts.ErrorInterval) {
				return StatusAborted
			}
			continue
		}

		if snap.Phase != w.currentPhase {
			w.logger.Info("phase changed", "from", w.currentPhase, "to", snap.Phase)
			w.currentPhase = snap.Phase
			w.phaseStart = w.clock.Now()
		}

		if w.dispatch(ctx, snap) {
			return StatusEnded
		}

		if !snap.InRoster(w.session.BotID) {
			w.logger.Info("no longer in roster, terminating")
			return StatusRemoved
		}
		if status, done := w.checkClocks(); done {
			return status
		}
		if w.shouldHandOff() {
			return w.handOff(ctx)
		}

		if !w.sleep(ctx, w.opts.PollInterval) {
			return StatusAborted
		}
	}
}

// checkClocks enforces the stall ceiling and the absolute session age.
func (w *Worker) checkClocks() (Status, bool) {
	if w.clock.Since(w.phaseStart) > w.opts.StallCeiling {
		// An abandoned game, not an error.
		w.logger.Warn("phase stalled beyond ceiling, abandoning session",
			"phase", w.currentPhase, "ceiling", w.opts.StallCeiling)
		return StatusStalled, true
	}
	if w.clock.Since(w.session.CreatedAt) > w.opts.MaxSessionAge {
		w.logger.Warn("session exceeded maximum age, terminating")
		return StatusExpired, true
	}
	return "", false
}

func (w *Worker) shouldHandOff() bool {
	return w.opts.InvocationBudget > 0 &&
		w.opts.Continuer != nil &&
		w.clock.Since(w.invocationStart) >= w.opts.InvocationBudget
}

// handOff issues exactly one continuation request and stops this
// invocation. In-flight delayed actions are abandoned; that is safe because
// every idempotency check is derived from the snapshot, not process memory.
func (w *Worker) handOff(ctx context.Context) Status {
	w.logger.Info("invocation budget reached, handing off",
		"invocationElapsed", w.clock.Since(w.invocationStart).Round(time.Second))
	if err := w.opts.Continuer.Continue(ctx, w.session); err != nil {
		w.logger.Error("continuation request failed", "error", err)
		return StatusAborted
	}
	return StatusContinued
}

// schedule runs fn once after a human-like delay, guarded so that only one
// delayed action can be outstanding at a time.
func (w *Worker) schedule(ctx context.Context, name string, d DelayRange, fn func(ctx context.Context)) {
	if !w.inFlight.CompareAndSwap(false, true) {
		return
	}
	delay := randutil.Between(w.rng, d.Min, d.Max)
	w.logger.Debug("scheduling action", "action", name, "delay", delay)
	w.clock.AfterFunc(delay, func() {
		defer func() {
			w.inFlight.Store(false)
			select {
			case w.actionDone <- struct{}{}:
			default:
			}
		}()
		fn(ctx)
	})
}

func (w *Worker) sleep(ctx context.Context, d time.Duration) bool {
	timer := w.clock.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
