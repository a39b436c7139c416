package spawn

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/lox/songbots/internal/bot"
)

// maxConcurrentSessions bounds how many bot sessions one service instance
// will run at a time. Launches beyond the limit queue.
const maxConcurrentSessions = 64

// WorkerFactory builds a ready-to-run worker for a session payload.
type WorkerFactory func(s bot.Session) *bot.Worker

// InProcessLauncher runs sessions as goroutines in this process. Each
// session is an isolated sequential task; the only shared state is the
// errgroup supervising them.
type InProcessLauncher struct {
	ctx     context.Context
	factory WorkerFactory
	group   *errgroup.Group
	logger  zerolog.Logger
}

// NewInProcessLauncher creates a launcher whose sessions stop when ctx is
// cancelled.
func NewInProcessLauncher(ctx context.Context, factory WorkerFactory, logger zerolog.Logger) *InProcessLauncher {
	g := &errgroup.Group{}
	g.SetLimit(maxConcurrentSessions)
	return &InProcessLauncher{
		ctx:     ctx,
		factory: factory,
		group:   g,
		logger:  logger.With().Str("component", "launcher").Logger(),
	}
}

// Launch starts the session in the background and logs its terminal status
// when it finishes.
func (l *InProcessLauncher) Launch(s bot.Session) {
	l.group.Go(func() error {
		status := l.factory(s).Run(l.ctx)
		l.logger.Info().
			Str("bot", s.BotName).
			Str("game", s.GameCode).
			Str("status", string(status)).
			Msg("Session finished")
		return nil
	})
}

// Wait blocks until every launched session has finished.
func (l *InProcessLauncher) Wait() {
	l.group.Wait()
}
