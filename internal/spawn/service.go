package spawn

import (
	"context"
	"net/http"
	"time"

	"github.com/coder/quartz"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lox/songbots/internal/bot"
	"github.com/lox/songbots/internal/gameapi"
	"github.com/lox/songbots/internal/personality"
	"github.com/lox/songbots/internal/retry"
)

// Registrar joins a game on behalf of a new bot and returns its credentials.
type Registrar func(ctx context.Context, gameCode, botName string) (*gameapi.Registration, error)

// Launcher runs a bot session. Launch must not block the HTTP handler.
type Launcher interface {
	Launch(s bot.Session)
}

// Service is the HTTP surface for spawning and resuming bot sessions.
type Service struct {
	cfg       *Config
	limiter   *WindowLimiter
	launcher  Launcher
	registrar Registrar
	clock     quartz.Clock
	logger    zerolog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithRegistrar overrides how bots register with the game authority.
func WithRegistrar(r Registrar) ServiceOption {
	return func(s *Service) { s.registrar = r }
}

// WithClock overrides the clock used by the rate limiter and payloads.
func WithClock(clock quartz.Clock) ServiceOption {
	return func(s *Service) { s.clock = clock }
}

// NewService builds the spawn service.
func NewService(cfg *Config, launcher Launcher, logger zerolog.Logger, opts ...ServiceOption) *Service {
	s := &Service{
		cfg:      cfg,
		launcher: launcher,
		clock:    quartz.NewReal(),
		logger:   logger.With().Str("component", "spawn").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.registrar == nil {
		// Registration gets its own retry policy, independent of the
		// session's game API client.
		cfg := retry.Config{MaxAttempts: 4, BaseDelay: time.Second}
		s.registrar = func(ctx context.Context, gameCode, botName string) (*gameapi.Registration, error) {
			return gameapi.Register(ctx, s.cfg.Game.APIURL, cfg, gameCode, botName)
		}
	}
	s.limiter = NewWindowLimiter(cfg.Limits.SpawnQuota, cfg.Limits.Window(), s.clock)
	return s
}

// Router returns the HTTP routes.
func (s *Service) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/bots", s.handleSpawn)
	r.POST("/bots/resume", s.handleResume)
	return r
}

type spawnRequest struct {
	GameCode    string `json:"gameCode" binding:"required"`
	Personality string `json:"personality" binding:"required"`
}

func (s *Service) handleSpawn(c *gin.Context) {
	var req spawnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "gameCode and personality are required"})
		return
	}
	p, err := personality.Parse(req.Personality)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !s.limiter.Allow() {
		s.logger.Warn().Str("game", req.GameCode).Msg("Spawn quota exceeded")
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "spawn quota exceeded, try again later"})
		return
	}

	botName := BotName(p)
	reg, err := s.registrar(c.Request.Context(), req.GameCode, botName)
	if err != nil {
		s.logger.Error().Err(err).Str("game", req.GameCode).Msg("Registration failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not join game"})
		return
	}

	session := bot.Session{
		BotID:        reg.BotID,
		BotName:      botName,
		GameID:       reg.GameID,
		GameCode:     req.GameCode,
		SessionToken: reg.SessionToken,
		Personality:  p,
		CreatedAt:    s.clock.Now().UTC(),
	}

	s.logger.Info().
		Str("bot", botName).
		Str("game", req.GameCode).
		Str("personality", string(p)).
		Msg("Spawning bot")
	s.launcher.Launch(session)

	c.JSON(http.StatusAccepted, gin.H{"botId": reg.BotID, "botName": botName})
}

// handleResume is the explicit resume entry point: it accepts a complete
// session payload from a continuation request and relaunches it. It is not
// rate limited; continuations are not new sessions.
func (s *Service) handleResume(c *gin.Context) {
	var session bot.Session
	if err := c.ShouldBindJSON(&session); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session payload"})
		return
	}
	if err := session.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.logger.Info().Str("bot", session.BotName).Str("game", session.GameCode).Msg("Resuming bot session")
	s.launcher.Launch(session)
	c.JSON(http.StatusAccepted, gin.H{"botId": session.BotID})
}

// BotName derives a display name from the personality plus a short unique
// suffix.
func BotName(p personality.Personality) string {
	return p.Config().DisplayName + "-" + uuid.NewString()[:8]
}
