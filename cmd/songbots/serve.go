package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/lox/songbots/cmd/songbots/shared"
	"github.com/lox/songbots/internal/bot"
	"github.com/lox/songbots/internal/gameapi"
	"github.com/lox/songbots/internal/spawn"
	"github.com/lox/songbots/internal/suggest"
)

type ServeCmd struct {
	Config   string `kong:"default='songbots.hcl',help='Path to the HCL config file'"`
	LogLevel string `kong:"name='log-level',help='Override the configured log level'"`
}

func (c *ServeCmd) Run() error {
	cfg, err := spawn.LoadConfig(c.Config)
	if err != nil {
		return err
	}
	level := cfg.Server.LogLevel
	if c.LogLevel != "" {
		level = c.LogLevel
	}

	logger := shared.SetupLogger(level)
	workerLogger := shared.SetupWorkerLogger(level)
	ctx := shared.SetupSignalHandlerWithLogger(logger)

	factory := func(s bot.Session) *bot.Worker {
		api := gameapi.NewClient(cfg.Game.APIURL, s.GameID, s.SessionToken, workerLogger)
		provider := suggest.NewOpenAI(cfg.OpenAI.APIKey, cfg.OpenAI.Model, s.Personality, workerLogger)
		opts := bot.Options{}
		if cfg.Worker.InvocationBudgetSeconds > 0 {
			opts.InvocationBudget = time.Duration(cfg.Worker.InvocationBudgetSeconds) * time.Second
			opts.Continuer = spawn.NewHTTPContinuer("http://" + cfg.Server.Address + "/bots/resume")
		}
		return bot.NewWorker(s, api, provider, workerLogger, opts)
	}

	launcher := spawn.NewInProcessLauncher(ctx, factory, logger)
	service := spawn.NewService(cfg, launcher, logger)

	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: service.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("address", cfg.Server.Address).Msg("Spawn service listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server shutdown failed")
	}
	launcher.Wait()
	return nil
}
