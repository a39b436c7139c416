package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lox/songbots/cmd/songbots/shared"
	"github.com/lox/songbots/internal/bot"
	"github.com/lox/songbots/internal/gameapi"
	"github.com/lox/songbots/internal/spawn"
	"github.com/lox/songbots/internal/suggest"
)

// EnvSession carries the session payload when no --payload flag is given,
// which is how a continuation invocation passes it in.
const EnvSession = "SONGBOTS_SESSION"

type WorkerCmd struct {
	Payload   string        `kong:"help='Path to the session payload JSON (- for stdin, default: SONGBOTS_SESSION env)'"`
	APIURL    string        `kong:"name='api-url',env='SONGBOTS_API_URL',default='http://localhost:8080',help='Game authority base URL'"`
	OpenAIKey string        `kong:"name='openai-key',env='OPENAI_API_KEY',help='Completion provider key (empty runs on fallback tables)'"`
	Model     string        `kong:"env='OPENAI_MODEL',help='Completion model'"`
	ResumeURL string        `kong:"name='resume-url',env='SONGBOTS_RESUME_URL',help='Continuation endpoint (empty disables handoff)'"`
	Budget    time.Duration `kong:"default='13m',help='Invocation budget before handing off'"`
	LogLevel  string        `kong:"name='log-level',default='info',help='Log level (debug|info|warn|error)'"`
}

func (c *WorkerCmd) Run() error {
	return c.runSession()
}

// ResumeCmd is the explicit resume entry point. Continuations carry an
// identical payload, so it shares the worker's implementation; keeping the
// command separate keeps start and resume distinguishable to the host.
type ResumeCmd struct {
	WorkerCmd
}

func (c *ResumeCmd) Run() error {
	return c.runSession()
}

func (c *WorkerCmd) runSession() error {
	logger := shared.SetupWorkerLogger(c.LogLevel)

	session, err := c.loadSession()
	if err != nil {
		return err
	}

	api := gameapi.NewClient(c.APIURL, session.GameID, session.SessionToken, logger)
	provider := suggest.NewOpenAI(c.OpenAIKey, c.Model, session.Personality, logger)

	opts := bot.Options{}
	if c.ResumeURL != "" {
		opts.Continuer = spawn.NewHTTPContinuer(c.ResumeURL)
		opts.InvocationBudget = c.Budget
	}

	ctx := shared.SetupSignalHandler()
	status := bot.NewWorker(*session, api, provider, logger, opts).Run(ctx)
	logger.Info("session invocation finished", "bot", session.BotName, "status", status)
	return nil
}

func (c *WorkerCmd) loadSession() (*bot.Session, error) {
	var raw []byte
	var err error
	switch {
	case c.Payload == "-":
		raw, err = io.ReadAll(os.Stdin)
	case c.Payload != "":
		raw, err = os.ReadFile(c.Payload)
	default:
		env := os.Getenv(EnvSession)
		if env == "" {
			return nil, fmt.Errorf("no session payload: pass --payload or set %s", EnvSession)
		}
		raw = []byte(env)
	}
	if err != nil {
		return nil, fmt.Errorf("read session payload: %w", err)
	}

	var session bot.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("parse session payload: %w", err)
	}
	if err := session.Validate(); err != nil {
		return nil, err
	}
	return &session, nil
}
