// Package bot runs one autonomous game participant: the phase state machine,
// the decision engine and the continuation controller that lets a session
// survive across bounded invocations.
package bot

import (
	"errors"
	"fmt"
	"time"

	"github.com/lox/songbots/internal/personality"
)

// Session is the complete payload a worker needs to run or resume a bot.
// It is created once at spawn time, immutable for the session's lifetime,
// and carried verbatim across continuations; everything else is rehydrated
// from fresh snapshots.
type Session struct {
	BotID        string                  `json:"botId"`
	BotName      string                  `json:"botName"`
	GameID       string                  `json:"gameId"`
	GameCode     string                  `json:"gameCode"`
	SessionToken string                  `json:"sessionToken"`
	Personality  personality.Personality `json:"personality"`
	CreatedAt    time.Time               `json:"createdAt"`
}

// Validate checks that the payload is complete enough to run a session.
func (s Session) Validate() error {
	if s.BotID == "" {
		return errors.New("session payload missing botId")
	}
	if s.GameID == "" {
		return errors.New("session payload missing gameId")
	}
	if s.SessionToken == "" {
		return errors.New("session payload missing sessionToken")
	}
	if _, err := personality.Parse(string(s.Personality)); err != nil {
		return fmt.Errorf("session payload: %w", err)
	}
	if s.CreatedAt.IsZero() {
		return errors.New("session payload missing createdAt")
	}
	return nil
}
