// Package gameapi is the client for the game authority: the external service
// that owns game state and validates every action. Snapshots fetched from it
// are the only source of truth a bot acts on.
package gameapi

import "time"

// Phase is one discrete stage of a game round.
type Phase string

const (
	PhaseWaiting           Phase = "waiting"
	PhaseSelecting         Phase = "selecting"
	PhaseVoting            Phase = "voting"
	PhaseResults           Phase = "results"
	PhaseQuestionSelection Phase = "question_selection"
	PhaseEnded             Phase = "ended"
)

// Player is a roster entry in a snapshot.
type Player struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Ready bool   `json:"ready"`
	Score int    `json:"score"`
}

// Question is the prompt players answer with a song.
type Question struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

// Song identifies a catalog track attached to a submission.
type Song struct {
	ID     string `json:"id"`
	Artist string `json:"artist"`
	Title  string `json:"title"`
}

// Submission is one player's answer (or explicit pass) for the current round.
type Submission struct {
	ID          string    `json:"id"`
	PlayerID    string    `json:"playerId"`
	Song        *Song     `json:"song,omitempty"`
	Passed      bool      `json:"passed"`
	Votes       []string  `json:"votes"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// Snapshot is the authoritative game state at fetch time. It is never
// mutated locally; every decision re-reads a fresh one before acting.
type Snapshot struct {
	GameID       string       `json:"gameId"`
	Code         string       `json:"code"`
	Phase        Phase        `json:"phase"`
	Players      []Player     `json:"players"`
	Question     *Question    `json:"question,omitempty"`
	Submissions  []Submission `json:"submissions"`
	NextQuestion *Question    `json:"nextQuestion,omitempty"`
}

// CatalogEntry is a searchable catalog track.
type CatalogEntry struct {
	ID     string `json:"id"`
	Artist string `json:"artist"`
	Title  string `json:"title"`
}

// Registration is the credential set issued when a bot joins a game.
type Registration struct {
	BotID        string `json:"botId"`
	GameID       string `json:"gameId"`
	SessionToken string `json:"sessionToken"`
}
