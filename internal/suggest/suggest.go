// Package suggest adapts an external completion service into the bot's
// decision pipeline. Every surface degrades: provider failures and
// unparsable output become "no opinion", never an error the caller has to
// handle, and a provider with no credentials answers from static
// personality-keyed tables without touching the network.
package suggest

import "context"

// Candidate is a proposed song answer before catalog matching.
type Candidate struct {
	Artist string `json:"artist"`
	Title  string `json:"title"`
	Reason string `json:"reason"`
}

// QuestionIdea is a proposed next-round question.
type QuestionIdea struct {
	Text     string `json:"question"`
	Category string `json:"category"`
}

// Verdict is the outcome of judging two submissions head to head.
type Verdict int

const (
	// VerdictNone means the judge had no usable opinion.
	VerdictNone Verdict = iota
	// VerdictOwn favours the bot's own submission.
	VerdictOwn
	// VerdictOther favours the opponent's submission.
	VerdictOther
)

// Provider produces suggestions for the decision engine. A nil slice, nil
// idea, VerdictNone or negative index all mean "no opinion"; callers fall
// back to heuristics.
type Provider interface {
	// SuggestSongs proposes up to n song answers to the question.
	SuggestSongs(ctx context.Context, question string, n int) ([]Candidate, error)

	// SuggestQuestion proposes one engaging next-round question.
	SuggestQuestion(ctx context.Context) (*QuestionIdea, error)

	// Judge compares the bot's own submission against an opponent's.
	Judge(ctx context.Context, question, own, other string) (Verdict, error)

	// PickBest chooses among opposing submissions, returning an index into
	// options or -1.
	PickBest(ctx context.Context, question string, options []string) (int, error)
}
