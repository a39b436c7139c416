package bot

import (
	"context"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/songbots/internal/gameapi"
	"github.com/lox/songbots/internal/match"
	"github.com/lox/songbots/internal/personality"
	"github.com/lox/songbots/internal/suggest"
)

const (
	// candidateCount is how many song candidates we request per question.
	candidateCount = 5

	// catalogSearchLimit bounds each catalog lookup.
	catalogSearchLimit = 10
)

// Engine turns suggestions into concrete game actions: a song to submit, a
// vote to cast, a question to propose. It is purely advisory; the worker
// owns the API calls that act on its output, except for the catalog searches
// and claim-check snapshots the pipeline itself needs.
type Engine struct {
	api      GameAPI
	provider suggest.Provider
	botID    string
	p        personality.Personality
	rng      *rand.Rand
	logger   *log.Logger
}

// NewEngine builds a decision engine for one bot.
func NewEngine(api GameAPI, provider suggest.Provider, botID string, p personality.Personality, rng *rand.Rand, logger *log.Logger) *Engine {
	return &Engine{
		api:      api,
		provider: provider,
		botID:    botID,
		p:        p,
		rng:      rng,
		logger:   logger.WithPrefix("engine"),
	}
}

// ChooseSong runs the three-tier answer pipeline: provider candidates,
// catalog matching, claim re-verification. Returns false when the bot should
// pass instead.
func (e *Engine) ChooseSong(ctx context.Context, question string) (gameapi.CatalogEntry, bool) {
	candidates, err := e.provider.SuggestSongs(ctx, question, candidateCount)
	if err != nil || len(candidates) == 0 {
		return gameapi.CatalogEntry{}, false
	}

	// Shuffle so we don't always submit the provider's first suggestion.
	shuffled := make([]suggest.Candidate, len(candidates))
	copy(shuffled, candidates)
	e.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	for _, cand := range shuffled {
		entries, err := e.api.SearchCatalog(ctx, cand.Artist+" "+cand.Title, catalogSearchLimit)
		if err != nil || len(entries) == 0 {
			continue
		}
		m, ok := match.BestMatch(entries, cand)
		if !ok || !match.Acceptable(m) {
			e.logger.Debug("no acceptable catalog match", "artist", cand.Artist, "title", cand.Title)
			continue
		}

		// Re-verify against a fresh snapshot: another player may have
		// claimed the song while we were matching.
		fresh, err := e.api.Snapshot(ctx)
		if err != nil {
			continue
		}
		if fresh.Claimed(e.botID, m.Entry) {
			e.logger.Debug("song claimed meanwhile, trying next candidate",
				"artist", m.Entry.Artist, "title", m.Entry.Title)
			continue
		}
		return m.Entry, true
	}
	return gameapi.CatalogEntry{}, false
}

// ProposeQuestion returns the next-round question: a provider idea, a draw
// from the personality's fallback bank, or the fixed emergency question.
func (e *Engine) ProposeQuestion(ctx context.Context) gameapi.Question {
	if idea, err := e.provider.SuggestQuestion(ctx); err == nil && idea != nil {
		return gameapi.Question{Text: idea.Text, Category: idea.Category}
	}
	if bank := suggest.FallbackQuestions(e.p); len(bank) > 0 {
		idea := bank[e.rng.IntN(len(bank))]
		return gameapi.Question{Text: idea.Text, Category: idea.Category}
	}
	return gameapi.Question{Text: suggest.EmergencyQuestion.Text, Category: suggest.EmergencyQuestion.Category}
}
