package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/lox/songbots/internal/gameapi"
	"github.com/lox/songbots/internal/suggest"
)

// familiarArtists backs the "prefers familiar" voting heuristic.
var familiarArtists = []string{
	"the beatles", "queen", "michael jackson", "madonna", "elvis presley",
	"abba", "taylor swift", "beyonce", "ed sheeran", "adele", "u2",
	"coldplay", "whitney houston", "elton john", "david bowie", "prince",
	"bruce springsteen", "fleetwood mac", "stevie wonder", "rihanna",
}

// ChooseVote picks one submission from the snapshot's votable set for this
// bot. It asks the provider to judge and falls back to the personality
// heuristic when the provider has no opinion. Returns false when there is
// nothing to vote on.
func (e *Engine) ChooseVote(ctx context.Context, snap *gameapi.Snapshot) (string, bool) {
	votable := snap.VotableFor(e.botID)
	if len(votable) == 0 {
		return "", false
	}

	question := ""
	if snap.Question != nil {
		question = snap.Question.Text
	}

	var own *gameapi.Submission
	var others []gameapi.Submission
	for i := range votable {
		if votable[i].PlayerID == e.botID {
			own = &votable[i]
		} else {
			others = append(others, votable[i])
		}
	}

	// Small game where self-voting is allowed: judge our submission against
	// the opponent's head to head.
	if own != nil && len(others) > 0 {
		other := &others[0]
		verdict, _ := e.provider.Judge(ctx, question, describeSubmission(own), describeSubmission(other))
		switch verdict {
		case suggest.VerdictOwn:
			return own.ID, true
		case suggest.VerdictOther:
			return other.ID, true
		}
		return e.headsUpFallback(own, other), true
	}
	if own != nil {
		return own.ID, true
	}

	if len(others) == 1 {
		return others[0].ID, true
	}
	options := make([]string, len(others))
	for i := range others {
		options[i] = describeSubmission(&others[i])
	}
	if idx, _ := e.provider.PickBest(ctx, question, options); idx >= 0 && idx < len(others) {
		return others[idx].ID, true
	}
	return e.pickFallback(others), true
}

// headsUpFallback applies the personality heuristic when the judge had no
// opinion: familiarity first where the personality cares, then a biased
// coin toss between self and opponent.
func (e *Engine) headsUpFallback(own, other *gameapi.Submission) string {
	bias := e.p.Bias()
	if bias.PrefersFamiliar {
		if isFamiliar(other.Song) {
			return other.ID
		}
		if isFamiliar(own.Song) {
			return own.ID
		}
	}
	if e.rng.Float64() < bias.OpponentProbability {
		return other.ID
	}
	return own.ID
}

func (e *Engine) pickFallback(subs []gameapi.Submission) string {
	if e.p.Bias().PrefersFamiliar {
		for i := range subs {
			if isFamiliar(subs[i].Song) {
				return subs[i].ID
			}
		}
	}
	return subs[e.rng.IntN(len(subs))].ID
}

func isFamiliar(song *gameapi.Song) bool {
	if song == nil {
		return false
	}
	artist := strings.ToLower(strings.TrimSpace(song.Artist))
	artist = strings.TrimPrefix(artist, "the ")
	for _, known := range familiarArtists {
		if artist == strings.TrimPrefix(known, "the ") {
			return true
		}
	}
	return false
}

func describeSubmission(sub *gameapi.Submission) string {
	if sub.Song == nil {
		return "(no song)"
	}
	return fmt.Sprintf("%q by %s", sub.Song.Title, sub.Song.Artist)
}
