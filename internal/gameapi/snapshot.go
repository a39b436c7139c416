package gameapi

import (
	"sort"
	"strings"
)

// selfVoteThreshold is the roster size at which a bot may no longer vote for
// its own submission.
const selfVoteThreshold = 3

// InRoster reports whether the player is still part of the game.
func (s *Snapshot) InRoster(playerID string) bool {
	_, ok := s.PlayerByID(playerID)
	return ok
}

// PlayerByID looks up a roster entry.
func (s *Snapshot) PlayerByID(playerID string) (Player, bool) {
	for _, p := range s.Players {
		if p.ID == playerID {
			return p, true
		}
	}
	return Player{}, false
}

// IsReady reports whether the player has signalled readiness.
func (s *Snapshot) IsReady(playerID string) bool {
	p, ok := s.PlayerByID(playerID)
	return ok && p.Ready
}

// SubmissionBy returns the player's submission for the current round, passed
// or not, or nil. Idempotency markers are always derived from this scan, so a
// resumed worker with no memory of prior actions stays correct.
func (s *Snapshot) SubmissionBy(playerID string) *Submission {
	for i := range s.Submissions {
		if s.Submissions[i].PlayerID == playerID {
			return &s.Submissions[i]
		}
	}
	return nil
}

// HasVoted reports whether the player has cast a vote in the current round.
func (s *Snapshot) HasVoted(playerID string) bool {
	for _, sub := range s.Submissions {
		for _, voter := range sub.Votes {
			if voter == playerID {
				return true
			}
		}
	}
	return false
}

// VotableFor returns the submissions the player may vote on: all non-passed
// submissions, excluding the player's own unless the game is small enough
// that self-voting is permitted.
func (s *Snapshot) VotableFor(playerID string) []Submission {
	allowSelf := len(s.Players) < selfVoteThreshold
	var out []Submission
	for _, sub := range s.Submissions {
		if sub.Passed {
			continue
		}
		if sub.PlayerID == playerID && !allowSelf {
			continue
		}
		out = append(out, sub)
	}
	return out
}

// Winner returns the round's winning submission: most votes, ties broken by
// the earliest submission. Returns nil when every player passed.
func (s *Snapshot) Winner() *Submission {
	var ranked []Submission
	for _, sub := range s.Submissions {
		if !sub.Passed {
			ranked = append(ranked, sub)
		}
	}
	if len(ranked) == 0 {
		return nil
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if len(ranked[i].Votes) != len(ranked[j].Votes) {
			return len(ranked[i].Votes) > len(ranked[j].Votes)
		}
		return ranked[i].SubmittedAt.Before(ranked[j].SubmittedAt)
	})
	return &ranked[0]
}

// Claimed reports whether the catalog entry is already taken by another
// player's non-passed submission, matching by catalog id or by exact
// case-insensitive artist and title.
func (s *Snapshot) Claimed(playerID string, entry CatalogEntry) bool {
	for _, sub := range s.Submissions {
		if sub.Passed || sub.PlayerID == playerID || sub.Song == nil {
			continue
		}
		if sub.Song.ID == entry.ID {
			return true
		}
		if strings.EqualFold(sub.Song.Artist, entry.Artist) && strings.EqualFold(sub.Song.Title, entry.Title) {
			return true
		}
	}
	return false
}
