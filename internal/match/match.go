// Package match scores catalog entries against free-text song candidates.
// Artist similarity gates acceptance; title similarity only ranks, because
// catalog titles vary far more than artist names do.
package match

import (
	"strings"

	"github.com/lox/songbots/internal/gameapi"
	"github.com/lox/songbots/internal/suggest"
)

const (
	artistExactScore   = 100
	artistPartialScore = 50
	titleExactScore    = 80
	titlePartialScore  = 40
	variantPenalty     = 30
)

// nonCanonicalMarkers flag catalog variants that are rarely the recording a
// player means.
var nonCanonicalMarkers = []string{"live", "instrumental", "karaoke", "cover", "remix", "tribute"}

// Match is a scored catalog entry for one candidate.
type Match struct {
	Entry gameapi.CatalogEntry
	Score int

	// artistHit records whether the artist matched exactly or partially;
	// acceptance is gated on it alone.
	artistHit bool
}

// BestMatch returns the highest-scoring catalog entry for the candidate.
// Ties keep the first-seen entry. The second return value is false when
// entries is empty.
func BestMatch(entries []gameapi.CatalogEntry, cand suggest.Candidate) (Match, bool) {
	var best Match
	found := false
	for _, entry := range entries {
		m := score(entry, cand)
		if !found || m.Score > best.Score {
			best = m
			found = true
		}
	}
	return best, found
}

// Acceptable reports whether the match is good enough to submit: the artist
// must have matched at least partially.
func Acceptable(m Match) bool {
	return m.artistHit
}

func score(entry gameapi.CatalogEntry, cand suggest.Candidate) Match {
	m := Match{Entry: entry}

	entryArtist := normalizeArtist(entry.Artist)
	candArtist := normalizeArtist(cand.Artist)
	switch {
	case entryArtist == candArtist && entryArtist != "":
		m.Score += artistExactScore
		m.artistHit = true
	case partial(entryArtist, candArtist):
		m.Score += artistPartialScore
		m.artistHit = true
	}

	entryTitle := strings.ToLower(strings.TrimSpace(entry.Title))
	candTitle := strings.ToLower(strings.TrimSpace(cand.Title))
	switch {
	case entryTitle == candTitle && entryTitle != "":
		m.Score += titleExactScore
	case partial(entryTitle, candTitle):
		m.Score += titlePartialScore
	}

	for _, marker := range nonCanonicalMarkers {
		if strings.Contains(entryTitle, marker) {
			m.Score -= variantPenalty
			break
		}
	}
	return m
}

// normalizeArtist lowercases and strips the decorations that most often
// differ between a free-text answer and the catalog: a leading "the" and a
// trailing "band".
func normalizeArtist(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "the ")
	s = strings.TrimSuffix(s, " band")
	return strings.TrimSpace(s)
}

func partial(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
