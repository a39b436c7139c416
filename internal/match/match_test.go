package match

import (
	"testing"

	"github.com/lox/songbots/internal/gameapi"
	"github.com/lox/songbots/internal/suggest"
)

func TestBestMatchPartialArtistViaTheStripping(t *testing.T) {
	entries := []gameapi.CatalogEntry{
		{ID: "1", Artist: "The Beatles", Title: "Hey Jude (Remastered)"},
	}
	cand := suggest.Candidate{Artist: "Beatles", Title: "Hey Jude"}

	m, ok := BestMatch(entries, cand)
	if !ok {
		t.Fatal("expected a match")
	}
	if m.Entry.ID != "1" {
		t.Errorf("matched entry %q, want 1", m.Entry.ID)
	}
	if !Acceptable(m) {
		t.Error("match should be acceptable via the-stripped artist equality")
	}
}

func TestBestMatchPrefersCanonicalVariant(t *testing.T) {
	entries := []gameapi.CatalogEntry{
		{ID: "live", Artist: "Queen", Title: "Somebody to Love (Live)"},
		{ID: "studio", Artist: "Queen", Title: "Somebody to Love"},
		{ID: "karaoke", Artist: "Queen", Title: "Somebody to Love (Karaoke Version)"},
	}
	cand := suggest.Candidate{Artist: "Queen", Title: "Somebody to Love"}

	m, ok := BestMatch(entries, cand)
	if !ok {
		t.Fatal("expected a match")
	}
	if m.Entry.ID != "studio" {
		t.Errorf("matched %q, want the studio version", m.Entry.ID)
	}
}

func TestBestMatchTiesKeepFirstSeen(t *testing.T) {
	entries := []gameapi.CatalogEntry{
		{ID: "first", Artist: "ABBA", Title: "Waterloo"},
		{ID: "second", Artist: "ABBA", Title: "Waterloo"},
	}
	cand := suggest.Candidate{Artist: "ABBA", Title: "Waterloo"}

	m, _ := BestMatch(entries, cand)
	if m.Entry.ID != "first" {
		t.Errorf("tie broke to %q, want first-seen entry", m.Entry.ID)
	}
}

func TestAcceptableGatesOnArtistOnly(t *testing.T) {
	// Title matches exactly but the artist is unrelated: rankable, not
	// submittable.
	entries := []gameapi.CatalogEntry{
		{ID: "1", Artist: "Completely Different", Title: "Hey Jude"},
	}
	m, ok := BestMatch(entries, suggest.Candidate{Artist: "Beatles", Title: "Hey Jude"})
	if !ok {
		t.Fatal("expected a match")
	}
	if m.Score <= 0 {
		t.Errorf("title-only match should still score, got %d", m.Score)
	}
	if Acceptable(m) {
		t.Error("match without an artist hit must not be acceptable")
	}
}

func TestBestMatchTrailingBandStripping(t *testing.T) {
	entries := []gameapi.CatalogEntry{
		{ID: "1", Artist: "Dave Matthews Band", Title: "Crash Into Me"},
	}
	m, ok := BestMatch(entries, suggest.Candidate{Artist: "Dave Matthews", Title: "Crash Into Me"})
	if !ok || !Acceptable(m) {
		t.Fatalf("expected an acceptable match, got %+v ok=%v", m, ok)
	}
}

func TestBestMatchEmptyCatalog(t *testing.T) {
	if _, ok := BestMatch(nil, suggest.Candidate{Artist: "ABBA", Title: "SOS"}); ok {
		t.Error("empty catalog must not match")
	}
}
