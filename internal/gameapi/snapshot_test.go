package gameapi

import (
	"testing"
	"time"
)

func votingSnapshot(players int) *Snapshot {
	s := &Snapshot{Phase: PhaseVoting}
	names := []string{"bot1", "p2", "p3", "p4"}
	for i := 0; i < players; i++ {
		s.Players = append(s.Players, Player{ID: names[i], Name: names[i]})
	}
	return s
}

func TestSubmissionByScansSnapshot(t *testing.T) {
	s := &Snapshot{Submissions: []Submission{
		{ID: "s1", PlayerID: "p2"},
		{ID: "s2", PlayerID: "bot1", Passed: true},
	}}
	sub := s.SubmissionBy("bot1")
	if sub == nil || sub.ID != "s2" {
		t.Fatalf("SubmissionBy returned %+v, want s2", sub)
	}
	if s.SubmissionBy("missing") != nil {
		t.Error("expected nil for a player with no submission")
	}
}

func TestHasVoted(t *testing.T) {
	s := &Snapshot{Submissions: []Submission{
		{ID: "s1", PlayerID: "p2", Votes: []string{"p3", "bot1"}},
	}}
	if !s.HasVoted("bot1") {
		t.Error("bot1 has voted")
	}
	if s.HasVoted("p4") {
		t.Error("p4 has not voted")
	}
}

func TestVotableForExcludesOwnInLargerGames(t *testing.T) {
	s := votingSnapshot(3)
	s.Submissions = []Submission{
		{ID: "own", PlayerID: "bot1"},
		{ID: "other", PlayerID: "p2"},
		{ID: "passed", PlayerID: "p3", Passed: true},
	}

	votable := s.VotableFor("bot1")
	if len(votable) != 1 || votable[0].ID != "other" {
		t.Fatalf("votable = %+v, want only the opponent's submission", votable)
	}
}

func TestVotableForIncludesOwnInSmallGames(t *testing.T) {
	s := votingSnapshot(2)
	s.Submissions = []Submission{
		{ID: "own", PlayerID: "bot1"},
		{ID: "other", PlayerID: "p2"},
	}

	votable := s.VotableFor("bot1")
	if len(votable) != 2 {
		t.Fatalf("votable = %+v, want both submissions in a heads-up game", votable)
	}
}

func TestVotableForSkipsPassed(t *testing.T) {
	s := votingSnapshot(2)
	s.Submissions = []Submission{
		{ID: "passed", PlayerID: "p2", Passed: true},
	}
	if got := s.VotableFor("bot1"); len(got) != 0 {
		t.Errorf("votable = %+v, want empty", got)
	}
}

func TestWinnerByVotesThenEarlierTimestamp(t *testing.T) {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s := &Snapshot{Submissions: []Submission{
		{ID: "late", PlayerID: "p2", Votes: []string{"a", "b"}, SubmittedAt: base.Add(10 * time.Second)},
		{ID: "early", PlayerID: "p3", Votes: []string{"c", "d"}, SubmittedAt: base},
		{ID: "fewer", PlayerID: "p4", Votes: []string{"e"}, SubmittedAt: base.Add(-time.Minute)},
	}}

	w := s.Winner()
	if w == nil || w.ID != "early" {
		t.Fatalf("winner = %+v, want the earlier of the tied submissions", w)
	}
}

func TestWinnerNilWhenAllPassed(t *testing.T) {
	s := &Snapshot{Submissions: []Submission{
		{ID: "s1", PlayerID: "p2", Passed: true},
		{ID: "s2", PlayerID: "p3", Passed: true},
	}}
	if w := s.Winner(); w != nil {
		t.Errorf("winner = %+v, want nil when everyone passed", w)
	}
}

func TestClaimedMatchesByIDAndByName(t *testing.T) {
	s := &Snapshot{Submissions: []Submission{
		{ID: "s1", PlayerID: "p2", Song: &Song{ID: "song-1", Artist: "Queen", Title: "Under Pressure"}},
		{ID: "s2", PlayerID: "p3", Passed: true, Song: &Song{ID: "song-2", Artist: "ABBA", Title: "SOS"}},
	}}

	if !s.Claimed("bot1", CatalogEntry{ID: "song-1", Artist: "X", Title: "Y"}) {
		t.Error("identical catalog id should be claimed")
	}
	if !s.Claimed("bot1", CatalogEntry{ID: "other", Artist: "queen", Title: "UNDER PRESSURE"}) {
		t.Error("case-insensitive artist+title should be claimed")
	}
	if s.Claimed("bot1", CatalogEntry{ID: "song-2", Artist: "ABBA", Title: "SOS"}) {
		t.Error("a passed submission does not claim a song")
	}
	if s.Claimed("p2", CatalogEntry{ID: "song-1"}) {
		t.Error("a player's own submission does not count as claimed")
	}
}

func TestInRosterAndReadiness(t *testing.T) {
	s := &Snapshot{Players: []Player{{ID: "bot1", Ready: true}, {ID: "p2"}}}
	if !s.InRoster("bot1") || s.InRoster("gone") {
		t.Error("roster lookup broken")
	}
	if !s.IsReady("bot1") || s.IsReady("p2") {
		t.Error("readiness lookup broken")
	}
}
