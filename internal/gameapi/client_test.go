package gameapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/lox/songbots/internal/retry"
)

func testClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	logger := log.NewWithOptions(io.Discard, log.Options{})
	client := NewClient(srv.URL, "game-1", "tok-123", logger,
		WithRetry(retry.Config{MaxAttempts: 1}))
	return client, srv
}

func TestSnapshotSendsBearerToken(t *testing.T) {
	var gotAuth, gotPath string
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(Snapshot{GameID: "game-1", Phase: PhaseSelecting})
	}))

	snap, err := client.Snapshot(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Bearer tok-123", gotAuth)
	require.Equal(t, "/api/games/game-1", gotPath)
	require.Equal(t, PhaseSelecting, snap.Phase)
}

func TestSubmitConflictMapsToErrConflict(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))

	err := client.SubmitSong(context.Background(), "song-1")
	require.True(t, errors.Is(err, ErrConflict), "expected ErrConflict, got %v", err)
}

func TestVotePostsSubmissionID(t *testing.T) {
	var body map[string]any
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/games/game-1/votes", r.URL.Path)
		json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusOK)
	}))

	require.NoError(t, client.Vote(context.Background(), "sub-9"))
	require.Equal(t, "sub-9", body["submissionId"])
}

func TestSearchCatalogDegradesToEmptyOnFailure(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	results, err := client.SearchCatalog(context.Background(), "queen pressure", 10)
	require.NoError(t, err, "catalog failures must not surface as errors")
	require.Empty(t, results)
}

func TestSearchCatalogDecodesResults(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "queen", r.URL.Query().Get("q"))
		require.Equal(t, "5", r.URL.Query().Get("limit"))
		json.NewEncoder(w).Encode(map[string]any{
			"results": []CatalogEntry{{ID: "1", Artist: "Queen", Title: "Under Pressure"}},
		})
	}))

	results, err := client.SearchCatalog(context.Background(), "queen", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "Queen", results[0].Artist)
}

func TestRegisterReturnsCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/games/register", r.URL.Path)
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		require.Equal(t, "ABCD", body["gameCode"])
		json.NewEncoder(w).Encode(Registration{BotID: "b1", GameID: "g1", SessionToken: "tok"})
	}))
	defer srv.Close()

	reg, err := Register(context.Background(), srv.URL, retry.Config{MaxAttempts: 1}, "ABCD", "Wildcard-1234")
	require.NoError(t, err)
	require.Equal(t, "b1", reg.BotID)
	require.Equal(t, "tok", reg.SessionToken)
}
