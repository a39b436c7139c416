package bot

import (
	"context"
	"errors"

	"github.com/lox/songbots/internal/gameapi"
)

// dispatch routes one poll to the handler for the snapshot's phase. Handler
// errors are logged and swallowed so one bad poll cannot corrupt the
// session. Returns true when the game has ended.
func (w *Worker) dispatch(ctx context.Context, snap *gameapi.Snapshot) bool {
	var err error
	switch snap.Phase {
	case gameapi.PhaseWaiting:
		err = w.handleWaiting(ctx, snap)
	case gameapi.PhaseSelecting:
		err = w.handleSelecting(ctx, snap)
	case gameapi.PhaseVoting:
		err = w.handleVoting(ctx, snap)
	case gameapi.PhaseResults:
		// Observation only.
		w.logger.Debug("observing results", "submissions", len(snap.Submissions))
	case gameapi.PhaseQuestionSelection:
		err = w.handleQuestionSelection(ctx, snap)
	case gameapi.PhaseEnded:
		w.logFinalScore(snap)
		return true
	default:
		w.logger.Warn("unknown phase", "phase", snap.Phase)
	}
	if err != nil {
		w.logger.Error("phase handler failed, taking no action this poll", "phase", snap.Phase, "error", err)
	}
	return false
}

// handleWaiting sends the ready signal after a short delay. Readiness is
// read from the snapshot each poll, never cached, so the handler is
// idempotent across polls and resumed invocations.
func (w *Worker) handleWaiting(ctx context.Context, snap *gameapi.Snapshot) error {
	if snap.IsReady(w.session.BotID) {
		return nil
	}
	w.schedule(ctx, "ready", w.opts.ReadyDelay, func(ctx context.Context) {
		fresh, err := w.api.Snapshot(ctx)
		if err == nil && fresh.IsReady(w.session.BotID) {
			return
		}
		if err := w.api.Ready(ctx); err != nil {
			w.logger.Warn("ready signal failed", "error", err)
			return
		}
		w.logger.Info("signalled ready")
	})
	return nil
}

// handleSelecting runs the answer pipeline after a delay, unless the
// snapshot already shows a submission for this bot.
func (w *Worker) handleSelecting(ctx context.Context, snap *gameapi.Snapshot) error {
	if snap.SubmissionBy(w.session.BotID) != nil {
		return nil
	}
	if snap.Question == nil {
		return nil
	}
	question := snap.Question.Text
	w.schedule(ctx, "submit", w.opts.SubmitDelay, func(ctx context.Context) {
		fresh, err := w.api.Snapshot(ctx)
		if err != nil {
			w.logger.Warn("pre-submit snapshot failed", "error", err)
			return
		}
		if fresh.Phase != gameapi.PhaseSelecting || fresh.SubmissionBy(w.session.BotID) != nil {
			return
		}
		w.submitAnswer(ctx, question)
	})
	return nil
}

// submitAnswer submits the engine's choice, retrying once with an
// alternative when the authority rejects the song as already claimed, and
// passing when no acceptable choice remains.
func (w *Worker) submitAnswer(ctx context.Context, question string) {
	entry, ok := w.engine.ChooseSong(ctx, question)
	if !ok {
		w.logger.Info("no acceptable song, passing")
		w.pass(ctx)
		return
	}

	err := w.api.SubmitSong(ctx, entry.ID)
	if errors.Is(err, gameapi.ErrConflict) {
		w.logger.Info("song already claimed, trying an alternative", "artist", entry.Artist, "title", entry.Title)
		alt, ok := w.engine.ChooseSong(ctx, question)
		if ok && alt.ID != entry.ID {
			if err := w.api.SubmitSong(ctx, alt.ID); err == nil {
				w.logger.Info("submitted song", "artist", alt.Artist, "title", alt.Title)
				return
			}
		}
		w.pass(ctx)
		return
	}
	if err != nil {
		w.logger.Warn("submit failed, passing", "error", err)
		w.pass(ctx)
		return
	}
	w.logger.Info("submitted song", "artist", entry.Artist, "title", entry.Title)
}

func (w *Worker) pass(ctx context.Context) {
	if err := w.api.Pass(ctx); err != nil {
		w.logger.Warn("pass failed", "error", err)
	}
}

// handleVoting casts one vote from the votable set after a delay, skipping
// when the snapshot already shows a vote by this bot.
func (w *Worker) handleVoting(ctx context.Context, snap *gameapi.Snapshot) error {
	if snap.HasVoted(w.session.BotID) {
		return nil
	}
	if len(snap.VotableFor(w.session.BotID)) == 0 {
		return nil
	}
	w.schedule(ctx, "vote", w.opts.VoteDelay, func(ctx context.Context) {
		fresh, err := w.api.Snapshot(ctx)
		if err != nil {
			w.logger.Warn("pre-vote snapshot failed", "error", err)
			return
		}
		if fresh.Phase != gameapi.PhaseVoting || fresh.HasVoted(w.session.BotID) {
			return
		}
		submissionID, ok := w.engine.ChooseVote(ctx, fresh)
		if !ok {
			return
		}
		err = w.api.Vote(ctx, submissionID)
		switch {
		case errors.Is(err, gameapi.ErrConflict):
			w.logger.Info("vote rejected as duplicate, skipping")
		case err != nil:
			w.logger.Warn("vote failed", "error", err)
		default:
			w.logger.Info("voted", "submission", submissionID)
		}
	})
	return nil
}

// handleQuestionSelection proposes the next question, but only when this bot
// won the round and no next question is set yet. The single-flight guard in
// schedule prevents a second attempt while a delayed one is pending.
func (w *Worker) handleQuestionSelection(ctx context.Context, snap *gameapi.Snapshot) error {
	if snap.NextQuestion != nil {
		return nil
	}
	winner := snap.Winner()
	if winner == nil || winner.PlayerID != w.session.BotID {
		return nil
	}
	w.schedule(ctx, "question", w.opts.QuestionDelay, func(ctx context.Context) {
		fresh, err := w.api.Snapshot(ctx)
		if err != nil {
			w.logger.Warn("pre-question snapshot failed", "error", err)
			return
		}
		if fresh.Phase != gameapi.PhaseQuestionSelection || fresh.NextQuestion != nil {
			return
		}
		q := w.engine.ProposeQuestion(ctx)
		if err := w.api.SetNextQuestion(ctx, q); err != nil {
			w.logger.Warn("setting next question failed", "error", err)
			return
		}
		w.logger.Info("proposed next question", "question", q.Text, "category", q.Category)
	})
	return nil
}

func (w *Worker) logFinalScore(snap *gameapi.Snapshot) {
	if p, ok := snap.PlayerByID(w.session.BotID); ok {
		w.logger.Info("game ended", "score", p.Score)
		return
	}
	w.logger.Info("game ended")
}
