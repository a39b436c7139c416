package suggest

import (
	"fmt"
	"strings"

	"github.com/lox/songbots/internal/personality"
)

// voice returns the system prompt describing the personality's taste.
func voice(p personality.Personality) string {
	base := "You are a player in a song-trivia party game. Players answer a question with a real, well-known song, then vote on the best answer."
	switch p {
	case personality.Analytical:
		return base + " You are methodical and precise. You favour answers that fit the question literally and you explain your reasoning in one short clause."
	case personality.Mainstream:
		return base + " You love chart hits everyone knows. You pick famous songs by famous artists and avoid anything obscure."
	case personality.Eclectic:
		return base + " You are a crate-digger with adventurous taste. You reach for deep cuts and left-field picks that still answer the question."
	case personality.Nostalgic:
		return base + " You are sentimental about older music. You favour classics from past decades over anything current."
	case personality.Chaotic:
		return base + " You are unpredictable and playful. You pick surprising answers as long as they are real songs."
	}
	panic(fmt.Sprintf("personality %q has no voice", p))
}

func songsPrompt(question string, n int) string {
	return fmt.Sprintf(`The question is: %q

Propose %d real songs that answer it. Respond with only a JSON array, each element an object with "artist", "title" and "reason" fields. No other text.`, question, n)
}

func questionPrompt() string {
	return `Propose one engaging question for the next round. It must be answerable with a well-known song, e.g. "What song would you play at a road trip's start?". Respond with only a JSON object with "question" and "category" fields. No other text.`
}

func judgePrompt(question, own, other string) string {
	return fmt.Sprintf(`The question was: %q

Two answers were submitted:
A (yours): %s
B (opponent): %s

Judge impartially which answers the question better, ignoring whose it is. Respond with only "A" or "B".`, question, own, other)
}

func pickPrompt(question string, options []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The question was: %q\n\nThe submitted answers are:\n", question)
	for i, opt := range options {
		fmt.Fprintf(&b, "%d. %s\n", i+1, opt)
	}
	b.WriteString("\nWhich answers the question best? Respond with only its number.")
	return b.String()
}
