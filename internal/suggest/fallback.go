package suggest

import (
	"fmt"
	"strings"

	"github.com/lox/songbots/internal/personality"
)

// EmergencyQuestion is the last resort when both the provider and the
// personality bank fail to produce a question.
var EmergencyQuestion = QuestionIdea{
	Text:     "What song instantly puts you in a good mood?",
	Category: "mood",
}

type fallbackBucket struct {
	keywords []string
	songs    []Candidate
}

// FallbackSongs returns deterministic answers for a credential-less
// provider, keyed by personality and by keywords in the question. The final
// bucket of each table has no keywords and always matches.
func FallbackSongs(p personality.Personality, question string) []Candidate {
	q := strings.ToLower(question)
	for _, bucket := range fallbackTable(p) {
		if len(bucket.keywords) == 0 {
			return bucket.songs
		}
		for _, kw := range bucket.keywords {
			if strings.Contains(q, kw) {
				return bucket.songs
			}
		}
	}
	return nil
}

func fallbackTable(p personality.Personality) []fallbackBucket {
	switch p {
	case personality.Analytical:
		return []fallbackBucket{
			{keywords: []string{"love", "heart"}, songs: []Candidate{
				{Artist: "The Beatles", Title: "Something", Reason: "widely cited as a definitive love song"},
				{Artist: "Etta James", Title: "At Last", Reason: "a precise expression of the theme"},
			}},
			{keywords: []string{"sad", "cry", "lost"}, songs: []Candidate{
				{Artist: "Johnny Cash", Title: "Hurt", Reason: "an exacting study of regret"},
				{Artist: "R.E.M.", Title: "Everybody Hurts", Reason: "addresses the theme directly"},
			}},
			{songs: []Candidate{
				{Artist: "Queen", Title: "Bohemian Rhapsody", Reason: "structurally the most analysed pop song"},
				{Artist: "The Beach Boys", Title: "God Only Knows", Reason: "harmonically exemplary"},
			}},
		}
	case personality.Mainstream:
		return []fallbackBucket{
			{keywords: []string{"dance", "party", "move"}, songs: []Candidate{
				{Artist: "ABBA", Title: "Dancing Queen", Reason: "everyone knows it"},
				{Artist: "Whitney Houston", Title: "I Wanna Dance with Somebody", Reason: "a guaranteed floor-filler"},
			}},
			{keywords: []string{"love", "heart"}, songs: []Candidate{
				{Artist: "Ed Sheeran", Title: "Perfect", Reason: "a modern wedding standard"},
				{Artist: "Elvis Presley", Title: "Can't Help Falling in Love", Reason: "a classic everyone sings along to"},
			}},
			{songs: []Candidate{
				{Artist: "Journey", Title: "Don't Stop Believin'", Reason: "the crowd-pleaser"},
				{Artist: "Michael Jackson", Title: "Billie Jean", Reason: "a global number one"},
			}},
		}
	case personality.Eclectic:
		return []fallbackBucket{
			{keywords: []string{"night", "dark"}, songs: []Candidate{
				{Artist: "Nick Drake", Title: "Pink Moon", Reason: "a deep cut with the right atmosphere"},
				{Artist: "Portishead", Title: "Glory Box", Reason: "nocturnal and underappreciated"},
			}},
			{songs: []Candidate{
				{Artist: "Talking Heads", Title: "This Must Be the Place", Reason: "a left-field pick that always lands"},
				{Artist: "Television", Title: "Marquee Moon", Reason: "the connoisseur's answer"},
			}},
		}
	case personality.Nostalgic:
		return []fallbackBucket{
			{keywords: []string{"summer", "sun"}, songs: []Candidate{
				{Artist: "The Beach Boys", Title: "Good Vibrations", Reason: "summer as it used to sound"},
				{Artist: "Bryan Adams", Title: "Summer of '69", Reason: "pure nostalgia"},
			}},
			{songs: []Candidate{
				{Artist: "Fleetwood Mac", Title: "Dreams", Reason: "they don't write them like this anymore"},
				{Artist: "Simon & Garfunkel", Title: "The Sound of Silence", Reason: "a timeless classic"},
			}},
		}
	case personality.Chaotic:
		return []fallbackBucket{
			{songs: []Candidate{
				{Artist: "Talking Heads", Title: "Burning Down the House", Reason: "why not"},
				{Artist: "They Might Be Giants", Title: "Istanbul (Not Constantinople)", Reason: "nobody expects it"},
			}},
		}
	}
	panic(fmt.Sprintf("personality %q has no fallback table", p))
}

// FallbackQuestions is the personality-keyed bank used when the provider
// cannot propose a next-round question.
func FallbackQuestions(p personality.Personality) []QuestionIdea {
	switch p {
	case personality.Analytical:
		return []QuestionIdea{
			{Text: "What song has the best opening ten seconds?", Category: "craft"},
			{Text: "What song tells the most complete story?", Category: "craft"},
		}
	case personality.Mainstream:
		return []QuestionIdea{
			{Text: "What song gets the whole room singing along?", Category: "party"},
			{Text: "What song belongs at the top of every wedding playlist?", Category: "party"},
		}
	case personality.Eclectic:
		return []QuestionIdea{
			{Text: "What song deserves to be famous but isn't?", Category: "discovery"},
			{Text: "What song sounds like 3am in an unfamiliar city?", Category: "mood"},
		}
	case personality.Nostalgic:
		return []QuestionIdea{
			{Text: "What song takes you straight back to being a teenager?", Category: "memory"},
			{Text: "What song did your parents play that you secretly loved?", Category: "memory"},
		}
	case personality.Chaotic:
		return []QuestionIdea{
			{Text: "What song would you play to confuse an alien?", Category: "absurd"},
			{Text: "What song should never be played at a funeral but would be hilarious?", Category: "absurd"},
		}
	}
	panic(fmt.Sprintf("personality %q has no question bank", p))
}
