// Package personality defines the closed set of bot personalities and the
// behaviour parameters derived from them. Every mapping is an exhaustive
// switch so an unmapped personality fails loudly instead of silently
// defaulting.
package personality

import (
	"fmt"
	"strings"
)

// Personality identifies one of the fixed bot temperaments.
type Personality string

const (
	Analytical Personality = "analytical"
	Mainstream Personality = "mainstream"
	Eclectic   Personality = "eclectic"
	Nostalgic  Personality = "nostalgic"
	Chaotic    Personality = "chaotic"
)

// All returns every known personality in a stable order.
func All() []Personality {
	return []Personality{Analytical, Mainstream, Eclectic, Nostalgic, Chaotic}
}

// Parse validates a user-supplied personality name.
func Parse(s string) (Personality, error) {
	p := Personality(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case Analytical, Mainstream, Eclectic, Nostalgic, Chaotic:
		return p, nil
	}
	return "", fmt.Errorf("unknown personality %q", s)
}

// Config holds the tuning knobs derived from a personality.
type Config struct {
	// DisplayName is the human-facing name prefix for spawned bots.
	DisplayName string

	// Creativity maps onto the completion provider's temperature.
	Creativity float32

	// Preference tags the kind of pick the personality leans toward and is
	// used as a tie-break hint in prompts and fallbacks.
	Preference string
}

// Config returns the tuning parameters for p.
func (p Personality) Config() Config {
	switch p {
	case Analytical:
		return Config{DisplayName: "Professor Beat", Creativity: 0.3, Preference: "precision"}
	case Mainstream:
		return Config{DisplayName: "Chart Topper", Creativity: 0.5, Preference: "popular"}
	case Eclectic:
		return Config{DisplayName: "Deep Cut", Creativity: 0.9, Preference: "obscure"}
	case Nostalgic:
		return Config{DisplayName: "Rewind Rita", Creativity: 0.6, Preference: "classic"}
	case Chaotic:
		return Config{DisplayName: "Wildcard", Creativity: 1.1, Preference: "surprise"}
	}
	panic(fmt.Sprintf("personality %q has no config", p))
}

// VoteBias parameterises the heuristic used when the suggestion provider
// cannot judge submissions.
type VoteBias struct {
	// OpponentProbability is the chance of voting for an opponent in a
	// heads-up game where self-voting is allowed.
	OpponentProbability float64

	// PrefersFamiliar selects whichever submission is by a well-known
	// artist before falling back to chance.
	PrefersFamiliar bool
}

// Bias returns the fallback voting heuristic for p.
func (p Personality) Bias() VoteBias {
	switch p {
	case Analytical:
		// Objectivity: usually concedes the vote to the opponent.
		return VoteBias{OpponentProbability: 0.7}
	case Mainstream:
		return VoteBias{OpponentProbability: 0.5, PrefersFamiliar: true}
	case Eclectic:
		return VoteBias{OpponentProbability: 0.5}
	case Nostalgic:
		return VoteBias{OpponentProbability: 0.6, PrefersFamiliar: true}
	case Chaotic:
		return VoteBias{OpponentProbability: 0.5}
	}
	panic(fmt.Sprintf("personality %q has no vote bias", p))
}
