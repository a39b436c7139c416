package suggest

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ParseCandidates extracts song candidates from free-form completion output.
// It first tries the JSON array the prompt asked for, then falls back to a
// tolerant line-by-line scrape for artist/title/reason markers. Returns at
// most n candidates; nil when nothing usable was found.
func ParseCandidates(raw string, n int) []Candidate {
	cands := parseCandidateJSON(raw)
	if len(cands) == 0 {
		cands = scrapeCandidates(raw)
	}
	out := cands[:0]
	for _, c := range cands {
		if strings.TrimSpace(c.Artist) == "" || strings.TrimSpace(c.Title) == "" {
			continue
		}
		out = append(out, c)
		if len(out) == n {
			break
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func parseCandidateJSON(raw string) []Candidate {
	payload := sliceBetween(raw, '[', ']')
	if payload == "" {
		return nil
	}
	var cands []Candidate
	if err := json.Unmarshal([]byte(payload), &cands); err != nil {
		return nil
	}
	return cands
}

// scrapeCandidates recovers candidates from prose-shaped output. A new
// "artist:" marker starts a candidate; "title:" and "reason:"/"why:" fill in
// the current one.
func scrapeCandidates(raw string) []Candidate {
	var cands []Candidate
	var cur *Candidate
	for _, line := range strings.Split(raw, "\n") {
		line = strings.Trim(line, " \t-*0123456789.)")
		switch {
		case hasMarker(line, "artist"):
			if cur != nil && cur.Artist != "" && cur.Title != "" {
				cands = append(cands, *cur)
			}
			cur = &Candidate{Artist: markerValue(line)}
		case hasMarker(line, "title") || hasMarker(line, "song"):
			if cur == nil {
				cur = &Candidate{}
			}
			cur.Title = markerValue(line)
		case hasMarker(line, "reason") || hasMarker(line, "why"):
			if cur != nil {
				cur.Reason = markerValue(line)
			}
		}
	}
	if cur != nil && cur.Artist != "" && cur.Title != "" {
		cands = append(cands, *cur)
	}
	return cands
}

// ParseQuestionIdea extracts a question proposal, or nil.
func ParseQuestionIdea(raw string) *QuestionIdea {
	if payload := sliceBetween(raw, '{', '}'); payload != "" {
		var idea QuestionIdea
		if err := json.Unmarshal([]byte(payload), &idea); err == nil && strings.TrimSpace(idea.Text) != "" {
			if idea.Category == "" {
				idea.Category = "general"
			}
			return &idea
		}
	}
	// Settle for the first line that looks like a question.
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasSuffix(line, "?") {
			return &QuestionIdea{Text: line, Category: "general"}
		}
	}
	return nil
}

// ParseVerdict interprets a head-to-head judgement.
func ParseVerdict(raw string) Verdict {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case s == "a" || strings.HasPrefix(s, "a ") || strings.HasPrefix(s, "a."):
		return VerdictOwn
	case s == "b" || strings.HasPrefix(s, "b ") || strings.HasPrefix(s, "b."):
		return VerdictOther
	case strings.Contains(s, "opponent") || strings.Contains(s, `"b"`):
		return VerdictOther
	case strings.Contains(s, "yours") || strings.Contains(s, `"a"`):
		return VerdictOwn
	}
	return VerdictNone
}

// ParsePick extracts a 1-based option number and returns it as a 0-based
// index, or -1 when no number in range is present.
func ParsePick(raw string, n int) int {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r < '0' || r > '9'
	})
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err == nil && v >= 1 && v <= n {
			return v - 1
		}
	}
	return -1
}

func hasMarker(line, marker string) bool {
	return strings.HasPrefix(strings.ToLower(line), marker+":")
}

func markerValue(line string) string {
	_, value, found := strings.Cut(line, ":")
	if !found {
		return ""
	}
	return strings.Trim(value, ` "'`)
}

func sliceBetween(s string, open, shut byte) string {
	start := strings.IndexByte(s, open)
	end := strings.LastIndexByte(s, shut)
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}
