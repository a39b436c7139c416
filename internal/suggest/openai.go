package suggest

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/lox/songbots/internal/personality"
	"github.com/lox/songbots/internal/retry"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-4o-mini"

// completionClient is the slice of the OpenAI client the adapter needs.
type completionClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAI is a Provider backed by a chat-completion endpoint. With no API key
// configured it never makes a network call and serves answers from the
// static fallback tables instead.
type OpenAI struct {
	client completionClient
	model  string
	p      personality.Personality
	retry  retry.Config
	logger *log.Logger
}

// NewOpenAI builds a provider for the given personality. An empty apiKey
// yields a credential-less provider that only uses fallback tables.
func NewOpenAI(apiKey, model string, p personality.Personality, logger *log.Logger) *OpenAI {
	if model == "" {
		model = DefaultModel
	}
	o := &OpenAI{
		model:  model,
		p:      p,
		retry:  retry.DefaultConfig(),
		logger: logger.WithPrefix("suggest"),
	}
	if apiKey != "" {
		o.client = openai.NewClient(apiKey)
	}
	return o
}

// SuggestSongs implements Provider. Credential-less providers answer from
// the personality fallback table; a configured provider that fails or
// returns unparsable output yields no opinion.
func (o *OpenAI) SuggestSongs(ctx context.Context, question string, n int) ([]Candidate, error) {
	if o.client == nil {
		return FallbackSongs(o.p, question), nil
	}

	raw, err := o.complete(ctx, songsPrompt(question, n))
	if err != nil {
		o.logger.Warn("song suggestion failed", "error", err)
		return nil, nil
	}
	cands := ParseCandidates(raw, n)
	if len(cands) == 0 {
		o.logger.Warn("song suggestion unparsable", "raw", truncate(raw, 120))
	}
	return cands, nil
}

// SuggestQuestion implements Provider.
func (o *OpenAI) SuggestQuestion(ctx context.Context) (*QuestionIdea, error) {
	if o.client == nil {
		return nil, nil
	}
	raw, err := o.complete(ctx, questionPrompt())
	if err != nil {
		o.logger.Warn("question suggestion failed", "error", err)
		return nil, nil
	}
	return ParseQuestionIdea(raw), nil
}

// Judge implements Provider.
func (o *OpenAI) Judge(ctx context.Context, question, own, other string) (Verdict, error) {
	if o.client == nil {
		return VerdictNone, nil
	}
	raw, err := o.complete(ctx, judgePrompt(question, own, other))
	if err != nil {
		o.logger.Warn("judgement failed", "error", err)
		return VerdictNone, nil
	}
	return ParseVerdict(raw), nil
}

// PickBest implements Provider.
func (o *OpenAI) PickBest(ctx context.Context, question string, options []string) (int, error) {
	if o.client == nil || len(options) == 0 {
		return -1, nil
	}
	raw, err := o.complete(ctx, pickPrompt(question, options))
	if err != nil {
		o.logger.Warn("pick failed", "error", err)
		return -1, nil
	}
	return ParsePick(raw, len(options)), nil
}

func (o *OpenAI) complete(ctx context.Context, prompt string) (string, error) {
	cfg := o.p.Config()
	return retry.Do(ctx, o.retry, func(ctx context.Context) (string, error) {
		resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       o.model,
			Temperature: cfg.Creativity,
			MaxTokens:   400,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: voice(o.p)},
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
		})
		if err != nil {
			return "", classify(err)
		}
		if len(resp.Choices) == 0 {
			return "", errors.New("no choices in completion response")
		}
		return resp.Choices[0].Message.Content, nil
	})
}

// classify maps provider errors onto the retry package's status taxonomy so
// rate limits and server errors back off while bad requests stay terminal.
func classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode > 0 {
		return &retry.StatusError{Code: apiErr.HTTPStatusCode, Body: apiErr.Message}
	}
	return err
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
