package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/sashabaranov/go-openai"

	domai "github.com/streamfit/streamfit/internal/domain/ai"
	"github.com/streamfit/streamfit/internal/domain/company"
	"github.com/streamfit/streamfit/internal/domain/streamer"
	"github.com/streamfit/streamfit/internal/infra/ai/prompt"
)

const maxTokens = 1024

// Client implements the analysis gateway over OpenAI chat completions.
type Client struct {
	*openai.Client
	Model string
}

func NewClient(apiKey, model string) *Client {
	return &Client{Client: openai.NewClient(apiKey), Model: model}
}

// AnalyzeBrandFit runs the single brand-fit analysis. The model scores
// 0-10; the result is rescaled to the canonical 0-1 band.
func (c *Client) AnalyzeBrandFit(ctx context.Context, s *streamer.Streamer, p *company.Profile) (*domai.BrandFit, error) {
	content, err := c.complete(ctx, prompt.BrandFitSystem(), prompt.BrandFitUser(s, p))
	if err != nil {
		return nil, err
	}

	var reply prompt.BrandFitReply
	if err := json.Unmarshal([]byte(content), &reply); err != nil {
		return nil, fmt.Errorf("%w: %v", domai.ErrInvalidResponse, err)
	}
	if reply.AISummary == "" || reply.AIRecommendation == "" || reply.BrandFitScore == nil {
		return nil, fmt.Errorf("%w: missing required fields", domai.ErrInvalidResponse)
	}

	score := math.Min(math.Max(*reply.BrandFitScore/10, 0), 1)
	return &domai.BrandFit{
		AISummary:        reply.AISummary,
		AIRecommendation: reply.AIRecommendation,
		RelevanceScore:   score,
	}, nil
}

// AnalyzeStreamer maps a raw provider record to the internal streamer
// shape via the model. Identity fields from the raw record win over
// whatever the model produced.
func (c *Client) AnalyzeStreamer(ctx context.Context, raw *streamer.RawRecord) (*streamer.Streamer, error) {
	content, err := c.complete(ctx, prompt.StreamerSystem(), prompt.StreamerUser(raw))
	if err != nil {
		return nil, err
	}

	var s streamer.Streamer
	if err := json.Unmarshal([]byte(content), &s); err != nil {
		return nil, fmt.Errorf("%w: %v", domai.ErrInvalidResponse, err)
	}
	s.ID = raw.Login
	s.Name = raw.Name
	s.Image = raw.Image
	s.Followers = raw.Followers
	s.Normalize()
	return &s, nil
}

// AnalyzeCandidates runs the batch candidate analysis.
func (c *Client) AnalyzeCandidates(ctx context.Context, candidates []streamer.Candidate) ([]domai.CandidateAnalysis, error) {
	content, err := c.complete(ctx, prompt.CandidatesSystem(), prompt.CandidatesUser(candidates))
	if err != nil {
		return nil, err
	}

	var reply prompt.CandidatesReply
	if err := json.Unmarshal([]byte(content), &reply); err != nil {
		return nil, fmt.Errorf("%w: %v", domai.ErrInvalidResponse, err)
	}
	if reply.Analyses == nil {
		return nil, fmt.Errorf("%w: missing analyses array", domai.ErrInvalidResponse)
	}
	return reply.Analyses, nil
}

func (c *Client) complete(ctx context.Context, system, user string) (string, error) {
	model := c.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	req := openai.ChatCompletionRequest{
		Model: model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	}
	// For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens instead of MaxTokens
	if strings.HasPrefix(model, "o1") || strings.HasPrefix(model, "o3") || strings.HasPrefix(model, "o4") || strings.HasPrefix(model, "gpt-5") {
		req.MaxCompletionTokens = maxTokens
	} else {
		req.MaxTokens = maxTokens
	}

	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == 429 {
			return "", domai.ErrQuotaExceeded
		}
		return "", fmt.Errorf("%w: %v", domai.ErrInvalidResponse, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty completion", domai.ErrInvalidResponse)
	}
	return resp.Choices[0].Message.Content, nil
}
