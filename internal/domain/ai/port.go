package ai

import (
	"context"

	"github.com/streamfit/streamfit/internal/domain/company"
	"github.com/streamfit/streamfit/internal/domain/streamer"
)

// BrandFit is the result of a single brand-fit analysis. RelevanceScore is
// already rescaled to the canonical 0-1 band.
type BrandFit struct {
	AISummary        string  `json:"aiSummary"`
	AIRecommendation string  `json:"aiRecommendation"`
	RelevanceScore   float64 `json:"relevanceScore"`
}

// CandidateAnalysis is one entry of a batch candidate analysis.
type CandidateAnalysis struct {
	Username         string  `json:"username"`
	AISummary        string  `json:"aiSummary"`
	AIRecommendation string  `json:"aiRecommendation"`
	RelevanceScore   float64 `json:"relevanceScore"`
}

// Client is the LLM analysis gateway. Implementations perform one outbound
// call per method with no retries; any transport or shape failure wraps
// ErrInvalidResponse.
type Client interface {
	AnalyzeBrandFit(ctx context.Context, s *streamer.Streamer, c *company.Profile) (*BrandFit, error)
	AnalyzeStreamer(ctx context.Context, raw *streamer.RawRecord) (*streamer.Streamer, error)
	AnalyzeCandidates(ctx context.Context, candidates []streamer.Candidate) ([]CandidateAnalysis, error)
}
