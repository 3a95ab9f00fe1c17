package prompt

import (
	"fmt"
	"strings"

	"github.com/streamfit/streamfit/internal/domain/ai"
	"github.com/streamfit/streamfit/internal/domain/streamer"
)

// CandidatesSystem directs the model through the batch candidate
// analysis, one JSON object with an analyses array.
func CandidatesSystem() string {
	return `You are a brand partnership analyst specializing in Twitch streaming and influencer marketing. For each streamer you are given, provide:
1. A concise summary of their potential value as a brand partner
2. Specific partnership recommendations and campaign ideas
3. A relevance score from 0 to 1 (up to 2 decimal places) for their overall brand partnership potential

Respond with one valid JSON object only, in this format:
{
  "analyses": [
    {
      "username": "<string>",
      "aiSummary": "<string>",
      "aiRecommendation": "<string>",
      "relevanceScore": 0.85
    }
  ]
}
Focus on actionable insights and creative campaign ideas. Consider audience engagement and demographics, content style and brand safety, partnership history, potential ROI and reach. Return ONLY the JSON object with no additional text.`
}

// CandidatesUser lists the candidates with their discovery match scores.
func CandidatesUser(candidates []streamer.Candidate) string {
	var b strings.Builder
	b.WriteString("Here are the streamers to analyze:\n")
	for i, c := range candidates {
		fmt.Fprintf(&b, "\nStreamer %d: %s\nInitial Match Score: %.2f\n", i+1, c.Username, c.Probability)
	}
	return b.String()
}

// CandidatesReply mirrors the JSON contract of the batch analysis.
type CandidatesReply struct {
	Analyses []ai.CandidateAnalysis `json:"analyses"`
}
