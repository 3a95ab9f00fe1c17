package prompt

import (
	"encoding/json"
	"fmt"

	"github.com/streamfit/streamfit/internal/domain/company"
	"github.com/streamfit/streamfit/internal/domain/streamer"
)

// BrandFitSystem directs the model to act as a partnership analyst and
// return one strict JSON object.
func BrandFitSystem() string {
	return `You are a brand partnership analyst specializing in influencer marketing and Twitch streaming. Analyze the streamer's fit for the company and produce one valid JSON object only (no markdown, no commentary, no code fences) with exactly these fields:
1. "aiSummary": a concise one-sentence overview of the streamer's key metrics and content focus (string)
2. "aiRecommendation": a brief 120-word-ish analysis covering audience alignment, content synergy, partnership potential, risk factors, and ROI potential (string)
3. "brandFitScore": a number from 0 to 10 (one decimal place allowed) representing how well this streamer fits the brand, based on audience match, content alignment, engagement and reach, brand safety and tone match, and partnership potential

DO NOT USE BULLET POINTS. Use continuous prose and do not speak too robotically. Return ONLY the JSON object.`
}

// BrandFitUser packs the streamer and company payloads into the user
// message.
func BrandFitUser(s *streamer.Streamer, c *company.Profile) string {
	sj, _ := json.MarshalIndent(s, "", "  ")
	cj, _ := json.MarshalIndent(c, "", "  ")
	return fmt.Sprintf("Streamer Data:\n%s\n\nCompany Profile:\n%s", sj, cj)
}

// BrandFitReply mirrors the JSON contract of the brand-fit analysis.
type BrandFitReply struct {
	AISummary        string   `json:"aiSummary"`
	AIRecommendation string   `json:"aiRecommendation"`
	BrandFitScore    *float64 `json:"brandFitScore"`
}
