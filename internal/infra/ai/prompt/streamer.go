package prompt

import (
	"encoding/json"
	"fmt"

	"github.com/streamfit/streamfit/internal/domain/streamer"
)

// StreamerSystem directs the model to map a raw provider record into the
// internal streamer shape.
func StreamerSystem() string {
	return `You are a brand partnership analyst. Analyze the given Twitch streamer data and return ONLY one valid JSON object (no markdown, no commentary) matching this shape:
{
  "id": "<string>",
  "name": "<string>",
  "description": "<string>",
  "tags": ["<string>"],
  "categories": ["<string>"],
  "sponsors": ["<string>"],
  "aiSummary": "<string>",
  "aiScore": 0,
  "aiRecommendation": "<string>",
  "followers": 0,
  "socials": [{"link": "<string>", "platform": "<string>"}]
}
Focus on brand collaborations and audience engagement. Extract categories and tags from their content. If no sponsors are detected, return an empty array for sponsors.`
}

// StreamerUser packs the raw record into the user message.
func StreamerUser(raw *streamer.RawRecord) string {
	rj, _ := json.MarshalIndent(raw, "", "  ")
	return fmt.Sprintf("Here's the streamer data to analyze:\n%s", rj)
}
