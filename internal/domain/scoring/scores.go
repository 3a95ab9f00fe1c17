package scoring

import (
	"math"
	"strings"

	"github.com/streamfit/streamfit/internal/domain/company"
	"github.com/streamfit/streamfit/internal/domain/streamer"
)

// maxKeywordBonus caps the total ad-keyword contribution to the relevance
// score at three matched keywords.
const maxKeywordBonus = 1.5

// ReachScore rates a streamer's audience reach on a 0-10 scale,
// independent of any company. Deterministic: base 5, up to +3 for
// followers, up to +1 each for tag diversity and social presence.
func ReachScore(s *streamer.Streamer) float64 {
	score := 5.0
	score += math.Min(float64(s.Followers)/1_000_000, 3)
	score += math.Min(float64(len(s.Tags))*0.2, 1)
	score += math.Min(float64(len(s.Socials))*0.2, 1)
	return clampRound(score)
}

// RelevanceScore rates how well a streamer aligns with a company profile
// on a 0-10 scale. All matching is case-insensitive substring containment.
// With a nil profile the streamer-intrinsic fallback formula applies.
func RelevanceScore(s *streamer.Streamer, c *company.Profile) float64 {
	if c == nil {
		return fallbackScore(s)
	}

	desc := strings.ToLower(s.Description)
	score := 5.0

	if anyTagContainsAny(s.Tags, IndustryKeywords(c.Industry)) {
		score += 2
	}
	if c.TargetAudience.AgeRange != "" && anyTagContains(s.Tags, c.TargetAudience.AgeRange) {
		score += 1
	}
	if anyTagContainsAny(s.Tags, c.TargetAudience.Interests) {
		score += 1.5
	}
	if anyTagContainsAny(s.Tags, c.TargetAudience.Demographics) {
		score += 1.5
	}
	if c.AdContent.Tone != "" && strings.Contains(desc, strings.ToLower(c.AdContent.Tone)) {
		score += 1
	}

	var keywordBonus float64
	for _, kw := range c.AdContent.Keywords {
		if anyTagContains(s.Tags, kw) {
			keywordBonus += 0.5
		}
	}
	score += math.Min(keywordBonus, maxKeywordBonus)

	if strings.Contains(desc, "high") {
		score += 1
	}

	return clampRound(score)
}

// fallbackScore rates a streamer without any company context: engagement
// wording, tag diversity and follower count only.
func fallbackScore(s *streamer.Streamer) float64 {
	desc := strings.ToLower(s.Description)
	score := 5.0

	if strings.Contains(desc, "high") {
		score += 2
	} else if strings.Contains(desc, "medium") {
		score += 1
	}

	// Audience and topic diversity both read off the tag list.
	score += math.Min(float64(len(s.Tags))*0.25, 1)
	score += math.Min(float64(len(s.Tags))*0.25, 1)

	score += math.Min(float64(s.Followers)/1_000_000, 0.5)

	return clampRound(score)
}

// ToUnit rescales a 0-10 relevance score to the canonical 0-1 band used
// in persisted analyses and API responses.
func ToUnit(score float64) float64 {
	return math.Round(score*10) / 100
}

func clampRound(score float64) float64 {
	score = math.Min(math.Max(score, 0), 10)
	return math.Round(score*10) / 10
}

func anyTagContains(tags []string, needle string) bool {
	needle = strings.ToLower(needle)
	if needle == "" {
		return false
	}
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

func anyTagContainsAny(tags []string, needles []string) bool {
	for _, n := range needles {
		if anyTagContains(tags, n) {
			return true
		}
	}
	return false
}
