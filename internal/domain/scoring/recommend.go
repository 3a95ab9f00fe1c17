package scoring

import (
	"fmt"
	"strings"

	"github.com/streamfit/streamfit/internal/domain/company"
	"github.com/streamfit/streamfit/internal/domain/streamer"
)

// Narrative holds the generated summary and recommendation texts.
type Narrative struct {
	AISummary        string
	AIRecommendation string
}

// BuildNarrative assembles the human-readable summary and recommendation
// for a streamer. Deterministic template concatenation: with a company
// profile the recommendation walks audience, industry, tone, reach and
// sponsorship angles; without one it falls back to a generic description.
func BuildNarrative(s *streamer.Streamer, c *company.Profile) Narrative {
	followersM := float64(s.Followers) / 1_000_000

	focus := "content"
	if len(s.Categories) > 0 {
		focus = strings.Join(s.Categories, ", ")
	}
	summary := fmt.Sprintf("%s is a %s creator with %.1fM followers.", s.Name, focus, followersM)

	if c == nil {
		return Narrative{AISummary: summary, AIRecommendation: genericRecommendation(s)}
	}

	var b strings.Builder

	matchingInterests := matchedInTags(c.TargetAudience.Interests, s.Tags)
	matchingDemographics := matchedInTags(c.TargetAudience.Demographics, s.Tags)
	matchingKeywords := matchedKeywords(c.AdContent.Keywords, s)
	industryMatch := categoryMatches(s.Categories, c.Industry)

	fmt.Fprintf(&b, "For %s (%s): ", c.Name, c.Industry)

	if len(matchingInterests) > 0 {
		plural := ""
		if len(matchingInterests) > 1 {
			plural = " areas"
		}
		fmt.Fprintf(&b, "Strong audience alignment in %s%s. ", strings.Join(matchingInterests, ", "), plural)
	}
	if len(matchingDemographics) > 0 {
		plural := ""
		if len(matchingDemographics) > 1 {
			plural = "s"
		}
		fmt.Fprintf(&b, "Appeals to your target %s demographic%s. ", strings.Join(matchingDemographics, " and "), plural)
	}
	if c.TargetAudience.AgeRange != "" && anyTagContains(s.Tags, c.TargetAudience.AgeRange) {
		fmt.Fprintf(&b, "Content particularly resonates with %s age group. ", c.TargetAudience.AgeRange)
	}

	if industryMatch {
		fmt.Fprintf(&b, "Direct %s industry alignment offers authentic brand integration opportunities. ", c.Industry)
	} else if len(s.Categories) > 0 {
		fmt.Fprintf(&b, "While not directly in %s, their %s content could provide fresh exposure. ",
			c.Industry, strings.Join(s.Categories, "/"))
	}

	if c.AdContent.Tone != "" && strings.Contains(strings.ToLower(s.Description), strings.ToLower(c.AdContent.Tone)) {
		fmt.Fprintf(&b, "Content style naturally matches your %s brand tone. ", c.AdContent.Tone)
	}
	if len(matchingKeywords) > 0 {
		fmt.Fprintf(&b, "Aligns with your key themes: %s. ", strings.Join(matchingKeywords, ", "))
	}

	switch {
	case s.Followers > 1_000_000:
		b.WriteString("Offers major brand exposure")
	case s.Followers > 100_000:
		b.WriteString("Provides focused brand reach")
	default:
		b.WriteString("Offers niche audience targeting")
	}
	if len(s.Socials) > 0 {
		platforms := make([]string, len(s.Socials))
		for i, soc := range s.Socials {
			platforms[i] = soc.Platform
		}
		fmt.Fprintf(&b, " across %d platforms (%s). ", len(s.Socials), strings.Join(platforms, ", "))
	} else {
		b.WriteString(". ")
	}

	if len(s.Sponsors) > 0 {
		fmt.Fprintf(&b, "Current brand collaborations with %s demonstrate sponsorship experience. ",
			strings.Join(s.Sponsors, ", "))
	}

	verdict := "Consider for audience expansion"
	switch {
	case len(matchingInterests) > 0 && industryMatch:
		verdict = "Highly recommended partnership opportunity"
	case len(matchingInterests) > 0:
		verdict = "Strong potential for audience alignment"
	case industryMatch:
		verdict = "Good fit for industry-specific campaigns"
	}
	fmt.Fprintf(&b, "Overall: %s.", verdict)

	return Narrative{AISummary: summary, AIRecommendation: b.String()}
}

func genericRecommendation(s *streamer.Streamer) string {
	var b strings.Builder

	if len(s.Categories) > 0 {
		fmt.Fprintf(&b, "%s content creator ", strings.Join(s.Categories, ", "))
	} else {
		b.WriteString("Content creator ")
	}
	if s.Followers > 1_000_000 {
		b.WriteString("with a large following. ")
	} else if s.Followers > 100_000 {
		b.WriteString("with a solid following. ")
	}
	if len(s.Socials) > 0 {
		fmt.Fprintf(&b, "Strong social media presence across %d platforms. ", len(s.Socials))
	}
	if len(s.Tags) > 0 {
		n := len(s.Tags)
		if n > 3 {
			n = 3
		}
		fmt.Fprintf(&b, "Focuses on %s.", strings.Join(s.Tags[:n], ", "))
	}
	return strings.TrimSpace(b.String())
}

func matchedInTags(values, tags []string) []string {
	var out []string
	for _, v := range values {
		if anyTagContains(tags, v) {
			out = append(out, v)
		}
	}
	return out
}

func matchedKeywords(keywords []string, s *streamer.Streamer) []string {
	desc := strings.ToLower(s.Description)
	var out []string
	for _, kw := range keywords {
		if anyTagContains(s.Tags, kw) || (kw != "" && strings.Contains(desc, strings.ToLower(kw))) {
			out = append(out, kw)
		}
	}
	return out
}

func categoryMatches(categories []string, industry string) bool {
	needle := strings.ToLower(industry)
	if needle == "" {
		return false
	}
	for _, c := range categories {
		if strings.Contains(strings.ToLower(c), needle) {
			return true
		}
	}
	return false
}
