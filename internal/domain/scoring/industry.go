package scoring

import "strings"

var industryKeywords = map[string][]string{
	"gaming":        {"game", "gaming", "esports", "streamer", "player"},
	"technology":    {"tech", "technology", "software", "hardware", "digital"},
	"fashion":       {"fashion", "style", "clothing", "beauty", "lifestyle"},
	"food":          {"food", "cooking", "restaurant", "beverage", "cuisine"},
	"entertainment": {"entertainment", "media", "film", "music", "show"},
	"sports":        {"sports", "athlete", "fitness", "workout", "competition"},
	"other":         {},
}

// IndustryKeywords returns the keyword set for an industry category, empty
// for unknown industries.
func IndustryKeywords(industry string) []string {
	if kw, ok := industryKeywords[strings.ToLower(industry)]; ok {
		return kw
	}
	return []string{}
}
