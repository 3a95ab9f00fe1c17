package streamer

import "sort"

// SortKey enumerates the supported dashboard orderings.
type SortKey string

const (
	SortRelevance SortKey = "relevance"
	SortBrandFit  SortKey = "brandFit"
	SortReach     SortKey = "reach"
	SortFollowers SortKey = "followers"
)

// ParseSortKey returns the matching key, defaulting to relevance.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortBrandFit, SortReach, SortFollowers:
		return SortKey(s)
	default:
		return SortRelevance
	}
}

// Sort orders streamers descending by the given key. The relevance key is
// the mean of the reach score and the brand-fit score rescaled to the 0-10
// band.
func Sort(list []*Streamer, key SortKey) {
	sort.SliceStable(list, func(i, j int) bool {
		return sortValue(list[i], key) > sortValue(list[j], key)
	})
}

func sortValue(s *Streamer, key SortKey) float64 {
	switch key {
	case SortBrandFit:
		return s.RelevanceScore
	case SortReach:
		return s.AIScore
	case SortFollowers:
		return float64(s.Followers)
	default:
		return (s.AIScore + s.RelevanceScore*10) / 2
	}
}
