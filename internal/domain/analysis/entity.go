package analysis

import (
	"time"

	"github.com/streamfit/streamfit/internal/domain/streamer"
)

// Analysis is the per-(user, streamer) cache of derived score/text fields.
// RelevanceScore is on the canonical 0-1 scale; AIScore on 0-10.
type Analysis struct {
	UserID           string         `json:"user_id"`
	Login            streamer.Login `json:"login"`
	AIScore          float64        `json:"aiScore"`
	RelevanceScore   float64        `json:"relevanceScore"`
	AISummary        string         `json:"aiSummary"`
	AIRecommendation string         `json:"aiRecommendation"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}

// HistoryEntry is a denormalized snapshot of a streamer plus its analysis
// at (re)computation time, keyed by streamer so later runs overwrite it.
type HistoryEntry struct {
	ID               string         `json:"id"`
	UserID           string         `json:"user_id"`
	Login            streamer.Login `json:"login"`
	Name             string         `json:"name"`
	Image            string         `json:"image"`
	Followers        int            `json:"followers"`
	AIScore          float64        `json:"aiScore"`
	RelevanceScore   float64        `json:"relevanceScore"`
	AISummary        string         `json:"aiSummary"`
	AIRecommendation string         `json:"aiRecommendation"`
	AnalyzedAt       time.Time      `json:"analyzedAt"`
}

// Snapshot builds the history entry for an evaluated streamer.
func Snapshot(id string, a *Analysis, s *streamer.Streamer) *HistoryEntry {
	return &HistoryEntry{
		ID:               id,
		UserID:           a.UserID,
		Login:            a.Login,
		Name:             s.Name,
		Image:            s.Image,
		Followers:        s.Followers,
		AIScore:          a.AIScore,
		RelevanceScore:   a.RelevanceScore,
		AISummary:        a.AISummary,
		AIRecommendation: a.AIRecommendation,
		AnalyzedAt:       a.UpdatedAt,
	}
}

// Apply copies the derived fields onto a streamer for presentation.
func (a *Analysis) Apply(s *streamer.Streamer) {
	s.AIScore = a.AIScore
	s.RelevanceScore = a.RelevanceScore
	s.AISummary = a.AISummary
	s.AIRecommendation = a.AIRecommendation
}
