package streamer

import (
	"time"
)

// Login is the lowercase Twitch username used as the streamer identity.
type Login string

// Social is one outbound social-media link on a streamer profile.
type Social struct {
	Link     string `json:"link"`
	Platform string `json:"platform"`
}

// Streamer is the internal representation used across the evaluation
// pipeline. Derived fields hold the most recent analysis for the
// requesting user; they are zero-valued until an evaluation runs.
type Streamer struct {
	ID          Login    `json:"id"`
	Name        string   `json:"name"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Categories  []string `json:"categories"`
	Sponsors    []string `json:"sponsors"`
	Followers   int      `json:"followers"`
	Socials     []Social `json:"socials"`

	// Derived fields. AIScore is the 0-10 reach score, RelevanceScore is
	// the 0-1 brand-fit score.
	AIScore          float64 `json:"aiScore"`
	RelevanceScore   float64 `json:"relevanceScore"`
	AISummary        string  `json:"aiSummary"`
	AIRecommendation string  `json:"aiRecommendation"`
}

// RawRecord is the third-party provider's streamer payload, cached
// globally so repeat evaluations skip the upstream fetch.
type RawRecord struct {
	Login          Login     `json:"login"`
	Name           string    `json:"name"`
	Image          string    `json:"image"`
	Followers      int       `json:"followers"`
	Description    string    `json:"description"`
	Game           string    `json:"game,omitempty"`
	CountryCode    string    `json:"countryCode,omitempty"`
	Sponsors       []string  `json:"sponsors"`
	Socials        []Social  `json:"socials"`
	PanelElements  []string  `json:"panelElements"`
	PanelImageURLs []string  `json:"panelImageURLs"`
	PanelLinkURLs  []string  `json:"panelLinkUrls"`
	ArchiveURL     string    `json:"archiveUrl,omitempty"`
	FetchedAt      time.Time `json:"fetchedAt"`
}

// Candidate is one entry returned by the discovery service.
type Candidate struct {
	Username    string  `json:"username"`
	Probability float64 `json:"probability"`
}

// Normalize defaults every slice field so callers never see nil after a
// storage read.
func (s *Streamer) Normalize() {
	if s.Tags == nil {
		s.Tags = []string{}
	}
	if s.Categories == nil {
		s.Categories = []string{}
	}
	if s.Sponsors == nil {
		s.Sponsors = []string{}
	}
	if s.Socials == nil {
		s.Socials = []Social{}
	}
}

// Normalize defaults every slice field on a raw provider record.
func (r *RawRecord) Normalize() {
	if r.Sponsors == nil {
		r.Sponsors = []string{}
	}
	if r.Socials == nil {
		r.Socials = []Social{}
	}
	if r.PanelElements == nil {
		r.PanelElements = []string{}
	}
	if r.PanelImageURLs == nil {
		r.PanelImageURLs = []string{}
	}
	if r.PanelLinkURLs == nil {
		r.PanelLinkURLs = []string{}
	}
}
