package company

// TargetAudience describes who the company wants to reach.
type TargetAudience struct {
	AgeRange     string   `json:"ageRange"`
	Interests    []string `json:"interests"`
	Demographics []string `json:"demographics"`
}

// AdContent describes the campaign the company plans to run.
type AdContent struct {
	Description string   `json:"description"`
	Tone        string   `json:"tone"`
	Keywords    []string `json:"keywords"`
}

// Profile is the per-user company profile driving brand-fit scoring.
// One profile per user, overwritten wholesale on save.
type Profile struct {
	Name           string         `json:"name"`
	Description    string         `json:"description"`
	Industry       string         `json:"industry"`
	TargetAudience TargetAudience `json:"targetAudience"`
	AdContent      AdContent      `json:"adContent"`
}

// Normalize defaults every list field to an empty slice. Applied at the
// storage boundary so business logic never null-checks.
func (p *Profile) Normalize() {
	if p.TargetAudience.Interests == nil {
		p.TargetAudience.Interests = []string{}
	}
	if p.TargetAudience.Demographics == nil {
		p.TargetAudience.Demographics = []string{}
	}
	if p.AdContent.Keywords == nil {
		p.AdContent.Keywords = []string{}
	}
}
