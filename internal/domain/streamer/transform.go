package streamer

import (
	"regexp"
	"strings"
)

var socialPatterns = []struct {
	re       *regexp.Regexp
	platform string
}{
	{regexp.MustCompile(`twitter\.com/([^"'\s]+)`), "Twitter"},
	{regexp.MustCompile(`instagram\.com/([^"'\s]+)`), "Instagram"},
	{regexp.MustCompile(`youtube\.com/([^"'\s]+)`), "YouTube"},
	{regexp.MustCompile(`discord\.gg/([^"'\s]+)`), "Discord"},
	{regexp.MustCompile(`patreon\.com/([^"'\s]+)`), "Patreon"},
}

// FromRaw maps a cached provider record into the internal Streamer shape.
// Derived score/text fields are left zero; the evaluation pipeline fills
// them in.
func FromRaw(r *RawRecord) *Streamer {
	r.Normalize()

	socials := r.Socials
	if len(socials) == 0 {
		socials = ExtractSocialLinks(r.PanelElements)
	}

	tags := make([]string, 0, len(socials)+1)
	for _, s := range socials {
		tags = append(tags, s.Platform)
	}
	if r.CountryCode != "" {
		tags = append(tags, r.CountryCode)
	}

	var categories []string
	if r.Game != "" {
		categories = []string{r.Game}
	} else {
		categories = []string{}
	}

	sponsors := r.Sponsors
	if len(sponsors) == 0 {
		sponsors = ExtractSponsors(r.PanelElements)
	}

	s := &Streamer{
		ID:          r.Login,
		Name:        r.Name,
		Image:       r.Image,
		Description: r.Description,
		Tags:        tags,
		Categories:  categories,
		Sponsors:    sponsors,
		Followers:   r.Followers,
		Socials:     socials,
	}
	s.Normalize()
	return s
}

// ExtractSponsors picks panel entries that mention a sponsorship and keeps
// their first line as the sponsor name.
func ExtractSponsors(panels []string) []string {
	sponsors := []string{}
	for _, panel := range panels {
		lower := strings.ToLower(panel)
		if !strings.Contains(lower, "sponsor") && !strings.Contains(lower, "partner") {
			continue
		}
		name := panel
		if i := strings.IndexByte(panel, '\n'); i >= 0 {
			name = panel[:i]
		}
		name = strings.TrimSpace(name)
		if name == "" {
			name = "Sponsor"
		}
		sponsors = append(sponsors, name)
	}
	return sponsors
}

// ExtractSocialLinks scans free-form panel text for known social platform
// URLs. One entry per platform, first match wins.
func ExtractSocialLinks(panels []string) []Social {
	socials := []Social{}
	seen := map[string]bool{}
	for _, panel := range panels {
		for _, p := range socialPatterns {
			if seen[p.platform] {
				continue
			}
			m := p.re.FindString(panel)
			if m == "" {
				continue
			}
			link := m
			if !strings.HasPrefix(link, "http") {
				link = "https://" + link
			}
			socials = append(socials, Social{Link: link, Platform: p.platform})
			seen[p.platform] = true
		}
	}
	return socials
}
