package scoring

import (
	"strings"
	"testing"

	"github.com/streamfit/streamfit/internal/domain/streamer"
)

func TestBuildNarrativeWithCompany(t *testing.T) {
	c := gamingProfile()
	s := &streamer.Streamer{
		Name:        "TestStreamer",
		Description: "casual variety content",
		Tags:        []string{"esports", "students"},
		Categories:  []string{"gaming"},
		Sponsors:    []string{"KeyboardCo"},
		Followers:   2_000_000,
		Socials: []streamer.Social{
			{Platform: "Twitter"}, {Platform: "YouTube"},
		},
	}

	n := BuildNarrative(s, c)

	if n.AISummary != "TestStreamer is a gaming creator with 2.0M followers." {
		t.Fatalf("unexpected summary: %q", n.AISummary)
	}
	rec := n.AIRecommendation
	for _, want := range []string{
		"For PixelWear (gaming): ",
		"Strong audience alignment in esports",
		"target students demographic",
		"Direct gaming industry alignment",
		"casual brand tone",
		"Offers major brand exposure across 2 platforms (Twitter, YouTube)",
		"collaborations with KeyboardCo",
		"Overall: Highly recommended partnership opportunity.",
	} {
		if !strings.Contains(rec, want) {
			t.Fatalf("recommendation missing %q:\n%s", want, rec)
		}
	}
}

func TestBuildNarrativeVerdictTiers(t *testing.T) {
	c := gamingProfile()

	interestOnly := &streamer.Streamer{Name: "A", Tags: []string{"esports"}, Categories: []string{"cooking"}}
	if rec := BuildNarrative(interestOnly, c).AIRecommendation; !strings.Contains(rec, "Strong potential for audience alignment") {
		t.Fatalf("interest-only verdict wrong:\n%s", rec)
	}

	industryOnly := &streamer.Streamer{Name: "B", Categories: []string{"gaming"}}
	if rec := BuildNarrative(industryOnly, c).AIRecommendation; !strings.Contains(rec, "Good fit for industry-specific campaigns") {
		t.Fatalf("industry-only verdict wrong:\n%s", rec)
	}

	noMatch := &streamer.Streamer{Name: "C", Categories: []string{"cooking"}}
	rec := BuildNarrative(noMatch, c).AIRecommendation
	if !strings.Contains(rec, "Consider for audience expansion") {
		t.Fatalf("no-match verdict wrong:\n%s", rec)
	}
	if !strings.Contains(rec, "While not directly in gaming, their cooking content") {
		t.Fatalf("expected cross-industry clause:\n%s", rec)
	}
}

func TestBuildNarrativeGenericFallback(t *testing.T) {
	s := &streamer.Streamer{
		Name:       "Solo",
		Categories: []string{"music"},
		Followers:  150_000,
		Tags:       []string{"music", "live", "chill", "extra"},
		Socials:    []streamer.Social{{Platform: "YouTube"}},
	}
	n := BuildNarrative(s, nil)
	rec := n.AIRecommendation
	for _, want := range []string{
		"music content creator",
		"with a solid following.",
		"across 1 platforms.",
		"Focuses on music, live, chill.",
	} {
		if !strings.Contains(rec, want) {
			t.Fatalf("generic recommendation missing %q:\n%s", want, rec)
		}
	}
	if strings.Contains(rec, "For ") && strings.Contains(rec, "(") && strings.Contains(rec, "Overall:") {
		t.Fatalf("generic path must not reference a company:\n%s", rec)
	}
}
