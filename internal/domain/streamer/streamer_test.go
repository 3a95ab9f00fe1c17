package streamer

import (
	"errors"
	"testing"
)

func TestParseLogin(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		want  Login
		fails bool
	}{
		{"bare username", "Shroud_TV", "shroud_tv", false},
		{"full url", "https://twitch.tv/PokiMane", "pokimane", false},
		{"url with trailing path", "https://www.twitch.tv/videos/ninja", "ninja", false},
		{"whitespace", "  lirik  ", "lirik", false},
		{"too short", "abc", "", true},
		{"too long", "a123456789012345678901234x", "", true},
		{"bad characters", "not a name", "", true},
		{"url without username", "https://twitch.tv/", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseLogin(tc.in)
			if tc.fails {
				if !errors.Is(err, ErrInvalidUsername) {
					t.Fatalf("expected ErrInvalidUsername, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestFromRaw(t *testing.T) {
	raw := &RawRecord{
		Login:       "teststreamer",
		Name:        "TestStreamer",
		Image:       "https://cdn.example/img.png",
		Followers:   250_000,
		Description: "Variety gaming",
		Game:        "League of Legends",
		CountryCode: "DE",
		PanelElements: []string{
			"Sponsored by KeyboardCo\nGreat keyboards",
			"Find me at twitter.com/teststreamer and youtube.com/teststreamer",
		},
	}

	s := FromRaw(raw)

	if s.ID != "teststreamer" || s.Followers != 250_000 {
		t.Fatalf("identity fields not mapped: %+v", s)
	}
	if len(s.Categories) != 1 || s.Categories[0] != "League of Legends" {
		t.Fatalf("game should map to categories, got %v", s.Categories)
	}
	if len(s.Sponsors) != 1 || s.Sponsors[0] != "Sponsored by KeyboardCo" {
		t.Fatalf("sponsor panel should map to sponsor name, got %v", s.Sponsors)
	}
	if len(s.Socials) != 2 {
		t.Fatalf("expected 2 socials extracted from panels, got %v", s.Socials)
	}
	// tags: one per social platform plus the country code
	if len(s.Tags) != 3 {
		t.Fatalf("expected 3 tags, got %v", s.Tags)
	}
}

func TestFromRawPrefersProvidedSocials(t *testing.T) {
	raw := &RawRecord{
		Login:   "someone123",
		Socials: []Social{{Link: "https://twitter.com/x", Platform: "Twitter"}},
		PanelElements: []string{
			"youtube.com/other",
		},
	}
	s := FromRaw(raw)
	if len(s.Socials) != 1 || s.Socials[0].Platform != "Twitter" {
		t.Fatalf("provided socials should win over panel extraction, got %v", s.Socials)
	}
}

func TestExtractSocialLinksDeduplicates(t *testing.T) {
	socials := ExtractSocialLinks([]string{
		"twitter.com/first",
		"twitter.com/second",
		"discord.gg/abc",
	})
	if len(socials) != 2 {
		t.Fatalf("expected one entry per platform, got %v", socials)
	}
	if socials[0].Link != "https://twitter.com/first" {
		t.Fatalf("first match should win and be normalized, got %q", socials[0].Link)
	}
}

func TestSortFollowers(t *testing.T) {
	list := []*Streamer{
		{ID: "a", Followers: 100},
		{ID: "b", Followers: 5000},
		{ID: "c", Followers: 0},
	}
	Sort(list, SortFollowers)

	want := []int{5000, 100, 0}
	for i, s := range list {
		if s.Followers != want[i] {
			t.Fatalf("position %d: got %d followers, want %d", i, s.Followers, want[i])
		}
	}
}

func TestSortRelevanceAveragesScales(t *testing.T) {
	// b has the lower reach but a maxed brand fit; the 0-1 relevance must
	// be rescaled to the 0-10 band before averaging, or b would lose.
	list := []*Streamer{
		{ID: "a", AIScore: 8, RelevanceScore: 0.1},
		{ID: "b", AIScore: 6, RelevanceScore: 1.0},
	}
	Sort(list, SortRelevance)
	if list[0].ID != "b" {
		t.Fatalf("expected b first, got %v", list[0].ID)
	}
}

func TestParseSortKeyDefault(t *testing.T) {
	if ParseSortKey("nonsense") != SortRelevance {
		t.Fatal("unknown sort keys should default to relevance")
	}
	if ParseSortKey("brandFit") != SortBrandFit {
		t.Fatal("brandFit should parse")
	}
}
