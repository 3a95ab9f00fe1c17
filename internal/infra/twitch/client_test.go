package twitch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/streamfit/streamfit/internal/domain/streamer"
)

func TestFetchStreamer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/streamer/ninja" {
			t.Errorf("path = %s, want /streamer/ninja", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"name": "Ninja",
			"followers": 1000000,
			"description": "gaming streams",
			"socials": [{"platform": "twitter", "link": "https://twitter.com/ninja"}]
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.URL)
	raw, err := c.FetchStreamer(context.Background(), "ninja")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw.Login != "ninja" {
		t.Errorf("login = %s, want ninja", raw.Login)
	}
	if raw.Name != "Ninja" || raw.Followers != 1000000 {
		t.Errorf("unexpected record: %+v", raw)
	}
	if len(raw.Socials) != 1 || raw.Socials[0].Platform != "twitter" {
		t.Errorf("socials = %+v", raw.Socials)
	}
}

func TestFetchStreamerRecoversSocialsFromPanels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"name": "Ninja",
			"followers": 5,
			"panelElements": ["Follow me at twitter.com/ninja and instagram.com/ninja"]
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.URL)
	raw, err := c.FetchStreamer(context.Background(), "ninja")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(raw.Socials) != 2 {
		t.Fatalf("extracted %d socials, want 2: %+v", len(raw.Socials), raw.Socials)
	}
}

func TestFetchStreamerUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.URL)
	if _, err := c.FetchStreamer(context.Background(), "ninja"); err == nil {
		t.Fatal("expected error on upstream 502")
	}
}

func TestSearchCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/streamerSearch/user-1" {
			t.Errorf("path = %s, want /streamerSearch/user-1", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"username": "ninja", "probability": 0.9},
			{"username": "pokimane", "probability": 0.8}
		]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.URL)
	candidates, err := c.SearchCandidates(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []streamer.Candidate{
		{Username: "ninja", Probability: 0.9},
		{Username: "pokimane", Probability: 0.8},
	}
	if len(candidates) != len(want) {
		t.Fatalf("got %d candidates, want %d", len(candidates), len(want))
	}
	for i := range want {
		if candidates[i] != want[i] {
			t.Errorf("candidate %d = %+v, want %+v", i, candidates[i], want[i])
		}
	}
}
