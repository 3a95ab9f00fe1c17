package twitch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/streamfit/streamfit/internal/domain/streamer"
)

// Client talks to the third-party streamer-data and discovery services.
type Client struct {
	dataBaseURL   string
	searchBaseURL string
	http          *http.Client
}

func NewClient(dataBaseURL, searchBaseURL string) *Client {
	return &Client{
		dataBaseURL:   dataBaseURL,
		searchBaseURL: searchBaseURL,
		http:          &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchStreamer pulls the raw record for a login. When the provider sends
// no socials, links are recovered from the panel text.
func (c *Client) FetchStreamer(ctx context.Context, login streamer.Login) (*streamer.RawRecord, error) {
	var raw streamer.RawRecord
	url := fmt.Sprintf("%s/streamer/%s", c.dataBaseURL, login)
	if err := c.getJSON(ctx, url, &raw); err != nil {
		return nil, fmt.Errorf("fetching streamer data: %w", err)
	}
	raw.Login = login
	raw.Normalize()
	if len(raw.Socials) == 0 {
		raw.Socials = streamer.ExtractSocialLinks(raw.PanelElements)
	}
	return &raw, nil
}

// SearchCandidates proxies the discovery service for a user.
func (c *Client) SearchCandidates(ctx context.Context, userID string) ([]streamer.Candidate, error) {
	var candidates []streamer.Candidate
	url := fmt.Sprintf("%s/streamerSearch/%s", c.searchBaseURL, userID)
	if err := c.getJSON(ctx, url, &candidates); err != nil {
		return nil, fmt.Errorf("fetching candidates: %w", err)
	}
	return candidates, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("upstream returned %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
