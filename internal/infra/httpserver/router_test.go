package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	appeval "github.com/streamfit/streamfit/internal/application/evaluation"
	appmaint "github.com/streamfit/streamfit/internal/application/maintenance"
	domai "github.com/streamfit/streamfit/internal/domain/ai"
	domanalysis "github.com/streamfit/streamfit/internal/domain/analysis"
	domcompany "github.com/streamfit/streamfit/internal/domain/company"
	domstreamer "github.com/streamfit/streamfit/internal/domain/streamer"
	"github.com/streamfit/streamfit/internal/middleware"
)

type gatewayStub struct {
	candidates []domstreamer.Candidate
}

func (g *gatewayStub) AnalyzeBrandFit(ctx context.Context, s *domstreamer.Streamer, c *domcompany.Profile) (*domai.BrandFit, error) {
	return &domai.BrandFit{AISummary: "ok"}, nil
}

func (g *gatewayStub) AnalyzeStreamer(ctx context.Context, raw *domstreamer.RawRecord) (*domstreamer.Streamer, error) {
	return &domstreamer.Streamer{ID: raw.Login}, nil
}

func (g *gatewayStub) AnalyzeCandidates(ctx context.Context, candidates []domstreamer.Candidate) ([]domai.CandidateAnalysis, error) {
	g.candidates = candidates
	out := make([]domai.CandidateAnalysis, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, domai.CandidateAnalysis{Username: c.Username})
	}
	return out, nil
}

func TestWrapErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid username", domstreamer.ErrInvalidUsername, http.StatusBadRequest},
		{"bad request", badRequest{fmt.Errorf("username is required")}, http.StatusBadRequest},
		{"unknown migration", fmt.Errorf("%w: nope", appmaint.ErrUnknownMigration), http.StatusBadRequest},
		{"streamer not found", domstreamer.ErrNotFound, http.StatusNotFound},
		{"analysis not found", domanalysis.ErrNotFound, http.StatusNotFound},
		{"quota", domai.ErrQuotaExceeded, http.StatusTooManyRequests},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
		{"ok", nil, http.StatusOK},
	}

	r := &Router{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := r.wrap(func(w http.ResponseWriter, req *http.Request) error {
				if tt.err == nil {
					w.WriteHeader(http.StatusOK)
				}
				return tt.err
			})
			rec := httptest.NewRecorder()
			h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
		})
	}
}

func TestAnalyzeCandidatesBodyShape(t *testing.T) {
	gw := &gatewayStub{}
	mux := NewRouter(&appeval.Service{AI: gw}, nil, nil)

	body := `{"streamers":[{"username":"ninja","probability":0.9},{"username":"pokimane","probability":0.7}]}`
	req := httptest.NewRequest(http.MethodPost, "/v1/user1/ai/streamers", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %q", rec.Code, rec.Body.String())
	}
	if len(gw.candidates) != 2 || gw.candidates[0].Username != "ninja" {
		t.Fatalf("gateway received %v", gw.candidates)
	}

	var resp struct {
		Analyses []domai.CandidateAnalysis `json:"analyses"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Analyses) != 2 {
		t.Fatalf("expected 2 analyses, got %v", resp.Analyses)
	}
}

func TestUserParamEnforcesKeyScope(t *testing.T) {
	mux := NewRouter(&appeval.Service{AI: &gatewayStub{}}, nil, nil)
	body := `{"streamers":[{"username":"ninja","probability":0.9}]}`

	req := httptest.NewRequest(http.MethodPost, "/v1/user1/ai/streamers", strings.NewReader(body))
	req = req.WithContext(context.WithValue(req.Context(), middleware.UserKey, "user2"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("cross-user request: status = %d, want 403", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/v1/user1/ai/streamers", strings.NewReader(body))
	req = req.WithContext(context.WithValue(req.Context(), middleware.UserKey, "user1"))
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("own-user request: status = %d, body %q", rec.Code, rec.Body.String())
	}
}

func TestAnalyzeCandidatesEmptyBody(t *testing.T) {
	mux := NewRouter(&appeval.Service{AI: &gatewayStub{}}, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/user1/ai/streamers", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
