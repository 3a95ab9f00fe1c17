package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func authedHandler(t *testing.T, wantUser string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := GetUserFromContext(r.Context()); got != wantUser {
			t.Errorf("user = %q, want %q", got, wantUser)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAPIKeyAuth(t *testing.T) {
	keys := map[string]string{"user-1": "secret-key"}
	h := APIKeyAuth(keys)(authedHandler(t, "user-1"))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"bearer", "Bearer secret-key", http.StatusOK},
		{"bare", "secret-key", http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"wrong", "Bearer nope", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/user-1/streamers", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
		})
	}
}

func TestAPIKeyAuthSkipsHealth(t *testing.T) {
	h := APIKeyAuth(map[string]string{})(authedHandler(t, ""))
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestValidateUserID(t *testing.T) {
	if err := ValidateUserID("user_1-ok"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	for _, bad := range []string{"", "has space", "semi;colon", "sixty-five-chars-xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx"} {
		if err := ValidateUserID(bad); err == nil {
			t.Errorf("ValidateUserID(%q) = nil, want error", bad)
		}
	}
}

func TestTokenBucketExhausts(t *testing.T) {
	tb := NewTokenBucket(2, 1)
	if !tb.Allow() || !tb.Allow() {
		t.Fatal("first two requests should pass")
	}
	if tb.Allow() {
		t.Error("third immediate request should be limited")
	}
}
