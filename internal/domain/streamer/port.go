package streamer

import (
	"context"
	"errors"
)

// ErrNotFound reports a missing streamer record. Infra adapters translate
// their driver-level "no rows" errors into this sentinel.
var ErrNotFound = errors.New("streamer not found")

// ErrInvalidUsername reports a username that fails Twitch's format rules.
var ErrInvalidUsername = errors.New("invalid twitch username")

// Repository port for the global streamer cache (shared across users).
type Repository interface {
	Save(ctx context.Context, r *RawRecord) error
	Get(ctx context.Context, login Login) (*RawRecord, error)
}

// Provider port for the third-party streamer-data service.
type Provider interface {
	FetchStreamer(ctx context.Context, login Login) (*RawRecord, error)
	SearchCandidates(ctx context.Context, userID string) ([]Candidate, error)
}

// Archive port for raw payload snapshots (object storage).
type Archive interface {
	StorePayload(ctx context.Context, key string, payload []byte) (string, error)
}
