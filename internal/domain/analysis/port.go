package analysis

import (
	"context"
	"errors"

	"github.com/streamfit/streamfit/internal/domain/streamer"
)

// ErrNotFound reports a missing per-user analysis record.
var ErrNotFound = errors.New("analysis not found")

// Repository port for per-user analysis records.
type Repository interface {
	Get(ctx context.Context, userID string, login streamer.Login) (*Analysis, error)
	List(ctx context.Context, userID string) ([]*Analysis, error)
	DeleteByUser(ctx context.Context, userID string) error
}

// HistoryRepository port for the denormalized history view.
type HistoryRepository interface {
	List(ctx context.Context, userID string) ([]*HistoryEntry, error)
}

// Saver commits one evaluation's writes (analysis record, history entry,
// optional streamer cache update) as a single transaction. Partial failure
// rolls everything back.
type Saver interface {
	SaveEvaluation(ctx context.Context, a *Analysis, h *HistoryEntry, raw *streamer.RawRecord) error
	SaveAnalyses(ctx context.Context, list []*Analysis) error
}
