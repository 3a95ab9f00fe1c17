package maintenance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ErrUnknownMigration reports a migration name with no registered step.
var ErrUnknownMigration = errors.New("unknown migration")

// Migrator is the port for one-off data backfills over the streamer
// cache. Each call processes at most limit rows and returns how many it
// touched.
type Migrator interface {
	BackfillImageField(ctx context.Context, limit int) (int, error)
	BackfillSponsors(ctx context.Context, limit int) (int, error)
	RemoveLegacyViews(ctx context.Context, limit int) (int, error)
}

// chunkSize matches the document-write limit the original backfills were
// sized around; chunkDelay throttles writes between chunks.
const (
	chunkSize  = 400
	chunkDelay = 500 * time.Millisecond
)

// Service runs named migrations in throttled chunks.
type Service struct {
	Migrator Migrator
	Logger   *zap.Logger

	// Sleep is swappable in tests; defaults to time.Sleep.
	Sleep func(time.Duration)
}

// Run executes the named migration until no rows remain, pausing between
// chunks. Returns the total number of rows updated.
func (s *Service) Run(ctx context.Context, name string) (int, error) {
	step, err := s.step(name)
	if err != nil {
		return 0, err
	}
	sleep := s.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	total := 0
	for {
		n, err := step(ctx, chunkSize)
		if err != nil {
			return total, fmt.Errorf("migration %s: %w", name, err)
		}
		total += n
		if n < chunkSize {
			break
		}
		sleep(chunkDelay)
	}
	s.Logger.Info("migration finished", zap.String("name", name), zap.Int("updated", total))
	return total, nil
}

func (s *Service) step(name string) (func(context.Context, int) (int, error), error) {
	switch name {
	case "image-field":
		return s.Migrator.BackfillImageField, nil
	case "sponsors":
		return s.Migrator.BackfillSponsors, nil
	case "remove-views":
		return s.Migrator.RemoveLegacyViews, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMigration, name)
	}
}
