package company

import (
	"context"
	"errors"
)

// ErrNotFound reports that a user has no saved company profile.
var ErrNotFound = errors.New("company profile not found")

// Repository port, keyed by user.
type Repository interface {
	Save(ctx context.Context, userID string, p *Profile) error
	Get(ctx context.Context, userID string) (*Profile, error)
}
