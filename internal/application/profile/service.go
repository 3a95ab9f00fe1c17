package profile

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/streamfit/streamfit/internal/domain/analysis"
	"github.com/streamfit/streamfit/internal/domain/company"
)

// Service implements the company-profile use cases.
type Service struct {
	Companies company.Repository
	Analyses  analysis.Repository
	Logger    *zap.Logger
}

// Get returns the user's profile, normalized. A user without a saved
// profile gets an empty default rather than an error.
func (s *Service) Get(ctx context.Context, userID string) (*company.Profile, error) {
	p, err := s.Companies.Get(ctx, userID)
	if errors.Is(err, company.ErrNotFound) {
		p = &company.Profile{}
	} else if err != nil {
		return nil, err
	}
	p.Normalize()
	return p, nil
}

// Save overwrites the user's profile wholesale and invalidates every
// cached analysis for that user, since relevance scores are profile
// dependent.
func (s *Service) Save(ctx context.Context, userID string, p *company.Profile) error {
	p.Normalize()
	if err := s.Companies.Save(ctx, userID, p); err != nil {
		return err
	}
	if err := s.Analyses.DeleteByUser(ctx, userID); err != nil {
		return err
	}
	s.Logger.Info("company profile saved, cached analyses invalidated", zap.String("user", userID))
	return nil
}
