package mysql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	domain "github.com/streamfit/streamfit/internal/domain/company"
)

type CompanyRepository struct {
	db *sql.DB
}

func NewCompanyRepository(db *sql.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// Save overwrites the user's company profile wholesale.
func (r *CompanyRepository) Save(ctx context.Context, userID string, p *domain.Profile) error {
	const q = `
INSERT INTO company_profiles
  (user_id, name, description, industry, age_range, interests, demographics,
   ad_description, ad_tone, ad_keywords, updated_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
  name=VALUES(name), description=VALUES(description), industry=VALUES(industry),
  age_range=VALUES(age_range), interests=VALUES(interests), demographics=VALUES(demographics),
  ad_description=VALUES(ad_description), ad_tone=VALUES(ad_tone), ad_keywords=VALUES(ad_keywords),
  updated_at=VALUES(updated_at);
`
	_, err := r.db.ExecContext(ctx, q,
		stringOrDash(userID), p.Name, p.Description, p.Industry,
		p.TargetAudience.AgeRange,
		jsonColumn(p.TargetAudience.Interests), jsonColumn(p.TargetAudience.Demographics),
		p.AdContent.Description, p.AdContent.Tone, jsonColumn(p.AdContent.Keywords),
		time.Now(),
	)
	return err
}

// Get reads the user's profile, normalized at the storage boundary.
func (r *CompanyRepository) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	const q = `
SELECT name, description, industry, age_range, interests, demographics,
       ad_description, ad_tone, ad_keywords
FROM company_profiles
WHERE user_id=? LIMIT 1;
`
	row := r.db.QueryRowContext(ctx, q, userID)

	var p domain.Profile
	var interests, demographics, keywords []byte
	err := row.Scan(
		&p.Name, &p.Description, &p.Industry, &p.TargetAudience.AgeRange,
		&interests, &demographics,
		&p.AdContent.Description, &p.AdContent.Tone, &keywords,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := scanJSON(interests, &p.TargetAudience.Interests); err != nil {
		return nil, err
	}
	if err := scanJSON(demographics, &p.TargetAudience.Demographics); err != nil {
		return nil, err
	}
	if err := scanJSON(keywords, &p.AdContent.Keywords); err != nil {
		return nil, err
	}
	p.Normalize()
	return &p, nil
}
