package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	domain "github.com/streamfit/streamfit/internal/domain/analysis"
	"github.com/streamfit/streamfit/internal/domain/streamer"
)

type AnalysisRepository struct{ db *sql.DB }

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository { return &AnalysisRepository{db: db} }

// Get fetches the analysis record for one (user, streamer) pair.
func (r *AnalysisRepository) Get(ctx context.Context, userID string, login streamer.Login) (*domain.Analysis, error) {
	const q = `
SELECT user_id, login, ai_score, relevance_score, ai_summary, ai_recommendation, updated_at
FROM streamer_analyses
WHERE user_id=$1 AND login=$2 LIMIT 1;`
	row := r.db.QueryRowContext(ctx, q, userID, login)
	a, err := scanAnalysis(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return a, err
}

// List returns every analysis for a user, newest first.
func (r *AnalysisRepository) List(ctx context.Context, userID string) ([]*domain.Analysis, error) {
	const q = `
SELECT user_id, login, ai_score, relevance_score, ai_summary, ai_recommendation, updated_at
FROM streamer_analyses
WHERE user_id=$1
ORDER BY updated_at DESC, login ASC;`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Analysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// DeleteByUser drops every cached analysis for a user. Called when the
// company profile changes and relevance scores go stale.
func (r *AnalysisRepository) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM streamer_analyses WHERE user_id=$1;`, userID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row rowScanner) (*domain.Analysis, error) {
	var a domain.Analysis
	var updated time.Time
	if err := row.Scan(
		&a.UserID, &a.Login, &a.AIScore, &a.RelevanceScore,
		&a.AISummary, &a.AIRecommendation, &updated,
	); err != nil {
		return nil, err
	}
	a.UpdatedAt = updated
	return &a, nil
}

type HistoryRepository struct{ db *sql.DB }

func NewHistoryRepository(db *sql.DB) *HistoryRepository { return &HistoryRepository{db: db} }

// List returns the user's history snapshots, newest first.
func (r *HistoryRepository) List(ctx context.Context, userID string) ([]*domain.HistoryEntry, error) {
	const q = `
SELECT id, user_id, login, name, image, followers,
       ai_score, relevance_score, ai_summary, ai_recommendation, analyzed_at
FROM history_entries
WHERE user_id=$1
ORDER BY analyzed_at DESC;`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.HistoryEntry
	for rows.Next() {
		var h domain.HistoryEntry
		var analyzed time.Time
		if err := rows.Scan(
			&h.ID, &h.UserID, &h.Login, &h.Name, &h.Image, &h.Followers,
			&h.AIScore, &h.RelevanceScore, &h.AISummary, &h.AIRecommendation, &analyzed,
		); err != nil {
			return nil, err
		}
		h.AnalyzedAt = analyzed
		out = append(out, &h)
	}
	return out, rows.Err()
}

// EvaluationSaver commits one evaluation's writes in a single transaction.
type EvaluationSaver struct{ db *sql.DB }

func NewEvaluationSaver(db *sql.DB) *EvaluationSaver { return &EvaluationSaver{db: db} }

const upsertAnalysisQ = `
INSERT INTO streamer_analyses
  (user_id, login, ai_score, relevance_score, ai_summary, ai_recommendation, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)
ON CONFLICT (user_id, login) DO UPDATE SET
  ai_score = EXCLUDED.ai_score,
  relevance_score = EXCLUDED.relevance_score,
  ai_summary = EXCLUDED.ai_summary,
  ai_recommendation = EXCLUDED.ai_recommendation,
  updated_at = EXCLUDED.updated_at;`

const upsertHistoryQ = `
INSERT INTO history_entries
  (id, user_id, login, name, image, followers,
   ai_score, relevance_score, ai_summary, ai_recommendation, analyzed_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
ON CONFLICT (user_id, login) DO UPDATE SET
  id = EXCLUDED.id,
  name = EXCLUDED.name,
  image = EXCLUDED.image,
  followers = EXCLUDED.followers,
  ai_score = EXCLUDED.ai_score,
  relevance_score = EXCLUDED.relevance_score,
  ai_summary = EXCLUDED.ai_summary,
  ai_recommendation = EXCLUDED.ai_recommendation,
  analyzed_at = EXCLUDED.analyzed_at;`

// SaveEvaluation writes the analysis record, its history snapshot, and an
// optional fresh raw record atomically. Partial failure rolls back.
func (s *EvaluationSaver) SaveEvaluation(ctx context.Context, a *domain.Analysis, h *domain.HistoryEntry, raw *streamer.RawRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := execUpsertAnalysis(ctx, tx, a); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, upsertHistoryQ,
		h.ID, stringOrDash(h.UserID), h.Login, stringOrDash(h.Name), h.Image, h.Followers,
		h.AIScore, h.RelevanceScore, h.AISummary, h.AIRecommendation, h.AnalyzedAt,
	); err != nil {
		return err
	}
	if raw != nil {
		if err := saveRawRecord(ctx, tx, raw); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// SaveAnalyses commits a batch of refreshed analyses in one transaction.
func (s *EvaluationSaver) SaveAnalyses(ctx context.Context, list []*domain.Analysis) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, a := range list {
		if err := execUpsertAnalysis(ctx, tx, a); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func execUpsertAnalysis(ctx context.Context, ex execer, a *domain.Analysis) error {
	updated := a.UpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}
	_, err := ex.ExecContext(ctx, upsertAnalysisQ,
		stringOrDash(a.UserID), a.Login, a.AIScore, a.RelevanceScore,
		a.AISummary, a.AIRecommendation, updated,
	)
	return err
}
