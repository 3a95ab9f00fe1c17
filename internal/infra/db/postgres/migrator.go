package postgres

import (
	"context"
	"database/sql"
)

// Migrator runs the one-off backfills over the streamer cache. Postgres
// has no UPDATE ... LIMIT, so each statement bounds the batch with a
// keyed subselect.
type Migrator struct {
	db *sql.DB
}

func NewMigrator(db *sql.DB) *Migrator {
	return &Migrator{db: db}
}

// BackfillImageField copies the legacy profile_image_url column into
// image where image is still empty.
func (m *Migrator) BackfillImageField(ctx context.Context, limit int) (int, error) {
	const q = `
UPDATE streamers
SET image = profile_image_url, profile_image_url = NULL
WHERE login IN (
  SELECT login FROM streamers
  WHERE (image = '' OR image IS NULL)
    AND profile_image_url IS NOT NULL
  LIMIT $1
);`
	return m.exec(ctx, q, limit)
}

// BackfillSponsors rewrites legacy object-shaped sponsor entries
// ({"name": ...}) into the flat string list the current schema uses.
func (m *Migrator) BackfillSponsors(ctx context.Context, limit int) (int, error) {
	const q = `
UPDATE streamers
SET sponsors = (
      SELECT COALESCE(jsonb_agg(elem->>'name'), '[]'::jsonb)
      FROM jsonb_array_elements(sponsors) elem
    )
WHERE login IN (
  SELECT login FROM streamers
  WHERE jsonb_typeof(sponsors->0) = 'object'
  LIMIT $1
);`
	return m.exec(ctx, q, limit)
}

// RemoveLegacyViews nulls out the retired views column.
func (m *Migrator) RemoveLegacyViews(ctx context.Context, limit int) (int, error) {
	const q = `
UPDATE streamers
SET views = NULL
WHERE login IN (
  SELECT login FROM streamers
  WHERE views IS NOT NULL
  LIMIT $1
);`
	return m.exec(ctx, q, limit)
}

func (m *Migrator) exec(ctx context.Context, q string, limit int) (int, error) {
	res, err := m.db.ExecContext(ctx, q, limit)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}
