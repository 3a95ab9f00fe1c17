package mysql

import (
	"context"
	"database/sql"
)

// Migrator runs the one-off backfills over the streamer cache. Each call
// touches at most limit rows so callers can throttle between chunks.
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
WHERE (image = '' OR image IS NULL)
  AND profile_image_url IS NOT NULL
LIMIT ?;
`
	return m.exec(ctx, q, limit)
}

// BackfillSponsors rewrites legacy object-shaped sponsor entries
// ({"name": ...}) into the flat string list the current schema uses.
func (m *Migrator) BackfillSponsors(ctx context.Context, limit int) (int, error) {
	const q = `
UPDATE streamers
SET sponsors = (
      SELECT JSON_ARRAYAGG(JSON_UNQUOTE(JSON_EXTRACT(s.value, '$.name')))
      FROM JSON_TABLE(sponsors, '$[*]' COLUMNS (value JSON PATH '$')) s
    )
WHERE JSON_TYPE(JSON_EXTRACT(sponsors, '$[0]')) = 'OBJECT'
LIMIT ?;
`
	return m.exec(ctx, q, limit)
}

// RemoveLegacyViews nulls out the retired views column.
func (m *Migrator) RemoveLegacyViews(ctx context.Context, limit int) (int, error) {
	const q = `
UPDATE streamers
SET views = NULL
WHERE views IS NOT NULL
LIMIT ?;
`
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
