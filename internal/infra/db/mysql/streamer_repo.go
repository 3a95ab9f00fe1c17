package mysql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	domain "github.com/streamfit/streamfit/internal/domain/streamer"
)

type StreamerRepository struct {
	db *sql.DB
}

func NewStreamerRepository(db *sql.DB) *StreamerRepository {
	return &StreamerRepository{db: db}
}

// Save upserts a raw provider record into the global streamer cache.
func (r *StreamerRepository) Save(ctx context.Context, rec *domain.RawRecord) error {
	return saveRawRecord(ctx, r.db, rec)
}

// Get fetches a cached raw record by login.
func (r *StreamerRepository) Get(ctx context.Context, login domain.Login) (*domain.RawRecord, error) {
	const q = `
SELECT login, name, image, followers, description, game, country_code,
       sponsors, socials, panel_elements, panel_images, panel_links,
       archive_url, fetched_at
FROM streamers
WHERE login=? LIMIT 1;
`
	row := r.db.QueryRowContext(ctx, q, login)

	var rec domain.RawRecord
	var sponsors, socials, panels, panelImages, panelLinks []byte
	var fetched time.Time
	err := row.Scan(
		&rec.Login, &rec.Name, &rec.Image, &rec.Followers, &rec.Description,
		&rec.Game, &rec.CountryCode,
		&sponsors, &socials, &panels, &panelImages, &panelLinks,
		&rec.ArchiveURL, &fetched,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	rec.FetchedAt = fetched

	if err := scanJSON(sponsors, &rec.Sponsors); err != nil {
		return nil, err
	}
	if err := scanJSON(socials, &rec.Socials); err != nil {
		return nil, err
	}
	if err := scanJSON(panels, &rec.PanelElements); err != nil {
		return nil, err
	}
	if err := scanJSON(panelImages, &rec.PanelImageURLs); err != nil {
		return nil, err
	}
	if err := scanJSON(panelLinks, &rec.PanelLinkURLs); err != nil {
		return nil, err
	}
	rec.Normalize()
	return &rec, nil
}

// execer covers *sql.DB and *sql.Tx so the transactional saver can reuse
// the same statements.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func saveRawRecord(ctx context.Context, ex execer, rec *domain.RawRecord) error {
	const q = `
INSERT INTO streamers
  (login, name, image, followers, description, game, country_code,
   sponsors, socials, panel_elements, panel_images, panel_links, archive_url, fetched_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
  name=VALUES(name), image=VALUES(image), followers=VALUES(followers),
  description=VALUES(description), game=VALUES(game), country_code=VALUES(country_code),
  sponsors=VALUES(sponsors), socials=VALUES(socials), panel_elements=VALUES(panel_elements),
  panel_images=VALUES(panel_images), panel_links=VALUES(panel_links),
  archive_url=VALUES(archive_url), fetched_at=VALUES(fetched_at);
`
	fetched := rec.FetchedAt
	if fetched.IsZero() {
		fetched = time.Now()
	}
	_, err := ex.ExecContext(ctx, q,
		rec.Login, stringOrDash(rec.Name), rec.Image, rec.Followers, rec.Description,
		rec.Game, rec.CountryCode,
		jsonColumn(rec.Sponsors), jsonColumn(rec.Socials), jsonColumn(rec.PanelElements),
		jsonColumn(rec.PanelImageURLs), jsonColumn(rec.PanelLinkURLs),
		rec.ArchiveURL, fetched,
	)
	return err
}
