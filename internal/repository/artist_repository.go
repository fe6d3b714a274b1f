package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/fyyur-booking/internal/model"
)

const artistColumns = `id, name, city, state, phone, genres, facebook_link,
	image_link, website_link, seeking_venue, seeking_description`

// ArtistRepo manages persistence for artists.
type ArtistRepo struct {
	db *sql.DB
}

// NewArtistRepo constructs an ArtistRepo with the given DB handle.
func NewArtistRepo(db *sql.DB) *ArtistRepo {
	return &ArtistRepo{db: db}
}

func scanArtist(s rowScanner) (*model.Artist, error) {
	var a model.Artist
	if err := s.Scan(&a.ID, &a.Name, &a.City, &a.State, &a.Phone, &a.Genres,
		&a.FacebookLink, &a.ImageLink, &a.WebsiteLink, &a.SeekingVenue, &a.SeekingDescription); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a new artist and assigns the generated ID back to it.
func (r *ArtistRepo) Create(ctx context.Context, a *model.Artist) error {
	const q = `INSERT INTO artists (name, city, state, phone, genres, facebook_link,
	           image_link, website_link, seeking_venue, seeking_description)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	return inTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, q, a.Name, a.City, a.State, a.Phone, a.Genres,
			a.FacebookLink, a.ImageLink, a.WebsiteLink, a.SeekingVenue, a.SeekingDescription)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		a.ID = uint64(id)
		return nil
	})
}

// GetByID retrieves an artist by its ID.  It returns ErrArtistNotFound if
// there is no matching row.
func (r *ArtistRepo) GetByID(ctx context.Context, id uint64) (*model.Artist, error) {
	a, err := scanArtist(r.db.QueryRowContext(ctx, "SELECT "+artistColumns+" FROM artists WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArtistNotFound
		}
		return nil, err
	}
	return a, nil
}

// Update replaces every column of an existing artist.  It returns
// ErrArtistNotFound when the id is unknown.
func (r *ArtistRepo) Update(ctx context.Context, a *model.Artist) error {
	const q = `UPDATE artists
	           SET name = ?, city = ?, state = ?, phone = ?, genres = ?,
	               facebook_link = ?, image_link = ?, website_link = ?,
	               seeking_venue = ?, seeking_description = ?
	           WHERE id = ?`
	return inTx(ctx, r.db, func(tx *sql.Tx) error {
		ok, err := exists(ctx, tx, "artists", a.ID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrArtistNotFound
		}
		_, err = tx.ExecContext(ctx, q, a.Name, a.City, a.State, a.Phone, a.Genres,
			a.FacebookLink, a.ImageLink, a.WebsiteLink, a.SeekingVenue, a.SeekingDescription, a.ID)
		return err
	})
}

// ListAll returns the id and name of every artist ordered by name.
func (r *ArtistRepo) ListAll(ctx context.Context) ([]NamedCount, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM artists ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []NamedCount{}
	for rows.Next() {
		var n NamedCount
		if err := rows.Scan(&n.ID, &n.Name); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchByName returns artists whose name contains term, ignoring case,
// each with its own upcoming show count.  An empty term matches every artist.
func (r *ArtistRepo) SearchByName(ctx context.Context, term string, now time.Time) ([]NamedCount, error) {
	const q = `SELECT a.id, a.name,
	                  COALESCE(SUM(CASE WHEN s.start_time > ? THEN 1 ELSE 0 END), 0) AS upcoming
	           FROM artists a
	           LEFT JOIN shows s ON s.artist_id = a.id
	           WHERE LOWER(a.name) LIKE ? ESCAPE '!'
	           GROUP BY a.id, a.name
	           ORDER BY a.name, a.id`
	return queryNamedCounts(ctx, r.db, q, now.UTC().Format(model.TimeLayout), likePattern(term))
}
