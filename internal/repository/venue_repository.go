// Package repository contains data access logic separated from HTTP handlers.
// This file implements persistence for venues: CRUD, the per-area listing
// with upcoming show counts and the name search.
package repository

import (
	"context"      // context allows passing deadlines and cancellation signals to DB operations
	"database/sql" // sql provides generic database operations and drivers
	"errors"       // errors is used to match sql.ErrNoRows
	"time"

	"github.com/iliyamo/fyyur-booking/internal/model"
)

const venueColumns = `id, name, city, state, address, phone, genres, facebook_link,
	image_link, website_link, seeking_talent, seeking_description`

// VenueRepo encapsulates all database queries related to venues.  It
// depends on a sql.DB connection which should be configured elsewhere.
type VenueRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewVenueRepo constructs a VenueRepo with the provided DB handle.
func NewVenueRepo(db *sql.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

// VenueArea is one venue row of the grouped listing: its location plus the
// number of upcoming shows.
type VenueArea struct {
	ID            uint64
	Name          string
	City          string
	State         string
	UpcomingShows int
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVenue(s rowScanner) (*model.Venue, error) {
	var v model.Venue
	if err := s.Scan(&v.ID, &v.Name, &v.City, &v.State, &v.Address, &v.Phone, &v.Genres,
		&v.FacebookLink, &v.ImageLink, &v.WebsiteLink, &v.SeekingTalent, &v.SeekingDescription); err != nil {
		return nil, err
	}
	return &v, nil
}

// Create inserts a new venue in its own transaction.  On success the
// venue's ID field is populated with the generated value.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) error {
	const q = `INSERT INTO venues (name, city, state, address, phone, genres, facebook_link,
	           image_link, website_link, seeking_talent, seeking_description)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	return inTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, q, v.Name, v.City, v.State, v.Address, v.Phone, v.Genres,
			v.FacebookLink, v.ImageLink, v.WebsiteLink, v.SeekingTalent, v.SeekingDescription)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		v.ID = uint64(id)
		return nil
	})
}

// GetByID fetches a venue by its ID.  It returns ErrVenueNotFound if no row
// is found.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
	v, err := scanVenue(r.db.QueryRowContext(ctx, "SELECT "+venueColumns+" FROM venues WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return v, nil
}

// Update replaces every column of an existing venue.  The existence check
// and the write share one transaction; ErrVenueNotFound is returned when
// the id is unknown.  MySQL reports zero affected rows for an identical
// update, so RowsAffected cannot be used for the check.
func (r *VenueRepo) Update(ctx context.Context, v *model.Venue) error {
	const q = `UPDATE venues
	           SET name = ?, city = ?, state = ?, address = ?, phone = ?, genres = ?,
	               facebook_link = ?, image_link = ?, website_link = ?,
	               seeking_talent = ?, seeking_description = ?
	           WHERE id = ?`
	return inTx(ctx, r.db, func(tx *sql.Tx) error {
		ok, err := exists(ctx, tx, "venues", v.ID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrVenueNotFound
		}
		_, err = tx.ExecContext(ctx, q, v.Name, v.City, v.State, v.Address, v.Phone, v.Genres,
			v.FacebookLink, v.ImageLink, v.WebsiteLink, v.SeekingTalent, v.SeekingDescription, v.ID)
		return err
	})
}

// Delete removes a venue together with all of its shows in one
// transaction.  ErrVenueNotFound is returned when the id is unknown; in that
// case nothing is deleted.
func (r *VenueRepo) Delete(ctx context.Context, id uint64) error {
	return inTx(ctx, r.db, func(tx *sql.Tx) error {
		ok, err := exists(ctx, tx, "venues", id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrVenueNotFound
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM shows WHERE venue_id = ?`, id); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `DELETE FROM venues WHERE id = ?`, id)
		return err
	})
}

// ListWithUpcoming returns every venue with its location and the number of
// shows starting strictly after now.  A single LEFT JOIN aggregate replaces
// one count query per venue.  Rows are ordered by city, state, name and id.
func (r *VenueRepo) ListWithUpcoming(ctx context.Context, now time.Time) ([]VenueArea, error) {
	const q = `SELECT v.id, v.name, v.city, v.state,
	                  COALESCE(SUM(CASE WHEN s.start_time > ? THEN 1 ELSE 0 END), 0) AS upcoming
	           FROM venues v
	           LEFT JOIN shows s ON s.venue_id = v.id
	           GROUP BY v.id, v.name, v.city, v.state
	           ORDER BY v.city, v.state, v.name, v.id`
	rows, err := r.db.QueryContext(ctx, q, now.UTC().Format(model.TimeLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []VenueArea
	for rows.Next() {
		var a VenueArea
		if err := rows.Scan(&a.ID, &a.Name, &a.City, &a.State, &a.UpcomingShows); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchByName returns venues whose name contains term, ignoring case, with
// each venue's own upcoming show count.  An empty term matches every venue.
func (r *VenueRepo) SearchByName(ctx context.Context, term string, now time.Time) ([]NamedCount, error) {
	const q = `SELECT v.id, v.name,
	                  COALESCE(SUM(CASE WHEN s.start_time > ? THEN 1 ELSE 0 END), 0) AS upcoming
	           FROM venues v
	           LEFT JOIN shows s ON s.venue_id = v.id
	           WHERE LOWER(v.name) LIKE ? ESCAPE '!'
	           GROUP BY v.id, v.name
	           ORDER BY v.name, v.id`
	return queryNamedCounts(ctx, r.db, q, now.UTC().Format(model.TimeLayout), likePattern(term))
}

func queryNamedCounts(ctx context.Context, db *sql.DB, q string, args ...any) ([]NamedCount, error) {
	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []NamedCount{}
	for rows.Next() {
		var n NamedCount
		if err := rows.Scan(&n.ID, &n.Name, &n.UpcomingShows); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
