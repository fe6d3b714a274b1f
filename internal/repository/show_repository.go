// Package repository contains data access logic for Show operations. A Show
// is the join record between an artist and a venue; every read here resolves
// both sides with explicit joins so callers never fetch per row.
package repository

import (
	"context"      // context for controlling query lifetime
	"database/sql" // sql provides DB abstraction
	"fmt"
	"time"

	"github.com/iliyamo/fyyur-booking/internal/model"
)

// ShowRow is a show joined with the display fields of its artist and venue.
type ShowRow struct {
	ID              uint64
	ArtistID        uint64
	ArtistName      string
	ArtistImageLink string
	VenueID         uint64
	VenueName       string
	VenueImageLink  string
	StartTime       time.Time
}

// ShowRepo manages persistence for shows.
type ShowRepo struct {
	db *sql.DB
}

// NewShowRepo constructs a ShowRepo with the given DB handle.
func NewShowRepo(db *sql.DB) *ShowRepo {
	return &ShowRepo{db: db}
}

const showJoin = `SELECT s.id, s.artist_id, a.name, a.image_link, s.venue_id, v.name, v.image_link, s.start_time
	FROM shows s
	JOIN artists a ON a.id = s.artist_id
	JOIN venues v  ON v.id = s.venue_id`

// Create inserts a new show.  Both references are checked inside the
// transaction before the insert; when either is missing the transaction is
// rolled back and an error wrapping ErrDanglingReference is returned.  A
// foreign key violation raised by the database (e.g. a concurrent venue
// delete) maps to the same error.
func (r *ShowRepo) Create(ctx context.Context, s *model.Show) error {
	const q = `INSERT INTO shows (artist_id, venue_id, start_time) VALUES (?, ?, ?)`
	return inTx(ctx, r.db, func(tx *sql.Tx) error {
		ok, err := exists(ctx, tx, "artists", s.ArtistID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("artist %d: %w", s.ArtistID, ErrDanglingReference)
		}
		if ok, err = exists(ctx, tx, "venues", s.VenueID); err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("venue %d: %w", s.VenueID, ErrDanglingReference)
		}
		res, err := tx.ExecContext(ctx, q, s.ArtistID, s.VenueID, s.StartTime.UTC().Format(model.TimeLayout))
		if err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%v: %w", err, ErrDanglingReference)
			}
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		s.ID = uint64(id)
		return nil
	})
}

// ListAll returns every show ordered by start time.
func (r *ShowRepo) ListAll(ctx context.Context) ([]ShowRow, error) {
	return r.query(ctx, showJoin+` ORDER BY s.start_time, s.id`)
}

// ListByVenue returns the shows hosted by a venue ordered by start time.
func (r *ShowRepo) ListByVenue(ctx context.Context, venueID uint64) ([]ShowRow, error) {
	return r.query(ctx, showJoin+` WHERE s.venue_id = ? ORDER BY s.start_time, s.id`, venueID)
}

// ListByArtist returns the shows played by an artist ordered by start time.
func (r *ShowRepo) ListByArtist(ctx context.Context, artistID uint64) ([]ShowRow, error) {
	return r.query(ctx, showJoin+` WHERE s.artist_id = ? ORDER BY s.start_time, s.id`, artistID)
}

func (r *ShowRepo) query(ctx context.Context, q string, args ...any) ([]ShowRow, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := []ShowRow{}
	for rows.Next() {
		var s ShowRow
		if err := rows.Scan(
			&s.ID, &s.ArtistID, &s.ArtistName, &s.ArtistImageLink,
			&s.VenueID, &s.VenueName, &s.VenueImageLink, &s.StartTime,
		); err != nil {
			return nil, err
		}
		s.StartTime = s.StartTime.UTC()
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
