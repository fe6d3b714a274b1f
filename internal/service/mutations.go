package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/iliyamo/fyyur-booking/internal/metrics"
	"github.com/iliyamo/fyyur-booking/internal/model"
	"github.com/iliyamo/fyyur-booking/internal/queue"
	"github.com/iliyamo/fyyur-booking/internal/repository"
)

func required(fields map[string]string) error {
	var missing []string
	for name, v := range fields {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return fmt.Errorf("%w: missing %s", ErrValidation, strings.Join(missing, ", "))
}

func validateVenue(v *model.Venue) error {
	return required(map[string]string{"name": v.Name, "city": v.City, "state": v.State, "address": v.Address})
}

func validateArtist(a *model.Artist) error {
	return required(map[string]string{"name": a.Name, "city": a.City, "state": a.State})
}

// CreateVenue persists a new venue.  On success v.ID holds the new id.
func (d *Directory) CreateVenue(ctx context.Context, v *model.Venue) (err error) {
	defer func() { metrics.RecordMutation("venue", "create", outcome(err)) }()
	if err := validateVenue(v); err != nil {
		return err
	}
	v.Genres = v.Genres.Clean()
	if err := d.Venues.Create(ctx, v); err != nil {
		return persistence(ctx, "create venue", err)
	}
	d.publish(ctx, queue.NewEvent(queue.VenueCreated, v.ID, v.Name))
	return nil
}

// UpdateVenue replaces every field of an existing venue, genres included.
// ErrNotFound is returned when the venue does not exist.
func (d *Directory) UpdateVenue(ctx context.Context, v *model.Venue) (err error) {
	defer func() { metrics.RecordMutation("venue", "update", outcome(err)) }()
	if err := validateVenue(v); err != nil {
		return err
	}
	v.Genres = v.Genres.Clean()
	if err := d.Venues.Update(ctx, v); err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return fmt.Errorf("venue %d: %w", v.ID, ErrNotFound)
		}
		return persistence(ctx, "update venue", err)
	}
	d.publish(ctx, queue.NewEvent(queue.VenueUpdated, v.ID, v.Name))
	return nil
}

// DeleteVenue removes a venue and its shows.  ErrNotFound is returned when
// the venue does not exist.
func (d *Directory) DeleteVenue(ctx context.Context, id uint64) (err error) {
	defer func() { metrics.RecordMutation("venue", "delete", outcome(err)) }()
	if err := d.Venues.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return fmt.Errorf("venue %d: %w", id, ErrNotFound)
		}
		return persistence(ctx, "delete venue", err)
	}
	d.publish(ctx, queue.NewEvent(queue.VenueDeleted, id, ""))
	return nil
}

// CreateArtist persists a new artist.  On success a.ID holds the new id.
func (d *Directory) CreateArtist(ctx context.Context, a *model.Artist) (err error) {
	defer func() { metrics.RecordMutation("artist", "create", outcome(err)) }()
	if err := validateArtist(a); err != nil {
		return err
	}
	a.Genres = a.Genres.Clean()
	if err := d.Artists.Create(ctx, a); err != nil {
		return persistence(ctx, "create artist", err)
	}
	d.publish(ctx, queue.NewEvent(queue.ArtistCreated, a.ID, a.Name))
	return nil
}

// UpdateArtist replaces every field of an existing artist.  ErrNotFound is
// returned when the artist does not exist.
func (d *Directory) UpdateArtist(ctx context.Context, a *model.Artist) (err error) {
	defer func() { metrics.RecordMutation("artist", "update", outcome(err)) }()
	if err := validateArtist(a); err != nil {
		return err
	}
	a.Genres = a.Genres.Clean()
	if err := d.Artists.Update(ctx, a); err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return fmt.Errorf("artist %d: %w", a.ID, ErrNotFound)
		}
		return persistence(ctx, "update artist", err)
	}
	d.publish(ctx, queue.NewEvent(queue.ArtistUpdated, a.ID, a.Name))
	return nil
}

// CreateShow persists a new show.  ErrReferentialIntegrity is returned, and
// nothing is written, when the artist or the venue does not exist.
func (d *Directory) CreateShow(ctx context.Context, s *model.Show) (err error) {
	defer func() { metrics.RecordMutation("show", "create", outcome(err)) }()
	switch {
	case s.ArtistID == 0:
		return fmt.Errorf("%w: missing artist_id", ErrValidation)
	case s.VenueID == 0:
		return fmt.Errorf("%w: missing venue_id", ErrValidation)
	case s.StartTime.IsZero():
		return fmt.Errorf("%w: missing start_time", ErrValidation)
	}
	if err := d.Shows.Create(ctx, s); err != nil {
		if errors.Is(err, repository.ErrDanglingReference) {
			return fmt.Errorf("%w: %v", ErrReferentialIntegrity, err)
		}
		return persistence(ctx, "create show", err)
	}
	ev := queue.NewEvent(queue.ShowCreated, s.ID, "")
	ev.ArtistID, ev.VenueID = s.ArtistID, s.VenueID
	ev.StartTime = s.StartTime.UTC().Format(model.TimeLayout)
	d.publish(ctx, ev)
	return nil
}
