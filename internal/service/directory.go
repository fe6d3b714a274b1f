// Package service implements the booking directory on top of the
// repositories: the venue/artist/show read models (grouping, search, show
// history) and the create/update/delete operations.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/fyyur-booking/internal/logging"
	"github.com/iliyamo/fyyur-booking/internal/metrics"
	"github.com/iliyamo/fyyur-booking/internal/queue"
	"github.com/iliyamo/fyyur-booking/internal/repository"
)

// Error kinds returned by Directory.  Callers match them with errors.Is; the
// wrapped message carries the detail.
var (
	ErrValidation           = errors.New("validation failure")
	ErrNotFound             = errors.New("not found")
	ErrPersistence          = errors.New("persistence failure")
	ErrReferentialIntegrity = errors.New("referential integrity failure")
)

// EventPublisher receives a DirectoryEvent after each committed write.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.DirectoryEvent) error
}

// Directory bundles the repositories behind every page of the site.
type Directory struct {
	Venues  *repository.VenueRepo
	Artists *repository.ArtistRepo
	Shows   *repository.ShowRepo
	Events  EventPublisher   // optional
	Now     func() time.Time // evaluation instant for upcoming/past
}

// NewDirectory constructs a Directory and panics if a repository is nil.
// events may be nil, in which case no events are published.
func NewDirectory(venues *repository.VenueRepo, artists *repository.ArtistRepo, shows *repository.ShowRepo, events EventPublisher) *Directory {
	if venues == nil || artists == nil || shows == nil {
		panic("nil repository passed to NewDirectory")
	}
	return &Directory{
		Venues:  venues,
		Artists: artists,
		Shows:   shows,
		Events:  events,
		Now:     func() time.Time { return time.Now().UTC() },
	}
}

func (d *Directory) now() time.Time {
	if d.Now == nil {
		return time.Now().UTC()
	}
	return d.Now().UTC()
}

const publishTimeout = 2 * time.Second

// publish hands ev to the broker.  The write it describes is already
// committed, so a failure is logged and otherwise ignored.
func (d *Directory) publish(ctx context.Context, ev queue.DirectoryEvent) {
	if d.Events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := d.Events.Publish(ctx, ev); err != nil {
		metrics.EventsPublished.WithLabelValues("error").Inc()
		logging.Ctx(ctx).Warn().Err(err).Str("event", ev.Type).Uint64("entity_id", ev.EntityID).
			Msg("publish directory event failed")
		return
	}
	metrics.EventsPublished.WithLabelValues("ok").Inc()
}

// outcome maps an error returned by Directory to a metric label.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrReferentialIntegrity):
		return "referential_integrity"
	default:
		return "persistence"
	}
}

// persistence wraps a store error as ErrPersistence and logs it.
func persistence(ctx context.Context, op string, err error) error {
	logging.Ctx(ctx).Error().Err(err).Str("op", op).Msg("directory write failed")
	return fmt.Errorf("%w: %s: %v", ErrPersistence, op, err)
}
