// Package queue defines message payloads exchanged over the message broker
// and the publisher/consumer pair that moves them.
package queue

import (
	"time"

	"github.com/google/uuid"
)

// Event types published after a directory change is committed.
const (
	VenueCreated  = "venue.created"
	VenueUpdated  = "venue.updated"
	VenueDeleted  = "venue.deleted"
	ArtistCreated = "artist.created"
	ArtistUpdated = "artist.updated"
	ShowCreated   = "show.created"
)

// DirectoryEvent is published when a venue, artist or show changes.  It
// carries enough information for downstream consumers to log or notify
// without querying the primary database.
type DirectoryEvent struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	EntityID   uint64 `json:"entity_id"`
	Name       string `json:"name,omitempty"`
	ArtistID   uint64 `json:"artist_id,omitempty"`
	VenueID    uint64 `json:"venue_id,omitempty"`
	StartTime  string `json:"start_time,omitempty"`
	OccurredAt string `json:"occurred_at"`
}

// NewEvent stamps a fresh id and the current UTC time on an event.
func NewEvent(typ string, entityID uint64, name string) DirectoryEvent {
	return DirectoryEvent{
		ID:         uuid.NewString(),
		Type:       typ,
		EntityID:   entityID,
		Name:       name,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
}
