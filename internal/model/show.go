package model

import "time"

// TimeLayout is the fixed pattern used both for DATETIME values sent to the
// database and for timestamps handed to templates.
const TimeLayout = "2006-01-02 15:04:05"

// Show is one scheduled performance of one artist at one venue.  It is the
// join record between artists and venues.
//
// Fields:
//  ID        – primary key identifier.
//  ArtistID  – performing artist (artists.id).
//  VenueID   – hosting venue (venues.id).
//  StartTime – when the performance begins, stored in UTC.
type Show struct {
	ID        uint64    // shows.id
	ArtistID  uint64    // shows.artist_id
	VenueID   uint64    // shows.venue_id
	StartTime time.Time // shows.start_time
}

// Upcoming reports whether the show starts strictly after now.  A show that
// is not upcoming is past; the classification is never stored.
func (s Show) Upcoming(now time.Time) bool {
	return s.StartTime.After(now)
}
