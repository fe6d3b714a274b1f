package model

// Artist is a performer who can be booked at venues.  It corresponds to a row
// in the `artists` table.
type Artist struct {
	ID                 uint64 // artists.id
	Name               string // artists.name
	City               string // artists.city
	State              string // artists.state
	Phone              string // artists.phone
	Genres             Genres // artists.genres
	FacebookLink       string // artists.facebook_link
	ImageLink          string // artists.image_link
	WebsiteLink        string // artists.website_link
	SeekingVenue       bool   // artists.seeking_venue
	SeekingDescription string // artists.seeking_description
}
