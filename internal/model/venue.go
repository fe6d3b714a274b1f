package model

// Venue is a location that can host performances.  It corresponds to a row
// in the `venues` table.
//
// Fields:
//  ID                 – primary key identifier.
//  Name               – display name of the venue.
//  City, State        – free-text location, not normalised.
//  Address, Phone     – contact details.
//  Genres             – ordered list of genre tags.
//  FacebookLink,
//  ImageLink,
//  WebsiteLink        – optional URLs, empty when unset.
//  SeekingTalent      – whether the venue is looking for artists.
//  SeekingDescription – free text shown when SeekingTalent is true.
type Venue struct {
	ID                 uint64 // venues.id
	Name               string // venues.name
	City               string // venues.city
	State              string // venues.state
	Address            string // venues.address
	Phone              string // venues.phone
	Genres             Genres // venues.genres
	FacebookLink       string // venues.facebook_link
	ImageLink          string // venues.image_link
	WebsiteLink        string // venues.website_link
	SeekingTalent      bool   // venues.seeking_talent
	SeekingDescription string // venues.seeking_description
}
