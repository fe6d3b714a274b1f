package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/iliyamo/fyyur-booking/internal/model"
	"github.com/iliyamo/fyyur-booking/internal/repository"
)

// VenueDetail is everything the venue page shows.
type VenueDetail struct {
	ID                 uint64
	Name               string
	Genres             []string
	Address            string
	City               string
	State              string
	Phone              string
	Website            string
	FacebookLink       string
	SeekingTalent      bool
	SeekingDescription string
	ImageLink          string
	PastShows          []ShowEntry
	UpcomingShows      []ShowEntry
	PastShowsCount     int
	UpcomingShowsCount int
}

// ArtistDetail is everything the artist page shows.
type ArtistDetail struct {
	ID                 uint64
	Name               string
	Genres             []string
	City               string
	State              string
	Phone              string
	Website            string
	FacebookLink       string
	SeekingVenue       bool
	SeekingDescription string
	ImageLink          string
	PastShows          []ShowEntry
	UpcomingShows      []ShowEntry
	PastShowsCount     int
	UpcomingShowsCount int
}

// Areas returns all venues grouped by city and state, each venue with its
// number of upcoming shows.
func (d *Directory) Areas(ctx context.Context) ([]Area, error) {
	rows, err := d.Venues.ListWithUpcoming(ctx, d.now())
	if err != nil {
		return nil, err
	}
	return GroupByArea(rows), nil
}

// SearchVenues returns every venue whose name contains term, ignoring case.
func (d *Directory) SearchVenues(ctx context.Context, term string) (SearchResult, error) {
	rows, err := d.Venues.SearchByName(ctx, term, d.now())
	if err != nil {
		return SearchResult{}, err
	}
	return SearchResult{Count: len(rows), Data: summaries(rows)}, nil
}

// SearchArtists returns every artist whose name contains term, ignoring case.
func (d *Directory) SearchArtists(ctx context.Context, term string) (SearchResult, error) {
	rows, err := d.Artists.SearchByName(ctx, term, d.now())
	if err != nil {
		return SearchResult{}, err
	}
	return SearchResult{Count: len(rows), Data: summaries(rows)}, nil
}

// ListArtists lists every artist by name.
func (d *Directory) ListArtists(ctx context.Context) ([]Summary, error) {
	rows, err := d.Artists.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return summaries(rows), nil
}

// VenueChoices lists every venue by name, for the show form.
func (d *Directory) VenueChoices(ctx context.Context) ([]Summary, error) {
	rows, err := d.Venues.ListWithUpcoming(ctx, d.now())
	if err != nil {
		return nil, err
	}
	out := make([]Summary, 0, len(rows))
	for _, r := range rows {
		out = append(out, Summary{ID: r.ID, Name: r.Name, UpcomingShows: r.UpcomingShows})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// ShowListing returns every show with its artist and venue names.
func (d *Directory) ShowListing(ctx context.Context) ([]ShowEntry, error) {
	rows, err := d.Shows.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ShowEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, entryFromRow(r))
	}
	return out, nil
}

// Venue returns the stored venue, e.g. to pre-fill the edit form.
func (d *Directory) Venue(ctx context.Context, id uint64) (*model.Venue, error) {
	v, err := d.Venues.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return nil, fmt.Errorf("venue %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return v, nil
}

// Artist returns the stored artist, e.g. to pre-fill the edit form.
func (d *Directory) Artist(ctx context.Context, id uint64) (*model.Artist, error) {
	a, err := d.Artists.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return nil, fmt.Errorf("artist %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return a, nil
}

// VenueDetail loads a venue and splits its shows into past and upcoming.
func (d *Directory) VenueDetail(ctx context.Context, id uint64) (*VenueDetail, error) {
	v, err := d.Venue(ctx, id)
	if err != nil {
		return nil, err
	}
	rows, err := d.Shows.ListByVenue(ctx, id)
	if err != nil {
		return nil, err
	}
	past, upcoming := PartitionShows(rows, d.now())
	return &VenueDetail{
		ID:                 v.ID,
		Name:               v.Name,
		Genres:             []string(v.Genres),
		Address:            v.Address,
		City:               v.City,
		State:              v.State,
		Phone:              v.Phone,
		Website:            v.WebsiteLink,
		FacebookLink:       v.FacebookLink,
		SeekingTalent:      v.SeekingTalent,
		SeekingDescription: v.SeekingDescription,
		ImageLink:          v.ImageLink,
		PastShows:          past,
		UpcomingShows:      upcoming,
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}, nil
}

// ArtistDetail loads an artist and splits its shows into past and upcoming.
func (d *Directory) ArtistDetail(ctx context.Context, id uint64) (*ArtistDetail, error) {
	a, err := d.Artist(ctx, id)
	if err != nil {
		return nil, err
	}
	rows, err := d.Shows.ListByArtist(ctx, id)
	if err != nil {
		return nil, err
	}
	past, upcoming := PartitionShows(rows, d.now())
	return &ArtistDetail{
		ID:                 a.ID,
		Name:               a.Name,
		Genres:             []string(a.Genres),
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		Website:            a.WebsiteLink,
		FacebookLink:       a.FacebookLink,
		SeekingVenue:       a.SeekingVenue,
		SeekingDescription: a.SeekingDescription,
		ImageLink:          a.ImageLink,
		PastShows:          past,
		UpcomingShows:      upcoming,
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}, nil
}
