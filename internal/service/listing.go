package service

import (
	"sort"
	"time"

	"github.com/iliyamo/fyyur-booking/internal/model"
	"github.com/iliyamo/fyyur-booking/internal/repository"
)

// Summary is the id, name and upcoming show count of a venue or an artist.
type Summary struct {
	ID            uint64
	Name          string
	UpcomingShows int
}

// Area is every venue sharing one (city, state) location.
type Area struct {
	City   string
	State  string
	Venues []Summary
}

// SearchResult is the response of a name search.
type SearchResult struct {
	Count int
	Data  []Summary
}

// ShowEntry is a show prepared for display.  Detail pages use the
// counterpart half (artist fields on a venue page, venue fields on an artist
// page); the show listing uses both.
type ShowEntry struct {
	ArtistID        uint64
	ArtistName      string
	ArtistImageLink string
	VenueID         uint64
	VenueName       string
	VenueImageLink  string
	StartTime       string
}

type areaKey struct{ city, state string }

// GroupByArea groups venue rows by (city, state).  Groups are sorted by city
// then state and venues inside a group by name then id, so the output does
// not depend on the input order.
func GroupByArea(rows []repository.VenueArea) []Area {
	index := make(map[areaKey]int)
	areas := []Area{}
	for _, r := range rows {
		k := areaKey{r.City, r.State}
		i, ok := index[k]
		if !ok {
			i = len(areas)
			index[k] = i
			areas = append(areas, Area{City: r.City, State: r.State})
		}
		areas[i].Venues = append(areas[i].Venues, Summary{ID: r.ID, Name: r.Name, UpcomingShows: r.UpcomingShows})
	}
	sort.Slice(areas, func(i, j int) bool {
		if areas[i].City != areas[j].City {
			return areas[i].City < areas[j].City
		}
		return areas[i].State < areas[j].State
	})
	for _, a := range areas {
		sort.Slice(a.Venues, func(i, j int) bool {
			if a.Venues[i].Name != a.Venues[j].Name {
				return a.Venues[i].Name < a.Venues[j].Name
			}
			return a.Venues[i].ID < a.Venues[j].ID
		})
	}
	return areas
}

// PartitionShows splits show rows into past and upcoming relative to now.
// Every row lands in exactly one of the two slices; both are non-nil.
func PartitionShows(rows []repository.ShowRow, now time.Time) (past, upcoming []ShowEntry) {
	past, upcoming = []ShowEntry{}, []ShowEntry{}
	for _, r := range rows {
		e := entryFromRow(r)
		if (model.Show{StartTime: r.StartTime}).Upcoming(now) {
			upcoming = append(upcoming, e)
		} else {
			past = append(past, e)
		}
	}
	return past, upcoming
}

func entryFromRow(r repository.ShowRow) ShowEntry {
	return ShowEntry{
		ArtistID:        r.ArtistID,
		ArtistName:      r.ArtistName,
		ArtistImageLink: r.ArtistImageLink,
		VenueID:         r.VenueID,
		VenueName:       r.VenueName,
		VenueImageLink:  r.VenueImageLink,
		StartTime:       r.StartTime.UTC().Format(model.TimeLayout),
	}
}

func summaries(rows []repository.NamedCount) []Summary {
	out := make([]Summary, 0, len(rows))
	for _, r := range rows {
		out = append(out, Summary{ID: r.ID, Name: r.Name, UpcomingShows: r.UpcomingShows})
	}
	return out
}
