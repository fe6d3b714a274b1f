package service

import (
	"testing"
	"time"

	"github.com/iliyamo/fyyur-booking/internal/repository"
)

func TestGroupByArea(t *testing.T) {
	rows := []repository.VenueArea{
		{ID: 3, Name: "Park Square Live Music & Coffee", City: "Phoenix", State: "AZ", UpcomingShows: 1},
		{ID: 2, Name: "The Dueling Pianos Bar", City: "Austin", State: "TX"},
		{ID: 1, Name: "The Musical Hop", City: "Phoenix", State: "AZ", UpcomingShows: 0},
		{ID: 4, Name: "Alpha", City: "Phoenix", State: "AZ"},
	}
	areas := GroupByArea(rows)
	if len(areas) != 2 {
		t.Fatalf("got %d areas, want 2: %+v", len(areas), areas)
	}
	if areas[0].City != "Austin" || areas[1].City != "Phoenix" {
		t.Fatalf("areas not sorted by city: %+v", areas)
	}
	phx := areas[1]
	if len(phx.Venues) != 3 {
		t.Fatalf("Phoenix has %d venues, want 3", len(phx.Venues))
	}
	wantOrder := []uint64{4, 3, 1}
	for i, id := range wantOrder {
		if phx.Venues[i].ID != id {
			t.Fatalf("Phoenix venue %d = %d, want %d", i, phx.Venues[i].ID, id)
		}
	}
	if phx.Venues[1].UpcomingShows != 1 {
		t.Fatalf("upcoming count lost: %+v", phx.Venues[1])
	}
}

func TestGroupByAreaSameCityDifferentState(t *testing.T) {
	areas := GroupByArea([]repository.VenueArea{
		{ID: 1, Name: "A", City: "Portland", State: "OR"},
		{ID: 2, Name: "B", City: "Portland", State: "ME"},
	})
	if len(areas) != 2 || areas[0].State != "ME" || areas[1].State != "OR" {
		t.Fatalf("areas = %+v", areas)
	}
}

func TestGroupByAreaEmpty(t *testing.T) {
	if areas := GroupByArea(nil); areas == nil || len(areas) != 0 {
		t.Fatalf("GroupByArea(nil) = %#v, want empty non-nil", areas)
	}
}

func TestPartitionShows(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []repository.ShowRow{
		{ID: 1, ArtistName: "a", StartTime: now.Add(-time.Hour)},
		{ID: 2, ArtistName: "b", StartTime: now},
		{ID: 3, ArtistName: "c", StartTime: now.Add(time.Second)},
	}
	past, upcoming := PartitionShows(rows, now)
	if len(past)+len(upcoming) != len(rows) {
		t.Fatalf("partition lost rows: %d + %d != %d", len(past), len(upcoming), len(rows))
	}
	if len(past) != 2 || len(upcoming) != 1 || upcoming[0].ArtistName != "c" {
		t.Fatalf("past=%+v upcoming=%+v", past, upcoming)
	}
	if upcoming[0].StartTime != "2026-01-01 00:00:01" {
		t.Fatalf("StartTime = %q, want YYYY-MM-DD HH:MM:SS", upcoming[0].StartTime)
	}

	past, upcoming = PartitionShows(nil, now)
	if past == nil || upcoming == nil || len(past) != 0 || len(upcoming) != 0 {
		t.Fatalf("PartitionShows(nil) = %#v, %#v; want empty non-nil slices", past, upcoming)
	}
}
