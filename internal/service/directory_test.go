package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/iliyamo/fyyur-booking/internal/database/dbtest"
	"github.com/iliyamo/fyyur-booking/internal/metrics"
	"github.com/iliyamo/fyyur-booking/internal/model"
	"github.com/iliyamo/fyyur-booking/internal/queue"
	"github.com/iliyamo/fyyur-booking/internal/repository"
)

var clock = time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC)

type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.DirectoryEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev queue.DirectoryEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, ev := range p.events {
		out[i] = ev.Type
	}
	return out
}

func newDirectory(t *testing.T) (*Directory, *recordingPublisher) {
	t.Helper()
	db := dbtest.New(t)
	pub := &recordingPublisher{}
	d := NewDirectory(repository.NewVenueRepo(db), repository.NewArtistRepo(db), repository.NewShowRepo(db), pub)
	d.Now = func() time.Time { return clock }
	return d, pub
}

func mustVenue(t *testing.T, d *Directory, name, city, state string) *model.Venue {
	t.Helper()
	v := &model.Venue{Name: name, City: city, State: state, Address: "1015 Folsom Street"}
	if err := d.CreateVenue(context.Background(), v); err != nil {
		t.Fatalf("CreateVenue(%q): %v", name, err)
	}
	return v
}

func mustArtist(t *testing.T, d *Directory, name string) *model.Artist {
	t.Helper()
	a := &model.Artist{Name: name, City: "San Francisco", State: "CA"}
	if err := d.CreateArtist(context.Background(), a); err != nil {
		t.Fatalf("CreateArtist(%q): %v", name, err)
	}
	return a
}

func mustShow(t *testing.T, d *Directory, a *model.Artist, v *model.Venue, start time.Time) {
	t.Helper()
	if err := d.CreateShow(context.Background(), &model.Show{ArtistID: a.ID, VenueID: v.ID, StartTime: start}); err != nil {
		t.Fatalf("CreateShow: %v", err)
	}
}

func TestNewDirectoryPanicsOnNilRepo(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("NewDirectory(nil, ...) did not panic")
		}
	}()
	NewDirectory(nil, nil, nil, nil)
}

func TestAreasGroupsByCityAndState(t *testing.T) {
	d, _ := newDirectory(t)
	hop := mustVenue(t, d, "The Musical Hop", "Phoenix", "AZ")
	mustVenue(t, d, "Park Square", "Phoenix", "AZ")
	mustVenue(t, d, "The Dueling Pianos Bar", "Austin", "TX")
	a := mustArtist(t, d, "Guns N Petals")
	mustShow(t, d, a, hop, clock.Add(24*time.Hour))

	areas, err := d.Areas(context.Background())
	if err != nil {
		t.Fatalf("Areas() error = %v", err)
	}
	if len(areas) != 2 {
		t.Fatalf("got %d areas, want 2: %+v", len(areas), areas)
	}
	if areas[1].City != "Phoenix" || len(areas[1].Venues) != 2 {
		t.Fatalf("Phoenix group = %+v", areas[1])
	}
	if areas[1].Venues[1].Name != "The Musical Hop" || areas[1].Venues[1].UpcomingShows != 1 {
		t.Fatalf("upcoming count = %+v", areas[1].Venues[1])
	}
}

func TestSearchCountsUseEachRecordsOwnShows(t *testing.T) {
	d, _ := newDirectory(t)
	hop := mustVenue(t, d, "The Musical Hop", "San Francisco", "CA")
	mustVenue(t, d, "Park Square Live Music & Coffee", "San Francisco", "CA")
	gnp := mustArtist(t, d, "Guns N Petals")
	mustArtist(t, d, "Matt Quevado")
	mustShow(t, d, gnp, hop, clock.Add(time.Hour))
	mustShow(t, d, gnp, hop, clock.Add(2*time.Hour))

	res, err := d.SearchVenues(context.Background(), "Music")
	if err != nil {
		t.Fatalf("SearchVenues() error = %v", err)
	}
	if res.Count != 2 || len(res.Data) != 2 {
		t.Fatalf("SearchVenues(Music) = %+v", res)
	}
	for _, s := range res.Data {
		want := 0
		if s.ID == hop.ID {
			want = 2
		}
		if s.UpcomingShows != want {
			t.Errorf("venue %q upcoming = %d, want %d", s.Name, s.UpcomingShows, want)
		}
	}

	ar, err := d.SearchArtists(context.Background(), "")
	if err != nil {
		t.Fatalf("SearchArtists() error = %v", err)
	}
	if ar.Count != 2 {
		t.Fatalf("empty term matched %d artists, want 2", ar.Count)
	}
}

func TestDetailPagesAgreeOnPastAndUpcoming(t *testing.T) {
	d, _ := newDirectory(t)
	ctx := context.Background()
	v := mustVenue(t, d, "The Musical Hop", "San Francisco", "CA")
	a := mustArtist(t, d, "The Wild Sax Band")
	mustShow(t, d, a, v, clock.Add(-48*time.Hour))
	mustShow(t, d, a, v, clock.Add(48*time.Hour))
	mustShow(t, d, a, v, clock.Add(96*time.Hour))

	vd, err := d.VenueDetail(ctx, v.ID)
	if err != nil {
		t.Fatalf("VenueDetail() error = %v", err)
	}
	ad, err := d.ArtistDetail(ctx, a.ID)
	if err != nil {
		t.Fatalf("ArtistDetail() error = %v", err)
	}
	if vd.PastShowsCount != 1 || vd.UpcomingShowsCount != 2 {
		t.Fatalf("venue counts = %d past, %d upcoming", vd.PastShowsCount, vd.UpcomingShowsCount)
	}
	if vd.PastShowsCount != ad.PastShowsCount || vd.UpcomingShowsCount != ad.UpcomingShowsCount {
		t.Fatalf("venue (%d/%d) and artist (%d/%d) disagree",
			vd.PastShowsCount, vd.UpcomingShowsCount, ad.PastShowsCount, ad.UpcomingShowsCount)
	}
	if vd.UpcomingShows[0].ArtistName != a.Name || ad.UpcomingShows[0].VenueName != v.Name {
		t.Fatalf("counterpart names missing: %+v / %+v", vd.UpcomingShows[0], ad.UpcomingShows[0])
	}

	d.Now = func() time.Time { return clock.Add(72 * time.Hour) }
	vd, _ = d.VenueDetail(ctx, v.ID)
	if vd.PastShowsCount != 2 || vd.UpcomingShowsCount != 1 {
		t.Fatalf("after clock moves: %d past, %d upcoming", vd.PastShowsCount, vd.UpcomingShowsCount)
	}
}

func TestDetailWithNoShows(t *testing.T) {
	d, _ := newDirectory(t)
	v := mustVenue(t, d, "Empty Room", "Austin", "TX")
	vd, err := d.VenueDetail(context.Background(), v.ID)
	if err != nil {
		t.Fatalf("VenueDetail() error = %v", err)
	}
	if vd.PastShowsCount != 0 || vd.UpcomingShowsCount != 0 || vd.PastShows == nil || vd.UpcomingShows == nil {
		t.Fatalf("detail = %+v", vd)
	}
}

func TestDetailNotFound(t *testing.T) {
	d, _ := newDirectory(t)
	if _, err := d.VenueDetail(context.Background(), 404); !errors.Is(err, ErrNotFound) {
		t.Fatalf("VenueDetail(missing) error = %v, want ErrNotFound", err)
	}
	if _, err := d.ArtistDetail(context.Background(), 404); !errors.Is(err, ErrNotFound) {
		t.Fatalf("ArtistDetail(missing) error = %v, want ErrNotFound", err)
	}
}

func TestUpdateVenueReplacesSeekingTalent(t *testing.T) {
	d, pub := newDirectory(t)
	ctx := context.Background()
	v := &model.Venue{Name: "The Musical Hop", City: "San Francisco", State: "CA", Address: "1015 Folsom Street",
		SeekingTalent: true, SeekingDescription: "Looking for a local artist.", Genres: model.Genres{"Jazz", " "}}
	if err := d.CreateVenue(ctx, v); err != nil {
		t.Fatalf("CreateVenue() error = %v", err)
	}

	edit := &model.Venue{ID: v.ID, Name: "The Musical Hop", City: "San Francisco", State: "CA",
		Address: "1015 Folsom Street", Genres: model.Genres{"Blues"}}
	if err := d.UpdateVenue(ctx, edit); err != nil {
		t.Fatalf("UpdateVenue() error = %v", err)
	}
	got, err := d.Venue(ctx, v.ID)
	if err != nil {
		t.Fatalf("Venue() error = %v", err)
	}
	if got.SeekingTalent {
		t.Fatal("seeking_talent still true after an edit without it")
	}
	if len(got.Genres) != 1 || got.Genres[0] != "Blues" {
		t.Fatalf("genres = %v, want [Blues]", got.Genres)
	}

	want := []string{queue.VenueCreated, queue.VenueUpdated}
	if types := pub.types(); len(types) != 2 || types[0] != want[0] || types[1] != want[1] {
		t.Fatalf("events = %v, want %v", types, want)
	}
}

func TestUpdateArtistPersists(t *testing.T) {
	d, _ := newDirectory(t)
	ctx := context.Background()
	a := &model.Artist{Name: "Matt Quevado", City: "New York", State: "NY", SeekingVenue: true}
	if err := d.CreateArtist(ctx, a); err != nil {
		t.Fatal(err)
	}
	if err := d.UpdateArtist(ctx, &model.Artist{ID: a.ID, Name: "Matt Q", City: "Boston", State: "MA"}); err != nil {
		t.Fatalf("UpdateArtist() error = %v", err)
	}
	got, _ := d.Artist(ctx, a.ID)
	if got.Name != "Matt Q" || got.City != "Boston" || got.SeekingVenue {
		t.Fatalf("artist after update = %+v", got)
	}
}

func TestMutationsOnMissingIDs(t *testing.T) {
	d, pub := newDirectory(t)
	ctx := context.Background()
	tests := []struct {
		name string
		run  func() error
	}{
		{"update venue", func() error {
			return d.UpdateVenue(ctx, &model.Venue{ID: 77, Name: "x", City: "x", State: "CA", Address: "x"})
		}},
		{"update artist", func() error {
			return d.UpdateArtist(ctx, &model.Artist{ID: 77, Name: "x", City: "x", State: "CA"})
		}},
		{"delete venue", func() error { return d.DeleteVenue(ctx, 77) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(); !errors.Is(err, ErrNotFound) {
				t.Fatalf("error = %v, want ErrNotFound", err)
			}
		})
	}
	if n := len(pub.types()); n != 0 {
		t.Fatalf("%d events published for failed mutations", n)
	}
}

func TestCreateValidation(t *testing.T) {
	d, _ := newDirectory(t)
	ctx := context.Background()
	before := testutil.ToFloat64(metrics.MutationsTotal.WithLabelValues("venue", "create", "validation"))

	err := d.CreateVenue(ctx, &model.Venue{Name: "  ", City: "Austin"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("CreateVenue(blank) error = %v, want ErrValidation", err)
	}
	if got := err.Error(); got != "validation failure: missing address, name, state" {
		t.Fatalf("error message = %q", got)
	}
	if err := d.CreateArtist(ctx, &model.Artist{}); !errors.Is(err, ErrValidation) {
		t.Fatalf("CreateArtist(empty) error = %v, want ErrValidation", err)
	}
	if err := d.CreateShow(ctx, &model.Show{ArtistID: 1}); !errors.Is(err, ErrValidation) {
		t.Fatalf("CreateShow(no venue) error = %v, want ErrValidation", err)
	}

	after := testutil.ToFloat64(metrics.MutationsTotal.WithLabelValues("venue", "create", "validation"))
	if after-before != 1 {
		t.Fatalf("validation metric moved by %v, want 1", after-before)
	}
}

func TestCreateShowReferentialIntegrity(t *testing.T) {
	d, pub := newDirectory(t)
	ctx := context.Background()
	v := mustVenue(t, d, "The Musical Hop", "San Francisco", "CA")
	a := mustArtist(t, d, "Guns N Petals")

	err := d.CreateShow(ctx, &model.Show{ArtistID: a.ID, VenueID: v.ID + 1, StartTime: clock})
	if !errors.Is(err, ErrReferentialIntegrity) {
		t.Fatalf("CreateShow(missing venue) error = %v, want ErrReferentialIntegrity", err)
	}
	listing, err := d.ShowListing(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(listing) != 0 {
		t.Fatalf("show persisted despite failure: %+v", listing)
	}

	mustShow(t, d, a, v, clock.Add(time.Hour))
	pub.mu.Lock()
	last := pub.events[len(pub.events)-1]
	pub.mu.Unlock()
	if last.Type != queue.ShowCreated || last.ArtistID != a.ID || last.VenueID != v.ID || last.StartTime != "2026-06-01 19:00:00" {
		t.Fatalf("show event = %+v", last)
	}
}

func TestDeleteVenueRemovesShows(t *testing.T) {
	d, _ := newDirectory(t)
	ctx := context.Background()
	v := mustVenue(t, d, "The Dueling Pianos Bar", "New York", "NY")
	a := mustArtist(t, d, "Guns N Petals")
	mustShow(t, d, a, v, clock.Add(time.Hour))

	if err := d.DeleteVenue(ctx, v.ID); err != nil {
		t.Fatalf("DeleteVenue() error = %v", err)
	}
	ad, err := d.ArtistDetail(ctx, a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if ad.UpcomingShowsCount != 0 {
		t.Fatalf("artist still has %d upcoming shows at a deleted venue", ad.UpcomingShowsCount)
	}
}

func TestPublishFailureDoesNotFailWrite(t *testing.T) {
	d, pub := newDirectory(t)
	pub.err = errors.New("broker down")
	before := testutil.ToFloat64(metrics.EventsPublished.WithLabelValues("error"))
	v := mustVenue(t, d, "The Musical Hop", "San Francisco", "CA")
	if _, err := d.Venue(context.Background(), v.ID); err != nil {
		t.Fatalf("venue not persisted: %v", err)
	}
	if got := testutil.ToFloat64(metrics.EventsPublished.WithLabelValues("error")) - before; got != 1 {
		t.Fatalf("publish error metric moved by %v, want 1", got)
	}
}

func TestVenueChoicesSortedByName(t *testing.T) {
	d, _ := newDirectory(t)
	mustVenue(t, d, "Zeta", "Austin", "TX")
	mustVenue(t, d, "Alpha", "Phoenix", "AZ")
	got, err := d.VenueChoices(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Name != "Alpha" || got[1].Name != "Zeta" {
		t.Fatalf("VenueChoices() = %+v", got)
	}
}

func TestListArtistsSortedByName(t *testing.T) {
	d, _ := newDirectory(t)
	mustArtist(t, d, "The Wild Sax Band")
	mustArtist(t, d, "Guns N Petals")
	got, err := d.ListArtists(context.Background())
	if err != nil {
		t.Fatalf("ListArtists() error = %v", err)
	}
	if len(got) != 2 || got[0].Name != "Guns N Petals" || got[1].Name != "The Wild Sax Band" {
		t.Fatalf("ListArtists() = %+v", got)
	}
}
