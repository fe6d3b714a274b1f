package handler

import (
	"net/url"
	"testing"
	"time"
)

func TestParseStartTime(t *testing.T) {
	want := time.Date(2026, 4, 1, 20, 0, 0, 0, time.UTC)
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "2026-04-01 20:00:00", want: want},
		{in: "2026-04-01T20:00", want: want},
		{in: "2026-04-01T20:00:00", want: want},
		{in: " 2026-04-01 20:00 ", want: want},
		{in: "2026-04-01T22:00:00+02:00", want: want},
		{in: "April 1st", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseStartTime(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseStartTime(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && !got.Equal(tt.want) {
			t.Errorf("ParseStartTime(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if !tt.wantErr && got.Location() != time.UTC {
			t.Errorf("ParseStartTime(%q) location = %v, want UTC", tt.in, got.Location())
		}
	}
}

func TestFormValidatorFieldErrors(t *testing.T) {
	v := NewFormValidator()
	f := VenueForm{
		City:         "San Francisco",
		State:        "ZZ",
		Address:      "1015 Folsom Street",
		Genres:       []string{"Jazz", "Polka"},
		FacebookLink: "not a url",
	}
	fields, ok := FieldErrors(v.Validate(&f))
	if !ok {
		t.Fatal("FieldErrors() ok = false for a validation error")
	}
	want := map[string]string{
		"name":          "This field is required.",
		"state":         "Pick a state from the list.",
		"genres":        "Pick genres from the list.",
		"facebook_link": "Must be a valid URL.",
	}
	if len(fields) != len(want) {
		t.Fatalf("fields = %v, want %v", fields, want)
	}
	for k, msg := range want {
		if fields[k] != msg {
			t.Errorf("fields[%q] = %q, want %q", k, fields[k], msg)
		}
	}

	ok2 := VenueForm{Name: "Hop", City: "SF", State: "CA", Address: "1 St", Genres: []string{"Jazz"}}
	if err := v.Validate(&ok2); err != nil {
		t.Fatalf("Validate(valid) = %v", err)
	}
}

func TestShowFormValidation(t *testing.T) {
	v := NewFormValidator()
	fields, ok := FieldErrors(v.Validate(&ShowForm{ArtistID: "x", StartTime: "tomorrow"}))
	if !ok {
		t.Fatal("expected field errors")
	}
	if fields["artist_id"] != "Must be a number." || fields["venue_id"] != "This field is required." ||
		fields["start_time"] != "Use YYYY-MM-DD HH:MM:SS." {
		t.Fatalf("fields = %v", fields)
	}

	s, err := ShowForm{ArtistID: "4", VenueID: " 1 ", StartTime: "2019-05-21 21:30:00"}.Show()
	if err != nil {
		t.Fatalf("Show() error = %v", err)
	}
	if s.ArtistID != 4 || s.VenueID != 1 || s.StartTime.Hour() != 21 {
		t.Fatalf("Show() = %+v", s)
	}
}

func TestFieldErrorsIgnoresOtherErrors(t *testing.T) {
	if _, ok := FieldErrors(nil); ok {
		t.Fatal("FieldErrors(nil) ok = true")
	}
}

func TestChecked(t *testing.T) {
	form := url.Values{"seeking_talent": {"y"}, "empty": {""}}
	if !checked(form, "seeking_talent") || !checked(form, "empty") {
		t.Fatal("present checkbox reported unchecked")
	}
	if checked(form, "seeking_venue") {
		t.Fatal("absent checkbox reported checked")
	}
}

func TestFormRoundTrip(t *testing.T) {
	f := VenueForm{Name: "  The Musical Hop ", City: "San Francisco", State: "CA", Address: "1015 Folsom Street",
		Genres: []string{"Jazz"}, SeekingTalent: true}
	v := f.Venue()
	if v.Name != "The Musical Hop" || !v.SeekingTalent {
		t.Fatalf("Venue() = %+v", v)
	}
	back := venueFormOf(v)
	if back.Name != v.Name || len(back.Genres) != 1 || !back.SeekingTalent {
		t.Fatalf("venueFormOf() = %+v", back)
	}

	a := ArtistForm{Name: "Guns N Petals", City: "San Francisco", State: "CA", SeekingVenue: true}.Artist()
	if af := artistFormOf(a); af.Name != "Guns N Petals" || !af.SeekingVenue {
		t.Fatalf("artistFormOf() = %+v", af)
	}
}
