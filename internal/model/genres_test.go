package model

import (
	"reflect"
	"testing"
	"time"
)

func TestGenresRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   Genres
	}{
		{"nil", nil},
		{"order preserved", Genres{"Jazz", "Reggae", "Swing"}},
		{"ampersand", Genres{"R&B"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := tt.in.Value()
			if err != nil {
				t.Fatalf("Value() error = %v", err)
			}
			var g Genres
			if err := g.Scan(v); err != nil {
				t.Fatalf("Scan(%v) error = %v", v, err)
			}
			if tt.in == nil && len(g) != 0 {
				t.Fatalf("round trip of nil = %v, want empty", g)
			}
			if tt.in != nil && !reflect.DeepEqual(g, tt.in) {
				t.Fatalf("round trip = %v, want %v", g, tt.in)
			}
		})
	}
}

func TestGenresValueNil(t *testing.T) {
	v, err := Genres(nil).Value()
	if err != nil || v != "[]" {
		t.Fatalf("Value() = %v, %v; want \"[]\"", v, err)
	}
}

func TestGenresScan(t *testing.T) {
	tests := []struct {
		name    string
		src     any
		want    Genres
		wantErr bool
	}{
		{"null", nil, Genres{}, false},
		{"bytes", []byte(`["Folk","Blues"]`), Genres{"Folk", "Blues"}, false},
		{"string", `["Pop"]`, Genres{"Pop"}, false},
		{"empty string", "", Genres{}, false},
		{"not json", "Jazz", nil, true},
		{"wrong type", 42, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var g Genres
			err := g.Scan(tt.src)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Scan() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(g, tt.want) {
				t.Fatalf("Scan() = %#v, want %#v", g, tt.want)
			}
		})
	}
}

func TestGenresClean(t *testing.T) {
	got := Genres{" Jazz ", "", "  ", "Blues"}.Clean()
	want := Genres{"Jazz", "Blues"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Clean() = %v, want %v", got, want)
	}
	if s := want.String(); s != "Jazz, Blues" {
		t.Fatalf("String() = %q", s)
	}
}

func TestShowUpcoming(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		start time.Time
		want  bool
	}{
		{"later is upcoming", now.Add(time.Minute), true},
		{"equal is past", now, false},
		{"earlier is past", now.Add(-time.Hour), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (Show{StartTime: tt.start}).Upcoming(now); got != tt.want {
				t.Fatalf("Upcoming() = %v, want %v", got, tt.want)
			}
		})
	}
}
