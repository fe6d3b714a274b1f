package handler

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/iliyamo/fyyur-booking/internal/model"
)

// Genres offered by the venue and artist forms.
var Genres = []string{
	"Alternative", "Blues", "Classical", "Country", "Electronic", "Folk", "Funk",
	"Hip-Hop", "Heavy Metal", "Instrumental", "Jazz", "Musical Theatre", "Pop",
	"Punk", "R&B", "Reggae", "Rock n Roll", "Soul", "Other",
}

// States offered by the venue and artist forms.
var States = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "DC", "FL", "GA", "HI", "ID",
	"IL", "IN", "IA", "KS", "KY", "LA", "ME", "MT", "NE", "NV", "NH", "NJ", "NM",
	"NY", "NC", "ND", "OH", "OK", "OR", "MD", "MA", "MI", "MN", "MS", "MO", "PA",
	"RI", "SC", "SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV", "WI", "WY",
}

// VenueForm is the body of POST /venues/create and POST /venues/:id/edit.
// SeekingTalent is not bound; it is set from checkbox presence.
type VenueForm struct {
	Name               string   `form:"name" validate:"required,max=120"`
	City               string   `form:"city" validate:"required,max=120"`
	State              string   `form:"state" validate:"required,state"`
	Address            string   `form:"address" validate:"required,max=120"`
	Phone              string   `form:"phone" validate:"max=120"`
	Genres             []string `form:"genres" validate:"dive,genre"`
	FacebookLink       string   `form:"facebook_link" validate:"omitempty,url,max=120"`
	ImageLink          string   `form:"image_link" validate:"omitempty,url,max=500"`
	WebsiteLink        string   `form:"website_link" validate:"omitempty,url,max=120"`
	SeekingTalent      bool     `form:"-"`
	SeekingDescription string   `form:"seeking_description" validate:"max=500"`
}

// ArtistForm is the body of POST /artists/create and POST /artists/:id/edit.
type ArtistForm struct {
	Name               string   `form:"name" validate:"required,max=120"`
	City               string   `form:"city" validate:"required,max=120"`
	State              string   `form:"state" validate:"required,state"`
	Phone              string   `form:"phone" validate:"max=120"`
	Genres             []string `form:"genres" validate:"dive,genre"`
	FacebookLink       string   `form:"facebook_link" validate:"omitempty,url,max=120"`
	ImageLink          string   `form:"image_link" validate:"omitempty,url,max=500"`
	WebsiteLink        string   `form:"website_link" validate:"omitempty,url,max=120"`
	SeekingVenue       bool     `form:"-"`
	SeekingDescription string   `form:"seeking_description" validate:"max=500"`
}

// ShowForm is the body of POST /shows/create.  Ids stay strings so a
// malformed value becomes a field error instead of a bind failure.
type ShowForm struct {
	ArtistID  string `form:"artist_id" validate:"required,number"`
	VenueID   string `form:"venue_id" validate:"required,number"`
	StartTime string `form:"start_time" validate:"required,starttime"`
}

// startTimeLayouts are tried in order; values without a zone are UTC.
var startTimeLayouts = []string{
	model.TimeLayout,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	time.RFC3339,
}

// ParseStartTime accepts the stored layout, an HTML datetime-local value or
// RFC 3339, and returns the instant in UTC.
func ParseStartTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range startTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised start time %q", s)
}

// Venue converts the form into a model.  Text fields are trimmed.
func (f VenueForm) Venue() *model.Venue {
	return &model.Venue{
		Name:               strings.TrimSpace(f.Name),
		City:               strings.TrimSpace(f.City),
		State:              strings.TrimSpace(f.State),
		Address:            strings.TrimSpace(f.Address),
		Phone:              strings.TrimSpace(f.Phone),
		Genres:             model.Genres(f.Genres),
		FacebookLink:       strings.TrimSpace(f.FacebookLink),
		ImageLink:          strings.TrimSpace(f.ImageLink),
		WebsiteLink:        strings.TrimSpace(f.WebsiteLink),
		SeekingTalent:      f.SeekingTalent,
		SeekingDescription: strings.TrimSpace(f.SeekingDescription),
	}
}

func venueFormOf(v *model.Venue) VenueForm {
	return VenueForm{
		Name: v.Name, City: v.City, State: v.State, Address: v.Address, Phone: v.Phone,
		Genres: []string(v.Genres), FacebookLink: v.FacebookLink, ImageLink: v.ImageLink,
		WebsiteLink: v.WebsiteLink, SeekingTalent: v.SeekingTalent, SeekingDescription: v.SeekingDescription,
	}
}

// Artist converts the form into a model.  Text fields are trimmed.
func (f ArtistForm) Artist() *model.Artist {
	return &model.Artist{
		Name:               strings.TrimSpace(f.Name),
		City:               strings.TrimSpace(f.City),
		State:              strings.TrimSpace(f.State),
		Phone:              strings.TrimSpace(f.Phone),
		Genres:             model.Genres(f.Genres),
		FacebookLink:       strings.TrimSpace(f.FacebookLink),
		ImageLink:          strings.TrimSpace(f.ImageLink),
		WebsiteLink:        strings.TrimSpace(f.WebsiteLink),
		SeekingVenue:       f.SeekingVenue,
		SeekingDescription: strings.TrimSpace(f.SeekingDescription),
	}
}

func artistFormOf(a *model.Artist) ArtistForm {
	return ArtistForm{
		Name: a.Name, City: a.City, State: a.State, Phone: a.Phone,
		Genres: []string(a.Genres), FacebookLink: a.FacebookLink, ImageLink: a.ImageLink,
		WebsiteLink: a.WebsiteLink, SeekingVenue: a.SeekingVenue, SeekingDescription: a.SeekingDescription,
	}
}

// Show converts a validated form into a model.
func (f ShowForm) Show() (*model.Show, error) {
	artistID, err := strconv.ParseUint(strings.TrimSpace(f.ArtistID), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("artist_id: %w", err)
	}
	venueID, err := strconv.ParseUint(strings.TrimSpace(f.VenueID), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("venue_id: %w", err)
	}
	start, err := ParseStartTime(f.StartTime)
	if err != nil {
		return nil, err
	}
	return &model.Show{ArtistID: artistID, VenueID: venueID, StartTime: start}, nil
}

// checked reports whether a checkbox was submitted.  Browsers omit unchecked
// boxes entirely, so presence alone means true.
func checked(form url.Values, name string) bool {
	_, ok := form[name]
	return ok
}

// FormValidator adapts go-playground/validator to echo.Validator.
type FormValidator struct {
	v *validator.Validate
}

// NewFormValidator registers the genre, state and starttime rules and
// reports field names by their form tag.
func NewFormValidator() *FormValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("form"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("genre", func(fl validator.FieldLevel) bool {
		return slices.Contains(Genres, fl.Field().String())
	})
	_ = v.RegisterValidation("state", func(fl validator.FieldLevel) bool {
		return slices.Contains(States, strings.TrimSpace(fl.Field().String()))
	})
	_ = v.RegisterValidation("starttime", func(fl validator.FieldLevel) bool {
		_, err := ParseStartTime(fl.Field().String())
		return err == nil
	})
	return &FormValidator{v: v}
}

// Validate implements echo.Validator.
func (fv *FormValidator) Validate(i interface{}) error {
	return fv.v.Struct(i)
}

// FieldErrors turns a validation error into per-field messages keyed by
// form name.  ok is false for any other kind of error.
func FieldErrors(err error) (fields map[string]string, ok bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, false
	}
	fields = make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name, _, _ := strings.Cut(fe.Field(), "[")
		if _, seen := fields[name]; !seen {
			fields[name] = fieldMessage(fe)
		}
	}
	return fields, true
}

var fieldMessages = map[string]string{
	"required":  "This field is required.",
	"url":       "Must be a valid URL.",
	"number":    "Must be a number.",
	"genre":     "Pick genres from the list.",
	"state":     "Pick a state from the list.",
	"starttime": "Use YYYY-MM-DD HH:MM:SS.",
}

func fieldMessage(fe validator.FieldError) string {
	if msg, ok := fieldMessages[fe.Tag()]; ok {
		return msg
	}
	if fe.Tag() == "max" {
		return fmt.Sprintf("Must be at most %s characters.", fe.Param())
	}
	return fmt.Sprintf("Failed %s validation.", fe.Tag())
}
