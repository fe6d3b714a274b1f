package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur-booking/internal/service"
)

// Venues handles GET /venues and lists venues grouped by city and state.
func (h *Handler) Venues(c echo.Context) error {
	areas, err := h.Dir.Areas(c.Request().Context())
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "venues", "Venues", areas)
}

// SearchVenues handles POST /venues/search.
func (h *Handler) SearchVenues(c echo.Context) error {
	term := c.FormValue("search_term")
	res, err := h.Dir.SearchVenues(c.Request().Context(), term)
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "search_venues", "Search venues", SearchView{Term: term, Result: res})
}

// ShowVenue handles GET /venues/:id.
func (h *Handler) ShowVenue(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	detail, err := h.Dir.VenueDetail(c.Request().Context(), id)
	if errors.Is(err, service.ErrNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "show_venue", detail.Name, detail)
}

func (h *Handler) venueForm(c echo.Context, status int, title, action, submit string, f VenueForm, errs map[string]string) error {
	return h.render(c, status, "venue_form", title, FormView{
		Action: action,
		Submit: submit,
		Form:   f,
		Errors: errs,
		Genres: Genres,
		States: States,
	})
}

// bindVenue binds and validates the venue form.  A nil error with non-nil
// field errors means the form should be shown again.
func bindVenue(c echo.Context) (VenueForm, map[string]string, error) {
	var f VenueForm
	if err := c.Bind(&f); err != nil {
		return f, nil, err
	}
	form, err := c.FormParams()
	if err != nil {
		return f, nil, err
	}
	f.SeekingTalent = checked(form, "seeking_talent")
	if err := c.Validate(&f); err != nil {
		if fields, ok := FieldErrors(err); ok {
			return f, fields, nil
		}
		return f, nil, err
	}
	return f, nil, nil
}

// CreateVenueForm handles GET /venues/create.
func (h *Handler) CreateVenueForm(c echo.Context) error {
	return h.venueForm(c, http.StatusOK, "List a new venue", "/venues/create", "Create Venue", VenueForm{}, nil)
}

// CreateVenue handles POST /venues/create.
func (h *Handler) CreateVenue(c echo.Context) error {
	f, fields, err := bindVenue(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "The venue form could not be read.").SetInternal(err)
	}
	if fields != nil {
		return h.venueForm(c, http.StatusBadRequest, "List a new venue", "/venues/create", "Create Venue", f, fields)
	}
	v := f.Venue()
	if err := h.Dir.CreateVenue(c.Request().Context(), v); err != nil {
		return h.redirect(c, "/", flashDanger, fmt.Sprintf("An error occurred. Venue %s could not be listed.", v.Name))
	}
	return h.redirect(c, "/", flashSuccess, fmt.Sprintf("Venue %s was successfully listed!", v.Name))
}

// EditVenueForm handles GET /venues/:id/edit with the stored values filled in.
func (h *Handler) EditVenueForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	v, err := h.Dir.Venue(c.Request().Context(), id)
	if errors.Is(err, service.ErrNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}
	action := fmt.Sprintf("/venues/%d/edit", id)
	return h.venueForm(c, http.StatusOK, "Edit venue "+v.Name, action, "Save Venue", venueFormOf(v), nil)
}

// EditVenue handles POST /venues/:id/edit.  Every field is replaced,
// seeking_talent included.
func (h *Handler) EditVenue(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	action := fmt.Sprintf("/venues/%d/edit", id)
	f, fields, err := bindVenue(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "The venue form could not be read.").SetInternal(err)
	}
	if fields != nil {
		return h.venueForm(c, http.StatusBadRequest, "Edit venue", action, "Save Venue", f, fields)
	}
	v := f.Venue()
	v.ID = id
	switch err := h.Dir.UpdateVenue(c.Request().Context(), v); {
	case errors.Is(err, service.ErrNotFound):
		return h.redirect(c, "/venues", flashDanger, fmt.Sprintf("Venue %d does not exist.", id))
	case err != nil:
		return h.redirect(c, action, flashDanger, fmt.Sprintf("An error occurred. Venue %s could not be updated.", v.Name))
	}
	return h.redirect(c, fmt.Sprintf("/venues/%d", id), flashSuccess, fmt.Sprintf("Venue %s was successfully updated!", v.Name))
}

// DeleteVenue handles DELETE /venues/:id (or POST with _method=DELETE).  The
// venue's shows go with it.
func (h *Handler) DeleteVenue(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	switch err := h.Dir.DeleteVenue(c.Request().Context(), id); {
	case errors.Is(err, service.ErrNotFound):
		return h.redirect(c, "/", flashDanger, fmt.Sprintf("Venue %d could not be deleted: it does not exist.", id))
	case err != nil:
		return h.redirect(c, "/", flashDanger, fmt.Sprintf("Sorry, an error occurred. Venue %d could not be deleted.", id))
	}
	return h.redirect(c, "/", flashSuccess, fmt.Sprintf("Venue %d has been deleted.", id))
}
