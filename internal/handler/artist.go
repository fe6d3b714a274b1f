package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur-booking/internal/service"
)

// Artists handles GET /artists.
func (h *Handler) Artists(c echo.Context) error {
	artists, err := h.Dir.ListArtists(c.Request().Context())
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "artists", "Artists", artists)
}

// SearchArtists handles POST /artists/search.
func (h *Handler) SearchArtists(c echo.Context) error {
	term := c.FormValue("search_term")
	res, err := h.Dir.SearchArtists(c.Request().Context(), term)
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "search_artists", "Search artists", SearchView{Term: term, Result: res})
}

// ShowArtist handles GET /artists/:id.
func (h *Handler) ShowArtist(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	detail, err := h.Dir.ArtistDetail(c.Request().Context(), id)
	if errors.Is(err, service.ErrNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "show_artist", detail.Name, detail)
}

func (h *Handler) artistForm(c echo.Context, status int, title, action, submit string, f ArtistForm, errs map[string]string) error {
	return h.render(c, status, "artist_form", title, FormView{
		Action: action,
		Submit: submit,
		Form:   f,
		Errors: errs,
		Genres: Genres,
		States: States,
	})
}

func bindArtist(c echo.Context) (ArtistForm, map[string]string, error) {
	var f ArtistForm
	if err := c.Bind(&f); err != nil {
		return f, nil, err
	}
	form, err := c.FormParams()
	if err != nil {
		return f, nil, err
	}
	f.SeekingVenue = checked(form, "seeking_venue")
	if err := c.Validate(&f); err != nil {
		if fields, ok := FieldErrors(err); ok {
			return f, fields, nil
		}
		return f, nil, err
	}
	return f, nil, nil
}

// CreateArtistForm handles GET /artists/create.
func (h *Handler) CreateArtistForm(c echo.Context) error {
	return h.artistForm(c, http.StatusOK, "List a new artist", "/artists/create", "Create Artist", ArtistForm{}, nil)
}

// CreateArtist handles POST /artists/create.
func (h *Handler) CreateArtist(c echo.Context) error {
	f, fields, err := bindArtist(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "The artist form could not be read.").SetInternal(err)
	}
	if fields != nil {
		return h.artistForm(c, http.StatusBadRequest, "List a new artist", "/artists/create", "Create Artist", f, fields)
	}
	a := f.Artist()
	if err := h.Dir.CreateArtist(c.Request().Context(), a); err != nil {
		return h.redirect(c, "/", flashDanger, fmt.Sprintf("An error occurred. Artist %s could not be listed.", a.Name))
	}
	return h.redirect(c, "/", flashSuccess, fmt.Sprintf("Artist %s was successfully listed!", a.Name))
}

// EditArtistForm handles GET /artists/:id/edit.
func (h *Handler) EditArtistForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	a, err := h.Dir.Artist(c.Request().Context(), id)
	if errors.Is(err, service.ErrNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}
	action := fmt.Sprintf("/artists/%d/edit", id)
	return h.artistForm(c, http.StatusOK, "Edit artist "+a.Name, action, "Save Artist", artistFormOf(a), nil)
}

// EditArtist handles POST /artists/:id/edit.
func (h *Handler) EditArtist(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	action := fmt.Sprintf("/artists/%d/edit", id)
	f, fields, err := bindArtist(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "The artist form could not be read.").SetInternal(err)
	}
	if fields != nil {
		return h.artistForm(c, http.StatusBadRequest, "Edit artist", action, "Save Artist", f, fields)
	}
	a := f.Artist()
	a.ID = id
	switch err := h.Dir.UpdateArtist(c.Request().Context(), a); {
	case errors.Is(err, service.ErrNotFound):
		return h.redirect(c, "/artists", flashDanger, fmt.Sprintf("Artist %d does not exist.", id))
	case err != nil:
		return h.redirect(c, action, flashDanger, fmt.Sprintf("An error occurred. Artist %s could not be updated.", a.Name))
	}
	return h.redirect(c, fmt.Sprintf("/artists/%d", id), flashSuccess, fmt.Sprintf("Artist %s was successfully updated!", a.Name))
}
