package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur-booking/internal/service"
)

// Shows handles GET /shows.
func (h *Handler) Shows(c echo.Context) error {
	shows, err := h.Dir.ShowListing(c.Request().Context())
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "shows", "Shows", shows)
}

func (h *Handler) showForm(c echo.Context, status int, f ShowForm, errs map[string]string) error {
	ctx := c.Request().Context()
	artists, err := h.Dir.ListArtists(ctx)
	if err != nil {
		return err
	}
	venues, err := h.Dir.VenueChoices(ctx)
	if err != nil {
		return err
	}
	return h.render(c, status, "show_form", "List a new show", FormView{
		Action:  "/shows/create",
		Submit:  "Create Show",
		Form:    f,
		Errors:  errs,
		Artists: artists,
		Venues:  venues,
	})
}

// CreateShowForm handles GET /shows/create.
func (h *Handler) CreateShowForm(c echo.Context) error {
	return h.showForm(c, http.StatusOK, ShowForm{}, nil)
}

// CreateShow handles POST /shows/create.  A missing artist or venue is a
// failure notification, not a fault.
func (h *Handler) CreateShow(c echo.Context) error {
	var f ShowForm
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "The show form could not be read.").SetInternal(err)
	}
	if err := c.Validate(&f); err != nil {
		fields, ok := FieldErrors(err)
		if !ok {
			return err
		}
		return h.showForm(c, http.StatusBadRequest, f, fields)
	}
	s, err := f.Show()
	if err != nil {
		return h.showForm(c, http.StatusBadRequest, f, map[string]string{"start_time": err.Error()})
	}
	switch err := h.Dir.CreateShow(c.Request().Context(), s); {
	case errors.Is(err, service.ErrReferentialIntegrity):
		return h.redirect(c, "/", flashDanger, "An error occurred. Show could not be listed: the artist or venue does not exist.")
	case err != nil:
		return h.redirect(c, "/", flashDanger, "An error occurred. Show could not be listed.")
	}
	return h.redirect(c, "/", flashSuccess, "Show was successfully listed!")
}
