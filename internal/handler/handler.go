package handler // handler translates HTTP requests into directory calls and renders pages

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur-booking/internal/service"
	"github.com/iliyamo/fyyur-booking/web"
)

// Handler bundles what every page handler needs: the directory service and
// the flash cookie store.
type Handler struct {
	Dir   *service.Directory
	Flash *FlashStore
}

// NewHandler constructs a Handler and panics if a dependency is nil.
func NewHandler(dir *service.Directory, flash *FlashStore) *Handler {
	if dir == nil || flash == nil {
		panic("nil dependency passed to NewHandler")
	}
	return &Handler{Dir: dir, Flash: flash}
}

// parseID reads the :id path parameter.  Anything that is not a positive
// integer is reported as 404 since no such page exists.
func parseID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.ErrNotFound
	}
	return id, nil
}

// render pops the pending flash and executes the named page.
func (h *Handler) render(c echo.Context, status int, name, title string, data any) error {
	return c.Render(status, name, web.Page{
		Title: title,
		Flash: h.Flash.Pop(c),
		Data:  data,
	})
}

// redirect stores a flash and answers 303 so browsers follow with GET, also
// after a DELETE.
func (h *Handler) redirect(c echo.Context, to, kind, msg string) error {
	if err := h.Flash.Set(c, web.Flash{Kind: kind, Message: msg}); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, to)
}

// Home handles GET /.
func (h *Handler) Home(c echo.Context) error {
	return h.render(c, http.StatusOK, "home", "", nil)
}
