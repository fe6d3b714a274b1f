package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur-booking/internal/logging"
)

var statusMessages = map[int]string{
	http.StatusNotFound:            "We could not find the page you were looking for.",
	http.StatusMethodNotAllowed:    "That action is not allowed here.",
	http.StatusInternalServerError: "Something went wrong on our side. Please try again.",
}

// HTTPErrorHandler renders the error page.  Echo HTTP errors keep their
// code; anything else is a 500 and gets logged.
func (h *Handler) HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	msg := ""
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if s, ok := he.Message.(string); ok {
			msg = s
		}
		if he.Internal != nil {
			logging.Ctx(c.Request().Context()).Debug().Err(he.Internal).Int("status", code).Msg("request rejected")
		}
	}
	if code >= http.StatusInternalServerError {
		logging.Ctx(c.Request().Context()).Error().Err(err).
			Str("method", c.Request().Method).
			Str("uri", c.Request().RequestURI).
			Msg("request failed")
		msg = ""
	}
	if m, ok := statusMessages[code]; ok && (msg == "" || msg == http.StatusText(code)) {
		msg = m
	}
	if msg == "" {
		msg = http.StatusText(code)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	if rerr := h.render(c, code, "error", http.StatusText(code), ErrorView{Code: code, Message: msg}); rerr != nil {
		logging.Ctx(c.Request().Context()).Error().Err(rerr).Msg("render error page")
		_ = c.String(code, msg)
	}
}
