package handler

import (
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur-booking/internal/logging"
	"github.com/iliyamo/fyyur-booking/web"
)

// FlashCookie is the name of the cookie that carries a pending notification.
const FlashCookie = "fyyur_flash"

const (
	flashSuccess = "success"
	flashDanger  = "danger"
)

// FlashStore keeps one notification in an HMAC-signed cookie between a form
// submission and the page it redirects to.
type FlashStore struct {
	codec *securecookie.SecureCookie
}

// NewFlashStore builds a store keyed by secret.  An empty secret gets a
// random per-process key, so pending flashes do not survive a restart.
func NewFlashStore(secret string) *FlashStore {
	key := []byte(secret)
	if len(key) == 0 {
		key = securecookie.GenerateRandomKey(32)
	}
	codec := securecookie.New(key, nil)
	codec.SetSerializer(securecookie.JSONEncoder{})
	codec.MaxAge(300)
	return &FlashStore{codec: codec}
}

// Set stores f for the next request.
func (s *FlashStore) Set(c echo.Context, f web.Flash) error {
	value, err := s.codec.Encode(FlashCookie, f)
	if err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     FlashCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Pop returns the pending flash, if any, and clears the cookie.  A tampered
// or expired cookie is dropped silently.
func (s *FlashStore) Pop(c echo.Context) *web.Flash {
	ck, err := c.Cookie(FlashCookie)
	if err != nil {
		return nil
	}
	c.SetCookie(&http.Cookie{Name: FlashCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true, SameSite: http.SameSiteLaxMode})
	var f web.Flash
	if err := s.codec.Decode(FlashCookie, ck.Value, &f); err != nil {
		logging.Ctx(c.Request().Context()).Debug().Err(err).Msg("discarding invalid flash cookie")
		return nil
	}
	return &f
}
