package router // package router wires middleware and registers every route of the site

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/fyyur-booking/internal/config"
	"github.com/iliyamo/fyyur-booking/internal/handler"
	"github.com/iliyamo/fyyur-booking/internal/middleware"
	"github.com/iliyamo/fyyur-booking/web"
)

// Deps carries what New needs.  Redis may be nil, which turns the cache
// and the rate limiter off.
type Deps struct {
	Handler   *handler.Handler
	DB        handler.Pinger
	Redis     *redis.Client
	Cache     config.CacheConfig
	RateLimit config.RateLimitConfig
}

// New builds the Echo instance with renderer, validator, error page and
// every route registered.
func New(d Deps) (*echo.Echo, error) {
	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.Validator = handler.NewFormValidator()
	e.HTTPErrorHandler = d.Handler.HTTPErrorHandler

	// HTML forms can only POST; _method=DELETE reaches the DELETE route.
	e.Pre(echomw.MethodOverrideWithConfig(echomw.MethodOverrideConfig{
		Getter: echomw.MethodFromForm("_method"),
	}))
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestContext())
	e.Use(middleware.AccessLog())
	e.Use(middleware.Metrics())
	e.Use(echomw.Recover())

	RegisterRoutes(e, d.DB)
	RegisterPages(e, d.Handler,
		middleware.NewRedisCache(d.Cache, d.Redis, handler.FlashCookie),
		middleware.NewTokenBucket(d.RateLimit, d.Redis),
		middleware.PurgeAfterWrite(d.Cache, d.Redis),
	)
	return e, nil
}

// RegisterRoutes registers the operational endpoints: the health check and
// the Prometheus scrape target.
func RegisterRoutes(e *echo.Echo, db handler.Pinger) {
	e.GET("/healthz", handler.Health(db))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterPages registers the site.  Only pages whose content depends on
// stored rows alone go through cache: anything showing upcoming or past
// counts is rendered against the clock on every read.  Form submissions and
// searches go through limit, writes also through purge so cached pages never
// outlive a change.
func RegisterPages(e *echo.Echo, h *handler.Handler, cache, limit, purge echo.MiddlewareFunc) {
	e.GET("/", h.Home)

	e.GET("/venues", h.Venues)
	e.POST("/venues/search", h.SearchVenues, limit)
	e.GET("/venues/create", h.CreateVenueForm)
	e.POST("/venues/create", h.CreateVenue, limit, purge)
	e.GET("/venues/:id", h.ShowVenue)
	e.DELETE("/venues/:id", h.DeleteVenue, limit, purge)
	e.GET("/venues/:id/edit", h.EditVenueForm)
	e.POST("/venues/:id/edit", h.EditVenue, limit, purge)

	e.GET("/artists", h.Artists, cache)
	e.POST("/artists/search", h.SearchArtists, limit)
	e.GET("/artists/create", h.CreateArtistForm)
	e.POST("/artists/create", h.CreateArtist, limit, purge)
	e.GET("/artists/:id", h.ShowArtist)
	e.GET("/artists/:id/edit", h.EditArtistForm)
	e.POST("/artists/:id/edit", h.EditArtist, limit, purge)

	e.GET("/shows", h.Shows, cache)
	e.GET("/shows/create", h.CreateShowForm)
	e.POST("/shows/create", h.CreateShow, limit, purge)
}
