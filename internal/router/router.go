package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/ecowash/ecowash-backend/internal/config"
	"github.com/ecowash/ecowash-backend/internal/handler"
	"github.com/ecowash/ecowash-backend/internal/middleware"
	"github.com/ecowash/ecowash-backend/internal/notify"
	"github.com/ecowash/ecowash-backend/internal/repository"
	"github.com/ecowash/ecowash-backend/internal/service"
)

// Deps is everything the API needs at startup.  Redis may be nil, which
// turns rate limiting and response caching off.
type Deps struct {
	Cfg       config.Config
	Stores    repository.Stores
	Notifier  notify.Notifier
	Redis     *redis.Client
	RateLimit config.RateLimitConfig
	Cache     config.CacheConfig
}

// New builds the Echo instance with every route registered.
func New(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.JSONSerializer = handler.StrictJSONSerializer{}
	e.Validator = handler.NewRequestValidator()
	e.HTTPErrorHandler = handler.HTTPErrorHandler

	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger())
	e.Use(echomw.CORS())

	auth := service.NewAuthService(d.Stores, d.Cfg.JWTSecret, d.Cfg.TokenTTLDays, d.Cfg.BcryptCost)
	reservations := service.NewReservationService(d.Stores, d.Notifier, d.Cfg.StrictTransitions)
	reviews := service.NewReviewService(d.Stores)
	cache := middleware.NewResponseCache(d.Cache, d.Redis)
	limit := middleware.NewTokenBucket(d.RateLimit, d.Redis)

	userAuth := middleware.UserAuth(d.Cfg.JWTSecret, d.Stores.Users)
	adminAuth := middleware.AdminAuth(d.Cfg.JWTSecret, d.Stores.Admins)

	rh := handler.NewReservationHandler(reservations)
	ch := handler.NewContactHandler(d.Stores.Contacts)
	vh := handler.NewReviewHandler(reviews, cache)

	RegisterRoutes(e)
	RegisterAuth(e, handler.NewAuthHandler(auth), userAuth, limit)
	RegisterCustomer(e, rh, vh, userAuth)
	RegisterAdmin(e, rh, ch, adminAuth)
	RegisterPublic(e, ch, vh, limit, cache.Middleware())
	return e
}

// RegisterRoutes registers routes that do not require authentication and
// are not part of the API proper.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
	e.GET("/", handler.Welcome)
}

// RegisterAuth registers sign-up and sign-in under /api/auth.  The write
// endpoints share the rate limiter; /me requires a user token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, userAuth, limit echo.MiddlewareFunc) {
	g := e.Group("/api/auth")
	g.POST("/register", a.Register, limit)
	g.POST("/login", a.Login, limit)
	g.POST("/admin/login", a.AdminLogin, limit)
	g.GET("/me", a.Me, userAuth)
}
