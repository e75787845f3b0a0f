// Package router registers the HTTP surface on an echo instance.
package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/quejasboyaca/complaint-service/internal/config"
	"github.com/quejasboyaca/complaint-service/internal/handler"
	"github.com/quejasboyaca/complaint-service/internal/middleware"
	"github.com/quejasboyaca/complaint-service/internal/render"
)

// Deps is everything the routes need.  Redis may be nil; rate limiting is
// then disabled.
type Deps struct {
	Complaints handler.ComplaintOps
	Auth       *handler.AuthHandler
	Captcha    *handler.CaptchaHandler
	Notifier   middleware.Notifier
	Pool       middleware.TaskSubmitter
	Renderer   *render.Templates
	RateLimit  config.RateLimitConfig
	Redis      *redis.Client
	Logger     zerolog.Logger
}

// New builds the echo instance with the global middleware stack.
func New(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = d.Renderer

	e.Use(echomw.RecoverWithConfig(echomw.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			d.Logger.Error().Err(err).Bytes("stack", stack).Str("path", c.Request().URL.Path).Msg("panic recovered")
			return err
		},
	}))
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(middleware.Metrics())
	e.Use(middleware.RenderNotifications(d.Notifier, d.Pool, d.Logger))

	RegisterRoutes(e)
	RegisterHome(e, handler.NewHomeHandler(d.Complaints, d.Logger))

	limit := middleware.NewTokenBucket(d.RateLimit, d.Redis, d.Logger)
	RegisterComplaints(e, handler.NewComplaintHandler(d.Complaints, d.Logger), limit)
	RegisterAuth(e, d.Auth, limit)
	if d.Captcha != nil {
		e.POST("/verify-captcha", d.Captcha.Verify)
	}
	return e
}

// RegisterRoutes registers the operational endpoints.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

func RegisterHome(e *echo.Echo, h *handler.HomeHandler) {
	e.GET("/", h.Home)
	e.GET("/login", h.Login)
}

// RegisterComplaints registers /complaints.  limit guards the anonymous
// write endpoints.
func RegisterComplaints(e *echo.Echo, h *handler.ComplaintHandler, limit echo.MiddlewareFunc) {
	g := e.Group("/complaints")
	g.GET("/list", h.List)
	g.GET("/stats", h.Stats)
	g.POST("/file", h.File, limit)
	g.POST("/delete", h.Delete)
	g.POST("/update-status", h.UpdateStatus)

	g.GET("/:id_complaint/comments", h.Comments)
	g.POST("/comments", h.AddComment, limit)
	g.GET("/:id_complaint/details", h.Details)
}

// RegisterAuth registers the session endpoints under /auth.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, limit echo.MiddlewareFunc) {
	g := e.Group("/auth")
	g.POST("/login", a.Login, limit)
	g.GET("/validate", a.ValidateSession)
	g.POST("/logout", a.Logout)
}
