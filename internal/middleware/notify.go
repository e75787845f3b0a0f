package middleware

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/quejasboyaca/complaint-service/internal/notification"
	"github.com/quejasboyaca/complaint-service/internal/render"
	"github.com/quejasboyaca/complaint-service/internal/worker"
)

// Notifier delivers a report-view notification.
type Notifier interface {
	Notify(ctx context.Context, req notification.RequestInfo, action string) error
}

// TaskSubmitter accepts background work without blocking.
type TaskSubmitter interface {
	Submit(t worker.Task) bool
}

// RenderNotifications attaches a render hook to requests for the report
// views.  When the handler renders complaints_list or complaints_stats, one
// notification task is submitted to the pool.  The response never waits on
// it and its failure is only logged by the pool.
func RenderNotifications(n Notifier, pool TaskSubmitter, logger zerolog.Logger) echo.MiddlewareFunc {
	log := logger.With().Str("component", "notify").Logger()
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if !notification.IsReportPath(req.RequestURI) {
				return next(c)
			}
			info := notification.RequestInfo{
				URL:       req.RequestURI,
				Method:    req.Method,
				IP:        c.RealIP(),
				UserAgent: req.UserAgent(),
			}
			render.AddHook(c, func(view string) {
				action, ok := notification.ActionForView(view)
				if !ok {
					return
				}
				submitted := pool.Submit(worker.Task{
					Name: "notify:" + view,
					Run: func(ctx context.Context) error {
						return n.Notify(ctx, info, action)
					},
				})
				if submitted {
					log.Debug().Str("view", view).Str("action", action).Msg("notification queued")
				}
			})
			return next(c)
		}
	}
}
