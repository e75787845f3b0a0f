package middleware

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

var skipLogPaths = []string{"/healthz", "/metrics"}

var sensitiveParams = map[string]struct{}{
	"token":        {},
	"secret":       {},
	"password":     {},
	"key":          {},
	"api_key":      {},
	"access_token": {},
}

// RequestLogger logs one line per request.  5xx responses log at warn.
func RequestLogger(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			for _, p := range skipLogPaths {
				if strings.HasPrefix(req.URL.Path, p) {
					return next(c)
				}
			}

			start := time.Now()
			err := next(c)
			if err != nil {
				// Let the error handler write the response so the status is final.
				c.Error(err)
			}

			status := c.Response().Status
			ev := logger.Info()
			if status >= 500 {
				ev = logger.Warn()
			}
			ev.Str("method", req.Method).
				Str("path", sanitizePath(req.URL.Path, req.URL.RawQuery)).
				Int("status", status).
				Int64("duration_ms", time.Since(start).Milliseconds()).
				Str("ip", c.RealIP()).
				Str("user_agent", req.UserAgent()).
				Msg("request")
			return nil
		}
	}
}

// sanitizePath redacts sensitive query parameters.
func sanitizePath(path, rawQuery string) string {
	if rawQuery == "" {
		return path
	}
	parts := strings.Split(rawQuery, "&")
	safe := make([]string, 0, len(parts))
	for _, part := range parts {
		k, _, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		if _, secret := sensitiveParams[strings.ToLower(k)]; secret {
			safe = append(safe, k+"=[REDACTED]")
			continue
		}
		safe = append(safe, part)
	}
	if len(safe) == 0 {
		return path
	}
	return path + "?" + strings.Join(safe, "&")
}
