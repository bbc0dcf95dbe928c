package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/iliyamo/palm-beach-resort/internal/logging"
)

// RequestLogger attaches a request-scoped zerolog logger to the request
// context and writes one line per request when it completes.
func RequestLogger(base *zerolog.Logger) echo.MiddlewareFunc {
	if base == nil {
		base = logging.Default()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()
			rid := req.Header.Get(echo.HeaderXRequestID)
			if rid == "" {
				rid = c.Response().Header().Get(echo.HeaderXRequestID)
			}
			l := base.With().Str("request_id", rid).Logger()
			c.SetRequest(req.WithContext(logging.WithLogger(req.Context(), &l)))

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			ev := l.Info()
			switch {
			case status >= 500:
				ev = l.Error().Err(err)
			case status >= 400:
				ev = l.Warn()
			}
			ev.Str("method", req.Method).
				Str("path", req.URL.Path).
				Str("route", c.Path()).
				Int("status", status).
				Dur("latency", time.Since(start)).
				Str("user", UserID(c)).
				Msg("request")
			return nil
		}
	}
}
