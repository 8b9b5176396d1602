package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

// APIHeaders sets the permissive CORS block, the version header and the JSON
// content type on every /api/ response, and answers preflights directly.
func APIHeaders(poweredBy string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !strings.HasPrefix(c.Request().URL.Path, "/api/") {
				return next(c)
			}

			h := c.Response().Header()
			h.Set(echo.HeaderAccessControlAllowOrigin, "*")
			h.Set(echo.HeaderAccessControlAllowHeaders, "Content-Type, X-Requested-With, Authorization")
			h.Set(echo.HeaderAccessControlAllowMethods, "GET,POST,PUT,DELETE,OPTIONS")
			h.Set("X-Powered-By", poweredBy)
			h.Set(echo.HeaderContentType, "application/json;charset=utf-8")

			if c.Request().Method == http.MethodOptions {
				return c.NoContent(http.StatusNoContent)
			}
			return next(c)
		}
	}
}

// CacheControl marks every response cacheable for maxAge.
func CacheControl(maxAge time.Duration, now func() time.Time) echo.MiddlewareFunc {
	if now == nil {
		now = time.Now
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set(echo.HeaderCacheControl, fmt.Sprintf("max-age=%d", int(maxAge.Seconds())))
			h.Set("Expires", now().Add(maxAge).UTC().Format(http.TimeFormat))
			return next(c)
		}
	}
}

// RequestLogger writes one logrus entry per request.
func RequestLogger(log logrus.FieldLogger, skip middleware.Skipper) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper:      skip,
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			entry := log.WithFields(logrus.Fields{
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency_ms": v.Latency.Milliseconds(),
				"request_id": v.RequestID,
				"remote_ip":  v.RemoteIP,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Warn("request")
				return nil
			}
			entry.Info("request")
			return nil
		},
	})
}
