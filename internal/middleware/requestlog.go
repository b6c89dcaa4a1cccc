package middleware

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"
)

// RequestLogger writes one logrus entry per request.  5xx responses log at
// error level, 4xx at warn.  Handler errors are rendered first so the
// logged status is the one the client received.
func RequestLogger() echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		HandleError: true,
		LogMethod:   true,
		LogURIPath:  true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			logRequest(v)
			return nil
		},
	})
}

func logRequest(v echomw.RequestLoggerValues) {
	entry := log.WithFields(log.Fields{
		"method":  v.Method,
		"path":    v.URIPath,
		"status":  v.Status,
		"latency": v.Latency.String(),
		"ip":      v.RemoteIP,
	})
	if v.Error != nil {
		entry = entry.WithError(v.Error)
	}
	switch {
	case v.Status >= 500:
		entry.Error("request")
	case v.Status >= 400:
		entry.Warn("request")
	default:
		entry.Info("request")
	}
}
