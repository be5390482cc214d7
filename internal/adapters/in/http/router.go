package http

import (
	"log/slog"
	"net/http"
	"time"

	"dispatch/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RouterOptions configures NewRouter.
type RouterOptions struct {
	Logger         *slog.Logger
	LogLevel       slog.Level
	RequestTimeout time.Duration

	// PresenceRate is the per-IP limit of POST /cleaner/online in requests
	// per second. Zero disables the limiter.
	PresenceRate  float64
	PresenceBurst int

	Metrics  *metrics.HTTP
	Gatherer prometheus.Gatherer

	// OpenAPI is the JSON document served at /openapi.json. Nil skips the
	// document and the Swagger UI.
	OpenAPI []byte
}

// NewRouter builds the echo instance with middleware, API routes and the
// operational endpoints.
func NewRouter(server ServerInterface, opts RouterOptions) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(gommonLevel(opts.LogLevel))
	e.Validator = NewValidator()
	e.HTTPErrorHandler = ErrorHandler(opts.Logger)

	e.Use(middleware.Recover())
	if opts.Metrics != nil {
		e.Use(Metrics(opts.Metrics))
	}
	e.Use(RequestLogger(opts.Logger))
	if opts.RequestTimeout > 0 {
		e.Use(middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{
			Timeout: opts.RequestTimeout,
		}))
	}

	var routeOpts RouteOptions
	if opts.PresenceRate > 0 {
		routeOpts.Presence = append(routeOpts.Presence, RateLimit(opts.PresenceRate, opts.PresenceBurst))
	}
	RegisterHandlers(e, server, routeOpts)

	if opts.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	if opts.OpenAPI != nil {
		doc := opts.OpenAPI
		e.GET("/openapi.json", func(c echo.Context) error {
			return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, doc)
		})
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	return e
}

func gommonLevel(level slog.Level) log.Lvl {
	switch {
	case level <= slog.LevelDebug:
		return log.DEBUG
	case level <= slog.LevelInfo:
		return log.INFO
	case level <= slog.LevelWarn:
		return log.WARN
	default:
		return log.ERROR
	}
}
