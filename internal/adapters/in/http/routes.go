package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface lists the operations of api/openapi.yaml.
type ServerInterface interface {
	// (GET /health)
	Health(ctx echo.Context) error
	// (POST /jobs)
	CreateJob(ctx echo.Context) error
	// (GET /jobs/{id})
	GetJob(ctx echo.Context, id uuid.UUID) error
	// (POST /jobs/{id}/assign-nearest)
	AssignNearest(ctx echo.Context, id uuid.UUID) error
	// (POST /cleaner/online)
	SetPresence(ctx echo.Context) error
	// (GET /cleaners/online)
	ListOnlineCleaners(ctx echo.Context) error
	// (POST /waitlist/customer)
	JoinCustomerWaitlist(ctx echo.Context) error
	// (POST /waitlist/cleaner)
	JoinCleanerWaitlist(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to typed parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) Health(ctx echo.Context) error {
	return w.Handler.Health(ctx)
}

func (w *ServerInterfaceWrapper) CreateJob(ctx echo.Context) error {
	return w.Handler.CreateJob(ctx)
}

func (w *ServerInterfaceWrapper) GetJob(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetJob(ctx, id)
}

func (w *ServerInterfaceWrapper) AssignNearest(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.AssignNearest(ctx, id)
}

func (w *ServerInterfaceWrapper) SetPresence(ctx echo.Context) error {
	return w.Handler.SetPresence(ctx)
}

func (w *ServerInterfaceWrapper) ListOnlineCleaners(ctx echo.Context) error {
	return w.Handler.ListOnlineCleaners(ctx)
}

func (w *ServerInterfaceWrapper) JoinCustomerWaitlist(ctx echo.Context) error {
	return w.Handler.JoinCustomerWaitlist(ctx)
}

func (w *ServerInterfaceWrapper) JoinCleanerWaitlist(ctx echo.Context) error {
	return w.Handler.JoinCleanerWaitlist(ctx)
}

// A malformed id cannot name an existing job, so it is reported as not found.
func bindID(ctx echo.Context) (uuid.UUID, error) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
	if err != nil {
		return uuid.UUID{}, echo.NewHTTPError(http.StatusNotFound).SetInternal(err)
	}
	return id, nil
}

// EchoRouter is satisfied by *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RouteOptions attaches extra middleware to single routes.
type RouteOptions struct {
	Presence []echo.MiddlewareFunc
}

// RegisterHandlers mounts every operation on router.
func RegisterHandlers(router EchoRouter, si ServerInterface, opts RouteOptions) {
	w := &ServerInterfaceWrapper{Handler: si}

	router.GET("/health", w.Health)
	router.POST("/jobs", w.CreateJob)
	router.GET("/jobs/:id", w.GetJob)
	router.POST("/jobs/:id/assign-nearest", w.AssignNearest)
	router.POST("/cleaner/online", w.SetPresence, opts.Presence...)
	router.GET("/cleaners/online", w.ListOnlineCleaners)
	router.POST("/waitlist/customer", w.JoinCustomerWaitlist)
	router.POST("/waitlist/cleaner", w.JoinCleanerWaitlist)
}
