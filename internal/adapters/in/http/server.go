// Package http is the echo transport of the dispatch service.
package http

import (
	"context"
	"net/http"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/waitlist"
	"dispatch/internal/core/domain/model/worker"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type (
	JobCreator interface {
		Handle(ctx context.Context, cmd commands.CreateJobCommand) (*job.Job, error)
	}

	Dispatcher interface {
		Handle(ctx context.Context, cmd commands.AssignNearestCommand) (commands.AssignNearestResult, error)
	}

	PresenceSetter interface {
		Handle(ctx context.Context, cmd commands.SetPresenceCommand) (*worker.Worker, error)
	}

	WaitlistJoiner interface {
		Handle(ctx context.Context, cmd commands.JoinWaitlistCommand) (*waitlist.Entry, error)
	}

	JobReader interface {
		Handle(ctx context.Context, query queries.GetJobQuery) (*job.Job, error)
	}

	OnlineCleanersReader interface {
		Handle(ctx context.Context, query queries.ListOnlineWorkersQuery) ([]queries.ListOnlineWorkersQueryResponse, error)
	}
)

// Handlers groups the use cases the server delegates to.
type Handlers struct {
	CreateJob      JobCreator
	AssignNearest  Dispatcher
	SetPresence    PresenceSetter
	JoinWaitlist   WaitlistJoiner
	GetJob         JobReader
	OnlineCleaners OnlineCleanersReader
}

// Server implements ServerInterface on top of the command and query handlers.
type Server struct {
	handlers Handlers
	service  string
	version  string
	now      func() time.Time
}

var _ ServerInterface = (*Server)(nil)

func NewServer(handlers Handlers, service, version string) *Server {
	return &Server{
		handlers: handlers,
		service:  service,
		version:  version,
		now:      time.Now,
	}
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, HealthResponse{
		OK:      true,
		Time:    s.now().UTC(),
		Service: s.service,
		Version: s.version,
	})
}

// CreateJob handles POST /jobs.
func (s *Server) CreateJob(ctx echo.Context) error {
	var req CreateJobRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	cmd, err := commands.NewCreateJobCommand(
		req.Name, req.Phone, req.Address, req.Lat, req.Lng, req.Minutes, req.Notes)
	if err != nil {
		return err
	}

	created, err := s.handlers.CreateJob.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, JobEnvelope{OK: true, Job: toJobResponse(created)})
}

// GetJob handles GET /jobs/:id.
func (s *Server) GetJob(ctx echo.Context, id uuid.UUID) error {
	jobID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return err
	}

	query, err := queries.NewGetJobQuery(jobID)
	if err != nil {
		return err
	}

	found, err := s.handlers.GetJob.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, JobEnvelope{OK: true, Job: toJobResponse(found)})
}

// AssignNearest handles POST /jobs/:id/assign-nearest.
func (s *Server) AssignNearest(ctx echo.Context, id uuid.UUID) error {
	jobID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return err
	}

	cmd, err := commands.NewAssignNearestCommand(jobID)
	if err != nil {
		return err
	}

	res, err := s.handlers.AssignNearest.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	switch res.Outcome {
	case commands.OutcomeAssigned:
		distance := res.DistanceKm
		return ctx.JSON(http.StatusOK, AssignNearestResponse{
			OK:              true,
			Job:             toJobResponse(res.Job),
			AssignedCleaner: toCleanerResponse(res.Worker),
			DistanceKm:      &distance,
		})
	case commands.OutcomeAlreadyAssigned:
		return ctx.JSON(http.StatusOK, AssignNearestResponse{
			OK:      true,
			Message: messageAlreadyAssigned,
			Job:     toJobResponse(res.Job),
		})
	default:
		return ctx.JSON(http.StatusOK, AssignNearestResponse{
			OK:      true,
			Message: messageNoCleanersOnline,
		})
	}
}

// SetPresence handles POST /cleaner/online.
func (s *Server) SetPresence(ctx echo.Context) error {
	var req PresenceRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	cmd, err := commands.NewSetPresenceCommand(req.Name, req.Phone, req.Online, req.Lat, req.Lng)
	if err != nil {
		return err
	}

	stored, err := s.handlers.SetPresence.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, CleanerEnvelope{OK: true, Cleaner: toCleanerResponse(stored)})
}

// ListOnlineCleaners handles GET /cleaners/online.
func (s *Server) ListOnlineCleaners(ctx echo.Context) error {
	online, err := s.handlers.OnlineCleaners.Handle(ctx.Request().Context(), queries.NewListOnlineWorkersQuery())
	if err != nil {
		return err
	}

	cleaners := make([]CleanerResponse, len(online))
	for i, w := range online {
		cleaners[i] = toOnlineCleanerResponse(w)
	}

	return ctx.JSON(http.StatusOK, CleanersEnvelope{OK: true, Cleaners: cleaners})
}

// JoinCustomerWaitlist handles POST /waitlist/customer.
func (s *Server) JoinCustomerWaitlist(ctx echo.Context) error {
	return s.joinWaitlist(ctx, waitlist.Customer)
}

// JoinCleanerWaitlist handles POST /waitlist/cleaner.
func (s *Server) JoinCleanerWaitlist(ctx echo.Context) error {
	return s.joinWaitlist(ctx, waitlist.Cleaner)
}

func (s *Server) joinWaitlist(ctx echo.Context, kind waitlist.Kind) error {
	var req WaitlistRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	cmd, err := commands.NewJoinWaitlistCommand(kind, req.Name, req.Email, req.Phone, req.Zip, req.Message)
	if err != nil {
		return err
	}

	entry, err := s.handlers.JoinWaitlist.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, WaitlistEnvelope{OK: true, Entry: toWaitlistEntryResponse(entry)})
}

func bindAndValidate(ctx echo.Context, req any) error {
	if err := ctx.Bind(req); err != nil {
		return err
	}
	return ctx.Validate(req)
}
