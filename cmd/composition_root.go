package cmd

import (
	"log/slog"
	"strings"

	httpadapter "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/postgres/jobrepo"
	"dispatch/internal/adapters/out/postgres/waitlistrepo"
	"dispatch/internal/adapters/out/postgres/workerrepo"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"
	"dispatch/internal/pkg/logging"
	"dispatch/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// CompositionRoot wires adapters into use cases. It owns no resources: the
// caller opens the database and the publisher and closes them at shutdown.
type CompositionRoot struct {
	cfg       Config
	gormDB    *gorm.DB
	publisher ports.EventPublisher
	registry  *prometheus.Registry
	logger    *slog.Logger

	dispatchMetrics *metrics.Dispatch
	httpMetrics     *metrics.HTTP
	jobMetrics      *metrics.Jobs
	pricer          services.Pricer

	workers  *workerrepo.GormWorkerRepository
	jobs     *jobrepo.GormJobRepository
	waitlist *waitlistrepo.GormWaitlistRepository
}

func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	publisher ports.EventPublisher,
	registry *prometheus.Registry,
	logger *slog.Logger,
) (*CompositionRoot, error) {
	pricer, err := services.NewPricer(cfg.PricingHourlyRateCents)
	if err != nil {
		return nil, err
	}

	return &CompositionRoot{
		cfg:       cfg,
		gormDB:    gormDB,
		publisher: publisher,
		registry:  registry,
		logger:    logger,

		dispatchMetrics: metrics.NewDispatch(registry),
		httpMetrics:     metrics.NewHTTP(registry),
		jobMetrics:      metrics.NewJobs(registry),
		pricer:          pricer,

		workers:  workerrepo.NewGormWorkerRepository(gormDB, cfg.StorageTimeout),
		jobs:     jobrepo.NewGormJobRepository(gormDB, cfg.StorageTimeout),
		waitlist: waitlistrepo.NewGormWaitlistRepository(gormDB, cfg.StorageTimeout),
	}, nil
}

func (c *CompositionRoot) CreateSetPresenceCommandHandler() commands.SetPresenceCommandHandler {
	return commands.NewSetPresenceCommandHandler(c.workers)
}

func (c *CompositionRoot) CreateCreateJobCommandHandler() commands.CreateJobCommandHandler {
	return commands.NewCreateJobCommandHandler(c.jobs, c.pricer)
}

func (c *CompositionRoot) CreateAssignNearestCommandHandler() commands.AssignNearestCommandHandler {
	return commands.NewAssignNearestCommandHandler(c.jobs, c.workers, c.publisher, c.dispatchMetrics, c.logger)
}

func (c *CompositionRoot) CreateJoinWaitlistCommandHandler() commands.JoinWaitlistCommandHandler {
	return commands.NewJoinWaitlistCommandHandler(c.waitlist)
}

func (c *CompositionRoot) CreateExpirePresenceCommandHandler() commands.ExpirePresenceCommandHandler {
	return commands.NewExpirePresenceCommandHandler(c.workers)
}

func (c *CompositionRoot) CreateGetJobQueryHandler() queries.GetJobQueryHandler {
	return queries.NewGetJobQueryHandler(c.gormDB, c.cfg.StorageTimeout)
}

func (c *CompositionRoot) CreateListOnlineWorkersQueryHandler() queries.ListOnlineWorkersQueryHandler {
	return queries.NewListOnlineWorkersQueryHandler(c.gormDB, c.cfg.StorageTimeout)
}

// CreateRouter builds the HTTP handler. openAPI is served as /openapi.json
// when not nil.
func (c *CompositionRoot) CreateRouter(openAPI []byte) *echo.Echo {
	server := httpadapter.NewServer(httpadapter.Handlers{
		CreateJob:      c.CreateCreateJobCommandHandler(),
		AssignNearest:  c.CreateAssignNearestCommandHandler(),
		SetPresence:    c.CreateSetPresenceCommandHandler(),
		JoinWaitlist:   c.CreateJoinWaitlistCommandHandler(),
		GetJob:         c.CreateGetJobQueryHandler(),
		OnlineCleaners: c.CreateListOnlineWorkersQueryHandler(),
	}, c.cfg.ServiceName, c.cfg.ServiceVersion)

	return httpadapter.NewRouter(server, httpadapter.RouterOptions{
		Logger:         c.logger.With("component", "http"),
		LogLevel:       logging.ParseLevel(c.cfg.LogLevel),
		RequestTimeout: c.cfg.RequestTimeout,
		PresenceRate:   c.cfg.PresenceRateLimit,
		PresenceBurst:  c.cfg.PresenceRateBurst,
		Metrics:        c.httpMetrics,
		Gatherer:       c.registry,
		OpenAPI:        openAPI,
	})
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.logger,
		jobs.NewDispatchSweepJob(
			c.jobs,
			c.CreateAssignNearestCommandHandler(),
			c.cfg.DispatchSweepSchedule,
			c.cfg.DispatchSweepBatch,
			c.jobMetrics,
			c.logger,
		),
		jobs.NewPresenceExpiryJob(
			c.CreateExpirePresenceCommandHandler(),
			c.cfg.PresenceTTL,
			c.cfg.PresenceExpirySchedule,
			c.jobMetrics,
			c.logger,
		),
	)
}

// GormLogLevel maps DB_LOG_LEVEL onto the gorm logger.
func GormLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info", "debug":
		return logger.Info
	default:
		return logger.Warn
	}
}
