package workerrepo

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/worker"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormWorkerRepository implements ports.WorkerRegistry.
type GormWorkerRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewGormWorkerRepository bounds every call by timeout; zero disables the bound.
func NewGormWorkerRepository(db *gorm.DB, timeout time.Duration) *GormWorkerRepository {
	return &GormWorkerRepository{
		db:      db,
		timeout: timeout,
	}
}

// SetPresence inserts the worker or overwrites every presence column of the existing row.
func (r *GormWorkerRepository) SetPresence(ctx context.Context, w *worker.Worker) (*worker.Worker, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := postgres.WithTimeout(ctx, r.timeout)
	defer cancel()

	dto := fromDomain(w)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "phone", "online", "lat", "lng", "updated_at"}),
		}).
		Create(&dto).Error
	if err != nil {
		return nil, postgres.StorageError("set presence", err)
	}

	return w, nil
}

// ListOnlineWithLocation returns the matchable workers in no particular order.
func (r *GormWorkerRepository) ListOnlineWithLocation(ctx context.Context) ([]*worker.Worker, error) {
	ctx, cancel := postgres.WithTimeout(ctx, r.timeout)
	defer cancel()

	var dtos []WorkerDTO
	err := r.db.WithContext(ctx).
		Where("online AND lat IS NOT NULL AND lng IS NOT NULL").
		Find(&dtos).Error
	if err != nil {
		return nil, postgres.StorageError("list online workers", err)
	}

	workers := make([]*worker.Worker, 0, len(dtos))
	for _, dto := range dtos {
		w, err := ToDomain(dto)
		if err != nil {
			return nil, err
		}
		workers = append(workers, w)
	}

	return workers, nil
}

func (r *GormWorkerRepository) Get(ctx context.Context, id kernel.UUID) (*worker.Worker, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := postgres.WithTimeout(ctx, r.timeout)
	defer cancel()

	var dto WorkerDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("worker", id.String())
		}
		return nil, postgres.StorageError("get worker", err)
	}

	return ToDomain(dto)
}

// ExpireStale takes offline, in one statement, every online worker last seen before cutoff.
func (r *GormWorkerRepository) ExpireStale(ctx context.Context, cutoff time.Time) (int, error) {
	ctx, cancel := postgres.WithTimeout(ctx, r.timeout)
	defer cancel()

	result := r.db.WithContext(ctx).
		Model(&WorkerDTO{}).
		Where("online AND updated_at < ?", cutoff.UTC()).
		Update("online", false)
	if result.Error != nil {
		return 0, postgres.StorageError("expire stale workers", result.Error)
	}

	return int(result.RowsAffected), nil
}
