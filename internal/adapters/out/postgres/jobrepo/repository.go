package jobrepo

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// assignSQL accepts a Requested job for a worker that is not busy. A worker is
// busy while one of its Accepted jobs is still inside accepted_at + minutes.
const assignSQL = `
UPDATE jobs SET status = ?, assigned_worker_id = ?, accepted_at = ?
WHERE id = ? AND status = ?
  AND NOT EXISTS (
    SELECT 1 FROM jobs busy
    WHERE busy.assigned_worker_id = ?
      AND busy.status = ?
      AND busy.accepted_at + busy.minutes * interval '1 minute' > ?
  )
RETURNING *`

// GormJobRepository implements ports.JobStore.
type GormJobRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewGormJobRepository(db *gorm.DB, timeout time.Duration) *GormJobRepository {
	return &GormJobRepository{
		db:      db,
		timeout: timeout,
	}
}

func (r *GormJobRepository) Add(ctx context.Context, j *job.Job) error {
	if err := j.Validate(); err != nil {
		return err
	}

	ctx, cancel := postgres.WithTimeout(ctx, r.timeout)
	defer cancel()

	dto := fromDomain(j)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if postgres.IsUniqueViolation(err, "") {
			return errs.NewConflictErrorWithCause(ports.ConflictJob, j.ID().String(), err)
		}
		return postgres.StorageError("add job", err)
	}

	return nil
}

func (r *GormJobRepository) Get(ctx context.Context, id kernel.UUID) (*job.Job, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := postgres.WithTimeout(ctx, r.timeout)
	defer cancel()

	return r.get(r.db.WithContext(ctx), id)
}

// Assign is the only state transition of a job. The worker row is locked first,
// so two jobs cannot claim the same worker at once. The WHERE clause on status
// makes the update a compare-and-set on the job. Zero updated rows are explained
// by a re-read inside the same transaction.
func (r *GormJobRepository) Assign(ctx context.Context, jobID, workerID kernel.UUID, at time.Time) (*job.Job, error) {
	if err := errors.Join(jobID.Validate(), workerID.Validate()); err != nil {
		return nil, err
	}

	ctx, cancel := postgres.WithTimeout(ctx, r.timeout)
	defer cancel()

	var assigned JobDTO
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var locked []string
		err := tx.Raw("SELECT id::text FROM workers WHERE id = ? FOR UPDATE", workerID.Bytes()).
			Scan(&locked).Error
		if err != nil {
			return postgres.StorageError("lock worker", err)
		}
		if len(locked) == 0 {
			return errs.NewConflictErrorWithCause(ports.ConflictWorker, workerID.String(),
				errs.NewObjectNotFoundError("worker", workerID.String()))
		}

		accepted, requested := job.Accepted.String(), job.Requested.String()
		result := tx.Raw(assignSQL,
			accepted, workerID.Bytes(), at.UTC(),
			jobID.Bytes(), requested,
			workerID.Bytes(), accepted, at.UTC(),
		).Scan(&assigned)
		if result.Error != nil {
			return postgres.StorageError("assign job", result.Error)
		}
		if result.RowsAffected == 1 {
			return nil
		}

		current, err := r.get(tx, jobID)
		if err != nil {
			return err
		}
		if current.Status() != job.Requested {
			return errs.NewConflictError(ports.ConflictJob, jobID.String())
		}
		return errs.NewConflictError(ports.ConflictWorker, workerID.String())
	})
	if err != nil {
		return nil, classify("assign job", err)
	}

	return ToDomain(assigned)
}

// ListRequested returns the oldest located Requested jobs first.
func (r *GormJobRepository) ListRequested(ctx context.Context, limit int) ([]*job.Job, error) {
	if limit <= 0 {
		return []*job.Job{}, nil
	}

	ctx, cancel := postgres.WithTimeout(ctx, r.timeout)
	defer cancel()

	var dtos []JobDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND lat IS NOT NULL AND lng IS NOT NULL", job.Requested.String()).
		Order("created_at, id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, postgres.StorageError("list requested jobs", err)
	}

	jobs := make([]*job.Job, 0, len(dtos))
	for _, dto := range dtos {
		j, err := ToDomain(dto)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}

	return jobs, nil
}

func (r *GormJobRepository) get(db *gorm.DB, id kernel.UUID) (*job.Job, error) {
	var dto JobDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("job", id.String())
		}
		return nil, postgres.StorageError("get job", err)
	}

	return ToDomain(dto)
}

// classify passes domain and storage errors through and wraps the rest, such
// as a failed commit, as storage errors.
func classify(op string, err error) error {
	if errors.Is(err, errs.ErrConflict) || errors.Is(err, errs.ErrObjectNotFound) ||
		errors.Is(err, errs.ErrStorage) || errs.IsValidation(err) {
		return err
	}
	return postgres.StorageError(op, err)
}
