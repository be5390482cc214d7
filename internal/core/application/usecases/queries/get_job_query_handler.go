package queries

import (
	"context"
	"time"

	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/jobrepo"
	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetJobQueryHandler reads a single job row.
type GetJobQueryHandler struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewGetJobQueryHandler(db *gorm.DB, timeout time.Duration) GetJobQueryHandler {
	return GetJobQueryHandler{db: db, timeout: timeout}
}

// Handle returns ObjectNotFoundError when the job does not exist.
func (h GetJobQueryHandler) Handle(ctx context.Context, query GetJobQuery) (*job.Job, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := postgres.WithTimeout(ctx, h.timeout)
	defer cancel()

	var dto jobrepo.JobDTO
	res := h.db.WithContext(ctx).Raw(`
		SELECT
			id, name, phone, address, lat, lng, minutes, price_cents, notes,
			status, assigned_worker_id, created_at, accepted_at
		FROM jobs
		WHERE id = ?
	`, query.ID().String()).Scan(&dto)
	if res.Error != nil {
		return nil, postgres.StorageError("get job", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, errs.NewObjectNotFoundError("job", query.ID().String())
	}

	return jobrepo.ToDomain(dto)
}
