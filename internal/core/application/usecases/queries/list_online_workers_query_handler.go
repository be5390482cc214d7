package queries

import (
	"context"
	"database/sql"
	"time"

	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListOnlineWorkersQueryHandler reads online workers ordered by name.
type ListOnlineWorkersQueryHandler struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewListOnlineWorkersQueryHandler(db *gorm.DB, timeout time.Duration) ListOnlineWorkersQueryHandler {
	return ListOnlineWorkersQueryHandler{db: db, timeout: timeout}
}

func (h ListOnlineWorkersQueryHandler) Handle(
	ctx context.Context,
	query ListOnlineWorkersQuery,
) ([]ListOnlineWorkersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := postgres.WithTimeout(ctx, h.timeout)
	defer cancel()

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			phone,
			lat,
			lng,
			updated_at
		FROM workers
		WHERE online
		ORDER BY name, id
	`).Rows()
	if err != nil {
		return nil, postgres.StorageError("list online workers", err)
	}
	defer rows.Close()

	workers := make([]ListOnlineWorkersQueryResponse, 0)
	for rows.Next() {
		var (
			w        ListOnlineWorkersQueryResponse
			id       uuid.UUID
			lat, lng sql.NullFloat64
		)

		if err = rows.Scan(&id, &w.Name, &w.Phone, &lat, &lng, &w.LastSeenAt); err != nil {
			return nil, postgres.StorageError("list online workers", err)
		}

		workerID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		w.ID = workerID

		location, locErr := kernel.NewOptionalGeoPoint(nullable(lat), nullable(lng))
		if locErr != nil {
			return nil, locErr
		}
		w.Location = location

		workers = append(workers, w)
	}

	if err = rows.Err(); err != nil {
		return nil, postgres.StorageError("list online workers", err)
	}

	return workers, nil
}

func nullable(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}
