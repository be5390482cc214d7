// Package workerrepo persists worker presence with GORM.
package workerrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/worker"

	"github.com/google/uuid"
)

// WorkerDTO is a row of the workers table. Lat and Lng are null together.
type WorkerDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(200);not null"`
	Phone     string    `gorm:"type:varchar(16);not null;uniqueIndex"`
	Online    bool      `gorm:"not null"`
	Lat       *float64
	Lng       *float64
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

func (WorkerDTO) TableName() string {
	return "workers"
}

func fromDomain(w *worker.Worker) WorkerDTO {
	dto := WorkerDTO{
		ID:        w.ID().Bytes(),
		Name:      w.Name(),
		Phone:     w.Phone().String(),
		Online:    w.Online(),
		UpdatedAt: w.LastSeenAt(),
	}

	if loc := w.Location(); loc != nil {
		lat, lng := loc.Lat(), loc.Lng()
		dto.Lat, dto.Lng = &lat, &lng
	}

	return dto
}

// ToDomain rebuilds a worker from its row. Queries reuse it for raw SQL scans.
func ToDomain(dto WorkerDTO) (*worker.Worker, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	phone, err := kernel.NewPhone(dto.Phone)
	if err != nil {
		return nil, err
	}

	location, err := kernel.NewOptionalGeoPoint(dto.Lat, dto.Lng)
	if err != nil {
		return nil, err
	}

	return worker.RestoreWorker(id, dto.Name, phone, dto.Online, location, dto.UpdatedAt)
}
