// Package jobrepo persists jobs with GORM and implements the conditional
// assignment write.
package jobrepo

import (
	"time"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// JobDTO is a row of the jobs table.
type JobDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name             string
	Phone            string
	Address          string
	Lat              *float64
	Lng              *float64
	Minutes          int
	PriceCents       int
	Notes            string
	Status           string
	AssignedWorkerID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt        time.Time  `gorm:"autoCreateTime:false"`
	AcceptedAt       *time.Time
}

func (JobDTO) TableName() string {
	return "jobs"
}

func fromDomain(j *job.Job) JobDTO {
	dto := JobDTO{
		ID:         j.ID().Bytes(),
		Name:       j.Name(),
		Phone:      j.Phone().String(),
		Address:    j.Address(),
		Minutes:    j.Minutes(),
		PriceCents: j.PriceCents(),
		Notes:      j.Notes(),
		Status:     j.Status().String(),
		CreatedAt:  j.CreatedAt(),
		AcceptedAt: j.AcceptedAt(),
	}

	if loc := j.Location(); loc != nil {
		lat, lng := loc.Lat(), loc.Lng()
		dto.Lat, dto.Lng = &lat, &lng
	}
	if id := j.Worker(); id != nil {
		raw := id.Bytes()
		dto.AssignedWorkerID = &raw
	}

	return dto
}

// ToDomain rebuilds a job from its row. Queries reuse it for raw SQL scans.
func ToDomain(dto JobDTO) (*job.Job, error) {
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

	status, err := job.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var workerID *kernel.UUID
	if dto.AssignedWorkerID != nil {
		wID, err := kernel.UUIDFromBytes((*dto.AssignedWorkerID)[:])
		if err != nil {
			return nil, err
		}
		workerID = &wID
	}

	return job.RestoreJob(id, job.Intake{
		Name:     dto.Name,
		Phone:    phone,
		Address:  dto.Address,
		Location: location,
		Minutes:  dto.Minutes,
		Notes:    dto.Notes,
	}, dto.PriceCents, status, workerID, dto.CreatedAt, dto.AcceptedAt)
}
