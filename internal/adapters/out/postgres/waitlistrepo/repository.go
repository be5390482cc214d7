// Package waitlistrepo stores waitlist signups with GORM.
package waitlistrepo

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/waitlist"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EntryDTO is a row of the waitlist_entries table.
type EntryDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Kind      string
	Name      string
	Email     string
	Phone     *string
	Zip       string
	Message   string
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
}

func (EntryDTO) TableName() string {
	return "waitlist_entries"
}

// GormWaitlistRepository implements ports.WaitlistRepository.
type GormWaitlistRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewGormWaitlistRepository(db *gorm.DB, timeout time.Duration) *GormWaitlistRepository {
	return &GormWaitlistRepository{
		db:      db,
		timeout: timeout,
	}
}

func (r *GormWaitlistRepository) Add(ctx context.Context, e *waitlist.Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}

	ctx, cancel := postgres.WithTimeout(ctx, r.timeout)
	defer cancel()

	dto := EntryDTO{
		ID:        e.ID().Bytes(),
		Kind:      string(e.Kind()),
		Name:      e.Name(),
		Email:     e.Email(),
		Zip:       e.Zip(),
		Message:   e.Message(),
		CreatedAt: e.CreatedAt(),
	}
	if p := e.Phone(); p != nil {
		phone := p.String()
		dto.Phone = &phone
	}

	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return postgres.StorageError("add waitlist entry", err)
	}

	return nil
}

func (r *GormWaitlistRepository) Get(ctx context.Context, id kernel.UUID) (*waitlist.Entry, error) {
	ctx, cancel := postgres.WithTimeout(ctx, r.timeout)
	defer cancel()

	var dto EntryDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("waitlist entry", id.String())
		}
		return nil, postgres.StorageError("get waitlist entry", err)
	}

	entryID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	contact := waitlist.Contact{
		Name:    dto.Name,
		Email:   dto.Email,
		Zip:     dto.Zip,
		Message: dto.Message,
	}
	if dto.Phone != nil {
		phone, err := kernel.NewPhone(*dto.Phone)
		if err != nil {
			return nil, err
		}
		contact.Phone = &phone
	}

	return waitlist.RestoreEntry(entryID, waitlist.Kind(dto.Kind), contact, dto.CreatedAt)
}
