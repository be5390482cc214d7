package worker

import (
	"errors"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"

	"github.com/google/uuid"
)

const maxNameLength = 200

// Namespace scopes the name-based worker identifiers. Changing it re-keys every worker.
var Namespace = uuid.MustParse("3f1c2a8e-6d0b-5c47-9a1e-2b7d4c9e8f10")

var (
	ErrNameIsRequired         = errs.NewValueIsRequiredError("name")
	ErrWorkerIsNotConstructed = errors.New("Worker must be created via NewWorker or RestoreWorker constructor")
)

// IDFromPhone derives the stable worker identity for a phone number.
func IDFromPhone(phone kernel.Phone) kernel.UUID {
	return kernel.NewNameBasedUUID(Namespace, phone.String())
}

// Worker is the presence aggregate: who the worker is, whether they are online,
// and where they were last seen.
//
// Business rules:
//   - the identity is derived from the phone (see IDFromPhone)
//   - name must be non-empty after trimming
//   - location is nil when unknown
//   - only an online worker with a location is eligible for matching
type Worker struct {
	id         kernel.UUID
	name       string
	phone      kernel.Phone
	online     bool
	location   *kernel.GeoPoint
	lastSeenAt time.Time
	guard      guard.ConstructorGuard
}

// NewWorker builds the presence snapshot reported by a worker at seenAt.
//
// Example:
//
//	phone, _ := kernel.NewPhone("+1 555 010 2030")
//	loc, _ := kernel.NewGeoPoint(40.01, -73.0)
//	w, err := worker.NewWorker("Ana", phone, true, &loc, time.Now())
func NewWorker(name string, phone kernel.Phone, online bool, location *kernel.GeoPoint, seenAt time.Time) (*Worker, error) {
	if err := phone.Validate(); err != nil {
		return nil, err
	}

	return RestoreWorker(IDFromPhone(phone), name, phone, online, location, seenAt)
}

// RestoreWorker rebuilds a Worker from storage without re-deriving its id.
func RestoreWorker(
	id kernel.UUID,
	name string,
	phone kernel.Phone,
	online bool,
	location *kernel.GeoPoint,
	lastSeenAt time.Time,
) (*Worker, error) {
	w := &Worker{
		online:     online,
		lastSeenAt: lastSeenAt.UTC(),
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		w.setID(id),
		w.setName(name),
		w.setPhone(phone),
		w.setLocation(location),
	); err != nil {
		return nil, err
	}

	return w, nil
}

// Validate returns ErrWorkerIsNotConstructed for nil or zero-value workers.
func (w *Worker) Validate() error {
	if w == nil {
		return ErrWorkerIsNotConstructed
	}
	return w.guard.Validate(ErrWorkerIsNotConstructed)
}

// IsEqual compares workers by identity.
func (w *Worker) IsEqual(other *Worker) bool {
	return other != nil && w.id.IsEqual(other.id)
}

func (w *Worker) ID() kernel.UUID {
	return w.id
}

func (w *Worker) Name() string {
	return w.name
}

func (w *Worker) Phone() kernel.Phone {
	return w.phone
}

func (w *Worker) Online() bool {
	return w.online
}

// Location returns a copy of the last known location, or nil when unknown.
func (w *Worker) Location() *kernel.GeoPoint {
	if w.location == nil {
		return nil
	}
	loc := *w.location
	return &loc
}

func (w *Worker) LastSeenAt() time.Time {
	return w.lastSeenAt
}

// IsEligible reports whether the worker can be offered a job: online and located.
func (w *Worker) IsEligible() bool {
	return w.online && w.location != nil
}

func (w *Worker) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	w.id = id
	return nil
}

func (w *Worker) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	if len(name) > maxNameLength {
		return errs.NewValueIsOutOfRangeError("name length", len(name), 1, maxNameLength)
	}

	w.name = name
	return nil
}

func (w *Worker) setPhone(phone kernel.Phone) error {
	if err := phone.Validate(); err != nil {
		return err
	}

	w.phone = phone
	return nil
}

func (w *Worker) setLocation(location *kernel.GeoPoint) error {
	if location == nil {
		w.location = nil
		return nil
	}
	if err := location.Validate(); err != nil {
		return err
	}

	loc := *location
	w.location = &loc
	return nil
}
