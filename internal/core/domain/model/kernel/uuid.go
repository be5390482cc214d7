package kernel

import (
	"fmt"

	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when validating a zero-value UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError(
	"UUID must be created via NewUUID, NewNameBasedUUID, UUIDFromString, or UUIDFromBytes")

// UUID is the identifier value object for jobs, workers and waitlist entries.
// It wraps github.com/google/uuid and is immutable. The zero value (uuid.Nil)
// is invalid.
//
// Example:
//
//	jobID := kernel.NewUUID()
//
//	workerID := kernel.NewNameBasedUUID(workerNamespace, "+15550102030")
//
//	parsed, err := kernel.UUIDFromString(c.Param("id"))
//	if err != nil {
//	    // malformed identifier
//	}
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a random (version 4) UUID.
func NewUUID() UUID {
	return UUID{
		id: uuid.New(),
	}
}

// NewNameBasedUUID derives a deterministic (version 5, SHA-1) UUID from name
// within namespace. The same inputs always produce the same identifier, which
// makes it suitable for identities keyed by natural attributes such as a phone
// number.
//
// Example:
//
//	a := kernel.NewNameBasedUUID(ns, "+15550102030")
//	b := kernel.NewNameBasedUUID(ns, "+15550102030")
//	a.IsEqual(b) // true
func NewNameBasedUUID(namespace uuid.UUID, name string) UUID {
	return UUID{
		id: uuid.NewSHA1(namespace, []byte(name)),
	}
}

// UUIDFromString parses the canonical, braced, urn and hyphenless forms.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{id: id}, nil
}

// UUIDFromBytes builds a UUID from a 16-byte slice, typically a database column.
// The nil UUID is rejected.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}

	return newID, nil
}

// String returns the canonical "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx" form.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying uuid.UUID for persistence adapters.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual reports whether both identifiers hold the same value.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for the nil UUID.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
