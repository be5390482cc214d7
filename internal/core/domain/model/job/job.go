package job

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

const (
	maxNameLength    = 200
	maxAddressLength = 500
	maxNotesLength   = 2000
)

// MaxMinutes caps a single job at one day.
const MaxMinutes = 24 * 60

var (
	ErrJobIsNotConstructed = errors.New("Job must be created via NewJob or RestoreJob constructor")
	ErrNameIsRequired      = errs.NewValueIsRequiredError("name")
	ErrAddressIsRequired   = errs.NewValueIsRequiredError("address")
)

// Intake is the requester-supplied part of a job.
type Intake struct {
	Name     string
	Phone    kernel.Phone
	Address  string
	Location *kernel.GeoPoint
	Minutes  int
	Notes    string
}

// Job is the aggregate root for a service request.
//
// Invariants:
//   - name, phone and address are present
//   - minutes is within [1..MaxMinutes] and priceCents is at least 1
//   - location is either nil or a constructed GeoPoint
//   - a worker is assigned if and only if the status is Accepted
type Job struct {
	id         kernel.UUID
	intake     Intake
	priceCents int
	status     Status
	workerID   *kernel.UUID
	createdAt  time.Time
	acceptedAt *time.Time

	isConstructed bool
}

// NewJob creates a Requested job. Price is computed by the caller (see services.Pricer);
// the constructor only checks that it is at least one cent.
//
// Example:
//
//	price, _ := pricer.Price(30) // 2250
//	j, err := job.NewJob(kernel.NewUUID(), intake, price, time.Now())
func NewJob(id kernel.UUID, intake Intake, priceCents int, createdAt time.Time) (*Job, error) {
	return RestoreJob(id, intake, priceCents, Requested, nil, createdAt, nil)
}

// RestoreJob rebuilds a Job from storage in any valid status.
func RestoreJob(
	id kernel.UUID,
	intake Intake,
	priceCents int,
	status Status,
	workerID *kernel.UUID,
	createdAt time.Time,
	acceptedAt *time.Time,
) (*Job, error) {
	j := &Job{
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		j.setID(id),
		j.setIntake(intake),
		j.setPrice(priceCents),
		j.setAssignment(status, workerID, acceptedAt),
	); err != nil {
		return nil, err
	}

	return j, nil
}

// Validate ensures the job was built by a constructor.
func (j *Job) Validate() error {
	if j == nil || !j.isConstructed {
		return ErrJobIsNotConstructed
	}
	return nil
}

func (j *Job) IsEqual(other *Job) bool {
	return other != nil && j.id.IsEqual(other.id)
}

func (j *Job) ID() kernel.UUID {
	return j.id
}

func (j *Job) Name() string {
	return j.intake.Name
}

func (j *Job) Phone() kernel.Phone {
	return j.intake.Phone
}

func (j *Job) Address() string {
	return j.intake.Address
}

// Location returns a copy of the target point, or nil when only the address is known.
func (j *Job) Location() *kernel.GeoPoint {
	if j.intake.Location == nil {
		return nil
	}
	loc := *j.intake.Location
	return &loc
}

func (j *Job) Minutes() int {
	return j.intake.Minutes
}

func (j *Job) Notes() string {
	return j.intake.Notes
}

func (j *Job) PriceCents() int {
	return j.priceCents
}

func (j *Job) Status() Status {
	return j.status
}

// Worker returns the assigned worker id, nil while Requested.
func (j *Job) Worker() *kernel.UUID {
	if j.workerID == nil {
		return nil
	}
	id := *j.workerID
	return &id
}

func (j *Job) CreatedAt() time.Time {
	return j.createdAt
}

func (j *Job) AcceptedAt() *time.Time {
	if j.acceptedAt == nil {
		return nil
	}
	at := *j.acceptedAt
	return &at
}

func (j *Job) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	j.id = id
	return nil
}

func (j *Job) setIntake(in Intake) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Address = strings.TrimSpace(in.Address)
	in.Notes = strings.TrimSpace(in.Notes)

	var errList []error
	switch {
	case in.Name == "":
		errList = append(errList, ErrNameIsRequired)
	case len(in.Name) > maxNameLength:
		errList = append(errList, errs.NewValueIsOutOfRangeError("name length", len(in.Name), 1, maxNameLength))
	}
	if err := in.Phone.Validate(); err != nil {
		errList = append(errList, err)
	}
	switch {
	case in.Address == "":
		errList = append(errList, ErrAddressIsRequired)
	case len(in.Address) > maxAddressLength:
		errList = append(errList, errs.NewValueIsOutOfRangeError("address length", len(in.Address), 1, maxAddressLength))
	}
	if in.Location != nil {
		if err := in.Location.Validate(); err != nil {
			errList = append(errList, err)
		} else {
			loc := *in.Location
			in.Location = &loc
		}
	}
	switch {
	case in.Minutes <= 0:
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"minutes", fmt.Errorf("%d is not greater than 0", in.Minutes)))
	case in.Minutes > MaxMinutes:
		errList = append(errList, errs.NewValueIsOutOfRangeError("minutes", in.Minutes, 1, MaxMinutes))
	}
	if len(in.Notes) > maxNotesLength {
		errList = append(errList, errs.NewValueIsOutOfRangeError("notes length", len(in.Notes), 0, maxNotesLength))
	}

	if err := errors.Join(errList...); err != nil {
		return err
	}

	j.intake = in
	return nil
}

func (j *Job) setPrice(priceCents int) error {
	if priceCents < 1 {
		return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%d is less than 1 cent", priceCents))
	}

	j.priceCents = priceCents
	return nil
}

func (j *Job) setAssignment(status Status, workerID *kernel.UUID, acceptedAt *time.Time) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if err := status.ValidateCanHaveWorker(workerID != nil); err != nil {
		return err
	}
	if workerID != nil {
		if err := workerID.Validate(); err != nil {
			return err
		}
		id := *workerID
		j.workerID = &id
	}
	if acceptedAt != nil {
		at := acceptedAt.UTC()
		j.acceptedAt = &at
	}

	j.status = status
	return nil
}
