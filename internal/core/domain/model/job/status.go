package job

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status is the lifecycle state of a job.
//
// State transitions:
//
//	Requested ──> Accepted
//
// Unknown is the zero value and is never valid.
type Status int

const (
	Unknown Status = iota

	// Requested is the initial status. The job waits for a worker.
	Requested

	// Accepted means a worker was matched and the assignment write won.
	Accepted
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Requested: "REQUESTED",
		Accepted:  "ACCEPTED",
	}
}

// ParseStatus maps the stored representation back to a Status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != Unknown && str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if s != Requested && s != Accepted {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the upper-case name used in storage and on the wire.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// ValidateAssign reports whether a worker may still be assigned.
// Only Requested jobs are assignable; there is no reassignment.
func (s Status) ValidateAssign() error {
	if s != Requested {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to assign", s.String()),
		)
	}
	return nil
}

// ValidateCanHaveWorker checks the status against the presence of an assigned worker:
// Requested jobs have none, Accepted jobs must have one.
func (s Status) ValidateCanHaveWorker(hasWorker bool) error {
	if hasWorker && s != Accepted {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have a worker", s.String()),
		)
	}

	if !hasWorker && s == Accepted {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have no worker", s.String()),
		)
	}

	return nil
}
