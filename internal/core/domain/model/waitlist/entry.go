// Package waitlist models interest signups from prospective customers and cleaners.
// Entries are immutable once created.
package waitlist

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// Kind tells which audience an entry signed up from.
type Kind string

const (
	Customer Kind = "CUSTOMER"
	Cleaner  Kind = "CLEANER"
)

const (
	maxNameLength    = 200
	maxMessageLength = 2000
	maxZipLength     = 16
)

var (
	ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry or RestoreEntry constructor")
	ErrNameIsRequired        = errs.NewValueIsRequiredError("name")
	ErrEmailIsRequired       = errs.NewValueIsRequiredError("email")
)

func (k Kind) Validate() error {
	if k != Customer && k != Cleaner {
		return errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%q is not a waitlist kind", string(k)))
	}
	return nil
}

// Contact is the signup form content.
type Contact struct {
	Name    string
	Email   string
	Phone   *kernel.Phone
	Zip     string
	Message string
}

// Entry is a single waitlist signup.
type Entry struct {
	id        kernel.UUID
	kind      Kind
	contact   Contact
	createdAt time.Time

	isConstructed bool
}

func NewEntry(kind Kind, contact Contact, createdAt time.Time) (*Entry, error) {
	return RestoreEntry(kernel.NewUUID(), kind, contact, createdAt)
}

func RestoreEntry(id kernel.UUID, kind Kind, contact Contact, createdAt time.Time) (*Entry, error) {
	e := &Entry{
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		e.setID(id),
		e.setKind(kind),
		e.setContact(contact),
	); err != nil {
		return nil, err
	}

	return e, nil
}

func (e *Entry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

func (e *Entry) ID() kernel.UUID      { return e.id }
func (e *Entry) Kind() Kind           { return e.kind }
func (e *Entry) Name() string         { return e.contact.Name }
func (e *Entry) Email() string        { return e.contact.Email }
func (e *Entry) Zip() string          { return e.contact.Zip }
func (e *Entry) Message() string      { return e.contact.Message }
func (e *Entry) CreatedAt() time.Time { return e.createdAt }

// Phone returns the optional contact number.
func (e *Entry) Phone() *kernel.Phone {
	if e.contact.Phone == nil {
		return nil
	}
	p := *e.contact.Phone
	return &p
}

func (e *Entry) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *Entry) setKind(kind Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	e.kind = kind
	return nil
}

func (e *Entry) setContact(c Contact) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.Zip = strings.TrimSpace(c.Zip)
	c.Message = strings.TrimSpace(c.Message)

	var errList []error
	switch {
	case c.Name == "":
		errList = append(errList, ErrNameIsRequired)
	case len(c.Name) > maxNameLength:
		errList = append(errList, errs.NewValueIsOutOfRangeError("name length", len(c.Name), 1, maxNameLength))
	}
	if err := validateEmail(c.Email); err != nil {
		errList = append(errList, err)
	}
	if c.Phone != nil {
		if err := c.Phone.Validate(); err != nil {
			errList = append(errList, err)
		} else {
			p := *c.Phone
			c.Phone = &p
		}
	}
	if len(c.Zip) > maxZipLength {
		errList = append(errList, errs.NewValueIsOutOfRangeError("zip length", len(c.Zip), 0, maxZipLength))
	}
	if len(c.Message) > maxMessageLength {
		errList = append(errList, errs.NewValueIsOutOfRangeError("message length", len(c.Message), 0, maxMessageLength))
	}

	if err := errors.Join(errList...); err != nil {
		return err
	}

	e.contact = c
	return nil
}

// validateEmail accepts a bare addr-spec; display names ("Ana <a@b.c>") are rejected.
func validateEmail(email string) error {
	if email == "" {
		return ErrEmailIsRequired
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%q is not an email address", email))
	}
	return nil
}
