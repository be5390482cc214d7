package kernel

import (
	"fmt"
	"strings"
	"unicode"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	minPhoneDigits = 7
	maxPhoneDigits = 15
)

var ErrPhoneIsNotConstructed = errs.NewValueIsRequiredError("phone must be created via NewPhone constructor")

// Phone is a contact number normalized to an optional leading '+' followed by
// digits. Spaces, dashes, dots and parentheses are dropped, so "+1 (555) 010-2030"
// and "+15550102030" are the same Phone.
type Phone struct {
	value string
	guard guard.ConstructorGuard
}

// NewPhone normalizes raw and checks it holds between 7 and 15 digits (E.164 upper bound).
func NewPhone(raw string) (Phone, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Phone{}, errs.NewValueIsRequiredError("phone")
	}

	var b strings.Builder
	digits := 0
	for i, r := range trimmed {
		switch {
		case unicode.IsDigit(r):
			b.WriteRune(r)
			digits++
		case r == '+' && i == 0:
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '.' || r == '(' || r == ')':
		default:
			return Phone{}, errs.NewValueIsInvalidErrorWithCause("phone", fmt.Errorf("unexpected character %q", r))
		}
	}

	if digits < minPhoneDigits || digits > maxPhoneDigits {
		return Phone{}, errs.NewValueIsOutOfRangeError("phone digits", digits, minPhoneDigits, maxPhoneDigits)
	}

	return Phone{value: b.String(), guard: guard.NewConstructorGuard()}, nil
}

func (p Phone) Validate() error {
	return p.guard.Validate(ErrPhoneIsNotConstructed)
}

func (p Phone) String() string {
	return p.value
}

func (p Phone) IsEqual(other Phone) bool {
	return p.value == other.value
}
