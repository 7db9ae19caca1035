// Package contact holds the address book data model: validated name and
// phone values, the contact record that groups them, and the book that
// owns every record for a session.
package contact

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validation rules, expressed as validator tags.
const (
	nameRule  = "required"
	phoneRule = "len=10,number"
)

// User-facing validation messages.
const (
	msgNameRequired = "Name cannot be empty."
	msgPhoneDigits  = "Phone number must be 10 digits."
)

// ValidationError reports a field value that failed its rule.
// Message is meant to be shown to the user verbatim.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Name identifies a contact. It is the address book key.
type Name struct {
	value string
}

// NewName returns a Name for value. The only rule is that value is non-empty.
func NewName(value string) (Name, error) {
	if err := validate.Var(value, nameRule); err != nil {
		return Name{}, &ValidationError{Field: "name", Value: value, Message: msgNameRequired}
	}
	return Name{value: value}, nil
}

// Value returns the raw name text.
func (n Name) Value() string { return n.value }

func (n Name) String() string { return n.value }

// Phone is a phone number of exactly ten ASCII digits.
// The original text is kept as given; two phones are equal when their text is.
type Phone struct {
	value string
}

// NewPhone returns a Phone for value, or a *ValidationError when value is not
// exactly ten decimal digits.
func NewPhone(value string) (Phone, error) {
	if err := validate.Var(value, phoneRule); err != nil {
		return Phone{}, &ValidationError{Field: "phone", Value: value, Message: msgPhoneDigits}
	}
	return Phone{value: value}, nil
}

// Value returns the raw phone text.
func (p Phone) Value() string { return p.value }

func (p Phone) String() string { return p.value }
