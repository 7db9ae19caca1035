package contact

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Record is one contact: a fixed name and an ordered list of phones.
// Duplicate phones are allowed.
type Record struct {
	name   Name
	phones []Phone
}

// NewRecord creates a Record with no phones.
func NewRecord(name string) (*Record, error) {
	n, err := NewName(name)
	if err != nil {
		return nil, err
	}
	return &Record{name: n}, nil
}

// Name returns the contact name.
func (r *Record) Name() Name {
	return r.name
}

// Phones returns a copy of the phone list in insertion order.
func (r *Record) Phones() []Phone {
	return slices.Clone(r.phones)
}

// AddPhone validates value and appends it.
func (r *Record) AddPhone(value string) error {
	p, err := NewPhone(value)
	if err != nil {
		return err
	}
	r.phones = append(r.phones, p)
	return nil
}

// FindPhone returns the first phone whose text equals value.
func (r *Record) FindPhone(value string) (Phone, bool) {
	return lo.Find(r.phones, func(p Phone) bool {
		return p.value == value
	})
}

// RemovePhone removes the first phone equal to value.
// Removing a phone the record does not hold is a no-op.
func (r *Record) RemovePhone(value string) {
	idx := lo.IndexOf(r.phones, Phone{value: value})
	if idx < 0 {
		return
	}
	r.phones = slices.Delete(r.phones, idx, idx+1)
}

// EditPhone replaces the first phone equal to oldValue with newValue.
// If oldValue is not on the record nothing happens and nil is returned.
// newValue is validated before anything is removed, so a failed edit
// leaves the record unchanged.
func (r *Record) EditPhone(oldValue, newValue string) error {
	if _, ok := r.FindPhone(oldValue); !ok {
		return nil
	}
	p, err := NewPhone(newValue)
	if err != nil {
		return err
	}
	r.RemovePhone(oldValue)
	r.phones = append(r.phones, p)
	return nil
}

func (r *Record) String() string {
	phones := lo.Map(r.phones, func(p Phone, _ int) string {
		return p.value
	})
	return fmt.Sprintf("Contact name: %s, phones: %s", r.name.value, strings.Join(phones, "; "))
}
