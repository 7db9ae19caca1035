package contact

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
)

// ErrNotFound indicates no record is stored under a name.
var ErrNotFound = errors.New("contact: not found")

// NotFoundError carries the name that was looked up.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("contact: %q not found", e.Name)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// AddressBook maps contact names to records.
// Records are listed in the order their name was first added.
// It is not safe for concurrent use.
type AddressBook struct {
	records map[string]*Record
	order   []string
}

// NewAddressBook creates an empty AddressBook.
func NewAddressBook() *AddressBook {
	return &AddressBook{records: make(map[string]*Record)}
}

// AddRecord stores r under its name, replacing any record already there.
// A replaced record keeps its position in the listing order.
func (b *AddressBook) AddRecord(r *Record) {
	key := r.name.value
	if _, ok := b.records[key]; !ok {
		b.order = append(b.order, key)
	}
	b.records[key] = r
}

// Find returns the record stored under name.
func (b *AddressBook) Find(name string) (*Record, bool) {
	r, ok := b.records[name]
	return r, ok
}

// Get is Find for callers that did not check existence first.
// A missing name yields a *NotFoundError.
func (b *AddressBook) Get(name string) (*Record, error) {
	r, ok := b.records[name]
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	return r, nil
}

// Delete removes the record stored under name, if any.
func (b *AddressBook) Delete(name string) {
	if _, ok := b.records[name]; !ok {
		return
	}
	delete(b.records, name)
	b.order = lo.Without(b.order, name)
}

// IsEmpty reports whether the book holds no records.
func (b *AddressBook) IsEmpty() bool {
	return len(b.records) == 0
}

// Len returns the number of records.
func (b *AddressBook) Len() int {
	return len(b.records)
}

// Records returns every record once, in listing order.
func (b *AddressBook) Records() []*Record {
	return lo.Map(b.order, func(name string, _ int) *Record {
		return b.records[name]
	})
}
