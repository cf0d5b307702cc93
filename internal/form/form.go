// Package form holds the passenger and contact drafts for one booking.
package form

import (
	"fmt"
	"sync"
	"time"

	"github.com/Domenick1991/airbooking-client/internal/domain"
)

// Form always holds at least one passenger.
type Form struct {
	mu         sync.RWMutex
	passengers []domain.Passenger
	contact    domain.ContactInfo
	now        func() time.Time
}

type Option func(*Form)

// WithClock sets the clock used for the current-year rules.
func WithClock(now func() time.Time) Option {
	return func(f *Form) {
		f.now = now
	}
}

// FromDraft seeds the form from previously entered data. An empty passenger
// list still yields one blank passenger.
func FromDraft(passengers []domain.Passenger, contact domain.ContactInfo) Option {
	return func(f *Form) {
		if len(passengers) > 0 {
			f.passengers = append([]domain.Passenger(nil), passengers...)
		}
		f.contact = contact
	}
}

func New(opts ...Option) *Form {
	f := &Form{
		passengers: []domain.Passenger{{}},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Form) AddPassenger() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.passengers = append(f.passengers, domain.Passenger{})
}

// RemovePassenger drops passenger i. It does nothing when only one passenger
// is left or i is out of range.
func (f *Form) RemovePassenger(i int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.passengers) <= 1 || i < 0 || i >= len(f.passengers) {
		return
	}
	f.passengers = append(f.passengers[:i], f.passengers[i+1:]...)
}

func (f *Form) SetPassenger(i int, p domain.Passenger) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i < 0 || i >= len(f.passengers) {
		return fmt.Errorf("passenger index %d out of range [0,%d)", i, len(f.passengers))
	}
	f.passengers[i] = p
	return nil
}

func (f *Form) SetContact(c domain.ContactInfo) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.contact = c
}

// Passengers returns a copy of the passenger drafts.
func (f *Form) Passengers() []domain.Passenger {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]domain.Passenger(nil), f.passengers...)
}

func (f *Form) Contact() domain.ContactInfo {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.contact
}

func (f *Form) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.passengers)
}

// Validate returns one message per violated field. An empty map means the
// form is ready to submit.
func (f *Form) Validate() map[string]string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	year := f.now().Year()
	errs := make(map[string]string)

	validateContact(f.contact, errs)
	for i, p := range f.passengers {
		validatePassenger(i, p, year, errs)
	}
	return errs
}
