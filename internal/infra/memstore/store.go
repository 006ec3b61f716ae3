// Package memstore keeps resources and bookings in process memory.
// A unit of work holds the store lock for its whole duration and applies
// its writes only when fn succeeds.
package memstore

import (
	"context"
	"sync"
	"time"

	"resource-booking/internal/domain/booking"
	"resource-booking/internal/domain/resource"
	"resource-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type resourceRow struct {
	id          uuid.UUID
	name        string
	description string
	location    string
	capacity    int
	available   bool
	createdAt   time.Time
	updatedAt   time.Time
}

type bookingRow struct {
	id         uuid.UUID
	resourceID uuid.UUID
	slot       booking.TimeSlot
	bookedBy   booking.BookedBy
	purpose    booking.Purpose
	createdAt  time.Time
}

type state struct {
	resources map[uuid.UUID]resourceRow
	bookings  map[uuid.UUID]bookingRow
}

func newState() *state {
	return &state{
		resources: make(map[uuid.UUID]resourceRow),
		bookings:  make(map[uuid.UUID]bookingRow),
	}
}

func (s *state) clone() *state {
	c := &state{
		resources: make(map[uuid.UUID]resourceRow, len(s.resources)),
		bookings:  make(map[uuid.UUID]bookingRow, len(s.bookings)),
	}
	for k, v := range s.resources {
		c.resources[k] = v
	}
	for k, v := range s.bookings {
		c.bookings[k] = v
	}
	return c
}

type Store struct {
	mu    sync.RWMutex
	state *state
}

func New() *Store {
	return &Store{state: newState()}
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{state: s.state.clone()}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	s.state = tx.state
	return nil
}

// Reset drops all data.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = newState()
}

func (s *Store) read(fn func(st *state)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.state)
}

type memTx struct {
	state *state
}

func (t *memTx) Resources() shared.ResourceRepository {
	return &resourceRepository{state: t.state}
}

func (t *memTx) Bookings() shared.BookingRepository {
	return &bookingRepository{state: t.state}
}

func toResourceRow(r *resource.Resource) resourceRow {
	return resourceRow{
		id:          r.ID(),
		name:        r.Name(),
		description: r.Description(),
		location:    r.Location(),
		capacity:    r.Capacity(),
		available:   r.IsAvailable(),
		createdAt:   r.CreatedAt(),
		updatedAt:   r.UpdatedAt(),
	}
}

func (row resourceRow) toEntity() *resource.Resource {
	return resource.ReconstructResource(
		row.id,
		row.name,
		row.description,
		row.location,
		row.capacity,
		row.available,
		row.createdAt,
		row.updatedAt,
	)
}

func toBookingRow(b *booking.Booking) bookingRow {
	return bookingRow{
		id:         b.ID(),
		resourceID: b.ResourceID(),
		slot:       b.TimeSlot(),
		bookedBy:   b.BookedBy(),
		purpose:    b.Purpose(),
		createdAt:  b.CreatedAt(),
	}
}

func (row bookingRow) toEntity() *booking.Booking {
	return booking.ReconstructBooking(row.id, row.resourceID, row.slot, row.bookedBy, row.purpose, row.createdAt)
}
