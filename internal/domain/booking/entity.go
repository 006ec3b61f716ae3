package booking

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

type Booking struct {
	id         uuid.UUID
	resourceID uuid.UUID
	timeSlot   TimeSlot
	bookedBy   BookedBy
	purpose    Purpose
	createdAt  time.Time
}

func NewBooking(
	resourceID uuid.UUID,
	slot TimeSlot,
	bookedBy BookedBy,
	purpose Purpose,
	now time.Time,
) *Booking {
	return &Booking{
		id:         uuid.New(),
		resourceID: resourceID,
		timeSlot:   slot,
		bookedBy:   bookedBy,
		purpose:    purpose,
		createdAt:  now,
	}
}

func ReconstructBooking(
	id, resourceID uuid.UUID,
	timeSlot TimeSlot,
	bookedBy BookedBy,
	purpose Purpose,
	createdAt time.Time,
) *Booking {
	return &Booking{
		id:         id,
		resourceID: resourceID,
		timeSlot:   timeSlot,
		bookedBy:   bookedBy,
		purpose:    purpose,
		createdAt:  createdAt,
	}
}

// Reschedule returns a copy with the new slot; identity and owner are kept.
func (b *Booking) Reschedule(slot TimeSlot) *Booking {
	moved := *b
	moved.timeSlot = slot
	return &moved
}

func (b *Booking) ConflictsWith(slot TimeSlot) bool {
	return b.timeSlot.Overlaps(slot)
}

func (b *Booking) ID() uuid.UUID         { return b.id }
func (b *Booking) ResourceID() uuid.UUID { return b.resourceID }
func (b *Booking) TimeSlot() TimeSlot    { return b.timeSlot }
func (b *Booking) BookedBy() BookedBy    { return b.bookedBy }
func (b *Booking) Purpose() Purpose      { return b.purpose }
func (b *Booking) CreatedAt() time.Time  { return b.createdAt }

// FindConflicts returns every existing booking overlapping candidate, ordered
// by start time. A booking whose id equals exclude is skipped so a booking
// being rescheduled never conflicts with its own prior record.
func FindConflicts(existing []*Booking, candidate TimeSlot, exclude uuid.UUID) []*Booking {
	var conflicts []*Booking
	for _, b := range existing {
		if exclude != uuid.Nil && b.id == exclude {
			continue
		}
		if b.ConflictsWith(candidate) {
			conflicts = append(conflicts, b)
		}
	}
	SortByStart(conflicts)
	return conflicts
}

func SortByStart(bookings []*Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		si, sj := bookings[i].timeSlot.start, bookings[j].timeSlot.start
		if !si.Equal(sj) {
			return si.Before(sj)
		}
		return bookings[i].id.String() < bookings[j].id.String()
	})
}
