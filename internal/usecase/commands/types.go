package commands

import (
	"fmt"
	"time"

	"resource-booking/internal/domain/booking"
	"resource-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	ResourceID uuid.UUID
	StartTime  time.Time
	EndTime    time.Time
	BookedBy   string
	Purpose    string
}

type RescheduleBookingRequest struct {
	StartTime time.Time
	EndTime   time.Time
}

type CreateResourceRequest struct {
	Name        string
	Description string
	Location    string
	Capacity    int
}

type ConflictDetail struct {
	ID        uuid.UUID `json:"id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	BookedBy  string    `json:"booked_by"`
}

// ReasonOverlap names the rule a conflict broke when the overlapping
// bookings could not be listed.
const ReasonOverlap = "requested interval overlaps an existing booking on this resource"

// ConflictError lists the bookings that overlap a requested slot. It matches errs.ErrBookingConflict.
// Reason is set when Conflicts is empty.
type ConflictError struct {
	ResourceID uuid.UUID
	Conflicts  []ConflictDetail
	Reason     string
}

func newConflictError(resourceID uuid.UUID, conflicts []*booking.Booking) *ConflictError {
	details := make([]ConflictDetail, 0, len(conflicts))
	for _, b := range conflicts {
		details = append(details, ConflictDetail{
			ID:        b.ID(),
			StartTime: b.TimeSlot().Start(),
			EndTime:   b.TimeSlot().End(),
			BookedBy:  b.BookedBy().String(),
		})
	}
	return &ConflictError{ResourceID: resourceID, Conflicts: details}
}

func (e *ConflictError) Error() string {
	if len(e.Conflicts) == 0 && e.Reason != "" {
		return fmt.Sprintf("booking conflict on resource %s: %s", e.ResourceID, e.Reason)
	}
	return fmt.Sprintf("booking conflict on resource %s: %d overlapping booking(s)", e.ResourceID, len(e.Conflicts))
}

func (e *ConflictError) Is(target error) bool {
	return target == errs.ErrBookingConflict
}
