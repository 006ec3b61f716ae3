package shared

//go:generate mockgen -source=ports.go -destination=../../../tests/mock/shared/ports.go -package=sharedmock

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type BookingEventType string

const (
	BookingCreated     BookingEventType = "booking.created"
	BookingRescheduled BookingEventType = "booking.rescheduled"
	BookingDeleted     BookingEventType = "booking.deleted"
)

type BookingEvent struct {
	Type       BookingEventType `json:"type"`
	BookingID  uuid.UUID        `json:"booking_id"`
	ResourceID uuid.UUID        `json:"resource_id"`
	StartTime  *time.Time       `json:"start_time,omitempty"`
	EndTime    *time.Time       `json:"end_time,omitempty"`
	BookedBy   string           `json:"booked_by,omitempty"`
	OccurredAt time.Time        `json:"occurred_at"`
}

// EventPublisher is called after commit; a failure must not undo the write.
type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, event BookingEvent) error
}

type ResourceCacheInvalidator interface {
	InvalidateResourceList(ctx context.Context) error
}
