//go:build unit || e2e

package builder

import (
	"time"

	reqdto "resource-booking/internal/handler/dto/request"
	"resource-booking/internal/usecase/commands"
	"resource-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

var DefaultStart = time.Date(2030, 3, 10, 9, 0, 0, 0, time.UTC)

type BookingBuilder struct {
	ID           uuid.UUID
	ResourceID   uuid.UUID
	ResourceName string
	StartTime    time.Time
	EndTime      time.Time
	BookedBy     string
	Purpose      string
	CreatedAt    time.Time
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		ID:           uuid.New(),
		ResourceID:   uuid.New(),
		ResourceName: "Room A",
		StartTime:    DefaultStart,
		EndTime:      DefaultStart.Add(time.Hour),
		BookedBy:     "alice",
		Purpose:      "Sprint planning",
		CreatedAt:    DefaultStart.Add(-24 * time.Hour),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// Between sets the slot to [start, end) relative to DefaultStart.
func (b *BookingBuilder) Between(start, end time.Duration) *BookingBuilder {
	b.StartTime = DefaultStart.Add(start)
	b.EndTime = DefaultStart.Add(end)
	return b
}

// Build methods
func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		ResourceID: b.ResourceID,
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		BookedBy:   b.BookedBy,
		Purpose:    b.Purpose,
	}
}

func (b *BookingBuilder) BuildRescheduleRequestDTO() reqdto.RescheduleBookingRequest {
	return reqdto.RescheduleBookingRequest{
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
	}
}

func (b *BookingBuilder) BuildCommand() commands.CreateBookingRequest {
	return b.BuildCreateRequestDTO().ToCommand()
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	return &queries.BookingView{
		ID:           b.ID,
		ResourceID:   b.ResourceID,
		ResourceName: b.ResourceName,
		StartTime:    b.StartTime,
		EndTime:      b.EndTime,
		BookedBy:     b.BookedBy,
		Purpose:      b.Purpose,
		CreatedAt:    b.CreatedAt,
	}
}

func (b *BookingBuilder) BuildConflict() commands.ConflictDetail {
	return commands.ConflictDetail{
		ID:        b.ID,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		BookedBy:  b.BookedBy,
	}
}
