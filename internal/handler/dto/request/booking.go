package request

import (
	"time"

	"resource-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	ResourceID uuid.UUID `json:"resource_id" binding:"required"`
	StartTime  time.Time `json:"start_time" binding:"required"`
	EndTime    time.Time `json:"end_time" binding:"required"`
	BookedBy   string    `json:"booked_by" binding:"required,notblank,max=255"`
	Purpose    string    `json:"purpose" binding:"max=1000"`
}

func (r CreateBookingRequest) ToCommand() commands.CreateBookingRequest {
	return commands.CreateBookingRequest{
		ResourceID: r.ResourceID,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		BookedBy:   r.BookedBy,
		Purpose:    r.Purpose,
	}
}

type RescheduleBookingRequest struct {
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}

func (r RescheduleBookingRequest) ToCommand() commands.RescheduleBookingRequest {
	return commands.RescheduleBookingRequest{
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
	}
}
