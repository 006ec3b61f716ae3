package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type ResourceView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Capacity    int32     `json:"capacity"`
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type BookingView struct {
	ID           uuid.UUID `json:"id"`
	ResourceID   uuid.UUID `json:"resource_id"`
	ResourceName string    `json:"resource_name"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	BookedBy     string    `json:"booked_by"`
	Purpose      string    `json:"purpose"`
	CreatedAt    time.Time `json:"created_at"`
}

type BookingFilter struct {
	ResourceID uuid.UUID
	From       *time.Time
	To         *time.Time
}
