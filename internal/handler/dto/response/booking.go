package response

import (
	"time"

	"resource-booking/internal/handler/httperr"
	"resource-booking/internal/usecase/commands"
	"resource-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	ID           uuid.UUID `json:"id"`
	ResourceID   uuid.UUID `json:"resourceId"`
	ResourceName string    `json:"resourceName"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
	BookedBy     string    `json:"bookedBy"`
	Purpose      string    `json:"purpose"`
	CreatedAt    time.Time `json:"createdAt"`
}

func FromBookingView(view *queries.BookingView) *BookingResponse {
	var resp BookingResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromBookingViews(views []*queries.BookingView) []*BookingResponse {
	resp := make([]*BookingResponse, len(views))
	for i, v := range views {
		resp[i] = FromBookingView(v)
	}
	return resp
}

func FromConflictError(err *commands.ConflictError) httperr.ConflictDetail {
	conflicts := make([]httperr.ConflictBooking, 0, len(err.Conflicts))
	_ = copier.Copy(&conflicts, &err.Conflicts)
	return httperr.ConflictDetail{Reason: err.Reason, Conflicts: conflicts}
}
