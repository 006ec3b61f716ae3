package response

import (
	"time"

	"resource-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ResourceResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Capacity    int32     `json:"capacity"`
	IsAvailable bool      `json:"isAvailable"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type AvailabilityResponse struct {
	ResourceID  uuid.UUID `json:"resourceId"`
	IsAvailable bool      `json:"isAvailable"`
}

func FromResourceView(view *queries.ResourceView) *ResourceResponse {
	var resp ResourceResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromResourceViews(views []*queries.ResourceView) []*ResourceResponse {
	resp := make([]*ResourceResponse, len(views))
	for i, v := range views {
		resp[i] = FromResourceView(v)
	}
	return resp
}
